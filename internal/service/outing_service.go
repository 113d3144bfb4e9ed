package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/mmynk/tabsplit/internal/calculator"
	"github.com/mmynk/tabsplit/internal/draft"
	"github.com/mmynk/tabsplit/internal/models"
	"github.com/mmynk/tabsplit/internal/scheduler"
	"github.com/mmynk/tabsplit/internal/tabs"
)

var (
	// ErrCannotConfirm means the bill or payer is missing, or the total is not positive.
	ErrCannotConfirm = errors.New("bill amount and payer are required")
	ErrTabNotFound   = errors.New("tab not found")
	ErrNotEligible   = errors.New("friend cannot be reminded")
)

// ToastFunc shows (visible=true) or hides a short confirmation message.
type ToastFunc func(message string, visible bool)

// OutingService drives the create, edit, remind and settle flows on top of
// the tab store.
type OutingService struct {
	store       *tabs.Store
	scheduler   *scheduler.Scheduler
	logger      *slog.Logger
	toast       ToastFunc
	settleDelay time.Duration
	toastDelay  time.Duration
}

// Config holds the delays used for deferred transitions.
type Config struct {
	SettleDelay time.Duration
	ToastDelay  time.Duration
	Toast       ToastFunc
	Logger      *slog.Logger
}

// NewOutingService creates a new OutingService. The scheduler should be the
// same one the store was given with tabs.WithCanceller, so deleting a tab
// cancels a pending settle.
func NewOutingService(store *tabs.Store, sched *scheduler.Scheduler, cfg Config) *OutingService {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	toast := cfg.Toast
	if toast == nil {
		toast = func(string, bool) {}
	}
	return &OutingService{
		store:       store,
		scheduler:   sched,
		logger:      logger.With("component", "outings"),
		toast:       toast,
		settleDelay: cfg.SettleDelay,
		toastDelay:  cfg.ToastDelay,
	}
}

// hasFriend checks if id is one of friends.
func hasFriend(friends []models.Friend, id string) bool {
	for _, f := range friends {
		if f.ID == id {
			return true
		}
	}
	return false
}

// SaveEqualSplit splits the bill evenly among the draft's friends, crediting
// the payer, saves the new tab and resets the draft.
func (s *OutingService) SaveEqualSplit(ctx context.Context, d *draft.Draft, in calculator.BillInput, payerID string) (models.Tab, error) {
	if !in.Valid() || !hasFriend(d.Friends, payerID) {
		return models.Tab{}, ErrCannotConfirm
	}

	total := in.Total()
	friends := calculator.EqualSplit(d.Friends, total, payerID)
	s.logger.Debug("Equal split computed", "total", total, "friends", len(friends), "payer_id", payerID)

	return s.save(ctx, d, total, friends)
}

// PreviewCustomSplit recomputes what everyone owes for the draft's current
// paid and tip entries. Call it after every edit to those fields.
func (s *OutingService) PreviewCustomSplit(d *draft.Draft, in calculator.BillInput) calculator.CustomBreakdown {
	return calculator.CustomSummary(d.Friends, in.Total())
}

// SaveCustomSplit computes owed amounts from each draft friend's paid amount
// and tip, saves the new tab and resets the draft.
func (s *OutingService) SaveCustomSplit(ctx context.Context, d *draft.Draft, in calculator.BillInput) (models.Tab, error) {
	total := in.Total()
	friends := calculator.CustomSplit(d.Friends, total)
	s.logger.Debug("Custom split computed", "total", total, "friends", len(friends))

	return s.save(ctx, d, total, friends)
}

func (s *OutingService) save(ctx context.Context, d *draft.Draft, total float64, friends []models.Friend) (models.Tab, error) {
	tab, ok := d.Build(total, friends)
	if !ok {
		return models.Tab{}, ErrCannotConfirm
	}
	if err := s.store.Append(ctx, tab); err != nil {
		return models.Tab{}, fmt.Errorf("failed to save tab: %w", err)
	}
	d.Reset()
	s.logger.Info("Outing saved", "tab_id", tab.ID, "total", tab.TotalAmount)
	return tab, nil
}

// EditTab re-splits an existing tab evenly and stores it. The stored total
// becomes the sum of what friends owe, so the payer's share drops out.
func (s *OutingService) EditTab(ctx context.Context, tabID string, in calculator.BillInput, payerID string) (models.Tab, error) {
	tab, ok := s.store.Get(tabID)
	if !ok {
		return models.Tab{}, fmt.Errorf("%w: %s", ErrTabNotFound, tabID)
	}
	if !in.Valid() || !hasFriend(tab.Friends, payerID) {
		return models.Tab{}, ErrCannotConfirm
	}

	tab.Friends = calculator.EqualSplit(tab.Friends, in.Total(), payerID)
	if !s.store.Update(ctx, tab) {
		// Deleted between Get and Update
		return models.Tab{}, fmt.Errorf("%w: %s", ErrTabNotFound, tabID)
	}

	s.showToast(tabID, "Changes saved")
	updated, _ := s.store.Get(tabID)
	return updated, nil
}

func (s *OutingService) showToast(tabID, message string) {
	s.toast(message, true)
	s.scheduler.Schedule("toast:"+tabID, s.toastDelay, func() {
		s.toast(message, false)
	})
}

// Remind records a payment reminder for a friend who still owes money.
func (s *OutingService) Remind(ctx context.Context, tabID, friendID string) error {
	tab, ok := s.store.Get(tabID)
	if !ok {
		return fmt.Errorf("%w: %s", ErrTabNotFound, tabID)
	}
	f, ok := tab.Friend(friendID)
	if !ok || !f.CanRemind() {
		return fmt.Errorf("%w: %s", ErrNotEligible, friendID)
	}

	s.store.MarkReminded(ctx, tabID, friendID)
	s.logger.Info("Friend reminded", "tab_id", tabID, "friend_id", friendID, "has_contact", f.ContactInfo != "")
	return nil
}

// Settle marks the tab settled once the confirmation animation has played.
// If the tab is deleted or reactivated first, nothing happens.
func (s *OutingService) Settle(ctx context.Context, tabID string) {
	ctx = context.WithoutCancel(ctx)
	s.scheduler.Schedule(tabID, s.settleDelay, func() {
		if !s.store.MarkSettled(ctx, tabID) {
			s.logger.Debug("Deferred settle skipped, tab is gone", "tab_id", tabID)
		}
	})
}

// SettlePending reports whether a deferred settle is waiting for tabID.
func (s *OutingService) SettlePending(tabID string) bool {
	return s.scheduler.Pending(tabID)
}

// Reactivate moves a tab back to active immediately, dropping any pending settle.
func (s *OutingService) Reactivate(ctx context.Context, tabID string) bool {
	s.scheduler.Cancel(tabID)
	return s.store.MarkActive(ctx, tabID)
}

// Delete removes a tab. A pending settle for it is cancelled by the store.
func (s *OutingService) Delete(ctx context.Context, tabID string) bool {
	return s.store.Delete(ctx, tabID)
}

// Summary returns outstanding balances across active tabs.
func (s *OutingService) Summary() calculator.Summary {
	return calculator.Outstanding(s.store.Active())
}
