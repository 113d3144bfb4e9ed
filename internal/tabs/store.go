// Package tabs holds the authoritative list of Tabs and writes it through to
// a storage.BlobStore on every change.
package tabs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/mmynk/tabsplit/internal/metrics"
	"github.com/mmynk/tabsplit/internal/models"
	"github.com/mmynk/tabsplit/internal/storage"
)

// DefaultKey is the blob key the tab list is stored under.
const DefaultKey = "saved_tabs"

var (
	ErrMissingID    = errors.New("tab id is required")
	ErrDuplicateTab = errors.New("tab id already exists")
)

// savedAtReporter is implemented by blob stores that track write times.
type savedAtReporter interface {
	UpdatedAt(ctx context.Context, key string) (time.Time, error)
}

// Canceller drops deferred work keyed by tab ID. *scheduler.Scheduler satisfies it.
type Canceller interface {
	Cancel(key string) bool
}

// Store owns the in-memory tab list.
//
// Every state change serializes the whole list and writes it synchronously
// to the blob store. A failed write is logged and counted, and the in-memory
// list stays authoritative for the rest of the session.
//
// Operations on a tab ID that is not in the store are silent no-ops; the
// boolean results let callers check when it matters.
type Store struct {
	mu      sync.Mutex
	tabs    []models.Tab
	blobs   storage.BlobStore
	key     string
	logger  *slog.Logger
	metrics *metrics.Metrics
	pending Canceller
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) { s.logger = l }
}

// WithMetrics records store activity on m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Store) { s.metrics = m }
}

// WithKey overrides DefaultKey.
func WithKey(key string) Option {
	return func(s *Store) { s.key = key }
}

// WithCanceller cancels deferred work for a tab when it is deleted.
func WithCanceller(c Canceller) Option {
	return func(s *Store) { s.pending = c }
}

// New creates a Store and loads any previously saved tabs.
//
// A missing blob starts an empty store. A blob that cannot be read or decoded
// is logged and also starts an empty store; the old data is not recovered.
func New(ctx context.Context, blobs storage.BlobStore, opts ...Option) *Store {
	s := &Store{
		blobs:  blobs,
		key:    DefaultKey,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With("component", "tabs", "key", s.key)

	s.load(ctx)
	return s
}

func (s *Store) load(ctx context.Context) {
	defer s.updateGauges()

	data, err := s.blobs.Get(ctx, s.key)
	if errors.Is(err, storage.ErrNotFound) {
		s.logger.Debug("No saved tabs, starting empty")
		return
	}
	if err != nil {
		s.logger.Error("Failed to read saved tabs", "error", err)
		s.metrics.ObserveLoadFailure()
		return
	}

	tabs, err := Decode(data)
	if err != nil {
		s.logger.Error("Failed to load tabs, resetting to empty", "error", err, "bytes", len(data))
		s.metrics.ObserveLoadFailure()
		s.tabs = nil
		return
	}
	s.tabs = tabs

	attrs := []any{"count", len(tabs)}
	if r, ok := s.blobs.(savedAtReporter); ok {
		if savedAt, err := r.UpdatedAt(ctx, s.key); err == nil {
			attrs = append(attrs, "saved_at", savedAt.Format(time.RFC3339))
		}
	}
	s.logger.Info("Loaded tabs", attrs...)
}

// Encode serializes tabs in the persisted JSON format.
func Encode(tabs []models.Tab) ([]byte, error) {
	if tabs == nil {
		tabs = []models.Tab{}
	}
	data, err := json.Marshal(tabs)
	if err != nil {
		return nil, fmt.Errorf("failed to encode tabs: %w", err)
	}
	return data, nil
}

// Decode parses the persisted JSON format.
func Decode(data []byte) ([]models.Tab, error) {
	var tabs []models.Tab
	if err := json.Unmarshal(data, &tabs); err != nil {
		return nil, fmt.Errorf("failed to decode tabs: %w", err)
	}
	return tabs, nil
}

// persist writes the whole list. Caller must hold s.mu.
func (s *Store) persist(ctx context.Context, op string) {
	s.metrics.ObserveMutation(op)
	s.updateGauges()

	data, err := Encode(s.tabs)
	if err == nil {
		err = s.blobs.Put(ctx, s.key, data)
	}
	if err != nil {
		s.logger.Error("Failed to save tabs", "op", op, "error", err)
		s.metrics.ObservePersistFailure()
		return
	}
	s.logger.Debug("Saved tabs", "op", op, "count", len(s.tabs), "bytes", len(data))
}

func (s *Store) updateGauges() {
	var settled int
	for _, t := range s.tabs {
		if t.IsSettled {
			settled++
		}
	}
	s.metrics.SetTabCounts(len(s.tabs)-settled, settled)
}

func (s *Store) indexOf(id string) int {
	return slices.IndexFunc(s.tabs, func(t models.Tab) bool { return t.ID == id })
}

// Tabs returns copies of every tab in insertion order.
func (s *Store) Tabs() []models.Tab {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filter(func(models.Tab) bool { return true })
}

// Active returns copies of tabs that are not settled.
func (s *Store) Active() []models.Tab {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filter(func(t models.Tab) bool { return !t.IsSettled })
}

// Settled returns copies of settled tabs.
func (s *Store) Settled() []models.Tab {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filter(func(t models.Tab) bool { return t.IsSettled })
}

func (s *Store) filter(keep func(models.Tab) bool) []models.Tab {
	out := make([]models.Tab, 0, len(s.tabs))
	for _, t := range s.tabs {
		if keep(t) {
			out = append(out, t.Clone())
		}
	}
	return out
}

// Get returns a copy of the tab with the given ID.
func (s *Store) Get(id string) (models.Tab, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(id)
	if i < 0 {
		return models.Tab{}, false
	}
	return s.tabs[i].Clone(), true
}

// Len returns the number of tabs.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tabs)
}

// Append adds a new tab. The ID must already be assigned and unique, and the
// tab's friend IDs must be unique.
func (s *Store) Append(ctx context.Context, tab models.Tab) error {
	if tab.ID == "" {
		return ErrMissingID
	}
	if err := tab.Validate(); err != nil {
		return fmt.Errorf("invalid tab %s: %w", tab.ID, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.indexOf(tab.ID) >= 0 {
		return fmt.Errorf("%w: %s", ErrDuplicateTab, tab.ID)
	}
	added := tab.Clone()
	added.NormalizeReminders()
	s.tabs = append(s.tabs, added)
	s.logger.Info("Tab added", "tab_id", tab.ID, "restaurant", tab.RestaurantName, "friends", len(tab.Friends))
	s.persist(ctx, "append")
	return nil
}

// Update replaces the stored tab with the same ID, first recomputing
// TotalAmount from the friends' owed amounts. Reports whether the tab existed.
func (s *Store) Update(ctx context.Context, tab models.Tab) bool {
	if err := tab.Validate(); err != nil {
		s.logger.Warn("Ignoring invalid tab update", "tab_id", tab.ID, "error", err)
		return false
	}

	updated := tab.Clone()
	updated.RecalcTotal()
	updated.NormalizeReminders()

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(updated.ID)
	if i < 0 {
		s.logger.Debug("Update for unknown tab", "tab_id", updated.ID)
		return false
	}
	s.tabs[i] = updated
	s.persist(ctx, "update")
	return true
}

// mutate applies fn to the tab with the given ID and persists.
func (s *Store) mutate(ctx context.Context, op, tabID string, fn func(*models.Tab)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(tabID)
	if i < 0 {
		s.logger.Debug("Operation on unknown tab", "op", op, "tab_id", tabID)
		return false
	}
	fn(&s.tabs[i])
	s.persist(ctx, op)
	return true
}

// MarkReminded records that friendID was reminded about tabID. Idempotent.
func (s *Store) MarkReminded(ctx context.Context, tabID, friendID string) bool {
	return s.mutate(ctx, "mark_reminded", tabID, func(t *models.Tab) {
		t.MarkReminded(friendID)
	})
}

// MarkSettled flags the tab as settled.
func (s *Store) MarkSettled(ctx context.Context, tabID string) bool {
	return s.mutate(ctx, "mark_settled", tabID, func(t *models.Tab) {
		t.IsSettled = true
	})
}

// MarkActive moves a settled tab back to active. Reminder history is kept.
func (s *Store) MarkActive(ctx context.Context, tabID string) bool {
	return s.mutate(ctx, "mark_active", tabID, func(t *models.Tab) {
		t.IsSettled = false
	})
}

// Delete removes the tab and cancels any deferred work keyed by its ID.
func (s *Store) Delete(ctx context.Context, tabID string) bool {
	if s.pending != nil {
		s.pending.Cancel(tabID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(tabID)
	if i < 0 {
		return false
	}
	s.tabs = slices.Delete(s.tabs, i, i+1)
	s.logger.Info("Tab deleted", "tab_id", tabID)
	s.persist(ctx, "delete")
	return true
}
