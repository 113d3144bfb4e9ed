package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"time"
)

// ErrDuplicateFriend is returned when two friends in a Tab share an ID.
var ErrDuplicateFriend = errors.New("duplicate friend id")

// Location is the coordinate picked for an outing, if any.
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Tab represents one recorded group outing and how its bill was split.
type Tab struct {
	// ID is the unique identifier for the tab (UUID format).
	// Assigned when the tab is created and never changed.
	ID string

	// RestaurantName is the display label for the outing.
	RestaurantName string

	// Date is when the outing happened.
	Date time.Time

	// TotalAmount is the outing total. Set directly at creation, and
	// recomputed as the sum of OwesAmount on every edit (see RecalcTotal).
	TotalAmount float64

	// Friends are the participants, in the order they were added.
	Friends []Friend

	// Visual is the photo or icon chosen for the outing.
	Visual Visual

	// Location is the optional coordinate captured at creation.
	Location *Location

	// IsSettled is true once balances are considered resolved.
	IsSettled bool

	// RemindedFriendIDs is the set of friends who were sent a reminder,
	// kept sorted. Entries are never removed, even when a settled tab is
	// made active again.
	RemindedFriendIDs []string
}

// MarkReminded records that friendID was reminded. Calling it again is a no-op.
func (t *Tab) MarkReminded(friendID string) {
	if t.HasReminded(friendID) {
		return
	}
	t.RemindedFriendIDs = append(t.RemindedFriendIDs, friendID)
	t.NormalizeReminders()
}

// HasReminded reports whether friendID was reminded.
func (t Tab) HasReminded(friendID string) bool {
	return slices.Contains(t.RemindedFriendIDs, friendID)
}

// NormalizeReminders sorts RemindedFriendIDs and drops duplicates.
func (t *Tab) NormalizeReminders() {
	slices.Sort(t.RemindedFriendIDs)
	t.RemindedFriendIDs = slices.Compact(t.RemindedFriendIDs)
}

// RecalcTotal sets TotalAmount to the sum of every friend's OwesAmount.
func (t *Tab) RecalcTotal() {
	var total float64
	for _, f := range t.Friends {
		total += f.OwesAmount
	}
	t.TotalAmount = total
}

// Friend returns a pointer to the friend with the given ID.
func (t *Tab) Friend(id string) (*Friend, bool) {
	for i := range t.Friends {
		if t.Friends[i].ID == id {
			return &t.Friends[i], true
		}
	}
	return nil, false
}

// Validate checks that friend IDs are unique within the tab.
func (t Tab) Validate() error {
	seen := make(map[string]struct{}, len(t.Friends))
	for _, f := range t.Friends {
		if _, ok := seen[f.ID]; ok {
			return fmt.Errorf("%w: %s", ErrDuplicateFriend, f.ID)
		}
		seen[f.ID] = struct{}{}
	}
	return nil
}

// Clone returns a deep copy of the tab.
func (t Tab) Clone() Tab {
	c := t
	c.Friends = slices.Clone(t.Friends)
	c.RemindedFriendIDs = slices.Clone(t.RemindedFriendIDs)
	c.Visual = t.Visual.clone()
	if t.Location != nil {
		loc := *t.Location
		c.Location = &loc
	}
	return c
}

// tabJSON is the persisted shape of a Tab.
type tabJSON struct {
	ID                string    `json:"id"`
	RestaurantName    string    `json:"restaurantName"`
	Date              time.Time `json:"date"`
	TotalAmount       float64   `json:"totalAmount"`
	Friends           []Friend  `json:"friends"`
	ImageData         []byte    `json:"imageData,omitempty"`
	IconName          string    `json:"iconName,omitempty"`
	Location          *Location `json:"location,omitempty"`
	IsSettled         bool      `json:"isSettled"`
	RemindedFriendIDs []string  `json:"remindedFriendIDs"`
}

// MarshalJSON implements json.Marshaler.
func (t Tab) MarshalJSON() ([]byte, error) {
	out := tabJSON{
		ID:                t.ID,
		RestaurantName:    t.RestaurantName,
		Date:              t.Date,
		TotalAmount:       t.TotalAmount,
		Friends:           t.Friends,
		Location:          t.Location,
		IsSettled:         t.IsSettled,
		RemindedFriendIDs: t.RemindedFriendIDs,
	}
	if out.Friends == nil {
		out.Friends = []Friend{}
	}
	if out.RemindedFriendIDs == nil {
		out.RemindedFriendIDs = []string{}
	}
	if img, ok := t.Visual.Image(); ok {
		out.ImageData = img
	}
	if icon, ok := t.Visual.Icon(); ok {
		out.IconName = icon
	}
	return json.Marshal(out)
}

// UnmarshalJSON implements json.Unmarshaler. When both imageData and
// iconName are present the image wins.
func (t *Tab) UnmarshalJSON(data []byte) error {
	var in tabJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}

	visual := IconVisual(in.IconName)
	if len(in.ImageData) > 0 {
		visual = ImageVisual(in.ImageData)
	}

	*t = Tab{
		ID:                in.ID,
		RestaurantName:    in.RestaurantName,
		Date:              in.Date,
		TotalAmount:       in.TotalAmount,
		Friends:           in.Friends,
		Visual:            visual,
		Location:          in.Location,
		IsSettled:         in.IsSettled,
		RemindedFriendIDs: in.RemindedFriendIDs,
	}
	t.NormalizeReminders()
	return nil
}
