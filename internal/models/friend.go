package models

import "github.com/google/uuid"

// SelfName is the display name used for the user's own Friend record.
const SelfName = "You"

// Friend represents one participant in a Tab.
type Friend struct {
	// ID is the unique identifier for the friend (UUID format).
	// It is assigned once and never changes.
	ID string `json:"id"`

	// Name is the display name entered for the friend.
	Name string `json:"name"`

	// ContactInfo is an optional email or phone number.
	// It is only used when displaying reminder options.
	ContactInfo string `json:"contactInfo,omitempty"`

	// PaidAmount is what this friend actually put toward the bill.
	PaidAmount float64 `json:"paidAmount"`

	// OwesAmount is what this friend still owes.
	// It is written by the split calculator, never edited directly.
	OwesAmount float64 `json:"owesAmount"`

	// IsYou marks the user's own record. By convention exactly one friend
	// in a Tab has IsYou set; this is not enforced.
	IsYou bool `json:"isYou"`

	// CustomTip is the tip this friend added individually (custom split only).
	CustomTip float64 `json:"customTip"`
}

// NewFriend creates a friend with a fresh ID.
func NewFriend(name, contact string) Friend {
	return Friend{
		ID:          uuid.New().String(),
		Name:        name,
		ContactInfo: contact,
	}
}

// NewSelfFriend creates the user's own Friend record.
func NewSelfFriend() Friend {
	f := NewFriend(SelfName, "")
	f.IsYou = true
	return f
}

// DisplayName returns the name shown for the friend.
func (f Friend) DisplayName() string {
	if f.IsYou {
		return SelfName
	}
	return f.Name
}

// CanRemind reports whether a payment reminder makes sense for this friend.
func (f Friend) CanRemind() bool {
	return !f.IsYou && f.OwesAmount > 0
}
