// Package draft holds the scratch state of one in-progress outing.
//
// A Draft is filled in across the creation steps (location, date and photo,
// then friends, then payment) and consumed by the save step, which builds a
// Tab from it and calls Reset.
package draft

import (
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/tabsplit/internal/models"
)

// DefaultRestaurantName labels outings saved without a location name.
const DefaultRestaurantName = "Group Outing"

// Draft is the outing being created, before it becomes a Tab.
type Draft struct {
	LocationName string
	OutingDate   time.Time
	Visual       models.Visual
	Location     *models.Location
	Friends      []models.Friend

	now func() time.Time
}

// Option configures a Draft.
type Option func(*Draft)

// WithClock sets the function used for the default outing date.
func WithClock(now func() time.Time) Option {
	return func(d *Draft) { d.now = now }
}

// New returns a freshly reset Draft.
func New(opts ...Option) *Draft {
	d := &Draft{now: time.Now}
	for _, opt := range opts {
		opt(d)
	}
	d.Reset()
	return d
}

// Reset restores the defaults: no location, the current time, no picture,
// and a friend list holding only the user.
// Call it when a creation flow starts and after it is saved or cancelled.
func (d *Draft) Reset() {
	d.LocationName = ""
	d.OutingDate = d.now()
	d.Visual = models.NoVisual()
	d.Location = nil
	d.Friends = []models.Friend{models.NewSelfFriend()}
}

// SetImage selects a photo, clearing any icon.
func (d *Draft) SetImage(data []byte) {
	d.Visual = models.ImageVisual(data)
}

// SetIcon selects an icon, clearing any photo.
func (d *Draft) SetIcon(name string) {
	d.Visual = models.IconVisual(name)
}

// ClearVisual removes the photo or icon.
func (d *Draft) ClearVisual() {
	d.Visual = models.NoVisual()
}

// SetLocation records the coordinate reported by the location provider.
func (d *Draft) SetLocation(lat, lon float64) {
	d.Location = &models.Location{Latitude: lat, Longitude: lon}
}

// AddFriend appends a friend. Blank names are ignored; surrounding
// whitespace is trimmed from both fields.
func (d *Draft) AddFriend(name, contact string) (models.Friend, bool) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.Friend{}, false
	}
	f := models.NewFriend(name, strings.TrimSpace(contact))
	d.Friends = append(d.Friends, f)
	return f, true
}

// RemoveFriend drops the friend with the given ID.
func (d *Draft) RemoveFriend(id string) bool {
	i := slices.IndexFunc(d.Friends, func(f models.Friend) bool { return f.ID == id })
	if i < 0 {
		return false
	}
	d.Friends = slices.Delete(d.Friends, i, i+1)
	return true
}

// Friend returns the draft friend with the given ID.
func (d *Draft) Friend(id string) (models.Friend, bool) {
	for _, f := range d.Friends {
		if f.ID == id {
			return f, true
		}
	}
	return models.Friend{}, false
}

// RestaurantName is the label a saved Tab will get.
func (d *Draft) RestaurantName() string {
	if name := strings.TrimSpace(d.LocationName); name != "" {
		return name
	}
	return DefaultRestaurantName
}

// Build creates a new Tab from the draft with the given split friends and
// total. It refuses a non-positive total. The draft itself is left as is.
func (d *Draft) Build(total float64, friends []models.Friend) (models.Tab, bool) {
	if total <= 0 {
		return models.Tab{}, false
	}
	tab := models.Tab{
		ID:             uuid.New().String(),
		RestaurantName: d.RestaurantName(),
		Date:           d.OutingDate,
		TotalAmount:    total,
		Friends:        slices.Clone(friends),
		Visual:         d.Visual,
		Location:       d.Location,
	}
	return tab.Clone(), true
}
