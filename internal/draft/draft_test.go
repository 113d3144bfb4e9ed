package draft

import (
	"testing"
	"time"

	"github.com/mmynk/tabsplit/internal/models"
)

var fixedNow = time.Date(2026, 1, 24, 19, 30, 0, 0, time.UTC)

func newTestDraft() *Draft {
	return New(WithClock(func() time.Time { return fixedNow }))
}

func TestNewDraftDefaults(t *testing.T) {
	d := newTestDraft()

	if d.LocationName != "" {
		t.Errorf("LocationName = %q, want empty", d.LocationName)
	}
	if !d.OutingDate.Equal(fixedNow) {
		t.Errorf("OutingDate = %v, want %v", d.OutingDate, fixedNow)
	}
	if !d.Visual.IsZero() {
		t.Errorf("Visual = %v, want none", d.Visual.Kind())
	}
	if len(d.Friends) != 1 || !d.Friends[0].IsYou || d.Friends[0].Name != "You" {
		t.Errorf("Friends = %+v, want only the self friend", d.Friends)
	}
}

func TestReset(t *testing.T) {
	d := newTestDraft()
	selfID := d.Friends[0].ID

	d.LocationName = "Nopa"
	d.OutingDate = fixedNow.Add(-48 * time.Hour)
	d.SetIcon("cup")
	d.SetLocation(37.77, -122.43)
	d.AddFriend("Sam", "")

	d.Reset()

	if d.LocationName != "" || !d.OutingDate.Equal(fixedNow) || !d.Visual.IsZero() || d.Location != nil {
		t.Errorf("Reset left state behind: %+v", d)
	}
	if len(d.Friends) != 1 || !d.Friends[0].IsYou {
		t.Fatalf("Friends = %+v, want only the self friend", d.Friends)
	}
	if d.Friends[0].ID == selfID {
		t.Error("expected a fresh self friend after Reset")
	}
}

func TestVisualExclusive(t *testing.T) {
	d := newTestDraft()

	d.SetImage([]byte{1, 2, 3})
	d.SetIcon("fork.knife")
	if _, ok := d.Visual.Image(); ok {
		t.Error("setting an icon should clear the image")
	}

	d.SetImage([]byte{1, 2, 3})
	if _, ok := d.Visual.Icon(); ok {
		t.Error("setting an image should clear the icon")
	}

	d.ClearVisual()
	if !d.Visual.IsZero() {
		t.Error("ClearVisual should leave nothing selected")
	}
}

func TestAddAndRemoveFriend(t *testing.T) {
	d := newTestDraft()

	sam, ok := d.AddFriend("  Sam ", " sam@example.com ")
	if !ok {
		t.Fatal("expected Sam to be added")
	}
	if sam.Name != "Sam" || sam.ContactInfo != "sam@example.com" {
		t.Errorf("added friend = %+v", sam)
	}

	if _, ok := d.AddFriend("   ", "x"); ok {
		t.Error("blank name should be ignored")
	}

	lee, _ := d.AddFriend("Lee", "")
	if lee.ContactInfo != "" {
		t.Errorf("ContactInfo = %q, want empty", lee.ContactInfo)
	}
	if len(d.Friends) != 3 {
		t.Fatalf("Friends = %d, want 3", len(d.Friends))
	}

	if !d.RemoveFriend(sam.ID) {
		t.Error("expected Sam to be removed")
	}
	if d.RemoveFriend(sam.ID) {
		t.Error("second removal should report false")
	}
	if _, ok := d.Friend(lee.ID); !ok {
		t.Error("Lee should still be in the draft")
	}
}

func TestBuild(t *testing.T) {
	d := newTestDraft()
	d.SetIcon("fork.knife")
	d.AddFriend("Sam", "")

	t.Run("default restaurant name", func(t *testing.T) {
		tab, ok := d.Build(40, d.Friends)
		if !ok {
			t.Fatal("expected Build to succeed")
		}
		if tab.RestaurantName != DefaultRestaurantName {
			t.Errorf("RestaurantName = %q, want %q", tab.RestaurantName, DefaultRestaurantName)
		}
		if tab.ID == "" || tab.TotalAmount != 40 || len(tab.Friends) != 2 {
			t.Errorf("tab = %+v", tab)
		}
		if icon, _ := tab.Visual.Icon(); icon != "fork.knife" {
			t.Errorf("icon = %q", icon)
		}
		if !tab.Date.Equal(fixedNow) {
			t.Errorf("Date = %v, want %v", tab.Date, fixedNow)
		}
	})

	t.Run("location name is used", func(t *testing.T) {
		d.LocationName = "  Nopa "
		tab, _ := d.Build(40, d.Friends)
		if tab.RestaurantName != "Nopa" {
			t.Errorf("RestaurantName = %q, want Nopa", tab.RestaurantName)
		}
	})

	t.Run("ids are unique per build", func(t *testing.T) {
		a, _ := d.Build(1, d.Friends)
		b, _ := d.Build(1, d.Friends)
		if a.ID == b.ID {
			t.Error("expected distinct tab ids")
		}
	})

	t.Run("non-positive total is refused", func(t *testing.T) {
		if _, ok := d.Build(0, d.Friends); ok {
			t.Error("Build(0) should fail")
		}
	})

	t.Run("built tab does not share friends with draft", func(t *testing.T) {
		tab, _ := d.Build(10, d.Friends)
		tab.Friends[0].Name = "Changed"
		if d.Friends[0].Name == "Changed" {
			t.Error("tab shares friend slice with draft")
		}
	})
}

func TestBuildKeepsSplitAmounts(t *testing.T) {
	d := newTestDraft()
	friends := []models.Friend{
		{ID: "you", IsYou: true},
		{ID: "sam", OwesAmount: 30},
	}
	tab, _ := d.Build(60, friends)
	if tab.Friends[1].OwesAmount != 30 {
		t.Errorf("OwesAmount = %v, want 30", tab.Friends[1].OwesAmount)
	}
}
