package calculator

import (
	"cmp"
	"slices"

	"github.com/mmynk/tabsplit/internal/models"
)

// FriendBalance is what one friend still owes across active tabs.
type FriendBalance struct {
	Name   string
	Owes   float64
	TabIDs []string // Tabs the friend still owes on
}

// Summary aggregates outstanding balances across tabs.
type Summary struct {
	// OwedToYou is the sum of everything non-self friends still owe.
	OwedToYou float64
	// YouOwe is what the user's own record still owes (custom splits only).
	YouOwe   float64
	Balances []FriendBalance
}

// Outstanding computes who still owes what across all active tabs.
//
// Friends are grouped by display name since IDs are per tab. Settled tabs are
// skipped. Balances are sorted by amount owed, largest first, then by name.
func Outstanding(tabs []models.Tab) Summary {
	var s Summary
	byName := make(map[string]*FriendBalance)

	for _, tab := range tabs {
		if tab.IsSettled {
			continue
		}
		for _, f := range tab.Friends {
			if f.OwesAmount <= 0 {
				continue
			}
			if f.IsYou {
				s.YouOwe += f.OwesAmount
				continue
			}

			s.OwedToYou += f.OwesAmount
			bal, exists := byName[f.Name]
			if !exists {
				bal = &FriendBalance{Name: f.Name}
				byName[f.Name] = bal
			}
			bal.Owes += f.OwesAmount
			bal.TabIDs = append(bal.TabIDs, tab.ID)
		}
	}

	for _, bal := range byName {
		s.Balances = append(s.Balances, *bal)
	}
	slices.SortFunc(s.Balances, func(a, b FriendBalance) int {
		if c := cmp.Compare(b.Owes, a.Owes); c != 0 {
			return c
		}
		return cmp.Compare(a.Name, b.Name)
	})

	return s
}
