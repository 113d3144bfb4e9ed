package tabs

import (
	"slices"
	"time"

	"github.com/mmynk/tabsplit/internal/models"
)

// MonthGroup is one monthly folder of tabs.
type MonthGroup struct {
	// Month is midnight on the first day of the month, in the tabs' location.
	Month time.Time
	Tabs  []models.Tab
}

// Label formats the month the way folders are titled, e.g. "January 2026".
func (g MonthGroup) Label() string {
	return g.Month.Format("January 2006")
}

// ByMonth groups active (settled=false) or settled tabs by the month of
// their date. Groups are ordered newest month first; tabs within a group
// keep store order.
func (s *Store) ByMonth(settled bool) []MonthGroup {
	var tabs []models.Tab
	if settled {
		tabs = s.Settled()
	} else {
		tabs = s.Active()
	}
	return GroupByMonth(tabs)
}

// GroupByMonth buckets tabs by calendar month.
func GroupByMonth(tabs []models.Tab) []MonthGroup {
	index := make(map[time.Time]int)
	var groups []MonthGroup

	for _, t := range tabs {
		y, m, _ := t.Date.Date()
		month := time.Date(y, m, 1, 0, 0, 0, 0, t.Date.Location())
		key := month.UTC()

		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, MonthGroup{Month: month})
		}
		groups[i].Tabs = append(groups[i].Tabs, t)
	}

	slices.SortStableFunc(groups, func(a, b MonthGroup) int {
		return b.Month.Compare(a.Month)
	})
	return groups
}
