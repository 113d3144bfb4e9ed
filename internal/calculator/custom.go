package calculator

import (
	"math"
	"slices"

	"github.com/mmynk/tabsplit/internal/models"
)

// FairShare is each person's equal portion of totalBill.
func FairShare(totalBill float64, n int) float64 {
	if n <= 0 {
		return 0
	}
	return totalBill / float64(n)
}

// Contributed is what a friend put in: paid amount plus their own tip.
func Contributed(f models.Friend) float64 {
	return nonNegative(f.PaidAmount) + nonNegative(f.CustomTip)
}

// Net is how far a friend's contribution is above (positive) or below
// (negative) their fair share.
func Net(f models.Friend, fairShare float64) float64 {
	return Contributed(f) - fairShare
}

// CustomSplit recomputes OwesAmount from each friend's paid amount and tip.
//
//	owes = max(fairShare - paid - tip, 0)
//
// Overpayment is not carried as credit in OwesAmount; use Net for display.
// Callers re-run it after every edit to a paid or tip field. It is pure and
// order independent, so repeated calls with the same inputs agree.
func CustomSplit(friends []models.Friend, totalBill float64) []models.Friend {
	out := slices.Clone(friends)
	fair := FairShare(totalBill, len(out))
	for i := range out {
		out[i].OwesAmount = math.Max(-Net(out[i], fair), 0)
	}
	return out
}

// CustomRow is one friend's line in a custom split summary.
type CustomRow struct {
	FriendID    string
	Name        string
	Contributed float64
	Net         float64
	Owes        float64
}

// CustomBreakdown summarizes a custom split for display.
type CustomBreakdown struct {
	FairShare   float64
	Rows        []CustomRow
	Contributed float64
	// Shortfall is totalBill minus everything contributed. Negative when
	// the group put in more than the bill.
	Shortfall float64
}

// CustomSummary builds the per-friend breakdown shown while editing a custom split.
func CustomSummary(friends []models.Friend, totalBill float64) CustomBreakdown {
	fair := FairShare(totalBill, len(friends))
	b := CustomBreakdown{
		FairShare: fair,
		Rows:      make([]CustomRow, 0, len(friends)),
	}
	for _, f := range friends {
		net := Net(f, fair)
		b.Rows = append(b.Rows, CustomRow{
			FriendID:    f.ID,
			Name:        f.DisplayName(),
			Contributed: Contributed(f),
			Net:         net,
			Owes:        math.Max(-net, 0),
		})
		b.Contributed += Contributed(f)
	}
	b.Shortfall = totalBill - b.Contributed
	return b
}

// SharedTax is a read-only preview where a separately entered tax is
// split equally on top of each friend's amount and tip.
//
// It never writes OwesAmount; owed amounts always come from CustomSplit.
type SharedTax struct {
	TaxPerPerson float64
	Subtotals    map[string]float64 // keyed by friend ID
	GrandTotal   float64
}

// SharedTaxBreakdown computes the shared-tax preview. Negative tax counts as 0.
func SharedTaxBreakdown(friends []models.Friend, sharedTax float64) SharedTax {
	st := SharedTax{
		TaxPerPerson: FairShare(nonNegative(sharedTax), len(friends)),
		Subtotals:    make(map[string]float64, len(friends)),
	}
	for _, f := range friends {
		sub := Contributed(f) + st.TaxPerPerson
		st.Subtotals[f.ID] = sub
		st.GrandTotal += sub
	}
	return st
}
