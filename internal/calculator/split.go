package calculator

import (
	"slices"

	"github.com/mmynk/tabsplit/internal/models"
)

// EqualSplit divides total evenly among friends and returns the updated list.
// The payer (if payerID matches a friend) owes nothing; everyone else owes
// total / len(friends). No rounding or remainder redistribution is applied.
//
// When total <= 0 or friends is empty the input is returned unchanged
// (as a copy), so an incomplete form never wipes previously computed amounts.
func EqualSplit(friends []models.Friend, total float64, payerID string) []models.Friend {
	out := slices.Clone(friends)
	if total <= 0 || len(out) == 0 {
		return out
	}

	share := total / float64(len(out))
	for i := range out {
		if payerID != "" && out[i].ID == payerID {
			out[i].OwesAmount = 0
			continue
		}
		out[i].OwesAmount = share
	}
	return out
}
