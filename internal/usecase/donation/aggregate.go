package donation

import (
	donationDomain "github.com/zoraEmon/food-o-nation-sub001/internal/domain/donation"
)

// Aggregate folds item decisions into a donation-level verdict. It
// returns nil while any item is still PENDING; a premature verdict must
// never be persisted. Pure: identical status multisets yield the
// identical verdict regardless of decision order.
func Aggregate(items []donationDomain.DonationItem) *donationDomain.Verdict {
	if len(items) == 0 {
		return nil
	}

	var approved, rejected int
	for _, it := range items {
		switch it.Status {
		case donationDomain.ItemApproved:
			approved++
		case donationDomain.ItemRejected:
			rejected++
		default:
			return nil
		}
	}

	total := approved + rejected
	ratio := float64(approved) / float64(total)

	var v donationDomain.Verdict
	switch {
	case approved == total:
		v = donationDomain.VerdictCompletelyApproved
	case rejected == total:
		v = donationDomain.VerdictRejected
	case ratio >= 0.75:
		v = donationDomain.VerdictExtremelyApproved
	// an exact half split is not a majority: it falls through to MIXED
	case ratio > 0.50:
		v = donationDomain.VerdictFairlyApproved
	case approved > rejected:
		v = donationDomain.VerdictBarelyApproved
	default:
		v = donationDomain.VerdictMixed
	}
	return &v
}
