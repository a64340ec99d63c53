package inventory

import (
	"sort"
)

// FEFOLess orders lots First-Expired-First-Out: earliest expiry first, lots
// without expiry last, then oldest lot first (FIFO), then by id for a stable total order.
func FEFOLess(a, b *LedgerEntry) bool {
	switch {
	case a.ExpiryDate != nil && b.ExpiryDate == nil:
		return true
	case a.ExpiryDate == nil && b.ExpiryDate != nil:
		return false
	case a.ExpiryDate != nil && b.ExpiryDate != nil && !a.ExpiryDate.Equal(*b.ExpiryDate):
		return a.ExpiryDate.Before(*b.ExpiryDate)
	}
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.Before(b.CreatedAt)
	}
	return a.ID.String() < b.ID.String()
}

// SortFEFO sorts lots in place in FEFO order
func SortFEFO(lots []LedgerEntry) {
	sort.SliceStable(lots, func(i, j int) bool {
		return FEFOLess(&lots[i], &lots[j])
	})
}

// FilterAvailable returns the lots with a positive remaining balance, preserving order
func FilterAvailable(lots []LedgerEntry) []LedgerEntry {
	available := make([]LedgerEntry, 0, len(lots))
	for _, lot := range lots {
		if lot.HasRemaining() {
			available = append(available, lot)
		}
	}
	return available
}
