package production

import (
	"time"

	"github.com/erp/mes/internal/domain/bom"
	"github.com/google/uuid"
)

// DeriveExpiry computes the finished-goods expiry from the lots consumed by an order.
// KITTING takes the earliest component expiry; CUTTING and REPACKING inherit the
// earliest source lot expiry unmodified; ASSEMBLY derives none.
// returned is keyed by issue detail id; details fully returned did not end up
// in the product and are ignored.
func DeriveExpiry(bomType bom.Type, details []IssueDetail, returned map[uuid.UUID]ReturnedTotals) *time.Time {
	switch bomType {
	case bom.TypeKitting, bom.TypeCutting, bom.TypeRepacking:
	default:
		return nil
	}

	var earliest *time.Time
	for i := range details {
		d := &details[i]
		if d.ExpiryDate == nil {
			continue
		}
		if ret, ok := returned[d.ID]; ok && ret.Actual.GreaterThanOrEqual(d.ActualQty) {
			continue
		}
		if earliest == nil || d.ExpiryDate.Before(*earliest) {
			exp := *d.ExpiryDate
			earliest = &exp
		}
	}
	return earliest
}
