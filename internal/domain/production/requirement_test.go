package production

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeriveRequirementStatus(t *testing.T) {
	tests := []struct {
		issued, required string
		want             RequirementStatus
	}{
		{"0", "10", RequirementStatusPending},
		{"0.0001", "10", RequirementStatusPartial},
		{"9.9999", "10", RequirementStatusPartial},
		{"10", "10", RequirementStatusIssued},
		{"12", "10", RequirementStatusIssued},
	}
	for _, tt := range tests {
		t.Run(tt.issued+"/"+tt.required, func(t *testing.T) {
			assert.Equal(t, tt.want, DeriveRequirementStatus(d(tt.issued), d(tt.required)))
		})
	}
}

func TestRequirement_IssueAndReturn(t *testing.T) {
	req := newTestRequirement("10")
	assertDecEqual(t, "10", req.Remaining())

	req.ApplyIssue(d("4"))
	assert.Equal(t, RequirementStatusPartial, req.Status)
	assertDecEqual(t, "6", req.Remaining())

	req.ApplyIssue(d("7"))
	assert.Equal(t, RequirementStatusIssued, req.Status)
	assertDecEqual(t, "0", req.Remaining())

	req.ApplyReturn(d("2"))
	assert.Equal(t, RequirementStatusPartial, req.Status)
	assertDecEqual(t, "9", req.IssuedQty)

	req.ApplyReturn(d("100"))
	assert.Equal(t, RequirementStatusPending, req.Status)
	assertDecEqual(t, "0", req.IssuedQty, "issued quantity is floored at zero")
}

func TestRequirement_StatusDependsOnlyOnNetIssued(t *testing.T) {
	a := newTestRequirement("10")
	a.ApplyIssue(d("8"))
	a.ApplyReturn(d("3"))

	b := newTestRequirement("10")
	b.ApplyIssue(d("2"))
	b.ApplyIssue(d("3"))

	assert.True(t, a.IssuedQty.Equal(b.IssuedQty))
	assert.Equal(t, a.Status, b.Status)
}
