package production

import (
	"context"

	"github.com/erp/mes/internal/domain/shared"
	"github.com/google/uuid"
)

// OrderFilter narrows order listings
type OrderFilter struct {
	shared.Filter
	Status    *OrderStatus
	ProductID *uuid.UUID
	Search    string // order number prefix
}

// OrderRepository defines the interface for production order persistence
type OrderRepository interface {
	// FindByID finds an order by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)

	// FindByIDForUpdate finds an order and locks its row until the transaction ends
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*Order, error)

	// FindAll lists orders matching the filter, with the total count
	FindAll(ctx context.Context, filter OrderFilter) ([]Order, int64, error)

	// ExistsByOrderNumber checks if an order number is taken
	ExistsByOrderNumber(ctx context.Context, orderNumber string) (bool, error)

	// Create inserts a new order
	Create(ctx context.Context, order *Order) error

	// Save updates an order with optimistic locking; the stored version must be
	// order.Version-1, otherwise shared.ErrConcurrencyConflict is returned
	Save(ctx context.Context, order *Order) error
}

// RequirementRepository defines the interface for order material requirements
type RequirementRepository interface {
	// CreateBatch inserts requirements for a new order
	CreateBatch(ctx context.Context, requirements []Requirement) error

	// FindByOrder returns an order's requirements ordered by creation
	FindByOrder(ctx context.Context, orderID uuid.UUID) ([]Requirement, error)

	// FindByOrderForUpdate is FindByOrder with row locks
	FindByOrderForUpdate(ctx context.Context, orderID uuid.UUID) ([]Requirement, error)

	// FindByIDForUpdate finds a requirement and locks its row
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*Requirement, error)

	// Save updates issued quantity and status
	Save(ctx context.Context, requirement *Requirement) error
}

// IssueRepository persists issue details, substitutions and return details
type IssueRepository interface {
	// CreateDetails inserts issue details
	CreateDetails(ctx context.Context, details []IssueDetail) error

	// CreateSubstitutions inserts substitution records
	CreateSubstitutions(ctx context.Context, subs []Substitution) error

	// FindDetailByIDForUpdate finds an issue detail and locks its row
	FindDetailByIDForUpdate(ctx context.Context, id uuid.UUID) (*IssueDetail, error)

	// FindDetailsByOrder returns all issue details of an order
	FindDetailsByOrder(ctx context.Context, orderID uuid.UUID) ([]IssueDetail, error)

	// FindSubstitutionsByOrder returns all substitutions of an order
	FindSubstitutionsByOrder(ctx context.Context, orderID uuid.UUID) ([]Substitution, error)

	// SumReturnedByDetail sums prior returns against one issue detail
	SumReturnedByDetail(ctx context.Context, issueDetailID uuid.UUID) (ReturnedTotals, error)

	// SumReturnedByOrder sums returned actual quantity per issue detail of an order
	SumReturnedByOrder(ctx context.Context, orderID uuid.UUID) (map[uuid.UUID]ReturnedTotals, error)

	// CreateReturn inserts a return detail
	CreateReturn(ctx context.Context, ret *ReturnDetail) error

	// FindReturnsByOrder returns all return details of an order
	FindReturnsByOrder(ctx context.Context, orderID uuid.UUID) ([]ReturnDetail, error)
}

// ReceiptRepository persists production receipts
type ReceiptRepository interface {
	// Create inserts a receipt
	Create(ctx context.Context, receipt *Receipt) error

	// FindByOrder returns the receipts of an order
	FindByOrder(ctx context.Context, orderID uuid.UUID) ([]Receipt, error)
}
