package aggregates

import (
	"context"

	"github.com/google/uuid"
)

var ProductAggregateContract = Contract{
	Name:             "Catalog.ProductAggregate",
	WriteTxOwnership: WriteTxOwnedByAggregate,
	ReadPolicy:       ReadPolicyInvariantScoped,
	Notes:            "Owns atomic product scalar/release-membership consistency.",
}

// ProductAggregate owns product write invariants.
type ProductAggregate interface {
	Aggregate

	Create(ctx context.Context, in ProductUpsertInput) (CreateResult, error)
	Update(ctx context.Context, in ProductUpsertInput) (WriteResult, error)
	Delete(ctx context.Context, id uuid.UUID) (WriteResult, error)
}

type ProductUpsertInput struct {
	ID          uuid.UUID
	Name        string
	Description string
	ProductCode string
	Attributes  map[string]any

	Releases []ProductReleaseInput
}

type ProductReleaseInput struct {
	ReleaseID uuid.UUID
	Position  int
}
