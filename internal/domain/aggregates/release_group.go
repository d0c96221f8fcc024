package aggregates

import (
	"context"

	"github.com/google/uuid"
)

var ReleaseGroupAggregateContract = Contract{
	Name:             "Catalog.ReleaseGroupAggregate",
	WriteTxOwnership: WriteTxOwnedByAggregate,
	ReadPolicy:       ReadPolicyInvariantScoped,
	Notes:            "Owns atomic release-group scalar/artist-credit consistency.",
}

// ReleaseGroupAggregate owns release-group write invariants.
type ReleaseGroupAggregate interface {
	Aggregate

	Create(ctx context.Context, in ReleaseGroupUpsertInput) (CreateResult, error)
	Update(ctx context.Context, in ReleaseGroupUpsertInput) (WriteResult, error)
	Delete(ctx context.Context, id uuid.UUID) (WriteResult, error)
}

type ReleaseGroupUpsertInput struct {
	ID             uuid.UUID
	Title          string
	Disambiguation string
	PrimaryType    string

	Artists []ArtistCreditInput
}
