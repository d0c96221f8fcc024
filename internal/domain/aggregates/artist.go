package aggregates

import (
	"context"

	"github.com/google/uuid"
)

var ArtistAggregateContract = Contract{
	Name:             "Catalog.ArtistAggregate",
	WriteTxOwnership: WriteTxOwnedByAggregate,
	ReadPolicy:       ReadPolicyInvariantScoped,
	Notes:            "Owns atomic artist scalar/genre/relationship consistency; relationship reference ordering is assigned here, never by callers.",
}

// ArtistAggregate owns artist write invariants.
//
// Write method failures return *aggregates.Error with codes CodeValidation,
// CodeNotFound, CodeConflict, CodeInvariantViolation, CodePreconditionFailed,
// CodeRetryable, CodeInternal.
type ArtistAggregate interface {
	Aggregate

	// Create persists the scalar row plus the full desired child state in one
	// transaction. A Nil ID is replaced with a generated one.
	Create(ctx context.Context, in ArtistUpsertInput) (CreateResult, error)

	// Update replaces scalar fields and every supplied child collection with
	// the given snapshots. RowsAffected 0 means no such artist.
	Update(ctx context.Context, in ArtistUpsertInput) (WriteResult, error)

	// Delete removes the artist; owned child rows go with it via storage-level
	// cascades.
	Delete(ctx context.Context, id uuid.UUID) (WriteResult, error)

	// ReassignRelationshipOrders bulk-renumbers one of the two relationship
	// sequences without touching the other.
	ReassignRelationshipOrders(ctx context.Context, in ReassignOrdersInput) (WriteResult, error)
}

type ArtistUpsertInput struct {
	ID             uuid.UUID // Nil on create requests a generated id
	Name           string
	SortName       string
	Disambiguation string
	Aliases        []string
	Ended          bool

	Genres        []GenreInput
	Relationships []RelationshipInput
}
