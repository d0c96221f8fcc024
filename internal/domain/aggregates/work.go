package aggregates

import (
	"context"

	"github.com/google/uuid"
)

var WorkAggregateContract = Contract{
	Name:             "Catalog.WorkAggregate",
	WriteTxOwnership: WriteTxOwnedByAggregate,
	ReadPolicy:       ReadPolicyInvariantScoped,
	Notes:            "Owns atomic work scalar/artist-role/genre consistency.",
}

// WorkAggregate owns work write invariants.
type WorkAggregate interface {
	Aggregate

	Create(ctx context.Context, in WorkUpsertInput) (CreateResult, error)
	Update(ctx context.Context, in WorkUpsertInput) (WriteResult, error)
	Delete(ctx context.Context, id uuid.UUID) (WriteResult, error)
}

type WorkUpsertInput struct {
	ID             uuid.UUID
	Title          string
	Disambiguation string
	LyricsLanguage string

	Artists []WorkArtistInput
	Genres  []GenreInput
}

// WorkArtistInput: Role participates in the natural key, so one artist can
// hold several roles on the same work.
type WorkArtistInput struct {
	ArtistID uuid.UUID
	Role     string
	Position int
}
