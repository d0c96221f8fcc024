package aggregates

import (
	"context"

	"github.com/google/uuid"
)

var ReleaseAggregateContract = Contract{
	Name:             "Catalog.ReleaseAggregate",
	WriteTxOwnership: WriteTxOwnedByAggregate,
	ReadPolicy:       ReadPolicyInvariantScoped,
	Notes:            "Owns atomic release scalar/credit/media/track/relationship consistency; media reconcile before tracks, tracks before track credits.",
}

// ReleaseAggregate owns release write invariants. It carries the widest child
// surface of the catalog: artist credits, genres, media, tracks, per-track
// credits and work relationships.
type ReleaseAggregate interface {
	Aggregate

	Create(ctx context.Context, in ReleaseUpsertInput) (CreateResult, error)
	Update(ctx context.Context, in ReleaseUpsertInput) (WriteResult, error)
	Delete(ctx context.Context, id uuid.UUID) (WriteResult, error)

	// ReassignWorkRelationshipOrders bulk-renumbers one sequence of the
	// release↔work relationships, typically driven from the work side.
	ReassignWorkRelationshipOrders(ctx context.Context, in ReassignOrdersInput) (WriteResult, error)
}

type ReleaseUpsertInput struct {
	ID             uuid.UUID
	ReleaseGroupID *uuid.UUID
	Title          string
	Disambiguation string
	Status         string
	Barcode        string

	Artists           []ArtistCreditInput
	Genres            []GenreInput
	Media             []MediumInput
	Tracks            []TrackInput
	TrackArtists      []TrackArtistInput
	WorkRelationships []RelationshipInput
}

// MediumInput: Position is both the natural key and the order within the
// release scope.
type MediumInput struct {
	Position int
	Format   string
	Title    string
}

// TrackInput lives in the composite (release, medium position) scope.
type TrackInput struct {
	MediumPosition int
	Position       int
	Title          string
	LengthMS       int
	WorkID         *uuid.UUID
}

// TrackArtistInput is addressed by (medium position, track position); its own
// Position orders credits within that track.
type TrackArtistInput struct {
	MediumPosition int
	TrackPosition  int
	ArtistID       uuid.UUID
	CreditedAs     string
	Position       int
}
