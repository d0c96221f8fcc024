package aggregates

import (
	"time"

	"github.com/google/uuid"
)

// CreateResult is the projection returned by every aggregate Create.
type CreateResult struct {
	ID        uuid.UUID
	CreatedAt time.Time
	UpdatedAt time.Time
}

// WriteResult carries the summed rows-affected count of an update or delete.
// Zero rows affected on Update/Delete means the aggregate did not exist; that
// is reported here, not as an error.
type WriteResult struct {
	RowsAffected int64
}

// GenreInput is one ordered genre association in a desired snapshot.
type GenreInput struct {
	GenreID  uuid.UUID
	Position int
}

// ArtistCreditInput is one ordered artist credit in a desired snapshot.
type ArtistCreditInput struct {
	ArtistID   uuid.UUID
	CreditedAs string
	Position   int
}

// RelationshipInput is one desired symmetric relationship as seen from the
// owning side. ReferencePosition is never supplied: existing rows keep theirs,
// new rows get the next free slot in the target's sequence.
type RelationshipInput struct {
	TargetID    uuid.UUID
	Name        string
	Description string
	Position    int
}

// OrderSequence selects which of the two relationship sequences an explicit
// reorder touches.
type OrderSequence string

const (
	SequencePosition          OrderSequence = "position"
	SequenceReferencePosition OrderSequence = "reference_position"
)

// RelationshipOrderInput addresses one persisted relationship row by its
// (owner, target) pair and supplies the new value for the selected sequence.
type RelationshipOrderInput struct {
	OwnerID  uuid.UUID
	TargetID uuid.UUID
	Value    int
}

// ReassignOrdersInput is a bulk explicit renumbering of one sequence. The
// batch is validated before any write: rows must exist and the supplied
// values must be duplicate-free per scope.
type ReassignOrdersInput struct {
	Sequence OrderSequence
	Rows     []RelationshipOrderInput
}
