package aggregates

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	domainagg "github.com/tonearc/catalog-backend/internal/domain/aggregates"
	"github.com/tonearc/catalog-backend/internal/platform/dbctx"
	"gorm.io/gorm"
)

// SymmetricSpec describes a relationship collection carrying two independent
// order sequences: the owner-scoped position reconciled from the snapshot,
// and the target-scoped reference position managed by the engine.
type SymmetricSpec[T any] struct {
	Collection CollectionSpec[T]

	// TargetColumn is the column holding the far-side key.
	TargetColumn string

	TargetID             func(row T) uuid.UUID
	ReferencePosition    func(row T) int
	SetReferencePosition func(row *T, pos int)
}

// ReconcileSymmetric reconciles a symmetric relationship collection for one
// owner scope. Matched rows keep their persisted reference position; new rows
// are appended to the far side's reference sequence at max+1, counting up
// within the batch when several new rows share a target.
func ReconcileSymmetric[T any](dbc dbctx.Context, st *WriteState, spec SymmetricSpec[T], desired []T) (int64, error) {
	db, err := txDB(dbc)
	if err != nil {
		return 0, err
	}

	var existing []T
	if err := spec.Collection.Scope(db).Find(&existing).Error; err != nil {
		return 0, err
	}
	existingByKey := make(map[string]T, len(existing))
	for _, row := range existing {
		existingByKey[spec.Collection.Key(row)] = row
	}

	nextRef := make(map[uuid.UUID]int)
	for i := range desired {
		if spec.Collection.InScope != nil && !spec.Collection.InScope(desired[i]) {
			continue
		}
		if ex, ok := existingByKey[spec.Collection.Key(desired[i])]; ok {
			spec.SetReferencePosition(&desired[i], spec.ReferencePosition(ex))
			continue
		}
		target := spec.TargetID(desired[i])
		next, ok := nextRef[target]
		if !ok {
			var maxRef int
			err := db.Model(new(T)).
				Select("COALESCE(MAX(reference_position), -1)").
				Where(spec.TargetColumn+" = ?", target).
				Scan(&maxRef).Error
			if err != nil {
				return 0, err
			}
			next = maxRef + 1
		}
		spec.SetReferencePosition(&desired[i], next)
		nextRef[target] = next + 1
	}

	return ReconcileCollection(dbc, st, spec.Collection, desired)
}

// ReassignSpec describes the keyed order updates a relationship table accepts
// outside full reconciliation.
type ReassignSpec[T any] struct {
	Table        string
	OwnerColumn  string
	TargetColumn string
	// OwnerTable and TargetTable name the root tables touched per row.
	OwnerTable  string
	TargetTable string

	RowID func(row T) uuid.UUID
}

// ReassignSequence applies one batch of order updates to a single sequence of
// a relationship table. Every (owner, target) pair must already exist; the
// batch is validated and rejected whole when a pair is missing or a value
// repeats within a scope. Values move through the negative range first so
// permutations within a scope never trip the unique order index.
func ReassignSequence[T any](dbc dbctx.Context, st *WriteState, spec ReassignSpec[T], in domainagg.ReassignOrdersInput) (int64, error) {
	db, err := txDB(dbc)
	if err != nil {
		return 0, err
	}
	if len(in.Rows) == 0 {
		return 0, ValidationError("reassign batch is empty")
	}

	var column string
	switch in.Sequence {
	case domainagg.SequencePosition:
		column = "position"
	case domainagg.SequenceReferencePosition:
		column = "reference_position"
	default:
		return 0, ValidationError(fmt.Sprintf("unknown order sequence %q", in.Sequence))
	}

	// Values must be unique within the sequence's scope: owner for the
	// position sequence, target for the reference sequence.
	byScope := make(map[uuid.UUID][]int)
	for _, row := range in.Rows {
		scope := row.OwnerID
		if in.Sequence == domainagg.SequenceReferencePosition {
			scope = row.TargetID
		}
		byScope[scope] = append(byScope[scope], row.Value)
	}
	for scope, values := range byScope {
		if err := RequireUniquePositions(scope.String(), values); err != nil {
			return 0, err
		}
	}

	ids := make([]uuid.UUID, len(in.Rows))
	for i, row := range in.Rows {
		var persisted T
		err := db.
			Where(spec.OwnerColumn+" = ? AND "+spec.TargetColumn+" = ?", row.OwnerID, row.TargetID).
			First(&persisted).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return 0, fmt.Errorf("%s relationship %s->%s: %w", spec.Table, row.OwnerID, row.TargetID, gorm.ErrRecordNotFound)
			}
			return 0, err
		}
		ids[i] = spec.RowID(persisted)
	}

	for i, row := range in.Rows {
		res := db.Model(new(T)).Where("id = ?", ids[i]).UpdateColumn(column, -row.Value-1)
		if res.Error != nil {
			return 0, res.Error
		}
	}

	var affected int64
	for i, row := range in.Rows {
		res := db.Model(new(T)).Where("id = ?", ids[i]).UpdateColumns(map[string]any{
			column:       row.Value,
			"updated_at": st.Now,
		})
		if res.Error != nil {
			return affected, res.Error
		}
		affected += res.RowsAffected
		st.Touch.Add(spec.OwnerTable, row.OwnerID)
		st.Touch.Add(spec.TargetTable, row.TargetID)
	}
	return affected, nil
}
