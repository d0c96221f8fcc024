package aggregates

import (
	"time"

	"github.com/google/uuid"
	"github.com/tonearc/catalog-backend/internal/observability"
	"github.com/tonearc/catalog-backend/internal/platform/dbctx"
	"gorm.io/gorm"
)

// CollectionSpec describes one ordered child collection of an aggregate for
// snapshot reconciliation. The desired slice passed to ReconcileCollection is
// the complete intended state for the parent scope; rows absent from it are
// deleted.
type CollectionSpec[T any] struct {
	// Table is the collection's table name, used in error messages and
	// touch refs.
	Table string

	// Scope narrows a query to the rows owned by the parent aggregate.
	Scope func(tx *gorm.DB) *gorm.DB

	// InScope reports whether a desired row belongs to the parent scope.
	// Rows outside the scope are ignored, never written.
	InScope func(row T) bool

	// Key returns the row's natural key within the scope.
	Key func(row T) string

	// OrderScope groups rows whose order values must be mutually unique.
	// Nil means the whole parent scope is one group.
	OrderScope func(row T) string

	// Position returns the row's order value. Specs whose order value is
	// part of the natural key still report it here so snapshot validation
	// covers it.
	Position func(row T) int

	// PositionColumn overrides the order column name. Defaults to
	// "position".
	PositionColumn string

	// RowID returns the surrogate id of a persisted row.
	RowID func(row T) uuid.UUID

	// Changed reports whether a matched row differs from its desired
	// counterpart. Implementations must compare the order value along with
	// every other mutable column.
	Changed func(existing, desired T) bool

	// UpdateValues returns the column assignments applied to a matched row
	// that Changed. The map must include updated_at set to now.
	UpdateValues func(desired T, now time.Time) map[string]any

	// PrepareInsert assigns the surrogate id and timestamps on a row about
	// to be inserted.
	PrepareInsert func(row *T, now time.Time)

	// Touches lists the root rows whose UpdatedAt must advance when this
	// row is inserted, updated, or deleted.
	Touches func(row T) []TouchRef
}

func (s CollectionSpec[T]) positionColumn() string {
	if s.PositionColumn == "" {
		return "position"
	}
	return s.PositionColumn
}

func (s CollectionSpec[T]) orderScopeOf(row T) string {
	if s.OrderScope == nil {
		return ""
	}
	return s.OrderScope(row)
}

// ReconcileCollection diffs the desired snapshot against the persisted rows
// in the spec's scope and applies the difference: matched rows are updated in
// place keeping their surrogate ids, absent rows are deleted, new rows are
// inserted. Returns the number of rows inserted, updated, or deleted.
//
// The snapshot is validated before the first write, so a duplicate natural
// key or order value aborts the transaction with the persisted state intact.
// Order values move in two phases, first into a disjoint negative range and
// then to their final values, so legitimate permutations never trip the
// per-scope unique order index mid-flight.
func ReconcileCollection[T any](dbc dbctx.Context, st *WriteState, spec CollectionSpec[T], desired []T) (int64, error) {
	db, err := txDB(dbc)
	if err != nil {
		return 0, err
	}

	rows := make([]T, 0, len(desired))
	for _, row := range desired {
		if spec.InScope != nil && !spec.InScope(row) {
			continue
		}
		rows = append(rows, row)
	}

	keys := make([]string, len(rows))
	byOrderScope := make(map[string][]int)
	for i, row := range rows {
		keys[i] = spec.Key(row)
		group := spec.orderScopeOf(row)
		byOrderScope[group] = append(byOrderScope[group], spec.Position(row))
	}
	if err := RequireUniqueKeys(spec.Table, keys); err != nil {
		return 0, err
	}
	for group, positions := range byOrderScope {
		if err := RequireUniquePositions(group, positions); err != nil {
			return 0, err
		}
	}

	var existing []T
	if err := spec.Scope(db).Find(&existing).Error; err != nil {
		return 0, err
	}
	existingByKey := make(map[string]T, len(existing))
	for _, row := range existing {
		existingByKey[spec.Key(row)] = row
	}

	posCol := spec.positionColumn()
	var affected int64

	// Phase one: park every moved row in the negative range. Desired order
	// values are unique per group, so the parked values are too.
	for i, row := range rows {
		ex, ok := existingByKey[keys[i]]
		if !ok {
			continue
		}
		newPos := spec.Position(row)
		if spec.Position(ex) == newPos {
			continue
		}
		res := db.Model(new(T)).
			Where("id = ?", spec.RowID(ex)).
			UpdateColumn(posCol, -newPos-1)
		if res.Error != nil {
			return affected, res.Error
		}
	}

	// Deletes next, so freed order values and natural keys are available to
	// the updates and inserts that follow.
	desiredKeys := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		desiredKeys[k] = struct{}{}
	}
	var orphanIDs []uuid.UUID
	for _, row := range existing {
		if _, keep := desiredKeys[spec.Key(row)]; keep {
			continue
		}
		orphanIDs = append(orphanIDs, spec.RowID(row))
		for _, ref := range spec.Touches(row) {
			st.Touch.Add(ref.Table, ref.ID)
		}
	}
	var deletedN, updatedN, insertedN int64
	if len(orphanIDs) > 0 {
		res := db.Where("id IN ?", orphanIDs).Delete(new(T))
		if res.Error != nil {
			return affected, res.Error
		}
		affected += res.RowsAffected
		deletedN = res.RowsAffected
	}

	// Phase two: final values for every matched row that changed.
	for i, row := range rows {
		ex, ok := existingByKey[keys[i]]
		if !ok {
			continue
		}
		if !spec.Changed(ex, row) {
			continue
		}
		res := db.Model(new(T)).
			Where("id = ?", spec.RowID(ex)).
			UpdateColumns(spec.UpdateValues(row, st.Now))
		if res.Error != nil {
			return affected, res.Error
		}
		affected += res.RowsAffected
		updatedN += res.RowsAffected
		for _, ref := range spec.Touches(row) {
			st.Touch.Add(ref.Table, ref.ID)
		}
	}

	var inserts []T
	for i := range rows {
		if _, ok := existingByKey[keys[i]]; ok {
			continue
		}
		spec.PrepareInsert(&rows[i], st.Now)
		inserts = append(inserts, rows[i])
		for _, ref := range spec.Touches(rows[i]) {
			st.Touch.Add(ref.Table, ref.ID)
		}
	}
	if len(inserts) > 0 {
		if err := db.Create(&inserts).Error; err != nil {
			return affected, err
		}
		affected += int64(len(inserts))
		insertedN = int64(len(inserts))
	}

	if m := observability.Current(); m != nil {
		m.AddReconcileRows(spec.Table, "delete", deletedN)
		m.AddReconcileRows(spec.Table, "update", updatedN)
		m.AddReconcileRows(spec.Table, "insert", insertedN)
	}

	return affected, nil
}
