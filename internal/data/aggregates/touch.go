package aggregates

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/tonearc/catalog-backend/internal/platform/dbctx"
)

// TouchRef identifies one root row whose UpdatedAt must advance because a
// child row under it was inserted, updated, or deleted in this transaction.
type TouchRef struct {
	Table string
	ID    uuid.UUID
}

// TouchSet accumulates touch refs during a write and flushes them once, with
// a single transaction-wide instant, before commit. Duplicate refs collapse
// so a root touched by several reconcilers still gets exactly one update.
type TouchSet struct {
	refs map[TouchRef]struct{}
}

func NewTouchSet() *TouchSet {
	return &TouchSet{refs: make(map[TouchRef]struct{})}
}

func (t *TouchSet) Add(table string, id uuid.UUID) {
	if t == nil || table == "" || id == uuid.Nil {
		return
	}
	t.refs[TouchRef{Table: table, ID: id}] = struct{}{}
}

func (t *TouchSet) Len() int {
	if t == nil {
		return 0
	}
	return len(t.refs)
}

// Flush writes UpdatedAt for every accumulated ref, one statement per table.
// Tables and ids are processed in sorted order so concurrent writers take row
// locks in a stable order. Uses a column-level update so model hooks and
// auto-timestamps stay out of the way.
func (t *TouchSet) Flush(dbc dbctx.Context, at time.Time) error {
	if t == nil || len(t.refs) == 0 {
		return nil
	}
	db, err := txDB(dbc)
	if err != nil {
		return err
	}

	byTable := make(map[string][]uuid.UUID)
	for ref := range t.refs {
		byTable[ref.Table] = append(byTable[ref.Table], ref.ID)
	}
	tables := make([]string, 0, len(byTable))
	for table := range byTable {
		tables = append(tables, table)
	}
	sort.Strings(tables)

	for _, table := range tables {
		ids := byTable[table]
		sort.Slice(ids, func(i, j int) bool { return ids[i].String() < ids[j].String() })
		res := db.Table(table).Where("id IN ?", ids).UpdateColumn("updated_at", at)
		if res.Error != nil {
			return res.Error
		}
	}
	return nil
}
