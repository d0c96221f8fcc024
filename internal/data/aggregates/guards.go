package aggregates

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/tonearc/catalog-backend/internal/platform/dbctx"
	"gorm.io/gorm"
)

// txDB returns the transactional handle for a reconciler step. Reconcilers
// never run outside a transaction, so a missing Tx is a programming error
// surfaced as validation failure rather than a silent autocommit.
func txDB(dbc dbctx.Context) (*gorm.DB, error) {
	if dbc.Tx == nil {
		return nil, ValidationError("missing db transaction context")
	}
	return dbc.Tx.WithContext(dbc.Ctx), nil
}

// RequireUniquePositions rejects a desired set that carries the same order
// value twice within one order scope. Checked before any row is written so a
// bad snapshot aborts the transaction untouched.
func RequireUniquePositions(scope string, positions []int) error {
	seen := make(map[int]struct{}, len(positions))
	for _, p := range positions {
		if _, dup := seen[p]; dup {
			if strings.TrimSpace(scope) == "" {
				return InvariantError(fmt.Sprintf("duplicate position %d in desired set", p))
			}
			return InvariantError(fmt.Sprintf("duplicate position %d in desired set for scope %s", p, scope))
		}
		seen[p] = struct{}{}
	}
	return nil
}

// RequireUniqueKeys rejects a desired set that names the same natural key
// twice within one parent scope.
func RequireUniqueKeys(table string, keys []string) error {
	seen := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		if _, dup := seen[k]; dup {
			return ValidationError(fmt.Sprintf("duplicate %s row %q in desired set", table, k))
		}
		seen[k] = struct{}{}
	}
	return nil
}

// RequireID validates that a caller-supplied identifier is present.
func RequireID(id uuid.UUID, what string) error {
	if id == uuid.Nil {
		return ValidationError(strings.TrimSpace(what) + " id is required")
	}
	return nil
}

// RequireText validates that a required text field is non-blank.
func RequireText(value, what string) error {
	if strings.TrimSpace(value) == "" {
		return ValidationError(strings.TrimSpace(what) + " is required")
	}
	return nil
}
