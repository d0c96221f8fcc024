package aggregates

import "github.com/google/uuid"

// ResolveID replaces the nil-UUID placeholder with a freshly generated
// identifier. Callers build aggregate graphs before any id exists; every
// placeholder is resolved here, before the first row is written, so child
// rows always reference real keys.
func ResolveID(id uuid.UUID) uuid.UUID {
	if id == uuid.Nil {
		return uuid.New()
	}
	return id
}
