package aggregates

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	domainagg "github.com/tonearc/catalog-backend/internal/domain/aggregates"
	"gorm.io/gorm"
)

func TestMapErrorNil(t *testing.T) {
	if err := MapError("op", nil); err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
}

func TestMapErrorPassthrough(t *testing.T) {
	orig := domainagg.NewError(domainagg.CodeConflict, "op", "taken", nil)
	if got := MapError("other", orig); got != orig {
		t.Fatalf("aggregate error rewrapped: %v", got)
	}
}

func TestMapErrorTaggedErrors(t *testing.T) {
	cases := []struct {
		err  error
		code domainagg.ErrorCode
	}{
		{ValidationError("bad input"), domainagg.CodeValidation},
		{InvariantError("duplicate position"), domainagg.CodeInvariantViolation},
		{ConflictError("taken"), domainagg.CodeConflict},
		{RetryableError("later"), domainagg.CodeRetryable},
		{gorm.ErrRecordNotFound, domainagg.CodeNotFound},
		{context.Canceled, domainagg.CodeRetryable},
		{context.DeadlineExceeded, domainagg.CodeRetryable},
	}
	for _, tc := range cases {
		mapped := MapError("op", tc.err)
		if !domainagg.IsCode(mapped, tc.code) {
			t.Fatalf("expected code %s for %v, got %v", tc.code, tc.err, mapped)
		}
	}
}

func TestMapErrorPgCodes(t *testing.T) {
	cases := []struct {
		pg   string
		code domainagg.ErrorCode
	}{
		{"23505", domainagg.CodeConflict},
		{"23503", domainagg.CodePreconditionFailed},
		{"40001", domainagg.CodeRetryable},
		{"40P01", domainagg.CodeRetryable},
		{"55P03", domainagg.CodeRetryable},
	}
	for _, tc := range cases {
		mapped := MapError("op", &pgconn.PgError{Code: tc.pg})
		if !domainagg.IsCode(mapped, tc.code) {
			t.Fatalf("pg code %s: expected %s, got %v", tc.pg, tc.code, mapped)
		}
	}
}

func TestMapErrorMessageFallback(t *testing.T) {
	mapped := MapError("op", errors.New("UNIQUE constraint failed: duplicate key value"))
	if !domainagg.IsCode(mapped, domainagg.CodeConflict) {
		t.Fatalf("expected conflict from message fallback, got %v", mapped)
	}
	mapped = MapError("op", errors.New("deadlock detected"))
	if !domainagg.IsCode(mapped, domainagg.CodeRetryable) {
		t.Fatalf("expected retryable from message fallback, got %v", mapped)
	}
	mapped = MapError("op", errors.New("boom"))
	if !domainagg.IsCode(mapped, domainagg.CodeInternal) {
		t.Fatalf("expected internal fallback, got %v", mapped)
	}
}

func TestAggregateErrorStatus(t *testing.T) {
	if got := aggregateErrorStatus(nil); got != "success" {
		t.Fatalf("expected success, got %q", got)
	}
	if got := aggregateErrorStatus(MapError("op", ValidationError("bad"))); got != "validation" {
		t.Fatalf("expected validation, got %q", got)
	}
	if got := aggregateErrorStatus(errors.New("raw")); got != "internal" {
		t.Fatalf("expected internal, got %q", got)
	}
}
