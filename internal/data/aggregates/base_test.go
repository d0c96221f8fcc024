package aggregates

import (
	"context"
	"errors"
	"testing"
	"time"

	domainagg "github.com/tonearc/catalog-backend/internal/domain/aggregates"
	"github.com/tonearc/catalog-backend/internal/platform/dbctx"
)

type fakeRunner struct {
	beginErr  error
	commits   int
	rollbacks int
}

func (r *fakeRunner) InTx(ctx context.Context, fn func(dbc dbctx.Context) error) error {
	if r.beginErr != nil {
		return r.beginErr
	}
	if err := fn(dbctx.Context{Ctx: ctx}); err != nil {
		r.rollbacks++
		return err
	}
	r.commits++
	return nil
}

type fakeHooks struct {
	ops       []string
	statuses  []string
	conflicts []string
	retries   []string
}

func (h *fakeHooks) ObserveOperation(name, status string, dur time.Duration) {
	h.ops = append(h.ops, name)
	h.statuses = append(h.statuses, status)
}
func (h *fakeHooks) IncConflict(name string) { h.conflicts = append(h.conflicts, name) }
func (h *fakeHooks) IncRetry(name string)    { h.retries = append(h.retries, name) }

func TestExecuteWriteSuccess(t *testing.T) {
	runner := &fakeRunner{}
	hooks := &fakeHooks{}
	deps := BaseDeps{Runner: runner, Hooks: hooks}

	called := false
	err := executeWrite(context.Background(), deps, "Catalog.Test.Write", nil, func(dbc dbctx.Context) error {
		called = true
		return nil
	})
	if err != nil {
		t.Fatalf("executeWrite failed: %v", err)
	}
	if !called {
		t.Fatal("body not invoked")
	}
	if runner.commits != 1 || runner.rollbacks != 0 {
		t.Fatalf("unexpected tx counts: commits=%d rollbacks=%d", runner.commits, runner.rollbacks)
	}
	if len(hooks.statuses) != 1 || hooks.statuses[0] != "success" {
		t.Fatalf("unexpected hook statuses: %v", hooks.statuses)
	}
}

func TestExecuteWriteBodyFailureRollsBack(t *testing.T) {
	runner := &fakeRunner{}
	hooks := &fakeHooks{}
	deps := BaseDeps{Runner: runner, Hooks: hooks}

	err := executeWrite(context.Background(), deps, "Catalog.Test.Write", nil, func(dbc dbctx.Context) error {
		return ConflictError("order value taken")
	})
	if !domainagg.IsCode(err, domainagg.CodeConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
	if runner.rollbacks != 1 || runner.commits != 0 {
		t.Fatalf("unexpected tx counts: commits=%d rollbacks=%d", runner.commits, runner.rollbacks)
	}
	if len(hooks.conflicts) != 1 {
		t.Fatalf("conflict hook not fired: %v", hooks.conflicts)
	}
	if len(hooks.statuses) != 1 || hooks.statuses[0] != "conflict" {
		t.Fatalf("unexpected hook statuses: %v", hooks.statuses)
	}
}

func TestExecuteWriteRetryableHook(t *testing.T) {
	runner := &fakeRunner{beginErr: errors.New("deadlock detected")}
	hooks := &fakeHooks{}
	deps := BaseDeps{Runner: runner, Hooks: hooks}

	err := executeWrite(context.Background(), deps, "Catalog.Test.Write", nil, func(dbc dbctx.Context) error {
		return nil
	})
	if !domainagg.IsCode(err, domainagg.CodeRetryable) {
		t.Fatalf("expected retryable, got %v", err)
	}
	if len(hooks.retries) != 1 {
		t.Fatalf("retry hook not fired: %v", hooks.retries)
	}
}

func TestWriteStateRows(t *testing.T) {
	st := NewWriteState()
	st.AddRows(2)
	st.AddRows(3)
	if st.Rows() != 5 {
		t.Fatalf("expected 5 rows, got %d", st.Rows())
	}
	if st.Touch == nil || st.Touch.Len() != 0 {
		t.Fatal("expected empty touch set")
	}
	if st.Now.IsZero() {
		t.Fatal("write state instant not set")
	}
}
