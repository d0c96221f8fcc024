package aggregates

import (
	"context"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	domainagg "github.com/tonearc/catalog-backend/internal/domain/aggregates"
	"github.com/tonearc/catalog-backend/internal/platform/dbctx"
	"github.com/tonearc/catalog-backend/internal/platform/logger"
	"gorm.io/gorm"
)

var tracer = otel.Tracer("catalog-backend/data/aggregates")

type BaseDeps struct {
	DB     *gorm.DB
	Log    *logger.Logger
	Runner TxRunner
	Hooks  Hooks
}

func (d BaseDeps) withDefaults() BaseDeps {
	if d.Runner == nil {
		d.Runner = NewGormTxRunner(d.DB)
	}
	if d.Hooks == nil {
		d.Hooks = noopHooks{}
	}
	return d
}

// WriteState carries the per-transaction bookkeeping shared by every
// reconciler invoked during a single aggregate write: the transaction-wide
// instant, the set of parent rows whose UpdatedAt must advance, and the
// running rows-affected total.
type WriteState struct {
	Now   time.Time
	Touch *TouchSet
	rows  int64
}

func NewWriteState() *WriteState {
	return &WriteState{
		Now:   time.Now().UTC(),
		Touch: NewTouchSet(),
	}
}

func (s *WriteState) AddRows(n int64) {
	if s == nil {
		return
	}
	s.rows += n
}

func (s *WriteState) Rows() int64 {
	if s == nil {
		return 0
	}
	return s.rows
}

// executeWrite runs fn inside a single transaction, flushes the accumulated
// timestamp touches exactly once before commit, and maps any failure into the
// aggregate error taxonomy. st may be nil for operations that carry no
// reconciliation state.
func executeWrite(ctx context.Context, deps BaseDeps, op string, st *WriteState, fn func(dbc dbctx.Context) error) error {
	start := time.Now()
	deps = deps.withDefaults()
	op = strings.TrimSpace(op)
	if op == "" {
		op = "aggregate.write"
	}

	ctx, span := tracer.Start(ctx, op)
	defer span.End()

	err := deps.Runner.InTx(ctx, func(dbc dbctx.Context) error {
		if err := fn(dbc); err != nil {
			return err
		}
		if st != nil {
			if err := st.Touch.Flush(dbc, st.Now); err != nil {
				return err
			}
		}
		return nil
	})
	mapped := MapError(op, err)

	status := "success"
	if mapped != nil {
		status = aggregateErrorStatus(mapped)
		if domainagg.IsCode(mapped, domainagg.CodeConflict) {
			deps.Hooks.IncConflict(op)
		}
		if domainagg.IsCode(mapped, domainagg.CodeRetryable) {
			deps.Hooks.IncRetry(op)
		}
		span.RecordError(mapped)
	}
	span.SetAttributes(attribute.String("aggregate.status", status))
	deps.Hooks.ObserveOperation(op, status, time.Since(start))
	return mapped
}

func aggregateErrorStatus(err error) string {
	if err == nil {
		return "success"
	}
	code := strings.TrimSpace(string(domainagg.CodeOf(err)))
	if code == "" {
		code = strings.TrimSpace(string(domainagg.CodeOf(MapError("aggregate.status", err))))
	}
	if code == "" {
		return "failure"
	}
	return code
}
