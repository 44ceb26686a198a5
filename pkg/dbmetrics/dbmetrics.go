package dbmetrics

import (
	"context"
	"database/sql"
	"time"

	"github.com/m04kA/SMC-SchedulingService/pkg/metrics"
)

// Executor is the subset of database/sql operations repositories need.
// Both *sql.DB (possibly wrapped) and *sql.Tx satisfy it.
type Executor interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

type executorCtxKey struct{}

// WithExecutor stores a transaction-bound executor in the context.
// Transaction managers use it to make repositories transparently join
// an open transaction.
func WithExecutor(ctx context.Context, ex Executor) context.Context {
	return context.WithValue(ctx, executorCtxKey{}, ex)
}

// GetExecutor returns the executor carried in the context, falling back to
// the repository's own database handle when no transaction is open.
func GetExecutor(ctx context.Context, fallback Executor) Executor {
	if ex, ok := ctx.Value(executorCtxKey{}).(Executor); ok {
		return ex
	}
	return fallback
}

// DB wraps *sql.DB with query timing metrics.
type DB struct {
	db      *sql.DB
	metrics *metrics.Metrics
}

// Wrap wraps a database handle with metric collection.
func Wrap(db *sql.DB, m *metrics.Metrics) *DB {
	return &DB{db: db, metrics: m}
}

// WrapWithDefault wraps a database handle and starts a connection pool stats
// reporter that runs until stopCh is closed.
func WrapWithDefault(db *sql.DB, m *metrics.Metrics, serviceName string, stopCh <-chan struct{}) *DB {
	wrapped := Wrap(db, m)
	go wrapped.reportPoolStats(stopCh)
	return wrapped
}

func (d *DB) reportPoolStats(stopCh <-chan struct{}) {
	ticker := time.NewTicker(15 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			stats := d.db.Stats()
			d.metrics.DBConnectionsOpen.WithLabelValues("in_use").Set(float64(stats.InUse))
			d.metrics.DBConnectionsIdle.WithLabelValues("idle").Set(float64(stats.Idle))
		}
	}
}

// ExecContext implements Executor.
func (d *DB) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	start := time.Now()
	res, err := d.db.ExecContext(ctx, query, args...)
	d.metrics.ObserveDBQuery("exec", time.Since(start))
	return res, err
}

// QueryContext implements Executor.
func (d *DB) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	start := time.Now()
	rows, err := d.db.QueryContext(ctx, query, args...)
	d.metrics.ObserveDBQuery("query", time.Since(start))
	return rows, err
}

// QueryRowContext implements Executor.
func (d *DB) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	start := time.Now()
	row := d.db.QueryRowContext(ctx, query, args...)
	d.metrics.ObserveDBQuery("query_row", time.Since(start))
	return row
}

// BeginTx opens a transaction on the wrapped handle, so the wrapped DB can be
// used by the transaction manager directly.
func (d *DB) BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error) {
	return d.db.BeginTx(ctx, opts)
}
