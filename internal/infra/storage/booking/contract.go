package booking

import (
	"context"
	"database/sql"
)

// DBExecutor интерфейс исполнителя запросов (база данных или транзакция)
type DBExecutor interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// PerformanceRow агрегат по завершённым бронированиям мастера
// Используется скорингом для оценки производительности
type PerformanceRow struct {
	SpecialistID       int64
	AvgRating          float64
	AvgExpectedMinutes float64
	AvgActualMinutes   float64
	Samples            int
}
