package roster

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SchedulingService/pkg/psqlbuilder"
)

// DBExecutor интерфейс исполнителя запросов (база данных или транзакция)
type DBExecutor interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// Repository репозиторий для сохранения построенных расписаний смен
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория расписаний
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Save записывает расписание смен для магазина начиная с startDate.
// Таблица rosters имеет уникальный индекс (shop_id, start_date): вставка
// заголовка через ON CONFLICT DO NOTHING гарантирует single-writer —
// если заголовок не вставился, другой запуск уже записал этот период.
// Вызывается внутри сериализуемой транзакции (см. usecase/build_roster).
func (r *Repository) Save(ctx context.Context, shopID int64, startDate time.Time, days int, assignments []domain.ShiftAssignment) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("rosters").
		Columns("shop_id", "start_date", "days").
		Values(shopID, startDate, days).
		Suffix("ON CONFLICT (shop_id, start_date) DO NOTHING RETURNING id").
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: Save - build header insert: %v", ErrBuildQuery, err)
	}

	var rosterID int64
	err = executor.QueryRowContext(ctx, query, args...).Scan(&rosterID)
	if err == sql.ErrNoRows {
		return 0, ErrRosterExists
	}
	if err != nil {
		return 0, fmt.Errorf("%w: Save - insert header: %v", ErrExecQuery, err)
	}

	if len(assignments) == 0 {
		return rosterID, nil
	}

	insertBuilder := psqlbuilder.Insert("roster_assignments").
		Columns("roster_id", "staff_id", "roster_date", "hours")

	for _, a := range assignments {
		insertBuilder = insertBuilder.Values(
			rosterID,
			a.StaffID,
			a.Date.Time(time.UTC),
			pq.Array(a.SortedHours()),
		)
	}

	query, args, err = insertBuilder.ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: Save - build assignments insert: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return 0, fmt.Errorf("%w: Save - insert assignments: %v", ErrExecQuery, err)
	}

	return rosterID, nil
}

// GetAssignments возвращает сохранённое расписание по заголовку
func (r *Repository) GetAssignments(ctx context.Context, rosterID int64) ([]domain.ShiftAssignment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("staff_id", "roster_date", "hours").
		From("roster_assignments").
		Where("roster_id = ?", rosterID).
		OrderBy("roster_date ASC, staff_id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetAssignments - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetAssignments - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	assignments := make([]domain.ShiftAssignment, 0)
	for rows.Next() {
		var staffID int64
		var rosterDate time.Time
		var hours pq.Int64Array

		if err := rows.Scan(&staffID, &rosterDate, &hours); err != nil {
			return nil, fmt.Errorf("%w: GetAssignments - scan row: %v", ErrScanRow, err)
		}

		hourInts := make([]int, len(hours))
		for i, h := range hours {
			hourInts[i] = int(h)
		}

		assignments = append(assignments, domain.ShiftAssignment{
			StaffID: staffID,
			Date:    domain.NewDateKey(rosterDate),
			Hours:   hourInts,
		})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetAssignments - iterate rows: %v", ErrScanRow, err)
	}

	return assignments, nil
}
