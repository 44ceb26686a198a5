package preference

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

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

// Repository репозиторий предпочтений клиентов по мастерам
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория предпочтений
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByCustomerAndSpecialists возвращает предпочтения клиента по набору мастеров.
// Мастера без записи в результат не попадают — для них скоринг использует
// нейтральное значение по умолчанию.
func (r *Repository) GetByCustomerAndSpecialists(ctx context.Context, customerID int64, specialistIDs []int64) (map[int64]domain.CustomerPreference, error) {
	if len(specialistIDs) == 0 {
		return map[int64]domain.CustomerPreference{}, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"customer_id",
		"specialist_id",
		"rating",
		"preferred",
		"disliked",
	).
		From("customer_specialist_preferences").
		Where(squirrel.Eq{"customer_id": customerID}).
		Where(squirrel.Eq{"specialist_id": specialistIDs}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByCustomerAndSpecialists - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByCustomerAndSpecialists - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	preferences := make(map[int64]domain.CustomerPreference)
	for rows.Next() {
		var pref domain.CustomerPreference
		if err := rows.Scan(
			&pref.CustomerID,
			&pref.SpecialistID,
			&pref.Rating,
			&pref.Preferred,
			&pref.Disliked,
		); err != nil {
			return nil, fmt.Errorf("%w: GetByCustomerAndSpecialists - scan row: %v", ErrScanRow, err)
		}
		preferences[pref.SpecialistID] = pref
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByCustomerAndSpecialists - iterate rows: %v", ErrScanRow, err)
	}

	return preferences, nil
}
