package booking

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SchedulingService/pkg/psqlbuilder"
)

var bookingColumns = []string{
	"id",
	"shop_id",
	"service_id",
	"specialist_id",
	"customer_id",
	"booking_date",
	"start_time",
	"end_time",
	"status",
	"service_name",
	"duration_minutes",
	"buffer_before",
	"buffer_after",
	"actual_start",
	"actual_end",
	"rating",
	"notes",
	"cancellation_reason",
	"cancelled_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование
// Если в контексте передана активная транзакция, использует её —
// резервирование слота обязано выполняться внутри сериализуемой транзакции
// вместе с повторной проверкой конфликтов (см. usecase/reserve_booking).
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"shop_id",
			"service_id",
			"specialist_id",
			"customer_id",
			"booking_date",
			"start_time",
			"end_time",
			"status",
			"service_name",
			"duration_minutes",
			"buffer_before",
			"buffer_after",
			"notes",
		).
		Values(
			booking.ShopID,
			booking.ServiceID,
			booking.SpecialistID,
			booking.CustomerID,
			booking.BookingDate,
			booking.StartTime,
			booking.EndTime,
			booking.Status,
			booking.ServiceName,
			booking.DurationMinutes,
			booking.BufferBefore,
			booking.BufferAfter,
			booking.Notes,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return booking, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	bookings, err := r.scanBookings(rows)
	if err != nil {
		return nil, err
	}
	if len(bookings) == 0 {
		return nil, ErrBookingNotFound
	}

	return bookings[0], nil
}

// GetWithFilter получает бронирования с гибкой фильтрацией
// Поддерживает фильтрацию по мастеру, периоду, статусам, исключению одного
// бронирования (для reschedule-in-place проверок)
func (r *Repository) GetWithFilter(ctx context.Context, filter domain.SpecialistBookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"shop_id": filter.ShopID}).
		OrderBy("start_time ASC, id ASC")

	if filter.SpecialistID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"specialist_id": *filter.SpecialistID})
	}

	if filter.StartDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"booking_date": *filter.StartDate})
	}

	if filter.EndDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"booking_date": *filter.EndDate})
	}

	if filter.ActiveOnly {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": domain.ActiveStatuses})
	} else if len(filter.Statuses) > 0 {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": filter.Statuses})
	}

	if filter.ExcludeID != nil {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"id": *filter.ExcludeID})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// UpdateSpecialist переназначает бронирование на другого мастера
// Используется usecase оптимизации назначений
func (r *Repository) UpdateSpecialist(ctx context.Context, bookingID, specialistID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("specialist_id", specialistID).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": bookingID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateSpecialist - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateSpecialist - execute update: %v", ErrExecQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateSpecialist - rows affected: %v", ErrExecQuery, err)
	}
	if affected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// GetDayBookingCounts возвращает количество активных бронирований на дату
// по каждому мастеру магазина. Мастера без бронирований в результат не попадают.
func (r *Repository) GetDayBookingCounts(ctx context.Context, shopID int64, date time.Time) (map[int64]int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("specialist_id", "COUNT(*)").
		From("bookings").
		Where(squirrel.Eq{"shop_id": shopID}).
		Where(squirrel.Eq{"booking_date": date}).
		Where(squirrel.Eq{"status": domain.ActiveStatuses}).
		GroupBy("specialist_id").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetDayBookingCounts - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetDayBookingCounts - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	counts := make(map[int64]int)
	for rows.Next() {
		var specialistID int64
		var count int
		if err := rows.Scan(&specialistID, &count); err != nil {
			return nil, fmt.Errorf("%w: GetDayBookingCounts - scan row: %v", ErrScanRow, err)
		}
		counts[specialistID] = count
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetDayBookingCounts - iterate rows: %v", ErrScanRow, err)
	}

	return counts, nil
}

// GetWaitTimeAverages возвращает средний фактический сдвиг начала
// (actual_start - start_time, минуты) по завершённым бронированиям мастера
// на данную услугу начиная с since. Значения вне [0, 120) отбрасываются.
func (r *Repository) GetWaitTimeAverages(ctx context.Context, serviceID int64, specialistIDs []int64, since time.Time) (map[int64]float64, error) {
	if len(specialistIDs) == 0 {
		return map[int64]float64{}, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	waitExpr := "EXTRACT(EPOCH FROM (actual_start - start_time)) / 60"

	query, args, err := psqlbuilder.Select("specialist_id", fmt.Sprintf("AVG(%s)", waitExpr)).
		From("bookings").
		Where(squirrel.Eq{"service_id": serviceID}).
		Where(squirrel.Eq{"specialist_id": specialistIDs}).
		Where(squirrel.Eq{"status": domain.StatusCompleted}).
		Where(squirrel.GtOrEq{"booking_date": since}).
		Where(squirrel.NotEq{"actual_start": nil}).
		Where(squirrel.Expr(waitExpr + " >= ?", float64(domain.MinTrackedWaitMinutes))).
		Where(squirrel.Expr(waitExpr + " < ?", float64(domain.MaxTrackedWaitMinutes))).
		GroupBy("specialist_id").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetWaitTimeAverages - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetWaitTimeAverages - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	averages := make(map[int64]float64)
	for rows.Next() {
		var specialistID int64
		var avgWait float64
		if err := rows.Scan(&specialistID, &avgWait); err != nil {
			return nil, fmt.Errorf("%w: GetWaitTimeAverages - scan row: %v", ErrScanRow, err)
		}
		averages[specialistID] = avgWait
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetWaitTimeAverages - iterate rows: %v", ErrScanRow, err)
	}

	return averages, nil
}

// GetPerformanceStats возвращает агрегаты по завершённым бронированиям мастеров
// начиная с since: средний рейтинг, средняя ожидаемая и фактическая длительность.
func (r *Repository) GetPerformanceStats(ctx context.Context, specialistIDs []int64, since time.Time) (map[int64]PerformanceRow, error) {
	if len(specialistIDs) == 0 {
		return map[int64]PerformanceRow{}, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"specialist_id",
		"COALESCE(AVG(rating), 0)",
		"COALESCE(AVG(duration_minutes), 0)",
		"COALESCE(AVG(EXTRACT(EPOCH FROM (actual_end - actual_start)) / 60), 0)",
		"COUNT(*)",
	).
		From("bookings").
		Where(squirrel.Eq{"specialist_id": specialistIDs}).
		Where(squirrel.Eq{"status": domain.StatusCompleted}).
		Where(squirrel.GtOrEq{"booking_date": since}).
		Where(squirrel.NotEq{"actual_start": nil}).
		Where(squirrel.NotEq{"actual_end": nil}).
		GroupBy("specialist_id").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetPerformanceStats - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetPerformanceStats - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	stats := make(map[int64]PerformanceRow)
	for rows.Next() {
		var row PerformanceRow
		if err := rows.Scan(
			&row.SpecialistID,
			&row.AvgRating,
			&row.AvgExpectedMinutes,
			&row.AvgActualMinutes,
			&row.Samples,
		); err != nil {
			return nil, fmt.Errorf("%w: GetPerformanceStats - scan row: %v", ErrScanRow, err)
		}
		stats[row.SpecialistID] = row
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetPerformanceStats - iterate rows: %v", ErrScanRow, err)
	}

	return stats, nil
}

// scanBookings читает список бронирований из результата запроса
func (r *Repository) scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		var booking domain.Booking
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&booking.ID,
			&booking.ShopID,
			&booking.ServiceID,
			&booking.SpecialistID,
			&booking.CustomerID,
			&booking.BookingDate,
			&booking.StartTime,
			&booking.EndTime,
			&booking.Status,
			&booking.ServiceName,
			&booking.DurationMinutes,
			&booking.BufferBefore,
			&booking.BufferAfter,
			&booking.ActualStart,
			&booking.ActualEnd,
			&booking.Rating,
			&booking.Notes,
			&booking.CancellationReason,
			&booking.CancelledAt,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan booking: %v", ErrScanRow, err)
		}

		booking.CreatedAt = createdAt.Time
		booking.UpdatedAt = updatedAt.Time
		bookings = append(bookings, &booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - iterate rows: %v", ErrScanRow, err)
	}

	return bookings, nil
}
