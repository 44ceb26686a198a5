package build_roster

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/integrations/catalogservice"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	// GetWithFilter получает бронирования по периоду для прогноза спроса
	GetWithFilter(ctx context.Context, filter domain.SpecialistBookingsFilter) ([]*domain.Booking, error)
}

// RosterRepository интерфейс репозитория расписаний смен
type RosterRepository interface {
	// Save записывает расписание; возвращает ErrRosterExists, если период
	// уже записан другим запуском (single-writer граница)
	Save(ctx context.Context, shopID int64, startDate time.Time, days int, assignments []domain.ShiftAssignment) (int64, error)
}

// CatalogClient интерфейс клиента CatalogService
type CatalogClient interface {
	GetShop(ctx context.Context, shopID int64) (*catalogservice.Shop, error)
	GetSpecialists(ctx context.Context, shopID int64) ([]*catalogservice.Specialist, error)
}

// TransactionManager интерфейс менеджера транзакций
type TransactionManager interface {
	// DoSerializable выполняет функцию в сериализуемой транзакции
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
