package reserve_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/integrations/catalogservice"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	// GetWithFilter получает бронирования по мастеру/периоду/статусам
	GetWithFilter(ctx context.Context, filter domain.SpecialistBookingsFilter) ([]*domain.Booking, error)

	// Create создает новое бронирование
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
}

// CatalogClient интерфейс клиента CatalogService
type CatalogClient interface {
	GetService(ctx context.Context, shopID, serviceID int64) (*catalogservice.Service, error)
	GetSpecialist(ctx context.Context, shopID, specialistID int64) (*catalogservice.Specialist, error)
}

// SlotCache интерфейс инвалидации кеша слотов
type SlotCache interface {
	DeleteByPrefix(ctx context.Context, prefix string) error
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
