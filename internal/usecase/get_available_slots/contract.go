package get_available_slots

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
}

// CatalogClient интерфейс клиента CatalogService
type CatalogClient interface {
	GetShop(ctx context.Context, shopID int64) (*catalogservice.Shop, error)
	GetService(ctx context.Context, shopID, serviceID int64) (*catalogservice.Service, error)
	GetSpecialists(ctx context.Context, shopID int64) ([]*catalogservice.Specialist, error)
}

// SlotCache read-through кеш рассчитанных слотов с ограниченным TTL.
// Сбои кеша не фатальны: usecase логирует их и продолжает без кеша.
type SlotCache interface {
	GetSlots(ctx context.Context, key string) ([]domain.TimeInterval, bool, error)
	SetSlots(ctx context.Context, key string, slots []domain.TimeInterval, ttl time.Duration) error
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
