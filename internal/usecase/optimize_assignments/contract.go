package optimize_assignments

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	storage "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-SchedulingService/internal/integrations/catalogservice"
	"github.com/m04kA/SMC-SchedulingService/internal/service/scoring"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	// GetWithFilter получает бронирования по мастеру/периоду/статусам
	GetWithFilter(ctx context.Context, filter domain.SpecialistBookingsFilter) ([]*domain.Booking, error)

	// UpdateSpecialist переназначает бронирование другому мастеру
	UpdateSpecialist(ctx context.Context, bookingID, specialistID int64) error

	// GetWaitTimeAverages средний сдвиг фактического начала, минуты
	GetWaitTimeAverages(ctx context.Context, serviceID int64, specialistIDs []int64, since time.Time) (map[int64]float64, error)

	// GetPerformanceStats агрегаты по завершённым бронированиям
	GetPerformanceStats(ctx context.Context, specialistIDs []int64, since time.Time) (map[int64]storage.PerformanceRow, error)
}

// PreferenceRepository интерфейс репозитория предпочтений клиентов
type PreferenceRepository interface {
	GetByCustomerAndSpecialists(ctx context.Context, customerID int64, specialistIDs []int64) (map[int64]domain.CustomerPreference, error)
}

// CatalogClient интерфейс клиента CatalogService
type CatalogClient interface {
	GetService(ctx context.Context, shopID, serviceID int64) (*catalogservice.Service, error)
	GetSpecialistsWithGracefulDegradation(ctx context.Context, shopID int64) ([]*catalogservice.Specialist, error)
}

// Scorer интерфейс скоринга кандидатов
type Scorer interface {
	Score(candidates []scoring.Candidate, inputs scoring.Inputs) []scoring.Result
}

// SlotCache интерфейс инвалидации кеша слотов
type SlotCache interface {
	DeleteByPrefix(ctx context.Context, prefix string) error
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
