package get_available_slots

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// CacheKey строит ключ кеша рассчитанных слотов.
// Все параметры, влияющие на результат, входят в ключ: переопределения
// длительности и шага дают отдельные записи.
func CacheKey(shopID int64, date time.Time, serviceID int64, specialistID *int64, durationMinutes, granularityMinutes int) string {
	spec := "all"
	if specialistID != nil {
		spec = fmt.Sprintf("%d", *specialistID)
	}
	return fmt.Sprintf("slots:v1:%d:%s:%d:%s:%d:%d",
		shopID, date.Format(domain.DateFormat), serviceID, spec, durationMinutes, granularityMinutes)
}

// CacheKeyPrefix строит префикс инвалидации по магазину и дате.
// Новое бронирование меняет доступность всех услуг магазина на эту дату,
// поэтому инвалидация идёт по префиксу, а не по точному ключу.
func CacheKeyPrefix(shopID int64, date time.Time) string {
	return fmt.Sprintf("slots:v1:%d:%s:", shopID, date.Format(domain.DateFormat))
}
