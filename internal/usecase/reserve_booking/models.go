package reserve_booking

import "time"

// Request модель запроса на резервирование слота
type Request struct {
	ShopID       int64     // ID магазина
	ServiceID    int64     // ID услуги
	SpecialistID int64     // ID мастера
	CustomerID   int64     // ID клиента
	StartTime    time.Time // Абсолютное время начала записи (без буферов)
	Notes        *string   // Дополнительные заметки (опционально)
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID              int64     // ID созданного бронирования
	ShopID          int64     // ID магазина
	ServiceID       int64     // ID услуги
	SpecialistID    int64     // ID мастера
	CustomerID      int64     // ID клиента
	BookingDate     time.Time // Дата бронирования
	StartTime       time.Time // Время начала записи
	EndTime         time.Time // Время окончания записи
	DurationMinutes int       // Длительность в минутах
	Status          string    // Статус бронирования

	// Денормализованные данные услуги
	ServiceName  string
	BufferBefore int
	BufferAfter  int

	Notes     *string
	CreatedAt time.Time
	UpdatedAt time.Time
}
