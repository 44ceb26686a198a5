package reserve_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	reserveBooking "github.com/m04kA/SMC-SchedulingService/internal/usecase/reserve_booking"
)

const (
	msgInvalidRequestBody     = "некорректное тело запроса"
	msgInvalidStartTime       = "некорректный формат времени начала, ожидается RFC3339"
	msgShopNotFound           = "магазин не найден"
	msgServiceNotFound        = "услуга не найдена"
	msgSpecialistNotFound     = "мастер не найден"
	msgSpecialistNotQualified = "мастер не оказывает эту услугу"
	msgSpecialistNotWorking   = "мастер не работает в выбранное время"
	msgInvalidDate            = "некорректная дата бронирования"
	msgSlotNotAvailable       = "выбранный временной слот недоступен"
	msgInvalidRequest         = "некорректные параметры запроса"
)

type Handler struct {
	useCase ReserveBookingUseCase
	logger  Logger
}

func NewHandler(useCase ReserveBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings/reserve
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req ReserveBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings/reserve - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /bookings/reserve - Invalid start time: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStartTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, reserveBooking.ErrSlotNotAvailable):
			h.logger.Warn("POST /bookings/reserve - Slot not available: customer_id=%d, shop_id=%d, specialist_id=%d",
				req.CustomerID, req.ShopID, req.SpecialistID)
			handlers.RespondConflict(w, msgSlotNotAvailable)

		case errors.Is(err, reserveBooking.ErrShopNotFound):
			h.logger.Warn("POST /bookings/reserve - Shop not found: shop_id=%d", req.ShopID)
			handlers.RespondNotFound(w, msgShopNotFound)

		case errors.Is(err, reserveBooking.ErrServiceNotFound):
			h.logger.Warn("POST /bookings/reserve - Service not found: shop_id=%d, service_id=%d",
				req.ShopID, req.ServiceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, reserveBooking.ErrSpecialistNotFound):
			h.logger.Warn("POST /bookings/reserve - Specialist not found: shop_id=%d, specialist_id=%d",
				req.ShopID, req.SpecialistID)
			handlers.RespondNotFound(w, msgSpecialistNotFound)

		case errors.Is(err, reserveBooking.ErrSpecialistNotQualified):
			h.logger.Warn("POST /bookings/reserve - Specialist not qualified: specialist_id=%d, service_id=%d",
				req.SpecialistID, req.ServiceID)
			handlers.RespondBadRequest(w, msgSpecialistNotQualified)

		case errors.Is(err, reserveBooking.ErrSpecialistNotWorking):
			h.logger.Warn("POST /bookings/reserve - Specialist not working: specialist_id=%d", req.SpecialistID)
			handlers.RespondBadRequest(w, msgSpecialistNotWorking)

		case errors.Is(err, reserveBooking.ErrInvalidDate):
			h.logger.Warn("POST /bookings/reserve - Invalid booking date: customer_id=%d", req.CustomerID)
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, reserveBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings/reserve - Invalid request: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequest)

		default:
			h.logger.Error("POST /bookings/reserve - Failed to reserve: customer_id=%d, shop_id=%d, error=%v",
				req.CustomerID, req.ShopID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/reserve - Booking reserved: booking_id=%d, customer_id=%d, shop_id=%d, specialist_id=%d",
		result.ID, req.CustomerID, req.ShopID, req.SpecialistID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
