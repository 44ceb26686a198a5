package get_earliest_slot

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	getAvailableSlots "github.com/m04kA/SMC-SchedulingService/internal/usecase/get_available_slots"
)

const (
	msgInvalidShopID       = "некорректный ID магазина"
	msgInvalidServiceID    = "некорректный ID услуги"
	msgMissingServiceID    = "ID услуги обязателен"
	msgMissingStartDate    = "начальная дата обязательна"
	msgInvalidStartDate    = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidDays         = "некорректный горизонт поиска"
	msgInvalidSpecialistID = "некорректный ID мастера"
	msgShopNotFound        = "магазин не найден"
	msgServiceNotFound     = "услуга не найдена"
	msgSpecialistNotFound  = "мастер не найден"
	msgInvalidRequest      = "некорректные параметры запроса"
)

type Handler struct {
	useCase EarliestSlotUseCase
	logger  Logger
}

func NewHandler(useCase EarliestSlotUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/shops/{shopId}/earliest-slot
// Query params: serviceId (required), startDate (required, YYYY-MM-DD),
// days, specialistId (optional)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	shopID, err := strconv.ParseInt(vars["shopId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /shops/{id}/earliest-slot - Invalid shop ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidShopID)
		return
	}

	serviceIDStr := r.URL.Query().Get("serviceId")
	if serviceIDStr == "" {
		h.logger.Warn("GET /shops/{id}/earliest-slot - Missing service ID")
		handlers.RespondBadRequest(w, msgMissingServiceID)
		return
	}
	serviceID, err := strconv.ParseInt(serviceIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /shops/{id}/earliest-slot - Invalid service ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	startDateStr := r.URL.Query().Get("startDate")
	if startDateStr == "" {
		h.logger.Warn("GET /shops/{id}/earliest-slot - Missing start date")
		handlers.RespondBadRequest(w, msgMissingStartDate)
		return
	}

	days := defaultDaysToCheck
	if s := r.URL.Query().Get("days"); s != "" {
		days, err = strconv.Atoi(s)
		if err != nil {
			h.logger.Warn("GET /shops/{id}/earliest-slot - Invalid days: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDays)
			return
		}
	}

	var specialistID *int64
	if s := r.URL.Query().Get("specialistId"); s != "" {
		id, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			h.logger.Warn("GET /shops/{id}/earliest-slot - Invalid specialist ID: %v", err)
			handlers.RespondBadRequest(w, msgInvalidSpecialistID)
			return
		}
		specialistID = &id
	}

	useCaseReq, err := ToUseCaseRequest(shopID, serviceID, startDateStr, days, specialistID)
	if err != nil {
		h.logger.Warn("GET /shops/{id}/earliest-slot - Invalid start date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStartDate)
		return
	}

	result, err := h.useCase.EarliestSlot(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrShopNotFound):
			h.logger.Warn("GET /shops/{id}/earliest-slot - Shop not found: shop_id=%d", shopID)
			handlers.RespondNotFound(w, msgShopNotFound)

		case errors.Is(err, getAvailableSlots.ErrServiceNotFound):
			h.logger.Warn("GET /shops/{id}/earliest-slot - Service not found: shop_id=%d, service_id=%d", shopID, serviceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, getAvailableSlots.ErrSpecialistNotFound):
			h.logger.Warn("GET /shops/{id}/earliest-slot - Specialist not found: shop_id=%d", shopID)
			handlers.RespondNotFound(w, msgSpecialistNotFound)

		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /shops/{id}/earliest-slot - Invalid request: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequest)

		default:
			h.logger.Error("GET /shops/{id}/earliest-slot - Failed to find earliest slot: shop_id=%d, service_id=%d, error=%v",
				shopID, serviceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("GET /shops/{id}/earliest-slot - Search finished: shop_id=%d, service_id=%d, found=%v",
		shopID, serviceID, result.Found)
	handlers.RespondJSON(w, http.StatusOK, response)
}
