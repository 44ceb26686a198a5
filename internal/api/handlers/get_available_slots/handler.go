package get_available_slots

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
	msgMissingDate         = "дата обязательна"
	msgInvalidDate         = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidSpecialistID = "некорректный ID мастера"
	msgInvalidDuration     = "некорректная длительность"
	msgInvalidGranularity  = "некорректная гранулярность"
	msgShopNotFound        = "магазин не найден"
	msgServiceNotFound     = "услуга не найдена"
	msgSpecialistNotFound  = "мастер не найден"
	msgInvalidRequest      = "некорректные параметры запроса"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/shops/{shopId}/available-slots
// Query params: serviceId (required), date (required, YYYY-MM-DD),
// specialistId, duration, granularity (optional)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	shopID, err := strconv.ParseInt(vars["shopId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /shops/{id}/available-slots - Invalid shop ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidShopID)
		return
	}

	serviceIDStr := r.URL.Query().Get("serviceId")
	if serviceIDStr == "" {
		h.logger.Warn("GET /shops/{id}/available-slots - Missing service ID")
		handlers.RespondBadRequest(w, msgMissingServiceID)
		return
	}
	serviceID, err := strconv.ParseInt(serviceIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /shops/{id}/available-slots - Invalid service ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /shops/{id}/available-slots - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	var specialistID *int64
	if s := r.URL.Query().Get("specialistId"); s != "" {
		id, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			h.logger.Warn("GET /shops/{id}/available-slots - Invalid specialist ID: %v", err)
			handlers.RespondBadRequest(w, msgInvalidSpecialistID)
			return
		}
		specialistID = &id
	}

	var duration *int
	if s := r.URL.Query().Get("duration"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil {
			h.logger.Warn("GET /shops/{id}/available-slots - Invalid duration: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDuration)
			return
		}
		duration = &v
	}

	var granularity *int
	if s := r.URL.Query().Get("granularity"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil {
			h.logger.Warn("GET /shops/{id}/available-slots - Invalid granularity: %v", err)
			handlers.RespondBadRequest(w, msgInvalidGranularity)
			return
		}
		granularity = &v
	}

	useCaseReq, err := ToUseCaseRequest(shopID, serviceID, dateStr, specialistID, duration, granularity)
	if err != nil {
		h.logger.Warn("GET /shops/{id}/available-slots - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrShopNotFound):
			h.logger.Warn("GET /shops/{id}/available-slots - Shop not found: shop_id=%d", shopID)
			handlers.RespondNotFound(w, msgShopNotFound)

		case errors.Is(err, getAvailableSlots.ErrServiceNotFound):
			h.logger.Warn("GET /shops/{id}/available-slots - Service not found: shop_id=%d, service_id=%d", shopID, serviceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, getAvailableSlots.ErrSpecialistNotFound):
			h.logger.Warn("GET /shops/{id}/available-slots - Specialist not found: shop_id=%d", shopID)
			handlers.RespondNotFound(w, msgSpecialistNotFound)

		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /shops/{id}/available-slots - Invalid request: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequest)

		default:
			h.logger.Error("GET /shops/{id}/available-slots - Failed to get slots: shop_id=%d, service_id=%d, error=%v",
				shopID, serviceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("GET /shops/{id}/available-slots - Slots retrieved: shop_id=%d, service_id=%d, slots_count=%d, from_cache=%v",
		shopID, serviceID, len(result.Slots), result.FromCache)
	handlers.RespondJSON(w, http.StatusOK, response)
}
