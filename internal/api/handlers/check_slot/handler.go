package check_slot

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	getAvailableSlots "github.com/m04kA/SMC-SchedulingService/internal/usecase/get_available_slots"
)

const (
	msgInvalidShopID       = "некорректный ID магазина"
	msgInvalidServiceID    = "некорректный ID услуги"
	msgMissingServiceID    = "ID услуги обязателен"
	msgMissingStart        = "время начала обязательно"
	msgInvalidStart        = "некорректный формат времени начала, ожидается RFC3339"
	msgInvalidSpecialistID = "некорректный ID мастера"
	msgShopNotFound        = "магазин не найден"
	msgServiceNotFound     = "услуга не найдена"
	msgSpecialistNotFound  = "мастер не найден"
	msgInvalidRequest      = "некорректные параметры запроса"
)

// SlotCheckResponse HTTP response model
type SlotCheckResponse struct {
	Available bool   `json:"available"`
	StartTime string `json:"startTime"`
}

type Handler struct {
	useCase CheckSlotUseCase
	logger  Logger
}

func NewHandler(useCase CheckSlotUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/shops/{shopId}/slot-check
// Query params: serviceId (required), start (required, RFC3339),
// specialistId (optional)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	shopID, err := strconv.ParseInt(vars["shopId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /shops/{id}/slot-check - Invalid shop ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidShopID)
		return
	}

	serviceIDStr := r.URL.Query().Get("serviceId")
	if serviceIDStr == "" {
		h.logger.Warn("GET /shops/{id}/slot-check - Missing service ID")
		handlers.RespondBadRequest(w, msgMissingServiceID)
		return
	}
	serviceID, err := strconv.ParseInt(serviceIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /shops/{id}/slot-check - Invalid service ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	startStr := r.URL.Query().Get("start")
	if startStr == "" {
		h.logger.Warn("GET /shops/{id}/slot-check - Missing start time")
		handlers.RespondBadRequest(w, msgMissingStart)
		return
	}
	start, err := time.Parse(time.RFC3339, startStr)
	if err != nil {
		h.logger.Warn("GET /shops/{id}/slot-check - Invalid start time: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStart)
		return
	}

	var specialistID *int64
	if s := r.URL.Query().Get("specialistId"); s != "" {
		id, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			h.logger.Warn("GET /shops/{id}/slot-check - Invalid specialist ID: %v", err)
			handlers.RespondBadRequest(w, msgInvalidSpecialistID)
			return
		}
		specialistID = &id
	}

	useCaseReq := &getAvailableSlots.Request{
		ShopID:       shopID,
		ServiceID:    serviceID,
		Date:         time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, start.Location()),
		SpecialistID: specialistID,
	}

	available, err := h.useCase.IsSlotAvailable(r.Context(), useCaseReq, start)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrShopNotFound):
			h.logger.Warn("GET /shops/{id}/slot-check - Shop not found: shop_id=%d", shopID)
			handlers.RespondNotFound(w, msgShopNotFound)

		case errors.Is(err, getAvailableSlots.ErrServiceNotFound):
			h.logger.Warn("GET /shops/{id}/slot-check - Service not found: shop_id=%d, service_id=%d", shopID, serviceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, getAvailableSlots.ErrSpecialistNotFound):
			h.logger.Warn("GET /shops/{id}/slot-check - Specialist not found: shop_id=%d", shopID)
			handlers.RespondNotFound(w, msgSpecialistNotFound)

		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /shops/{id}/slot-check - Invalid request: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequest)

		default:
			h.logger.Error("GET /shops/{id}/slot-check - Failed to check slot: shop_id=%d, service_id=%d, error=%v",
				shopID, serviceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /shops/{id}/slot-check - Slot checked: shop_id=%d, service_id=%d, available=%v",
		shopID, serviceID, available)
	handlers.RespondJSON(w, http.StatusOK, SlotCheckResponse{
		Available: available,
		StartTime: start.Format(time.RFC3339),
	})
}
