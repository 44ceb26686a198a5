package find_specialist

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	findSpecialist "github.com/m04kA/SMC-SchedulingService/internal/usecase/find_specialist"
)

const (
	msgInvalidShopID      = "некорректный ID магазина"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidStartTime   = "некорректный формат времени начала, ожидается RFC3339"
	msgShopNotFound       = "магазин не найден"
	msgServiceNotFound    = "услуга не найдена"
	msgInvalidRequest     = "некорректные параметры запроса"
)

type Handler struct {
	useCase FindSpecialistUseCase
	logger  Logger
}

func NewHandler(useCase FindSpecialistUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/shops/{shopId}/allocations/find
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	shopID, err := strconv.ParseInt(vars["shopId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /shops/{id}/allocations/find - Invalid shop ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidShopID)
		return
	}

	var req FindSpecialistRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /shops/{id}/allocations/find - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(shopID)
	if err != nil {
		h.logger.Warn("POST /shops/{id}/allocations/find - Invalid start time: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStartTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		// пустой список кандидатов — нормальный доменный исход, не ошибка
		case errors.Is(err, findSpecialist.ErrNoSpecialistAvailable):
			h.logger.Info("POST /shops/{id}/allocations/find - No specialist available: shop_id=%d, service_id=%d",
				shopID, req.ServiceID)
			handlers.RespondJSON(w, http.StatusOK, EmptyResponse())

		case errors.Is(err, findSpecialist.ErrShopNotFound):
			h.logger.Warn("POST /shops/{id}/allocations/find - Shop not found: shop_id=%d", shopID)
			handlers.RespondNotFound(w, msgShopNotFound)

		case errors.Is(err, findSpecialist.ErrServiceNotFound):
			h.logger.Warn("POST /shops/{id}/allocations/find - Service not found: shop_id=%d, service_id=%d",
				shopID, req.ServiceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, findSpecialist.ErrInvalidInput):
			h.logger.Warn("POST /shops/{id}/allocations/find - Invalid request: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequest)

		default:
			h.logger.Error("POST /shops/{id}/allocations/find - Failed to find specialist: shop_id=%d, service_id=%d, error=%v",
				shopID, req.ServiceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /shops/{id}/allocations/find - Specialist found: shop_id=%d, service_id=%d, best=%d, ranked=%d",
		shopID, req.ServiceID, result.Best.SpecialistID, len(result.Ranked))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
