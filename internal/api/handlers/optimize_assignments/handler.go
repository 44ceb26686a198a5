package optimize_assignments

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	optimizeAssignments "github.com/m04kA/SMC-SchedulingService/internal/usecase/optimize_assignments"
)

const (
	msgInvalidShopID      = "некорректный ID магазина"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgShopNotFound       = "магазин не найден"
	msgInvalidRequest     = "некорректные параметры запроса"
	msgCatalogDegraded    = "сервис каталога недоступен, повторите попытку позже"
)

type Handler struct {
	useCase OptimizeAssignmentsUseCase
	logger  Logger
}

func NewHandler(useCase OptimizeAssignmentsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/shops/{shopId}/allocations/optimize
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	shopID, err := strconv.ParseInt(vars["shopId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /shops/{id}/allocations/optimize - Invalid shop ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidShopID)
		return
	}

	var req OptimizeAssignmentsRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /shops/{id}/allocations/optimize - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(shopID)
	if err != nil {
		h.logger.Warn("POST /shops/{id}/allocations/optimize - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, optimizeAssignments.ErrShopNotFound):
			h.logger.Warn("POST /shops/{id}/allocations/optimize - Shop not found: shop_id=%d", shopID)
			handlers.RespondNotFound(w, msgShopNotFound)

		case errors.Is(err, optimizeAssignments.ErrInvalidInput):
			h.logger.Warn("POST /shops/{id}/allocations/optimize - Invalid request: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequest)

		case errors.Is(err, optimizeAssignments.ErrCatalogDegraded):
			h.logger.Warn("POST /shops/{id}/allocations/optimize - Catalog degraded: shop_id=%d", shopID)
			handlers.RespondError(w, http.StatusServiceUnavailable, msgCatalogDegraded)

		default:
			h.logger.Error("POST /shops/{id}/allocations/optimize - Failed to optimize: shop_id=%d, date=%s, error=%v",
				shopID, req.Date, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /shops/{id}/allocations/optimize - Optimized: shop_id=%d, date=%s, updated=%d",
		shopID, req.Date, result.UpdatedCount)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
