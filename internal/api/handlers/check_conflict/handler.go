package check_conflict

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	checkConflict "github.com/m04kA/SMC-SchedulingService/internal/usecase/check_conflict"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidTimes       = "некорректный формат времени, ожидается RFC3339"
	msgInvalidRequest     = "некорректные параметры запроса"
)

type Handler struct {
	useCase CheckConflictUseCase
	logger  Logger
}

func NewHandler(useCase CheckConflictUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/conflicts/check
// Тело содержит либо одного кандидата, либо пакет items
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CheckConflictRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /conflicts/check - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if req.IsBatch() {
		h.handleBatch(w, r, &req)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /conflicts/check - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTimes)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		h.respondUseCaseError(w, err)
		return
	}

	h.logger.Info("POST /conflicts/check - Conflict checked: shop_id=%d, specialist_id=%d, has_conflict=%v",
		req.ShopID, useCaseReq.SpecialistID, result.HasConflict)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}

func (h *Handler) handleBatch(w http.ResponseWriter, r *http.Request, req *CheckConflictRequest) {
	useCaseReq, err := req.ToUseCaseBatchRequest()
	if err != nil {
		h.logger.Warn("POST /conflicts/check - Failed to parse batch request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTimes)
		return
	}

	result, err := h.useCase.ExecuteBatch(r.Context(), useCaseReq)
	if err != nil {
		h.respondUseCaseError(w, err)
		return
	}

	h.logger.Info("POST /conflicts/check - Batch checked: shop_id=%d, items=%d",
		req.ShopID, len(req.Items))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseBatchResponse(result))
}

func (h *Handler) respondUseCaseError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, checkConflict.ErrInvalidInput):
		h.logger.Warn("POST /conflicts/check - Invalid request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequest)

	default:
		h.logger.Error("POST /conflicts/check - Failed to check conflicts: %v", err)
		handlers.RespondInternalError(w)
	}
}
