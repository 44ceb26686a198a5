package build_roster

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	buildRoster "github.com/m04kA/SMC-SchedulingService/internal/usecase/build_roster"
)

const (
	msgInvalidShopID      = "некорректный ID магазина"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidStartDate   = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgShopNotFound       = "магазин не найден"
	msgNoStaff            = "в магазине нет активных мастеров"
	msgRosterExists       = "расписание на этот период уже построено"
	msgInvalidRequest     = "некорректные параметры запроса"
)

type Handler struct {
	useCase BuildRosterUseCase
	logger  Logger
}

func NewHandler(useCase BuildRosterUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/shops/{shopId}/rosters
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	shopID, err := strconv.ParseInt(vars["shopId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /shops/{id}/rosters - Invalid shop ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidShopID)
		return
	}

	var req BuildRosterRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /shops/{id}/rosters - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(shopID)
	if err != nil {
		h.logger.Warn("POST /shops/{id}/rosters - Invalid start date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStartDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, buildRoster.ErrShopNotFound):
			h.logger.Warn("POST /shops/{id}/rosters - Shop not found: shop_id=%d", shopID)
			handlers.RespondNotFound(w, msgShopNotFound)

		case errors.Is(err, buildRoster.ErrNoStaff):
			h.logger.Warn("POST /shops/{id}/rosters - No active staff: shop_id=%d", shopID)
			handlers.RespondBadRequest(w, msgNoStaff)

		case errors.Is(err, buildRoster.ErrRosterAlreadyExists):
			h.logger.Warn("POST /shops/{id}/rosters - Roster already exists: shop_id=%d, start=%s",
				shopID, req.StartDate)
			handlers.RespondConflict(w, msgRosterExists)

		case errors.Is(err, buildRoster.ErrInvalidInput):
			h.logger.Warn("POST /shops/{id}/rosters - Invalid request: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequest)

		default:
			h.logger.Error("POST /shops/{id}/rosters - Failed to build roster: shop_id=%d, start=%s, error=%v",
				shopID, req.StartDate, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	status := http.StatusCreated
	if req.DryRun {
		status = http.StatusOK
	}

	h.logger.Info("POST /shops/{id}/rosters - Roster built: shop_id=%d, start=%s, days=%d, dry_run=%v, coverage=%.1f%%",
		shopID, req.StartDate, req.Days, req.DryRun, result.Stats.CoveragePct)
	handlers.RespondJSON(w, status, FromUseCaseResponse(result))
}
