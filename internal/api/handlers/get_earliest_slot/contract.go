package get_earliest_slot

import (
	"context"

	getAvailableSlots "github.com/m04kA/SMC-SchedulingService/internal/usecase/get_available_slots"
)

type EarliestSlotUseCase interface {
	EarliestSlot(ctx context.Context, req *getAvailableSlots.EarliestRequest) (*getAvailableSlots.EarliestResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
