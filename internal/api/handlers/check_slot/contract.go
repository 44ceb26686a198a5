package check_slot

import (
	"context"
	"time"

	getAvailableSlots "github.com/m04kA/SMC-SchedulingService/internal/usecase/get_available_slots"
)

type CheckSlotUseCase interface {
	IsSlotAvailable(ctx context.Context, req *getAvailableSlots.Request, slotStart time.Time) (bool, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
