package reserve_booking

import (
	"context"

	reserveBooking "github.com/m04kA/SMC-SchedulingService/internal/usecase/reserve_booking"
)

type ReserveBookingUseCase interface {
	Execute(ctx context.Context, req *reserveBooking.Request) (*reserveBooking.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
