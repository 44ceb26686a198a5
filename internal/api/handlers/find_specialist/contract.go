package find_specialist

import (
	"context"

	findSpecialist "github.com/m04kA/SMC-SchedulingService/internal/usecase/find_specialist"
)

type FindSpecialistUseCase interface {
	Execute(ctx context.Context, req *findSpecialist.Request) (*findSpecialist.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
