package optimize_assignments

import (
	"context"

	optimizeAssignments "github.com/m04kA/SMC-SchedulingService/internal/usecase/optimize_assignments"
)

type OptimizeAssignmentsUseCase interface {
	Execute(ctx context.Context, req *optimizeAssignments.Request) (*optimizeAssignments.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
