package build_roster

import (
	"context"

	buildRoster "github.com/m04kA/SMC-SchedulingService/internal/usecase/build_roster"
)

type BuildRosterUseCase interface {
	Execute(ctx context.Context, req *buildRoster.Request) (*buildRoster.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
