package out

import (
	"context"
	"time"

	"formnav/internal/modules/bridge/dto"
)

// Recorder receives one observation per handled command.
type Recorder interface {
	ObserveCommand(action, outcome string, d time.Duration)
}

// Client reaches a bridge served by another process.
type Client interface {
	Ping(ctx context.Context) (dto.Response, error)
	Handle(ctx context.Context, req dto.Request) (dto.Response, error)
}
