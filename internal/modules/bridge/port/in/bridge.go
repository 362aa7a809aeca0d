package in

import (
	"context"

	"formnav/internal/modules/bridge/dto"
)

// Usecase answers panel requests. Handle never fails at the Go level; every
// outcome is encoded in the Response.
type Usecase interface {
	OpenSession(transport string) string
	Handle(ctx context.Context, sessionID string, req dto.Request) dto.Response
}
