package in_test

import (
	"context"
	"fmt"
	"sync"

	"formnav/internal/modules/bridge/dto"
)

// fakeUsecase echoes requests back and records which sessions it saw.
type fakeUsecase struct {
	mu       sync.Mutex
	sessions []string
	handled  []dto.Request
	visible  bool
}

func (f *fakeUsecase) OpenSession(transport string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := fmt.Sprintf("%s-%d", transport, len(f.sessions)+1)
	f.sessions = append(f.sessions, id)
	return id
}

func (f *fakeUsecase) Handle(_ context.Context, _ string, req dto.Request) dto.Response {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.handled = append(f.handled, req)
	switch req.Action {
	case "ping":
		return dto.Response{Status: dto.StatusOK}
	case "togglePanel":
		f.visible = !f.visible
		visible := f.visible
		return dto.Response{Status: dto.StatusOK, Visible: &visible}
	case "list":
		return dto.Response{Status: dto.StatusOK, Bookmarks: []dto.Bookmark{{Index: 0, Label: "1041", Fragment: "/71/22/0/0,0,0,0,0"}}}
	case "remove":
		return dto.Response{Status: dto.StatusError, Code: dto.CodeIndexOutOfRange, Error: "index out of range"}
	case "navigate":
		return dto.Response{Status: dto.StatusError, Code: dto.CodeDomainNotAllowed, Error: "domain not allowed"}
	case "add":
		return dto.Response{Status: dto.StatusError, Code: dto.CodeValidation, Error: "validation failed"}
	case "sync":
		return dto.Response{Status: dto.StatusError, Code: dto.CodePersistence, Error: "persistence failure", Bookmarks: []dto.Bookmark{}}
	default:
		return dto.Response{Status: dto.StatusError, Code: dto.CodeUnknownAction, Error: "unknown action"}
	}
}

func (f *fakeUsecase) sessionCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sessions)
}
