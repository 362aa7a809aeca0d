package usecase

import (
	"context"

	"formnav/internal/modules/bridge/dto"
	bridgein "formnav/internal/modules/bridge/port/in"
	"formnav/internal/modules/bridge/service"
)

type Interactor struct {
	dispatcher *service.Dispatcher
}

func NewInteractor(dispatcher *service.Dispatcher) bridgein.Usecase {
	return &Interactor{dispatcher: dispatcher}
}

func (i *Interactor) OpenSession(transport string) string {
	return i.dispatcher.OpenSession(transport)
}

func (i *Interactor) Handle(ctx context.Context, sessionID string, req dto.Request) dto.Response {
	return i.dispatcher.Handle(ctx, sessionID, req)
}
