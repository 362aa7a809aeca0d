package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	bookmarkdto "formnav/internal/modules/bookmark/dto"
	bookmarkin "formnav/internal/modules/bookmark/port/in"
	"formnav/internal/modules/bridge/domain"
	"formnav/internal/modules/bridge/dto"
	bridgeout "formnav/internal/modules/bridge/port/out"
	navigatordto "formnav/internal/modules/navigator/dto"
	navigatorin "formnav/internal/modules/navigator/port/in"
	pagedto "formnav/internal/modules/page/dto"
	pagein "formnav/internal/modules/page/port/in"
	apperrors "formnav/internal/platform/errors"
	"formnav/internal/platform/id"
)

type command func(ctx context.Context, req dto.Request) (dto.Response, error)

type Dependencies struct {
	Bookmarks bookmarkin.Usecase
	Navigator navigatorin.Usecase
	Pages     pagein.Usecase
	Recorder  bridgeout.Recorder
	IDs       id.Generator
	Logger    *zap.Logger
}

// Dispatcher routes requests through a fixed action table.
type Dispatcher struct {
	deps     Dependencies
	panel    domain.Panel
	commands map[domain.Action]command
}

func NewDispatcher(deps Dependencies) *Dispatcher {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if deps.IDs == nil {
		deps.IDs = id.UUID{}
	}
	d := &Dispatcher{deps: deps}
	d.commands = map[domain.Action]command{
		domain.ActionPing:        d.ping,
		domain.ActionTogglePanel: d.togglePanel,
		domain.ActionList:        d.list,
		domain.ActionAdd:         d.add,
		domain.ActionEdit:        d.edit,
		domain.ActionRemove:      d.remove,
		domain.ActionSave:        d.save,
		domain.ActionNavigate:    d.navigate,
		domain.ActionCapture:     d.capture,
		domain.ActionSync:        d.sync,
	}
	return d
}

func (d *Dispatcher) OpenSession(transport string) string {
	sessionID := d.deps.IDs.New()
	d.deps.Logger.Info("bridge session opened", zap.String("session_id", sessionID), zap.String("transport", transport))
	return sessionID
}

func (d *Dispatcher) Handle(ctx context.Context, sessionID string, req dto.Request) dto.Response {
	started := time.Now()
	action := domain.Action(req.Action)

	var (
		resp dto.Response
		err  error
	)
	cmd, ok := d.commands[action]
	if !ok {
		err = fmt.Errorf("%w: %q", apperrors.ErrUnknownAction, req.Action)
	} else {
		resp, err = cmd(ctx, req)
	}

	outcome := dto.StatusOK
	if err != nil {
		resp.Status = dto.StatusError
		resp.Code = ErrorCode(err)
		resp.Error = err.Error()
		outcome = resp.Code
	} else {
		resp.Status = dto.StatusOK
	}

	elapsed := time.Since(started)
	if d.deps.Recorder != nil {
		metricAction := req.Action
		if !ok {
			metricAction = "unknown"
		}
		d.deps.Recorder.ObserveCommand(metricAction, outcome, elapsed)
	}
	fields := []zap.Field{
		zap.String("session_id", sessionID),
		zap.String("action", req.Action),
		zap.String("outcome", outcome),
		zap.Duration("elapsed", elapsed),
	}
	switch outcome {
	case dto.StatusOK:
		d.deps.Logger.Debug("bridge command", fields...)
	case dto.CodeInternal, dto.CodePersistence:
		d.deps.Logger.Error("bridge command failed", append(fields, zap.Error(err))...)
	default:
		d.deps.Logger.Info("bridge command rejected", append(fields, zap.Error(err))...)
	}
	return resp
}

// ErrorCode maps an error onto the wire code vocabulary.
func ErrorCode(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, apperrors.ErrValidation), errors.Is(err, apperrors.ErrInvalidInput):
		return dto.CodeValidation
	case errors.Is(err, apperrors.ErrIndexOutOfRange):
		return dto.CodeIndexOutOfRange
	case errors.Is(err, apperrors.ErrDomainNotAllowed):
		return dto.CodeDomainNotAllowed
	case errors.Is(err, apperrors.ErrPersistence):
		return dto.CodePersistence
	case errors.Is(err, apperrors.ErrUnknownAction):
		return dto.CodeUnknownAction
	case errors.Is(err, apperrors.ErrUnavailable):
		return dto.CodeUnavailable
	default:
		return dto.CodeInternal
	}
}

func (d *Dispatcher) ping(context.Context, dto.Request) (dto.Response, error) {
	return dto.Response{}, nil
}

func (d *Dispatcher) togglePanel(context.Context, dto.Request) (dto.Response, error) {
	visible := d.panel.Toggle()
	return dto.Response{Visible: &visible}, nil
}

func (d *Dispatcher) list(ctx context.Context, _ dto.Request) (dto.Response, error) {
	return withBookmarks(d.deps.Bookmarks.List(ctx))
}

func (d *Dispatcher) add(ctx context.Context, req dto.Request) (dto.Response, error) {
	return withBookmarks(d.deps.Bookmarks.Add(ctx, bookmarkdto.AddInput{Label: req.Label, Fragment: req.Fragment}))
}

func (d *Dispatcher) edit(ctx context.Context, req dto.Request) (dto.Response, error) {
	index, err := requireIndex(req)
	if err != nil {
		return dto.Response{}, err
	}
	return withBookmarks(d.deps.Bookmarks.Edit(ctx, bookmarkdto.EditInput{Index: index, Label: req.Label, Fragment: req.Fragment}))
}

func (d *Dispatcher) remove(ctx context.Context, req dto.Request) (dto.Response, error) {
	index, err := requireIndex(req)
	if err != nil {
		return dto.Response{}, err
	}
	return withBookmarks(d.deps.Bookmarks.Remove(ctx, bookmarkdto.RemoveInput{Index: index}))
}

func (d *Dispatcher) save(ctx context.Context, req dto.Request) (dto.Response, error) {
	if req.Save == nil {
		return dto.Response{}, fmt.Errorf("%w: save tag is required", apperrors.ErrValidation)
	}
	input := bookmarkdto.SaveInput{Kind: req.Save.Kind, Label: req.Label, Fragment: req.Fragment}
	if req.Save.Kind == dto.SaveKindEdit {
		if req.Save.Index == nil {
			return dto.Response{}, fmt.Errorf("%w: edit requires an index", apperrors.ErrValidation)
		}
		input.Index = *req.Save.Index
	}
	return withBookmarks(d.deps.Bookmarks.Save(ctx, input))
}

func (d *Dispatcher) sync(ctx context.Context, _ dto.Request) (dto.Response, error) {
	return withBookmarks(d.deps.Bookmarks.Sync(ctx))
}

func (d *Dispatcher) navigate(ctx context.Context, req dto.Request) (dto.Response, error) {
	out, err := d.deps.Navigator.Navigate(ctx, navigatordto.NavigateInput{
		CurrentURL: req.URL,
		Fragment:   req.Fragment,
		Index:      req.Index,
		Launch:     req.Launch,
	})
	return dto.Response{Target: out.Target, Launched: out.Launched}, err
}

func (d *Dispatcher) capture(ctx context.Context, req dto.Request) (dto.Response, error) {
	var (
		out pagedto.CaptureOutput
		err error
	)
	if req.Live {
		out, err = d.deps.Pages.CaptureLive(ctx)
	} else {
		out, err = d.deps.Pages.Capture(ctx, pagedto.CaptureInput{
			URL:      req.URL,
			Title:    req.Title,
			Headings: req.Headings,
			HTML:     req.HTML,
		})
	}
	if err != nil {
		return dto.Response{}, err
	}
	capturable := out.Capturable
	return dto.Response{
		Fragment:   out.Fragment,
		Label:      out.Label,
		Capturable: &capturable,
	}, nil
}

func requireIndex(req dto.Request) (int, error) {
	if req.Index == nil {
		return 0, fmt.Errorf("%w: index is required", apperrors.ErrValidation)
	}
	return *req.Index, nil
}

func withBookmarks(items []bookmarkdto.BookmarkOutput, err error) (dto.Response, error) {
	resp := dto.Response{}
	if items != nil {
		resp.Bookmarks = make([]dto.Bookmark, 0, len(items))
		for _, b := range items {
			resp.Bookmarks = append(resp.Bookmarks, dto.Bookmark{Index: b.Index, Label: b.Label, Fragment: b.Fragment})
		}
	}
	return resp, err
}
