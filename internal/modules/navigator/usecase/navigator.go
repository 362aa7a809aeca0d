package usecase

import (
	"context"
	"fmt"

	bookmarkin "formnav/internal/modules/bookmark/port/in"
	"formnav/internal/modules/navigator/dto"
	navigatorin "formnav/internal/modules/navigator/port/in"
	navigatorout "formnav/internal/modules/navigator/port/out"
	"formnav/internal/modules/navigator/service"
	apperrors "formnav/internal/platform/errors"
)

type Interactor struct {
	navigator *service.Navigator
	bookmarks bookmarkin.Usecase
	launcher  navigatorout.Launcher
}

// NewInteractor accepts a nil launcher; launch requests then fail with
// ErrUnavailable after the target is computed.
func NewInteractor(navigator *service.Navigator, bookmarks bookmarkin.Usecase, launcher navigatorout.Launcher) navigatorin.Usecase {
	return &Interactor{navigator: navigator, bookmarks: bookmarks, launcher: launcher}
}

func (i *Interactor) Navigate(ctx context.Context, input dto.NavigateInput) (dto.NavigateOutput, error) {
	fragment := input.Fragment
	if input.Index != nil {
		b, err := i.bookmarks.Get(ctx, *input.Index)
		if err != nil {
			return dto.NavigateOutput{}, err
		}
		fragment = b.Fragment
	}
	target, err := i.navigator.ComputeTarget(input.CurrentURL, fragment)
	if err != nil {
		return dto.NavigateOutput{}, err
	}
	out := dto.NavigateOutput{Target: target}
	if !input.Launch {
		return out, nil
	}
	if i.launcher == nil {
		return out, fmt.Errorf("%w: no launcher configured", apperrors.ErrUnavailable)
	}
	if err := i.launcher.Open(ctx, target); err != nil {
		return out, fmt.Errorf("%w: open %s: %w", apperrors.ErrUnavailable, target, err)
	}
	out.Launched = true
	return out, nil
}
