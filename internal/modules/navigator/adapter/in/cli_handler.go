package in

import (
	"context"

	"formnav/internal/modules/navigator/dto"
	navigatorin "formnav/internal/modules/navigator/port/in"
)

type CLIHandler struct {
	usecase navigatorin.Usecase
}

func NewCLIHandler(usecase navigatorin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

// GotoIndex navigates to the bookmark at index.
func (h CLIHandler) GotoIndex(ctx context.Context, currentURL string, index int, launch bool) (dto.NavigateOutput, error) {
	return h.usecase.Navigate(ctx, dto.NavigateInput{CurrentURL: currentURL, Index: &index, Launch: launch})
}

func (h CLIHandler) GotoFragment(ctx context.Context, currentURL, fragment string, launch bool) (dto.NavigateOutput, error) {
	return h.usecase.Navigate(ctx, dto.NavigateInput{CurrentURL: currentURL, Fragment: fragment, Launch: launch})
}
