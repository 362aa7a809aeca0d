package dto

// NavigateInput resolves the fragment from Index when it is set, otherwise
// Fragment is used as given.
type NavigateInput struct {
	CurrentURL string
	Fragment   string
	Index      *int
	Launch     bool
}

type NavigateOutput struct {
	Target   string
	Launched bool
}
