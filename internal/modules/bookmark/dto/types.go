package dto

type BookmarkOutput struct {
	Index    int
	Label    string
	Fragment string
}

type AddInput struct {
	Label    string
	Fragment string
}

type EditInput struct {
	Index    int
	Label    string
	Fragment string
}

type RemoveInput struct {
	Index int
}

// SaveInput is the tagged form used by panels: Kind is "add" or "edit", and
// Index is only read for edits.
type SaveInput struct {
	Kind     string
	Index    int
	Label    string
	Fragment string
}
