package dto

// Response status values.
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// Error codes carried in Response.Code.
const (
	CodeValidation       = "validation"
	CodeIndexOutOfRange  = "index_out_of_range"
	CodeDomainNotAllowed = "domain_not_allowed"
	CodePersistence      = "persistence"
	CodeUnknownAction    = "unknown_action"
	CodeUnavailable      = "unavailable"
	CodeInternal         = "internal"
)

// Request is one panel intent. Which fields are read depends on Action.
type Request struct {
	Action   string   `json:"action"`
	Label    string   `json:"label,omitempty"`
	Fragment string   `json:"fragment,omitempty"`
	Index    *int     `json:"index,omitempty"`
	Save     *SaveTag `json:"save,omitempty"`
	URL      string   `json:"url,omitempty"`
	Title    string   `json:"title,omitempty"`
	Headings []string `json:"headings,omitempty"`
	HTML     string   `json:"html,omitempty"`
	Live     bool     `json:"live,omitempty"`
	Launch   bool     `json:"launch,omitempty"`
}

// Save tag kinds.
const (
	SaveKindAdd  = "add"
	SaveKindEdit = "edit"
)

// SaveTag is {"kind":"add"} or {"kind":"edit","index":n}. Index is required
// for edits.
type SaveTag struct {
	Kind  string `json:"kind"`
	Index *int   `json:"index,omitempty"`
}

type Bookmark struct {
	Index    int    `json:"index"`
	Label    string `json:"label"`
	Fragment string `json:"fragment"`
}

// Response is always returned, errors included. A persistence failure still
// carries the in-memory Bookmarks.
type Response struct {
	Status     string     `json:"status"`
	Error      string     `json:"error,omitempty"`
	Code       string     `json:"code,omitempty"`
	Bookmarks  []Bookmark `json:"bookmarks,omitzero"`
	Visible    *bool      `json:"visible,omitempty"`
	Target     string     `json:"target,omitempty"`
	Launched   bool       `json:"launched,omitempty"`
	Fragment   string     `json:"fragment,omitempty"`
	Label      string     `json:"label,omitempty"`
	Capturable *bool      `json:"capturable,omitempty"`
}

func (r Response) OK() bool {
	return r.Status == StatusOK
}
