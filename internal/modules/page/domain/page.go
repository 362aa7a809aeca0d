package domain

// Label length bounds, both exclusive, counted in characters.
const (
	MinLabelLength = 3
	MaxLabelLength = 50
)

// PageInfo is what the host can tell us about the displayed page.
// Headings are h1 through h4 in document order.
type PageInfo struct {
	Title    string
	Headings []string
}

type Snapshot struct {
	URL  string
	Page PageInfo
}

// Capture is a candidate bookmark. Capturable is false, with empty Fragment
// and Label, when the location has no application route.
type Capture struct {
	URL        string
	Fragment   string
	Label      string
	Capturable bool
}
