package dto

// CaptureInput carries either page details or a serialized document. HTML,
// when non-empty, takes precedence over Title and Headings.
type CaptureInput struct {
	URL      string
	Title    string
	Headings []string
	HTML     string
}

type CaptureOutput struct {
	URL        string
	Fragment   string
	Label      string
	Capturable bool
}
