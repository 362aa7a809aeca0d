package service

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"formnav/internal/modules/page/domain"
	"formnav/internal/platform/clock"
)

// Extractor derives a candidate bookmark from what the host displays.
type Extractor struct {
	clock       clock.Clock
	titleSuffix string
	zone        *time.Location
}

// NewExtractor strips titleSuffix from page titles and renders fallback
// labels in zone (time.Local when nil).
func NewExtractor(clk clock.Clock, titleSuffix string, zone *time.Location) *Extractor {
	if zone == nil {
		zone = time.Local
	}
	return &Extractor{clock: clk, titleSuffix: titleSuffix, zone: zone}
}

func (e *Extractor) Fragment(loc domain.Location) string {
	return domain.FragmentFromHash(loc.Hash())
}

// Label tries the cleaned title, then each heading, then a timestamp. It
// never returns "".
func (e *Extractor) Label(info domain.PageInfo) string {
	title := info.Title
	if e.titleSuffix != "" {
		title = strings.Replace(title, e.titleSuffix, "", 1)
	}
	if label := strings.TrimSpace(title); acceptable(label) {
		return label
	}
	for _, heading := range info.Headings {
		if label := strings.TrimSpace(heading); acceptable(label) {
			return label
		}
	}
	now := e.clock.Now().In(e.zone)
	return fmt.Sprintf("Page captured on %s at %s", now.Format("1/2/2006"), now.Format("3:04:05 PM"))
}

func acceptable(label string) bool {
	n := utf8.RuneCountInString(label)
	return n > domain.MinLabelLength && n < domain.MaxLabelLength
}
