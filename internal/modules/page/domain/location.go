package domain

import (
	"fmt"
	"net/url"
	"strings"

	apperrors "formnav/internal/platform/errors"
)

// HashSentinel marks an application route in the URL hash ("#!/71/22/...").
// Any other hash is an ordinary in-page anchor.
const HashSentinel = "#!"

// FragmentFromHash returns the route after the sentinel, or "" when the hash
// is not an application route.
func FragmentFromHash(hash string) string {
	if !strings.HasPrefix(hash, HashSentinel) {
		return ""
	}
	return hash[len(HashSentinel):]
}

// Location is a read-only view of the URL the host is displaying.
type Location struct {
	u *url.URL
}

func ParseLocation(raw string) (Location, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Location{}, fmt.Errorf("%w: location url is required", apperrors.ErrInvalidInput)
	}
	u, err := url.Parse(raw)
	if err != nil {
		return Location{}, fmt.Errorf("%w: parse location: %v", apperrors.ErrInvalidInput, err)
	}
	return Location{u: u}, nil
}

func (l Location) String() string {
	if l.u == nil {
		return ""
	}
	return l.u.String()
}

func (l Location) Hostname() string {
	if l.u == nil {
		return ""
	}
	return l.u.Hostname()
}

// Hash includes the leading '#', or is empty when the URL has no fragment.
func (l Location) Hash() string {
	if l.u == nil {
		return ""
	}
	f := l.u.EscapedFragment()
	if f == "" {
		return ""
	}
	return "#" + f
}
