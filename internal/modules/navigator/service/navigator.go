package service

import (
	"fmt"
	"net/url"
	"strings"

	"formnav/internal/modules/navigator/domain"
	apperrors "formnav/internal/platform/errors"
)

// sentinel is the hash prefix of an application route, without the '#'.
const sentinel = "!"

type Navigator struct {
	allow domain.AllowList
}

func NewNavigator(allow domain.AllowList) *Navigator {
	return &Navigator{allow: allow}
}

// ComputeTarget returns currentURL with its hash replaced by "#!"+fragment.
// It is a pure function of its inputs.
func (n *Navigator) ComputeTarget(currentURL, fragment string) (string, error) {
	raw := strings.TrimSpace(currentURL)
	if raw == "" {
		return "", fmt.Errorf("%w: current url is required", apperrors.ErrInvalidInput)
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("%w: parse current url: %v", apperrors.ErrInvalidInput, err)
	}
	if !n.allow.Allows(u) {
		return "", fmt.Errorf("%w: %s", apperrors.ErrDomainNotAllowed, hostLabel(u))
	}
	fragment = strings.TrimSpace(fragment)
	if fragment == "" {
		return "", fmt.Errorf("%w: fragment is required", apperrors.ErrValidation)
	}
	setFragment(u, sentinel+fragment)
	return u.String(), nil
}

// setFragment writes an already escaped fragment, as read back from a page
// hash, without escaping its percent signs a second time. Text that is not a
// valid escape sequence is stored as-is and escaped on output.
func setFragment(u *url.URL, escaped string) {
	unescaped, err := url.PathUnescape(escaped)
	if err != nil {
		u.Fragment = escaped
		u.RawFragment = ""
		return
	}
	u.Fragment = unescaped
	u.RawFragment = escaped
}

func hostLabel(u *url.URL) string {
	if h := u.Hostname(); h != "" {
		return h
	}
	return u.Scheme + " origin"
}
