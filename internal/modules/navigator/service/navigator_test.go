package service_test

import (
	"errors"
	"testing"

	"formnav/internal/modules/navigator/domain"
	"formnav/internal/modules/navigator/service"
	apperrors "formnav/internal/platform/errors"
)

func newNavigator() *service.Navigator {
	return service.NewNavigator(domain.AllowList{Domain: "fasttax.com", AllowLoopback: true, AllowFile: true})
}

func TestComputeTargetReplacesOnlyTheHash(t *testing.T) {
	t.Parallel()
	nav := newNavigator()
	tests := []struct{ current, want string }{
		{"https://app.fasttax.com/", "https://app.fasttax.com/#!/71/22/0/0,0,0,0,0"},
		{"https://app.fasttax.com/gst/index.html?client=7#!/38/156/0/0,0,0,0,0", "https://app.fasttax.com/gst/index.html?client=7#!/71/22/0/0,0,0,0,0"},
		{"https://app.fasttax.com/page#section", "https://app.fasttax.com/page#!/71/22/0/0,0,0,0,0"},
		{"http://localhost:8080/dev.html", "http://localhost:8080/dev.html#!/71/22/0/0,0,0,0,0"},
		{"file:///home/user/mock.html", "file:///home/user/mock.html#!/71/22/0/0,0,0,0,0"},
	}
	for _, tt := range tests {
		got, err := nav.ComputeTarget(tt.current, "/71/22/0/0,0,0,0,0")
		if err != nil {
			t.Fatalf("ComputeTarget(%s): %v", tt.current, err)
		}
		if got != tt.want {
			t.Fatalf("ComputeTarget(%s) = %s, want %s", tt.current, got, tt.want)
		}
	}
}

func TestComputeTargetIsIdempotent(t *testing.T) {
	t.Parallel()
	nav := newNavigator()
	current := "https://app.fasttax.com/r?id=1#old"
	first, err := nav.ComputeTarget(current, "/38/159/0/0,0,0,0,0")
	if err != nil {
		t.Fatalf("first: %v", err)
	}
	second, err := nav.ComputeTarget(current, "/38/159/0/0,0,0,0,0")
	if err != nil {
		t.Fatalf("second: %v", err)
	}
	again, err := nav.ComputeTarget(first, "/38/159/0/0,0,0,0,0")
	if err != nil {
		t.Fatalf("again: %v", err)
	}
	if first != second || first != again {
		t.Fatalf("expected stable output, got %q %q %q", first, second, again)
	}
}

func TestComputeTargetRejectsOtherDomains(t *testing.T) {
	t.Parallel()
	got, err := newNavigator().ComputeTarget("https://example.org/#!/1", "/71/22/0/0,0,0,0,0")
	if !errors.Is(err, apperrors.ErrDomainNotAllowed) {
		t.Fatalf("expected domain not allowed, got %v", err)
	}
	if got != "" {
		t.Fatalf("expected no target, got %q", got)
	}
}

func TestComputeTargetInputErrors(t *testing.T) {
	t.Parallel()
	nav := newNavigator()
	if _, err := nav.ComputeTarget("https://app.fasttax.com/", "   "); !errors.Is(err, apperrors.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if _, err := nav.ComputeTarget("", "/1"); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
	if _, err := nav.ComputeTarget("http://[::1", "/1"); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input for malformed url, got %v", err)
	}
}

func TestComputeTargetKeepsEscapedFragments(t *testing.T) {
	t.Parallel()
	nav := newNavigator()
	tests := []struct{ fragment, want string }{
		{"/38/156/a%20b", "https://app.fasttax.com/x#!/38/156/a%20b"},
		{"/38/156/a b", "https://app.fasttax.com/x#!/38/156/a%20b"},
		{"/38/%zz", "https://app.fasttax.com/x#!/38/%25zz"},
	}
	for _, tt := range tests {
		got, err := nav.ComputeTarget("https://app.fasttax.com/x#!/1", tt.fragment)
		if err != nil {
			t.Fatalf("ComputeTarget(%q): %v", tt.fragment, err)
		}
		if got != tt.want {
			t.Fatalf("ComputeTarget(%q) = %s, want %s", tt.fragment, got, tt.want)
		}
	}
}

func TestComputeTargetChecksDomainBeforeFragment(t *testing.T) {
	t.Parallel()
	if _, err := newNavigator().ComputeTarget("https://example.org/", ""); !errors.Is(err, apperrors.ErrDomainNotAllowed) {
		t.Fatalf("expected domain not allowed, got %v", err)
	}
}
