package domain_test

import (
	"errors"
	"testing"

	"formnav/internal/modules/bookmark/domain"
	apperrors "formnav/internal/platform/errors"
)

func TestNewTrimsAndValidates(t *testing.T) {
	t.Parallel()
	b, err := domain.New("  Schedule D  ", "\t/38/156/0/0,0,0,0,0 ")
	if err != nil {
		t.Fatalf("new bookmark: %v", err)
	}
	if b.Label != "Schedule D" || b.Fragment != "/38/156/0/0,0,0,0,0" {
		t.Fatalf("expected trimmed bookmark, got %+v", b)
	}
	for _, tc := range []struct{ label, fragment string }{
		{"", "/1/2"},
		{"   ", "/1/2"},
		{"label", ""},
		{"label", "  "},
	} {
		if _, err := domain.New(tc.label, tc.fragment); !errors.Is(err, apperrors.ErrValidation) {
			t.Fatalf("expected validation error for %+v, got %v", tc, err)
		}
	}
}

func TestListPositionalOperations(t *testing.T) {
	t.Parallel()
	base := domain.Defaults()

	appended := base.Append(domain.Bookmark{Label: "x", Fragment: "/x"})
	if len(base) != 3 || len(appended) != 4 || appended[3].Label != "x" {
		t.Fatalf("append must copy: base=%d appended=%d", len(base), len(appended))
	}

	replaced, err := base.Replace(1, domain.Bookmark{Label: "y", Fragment: "/y"})
	if err != nil {
		t.Fatalf("replace: %v", err)
	}
	if replaced[1].Label != "y" || base[1].Label == "y" {
		t.Fatalf("replace must only change the copy at index 1")
	}
	if replaced[0] != base[0] || replaced[2] != base[2] {
		t.Fatalf("replace changed neighbours")
	}

	removed, err := base.Remove(0)
	if err != nil {
		t.Fatalf("remove: %v", err)
	}
	if len(removed) != 2 || removed[0] != base[1] || removed[1] != base[2] {
		t.Fatalf("remove must shift left: %+v", removed)
	}

	for _, idx := range []int{-1, 3, 100} {
		if _, err := base.Replace(idx, domain.Bookmark{Label: "z", Fragment: "/z"}); !errors.Is(err, apperrors.ErrIndexOutOfRange) {
			t.Fatalf("expected index error for replace(%d), got %v", idx, err)
		}
		if _, err := base.Remove(idx); !errors.Is(err, apperrors.ErrIndexOutOfRange) {
			t.Fatalf("expected index error for remove(%d), got %v", idx, err)
		}
	}
}

func TestDefaultsShape(t *testing.T) {
	t.Parallel()
	defaults := domain.Defaults()
	if len(defaults) != 3 {
		t.Fatalf("expected three defaults, got %d", len(defaults))
	}
	for _, b := range defaults {
		if err := b.Validate(); err != nil {
			t.Fatalf("default %+v invalid: %v", b, err)
		}
	}
	defaults[0].Label = "mutated"
	if domain.Defaults()[0].Label == "mutated" {
		t.Fatalf("defaults must be a fresh list each call")
	}
}

func TestSaveRequestValidate(t *testing.T) {
	t.Parallel()
	if err := (domain.SaveRequest{Kind: domain.SaveKindAdd}).Validate(); err != nil {
		t.Fatalf("add kind should be valid: %v", err)
	}
	if err := (domain.SaveRequest{Kind: domain.SaveKindEdit, Index: 2}).Validate(); err != nil {
		t.Fatalf("edit kind should be valid: %v", err)
	}
	if err := (domain.SaveRequest{Kind: "upsert"}).Validate(); !errors.Is(err, apperrors.ErrValidation) {
		t.Fatalf("unknown kind should fail validation, got %v", err)
	}
}
