package domain

import (
	"fmt"
	"strings"

	apperrors "formnav/internal/platform/errors"
)

// SchemaVersion is written with every persisted record. Version 0 is the
// bare array layout that predates the envelope.
const SchemaVersion = 1

// Bookmark is a labelled shortcut to an application fragment. Neither field
// is unique across a list.
type Bookmark struct {
	Label    string `json:"label"`
	Fragment string `json:"fragment"`
}

// New trims both fields and rejects blanks.
func New(label, fragment string) (Bookmark, error) {
	b := Bookmark{Label: strings.TrimSpace(label), Fragment: strings.TrimSpace(fragment)}
	if err := b.Validate(); err != nil {
		return Bookmark{}, err
	}
	return b, nil
}

func (b Bookmark) Validate() error {
	if strings.TrimSpace(b.Label) == "" {
		return fmt.Errorf("%w: label is required", apperrors.ErrValidation)
	}
	if strings.TrimSpace(b.Fragment) == "" {
		return fmt.Errorf("%w: fragment is required", apperrors.ErrValidation)
	}
	return nil
}

// List is ordered; position is the identity used by edit and remove.
type List []Bookmark

func (l List) Clone() List {
	out := make(List, len(l))
	copy(out, l)
	return out
}

func (l List) CheckIndex(index int) error {
	if index < 0 || index >= len(l) {
		return fmt.Errorf("%w: index %d, length %d", apperrors.ErrIndexOutOfRange, index, len(l))
	}
	return nil
}

func (l List) Append(b Bookmark) List {
	out := make(List, 0, len(l)+1)
	out = append(out, l...)
	return append(out, b)
}

func (l List) Replace(index int, b Bookmark) (List, error) {
	if err := l.CheckIndex(index); err != nil {
		return nil, err
	}
	out := l.Clone()
	out[index] = b
	return out, nil
}

func (l List) Remove(index int) (List, error) {
	if err := l.CheckIndex(index); err != nil {
		return nil, err
	}
	out := make(List, 0, len(l)-1)
	out = append(out, l[:index]...)
	return append(out, l[index+1:]...), nil
}

// Defaults seeds a store that has never been written.
func Defaults() List {
	return List{
		{Label: "1041 - Estates and Trusts Tax Return", Fragment: "/71/22/0/0,0,0,0,0"},
		{Label: "8949 Page 1, Box A", Fragment: "/38/156/0/0,0,0,0,0"},
		{Label: "8949 Page 2, Box D", Fragment: "/38/159/0/0,0,0,0,0"},
	}
}

// SaveKind tags a save request so a single handler covers add and edit.
type SaveKind string

const (
	SaveKindAdd  SaveKind = "add"
	SaveKindEdit SaveKind = "edit"
)

type SaveRequest struct {
	Kind  SaveKind
	Index int
}

func (r SaveRequest) Validate() error {
	switch r.Kind {
	case SaveKindAdd, SaveKindEdit:
		return nil
	default:
		return fmt.Errorf("%w: unsupported save kind %q", apperrors.ErrValidation, string(r.Kind))
	}
}
