package out_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pageout "formnav/internal/modules/page/adapter/out"
)

type fakeTab struct {
	url      string
	title    string
	headings []string
	err      error
}

func (f fakeTab) URL(context.Context) (string, error)        { return f.url, nil }
func (f fakeTab) Title(context.Context) (string, error)      { return f.title, nil }
func (f fakeTab) Headings(context.Context) ([]string, error) { return f.headings, f.err }

func TestLiveSourceSnapshot(t *testing.T) {
	t.Parallel()
	src := pageout.NewLiveSource(fakeTab{
		url:      "https://app.fasttax.com/#!/1/2",
		title:    "Federal Summary - GoSystem Tax",
		headings: []string{"Summary"},
	})
	snap, err := src.Snapshot(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "https://app.fasttax.com/#!/1/2", snap.URL)
	assert.Equal(t, "Federal Summary - GoSystem Tax", snap.Page.Title)
	assert.Equal(t, []string{"Summary"}, snap.Page.Headings)
}

func TestLiveSourcePropagatesErrors(t *testing.T) {
	t.Parallel()
	boom := errors.New("target closed")
	_, err := pageout.NewLiveSource(fakeTab{err: boom}).Snapshot(context.Background())
	require.ErrorIs(t, err, boom)
}
