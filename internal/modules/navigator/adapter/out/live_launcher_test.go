package out_test

import (
	"context"
	"testing"

	navigatorout "formnav/internal/modules/navigator/adapter/out"
)

type fakeTab struct{ visited []string }

func (f *fakeTab) Goto(_ context.Context, url string) error {
	f.visited = append(f.visited, url)
	return nil
}

func TestLiveLauncherNavigatesTab(t *testing.T) {
	t.Parallel()
	tab := &fakeTab{}
	if err := navigatorout.NewLiveLauncher(tab).Open(context.Background(), "https://app.fasttax.com/#!/1"); err != nil {
		t.Fatalf("open: %v", err)
	}
	if len(tab.visited) != 1 || tab.visited[0] != "https://app.fasttax.com/#!/1" {
		t.Fatalf("unexpected visits %v", tab.visited)
	}
}
