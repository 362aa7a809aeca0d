package service_test

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"sync"
	"testing"

	"formnav/internal/modules/bookmark/domain"
	"formnav/internal/modules/bookmark/service"
	apperrors "formnav/internal/platform/errors"
)

type fakeStore struct {
	mu      sync.Mutex
	stored  domain.List
	has     bool
	loads   int
	saves   int
	loadErr error
	saveErr error
}

func (s *fakeStore) Load(_ context.Context, defaults domain.List) (domain.List, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loads++
	if s.loadErr != nil {
		return nil, s.loadErr
	}
	if !s.has {
		return defaults, nil
	}
	return s.stored.Clone(), nil
}

func (s *fakeStore) Save(_ context.Context, list domain.List) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saveErr != nil {
		return s.saveErr
	}
	s.saves++
	s.stored = list.Clone()
	s.has = true
	return nil
}

func (s *fakeStore) snapshot() (domain.List, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stored.Clone(), s.saves
}

func TestInitializeEmptyStoreYieldsDefaults(t *testing.T) {
	t.Parallel()
	store := &fakeStore{}
	reg := service.NewRegistry(store, domain.Defaults(), nil)
	list, err := reg.Initialize(context.Background())
	if err != nil {
		t.Fatalf("initialize: %v", err)
	}
	if !reflect.DeepEqual(list, domain.Defaults()) {
		t.Fatalf("expected defaults, got %+v", list)
	}
	if _, saves := store.snapshot(); saves != 0 {
		t.Fatalf("initialize must not write, got %d saves", saves)
	}
}

func TestInitializePopulatedStoreIsIdempotent(t *testing.T) {
	t.Parallel()
	stored := domain.List{{Label: "a", Fragment: "/a"}, {Label: "a", Fragment: "/a"}}
	store := &fakeStore{stored: stored, has: true}
	reg := service.NewRegistry(store, domain.Defaults(), nil)
	for i := 0; i < 3; i++ {
		list, err := reg.Initialize(context.Background())
		if err != nil {
			t.Fatalf("initialize #%d: %v", i, err)
		}
		if !reflect.DeepEqual(list, stored) {
			t.Fatalf("expected stored list unmodified, got %+v", list)
		}
	}
	if store.loads != 1 {
		t.Fatalf("expected a single store load, got %d", store.loads)
	}
}

func TestAddAppendsTrimmedAndPersists(t *testing.T) {
	t.Parallel()
	store := &fakeStore{}
	reg := service.NewRegistry(store, domain.Defaults(), nil)
	list, err := reg.Add(context.Background(), "  Form 4562 ", " /20/1/0/0,0,0,0,0\n")
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	want := domain.Bookmark{Label: "Form 4562", Fragment: "/20/1/0/0,0,0,0,0"}
	if len(list) != 4 || list[3] != want {
		t.Fatalf("expected trimmed bookmark appended, got %+v", list)
	}
	stored, saves := store.snapshot()
	if saves != 1 || !reflect.DeepEqual(stored, list) {
		t.Fatalf("expected full list write-through, saves=%d stored=%+v", saves, stored)
	}

	reloaded := service.NewRegistry(store, domain.Defaults(), nil)
	again, err := reloaded.List(context.Background())
	if err != nil {
		t.Fatalf("list after reload: %v", err)
	}
	if !reflect.DeepEqual(again, list) {
		t.Fatalf("persistence round trip mismatch: %+v", again)
	}
}

func TestAddRejectsBlankInput(t *testing.T) {
	t.Parallel()
	store := &fakeStore{}
	reg := service.NewRegistry(store, domain.Defaults(), nil)
	for _, tc := range [][2]string{{"", "/a"}, {"a", ""}, {"  ", "  "}} {
		if _, err := reg.Add(context.Background(), tc[0], tc[1]); !errors.Is(err, apperrors.ErrValidation) {
			t.Fatalf("expected validation error for %q, got %v", tc, err)
		}
	}
	list, _ := reg.List(context.Background())
	if len(list) != 3 {
		t.Fatalf("validation failure must not mutate, got %d items", len(list))
	}
	if _, saves := store.snapshot(); saves != 0 {
		t.Fatalf("validation failure must not persist")
	}
}

func TestEditChangesOnlyTargetIndex(t *testing.T) {
	t.Parallel()
	reg := service.NewRegistry(&fakeStore{}, domain.Defaults(), nil)
	before, _ := reg.List(context.Background())
	for i := range before {
		after, err := reg.Edit(context.Background(), i, fmt.Sprintf("edited %d", i), fmt.Sprintf("/%d", i))
		if err != nil {
			t.Fatalf("edit %d: %v", i, err)
		}
		for j := range after {
			if j == i {
				if after[j].Label != fmt.Sprintf("edited %d", i) {
					t.Fatalf("index %d not edited", i)
				}
				continue
			}
			if after[j] != before[j] {
				t.Fatalf("edit %d changed position %d", i, j)
			}
		}
		before = after
	}
}

func TestEditAndRemoveOutOfRange(t *testing.T) {
	t.Parallel()
	store := &fakeStore{}
	reg := service.NewRegistry(store, domain.Defaults(), nil)
	for _, idx := range []int{-1, 3, 42} {
		if _, err := reg.Edit(context.Background(), idx, "x", "/x"); !errors.Is(err, apperrors.ErrIndexOutOfRange) {
			t.Fatalf("edit(%d): expected index error, got %v", idx, err)
		}
		if _, err := reg.Remove(context.Background(), idx); !errors.Is(err, apperrors.ErrIndexOutOfRange) {
			t.Fatalf("remove(%d): expected index error, got %v", idx, err)
		}
	}
	list, _ := reg.List(context.Background())
	if !reflect.DeepEqual(list, domain.Defaults()) {
		t.Fatalf("out of range calls must leave the list unchanged")
	}
	if _, saves := store.snapshot(); saves != 0 {
		t.Fatalf("out of range calls must not persist")
	}
}

func TestRemoveShiftsLeft(t *testing.T) {
	t.Parallel()
	reg := service.NewRegistry(&fakeStore{}, domain.Defaults(), nil)
	before, _ := reg.List(context.Background())
	after, err := reg.Remove(context.Background(), 1)
	if err != nil {
		t.Fatalf("remove: %v", err)
	}
	if len(after) != len(before)-1 {
		t.Fatalf("expected length %d, got %d", len(before)-1, len(after))
	}
	if after[0] != before[0] || after[1] != before[2] {
		t.Fatalf("expected shift left, got %+v", after)
	}
}

func TestSaveDispatchesByKind(t *testing.T) {
	t.Parallel()
	reg := service.NewRegistry(&fakeStore{}, domain.Defaults(), nil)
	list, err := reg.Save(context.Background(), domain.SaveRequest{Kind: domain.SaveKindAdd}, "new", "/n")
	if err != nil || len(list) != 4 {
		t.Fatalf("save add: %v %+v", err, list)
	}
	list, err = reg.Save(context.Background(), domain.SaveRequest{Kind: domain.SaveKindEdit, Index: 0}, "first", "/f")
	if err != nil || list[0].Label != "first" || len(list) != 4 {
		t.Fatalf("save edit: %v %+v", err, list)
	}
	if _, err := reg.Save(context.Background(), domain.SaveRequest{Kind: domain.SaveKindEdit, Index: 9}, "x", "/x"); !errors.Is(err, apperrors.ErrIndexOutOfRange) {
		t.Fatalf("expected index error, got %v", err)
	}
	if _, err := reg.Save(context.Background(), domain.SaveRequest{Kind: "bogus"}, "x", "/x"); !errors.Is(err, apperrors.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestSaveFailureKeepsMemoryAndSyncRetries(t *testing.T) {
	t.Parallel()
	store := &fakeStore{saveErr: errors.New("quota exceeded")}
	reg := service.NewRegistry(store, domain.Defaults(), nil)

	list, err := reg.Add(context.Background(), "kept", "/kept")
	if !errors.Is(err, apperrors.ErrPersistence) {
		t.Fatalf("expected persistence error, got %v", err)
	}
	if len(list) != 4 || list[3].Label != "kept" {
		t.Fatalf("expected in-memory list with mutation, got %+v", list)
	}
	if !reg.Dirty() {
		t.Fatalf("expected registry to be dirty after failed save")
	}
	current, _ := reg.List(context.Background())
	if len(current) != 4 {
		t.Fatalf("failed save must not roll back memory")
	}

	store.mu.Lock()
	store.saveErr = nil
	store.mu.Unlock()

	synced, err := reg.Sync(context.Background())
	if err != nil {
		t.Fatalf("sync: %v", err)
	}
	stored, saves := store.snapshot()
	if saves != 1 || !reflect.DeepEqual(stored, synced) {
		t.Fatalf("sync should persist current list, saves=%d stored=%+v", saves, stored)
	}
	if reg.Dirty() {
		t.Fatalf("expected clean registry after sync")
	}
	if _, err := reg.Sync(context.Background()); err != nil {
		t.Fatalf("second sync: %v", err)
	}
	if _, saves := store.snapshot(); saves != 1 {
		t.Fatalf("clean sync should not write again, got %d saves", saves)
	}
}

func TestLoadFailureIsRetried(t *testing.T) {
	t.Parallel()
	store := &fakeStore{loadErr: errors.New("disk unavailable")}
	reg := service.NewRegistry(store, domain.Defaults(), nil)
	if _, err := reg.Initialize(context.Background()); !errors.Is(err, apperrors.ErrPersistence) {
		t.Fatalf("expected persistence error, got %v", err)
	}
	if _, err := reg.Add(context.Background(), "a", "/a"); !errors.Is(err, apperrors.ErrPersistence) {
		t.Fatalf("mutation before a successful load must fail, got %v", err)
	}
	store.mu.Lock()
	store.loadErr = nil
	store.mu.Unlock()
	list, err := reg.Initialize(context.Background())
	if err != nil {
		t.Fatalf("initialize retry: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("expected defaults after retry, got %+v", list)
	}
}

func TestConcurrentAddsAllLand(t *testing.T) {
	t.Parallel()
	store := &fakeStore{}
	reg := service.NewRegistry(store, domain.Defaults(), nil)
	const n = 20
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if _, err := reg.Add(context.Background(), fmt.Sprintf("b%d", i), fmt.Sprintf("/%d", i)); err != nil {
				t.Errorf("add %d: %v", i, err)
			}
		}(i)
	}
	wg.Wait()
	list, _ := reg.List(context.Background())
	if len(list) != 3+n {
		t.Fatalf("expected %d bookmarks, got %d", 3+n, len(list))
	}
	stored, _ := store.snapshot()
	if !reflect.DeepEqual(stored, list) {
		t.Fatalf("store must hold the latest list after concurrent adds")
	}
}

func TestCloseFlushesAndReloads(t *testing.T) {
	t.Parallel()
	store := &fakeStore{saveErr: errors.New("offline")}
	reg := service.NewRegistry(store, domain.Defaults(), nil)
	_, _ = reg.Add(context.Background(), "pending", "/p")
	if err := reg.Close(context.Background()); !errors.Is(err, apperrors.ErrPersistence) {
		t.Fatalf("close with failing store should report persistence error, got %v", err)
	}
	store.mu.Lock()
	store.saveErr = nil
	store.mu.Unlock()
	if err := reg.Close(context.Background()); err != nil {
		t.Fatalf("close: %v", err)
	}
	list, err := reg.List(context.Background())
	if err != nil {
		t.Fatalf("list after close: %v", err)
	}
	if len(list) != 4 || list[3].Label != "pending" {
		t.Fatalf("expected flushed list after reload, got %+v", list)
	}
	if store.loads != 2 {
		t.Fatalf("expected reload after close, got %d loads", store.loads)
	}
}

func TestAddsRacingCloseAreNotLost(t *testing.T) {
	t.Parallel()
	store := &fakeStore{}
	reg := service.NewRegistry(store, domain.Defaults(), nil)
	ctx := context.Background()
	const n = 40

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			if _, err := reg.Add(ctx, fmt.Sprintf("b%d", i), fmt.Sprintf("/%d", i)); err != nil {
				t.Errorf("add %d: %v", i, err)
			}
		}(i)
		go func() {
			defer wg.Done()
			if err := reg.Close(ctx); err != nil {
				t.Errorf("close: %v", err)
			}
		}()
	}
	wg.Wait()

	if err := reg.Close(ctx); err != nil {
		t.Fatalf("final close: %v", err)
	}
	list, err := reg.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 3+n {
		t.Fatalf("expected %d bookmarks after reload, got %d", 3+n, len(list))
	}
}
