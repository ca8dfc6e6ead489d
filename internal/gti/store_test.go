package gti

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := OpenStore(context.Background(), filepath.Join(t.TempDir(), "gti.db"))
	if err != nil {
		t.Fatalf("OpenStore() error: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreSaveLoad(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)
	b := base(t)

	l := NewList(
		NewRangeMET(b, 1000, 2000),
		NewRangeMET(b, 5000, 6000),
	)
	if err := store.Save(ctx, "screening", l); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	loaded, err := store.Load(ctx, "screening", b)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	checkRanges(t, loaded, mets(l))
}

func TestStoreSaveReplaces(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)
	b := base(t)

	if err := store.Save(ctx, "s", NewList(NewRangeMET(b, 1000, 2000))); err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	if err := store.Save(ctx, "s", NewList(NewRangeMET(b, 7000, 8000))); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	loaded, err := store.Load(ctx, "s", b)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	checkRanges(t, loaded, [][2]float64{{7000, 8000}})
}

func TestStoreLoadMissing(t *testing.T) {
	store := openTestStore(t)
	_, err := store.Load(context.Background(), "nope", base(t))
	if !errors.Is(err, ErrSetNotFound) {
		t.Fatalf("Load() error = %v, want ErrSetNotFound", err)
	}
}

func TestStoreList(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)
	b := base(t)

	if err := store.Save(ctx, "a", NewList(NewRangeMET(b, 1000, 2000))); err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	if err := store.Save(ctx, "b", NewList(NewRangeMET(b, 1000, 2000), NewRangeMET(b, 5000, 6000))); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	infos, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if len(infos) != 2 {
		t.Fatalf("List() returned %d sets, want 2", len(infos))
	}
	counts := map[string]int{}
	for _, info := range infos {
		counts[info.Name] = info.Ranges
	}
	if counts["a"] != 1 || counts["b"] != 2 {
		t.Errorf("range counts = %v, want a:1 b:2", counts)
	}
}

func TestStoreDelete(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)
	b := base(t)

	if err := store.Save(ctx, "gone", NewList(NewRangeMET(b, 1000, 2000))); err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	if err := store.Delete(ctx, "gone"); err != nil {
		t.Fatalf("Delete() error: %v", err)
	}
	if _, err := store.Load(ctx, "gone", b); !errors.Is(err, ErrSetNotFound) {
		t.Errorf("Load() after delete error = %v, want ErrSetNotFound", err)
	}
	if err := store.Delete(ctx, "gone"); !errors.Is(err, ErrSetNotFound) {
		t.Errorf("Delete() of a missing set error = %v, want ErrSetNotFound", err)
	}
}
