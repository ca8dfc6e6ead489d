package gti

import (
	"math"
	"os"
	"path/filepath"
	"testing"
)

func TestFileRoundTrip(t *testing.T) {
	b := base(t)
	l := NewList(
		NewRangeMET(b, 1000, 2000),
		NewRangeMET(b, 5000, 6000),
	)

	path := filepath.Join(t.TempDir(), "screening.toml")
	if err := SaveFile(path, "screening", l); err != nil {
		t.Fatalf("SaveFile() error: %v", err)
	}

	loaded, name, err := LoadFile(path, b)
	if err != nil {
		t.Fatalf("LoadFile() error: %v", err)
	}
	if name != "screening" {
		t.Errorf("name = %q, want screening", name)
	}
	checkRanges(t, loaded, mets(l))
}

func TestSaveFileLeavesNoTemp(t *testing.T) {
	b := base(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "out.toml")

	if err := SaveFile(path, "", NewList(NewRangeMET(b, 1000, 2000))); err != nil {
		t.Fatalf("SaveFile() error: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir() error: %v", err)
	}
	if len(entries) != 1 || entries[0].Name() != "out.toml" {
		t.Errorf("directory contents = %v, want only out.toml", entries)
	}
}

func TestLoadFileMissing(t *testing.T) {
	if _, _, err := LoadFile(filepath.Join(t.TempDir(), "nope.toml"), base(t)); err == nil {
		t.Error("LoadFile() of a missing file succeeded")
	}
}

func TestLoadFileMergesOverlaps(t *testing.T) {
	b := base(t)
	path := filepath.Join(t.TempDir(), "overlap.toml")
	content := "version = 1\n\n[[range]]\nstart_met = 1000.0\nstop_met = 3000.0\n\n[[range]]\nstart_met = 2000.0\nstop_met = 4000.0\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing file: %v", err)
	}

	l, _, err := LoadFile(path, b)
	if err != nil {
		t.Fatalf("LoadFile() error: %v", err)
	}
	if l.Len() != 1 {
		t.Fatalf("Len() = %d, want overlapping ranges merged into 1", l.Len())
	}
	r := l.Ranges()[0]
	if math.Abs(r.METStart()-1000) > metTol || math.Abs(r.METStop()-4000) > metTol {
		t.Errorf("merged range = [%v, %v], want [1000, 4000]", r.METStart(), r.METStop())
	}
}
