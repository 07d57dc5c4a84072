package ranking

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(filepath.Join(t.TempDir(), "schika.json"))
}

func TestLoadMissingDocument(t *testing.T) {
	s := testStore(t)
	_, err := s.Load()
	if !errors.Is(err, ErrNoTable) {
		t.Errorf("Load() error = %v, want ErrNoTable", err)
	}
}

func TestLoadMalformedDocument(t *testing.T) {
	s := testStore(t)
	if err := os.WriteFile(s.path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	_, err := s.Load()
	if err == nil {
		t.Error("Load() should error on a malformed document")
	}
	if errors.Is(err, ErrNoTable) {
		t.Error("malformed document must be distinguishable from a missing one")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := testStore(t)
	in := Table{
		"alice": {Score: 1000, Active: true},
		"bob":   {Score: 992, Active: false},
	}
	if err := s.Save(in); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	out, err := s.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("Load() returned %d records, want 2", len(out))
	}
	if out["alice"] != in["alice"] || out["bob"] != in["bob"] {
		t.Errorf("Load() = %v, want %v", out, in)
	}
}

func TestUpdateSaves(t *testing.T) {
	s := testStore(t)
	err := s.Update(func(tbl Table) (Table, bool, error) {
		if tbl != nil {
			t.Errorf("fn received %v, want nil for a missing document", tbl)
		}
		tbl = Table{}
		tbl.SetScore("alice", 1000)
		return tbl, true, nil
	})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	out, err := s.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if out["alice"].Score != 1000 || !out["alice"].Active {
		t.Errorf("Load() = %v, want alice at 1000, active", out)
	}
}

func TestUpdateDryRunLeavesBytesUntouched(t *testing.T) {
	s := testStore(t)
	if err := s.Save(Table{"alice": {Score: 1000, Active: true}}); err != nil {
		t.Fatal(err)
	}
	before, err := os.ReadFile(s.path)
	if err != nil {
		t.Fatal(err)
	}

	err = s.Update(func(tbl Table) (Table, bool, error) {
		tbl.SetScore("alice", 9999)
		return tbl, false, nil
	})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	after, err := os.ReadFile(s.path)
	if err != nil {
		t.Fatal(err)
	}
	if string(before) != string(after) {
		t.Errorf("dry-run update changed the document:\nbefore: %s\nafter:  %s", before, after)
	}
}

func TestSetActiveUnknownPlayer(t *testing.T) {
	tbl := Table{"alice": {Score: 1000, Active: true}}
	err := tbl.SetActive("ghost", false)
	if !errors.Is(err, ErrUnknownPlayer) {
		t.Errorf("SetActive(ghost) error = %v, want ErrUnknownPlayer", err)
	}
	if !tbl["alice"].Active {
		t.Error("failed SetActive must not mutate other records")
	}
}

func TestHideKeepsScore(t *testing.T) {
	tbl := Table{"alice": {Score: 1234, Active: true}}
	if err := tbl.SetActive("alice", false); err != nil {
		t.Fatalf("SetActive() error = %v", err)
	}
	if tbl["alice"].Active {
		t.Error("alice should be hidden")
	}
	if tbl["alice"].Score != 1234 {
		t.Errorf("hide changed score to %d, want 1234", tbl["alice"].Score)
	}
}
