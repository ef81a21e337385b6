package storage

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")

	t.Run("missing key reads empty", func(t *testing.T) {
		s := NewFileStore(path)
		got, err := s.Get(KeyLastDocument)
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if got != "" {
			t.Errorf("got %q, want empty", got)
		}
	})

	t.Run("set then get", func(t *testing.T) {
		s := NewFileStore(path)
		if err := s.Set(KeyLastDocument, "report.pdf"); err != nil {
			t.Fatalf("set: %v", err)
		}
		got, err := s.Get(KeyLastDocument)
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if got != "report.pdf" {
			t.Errorf("got %q, want report.pdf", got)
		}
	})

	t.Run("survives reopening", func(t *testing.T) {
		s := NewFileStore(path)
		got, err := s.Get(KeyLastDocument)
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if got != "report.pdf" {
			t.Errorf("got %q, want report.pdf", got)
		}
	})

	t.Run("overwrite replaces value", func(t *testing.T) {
		s := NewFileStore(path)
		if err := s.Set(KeyLastDocument, "other.pdf"); err != nil {
			t.Fatalf("set: %v", err)
		}
		got, _ := s.Get(KeyLastDocument)
		if got != "other.pdf" {
			t.Errorf("got %q, want other.pdf", got)
		}
	})

	t.Run("no leftover temp file", func(t *testing.T) {
		if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
			t.Errorf("temp file left behind: %v", err)
		}
	})
}

func TestFileStoreCorruptFileStartsFresh(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}

	s := NewFileStore(path)
	got, err := s.Get(KeyLastDocument)
	if err != nil {
		t.Fatalf("get on corrupt file: %v", err)
	}
	if got != "" {
		t.Errorf("got %q, want empty", got)
	}

	if err := s.Set(KeyLastDocument, "fresh.pdf"); err != nil {
		t.Fatalf("set over corrupt file: %v", err)
	}
	got, _ = s.Get(KeyLastDocument)
	if got != "fresh.pdf" {
		t.Errorf("got %q, want fresh.pdf", got)
	}
}

func TestFileStoreCreatesParentDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "state.json")
	s := NewFileStore(path)
	if err := s.Set("k", "v"); err != nil {
		t.Fatalf("set: %v", err)
	}
	got, _ := s.Get("k")
	if got != "v" {
		t.Errorf("got %q, want v", got)
	}
}

func TestMemStore(t *testing.T) {
	s := NewMemStore()
	got, err := s.Get("missing")
	if err != nil || got != "" {
		t.Fatalf("get missing: %q, %v", got, err)
	}
	if err := s.Set("k", "v"); err != nil {
		t.Fatal(err)
	}
	got, _ = s.Get("k")
	if got != "v" {
		t.Errorf("got %q", got)
	}
}
