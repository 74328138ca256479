package storage

import (
	"bytes"
	"context"
	"errors"
	"io"
	"io/fs"
	"testing"
)

func TestLocalStorageRoundTrip(t *testing.T) {
	s, err := NewLocal(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()

	content := []byte("%PDF-1.4 test")
	if err := s.Save(ctx, "doc.pdf", bytes.NewReader(content), int64(len(content)), "application/pdf"); err != nil {
		t.Fatal(err)
	}

	rc, size, err := s.Open(ctx, "doc.pdf")
	if err != nil {
		t.Fatal(err)
	}
	defer rc.Close()
	if size != int64(len(content)) {
		t.Errorf("size = %d, want %d", size, len(content))
	}
	got, _ := io.ReadAll(rc)
	if !bytes.Equal(got, content) {
		t.Error("content mismatch")
	}

	if err := s.Delete(ctx, "doc.pdf"); err != nil {
		t.Fatal(err)
	}
	if _, _, err := s.Open(ctx, "doc.pdf"); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("Open after Delete = %v, want fs.ErrNotExist", err)
	}
}

func TestLocalStorageFlattensTraversal(t *testing.T) {
	dir := t.TempDir()
	s, err := NewLocal(dir)
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()

	if err := s.Save(ctx, "../../etc/evil.pdf", bytes.NewReader([]byte("x")), 1, ""); err != nil {
		t.Fatal(err)
	}
	// The object is reachable by its base name only, inside the directory.
	if _, _, err := s.Open(ctx, "evil.pdf"); err != nil {
		t.Errorf("flattened object unreachable: %v", err)
	}
}

func TestLocalStorageDeleteMissing(t *testing.T) {
	s, err := NewLocal(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Delete(context.Background(), "nope.pdf"); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("Delete missing = %v, want fs.ErrNotExist", err)
	}
}
