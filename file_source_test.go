package strobe

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestFileSource_EmitsInitialContents(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")

	content := []byte(`{"key": "value"}`)
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	ch, err := NewFileSource(path).Subscribe(ctx)
	if err != nil {
		t.Fatalf("Subscribe failed: %v", err)
	}

	select {
	case em := <-ch:
		if em.Err != nil {
			t.Fatalf("unexpected error: %v", em.Err)
		}
		if !bytes.Equal(em.Value, content) {
			t.Errorf("expected %q, got %q", content, em.Value)
		}
	case <-ctx.Done():
		t.Fatal("timeout waiting for initial content")
	}
}

func TestFileSource_EmitsOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")

	if err := os.WriteFile(path, []byte(`{"v": 1}`), 0o600); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	ch, err := NewFileSource(path).Subscribe(ctx)
	if err != nil {
		t.Fatalf("Subscribe failed: %v", err)
	}

	// Drain initial contents
	select {
	case <-ch:
	case <-ctx.Done():
		t.Fatal("timeout waiting for initial content")
	}

	updated := []byte(`{"v": 2}`)
	if err := os.WriteFile(path, updated, 0o600); err != nil {
		t.Fatalf("failed to update file: %v", err)
	}

	select {
	case em := <-ch:
		if em.Err != nil {
			t.Fatalf("unexpected error: %v", em.Err)
		}
		if !bytes.Equal(em.Value, updated) {
			t.Errorf("expected %q, got %q", updated, em.Value)
		}
	case <-ctx.Done():
		t.Fatal("timeout waiting for update")
	}
}

func TestFileSource_NonexistentFile(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	_, err := NewFileSource("/nonexistent/path/config.json").Subscribe(ctx)
	if err == nil {
		t.Error("expected error for nonexistent file")
	}
}

func TestFileSource_ClosesOnContextCancel(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")

	if err := os.WriteFile(path, []byte(`{}`), 0o600); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())

	ch, err := NewFileSource(path).Subscribe(ctx)
	if err != nil {
		t.Fatalf("Subscribe failed: %v", err)
	}

	// Drain initial contents
	<-ch

	cancel()

	select {
	case _, ok := <-ch:
		if ok {
			t.Error("expected closed channel after cancel")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for close")
	}
}
