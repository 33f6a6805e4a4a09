package fs

import (
	"errors"
	"os"
	"path/filepath"
	"syscall"
	"testing"
)

// =============================================================================
// Real FS Tests
//
// These tests verify our Real implementation's helper methods work correctly.
// We're NOT testing os.ReadFile (that's Go's job).
// We ARE testing:
//   - WriteFileAtomic() - our atomic write wrapper
//   - Faulty - error injection used by the catalog and favorites tests
// =============================================================================

// -----------------------------------------------------------------------------
// WriteFileAtomic() Tests
// -----------------------------------------------------------------------------

func TestReal_WriteFileAtomic_CreatesFileWithPerm(t *testing.T) {
	t.Parallel()

	fs := NewReal()
	path := filepath.Join(t.TempDir(), "favorites.json")

	if err := fs.WriteFileAtomic(path, []byte("content"), 0o644); err != nil {
		t.Fatalf("WriteFileAtomic: %v", err)
	}

	data, err := fs.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}

	if got, want := string(data), "content"; got != want {
		t.Errorf("content=%q, want=%q", got, want)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat: %v", err)
	}

	if got, want := info.Mode().Perm(), os.FileMode(0o644); got != want {
		t.Errorf("perm=%v, want=%v", got, want)
	}
}

func TestReal_WriteFileAtomic_OverwritesExisting(t *testing.T) {
	t.Parallel()

	fs := NewReal()
	path := filepath.Join(t.TempDir(), "favorites.json")

	if err := os.WriteFile(path, []byte("old content that is longer"), 0o644); err != nil {
		t.Fatalf("setup: %v", err)
	}

	if err := fs.WriteFileAtomic(path, []byte("new"), 0o644); err != nil {
		t.Fatalf("WriteFileAtomic: %v", err)
	}

	data, _ := os.ReadFile(path)
	if got, want := string(data), "new"; got != want {
		t.Errorf("content=%q, want=%q", got, want)
	}
}

func TestReal_WriteFileAtomic_NoTempFileLeftOnSuccess(t *testing.T) {
	t.Parallel()

	fs := NewReal()
	dir := t.TempDir()

	if err := fs.WriteFileAtomic(filepath.Join(dir, "favorites.json"), []byte("x"), 0o644); err != nil {
		t.Fatalf("WriteFileAtomic: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}

	if got, want := len(entries), 1; got != want {
		t.Fatalf("entries=%d, want=%d (temp file left behind?)", got, want)
	}
}

func TestReal_WriteFileAtomic_FailsWhenDirMissing(t *testing.T) {
	t.Parallel()

	fs := NewReal()
	path := filepath.Join(t.TempDir(), "missing", "favorites.json")

	if err := fs.WriteFileAtomic(path, []byte("x"), 0o644); err == nil {
		t.Fatal("WriteFileAtomic into missing directory should fail")
	}
}

// -----------------------------------------------------------------------------
// Faulty Tests
// -----------------------------------------------------------------------------

func TestFaulty_InjectsConfiguredErrors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "f.json")

	faulty := NewFaulty(NewReal())
	faulty.ReadErr = syscall.EACCES
	faulty.WriteErr = syscall.ENOSPC

	_, readErr := faulty.ReadFile(path)
	if !IsInjected(readErr) || !errors.Is(readErr, os.ErrPermission) {
		t.Errorf("ReadFile err=%v, want injected permission error", readErr)
	}

	writeErr := faulty.WriteFileAtomic(path, []byte("x"), 0o644)
	if !IsInjected(writeErr) || !errors.Is(writeErr, syscall.ENOSPC) {
		t.Errorf("WriteFileAtomic err=%v, want injected ENOSPC", writeErr)
	}

	if _, err := os.Stat(path); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("injected write must not touch the real filesystem, stat err=%v", err)
	}
}

func TestFaulty_PassesThroughWhenUnset(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "f.json")
	faulty := NewFaulty(NewReal())

	if err := faulty.WriteFileAtomic(path, []byte("ok"), 0o644); err != nil {
		t.Fatalf("WriteFileAtomic: %v", err)
	}

	data, err := faulty.ReadFile(path)
	if err != nil || string(data) != "ok" {
		t.Fatalf("ReadFile=(%q, %v), want (\"ok\", nil)", data, err)
	}

	if IsInjected(err) || IsInjected(nil) {
		t.Error("IsInjected must be false for nil")
	}
}
