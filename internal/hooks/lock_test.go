package hooks

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
)

func TestLockManager(t *testing.T) {
	ctx := context.Background()

	t.Run("successful lock acquisition", func(t *testing.T) {
		lockFile := filepath.Join(t.TempDir(), "nested", "githooks.lock")
		lm := NewLockManager(nil, lockFile, 0)

		acquired, err := lm.TryAcquire(ctx)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if !acquired {
			t.Fatal("Expected to acquire lock")
		}
		if err := lm.Release(); err != nil {
			t.Fatalf("Unexpected release error: %v", err)
		}
	})

	t.Run("lock held by another holder", func(t *testing.T) {
		lockFile := filepath.Join(t.TempDir(), "githooks.lock")
		first := NewLockManager(nil, lockFile, 0)
		if err := first.Acquire(ctx); err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		t.Cleanup(func() { _ = first.Release() })

		second := NewLockManager(nil, lockFile, 0)
		acquired, err := second.TryAcquire(ctx)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if acquired {
			t.Fatal("Should not acquire lock while another holder has it")
		}

		if err := second.Acquire(ctx); !errors.Is(err, ErrLocked) {
			t.Errorf("Expected ErrLocked, got %v", err)
		}
	})

	t.Run("reacquire after release", func(t *testing.T) {
		lockFile := filepath.Join(t.TempDir(), "githooks.lock")
		first := NewLockManager(nil, lockFile, 0)
		if err := first.Acquire(ctx); err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if err := first.Release(); err != nil {
			t.Fatalf("Unexpected release error: %v", err)
		}

		second := NewLockManager(nil, lockFile, 0)
		if err := second.Acquire(ctx); err != nil {
			t.Fatalf("Expected to acquire released lock: %v", err)
		}
		_ = second.Release()
	})

	t.Run("release without acquire is a no-op", func(t *testing.T) {
		lm := NewLockManager(nil, filepath.Join(t.TempDir(), "githooks.lock"), 0)
		if err := lm.Release(); err != nil {
			t.Errorf("Expected nil error, got %v", err)
		}
	})

	t.Run("lock directory is created through the given filesystem", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "nested")
		lm := NewLockManager(afero.NewReadOnlyFs(afero.NewOsFs()), filepath.Join(dir, "githooks.lock"), 0)

		if _, err := lm.TryAcquire(ctx); err == nil {
			t.Fatal("Expected error creating the lock directory on a read-only filesystem")
		}
		if _, err := os.Stat(dir); !os.IsNotExist(err) {
			t.Errorf("Expected %s to not exist, got %v", dir, err)
		}
	})
}
