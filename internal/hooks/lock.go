package hooks

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"github.com/spf13/afero"
)

const (
	lockDirMode   = 0o755
	lockRetryWait = 50 * time.Millisecond
)

// ErrLocked is returned when another process holds the lock.
var ErrLocked = errors.New("another githooks process holds the lock")

// LockManager serializes runs that mutate the hooks directory.
type LockManager struct {
	fs       afero.Fs
	lockFile string
	timeout  time.Duration
	lock     *flock.Flock
}

// NewLockManager creates a lock manager for lockFile. A zero timeout tries once.
// The lock's directory is created on fs (the OS filesystem when nil); flock
// itself always locks the OS path, so fs must be backed by the real disk.
func NewLockManager(fs afero.Fs, lockFile string, timeout time.Duration) *LockManager {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &LockManager{
		fs:       fs,
		lockFile: lockFile,
		timeout:  timeout,
	}
}

// Path returns the lock file path.
func (l *LockManager) Path() string {
	return l.lockFile
}

// TryAcquire attempts to take the lock, waiting up to the configured timeout.
// Returns false if another process still holds it when the timeout expires.
func (l *LockManager) TryAcquire(ctx context.Context) (bool, error) {
	if err := l.fs.MkdirAll(filepath.Dir(l.lockFile), lockDirMode); err != nil {
		return false, fmt.Errorf("creating lock directory: %w", err)
	}

	lock := flock.New(l.lockFile)

	var (
		locked bool
		err    error
	)
	if l.timeout <= 0 {
		locked, err = lock.TryLock()
	} else {
		waitCtx, cancel := context.WithTimeout(ctx, l.timeout)
		defer cancel()
		locked, err = lock.TryLockContext(waitCtx, lockRetryWait)
		if errors.Is(err, context.DeadlineExceeded) {
			err = nil
		}
	}
	if err != nil {
		return false, fmt.Errorf("acquiring lock %s: %w", l.lockFile, err)
	}
	if !locked {
		return false, nil
	}

	l.lock = lock
	return true, nil
}

// Acquire is TryAcquire that reports a held lock as ErrLocked.
func (l *LockManager) Acquire(ctx context.Context) error {
	ok, err := l.TryAcquire(ctx)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: %s", ErrLocked, l.lockFile)
	}
	return nil
}

// Release releases the lock. Releasing an unheld lock is a no-op.
func (l *LockManager) Release() error {
	if l.lock == nil {
		return nil
	}
	err := l.lock.Unlock()
	l.lock = nil
	if err != nil {
		return fmt.Errorf("releasing lock %s: %w", l.lockFile, err)
	}
	return nil
}
