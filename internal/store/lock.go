package store

import (
	"fmt"
	"os"
	"path/filepath"
	"syscall"
	"time"
)

// locksDirName is the subdirectory for lock files.
// Lock files live in a sibling directory so acquiring and releasing a
// lock never touches the mtime of the directory holding the store file.
const locksDirName = ".locks"

// lockTimeout is the timeout for acquiring a file lock.
const lockTimeout = 2 * time.Second

// withFileLock executes handler while holding an exclusive flock on the
// lock file paired with path. The lock is released when handler returns.
func withFileLock(path string, handler func() error) error {
	lock, lockErr := acquireLock(path)
	if lockErr != nil {
		return fmt.Errorf("acquiring lock: %w", lockErr)
	}

	defer lock.release()

	return handler()
}

// fileLock represents a held lock on a store file.
type fileLock struct {
	path string
	file *os.File
}

// release releases the lock and removes the lock file.
// Order matters: remove while holding lock, then unlock, then close.
func (l *fileLock) release() {
	if l.file != nil {
		_ = os.Remove(l.path)
		_ = syscall.Flock(int(l.file.Fd()), syscall.LOCK_UN)
		_ = l.file.Close()
		l.file = nil
	}
}

// acquireLock tries to acquire an exclusive lock with the default timeout.
func acquireLock(path string) (*fileLock, error) {
	return acquireLockWithTimeout(path, lockTimeout)
}

// acquireLockWithTimeout tries to acquire an exclusive lock for the store
// file at path. The flock is taken on a separate <name>.lock file inside
// the .locks subdirectory, never on the store file itself, so the atomic
// rename that replaces the store file cannot invalidate a held lock.
// Because release removes the lock file, there is a race between flock
// acquisition and deletion: a waiter can block on a file that the holder
// unlinks before releasing the flock. The inode re-check after acquiring
// detects that and retries on a fresh file.
func acquireLockWithTimeout(path string, timeout time.Duration) (*fileLock, error) {
	dir := filepath.Dir(path)
	base := filepath.Base(path)
	locksDir := filepath.Join(dir, locksDirName)
	lockPath := filepath.Join(locksDir, base+".lock")

	deadline := time.Now().Add(timeout)

	for {
		remaining := time.Until(deadline)
		if remaining <= 0 {
			return nil, fmt.Errorf("%w: %s", errLockTimeout, path)
		}

		mkdirErr := os.MkdirAll(locksDir, dirPerms)
		if mkdirErr != nil {
			return nil, fmt.Errorf("creating locks dir: %w", mkdirErr)
		}

		file, openErr := os.OpenFile(lockPath, os.O_CREATE|os.O_RDWR, filePerms)
		if openErr != nil {
			return nil, fmt.Errorf("%w: %w", errLockFileOpen, openErr)
		}

		// Remember the inode we opened so we can tell whether the file
		// at lockPath is still the one we are flocked on.
		var openStat syscall.Stat_t

		err := syscall.Fstat(int(file.Fd()), &openStat)
		if err != nil {
			_ = file.Close()

			return nil, fmt.Errorf("fstat lock file: %w", err)
		}

		fd := int(file.Fd())
		done := make(chan error, 1)

		go func() {
			done <- syscall.Flock(fd, syscall.LOCK_EX)
		}()

		select {
		case err := <-done:
			if err != nil {
				_ = file.Close()

				return nil, fmt.Errorf("flock: %w", err)
			}

			var pathStat syscall.Stat_t

			statErr := syscall.Stat(lockPath, &pathStat)
			if statErr != nil || pathStat.Ino != openStat.Ino {
				// The previous holder removed the lock file while we
				// were waiting. Retry against the recreated file.
				_ = syscall.Flock(fd, syscall.LOCK_UN)
				_ = file.Close()

				continue
			}

			return &fileLock{path: lockPath, file: file}, nil
		case <-time.After(remaining):
			_ = file.Close()

			return nil, fmt.Errorf("%w: %s", errLockTimeout, path)
		}
	}
}
