package runtimepath

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sys/unix"
)

// ErrAlreadyRunning is returned by Lock when another overlay holds the lock.
var ErrAlreadyRunning = errors.New("another topglass overlay is already running")

// Dir returns the runtime directory used for the instance lock. Priority:
// 1) XDG_RUNTIME_DIR (if set)
// 2) /run/user/<uid> (if present)
// 3) /tmp/topglass-runtime-<uid> (created)
func Dir() (string, error) {
	if runtimeDir := os.Getenv("XDG_RUNTIME_DIR"); runtimeDir != "" {
		return runtimeDir, nil
	}

	uid := os.Getuid()
	runUserDir := fmt.Sprintf("/run/user/%d", uid)
	if info, err := os.Stat(runUserDir); err == nil && info.IsDir() {
		return runUserDir, nil
	}

	tmpDir := fmt.Sprintf("/tmp/topglass-runtime-%d", uid)
	if err := os.MkdirAll(tmpDir, 0700); err != nil {
		return "", fmt.Errorf("failed to create runtime dir: %w", err)
	}
	return tmpDir, nil
}

// LockPath returns the single-instance lock file path for a display. Each X
// display gets its own lock so overlays on :0 and :1 can coexist.
func LockPath(display string) (string, error) {
	runtimeDir, err := Dir()
	if err != nil {
		return "", err
	}
	name := "topglass.lock"
	if display != "" {
		name = "topglass-" + sanitizeDisplay(display) + ".lock"
	}
	return filepath.Join(runtimeDir, name), nil
}

// InstanceLock is an exclusive flock held for the life of the overlay.
type InstanceLock struct {
	f *os.File
}

// Lock takes a non-blocking exclusive lock on path and writes the current pid
// into it. It returns ErrAlreadyRunning if the lock is held elsewhere.
func Lock(path string) (*InstanceLock, error) {
	for attempt := 0; attempt < 3; attempt++ {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0600)
		if err != nil {
			return nil, fmt.Errorf("failed to open lock file %s: %w", path, err)
		}
		if err := unix.Flock(int(f.Fd()), unix.LOCK_EX|unix.LOCK_NB); err != nil {
			f.Close()
			if errors.Is(err, unix.EWOULDBLOCK) {
				return nil, ErrAlreadyRunning
			}
			return nil, fmt.Errorf("failed to lock %s: %w", path, err)
		}
		// The previous holder unlinks the file before unlocking; a lock won
		// on that unlinked inode guards nothing.
		if !isCurrentFile(f, path) {
			f.Close()
			continue
		}
		if err := f.Truncate(0); err == nil {
			fmt.Fprintf(f, "%d\n", os.Getpid())
		}
		return &InstanceLock{f: f}, nil
	}
	return nil, fmt.Errorf("failed to lock %s: lock file keeps being replaced", path)
}

// isCurrentFile reports whether f is still the file at path.
func isCurrentFile(f *os.File, path string) bool {
	held, err := f.Stat()
	if err != nil {
		return false
	}
	cur, err := os.Stat(path)
	if err != nil {
		return false
	}
	return os.SameFile(held, cur)
}

// Release removes the file while still holding the lock, then unlocks.
func (l *InstanceLock) Release() error {
	if l == nil || l.f == nil {
		return nil
	}
	rerr := os.Remove(l.f.Name())
	if errors.Is(rerr, os.ErrNotExist) {
		rerr = nil
	}
	unix.Flock(int(l.f.Fd()), unix.LOCK_UN)
	cerr := l.f.Close()
	l.f = nil
	return errors.Join(rerr, cerr)
}

func sanitizeDisplay(display string) string {
	out := make([]byte, 0, len(display))
	for i := 0; i < len(display); i++ {
		c := display[i]
		switch {
		case c >= '0' && c <= '9', c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c == '.':
			out = append(out, c)
		default:
			out = append(out, '_')
		}
	}
	return string(out)
}
