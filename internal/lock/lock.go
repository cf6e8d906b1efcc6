// Package lock guards a journal against two riji processes writing it at
// once. The lockfile holds the owner's PID and executable name; a lock whose
// owner is gone is taken over.
package lock

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/mitchellh/go-ps"

	"github.com/julianstephens/riji/internal/constants"
	"github.com/julianstephens/riji/internal/logger"
)

// ErrLocked is returned when another live process holds the lock
var ErrLocked = errors.New("journal is in use by another riji process")

var (
	findProcessFunc = ps.FindProcess
	getpidFunc      = os.Getpid
)

// Lock is a held lockfile. Release removes it.
type Lock struct {
	path string
}

// Acquire creates the lockfile in dir. A lockfile left behind by a process
// that no longer runs is replaced.
func Acquire(dir string) (*Lock, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create lock directory: %w", err)
	}
	path := filepath.Join(dir, constants.LockFileName)

	for attempt := 0; attempt < 2; attempt++ {
		f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0600)
		if err == nil {
			_, werr := fmt.Fprintf(f, "%d\n%s\n", getpidFunc(), executableName())
			cerr := f.Close()
			if werr != nil || cerr != nil {
				_ = os.Remove(path)
				return nil, fmt.Errorf("failed to write lockfile: %w", errors.Join(werr, cerr))
			}
			logger.Debug("Acquired lock", "path", path)
			return &Lock{path: path}, nil
		}
		if !os.IsExist(err) {
			return nil, fmt.Errorf("failed to create lockfile: %w", err)
		}

		pid, held := holder(path)
		if held {
			return nil, fmt.Errorf("%w (pid %d, lockfile %s)", ErrLocked, pid, path)
		}
		logger.Warn("Removing stale lockfile", "path", path, "pid", pid)
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to remove stale lockfile: %w", err)
		}
	}
	return nil, fmt.Errorf("%w (lockfile %s)", ErrLocked, path)
}

// Release removes the lockfile. It is safe to call more than once.
func (l *Lock) Release() error {
	if l == nil || l.path == "" {
		return nil
	}
	err := os.Remove(l.path)
	l.path = ""
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to release lock: %w", err)
	}
	return nil
}

// holder reads the lockfile and reports whether its owner is still running.
// Unreadable or malformed lockfiles count as stale.
func holder(path string) (int, bool) {
	content, err := os.ReadFile(path)
	if err != nil {
		return 0, false
	}
	lines := strings.Split(strings.TrimSpace(string(content)), "\n")
	pid, err := strconv.Atoi(strings.TrimSpace(lines[0]))
	if err != nil || pid <= 0 {
		return 0, false
	}

	process, err := findProcessFunc(pid)
	if err != nil || process == nil {
		return pid, false
	}

	// A recycled PID belongs to some other program
	if len(lines) > 1 {
		if exe := strings.TrimSpace(lines[1]); exe != "" && !sameExecutable(exe, process.Executable()) {
			return pid, false
		}
	}
	return pid, true
}

// sameExecutable compares the recorded name with the one the process table
// reports, which Linux truncates to 15 bytes.
func sameExecutable(recorded, reported string) bool {
	if recorded == reported {
		return true
	}
	return len(reported) == 15 && strings.HasPrefix(recorded, reported)
}

func executableName() string {
	exe, err := os.Executable()
	if err != nil {
		return constants.AppName
	}
	return filepath.Base(exe)
}
