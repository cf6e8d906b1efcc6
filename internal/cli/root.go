package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/julianstephens/riji/internal/backup"
	"github.com/julianstephens/riji/internal/journal"
	"github.com/julianstephens/riji/internal/lock"
	"github.com/julianstephens/riji/internal/logger"
	"github.com/julianstephens/riji/internal/storage"
)

type Context struct {
	Store   storage.Provider
	Journal *journal.Store
	Out     io.Writer
	Err     io.Writer
	In      io.Reader

	lock   *lock.Lock
	now    func() time.Time
	stdin  *bufio.Reader
	loaded bool
}

func NewContext(store storage.Provider) *Context {
	return &Context{
		Store: store,
		Out:   os.Stdout,
		Err:   os.Stderr,
		In:    os.Stdin,
		now:   time.Now,
	}
}

// Load reads the journal. A missing journal is an error; an unreadable one
// is backed up and replaced by an empty journal so the session can go on.
func (c *Context) Load() error {
	if c.loaded {
		return nil
	}
	c.Journal = journal.New(c.Store, journal.WithClock(c.now))
	if err := c.Journal.Load(); err != nil {
		if errors.Is(err, storage.ErrNotInitialized) {
			return fmt.Errorf("no journal at %s: %w", c.Store.GetConfigPath(), storage.ErrNotInitialized)
		}
		logger.Warn("Journal could not be read, starting empty", "path", c.Store.GetConfigPath(), "error", err)
		c.PerformAutomaticBackup()
		fmt.Fprintf(c.Err, "⚠ Could not read %s (%v); starting with an empty journal.\n", c.Store.GetConfigPath(), err)
	}
	c.loaded = true
	return nil
}

// LoadForWrite takes the journal lock before loading. The lock is held
// until Close.
func (c *Context) LoadForWrite() error {
	if err := c.acquireLock(); err != nil {
		return err
	}
	return c.Load()
}

func (c *Context) acquireLock() error {
	if c.lock != nil {
		return nil
	}
	l, err := lock.Acquire(filepath.Dir(c.Store.GetConfigPath()))
	if err != nil {
		return err
	}
	c.lock = l
	return nil
}

// Close releases the lock and the storage connection
func (c *Context) Close() error {
	lockErr := c.lock.Release()
	c.lock = nil
	return errors.Join(lockErr, c.Store.Close())
}

// PerformAutomaticBackup creates an automatic backup and silently handles errors
func (c *Context) PerformAutomaticBackup() {
	if _, err := os.Stat(c.Store.GetConfigPath()); err != nil {
		return
	}
	mgr := backup.NewManager(c.Store.GetConfigPath())
	if _, err := mgr.CreateBackup(); err != nil {
		// Log warning but don't interrupt user workflow
		logger.Warn("Automatic backup failed", "error", err)
	}
}

func (c *Context) input() *bufio.Reader {
	if c.stdin == nil {
		c.stdin = bufio.NewReader(c.In)
	}
	return c.stdin
}

// confirm asks a yes/no question on Out and reads the answer from In
func (c *Context) confirm(prompt string) (bool, error) {
	fmt.Fprintf(c.Out, "%s [y/N]: ", prompt)
	response, err := c.input().ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, err
	}
	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes", nil
}
