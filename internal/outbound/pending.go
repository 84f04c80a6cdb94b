package outbound

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/gofrs/flock"
)

// PendingFileName is the file kept next to the settings file between a
// handoff and the paste that consumes it.
const PendingFileName = "pending.txt"

// Pending keeps the last handed-off text in a file until it is taken once.
// Store and Take hold an exclusive file lock so separate tldr processes see
// each text at most once.
type Pending struct {
	path string
	mu   sync.Mutex
	lock *flock.Flock
}

// NewPending returns a Pending backed by the file at path.
func NewPending(path string) *Pending {
	return &Pending{
		path: path,
		lock: flock.New(path + ".lock"),
	}
}

// Path returns the pending file path.
func (p *Pending) Path() string {
	return p.path
}

// Store replaces any waiting text.
func (p *Pending) Store(text string) error {
	unlock, err := p.acquire()
	if err != nil {
		return err
	}
	defer unlock()

	tmp, err := os.CreateTemp(filepath.Dir(p.path), ".pending-*.txt")
	if err != nil {
		return fmt.Errorf("failed to create pending file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.WriteString(text); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write pending text: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write pending text: %w", err)
	}
	if err := os.Rename(tmp.Name(), p.path); err != nil {
		return fmt.Errorf("failed to save pending text: %w", err)
	}
	return nil
}

// Take returns the waiting text and removes it. ok is false when nothing waits.
func (p *Pending) Take() (text string, ok bool, err error) {
	unlock, err := p.acquire()
	if err != nil {
		return "", false, err
	}
	defer unlock()

	raw, err := os.ReadFile(p.path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read pending text: %w", err)
	}
	if err := os.Remove(p.path); err != nil {
		return "", false, fmt.Errorf("failed to clear pending text: %w", err)
	}
	return string(raw), true, nil
}

// acquire takes the in-process mutex, then the file lock.
func (p *Pending) acquire() (func(), error) {
	if err := os.MkdirAll(filepath.Dir(p.path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create pending directory: %w", err)
	}

	p.mu.Lock()
	if err := p.lock.Lock(); err != nil {
		p.mu.Unlock()
		return nil, fmt.Errorf("failed to lock pending text: %w", err)
	}
	return func() {
		_ = p.lock.Unlock()
		p.mu.Unlock()
	}, nil
}
