package settings

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
	"github.com/justtldr/cli/internal/aiservice"
	"github.com/justtldr/cli/internal/prompts"
	"github.com/samber/lo"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultDirName is the directory created under the user config dir
	DefaultDirName = "tldr"

	// DefaultFileName is the settings file name
	DefaultFileName = "settings.yaml"
)

// DefaultPath returns the settings file location under the user's config directory.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate config directory: %w", err)
	}
	return filepath.Join(dir, DefaultDirName, DefaultFileName), nil
}

// Store reads and writes the settings file. Every mutation runs under an
// exclusive file lock so concurrent invocations do not lose writes.
type Store struct {
	path string
	lock *flock.Flock
}

// NewStore returns a store backed by the file at path.
func NewStore(path string) *Store {
	return &Store{
		path: path,
		lock: flock.New(path + ".lock"),
	}
}

// Path returns the settings file path.
func (s *Store) Path() string {
	return s.path
}

// Load returns the stored settings, or defaults when nothing has been saved yet.
func (s *Store) Load() (*Data, error) {
	if err := s.ensureDir(); err != nil {
		return nil, err
	}
	if err := s.lock.RLock(); err != nil {
		return nil, fmt.Errorf("failed to lock settings: %w", err)
	}
	defer s.lock.Unlock()

	return s.read()
}

// Save replaces the stored settings.
func (s *Store) Save(d *Data) error {
	return s.update(func(cur *Data) error {
		*cur = *d
		return nil
	})
}

// AddPrompt stores a new custom prompt and returns it.
func (s *Store) AddPrompt(name, content string) (prompts.Prompt, error) {
	name, content = strings.TrimSpace(name), strings.TrimSpace(content)
	if name == "" || content == "" {
		return prompts.Prompt{}, ErrEmptyPrompt
	}

	p := prompts.Prompt{
		ID:      "custom-" + uuid.NewString(),
		Name:    name,
		Content: content,
	}
	err := s.update(func(d *Data) error {
		d.Prompts = append(d.Prompts, p)
		return nil
	})
	if err != nil {
		return prompts.Prompt{}, err
	}
	return p, nil
}

// EditPrompt changes a prompt's name and/or content. Empty values are left as they were.
func (s *Store) EditPrompt(id, name, content string) error {
	return s.update(func(d *Data) error {
		_, idx, ok := lo.FindIndexOf(d.Prompts, func(p prompts.Prompt) bool { return p.ID == id })
		if !ok {
			return fmt.Errorf("%w: %s", ErrPromptNotFound, id)
		}
		if v := strings.TrimSpace(name); v != "" {
			d.Prompts[idx].Name = v
		}
		if v := strings.TrimSpace(content); v != "" {
			d.Prompts[idx].Content = v
		}
		return nil
	})
}

// DeletePrompt removes a prompt. The default prompt cannot be deleted.
func (s *Store) DeletePrompt(id string) error {
	return s.update(func(d *Data) error {
		p, ok := lo.Find(d.Prompts, func(p prompts.Prompt) bool { return p.ID == id })
		if !ok {
			return fmt.Errorf("%w: %s", ErrPromptNotFound, id)
		}
		if p.IsDefault {
			return ErrDefaultPrompt
		}
		d.Prompts = lo.Reject(d.Prompts, func(p prompts.Prompt, _ int) bool { return p.ID == id })
		return nil
	})
}

// SetDefaultPrompt makes the given prompt the only default.
func (s *Store) SetDefaultPrompt(id string) error {
	return s.update(func(d *Data) error {
		if !lo.ContainsBy(d.Prompts, func(p prompts.Prompt) bool { return p.ID == id }) {
			return fmt.Errorf("%w: %s", ErrPromptNotFound, id)
		}
		for i := range d.Prompts {
			d.Prompts[i].IsDefault = d.Prompts[i].ID == id
		}
		return nil
	})
}

// SetAIService selects the service text is handed off to.
func (s *Store) SetAIService(id aiservice.ID) error {
	if _, err := aiservice.Get(id); err != nil {
		return err
	}
	return s.update(func(d *Data) error {
		d.AIServiceID = id
		return nil
	})
}

// SetPremium records whether the user has a paid plan on a service.
func (s *Store) SetPremium(id aiservice.ID, premium bool) error {
	if _, err := aiservice.Get(id); err != nil {
		return err
	}
	return s.update(func(d *Data) error {
		d.PremiumServices[string(id)] = premium
		return nil
	})
}

// ExcludeSites adds sites to the excluded list.
func (s *Store) ExcludeSites(sites ...string) error {
	return s.update(func(d *Data) error {
		d.ExcludedSites = normalizeSites(append(d.ExcludedSites, sites...))
		return nil
	})
}

// SetExcludedSites replaces the excluded list.
func (s *Store) SetExcludedSites(sites []string) error {
	return s.update(func(d *Data) error {
		d.ExcludedSites = normalizeSites(sites)
		return nil
	})
}

// IncludeSite removes a site from the excluded list.
func (s *Store) IncludeSite(site string) error {
	site = NormalizeSite(site)
	return s.update(func(d *Data) error {
		d.ExcludedSites = lo.Reject(d.ExcludedSites, func(e string, _ int) bool { return NormalizeSite(e) == site })
		return nil
	})
}

// Reset restores the built-in prompts and service and clears premium flags
// and exclusions.
func (s *Store) Reset() error {
	return s.update(func(d *Data) error {
		*d = *Defaults()
		d.ExcludedSites = []string{}
		return nil
	})
}

func normalizeSites(sites []string) []string {
	out := lo.Map(sites, func(s string, _ int) string { return NormalizeSite(s) })
	out = lo.Compact(out)
	return lo.Uniq(out)
}

// update applies fn to the stored settings under an exclusive lock and saves the result.
func (s *Store) update(fn func(*Data) error) error {
	if err := s.ensureDir(); err != nil {
		return err
	}
	if err := s.lock.Lock(); err != nil {
		return fmt.Errorf("failed to lock settings: %w", err)
	}
	defer s.lock.Unlock()

	d, err := s.read()
	if err != nil {
		return err
	}
	if err := fn(d); err != nil {
		return err
	}
	return s.write(d)
}

// read loads the file and upgrades older schemas in memory. Migrations are
// persisted by the next write.
func (s *Store) read() (*Data, error) {
	raw, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return Defaults(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read settings: %w", err)
	}

	d := &Data{}
	if err := yaml.Unmarshal(raw, d); err != nil {
		return nil, fmt.Errorf("failed to parse settings %s: %w", s.path, err)
	}

	if err := migrate(d); err != nil {
		return nil, err
	}
	d.fillMissing()
	return d, nil
}

// write saves d through a temp file and rename so a crash never leaves a torn file.
func (s *Store) write(d *Data) error {
	d.Version = CurrentVersion
	raw, err := yaml.Marshal(d)
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".settings-*.yaml")
	if err != nil {
		return fmt.Errorf("failed to create temp settings file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write settings: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write settings: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}

func (s *Store) ensureDir() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("failed to create settings directory: %w", err)
	}
	return nil
}
