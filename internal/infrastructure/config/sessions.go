package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// SessionsConfig is the registry of named sessions (read/write).
type SessionsConfig struct {
	Active   string                  `yaml:"active,omitempty"`
	Sessions map[string]SessionEntry `yaml:"sessions,omitempty"`
}

// SessionEntry describes one session.
type SessionEntry struct {
	Collection  string    `yaml:"collection"`
	Description string    `yaml:"description,omitempty"`
	CreatedAt   time.Time `yaml:"created_at"`
}

// LoadSessions reads the session registry. A missing file is an empty registry.
func LoadSessions(basePath string) (*SessionsConfig, error) {
	data, err := os.ReadFile(SessionsFilePath(basePath))
	if os.IsNotExist(err) {
		return &SessionsConfig{
			Sessions: make(map[string]SessionEntry),
		}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading sessions file: %w", err)
	}

	var cfg SessionsConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing sessions file: %w", err)
	}

	if cfg.Sessions == nil {
		cfg.Sessions = make(map[string]SessionEntry)
	}
	if cfg.Active != "" && !cfg.Exists(cfg.Active) {
		return nil, fmt.Errorf("sessions file: active session %q is not registered", cfg.Active)
	}

	return &cfg, nil
}

// Save writes the registry.
func (s *SessionsConfig) Save(basePath string) error {
	if err := os.MkdirAll(ConfigDir(basePath), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshaling sessions config: %w", err)
	}

	if err := writeFileAtomic(SessionsFilePath(basePath), data, 0600); err != nil {
		return fmt.Errorf("writing sessions file: %w", err)
	}

	return nil
}

// Add registers a session. The first session added becomes active.
func (s *SessionsConfig) Add(name string, entry SessionEntry) {
	if s.Sessions == nil {
		s.Sessions = make(map[string]SessionEntry)
	}
	s.Sessions[name] = entry
	if s.Active == "" {
		s.Active = name
	}
}

// Remove unregisters a session, clearing Active if it pointed there.
func (s *SessionsConfig) Remove(name string) {
	delete(s.Sessions, name)
	if s.Active == name {
		s.Active = ""
	}
}

// Use makes name the active session.
func (s *SessionsConfig) Use(name string) error {
	if _, err := s.Get(name); err != nil {
		return err
	}
	s.Active = name
	return nil
}

// Names returns the registered session names, sorted.
func (s *SessionsConfig) Names() []string {
	names := make([]string, 0, len(s.Sessions))
	for name := range s.Sessions {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Get returns the entry for a session.
func (s *SessionsConfig) Get(name string) (*SessionEntry, error) {
	if len(s.Sessions) == 0 {
		return nil, errors.New("no sessions configured (run 'microscope sessions create <name>')")
	}

	entry, ok := s.Sessions[name]
	if !ok {
		names := s.Names()
		if len(names) > 5 {
			names = append(names[:5], "...")
		}
		return nil, fmt.Errorf("session %q not found (available: %s)", name, strings.Join(names, ", "))
	}

	return &entry, nil
}

// Resolve returns name if set, otherwise the active session.
func (s *SessionsConfig) Resolve(name string) (string, error) {
	if name == "" {
		name = s.Active
	}
	if name == "" {
		return "", errors.New("no session selected (use --session or 'microscope sessions use <name>')")
	}
	if _, err := s.Get(name); err != nil {
		return "", err
	}
	return name, nil
}

// Exists reports whether a session is registered.
func (s *SessionsConfig) Exists(name string) bool {
	_, ok := s.Sessions[name]
	return ok
}
