// Package config loads .microscope configuration and the session registry.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultConfigDir is the directory name for microscope configuration.
	DefaultConfigDir = ".microscope"
	// DefaultConfigFile is the default config file name.
	DefaultConfigFile = "config.yaml"
	// DefaultSessionsFile is the session registry file name.
	DefaultSessionsFile = "sessions.yaml"
	// DefaultEnvFile holds optional environment overrides.
	DefaultEnvFile = ".env"

	sessionFileName = "session.json"
	archiveFileName = "archive.db"
)

var (
	reNonAlphanumeric     = regexp.MustCompile(`[^a-z0-9_]`)
	reMultipleUnderscores = regexp.MustCompile(`_+`)
)

// ErrNotInitialized is returned when no config file exists yet.
var ErrNotInitialized = errors.New("microscope is not initialized here (run 'microscope init')")

// Config holds static configuration (read-only after load).
type Config struct {
	Log      LogConfig      `yaml:"log,omitempty"`
	Archive  ArchiveConfig  `yaml:"archive,omitempty"`
	Export   ExportConfig   `yaml:"export,omitempty"`
	Watch    WatchConfig    `yaml:"watch,omitempty"`
	Embedder EmbedderConfig `yaml:"embedder,omitempty"`
	Qdrant   QdrantConfig   `yaml:"qdrant,omitempty"`
}

// LogConfig controls the zap logger.
type LogConfig struct {
	Level  string `yaml:"level,omitempty" validate:"oneof=debug info warn error"`
	Format string `yaml:"format,omitempty" validate:"oneof=console json"`
}

// ArchiveConfig controls the per-session SQLite archive.
type ArchiveConfig struct {
	Enabled bool `yaml:"enabled"`
	// KeepVersions bounds stored snapshot versions; 0 keeps all of them.
	KeepVersions int `yaml:"keep_versions,omitempty" validate:"gte=0"`
	// Path overrides the archive location. Normally it is derived per
	// session with ArchivePathForSession.
	Path string `yaml:"path,omitempty"`
}

// ExportConfig sets the default export format.
type ExportConfig struct {
	Format string `yaml:"format,omitempty" validate:"oneof=markdown text json"`
}

// WatchConfig tunes the session file watcher used by follow.
type WatchConfig struct {
	Debounce time.Duration `yaml:"debounce,omitempty" validate:"gte=0"`
}

// EmbedderConfig holds configuration for the embedding provider.
type EmbedderConfig struct {
	Provider string `yaml:"provider,omitempty" validate:"omitempty,oneof=openai"`
	Model    string `yaml:"model,omitempty"`
	APIKey   string `yaml:"api_key,omitempty"`
	// BaseURL points the client at an OpenAI-compatible endpoint.
	BaseURL string `yaml:"base_url,omitempty" validate:"omitempty,url"`
}

// QdrantConfig holds configuration for the Qdrant vector database.
type QdrantConfig struct {
	Host       string `yaml:"host,omitempty" validate:"required"`
	Port       int    `yaml:"port,omitempty" validate:"gt=0,lte=65535"`
	Collection string `yaml:"collection,omitempty"`
	APIKey     string `yaml:"api_key,omitempty"`
}

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
		Archive: ArchiveConfig{
			Enabled:      true,
			KeepVersions: 200,
		},
		Export: ExportConfig{
			Format: "markdown",
		},
		Watch: WatchConfig{
			Debounce: 200 * time.Millisecond,
		},
		Embedder: EmbedderConfig{
			Provider: "openai",
			Model:    "text-embedding-3-small",
		},
		Qdrant: QdrantConfig{
			Host: "localhost",
			Port: 6334,
		},
	}
}

// Load reads .microscope/config.yaml under basePath, applies environment
// overrides and validates the result.
func Load(basePath string) (*Config, error) {
	configFile := ConfigFilePath(basePath)

	data, err := os.ReadFile(configFile)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s missing", ErrNotInitialized, configFile)
	}
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	// Start with defaults
	cfg := Default()

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	environ, err := loadEnvironment(basePath)
	if err != nil {
		return nil, err
	}
	if err := cfg.applyEnvOverrides(environ); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks field constraints.
func (c *Config) Validate() error {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return fmt.Errorf("validating config: %w", err)
		}
		msgs := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			msgs = append(msgs, fmt.Sprintf("%s: failed %q (value %v)", fe.Namespace(), fe.Tag()+fieldParam(fe), fe.Value()))
		}
		return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
	}
	return nil
}

func fieldParam(fe validator.FieldError) string {
	if fe.Param() == "" {
		return ""
	}
	return "=" + fe.Param()
}

// ConfigDir returns the path to the .microscope directory.
func ConfigDir(basePath string) string {
	return filepath.Join(basePath, DefaultConfigDir)
}

// ConfigFilePath returns the path to the config file.
func ConfigFilePath(basePath string) string {
	return filepath.Join(basePath, DefaultConfigDir, DefaultConfigFile)
}

// SessionsFilePath returns the path to the session registry.
func SessionsFilePath(basePath string) string {
	return filepath.Join(basePath, DefaultConfigDir, DefaultSessionsFile)
}

// EnvFilePath returns the path to the optional .env file.
func EnvFilePath(basePath string) string {
	return filepath.Join(basePath, DefaultConfigDir, DefaultEnvFile)
}

// SanitizeSessionName converts a session name to a safe directory and
// collection suffix.
func SanitizeSessionName(name string) string {
	name = strings.ToLower(name)
	name = strings.ReplaceAll(name, " ", "_")
	name = strings.ReplaceAll(name, "-", "_")
	name = reNonAlphanumeric.ReplaceAllString(name, "")
	name = reMultipleUnderscores.ReplaceAllString(name, "_")
	name = strings.Trim(name, "_")

	if name == "" {
		return "default"
	}

	return name
}

// GenerateCollectionName creates the Qdrant collection name for a session.
func GenerateCollectionName(sessionName string) string {
	return "microscope_" + SanitizeSessionName(sessionName)
}

// SessionDir returns the directory holding a session's files.
func SessionDir(basePath, sessionName string) string {
	return filepath.Join(basePath, DefaultConfigDir, "sessions", SanitizeSessionName(sessionName))
}

// SessionFilePathFor returns the JSON snapshot path for a session.
func SessionFilePathFor(basePath, sessionName string) string {
	return filepath.Join(SessionDir(basePath, sessionName), sessionFileName)
}

// ArchivePathForSession returns the SQLite archive path for a session.
func ArchivePathForSession(basePath, sessionName string) string {
	return filepath.Join(SessionDir(basePath, sessionName), archiveFileName)
}
