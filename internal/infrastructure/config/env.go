package config

import (
	"fmt"
	"maps"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// envOverrides lists every variable that can override the config file.
// Unset variables leave the file's value alone.
type envOverrides struct {
	LogLevel       string `env:"MICROSCOPE_LOG_LEVEL"`
	LogFormat      string `env:"MICROSCOPE_LOG_FORMAT"`
	ArchiveEnabled *bool  `env:"MICROSCOPE_ARCHIVE_ENABLED"`
	ExportFormat   string `env:"MICROSCOPE_EXPORT_FORMAT"`
	OpenAIAPIKey   string `env:"OPENAI_API_KEY"`
	EmbedderModel  string `env:"MICROSCOPE_EMBEDDER_MODEL"`
	QdrantHost     string `env:"MICROSCOPE_QDRANT_HOST"`
	QdrantPort     int    `env:"MICROSCOPE_QDRANT_PORT"`
	QdrantAPIKey   string `env:"QDRANT_API_KEY"`
}

// loadEnvironment merges .microscope/.env with the process environment.
// Process variables win.
func loadEnvironment(basePath string) (map[string]string, error) {
	merged := map[string]string{}

	path := EnvFilePath(basePath)
	if _, err := os.Stat(path); err == nil {
		fileEnv, err := godotenv.Read(path)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		maps.Copy(merged, fileEnv)
	}

	maps.Copy(merged, env.ToMap(os.Environ()))
	return merged, nil
}

func (c *Config) applyEnvOverrides(environ map[string]string) error {
	var o envOverrides
	if err := env.ParseWithOptions(&o, env.Options{Environment: environ}); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}

	if o.LogLevel != "" {
		c.Log.Level = o.LogLevel
	}
	if o.LogFormat != "" {
		c.Log.Format = o.LogFormat
	}
	if o.ArchiveEnabled != nil {
		c.Archive.Enabled = *o.ArchiveEnabled
	}
	if o.ExportFormat != "" {
		c.Export.Format = o.ExportFormat
	}
	if o.OpenAIAPIKey != "" && c.Embedder.APIKey == "" {
		c.Embedder.APIKey = o.OpenAIAPIKey
	}
	if o.EmbedderModel != "" {
		c.Embedder.Model = o.EmbedderModel
	}
	if o.QdrantHost != "" {
		c.Qdrant.Host = o.QdrantHost
	}
	if o.QdrantPort != 0 {
		c.Qdrant.Port = o.QdrantPort
	}
	if o.QdrantAPIKey != "" && c.Qdrant.APIKey == "" {
		c.Qdrant.APIKey = o.QdrantAPIKey
	}
	return nil
}
