package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	defaultMaxRows        = 1000
	defaultStatementCache = 32
	defaultHistoryLimit   = 500
)

// Config is the REPL configuration. Values come from the YAML file first,
// then RELAL_ENGINE and DATABASE_URL, then command-line flags.
type Config struct {
	Engine         string `yaml:"engine"`
	DSN            string `yaml:"dsn"`
	HistoryFile    string `yaml:"history_file"`
	HistoryLimit   int    `yaml:"history_limit"`
	MaxRows        int    `yaml:"max_rows"`
	StatementCache int    `yaml:"statement_cache"`
	Parameterize   *bool  `yaml:"parameterize,omitempty"`
	Format         bool   `yaml:"format"`
}

// defaultConfigPath returns ~/.relal.yaml, or "" when the home directory
// is unknown.
func defaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".relal.yaml")
}

// loadConfig reads path and applies environment overrides. A missing file
// is not an error when the path is the default one.
func loadConfig(path string, explicit bool, getenv func(string) string) (Config, error) {
	var cfg Config
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist) && !explicit:
		case err != nil:
			return Config{}, fmt.Errorf("read config: %w", err)
		default:
			dec := yaml.NewDecoder(bytes.NewReader(data))
			dec.KnownFields(true)
			if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
				return Config{}, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}

	if v := strings.TrimSpace(getenv("RELAL_ENGINE")); v != "" {
		cfg.Engine = v
	}
	if v := strings.TrimSpace(getenv("DATABASE_URL")); v != "" {
		cfg.DSN = v
	}
	return cfg.withDefaults()
}

func (c Config) withDefaults() (Config, error) {
	c.Engine = strings.ToLower(strings.TrimSpace(c.Engine))
	if c.Engine == "" {
		c.Engine = "postgres"
	}
	if !isValidEngine(c.Engine) {
		return Config{}, fmt.Errorf("unknown engine %q (choose: postgres, mysql, sqlite)", c.Engine)
	}
	if c.MaxRows <= 0 {
		c.MaxRows = defaultMaxRows
	}
	if c.StatementCache <= 0 {
		c.StatementCache = defaultStatementCache
	}
	if c.HistoryLimit <= 0 {
		c.HistoryLimit = defaultHistoryLimit
	}
	if c.HistoryFile == "" {
		c.HistoryFile = historyPath()
	}
	return c, nil
}

func (c Config) parameterize() bool {
	return c.Parameterize == nil || *c.Parameterize
}

func isValidEngine(engine string) bool {
	switch engine {
	case "postgres", "mysql", "sqlite":
		return true
	}
	return false
}

func historyPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".relal_history")
}
