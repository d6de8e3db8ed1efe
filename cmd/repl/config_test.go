package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "relal.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func noEnv(string) string { return "" }

func TestLoadConfigFile(t *testing.T) {
	t.Parallel()
	path := writeConfig(t, `
engine: MySQL
dsn: root@tcp(localhost:3306)/app
history_file: /tmp/relal_history
max_rows: 50
statement_cache: 8
parameterize: false
format: true
`)
	cfg, err := loadConfig(path, true, noEnv)
	require.NoError(t, err)
	assert.Equal(t, "mysql", cfg.Engine)
	assert.Equal(t, "root@tcp(localhost:3306)/app", cfg.DSN)
	assert.Equal(t, "/tmp/relal_history", cfg.HistoryFile)
	assert.Equal(t, 50, cfg.MaxRows)
	assert.Equal(t, 8, cfg.StatementCache)
	assert.Equal(t, defaultHistoryLimit, cfg.HistoryLimit)
	assert.False(t, cfg.parameterize())
	assert.True(t, cfg.Format)
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Parallel()
	missing := filepath.Join(t.TempDir(), "absent.yaml")
	cfg, err := loadConfig(missing, false, noEnv)
	require.NoError(t, err)
	assert.Equal(t, "postgres", cfg.Engine)
	assert.Equal(t, defaultMaxRows, cfg.MaxRows)
	assert.Equal(t, defaultStatementCache, cfg.StatementCache)
	assert.True(t, cfg.parameterize())

	_, err = loadConfig(missing, true, noEnv)
	assert.ErrorContains(t, err, "read config")
}

func TestLoadConfigEmptyFile(t *testing.T) {
	t.Parallel()
	cfg, err := loadConfig(writeConfig(t, ""), true, noEnv)
	require.NoError(t, err)
	assert.Equal(t, "postgres", cfg.Engine)
}

func TestLoadConfigRejectsUnknownKeys(t *testing.T) {
	t.Parallel()
	_, err := loadConfig(writeConfig(t, "engine: sqlite\nmax_row: 5\n"), true, noEnv)
	assert.ErrorContains(t, err, "max_row")
}

func TestLoadConfigRejectsUnknownEngine(t *testing.T) {
	t.Parallel()
	_, err := loadConfig(writeConfig(t, "engine: oracle\n"), true, noEnv)
	assert.ErrorContains(t, err, `unknown engine "oracle"`)
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	t.Parallel()
	env := map[string]string{
		"RELAL_ENGINE": "sqlite",
		"DATABASE_URL": "file:test.db",
	}
	cfg, err := loadConfig(writeConfig(t, "engine: postgres\ndsn: postgres://x\n"), true, func(k string) string { return env[k] })
	require.NoError(t, err)
	assert.Equal(t, "sqlite", cfg.Engine)
	assert.Equal(t, "file:test.db", cfg.DSN)
}

func TestResolveConfigFlags(t *testing.T) {
	path := writeConfig(t, "engine: postgres\nformat: false\n")
	t.Setenv("RELAL_ENGINE", "")
	t.Setenv("DATABASE_URL", "")

	cmd := newRootCommand()
	require.NoError(t, cmd.ParseFlags([]string{"--config", path, "--engine", "sqlite", "--dsn", ":memory:", "--format"}))
	cfg, err := resolveConfig(cmd, &rootOptions{
		config: path,
		engine: "sqlite",
		dsn:    ":memory:",
		format: true,
	})
	require.NoError(t, err)
	assert.Equal(t, "sqlite", cfg.Engine)
	assert.Equal(t, ":memory:", cfg.DSN)
	assert.True(t, cfg.Format)
}

func TestDSNBuilders(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "postgres://bob:p%40ss@db:5432/app?sslmode=disable",
		postgresDSN("bob", "p@ss", "db", "5432", "app", "disable"))
	assert.Equal(t, "postgres://bob@db:5432/bob?sslmode=require",
		postgresDSN("bob", "", "db", "5432", "bob", "require"))
	assert.Empty(t, postgresDSN("", "", "db", "5432", "app", "disable"))

	assert.Contains(t, mysqlDSN("root", "pw", "db", "3306", "app"), "root:pw@tcp(db:3306)/app")
	assert.Empty(t, mysqlDSN("root", "", "db", "3306", ""))

	assert.Equal(t, ":memory:", buildDSN(nil, "sqlite"))
	assert.Empty(t, buildDSN(nil, "mysql"), "mysql needs a database name")
}
