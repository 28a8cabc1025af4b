package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chriserin/specdraw/internal/config"
	"github.com/chriserin/specdraw/internal/db"
)

func runInit(t *testing.T) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, RunInit(&buf))
	return buf.String()
}

func TestInit_WritesConfigFile(t *testing.T) {
	dir := inTempDir(t)
	out := runInit(t)

	assert.Contains(t, out, "specdraw.yaml created")
	cfg, err := config.Load(filepath.Join(dir, "specdraw.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "specdraw.db", cfg.DBPath)
	assert.Equal(t, 8000, cfg.Port)
}

func TestInit_ConfigAlreadyExists(t *testing.T) {
	inTempDir(t)
	require.NoError(t, writeFile("specdraw.yaml", "port: 9000\n"))

	out := runInit(t)
	assert.Contains(t, out, "specdraw.yaml already exists")

	data, err := os.ReadFile("specdraw.yaml")
	require.NoError(t, err)
	assert.Equal(t, "port: 9000\n", string(data))
}

func TestInit_InitializesSQLiteDatabase(t *testing.T) {
	dir := inTempDir(t)
	out := runInit(t)

	sqlDB, err := db.Open(filepath.Join(dir, "specdraw.db"))
	require.NoError(t, err)
	defer sqlDB.Close()

	var version int
	require.NoError(t, sqlDB.QueryRow("SELECT version FROM schema_version").Scan(&version))
	assert.Equal(t, len(db.All), version)
	assert.Contains(t, out, "specdraw.db created")

	assert.Contains(t, runInit(t), "specdraw.db already exists")
}

func TestInit_AddsToGitignore(t *testing.T) {
	inTempDir(t)
	require.NoError(t, writeFile(".gitignore", "node_modules"))

	out := runInit(t)

	data, err := os.ReadFile(".gitignore")
	require.NoError(t, err)
	assert.Equal(t, "node_modules\nspecdraw.db\n.env\n", string(data))
	assert.Contains(t, out, "specdraw.db added to .gitignore")
	assert.Contains(t, out, ".env added to .gitignore")
}

func TestInit_GitignoreAlreadyHasEntries(t *testing.T) {
	inTempDir(t)
	original := "specdraw.db\n.env\n"
	require.NoError(t, writeFile(".gitignore", original))

	out := runInit(t)

	data, err := os.ReadFile(".gitignore")
	require.NoError(t, err)
	assert.Equal(t, original, string(data))
	assert.Contains(t, out, "specdraw.db already in .gitignore")
}

func TestInit_NoGitignoreExists(t *testing.T) {
	inTempDir(t)
	out := runInit(t)

	data, err := os.ReadFile(".gitignore")
	require.NoError(t, err)
	assert.Equal(t, "specdraw.db\n.env\n", string(data))
	assert.Contains(t, out, ".gitignore created")
}
