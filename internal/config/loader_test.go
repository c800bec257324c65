package config

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testFlags() *pflag.FlagSet {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("config", "", "")
	fs.String("project", DefaultProjectFile, "")
	fs.String("db", "", "")
	fs.Int("max-iterations", DefaultMaxIterations, "")
	fs.String("format", DefaultFormat, "")
	fs.Bool("verbose", false, "")
	return fs
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "babel.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultProjectFile, cfg.Project)
	assert.Equal(t, "", cfg.DB)
	assert.Equal(t, DefaultMaxIterations, cfg.MaxIterations)
	assert.Equal(t, "text", cfg.Format)
	assert.False(t, cfg.Verbose)
	assert.Empty(t, cfg.ConfigFile)
}

func TestLoadPrecedence(t *testing.T) {
	t.Chdir(t.TempDir())
	path := writeConfig(t, "project: lang.yaml\ndb: file.db\nmax_iterations: 50\n")
	t.Setenv("BABEL_DB", "env.db")

	fs := testFlags()
	require.NoError(t, fs.Parse([]string{"--max-iterations", "7"}))

	cfg, err := Load(path, fs)
	require.NoError(t, err)
	assert.Equal(t, "lang.yaml", cfg.Project, "file beats default")
	assert.Equal(t, "env.db", cfg.DB, "env beats file")
	assert.Equal(t, 7, cfg.MaxIterations, "flag beats file")
	assert.Equal(t, path, cfg.ConfigFile)
}

func TestLoadUnchangedFlagsDoNotOverride(t *testing.T) {
	t.Chdir(t.TempDir())
	path := writeConfig(t, "format: json\n")

	fs := testFlags()
	require.NoError(t, fs.Parse(nil))

	cfg, err := Load(path, fs)
	require.NoError(t, err)
	assert.Equal(t, "json", cfg.Format)
}

func TestLoadFindsConfigInWorkingDir(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "babel.yml"), []byte("verbose: true\n"), 0o644))

	cfg, err := Load("", nil)
	require.NoError(t, err)
	assert.True(t, cfg.Verbose)
	assert.Equal(t, "babel.yml", cfg.ConfigFile)
}

func TestLoadValidation(t *testing.T) {
	t.Chdir(t.TempDir())

	_, err := Load(writeConfig(t, "format: xml\n"), nil)
	assert.ErrorContains(t, err, "invalid format")

	_, err = Load(writeConfig(t, "max_iterations: 0\n"), nil)
	assert.ErrorContains(t, err, "max_iterations")

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"), nil)
	assert.ErrorContains(t, err, "error reading config file")
}

func TestLoggerInContext(t *testing.T) {
	assert.NotNil(t, Logger(context.Background()))

	var buf bytes.Buffer
	ctx := WithLogger(context.Background(), NewLogger(&buf, true))
	Logger(ctx).Debug("hello", "k", "v")
	assert.Contains(t, buf.String(), "level=DEBUG")
	assert.Contains(t, buf.String(), "k=v")

	buf.Reset()
	NewLogger(&buf, false).Debug("quiet")
	assert.Empty(t, buf.String())
}
