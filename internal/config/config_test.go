package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("GITHUB_TOKEN", "")
	t.Setenv("GHDASH_GITHUB_TOKEN", "")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, "kevinChang", cfg.Server.DefaultLogin)
	assert.ErrorIs(t, cfg.Validate(), ErrMissingToken)
	assert.EqualError(t, cfg.Validate(), "GitHub token is not configured (GITHUB_TOKEN or github.token)")
}

func TestLoad_Environment(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("GHDASH_GITHUB_TOKEN", "")
	t.Setenv("GITHUB_TOKEN", "ghp_env")
	t.Setenv("GHDASH_SERVER_ADDR", "127.0.0.1:9000")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "ghp_env", cfg.GitHub.Token)
	assert.Equal(t, "127.0.0.1:9000", cfg.Server.Addr)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_File(t *testing.T) {
	t.Setenv("GITHUB_TOKEN", "")
	t.Setenv("GHDASH_GITHUB_TOKEN", "")
	path := filepath.Join(t.TempDir(), "dashboard.yaml")
	content := "github:\n  token: ghp_file\nserver:\n  default_login: torvalds\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "ghp_file", cfg.GitHub.Token)
	assert.Equal(t, "torvalds", cfg.Server.DefaultLogin)
	assert.Equal(t, ":8080", cfg.Server.Addr)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
