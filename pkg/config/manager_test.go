//go:build integration

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/lerenn/push-issues/pkg/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRealManager_GetConfig_RealFiles(t *testing.T) {
	dir := t.TempDir()
	yamlPath := filepath.Join(dir, "config.yaml")
	tomlPath := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(yamlPath, []byte("workers: 2\ntimeout: 5s\n"), 0644))
	require.NoError(t, os.WriteFile(tomlPath, []byte("workers = 3\ntimeout = \"7s\"\n"), 0644))

	fromYAML, err := NewManager(fs.NewFS(), yamlPath).GetConfig()
	require.NoError(t, err)
	assert.Equal(t, 2, fromYAML.Workers)
	assert.Equal(t, 5*time.Second, fromYAML.Timeout.Duration)

	fromTOML, err := NewManager(fs.NewFS(), tomlPath).GetConfig()
	require.NoError(t, err)
	assert.Equal(t, 3, fromTOML.Workers)
	assert.Equal(t, 7*time.Second, fromTOML.Timeout.Duration)
}

func TestRealManager_GetConfig_Missing(t *testing.T) {
	manager := NewManager(fs.NewFS(), filepath.Join(t.TempDir(), "absent.yaml"))

	_, err := manager.GetConfig()
	assert.ErrorIs(t, err, ErrConfigNotFound)

	config, err := manager.GetConfigWithFallback()
	require.NoError(t, err)
	assert.Equal(t, manager.DefaultConfig(), config)
}
