package main

import (
	"path/filepath"
	"testing"

	"pacgen/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaultsWithoutPath(t *testing.T) {
	cfg, err := loadConfig("")
	require.NoError(t, err)
	assert.Equal(t, config.DefaultProxy, cfg.PAC.Proxy)
}

func TestLoadConfigFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	cfg, err := loadConfig(path)
	require.NoError(t, err)
	assert.FileExists(t, path)
	assert.Equal(t, config.DefaultOutputPath, cfg.Output.Path)
}

func TestCheckHosts(t *testing.T) {
	err := checkHosts(config.DefaultProxy, []string{"example.com"}, []string{"10.0.0.0/8"}, "foo.example.com, 10.1.2.3,,localhost")
	assert.NoError(t, err)

	err = checkHosts(config.DefaultProxy, nil, []string{"bad"}, "example.com")
	assert.Error(t, err)
}
