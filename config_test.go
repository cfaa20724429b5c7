package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfigPath(t *testing.T) {
	t.Setenv(configEnvName, "")
	assert.Equal(t, defaultConfigPath, configPath(""))
	t.Setenv(configEnvName, "/etc/worldraster.json")
	assert.Equal(t, "/etc/worldraster.json", configPath(""))
	assert.Equal(t, "custom.json", configPath("custom.json"))
}

func TestRenderThreads(t *testing.T) {
	assert.Equal(t, 3, renderThreads(3))
	assert.GreaterOrEqual(t, renderThreads(0), 1)
	assert.GreaterOrEqual(t, renderThreads(-5), 1)
}
