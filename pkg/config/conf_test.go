package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig(t *testing.T) {
	dir := t.TempDir()

	c1, err := ReadOrCreate(dir)
	require.NoError(t, err)
	require.NotNil(t, c1)

	// first read creates the defaults
	assert.Equal(t, 8080, c1.Port)
	assert.Equal(t, "info", c1.LogLevel)
	assert.Equal(t, "aadhaar_risk_output.csv", c1.OutputFile)
	assert.Equal(t, 50, c1.HighRiskLimit)

	c1.Port = 9090
	c1.LogLevel = "debug"
	c1.OutputFile = "out.csv"

	err = Save(dir, c1)
	require.NoError(t, err)

	c2, err := ReadOrCreate(dir)
	require.NoError(t, err)
	require.NotNil(t, c2)
	assert.Equal(t, c1.Port, c2.Port)
	assert.Equal(t, c1.LogLevel, c2.LogLevel)
	assert.Equal(t, c1.OutputFile, c2.OutputFile)
}

func TestConfigMissingDir(t *testing.T) {
	_, err := ReadOrCreate("")
	assert.Error(t, err)

	err = Save("", getDefaultConfig())
	assert.Error(t, err)

	err = Save(t.TempDir(), nil)
	assert.Error(t, err)
}

func TestConfigCreatesDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested")
	c, err := ReadOrCreate(dir)
	require.NoError(t, err)
	assert.NotNil(t, c)
}
