package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/StuartLittlefair/trm-roche/advanced"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, name, contents string) string {
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(contents), 0644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.NoError(t, cfg.Validate())
	assert.Equal(t, advanced.DefaultStreamConfig(), cfg.Stream)
	assert.Equal(t, advanced.Secondary, cfg.Eclipse.Star)
}

func TestLoadPartial(t *testing.T) {
	path := writeConfig(t, "roche.yaml", `
stream:
  step: 0.005
  min_radius: 0.01
eclipse:
  fill: 0.9
findq:
  q_high: 1.5
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 0.005, cfg.Stream.Step)
	assert.Equal(t, 0.01, cfg.Stream.MinRadius)
	assert.Equal(t, 0.9, cfg.Eclipse.Fill)
	assert.Equal(t, 1.5, cfg.FindQ.QHigh)

	// Untouched fields keep their defaults.
	defaults := Default()
	assert.Equal(t, defaults.Stream.Accuracy, cfg.Stream.Accuracy)
	assert.Equal(t, defaults.Eclipse.Delta, cfg.Eclipse.Delta)
	assert.Equal(t, defaults.FindQ.QLow, cfg.FindQ.QLow)
}

func TestLoadEmpty(t *testing.T) {
	cfg, err := Load(writeConfig(t, "empty.yml", ""))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadErrors(t *testing.T) {
	t.Run("wrong extension", func(t *testing.T) {
		_, err := Load(writeConfig(t, "roche.json", "{}"))
		assert.Error(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})

	t.Run("unknown field", func(t *testing.T) {
		_, err := Load(writeConfig(t, "roche.yaml", "stream:\n  wobble: 3\n"))
		assert.Error(t, err)
	})

	t.Run("out of range", func(t *testing.T) {
		_, err := Load(writeConfig(t, "roche.yaml", "eclipse:\n  fill: 1.5\n"))
		assert.True(t, errors.Is(err, advanced.ErrInvalidArgument))
	})
}

func TestDumpRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Stream.Kick = 2e-5
	data, err := cfg.Dump()
	require.NoError(t, err)

	loaded, err := Load(writeConfig(t, "dump.yaml", string(data)))
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}
