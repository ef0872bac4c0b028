package advanced

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrace(t *testing.T) {
	var buf bytes.Buffer
	SetTrace(&buf)
	defer SetTrace(nil)

	_, _, err := Ineg(0.5, 85, Vec{})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "mid-eclipse")
	assert.Contains(t, buf.String(), "ingress")

	buf.Reset()
	cfg := DefaultStreamConfig()
	cfg.MinRadius = 0.1
	_, err = StreamWithConfig(0.5, 500, cfg)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "hit primary")
}

func TestTraceOff(t *testing.T) {
	assert.Equal(t, "", traceName(t))
	_, _, err := Ineg(0.5, 85, Vec{})
	assert.NoError(t, err)
}

func TestDrawPNG(t *testing.T) {
	lobe1, err := Lobe1(0.5, 100)
	require.NoError(t, err)
	lobe2, err := Lobe2(0.5, 100)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "lobes.png")
	require.NoError(t, DrawPNG(path, 200, lobe1, lobe2))
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))

	assert.Error(t, DrawPNG(path, 200))
}
