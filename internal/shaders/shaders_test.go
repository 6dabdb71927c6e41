package shaders

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/irfansharif/quadgl/internal/gfx"
)

func TestDefault(t *testing.T) {
	for _, tc := range []struct {
		dialect gfx.Dialect
		version string
	}{
		{gfx.GLSL410Core, "#version 410 core"},
		{gfx.GLSL300ES, "#version 300 es"},
	} {
		for _, preset := range []Preset{Plain, Colored} {
			src, err := Default(tc.dialect, preset)
			require.NoError(t, err)
			assert.True(t, strings.HasPrefix(src.Vertex, tc.version), "%s %s", tc.dialect, preset)
			assert.True(t, strings.HasPrefix(src.Fragment, tc.version), "%s %s", tc.dialect, preset)
			assert.Contains(t, src.Vertex, "aVertexPosition")
			assert.Contains(t, src.Vertex, "uProjectionMatrix")
			assert.Contains(t, src.Vertex, "uModelViewMatrix")
			if preset == Colored {
				assert.Contains(t, src.Vertex, "aVertexColor")
			} else {
				assert.NotContains(t, src.Vertex, "aVertexColor")
			}
		}
	}

	_, err := Default(gfx.Dialect(0), Plain)
	assert.Error(t, err)
	_, err = Default(gfx.GLSL410Core, "phong")
	assert.Error(t, err)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	vpath, fpath := filepath.Join(dir, "quad.vert"), filepath.Join(dir, "quad.frag")
	require.NoError(t, os.WriteFile(vpath, []byte("vertex"), 0o644))
	require.NoError(t, os.WriteFile(fpath, []byte("fragment"), 0o644))

	src, err := Load(vpath, fpath)
	require.NoError(t, err)
	assert.Equal(t, Source{Vertex: "vertex", Fragment: "fragment"}, src)

	_, err = Load(vpath, filepath.Join(dir, "missing.frag"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestWatcher(t *testing.T) {
	dir := t.TempDir()
	vpath, fpath := filepath.Join(dir, "quad.vert"), filepath.Join(dir, "quad.frag")
	require.NoError(t, os.WriteFile(vpath, []byte("v1"), 0o644))
	require.NoError(t, os.WriteFile(fpath, []byte("f1"), 0o644))

	w, err := Watch(vpath, fpath)
	require.NoError(t, err)
	defer func() { require.NoError(t, w.Close()) }()

	assert.False(t, w.Changed())

	require.NoError(t, os.WriteFile(fpath, []byte("f2"), 0o644))
	assert.Eventually(t, w.Changed, 5*time.Second, 10*time.Millisecond)

	// Let trailing events for the same write settle, then drain them.
	time.Sleep(100 * time.Millisecond)
	w.Changed()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))
	assert.Never(t, w.Changed, 300*time.Millisecond, 10*time.Millisecond)
}

func TestWatchMissingDirectory(t *testing.T) {
	_, err := Watch(filepath.Join(t.TempDir(), "nope", "quad.vert"))
	assert.Error(t, err)
}
