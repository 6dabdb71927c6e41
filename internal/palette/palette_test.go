package palette

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseColor(t *testing.T) {
	for _, tc := range []struct {
		in   string
		want [4]float32
	}{
		{"black", [4]float32{0, 0, 0, 1}},
		{" White ", [4]float32{1, 1, 1, 1}},
		{"red", [4]float32{1, 0, 0, 1}},
		{"#00ff00", [4]float32{0, 1, 0, 1}},
		{"#0000FF", [4]float32{0, 0, 1, 1}},
		{"#ffffff00", [4]float32{1, 1, 1, 0}},
	} {
		c, err := ParseColor(tc.in)
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, c.RGBA(), tc.in)
	}

	c, err := ParseColor("#00000080")
	require.NoError(t, err)
	assert.InDelta(t, 128.0/255.0, c.A, 1e-9)

	for _, bad := range []string{"", "purple", "#gg0000", "#000000zz"} {
		_, err := ParseColor(bad)
		assert.Error(t, err, bad)
	}
}

func TestVertexStream(t *testing.T) {
	p, err := Parse([]string{"red", "#0000ff80"})
	require.NoError(t, err)

	assert.Equal(t, []float32{
		1, 0, 0, 1,
		0, 0, 1, 1,
		1, 0, 0, 1,
	}, p.VertexStream(3), "alpha is dropped and colors cycle")

	assert.Nil(t, p.VertexStream(0))
	assert.Nil(t, Palette(nil).VertexStream(4))

	_, err = Parse([]string{"red", "nope"})
	assert.Error(t, err)
}

func TestRandom(t *testing.T) {
	a := Random(rand.New(rand.NewSource(7)), 5)
	b := Random(rand.New(rand.NewSource(7)), 5)
	require.Len(t, a, 5)
	assert.Equal(t, a, b)
	for _, c := range a {
		assert.True(t, c.IsValid())
		_, s, v := c.Hsv()
		assert.GreaterOrEqual(t, s, 0.25-1e-9)
		assert.GreaterOrEqual(t, v, 0.5-1e-9)
	}
	assert.Len(t, a.VertexStream(4), 16)
}
