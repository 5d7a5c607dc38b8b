package fonts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMeasure(t *testing.T) {
	small, err := Measure("KRAS (ENST00000311936)", 10, false)
	require.NoError(t, err)
	large, err := Measure("KRAS (ENST00000311936)", 20, false)
	require.NoError(t, err)

	assert.Greater(t, small.Width, 0.0)
	assert.Greater(t, small.Ascent, 0.0)
	assert.Greater(t, small.Descent, 0.0)
	assert.Greater(t, large.Width, 1.5*small.Width, "advance grows with size")
}

func TestMeasure_Empty(t *testing.T) {
	ext, err := Measure("", 12, true)
	require.NoError(t, err)
	assert.Equal(t, 0.0, ext.Width)
}

func TestTTF(t *testing.T) {
	assert.NotEmpty(t, TTF(true))
	assert.NotEmpty(t, TTF(false))
	assert.NotEqual(t, TTF(true), TTF(false))
}
