package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScale(t *testing.T) {
	// Scope 3 sits inside the drawing region.
	w := Scale(4567.8, 5000, 120)
	assert.InDelta(t, 109.6, w, 0.01)
	assert.Less(t, w, 120.0)

	// Values above the scale overflow and are not clamped.
	assert.InDelta(t, 144.0, Scale(6000, 5000, 120), 1e-9)

	assert.Equal(t, 0.0, Scale(0, 5000, 120))
	assert.Equal(t, 120.0, Scale(5000, 5000, 120))
	assert.Equal(t, 0.0, Scale(100, 0, 120))
	assert.Equal(t, 0.0, Scale(100, -5, 120))
}

func TestScale_Monotonic(t *testing.T) {
	values := []float64{0, 0.5, 1, 250, 1234.5, 2345.6, 4567.8, 4999.9, 5000, 6000, 1e6}
	for i := 1; i < len(values); i++ {
		assert.Less(t, Scale(values[i-1], 5000, 120), Scale(values[i], 5000, 120),
			"scale(%v) < scale(%v)", values[i-1], values[i])
	}
}

func TestParseHex(t *testing.T) {
	c, err := ParseHex("#22c55e")
	assert.NoError(t, err)
	assert.Equal(t, RGB{34, 197, 94}, c)
	assert.Equal(t, "#22c55e", c.Hex())

	c, err = ParseHex("FFFFFF")
	assert.NoError(t, err)
	assert.Equal(t, White, c)

	for _, bad := range []string{"", "#fff", "#gggggg", "#1234567"} {
		_, err := ParseHex(bad)
		assert.Error(t, err, bad)
	}
}
