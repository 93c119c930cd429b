package check

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want RGB
	}{
		{"#fff", RGB{255, 255, 255}},
		{"#ffffff", RGB{255, 255, 255}},
		{"#1A2b3C", RGB{0x1a, 0x2b, 0x3c}},
		{"rgb(10,20,30)", RGB{10, 20, 30}},
		{"rgb(10, 20, 30)", RGB{10, 20, 30}},
		{"rgba(0, 0, 0, 0)", RGB{0, 0, 0}},
		{" RGB(200 200 200 / 50%) ", RGB{200, 200, 200}},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseColor(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestParseColorRoundTrip(t *testing.T) {
	short, err := ParseColor("#fff")
	require.NoError(t, err)
	long, err := ParseColor("#ffffff")
	require.NoError(t, err)
	assert.Equal(t, short, long)

	c, err := ParseColor("rgb(10,20,30)")
	require.NoError(t, err)
	back, err := ParseColor(c.String())
	require.NoError(t, err)
	assert.Equal(t, c, back)
}

func TestParseColorRejects(t *testing.T) {
	for _, in := range []string{"", "red", "#ff", "#gggggg", "rgb(1,2)", "rgb(a,b,c)", "hsl(0, 0%, 0%)"} {
		_, err := ParseColor(in)
		assert.Error(t, err, in)
	}
}

func TestContrastRatio(t *testing.T) {
	black, white := RGB{0, 0, 0}, RGB{255, 255, 255}
	assert.InDelta(t, 21.0, ContrastRatio(black, white), 1e-9)
	assert.InDelta(t, 1.0, ContrastRatio(white, white), 1e-9)

	grey := RGB{200, 200, 200}
	r := ContrastRatio(grey, white)
	assert.Less(t, r, MinContrastRatio)
	assert.InDelta(t, 1.67, r, 0.01)
}

func TestContrastRatioProperties(t *testing.T) {
	colors := []RGB{{0, 0, 0}, {255, 255, 255}, {200, 200, 200}, {12, 90, 200}, {255, 0, 0}, {119, 119, 119}}
	for _, a := range colors {
		for _, b := range colors {
			ab, ba := ContrastRatio(a, b), ContrastRatio(b, a)
			assert.Equal(t, ab, ba, "%v/%v", a, b)
			assert.GreaterOrEqual(t, ab, 1.0)
			assert.LessOrEqual(t, ab, 21.0+1e-9)
		}
	}
}

func TestParsePx(t *testing.T) {
	v, ok := ParsePx("13.5px")
	assert.True(t, ok)
	assert.Equal(t, 13.5, v)

	_, ok = ParsePx("auto")
	assert.False(t, ok)
}
