package paintsync

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseHex(t *testing.T) {
	tests := []struct {
		in   string
		want Color
	}{
		{"#00FF00", Color{0, 1, 0}},
		{"00ff00", Color{0, 1, 0}},
		{"#ff0000", Color{1, 0, 0}},
		{"#FFFFFF", Color{1, 1, 1}},
		{"#000000", Color{0, 0, 0}},
	}
	for _, tt := range tests {
		got, err := ParseHex(tt.in)
		assert.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestParseHexRejects(t *testing.T) {
	for _, in := range []string{"", "#", "#fff", "#12345", "#1234567", "#gg0000", "red", "##00ff00", " #00ff00"} {
		_, err := ParseHex(in)
		assert.Error(t, err, "ParseHex(%q)", in)
	}
}

func TestHex(t *testing.T) {
	assert.Equal(t, "#00ff00", Color{0, 1, 0}.Hex())
	assert.Equal(t, "#c8c8c8", NeutralGray.Hex())
	assert.Equal(t, "#ff0000", Color{1.5, -0.2, 0}.Hex())
}

func TestHexRoundTripQuantizes(t *testing.T) {
	c := Color{0.5, 0.25, 0.75}
	back, err := ParseHex(c.Hex())
	assert.NoError(t, err)
	assert.InDelta(t, c.R, back.R, 1.0/255)
	assert.InDelta(t, c.G, back.G, 1.0/255)
	assert.InDelta(t, c.B, back.B, 1.0/255)
}

func TestMustParseHexPanics(t *testing.T) {
	assert.Panics(t, func() { MustParseHex("nope") })
	assert.Equal(t, Color{1, 0, 0}, MustParseHex("#ff0000"))
}
