package color_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"oss.terrastruct.com/tikzed/lib/color"
)

func TestParse(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name   string
		expr   string
		exp    string
		expErr string
	}{
		{name: "base", expr: "red", exp: "#ff0000"},
		{name: "xcolor_green", expr: "green", exp: "#00ff00"},
		{name: "tint", expr: "red!50", exp: "#ff8080"},
		{name: "mix", expr: "red!50!blue", exp: "#800080"},
		{name: "zero", expr: "blue!0", exp: "#ffffff"},
		{name: "full", expr: "blue!100!red", exp: "#0000ff"},
		{name: "css_hex", expr: "#336699", exp: "#336699"},
		{name: "case", expr: " Black ", exp: "#000000"},
		{name: "unknown", expr: "notacolor", expErr: `unknown color "notacolor"`},
		{name: "bad_pct", expr: "red!x", expErr: `invalid mix percentage "x" in "red!x"`},
		{name: "over_pct", expr: "red!150", expErr: `invalid mix percentage "150" in "red!150"`},
		{name: "empty", expr: "", expErr: "empty color"},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			c, err := color.Parse(tc.expr)
			if tc.expErr != "" {
				require.Error(t, err)
				assert.Equal(t, tc.expErr, err.Error())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.exp, c.Hex())
		})
	}
}

func TestLuminance(t *testing.T) {
	assert.InDelta(t, 1.0, color.Luminance(color.White), 1e-9)
	assert.InDelta(t, 0.0, color.Luminance(color.Black), 1e-9)
}

func TestDarken(t *testing.T) {
	c, err := color.Parse("red!50")
	require.NoError(t, err)
	assert.Less(t, color.Luminance(color.Darken(c)), color.Luminance(c))
}
