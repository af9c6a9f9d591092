package env

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTimeout(t *testing.T) {
	t.Setenv("TIKZED_TIMEOUT", "")
	_, ok := Timeout()
	assert.False(t, ok)

	t.Setenv("TIKZED_TIMEOUT", "7")
	s, ok := Timeout()
	assert.True(t, ok)
	assert.Equal(t, 7, s)

	t.Setenv("TIKZED_TIMEOUT", "soon")
	_, ok = Timeout()
	assert.False(t, ok)
}

func TestDebug(t *testing.T) {
	t.Setenv("DEBUG", "")
	assert.False(t, Debug())

	t.Setenv("DEBUG", "1")
	assert.True(t, Debug())
}
