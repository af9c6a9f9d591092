package go2_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"oss.terrastruct.com/tikzed/lib/go2"
)

func TestCopy(t *testing.T) {
	t.Parallel()

	assert.Nil(t, go2.Copy[int](nil))
	p := go2.Pointer(3)
	c := go2.Copy(p)
	*p = 4
	assert.Equal(t, 3, *c)
}

func TestMax(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 2, go2.Max(1, 2))
	assert.Equal(t, 2.5, go2.Max(-1, 2.5))
	assert.Equal(t, "b", go2.Max("b", "a"))
}

func TestUniq(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []int{3, 1, 2}, go2.Uniq([]int{3, 1, 3, 2, 1}))
	assert.Equal(t, []string{}, go2.Uniq[string](nil))
}
