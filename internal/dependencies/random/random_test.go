package random

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSeededRandomIsReproducible(t *testing.T) {
	a := NewSeeded(42)
	b := NewSeeded(42)

	for range 100 {
		assert.Equal(t, a.Intn(100), b.Intn(100))
	}
	assert.Equal(t, a.String(8, "abc"), b.String(8, "abc"))
}

func TestIntnStaysInRange(t *testing.T) {
	for _, r := range []Random{New(), NewSeeded(7)} {
		for range 200 {
			v := r.Intn(10)
			assert.GreaterOrEqual(t, v, 0)
			assert.Less(t, v, 10)
		}
		assert.Equal(t, 0, r.Intn(0))
	}
}

func TestString(t *testing.T) {
	r := NewSeeded(1)

	s := r.String(16, "xyz")
	assert.Len(t, s, 16)
	assert.Regexp(t, `^[xyz]+$`, s)
	assert.Empty(t, r.String(0, "xyz"))
	assert.Empty(t, r.String(4, ""))
}
