package overlap

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapSetGetContains(t *testing.T) {
	m := New()
	assert.False(t, m.Contains(5))
	m.Set(5, 3)
	assert.True(t, m.Contains(5))
	assert.Equal(t, int64(3), m.Get(5))

	m.Set(5, 7)
	assert.Equal(t, int64(7), m.Get(5))
}

func TestMapFloorKey(t *testing.T) {
	m := New()
	m.Set(0, 4)
	m.Set(10, -1)
	m.Set(20, 2)

	assert.Equal(t, Position(0), m.FloorKey(0))
	assert.Equal(t, Position(0), m.FloorKey(5))
	assert.Equal(t, Position(10), m.FloorKey(10))
	assert.Equal(t, Position(10), m.FloorKey(15))
	assert.Equal(t, Position(20), m.FloorKey(25))
}

func TestMapSuccKey(t *testing.T) {
	m := New()
	m.Set(0, 4)
	m.Set(10, -1)
	m.Set(20, 2)

	assert.Equal(t, Position(10), m.SuccKey(0))
	assert.Equal(t, Position(10), m.SuccKey(5))
	assert.Equal(t, Position(20), m.SuccKey(10))
	assert.Equal(t, Position(20), m.SuccKey(15))
}

func TestMapGetPanicsOnMissingKey(t *testing.T) {
	m := New()
	assert.Panics(t, func() { m.Get(1) })
}

func TestMapFloorKeyPanicsWhenNoneExists(t *testing.T) {
	m := New()
	m.Set(10, 1)
	assert.Panics(t, func() { m.FloorKey(5) })
}
