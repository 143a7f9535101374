package snapshot

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCell_ZeroValueUsable(t *testing.T) {
	var c Cell[int]
	require.Equal(t, 0, c.Get())
	require.Equal(t, uint64(0), c.Version())
}

func TestCell_CallbackSeesLatestValue(t *testing.T) {
	c := New(1)
	// Registered before the value changes; must not see the stale 1.
	read := func() int { return c.Get() }
	c.Set(2)
	c.Set(3)
	require.Equal(t, 3, read())
	require.Equal(t, uint64(3), c.Version())
}

func TestCell_Update(t *testing.T) {
	type state struct{ offset float64 }
	c := New(state{offset: 10})
	c.Update(func(s *state) { s.offset += 30 })
	require.Equal(t, 40.0, c.Get().offset)
}
