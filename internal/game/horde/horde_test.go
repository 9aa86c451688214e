package horde_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/percentile/internal/game/horde"
	"github.com/cory-johannsen/percentile/internal/game/inventory"
)

func TestNew(t *testing.T) {
	s, err := horde.New(40)
	require.NoError(t, err)
	assert.True(t, s.Enabled)
	assert.Equal(t, horde.Magnitude{Current: 40, Max: 40}, s.Magnitude)

	_, err = horde.New(0)
	assert.Error(t, err)
}

func TestToggle(t *testing.T) {
	s, err := horde.New(10)
	require.NoError(t, err)
	s.Disable()
	assert.False(t, s.Enabled)
	s.Toggle()
	assert.True(t, s.Enabled)
	s.Enable()
	assert.True(t, s.Enabled)
}

func TestApplyAndRestore(t *testing.T) {
	s, err := horde.New(30)
	require.NoError(t, err)

	assert.Equal(t, 12, s.ApplyMagnitudeDamage(12))
	assert.Equal(t, 18, s.Magnitude.Current)
	assert.Equal(t, 0, s.ApplyMagnitudeDamage(-5))
	assert.Equal(t, 18, s.ApplyMagnitudeDamage(s.Magnitude.Current+1000))
	assert.Equal(t, 0, s.Magnitude.Current)
	assert.True(t, s.Broken())
	assert.True(t, s.Enabled, "a broken horde is not disabled automatically")

	assert.Equal(t, 30, s.RestoreMagnitude(1000))
	assert.Equal(t, 30, s.Magnitude.Current)
	assert.False(t, s.Broken())
}

func TestSetMax(t *testing.T) {
	s, err := horde.New(40)
	require.NoError(t, err)
	s.ApplyMagnitudeDamage(10)

	require.NoError(t, s.SetMax(60))
	assert.Equal(t, horde.Magnitude{Current: 50, Max: 60}, s.Magnitude)

	require.NoError(t, s.SetMax(5))
	assert.Equal(t, horde.Magnitude{Current: 0, Max: 5}, s.Magnitude)

	assert.Error(t, s.SetMax(0))
}

func TestMagnitudeDamage(t *testing.T) {
	assert.Equal(t, 3, horde.MagnitudeDamage(3, nil))
	assert.Equal(t, 6, horde.MagnitudeDamage(3, inventory.ParseQualities([]string{"Blast(3)"})))
	assert.Equal(t, 9, horde.MagnitudeDamage(3, inventory.ParseQualities([]string{"Blast(3)", "Flame"})))
	assert.Equal(t, 0, horde.MagnitudeDamage(0, inventory.ParseQualities([]string{"Flame"})))
}

func TestProperty_MagnitudeStaysInBounds(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		s, err := horde.New(rapid.IntRange(1, 200).Draw(rt, "max"))
		require.NoError(rt, err)
		ops := rapid.SliceOf(rapid.IntRange(-300, 300)).Draw(rt, "ops")
		for _, op := range ops {
			if op < 0 {
				s.ApplyMagnitudeDamage(-op)
			} else {
				s.RestoreMagnitude(op)
			}
			assert.GreaterOrEqual(rt, s.Magnitude.Current, 0)
			assert.LessOrEqual(rt, s.Magnitude.Current, s.Magnitude.Max)
		}
	})
}
