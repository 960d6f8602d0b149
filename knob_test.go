package main

import (
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestPackQuadrantMatchesPairNotation(t *testing.T) {
	require.Equal(t, quadrant(0), packQuadrant(false, false))
	require.Equal(t, quadrant(1), packQuadrant(false, true))
	require.Equal(t, quadrant(2), packQuadrant(true, false))
	require.Equal(t, quadrant(3), packQuadrant(true, true))
}

// TestKnobBoundaryScenario5 is spec.md §4.9 boundary scenario 5: the
// sequence 00 -> 10 -> 11 -> 01 -> 00 is four consecutive "up" transitions,
// for a net rotation of +4.
func TestKnobBoundaryScenario5(t *testing.T) {
	var k knobDecoder
	seq := []struct{ a, b bool }{
		{false, false},
		{true, false},
		{true, true},
		{false, true},
		{false, false},
	}

	total := 0
	for i, s := range seq {
		delta := k.decode(s.a, s.b)
		if i == 0 {
			require.Equal(t, 0, delta)
			continue
		}
		require.Equal(t, 1, delta)
		total += delta
	}
	require.Equal(t, 4, total)
	require.True(t, k.lastUp)
}

func TestKnobFirstSampleReportsZero(t *testing.T) {
	var k knobDecoder
	require.Equal(t, 0, k.decode(true, false))
}

func TestKnobSameQuadrantReportsZero(t *testing.T) {
	var k knobDecoder
	k.decode(false, false)
	require.Equal(t, 0, k.decode(false, false))
}

func TestKnobSkipTransitionReusesLastDirection(t *testing.T) {
	var k knobDecoder
	k.decode(false, false) // prime: quadrant 0
	k.decode(true, false)  // 0 -> 2, up
	delta := k.decode(false, true) // 2 -> 1, a skip (both bits flip)
	require.Equal(t, 2, delta)
}

// TestSharedStateKnobRotationWraps is spec.md §8 invariant 4: the rotation
// counter stays within [0,16] under any sequence of +1/-1/+2/-2 deltas
// (mod 17).
func TestSharedStateKnobRotationWraps(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		s := NewSharedState()
		deltas := rapid.SliceOfN(rapid.SampledFrom([]int{1, -1, 2, -2}), 1, 50).Draw(t, "deltas")

		var rotation uint32
		for _, d := range deltas {
			rotation = s.AddKnobDelta(0, d)
			require.LessOrEqual(t, rotation, uint32(16))
		}
		require.Equal(t, rotation, s.KnobRotation(0))
	})
}
