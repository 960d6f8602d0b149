package main

import (
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestVoiceTablePressRemoteAssignsLowestSlot(t *testing.T) {
	vt := NewVoiceTable()

	slot := vt.PressRemote(Note{Semitone: 0})
	require.Equal(t, 0, slot)

	slot = vt.PressRemote(Note{Semitone: 4})
	require.Equal(t, 1, slot)

	require.True(t, vt.IsLeftPacked())
}

func TestVoiceTablePressRemoteDuplicateIsNoOp(t *testing.T) {
	vt := NewVoiceTable()
	vt.PressRemote(Note{Semitone: 2})

	slot := vt.PressRemote(Note{Semitone: 2})
	require.Equal(t, -1, slot)
	require.Equal(t, 1, len(vt.Snapshot()))
}

func TestVoiceTableFullRejectsFourthVoice(t *testing.T) {
	vt := NewVoiceTable()
	for i := 0; i < 3; i++ {
		require.NotEqual(t, -1, vt.PressRemote(Note{Semitone: i}))
	}
	require.Equal(t, -1, vt.PressRemote(Note{Semitone: 9}))
}

func TestVoiceTableReleaseCompactsLeft(t *testing.T) {
	vt := NewVoiceTable()
	vt.PressRemote(Note{Semitone: 0})
	vt.PressRemote(Note{Semitone: 2})
	vt.PressRemote(Note{Semitone: 4})

	require.True(t, vt.ReleaseRemote(Note{Semitone: 0}))

	got := vt.Snapshot()
	require.Equal(t, []Note{{Semitone: 2}, {Semitone: 4}}, got)
}

func TestVoiceTableRoundTripReturnsToEmpty(t *testing.T) {
	vt := NewVoiceTable()
	n := Note{Semitone: 10}
	vt.PressRemote(n)
	require.True(t, vt.ReleaseRemote(n))
	require.Empty(t, vt.Snapshot())
}

// TestVoiceTableLeftPackedInvariant is spec.md §8 invariant 1: the voice
// table is always a left-packed prefix of length 0..3, under any sequence
// of press/release operations.
func TestVoiceTableLeftPackedInvariant(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		vt := NewVoiceTable()
		ops := rapid.SliceOfN(rapid.IntRange(0, 11), 1, 20).Draw(t, "notes")

		for _, semitone := range ops {
			n := Note{Semitone: semitone}
			if rapid.Bool().Draw(t, "press") {
				vt.PressRemote(n)
			} else {
				vt.ReleaseRemote(n)
			}
			require.True(t, vt.IsLeftPacked())
			require.LessOrEqual(t, len(vt.Snapshot()), maxVoices)
		}
	})
}

func TestVoiceTableReplaceFromScanAssignsRowMajor(t *testing.T) {
	vt := NewVoiceTable()
	vt.ReplaceFromScan([]int{3, 5, 7, 9})

	got := vt.Snapshot()
	require.Equal(t, []Note{{Semitone: 3}, {Semitone: 5}, {Semitone: 7}}, got)
}
