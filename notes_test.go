package main

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseNoteEventPress(t *testing.T) {
	press, note, ok := parseNoteEvent([3]byte{'P', '4', 'A'})
	require.True(t, ok)
	require.True(t, press)
	require.Equal(t, Note{Semitone: 10, OctaveShift: 0}, note)
}

func TestParseNoteEventRelease(t *testing.T) {
	press, note, ok := parseNoteEvent([3]byte{'R', '3', '0'})
	require.True(t, ok)
	require.False(t, press)
	require.Equal(t, Note{Semitone: 0, OctaveShift: -1}, note)
}

func TestParseNoteEventRejectsBadPrefix(t *testing.T) {
	_, _, ok := parseNoteEvent([3]byte{'Q', '4', '0'})
	require.False(t, ok)
}

func TestParseNoteEventRejectsOutOfRangeFields(t *testing.T) {
	_, _, ok := parseNoteEvent([3]byte{'P', '9', '0'})
	require.False(t, ok)

	_, _, ok = parseNoteEvent([3]byte{'P', '4', 'Z'})
	require.False(t, ok)
}

func TestFormatNoteEventRoundTripsThroughParse(t *testing.T) {
	for keyIndex := 0; keyIndex < 12; keyIndex++ {
		msg, err := formatNoteEvent(true, keyIndex)
		require.NoError(t, err)
		require.Len(t, msg, 3)

		var field [3]byte
		copy(field[:], msg)
		press, note, ok := parseNoteEvent(field)
		require.True(t, ok)
		require.True(t, press)
		require.Equal(t, keyIndex, note.Semitone)
		require.Equal(t, 0, note.OctaveShift)
	}
}

func TestFormatNoteEventRejectsOutOfRangeKeyIndex(t *testing.T) {
	_, err := formatNoteEvent(false, 12)
	require.Error(t, err)
}
