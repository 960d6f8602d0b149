package main

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func newTestScanner() (*KeyScanner, *FakeMatrix, *Outbox) {
	matrix := NewFakeMatrix()
	voices := NewVoiceTable()
	state := NewSharedState()
	outbox := NewOutbox(8, testLogger())
	joystick := &FakeJoystick{}
	ks := NewKeyScanner(matrix, voices, state, outbox, joystick, testLogger())
	return ks, matrix, outbox
}

func TestKeyScannerEmitsPressEventOnKeyDown(t *testing.T) {
	ks, matrix, outbox := newTestScanner()

	matrix.SetKey(0, 0, true)
	ks.scanOnce()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	msg, ok := outbox.Drain(ctx)
	require.True(t, ok)
	require.Equal(t, "P40", msg)
}

func TestKeyScannerEmitsReleaseEventOnKeyUp(t *testing.T) {
	ks, matrix, outbox := newTestScanner()

	matrix.SetKey(1, 2, true)
	ks.scanOnce()
	drainAll(t, outbox)

	matrix.SetKey(1, 2, false)
	ks.scanOnce()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	msg, ok := outbox.Drain(ctx)
	require.True(t, ok)
	require.Equal(t, "R46", msg)
}

func TestKeyScannerIgnoresControlRowsForNoteEvents(t *testing.T) {
	ks, matrix, outbox := newTestScanner()

	matrix.SetKey(5, 1, true) // waveform toggle, not a piano row
	ks.scanOnce()

	select {
	case msg := <-outbox.ch:
		t.Fatalf("unexpected note event for a control row: %q", msg)
	default:
	}
}

func TestKeyScannerRebuildsVoiceTableOnKeyChange(t *testing.T) {
	ks, matrix, outbox := newTestScanner()

	matrix.SetKey(0, 0, true)
	matrix.SetKey(0, 1, true)
	ks.scanOnce()
	drainAll(t, outbox)

	notes := ks.voices.Snapshot()
	require.Equal(t, []Note{{Semitone: 0}, {Semitone: 1}}, notes)
}

func TestKeyScannerWaveformTogglesOnButtonRelease(t *testing.T) {
	ks, matrix, outbox := newTestScanner()

	matrix.SetKey(5, waveformToggleBit, true)
	ks.scanOnce()
	drainAll(t, outbox)
	require.Equal(t, WaveformSawtooth, ks.state.Waveform())

	matrix.SetKey(5, waveformToggleBit, false)
	ks.scanOnce()
	require.Equal(t, WaveformSine, ks.state.Waveform())
}

func TestKeyScannerJoystickTimingTracksAxes(t *testing.T) {
	ks, _, outbox := newTestScanner()
	ks.joystick = &FakeJoystick{X: 0, Y: 512}

	ks.scanOnce()
	drainAll(t, outbox)

	high, low := ks.state.JoystickTiming()
	require.Equal(t, uint32(28), high)
	require.Equal(t, uint32(28), low)
}

func TestKeyScannerKnob3RotationUpdatesVolume(t *testing.T) {
	ks, matrix, outbox := newTestScanner()
	loc := knobRowBit[3]

	matrix.SetRow(loc.row, MatrixRow{false, false, false, false})
	ks.scanOnce()
	drainAll(t, outbox)

	matrix.SetRow(loc.row, MatrixRow{true, false, false, false})
	ks.scanOnce()
	drainAll(t, outbox)

	require.Equal(t, uint32(1), ks.state.Volume())
}

func drainAll(t *testing.T, outbox *Outbox) {
	t.Helper()
	for {
		select {
		case <-outbox.ch:
		default:
			return
		}
	}
}
