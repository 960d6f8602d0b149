package main

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type recordingSink struct {
	last Snapshot
	n    int
}

func (r *recordingSink) Render(s Snapshot) {
	r.last = s
	r.n++
}

func TestDisplayComposerPublishesKnobRotationsAsVolumeAndReverb(t *testing.T) {
	state := NewSharedState()
	state.AddKnobDelta(3, 5)
	state.AddKnobDelta(0, 2)
	voices := NewVoiceTable()
	voices.PressRemote(Note{Semitone: 3})

	sink := &recordingSink{}
	dc := NewDisplayComposer(state, voices, sink)

	ctx, cancel := context.WithTimeout(context.Background(), DisplayPeriod*3)
	defer cancel()
	dc.Run(ctx)

	require.GreaterOrEqual(t, sink.n, 1)
	require.Equal(t, uint32(5), sink.last.Volume)
	require.Equal(t, uint32(2), sink.last.ReverbAmount)
	require.Equal(t, []Note{{Semitone: 3}}, sink.last.Voices)
}

func TestTextDisplayRendersReadableLine(t *testing.T) {
	var buf bytes.Buffer
	d := NewTextDisplay(&buf)

	d.Render(Snapshot{Volume: 7, ReverbAmount: 2, Waveform: WaveformSine})

	require.Contains(t, buf.String(), "vol=7")
	require.Contains(t, buf.String(), "wave=sine")
}

func TestDisplayComposerStopsOnContextCancel(t *testing.T) {
	state := NewSharedState()
	voices := NewVoiceTable()
	sink := &recordingSink{}
	dc := NewDisplayComposer(state, voices, sink)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	done := make(chan struct{})
	go func() {
		dc.Run(ctx)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after context cancellation")
	}
}
