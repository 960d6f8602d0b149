package main

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/creack/pty"
	"github.com/stretchr/testify/require"
)

// ptyLink wraps a pty master/slave pair in the SerialLink interface for
// tests, so SerialIngester exercises a real byte-oriented descriptor instead
// of an in-memory buffer.
type ptyLink struct {
	master, slave *os.File
}

func newPTYLink(t *testing.T) *ptyLink {
	t.Helper()
	master, slave, err := pty.Open()
	require.NoError(t, err)
	return &ptyLink{master: master, slave: slave}
}

func (p *ptyLink) Read(b []byte) (int, error)  { return p.slave.Read(b) }
func (p *ptyLink) Write(b []byte) (int, error) { return p.slave.Write(b) }
func (p *ptyLink) Close() error {
	p.master.Close()
	return p.slave.Close()
}

func (p *ptyLink) send(t *testing.T, s string) {
	t.Helper()
	_, err := p.master.Write([]byte(s))
	require.NoError(t, err)
}

func TestSerialIngesterAssignsVoiceOnPress(t *testing.T) {
	link := newPTYLink(t)
	defer link.Close()

	voices := NewVoiceTable()
	state := NewSharedState()
	si := NewSerialIngester(link, voices, state, testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go si.Run(ctx)

	link.send(t, "P40\n")

	require.Eventually(t, func() bool {
		return len(voices.Snapshot()) == 1
	}, time.Second, time.Millisecond)

	require.Equal(t, Note{Semitone: 0, OctaveShift: 0}, voices.Snapshot()[0])
	require.NotZero(t, state.SawStep(0))
}

func TestSerialIngesterReleaseCompactsAndClearsSteps(t *testing.T) {
	link := newPTYLink(t)
	defer link.Close()

	voices := NewVoiceTable()
	state := NewSharedState()
	si := NewSerialIngester(link, voices, state, testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go si.Run(ctx)

	link.send(t, "P40\n")
	require.Eventually(t, func() bool { return len(voices.Snapshot()) == 1 }, time.Second, time.Millisecond)

	link.send(t, "P41\n")
	require.Eventually(t, func() bool { return len(voices.Snapshot()) == 2 }, time.Second, time.Millisecond)

	link.send(t, "R40\n")
	require.Eventually(t, func() bool {
		notes := voices.Snapshot()
		return len(notes) == 1 && notes[0].Semitone == 1
	}, time.Second, time.Millisecond)

	require.Zero(t, state.SawStep(1))
	require.NotZero(t, state.SawStep(0))
}

func TestSerialIngesterIgnoresMalformedLine(t *testing.T) {
	link := newPTYLink(t)
	defer link.Close()

	voices := NewVoiceTable()
	state := NewSharedState()
	si := NewSerialIngester(link, voices, state, testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go si.Run(ctx)

	link.send(t, "XYZ\n")
	link.send(t, "P40\n")

	require.Eventually(t, func() bool { return len(voices.Snapshot()) == 1 }, time.Second, time.Millisecond)
}
