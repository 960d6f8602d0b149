package main

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestOutboxSendAndDrainRoundTrip(t *testing.T) {
	o := NewOutbox(4, testLogger())
	require.True(t, o.Send("P12"))

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	msg, ok := o.Drain(ctx)
	require.True(t, ok)
	require.Equal(t, "P12", msg)
}

func TestOutboxDefaultsCapacityWhenNonPositive(t *testing.T) {
	o := NewOutbox(0, testLogger())
	require.Equal(t, DefaultOutboxCapacity, cap(o.ch))
}

// TestOutboxSendDropsWhenFullPastTimeout is spec.md §7: a sender that waits
// out the full timeout against a never-drained outbox gives up and reports
// failure rather than blocking forever.
func TestOutboxSendDropsWhenFullPastTimeout(t *testing.T) {
	o := NewOutbox(1, testLogger())
	require.True(t, o.Send("P00")) // fills the only slot

	start := time.Now()
	ok := o.Send("P01")
	elapsed := time.Since(start)

	require.False(t, ok)
	require.GreaterOrEqual(t, elapsed, outboxSendTimeout)
}

func TestOutboxDrainRespectsContextCancellation(t *testing.T) {
	o := NewOutbox(1, testLogger())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, ok := o.Drain(ctx)
	require.False(t, ok)
}

type fakeSerialLink struct {
	written [][]byte
}

func (f *fakeSerialLink) Read(p []byte) (int, error)  { return 0, nil }
func (f *fakeSerialLink) Write(p []byte) (int, error) {
	f.written = append(f.written, append([]byte(nil), p...))
	return len(p), nil
}
func (f *fakeSerialLink) Close() error { return nil }

func TestDrainerForwardsMessagesWithNewline(t *testing.T) {
	o := NewOutbox(4, testLogger())
	link := &fakeSerialLink{}
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		Drainer(ctx, o, link, testLogger())
		close(done)
	}()

	o.Send("P34")
	require.Eventually(t, func() bool { return len(link.written) == 1 }, time.Second, time.Millisecond)
	require.Equal(t, "P34\n", string(link.written[0]))

	cancel()
	<-done
}
