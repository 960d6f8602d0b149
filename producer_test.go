package main

import (
	"log"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func testLogger() *log.Logger {
	return log.New(testWriter{}, "", 0)
}

type testWriter struct{}

func (testWriter) Write(p []byte) (int, error) { return len(p), nil }

func TestPhaseMuxRotatesTurnEveryPeriod(t *testing.T) {
	var mux phaseMux
	require.Equal(t, 0, mux.currentVoice(3))

	for i := 0; i < polyphonyRotationPeriod-1; i++ {
		mux.advanceTurn(3)
	}
	require.Equal(t, 0, mux.currentVoice(3))

	mux.advanceTurn(3)
	require.Equal(t, 1, mux.currentVoice(3))
}

func TestPhaseMuxNoActiveVoiceReturnsNegativeOne(t *testing.T) {
	var mux phaseMux
	require.Equal(t, -1, mux.currentVoice(0))
}

func TestPhaseMuxDoesNotAdvanceTurnWithNoVoices(t *testing.T) {
	var mux phaseMux
	for i := 0; i < polyphonyRotationPeriod*3; i++ {
		mux.advanceTurn(0)
	}
	require.Equal(t, uint32(0), mux.turn)
}

// TestSquareWaveGenRespectsHighLowCounts is spec.md §4.4: the joystick LFO
// holds 0xFF for "high" samples then 0x00 for "low" samples before
// repeating.
func TestSquareWaveGenRespectsHighLowCounts(t *testing.T) {
	var g squareWaveGen
	high, low := uint32(3), uint32(2)

	var got []byte
	for i := 0; i < int(high+low)*2; i++ {
		got = append(got, g.next(high, low))
	}

	require.Equal(t, []byte{0xFF, 0xFF, 0xFF, 0x00, 0x00, 0xFF, 0xFF, 0xFF, 0x00, 0x00}, got)
}

func TestSquareWaveGenZeroPeriodReturnsZero(t *testing.T) {
	var g squareWaveGen
	require.Equal(t, byte(0), g.next(0, 0))
}

// TestSampleProducerFillProducesFullBuffer is spec.md §8 boundary scenario 1
// (chord): with three voices active, fill must still produce audioBufLen
// bytes without panicking, regardless of which voice currently has the turn.
func TestSampleProducerFillProducesFullBuffer(t *testing.T) {
	state := NewSharedState()
	state.SetVoiceSteps(0, sawStepForNote(0, 0), sineStepForNote(0, 0))
	state.SetVoiceSteps(1, sawStepForNote(4, 0), sineStepForNote(4, 0))
	state.SetVoiceSteps(2, sawStepForNote(7, 0), sineStepForNote(7, 0))

	voices := NewVoiceTable()
	db := NewDoubleBuffer()
	reverb := NewReverb(state, 1.0)
	p := NewSampleProducer(state, voices, db, reverb, testLogger())

	var buf audioBuffer
	p.fill(&buf)

	require.Len(t, buf.data, audioBufLen)
}

// TestSampleProducerChordCarriesAllThreeNoteFrequencies follows spec.md §8
// boundary scenario 1 (C, C# and D at octave 4): with those three voices
// active, the output must carry audible energy at 261.6, 277.2 and 293.7Hz.
// The voice-turn multiplexer (spec.md §4.3) gives each voice the turn for
// polyphonyRotationPeriod samples before rotating, so a single audioBufLen
// fill carries at most two voices; this test drains enough consecutive
// fills to span a full rotation of all three and runs a Goertzel check
// (goertzelEnergy) at each note's frequency, the same
// statistical-verification style rmsEnergy uses in reverb_test.go.
func TestSampleProducerChordCarriesAllThreeNoteFrequencies(t *testing.T) {
	state := NewSharedState()
	state.SetVoiceSteps(0, sawStepForNote(0, 0), sineStepForNote(0, 0))
	state.SetVoiceSteps(1, sawStepForNote(1, 0), sineStepForNote(1, 0))
	state.SetVoiceSteps(2, sawStepForNote(2, 0), sineStepForNote(2, 0))

	voices := NewVoiceTable()
	db := NewDoubleBuffer()
	reverb := NewReverb(state, 1.0)
	p := NewSampleProducer(state, voices, db, reverb, testLogger())

	samples := make([]float64, 0, polyphonyRotationPeriod*4)
	for len(samples) < polyphonyRotationPeriod*3 {
		var buf audioBuffer
		p.fill(&buf)
		for _, b := range buf.data {
			samples = append(samples, float64(b)-128)
		}
	}

	for _, hz := range []float64{261.6, 277.2, 293.7} {
		require.Greater(t, goertzelEnergy(samples, hz, sampleRate), 1.0,
			"expected audible energy at %.1fHz across one full voice rotation", hz)
	}
}

// goertzelEnergy reports the magnitude of samples' content at targetHz,
// sampled at rate, using the Goertzel algorithm: a single-bin DFT cheaper
// than a full transform when only a few known frequencies matter.
func goertzelEnergy(samples []float64, targetHz float64, rate int) float64 {
	n := float64(len(samples))
	k := math.Round(n * targetHz / float64(rate))
	omega := 2 * math.Pi * k / n
	coeff := 2 * math.Cos(omega)

	var s0, s1, s2 float64
	for _, x := range samples {
		s0 = x + coeff*s1 - s2
		s2 = s1
		s1 = s0
	}
	real := s1 - s2*math.Cos(omega)
	imag := s2 * math.Sin(omega)
	return math.Sqrt(real*real+imag*imag) / n
}

func TestSampleProducerPrimeBuffersFillsBothSlots(t *testing.T) {
	state := NewSharedState()
	voices := NewVoiceTable()
	db := NewDoubleBuffer()
	reverb := NewReverb(state, 1.0)
	p := NewSampleProducer(state, voices, db, reverb, testLogger())

	p.PrimeBuffers()

	require.Len(t, db.sem[0], 1)
	require.Len(t, db.sem[1], 1)
}
