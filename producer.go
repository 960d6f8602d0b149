// producer.go - the sample producer (spec.md §4.6): fills one 220-byte
// buffer per invocation from the active source (sawtooth/sine/square),
// optionally post-filtered by the reverb, then hands it to the double
// buffer's free slot.

/*
 ██▓ ███▄    █ ▄▄▄█████▓ █    ██  ██▓▄▄▄█████▓ ██▓ ▒█████   ███▄    █    ▓█████  ███▄    █   ▄████  ██▓ ███▄    █ ▓█████
▓██▒ ██ ▀█   █ ▓  ██▒ ▓▒ ██  ▓██▒▓██▒▓  ██▒ ▓▒▓██▒▒██▒  ██▒ ██ ▀█   █    ▓█   ▀  ██ ▀█   █  ██▒ ▀█▒▓██▒ ██ ▀█   █ ▓█   ▀
▒██▒▓██  ▀█ ██▒▒ ▓██░ ▒░▓██  ▒██░▒██▒▒ ▓██░ ▒░▒██▒▒██░  ██▒▓██  ▀█ ██▒   ▒███   ▓██  ▀█ ██▒▒██░▄▄▄░▒██▒▓██  ▀█ ██▒▒███
░██░▓██▒  ▐▌██▒░ ▓██▓ ░ ▓▓█  ░██░░██░░ ▓██▓ ░ ░██░▒██   ██░▓██▒  ▐▌██▒   ▒▓█  ▄ ▓██▒  ▐▌██▒░▓█  ██▓░██░▓██▒  ▐▌██▒▒▓█  ▄
░██░▒██░   ▓██░  ▒██▒ ░ ▒▒█████▓ ░██░  ▒██▒ ░ ░██░░ ████▓▒░▒██░   ▓██░   ░▒████▒▒██░   ▓██░░▒▓███▀▒░██░▒██░   ▓██░░▒████▒
░▓  ░ ▒░   ▒ ▒   ▒ ░░   ░▒▓▒ ▒ ▒ ░▓    ▒ ░░   ░▓  ░ ▒░▒░▒░ ░ ▒░   ▒ ▒    ░░ ▒░ ░░ ▒░   ▒ ▒  ░▒   ▒ ░▓  ░ ▒░   ▒ ▒ ░░ ▒░ ░
 ▒ ░░ ░░   ░ ▒░    ░    ░░▒░ ░ ░  ▒ ░    ░     ▒ ░  ░ ▒ ▒░ ░ ░░   ░ ▒░    ░ ░  ░░ ░░   ░ ▒░  ░   ░  ▒ ░░ ░░   ░ ▒░ ░ ░  ░
 ▒ ░   ░   ░ ░   ░       ░░░ ░ ░  ▒ ░  ░       ▒ ░░ ░ ░ ▒     ░   ░ ░       ░      ░   ░ ░ ░ ░   ░  ▒ ░   ░   ░ ░    ░
 ░           ░             ░      ░            ░      ░ ░           ░       ░  ░         ░       ░  ░           ░    ░  ░

(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/IntuitionEngine
License: GPLv3 or later
*/

package main

import (
	"context"
	"log"
	"time"
)

// bufferReadyTimeout is how long the producer waits for either buffer to
// become free before skipping a turn (spec.md §4.6, §7).
const bufferReadyTimeout = 10 * time.Millisecond

// polyphonyRotationPeriod is how many samples elapse before the round-robin
// voice-turn index advances (spec.md §4.3).
const polyphonyRotationPeriod = 750

// phaseMux implements the polyphony time-multiplexer of spec.md §4.3: a
// single shared accumulator advanced each sample by the step size of
// whichever voice currently has "the turn".
type phaseMux struct {
	sampleCounter int
	turn          uint32
	sawAccum      uint32
	sinePos       uint32
}

func (p *phaseMux) advanceTurn(voiceCount int) {
	p.sampleCounter++
	if p.sampleCounter >= polyphonyRotationPeriod {
		p.sampleCounter = 0
		if voiceCount > 0 {
			p.turn++
		}
	}
}

func (p *phaseMux) currentVoice(voiceCount int) int {
	if voiceCount == 0 {
		return -1
	}
	return int(p.turn % uint32(voiceCount))
}

// squareWaveGen implements the joystick LFO of spec.md §4.4.
type squareWaveGen struct {
	pos int
}

func (g *squareWaveGen) next(high, low uint32) byte {
	period := int(high + low)
	if period <= 0 {
		return 0
	}
	out := byte(0x00)
	if g.pos < int(high) {
		out = 0xFF
	}
	g.pos++
	if g.pos >= period {
		g.pos = 0
	}
	return out
}

// SampleProducer owns the oscillator state and fills the double buffer.
type SampleProducer struct {
	state  *SharedState
	voices *VoiceTable
	db     *DoubleBuffer
	reverb *Reverb
	log    *log.Logger

	mux    phaseMux
	square squareWaveGen
}

func NewSampleProducer(state *SharedState, voices *VoiceTable, db *DoubleBuffer, reverb *Reverb, logger *log.Logger) *SampleProducer {
	return &SampleProducer{state: state, voices: voices, db: db, reverb: reverb, log: logger}
}

// fillOnce tries buffer "2" (index 1) first, then buffer "1" (index 0),
// matching spec.md §4.6's symmetric preference. Returns false if neither
// buffer became free within bufferReadyTimeout, in which case the ISR will
// simply repeat the last drained buffer for up to one more pass.
func (p *SampleProducer) fillOnce(ctx context.Context) bool {
	timer := time.NewTimer(bufferReadyTimeout)
	defer timer.Stop()

	select {
	case <-p.db.sem[1]:
		p.fill(&p.db.bufs[1])
		return true
	default:
	}
	select {
	case <-p.db.sem[0]:
		p.fill(&p.db.bufs[0])
		return true
	case <-p.db.sem[1]:
		p.fill(&p.db.bufs[1])
		return true
	case <-timer.C:
		p.log.Printf("producer: no buffer became free in time, skipping turn")
		return false
	case <-ctx.Done():
		return false
	}
}

// fill writes audioBufLen consecutive bytes, reading the mode snapshot once
// per invocation per spec.md §4.6.
func (p *SampleProducer) fill(buf *audioBuffer) {
	joystick := p.state.JoystickMode()
	waveform := p.state.Waveform()
	reverbOn := p.state.ReverbEnabled()
	high, low := p.state.JoystickTiming()

	for i := 0; i < audioBufLen; i++ {
		var b byte
		if joystick {
			b = p.square.next(high, low)
		} else {
			b = p.nextTonalSample(waveform)
		}
		if reverbOn {
			b = p.reverb.ProcessSample(b)
		}
		buf.data[i] = b
	}
}

// nextTonalSample advances the phase multiplexer by one sample and returns
// the sawtooth or sine output for the voice currently holding the turn
// (spec.md §4.1-§4.3).
func (p *SampleProducer) nextTonalSample(waveform Waveform) byte {
	voiceCount := p.state.VoiceCount()
	voice := p.mux.currentVoice(voiceCount)
	p.mux.advanceTurn(voiceCount)

	if voice < 0 {
		// No active voice: hold constant output (spec.md §4.3 "when k = 0
		// the output is held constant").
		if waveform == WaveformSine {
			return sineLUT[0]
		}
		return byte(p.mux.sawAccum >> 24)
	}

	switch waveform {
	case WaveformSine:
		step := p.state.SineStep(voice)
		p.mux.sinePos = (p.mux.sinePos + step) % sineLUTLen
		return sineLUT[p.mux.sinePos]
	default:
		step := p.state.SawStep(voice)
		p.mux.sawAccum += step
		return byte(p.mux.sawAccum >> 24)
	}
}

// Run drives the producer loop for the lifetime of ctx, filling whichever
// buffer frees up next. This is the goroutine wired into main.go; its
// priority relative to the other activities is approximated by Go's runtime
// scheduler rather than an RTOS priority ceiling.
func (p *SampleProducer) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}
		p.fillOnce(ctx)
	}
}

// PrimeBuffers fills both buffers synchronously before the DAC backend
// starts pulling samples, avoiding an audible garbage-buffer transient at
// boot.
func (p *SampleProducer) PrimeBuffers() {
	<-p.db.sem[0]
	p.fill(&p.db.bufs[0])
	p.db.sem[0] <- struct{}{}

	<-p.db.sem[1]
	p.fill(&p.db.bufs[1])
	p.db.sem[1] <- struct{}{}
}
