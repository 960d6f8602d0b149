// state.go - published shared state crossing the scanner/ingester → producer
// boundary. The protection scheme for each field follows spec.md §5's table:
// plain word-aligned atomics for step sizes, mode flags and knob counters; a
// short-hold mutex for the two float scalars (wet, time-scale) that cannot
// assume a lock-free hardware atomic.

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
	"sync"
	"sync/atomic"
)

// Waveform selects the oscillator path used by the sample producer when the
// joystick is not in control of the output (spec.md §4.8.5).
type Waveform int32

const (
	WaveformSawtooth Waveform = 0
	WaveformSine     Waveform = 1
)

// SharedState holds every field the key scanner, serial ingester and knob
// decoder publish for the sample producer and the display composer to read.
type SharedState struct {
	// Per-voice step sizes, one pair per voice slot. A value of 0 means the
	// voice is inactive (spec.md §3 "Per-voice step size" invariant).
	sawStep  [3]atomic.Uint32
	sineStep [3]atomic.Uint32

	waveform       atomic.Int32 // Waveform
	joystickMode   atomic.Bool
	reverbEnabled  atomic.Bool
	volume         atomic.Uint32 // 0..16, logarithmic DAC attenuation (spec.md §4.7)

	// Knob rotation counters, range [0,16] (mod-17 wraparound, spec.md §4.9).
	knobRotation [4]atomic.Uint32

	// Joystick-derived square-wave timing (spec.md §4.4). Published as
	// separate high/low sample counts so the producer never divides.
	joyHighTime atomic.Uint32
	joyLowTime  atomic.Uint32

	// wet and time-scale are floats with no portable lock-free atomic, so
	// they are protected by a short-hold mutex per spec.md §4.5/§5.
	reverbMu         sync.Mutex
	wet              float32
	timeScale        float32
	timeScaleApplied bool // time-scale is only read into effective buffer lengths once, at startup
}

func NewSharedState() *SharedState {
	s := &SharedState{}
	s.waveform.Store(int32(WaveformSawtooth))
	s.volume.Store(16)
	s.wet = 0.3
	s.timeScale = 1.0
	return s
}

func (s *SharedState) SawStep(voice int) uint32  { return s.sawStep[voice].Load() }
func (s *SharedState) SineStep(voice int) uint32 { return s.sineStep[voice].Load() }

func (s *SharedState) SetVoiceSteps(voice int, saw, sine uint32) {
	s.sawStep[voice].Store(saw)
	s.sineStep[voice].Store(sine)
}

func (s *SharedState) ClearVoiceSteps(voice int) {
	s.sawStep[voice].Store(0)
	s.sineStep[voice].Store(0)
}

// VoiceCount derives the active voice count solely from the highest non-zero
// sawtooth step size, per spec.md §4.3's deliberately racy definition.
func (s *SharedState) VoiceCount() int {
	switch {
	case s.sawStep[2].Load() != 0:
		return 3
	case s.sawStep[1].Load() != 0:
		return 2
	case s.sawStep[0].Load() != 0:
		return 1
	default:
		return 0
	}
}

func (s *SharedState) Waveform() Waveform   { return Waveform(s.waveform.Load()) }
func (s *SharedState) SetWaveform(w Waveform) { s.waveform.Store(int32(w)) }
func (s *SharedState) ToggleWaveform() {
	if s.Waveform() == WaveformSawtooth {
		s.SetWaveform(WaveformSine)
	} else {
		s.SetWaveform(WaveformSawtooth)
	}
}

func (s *SharedState) JoystickMode() bool    { return s.joystickMode.Load() }
func (s *SharedState) ToggleJoystickMode()   { s.joystickMode.Store(!s.joystickMode.Load()) }

func (s *SharedState) ReverbEnabled() bool  { return s.reverbEnabled.Load() }
func (s *SharedState) ToggleReverb()        { s.reverbEnabled.Store(!s.reverbEnabled.Load()) }

func (s *SharedState) Volume() uint32     { return s.volume.Load() }
func (s *SharedState) SetVolume(v uint32) { s.volume.Store(v) }

func (s *SharedState) KnobRotation(knob int) uint32 { return s.knobRotation[knob].Load() }

// AddKnobDelta advances a knob's rotation counter by delta modulo 17, wrapping
// within [0,16] in either direction (spec.md §4.9, §8 invariant 4).
func (s *SharedState) AddKnobDelta(knob int, delta int) uint32 {
	for {
		old := s.knobRotation[knob].Load()
		next := uint32((int(old) + delta%17 + 17) % 17)
		if s.knobRotation[knob].CompareAndSwap(old, next) {
			return next
		}
	}
}

func (s *SharedState) JoystickTiming() (high, low uint32) {
	return s.joyHighTime.Load(), s.joyLowTime.Load()
}

func (s *SharedState) SetJoystickTiming(high, low uint32) {
	s.joyHighTime.Store(high)
	s.joyLowTime.Store(low)
}

func (s *SharedState) Wet() float32 {
	s.reverbMu.Lock()
	defer s.reverbMu.Unlock()
	return s.wet
}

func (s *SharedState) SetWet(w float32) {
	s.reverbMu.Lock()
	defer s.reverbMu.Unlock()
	s.wet = w
}

// TimeScale returns the reverb time-scale held in SharedState. The reverb
// does not read it: its delay lines are sized once, from the timeScale
// argument given to NewReverb.
func (s *SharedState) TimeScale() float32 {
	s.reverbMu.Lock()
	defer s.reverbMu.Unlock()
	return s.timeScale
}
