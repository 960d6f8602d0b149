// audio_lut.go - immutable lookup tables for oscillator step sizes.

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

import "math"

const (
	sampleRate = 22000 // DAC sample clock, Hz (spec.md §6)
	sineLUTLen = 5000  // one unit cycle, byte-scaled to [0,255] (spec.md §4.2)
)

// sineLUT holds one cycle of a unit sine wave, pre-quantised to bytes.
var sineLUT [sineLUTLen]byte

func init() {
	for i := 0; i < sineLUTLen; i++ {
		phase := 2 * math.Pi * float64(i) / float64(sineLUTLen)
		v := (math.Sin(phase) + 1.0) / 2.0 // [0,1]
		sineLUT[i] = byte(math.Round(v * 255))
	}
}

// noteFreqOctave4 is the equal-tempered frequency, in Hz, of each of the 12
// semitones (0=C .. 11=B) at octave 4 (A4 = 440Hz).
var noteFreqOctave4 = [12]float64{
	261.626, // C4
	277.183, // C#4
	293.665, // D4
	311.127, // D#4
	329.628, // E4
	349.228, // F4
	369.994, // F#4
	391.995, // G4
	415.305, // G#4
	440.000, // A4
	466.164, // A#4
	493.883, // B4
}

// sawBaseStep is the 32-bit phase-accumulator increment for each semitone at
// octave 4: round(freq * 2^32 / sampleRate). See spec.md §4.1.
var sawBaseStep [12]uint32

// sineBaseStep is the sine-table index step for each semitone at octave 4:
// round(freq * sineLUTLen / sampleRate). For octave 4 this gives 59..112
// (C4≈59.46 rounds to 59, B4≈112.25 rounds to 112).
var sineBaseStep [12]uint32

func init() {
	for i, freq := range noteFreqOctave4 {
		sawBaseStep[i] = uint32(math.Round(freq * (1 << 32) / sampleRate))
		sineBaseStep[i] = uint32(math.Round(freq * sineLUTLen / sampleRate))
	}
}

// sawStepForNote returns the sawtooth phase-accumulator step for a semitone
// at the given octave shift relative to octave 4 ([-4,+4]). Octaves above or
// below 4 are obtained by a logical shift of the base value, exact under
// wraparound arithmetic (spec.md §4.1).
func sawStepForNote(semitone int, octaveShift int) uint32 {
	base := sawBaseStep[semitone]
	return shiftStep(base, octaveShift)
}

// sineStepForNote returns the sine-table step for a semitone at the given
// octave shift, using the same shift technique as sawStepForNote.
func sineStepForNote(semitone int, octaveShift int) uint32 {
	base := sineBaseStep[semitone]
	return shiftStep(base, octaveShift)
}

func shiftStep(base uint32, octaveShift int) uint32 {
	switch {
	case octaveShift > 0:
		return base << uint(octaveShift)
	case octaveShift < 0:
		return base >> uint(-octaveShift)
	default:
		return base
	}
}
