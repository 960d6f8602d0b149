// keyscanner.go - the 50ms key scanner (spec.md §4.8): scans the 7x4 switch
// matrix, emits note events, rebuilds the voice table, derives joystick
// timing, toggles mode flags on button release, and drives the knob
// decoders.

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
	"sync"
	"time"
)

// ScanPeriod is spec.md §2's 50ms key-scanner rate.
const ScanPeriod = 50 * time.Millisecond

// piano key bit layout: rows 0-2, 4 columns each, row-major key index.
const pianoRows = 3

// maxKnobRotation is the top of a knob's [0,16] rotation range (spec.md §3
// "Knob state"), used to scale knob0's rotation into the [0,1] wet mix.
const maxKnobRotation = 16

// side-button bit positions within rows 5 and 6 (spec.md §6).
const (
	waveformToggleBit     = 1
	joystickModeToggleBit = 2
	reverbToggleBit       = 0
)

// knobRowBit is the row and starting-bit-pair location of each of the four
// knobs' quadrature lines, per spec.md §6 ("row 3: knobs 3,2"; "row 4:
// knobs 1,0"). Each knob occupies two adjacent bits, A then B.
var knobRowBit = [4]struct {
	row, bit int
}{
	0: {row: 4, bit: 2}, // knob 0
	1: {row: 4, bit: 0}, // knob 1
	2: {row: 3, bit: 2}, // knob 2
	3: {row: 3, bit: 0}, // knob 3
}

// KeyScanner owns the matrix snapshot, the knob decoders and the side-button
// edge-detection state.
type KeyScanner struct {
	matrix   MatrixReader
	voices   *VoiceTable
	state    *SharedState
	outbox   *Outbox
	joystick JoystickReader
	log      *log.Logger

	rows [matrixRows]MatrixRow

	snapshotMu sync.Mutex // "key-array lock" of spec.md §5
	snapshot   [matrixRows]MatrixRow

	knobs [4]knobDecoder

	keyChanged bool
}

func NewKeyScanner(matrix MatrixReader, voices *VoiceTable, state *SharedState, outbox *Outbox, joystick JoystickReader, logger *log.Logger) *KeyScanner {
	ks := &KeyScanner{matrix: matrix, voices: voices, state: state, outbox: outbox, joystick: joystick, log: logger}
	for i := range ks.rows {
		for j := range ks.rows[i] {
			ks.rows[i][j] = true // released
		}
	}
	return ks
}

// Run drives the scan loop for the lifetime of ctx.
func (ks *KeyScanner) Run(ctx context.Context) {
	ticker := time.NewTicker(ScanPeriod)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			ks.scanOnce()
		}
	}
}

// scanOnce performs one full pass of spec.md §4.8's six steps.
func (ks *KeyScanner) scanOnce() {
	var next [matrixRows]MatrixRow
	for row := 0; row < matrixRows; row++ {
		next[row] = ks.matrix.ReadRow(row)
	}

	ks.publishSnapshot(next)

	ks.keyChanged = false
	ks.emitNoteEvents(next)
	if ks.keyChanged {
		ks.rebuildVoiceTable(next)
	}

	ks.deriveJoystickTiming()
	ks.handleSideButtons(next)
	ks.decodeKnobs(next)

	ks.rows = next
}

// publishSnapshot stores the freshly scanned rows under the key-array lock
// for the display composer (spec.md §4.8 step 1).
func (ks *KeyScanner) publishSnapshot(next [matrixRows]MatrixRow) {
	ks.snapshotMu.Lock()
	defer ks.snapshotMu.Unlock()
	ks.snapshot = next
}

// Snapshot returns a copy of the last published key-matrix snapshot.
func (ks *KeyScanner) Snapshot() [matrixRows]MatrixRow {
	ks.snapshotMu.Lock()
	defer ks.snapshotMu.Unlock()
	return ks.snapshot
}

// emitNoteEvents compares next against the previous scan for rows 0..2 only
// and enqueues a Pxy/Rxy event for every changed bit (spec.md §4.8 step 2).
func (ks *KeyScanner) emitNoteEvents(next [matrixRows]MatrixRow) {
	for row := 0; row < pianoRows; row++ {
		for col := 0; col < matrixCols; col++ {
			if ks.rows[row][col] == next[row][col] {
				continue
			}
			ks.keyChanged = true
			keyIndex := row*matrixCols + col
			pressed := !next[row][col] // active low: false == pressed
			msg, err := formatNoteEvent(pressed, keyIndex)
			if err != nil {
				continue
			}
			ks.outbox.Send(msg)
		}
	}
}

// rebuildVoiceTable scans rows 0..2 in row-major order, assigns up to three
// currently-pressed keys to voice slots 0,1,2, and republishes step sizes
// (spec.md §4.8 step 3). Physical keys are always octave 4.
func (ks *KeyScanner) rebuildVoiceTable(next [matrixRows]MatrixRow) {
	var pressed []int
	for row := 0; row < pianoRows; row++ {
		for col := 0; col < matrixCols; col++ {
			if !next[row][col] {
				pressed = append(pressed, row*matrixCols+col)
			}
		}
	}
	ks.voices.ReplaceFromScan(pressed)

	notes := ks.voices.Snapshot()
	for i := 0; i < maxVoices; i++ {
		if i < len(notes) {
			n := notes[i]
			ks.state.SetVoiceSteps(i, sawStepForNote(n.Semitone, n.OctaveShift), sineStepForNote(n.Semitone, n.OctaveShift))
		} else {
			ks.state.ClearVoiceSteps(i)
		}
	}
}

// deriveJoystickTiming reads the joystick axes and publishes the square
// wave's high/low sample counts per spec.md §4.4.
func (ks *KeyScanner) deriveJoystickTiming() {
	if ks.joystick == nil {
		return
	}
	x, y := ks.joystick.Read()
	period := 56 + x/50
	high := (period * y) / 1024
	if high > period {
		high = period
	}
	if high < 0 {
		high = 0
	}
	low := period - high
	ks.state.SetJoystickTiming(uint32(high), uint32(low))
}

// handleSideButtons toggles joystick-mode, wave-form and reverb-enabled on
// the rising edge of their respective bits: since a pressed contact reads
// as the stored bit going false (active low), the physical button's
// electrical signal actually rises on release, so the toggle fires there
// (see DESIGN.md "Side-button toggle fires on release, not press").
func (ks *KeyScanner) handleSideButtons(next [matrixRows]MatrixRow) {
	if risingEdge(ks.rows[5][waveformToggleBit], next[5][waveformToggleBit]) {
		ks.state.ToggleWaveform()
	}
	if risingEdge(ks.rows[5][joystickModeToggleBit], next[5][joystickModeToggleBit]) {
		ks.state.ToggleJoystickMode()
	}
	if risingEdge(ks.rows[6][reverbToggleBit], next[6][reverbToggleBit]) {
		ks.state.ToggleReverb()
	}
}

func risingEdge(prev, next bool) bool {
	return !prev && next
}

// decodeKnobs feeds each knob's (A,B) pair to its decoder and applies the
// resulting signed increment to the shared rotation counter. Knob 3's
// rotation doubles as the published DAC volume and knob 0's doubles as the
// reverb wet mix (spec.md §4.12 "volume (knob3 rotation), reverb amount
// (knob0 rotation)"), so both are republished here whenever they move.
func (ks *KeyScanner) decodeKnobs(next [matrixRows]MatrixRow) {
	for i, loc := range knobRowBit {
		a := next[loc.row][loc.bit]
		b := next[loc.row][loc.bit+1]
		delta := ks.knobs[i].decode(a, b)
		if delta == 0 {
			continue
		}
		rotation := ks.state.AddKnobDelta(i, delta)
		switch i {
		case 3:
			ks.state.SetVolume(rotation)
		case 0:
			ks.state.SetWet(float32(rotation) / float32(maxKnobRotation))
		}
	}
}
