// voice_table.go - the three-voice polyphony slot table (spec.md §3).
//
// Slots are kept left-packed: the set of occupied slots is always a prefix
// of length 0..3. This invariant is property-tested in voice_table_test.go.

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

import "sync"

const maxVoices = 3

// Note identifies a pressed key: a semitone in [0,11] and an octave shift in
// [-4,+4] relative to octave 4.
type Note struct {
	Semitone    int
	OctaveShift int
}

type voiceSlot struct {
	occupied bool
	note     Note
}

// VoiceTable is the single source of truth for which of the three voice
// slots are occupied. It is guarded by one mutex (the "voice-table lock" of
// spec.md §5) shared by the key scanner, the serial ingester and the display
// composer.
type VoiceTable struct {
	mu    sync.Mutex
	slots [maxVoices]voiceSlot
}

func NewVoiceTable() *VoiceTable {
	return &VoiceTable{}
}

// Snapshot returns a copy of the occupied notes, left-packed, for the
// display composer or tests. The returned slice has length 0..3.
func (vt *VoiceTable) Snapshot() []Note {
	vt.mu.Lock()
	defer vt.mu.Unlock()
	var notes []Note
	for _, s := range vt.slots {
		if !s.occupied {
			break
		}
		notes = append(notes, s.note)
	}
	return notes
}

func (vt *VoiceTable) count() int {
	n := 0
	for _, s := range vt.slots {
		if !s.occupied {
			break
		}
		n++
	}
	return n
}

func (vt *VoiceTable) indexOf(n Note) int {
	for i, s := range vt.slots {
		if s.occupied && s.note == n {
			return i
		}
	}
	return -1
}

// compact shifts occupied slots down to remove a gap at index i, per
// spec.md §3 "when slot i is released, slots i+1, i+2 shift down".
func (vt *VoiceTable) compact(i int) {
	for j := i; j < maxVoices-1; j++ {
		vt.slots[j] = vt.slots[j+1]
	}
	vt.slots[maxVoices-1] = voiceSlot{}
}

// PressRemote records a note pressed over the serial link (spec.md §4.10).
// A duplicate of an already-held note is a silent no-op. Returns the slot
// index the note was assigned to, or -1 if all three voices are occupied.
func (vt *VoiceTable) PressRemote(n Note) int {
	vt.mu.Lock()
	defer vt.mu.Unlock()

	if vt.indexOf(n) >= 0 {
		return -1 // duplicate, no-op
	}
	count := vt.count()
	if count >= maxVoices {
		return -1 // no free slot (spec.md §7 "more than three simultaneous keys")
	}
	vt.slots[count] = voiceSlot{occupied: true, note: n}
	return count
}

// ReleaseRemote releases a note pressed over the serial link, compacting the
// table left. Returns true if a matching voice was found and released.
func (vt *VoiceTable) ReleaseRemote(n Note) bool {
	vt.mu.Lock()
	defer vt.mu.Unlock()

	i := vt.indexOf(n)
	if i < 0 {
		return false
	}
	vt.compact(i)
	return true
}

// ReplaceFromScan rebuilds the voice table wholesale from the currently
// pressed physical keys, in row-major order, per spec.md §4.8 step 3. Only
// the first three pressed keys are assigned; the rest are dropped (spec.md
// §7 "more than three simultaneous keys"). Physical keys are always octave 4
// (shift 0).
func (vt *VoiceTable) ReplaceFromScan(pressedSemitones []int) {
	vt.mu.Lock()
	defer vt.mu.Unlock()

	var next [maxVoices]voiceSlot
	for i := 0; i < maxVoices && i < len(pressedSemitones); i++ {
		next[i] = voiceSlot{occupied: true, note: Note{Semitone: pressedSemitones[i]}}
	}
	vt.slots = next
}

// IsLeftPacked reports whether the occupied slots form a prefix, i.e. the
// data-model invariant from spec.md §3 holds. Used by property tests.
func (vt *VoiceTable) IsLeftPacked() bool {
	vt.mu.Lock()
	defer vt.mu.Unlock()
	seenEmpty := false
	for _, s := range vt.slots {
		if !s.occupied {
			seenEmpty = true
			continue
		}
		if seenEmpty {
			return false
		}
	}
	return true
}
