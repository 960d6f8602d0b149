// notes.go - character-level encoding for the serial note-event protocol
// (spec.md §6): octave digit <-> shift, hex digit <-> semitone index, and
// the `Pxy`/`Rxy` message shape itself.

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

import "fmt"

// octaveCharToShift converts a '0'..'8' octave digit to a shift in [-4,4]
// relative to octave 4, per spec.md §6 ("'4' = 0"). ok is false for any
// other character.
func octaveCharToShift(c byte) (shift int, ok bool) {
	if c < '0' || c > '8' {
		return 0, false
	}
	return int(c) - '4', true
}

// shiftToOctaveChar is the inverse of octaveCharToShift, used when emitting
// outgoing events. Outgoing events from the scanner always use octave 4
// (spec.md §6 "outgoing events... always use x='4'"), but this is kept
// general for symmetry and for tests.
func shiftToOctaveChar(shift int) (c byte, ok bool) {
	if shift < -4 || shift > 4 {
		return 0, false
	}
	return byte('4' + shift), true
}

// hexCharToSemitone converts a '0'..'B' hex digit to a semitone index
// 0..11.
func hexCharToSemitone(c byte) (semitone int, ok bool) {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0'), true
	case c >= 'A' && c <= 'B':
		return int(c-'A') + 10, true
	case c >= 'a' && c <= 'b':
		return int(c-'a') + 10, true
	default:
		return 0, false
	}
}

// semitoneToHexChar is the inverse of hexCharToSemitone.
func semitoneToHexChar(semitone int) (c byte, ok bool) {
	if semitone < 0 || semitone > 11 {
		return 0, false
	}
	if semitone < 10 {
		return byte('0' + semitone), true
	}
	return byte('A' + semitone - 10), true
}

// parseNoteEvent decodes a 3-byte `Pxy`/`Rxy` field into a press/release
// flag and a Note. ok is false for any malformed field (spec.md §7
// "messages with unrecognized first byte or out-of-range fields are
// silently ignored").
func parseNoteEvent(field [3]byte) (press bool, note Note, ok bool) {
	switch field[0] {
	case 'P':
		press = true
	case 'R':
		press = false
	default:
		return false, Note{}, false
	}

	shift, ok1 := octaveCharToShift(field[1])
	semitone, ok2 := hexCharToSemitone(field[2])
	if !ok1 || !ok2 {
		return false, Note{}, false
	}
	return press, Note{Semitone: semitone, OctaveShift: shift}, true
}

// formatNoteEvent builds an outgoing `Pxy`/`Rxy` message. keyIndex is the
// scanner's row-major key index (0..11); outgoing events always use octave
// digit '4' per spec.md §6.
func formatNoteEvent(press bool, keyIndex int) (string, error) {
	c, ok := semitoneToHexChar(keyIndex)
	if !ok {
		return "", fmt.Errorf("notes: key index %d out of range", keyIndex)
	}
	prefix := byte('R')
	if press {
		prefix = 'P'
	}
	return string([]byte{prefix, '4', c}), nil
}
