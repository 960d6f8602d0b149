// serial_ingester.go - the serial note-event parser (spec.md §4.10).
// Accumulates bytes up to a newline into a 3-byte `Pxy`/`Rxy` field and
// mutates the voice table accordingly. The source's 5ms polling cadence is
// realised here as a continuous blocking read loop rather than a timed
// poll: Go's goroutine scheduler can park a blocked read for free, so there
// is no reason to wake up, find nothing, and go back to sleep every 5ms
// (see DESIGN.md).

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
	"bufio"
	"context"
	"log"
)

// SerialIngester drains a SerialLink and rearranges the voice table.
type SerialIngester struct {
	link   SerialLink
	voices *VoiceTable
	state  *SharedState
	log    *log.Logger
}

func NewSerialIngester(link SerialLink, voices *VoiceTable, state *SharedState, logger *log.Logger) *SerialIngester {
	return &SerialIngester{link: link, voices: voices, state: state, log: logger}
}

// Run processes incoming messages until ctx is cancelled or the link
// returns a read error.
func (si *SerialIngester) Run(ctx context.Context) {
	r := bufio.NewReader(si.link)
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		line, err := r.ReadString('\n')
		if err != nil {
			return
		}
		si.ingestLine(line)
	}
}

func (si *SerialIngester) ingestLine(line string) {
	if len(line) < 3 {
		return
	}
	var field [3]byte
	copy(field[:], line[:3])

	press, note, ok := parseNoteEvent(field)
	if !ok {
		si.log.Printf("serial ingester: malformed field %q", field)
		return
	}

	if press {
		si.handlePress(note)
	} else {
		si.handleRelease(note)
	}
}

// handlePress assigns note to the lowest empty voice slot and publishes its
// step sizes, per spec.md §4.10. A duplicate of an already-held note is a
// silent no-op (delegated to VoiceTable.PressRemote).
func (si *SerialIngester) handlePress(note Note) {
	slot := si.voices.PressRemote(note)
	if slot < 0 {
		return
	}
	saw := sawStepForNote(note.Semitone, note.OctaveShift)
	sine := sineStepForNote(note.Semitone, note.OctaveShift)
	si.state.SetVoiceSteps(slot, saw, sine)
}

// handleRelease locates the voice carrying note, compacts the table left,
// and republishes step sizes for every slot now shifted down, clearing the
// freed top slot.
func (si *SerialIngester) handleRelease(note Note) {
	if !si.voices.ReleaseRemote(note) {
		return
	}
	si.republishSteps()
}

// republishSteps rewrites the published step sizes for every slot from the
// current voice-table contents, matching the left-compaction ReleaseRemote
// just performed.
func (si *SerialIngester) republishSteps() {
	notes := si.voices.Snapshot()
	for i := 0; i < maxVoices; i++ {
		if i < len(notes) {
			n := notes[i]
			si.state.SetVoiceSteps(i, sawStepForNote(n.Semitone, n.OctaveShift), sineStepForNote(n.Semitone, n.OctaveShift))
		} else {
			si.state.ClearVoiceSteps(i)
		}
	}
}
