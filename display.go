// display.go - the display composer (spec.md §4.12): an external
// collaborator by contract, reading published snapshots only and never
// writing back to core state. Grounded on the teacher's VideoTerminal
// (video_terminal.go), which polls a mutex-protected snapshot on a fixed
// period and renders it; here the same shape drives a trivial text dump
// instead of a framebuffer, since spec.md §1 places OLED text composition
// out of scope and leaves only the snapshot contract to implement.

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
	"fmt"
	"io"
	"time"
)

// DisplayPeriod is spec.md §4.12's ~10Hz composer rate.
const DisplayPeriod = 100 * time.Millisecond

// Snapshot is everything the display composer is allowed to read.
type Snapshot struct {
	Volume        uint32
	ReverbAmount  uint32
	ReverbEnabled bool
	Waveform      Waveform
	JoystickMode  bool
	Voices        []Note
}

// DisplaySink renders a Snapshot. A real OLED driver and this package's
// trivial text dump both satisfy it.
type DisplaySink interface {
	Render(s Snapshot)
}

// TextDisplay writes each snapshot as one line to w, standing in for the
// OLED panel spec.md places out of scope.
type TextDisplay struct {
	w io.Writer
}

func NewTextDisplay(w io.Writer) *TextDisplay {
	return &TextDisplay{w: w}
}

func (d *TextDisplay) Render(s Snapshot) {
	wave := "saw"
	if s.Waveform == WaveformSine {
		wave = "sine"
	}
	fmt.Fprintf(d.w, "vol=%d reverb=%d/%v wave=%s joy=%v voices=%v\n",
		s.Volume, s.ReverbAmount, s.ReverbEnabled, wave, s.JoystickMode, s.Voices)
}

// DisplayComposer polls the published state at DisplayPeriod and forwards a
// Snapshot to its sink. Per spec.md §4.12, volume is knob3's rotation and
// the reverb amount is knob0's rotation.
type DisplayComposer struct {
	state  *SharedState
	voices *VoiceTable
	sink   DisplaySink
}

func NewDisplayComposer(state *SharedState, voices *VoiceTable, sink DisplaySink) *DisplayComposer {
	return &DisplayComposer{state: state, voices: voices, sink: sink}
}

func (dc *DisplayComposer) Run(ctx context.Context) {
	ticker := time.NewTicker(DisplayPeriod)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			dc.sink.Render(Snapshot{
				Volume:        dc.state.KnobRotation(3),
				ReverbAmount:  dc.state.KnobRotation(0),
				ReverbEnabled: dc.state.ReverbEnabled(),
				Waveform:      dc.state.Waveform(),
				JoystickMode:  dc.state.JoystickMode(),
				Voices:        dc.voices.Snapshot(),
			})
		}
	}
}
