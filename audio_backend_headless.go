// audio_backend_headless.go - a DACSink that drains the double buffer on a
// ticker instead of handing samples to real hardware, mirroring the
// teacher's headless video/audio stubs used for CI and development without a
// sound card. Compiles into every build (see NewDACSink in
// audio_backend_oto.go) so --headless is a runtime choice, not a build tag.

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
	"time"
)

// HeadlessPlayer is the headless DACSink implementation. It still drains the
// double buffer at sampleRate so the producer never blocks waiting for a
// free buffer, but it discards the samples.
type HeadlessPlayer struct {
	db    atomic.Pointer[DoubleBuffer]
	state atomic.Pointer[SharedState]

	mutex   sync.Mutex
	started bool
	stop    chan struct{}
}

func NewHeadlessPlayer() *HeadlessPlayer {
	return &HeadlessPlayer{}
}

func (hp *HeadlessPlayer) SetupPlayer(db *DoubleBuffer, state *SharedState) {
	hp.db.Store(db)
	hp.state.Store(state)
}

func (hp *HeadlessPlayer) Start() {
	hp.mutex.Lock()
	defer hp.mutex.Unlock()
	if hp.started {
		return
	}
	hp.started = true
	hp.stop = make(chan struct{})
	go hp.drainLoop(hp.stop)
}

func (hp *HeadlessPlayer) drainLoop(stop chan struct{}) {
	ticker := time.NewTicker(time.Second / time.Duration(sampleRate))
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			if db := hp.db.Load(); db != nil {
				db.DrainByte()
			}
		}
	}
}

func (hp *HeadlessPlayer) Stop() {
	hp.mutex.Lock()
	defer hp.mutex.Unlock()
	if !hp.started {
		return
	}
	close(hp.stop)
	hp.started = false
}

func (hp *HeadlessPlayer) Close() {
	hp.Stop()
}

func (hp *HeadlessPlayer) IsStarted() bool {
	hp.mutex.Lock()
	defer hp.mutex.Unlock()
	return hp.started
}
