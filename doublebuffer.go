// doublebuffer.go - the producer/ISR hand-off (spec.md §3 "Audio double
// buffer", §4.6, §4.7). Two 220-byte arrays, each paired with a capacity-1
// channel acting as the binary semaphore spec.md describes: a token present
// means "this buffer is free for the producer to fill".
//
// Grounded on the teacher's OtoPlayer (audio_backend_oto.go), which already
// hands a *SoundChip to an audio backend behind an atomic pointer; this
// module generalises that single-producer/single-consumer shape to the
// spec's explicit two-buffer, two-semaphore design instead of a single
// atomic pointer swap, because spec.md §9 calls the semaphore pair out by
// name as the model to preserve.

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

const audioBufLen = 220

// audioBuffer is one of the two hand-off slots.
type audioBuffer struct {
	data [audioBufLen]byte
}

// DoubleBuffer is shared between the sample producer (fills) and the DAC
// backend's pull callback, which plays the role of the sample ISR (drains).
type DoubleBuffer struct {
	bufs [2]audioBuffer
	sem  [2]chan struct{} // capacity 1: token = buffer free for producer

	// ISR-side state: only ever touched from the drain path, which per
	// spec.md §4.7 is a single wait-free consumer.
	readBuf int
	readIdx int
}

func NewDoubleBuffer() *DoubleBuffer {
	db := &DoubleBuffer{
		sem: [2]chan struct{}{
			make(chan struct{}, 1),
			make(chan struct{}, 1),
		},
	}
	// Both buffers start free; the producer fills both once at startup
	// before the DAC backend begins pulling samples.
	db.sem[0] <- struct{}{}
	db.sem[1] <- struct{}{}
	return db
}

// DrainByte implements spec.md §4.7's sample ISR: fetch one byte from the
// currently-selected buffer, advance the index, and when 219 samples have
// been read from this buffer (indices 0..218; see spec.md §4.7's note on the
// 220th byte never being read), flip to the other buffer and hand the
// drained one back to the producer. Never blocks, never takes a lock.
func (db *DoubleBuffer) DrainByte() byte {
	b := db.bufs[db.readBuf].data[db.readIdx]
	db.readIdx++
	if db.readIdx == audioBufLen-1 {
		db.readIdx = 0
		drained := db.readBuf
		db.readBuf = 1 - db.readBuf
		select {
		case db.sem[drained] <- struct{}{}:
		default:
			// Should never happen: the producer cannot hold this token
			// again until the ISR releases it.
		}
	}
	return b
}
