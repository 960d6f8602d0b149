// matrix_fake.go - an in-memory MatrixReader for tests and the headless
// build, grounded on the teacher's headless video backend pattern of
// swapping a hardware type for a trivial in-memory stand-in behind the same
// interface.

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

// FakeMatrix lets a test (or the headless binary) script a sequence of
// key-matrix snapshots without real GPIO lines. All rows default to
// "nothing pressed" (every column bit true, i.e. released).
type FakeMatrix struct {
	mu   sync.Mutex
	rows [matrixRows]MatrixRow
}

func NewFakeMatrix() *FakeMatrix {
	f := &FakeMatrix{}
	for i := range f.rows {
		for j := range f.rows[i] {
			f.rows[i][j] = true // released
		}
	}
	return f
}

// SetRow scripts row's column readings for the next ReadRow call.
func (f *FakeMatrix) SetRow(row int, bits MatrixRow) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rows[row] = bits
}

// SetKey sets a single key's pressed state (true = pressed -> stored bit
// false, matching the active-low convention of spec.md §3).
func (f *FakeMatrix) SetKey(row, col int, pressed bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rows[row][col] = !pressed
}

func (f *FakeMatrix) ReadRow(row int) MatrixRow {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.rows[row]
}

func (f *FakeMatrix) Close() error { return nil }
