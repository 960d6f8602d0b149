//go:build !headless

// gpio_matrix.go - the real switch-matrix driver for board hardware,
// grounded on go-gpiocdev, the line-request-based GPIO character device
// library the retrieval pack's `doismellburning-samoyed` go.mod depends on
// for exactly this kind of row/column digital I/O.

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
	"time"

	"github.com/warthog618/go-gpiocdev"
)

// rowSettleDelay is how long a row line is held before its columns are
// sampled, per spec.md §4.8 "waits ~10us for settling".
const rowSettleDelay = 10 * time.Microsecond

// GPIOMatrix drives seven row lines (configured as outputs, one at a time)
// and reads four column lines (configured as inputs with pull-ups, active
// low) through a single GPIO character-device chip.
type GPIOMatrix struct {
	chip *gpiocdev.Chip
	rows [matrixRows]*gpiocdev.Line
	cols [matrixCols]*gpiocdev.Line
}

// NewGPIOMatrix opens chipName (e.g. "gpiochip0") and requests the given row
// and column line offsets. Row lines are driven high one at a time; column
// lines are read active-low, matching the key-matrix snapshot layout of
// spec.md §3.
func NewGPIOMatrix(chipName string, rowOffsets, colOffsets []int) (*GPIOMatrix, error) {
	chip, err := gpiocdev.NewChip(chipName)
	if err != nil {
		return nil, err
	}

	m := &GPIOMatrix{chip: chip}
	for i, off := range rowOffsets {
		line, err := chip.RequestLine(off, gpiocdev.AsOutput(0))
		if err != nil {
			m.Close()
			return nil, err
		}
		m.rows[i] = line
	}
	for i, off := range colOffsets {
		line, err := chip.RequestLine(off, gpiocdev.AsInput, gpiocdev.WithPullUp)
		if err != nil {
			m.Close()
			return nil, err
		}
		m.cols[i] = line
	}
	return m, nil
}

// ReadRow drives row high, waits for settling, reads the four column bits,
// then drives row back low before returning.
func (m *GPIOMatrix) ReadRow(row int) MatrixRow {
	m.rows[row].SetValue(1)
	time.Sleep(rowSettleDelay)

	var out MatrixRow
	for i, col := range m.cols {
		v, _ := col.Value()
		out[i] = v == 0 // active low: 0 means pressed
	}

	m.rows[row].SetValue(0)
	return out
}

func (m *GPIOMatrix) Close() error {
	for _, l := range m.rows {
		if l != nil {
			l.Close()
		}
	}
	for _, l := range m.cols {
		if l != nil {
			l.Close()
		}
	}
	if m.chip != nil {
		return m.chip.Close()
	}
	return nil
}
