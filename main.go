// main.go - entry point: wires shared state, the voice table, the double
// buffer, the reverb, the sample producer, the key scanner, the serial
// ingester/drainer and the display composer, then runs until terminated.

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
	"os"
	"os/signal"
	"syscall"
)

func boilerPlate() {
	log.Println("Polyphonic keyboard module firmware")
	log.Println("(c) 2024 - 2026 Zayn Otley")
	log.Println("https://github.com/IntuitionAmiga/IntuitionEngine")
	log.Println("License: GPLv3 or later")
}

func main() {
	boilerPlate()
	logger := log.New(os.Stderr, "", log.LstdFlags)

	flags := ParseFlags()
	cfg, err := LoadConfig(flags.ConfigPath)
	if err != nil {
		logger.Fatalf("config: %v", err)
	}

	state := NewSharedState()
	state.SetVolume(cfg.InitialVolume)
	state.SetWet(cfg.InitialWet)
	voices := NewVoiceTable()
	db := NewDoubleBuffer()
	reverb := NewReverb(state, cfg.TimeScale)

	var matrix MatrixReader
	var dac DACSink
	var joystick JoystickReader
	var link SerialLink

	dac, err = NewDACSink(flags.Headless, sampleRate)
	if err != nil {
		logger.Fatalf("audio backend: %v", err)
	}

	if flags.Headless {
		matrix = NewFakeMatrix()
		joystick = &FakeJoystick{}
	} else {
		matrix, err = NewGPIOMatrix(cfg.GPIO.Chip, cfg.GPIO.RowPins, cfg.GPIO.ColPins)
		if err != nil {
			logger.Fatalf("gpio matrix: %v", err)
		}
		joystick = NewIIOJoystick(cfg.Joystick.XPath, cfg.Joystick.YPath)

		device := cfg.Serial.Device
		if device == "auto" {
			device, err = DiscoverPeerPort("", "")
			if err != nil {
				logger.Fatalf("serial discovery: %v", err)
			}
		}
		link, err = OpenSerialLink(device, cfg.Serial.Baud)
		if err != nil {
			logger.Fatalf("serial link: %v", err)
		}
	}

	dac.SetupPlayer(db, state)

	producer := NewSampleProducer(state, voices, db, reverb, logger)
	producer.PrimeBuffers()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	outbox := NewOutbox(cfg.OutboxSize, logger)
	scanner := NewKeyScanner(matrix, voices, state, outbox, joystick, logger)
	display := NewDisplayComposer(state, voices, NewTextDisplay(os.Stdout))

	go producer.Run(ctx)
	go scanner.Run(ctx)
	go display.Run(ctx)

	if link != nil {
		ingester := NewSerialIngester(link, voices, state, logger)
		go ingester.Run(ctx)
		go Drainer(ctx, outbox, link, logger)
	}

	dac.Start()
	defer dac.Close()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig
}
