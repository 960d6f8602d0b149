// config.go - board configuration (SPEC_FULL.md §1.2): a YAML file
// describing the GPIO/serial/joystick wiring, with pflag overrides for the
// config path and the headless switch. Grounded on
// doismellburning-samoyed's deviceid.go (gopkg.in/yaml.v3 unmarshalling)
// and its cmd entry points' flag parsing (github.com/spf13/pflag).

package main

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

import (
	"os"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

// GPIOConfig names the chip and the row/column line offsets for the 7x4
// switch matrix.
type GPIOConfig struct {
	Chip    string `yaml:"chip"`
	RowPins []int  `yaml:"row_pins"`
	ColPins []int  `yaml:"col_pins"`
}

// SerialConfig describes the outgoing note-event link. Device "auto"
// triggers udev-based peer discovery.
type SerialConfig struct {
	Device string `yaml:"device"`
	Baud   int    `yaml:"baud"`
}

// JoystickConfig names the sysfs IIO raw-value files for the two axes.
type JoystickConfig struct {
	XPath string `yaml:"x_path"`
	YPath string `yaml:"y_path"`
}

// Config is the full board configuration, loaded from YAML and overridable
// by command-line flags.
type Config struct {
	GPIO          GPIOConfig     `yaml:"gpio"`
	Serial        SerialConfig   `yaml:"serial"`
	Joystick      JoystickConfig `yaml:"joystick"`
	InitialVolume uint32         `yaml:"initial_volume"`
	InitialWet    float32        `yaml:"initial_wet"`
	TimeScale     float32        `yaml:"time_scale"`
	OutboxSize    int            `yaml:"outbox_size"`
}

// DefaultConfig matches spec.md's own defaults: 115200 baud, volume 16, wet
// 0.3, time-scale 1.0, outbox capacity 8.
func DefaultConfig() Config {
	return Config{
		GPIO: GPIOConfig{
			Chip:    "gpiochip0",
			RowPins: []int{0, 1, 2, 3, 4, 5, 6},
			ColPins: []int{7, 8, 9, 10},
		},
		Serial:        SerialConfig{Device: "auto", Baud: DefaultBaud},
		Joystick:      JoystickConfig{}.withDefaults(),
		InitialVolume: 16,
		InitialWet:    0.3,
		TimeScale:     1.0,
		OutboxSize:    DefaultOutboxCapacity,
	}
}

func (j JoystickConfig) withDefaults() JoystickConfig {
	if j.XPath == "" {
		j.XPath = "/sys/bus/iio/devices/iio:device0/in_voltage0_raw"
	}
	if j.YPath == "" {
		j.YPath = "/sys/bus/iio/devices/iio:device0/in_voltage1_raw"
	}
	return j
}

// LoadConfig reads path (if non-empty and readable) over DefaultConfig and
// returns the merged result. A missing file is not an error: the defaults
// alone are a valid configuration for development.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Flags holds the command-line overrides parsed with pflag.
type Flags struct {
	ConfigPath string
	Headless   bool
}

// ParseFlags parses os.Args[1:] the way doismellburning-samoyed's cmd
// entry points parse theirs.
func ParseFlags() Flags {
	var f Flags
	pflag.StringVar(&f.ConfigPath, "config", "", "path to board configuration YAML")
	pflag.BoolVar(&f.Headless, "headless", false, "use the headless audio/GPIO backends instead of real hardware")
	pflag.Parse()
	return f
}
