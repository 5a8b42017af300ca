// Copyright 2018 Andrew Bates
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Command cm19a sends X10 commands through a CM19A transceiver and prints
// the commands it receives from paired remotes.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/abates/cli"
	"github.com/abates/x10"
	"github.com/abates/x10/cm19a"
	"github.com/kirsle/configdir"
)

var (
	device *cm19a.Device

	logLevelFlag     x10.LogLevel
	logFileFlag      string
	transportFlag    string
	portFlag         string
	baudFlag         int
	timeoutFlag      time.Duration
	writeTimeoutFlag time.Duration
	debounceFlag     time.Duration
	paceFlag         time.Duration
	noInitFlag       bool

	app        = cli.New(os.Args[0], cli.CallbackOption(run))
	configDir  string
	configFile string
	config     *Config
)

func init() {
	configDir = configdir.LocalConfig("go-x10")
	configFile = filepath.Join(configDir, "config.yaml")

	var err error
	config, err = LoadConfig(configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Ignoring %s: %v\n", configFile, err)
		config = defaultConfig()
	}

	err = logLevelFlag.Set(config.Log.Level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Ignoring log level from %s: %v\n", configFile, err)
		logLevelFlag = x10.LevelInfo
	}

	app.SetOutput(os.Stderr)
	app.Flags.Var(&logLevelFlag, "log", "Log Level {none|info|debug|trace}")
	app.Flags.StringVar(&logFileFlag, "logfile", config.Log.File, "write log messages to a rotated file instead of stderr")
	app.Flags.StringVar(&transportFlag, "transport", config.Transport, "transceiver connection {usb|serial}")
	app.Flags.StringVar(&portFlag, "port", config.Port, "serial port for the serial transport")
	app.Flags.IntVar(&baudFlag, "baud", config.Baud, "baud rate for the serial transport")
	app.Flags.DurationVar(&timeoutFlag, "timeout", config.ReadTimeout, "read timeout duration")
	app.Flags.DurationVar(&writeTimeoutFlag, "writeTimeout", config.WriteTimeout, "write timeout duration (usb only)")
	app.Flags.DurationVar(&debounceFlag, "debounce", config.Debounce, "suppress repeated remote events within this duration")
	app.Flags.DurationVar(&paceFlag, "pace", config.Pace, "delay between commands read from stdin")
	app.Flags.BoolVar(&noInitFlag, "noinit", config.NoInit, "do not send the remote initialization sequence")
}

func openTransport() (cm19a.Transport, error) {
	switch transportFlag {
	case "usb":
		usb, err := cm19a.OpenUSB(timeoutFlag, writeTimeoutFlag)
		if err != nil {
			return nil, err
		}
		return usb, nil
	case "serial":
		serial, err := cm19a.OpenSerial(portFlag, baudFlag, timeoutFlag)
		if err != nil {
			return nil, fmt.Errorf("error opening serial port: %v", err)
		}
		return serial, nil
	}
	return nil, fmt.Errorf("unknown transport %q", transportFlag)
}

func run() error {
	logConfig := config.Log
	logConfig.File = logFileFlag
	x10.SetLogLevel(logLevelFlag, logConfig.Writer())

	transport, err := openTransport()
	if err != nil {
		return err
	}

	options := []cm19a.Option{cm19a.DebounceWindow(debounceFlag)}
	if noInitFlag {
		options = append(options, cm19a.SkipInit())
	}

	device, err = cm19a.New(transport, options...)
	if err != nil {
		transport.Close()
	}
	return err
}

func main() {
	err := app.Parse(os.Args[1:])
	if err == nil {
		err = app.Run()
	}

	if device != nil {
		if cerr := device.Close(); cerr != nil {
			x10.Log.Infof("Failed to close transceiver: %v", cerr)
		}
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}
