// Copyright 2021 Andrew Bates
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

// Command cm19sim pretends to be a CM19A transceiver behind a pseudo
// terminal. Frames written by the host are decoded and printed, and
// commands typed on stdin are sent to the host as if a remote had been
// pressed.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/abates/x10"
	"github.com/creack/pty"
	"golang.org/x/sync/errgroup"
)

// host reads the frames written to the transceiver, prints the commands
// they carry to display and acknowledges each one the way the hardware
// does
func host(in io.Reader, out io.Writer, display io.Writer, ack bool) error {
	scanner := bufio.NewScanner(in)
	scanner.Split(splitFrames)
	for scanner.Scan() {
		frame := scanner.Bytes()
		x10.Log.Tracef("TX %s", x10.HexDump("%02x", frame, " "))

		initFrame := isInitFrame(frame)
		if initFrame {
			x10.Log.Infof("Host sent initialization frame")
		}

		cmd := x10.Command{}
		if err := cmd.UnmarshalBinary(frame); err == nil {
			fmt.Fprintf(display, "TX %v\n", cmd)
		} else if !initFrame {
			x10.Log.Infof("Failed to decode %s: %v", x10.HexDump("%02x", frame, " "), err)
		}

		if ack {
			if _, err := out.Write([]byte{x10.Ack}); err != nil {
				return err
			}
		}
	}
	return scanner.Err()
}

// remote sends each command read from in repeat times, spaced by delay,
// the way a held remote key repeats
func remote(in io.Reader, out io.Writer, repeat int, delay time.Duration) error {
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		cmd, err := x10.ParseCommand(scanner.Text())
		if err == x10.ErrEmptyInput {
			continue
		} else if err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			continue
		}

		frame, _ := cmd.MarshalBinary()
		for i := 0; i < repeat; i++ {
			if i > 0 {
				time.Sleep(delay)
			}
			x10.Log.Tracef("RX %s", x10.HexDump("%02x", frame, " "))
			if _, err := out.Write(frame); err != nil {
				return err
			}
		}
	}
	return scanner.Err()
}

func main() {
	logLevelFlag := x10.LevelInfo
	repeatFlag := 1
	delayFlag := 110 * time.Millisecond
	ackFlag := true

	flag.Var(&logLevelFlag, "log", "Log Level {none|info|debug|trace}")
	flag.IntVar(&repeatFlag, "repeat", repeatFlag, "number of frames sent for each command, emulates a held remote key")
	flag.DurationVar(&delayFlag, "delay", delayFlag, "delay between repeated frames")
	flag.BoolVar(&ackFlag, "ack", ackFlag, "acknowledge frames sent by the host")
	flag.Parse()

	x10.SetLogLevel(logLevelFlag, os.Stderr)

	p, f, err := pty.Open()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to start PTY: %v\n", err)
		os.Exit(1)
	}
	defer p.Close()
	defer f.Close()

	fmt.Fprintf(os.Stdout, "Connect with: cm19a -transport serial -port %s\n", f.Name())

	g := errgroup.Group{}
	g.Go(func() error { return host(p, p, os.Stdout, ackFlag) })
	g.Go(func() error { return remote(os.Stdin, p, repeatFlag, delayFlag) })

	if err := g.Wait(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}
