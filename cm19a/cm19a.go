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

// Package cm19a drives the X10 CM19A USB RF transceiver. Commands are
// transmitted as X10 RF frames and frames received from paired remotes
// (such as the CR12A and CR14A) are decoded back into text commands.
package cm19a

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/abates/x10"
)

// InitSequence makes the transceiver report signals from CR12A and CR14A
// remotes. It must be written before the first read.
var InitSequence = [][]byte{
	{0x20, 0x34, 0xcb, 0x58, 0xa7},
	{0x80, 0x01, 0x00, 0x20, 0x14},
	{0x80, 0x01, 0x00, 0x00, 0x14, 0x24, 0x20, 0x20},
}

// Device is a connection to a transceiver. Send may be called while
// Listen is running in another goroutine.
type Device struct {
	transport      Transport
	debounceWindow time.Duration
	skipInit       bool
	initFrames     [][]byte
}

// New creates a Device on top of transport and, unless SkipInit is given,
// sends the initialization sequence
func New(transport Transport, options ...Option) (*Device, error) {
	d := &Device{
		transport:      transport,
		debounceWindow: DefaultDebounceWindow,
		initFrames:     InitSequence,
	}

	for _, o := range options {
		err := o(d)
		if err != nil {
			x10.Log.Infof("error setting cm19a option: %v", err)
			return nil, err
		}
	}

	if !d.skipInit {
		for _, frame := range d.initFrames {
			err := d.write(frame)
			if err != nil {
				return nil, err
			}
		}
		x10.Log.Debugf("Transceiver initialized")
	}
	return d, nil
}

func (d *Device) write(frame []byte) error {
	x10.Log.Tracef("TX %s", x10.HexDump("%02x", frame, " "))
	n, err := d.transport.Write(frame)
	if err == nil && n < len(frame) {
		err = io.ErrShortWrite
	}

	if err != nil {
		return &TransportError{Op: "write", Err: err}
	}
	return nil
}

// Send transmits a single command. Transport failures are returned as a
// *TransportError and are not retried.
func (d *Device) Send(cmd x10.Command) error {
	frame, err := cmd.MarshalBinary()
	if err != nil {
		return err
	}
	x10.Log.Debugf("Sending %v", cmd)
	return d.write(frame)
}

// SendLine parses a text command and transmits it. An empty line is
// ignored.
func (d *Device) SendLine(line string) error {
	cmd, err := x10.ParseCommand(line)
	if errors.Is(err, x10.ErrEmptyInput) {
		return nil
	} else if err != nil {
		return err
	}
	return d.Send(cmd)
}

// Listen writes each command received from a remote to out, one per line,
// until ctx is cancelled or the transport fails
func (d *Device) Listen(ctx context.Context, out io.Writer) error {
	return NewReceiver(d.transport, out, NewDebouncer(d.debounceWindow)).Run(ctx)
}

func (d *Device) Close() error {
	return d.transport.Close()
}
