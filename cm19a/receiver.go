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

package cm19a

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/abates/x10"
)

type flusher interface {
	Flush() error
}

// Receiver reads frames sent by paired remotes, decodes them and writes
// one text command per line to its output. Repeated frames are filtered
// by the Debouncer.
type Receiver struct {
	in       io.Reader
	out      io.Writer
	debounce *Debouncer
}

func NewReceiver(in io.Reader, out io.Writer, debounce *Debouncer) *Receiver {
	return &Receiver{
		in:       in,
		out:      out,
		debounce: debounce,
	}
}

// Run reads from the transport until ctx is cancelled or the transport
// fails. Cancellation is checked between reads, so Run returns once the
// current read completes or times out. Read timeouts are the idle state
// and are not reported.
func (r *Receiver) Run(ctx context.Context) error {
	buf := make([]byte, x10.MaxFrameLen)
	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		n, err := r.in.Read(buf)
		if err != nil {
			if errors.Is(err, ErrReadTimeout) {
				continue
			}
			return &TransportError{Op: "read", Err: err}
		}

		if n > 0 {
			err = r.process(buf[:n])
			if err != nil {
				return err
			}
		}
	}
}

// process decodes a single frame. Frames that do not start with a known
// prefix, and frames that do not decode, are dropped. The only error
// returned is a failure to write to the output.
func (r *Receiver) process(frame []byte) error {
	x10.Log.Tracef("RX %s", x10.HexDump("%02x", frame, " "))

	cmd := x10.Command{}
	err := cmd.UnmarshalBinary(frame)
	if err == x10.ErrUnknownPrefix {
		return nil
	} else if err != nil {
		x10.Log.Infof("Dropping frame [%s]: %v", x10.HexDump("%02x", frame, " "), err)
		return nil
	}

	text := cmd.String()
	if !r.debounce.Accept(text) {
		x10.Log.Debugf("Suppressed repeat %s", text)
		return nil
	}

	_, err = fmt.Fprintln(r.out, text)
	if err == nil {
		if f, ok := r.out.(flusher); ok {
			err = f.Flush()
		}
	}

	if err != nil {
		return fmt.Errorf("writing received command: %w", err)
	}
	return nil
}
