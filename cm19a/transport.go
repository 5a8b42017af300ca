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
	"errors"
	"fmt"
	"io"
)

var (
	ErrReadTimeout = errors.New("Timeout reading from transceiver")
	ErrNotFound    = errors.New("CM19A transceiver not found")
)

// Transport is the byte frame channel to the transceiver. Read must block
// for no longer than a bounded timeout and return ErrReadTimeout when no
// frame arrived. Each successful Read returns at most one frame.
type Transport interface {
	io.ReadWriteCloser
}

// TransportError is an unexpected failure of the underlying transport
type TransportError struct {
	Op  string
	Err error
}

func (te *TransportError) Error() string {
	return fmt.Sprintf("transceiver %s failed: %v", te.Op, te.Err)
}

func (te *TransportError) Unwrap() error { return te.Err }
