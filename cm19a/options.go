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
	"fmt"
	"time"
)

// The Option mechanism is based on the method described at https://dave.cheney.net/2014/10/17/functional-options-for-friendly-apis
type Option func(d *Device) error

// DebounceWindow sets how long a repeated remote event is suppressed
func DebounceWindow(window time.Duration) Option {
	return func(d *Device) error {
		if window < 0 {
			return fmt.Errorf("debounce window must not be negative, got %v", window)
		}
		d.debounceWindow = window
		return nil
	}
}

// SkipInit prevents New from sending the remote initialization sequence,
// for instance when the transceiver has already been initialized
func SkipInit() Option {
	return func(d *Device) error {
		d.skipInit = true
		return nil
	}
}

// InitFrames replaces the frames sent by New before the first read
func InitFrames(frames ...[]byte) Option {
	return func(d *Device) error {
		d.initFrames = frames
		return nil
	}
}
