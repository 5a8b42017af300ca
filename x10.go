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

// Package x10 implements the RF frame format used by X10 transceivers
// such as the CM19A. A Command addresses a single unit (on, off, dim,
// bright) or a whole house code (camera pan and tilt) and can be parsed
// from, and rendered to, a short text form like "+a1" or "ub".
package x10

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrEmptyInput       = errors.New("empty command")
	ErrTooShort         = errors.New("command is too short")
	ErrTooLong          = errors.New("command is too long")
	ErrInvalidSymbol    = errors.New("invalid command symbol")
	ErrInvalidHouse     = errors.New("invalid house code")
	ErrInvalidDigit     = errors.New("illegal digit in unit number")
	ErrMissingUnit      = errors.New("on and off commands require a unit number")
	ErrInvalidUnit      = errors.New("invalid unit number")
	ErrUnrecognizedCode = errors.New("unrecognized code")
	ErrBufferTooShort   = errors.New("buffer is too short")
	ErrUnknownPrefix    = errors.New("unknown frame prefix")
)

var sprintf = fmt.Sprintf

// validationErrors are the errors produced by bad user input. A line that
// fails with one of these is dropped and the caller moves on.
var validationErrors = []error{
	ErrTooShort,
	ErrTooLong,
	ErrInvalidSymbol,
	ErrInvalidHouse,
	ErrInvalidDigit,
	ErrMissingUnit,
	ErrInvalidUnit,
}

// IsValidation reports whether err was caused by malformed command input
func IsValidation(err error) bool {
	for _, check := range validationErrors {
		if errors.Is(err, check) {
			return true
		}
	}
	return false
}

const (
	// HouseMin and HouseMax bound the house code letters
	HouseMin House = 'a'
	HouseMax House = 'p'

	// UnitMin and UnitMax bound the unit numbers
	UnitMin Unit = 1
	UnitMax Unit = 16
)

// Frame prefixes and lengths
const (
	NormalPrefix  = 0x20
	PanTiltPrefix = 0x14

	NormalFrameLen  = 5
	PanTiltFrameLen = 4

	// MaxFrameLen is the larger of the two frame lengths and the size
	// of a receive buffer
	MaxFrameLen = NormalFrameLen

	// MaxCommandLen is the longest text command accepted by ParseCommand
	MaxCommandLen = 5

	// Ack is sent by the transceiver to acknowledge a frame
	Ack    = 0xff
	AckLen = 1
)

// HexDump renders buf with each byte printed using format and joined by sep
func HexDump(format string, buf []byte, sep string) string {
	str := make([]string, len(buf))
	for i, b := range buf {
		str[i] = fmt.Sprintf(format, b)
	}
	return strings.Join(str, sep)
}
