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

package x10

// House is an X10 house code letter, 'a' through 'p'
type House byte

func (h House) String() string { return string(rune(h)) }

// Unit is an X10 unit number, 1 through 16
type Unit int

// Kind identifies the action of a Command
type Kind int

const (
	On Kind = iota
	Off
	Dim
	Bright
	Up
	Down
	Left
	Right
)

var kindStrings = map[Kind]string{
	On:     "ON",
	Off:    "OFF",
	Dim:    "DIM",
	Bright: "BRIGHT",
	Up:     "UP",
	Down:   "DOWN",
	Left:   "LEFT",
	Right:  "RIGHT",
}

func (k Kind) String() string {
	if str, found := kindStrings[k]; found {
		return str
	}
	return sprintf("Kind(%d)", int(k))
}

// Symbol is the single character used for the kind in text commands
func (k Kind) Symbol() byte { return kindSymbols[k] }

// PanTilt indicates the kind is a camera command addressed by house only
func (k Kind) PanTilt() bool { return IsPanTiltCode(kindCodes[k]) }

var (
	houseCodes = map[House]byte{
		'a': 0x60, 'b': 0x70, 'c': 0x40, 'd': 0x50,
		'e': 0x80, 'f': 0x90, 'g': 0xa0, 'h': 0xb0,
		'i': 0xe0, 'j': 0xf0, 'k': 0xc0, 'l': 0xd0,
		'm': 0x00, 'n': 0x10, 'o': 0x20, 'p': 0x30,
	}

	// second byte contribution of a house code in pan/tilt frames
	camCodes = map[byte]byte{
		0x60: 0x90, 0x70: 0xa0, 0x40: 0x70, 0x50: 0x80,
		0x80: 0xb0, 0x90: 0xc0, 0xa0: 0xd0, 0xb0: 0xe0,
		0xe0: 0x10, 0xf0: 0x20, 0xc0: 0xf0, 0xd0: 0x00,
		0x00: 0x30, 0x10: 0x40, 0x20: 0x50, 0x30: 0x60,
	}

	unitCodes = [16]uint16{
		0x0000, 0x0010, 0x0008, 0x0018, 0x0040, 0x0050, 0x0048, 0x0058,
		0x0400, 0x0410, 0x0408, 0x0418, 0x0440, 0x0450, 0x0448, 0x0458,
	}

	kindCodes = map[Kind]uint16{
		// 5 byte commands
		On:     0x000,
		Off:    0x020,
		Dim:    0x098,
		Bright: 0x088,
		// 4 byte pan/tilt commands
		Up:    0x0762,
		Right: 0x0661,
		Down:  0x0863,
		Left:  0x0560,
	}

	kindSymbols = map[Kind]byte{
		On:     '+',
		Off:    '-',
		Up:     'u',
		Down:   'd',
		Left:   'l',
		Right:  'r',
		Bright: 'b',
		Dim:    's',
	}

	houseLetters map[byte]House
	codeKinds    map[uint16]Kind
	symbolKinds  map[byte]Kind
)

func init() {
	houseLetters = make(map[byte]House, len(houseCodes))
	for letter, code := range houseCodes {
		houseLetters[code] = letter
	}

	codeKinds = make(map[uint16]Kind, len(kindCodes))
	for kind, code := range kindCodes {
		codeKinds[code] = kind
	}

	symbolKinds = make(map[byte]Kind, len(kindSymbols))
	for kind, symbol := range kindSymbols {
		symbolKinds[symbol] = kind
	}
}

// HouseCode returns the bit pattern for a house letter. Upper case letters
// are accepted
func HouseCode(h House) (byte, error) {
	if code, found := houseCodes[lower(h)]; found {
		return code, nil
	}
	return 0, ErrInvalidHouse
}

// HouseFromCode is the inverse of HouseCode
func HouseFromCode(code byte) (House, error) {
	if h, found := houseLetters[code]; found {
		return h, nil
	}
	return 0, &CodeError{Table: "house", Code: int(code)}
}

// UnitCode returns the bit pattern for a unit number
func UnitCode(u Unit) (uint16, error) {
	if u < UnitMin || UnitMax < u {
		return 0, ErrInvalidUnit
	}
	return unitCodes[u-1], nil
}

// UnitFromCode extracts the unit number from the unit bits of a received
// frame. This is not a table lookup: the four unit bits are scattered
// across the pattern and every pattern yields a unit between 1 and 16.
func UnitFromCode(code uint16) Unit {
	unit := (code >> 7) & 0x08
	unit |= (code >> 4) & 0x04
	unit |= (code >> 2) & 0x02
	unit |= (code >> 4) & 0x01
	return Unit(unit) + 1
}

// KindCode returns the bit pattern for a command kind
func KindCode(k Kind) (uint16, error) {
	if code, found := kindCodes[k]; found {
		return code, nil
	}
	return 0, ErrInvalidSymbol
}

// KindFromCode is the inverse of KindCode
func KindFromCode(code uint16) (Kind, error) {
	if k, found := codeKinds[code]; found {
		return k, nil
	}
	return 0, &CodeError{Table: "command", Code: int(code)}
}

// KindFromSymbol looks up the kind for a text command symbol
func KindFromSymbol(symbol byte) (Kind, error) {
	if k, found := symbolKinds[symbol]; found {
		return k, nil
	}
	return 0, ErrInvalidSymbol
}

// IsPanTiltCode reports whether a command code has bits set above the
// low byte, which marks the 4 byte camera frames
func IsPanTiltCode(code uint16) bool {
	return code&^0xff != 0
}

func camCode(houseCode byte) (byte, error) {
	if code, found := camCodes[houseCode]; found {
		return code, nil
	}
	return 0, &CodeError{Table: "camera house", Code: int(houseCode)}
}

func lower(h House) House {
	if 'A' <= h && h <= 'Z' {
		return h + ('a' - 'A')
	}
	return h
}
