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

import "strconv"

// Command is a single addressed X10 instruction. Unit is only meaningful
// for normal (non pan/tilt) kinds
type Command struct {
	Kind  Kind
	House House
	Unit  Unit
}

// NewCommand validates the house and unit and returns the command. The
// house letter is normalized to lower case. The unit of pan/tilt commands
// is not checked.
func NewCommand(kind Kind, house House, unit Unit) (Command, error) {
	cmd := Command{Kind: kind, House: lower(house), Unit: unit}
	if _, found := kindCodes[kind]; !found {
		return cmd, ErrInvalidSymbol
	}

	if _, found := houseCodes[cmd.House]; !found {
		return cmd, ErrInvalidHouse
	}

	if !kind.PanTilt() && (unit < UnitMin || UnitMax < unit) {
		return cmd, ErrInvalidUnit
	}
	return cmd, nil
}

// String renders the command in its text form: the kind symbol, the house
// letter and, for normal commands, the unit number
func (cmd Command) String() string {
	str := string([]byte{cmd.Kind.Symbol(), byte(cmd.House)})
	if !cmd.Kind.PanTilt() {
		str += strconv.Itoa(int(cmd.Unit))
	}
	return str
}

// Equal compares two commands, ignoring the unit of pan/tilt commands
func (cmd Command) Equal(other Command) bool {
	if cmd.Kind != other.Kind || cmd.House != other.House {
		return false
	}
	return cmd.Kind.PanTilt() || cmd.Unit == other.Unit
}

// MarshalBinary encodes the command into a complete frame, including the
// prefix byte and, for normal frames, the complement check bytes
func (cmd Command) MarshalBinary() ([]byte, error) {
	houseCode, err := HouseCode(cmd.House)
	if err != nil {
		return nil, err
	}

	cmdCode, err := KindCode(cmd.Kind)
	if err != nil {
		return nil, err
	}

	if IsPanTiltCode(cmdCode) {
		cam, err := camCode(houseCode)
		if err != nil {
			return nil, err
		}
		return []byte{
			PanTiltPrefix,
			byte(cmdCode>>8) | cam,
			byte(cmdCode & 0xff),
			houseCode,
		}, nil
	}

	unitCode, err := UnitCode(cmd.Unit)
	if err != nil {
		return nil, err
	}

	buf := make([]byte, NormalFrameLen)
	buf[0] = NormalPrefix
	buf[1] = byte(unitCode>>8) | houseCode
	buf[2] = ^buf[1]
	buf[3] = byte(unitCode&0xff) | byte(cmdCode)
	buf[4] = ^buf[3]
	return buf, nil
}

// UnmarshalBinary decodes a complete frame. The shape is chosen by the
// first byte only; the check bytes of normal frames are not verified.
func (cmd *Command) UnmarshalBinary(buf []byte) (err error) {
	if len(buf) < 1 {
		return newBufError(ErrBufferTooShort, 1, len(buf))
	}

	switch buf[0] {
	case NormalPrefix:
		*cmd, err = DecodeNormal(buf[1:])
	case PanTiltPrefix:
		*cmd, err = DecodePanTilt(buf[1:])
	default:
		err = ErrUnknownPrefix
	}
	return err
}

// DecodeNormal decodes the four bytes that follow the normal frame prefix
func DecodeNormal(buf []byte) (Command, error) {
	if len(buf) < NormalFrameLen-1 {
		return Command{}, newBufError(ErrBufferTooShort, NormalFrameLen-1, len(buf))
	}

	// the OFF code doubles as the mask for the command bit
	offCode := byte(kindCodes[Off])
	unitCode := uint16(buf[0]&0x0f)<<8 | uint16(buf[2]&^offCode)
	houseCode := buf[0] & 0xf0
	cmdCode := uint16(buf[2] & offCode)

	return decode(cmdCode, houseCode, unitCode)
}

// DecodePanTilt decodes the three bytes that follow the pan/tilt frame
// prefix. Pan/tilt frames carry no unit, so the unit is always that of
// the first unit code
func DecodePanTilt(buf []byte) (Command, error) {
	if len(buf) < PanTiltFrameLen-1 {
		return Command{}, newBufError(ErrBufferTooShort, PanTiltFrameLen-1, len(buf))
	}

	cmdCode := uint16(buf[0]&0x0f)<<8 | uint16(buf[1])
	houseCode := buf[2]

	return decode(cmdCode, houseCode, unitCodes[0])
}

func decode(cmdCode uint16, houseCode byte, unitCode uint16) (Command, error) {
	kind, err := KindFromCode(cmdCode)
	if err != nil {
		return Command{}, err
	}

	house, err := HouseFromCode(houseCode)
	if err != nil {
		return Command{}, err
	}

	return NewCommand(kind, house, UnitFromCode(unitCode))
}

// MarshalText returns the text form of the command
func (cmd Command) MarshalText() ([]byte, error) {
	return []byte(cmd.String()), nil
}

// UnmarshalText parses the text form of a command
func (cmd *Command) UnmarshalText(text []byte) (err error) {
	*cmd, err = ParseCommand(string(text))
	return err
}

// Set satisfies the flag.Value interface
func (cmd *Command) Set(str string) error {
	return cmd.UnmarshalText([]byte(str))
}
