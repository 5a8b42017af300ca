package x10

import "strings"

// MinCommandLen is the length of the shortest text command, a pan/tilt
// command such as "ub"
const MinCommandLen = 2

// ParseCommand converts a text command into a Command. The text is a
// command symbol, a house letter and an optional one or two digit unit
// number, e.g. "+a1", "-p16", "sc3" or "ub". A trailing line terminator is
// ignored. An empty line returns ErrEmptyInput, which callers should treat
// as a no-op; every other failure is a *ParseError.
func ParseCommand(line string) (Command, error) {
	line = strings.TrimRight(line, "\r\n")
	if len(line) == 0 {
		return Command{}, ErrEmptyInput
	}

	cmd, err := parse(line)
	if err != nil {
		err = &ParseError{Line: line, Err: err}
	}
	return cmd, err
}

func parse(line string) (Command, error) {
	if len(line) < MinCommandLen {
		return Command{}, ErrTooShort
	}

	if len(line) > MaxCommandLen {
		return Command{}, ErrTooLong
	}

	kind, err := KindFromSymbol(line[0])
	if err != nil {
		return Command{}, err
	}

	house := lower(House(line[1]))
	if _, found := houseCodes[house]; !found {
		return Command{}, ErrInvalidHouse
	}

	unit := Unit(0)
	digits := line[2:]
	if len(digits) == 0 {
		if kind == On || kind == Off {
			return Command{}, ErrMissingUnit
		}
	}

	// at most two digits are read
	for i := 0; i < len(digits) && i < 2; i++ {
		c := digits[i]
		if c < '0' || '9' < c {
			return Command{}, ErrInvalidDigit
		}
		unit = unit*10 + Unit(c-'0')
	}

	return NewCommand(kind, house, unit)
}
