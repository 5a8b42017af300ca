package main

import (
	"bytes"

	"github.com/abates/x10"
	"github.com/abates/x10/cm19a"
)

// frameLen returns the length of the frame at the start of data, 0 when
// data does not start a frame and -1 when more data is needed to tell
func frameLen(data []byte, atEOF bool) int {
	for _, frame := range cm19a.InitSequence {
		if bytes.HasPrefix(data, frame) {
			return len(frame)
		} else if !atEOF && bytes.HasPrefix(frame, data) {
			return -1
		}
	}

	length := 0
	switch data[0] {
	case x10.NormalPrefix:
		length = x10.NormalFrameLen
	case x10.PanTiltPrefix:
		length = x10.PanTiltFrameLen
	default:
		return 0
	}

	if len(data) < length {
		if atEOF {
			return 0
		}
		return -1
	}
	return length
}

// splitFrames is a bufio.SplitFunc that cuts the byte stream written by a
// host into the frames it sent. Initialization frames are matched whole,
// command frames by their prefix. Bytes that do not start a frame are
// skipped within the same call so a buffered frame is never left behind.
func splitFrames(data []byte, atEOF bool) (advance int, token []byte, err error) {
	for start := 0; start < len(data); start++ {
		n := frameLen(data[start:], atEOF)
		if n < 0 {
			return start, nil, nil
		} else if n > 0 {
			if start > 0 {
				x10.Log.Debugf("Skipped %s", x10.HexDump("%02x", data[:start], " "))
			}
			return start + n, data[start : start+n], nil
		}
	}

	if len(data) > 0 {
		x10.Log.Debugf("Skipped %s", x10.HexDump("%02x", data, " "))
	}
	return len(data), nil, nil
}

// isInitFrame reports whether frame is part of the initialization
// sequence. The first init frame is also a valid "+p16" command, so a
// match does not rule out a decodable command.
func isInitFrame(frame []byte) bool {
	for _, f := range cm19a.InitSequence {
		if bytes.Equal(f, frame) {
			return true
		}
	}
	return false
}
