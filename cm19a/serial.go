package cm19a

import (
	"bufio"
	"io"
	"time"

	"github.com/abates/x10"
	"github.com/tarm/serial"
)

// Serial is a Transport for a transceiver reached through a serial line,
// such as a frame bridge or the cm19sim simulator. The byte stream is
// split back into frames using the prefix byte.
type Serial struct {
	in  *bufio.Reader
	out io.WriteCloser
}

// OpenSerial opens the named serial port. The read timeout bounds how long
// Read waits for the first byte of a frame
func OpenSerial(name string, baud int, readTimeout time.Duration) (*Serial, error) {
	port, err := serial.OpenPort(&serial.Config{
		Name:        name,
		Baud:        baud,
		ReadTimeout: readTimeout,
	})
	if err != nil {
		return nil, err
	}
	return NewSerial(port), nil
}

// NewSerial wraps an already opened stream. A read that returns io.EOF is
// treated as a timeout, which is how tarm/serial reports an expired read
// timeout.
func NewSerial(rwc io.ReadWriteCloser) *Serial {
	return &Serial{
		in:  bufio.NewReader(rwc),
		out: rwc,
	}
}

func frameLen(prefix byte) int {
	switch prefix {
	case x10.NormalPrefix:
		return x10.NormalFrameLen
	case x10.PanTiltPrefix:
		return x10.PanTiltFrameLen
	}
	return 1
}

// Read returns one frame. Bytes that do not start a frame are returned
// one at a time so the caller can discard them. A frame cut short by the
// timeout is dropped.
func (s *Serial) Read(p []byte) (int, error) {
	b, err := s.in.ReadByte()
	if err == io.EOF {
		return 0, ErrReadTimeout
	} else if err != nil {
		return 0, err
	}

	length := frameLen(b)
	if len(p) < length {
		return 0, io.ErrShortBuffer
	}

	p[0] = b
	_, err = io.ReadFull(s.in, p[1:length])
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		x10.Log.Debugf("Dropping partial frame starting with %02x", b)
		return 0, ErrReadTimeout
	} else if err != nil {
		return 0, err
	}
	return length, nil
}

func (s *Serial) Write(p []byte) (int, error) {
	return s.out.Write(p)
}

func (s *Serial) Close() error {
	return s.out.Close()
}
