package cm19a

import (
	"bytes"
	"context"
	"errors"
	"io"
	"reflect"
	"testing"
	"time"

	"github.com/abates/x10"
)

func TestNewInit(t *testing.T) {
	tests := []struct {
		name    string
		options []Option
		want    [][]byte
	}{
		{"default", nil, InitSequence},
		{"skip", []Option{SkipInit()}, nil},
		{"custom", []Option{InitFrames([]byte{0x80, 0x01})}, [][]byte{{0x80, 0x01}}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			transport := &testTransport{}
			_, err := New(transport, test.options...)
			if err != nil {
				t.Fatalf("Unexpected error %v", err)
			}

			if !reflect.DeepEqual(test.want, transport.written) {
				t.Errorf("Wanted %v got %v", test.want, transport.written)
			}
		})
	}
}

func TestNewErrors(t *testing.T) {
	_, err := New(&testTransport{}, DebounceWindow(-time.Second))
	if err == nil {
		t.Errorf("Expected error for negative debounce window")
	}

	_, err = New(&testTransport{writeErr: io.ErrClosedPipe})
	te := &TransportError{}
	if !errors.As(err, &te) {
		t.Fatalf("Wanted *TransportError got %T", err)
	}

	if te.Op != "write" || te.Err != io.ErrClosedPipe {
		t.Errorf("Unexpected transport error %v", te)
	}
}

func TestDebounceWindowOption(t *testing.T) {
	want := 1234 * time.Millisecond

	without, _ := New(&testTransport{}, SkipInit())
	if without.debounceWindow != DefaultDebounceWindow {
		t.Errorf("debounceWindow is %v, want %v", without.debounceWindow, DefaultDebounceWindow)
	}

	with, _ := New(&testTransport{}, SkipInit(), DebounceWindow(want))
	if with.debounceWindow != want {
		t.Errorf("debounceWindow is %v, want %v", with.debounceWindow, want)
	}
}

func TestDeviceSendLine(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    [][]byte
		wantErr error
	}{
		{"on", "+a1", [][]byte{{0x20, 0x60, 0x9f, 0x00, 0xff}}, nil},
		{"pan/tilt", "ub\n", [][]byte{{0x14, 0xa7, 0x62, 0x70}}, nil},
		{"empty", "", nil, nil},
		{"invalid", "+z1", nil, x10.ErrInvalidHouse},
		{"missing unit", "-a", nil, x10.ErrMissingUnit},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			transport := &testTransport{}
			device, _ := New(transport, SkipInit())
			err := device.SendLine(test.input)
			if !errors.Is(err, test.wantErr) {
				t.Errorf("Wanted error %v got %v", test.wantErr, err)
			}

			if !reflect.DeepEqual(test.want, transport.written) {
				t.Errorf("Wanted %v got %v", test.want, transport.written)
			}
		})
	}
}

type shortWriter struct {
	testTransport
}

func (sw *shortWriter) Write(p []byte) (int, error) { return len(p) - 1, nil }

func TestDeviceSendErrors(t *testing.T) {
	tests := []struct {
		name      string
		transport Transport
		input     x10.Command
		wantErr   error
	}{
		{"invalid command", &testTransport{}, x10.Command{Kind: x10.On, House: 'a'}, x10.ErrInvalidUnit},
		{"write error", &testTransport{writeErr: io.ErrClosedPipe}, x10.Command{Kind: x10.Up, House: 'a'}, io.ErrClosedPipe},
		{"short write", &shortWriter{}, x10.Command{Kind: x10.Up, House: 'a'}, io.ErrShortWrite},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			device, _ := New(test.transport, SkipInit())
			err := device.Send(test.input)
			if !errors.Is(err, test.wantErr) {
				t.Errorf("Wanted error %v got %v", test.wantErr, err)
			}
		})
	}
}

func TestDeviceListen(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	transport := &testTransport{
		reads:   frames([]byte{0x20, 0x34, 0xcb, 0x58, 0xa7}, []byte{0x14, 0x06, 0x61, 0xd0}),
		onEmpty: cancel,
	}
	device, err := New(transport)
	if err != nil {
		t.Fatalf("Unexpected error %v", err)
	}

	out := bytes.NewBuffer(nil)
	err = device.Listen(ctx, out)
	if err != nil {
		t.Errorf("Unexpected error %v", err)
	}

	want := "+p16\nrl\n"
	if out.String() != want {
		t.Errorf("Wanted %q got %q", want, out.String())
	}

	device.Close()
	if !transport.closed {
		t.Errorf("Expected transport to be closed")
	}
}
