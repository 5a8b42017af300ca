package cm19a

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"io"
	"testing"
	"time"
)

type readResult struct {
	frame []byte
	err   error
}

// testTransport returns one queued read per call and ErrReadTimeout once
// the queue is empty
type testTransport struct {
	reads    []readResult
	written  [][]byte
	writeErr error
	closed   bool
	onEmpty  func()
}

func (tt *testTransport) Read(p []byte) (int, error) {
	if len(tt.reads) == 0 {
		if tt.onEmpty != nil {
			tt.onEmpty()
		}
		return 0, ErrReadTimeout
	}
	r := tt.reads[0]
	tt.reads = tt.reads[1:]
	return copy(p, r.frame), r.err
}

func (tt *testTransport) Write(p []byte) (int, error) {
	if tt.writeErr != nil {
		return 0, tt.writeErr
	}
	tt.written = append(tt.written, append([]byte(nil), p...))
	return len(p), nil
}

func (tt *testTransport) Close() error {
	tt.closed = true
	return nil
}

type errWriter struct {
	error
}

func (ew errWriter) Write([]byte) (int, error) { return 0, ew.error }

func frames(f ...[]byte) []readResult {
	results := make([]readResult, len(f))
	for i, frame := range f {
		if frame == nil {
			results[i] = readResult{err: ErrReadTimeout}
		} else {
			results[i] = readResult{frame: frame}
		}
	}
	return results
}

func TestReceiverRun(t *testing.T) {
	onA1 := []byte{0x20, 0x60, 0x9f, 0x00, 0xff}
	offP16 := []byte{0x20, 0x34, 0xcb, 0x78, 0x87}
	upB := []byte{0x14, 0xa7, 0x62, 0x70}

	tests := []struct {
		name  string
		input []readResult
		want  string
	}{
		{"normal frame", frames(onA1), "+a1\n"},
		{"pan/tilt frame", frames(upB), "ub\n"},
		{"timeouts are ignored", frames(nil, onA1, nil, offP16), "+a1\n-p16\n"},
		{"unknown prefix is ignored", frames([]byte{0xff}, []byte{0x80, 0x01}, onA1), "+a1\n"},
		{"short frame is dropped", frames([]byte{0x20, 0x60}, offP16), "-p16\n"},
		{"unrecognized code is dropped", frames([]byte{0x14, 0xa1, 0x00, 0x70}, upB), "ub\n"},
		{"repeats are suppressed", frames(onA1, onA1, onA1, upB, upB), "+a1\nub\n"},
		{"alternating events", frames(onA1, offP16, onA1), "+a1\n-p16\n+a1\n"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			transport := &testTransport{reads: test.input, onEmpty: cancel}
			out := bytes.NewBuffer(nil)
			debounce, _ := newTestDebouncer(DefaultDebounceWindow)

			err := NewReceiver(transport, out, debounce).Run(ctx)
			if err != nil {
				t.Errorf("Unexpected error %v", err)
			}

			if out.String() != test.want {
				t.Errorf("Wanted %q got %q", test.want, out.String())
			}
		})
	}
}

func TestReceiverRepeatAfterWindow(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	onA1 := []byte{0x20, 0x60, 0x9f, 0x00, 0xff}
	debounce, clock := newTestDebouncer(DefaultDebounceWindow)
	transport := &testTransport{reads: frames(onA1, onA1)}
	transport.onEmpty = func() {
		// one more press, long after the first two
		clock.Advance(700 * time.Millisecond)
		transport.reads = frames(onA1)
		transport.onEmpty = cancel
	}

	out := bytes.NewBuffer(nil)
	err := NewReceiver(transport, out, debounce).Run(ctx)
	if err != nil {
		t.Errorf("Unexpected error %v", err)
	}

	want := "+a1\n+a1\n"
	if out.String() != want {
		t.Errorf("Wanted %q got %q", want, out.String())
	}
}

func TestReceiverStopsWhenCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	transport := &testTransport{reads: frames([]byte{0x20, 0x60, 0x9f, 0x00, 0xff})}
	out := bytes.NewBuffer(nil)
	err := NewReceiver(transport, out, NewDebouncer(DefaultDebounceWindow)).Run(ctx)
	if err != nil {
		t.Errorf("Unexpected error %v", err)
	}

	if out.Len() != 0 {
		t.Errorf("Expected no output got %q", out.String())
	}

	if len(transport.reads) != 1 {
		t.Errorf("Expected no reads after cancellation")
	}
}

func TestReceiverErrors(t *testing.T) {
	tests := []struct {
		name    string
		input   []readResult
		out     io.Writer
		wantErr error
	}{
		{"transport error", []readResult{{err: io.ErrUnexpectedEOF}}, bytes.NewBuffer(nil), io.ErrUnexpectedEOF},
		{"output error", frames([]byte{0x14, 0xa7, 0x62, 0x70}), errWriter{io.ErrClosedPipe}, io.ErrClosedPipe},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			transport := &testTransport{reads: test.input}
			err := NewReceiver(transport, test.out, NewDebouncer(DefaultDebounceWindow)).Run(context.Background())
			if !errors.Is(err, test.wantErr) {
				t.Errorf("Wanted error %v got %v", test.wantErr, err)
			}
		})
	}

	transport := &testTransport{reads: []readResult{{err: io.ErrUnexpectedEOF}}}
	err := NewReceiver(transport, bytes.NewBuffer(nil), NewDebouncer(DefaultDebounceWindow)).Run(context.Background())
	te := &TransportError{}
	if !errors.As(err, &te) {
		t.Errorf("Wanted *TransportError got %T", err)
	}
}

func TestReceiverFlushesOutput(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	buf := bytes.NewBuffer(nil)
	out := bufio.NewWriter(buf)
	transport := &testTransport{reads: frames([]byte{0x14, 0xa7, 0x62, 0x70}), onEmpty: cancel}

	err := NewReceiver(transport, out, NewDebouncer(DefaultDebounceWindow)).Run(ctx)
	if err != nil {
		t.Errorf("Unexpected error %v", err)
	}

	if buf.String() != "ub\n" {
		t.Errorf("Expected output to be flushed, got %q", buf.String())
	}
}
