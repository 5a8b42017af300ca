package x10

import (
	"bytes"
	"fmt"
)

// ParseError records the text line that failed to parse and the reason
type ParseError struct {
	Line string
	Err  error
}

func (pe *ParseError) Error() string {
	return fmt.Sprintf("%q: %v", pe.Line, pe.Err)
}

func (pe *ParseError) Unwrap() error { return pe.Err }

// CodeError is returned when a bit pattern read off the air does not
// match any entry of the named code table
type CodeError struct {
	Table string
	Code  int
}

func (ce *CodeError) Error() string {
	return fmt.Sprintf("%v: %s code 0x%03x", ErrUnrecognizedCode, ce.Table, ce.Code)
}

func (ce *CodeError) Unwrap() error { return ErrUnrecognizedCode }

// BufError is returned when a frame is shorter than its shape requires
type BufError struct {
	Cause error
	Need  int
	Got   int
}

func newBufError(cause error, need, got int) *BufError {
	return &BufError{Cause: cause, Need: need, Got: got}
}

func (be *BufError) Error() string {
	if be.Cause == nil {
		return fmt.Sprintf("need %d bytes got %d", be.Need, be.Got)
	}
	return fmt.Sprintf("%v: need %d bytes got %d", be.Cause, be.Need, be.Got)
}

func (be *BufError) Unwrap() error { return be.Cause }

// AggregateError collects several errors, such as those returned while
// closing the layers of a transport
type AggregateError struct {
	Errors []error
}

func NewAggregateError() *AggregateError {
	return &AggregateError{}
}

func (ae *AggregateError) Len() int {
	return len(ae.Errors)
}

func (ae *AggregateError) Append(err error) {
	if err != nil {
		ae.Errors = append(ae.Errors, err)
	}
}

// Err returns nil when nothing was appended, otherwise the aggregate
func (ae *AggregateError) Err() error {
	if ae.Len() == 0 {
		return nil
	}
	return ae
}

func (ae *AggregateError) Error() string {
	var buf bytes.Buffer
	for _, err := range ae.Errors {
		buf.WriteString(fmt.Sprintf("%s\n", err.Error()))
	}
	return buf.String()
}
