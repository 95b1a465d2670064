package script

import "fmt"

// SyntaxError is a positioned parse or compile error.
type SyntaxError struct {
	Pos Pos
	Msg string
	Err error
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("line %d, column %d: %s", e.Pos.Line, e.Pos.Col, e.Msg)
}

func (e *SyntaxError) Unwrap() error { return e.Err }

func errorf(pos Pos, format string, args ...any) *SyntaxError {
	return &SyntaxError{Pos: pos, Msg: fmt.Sprintf(format, args...)}
}

func wrapf(pos Pos, err error, format string, args ...any) *SyntaxError {
	return &SyntaxError{Pos: pos, Msg: fmt.Sprintf(format, args...) + ": " + err.Error(), Err: err}
}
