// Package apperr carries the error kinds handlers map onto HTTP status codes.
package apperr

import "errors"

type Kind int

const (
	KindUnknown Kind = iota
	KindValidation
	KindNotFound
	KindInsufficientData
	KindConflict
)

// Error is a reportable failure. Anything that is not an *Error is treated
// as a server fault.
type Error struct {
	Kind  Kind
	Field string // set for KindValidation
	Msg   string
}

func (e *Error) Error() string { return e.Msg }

// Is matches on Kind, and on Msg when the target carries one.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Kind != e.Kind {
		return false
	}
	return t.Msg == "" || t.Msg == e.Msg
}

var (
	ErrValidation       = &Error{Kind: KindValidation}
	ErrNotFound         = &Error{Kind: KindNotFound}
	ErrInsufficientData = &Error{Kind: KindInsufficientData}
	ErrConflict         = &Error{Kind: KindConflict}
)

func Validation(field, msg string) error {
	return &Error{Kind: KindValidation, Field: field, Msg: msg}
}

func NotFound(msg string) error { return &Error{Kind: KindNotFound, Msg: msg} }

func InsufficientData(msg string) error {
	return &Error{Kind: KindInsufficientData, Msg: msg}
}

func Conflict(msg string) error { return &Error{Kind: KindConflict, Msg: msg} }

// KindOf returns the kind of the first *Error in err's chain.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}
