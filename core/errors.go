package core

import (
	"strings"

	"github.com/pkg/errors"
)

// Kind classifies an Error for callers and transports.
type Kind int

const (
	KindInternal Kind = iota
	KindUnauthenticated
	KindUnauthorized
	KindNotFound
	KindValidation
	KindConflict
)

var kindCodes = map[Kind]string{
	KindInternal:        "INTERNAL_SERVER_ERROR",
	KindUnauthenticated: "UNAUTHENTICATED",
	KindUnauthorized:    "FORBIDDEN",
	KindNotFound:        "NOT_FOUND",
	KindValidation:      "BAD_USER_INPUT",
	KindConflict:        "CONFLICT",
}

// Code returns the machine readable code of the kind.
func (k Kind) Code() string {
	if code, ok := kindCodes[k]; ok {
		return code
	}
	return kindCodes[KindInternal]
}

func (k Kind) String() string { return k.Code() }

var (
	ErrNotAuthenticated = NewError(KindUnauthenticated, "Not authenticated")
	ErrNotAuthorized    = NewError(KindUnauthorized, "Not authorized")
)

// FieldError is used to indicate an error with a specific struct field.
type FieldError struct {
	Field string
	Error string
}

// Error is the error returned by every entity operation.
// Msg is part of the API contract and is shown to clients as is.
type Error struct {
	Kind   Kind
	Msg    string
	Fields []FieldError
	Err    error
}

func NewError(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Msg: msg}
}

func NewNotFoundError(msg string) *Error { return NewError(KindNotFound, msg) }

func NewConflictError(msg string) *Error { return NewError(KindConflict, msg) }

// NewValidationError builds a validation Error from field errors. The message lists every field error.
func NewValidationError(err error, flds ...FieldError) *Error {
	msgs := make([]string, 0, len(flds))
	for _, f := range flds {
		msgs = append(msgs, f.Field+": "+f.Error)
	}
	msg := strings.Join(msgs, "; ")
	if msg == "" && err != nil {
		msg = err.Error()
	}
	return &Error{Kind: KindValidation, Msg: msg, Fields: flds, Err: err}
}

func (e *Error) Error() string {
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

// FieldMap returns the field errors keyed by field name.
func (e *Error) FieldMap() map[string]string {
	if len(e.Fields) == 0 {
		return nil
	}
	m := make(map[string]string, len(e.Fields))
	for _, f := range e.Fields {
		m[f.Field] = f.Error
	}
	return m
}

// KindOf returns the Kind of the first *Error in err's chain, KindInternal otherwise.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// IsKind reports whether err is an *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

type shutdown struct {
	message string
}

func NewShutdownError(msg string) error {
	return &shutdown{message: msg}
}

func (s shutdown) Error() string {
	return s.message
}

func IsShutdown(err error) bool {
	_, ok := errors.Cause(err).(*shutdown)
	return ok
}
