package ar

import (
	"errors"
	"fmt"
)

var (
	// ErrHeader is the root of all DecodeHeader failures. Every error
	// returned by DecodeHeader matches it under errors.Is.
	ErrHeader = errors.New("ar: invalid header")

	// ErrEncode is the root of all Encode failures. Every error returned
	// by Encode matches it under errors.Is.
	ErrEncode = errors.New("ar: cannot encode header")

	// ErrShortHeader indicates that the buffer handed to DecodeHeader
	// holds fewer than HeaderSize bytes.
	ErrShortHeader = fmt.Errorf("%w: buffer shorter than %d bytes", ErrHeader, HeaderSize)

	// ErrTerminator indicates that the header does not end with the
	// 2-byte magic sequence 0x60 0x0A.
	ErrTerminator = fmt.Errorf("%w: bad terminator", ErrHeader)

	// ErrMissingTable indicates that a GNU-style "/<offset>" name was
	// found but no FilenameTable was supplied to resolve it.
	ErrMissingTable = fmt.Errorf("%w: filename table required to resolve extended name", ErrHeader)
)

// Errors reserved for the archive layer built on top of this codec. The
// codec itself produces only ErrRead (via StringTable lookups); the rest
// exist so archive, stream and extraction failures share one taxonomy
// with header failures.
var (
	// ErrRead indicates an archive that cannot be read, such as a
	// filename table lookup at an invalid offset.
	ErrRead = errors.New("ar: unreadable archive")

	// ErrStream indicates an operation that is not permitted on a
	// non-seekable, stream-mode archive.
	ErrStream = errors.New("ar: operation not permitted on stream archive")

	// ErrExtract indicates a failure while extracting a member.
	ErrExtract = errors.New("ar: extraction failed")
)

// FieldError indicates that a numeric header field did not parse in its
// declared base. It matches ErrHeader under errors.Is.
type FieldError struct {
	Field string // header field name, e.g. "uid"
	Value string // raw field text as it appeared in the buffer
	Err   error  // underlying parse error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("ar: field %s: invalid value %q: %s", e.Field, e.Value, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

func (e *FieldError) Is(target error) bool {
	return target == ErrHeader
}

// NameError indicates a malformed or unresolvable extended-name token in
// the header's name field. It matches ErrHeader under errors.Is.
type NameError struct {
	Name string // raw name token, e.g. "#1/abc"
	Err  error
}

func (e *NameError) Error() string {
	return fmt.Sprintf("ar: archive member '%s': %s", e.Name, e.Err)
}

func (e *NameError) Unwrap() error {
	return e.Err
}

func (e *NameError) Is(target error) bool {
	return target == ErrHeader
}
