/*
Copyright (c) 2013 Blake Smith <blakesmith0@gmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package ar

import (
	"fmt"
	"strconv"
)

// Encode serializes the header into its 60-byte wire form for the given
// Variant.
//
// Names wider than the 16-byte name field are encoded per the variant:
// BSD emits a "#1/<length>" token and marks the header with
// UsesInlineName true, leaving the caller to append the literal name
// bytes after the header; GNU stores the name in the attached filename
// table and emits "/<offset>". Encoding a long name as GNU without a
// table attached fails.
//
// All numeric fields must be non-negative; negative values are rejected,
// except that a zero ModTime is encoded as epoch 0. Every failure matches
// ErrEncode under errors.Is.
func (h *Header) Encode(v Variant) ([]byte, error) {
	mtime := h.ModTime.Unix()
	if h.ModTime.IsZero() {
		mtime = 0
	}
	if err := checkNonNegative(mtime, "mtime"); err != nil {
		return nil, err
	}
	if err := checkNonNegative(int64(h.Uid), "uid"); err != nil {
		return nil, err
	}
	if err := checkNonNegative(int64(h.Gid), "gid"); err != nil {
		return nil, err
	}
	if err := checkNonNegative(h.Mode, "mode"); err != nil {
		return nil, err
	}
	if err := checkNonNegative(h.Size, "size"); err != nil {
		return nil, err
	}

	buf := make([]byte, HeaderSize)
	s := slicer(buf)

	switch v {
	case BSD:
		if len(h.Name) <= 16 {
			putString(s.next(16), h.Name)
		} else {
			putString(s.next(16), "#1/"+strconv.Itoa(len(h.Name)))
			h.inlineName = true
		}
	case GNU:
		switch {
		// Pseudo-member names are written as-is, without the trailing
		// slash that terminates regular inline names.
		case h.Name == "/" || h.Name == "//":
			putString(s.next(16), h.Name)
		case len(h.Name) <= 15:
			putString(s.next(16), h.Name+"/")
		default:
			if h.table == nil {
				return nil, fmt.Errorf("%w: extended name %q requires a filename table", ErrEncode, h.Name)
			}
			offset, err := h.table.SaveFilename(h.Name)
			if err != nil {
				return nil, fmt.Errorf("%w: %v", ErrEncode, err)
			}
			putString(s.next(16), "/"+strconv.FormatInt(offset, 10))
		}
	default:
		return nil, fmt.Errorf("%w: unknown variant %d", ErrEncode, int(v))
	}

	putNumeric(s.next(12), mtime)
	putNumeric(s.next(6), int64(h.Uid))
	putNumeric(s.next(6), int64(h.Gid))
	putOctal(s.next(8), h.Mode)
	putNumeric(s.next(10), h.Size)
	copy(s.next(2), terminator)

	return buf, nil
}

func checkNonNegative(x int64, field string) error {
	if x < 0 {
		return fmt.Errorf("%w: negative %s %d", ErrEncode, field, x)
	}
	return nil
}

func putNumeric(b []byte, x int64) {
	putString(b, strconv.FormatInt(x, 10))
}

func putOctal(b []byte, x int64) {
	putString(b, strconv.FormatInt(x, 8))
}

// putString copies s into b left-justified, padding the rest with spaces.
func putString(b []byte, s string) {
	n := copy(b, s)
	for i := n; i < len(b); i++ {
		b[i] = ' '
	}
}
