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
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

// DecodeHeader parses one 60-byte member header and returns the resolved
// Header. The buffer must hold at least HeaderSize bytes; trailing bytes
// are consulted only when a BSD "#1/<length>" name declares an inline
// name that they cover.
//
// A GNU "/<offset>" name is resolved through table, which must be
// non-nil in that case and is retained on the returned Header. A BSD
// inline name whose declared length exceeds the supplied buffer is left
// unresolved: the returned Header keeps the raw "#1/<length>" token with
// UsesInlineName true, and the caller may decode again once it holds
// HeaderSize+length bytes.
//
// Every failure matches ErrHeader under errors.Is; table lookup failures
// are propagated inside a NameError.
func DecodeHeader(buf []byte, table FilenameTable) (*Header, error) {
	if len(buf) < HeaderSize {
		return nil, ErrShortHeader
	}
	if !bytes.Equal(buf[HeaderSize-2:HeaderSize], terminator) {
		return nil, ErrTerminator
	}
	if !utf8.Valid(buf[:HeaderSize]) {
		return nil, fmt.Errorf("%w: header is not valid UTF-8", ErrHeader)
	}

	s := slicer(buf)
	name := strings.TrimRight(string(s.next(16)), " ")
	mtime, err := parseField(s.next(12), "mtime", 10)
	if err != nil {
		return nil, err
	}
	uid, err := parseField(s.next(6), "uid", 10)
	if err != nil {
		return nil, err
	}
	gid, err := parseField(s.next(6), "gid", 10)
	if err != nil {
		return nil, err
	}
	mode, err := parseField(s.next(8), "mode", 8)
	if err != nil {
		return nil, err
	}
	size, err := parseField(s.next(10), "size", 10)
	if err != nil {
		return nil, err
	}

	h := &Header{
		Name:    name,
		ModTime: time.Unix(mtime, 0),
		Uid:     int(uid),
		Gid:     int(gid),
		Mode:    mode,
		Size:    size,
		table:   table,
	}
	if err := h.resolveName(buf); err != nil {
		return nil, err
	}
	return h, nil
}

// parseField parses one fixed-width numeric field in its declared base,
// ignoring the space padding.
func parseField(b []byte, field string, base int) (int64, error) {
	v := strings.TrimRight(string(b), " ")
	n, err := strconv.ParseInt(v, base, 64)
	if err != nil {
		return 0, &FieldError{Field: field, Value: v, Err: err}
	}
	return n, nil
}

// resolveName substitutes any extended-name token in h.Name with the
// member's real name. buf is the full buffer handed to DecodeHeader, so
// BSD inline names can be read from the bytes trailing the header.
func (h *Header) resolveName(buf []byte) error {
	name := h.Name
	switch {
	// The special names "/" (symbol table) and "//" (filename table)
	// denote pseudo-members and stay literal.
	case name == "/" || name == "//":
		return nil

	case strings.HasPrefix(name, "#1/"):
		// BSD: "#1/" followed by the decimal length of the literal name
		// stored immediately after the header.
		length, err := strconv.Atoi(name[len("#1/"):])
		if err != nil || length < 0 {
			return &NameError{Name: name, Err: errors.New("invalid inline name length")}
		}
		h.inlineName = true
		if len(buf) < HeaderSize+length {
			// Not enough trailing bytes yet; keep the raw token so the
			// caller can decode again with a larger buffer.
			return nil
		}
		// Some implementations (e.g. llvm-ar) pad the inline name with
		// trailing nulls, which are not part of the name.
		inline := bytes.TrimRight(buf[HeaderSize:HeaderSize+length], "\x00")
		if !utf8.Valid(inline) {
			return &NameError{Name: name, Err: errors.New("inline name is not valid UTF-8")}
		}
		h.Name = string(inline)
		return nil

	case strings.HasPrefix(name, "/"):
		// GNU: "/" followed by the decimal byte offset of the real name
		// in the archive's shared filename table.
		offset, err := strconv.Atoi(name[len("/"):])
		if err != nil || offset < 0 {
			return &NameError{Name: name, Err: errors.New("invalid filename table offset")}
		}
		if h.table == nil {
			return ErrMissingTable
		}
		resolved, err := h.table.ReadFilename(int64(offset))
		if err != nil {
			return &NameError{Name: name, Err: err}
		}
		h.Name = resolved
		return nil

	default:
		// GNU ar terminates short inline names with "/".
		h.Name = strings.TrimSuffix(name, "/")
		return nil
	}
}
