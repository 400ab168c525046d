// Package ar implements the per-member header format of Unix ar archives.
//
// Each archive member is preceded by a fixed 60-byte header holding its
// name, modification time, ownership, mode and payload size as fixed-width
// ASCII fields. Names longer than the 16-byte name field are stored using
// one of two competing conventions: the GNU variant indirects through a
// shared filename table ("/<offset>"), the BSD variant inlines the name
// immediately after the header ("#1/<length>"). DecodeHeader auto-detects
// both forms; Encode emits whichever Variant the caller selects.
//
// The package deliberately stops at the header boundary: member payloads,
// archive enumeration and the filename table's persistence belong to the
// surrounding archive layer, which this codec reaches only through the
// FilenameTable interface.
package ar

const (
	// HeaderSize is the fixed byte length of a member header, excluding
	// any BSD-style inline name that may follow it.
	HeaderSize = 60

	// GlobalHeader is the magic string opening every ar archive file.
	GlobalHeader = "!<arch>\n"
)

// terminator is the 2-byte magic sequence ending every member header.
var terminator = []byte{0x60, 0x0A}

// Variant selects which of the two ar file format dialects is used to
// encode filenames that do not fit the 16-byte name field.
type Variant int

const (
	// BSD represents the variant of the ar file format used by BSD ar.
	BSD Variant = iota

	// GNU represents the variant of the ar file format used by GNU ar.
	GNU
)

// DefaultVariant is the dialect used by callers with no preference.
const DefaultVariant = GNU

func (v Variant) String() string {
	switch v {
	case BSD:
		return "BSD"
	case GNU:
		return "GNU"
	}
	return "unknown"
}

type slicer []byte

func (sp *slicer) next(n int) (b []byte) {
	s := *sp
	b, *sp = s[0:n], s[n:]
	return
}
