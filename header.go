package ar

import (
	"os"
	"time"
)

// Header holds the metadata of one archive member, decoupled from the
// member's payload bytes. The zero value is usable, but NewHeader applies
// the conventional defaults.
type Header struct {
	Name    string
	ModTime time.Time
	Uid     int
	Gid     int
	Mode    int64
	Size    int64

	// Offset is the byte position of the member's payload within the
	// archive. It is maintained by the archive layer, never by the codec.
	Offset int64

	// inlineName records that the name was carried in BSD "#1/<len>"
	// form, with the literal bytes trailing the header.
	inlineName bool

	// table is a non-owning reference to the archive's filename table,
	// consulted only to resolve or store GNU-style extended names.
	table FilenameTable
}

// NewHeader returns a header for the named member with conventional
// defaults: epoch modification time, uid/gid 0, mode 0644, size 0.
func NewHeader(name string) *Header {
	return &Header{
		Name:    name,
		ModTime: time.Unix(0, 0),
		Mode:    0644,
	}
}

// FileInfoHeader builds a header from a stat result. Ownership is taken
// from the current process since os.FileInfo does not carry it portably.
func FileInfoHeader(fi os.FileInfo) *Header {
	return &Header{
		Name:    fi.Name(),
		ModTime: fi.ModTime(),
		Uid:     os.Getuid(),
		Gid:     os.Getgid(),
		Mode:    int64(fi.Mode().Perm()),
		Size:    fi.Size(),
	}
}

// SetFilenameTable attaches the archive's filename table to the header.
// The header never owns the table; it only consults it when encoding or
// resolving GNU-style extended names.
func (h *Header) SetFilenameTable(t FilenameTable) {
	h.table = t
}

// UsesInlineName reports whether the header's name was stored in BSD
// "#1/<length>" form, with the literal name bytes immediately following
// the 60-byte header in the archive stream.
func (h *Header) UsesInlineName() bool {
	return h.inlineName
}
