package ar

import (
	"bytes"
	"fmt"
	"strings"
	"time"
)

// FilenameTable is the codec's only view of the archive container: a
// shared table of filenames too long for the 16-byte name field,
// addressed by byte offset as in the GNU variant. Implementations own
// the table's persistence and serialize concurrent access themselves.
type FilenameTable interface {
	// ReadFilename returns the filename stored at the given byte offset.
	// It must fail on an invalid offset rather than return a bogus name.
	ReadFilename(offset int64) (string, error)

	// SaveFilename appends the filename to the table and returns its
	// byte offset. Offsets remain valid for the lifetime of the archive.
	SaveFilename(name string) (int64, error)
}

// StringTable is an in-memory FilenameTable holding the data section of
// the GNU "//" pseudo-member: each entry is a filename terminated by
// "/\n". Saving the same name twice yields the same offset. It is not
// safe for concurrent use.
type StringTable struct {
	buf     []byte
	offsets map[string]int64
}

// NewStringTable returns an empty table, ready to collect the long
// filenames of an archive being written.
func NewStringTable() *StringTable {
	return &StringTable{offsets: map[string]int64{}}
}

// LoadStringTable wraps the data section of a "//" pseudo-member read
// from an existing archive, so its entries can be saved to again without
// duplication.
func LoadStringTable(data []byte) *StringTable {
	t := NewStringTable()
	t.buf = append(t.buf, data...)
	for off := 0; off < len(t.buf); {
		end := bytes.IndexByte(t.buf[off:], '\n')
		if end < 0 {
			break
		}
		name := strings.TrimSuffix(string(t.buf[off:off+end]), "/")
		if _, ok := t.offsets[name]; !ok {
			t.offsets[name] = int64(off)
		}
		off += end + 1
	}
	return t
}

func (t *StringTable) ReadFilename(offset int64) (string, error) {
	if offset < 0 || offset >= int64(len(t.buf)) {
		return "", fmt.Errorf("%w: string table offset %d out of range [0,%d)", ErrRead, offset, len(t.buf))
	}
	entry := t.buf[offset:]
	end := bytes.IndexByte(entry, '\n')
	if end < 0 {
		return "", fmt.Errorf("%w: string table entry at offset %d is missing its trailing newline", ErrRead, offset)
	}
	return strings.TrimSuffix(string(entry[:end]), "/"), nil
}

func (t *StringTable) SaveFilename(name string) (int64, error) {
	if offset, ok := t.offsets[name]; ok {
		return offset, nil
	}
	if strings.ContainsRune(name, '\n') {
		return 0, fmt.Errorf("ar: string table: name %q contains a newline", name)
	}
	offset := int64(len(t.buf))
	t.buf = append(t.buf, name...)
	t.buf = append(t.buf, '/', '\n')
	t.offsets[name] = offset
	return offset, nil
}

// Bytes returns the table's wire form, the data section of the "//"
// pseudo-member. The returned slice is owned by the table.
func (t *StringTable) Bytes() []byte {
	return t.buf
}

// Size returns the byte length of the table's wire form.
func (t *StringTable) Size() int64 {
	return int64(len(t.buf))
}

// TableHeader returns the header of the "//" pseudo-member carrying this
// table, for an archive layer that persists it.
func (t *StringTable) TableHeader() *Header {
	return &Header{
		Name:    "//",
		ModTime: time.Unix(0, 0),
		Size:    t.Size(),
	}
}
