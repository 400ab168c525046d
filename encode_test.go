/*
Copyright (c) 2017 Jerry Jacobs <jerry.jacobs@xor-gate.org>
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
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeLayoutGNU(t *testing.T) {
	hdr := &Header{
		Name:    "hello.txt",
		ModTime: time.Unix(1361157466, 0),
		Uid:     501,
		Gid:     20,
		Mode:    0644,
		Size:    13,
	}

	buf, err := hdr.Encode(GNU)
	require.NoError(t, err)

	want := "hello.txt/      " + "1361157466  " + "501   " + "20    " + "644     " + "13        " + "`\n"
	assert.Equal(t, []byte(want), buf)
	assert.Len(t, buf, HeaderSize)
}

func TestEncodeLayoutBSD(t *testing.T) {
	hdr := &Header{
		Name:    "hello.txt",
		ModTime: time.Unix(1361157466, 0),
		Uid:     501,
		Gid:     20,
		Mode:    0644,
		Size:    13,
	}

	buf, err := hdr.Encode(BSD)
	require.NoError(t, err)

	want := "hello.txt       " + "1361157466  " + "501   " + "20    " + "644     " + "13        " + "`\n"
	assert.Equal(t, []byte(want), buf)
	assert.False(t, hdr.UsesInlineName())
}

func TestEncodeNumericBases(t *testing.T) {
	// mode is octal text, size is decimal text.
	hdr := NewHeader("prog.o")
	hdr.Mode = 0755
	hdr.Size = 1024

	buf, err := hdr.Encode(GNU)
	require.NoError(t, err)

	assert.Equal(t, "755     ", string(buf[40:48]))
	assert.Equal(t, "1024      ", string(buf[48:58]))
}

func TestRoundTrip(t *testing.T) {
	for _, name := range []string{
		"a",
		"hello.txt",
		strings.Repeat("n", 15), // longest GNU inline name
	} {
		t.Run(name, func(t *testing.T) {
			hdr := &Header{
				Name:    name,
				ModTime: time.Unix(1542225207, 0),
				Uid:     502,
				Gid:     20,
				Mode:    0644,
				Size:    33,
			}

			buf, err := hdr.Encode(GNU)
			require.NoError(t, err)

			got, err := DecodeHeader(buf, nil)
			require.NoError(t, err)
			assert.Equal(t, hdr.Name, got.Name)
			assert.Equal(t, hdr.ModTime, got.ModTime)
			assert.Equal(t, hdr.Uid, got.Uid)
			assert.Equal(t, hdr.Gid, got.Gid)
			assert.Equal(t, hdr.Mode, got.Mode)
			assert.Equal(t, hdr.Size, got.Size)
		})
	}
}

func TestRoundTripGNUExtendedName(t *testing.T) {
	name := strings.Repeat("long_name_", 3) // 30 bytes
	table := NewStringTable()

	hdr := NewHeader(name)
	hdr.SetFilenameTable(table)

	buf, err := hdr.Encode(GNU)
	require.NoError(t, err)
	assert.Equal(t, "/0              ", string(buf[0:16]))

	got, err := DecodeHeader(buf, table)
	require.NoError(t, err)
	assert.Equal(t, name, got.Name)
}

func TestRoundTripBSDInlineName(t *testing.T) {
	name := strings.Repeat("long_name_", 3)

	hdr := NewHeader(name)
	buf, err := hdr.Encode(BSD)
	require.NoError(t, err)
	assert.Equal(t, "#1/30           ", string(buf[0:16]))
	assert.True(t, hdr.UsesInlineName())

	// The literal name bytes trail the header; appending them is the
	// archive layer's job.
	buf = append(buf, name...)

	got, err := DecodeHeader(buf, nil)
	require.NoError(t, err)
	assert.Equal(t, name, got.Name)
	assert.True(t, got.UsesInlineName())
}

func TestEncodeNameBoundaries(t *testing.T) {
	table := NewStringTable()

	t.Run("16 chars stays literal in BSD", func(t *testing.T) {
		hdr := NewHeader(strings.Repeat("n", 16))
		buf, err := hdr.Encode(BSD)
		require.NoError(t, err)
		assert.Equal(t, strings.Repeat("n", 16), string(buf[0:16]))
		assert.False(t, hdr.UsesInlineName())
	})

	t.Run("17 chars goes inline in BSD", func(t *testing.T) {
		hdr := NewHeader(strings.Repeat("n", 17))
		buf, err := hdr.Encode(BSD)
		require.NoError(t, err)
		assert.Equal(t, "#1/17           ", string(buf[0:16]))
		assert.True(t, hdr.UsesInlineName())
	})

	t.Run("15 chars stays inline in GNU", func(t *testing.T) {
		hdr := NewHeader(strings.Repeat("n", 15))
		buf, err := hdr.Encode(GNU)
		require.NoError(t, err)
		assert.Equal(t, strings.Repeat("n", 15)+"/", string(buf[0:16]))
	})

	t.Run("16 chars uses the table in GNU", func(t *testing.T) {
		hdr := NewHeader(strings.Repeat("n", 16))
		hdr.SetFilenameTable(table)
		buf, err := hdr.Encode(GNU)
		require.NoError(t, err)
		assert.Equal(t, "/0              ", string(buf[0:16]))
	})
}

func TestEncodeGNUExtendedNameMissingTable(t *testing.T) {
	hdr := NewHeader("a_name_that_is_20ch_")
	require.Len(t, hdr.Name, 20)

	buf, err := hdr.Encode(GNU)
	assert.Nil(t, buf)
	assert.ErrorIs(t, err, ErrEncode)
	// The same header encodes fine as BSD, which needs no table.
	_, err = hdr.Encode(BSD)
	assert.NoError(t, err)
}

func TestEncodeNegativeFields(t *testing.T) {
	for _, tc := range []struct {
		name   string
		mutate func(*Header)
	}{
		{"mtime", func(h *Header) { h.ModTime = time.Unix(-5, 0) }},
		{"uid", func(h *Header) { h.Uid = -1 }},
		{"gid", func(h *Header) { h.Gid = -1 }},
		{"mode", func(h *Header) { h.Mode = -1 }},
		{"size", func(h *Header) { h.Size = -1 }},
	} {
		t.Run(tc.name, func(t *testing.T) {
			hdr := NewHeader("hello.txt")
			tc.mutate(hdr)

			buf, err := hdr.Encode(GNU)
			assert.Nil(t, buf)
			assert.ErrorIs(t, err, ErrEncode)
		})
	}
}

func TestEncodeZeroModTime(t *testing.T) {
	// The zero time.Time encodes as epoch 0, keeping zero-value headers
	// usable.
	hdr := &Header{Name: "hello.txt"}

	buf, err := hdr.Encode(GNU)
	require.NoError(t, err)
	assert.Equal(t, "0           ", string(buf[16:28]))
}

func TestEncodeUnknownVariant(t *testing.T) {
	hdr := NewHeader("hello.txt")

	_, err := hdr.Encode(Variant(42))
	assert.ErrorIs(t, err, ErrEncode)
}

func TestEncodePseudoMemberNames(t *testing.T) {
	// Pseudo-member names are written without the GNU trailing slash and
	// survive a round trip untouched.
	for _, name := range []string{"/", "//"} {
		hdr := &Header{Name: name, ModTime: time.Unix(0, 0), Size: 64}

		buf, err := hdr.Encode(GNU)
		require.NoError(t, err, "name %q", name)
		assert.Equal(t, pad(name, 16), string(buf[0:16]))

		got, err := DecodeHeader(buf, nil)
		require.NoError(t, err)
		assert.Equal(t, name, got.Name)
	}
}

func TestFileInfoHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hello.txt")
	require.NoError(t, os.WriteFile(path, []byte("Hello world!\n"), 0644))

	fi, err := os.Stat(path)
	require.NoError(t, err)

	hdr := FileInfoHeader(fi)
	assert.Equal(t, "hello.txt", hdr.Name)
	assert.Equal(t, int64(13), hdr.Size)
	assert.Equal(t, fi.ModTime(), hdr.ModTime)
	assert.Equal(t, os.Getuid(), hdr.Uid)

	_, err = hdr.Encode(DefaultVariant)
	require.NoError(t, err)
}
