package glyf

import (
	"github.com/npillmayer/ttoutline/ot"
)

// reader is a cursor over a glyph record. Every read is bounds-checked and fails
// with an error of kind ot.ErrTruncated instead of reading past the end of the data.
type reader struct {
	data    []byte
	pos     int
	base    uint32 // offset of data[0] within table 'glyf', for error messages
	section string // part of the glyph record currently read, for error messages
}

func newReader(data []byte, base uint32, section string) reader {
	return reader{data: data, base: base, section: section}
}

func (r *reader) remaining() int {
	return len(r.data) - r.pos
}

func (r *reader) truncated(n int) error {
	return ot.NewFontError(ot.ErrTruncated, tagGlyf, r.section, r.base+uint32(r.pos),
		"need %d bytes, %d remaining", n, max(r.remaining(), 0))
}

func (r *reader) bytes(n int) ([]byte, error) {
	if n < 0 || r.remaining() < n {
		return nil, r.truncated(n)
	}
	b := r.data[r.pos : r.pos+n]
	r.pos += n
	return b, nil
}

func (r *reader) skip(n int) error {
	_, err := r.bytes(n)
	return err
}

func (r *reader) u8() (uint8, error) {
	if r.remaining() < 1 {
		return 0, r.truncated(1)
	}
	b := r.data[r.pos]
	r.pos++
	return b, nil
}

func (r *reader) i8() (int8, error) {
	b, err := r.u8()
	return int8(b), err
}

func (r *reader) u16() (uint16, error) {
	if r.remaining() < 2 {
		return 0, r.truncated(2)
	}
	n := uint16(r.data[r.pos])<<8 | uint16(r.data[r.pos+1])
	r.pos += 2
	return n, nil
}

func (r *reader) i16() (int16, error) {
	n, err := r.u16()
	return int16(n), err
}
