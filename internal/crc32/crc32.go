/*
Package crc32 implements the 32-bit cyclic redundancy check, or CRC-32,
checksum using the reflected IEEE polynomial as found in zlib and ISO-3309.

Besides the usual complemented checksum it exposes the raw register, which is
what the parental control master key algorithm consumes.
*/
package crc32

import (
	"hash"
	crc "hash/crc32"
)

const (
	// BlockSize is the preferred block size.
	BlockSize = 1
	// Size is the size of the checksum in bytes.
	Size = crc.Size

	polynomial = 0xedb88320
	initial    = 0xffffffff
)

func makeTable(poly uint32) *crc.Table {
	t := new(crc.Table)

	for i := 0; i < 256; i++ {
		r := uint32(i)
		for j := 0; j < 8; j++ {
			if r&1 == 1 {
				r = (r >> 1) ^ poly
			} else {
				r >>= 1
			}
		}

		t[i] = r
	}

	return t
}

//nolint:gochecknoglobals
var table = makeTable(polynomial)

func update(r uint32, tab *crc.Table, p []byte) uint32 {
	for i := range p {
		r = tab[byte(r)^p[i]] ^ (r >> 8)
	}

	return r
}

type digest struct {
	r   uint32
	tab *crc.Table
}

func (d *digest) BlockSize() int { return BlockSize }

func (d *digest) Reset() { d.r = initial }

func (d *digest) Size() int { return Size }

func (d *digest) Write(p []byte) (int, error) {
	d.r = update(d.r, d.tab, p)

	return len(p), nil
}

func (d *digest) Sum32() uint32 { return ^d.r }

func (d *digest) Sum(in []byte) []byte {
	s := d.Sum32()

	return append(in, byte(s>>24), byte(s>>16), byte(s>>8), byte(s))
}

// New creates a new hash.Hash32 computing the CRC-32 checksum. Its Sum
// method will lay the value out in big-endian byte order.
func New() hash.Hash32 {
	d := &digest{tab: table}
	d.Reset()

	return d
}

// Update returns the result of adding the bytes in p to the checksum crc.
func Update(crc uint32, p []byte) uint32 {
	return ^update(^crc, table, p)
}

// Checksum returns the CRC-32 checksum of data.
func Checksum(data []byte) uint32 { return Update(0, data) }

// Register returns the CRC-32 register after processing data, without the
// final complement. It is always equal to ^Checksum(data).
func Register(data []byte) uint32 { return update(initial, table, data) }
