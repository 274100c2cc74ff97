package subtle

import (
	"crypto/cipher"
	"io"
)

// sExpander streams the S sequence R || E(R xor 1) || E(R xor 2) || ...
// truncated to d bytes, as an io.ByteReader so add_mod_exp/sub_mod_exp can
// consume it without materializing the whole sequence.
type sExpander struct {
	block     cipher.Block
	r         [16]byte
	cur       [16]byte
	pos       int
	counter   uint64
	remaining int
}

// newSExpander returns the S-sequence reader for PRF output r, truncated
// to d bytes. The number of block encryptions it will perform lazily is
// ceil(d/16) - 1.
func newSExpander(block cipher.Block, r [16]byte, d int) *sExpander {
	return &sExpander{block: block, r: r, cur: r, remaining: d}
}

// ReadByte implements io.ByteReader.
func (s *sExpander) ReadByte() (byte, error) {
	if s.remaining <= 0 {
		return 0, io.EOF
	}
	if s.pos == len(s.cur) {
		s.counter++
		x := s.r
		// XOR the big-endian 128-bit representation of counter into x;
		// in practice counter never exceeds 64 bits for any radix/length
		// this package accepts, so only the low 8 bytes can be nonzero.
		c := s.counter
		for i := 15; i >= 8 && c != 0; i-- {
			x[i] ^= byte(c)
			c >>= 8
		}
		s.block.Encrypt(s.cur[:], x[:])
		s.pos = 0
	}
	b := s.cur[s.pos]
	s.pos++
	s.remaining--
	return b, nil
}
