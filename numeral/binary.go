package numeral

import (
	"io"
	"math/big"

	"github.com/vdparikh/fpe-ff1/subtle"
)

// BinaryNumeralString is a radix-2 numeral string backed by a bit vector,
// imported from and exported to little-endian byte slices. It is the
// natural representation for encrypting raw binary data (as opposed to
// decimal/alphanumeric strings, which use FlexibleNumeralString).
type BinaryNumeralString struct {
	bits []bool // bits[0] is the least significant bit
}

// NewBinaryNumeralStringFromBytesLE builds a BinaryNumeralString from a
// little-endian byte slice, one numeral per bit.
func NewBinaryNumeralStringFromBytesLE(b []byte) *BinaryNumeralString {
	bits := make([]bool, len(b)*8)
	for i, by := range b {
		for j := 0; j < 8; j++ {
			bits[i*8+j] = by&(1<<uint(j)) != 0
		}
	}
	return &BinaryNumeralString{bits: bits}
}

// ToBytesLE exports this numeral string as a little-endian byte slice.
// NumeralCount must be a multiple of 8.
func (bs *BinaryNumeralString) ToBytesLE() []byte {
	out := make([]byte, len(bs.bits)/8)
	for i, bit := range bs.bits {
		if bit {
			out[i/8] |= 1 << uint(i%8)
		}
	}
	return out
}

// NumeralCount implements subtle.NumeralString.
func (bs *BinaryNumeralString) NumeralCount() int { return len(bs.bits) }

// IsValid implements subtle.NumeralString: every numeral of a bit vector
// is trivially in [0, 2) so this only checks the radix itself.
func (bs *BinaryNumeralString) IsValid(radix uint32) bool { return radix == 2 }

// Split implements subtle.NumeralString.
func (bs *BinaryNumeralString) Split() (subtle.Operations, subtle.Operations) {
	u := len(bs.bits) / 2
	a := &bitsOps{bits: append([]bool(nil), bs.bits[:u]...)}
	b := &bitsOps{bits: append([]bool(nil), bs.bits[u:]...)}
	return a, b
}

// Concat implements subtle.NumeralString.
func (bs *BinaryNumeralString) Concat(a, b subtle.Operations) subtle.NumeralString {
	ao := a.(*bitsOps)
	bo := b.(*bitsOps)
	bits := make([]bool, 0, len(ao.bits)+len(bo.bits))
	bits = append(bits, ao.bits...)
	bits = append(bits, bo.bits...)
	return &BinaryNumeralString{bits: bits}
}

// bitsOps is the Operations half produced by BinaryNumeralString.Split.
// Big-endian NUM_2(X) treats bits[0] (the MSB of this half, not of the
// original byte string) as most significant, matching FF1's NUM/STR
// convention for any radix.
type bitsOps struct {
	bits []bool
}

func (o *bitsOps) NumeralCount() int { return len(o.bits) }

func (o *bitsOps) toBig() *big.Int {
	value := new(big.Int)
	for _, bit := range o.bits {
		value.Lsh(value, 1)
		if bit {
			value.SetBit(value, 0, 1)
		}
	}
	return value
}

func (o *bitsOps) ToBEBytes(radix uint32, b int) []byte {
	return bigToBEBytes(o.toBig(), b)
}

func (o *bitsOps) AddModExp(s io.ByteReader, radix uint32, m int) subtle.Operations {
	y := new(big.Int).SetBytes(readAllBytes(s))
	mod := new(big.Int).Lsh(big.NewInt(1), uint(m))
	c := new(big.Int).Add(o.toBig(), y)
	c.Mod(c, mod)
	return &bitsOps{bits: bigToBits(c, m)}
}

func (o *bitsOps) SubModExp(s io.ByteReader, radix uint32, m int) subtle.Operations {
	y := new(big.Int).SetBytes(readAllBytes(s))
	mod := new(big.Int).Lsh(big.NewInt(1), uint(m))
	c := new(big.Int).Sub(o.toBig(), y)
	c.Mod(c, mod)
	return &bitsOps{bits: bigToBits(c, m)}
}

func bigToBits(x *big.Int, length int) []bool {
	bits := make([]bool, length)
	for i := length - 1; i >= 0; i-- {
		bits[i] = x.Bit(length-1-i) != 0
	}
	return bits
}
