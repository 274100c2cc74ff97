// Package numeral provides the concrete NumeralString/Operations
// realisations consumed by subtle.Engine: an arbitrary-radix, big.Int-
// backed FlexibleNumeralString, and a radix-2 BinaryNumeralString.
package numeral

import (
	"io"
	"math/big"

	"github.com/vdparikh/fpe-ff1/subtle"
)

// FlexibleNumeralString is a numeral string over an arbitrary radix,
// backed by an arbitrary-precision integer. It is the general-purpose
// NumeralString implementation: NUM_radix(X) is the big.Int itself, and
// STR_radix is computed on demand by repeated division.
type FlexibleNumeralString struct {
	radix  uint32
	value  *big.Int
	length int
}

// NewFlexibleNumeralString builds a FlexibleNumeralString from a
// big-endian slice of numerals, each expected to be in [0, radix).
func NewFlexibleNumeralString(digits []uint16, radix uint32) *FlexibleNumeralString {
	return &FlexibleNumeralString{radix: radix, value: digitsToBig(digits, radix), length: len(digits)}
}

// StrRadix builds a FlexibleNumeralString of the given length directly
// from an integer value: STR_radix(x, length) in NIST SP 800-38G notation.
func StrRadix(x *big.Int, radix uint32, length int) *FlexibleNumeralString {
	return &FlexibleNumeralString{radix: radix, value: new(big.Int).Set(x), length: length}
}

// NumRadix returns NUM_radix(X): the integer this numeral string encodes.
func (f *FlexibleNumeralString) NumRadix() *big.Int {
	return new(big.Int).Set(f.value)
}

// Digits returns the big-endian numeral decomposition of this string,
// i.e. STR_radix(NUM_radix(X), length).
func (f *FlexibleNumeralString) Digits() []uint16 {
	return bigToDigits(f.value, f.radix, f.length)
}

// Radix returns the radix this numeral string was constructed with.
func (f *FlexibleNumeralString) Radix() uint32 { return f.radix }

// IsValid reports whether radix matches and every implied numeral is in
// [0, radix): equivalent to 0 <= NUM_radix(X) < radix^length.
func (f *FlexibleNumeralString) IsValid(radix uint32) bool {
	if radix != f.radix {
		return false
	}
	if f.value.Sign() < 0 {
		return false
	}
	limit := new(big.Int).Exp(big.NewInt(int64(radix)), big.NewInt(int64(f.length)), nil)
	return f.value.Cmp(limit) < 0
}

// NumeralCount returns the length of the numeral string.
func (f *FlexibleNumeralString) NumeralCount() int { return f.length }

// Split implements subtle.NumeralString.
func (f *FlexibleNumeralString) Split() (subtle.Operations, subtle.Operations) {
	digits := f.Digits()
	u := f.length / 2
	v := f.length - u
	a := &flexibleOps{radix: f.radix, value: digitsToBig(digits[:u], f.radix), length: u}
	b := &flexibleOps{radix: f.radix, value: digitsToBig(digits[u:], f.radix), length: v}
	return a, b
}

// Concat implements subtle.NumeralString.
func (f *FlexibleNumeralString) Concat(a, b subtle.Operations) subtle.NumeralString {
	ao := a.(*flexibleOps)
	bo := b.(*flexibleOps)
	radixPowV := new(big.Int).Exp(big.NewInt(int64(ao.radix)), big.NewInt(int64(bo.length)), nil)
	value := new(big.Int).Mul(ao.value, radixPowV)
	value.Add(value, bo.value)
	return &FlexibleNumeralString{radix: ao.radix, value: value, length: ao.length + bo.length}
}

// flexibleOps is the Operations half produced by FlexibleNumeralString.Split.
type flexibleOps struct {
	radix  uint32
	value  *big.Int
	length int
}

func (o *flexibleOps) NumeralCount() int { return o.length }

func (o *flexibleOps) ToBEBytes(radix uint32, b int) []byte {
	return bigToBEBytes(o.value, b)
}

func (o *flexibleOps) AddModExp(s io.ByteReader, radix uint32, m int) subtle.Operations {
	y := new(big.Int).SetBytes(readAllBytes(s))
	mod := radixPow(radix, m)
	c := new(big.Int).Add(o.value, y)
	c.Mod(c, mod)
	return &flexibleOps{radix: radix, value: c, length: m}
}

func (o *flexibleOps) SubModExp(s io.ByteReader, radix uint32, m int) subtle.Operations {
	y := new(big.Int).SetBytes(readAllBytes(s))
	mod := radixPow(radix, m)
	c := new(big.Int).Sub(o.value, y)
	c.Mod(c, mod)
	return &flexibleOps{radix: radix, value: c, length: m}
}

func radixPow(radix uint32, m int) *big.Int {
	return new(big.Int).Exp(big.NewInt(int64(radix)), big.NewInt(int64(m)), nil)
}

func digitsToBig(digits []uint16, radix uint32) *big.Int {
	value := new(big.Int)
	r := big.NewInt(int64(radix))
	for _, d := range digits {
		value.Mul(value, r)
		value.Add(value, big.NewInt(int64(d)))
	}
	return value
}

func bigToDigits(x *big.Int, radix uint32, length int) []uint16 {
	digits := make([]uint16, length)
	tmp := new(big.Int).Set(x)
	r := big.NewInt(int64(radix))
	mod := new(big.Int)
	for i := length - 1; i >= 0; i-- {
		tmp.DivMod(tmp, r, mod)
		digits[i] = uint16(mod.Int64())
	}
	return digits
}

func bigToBEBytes(x *big.Int, b int) []byte {
	raw := x.Bytes()
	out := make([]byte, b)
	if len(raw) > b {
		raw = raw[len(raw)-b:]
	}
	copy(out[b-len(raw):], raw)
	return out
}

// readAllBytes drains s, which the Feistel driver guarantees is a
// bounded-length stream (the S-expander), into a single byte slice.
func readAllBytes(s io.ByteReader) []byte {
	var buf []byte
	for {
		b, err := s.ReadByte()
		if err != nil {
			return buf
		}
		buf = append(buf, b)
	}
}
