package subtle

import "io"

// Operations is the type returned by NumeralString.Split: the arithmetic
// surface the Feistel driver needs on one half of a numeral string.
//
// Implementations are free to back this with whatever representation is
// efficient for the radix in question (see the numeral package), as long
// as NUM_radix/STR_radix agree with the semantics below.
type Operations interface {
	// NumeralCount returns the number of numerals held by this half.
	NumeralCount() int

	// ToBEBytes returns the big-endian base-256 encoding of
	// NUM_radix(self), padded or truncated to exactly b bytes. This is
	// STR^b_256(NUM_radix(X)) in NIST SP 800-38G's notation.
	ToBEBytes(radix uint32, b int) []byte

	// AddModExp computes (NUM_radix(self) + NUM_256(s)) mod radix^m and
	// returns an Operations of length m whose NUM_radix equals that
	// residue. s is consumed exactly once, in order; callers must not
	// require random access into it.
	AddModExp(s io.ByteReader, radix uint32, m int) Operations

	// SubModExp computes (NUM_radix(self) - NUM_256(s)) mod radix^m,
	// otherwise identical to AddModExp.
	SubModExp(s io.ByteReader, radix uint32, m int) Operations
}

// NumeralString is a finite, ordered sequence of values in [0, radix) that
// the Feistel driver can encrypt or decrypt in place.
type NumeralString interface {
	// IsValid reports whether every numeral in this string is in
	// [0, radix).
	IsValid(radix uint32) bool

	// NumeralCount returns the length of the numeral string.
	NumeralCount() int

	// Split returns two Operations of lengths u = floor(n/2) and
	// v = n - u.
	Split() (a, b Operations)

	// Concat is the inverse of Split: it reassembles a NumeralString of
	// the same concrete type from two Operations halves. It is a method
	// (rather than a free function keyed on a type parameter) so that the
	// Feistel driver can stay a simple interface consumer; the receiver's
	// own numerals are never read.
	Concat(a, b Operations) NumeralString
}
