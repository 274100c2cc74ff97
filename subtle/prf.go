package subtle

import "crypto/cipher"

// prf implements CBC-MAC with a zero IV over the engine's block cipher, as
// used by FF1's round function. It is fed the common prefix P || tweak ||
// padding once, then cloned per round so only the round-specific suffix
// needs to be absorbed afterwards.
type prf struct {
	block  cipher.Block
	state  [16]byte
	buf    [16]byte
	offset int
}

func newPRF(block cipher.Block) *prf {
	return &prf{block: block}
}

// update absorbs data into the running CBC-MAC, encrypting every full
// 16-byte block it completes.
func (p *prf) update(data []byte) {
	for len(data) > 0 {
		n := copy(p.buf[p.offset:], data)
		p.offset += n
		data = data[n:]

		if p.offset == len(p.buf) {
			for i := range p.buf {
				p.buf[i] ^= p.state[i]
			}
			p.block.Encrypt(p.state[:], p.buf[:])
			p.offset = 0
		}
	}
}

// clone returns an independent copy of the current state, used to
// checkpoint the PRF after the common prefix.
func (p *prf) clone() *prf {
	c := *p
	return &c
}

// output returns the current 16-byte MAC. The caller must ensure update
// has only ever been called with data totaling a multiple of 16 bytes.
func (p *prf) output() [16]byte {
	if p.offset != 0 {
		panic("subtle: prf.output called with a partial block buffered")
	}
	return p.state
}
