// cbd.go - Centered binomial distribution.
//
// To the extent possible under law, Yawning Angel has waived all copyright
// and related or neighboring rights to the software, using the Creative
// Commons "CC0" public domain dedication. See LICENSE or
// <http://creativecommons.org/publicdomain/zero/1.0/> for full details.

package kyber

// Load bytes into a 64-bit integer in little-endian order.
func loadLittleEndian(x []byte, bytes int) uint64 {
	var r uint64
	for i, v := range x[:bytes] {
		r |= uint64(v) << (8 * uint(i))
	}
	return r
}

// Given an array of uniformly random bytes, compute polynomial with
// coefficients distributed according to a centered binomial distribution
// with parameter eta. Entirely bit-parallel: no branch or memory access is
// indexed by the (secret-derived) PRF output.
func (p *poly) cbd(buf []byte, eta int) {
	switch eta {
	case 2:
		var d uint32
		for i := 0; i < kyberN/8; i++ {
			t := uint32(loadLittleEndian(buf[4*i:], 4))
			d = t & 0x55555555
			d += (t >> 1) & 0x55555555

			for j := 0; j < 8; j++ {
				a := int16((d >> (4*uint(j) + 0)) & 0x3)
				b := int16((d >> (4*uint(j) + 2)) & 0x3)
				p.coeffs[8*i+j] = a - b
			}
		}
	case 3:
		var d uint32
		for i := 0; i < kyberN/4; i++ {
			t := uint32(loadLittleEndian(buf[3*i:], 3))
			d = t & 0x00249249
			d += (t >> 1) & 0x00249249
			d += (t >> 2) & 0x00249249

			for j := 0; j < 4; j++ {
				a := int16((d >> (6*uint(j) + 0)) & 0x7)
				b := int16((d >> (6*uint(j) + 3)) & 0x7)
				p.coeffs[4*i+j] = a - b
			}
		}
	default:
		panic("kyber: eta must be in {2,3}")
	}
}
