// ntt.go - Number-Theoretic Transform.
//
// To the extent possible under law, Yawning Angel has waived all copyright
// and related or neighboring rights to the software, using the Creative
// Commons "CC0" public domain dedication. See LICENSE or
// <http://creativecommons.org/publicdomain/zero/1.0/> for full details.

package kyber

// Computes negacyclic number-theoretic transform (NTT) of a polynomial
// (vector of 256 coefficients) in place; inputs assumed to be in normal
// order, output in bitreversed order. Coefficients may grow beyond [0,q)
// across the seven butterfly levels; callers needing canonical output call
// poly.reduce afterwards.
func nttRef(p *[kyberN]int16) {
	k := 1
	for length := 128; length >= 2; length >>= 1 {
		for start := 0; start < kyberN; start += 2 * length {
			zeta := zetas[k]
			k++
			for j := start; j < start+length; j++ {
				t := montgomeryReduce(int32(zeta) * int32(p[j+length]))
				p[j+length] = p[j] - t
				p[j] = p[j] + t
			}
		}
	}
}

// Computes the inverse of the negacyclic NTT of a polynomial in place;
// inputs assumed to be in bitreversed order, output in normal order and
// still in the Montgomery domain (poly.invntt undoes that scaling via the
// final pass below).
func invnttRef(p *[kyberN]int16) {
	k := 127
	for length := 2; length <= 128; length <<= 1 {
		for start := 0; start < kyberN; start += 2 * length {
			zeta := zetas[k]
			k--
			for j := start; j < start+length; j++ {
				t := p[j]
				p[j] = barrettReduce(t + p[j+length])
				p[j+length] = t - p[j+length]
				p[j+length] = montgomeryReduce(int32(zeta) * int32(p[j+length]))
			}
		}
	}

	for j := range p {
		p[j] = montgomeryReduce(int32(p[j]) * int32(invNttDomainFactor))
	}
}

// basemul2 multiplies two degree-1 polynomials a0+a1*X and b0+b1*X modulo
// (X^2 - zeta) and writes the degree-0 and degree-1 coefficients of the
// product into r.
func basemul2(r, a, b []int16, zeta int16) {
	r[0] = montgomeryReduce(int32(a[1]) * int32(b[1]))
	r[0] = montgomeryReduce(int32(r[0]) * int32(zeta))
	r[0] += montgomeryReduce(int32(a[0]) * int32(b[0]))

	r[1] = montgomeryReduce(int32(a[0]) * int32(b[1]))
	r[1] += montgomeryReduce(int32(a[1]) * int32(b[0]))
}
