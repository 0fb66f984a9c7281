// poly.go - Kyber polynomial.
//
// To the extent possible under law, Yawning Angel has waived all copyright
// and related or neighboring rights to the software, using the Creative
// Commons "CC0" public domain dedication. See LICENSE or
// <http://creativecommons.org/publicdomain/zero/1.0/> for full details.

package kyber

// Elements of R_q = Z_q[X]/(X^n + 1). Represents polynomial coeffs[0] +
// X*coeffs[1] + X^2*coeffs[2] + ... + X^{n-1}*coeffs[n-1]. Coefficients are
// signed and not required to be canonical (ie in [0,q)) except immediately
// before serialization.
type poly struct {
	coeffs [kyberN]int16
}

// toPos maps c, assumed to lie in (-kyberQ, kyberQ), to its non-negative
// standard representative in [0, kyberQ).
func toPos(c int16) uint16 {
	c += (c >> 15) & kyberQ
	return uint16(c)
}

// reduce applies Barrett reduction to every coefficient, bringing them back
// into [-(q-1), q-1] after operations (such as the forward NTT) that let
// coefficients grow.
func (p *poly) reduce() {
	for i := range p.coeffs {
		p.coeffs[i] = barrettReduce(p.coeffs[i])
	}
}

// compressValue maps a canonical coefficient x in [0,q) onto a d-bit value,
// using the fixed-point approximation of (2^d/q)*x mandated for
// interoperability. The (m,e) pair differs by bit width: the d=10/11 pair
// needs a 64-bit intermediate to stay exact up to (q<<11)+q/2, while the
// d=4/5 pair uses a narrower, only-locally-exact approximation that still
// lands on the correct bucket for every coefficient in [0,q).
func compressValue(x uint16, d int) uint32 {
	var m uint64
	var e uint
	switch d {
	case 10, 11:
		m, e = 20642678, 36
	case 4, 5:
		m, e = 315, 20
	default:
		panic("kyber: invalid compression width")
	}
	t := (uint64(x)<<uint(d) + kyberQ/2) * m >> e
	return uint32(t) & ((1 << uint(d)) - 1)
}

// decompressValue is the approximate inverse of compressValue.
func decompressValue(y uint32, d int) int16 {
	return int16((uint32(kyberQ)*y + (1 << uint(d-1))) >> uint(d))
}

// packBits packs len(vals) d-bit values into out, LSB-first across the byte
// stream (the bit layout the Kyber reference produces via its unrolled,
// fixed-d packing loops for d in {4,5,10,11}).
func packBits(out []byte, vals []uint32, d int) {
	var acc uint32
	var accBits uint
	pos := 0
	for _, v := range vals {
		acc |= v << accBits
		accBits += uint(d)
		for accBits >= 8 {
			out[pos] = byte(acc)
			pos++
			acc >>= 8
			accBits -= 8
		}
	}
	if accBits > 0 {
		out[pos] = byte(acc)
	}
}

// unpackBits is the inverse of packBits.
func unpackBits(vals []uint32, in []byte, d int) {
	var acc uint32
	var accBits uint
	pos := 0
	mask := uint32(1)<<uint(d) - 1
	for i := range vals {
		for accBits < uint(d) {
			acc |= uint32(in[pos]) << accBits
			pos++
			accBits += 8
		}
		vals[i] = acc & mask
		acc >>= uint(d)
		accBits -= uint(d)
	}
}

// compress compresses and serializes a polynomial to d bits per coefficient.
func (p *poly) compress(r []byte, d int) {
	var vals [kyberN]uint32
	for i, c := range p.coeffs {
		vals[i] = compressValue(toPos(barrettReduce(c)), d)
	}
	packBits(r, vals[:], d)
}

// decompress de-serializes and decompresses a polynomial from d bits per
// coefficient; approximate inverse of poly.compress.
func (p *poly) decompress(a []byte, d int) {
	var vals [kyberN]uint32
	unpackBits(vals[:], a, d)
	for i, v := range vals {
		p.coeffs[i] = decompressValue(v, d)
	}
}

// toBytes serializes a polynomial, 12 bits per coefficient.
func (p *poly) toBytes(r []byte) {
	for i := 0; i < kyberN/2; i++ {
		t0 := toPos(barrettReduce(p.coeffs[2*i]))
		t1 := toPos(barrettReduce(p.coeffs[2*i+1]))
		r[3*i+0] = byte(t0)
		r[3*i+1] = byte((t0 >> 8) | (t1 << 4))
		r[3*i+2] = byte(t1 >> 4)
	}
}

// fromBytes de-serializes a polynomial; inverse of poly.toBytes().
func (p *poly) fromBytes(a []byte) {
	for i := 0; i < kyberN/2; i++ {
		t0 := uint16(a[3*i+0]) | (uint16(a[3*i+1]&0x0f) << 8)
		t1 := uint16(a[3*i+1]>>4) | (uint16(a[3*i+2]) << 4)
		p.coeffs[2*i+0] = int16(t0)
		p.coeffs[2*i+1] = int16(t1)
	}
}

//go:noinline
func msgBitMask(v byte, j uint) int16 {
	// Kept behind a noinline call boundary so the compiler cannot fold the
	// mask computation into a branch on the message bit: a branch here
	// would turn poly.fromMsg into a key-bit timing oracle. This is the
	// closest Go equivalent of the volatile-read barrier the reference
	// implementation uses for the same purpose.
	return -int16((v >> j) & 1)
}

// fromMsg converts a 32-byte message to a polynomial, each bit b mapping to
// coefficient b*ceil(q/2).
func (p *poly) fromMsg(msg []byte) {
	const halfQ = (kyberQ + 1) / 2
	for i, v := range msg[:SymSize] {
		for j := 0; j < 8; j++ {
			p.coeffs[8*i+j] = msgBitMask(v, uint(j)) & halfQ
		}
	}
}

// toMsg converts a polynomial to a 32-byte message, rounding each
// coefficient to the nearest of {0, ceil(q/2)}.
func (p *poly) toMsg(msg []byte) {
	for i := 0; i < SymSize; i++ {
		msg[i] = 0
		for j := 0; j < 8; j++ {
			a := uint32(toPos(barrettReduce(p.coeffs[8*i+j])))
			t := (2*a + 1665) * 80635 >> 28
			msg[i] |= byte((t & 1) << uint(j))
		}
	}
}

// getNoise samples a polynomial deterministically from a seed and a nonce,
// with output close to a centered binomial distribution with parameter eta.
func (p *poly) getNoise(seed []byte, nonce byte, eta int) {
	buf := make([]byte, eta*kyberN/4)
	prf(buf, seed, nonce)
	p.cbd(buf, eta)
}

// ntt computes the negacyclic NTT of a polynomial in place; inputs assumed
// to be in normal order, output in bitreversed order.
func (p *poly) ntt() {
	nttRef(&p.coeffs)
	p.reduce()
}

// invntt computes the inverse NTT of a polynomial in place; inputs assumed
// to be in bitreversed order, output in normal order.
func (p *poly) invntt() {
	invnttRef(&p.coeffs)
}

// add adds two polynomials.
func (p *poly) add(a, b *poly) {
	for i := range p.coeffs {
		p.coeffs[i] = a.coeffs[i] + b.coeffs[i]
	}
}

// sub subtracts two polynomials.
func (p *poly) sub(a, b *poly) {
	for i := range p.coeffs {
		p.coeffs[i] = a.coeffs[i] - b.coeffs[i]
	}
}

// baseMul computes the pointwise product, in the NTT domain, of a and b.
func (p *poly) baseMul(a, b *poly) {
	for i := 0; i < kyberN/4; i++ {
		basemul2(p.coeffs[4*i:4*i+2], a.coeffs[4*i:4*i+2], b.coeffs[4*i:4*i+2], zetas[64+i])
		basemul2(p.coeffs[4*i+2:4*i+4], a.coeffs[4*i+2:4*i+4], b.coeffs[4*i+2:4*i+4], -zetas[64+i])
	}
}
