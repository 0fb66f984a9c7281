// polyvec.go - Vector of Kyber polynomials.
//
// To the extent possible under law, Yawning Angel has waived all copyright
// and related or neighboring rights to the software, using the Creative
// Commons "CC0" public domain dedication. See LICENSE or
// <http://creativecommons.org/publicdomain/zero/1.0/> for full details.

package kyber

import "golang.org/x/crypto/sha3"

type polyVec struct {
	vec []*poly
}

// compress compresses and serializes a vector of polynomials, du bits per
// coefficient.
func (v *polyVec) compress(r []byte, du int) {
	stride := du * kyberN / 8
	for i, p := range v.vec {
		p.compress(r[i*stride:], du)
	}
}

// decompress de-serializes and decompresses a vector of polynomials;
// approximate inverse of polyVec.compress.
func (v *polyVec) decompress(a []byte, du int) {
	stride := du * kyberN / 8
	for i, p := range v.vec {
		p.decompress(a[i*stride:], du)
	}
}

// toBytes serializes a vector of polynomials.
func (v *polyVec) toBytes(r []byte) {
	for i, p := range v.vec {
		p.toBytes(r[i*polySize:])
	}
}

// fromBytes de-serializes a vector of polynomials; inverse of
// polyVec.toBytes().
func (v *polyVec) fromBytes(a []byte) {
	for i, p := range v.vec {
		p.fromBytes(a[i*polySize:])
	}
}

// ntt applies the forward NTT to every element of a vector of polynomials.
func (v *polyVec) ntt() {
	for _, p := range v.vec {
		p.ntt()
	}
}

// invntt applies the inverse NTT to every element of a vector of
// polynomials.
func (v *polyVec) invntt() {
	for _, p := range v.vec {
		p.invntt()
	}
}

// add adds two vectors of polynomials.
func (v *polyVec) add(a, b *polyVec) {
	for i, p := range v.vec {
		p.add(a.vec[i], b.vec[i])
	}
}

// compressedSize returns the compressed and serialized size in bytes, du
// bits per coefficient.
func (v *polyVec) compressedSize(du int) int {
	return len(v.vec) * (du * kyberN / 8)
}

// dot computes the inner product <a,b> in the NTT domain, reducing the
// accumulator back to canonical range once at the end rather than after
// each term.
func (p *poly) dot(a, b *polyVec) {
	var t poly
	p.baseMul(a.vec[0], b.vec[0])
	for i := 1; i < len(a.vec); i++ {
		t.baseMul(a.vec[i], b.vec[i])
		p.add(p, &t)
	}
	p.reduce()
}

// genMatrix deterministically expands a public seed into a k*k matrix of
// uniform polynomials (or its transpose), via rejection sampling on the
// output of SHAKE-128.
func genMatrix(a []polyVec, seed []byte, transposed bool) {
	const (
		shake128Rate = 168 // xof.BlockSize() is not a constant.
		maxBlocks    = 4
	)
	var buf [shake128Rate * maxBlocks]byte

	for i, v := range a {
		for j, p := range v.vec {
			var xof sha3.ShakeHash
			if transposed {
				xof = xofAbsorb(seed, byte(i), byte(j))
			} else {
				xof = xofAbsorb(seed, byte(j), byte(i))
			}
			xof.Read(buf[:])

			for ctr, pos, maxPos := 0, 0, len(buf); ctr < kyberN; {
				val := uint16(buf[pos]) | (uint16(buf[pos+1]) << 8)
				val &= 0x0fff
				if val < kyberQ {
					p.coeffs[ctr] = int16(val)
					ctr++
				}
				if pos += 2; pos == maxPos {
					// On the unlikely chance 4 blocks is insufficient,
					// incrementally squeeze out 1 block at a time.
					xof.Read(buf[:shake128Rate])
					pos, maxPos = 0, shake128Rate
				}
			}
		}
	}
}
