// symmetric.go - Symmetric primitives backing the KEM and the AKE layer.
//
// To the extent possible under law, Yawning Angel has waived all copyright
// and related or neighboring rights to the software, using the Creative
// Commons "CC0" public domain dedication. See LICENSE or
// <http://creativecommons.org/publicdomain/zero/1.0/> for full details.

package kyber

import "golang.org/x/crypto/sha3"

// hG is the "G" function: SHA3-512, used to derive (ρ,σ) from the keygen
// seed and (K̄,r) from (m, H(pk)) during encapsulation.
func hG(out, seed []byte) {
	h := sha3.Sum512(seed)
	copy(out, h[:])
}

// hH is the "H" function: SHA3-256, used for H(pk) and for the rejection
// hash H(z‖c).
func hH(out, in []byte) {
	h := sha3.Sum256(in)
	copy(out, h[:])
}

// prf is the pseudorandom function used to expand a noise seed and a nonce
// into CBD sampling material: SHAKE-256.
func prf(out, seed []byte, nonce byte) {
	h := sha3.NewShake256()
	h.Write(seed)
	h.Write([]byte{nonce})
	h.Read(out)
}

// kdf derives session-level key material for the AKE layer only; the base
// KEM never calls this (its shared secret is K̄ directly, see kem.go).
func kdf(out []byte, parts ...[]byte) {
	h := sha3.NewShake256()
	for _, p := range parts {
		h.Write(p)
	}
	h.Read(out)
}

// xofAbsorb returns a SHAKE-128 instance absorbed with the matrix seed and
// the two coordinate bytes genMatrix uses to index A[i][j], ready to be
// squeezed for rejection-sampled uniform coefficients.
func xofAbsorb(seed []byte, i, j byte) sha3.ShakeHash {
	h := sha3.NewShake128()
	h.Write(seed)
	h.Write([]byte{i, j})
	return h
}
