// indcpa.go - Kyber IND-CPA encryption.
//
// To the extent possible under law, Yawning Angel has waived all copyright
// and related or neighboring rights to the software, using the Creative
// Commons "CC0" public domain dedication. See LICENSE or
// <http://creativecommons.org/publicdomain/zero/1.0/> for full details.

package kyber

import "io"

// packPublicKey serializes the public key as the concatenation of the
// serialized vector of polynomials pk and the public seed used to generate
// the matrix A.
func packPublicKey(r []byte, pk *polyVec, seed []byte) {
	pk.toBytes(r)
	copy(r[pk.compressedVecSize():], seed[:SymSize])
}

func (v *polyVec) compressedVecSize() int {
	return len(v.vec) * polySize
}

// unpackPublicKey de-serializes a public key from a byte array; approximate
// inverse of packPublicKey.
func unpackPublicKey(pk *polyVec, seed, packedPk []byte) {
	pk.fromBytes(packedPk)

	off := pk.compressedVecSize()
	copy(seed, packedPk[off:off+SymSize])
}

// packCiphertext serializes the ciphertext as the concatenation of the
// compressed vector of polynomials b (d_u bits/coefficient) and the
// compressed polynomial v (d_v bits/coefficient).
func packCiphertext(r []byte, b *polyVec, v *poly, du, dv int) {
	b.compress(r, du)
	v.compress(r[b.compressedSize(du):], dv)
}

// unpackCiphertext de-serializes and decompresses a ciphertext from a byte
// array; approximate inverse of packCiphertext.
func unpackCiphertext(b *polyVec, v *poly, c []byte, du, dv int) {
	b.decompress(c, du)
	v.decompress(c[b.compressedSize(du):], dv)
}

// packSecretKey serializes the secret key.
func packSecretKey(r []byte, sk *polyVec) {
	sk.toBytes(r)
}

// unpackSecretKey de-serializes the secret key; inverse of packSecretKey.
func unpackSecretKey(sk *polyVec, packedSk []byte) {
	sk.fromBytes(packedSk)
}

type indcpaPublicKey struct {
	packed []byte
	h      [32]byte
}

func (pk *indcpaPublicKey) toBytes() []byte {
	return pk.packed
}

func (pk *indcpaPublicKey) fromBytes(p *ParameterSet, b []byte) error {
	if len(b) != p.indcpaPublicKeySize {
		return ErrInvalidInput
	}

	pk.packed = make([]byte, len(b))
	copy(pk.packed, b)
	hH(pk.h[:], b)

	return nil
}

type indcpaSecretKey struct {
	packed []byte
}

func (sk *indcpaSecretKey) fromBytes(p *ParameterSet, b []byte) error {
	if len(b) != p.indcpaSecretKeySize {
		return ErrInvalidInput
	}

	sk.packed = make([]byte, len(b))
	copy(sk.packed, b)

	return nil
}

// indcpaKeyPairDerand generates a public/private key pair for the
// CPA-secure public-key encryption scheme underlying Kyber from a caller
// supplied 32-byte seed, for deterministic (KAT-reproducible) keygen.
func (p *ParameterSet) indcpaKeyPairDerand(seed []byte) (*indcpaPublicKey, *indcpaSecretKey) {
	sk := &indcpaSecretKey{packed: make([]byte, p.indcpaSecretKeySize)}
	pk := &indcpaPublicKey{packed: make([]byte, p.indcpaPublicKeySize)}

	var expanded [2 * SymSize]byte
	hG(expanded[:], seed)
	publicSeed, noiseSeed := expanded[:SymSize], expanded[SymSize:]

	a := p.allocMatrix()
	genMatrix(a, publicSeed, false)

	var nonce byte
	skpv := p.allocPolyVec()
	for _, pv := range skpv.vec {
		pv.getNoise(noiseSeed, nonce, p.eta1)
		nonce++
	}

	skpv.ntt()

	e := p.allocPolyVec()
	for _, pv := range e.vec {
		pv.getNoise(noiseSeed, nonce, p.eta1)
		nonce++
	}

	// matrix-vector multiplication: pkpv = A*s + e
	pkpv := p.allocPolyVec()
	for i, pv := range pkpv.vec {
		pv.dot(&a[i], &skpv)
	}

	pkpv.invntt()
	pkpv.add(&pkpv, &e)

	packSecretKey(sk.packed, &skpv)
	packPublicKey(pk.packed, &pkpv, publicSeed)
	hH(pk.h[:], pk.packed)

	return pk, sk
}

// indcpaKeyPair generates a random public/private key pair for the
// CPA-secure public-key encryption scheme underlying Kyber.
func (p *ParameterSet) indcpaKeyPair(rng io.Reader) (*indcpaPublicKey, *indcpaSecretKey, error) {
	seed := make([]byte, SymSize)
	if _, err := io.ReadFull(rng, seed); err != nil {
		return nil, nil, err
	}

	pk, sk := p.indcpaKeyPairDerand(seed)
	return pk, sk, nil
}

// indcpaEncrypt is the encryption function of the CPA-secure public-key
// encryption scheme underlying Kyber.
func (p *ParameterSet) indcpaEncrypt(c, m []byte, pk *indcpaPublicKey, coins []byte) {
	var k, v, epp poly
	var seed [SymSize]byte

	pkpv := p.allocPolyVec()
	unpackPublicKey(&pkpv, seed[:], pk.packed)

	k.fromMsg(m)

	pkpv.ntt()

	at := p.allocMatrix()
	genMatrix(at, seed[:], true)

	var nonce byte
	sp := p.allocPolyVec()
	for _, pv := range sp.vec {
		pv.getNoise(coins, nonce, p.eta1)
		nonce++
	}

	sp.ntt()

	ep := p.allocPolyVec()
	for _, pv := range ep.vec {
		pv.getNoise(coins, nonce, eta2)
		nonce++
	}

	// matrix-vector multiplication: bp = At*sp + ep
	bp := p.allocPolyVec()
	for i, pv := range bp.vec {
		pv.dot(&at[i], &sp)
	}

	bp.invntt()
	bp.add(&bp, &ep)

	epp.getNoise(coins, nonce, eta2)

	v.dot(&pkpv, &sp)
	v.invntt()

	v.add(&v, &epp)
	v.add(&v, &k)

	packCiphertext(c, &bp, &v, p.du, p.dv)
}

// indcpaDecrypt is the decryption function of the CPA-secure public-key
// encryption scheme underlying Kyber.
func (p *ParameterSet) indcpaDecrypt(m, c []byte, sk *indcpaSecretKey) {
	var v, mp poly

	skpv, bp := p.allocPolyVec(), p.allocPolyVec()
	unpackCiphertext(&bp, &v, c, p.du, p.dv)
	unpackSecretKey(&skpv, sk.packed)

	bp.ntt()

	mp.dot(&skpv, &bp)
	mp.invntt()

	mp.sub(&v, &mp)

	mp.toMsg(m)
}

func (p *ParameterSet) allocMatrix() []polyVec {
	m := make([]polyVec, 0, p.k)
	for i := 0; i < p.k; i++ {
		m = append(m, p.allocPolyVec())
	}
	return m
}

func (p *ParameterSet) allocPolyVec() polyVec {
	vec := make([]*poly, 0, p.k)
	for i := 0; i < p.k; i++ {
		vec = append(vec, new(poly))
	}

	return polyVec{vec}
}
