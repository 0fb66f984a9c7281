// kem.go - Kyber key encapsulation mechanism.
//
// To the extent possible under law, Yawning Angel has waived all copyright
// and related or neighboring rights to the software, using the Creative
// Commons "CC0" public domain dedication. See LICENSE or
// <http://creativecommons.org/publicdomain/zero/1.0/> for full details.

package kyber

import (
	"bytes"
	"crypto/subtle"
	"io"
)

// PrivateKey is a Kyber private key.
type PrivateKey struct {
	PublicKey
	sk *indcpaSecretKey
	z  []byte
}

// Bytes returns the byte serialization of a PrivateKey, laid out as
// CPA-secret-key ‖ public-key ‖ H(public-key) ‖ z.
func (sk *PrivateKey) Bytes() []byte {
	p := sk.PublicKey.p

	b := make([]byte, 0, p.secretKeySize)
	b = append(b, sk.sk.packed...)
	b = append(b, sk.PublicKey.pk.packed...)
	b = append(b, sk.PublicKey.pk.h[:]...)
	b = append(b, sk.z...)

	return b
}

// PrivateKeyFromBytes deserializes a byte serialized PrivateKey.
func (p *ParameterSet) PrivateKeyFromBytes(b []byte) (*PrivateKey, error) {
	if len(b) != p.secretKeySize {
		return nil, ErrInvalidInput
	}

	sk := new(PrivateKey)
	sk.sk = new(indcpaSecretKey)
	sk.z = make([]byte, SymSize)
	sk.PublicKey.pk = new(indcpaPublicKey)
	sk.PublicKey.p = p

	off := p.indcpaSecretKeySize
	if err := sk.PublicKey.pk.fromBytes(p, b[off:off+p.publicKeySize]); err != nil {
		return nil, err
	}
	off += p.publicKeySize
	if !bytes.Equal(sk.PublicKey.pk.h[:], b[off:off+SymSize]) {
		return nil, ErrInvalidInput
	}
	off += SymSize
	copy(sk.z, b[off:])

	if err := sk.sk.fromBytes(p, b[:p.indcpaSecretKeySize]); err != nil {
		return nil, err
	}

	return sk, nil
}

// PublicKey is a Kyber public key.
type PublicKey struct {
	pk *indcpaPublicKey
	p  *ParameterSet
}

// Bytes returns the byte serialization of a PublicKey.
func (pk *PublicKey) Bytes() []byte {
	return pk.pk.toBytes()
}

// PublicKeyFromBytes deserializes a byte serialized PublicKey.
func (p *ParameterSet) PublicKeyFromBytes(b []byte) (*PublicKey, error) {
	pk := &PublicKey{
		pk: new(indcpaPublicKey),
		p:  p,
	}

	if err := pk.pk.fromBytes(p, b); err != nil {
		return nil, err
	}

	return pk, nil
}

// GenerateKeyPair generates a private and public key parameterized with the
// given ParameterSet, using rng as the entropy source.
func (p *ParameterSet) GenerateKeyPair(rng io.Reader) (*PublicKey, *PrivateKey, error) {
	z := make([]byte, SymSize)
	if _, err := io.ReadFull(rng, z); err != nil {
		return nil, nil, err
	}

	indcpaPk, indcpaSk, err := p.indcpaKeyPair(rng)
	if err != nil {
		return nil, nil, err
	}

	kp := &PrivateKey{sk: indcpaSk, z: z}
	kp.PublicKey.pk = indcpaPk
	kp.PublicKey.p = p

	return &kp.PublicKey, kp, nil
}

// GenerateKeyPairDerand deterministically generates a private and public
// key from caller-supplied 32-byte coins, one feeding the CPA-secure keygen
// and one becoming the implicit-rejection value z. Intended for
// reproducing known-answer test vectors, not for general use.
func (p *ParameterSet) GenerateKeyPairDerand(coinsD, coinsZ []byte) (*PublicKey, *PrivateKey, error) {
	if len(coinsD) != SymSize || len(coinsZ) != SymSize {
		return nil, nil, ErrInvalidInput
	}

	indcpaPk, indcpaSk := p.indcpaKeyPairDerand(coinsD)

	z := make([]byte, SymSize)
	copy(z, coinsZ)

	kp := &PrivateKey{sk: indcpaSk, z: z}
	kp.PublicKey.pk = indcpaPk
	kp.PublicKey.p = p

	return &kp.PublicKey, kp, nil
}

// Encapsulate generates a ciphertext and shared secret via the CCA2-secure
// Kyber key encapsulation mechanism, using rng as the entropy source.
func (pk *PublicKey) Encapsulate(rng io.Reader) (ct, ss []byte, err error) {
	var buf [SymSize]byte
	if _, err = io.ReadFull(rng, buf[:]); err != nil {
		return nil, nil, err
	}

	var m [SymSize]byte
	hH(m[:], buf[:]) // don't release system RNG output directly into the transcript

	ct, ss = pk.encapsulate(m[:])
	return ct, ss, nil
}

// EncapsulateDerand deterministically generates a ciphertext and shared
// secret from a caller-supplied 32-byte message, for KAT reproduction.
// Unlike Encapsulate, the message is used exactly as given, matching the
// reference KAT harness convention that the derandomized entry point
// receives the already-prepared message, not raw entropy.
func (pk *PublicKey) EncapsulateDerand(coins []byte) (ct, ss []byte) {
	return pk.encapsulate(coins)
}

func (pk *PublicKey) encapsulate(m []byte) (ct, ss []byte) {
	var kr [2 * SymSize]byte
	var preimage [2 * SymSize]byte
	copy(preimage[:SymSize], m)
	copy(preimage[SymSize:], pk.pk.h[:])
	hG(kr[:], preimage[:])
	kBar, coinsR := kr[:SymSize], kr[SymSize:]

	ct = make([]byte, pk.p.cipherTextSize)
	pk.p.indcpaEncrypt(ct, m, pk.pk, coinsR)

	ss = make([]byte, SymSize)
	copy(ss, kBar)

	return ct, ss
}

// Decapsulate recovers the shared secret for a given ciphertext using the
// CCA2-secure Kyber key encapsulation mechanism.
//
// err is non-nil only when ct has the wrong length; a well-formed but
// forged ciphertext never produces an error; instead ss is set to the
// implicit-rejection value H(z‖ct), indistinguishable to a caller without
// the private key from a genuine shared secret.
func (sk *PrivateKey) Decapsulate(ct []byte) (ss []byte, err error) {
	p := sk.PublicKey.p
	if len(ct) != p.CipherTextSize() {
		return nil, ErrInvalidInput
	}

	var m [SymSize]byte
	p.indcpaDecrypt(m[:], ct, sk.sk)

	var kr [2 * SymSize]byte
	var preimage [2 * SymSize]byte
	copy(preimage[:SymSize], m[:])
	copy(preimage[SymSize:], sk.PublicKey.pk.h[:])
	hG(kr[:], preimage[:])
	kBar, coinsR := kr[:SymSize], kr[SymSize:]

	cmp := make([]byte, p.cipherTextSize)
	p.indcpaEncrypt(cmp, m[:], sk.PublicKey.pk, coinsR)

	var reject [SymSize]byte
	hH(reject[:], append(append([]byte{}, sk.z...), ct...))

	ok := subtle.ConstantTimeCompare(ct, cmp)
	ss = make([]byte, SymSize)
	subtle.ConstantTimeCopy(1, ss, kBar)
	subtle.ConstantTimeCopy(1-ok, ss, reject[:])

	return ss, nil
}
