// kex.go - Kyber authenticated key exchange.
//
// To the extent possible under law, Yawning Angel has waived all copyright
// and related or neighboring rights to the software, using the Creative
// Commons "CC0" public domain dedication. See LICENSE or
// <http://creativecommons.org/publicdomain/zero/1.0/> for full details.

package kyber

import (
	"bytes"
	"io"
)

// UAKESendSize returns the size in bytes of the client-to-server UAKE
// message.
func (p *ParameterSet) UAKESendSize() int {
	return p.PublicKeySize() + p.CipherTextSize()
}

// UAKESendBSize returns the size in bytes of the server-to-client UAKE
// response.
func (p *ParameterSet) UAKESendBSize() int {
	return p.CipherTextSize()
}

// Uake is an unilateral-authentication key exchange instance (the server
// is authenticated via its long-term public key, the client is anonymous).
// Each instance must be used for exactly one exchange and never reused.
type Uake struct {
	// SharedSecret is populated once the exchange completes successfully.
	SharedSecret []byte

	eSk *PrivateKey
	tk  []byte
}

// NewUake creates an empty Uake instance.
func NewUake() *Uake {
	return new(Uake)
}

// ClientInit begins the exchange: the client encapsulates to the server's
// long-term public key and generates an ephemeral keypair of its own,
// returning the message to send to the server.
func (u *Uake) ClientInit(rng io.Reader, serverPub *PublicKey) (send []byte, err error) {
	p := serverPub.p

	var ePub *PublicKey
	if ePub, u.eSk, err = p.GenerateKeyPair(rng); err != nil {
		return nil, err
	}

	var ct []byte
	if ct, u.tk, err = serverPub.Encapsulate(rng); err != nil {
		return nil, err
	}

	send = make([]byte, 0, p.UAKESendSize())
	send = append(send, ePub.Bytes()...)
	send = append(send, ct...)

	return send, nil
}

// ServerReceive consumes the client's init message using the server's
// long-term private key, and returns the response message to send back to
// the client along with the resulting shared secret.
func (u *Uake) ServerReceive(rng io.Reader, serverPriv *PrivateKey, recv []byte) (send []byte, err error) {
	p := serverPriv.PublicKey.p
	pkLen := p.PublicKeySize()

	if len(recv) != p.UAKESendSize() {
		return nil, ErrInvalidInput
	}
	rawPk, ct := recv[:pkLen], recv[pkLen:]

	ePub, err := p.PublicKeyFromBytes(rawPk)
	if err != nil {
		return nil, err
	}

	var tk1 []byte
	send, tk1, err = ePub.Encapsulate(rng)
	if err != nil {
		return nil, err
	}

	tk2, err := serverPriv.Decapsulate(ct)
	if err != nil {
		return nil, err
	}

	u.SharedSecret = make([]byte, SymSize)
	kdf(u.SharedSecret, tk1, tk2)

	return send, nil
}

// ClientConfirm consumes the server's response message, completing the
// exchange and populating SharedSecret.
func (u *Uake) ClientConfirm(recv []byte) error {
	if len(recv) != u.eSk.PublicKey.p.UAKESendBSize() {
		return ErrInvalidInput
	}

	tk1, err := u.eSk.Decapsulate(recv)
	if err != nil {
		return err
	}

	u.SharedSecret = make([]byte, SymSize)
	kdf(u.SharedSecret, tk1, u.tk)

	return nil
}

const akePayloadSize = 64

// AKESendSize returns the size in bytes of the client-to-server AKE
// message (ephemeral public key ‖ ciphertext ‖ 64-byte identity payload).
func (p *ParameterSet) AKESendSize() int {
	return p.PublicKeySize() + p.CipherTextSize() + akePayloadSize
}

// AKESendBSize returns the size in bytes of the server-to-client AKE
// response (two ciphertexts).
func (p *ParameterSet) AKESendBSize() int {
	return 2 * p.CipherTextSize()
}

// AkeOptions configures the optional client-identity payload carried by the
// AKE client-init message.
type AkeOptions struct {
	// SecurePayload selects AEAD sealing (chacha20poly1305, keyed by
	// KDF(tk, "ake-payload")) for the identity payload instead of the
	// default XOR-with-tk construction. The XOR mode is kept as the
	// default for wire compatibility with the literal construction the
	// exchange was specified with; callers that control both ends of the
	// exchange should set this.
	SecurePayload bool
}

// Ake is a mutually-authenticated key exchange instance. Each instance must
// be used for exactly one exchange and never reused.
type Ake struct {
	// SharedSecret is populated once the exchange completes successfully.
	SharedSecret []byte
	// TempKey is the client's ephemeral encapsulation key material,
	// retained between ClientSend and ClientConfirm.
	TempKey []byte

	eSk  *PrivateKey
	tk   []byte
	opts AkeOptions
}

// NewAke creates an empty Ake instance with the given options.
func NewAke(opts AkeOptions) *Ake {
	return &Ake{opts: opts}
}

// ClientSend begins the exchange: the client encapsulates to the server's
// long-term public key, generates an ephemeral keypair, and attaches a
// 64-byte identity payload masked (or, with AkeOptions.SecurePayload,
// AEAD-sealed) under the resulting temporary key.
func (a *Ake) ClientSend(rng io.Reader, serverPub *PublicKey, clientIdentity []byte) (send []byte, err error) {
	if len(clientIdentity) > 32 {
		return nil, ErrInvalidInput
	}

	p := serverPub.p

	var ePub *PublicKey
	if ePub, a.eSk, err = p.GenerateKeyPair(rng); err != nil {
		return nil, err
	}

	var ct []byte
	if ct, a.tk, err = serverPub.Encapsulate(rng); err != nil {
		return nil, err
	}

	var ident [32]byte
	copy(ident[:], clientIdentity)

	payload, err := sealAkePayload(a.opts, a.tk, ident[:])
	if err != nil {
		return nil, err
	}

	a.TempKey = a.tk

	send = make([]byte, 0, p.AKESendSize())
	send = append(send, ePub.Bytes()...)
	send = append(send, ct...)
	send = append(send, payload...)

	return send, nil
}

// ServerReceive consumes the client's AKE init message and the client's
// long-term public key (the caller is responsible for locating that key,
// typically via the recovered identity payload and a local directory), and
// returns the server's response along with the recovered client identity.
// SharedSecret is populated on success.
func (a *Ake) ServerReceive(rng io.Reader, serverPriv *PrivateKey, recv []byte, clientPub *PublicKey) (send, clientIdentity []byte, err error) {
	p := serverPriv.PublicKey.p
	if clientPub.p != p {
		return nil, nil, ErrInvalidInput
	}
	pkLen := p.PublicKeySize()
	ctLen := p.CipherTextSize()

	if len(recv) != p.AKESendSize() {
		return nil, nil, ErrInvalidInput
	}
	rawPk, ct, payload := recv[:pkLen], recv[pkLen:pkLen+ctLen], recv[pkLen+ctLen:]

	ePub, err := p.PublicKeyFromBytes(rawPk)
	if err != nil {
		return nil, nil, err
	}

	tk, err := serverPriv.Decapsulate(ct)
	if err != nil {
		return nil, nil, err
	}

	ident, err := openAkePayload(a.opts, tk, payload)
	if err != nil {
		return nil, nil, ErrDecapsulation
	}
	ident = bytes.TrimRight(ident, "\x00")

	c1, tk1, err := ePub.Encapsulate(rng)
	if err != nil {
		return nil, nil, err
	}

	c2, tk2, err := clientPub.Encapsulate(rng)
	if err != nil {
		return nil, nil, err
	}

	send = make([]byte, 0, p.AKESendBSize())
	send = append(send, c1...)
	send = append(send, c2...)

	a.SharedSecret = make([]byte, SymSize)
	kdf(a.SharedSecret, tk1, tk2, tk)

	return send, ident, nil
}

// ClientConfirm consumes the server's AKE response, completing the
// exchange using the client's own long-term private key and populating
// SharedSecret.
func (a *Ake) ClientConfirm(recv []byte, clientPriv *PrivateKey) error {
	p := a.eSk.PublicKey.p
	if clientPriv.PublicKey.p != p {
		return ErrInvalidInput
	}
	ctLen := p.CipherTextSize()
	if len(recv) != p.AKESendBSize() {
		return ErrInvalidInput
	}

	tk1, err := a.eSk.Decapsulate(recv[:ctLen])
	if err != nil {
		return err
	}

	tk2, err := clientPriv.Decapsulate(recv[ctLen:])
	if err != nil {
		return err
	}

	a.SharedSecret = make([]byte, SymSize)
	kdf(a.SharedSecret, tk1, tk2, a.tk)

	return nil
}
