// kex_test.go - Kyber key exchange tests.
//
// To the extent possible under law, Yawning Angel has waived all copyright
// and related or neighboring rights to the software, using the Creative
// Commons "CC0" public domain dedication. See LICENSE or
// <http://creativecommons.org/publicdomain/zero/1.0/> for full details.

package kyber

import (
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAKE(t *testing.T) {
	for _, p := range allParams {
		t.Run(p.Name()+"_UAKE", func(t *testing.T) { doTestUAKE(t, p) })
		t.Run(p.Name()+"_AKE", func(t *testing.T) { doTestAKE(t, p, false) })
		t.Run(p.Name()+"_AKE_SecurePayload", func(t *testing.T) { doTestAKE(t, p, true) })
		t.Run(p.Name()+"_UAKE_InvalidClientInit", func(t *testing.T) { doTestUAKEInvalidClientInit(t, p) })
		t.Run(p.Name()+"_AKE_InvalidIdentity", func(t *testing.T) { doTestAKEInvalidPayload(t, p) })
	}
}

func doTestUAKE(t *testing.T, p *ParameterSet) {
	require := require.New(t)

	t.Logf("UAKESendSize(): %v", p.UAKESendSize())
	t.Logf("UAKESendBSize(): %v", p.UAKESendBSize())

	for i := 0; i < nTests; i++ {
		// Generate the server's long-term key pair.
		serverPub, serverPriv, err := p.GenerateKeyPair(rand.Reader)
		require.NoError(err, "GenerateKeyPair(): server")

		// Client begins the exchange.
		client := NewUake()
		clientSend, err := client.ClientInit(rand.Reader, serverPub)
		require.NoError(err, "ClientInit()")
		require.Len(clientSend, p.UAKESendSize(), "ClientInit(): Length")

		// Server consumes the client message and replies.
		server := NewUake()
		serverSend, err := server.ServerReceive(rand.Reader, serverPriv, clientSend)
		require.NoError(err, "ServerReceive()")
		require.Len(serverSend, p.UAKESendBSize(), "ServerReceive(): Length")
		require.Len(server.SharedSecret, SymSize, "ServerReceive(): SharedSecret Length")

		// Client confirms.
		err = client.ClientConfirm(serverSend)
		require.NoError(err, "ClientConfirm()")
		require.Equal(server.SharedSecret, client.SharedSecret, "Shared secret mismatch")
	}
}

func doTestUAKEInvalidClientInit(t *testing.T, p *ParameterSet) {
	require := require.New(t)

	serverPub, serverPriv, err := p.GenerateKeyPair(rand.Reader)
	require.NoError(err, "GenerateKeyPair(): server")

	client := NewUake()
	clientSend, err := client.ClientInit(rand.Reader, serverPub)
	require.NoError(err, "ClientInit()")

	server := NewUake()
	_, err = server.ServerReceive(rand.Reader, serverPriv, clientSend[:len(clientSend)-1])
	require.ErrorIs(err, ErrInvalidInput, "ServerReceive(): truncated message")
}

func doTestAKE(t *testing.T, p *ParameterSet, securePayload bool) {
	require := require.New(t)

	t.Logf("AKESendSize(): %v", p.AKESendSize())
	t.Logf("AKESendBSize(): %v", p.AKESendBSize())

	opts := AkeOptions{SecurePayload: securePayload}

	for i := 0; i < nTests; i++ {
		// Generate the client's and server's long-term key pairs.
		serverPub, serverPriv, err := p.GenerateKeyPair(rand.Reader)
		require.NoError(err, "GenerateKeyPair(): server")
		clientPub, clientPriv, err := p.GenerateKeyPair(rand.Reader)
		require.NoError(err, "GenerateKeyPair(): client")

		clientIdentity := []byte("alice@example.com")

		client := NewAke(opts)
		clientSend, err := client.ClientSend(rand.Reader, serverPub, clientIdentity)
		require.NoError(err, "ClientSend()")
		require.Len(clientSend, p.AKESendSize(), "ClientSend(): Length")

		server := NewAke(opts)
		serverSend, gotIdentity, err := server.ServerReceive(rand.Reader, serverPriv, clientSend, clientPub)
		require.NoError(err, "ServerReceive()")
		require.Len(serverSend, p.AKESendBSize(), "ServerReceive(): Length")
		require.Equal(clientIdentity, gotIdentity, "ServerReceive(): recovered identity")

		err = client.ClientConfirm(serverSend, clientPriv)
		require.NoError(err, "ClientConfirm()")
		require.Equal(server.SharedSecret, client.SharedSecret, "Shared secret mismatch")
	}
}

func doTestAKEInvalidPayload(t *testing.T, p *ParameterSet) {
	require := require.New(t)

	serverPub, serverPriv, err := p.GenerateKeyPair(rand.Reader)
	require.NoError(err, "GenerateKeyPair(): server")
	clientPub, _, err := p.GenerateKeyPair(rand.Reader)
	require.NoError(err, "GenerateKeyPair(): client")

	client := NewAke(AkeOptions{})
	clientSend, err := client.ClientSend(rand.Reader, serverPub, []byte("mallory"))
	require.NoError(err, "ClientSend()")

	// Corrupt the tk-confirmation half of the trailing payload (the
	// identity half alone isn't covered by the default mode's check).
	payloadStart := len(clientSend) - akePayloadSize
	clientSend[payloadStart] ^= 0xff

	server := NewAke(AkeOptions{})
	_, _, err = server.ServerReceive(rand.Reader, serverPriv, clientSend, clientPub)
	require.ErrorIs(err, ErrDecapsulation, "ServerReceive(): corrupted identity payload")
}
