// doc.go - Kyber godoc extras.
//
// To the extent possible under law, Yawning Angel has waived all copyright
// and related or neighboring rights to the software, using the Creative
// Commons "CC0" public domain dedication. See LICENSE or
// <http://creativecommons.org/publicdomain/zero/1.0/> for full details.

// Package kyber implements the CRYSTALS-Kyber round-3 IND-CCA2-secure key
// encapsulation mechanism (KEM), based on the hardness of solving the
// learning-with-errors (LWE) problem over module lattices, as submitted to
// the NIST Post-Quantum Cryptography standardization project.
//
// The base KEM (GenerateKeyPair, Encapsulate, Decapsulate and their
// derandomized variants) implements the Fujisaki-Okamoto transform over a
// CPA-secure public-key encryption scheme built from Module-LWE, following
// the round-3 specification: the shared secret is the hash output K̄
// directly, with no trailing key-derivation step.
//
// Additionally, Uake and Ake implement the unilaterally- and
// mutually-authenticated key exchange protocols built on top of the KEM, as
// presented in the Kyber paper.
//
// For more information, see https://pq-crystals.org/kyber/index.shtml.
package kyber
