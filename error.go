// error.go - Error taxonomy.
//
// To the extent possible under law, Yawning Angel has waived all copyright
// and related or neighboring rights to the software, using the Creative
// Commons "CC0" public domain dedication. See LICENSE or
// <http://creativecommons.org/publicdomain/zero/1.0/> for full details.

package kyber

import "errors"

var (
	// ErrInvalidInput is returned when a caller-supplied buffer (a key, a
	// ciphertext, an AKE message, derandomized coins) has the wrong size
	// or is otherwise structurally malformed. It is never returned for a
	// correctly-sized but forged KEM ciphertext: the FO transform's
	// implicit rejection absorbs that case silently, per the KEM's
	// unconditional-decapsulation contract.
	ErrInvalidInput = errors.New("kyber: invalid input")

	// ErrDecapsulation is returned by the AKE layer when a peer-supplied
	// message fails an explicit consistency check above the KEM (the KEM
	// itself never surfaces a decapsulation failure to the caller).
	ErrDecapsulation = errors.New("kyber: decapsulation failed")
)
