// reduce.go - Montgomery, Barrett, and full reduction.
//
// To the extent possible under law, Yawning Angel has waived all copyright
// and related or neighboring rights to the software, using the Creative
// Commons "CC0" public domain dedication. See LICENSE or
// <http://creativecommons.org/publicdomain/zero/1.0/> for full details.

package kyber

const (
	qinv = 62209 // -inverse_mod(q, 2^16), congruent to -3327 mod 2^16
	mont = 2285  // 2^16 mod q, ie R mod q

	barrettShift = 26
	barrettV     = 20159 // floor((2^26 + q/2) / q): the rounding is baked into v itself
)

// montgomeryReduce computes a 16-bit integer congruent to a * R^-1 mod q,
// where R=2^16, given a 32-bit input a. Result lies in (-q, q).
func montgomeryReduce(a int32) int16 {
	u := int16(a * qinv)
	t := int32(u) * kyberQ
	t = a - t
	return int16(t >> 16)
}

// barrettReduce computes a 16-bit integer congruent to a mod q, given a
// 16-bit input a. Result lies in [-(q-1), q-1].
func barrettReduce(a int16) int16 {
	t := int16((int32(barrettV) * int32(a)) >> barrettShift)
	t *= kyberQ
	return a - t
}

// csubq conditionally subtracts q from a in constant time, mapping a value
// in (-q, 2q) back into [0, 2q). Used to canonicalize coefficients to
// non-negative standard representatives before serialization.
func csubq(a int16) int16 {
	a -= kyberQ
	a += (a >> 15) & kyberQ
	return a
}
