// zeroize.go - Best-effort wipe of secret-bearing structs.
//
// Grounded on original_source/src/kex.rs's `#[cfg(feature = "zeroize")]`
// opt-in, restated as an explicit method rather than a build flag since
// Go has no compile-time feature gating equivalent for this.

package kyber

func wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

// Zeroize overwrites the private key's secret-bearing fields. The
// PrivateKey must not be used afterwards.
func (sk *PrivateKey) Zeroize() {
	if sk.sk != nil {
		wipe(sk.sk.packed)
	}
	wipe(sk.z)
}

// Zeroize overwrites the Uake instance's in-progress secret state. The
// instance must not be used afterwards.
func (u *Uake) Zeroize() {
	if u.eSk != nil {
		u.eSk.Zeroize()
	}
	wipe(u.tk)
	wipe(u.SharedSecret)
}

// Zeroize overwrites the Ake instance's in-progress secret state. The
// instance must not be used afterwards.
func (a *Ake) Zeroize() {
	if a.eSk != nil {
		a.eSk.Zeroize()
	}
	wipe(a.tk)
	wipe(a.TempKey)
	wipe(a.SharedSecret)
}
