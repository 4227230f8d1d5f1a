// Package ctbytes provides constant-time byte comparison helpers used
// wherever secret or challenge material is checked for equality, so that
// timing does not leak which byte differed.
package ctbytes

import "crypto/subtle"

// Equal reports whether a and b are identical, in time independent of
// where they first differ. Unequal lengths are not constant-time (the
// caller already knows the expected length in every call site here) but
// the comparison of equal-length content is.
func Equal(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	return subtle.ConstantTimeCompare(a, b) == 1
}
