// Package fsec implements the Fiat-Shamir transcript primitives: a
// length-prefixed domain-separated hash, reduced into a scalar. SHA3-256
// is used rather than SHA-256 because the challenge hash must not be
// length-extendable; plain SHA-256 alone is disallowed here.
package fsec

import (
	"encoding/binary"
	"math/big"

	"golang.org/x/crypto/sha3"

	"github.com/privacyzk/privacyzk/pkg/curve"
)

// lengthPrefixed concatenates domain and data with 4-byte big-endian
// length prefixes on each field, so that the concatenation is injective:
// no pair of distinct (domain, data) can collide on the encoded bytes.
// This mirrors the original backend's encode_length_prefixed helper.
func lengthPrefixed(fields ...[]byte) []byte {
	var out []byte
	var lenBuf [4]byte
	for _, f := range fields {
		binary.BigEndian.PutUint32(lenBuf[:], uint32(len(f)))
		out = append(out, lenBuf[:]...)
		out = append(out, f...)
	}
	return out
}

// Transcript builds a length-prefixed transcript suitable for hashing,
// exported so statement packages can assemble multi-field challenge
// inputs (G, H, C, A, ctx_hash, ...) without each reimplementing the
// framing rule.
func Transcript(fields ...[]byte) []byte {
	return lengthPrefixed(fields...)
}

// sum256 returns the SHA3-256 digest of data.
func sum256(data []byte) [32]byte {
	return sha3.Sum256(data)
}

// HashToScalar hashes domain||data (length-prefixed) with SHA3-256 and
// reduces the result modulo the curve group order q, returning a Scalar
// in [0, q).
func HashToScalar(domain string, data []byte) *curve.Scalar {
	digest := sum256(lengthPrefixed([]byte(domain), data))
	return curve.NewScalarFromBytes(digest[:])
}

// HashToScalarMod hashes domain||data (length-prefixed) with SHA3-256 and
// reduces the digest modulo an arbitrary max, for callers that need a
// domain-separated hash reduced into a modulus other than the curve's
// own scalar field.
func HashToScalarMod(domain string, data []byte, max *big.Int) *big.Int {
	digest := sum256(lengthPrefixed([]byte(domain), data))
	n := new(big.Int).SetBytes(digest[:])
	if max == nil || max.Sign() <= 0 {
		return n
	}
	return n.Mod(n, max)
}

// Sum256 exposes the raw length-prefixed SHA3-256 digest for callers
// (e.g. hash-to-curve) that need the bytes rather than a reduced scalar.
func Sum256(fields ...[]byte) [32]byte {
	return sum256(lengthPrefixed(fields...))
}
