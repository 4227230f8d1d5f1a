// Package params holds the process-wide curve parameters: the group,
// the standard generator G, and the nothing-up-my-sleeve second
// generator H derived by hash-to-curve from a fixed, verifiable seed.
// This is a lazily-initialized, read-only singleton, no ambient global
// mutable state beyond the one-time init, the same pattern as
// pre-computing a fixed table once and caching it for the life of the
// process.
package params

import (
	"fmt"
	"math/big"
	"sync"

	"github.com/privacyzk/privacyzk/pkg/curve"
	"github.com/privacyzk/privacyzk/pkg/fsec"
)

// GeneratorHSeed is the fixed, publicly verifiable seed hashed to curve
// to derive H. Anyone can recompute H from this seed and confirm no
// discrete-log relation to G was chosen by a prover.
const GeneratorHSeed = "LIBP2P_PRIVACY_V1_GENERATOR_H_SEED"

const hashToCurveDomain = "LIBP2P_PRIVACY_V1_GENERATOR_H"

// maxHashToCurveTries bounds the hash-and-increment search; in practice
// a valid curve point is found within a handful of tries (~50% hit rate
// per candidate x), so this is generous headroom, not a tuned budget.
const maxHashToCurveTries = 1000

// secp256k1 field prime p = 2^256 - 2^32 - 977.
var fieldPrime, _ = new(big.Int).SetString(
	"FFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFEFFFFFC2F", 16)

// GroupOrder is the secp256k1 curve group order q (also the scalar
// field modulus), exposed as a big.Int for callers that need general
// modular arithmetic outside the Scalar type (e.g. the continuity
// extractor's modular inverse over q).
var GroupOrder, _ = new(big.Int).SetString(
	"FFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFEBAAEDCE6AF48A03BBFD25E8CD0364141", 16)

// Params is the immutable set of group parameters every primitive and
// statement operates against.
type Params struct {
	G *curve.Point
	H *curve.Point
	Q *big.Int
}

var (
	once     sync.Once
	instance *Params
	initErr  error
)

// Get returns the process-wide curve parameters, computing H on first
// use and caching it thereafter. Safe for concurrent use.
func Get() (*Params, error) {
	once.Do(func() {
		h, err := hashToCurve(hashToCurveDomain, GeneratorHSeed)
		if err != nil {
			initErr = fmt.Errorf("params: derive generator H: %w", err)
			return
		}
		instance = &Params{
			G: curve.Generator(),
			H: h,
			Q: GroupOrder,
		}
	})
	return instance, initErr
}

// MustGet panics if parameter initialization failed. Reserved for
// cmd/ entry points and tests where a failure is a build-environment
// bug, never for library code on a request path.
func MustGet() *Params {
	p, err := Get()
	if err != nil {
		panic(err)
	}
	return p
}

// hashToCurve derives a deterministic curve point from domain||seed
// using a hash-and-increment search: it hashes an incrementing counter
// alongside the seed, interprets the digest as a candidate x coordinate,
// and accepts the first candidate for which y = sqrt(x^3+7) mod p exists
// (secp256k1's prime is 3 mod 4, so the principal square root is a
// single modular exponentiation). This is the RFC-9380-flavored
// "verifiably random" construction, the same try-and-lift approach
// BLS12-381 hash-to-curve and secp256k1 ECDSA-recovery code use for
// computing a curve y from x.
func hashToCurve(domain, seed string) (*curve.Point, error) {
	exp := new(big.Int).Rsh(new(big.Int).Add(fieldPrime, big.NewInt(1)), 2)
	seven := big.NewInt(7)

	for counter := uint32(0); counter < maxHashToCurveTries; counter++ {
		counterBytes := []byte{
			byte(counter >> 24), byte(counter >> 16), byte(counter >> 8), byte(counter),
		}
		digest := fsec.Sum256([]byte(domain), []byte(seed), counterBytes)

		x := new(big.Int).SetBytes(digest[:])
		x.Mod(x, fieldPrime)

		rhs := new(big.Int).Exp(x, big.NewInt(3), fieldPrime)
		rhs.Add(rhs, seven)
		rhs.Mod(rhs, fieldPrime)

		y := new(big.Int).Exp(rhs, exp, fieldPrime)
		check := new(big.Int).Exp(y, big.NewInt(2), fieldPrime)
		if check.Cmp(rhs) != 0 {
			continue
		}

		prefix := byte(0x02)
		if y.Bit(0) == 1 {
			prefix = 0x03
		}
		xBytes := make([]byte, 32)
		x.FillBytes(xBytes)

		compressed := make([]byte, 0, 33)
		compressed = append(compressed, prefix)
		compressed = append(compressed, xBytes...)

		pt, err := curve.ParsePoint(compressed)
		if err != nil {
			continue
		}
		return pt, nil
	}
	return nil, fmt.Errorf("params: hash-to-curve exhausted %d tries", maxHashToCurveTries)
}
