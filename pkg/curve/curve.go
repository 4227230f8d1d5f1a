// Package curve wraps the secp256k1 group arithmetic this toolkit needs
// behind a small Scalar/Point API: a thin, purpose-built layer over a
// lower-level field/curve library rather than a general-purpose EC
// toolkit.
//
// Scalars live modulo the curve's prime group order q; points are
// elements of the (cofactor-1) prime-order subgroup, serialized as
// 33-byte SEC1-compressed encodings.
package curve

import (
	"crypto/rand"
	"errors"
	"fmt"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

// ScalarSize is the byte width of a reduced scalar, big-endian.
const ScalarSize = 32

// PointSize is the byte width of a SEC1-compressed point.
const PointSize = 33

var errZeroScalar = errors.New("curve: scalar is zero")

// Scalar is an integer modulo the group order q.
type Scalar struct {
	v secp256k1.ModNScalar
}

// NewScalarFromBytes reduces a big-endian byte string modulo q. Overflow
// is not an error: the value is simply reduced, matching hash_to_scalar's
// "reduced modulo max" contract.
func NewScalarFromBytes(b []byte) *Scalar {
	s := &Scalar{}
	s.v.SetByteSlice(b)
	return s
}

// RandomScalar draws a uniform scalar in [1, q) from a cryptographically
// secure source, rejecting and redrawing on the (astronomically unlikely)
// zero outcome so callers never receive a degenerate nonce or blinding.
func RandomScalar() (*Scalar, error) {
	for {
		var buf [ScalarSize]byte
		if _, err := rand.Read(buf[:]); err != nil {
			return nil, fmt.Errorf("curve: read random scalar: %w", err)
		}
		s := NewScalarFromBytes(buf[:])
		if !s.IsZero() {
			return s, nil
		}
	}
}

// ZeroScalar returns the additive identity.
func ZeroScalar() *Scalar { return &Scalar{} }

// IsZero reports whether s is the additive identity.
func (s *Scalar) IsZero() bool { return s.v.IsZero() }

// Bytes returns the big-endian, fixed 32-byte encoding of s.
func (s *Scalar) Bytes() []byte {
	b := s.v.Bytes()
	out := make([]byte, ScalarSize)
	copy(out, b[:])
	return out
}

// Add returns s + other mod q.
func (s *Scalar) Add(other *Scalar) *Scalar {
	r := &Scalar{}
	r.v.Add2(&s.v, &other.v)
	return r
}

// Sub returns s - other mod q.
func (s *Scalar) Sub(other *Scalar) *Scalar {
	neg := &Scalar{}
	neg.v.Set(&other.v)
	neg.v.Negate()
	r := &Scalar{}
	r.v.Add2(&s.v, &neg.v)
	return r
}

// Mul returns s * other mod q.
func (s *Scalar) Mul(other *Scalar) *Scalar {
	r := &Scalar{}
	r.v.Mul2(&s.v, &other.v)
	return r
}

// Negate returns -s mod q.
func (s *Scalar) Negate() *Scalar {
	r := &Scalar{}
	r.v.Set(&s.v)
	r.v.Negate()
	return r
}

// Inverse returns s^-1 mod q. The caller must not pass a zero scalar;
// inverting zero is undefined and returns an error instead of a silent
// garbage value.
func (s *Scalar) Inverse() (*Scalar, error) {
	if s.IsZero() {
		return nil, errZeroScalar
	}
	r := &Scalar{}
	r.v.Set(&s.v)
	r.v.InverseNonConst()
	return r, nil
}

// Equal reports scalar equality. Scalars are not secret-independent of
// each other in the way challenges/commitments are, but callers that
// compare secret-derived scalars should prefer the ctbytes helpers on
// Bytes() directly when timing matters.
func (s *Scalar) Equal(other *Scalar) bool {
	return s.v.Equals(&other.v)
}

// Point is an element of the secp256k1 prime-order subgroup.
type Point struct {
	pub *secp256k1.PublicKey
}

// ParsePoint decodes a SEC1-compressed (or uncompressed) point and
// validates curve membership. A malformed or off-curve encoding yields
// an error, never a panic; callers in the verifier paths must treat this
// as a verification reject rather than propagate the error upward.
func ParsePoint(b []byte) (*Point, error) {
	pub, err := secp256k1.ParsePubKey(b)
	if err != nil {
		return nil, fmt.Errorf("curve: parse point: %w", err)
	}
	return &Point{pub: pub}, nil
}

// Bytes returns the 33-byte SEC1-compressed encoding.
func (p *Point) Bytes() []byte {
	return p.pub.SerializeCompressed()
}

// Equal reports point equality by comparing compressed encodings.
func (p *Point) Equal(other *Point) bool {
	if p == nil || other == nil {
		return p == other
	}
	a, b := p.Bytes(), other.Bytes()
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func (p *Point) jacobian() secp256k1.JacobianPoint {
	var j secp256k1.JacobianPoint
	p.pub.AsJacobian(&j)
	return j
}

func pointFromJacobian(j *secp256k1.JacobianPoint) *Point {
	j.ToAffine()
	pub := secp256k1.NewPublicKey(&j.X, &j.Y)
	return &Point{pub: pub}
}

// Add returns p + other.
func (p *Point) Add(other *Point) *Point {
	pj, oj := p.jacobian(), other.jacobian()
	var sum secp256k1.JacobianPoint
	secp256k1.AddNonConst(&pj, &oj, &sum)
	return pointFromJacobian(&sum)
}

// ScalarMult returns k*p.
func (p *Point) ScalarMult(k *Scalar) *Point {
	pj := p.jacobian()
	var result secp256k1.JacobianPoint
	secp256k1.ScalarMultNonConst(&k.v, &pj, &result)
	return pointFromJacobian(&result)
}

// BaseMult returns k*G, the standard generator multiplied by k.
func BaseMult(k *Scalar) *Point {
	var result secp256k1.JacobianPoint
	secp256k1.ScalarBaseMultNonConst(&k.v, &result)
	return pointFromJacobian(&result)
}

// Generator returns the curve's standard base point G.
func Generator() *Point {
	one := &Scalar{}
	one.v.SetInt(1)
	return BaseMult(one)
}
