// Package commitment implements Pedersen commitments and the Schnorr
// proof of knowledge of a commitment's opening, the two building blocks
// every statement in pkg/statements composes.
package commitment

import (
	"github.com/privacyzk/privacyzk/internal/ctbytes"
	"github.com/privacyzk/privacyzk/pkg/curve"
	"github.com/privacyzk/privacyzk/pkg/fsec"
	"github.com/privacyzk/privacyzk/pkg/params"
	"github.com/privacyzk/privacyzk/pkg/randsrc"
)

// SchnorrChallengeTag is the domain separator for the opening-PoK
// challenge.
const SchnorrChallengeTag = "SCHNORR_CHALLENGE_V1"

// Commitment is a Pedersen commitment C = v*G + r*H.
type Commitment struct {
	C *curve.Point
}

// Bytes returns the 33-byte compressed encoding of C.
func (c *Commitment) Bytes() []byte { return c.C.Bytes() }

// CommitWithBlinding computes C = v*G + r*H for an explicit blinding r,
// for callers (tests, deterministic fixtures) that must reproduce a
// specific commitment rather than draw a fresh one.
func CommitWithBlinding(p *params.Params, v, r *curve.Scalar) *Commitment {
	return &Commitment{C: p.G.ScalarMult(v).Add(p.H.ScalarMult(r))}
}

// Commit draws a fresh uniform blinding r from src and returns the
// resulting commitment alongside r. The caller is responsible for
// keeping r secret; it is the opening witness.
func Commit(p *params.Params, v *curve.Scalar, src *randsrc.Source) (*Commitment, *curve.Scalar, error) {
	r, err := src.Scalar()
	if err != nil {
		return nil, nil, err
	}
	return CommitWithBlinding(p, v, r), r, nil
}

// OpeningProof is a non-interactive Schnorr proof of knowledge of (v, r)
// opening a commitment C, bound to a context hash.
type OpeningProof struct {
	A  *curve.Point
	C  *curve.Scalar // Fiat-Shamir challenge
	Zv *curve.Scalar
	Zb *curve.Scalar
}

func challenge(p *params.Params, domain string, commitC, announcement *curve.Point, ctxHash []byte, extra ...[]byte) *curve.Scalar {
	fields := [][]byte{p.G.Bytes(), p.H.Bytes(), commitC.Bytes(), announcement.Bytes(), ctxHash}
	fields = append(fields, extra...)
	return fsec.HashToScalar(domain, fsec.Transcript(fields...))
}

// Announce draws fresh nonces (kv, kb) and computes the Schnorr
// announcement A = kv*G + kb*H. Exported so statement packages (which
// use their own challenge domain and transcript shape) can reuse the
// nonce/announcement step without duplicating the arithmetic.
func Announce(p *params.Params, src *randsrc.Source) (kv, kb *curve.Scalar, a *curve.Point, err error) {
	kv, err = src.Scalar()
	if err != nil {
		return nil, nil, nil, err
	}
	kb, err = src.Scalar()
	if err != nil {
		return nil, nil, nil, err
	}
	a = p.G.ScalarMult(kv).Add(p.H.ScalarMult(kb))
	return kv, kb, a, nil
}

// Respond computes the Schnorr responses zv = kv + c*v, zb = kb + c*r.
func Respond(kv, kb, c, v, r *curve.Scalar) (zv, zb *curve.Scalar) {
	return kv.Add(c.Mul(v)), kb.Add(c.Mul(r))
}

// CheckEquation verifies zv*G + zb*H == a + c*commitC.
func CheckEquation(p *params.Params, a *curve.Point, c *curve.Scalar, commitC *curve.Point, zv, zb *curve.Scalar) bool {
	lhs := p.G.ScalarMult(zv).Add(p.H.ScalarMult(zb))
	rhs := a.Add(commitC.ScalarMult(c))
	return lhs.Equal(rhs)
}

// Prove produces a Schnorr proof of knowledge of the opening (v, r) of
// commitC = v*G + r*H, bound to ctxHash. Fresh nonces are rejected and
// redrawn if zero (curve.RandomScalar already guarantees this).
func Prove(p *params.Params, commitC *curve.Point, v, r *curve.Scalar, ctxHash []byte, src *randsrc.Source) (*OpeningProof, error) {
	kv, kb, a, err := Announce(p, src)
	if err != nil {
		return nil, err
	}
	c := challenge(p, SchnorrChallengeTag, commitC, a, ctxHash)
	zv, zb := Respond(kv, kb, c, v, r)
	return &OpeningProof{A: a, C: c, Zv: zv, Zb: zb}, nil
}

// Verify checks proof against commitC under ctxHash. Never panics: a
// malformed proof's points have already been validated by the caller's
// decode step, so any failure here is a genuine reject.
func Verify(p *params.Params, commitC *curve.Point, proof *OpeningProof, ctxHash []byte) bool {
	if proof == nil || proof.A == nil || proof.C == nil || proof.Zv == nil || proof.Zb == nil {
		return false
	}
	expected := challenge(p, SchnorrChallengeTag, commitC, proof.A, ctxHash)
	if !ctbytes.Equal(expected.Bytes(), proof.C.Bytes()) {
		return false
	}
	return CheckEquation(p, proof.A, proof.C, commitC, proof.Zv, proof.Zb)
}
