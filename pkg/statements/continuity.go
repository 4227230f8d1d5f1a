package statements

import (
	"github.com/privacyzk/privacyzk/internal/ctbytes"
	"github.com/privacyzk/privacyzk/pkg/commitment"
	"github.com/privacyzk/privacyzk/pkg/curve"
	"github.com/privacyzk/privacyzk/pkg/fsec"
	"github.com/privacyzk/privacyzk/pkg/params"
	"github.com/privacyzk/privacyzk/pkg/randsrc"
)

// ContinuityChallengeTag is the domain separator for the identity
// continuity statement's challenge.
const ContinuityChallengeTag = "CONTINUITY_CHALLENGE_V1"

// ContinuityPublicInputs is the public data an identity-continuity
// proof binds to: two commitments to the same hidden v under distinct
// blindings.
type ContinuityPublicInputs struct {
	C1      *curve.Point
	C2      *curve.Point
	CtxHash [32]byte
}

// ContinuityProof binds a single shared nonce k_v across two Schnorr
// equations, so the hidden v is provably the same in both commitments.
type ContinuityProof struct {
	A1 *curve.Point
	A2 *curve.Point
	C  *curve.Scalar
	Zv *curve.Scalar
	Z1 *curve.Scalar
	Z2 *curve.Scalar
}

func continuityChallenge(pub ContinuityPublicInputs, a1, a2 *curve.Point) *curve.Scalar {
	transcript := fsec.Transcript(pub.C1.Bytes(), pub.C2.Bytes(), a1.Bytes(), a2.Bytes(), pub.CtxHash[:])
	return fsec.HashToScalar(ContinuityChallengeTag, transcript)
}

// ProveContinuity proves knowledge of a single v and distinct blindings
// r1, r2 such that C1 = v*G + r1*H and C2 = v*G + r2*H, reusing the same
// nonce k_v across both equations so the proof is extractable.
func ProveContinuity(p *params.Params, pub ContinuityPublicInputs, v, r1, r2 *curve.Scalar, src *randsrc.Source) (*ContinuityProof, error) {
	commitC1 := commitment.CommitWithBlinding(p, v, r1)
	commitC2 := commitment.CommitWithBlinding(p, v, r2)
	if !commitC1.C.Equal(pub.C1) || !commitC2.C.Equal(pub.C2) {
		return nil, errWitnessMismatch
	}

	kv, err := drawScalar(src)
	if err != nil {
		return nil, err
	}
	k1, err := drawScalar(src)
	if err != nil {
		return nil, err
	}
	k2, err := drawScalar(src)
	if err != nil {
		return nil, err
	}

	a1 := p.G.ScalarMult(kv).Add(p.H.ScalarMult(k1))
	a2 := p.G.ScalarMult(kv).Add(p.H.ScalarMult(k2))
	c := continuityChallenge(pub, a1, a2)

	zv := kv.Add(c.Mul(v))
	z1 := k1.Add(c.Mul(r1))
	z2 := k2.Add(c.Mul(r2))

	return &ContinuityProof{A1: a1, A2: a2, C: c, Zv: zv, Z1: z1, Z2: z2}, nil
}

func drawScalar(src *randsrc.Source) (*curve.Scalar, error) {
	return src.Scalar()
}

// VerifyContinuity recomputes the challenge and checks both Schnorr
// equations.
func VerifyContinuity(p *params.Params, pub ContinuityPublicInputs, proof *ContinuityProof) bool {
	if proof == nil || proof.A1 == nil || proof.A2 == nil || proof.C == nil ||
		proof.Zv == nil || proof.Z1 == nil || proof.Z2 == nil ||
		pub.C1 == nil || pub.C2 == nil {
		return false
	}
	expected := continuityChallenge(pub, proof.A1, proof.A2)
	if !ctbytes.Equal(expected.Bytes(), proof.C.Bytes()) {
		return false
	}
	eq1 := commitment.CheckEquation(p, proof.A1, proof.C, pub.C1, proof.Zv, proof.Z1)
	eq2 := commitment.CheckEquation(p, proof.A2, proof.C, pub.C2, proof.Zv, proof.Z2)
	return eq1 && eq2
}

// ExtractContinuityWitness recovers the hidden v from two accepting
// continuity transcripts that share the same announcements (A1, A2),
// i.e. the same nonces, but carry distinct challenges:
//
//	v = (zv1 - zv2) * (c1 - c2)^-1 mod q
//
// This is the special-soundness extractor: two transcripts forked at
// the challenge with everything else held fixed reveal the witness
// that both proofs opened.
func ExtractContinuityWitness(proof1, proof2 *ContinuityProof) (*curve.Scalar, error) {
	if proof1 == nil || proof2 == nil {
		return nil, errExtractorNilProof
	}
	if !proof1.A1.Equal(proof2.A1) || !proof1.A2.Equal(proof2.A2) {
		return nil, errExtractorNoncesDiffer
	}
	if proof1.C.Equal(proof2.C) {
		return nil, errExtractorChallengesEqual
	}
	numerator := proof1.Zv.Sub(proof2.Zv)
	denominator := proof1.C.Sub(proof2.C)
	invDenominator, err := denominator.Inverse()
	if err != nil {
		return nil, err
	}
	return numerator.Mul(invDenominator), nil
}

const (
	errExtractorNilProof        statementError = "statements: cannot extract from a nil continuity proof"
	errExtractorNoncesDiffer    statementError = "statements: continuity proofs do not share the same announcements"
	errExtractorChallengesEqual statementError = "statements: continuity proofs must have distinct challenges"
)
