package statements

import (
	"crypto/sha256"

	"github.com/privacyzk/privacyzk/internal/ctbytes"
	"github.com/privacyzk/privacyzk/pkg/commitment"
	"github.com/privacyzk/privacyzk/pkg/curve"
	"github.com/privacyzk/privacyzk/pkg/fsec"
	"github.com/privacyzk/privacyzk/pkg/params"
	"github.com/privacyzk/privacyzk/pkg/randsrc"
)

// UnlinkabilityTagTag and UnlinkabilityChallengeTag are the domain
// separators for the session-unlinkability statement.
const (
	UnlinkabilityTagTag       = "UNLINKABILITY_TAG_V1"
	UnlinkabilityChallengeTag = "UNLINKABILITY_CHALLENGE_V1"
)

// UnlinkabilityTag is the deterministic public tag T tying a commitment
// to a session context.
type UnlinkabilityTag [32]byte

// ComputeUnlinkabilityTag computes T = SHA256(TAG_SEP || ctx_hash || C).
// Deterministic given (C, ctx): equal inputs always produce equal tags,
// and different contexts are expected (though not cryptographically
// guaranteed against adversarial collision construction) to produce
// different tags when combined with a fresh blinding per session.
func ComputeUnlinkabilityTag(ctxHash [32]byte, c *curve.Point) UnlinkabilityTag {
	h := sha256.New()
	h.Write([]byte(UnlinkabilityTagTag))
	h.Write(ctxHash[:])
	h.Write(c.Bytes())
	var out UnlinkabilityTag
	copy(out[:], h.Sum(nil))
	return out
}

// TagsLinkable reports whether two unlinkability tags are equal, i.e.
// whether two proofs could be correlated to the same session context.
func TagsLinkable(a, b UnlinkabilityTag) bool {
	return ctbytes.Equal(a[:], b[:])
}

// UnlinkabilityPublicInputs is the public data an unlinkability proof
// binds to.
type UnlinkabilityPublicInputs struct {
	Tag     UnlinkabilityTag
	C       *curve.Point
	CtxHash [32]byte
}

// UnlinkabilityProof is the Schnorr transcript for the unlinkability
// statement.
type UnlinkabilityProof struct {
	A  *curve.Point
	C  *curve.Scalar
	Zv *curve.Scalar
	Zb *curve.Scalar
}

func unlinkabilityChallenge(pub UnlinkabilityPublicInputs, a *curve.Point) *curve.Scalar {
	transcript := fsec.Transcript(pub.Tag[:], pub.C.Bytes(), a.Bytes(), pub.CtxHash[:])
	return fsec.HashToScalar(UnlinkabilityChallengeTag, transcript)
}

// ProveUnlinkability proves knowledge of (v, r) opening pub.C, bound to
// pub.Tag and pub.CtxHash. The caller must draw a fresh r per session;
// this function does not enforce freshness across calls, only the
// opening proof itself.
func ProveUnlinkability(p *params.Params, pub UnlinkabilityPublicInputs, v, r *curve.Scalar, src *randsrc.Source) (*UnlinkabilityProof, error) {
	commitC := commitment.CommitWithBlinding(p, v, r)
	if !commitC.C.Equal(pub.C) {
		return nil, errWitnessMismatch
	}
	expectedTag := ComputeUnlinkabilityTag(pub.CtxHash, pub.C)
	if !TagsLinkable(expectedTag, pub.Tag) {
		return nil, errTagMismatch
	}

	kv, kb, a, err := commitment.Announce(p, src)
	if err != nil {
		return nil, err
	}
	c := unlinkabilityChallenge(pub, a)
	zv, zb := commitment.Respond(kv, kb, c, v, r)
	return &UnlinkabilityProof{A: a, C: c, Zv: zv, Zb: zb}, nil
}

// VerifyUnlinkability recomputes T and performs the Schnorr check.
func VerifyUnlinkability(p *params.Params, pub UnlinkabilityPublicInputs, proof *UnlinkabilityProof) bool {
	if proof == nil || proof.A == nil || proof.C == nil || proof.Zv == nil || proof.Zb == nil || pub.C == nil {
		return false
	}
	expectedTag := ComputeUnlinkabilityTag(pub.CtxHash, pub.C)
	if !TagsLinkable(expectedTag, pub.Tag) {
		return false
	}
	expected := unlinkabilityChallenge(pub, proof.A)
	if !ctbytes.Equal(expected.Bytes(), proof.C.Bytes()) {
		return false
	}
	return commitment.CheckEquation(p, proof.A, proof.C, pub.C, proof.Zv, proof.Zb)
}

const errTagMismatch statementError = "statements: unlinkability tag does not match (C, ctx_hash)"
