// Package statements implements the three Schnorr-based statement
// proofs: anonymity-set membership, session unlinkability, and identity
// continuity. Each reuses the commitment package's Schnorr machinery
// with its own challenge domain and public-data transcript.
package statements

import (
	"github.com/privacyzk/privacyzk/internal/ctbytes"
	"github.com/privacyzk/privacyzk/pkg/commitment"
	"github.com/privacyzk/privacyzk/pkg/curve"
	"github.com/privacyzk/privacyzk/pkg/fsec"
	"github.com/privacyzk/privacyzk/pkg/merkle"
	"github.com/privacyzk/privacyzk/pkg/params"
	"github.com/privacyzk/privacyzk/pkg/randsrc"
)

// MembershipChallengeTag is the domain separator for the membership
// statement's Fiat-Shamir challenge.
const MembershipChallengeTag = "MEMBERSHIP_CHALLENGE_V1"

// MembershipPublicInputs is the public data a membership proof binds to.
type MembershipPublicInputs struct {
	Root    merkle.Digest
	C       *curve.Point
	CtxHash [32]byte
	Path    []merkle.Step
}

// MembershipProof is the Schnorr transcript proving knowledge of an
// opening of C whose leaf is present under Root via Path.
type MembershipProof struct {
	A  *curve.Point
	C  *curve.Scalar
	Zv *curve.Scalar
	Zb *curve.Scalar
}

func membershipChallenge(p *params.Params, pub MembershipPublicInputs, a *curve.Point) *curve.Scalar {
	transcript := fsec.Transcript(pub.Root[:], pub.C.Bytes(), a.Bytes(), pub.CtxHash[:])
	return fsec.HashToScalar(MembershipChallengeTag, transcript)
}

// ProveMembership proves knowledge of (v, r) opening pub.C, where
// pub.C's leaf folds to pub.Root through pub.Path. The fold is checked
// prover-side first: proving over an inconsistent path is a caller bug,
// not a cryptographic failure, so it is reported as an error rather than
// silently producing a proof that can never verify.
func ProveMembership(p *params.Params, pub MembershipPublicInputs, v, r *curve.Scalar, src *randsrc.Source) (*MembershipProof, error) {
	leaf := merkle.HashLeaf(pub.C.Bytes())
	if !merkle.VerifyPath(leaf, pub.Path, pub.Root) {
		return nil, errPathDoesNotFoldToRoot
	}
	commitC := commitment.CommitWithBlinding(p, v, r)
	if !commitC.C.Equal(pub.C) {
		return nil, errWitnessMismatch
	}

	kv, kb, a, err := commitment.Announce(p, src)
	if err != nil {
		return nil, err
	}
	c := membershipChallenge(p, pub, a)
	zv, zb := commitment.Respond(kv, kb, c, v, r)
	return &MembershipProof{A: a, C: c, Zv: zv, Zb: zb}, nil
}

// VerifyMembership re-folds Path to Root, recomputes the challenge, and
// checks the Schnorr equation. Never panics: any malformed input is a
// reject.
func VerifyMembership(p *params.Params, pub MembershipPublicInputs, proof *MembershipProof) bool {
	if proof == nil || proof.A == nil || proof.C == nil || proof.Zv == nil || proof.Zb == nil || pub.C == nil {
		return false
	}
	leaf := merkle.HashLeaf(pub.C.Bytes())
	if !merkle.VerifyPath(leaf, pub.Path, pub.Root) {
		return false
	}
	expected := membershipChallenge(p, pub, proof.A)
	if !ctbytes.Equal(expected.Bytes(), proof.C.Bytes()) {
		return false
	}
	return commitment.CheckEquation(p, proof.A, proof.C, pub.C, proof.Zv, proof.Zb)
}

type statementError string

func (e statementError) Error() string { return string(e) }

const (
	errPathDoesNotFoldToRoot statementError = "statements: auth path does not fold to the claimed root"
	errWitnessMismatch       statementError = "statements: witness (v, r) does not open the claimed commitment"
)
