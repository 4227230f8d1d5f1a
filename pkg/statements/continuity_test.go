package statements

import (
	"testing"

	"github.com/privacyzk/privacyzk/pkg/commitment"
	"github.com/privacyzk/privacyzk/pkg/params"
	"github.com/privacyzk/privacyzk/pkg/proofctx"
	"github.com/privacyzk/privacyzk/pkg/randsrc"
)

// TestContinuityCompleteness reproduces spec scenario S4: v=42 committed
// under two distinct blindings (r1=300, r2=400) must produce a
// continuity proof that verifies.
func TestContinuityCompleteness(t *testing.T) {
	p, err := params.Get()
	if err != nil {
		t.Fatalf("params.Get: %v", err)
	}
	src := randsrc.New()
	ctxHash := proofctx.New("peer-1", "s1").Hash()

	v := scalarFromInt64(42)
	r1 := scalarFromInt64(300)
	r2 := scalarFromInt64(400)

	c1 := commitment.CommitWithBlinding(p, v, r1)
	c2 := commitment.CommitWithBlinding(p, v, r2)
	pub := ContinuityPublicInputs{C1: c1.C, C2: c2.C, CtxHash: ctxHash}

	proof, err := ProveContinuity(p, pub, v, r1, r2, src)
	if err != nil {
		t.Fatalf("ProveContinuity: %v", err)
	}
	if !VerifyContinuity(p, pub, proof) {
		t.Fatalf("VerifyContinuity rejected a valid proof")
	}
}

func TestContinuityRejectsMismatchedWitness(t *testing.T) {
	p, err := params.Get()
	if err != nil {
		t.Fatalf("params.Get: %v", err)
	}
	src := randsrc.New()
	ctxHash := proofctx.New("peer-1", "s1").Hash()

	v := scalarFromInt64(42)
	otherV := scalarFromInt64(43)
	r1 := scalarFromInt64(300)
	r2 := scalarFromInt64(400)

	c1 := commitment.CommitWithBlinding(p, v, r1)
	c2 := commitment.CommitWithBlinding(p, otherV, r2)
	pub := ContinuityPublicInputs{C1: c1.C, C2: c2.C, CtxHash: ctxHash}

	if _, err := ProveContinuity(p, pub, v, r1, r2, src); err == nil {
		t.Fatalf("ProveContinuity accepted commitments opening to different v")
	}
}

func TestVerifyContinuityRejectsSwappedResponses(t *testing.T) {
	p, err := params.Get()
	if err != nil {
		t.Fatalf("params.Get: %v", err)
	}
	src := randsrc.New()
	ctxHash := proofctx.New("peer-1", "s1").Hash()

	v := scalarFromInt64(42)
	r1 := scalarFromInt64(300)
	r2 := scalarFromInt64(400)
	c1 := commitment.CommitWithBlinding(p, v, r1)
	c2 := commitment.CommitWithBlinding(p, v, r2)
	pub := ContinuityPublicInputs{C1: c1.C, C2: c2.C, CtxHash: ctxHash}

	proof, err := ProveContinuity(p, pub, v, r1, r2, src)
	if err != nil {
		t.Fatalf("ProveContinuity: %v", err)
	}

	swapped := *proof
	swapped.Z1, swapped.Z2 = swapped.Z2, swapped.Z1
	if VerifyContinuity(p, pub, &swapped) {
		t.Fatalf("VerifyContinuity accepted a proof with swapped z1/z2 responses")
	}
}

func TestVerifyContinuityRejectsGarbledChallenge(t *testing.T) {
	p, err := params.Get()
	if err != nil {
		t.Fatalf("params.Get: %v", err)
	}
	src := randsrc.New()
	ctxHash := proofctx.New("peer-1", "s1").Hash()

	v := scalarFromInt64(42)
	r1 := scalarFromInt64(300)
	r2 := scalarFromInt64(400)
	c1 := commitment.CommitWithBlinding(p, v, r1)
	c2 := commitment.CommitWithBlinding(p, v, r2)
	pub := ContinuityPublicInputs{C1: c1.C, C2: c2.C, CtxHash: ctxHash}

	proof, err := ProveContinuity(p, pub, v, r1, r2, src)
	if err != nil {
		t.Fatalf("ProveContinuity: %v", err)
	}

	garbled := *proof
	garbled.C = garbled.C.Add(scalarFromInt64(1))
	if VerifyContinuity(p, pub, &garbled) {
		t.Fatalf("VerifyContinuity accepted a proof with a garbled challenge")
	}
}

// TestExtractContinuityWitnessFromTwoTranscripts reproduces the
// special-soundness extractor: two accepting transcripts sharing the
// same nonce-derived announcements but carrying distinct challenges
// (as produced by re-running the protocol with a different
// Fiat-Shamir transcript) recover the hidden v.
func TestExtractContinuityWitnessFromTwoTranscripts(t *testing.T) {
	p, err := params.Get()
	if err != nil {
		t.Fatalf("params.Get: %v", err)
	}
	ctxHash := proofctx.New("peer-1", "s1").Hash()
	otherCtxHash := proofctx.New("peer-1", "s2").Hash()

	v := scalarFromInt64(42)
	r1 := scalarFromInt64(300)
	r2 := scalarFromInt64(400)
	c1 := commitment.CommitWithBlinding(p, v, r1)
	c2 := commitment.CommitWithBlinding(p, v, r2)

	kv := scalarFromInt64(11)
	k1 := scalarFromInt64(22)
	k2 := scalarFromInt64(33)
	a1 := p.G.ScalarMult(kv).Add(p.H.ScalarMult(k1))
	a2 := p.G.ScalarMult(kv).Add(p.H.ScalarMult(k2))

	pub1 := ContinuityPublicInputs{C1: c1.C, C2: c2.C, CtxHash: ctxHash}
	pub2 := ContinuityPublicInputs{C1: c1.C, C2: c2.C, CtxHash: otherCtxHash}

	chal1 := continuityChallenge(pub1, a1, a2)
	chal2 := continuityChallenge(pub2, a1, a2)
	if chal1.Equal(chal2) {
		t.Fatalf("test setup produced equal challenges across distinct contexts")
	}

	proof1 := &ContinuityProof{
		A1: a1, A2: a2, C: chal1,
		Zv: kv.Add(chal1.Mul(v)), Z1: k1.Add(chal1.Mul(r1)), Z2: k2.Add(chal1.Mul(r2)),
	}
	proof2 := &ContinuityProof{
		A1: a1, A2: a2, C: chal2,
		Zv: kv.Add(chal2.Mul(v)), Z1: k1.Add(chal2.Mul(r1)), Z2: k2.Add(chal2.Mul(r2)),
	}

	if !VerifyContinuity(p, pub1, proof1) {
		t.Fatalf("VerifyContinuity rejected transcript 1")
	}
	if !VerifyContinuity(p, pub2, proof2) {
		t.Fatalf("VerifyContinuity rejected transcript 2")
	}

	extracted, err := ExtractContinuityWitness(proof1, proof2)
	if err != nil {
		t.Fatalf("ExtractContinuityWitness: %v", err)
	}
	if !extracted.Equal(v) {
		t.Fatalf("ExtractContinuityWitness recovered the wrong v")
	}
}

func TestExtractContinuityWitnessRejectsNilProof(t *testing.T) {
	if _, err := ExtractContinuityWitness(nil, &ContinuityProof{}); err == nil {
		t.Fatalf("ExtractContinuityWitness accepted a nil proof")
	}
}

func TestExtractContinuityWitnessRejectsDifferingNonces(t *testing.T) {
	p, err := params.Get()
	if err != nil {
		t.Fatalf("params.Get: %v", err)
	}
	a1 := p.G.ScalarMult(scalarFromInt64(1))
	a2 := p.G.ScalarMult(scalarFromInt64(2))
	otherA1 := p.G.ScalarMult(scalarFromInt64(3))

	proof1 := &ContinuityProof{A1: a1, A2: a2, C: scalarFromInt64(5)}
	proof2 := &ContinuityProof{A1: otherA1, A2: a2, C: scalarFromInt64(6)}

	if _, err := ExtractContinuityWitness(proof1, proof2); err == nil {
		t.Fatalf("ExtractContinuityWitness accepted proofs with differing announcements")
	}
}

func TestExtractContinuityWitnessRejectsEqualChallenges(t *testing.T) {
	p, err := params.Get()
	if err != nil {
		t.Fatalf("params.Get: %v", err)
	}
	a1 := p.G.ScalarMult(scalarFromInt64(1))
	a2 := p.G.ScalarMult(scalarFromInt64(2))
	c := scalarFromInt64(7)

	proof1 := &ContinuityProof{A1: a1, A2: a2, C: c, Zv: scalarFromInt64(10)}
	proof2 := &ContinuityProof{A1: a1, A2: a2, C: c, Zv: scalarFromInt64(20)}

	if _, err := ExtractContinuityWitness(proof1, proof2); err == nil {
		t.Fatalf("ExtractContinuityWitness accepted proofs with equal challenges")
	}
}
