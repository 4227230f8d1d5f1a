package statements

import (
	"testing"

	"github.com/privacyzk/privacyzk/pkg/commitment"
	"github.com/privacyzk/privacyzk/pkg/params"
	"github.com/privacyzk/privacyzk/pkg/proofctx"
	"github.com/privacyzk/privacyzk/pkg/randsrc"
)

// TestUnlinkabilityAcrossSessions reproduces spec scenario S3: the same
// hidden value v=42 committed under two distinct session contexts with
// distinct blindings (r1=100 under ctx_A, r2=200 under ctx_B) must
// produce distinct, non-linkable tags, and each proof must verify
// independently under its own context.
func TestUnlinkabilityAcrossSessions(t *testing.T) {
	p, err := params.Get()
	if err != nil {
		t.Fatalf("params.Get: %v", err)
	}
	src := randsrc.New()

	ctxA := proofctx.New("peer-1", "session-A").Hash()
	ctxB := proofctx.New("peer-1", "session-B").Hash()

	v := scalarFromInt64(42)
	r1 := scalarFromInt64(100)
	r2 := scalarFromInt64(200)

	c1 := commitment.CommitWithBlinding(p, v, r1)
	c2 := commitment.CommitWithBlinding(p, v, r2)

	tag1 := ComputeUnlinkabilityTag(ctxA, c1.C)
	tag2 := ComputeUnlinkabilityTag(ctxB, c2.C)

	if TagsLinkable(tag1, tag2) {
		t.Fatalf("tags from distinct sessions/blindings were found linkable")
	}

	pub1 := UnlinkabilityPublicInputs{Tag: tag1, C: c1.C, CtxHash: ctxA}
	proof1, err := ProveUnlinkability(p, pub1, v, r1, src)
	if err != nil {
		t.Fatalf("ProveUnlinkability (session A): %v", err)
	}
	if !VerifyUnlinkability(p, pub1, proof1) {
		t.Fatalf("VerifyUnlinkability rejected a valid session-A proof")
	}

	pub2 := UnlinkabilityPublicInputs{Tag: tag2, C: c2.C, CtxHash: ctxB}
	proof2, err := ProveUnlinkability(p, pub2, v, r2, src)
	if err != nil {
		t.Fatalf("ProveUnlinkability (session B): %v", err)
	}
	if !VerifyUnlinkability(p, pub2, proof2) {
		t.Fatalf("VerifyUnlinkability rejected a valid session-B proof")
	}
}

func TestComputeUnlinkabilityTagDeterministic(t *testing.T) {
	p, err := params.Get()
	if err != nil {
		t.Fatalf("params.Get: %v", err)
	}
	src := randsrc.New()
	ctx := proofctx.New("peer-1", "session-A").Hash()
	v := scalarFromInt64(7)
	c, _, err := commitment.Commit(p, v, src)
	if err != nil {
		t.Fatalf("Commit: %v", err)
	}

	t1 := ComputeUnlinkabilityTag(ctx, c.C)
	t2 := ComputeUnlinkabilityTag(ctx, c.C)
	if !TagsLinkable(t1, t2) {
		t.Fatalf("ComputeUnlinkabilityTag is not deterministic for identical inputs")
	}
}

func TestUnlinkabilityRejectsTagFromDifferentContext(t *testing.T) {
	p, err := params.Get()
	if err != nil {
		t.Fatalf("params.Get: %v", err)
	}
	src := randsrc.New()
	ctxA := proofctx.New("peer-1", "session-A").Hash()
	ctxB := proofctx.New("peer-1", "session-B").Hash()

	v := scalarFromInt64(5)
	r := scalarFromInt64(6)
	c := commitment.CommitWithBlinding(p, v, r)

	// Tag computed against ctxB, but the public inputs claim ctxA.
	wrongTag := ComputeUnlinkabilityTag(ctxB, c.C)
	pub := UnlinkabilityPublicInputs{Tag: wrongTag, C: c.C, CtxHash: ctxA}

	if _, err := ProveUnlinkability(p, pub, v, r, src); err == nil {
		t.Fatalf("ProveUnlinkability accepted a tag computed under a different context")
	}
}

func TestVerifyUnlinkabilityRejectsBitFlippedResponse(t *testing.T) {
	p, err := params.Get()
	if err != nil {
		t.Fatalf("params.Get: %v", err)
	}
	src := randsrc.New()
	ctx := proofctx.New("peer-1", "session-A").Hash()

	v := scalarFromInt64(9)
	r := scalarFromInt64(13)
	c := commitment.CommitWithBlinding(p, v, r)
	tag := ComputeUnlinkabilityTag(ctx, c.C)
	pub := UnlinkabilityPublicInputs{Tag: tag, C: c.C, CtxHash: ctx}

	proof, err := ProveUnlinkability(p, pub, v, r, src)
	if err != nil {
		t.Fatalf("ProveUnlinkability: %v", err)
	}

	broken := *proof
	broken.Zv = broken.Zv.Add(scalarFromInt64(1))
	if VerifyUnlinkability(p, pub, &broken) {
		t.Fatalf("VerifyUnlinkability accepted a proof with a corrupted response")
	}
}
