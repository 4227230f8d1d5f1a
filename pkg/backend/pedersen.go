package backend

import (
	"fmt"

	"github.com/privacyzk/privacyzk/pkg/commitment"
	"github.com/privacyzk/privacyzk/pkg/curve"
	"github.com/privacyzk/privacyzk/pkg/merkle"
	"github.com/privacyzk/privacyzk/pkg/params"
	"github.com/privacyzk/privacyzk/pkg/proofctx"
	"github.com/privacyzk/privacyzk/pkg/randsrc"
	"github.com/privacyzk/privacyzk/pkg/registry"
	"github.com/privacyzk/privacyzk/pkg/statements"
)

// claimOnlyMarker is the public_inputs key the commitment-opening PoK
// sets to distinguish it from a full membership proof. Downstream
// consumers must treat claim_only=true as "opening proof, not
// membership" and never attempt Merkle extraction from it.
const claimOnlyMarker = "claim_only"

// PedersenBackend is the real ProofBackend: Pedersen commitments and
// Schnorr PoKs for all three statements, plus a standalone
// commitment-opening mode.
type PedersenBackend struct {
	params *params.Params
	src    *randsrc.Source
}

// NewPedersenBackend constructs a backend against the process-wide
// curve parameters.
func NewPedersenBackend() (*PedersenBackend, error) {
	p, err := params.Get()
	if err != nil {
		return nil, err
	}
	return &PedersenBackend{params: p, src: randsrc.New()}, nil
}

// GenerateCommitmentOpeningProof produces a standalone opening PoK. The
// envelope's ProofType is "anonymity_set_membership"; the claim_only
// public_inputs marker identifies it as an opening proof.
func (b *PedersenBackend) GenerateCommitmentOpeningProof(ctx proofctx.Context, v, r *curve.Scalar) (*ZKProof, error) {
	ctxHash := ctx.Hash()
	c := commitment.CommitWithBlinding(b.params, v, r)
	proof, err := commitment.Prove(b.params, c.C, v, r, ctxHash[:], b.src)
	if err != nil {
		return nil, fmt.Errorf("backend: generate commitment opening proof: %w", err)
	}
	response := make([]byte, 64)
	putScalar32(response, 0, proof.Zv)
	putScalar32(response, 32, proof.Zb)
	return &ZKProof{
		ProofType:  registry.StatementMembership.String(),
		Commitment: proof.A.Bytes(),
		Challenge:  proof.C.Bytes(),
		Response:   response,
		PublicInputs: map[string]any{
			"commitment":        c.Bytes(),
			"ctx_hash":          ctxHash[:],
			"statement_type":    registry.StatementMembership.String(),
			"statement_version": uint16(1),
			claimOnlyMarker:     true,
		},
	}, nil
}

// VerifyCommitmentOpeningProof verifies a standalone opening PoK.
func (b *PedersenBackend) VerifyCommitmentOpeningProof(proof *ZKProof) bool {
	if proof == nil || len(proof.Challenge) != 32 || len(proof.Response) != 64 {
		return false
	}
	commitBytes, _ := proof.PublicInputs["commitment"].([]byte)
	ctxHashBytes, _ := proof.PublicInputs["ctx_hash"].([]byte)
	if len(ctxHashBytes) != 32 {
		return false
	}
	c, err := curve.ParsePoint(commitBytes)
	if err != nil {
		return false
	}
	a, err := curve.ParsePoint(proof.Commitment)
	if err != nil {
		return false
	}
	op := &commitment.OpeningProof{
		A:  a,
		C:  curve.NewScalarFromBytes(proof.Challenge),
		Zv: curve.NewScalarFromBytes(proof.Response[0:32]),
		Zb: curve.NewScalarFromBytes(proof.Response[32:64]),
	}
	return commitment.Verify(b.params, c, op, ctxHashBytes)
}

// GenerateMembershipProof proves anonymity-set membership of a
// commitment to v under blinding r against the given auth path.
func (b *PedersenBackend) GenerateMembershipProof(ctx proofctx.Context, v, r *curve.Scalar, root merkle.Digest, path []merkle.Step) (*ZKProof, error) {
	ctxHash := ctx.Hash()
	c := commitment.CommitWithBlinding(b.params, v, r)
	pub := statements.MembershipPublicInputs{Root: root, C: c.C, CtxHash: ctxHash, Path: path}
	proof, err := statements.ProveMembership(b.params, pub, v, r, b.src)
	if err != nil {
		return nil, fmt.Errorf("backend: generate membership proof: %w", err)
	}
	response := make([]byte, 64)
	putScalar32(response, 0, proof.Zv)
	putScalar32(response, 32, proof.Zb)
	return &ZKProof{
		ProofType:  registry.StatementMembership.String(),
		Commitment: proof.A.Bytes(),
		Challenge:  proof.C.Bytes(),
		Response:   response,
		PublicInputs: map[string]any{
			"root":              root[:],
			"commitment":        c.Bytes(),
			"ctx_hash":          ctxHash[:],
			"auth_path":         path,
			"statement_type":    registry.StatementMembership.String(),
			"statement_version": uint16(1),
		},
	}, nil
}

// VerifyMembershipProof verifies a membership ZKProof.
func (b *PedersenBackend) VerifyMembershipProof(proof *ZKProof) bool {
	pub, ok := decodeMembershipPublicInputs(proof)
	if !ok {
		return false
	}
	sp, err := decodeMembershipSchnorr(proof)
	if err != nil {
		return false
	}
	return statements.VerifyMembership(b.params, pub, sp)
}

func decodeMembershipPublicInputs(proof *ZKProof) (statements.MembershipPublicInputs, bool) {
	var pub statements.MembershipPublicInputs
	if proof == nil {
		return pub, false
	}
	rootBytes, _ := proof.PublicInputs["root"].([]byte)
	commitBytes, _ := proof.PublicInputs["commitment"].([]byte)
	ctxHashBytes, _ := proof.PublicInputs["ctx_hash"].([]byte)
	path, _ := proof.PublicInputs["auth_path"].([]merkle.Step)
	if len(rootBytes) != 32 || len(ctxHashBytes) != 32 {
		return pub, false
	}
	c, err := curve.ParsePoint(commitBytes)
	if err != nil {
		return pub, false
	}
	copy(pub.Root[:], rootBytes)
	copy(pub.CtxHash[:], ctxHashBytes)
	pub.C = c
	pub.Path = path
	return pub, true
}

func decodeMembershipSchnorr(proof *ZKProof) (*statements.MembershipProof, error) {
	if len(proof.Challenge) != 32 || len(proof.Response) != 64 {
		return nil, fmt.Errorf("backend: malformed membership proof lengths")
	}
	a, err := curve.ParsePoint(proof.Commitment)
	if err != nil {
		return nil, err
	}
	return &statements.MembershipProof{
		A:  a,
		C:  curve.NewScalarFromBytes(proof.Challenge),
		Zv: curve.NewScalarFromBytes(proof.Response[0:32]),
		Zb: curve.NewScalarFromBytes(proof.Response[32:64]),
	}, nil
}

// GenerateUnlinkabilityProof proves session unlinkability of a
// commitment to v under blinding r, bound to ctx.
func (b *PedersenBackend) GenerateUnlinkabilityProof(ctx proofctx.Context, v, r *curve.Scalar) (*ZKProof, error) {
	ctxHash := ctx.Hash()
	c := commitment.CommitWithBlinding(b.params, v, r)
	tag := statements.ComputeUnlinkabilityTag(ctxHash, c.C)
	pub := statements.UnlinkabilityPublicInputs{Tag: tag, C: c.C, CtxHash: ctxHash}
	proof, err := statements.ProveUnlinkability(b.params, pub, v, r, b.src)
	if err != nil {
		return nil, fmt.Errorf("backend: generate unlinkability proof: %w", err)
	}
	response := make([]byte, 64)
	putScalar32(response, 0, proof.Zv)
	putScalar32(response, 32, proof.Zb)
	return &ZKProof{
		ProofType:  registry.StatementUnlinkability.String(),
		Commitment: proof.A.Bytes(),
		Challenge:  proof.C.Bytes(),
		Response:   response,
		PublicInputs: map[string]any{
			"tag":               tag[:],
			"commitment":        c.Bytes(),
			"ctx_hash":          ctxHash[:],
			"statement_type":    registry.StatementUnlinkability.String(),
			"statement_version": uint16(1),
		},
	}, nil
}

// VerifyUnlinkabilityProof verifies an unlinkability ZKProof.
func (b *PedersenBackend) VerifyUnlinkabilityProof(proof *ZKProof) bool {
	if proof == nil || len(proof.Challenge) != 32 || len(proof.Response) != 64 {
		return false
	}
	tagBytes, _ := proof.PublicInputs["tag"].([]byte)
	commitBytes, _ := proof.PublicInputs["commitment"].([]byte)
	ctxHashBytes, _ := proof.PublicInputs["ctx_hash"].([]byte)
	if len(tagBytes) != 32 || len(ctxHashBytes) != 32 {
		return false
	}
	c, err := curve.ParsePoint(commitBytes)
	if err != nil {
		return false
	}
	a, err := curve.ParsePoint(proof.Commitment)
	if err != nil {
		return false
	}
	var pub statements.UnlinkabilityPublicInputs
	copy(pub.Tag[:], tagBytes)
	copy(pub.CtxHash[:], ctxHashBytes)
	pub.C = c
	sp := &statements.UnlinkabilityProof{
		A:  a,
		C:  curve.NewScalarFromBytes(proof.Challenge),
		Zv: curve.NewScalarFromBytes(proof.Response[0:32]),
		Zb: curve.NewScalarFromBytes(proof.Response[32:64]),
	}
	return statements.VerifyUnlinkability(b.params, pub, sp)
}

// GenerateContinuityProof proves that C1 and C2 commit to the same v
// under blindings r1, r2 respectively.
func (b *PedersenBackend) GenerateContinuityProof(ctx proofctx.Context, v, r1, r2 *curve.Scalar) (*ZKProof, error) {
	ctxHash := ctx.Hash()
	c1 := commitment.CommitWithBlinding(b.params, v, r1)
	c2 := commitment.CommitWithBlinding(b.params, v, r2)
	pub := statements.ContinuityPublicInputs{C1: c1.C, C2: c2.C, CtxHash: ctxHash}
	proof, err := statements.ProveContinuity(b.params, pub, v, r1, r2, b.src)
	if err != nil {
		return nil, fmt.Errorf("backend: generate continuity proof: %w", err)
	}
	commit := append(append([]byte{}, proof.A1.Bytes()...), proof.A2.Bytes()...)
	response := make([]byte, 96)
	putScalar32(response, 0, proof.Zv)
	putScalar32(response, 32, proof.Z1)
	putScalar32(response, 64, proof.Z2)
	return &ZKProof{
		ProofType:  registry.StatementContinuity.String(),
		Commitment: commit,
		Challenge:  proof.C.Bytes(),
		Response:   response,
		PublicInputs: map[string]any{
			"commitment_1":      c1.Bytes(),
			"commitment_2":      c2.Bytes(),
			"ctx_hash":          ctxHash[:],
			"statement_type":    registry.StatementContinuity.String(),
			"statement_version": uint16(1),
		},
	}, nil
}

// VerifyContinuityProof verifies a continuity ZKProof.
func (b *PedersenBackend) VerifyContinuityProof(proof *ZKProof) bool {
	pub, ok := decodeContinuityPublicInputs(proof)
	if !ok {
		return false
	}
	sp, err := decodeContinuitySchnorr(proof)
	if err != nil {
		return false
	}
	return statements.VerifyContinuity(b.params, pub, sp)
}

func decodeContinuityPublicInputs(proof *ZKProof) (statements.ContinuityPublicInputs, bool) {
	var pub statements.ContinuityPublicInputs
	if proof == nil {
		return pub, false
	}
	c1Bytes, _ := proof.PublicInputs["commitment_1"].([]byte)
	c2Bytes, _ := proof.PublicInputs["commitment_2"].([]byte)
	ctxHashBytes, _ := proof.PublicInputs["ctx_hash"].([]byte)
	if len(ctxHashBytes) != 32 {
		return pub, false
	}
	c1, err := curve.ParsePoint(c1Bytes)
	if err != nil {
		return pub, false
	}
	c2, err := curve.ParsePoint(c2Bytes)
	if err != nil {
		return pub, false
	}
	copy(pub.CtxHash[:], ctxHashBytes)
	pub.C1, pub.C2 = c1, c2
	return pub, true
}

func decodeContinuitySchnorr(proof *ZKProof) (*statements.ContinuityProof, error) {
	if len(proof.Commitment) != 66 || len(proof.Challenge) != 32 || len(proof.Response) != 96 {
		return nil, fmt.Errorf("backend: malformed continuity proof lengths")
	}
	a1, err := curve.ParsePoint(proof.Commitment[0:33])
	if err != nil {
		return nil, err
	}
	a2, err := curve.ParsePoint(proof.Commitment[33:66])
	if err != nil {
		return nil, err
	}
	return &statements.ContinuityProof{
		A1: a1, A2: a2,
		C:  curve.NewScalarFromBytes(proof.Challenge),
		Zv: curve.NewScalarFromBytes(proof.Response[0:32]),
		Z1: curve.NewScalarFromBytes(proof.Response[32:64]),
		Z2: curve.NewScalarFromBytes(proof.Response[64:96]),
	}, nil
}

// GenerateProof implements the generic ProofBackend interface by
// dispatching on publicInputs["statement_type"]/["statement_version"].
// Direct callers that already know which statement they want should
// prefer the typed Generate*Proof methods above; this entry point
// exists for the wire/provider layer, which only has an opaque map.
func (b *PedersenBackend) GenerateProof(ctx proofctx.Context, witness Witness, publicInputs map[string]any) (*ZKProof, error) {
	statementType, _, err := publicInputsStatement(publicInputs)
	if err != nil {
		return nil, err
	}
	switch statementType {
	case registry.StatementMembership:
		rootBytes, _ := publicInputs["root"].([]byte)
		if len(rootBytes) != 32 {
			return nil, fmt.Errorf("backend: membership public_inputs missing 32-byte root")
		}
		var root merkle.Digest
		copy(root[:], rootBytes)
		return b.GenerateMembershipProof(ctx, witness.V, witness.R, root, witness.Path)
	case registry.StatementUnlinkability:
		return b.GenerateUnlinkabilityProof(ctx, witness.V, witness.R)
	case registry.StatementContinuity:
		return b.GenerateContinuityProof(ctx, witness.V, witness.R, witness.R2)
	default:
		return nil, fmt.Errorf("backend: unsupported statement type %s", statementType)
	}
}

// VerifyProof implements the generic ProofBackend interface, dispatching
// on proof.PublicInputs["statement_type"].
func (b *PedersenBackend) VerifyProof(proof *ZKProof, _ map[string]any) bool {
	if proof == nil {
		return false
	}
	if claimOnly, _ := proof.PublicInputs[claimOnlyMarker].(bool); claimOnly {
		return b.VerifyCommitmentOpeningProof(proof)
	}
	statementType, _, err := publicInputsStatement(proof.PublicInputs)
	if err != nil {
		return false
	}
	switch statementType {
	case registry.StatementMembership:
		return b.VerifyMembershipProof(proof)
	case registry.StatementUnlinkability:
		return b.VerifyUnlinkabilityProof(proof)
	case registry.StatementContinuity:
		return b.VerifyContinuityProof(proof)
	default:
		return false
	}
}

// BatchVerify verifies every (proof, publicInputs) pair sequentially.
// Every entry is checked, even after an earlier failure, so a caller
// doing diagnostics can still inspect which entries failed. The
// aggregate result is true iff every entry verified.
func (b *PedersenBackend) BatchVerify(proofs []*ZKProof, publicInputsList []map[string]any) bool {
	allOK := true
	for i, proof := range proofs {
		var pub map[string]any
		if i < len(publicInputsList) {
			pub = publicInputsList[i]
		}
		if !b.VerifyProof(proof, pub) {
			allOK = false
		}
	}
	return allOK
}

// GetBackendInfo reports the Pedersen backend's metadata, including its
// performance_targets_ms and limitations fields.
func (b *PedersenBackend) GetBackendInfo() Info {
	return Info{
		Name:    "pedersen",
		Version: "1.0.0",
		Curve:   "secp256k1",
		Library: "github.com/decred/dcrd/dcrec/secp256k1/v4",
		Features: []string{
			"anonymity_set_membership",
			"session_unlinkability",
			"identity_continuity",
			"commitment_opening_pok",
		},
		PerformanceTargetMs: map[string]float64{
			"generate_proof": 5.0,
			"verify_proof":   2.0,
		},
		Limitations: []string{
			"sequential batch verification (no aggregate/pairing batching)",
			"no Merkle tree caching across requests",
		},
	}
}
