package backend

import (
	"crypto/rand"
	"fmt"

	"github.com/privacyzk/privacyzk/pkg/proofctx"
	"github.com/privacyzk/privacyzk/pkg/registry"
)

// MockBackend is a deterministic-shape stand-in that exposes the full
// ProofBackend capability set and emits structurally-valid ZKProof
// values, but performs no cryptography: verification succeeds iff a
// minimal envelope check passes (proof-type recognized, field lengths
// correct, statement schema present). It exists only so callers that
// depend on the ProofBackend interface can be exercised without the
// real backend's cost, and must never be reachable in production; see
// NewMockBackend.
type MockBackend struct{}

// NewMockBackend constructs a MockBackend. allowMock must be true; this
// is not a convenience default but an explicit admission that the
// caller is a test or fixture generator. The mock backend must never
// be selectable in production.
func NewMockBackend(allowMock bool) (*MockBackend, error) {
	if !allowMock {
		return nil, fmt.Errorf("backend: mock backend requires an explicit AllowMock opt-in")
	}
	return &MockBackend{}, nil
}

func randomBytes(n int) []byte {
	b := make([]byte, n)
	_, _ = rand.Read(b)
	return b
}

func commitmentLenFor(t registry.StatementType) int {
	if t == registry.StatementContinuity {
		return 66
	}
	return 33
}

func responseLenFor(t registry.StatementType) int {
	if t == registry.StatementContinuity {
		return 96
	}
	return 64
}

// GenerateProof emits a structurally-valid, cryptographically
// meaningless ZKProof for the statement named in publicInputs.
func (m *MockBackend) GenerateProof(_ proofctx.Context, _ Witness, publicInputs map[string]any) (*ZKProof, error) {
	statementType, version, err := publicInputsStatement(publicInputs)
	if err != nil {
		return nil, err
	}
	if _, ok := registry.Lookup(statementType, version); !ok {
		return nil, fmt.Errorf("backend: mock: no registry entry for %s v%d", statementType, version)
	}
	out := map[string]any{}
	for k, v := range publicInputs {
		out[k] = v
	}
	return &ZKProof{
		ProofType:    statementType.String(),
		Commitment:   randomBytes(commitmentLenFor(statementType)),
		Challenge:    randomBytes(32),
		Response:     randomBytes(responseLenFor(statementType)),
		PublicInputs: out,
	}, nil
}

// VerifyProof performs only the minimal envelope check named in the
// spec: proof-type recognized, commitment/challenge/response lengths
// correct for that statement, and the statement registry entry exists.
// It never performs a discrete-log check.
func (m *MockBackend) VerifyProof(proof *ZKProof, _ map[string]any) bool {
	if proof == nil {
		return false
	}
	statementType := parseStatementName(proof.ProofType)
	if statementType == registry.StatementUnknown {
		return false
	}
	version, err := statementVersionOf(proof)
	if err != nil {
		return false
	}
	if _, ok := registry.Lookup(statementType, version); !ok {
		return false
	}
	if len(proof.Commitment) != commitmentLenFor(statementType) {
		return false
	}
	if len(proof.Challenge) != 32 {
		return false
	}
	if len(proof.Response) != responseLenFor(statementType) {
		return false
	}
	return true
}

func statementVersionOf(proof *ZKProof) (uint16, error) {
	raw, ok := proof.PublicInputs["statement_version"]
	if !ok {
		return 0, fmt.Errorf("backend: mock: missing statement_version")
	}
	return asUint16(raw)
}

// BatchVerify sequentially verifies every entry; true iff all pass.
func (m *MockBackend) BatchVerify(proofs []*ZKProof, publicInputsList []map[string]any) bool {
	allOK := true
	for i, proof := range proofs {
		var pub map[string]any
		if i < len(publicInputsList) {
			pub = publicInputsList[i]
		}
		if !m.VerifyProof(proof, pub) {
			allOK = false
		}
	}
	return allOK
}

// GetBackendInfo reports the mock backend's metadata.
func (m *MockBackend) GetBackendInfo() Info {
	return Info{
		Name:    "mock",
		Version: "1.0.0",
		Curve:   "none",
		Library: "none",
		Features: []string{
			"anonymity_set_membership (structural only)",
			"session_unlinkability (structural only)",
			"identity_continuity (structural only)",
		},
		PerformanceTargetMs: map[string]float64{
			"generate_proof": 0.01,
			"verify_proof":   0.01,
		},
		Limitations: []string{
			"no cryptographic soundness whatsoever",
			"test-only, never selectable in production",
		},
	}
}
