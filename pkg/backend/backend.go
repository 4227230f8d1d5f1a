// Package backend implements the ProofBackend capability abstraction, a
// test-only mock variant, the real Pedersen/Schnorr variant, and the
// feature-flagged factory that selects between them: a closed set of
// concrete Go types behind one interface, in place of a dynamic-import
// backend registry.
package backend

import (
	"fmt"

	"github.com/privacyzk/privacyzk/pkg/curve"
	"github.com/privacyzk/privacyzk/pkg/merkle"
	"github.com/privacyzk/privacyzk/pkg/proofctx"
	"github.com/privacyzk/privacyzk/pkg/registry"
)

// ZKProof is the envelope stored and transported for every proof type.
type ZKProof struct {
	ProofType     string
	Commitment    []byte // A, or A1||A2 for continuity (33 or 66 bytes)
	Challenge     []byte // 32 bytes, big-endian
	Response      []byte // concatenated 32-byte-per-scalar responses
	PublicInputs  map[string]any
	Timestamp     *int64
}

// Witness is the generic, statement-agnostic witness carried into
// GenerateProof. Only the fields relevant to the selected statement
// type need to be populated; which fields those are is determined by
// the registry's WitnessFields for (statement_type, statement_version).
type Witness struct {
	V    *curve.Scalar
	R    *curve.Scalar
	R2   *curve.Scalar // identity continuity's second blinding
	Path []merkle.Step // anonymity-set membership's auth path
}

// ProofBackend is the capability every concrete backend implements:
// generate a proof for a statement, verify one, batch-verify a slice,
// and report backend metadata.
type ProofBackend interface {
	GenerateProof(ctx proofctx.Context, witness Witness, publicInputs map[string]any) (*ZKProof, error)
	VerifyProof(proof *ZKProof, publicInputs map[string]any) bool
	BatchVerify(proofs []*ZKProof, publicInputsList []map[string]any) bool
	GetBackendInfo() Info
}

// Info is the backend metadata map returned by GetBackendInfo, including
// performance_targets_ms and limitations fields alongside the bare
// name/version.
type Info struct {
	Name                string
	Version             string
	Curve               string
	Library             string
	Features            []string
	PerformanceTargetMs map[string]float64
	Limitations         []string
}

// publicInputsStatement extracts and validates the (statement_type,
// statement_version) pair every Phase-2B public_inputs map must carry.
func publicInputsStatement(publicInputs map[string]any) (registry.StatementType, uint16, error) {
	rawType, ok := publicInputs["statement_type"]
	if !ok {
		return registry.StatementUnknown, 0, fmt.Errorf("backend: public_inputs missing statement_type")
	}
	rawVersion, ok := publicInputs["statement_version"]
	if !ok {
		return registry.StatementUnknown, 0, fmt.Errorf("backend: public_inputs missing statement_version")
	}

	typeName, ok := rawType.(string)
	if !ok {
		return registry.StatementUnknown, 0, fmt.Errorf("backend: statement_type must be a string")
	}
	t := parseStatementName(typeName)
	if t == registry.StatementUnknown {
		return registry.StatementUnknown, 0, fmt.Errorf("backend: unknown statement_type %q", typeName)
	}

	version, err := asUint16(rawVersion)
	if err != nil {
		return registry.StatementUnknown, 0, fmt.Errorf("backend: statement_version: %w", err)
	}

	if _, ok := registry.Lookup(t, version); !ok {
		return registry.StatementUnknown, 0, fmt.Errorf("backend: no registry entry for %s v%d", t, version)
	}
	return t, version, nil
}

func parseStatementName(name string) registry.StatementType {
	for _, t := range []registry.StatementType{
		registry.StatementMembership,
		registry.StatementUnlinkability,
		registry.StatementContinuity,
	} {
		if t.String() == name {
			return t
		}
	}
	return registry.StatementUnknown
}

func asUint16(v any) (uint16, error) {
	switch n := v.(type) {
	case uint16:
		return n, nil
	case int:
		return uint16(n), nil
	case uint:
		return uint16(n), nil
	default:
		return 0, fmt.Errorf("unsupported numeric type %T", v)
	}
}

func putScalar32(dst []byte, offset int, s *curve.Scalar) {
	copy(dst[offset:offset+32], s.Bytes())
}
