// Package registry implements the statement registry: a static,
// compile-time table mapping (statement type, version) to a
// StatementSpec, a typed lookup in place of a dynamic per-statement
// dict schema.
package registry

import "fmt"

// StatementType is a closed set of the statements this toolkit proves
// and verifies.
type StatementType int

const (
	// StatementUnknown is the zero value, never a valid registry key.
	StatementUnknown StatementType = iota
	StatementMembership
	StatementUnlinkability
	StatementContinuity
)

// String returns the long-form registry name used in ZKProof envelopes'
// public_inputs["statement_type"].
func (t StatementType) String() string {
	switch t {
	case StatementMembership:
		return "anonymity_set_membership"
	case StatementUnlinkability:
		return "session_unlinkability"
	case StatementContinuity:
		return "identity_continuity"
	default:
		return "unknown"
	}
}

// WireTag returns the short tag used in the wire protocol's ProofRequest.T
// field, distinct from the registry's long-form name.
func (t StatementType) WireTag() string {
	switch t {
	case StatementMembership:
		return "membership"
	case StatementUnlinkability:
		return "unlinkability"
	case StatementContinuity:
		return "continuity"
	default:
		return ""
	}
}

// ParseWireTag maps a wire-level "t" string back to a StatementType.
func ParseWireTag(tag string) (StatementType, bool) {
	switch tag {
	case "membership":
		return StatementMembership, true
	case "unlinkability":
		return StatementUnlinkability, true
	case "continuity":
		return StatementContinuity, true
	default:
		return StatementUnknown, false
	}
}

// StatementSpec describes one versioned statement schema: its public
// and witness field names (for presence validation) and a human
// description, mirroring the source's StatementSpec dataclass.
type StatementSpec struct {
	Type              StatementType
	Version           uint16
	PublicInputFields []string
	WitnessFields     []string
	Description       string
}

type registryKey struct {
	t StatementType
	v uint16
}

var statementRegistry = map[registryKey]StatementSpec{
	{StatementMembership, 1}: {
		Type: StatementMembership, Version: 1,
		PublicInputFields: []string{"root", "commitment", "ctx_hash", "auth_path"},
		WitnessFields:     []string{"v", "r", "path"},
		Description:       "anonymity-set membership via Merkle root + Schnorr opening PoK",
	},
	{StatementUnlinkability, 1}: {
		Type: StatementUnlinkability, Version: 1,
		PublicInputFields: []string{"tag", "commitment", "ctx_hash"},
		WitnessFields:     []string{"v", "r"},
		Description:       "session unlinkability via deterministic tag + Schnorr opening PoK",
	},
	{StatementContinuity, 1}: {
		Type: StatementContinuity, Version: 1,
		PublicInputFields: []string{"commitment_1", "commitment_2", "ctx_hash"},
		WitnessFields:     []string{"v", "r1", "r2"},
		Description:       "identity continuity via shared-nonce two-equation Schnorr PoK",
	},
}

// Lookup returns the StatementSpec for (t, version), or false if the
// combination is not registered. An unknown statement type or an
// unsupported version are both a hard reject, never a best-effort match.
func Lookup(t StatementType, version uint16) (StatementSpec, bool) {
	spec, ok := statementRegistry[registryKey{t, version}]
	return spec, ok
}

// ValidatePublicInputs enforces that every field named in a statement's
// PublicInputFields is present in inputs. Field value typing is enforced
// by the typed public-input structs in pkg/statements; this check exists
// for the generic opaque-map entry points (e.g. the wire provider layer)
// that assemble inputs before they are typed.
func ValidatePublicInputs(t StatementType, version uint16, inputs map[string]any) error {
	spec, ok := Lookup(t, version)
	if !ok {
		return fmt.Errorf("registry: no statement spec for %s v%d", t, version)
	}
	for _, field := range spec.PublicInputFields {
		if _, present := inputs[field]; !present {
			return fmt.Errorf("registry: missing required public input field %q for %s v%d", field, t, version)
		}
	}
	return nil
}
