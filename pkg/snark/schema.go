// Package snark implements the SNARK verification facade: a typed,
// table-driven verifier over externally-built proof artifacts (vk,
// public inputs, proof), with header-validated public inputs and a
// canonical artifact directory layout. Circuit compilation and proving
// are out of scope here; this package only verifies artifacts someone
// else produced, dispatching the actual pairing check to gnark's
// groth16/plonk verifiers, the same gnark types pkg/setup loads and
// exercises for key export/import.
package snark

import "fmt"

// Backend names the proof system a schema entry's artifacts were
// produced with.
type Backend string

const (
	BackendGroth16 Backend = "groth16"
	BackendPlonk   Backend = "plonk"
)

// SchemaInfo pins, for one (statement, schema_version) pair, the
// statement-type and statement-version tags expected in the
// public-inputs header, the proof system backend, and the verifier
// entry point name recorded for diagnostics.
type SchemaInfo struct {
	Statement        string
	SchemaVersion    uint16
	StatementTypeTag uint16
	StatementVerTag  uint16
	Backend          Backend
	EntryPoint       string
}

type schemaKey struct {
	statement string
	version   uint16
}

// schemaTable is the compile-time table the facade dispatches through.
// Entries here describe *how an externally-produced artifact set claims
// to have been built*; this package trusts the table, not the artifact,
// which is exactly why the header check exists.
var schemaTable = map[schemaKey]SchemaInfo{
	{"membership", 2}: {
		Statement: "membership", SchemaVersion: 2,
		StatementTypeTag: 1, StatementVerTag: 1,
		Backend: BackendGroth16, EntryPoint: "verifyMembershipGroth16",
	},
	{"unlinkability", 2}: {
		Statement: "unlinkability", SchemaVersion: 2,
		StatementTypeTag: 2, StatementVerTag: 1,
		Backend: BackendGroth16, EntryPoint: "verifyUnlinkabilityGroth16",
	},
	{"continuity", 2}: {
		Statement: "continuity", SchemaVersion: 2,
		StatementTypeTag: 3, StatementVerTag: 1,
		Backend: BackendGroth16, EntryPoint: "verifyContinuityGroth16",
	},
	{"membership", 1}: {
		Statement: "membership", SchemaVersion: 1,
		StatementTypeTag: 1, StatementVerTag: 1,
		Backend: BackendGroth16, EntryPoint: "verifyMembershipGroth16",
	},
}

// LookupSchema returns the SchemaInfo for (statement, schemaVersion).
func LookupSchema(statement string, schemaVersion uint16) (SchemaInfo, bool) {
	info, ok := schemaTable[schemaKey{statement, schemaVersion}]
	return info, ok
}

// schemaError wraps the facade's own failures distinctly from a verifier
// reject, so ExplainVerify can report which.
type schemaError struct{ msg string }

func (e *schemaError) Error() string { return e.msg }

func newSchemaError(format string, args ...any) error {
	return &schemaError{msg: fmt.Sprintf("snark: "+format, args...)}
}
