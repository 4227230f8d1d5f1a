package snark

import "encoding/binary"

// headerLen returns the number of header bytes schemaVersion prepends to
// the public-inputs blob, or -1 if schemaVersion is not header-bearing.
func headerLen(schemaVersion uint16) int {
	switch schemaVersion {
	case 1:
		return 1
	case 2:
		return 6
	default:
		return -1
	}
}

// BuildHeaderV2 encodes the three little-endian u16 header fields for a
// schema_version=2 public-inputs blob, the inverse of validateHeader's
// v2 branch. It exists for fixture/test producers that need to build a
// well-formed public_inputs blob rather than only check one.
func BuildHeaderV2(info SchemaInfo) []byte {
	header := make([]byte, 6)
	binary.LittleEndian.PutUint16(header[0:2], info.SchemaVersion)
	binary.LittleEndian.PutUint16(header[2:4], info.StatementTypeTag)
	binary.LittleEndian.PutUint16(header[4:6], info.StatementVerTag)
	return header
}

// validateHeader checks the public-inputs header against info and
// returns the remaining bytes (the actual witness payload) on success.
//
//   - schema_v=1: the first byte must equal 1.
//   - schema_v=2: the first six bytes are three little-endian u16 fields
//     (schema_version, statement_type, statement_version), each of which
//     must match info.
func validateHeader(info SchemaInfo, publicInputs []byte) ([]byte, error) {
	n := headerLen(info.SchemaVersion)
	if n < 0 {
		return nil, newSchemaError("unsupported schema_version %d", info.SchemaVersion)
	}
	if len(publicInputs) < n {
		return nil, newSchemaError("public_inputs shorter than the %d-byte header", n)
	}

	switch info.SchemaVersion {
	case 1:
		if publicInputs[0] != 1 {
			return nil, newSchemaError("v1 header byte must be 1, got %d", publicInputs[0])
		}
	case 2:
		schemaVersion := binary.LittleEndian.Uint16(publicInputs[0:2])
		statementType := binary.LittleEndian.Uint16(publicInputs[2:4])
		statementVersion := binary.LittleEndian.Uint16(publicInputs[4:6])
		if schemaVersion != info.SchemaVersion {
			return nil, newSchemaError("header schema_version %d != table %d", schemaVersion, info.SchemaVersion)
		}
		if statementType != info.StatementTypeTag {
			return nil, newSchemaError("header statement_type %d != table %d", statementType, info.StatementTypeTag)
		}
		if statementVersion != info.StatementVerTag {
			return nil, newSchemaError("header statement_version %d != table %d", statementVersion, info.StatementVerTag)
		}
	}
	return publicInputs[n:], nil
}
