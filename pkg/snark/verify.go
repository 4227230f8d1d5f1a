package snark

import (
	"bytes"
	"fmt"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/backend/groth16"
	"github.com/consensys/gnark/backend/plonk"
	"github.com/consensys/gnark/backend/witness"

	"github.com/privacyzk/privacyzk/config"
)

// Verify implements the facade's public API: verify(statement,
// schema_v, vk, public_inputs, proof) -> bool. Any failure at any step,
// unknown schema, bad header, malformed artifact, failed pairing check,
// collapses to false; callers that need the reason should use
// ExplainVerify.
func Verify(statement string, schemaVersion uint16, vk, publicInputs, proof []byte) bool {
	ok, _ := ExplainVerify(statement, schemaVersion, vk, publicInputs, proof)
	return ok
}

// ExplainVerify is the diagnostic twin of Verify: same boolean result,
// plus a typed error explaining a false outcome (nil on true). The
// public API stays boolean; this variant exposes the reason.
func ExplainVerify(statement string, schemaVersion uint16, vk, publicInputs, proof []byte) (bool, error) {
	if len(vk) > config.ArtifactVKMaxBytes {
		return false, newSchemaError("vk exceeds %d bytes", config.ArtifactVKMaxBytes)
	}
	if len(publicInputs) > config.PublicInputsMaxBytes {
		return false, newSchemaError("public_inputs exceeds %d bytes", config.PublicInputsMaxBytes)
	}
	if len(proof) > config.ProofMaxBytes {
		return false, newSchemaError("proof exceeds %d bytes", config.ProofMaxBytes)
	}

	info, ok := LookupSchema(statement, schemaVersion)
	if !ok {
		return false, newSchemaError("no schema entry for statement=%s schema_v=%d", statement, schemaVersion)
	}

	witnessBytes, err := validateHeader(info, publicInputs)
	if err != nil {
		return false, err
	}

	switch info.Backend {
	case BackendGroth16:
		return verifyGroth16(vk, witnessBytes, proof)
	case BackendPlonk:
		return verifyPlonk(vk, witnessBytes, proof)
	default:
		return false, newSchemaError("unknown verifier backend %q", info.Backend)
	}
}

func verifyGroth16(vkBytes, witnessBytes, proofBytes []byte) (bool, error) {
	vk := groth16.NewVerifyingKey(ecc.BN254)
	if _, err := vk.ReadFrom(bytes.NewReader(vkBytes)); err != nil {
		return false, fmt.Errorf("snark: read groth16 verifying key: %w", err)
	}

	proof := groth16.NewProof(ecc.BN254)
	if _, err := proof.ReadFrom(bytes.NewReader(proofBytes)); err != nil {
		return false, fmt.Errorf("snark: read groth16 proof: %w", err)
	}

	publicWitness, err := witness.New(ecc.BN254.ScalarField())
	if err != nil {
		return false, fmt.Errorf("snark: allocate public witness: %w", err)
	}
	if _, err := publicWitness.ReadFrom(bytes.NewReader(witnessBytes)); err != nil {
		return false, fmt.Errorf("snark: read public witness: %w", err)
	}

	if err := groth16.Verify(proof, vk, publicWitness); err != nil {
		return false, fmt.Errorf("snark: groth16 verification failed: %w", err)
	}
	return true, nil
}

func verifyPlonk(vkBytes, witnessBytes, proofBytes []byte) (bool, error) {
	vk := plonk.NewVerifyingKey(ecc.BN254)
	if _, err := vk.ReadFrom(bytes.NewReader(vkBytes)); err != nil {
		return false, fmt.Errorf("snark: read plonk verifying key: %w", err)
	}

	proof := plonk.NewProof(ecc.BN254)
	if _, err := proof.ReadFrom(bytes.NewReader(proofBytes)); err != nil {
		return false, fmt.Errorf("snark: read plonk proof: %w", err)
	}

	publicWitness, err := witness.New(ecc.BN254.ScalarField())
	if err != nil {
		return false, fmt.Errorf("snark: allocate public witness: %w", err)
	}
	if _, err := publicWitness.ReadFrom(bytes.NewReader(witnessBytes)); err != nil {
		return false, fmt.Errorf("snark: read public witness: %w", err)
	}

	if err := plonk.Verify(proof, vk, publicWitness); err != nil {
		return false, fmt.Errorf("snark: plonk verification failed: %w", err)
	}
	return true, nil
}
