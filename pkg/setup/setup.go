// Package setup compiles a gnark circuit and exports a groth16 key/proof
// bundle to a directory: compile-setup-export shape (CompileCircuit,
// DevSetup, SaveObject/LoadObject over io.WriterTo/io.ReaderFrom),
// narrowed to what the verification facade's fixture producer needs.
// A full multi-party ceremony (Phase1/Phase2 contributions, beacon
// sealing, Solidity export) has no counterpart here: nothing in this
// module runs a circuit-specific trusted setup or deploys a verifier
// contract, only a single-party dev setup sufficient to produce
// artifacts the facade can verify in tests.
package setup

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/backend/groth16"
	"github.com/consensys/gnark/constraint"
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/frontend/cs/r1cs"
)

// CompileCircuit compiles a gnark circuit into an R1CS constraint
// system over the BN254 scalar field.
func CompileCircuit(circuit frontend.Circuit) (constraint.ConstraintSystem, error) {
	ccs, err := frontend.Compile(ecc.BN254.ScalarField(), r1cs.NewBuilder, circuit)
	if err != nil {
		return nil, fmt.Errorf("setup: compile circuit: %w", err)
	}
	return ccs, nil
}

// DevSetup performs a single-party groth16 setup. NOT for production
// use beyond fixture generation: a single party sees the toxic waste,
// so any statement proved against these keys carries no soundness
// guarantee outside a test environment.
func DevSetup(circuit frontend.Circuit) (groth16.ProvingKey, groth16.VerifyingKey, error) {
	ccs, err := CompileCircuit(circuit)
	if err != nil {
		return nil, nil, err
	}
	pk, vk, err := groth16.Setup(ccs)
	if err != nil {
		return nil, nil, fmt.Errorf("setup: groth16 setup: %w", err)
	}
	return pk, vk, nil
}

// Prove runs groth16.Prove for assignment against ccs/pk, returning both
// the proof and the extracted public witness so a caller can export
// both without recomputing the witness separately.
func Prove(ccs constraint.ConstraintSystem, pk groth16.ProvingKey, assignment frontend.Circuit) (groth16.Proof, witnessPublic, error) {
	fullWitness, err := frontend.NewWitness(assignment, ecc.BN254.ScalarField())
	if err != nil {
		return nil, witnessPublic{}, fmt.Errorf("setup: build witness: %w", err)
	}
	publicWitness, err := fullWitness.Public()
	if err != nil {
		return nil, witnessPublic{}, fmt.Errorf("setup: extract public witness: %w", err)
	}
	proof, err := groth16.Prove(ccs, pk, fullWitness)
	if err != nil {
		return nil, witnessPublic{}, fmt.Errorf("setup: prove: %w", err)
	}
	return proof, witnessPublic{w: publicWitness}, nil
}

// witnessPublic wraps the gnark public witness so its WriteTo can be
// used with SaveObject without exposing the gnark witness package type
// name at this package's API surface.
type witnessPublic struct {
	w io.WriterTo
}

func (p witnessPublic) WriteTo(w io.Writer) (int64, error) { return p.w.WriteTo(w) }

// SaveObject writes obj (a key, proof, or witness: anything
// gnark-serializable) to path.
func SaveObject(path string, obj io.WriterTo) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("setup: create %s: %w", dir, err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("setup: create %s: %w", path, err)
	}
	defer f.Close()
	if _, err := obj.WriteTo(f); err != nil {
		return fmt.Errorf("setup: write %s: %w", path, err)
	}
	return nil
}

// LoadObject reads obj (a key or proof) from path.
func LoadObject(path string, obj io.ReaderFrom) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("setup: open %s: %w", path, err)
	}
	defer f.Close()
	if _, err := obj.ReadFrom(f); err != nil {
		return fmt.Errorf("setup: read %s: %w", path, err)
	}
	return nil
}

// LoadVerifyingKey loads a groth16 verifying key from path.
func LoadVerifyingKey(path string) (groth16.VerifyingKey, error) {
	vk := groth16.NewVerifyingKey(ecc.BN254)
	if err := LoadObject(path, vk); err != nil {
		return nil, err
	}
	return vk, nil
}
