// Command fixturegen produces a canonical-layout artifact bundle
// (vk/pk/public_inputs/proof/instance) under a base directory, for
// exercising the SNARK verification facade and the wire protocol's
// fixture provider in tests without a real circuit-compilation
// pipeline in the loop: same compile-setup-prove-export shape as
// pkg/setup, generalized from a one-off circuit export into the
// directory layout the rest of this module resolves artifacts from.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/privacyzk/privacyzk/pkg/setup"
	"github.com/privacyzk/privacyzk/pkg/snark"
)

func main() {
	base := flag.String("base", "./artifacts", "artifact base directory")
	statement := flag.String("statement", "membership", "statement name (membership|unlinkability|continuity)")
	schemaVersion := flag.Uint("schema-version", 2, "schema version")
	depth := flag.Int("depth", 16, "membership tree depth (ignored for non-membership statements)")
	flag.Parse()

	info, ok := snark.LookupSchema(*statement, uint16(*schemaVersion))
	if !ok {
		log.Fatalf("fixturegen: no schema entry for statement=%s schema_v=%d", *statement, *schemaVersion)
	}

	dir := filepath.Join(*base, *statement, fmt.Sprintf("v%d", info.SchemaVersion), fmt.Sprintf("depth-%d", *depth))

	circuit := &fixtureCircuit{}
	ccs, err := setup.CompileCircuit(circuit)
	if err != nil {
		log.Fatalf("fixturegen: %v", err)
	}
	pk, vk, err := setup.DevSetup(circuit)
	if err != nil {
		log.Fatalf("fixturegen: %v", err)
	}

	assignment := &fixtureCircuit{Commitment: 1, Blinding: 1}
	proof, publicWitness, err := setup.Prove(ccs, pk, assignment)
	if err != nil {
		log.Fatalf("fixturegen: %v", err)
	}

	var witnessBuf bytes.Buffer
	if _, err := publicWitness.WriteTo(&witnessBuf); err != nil {
		log.Fatalf("fixturegen: serialize public witness: %v", err)
	}

	if err := sanityVerify(info, proof, vk, witnessBuf.Bytes()); err != nil {
		log.Fatalf("fixturegen: sanity verify of freshly-generated proof failed: %v", err)
	}

	if err := setup.SaveObject(filepath.Join(dir, "vk.bin"), vk); err != nil {
		log.Fatal(err)
	}
	if err := setup.SaveObject(filepath.Join(dir, "pk.bin"), pk); err != nil {
		log.Fatal(err)
	}
	if err := setup.SaveObject(filepath.Join(dir, "proof.bin"), proof); err != nil {
		log.Fatal(err)
	}

	publicInputs := append(snark.BuildHeaderV2(info), witnessBuf.Bytes()...)
	if err := os.WriteFile(filepath.Join(dir, "public_inputs.bin"), publicInputs, 0o644); err != nil {
		log.Fatalf("fixturegen: write public_inputs.bin: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "instance.bin"), witnessBuf.Bytes(), 0o644); err != nil {
		log.Fatalf("fixturegen: write instance.bin: %v", err)
	}

	fmt.Printf("fixturegen: wrote %s\n", dir)
}

// sanityVerify round-trips the just-produced artifacts back through the
// facade's own ExplainVerify before anything is written to disk, so a
// bug in the export shape is caught here instead of by whatever test
// consumes the fixture later.
func sanityVerify(info snark.SchemaInfo, proof, vk io.WriterTo, witnessBytes []byte) error {
	var vkBuf, proofBuf bytes.Buffer
	if _, err := vk.WriteTo(&vkBuf); err != nil {
		return err
	}
	if _, err := proof.WriteTo(&proofBuf); err != nil {
		return err
	}
	publicInputs := append(snark.BuildHeaderV2(info), witnessBytes...)
	ok, err := snark.ExplainVerify(info.Statement, info.SchemaVersion, vkBuf.Bytes(), publicInputs, proofBuf.Bytes())
	if !ok {
		return err
	}
	return nil
}
