package wire

import (
	"errors"
	"fmt"

	"github.com/privacyzk/privacyzk/config"
	"github.com/privacyzk/privacyzk/pkg/snark"
)

// ProofProvider produces the (public_inputs, proof) pair a responder
// places into a ProofResponse for one request. meta is merged into the
// response's Meta blob; a non-nil error means "could not prove",
// translated by the responder into an ok=false response whose err is
// the error's text (truncated to the err cap).
type ProofProvider interface {
	Prove(stmt string, schemaV uint16, depth int, nonce []byte) (publicInputs, proof []byte, meta map[string]string, err error)
}

// FixtureProvider answers every request from pre-built, on-disk
// artifacts resolved the same way the SNARK facade resolves a verifier's
// inputs, so a fixture and a verification target are guaranteed to use
// the same directory layout.
type FixtureProvider struct {
	Base string
}

func (p *FixtureProvider) Prove(stmt string, schemaV uint16, depth int, _ []byte) ([]byte, []byte, map[string]string, error) {
	publicInputs, _, err := snark.ResolveArtifact(p.Base, stmt, schemaV, depth, snark.ArtifactPublicInputs)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("fixture: %w", err)
	}
	proof, _, err := snark.ResolveArtifact(p.Base, stmt, schemaV, depth, snark.ArtifactProof)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("fixture: %w", err)
	}
	return publicInputs, proof, map[string]string{"prove_mode": "fixture"}, nil
}

// RealProverFunc is the pluggable callback a RealProvider invokes to
// actually produce a proof; it is the seam between this package and
// whatever concrete backend (pkg/backend, an external prover process)
// does the cryptography.
type RealProverFunc func(stmt string, schemaV uint16, depth int, nonce []byte) (publicInputs, proof []byte, proverMeta map[string]string, err error)

// RealProvider delegates proving to a caller-supplied callback,
// enforcing the response size caps on whatever the callback returns
// before handing it back to the responder. It does not itself validate
// the request's statement, schema version, depth or nonce; on the
// responder path DecodeRequest has already checked msg_v, a non-empty
// statement and the nonce length.
type RealProvider struct {
	ProverFn RealProverFunc
}

func (p *RealProvider) Prove(stmt string, schemaV uint16, depth int, nonce []byte) ([]byte, []byte, map[string]string, error) {
	if p.ProverFn == nil {
		return nil, nil, nil, fmt.Errorf("real: no prover configured")
	}
	publicInputs, proof, proverMeta, err := p.ProverFn(stmt, schemaV, depth, nonce)
	if err != nil {
		// The callback is an arbitrary external collaborator (pkg/backend, a
		// subprocess, ...); its failure reasons are not this package's to
		// surface to a peer, so this is deliberately not %w-wrapped.
		return nil, nil, nil, errors.New("real proving failed")
	}
	if len(publicInputs) > config.PublicInputsMaxBytes {
		return nil, nil, nil, fmt.Errorf("real: public_inputs %d bytes exceeds cap %d", len(publicInputs), config.PublicInputsMaxBytes)
	}
	if len(proof) > config.ProofMaxBytes {
		return nil, nil, nil, fmt.Errorf("real: proof %d bytes exceeds cap %d", len(proof), config.ProofMaxBytes)
	}
	meta := map[string]string{"prove_mode": "real"}
	for k, v := range proverMeta {
		meta[k] = v
	}
	return publicInputs, proof, meta, nil
}

// HybridProvider tries Real first; on any failure it falls back to
// Fixture, sets meta.fallback_from to "real" and records the real-side
// error text under meta.fallback_reason, so
// a caller can distinguish a genuine fixture-mode deployment from a
// real prover that degraded.
type HybridProvider struct {
	Real    *RealProvider
	Fixture *FixtureProvider
}

func (p *HybridProvider) Prove(stmt string, schemaV uint16, depth int, nonce []byte) ([]byte, []byte, map[string]string, error) {
	publicInputs, proof, meta, err := p.Real.Prove(stmt, schemaV, depth, nonce)
	if err == nil {
		return publicInputs, proof, meta, nil
	}

	publicInputs, proof, fixtureMeta, fixtureErr := p.Fixture.Prove(stmt, schemaV, depth, nonce)
	if fixtureErr != nil {
		return nil, nil, nil, fmt.Errorf("hybrid: real failed (%v), fixture also failed: %w", err, fixtureErr)
	}
	meta = fixtureMeta
	meta["fallback_from"] = "real"
	meta["fallback_reason"] = err.Error()
	return publicInputs, proof, meta, nil
}
