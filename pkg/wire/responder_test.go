package wire

import (
	"bytes"
	"context"
	"fmt"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

type stubProvider struct {
	publicInputs, proof []byte
	meta                map[string]string
	err                 error
}

func (s *stubProvider) Prove(stmt string, schemaV uint16, depth int, nonce []byte) ([]byte, []byte, map[string]string, error) {
	if s.err != nil {
		return nil, nil, nil, s.err
	}
	return s.publicInputs, s.proof, s.meta, nil
}

// TestServeClientRoundTrip reproduces spec scenario S6: a client sends a
// ProofRequest with a 16-byte nonce over a live stream and receives back
// a well-formed, verifiable ProofResponse.
func TestServeClientRoundTrip(t *testing.T) {
	clientConn, serverConn := net.Pipe()
	defer clientConn.Close()

	provider := &stubProvider{
		publicInputs: []byte("public-inputs-bytes"),
		proof:        []byte("proof-bytes"),
		meta:         map[string]string{"prove_mode": "fixture"},
	}

	done := make(chan error, 1)
	go func() {
		done <- Serve(context.Background(), serverConn, provider, zerolog.Nop())
	}()

	req := &ProofRequest{Stmt: "membership", SchemaV: 2, Depth: 16, Nonce: bytes.Repeat([]byte{0x07}, 16)}
	resp, err := Call(clientConn, req)
	if err != nil {
		t.Fatalf("Call: %v", err)
	}
	if !resp.OK {
		t.Fatalf("Call returned ok=false: %s", resp.Err)
	}
	if string(resp.PublicInputs) != "public-inputs-bytes" || string(resp.Proof) != "proof-bytes" {
		t.Fatalf("Call returned unexpected payload: %+v", resp)
	}
	meta := DecodeMeta(resp.Meta)
	if meta["prove_mode"] != "fixture" {
		t.Fatalf("Call response meta missing prove_mode=fixture: %+v", meta)
	}

	if err := <-done; err != nil {
		t.Fatalf("Serve returned an error: %v", err)
	}
}

func TestServeProviderFailureYieldsErrorResponse(t *testing.T) {
	clientConn, serverConn := net.Pipe()
	defer clientConn.Close()

	provider := &stubProvider{err: fmt.Errorf("no fixture for this statement")}

	go func() {
		_ = Serve(context.Background(), serverConn, provider, zerolog.Nop())
	}()

	req := &ProofRequest{Stmt: "membership", SchemaV: 2, Depth: 16, Nonce: bytes.Repeat([]byte{0x01}, 16)}
	resp, err := Call(clientConn, req)
	if err != nil {
		t.Fatalf("Call: %v", err)
	}
	if resp.OK {
		t.Fatalf("Call returned ok=true for a failing provider")
	}
	// A provider's own returned error is its diagnosis of the failure and
	// must be carried into the response verbatim, not collapsed to a
	// generic message.
	if resp.Err != "no fixture for this statement" {
		t.Fatalf("resp.Err = %q, want the provider's own error text", resp.Err)
	}
}

// TestServeRealProviderFailureSurfacesRealProvingFailed reproduces the
// real-provider-specific failure text: a prover callback error is
// reported to the peer as exactly "real proving failed", never the
// generic provider-panic message.
func TestServeRealProviderFailureSurfacesRealProvingFailed(t *testing.T) {
	clientConn, serverConn := net.Pipe()
	defer clientConn.Close()

	provider := &RealProvider{ProverFn: func(string, uint16, int, []byte) ([]byte, []byte, map[string]string, error) {
		return nil, nil, nil, fmt.Errorf("subprocess exited with status 1")
	}}

	go func() {
		_ = Serve(context.Background(), serverConn, provider, zerolog.Nop())
	}()

	req := &ProofRequest{Stmt: "membership", SchemaV: 2, Depth: 16, Nonce: bytes.Repeat([]byte{0x03}, 16)}
	resp, err := Call(clientConn, req)
	if err != nil {
		t.Fatalf("Call: %v", err)
	}
	if resp.OK {
		t.Fatalf("Call returned ok=true for a failing real provider")
	}
	if resp.Err != "real proving failed" {
		t.Fatalf("resp.Err = %q, want \"real proving failed\"", resp.Err)
	}
}

// TestServeFixtureProviderFailureSurfacesOwnDiagnostic reproduces the
// fixture-provider-specific failure text: a missing on-disk artifact is
// reported to the peer with the resolver's own diagnostic, not a
// generic message.
func TestServeFixtureProviderFailureSurfacesOwnDiagnostic(t *testing.T) {
	clientConn, serverConn := net.Pipe()
	defer clientConn.Close()

	provider := &FixtureProvider{Base: t.TempDir()}

	go func() {
		_ = Serve(context.Background(), serverConn, provider, zerolog.Nop())
	}()

	req := &ProofRequest{Stmt: "membership", SchemaV: 2, Depth: 16, Nonce: bytes.Repeat([]byte{0x04}, 16)}
	resp, err := Call(clientConn, req)
	if err != nil {
		t.Fatalf("Call: %v", err)
	}
	if resp.OK {
		t.Fatalf("Call returned ok=true for a missing fixture")
	}
	if resp.Err == "" || resp.Err == "provider error" || resp.Err == "real proving failed" {
		t.Fatalf("resp.Err = %q, want the fixture resolver's own diagnostic", resp.Err)
	}
	if !strings.HasPrefix(resp.Err, "fixture: ") {
		t.Fatalf("resp.Err = %q, want a \"fixture: \"-prefixed diagnostic", resp.Err)
	}
}

type panicProvider struct{}

func (panicProvider) Prove(string, uint16, int, []byte) ([]byte, []byte, map[string]string, error) {
	panic("boom")
}

func TestServeContainsProviderPanic(t *testing.T) {
	clientConn, serverConn := net.Pipe()
	defer clientConn.Close()

	go func() {
		_ = Serve(context.Background(), serverConn, panicProvider{}, zerolog.Nop())
	}()

	req := &ProofRequest{Stmt: "membership", SchemaV: 2, Depth: 16, Nonce: bytes.Repeat([]byte{0x02}, 16)}
	resp, err := Call(clientConn, req)
	if err != nil {
		t.Fatalf("Call: %v", err)
	}
	if resp.OK {
		t.Fatalf("Call returned ok=true despite a panicking provider")
	}
}

func TestTimeUntilClampsToFallback(t *testing.T) {
	deadline := time.Now().Add(time.Hour)
	got := timeUntil(deadline, time.Second)
	if got != time.Second {
		t.Fatalf("timeUntil = %v, want %v (clamped to fallback)", got, time.Second)
	}
}

func TestTimeUntilZeroWhenDeadlinePassed(t *testing.T) {
	deadline := time.Now().Add(-time.Second)
	if got := timeUntil(deadline, time.Second); got != 0 {
		t.Fatalf("timeUntil = %v, want 0 for a passed deadline", got)
	}
}
