package wire

import (
	"bytes"
	"context"
	"net"
	"testing"

	"github.com/rs/zerolog"
)

func TestCallDefaultsMsgVersion(t *testing.T) {
	clientConn, serverConn := net.Pipe()
	defer clientConn.Close()

	go func() {
		_ = Serve(context.Background(), serverConn, &stubProvider{publicInputs: []byte("pi"), proof: []byte("p")}, zerolog.Nop())
	}()

	req := &ProofRequest{Stmt: "membership", SchemaV: 2, Depth: 16, Nonce: bytes.Repeat([]byte{0x09}, 16)}
	if req.MsgV != 0 {
		t.Fatalf("test setup: expected zero-value MsgV before Call")
	}
	if _, err := Call(clientConn, req); err != nil {
		t.Fatalf("Call: %v", err)
	}
	if req.MsgV != MsgVersion {
		t.Fatalf("Call did not default req.MsgV to %d, got %d", MsgVersion, req.MsgV)
	}
}

func TestCallRejectsInvalidRequestBeforeWriting(t *testing.T) {
	clientConn, serverConn := net.Pipe()
	defer serverConn.Close()
	defer clientConn.Close()

	req := &ProofRequest{Stmt: "membership", Nonce: []byte("short")}
	if _, err := Call(clientConn, req); err == nil {
		t.Fatalf("Call accepted a request with an invalid nonce")
	}
}
