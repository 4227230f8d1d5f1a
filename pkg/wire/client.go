package wire

import (
	"fmt"
)

// Call performs one full client exchange: write req, read and decode the
// response, then close the stream. It does not open the stream itself
// (the p2p mux collaborator owns dialing and ProtocolID negotiation);
// the caller hands Call an already-open Stream.
func Call(s Stream, req *ProofRequest) (*ProofResponse, error) {
	defer func() {
		_ = s.Close()
	}()

	if req.MsgV == 0 {
		req.MsgV = MsgVersion
	}

	payload, err := EncodeRequest(req)
	if err != nil {
		return nil, fmt.Errorf("wire: client: %w", err)
	}
	if err := WriteFrame(s, payload, WriteTimeout); err != nil {
		return nil, fmt.Errorf("wire: client: write request: %w", err)
	}

	respBytes, err := ReadFrame(s, ReadTimeout)
	if err != nil {
		return nil, fmt.Errorf("wire: client: read response: %w", err)
	}

	resp, err := DecodeResponse(respBytes)
	if err != nil {
		return nil, fmt.Errorf("wire: client: decode response: %w", err)
	}
	return resp, nil
}
