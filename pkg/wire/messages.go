// Package wire implements the length-prefixed CBOR request/response
// protocol exchanged between a proof requester and a responder over a
// Stream abstraction. The p2p transport/mux stays an external
// collaborator; this package only knows io.Reader/io.Writer/io.Closer
// plus deadlines.
package wire

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"

	"github.com/privacyzk/privacyzk/config"
)

// ProtocolID is the wire protocol's identifier, advertised by whatever
// mux accepts streams on behalf of this package.
const ProtocolID = config.ProtocolID

// MsgVersion is the current wire message version; a mismatch on decode
// is treated like any other schema error rather than a fatal one, so
// future responders can add a version beside this one.
const MsgVersion uint16 = 1

// ProofRequest is the sole message a requester sends on a stream.
type ProofRequest struct {
	MsgV    uint16 `cbor:"msg_v"`
	Stmt    string `cbor:"t"`
	SchemaV uint16 `cbor:"schema_v"`
	Depth   int    `cbor:"d"`
	Nonce   []byte `cbor:"nonce"`
}

// ProofResponse is the sole message a responder sends back. Meta is an
// opaque CBOR-encoded map[string]string blob (EncodeMeta/DecodeMeta),
// not a typed struct field, matching the wire format's meta(bytes)
// shape.
type ProofResponse struct {
	MsgV         uint16 `cbor:"msg_v"`
	OK           bool   `cbor:"ok"`
	Stmt         string `cbor:"t"`
	SchemaV      uint16 `cbor:"schema_v"`
	Depth        int    `cbor:"d"`
	PublicInputs []byte `cbor:"public_inputs"`
	Proof        []byte `cbor:"proof"`
	Meta         []byte `cbor:"meta"`
	Err          string `cbor:"err,omitempty"`
}

// validateNonce enforces the 16..64 byte nonce bound named in the data
// model; everything else about a request is free-form until decode.
func validateNonce(n []byte) error {
	if len(n) < 16 || len(n) > 64 {
		return fmt.Errorf("nonce must be 16..64 bytes, got %d", len(n))
	}
	return nil
}

// EncodeRequest marshals req and enforces the request size cap before
// returning, so a caller never hands an oversized frame to WriteFrame.
func EncodeRequest(req *ProofRequest) ([]byte, error) {
	if err := validateNonce(req.Nonce); err != nil {
		return nil, schemaErr("encode_request", err)
	}
	b, err := cbor.Marshal(req)
	if err != nil {
		return nil, schemaErr("encode_request", err)
	}
	if len(b) > config.RequestMaxBytes {
		return nil, sizeErr("encode_request", fmt.Errorf("%d bytes exceeds %d", len(b), config.RequestMaxBytes))
	}
	return b, nil
}

// DecodeRequest unmarshals and validates a request frame's payload.
// Unknown fields are ignored by the cbor library; missing/invalid
// required fields surface as a schema error here.
func DecodeRequest(payload []byte) (*ProofRequest, error) {
	if len(payload) > config.RequestMaxBytes {
		return nil, sizeErr("decode_request", fmt.Errorf("%d bytes exceeds %d", len(payload), config.RequestMaxBytes))
	}
	var req ProofRequest
	if err := cbor.Unmarshal(payload, &req); err != nil {
		return nil, schemaErr("decode_request", err)
	}
	if req.MsgV != MsgVersion {
		return nil, schemaErr("decode_request", fmt.Errorf("unsupported msg_v %d", req.MsgV))
	}
	if req.Stmt == "" {
		return nil, schemaErr("decode_request", fmt.Errorf("missing statement"))
	}
	if err := validateNonce(req.Nonce); err != nil {
		return nil, schemaErr("decode_request", err)
	}
	return &req, nil
}

// EncodeResponse marshals resp, enforcing every size cap the data model
// names and the ok/err invariant. An over-cap or inconsistent response
// yields an error; the responder's writeFinal then substitutes a small
// error response.
func EncodeResponse(resp *ProofResponse) ([]byte, error) {
	if err := validateResponseCaps(resp); err != nil {
		return nil, err
	}
	b, err := cbor.Marshal(resp)
	if err != nil {
		return nil, schemaErr("encode_response", err)
	}
	return b, nil
}

func validateResponseCaps(resp *ProofResponse) error {
	if len(resp.PublicInputs) > config.PublicInputsMaxBytes {
		return sizeErr("encode_response", fmt.Errorf("public_inputs %d bytes exceeds %d", len(resp.PublicInputs), config.PublicInputsMaxBytes))
	}
	if len(resp.Proof) > config.ProofMaxBytes {
		return sizeErr("encode_response", fmt.Errorf("proof %d bytes exceeds %d", len(resp.Proof), config.ProofMaxBytes))
	}
	if len(resp.Meta) > config.MetaMaxBytes {
		return sizeErr("encode_response", fmt.Errorf("meta %d bytes exceeds %d", len(resp.Meta), config.MetaMaxBytes))
	}
	if len(resp.Err) > config.ErrMaxChars {
		return sizeErr("encode_response", fmt.Errorf("err %d chars exceeds %d", len(resp.Err), config.ErrMaxChars))
	}
	if resp.OK {
		if len(resp.Proof) == 0 || len(resp.PublicInputs) == 0 || resp.Err != "" {
			return schemaErr("encode_response", fmt.Errorf("ok=true requires non-empty proof/public_inputs and empty err"))
		}
	} else {
		if len(resp.Proof) != 0 || len(resp.PublicInputs) != 0 || resp.Err == "" {
			return schemaErr("encode_response", fmt.Errorf("ok=false requires empty proof/public_inputs and non-empty err"))
		}
	}
	return nil
}

// DecodeResponse unmarshals a response frame's payload without
// re-validating the ok invariant (a client trusts but does not enforce
// what a responder already guaranteed at encode time).
func DecodeResponse(payload []byte) (*ProofResponse, error) {
	var resp ProofResponse
	if err := cbor.Unmarshal(payload, &resp); err != nil {
		return nil, schemaErr("decode_response", err)
	}
	if resp.MsgV != MsgVersion {
		return nil, schemaErr("decode_response", fmt.Errorf("unsupported msg_v %d", resp.MsgV))
	}
	return &resp, nil
}

// EncodeMeta serializes a string-keyed metadata map into the opaque
// bytes ProofResponse.Meta carries.
func EncodeMeta(m map[string]string) []byte {
	b, err := cbor.Marshal(m)
	if err != nil {
		return nil
	}
	return b
}

// DecodeMeta is the inverse of EncodeMeta; an empty or malformed blob
// decodes to an empty, non-nil map rather than an error, since meta is
// diagnostic-only and must never fail a round trip on its own.
func DecodeMeta(b []byte) map[string]string {
	out := map[string]string{}
	if len(b) == 0 {
		return out
	}
	_ = cbor.Unmarshal(b, &out)
	return out
}

// errorResponse builds a well-formed ok=false response, truncating err
// to the char cap so a caller-supplied message can never itself blow
// the size cap it is reporting.
func errorResponse(stmt string, schemaV uint16, depth int, errMsg string) *ProofResponse {
	if len(errMsg) > config.ErrMaxChars {
		errMsg = errMsg[:config.ErrMaxChars]
	}
	return &ProofResponse{
		MsgV:    MsgVersion,
		OK:      false,
		Stmt:    stmt,
		SchemaV: schemaV,
		Depth:   depth,
		Err:     errMsg,
	}
}
