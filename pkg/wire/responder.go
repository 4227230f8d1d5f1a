package wire

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/privacyzk/privacyzk/config"
)

// responderState names the stage a single request/response exchange is
// in, purely for logging/diagnostics. Serve does not branch on it; the
// Go control flow already encodes the transitions.
type responderState int

const (
	stateReadingHeader responderState = iota
	stateReadingBody
	stateDecodeReq
	stateBuildingResponse
	stateWritingResponse
	stateWritingErrorResponse
	stateClosed
)

func (s responderState) String() string {
	switch s {
	case stateReadingHeader:
		return "reading_header"
	case stateReadingBody:
		return "reading_body"
	case stateDecodeReq:
		return "decode_req"
	case stateBuildingResponse:
		return "building_response"
	case stateWritingResponse:
		return "writing_response"
	case stateWritingErrorResponse:
		return "writing_error_response"
	case stateClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// Serve handles exactly one request/response exchange on stream: read a
// frame, decode it, invoke provider, encode and write the response, and
// always attempt to close the stream on the way out. It never returns an
// error to indicate a protocol failure; those become an ok=false
// response. It returns a non-nil error only for a failure to even
// produce a well-formed frame (e.g. the stream itself is gone), for the
// caller's own logging.
func Serve(ctx context.Context, s Stream, provider ProofProvider, logger zerolog.Logger) error {
	defer func() {
		_ = s.Close()
	}()

	deadline := time.Now().Add(time.Duration(config.StreamTimeoutSeconds) * time.Second)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}

	state := stateReadingHeader
	log := logger.With().Str("protocol", ProtocolID).Logger()

	state = stateReadingBody
	reqBytes, err := ReadFrame(s, timeUntil(deadline, ReadTimeout))
	if err != nil {
		log.Debug().Err(err).Str("state", state.String()).Msg("read request frame failed")
		return writeFinal(s, errorResponse("", 0, 0, "read request failed"), deadline, &state)
	}

	state = stateDecodeReq
	req, err := DecodeRequest(reqBytes)
	if err != nil {
		log.Debug().Err(err).Str("state", state.String()).Msg("decode request failed")
		return writeFinal(s, errorResponse("", 0, 0, "decode failed"), deadline, &state)
	}

	state = stateBuildingResponse
	resp := buildResponse(ctx, req, provider, &log)

	return writeFinal(s, resp, deadline, &state)
}

// buildResponse never lets a provider panic escape; a panic becomes an
// ok=false response with the generic err "provider error", while a
// returned error becomes an ok=false response carrying its own text.
func buildResponse(ctx context.Context, req *ProofRequest, provider ProofProvider, log *zerolog.Logger) (resp *ProofResponse) {
	defer func() {
		if r := recover(); r != nil {
			// An unhandled provider panic, as opposed to a returned error, is
			// unexpected by construction, so it gets the generic message; a
			// well-behaved provider should never reach this.
			log.Warn().Interface("panic", r).Msg("provider panicked")
			resp = errorResponse(req.Stmt, req.SchemaV, req.Depth, "provider error")
		}
	}()

	select {
	case <-ctx.Done():
		return errorResponse(req.Stmt, req.SchemaV, req.Depth, "stream cancelled")
	default:
	}

	// A returned error is the provider's own diagnosis of why it could not
	// prove, so its text is carried into the response verbatim rather than
	// collapsed to a generic message.
	publicInputs, proof, meta, err := provider.Prove(req.Stmt, req.SchemaV, req.Depth, req.Nonce)
	if err != nil {
		log.Debug().Err(err).Msg("provider failed")
		return errorResponse(req.Stmt, req.SchemaV, req.Depth, err.Error())
	}

	return &ProofResponse{
		MsgV:         MsgVersion,
		OK:           true,
		Stmt:         req.Stmt,
		SchemaV:      req.SchemaV,
		Depth:        req.Depth,
		PublicInputs: publicInputs,
		Proof:        proof,
		Meta:         EncodeMeta(meta),
	}
}

// writeFinal encodes resp and writes it, falling back to a minimal
// error response if resp itself does not fit the size caps (e.g. a real
// provider returned an oversized public_inputs blob).
func writeFinal(s Stream, resp *ProofResponse, deadline time.Time, state *responderState) error {
	*state = stateWritingResponse
	payload, err := EncodeResponse(resp)
	if err != nil {
		*state = stateWritingErrorResponse
		fallback := errorResponse(resp.Stmt, resp.SchemaV, resp.Depth, "response exceeded size limits")
		payload, err = EncodeResponse(fallback)
		if err != nil {
			*state = stateClosed
			return fmt.Errorf("wire: fallback response itself invalid: %w", err)
		}
	}

	if err := WriteFrame(s, payload, timeUntil(deadline, WriteTimeout)); err != nil {
		*state = stateClosed
		return err
	}
	*state = stateClosed
	return nil
}

func timeUntil(deadline time.Time, fallback time.Duration) time.Duration {
	remaining := time.Until(deadline)
	if remaining <= 0 {
		return 0
	}
	if remaining < fallback {
		return remaining
	}
	return fallback
}
