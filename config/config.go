// Package config centralizes the small set of process-wide constants and
// environment-derived defaults the privacy-proof core depends on.
package config

import "os"

const (
	// ScalarSize is the byte width of a reduced scalar (big-endian), the
	// byte width of the curve group order q.
	ScalarSize = 32

	// PointSize is the byte width of a SEC1-compressed curve point.
	PointSize = 33

	// CtxHashSize is the byte width of a ProofContext hash (SHA-256).
	CtxHashSize = 32

	// DefaultMembershipDepth is the Merkle depth used when a request does
	// not carry statement-specific depth information.
	DefaultMembershipDepth = 16

	// MaxFrameBytes is the hard cap on a single wire frame's payload; the
	// 4-byte length header is not counted against it.
	MaxFrameBytes = 128 * 1024

	// ReadTimeoutSeconds / WriteTimeoutSeconds bound a single frame read or write.
	ReadTimeoutSeconds  = 5
	WriteTimeoutSeconds = 5

	// StreamTimeoutSeconds bounds the whole responder-side stream lifetime.
	StreamTimeoutSeconds = 120

	// OutboundConnectTimeoutSeconds bounds opening a new outbound stream.
	OutboundConnectTimeoutSeconds = 10

	// ProverSubprocessTimeoutSeconds bounds an external real-prover invocation.
	ProverSubprocessTimeoutSeconds = 120

	// RequestMaxBytes is the encoded-size cap for a ProofRequest.
	RequestMaxBytes = 8192

	// PublicInputsMaxBytes / ProofMaxBytes / MetaMaxBytes / ErrMaxChars are
	// the ProofResponse field size caps.
	PublicInputsMaxBytes = 64 * 1024
	ProofMaxBytes        = 4 * 1024
	MetaMaxBytes         = 4 * 1024
	ErrMaxChars          = 256

	// ArtifactVKMaxBytes is the size cap for a SNARK verifying-key artifact.
	ArtifactVKMaxBytes = 1024 * 1024

	// ProtocolID is the libp2p-style protocol identifier for the wire protocol.
	ProtocolID = "/privacyzk/1.0.0"

	// BackendEnvVar is the environment variable the factory consults when
	// no explicit override or prefer-hint is supplied.
	BackendEnvVar = "PRIVACYZK_BACKEND"

	// ArtifactBaseEnvVar names the environment variable carrying the
	// canonical artifact directory root.
	ArtifactBaseEnvVar = "PRIVACYZK_ARTIFACT_BASE"

	// DefaultBackendName is used when nothing else selects a backend.
	DefaultBackendName = "mock"
)

// ArtifactBase resolves the artifact directory root: explicit arg, then
// the environment variable, then "." as a last resort.
func ArtifactBase(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if v := os.Getenv(ArtifactBaseEnvVar); v != "" {
		return v
	}
	return "."
}
