package backend

import (
	"fmt"
	"os"
	"sync"

	"github.com/privacyzk/privacyzk/config"
)

// backendOverride is the process-level runtime override set via
// SetBackendType, mirroring the original feature_flags module's
// get/set_backend_type pair.
var (
	overrideMu       sync.Mutex
	backendOverride  string
	backendOverrideOK bool
)

// SetBackendType installs a process-level runtime override, taking
// precedence over the environment variable but not an explicit
// FactoryConfig.Override.
func SetBackendType(name string) {
	overrideMu.Lock()
	defer overrideMu.Unlock()
	backendOverride = name
	backendOverrideOK = true
}

// ClearBackendType removes any runtime override installed by
// SetBackendType, reverting to the environment variable / default.
func ClearBackendType() {
	overrideMu.Lock()
	defer overrideMu.Unlock()
	backendOverride = ""
	backendOverrideOK = false
}

// GetBackendType returns the current runtime override, if any.
func GetBackendType() (string, bool) {
	overrideMu.Lock()
	defer overrideMu.Unlock()
	return backendOverride, backendOverrideOK
}

// FactoryConfig parameterizes backend resolution. Precedence is
// Override > Prefer > runtime SetBackendType > environment variable >
// DefaultBackendName.
type FactoryConfig struct {
	// Override forces a specific backend name, bypassing every other
	// signal. Empty means "no override".
	Override string
	// Prefer is a softer hint consulted after Override but before any
	// process-level or environment signal.
	Prefer string
	// AllowMock must be true for the "mock" name to resolve to anything;
	// otherwise selecting mock is a configuration error, keeping the
	// mock backend unreachable from an unconfigured production path.
	AllowMock bool
}

// resolveBackendName applies the precedence chain: explicit override,
// then prefer hint, then the process-level runtime override, then the
// environment variable, then the default.
func resolveBackendName(cfg FactoryConfig) string {
	if cfg.Override != "" {
		return cfg.Override
	}
	if cfg.Prefer != "" {
		return cfg.Prefer
	}
	if name, ok := GetBackendType(); ok && name != "" {
		return name
	}
	if name := os.Getenv(config.BackendEnvVar); name != "" {
		return name
	}
	return config.DefaultBackendName
}

// NewBackend resolves and constructs a ProofBackend per cfg's
// precedence chain. Backend construction is lazy per call: only the
// resolved variant's dependencies are touched, so an unrelated code path
// that never calls NewBackend never pays for curve-parameter
// initialization or gnark's import graph.
func NewBackend(cfg FactoryConfig) (ProofBackend, error) {
	name := resolveBackendName(cfg)
	switch name {
	case "mock":
		return NewMockBackend(cfg.AllowMock)
	case "pedersen", "full":
		return NewPedersenBackend()
	default:
		return nil, fmt.Errorf("backend: unknown backend name %q", name)
	}
}
