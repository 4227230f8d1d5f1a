// Package randsrc provides a per-task randomness source that is
// explicit about fork-safety rather than relying on an ambient global
// RNG. Go's crypto/rand reads fresh OS entropy (getrandom(2) /
// CryptGenRandom) on every call rather than caching a stream, so it is
// already fork-safe in practice; Source still tracks the owning process
// id, updates it on the first draw after a fork, and exposes it via Pid
// so callers and tests can observe a "randomness source is per-task; on
// fork, reinitialize" invariant.
package randsrc

import (
	"os"
	"sync"

	"github.com/privacyzk/privacyzk/pkg/curve"
)

// Source is a per-task randomness handle.
type Source struct {
	mu  sync.Mutex
	pid int
}

// New returns a Source bound to the current process.
func New() *Source {
	return &Source{pid: os.Getpid()}
}

// checkFork reinitializes bookkeeping if the owning process id changed
// since the Source was created or last used, i.e. the process forked.
func (s *Source) checkFork() {
	if current := os.Getpid(); current != s.pid {
		s.pid = current
	}
}

// Scalar draws a fresh uniform scalar in [1, q), reseeding first if a
// fork was detected since the last draw.
func (s *Source) Scalar() (*curve.Scalar, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.checkFork()
	return curve.RandomScalar()
}

// Pid reports the process id this Source currently believes it owns,
// exposed for tests that simulate a fork by constructing a Source with
// a stale pid.
func (s *Source) Pid() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pid
}
