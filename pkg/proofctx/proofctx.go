// Package proofctx implements ProofContext, the addressable session
// context bound to every proof. Its canonical byte encoding is the
// Fiat-Shamir transcript input every statement hashes into its
// challenge, so two contexts that differ in any field must never
// collide on bytes.
package proofctx

import (
	"crypto/sha256"
	"encoding/binary"
	"sort"
)

// Context is bound to every proof generated or verified by this toolkit.
type Context struct {
	PeerID    string
	SessionID string
	Metadata  map[string]string
	Timestamp *int64
}

// New constructs a Context with no metadata or timestamp.
func New(peerID, sessionID string) Context {
	return Context{PeerID: peerID, SessionID: sessionID}
}

func putField(out []byte, field []byte) []byte {
	var lenBuf [4]byte
	binary.BigEndian.PutUint32(lenBuf[:], uint32(len(field)))
	out = append(out, lenBuf[:]...)
	out = append(out, field...)
	return out
}

// ToBytes produces the canonical, length-prefixed encoding of c. Field
// order is fixed (peer_id, session_id, metadata pairs sorted by key,
// timestamp-presence flag, timestamp) so that identical contexts always
// produce identical bytes and any field difference changes the output.
func (c Context) ToBytes() []byte {
	var out []byte
	out = putField(out, []byte(c.PeerID))
	out = putField(out, []byte(c.SessionID))

	keys := make([]string, 0, len(c.Metadata))
	for k := range c.Metadata {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var countBuf [4]byte
	binary.BigEndian.PutUint32(countBuf[:], uint32(len(keys)))
	out = append(out, countBuf[:]...)
	for _, k := range keys {
		out = putField(out, []byte(k))
		out = putField(out, []byte(c.Metadata[k]))
	}

	if c.Timestamp != nil {
		out = append(out, 1)
		var tsBuf [8]byte
		binary.BigEndian.PutUint64(tsBuf[:], uint64(*c.Timestamp))
		out = append(out, tsBuf[:]...)
	} else {
		out = append(out, 0)
	}

	return out
}

// Hash returns the ctx-hash: SHA-256 over the canonical encoding.
func (c Context) Hash() [32]byte {
	return sha256.Sum256(c.ToBytes())
}
