package proofctx

import "testing"

func TestToBytesDeterministic(t *testing.T) {
	a := Context{PeerID: "peer-1", SessionID: "s1", Metadata: map[string]string{"region": "eu", "tier": "free"}}
	b := Context{PeerID: "peer-1", SessionID: "s1", Metadata: map[string]string{"tier": "free", "region": "eu"}}
	if a.Hash() != b.Hash() {
		t.Fatalf("metadata map iteration order changed the hash")
	}
}

func TestHashDistinguishesPeerID(t *testing.T) {
	a := New("peer-1", "s1")
	b := New("peer-2", "s1")
	if a.Hash() == b.Hash() {
		t.Fatalf("different peer_id produced the same ctx_hash")
	}
}

func TestHashDistinguishesSessionID(t *testing.T) {
	a := New("peer-1", "s1")
	b := New("peer-1", "s2")
	if a.Hash() == b.Hash() {
		t.Fatalf("different session_id produced the same ctx_hash")
	}
}

func TestHashDistinguishesMetadataPresence(t *testing.T) {
	a := New("peer-1", "s1")
	b := Context{PeerID: "peer-1", SessionID: "s1", Metadata: map[string]string{"k": "v"}}
	if a.Hash() == b.Hash() {
		t.Fatalf("presence of metadata did not change ctx_hash")
	}
}

func TestHashDistinguishesTimestampPresence(t *testing.T) {
	a := New("peer-1", "s1")
	ts := int64(1700000000)
	b := Context{PeerID: "peer-1", SessionID: "s1", Timestamp: &ts}
	if a.Hash() == b.Hash() {
		t.Fatalf("presence of a timestamp did not change ctx_hash")
	}
}

// TestFieldBoundaryInjectivity reproduces a length-prefixing bug class:
// concatenating "ab"+"c" must not collide with "a"+"bc" once passed
// through peer_id/session_id.
func TestFieldBoundaryInjectivity(t *testing.T) {
	a := New("ab", "c")
	b := New("a", "bc")
	if a.Hash() == b.Hash() {
		t.Fatalf("field boundary is not injective: (ab,c) collided with (a,bc)")
	}
}
