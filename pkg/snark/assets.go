package snark

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/privacyzk/privacyzk/config"
)

// ArtifactKind names one of the files a statement/schema/depth directory
// holds.
type ArtifactKind string

const (
	ArtifactVK           ArtifactKind = "vk"
	ArtifactPK           ArtifactKind = "pk"
	ArtifactPublicInputs ArtifactKind = "public_inputs"
	ArtifactProof        ArtifactKind = "proof"
	ArtifactInstance     ArtifactKind = "instance"
)

func maxBytesFor(kind ArtifactKind) int {
	switch kind {
	case ArtifactVK, ArtifactPK:
		return config.ArtifactVKMaxBytes
	case ArtifactPublicInputs, ArtifactInstance:
		return config.PublicInputsMaxBytes
	case ArtifactProof:
		return config.ProofMaxBytes
	default:
		return config.MetaMaxBytes
	}
}

// canonicalPath builds <base>/<statement>/v<schema>/depth-<depth>/<kind>.bin.
func canonicalPath(base, statement string, schemaVersion uint16, depth int, kind ArtifactKind) string {
	return filepath.Join(base,
		statement,
		fmt.Sprintf("v%d", schemaVersion),
		fmt.Sprintf("depth-%d", depth),
		string(kind)+".bin",
	)
}

// legacyPaths lists fallback locations searched when the canonical path is
// absent, mirroring how deployments migrated off a flatter artifact layout
// without the facade refusing to find files that are simply in the old
// spot.
func legacyPaths(base, statement string, schemaVersion uint16, depth int, kind ArtifactKind) []string {
	return []string{
		filepath.Join(base, fmt.Sprintf("%s_v%d_d%d_%s.bin", statement, schemaVersion, depth, kind)),
		filepath.Join(base, statement, string(kind)+".bin"),
		filepath.Join(base, string(kind)+".bin"),
	}
}

// ResolveArtifact locates and reads one artifact file for (statement,
// schemaVersion, depth, kind) under base, trying the canonical path first
// and falling back to known legacy layouts. A missing file anywhere along
// the search is reported as a schema error, never a crash; an oversized
// file is rejected before being read into memory.
func ResolveArtifact(base, statement string, schemaVersion uint16, depth int, kind ArtifactKind) ([]byte, string, error) {
	candidates := append(
		[]string{canonicalPath(base, statement, schemaVersion, depth, kind)},
		legacyPaths(base, statement, schemaVersion, depth, kind)...,
	)

	limit := maxBytesFor(kind)
	var lastErr error
	for _, path := range candidates {
		info, err := os.Stat(path)
		if err != nil {
			lastErr = err
			continue
		}
		if info.Size() > int64(limit) {
			return nil, path, newSchemaError("artifact %s exceeds %d bytes (%d)", path, limit, info.Size())
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, path, fmt.Errorf("snark: read artifact %s: %w", path, err)
		}
		return data, path, nil
	}
	return nil, "", newSchemaError("no %s artifact found for %s v%d depth %d under %s (last: %v)",
		kind, statement, schemaVersion, depth, base, lastErr)
}

// VerifyFromDisk resolves vk and public_inputs/proof artifacts from base
// and runs ExplainVerify against them, sparing callers the artifact
// plumbing when they just want "does this on-disk bundle verify".
func VerifyFromDisk(base, statement string, schemaVersion uint16, depth int) (bool, error) {
	vk, _, err := ResolveArtifact(base, statement, schemaVersion, depth, ArtifactVK)
	if err != nil {
		return false, err
	}
	publicInputs, _, err := ResolveArtifact(base, statement, schemaVersion, depth, ArtifactPublicInputs)
	if err != nil {
		return false, err
	}
	proof, _, err := ResolveArtifact(base, statement, schemaVersion, depth, ArtifactProof)
	if err != nil {
		return false, err
	}
	return ExplainVerify(statement, schemaVersion, vk, publicInputs, proof)
}
