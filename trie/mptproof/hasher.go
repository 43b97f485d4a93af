package mptproof

import (
	"crypto/sha256"
	"hash"

	"golang.org/x/crypto/sha3"
)

// Domain-separation prefix bytes. Part of the wire contract; must not be
// changed or unified with generic tagged-hash schemes from other systems.
const (
	leafValuePrefix byte = 0x00
	indexPrefix     byte = 0x03
	mapNodePrefix   byte = 0x04
)

// hashedEntry is a proof entry whose hash has been normalized to a fixed
// 32-byte array, used once past the structural validator's hash-size check.
type hashedEntry struct {
	path Path
	hash [32]byte
}

// Hasher drives the four domain-separated derivations of §4.2 over an
// injected, reentrant hash algorithm.
type Hasher struct {
	newHash func() hash.Hash
}

// NewSHA256Hasher returns the canonical-configuration Hasher (§6: "SHA-256
// in the canonical configuration").
func NewSHA256Hasher() *Hasher {
	return &Hasher{newHash: sha256.New}
}

// NewKeccak256Hasher returns a Hasher backed by Keccak-256, for deployments
// that share a trie with a Keccak-committed system instead of the
// canonical SHA-256 configuration.
func NewKeccak256Hasher() *Hasher {
	return &Hasher{newHash: sha3.NewLegacyKeccak256}
}

func sum32(d hash.Hash) [32]byte {
	var out [32]byte
	copy(out[:], d.Sum(nil))
	return out
}

// leafValueHash computes H_leaf(v) = H(0x00 ∥ v).
func (h *Hasher) leafValueHash(v []byte) [32]byte {
	d := h.newHash()
	d.Write([]byte{leafValuePrefix})
	d.Write(v)
	return sum32(d)
}

// singleEntryRoot computes H_single(path, vh) = H(0x04 ∥ fullEncode(path) ∥ vh).
func (h *Hasher) singleEntryRoot(path Path, valueHash [32]byte) [32]byte {
	d := h.newHash()
	d.Write([]byte{mapNodePrefix})
	d.Write(path.EncodeFull())
	d.Write(valueHash[:])
	return sum32(d)
}

// branchHash computes
// H_branch(L, R) = H(0x04 ∥ L.hash ∥ R.hash ∥ compressedEncode(L.path) ∥ compressedEncode(R.path)).
func (h *Hasher) branchHash(left, right hashedEntry) [32]byte {
	d := h.newHash()
	d.Write([]byte{mapNodePrefix})
	d.Write(left.hash[:])
	d.Write(right.hash[:])
	d.Write(left.path.EncodeCompressed())
	d.Write(right.path.EncodeCompressed())
	return sum32(d)
}

// indexHash computes H_index(root) = H(0x03 ∥ root).
func (h *Hasher) indexHash(root [32]byte) [32]byte {
	d := h.newHash()
	d.Write([]byte{indexPrefix})
	d.Write(root[:])
	return sum32(d)
}
