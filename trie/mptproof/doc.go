// Package mptproof verifies flat Merkle-Patricia map proofs: compact proof
// artifacts, produced by an untrusted party, that attest to the presence or
// absence of keys in a sparse binary trie without transmitting the trie's
// intermediate branches.
//
// A caller holding only a trusted root hash uses Verifier.Check to
// reconstruct the index hash from a parsed Proof and its present/absent key
// claims; the claims hold if and only if the returned index hash matches
// the trusted one. Check does not take the trusted hash and does not make
// that comparison itself. Check never constructs proofs, and its only I/O
// is the optional log line of a logger attached with WithLogger; its
// verdict is a pure function of its input plus the configured hash
// algorithm.
package mptproof
