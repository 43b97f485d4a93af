package mptproof

import "sort"

// ProofEntry is a (path, hash) pair asserting that the subtree rooted at
// Path hashes to Hash. Hash is validated to be exactly 32 bytes by the
// structural validator, not by NewProof, since an oversize or
// undersize hash is itself a rejection reason (INVALID_HASH_SIZE) rather
// than a construction error.
type ProofEntry struct {
	Path Path
	Hash []byte
}

// MapEntry is a requested-present (key, value) pair. Key must be exactly
// Width bytes; it is validated by NewProof.
type MapEntry struct {
	Key   []byte
	Value []byte
}

// Proof is the triple (proof_entries, entries, missing_keys) the verifier
// borrows for the duration of a single Check call. A Proof value is never
// mutated once constructed.
type Proof struct {
	ProofEntries []ProofEntry
	Entries      []MapEntry
	MissingKeys  [][]byte
}

// NewProof validates that every entry key and missing key is exactly Width
// bytes (the shape the data model requires of MapEntry and MissingKey) and
// returns a Proof ready for Check. Proof-entry path shape is not
// re-validated here: callers construct ProofEntry.Path via NewPath, which
// already enforces the buffer-length and trailing-zero-bit invariants.
func NewProof(proofEntries []ProofEntry, entries []MapEntry, missingKeys [][]byte) (*Proof, error) {
	for _, e := range entries {
		if len(e.Key) != Width {
			return nil, errInvalidKeyLength(len(e.Key))
		}
	}
	for _, k := range missingKeys {
		if len(k) != Width {
			return nil, errInvalidKeyLength(len(k))
		}
	}
	return &Proof{ProofEntries: proofEntries, Entries: entries, MissingKeys: missingKeys}, nil
}

// Status is the verdict taxonomy of §7.
type Status int

const (
	CORRECT Status = iota
	INVALID_ORDER
	DUPLICATE_PATH
	EMBEDDED_PATH
	NON_TERMINAL_NODE
	INVALID_HASH_SIZE
)

func (s Status) String() string {
	switch s {
	case CORRECT:
		return "CORRECT"
	case INVALID_ORDER:
		return "INVALID_ORDER"
	case DUPLICATE_PATH:
		return "DUPLICATE_PATH"
	case EMBEDDED_PATH:
		return "EMBEDDED_PATH"
	case NON_TERMINAL_NODE:
		return "NON_TERMINAL_NODE"
	case INVALID_HASH_SIZE:
		return "INVALID_HASH_SIZE"
	default:
		return "UNKNOWN"
	}
}

// KeySet is an unordered set of Width-byte keys, used to report the
// confirmed present/absent key sets of a CORRECT verdict.
type KeySet map[[Width]byte]struct{}

// Has reports whether key is a member of the set. key must be Width bytes.
func (s KeySet) Has(key []byte) bool {
	var k [Width]byte
	copy(k[:], key)
	_, ok := s[k]
	return ok
}

// Len returns the number of keys in the set.
func (s KeySet) Len() int { return len(s) }

func newKeySet(keys [][]byte) KeySet {
	s := make(KeySet, len(keys))
	for _, k := range keys {
		var arr [Width]byte
		copy(arr[:], k)
		s[arr] = struct{}{}
	}
	return s
}

func entryKeys(entries []MapEntry) [][]byte {
	keys := make([][]byte, len(entries))
	for i, e := range entries {
		keys[i] = e.Key
	}
	return keys
}

// Verdict is the outcome of Check. For any Status other than CORRECT,
// IndexHash, Entries, and MissingKeys are zero-valued and must not be
// read; the Status alone is the rejection reason.
type Verdict struct {
	Status      Status
	IndexHash   [32]byte
	Entries     KeySet
	MissingKeys KeySet
}

// Correct reports whether the verdict accepted the proof.
func (v Verdict) Correct() bool { return v.Status == CORRECT }

// sortedMerge returns the proof entries and requested-present entries
// merged into a single ascending-order list of hashed entries, as required
// by the contour fold's input preparation step.
func sortedMerge(hr *Hasher, p *Proof) []hashedEntry {
	out := make([]hashedEntry, 0, len(p.ProofEntries)+len(p.Entries))
	for _, e := range p.ProofEntries {
		var h [32]byte
		copy(h[:], e.Hash)
		out = append(out, hashedEntry{path: e.Path, hash: h})
	}
	for _, e := range p.Entries {
		leaf, _ := NewLeafPath(e.Key) // length already validated by NewProof
		out = append(out, hashedEntry{path: leaf, hash: hr.leafValueHash(e.Value)})
	}
	sort.Slice(out, func(i, j int) bool { return Compare(out[i].path, out[j].path) < 0 })
	return out
}
