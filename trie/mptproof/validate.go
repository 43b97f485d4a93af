package mptproof

// validateStructure runs the three structural checks of §4.3 in order,
// short-circuiting on the first failure. It returns CORRECT when the proof
// is structurally well-formed; the caller still needs the size-dispatch
// step (singleton/empty/general) to reach a final verdict, since
// NON_TERMINAL_NODE is only detected there.
func validateStructure(p *Proof) Status {
	if status := orderCheck(p.ProofEntries); status != CORRECT {
		return status
	}
	if status := hashSizeCheck(p.ProofEntries); status != CORRECT {
		return status
	}
	if requestedKeyEmbedded(p) {
		return EMBEDDED_PATH
	}
	return CORRECT
}

// orderCheck verifies proof_entries are strictly ascending with no
// duplicate or embedded adjacent paths.
func orderCheck(entries []ProofEntry) Status {
	for i := 1; i < len(entries); i++ {
		prev := entries[i-1].Path
		cur := entries[i].Path
		switch cmp := Compare(prev, cur); {
		case cmp < 0:
			if prev.IsPrefixOf(cur) {
				return EMBEDDED_PATH
			}
		case cmp == 0:
			return DUPLICATE_PATH
		default:
			return INVALID_ORDER
		}
	}
	return CORRECT
}

// hashSizeCheck verifies every proof-entry hash is exactly 32 bytes.
func hashSizeCheck(entries []ProofEntry) Status {
	for _, e := range entries {
		if len(e.Hash) != 32 {
			return INVALID_HASH_SIZE
		}
	}
	return CORRECT
}

// requestedKeyEmbedded reports whether any proof-entry path is a prefix of
// any requested (present or missing) leaf path. Because orderCheck has
// already guaranteed proof_entries are sorted with no entry a prefix of
// another, at most one proof entry can be a prefix of a given leaf path,
// and if one is, it is exactly the rightmost proof entry not greater than
// the leaf in sorted order.
// This lets the check run in O((m + r) log m) via binary search rather
// than the O(m * r) naive nested scan.
func requestedKeyEmbedded(p *Proof) bool {
	if len(p.ProofEntries) == 0 {
		return false
	}
	for _, e := range p.Entries {
		leaf, err := NewLeafPath(e.Key)
		if err != nil {
			continue // length already enforced by NewProof; defensive only
		}
		if hasEmbeddingAncestor(p.ProofEntries, leaf) {
			return true
		}
	}
	for _, k := range p.MissingKeys {
		leaf, err := NewLeafPath(k)
		if err != nil {
			continue
		}
		if hasEmbeddingAncestor(p.ProofEntries, leaf) {
			return true
		}
	}
	return false
}

// hasEmbeddingAncestor reports whether any entry in the sorted proof-entry
// list is a prefix of leaf.
func hasEmbeddingAncestor(entries []ProofEntry, leaf Path) bool {
	// Binary search for the rightmost entry whose path is <= leaf.
	lo, hi := 0, len(entries)
	for lo < hi {
		mid := (lo + hi) / 2
		if Compare(entries[mid].Path, leaf) <= 0 {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	if lo == 0 {
		return false
	}
	return entries[lo-1].Path.IsPrefixOf(leaf)
}
