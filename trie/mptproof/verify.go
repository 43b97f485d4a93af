package mptproof

import (
	"crypto/sha256"
	"hash"

	"github.com/eth2030/mptproof/log"
)

// Verifier is the facade of §4.5. It is pure and synchronous: a Check call
// performs all work on the caller's goroutine, returns a Verdict, and
// retains no state. Distinct Verifiers, and distinct calls on the same
// Verifier, share nothing and may run concurrently.
type Verifier struct {
	newHash func() hash.Hash
	logger  *log.Logger
}

// Option configures a Verifier at construction time. Options never affect
// the behavior of a given Check call beyond the injected hash algorithm.
type Option func(*Verifier)

// WithHasher overrides the hash algorithm factory. The default is SHA-256,
// the canonical configuration of §6. Passing a nil factory is caught by
// NewVerifier, which returns ErrNilHasher rather than constructing a
// Verifier that would panic on first use.
func WithHasher(newHash func() hash.Hash) Option {
	return func(v *Verifier) { v.newHash = newHash }
}

// WithLogger attaches a logger that records one structured line per Check
// call, at module name "mptproof". No raw key or value bytes are logged.
func WithLogger(l *log.Logger) Option {
	return func(v *Verifier) { v.logger = l }
}

// NewVerifier constructs a Verifier. With no options it verifies against
// SHA-256 and logs nothing.
func NewVerifier(opts ...Option) (*Verifier, error) {
	v := &Verifier{newHash: sha256.New}
	for _, opt := range opts {
		opt(v)
	}
	if v.newHash == nil {
		return nil, ErrNilHasher
	}
	return v, nil
}

// Check implements the single operation of §4.5: validate structure, then
// reconstruct the root by size dispatch, then wrap it into the index hash.
func (v *Verifier) Check(p *Proof) Verdict {
	hr := &Hasher{newHash: v.newHash}

	if status := validateStructure(p); status != CORRECT {
		v.logCheck(p, status)
		return Verdict{Status: status}
	}

	root, status := v.reconstructRoot(hr, p)
	if status != CORRECT {
		v.logCheck(p, status)
		return Verdict{Status: status}
	}

	verdict := Verdict{
		Status:      CORRECT,
		IndexHash:   hr.indexHash(root),
		Entries:     newKeySet(entryKeys(p.Entries)),
		MissingKeys: newKeySet(p.MissingKeys),
	}
	v.logCheck(p, CORRECT)
	return verdict
}

// reconstructRoot dispatches by size: empty, singleton, or general (§4.4).
func (v *Verifier) reconstructRoot(hr *Hasher, p *Proof) ([32]byte, Status) {
	size := len(p.ProofEntries) + len(p.Entries)
	switch {
	case size == 0:
		return [32]byte{}, CORRECT
	case size == 1:
		return singletonRoot(hr, p)
	default:
		merged := sortedMerge(hr, p)
		return contourRoot(hr, merged), CORRECT
	}
}

// singletonRoot implements the single-entry dispatch of §4.4: a lone
// branch-typed proof entry is rejected as NON_TERMINAL_NODE, since nothing
// else in the proof terminates it into a full tree.
func singletonRoot(hr *Hasher, p *Proof) ([32]byte, Status) {
	if len(p.ProofEntries) == 1 {
		e := p.ProofEntries[0]
		if e.Path.NodeType() == Branch {
			return [32]byte{}, NON_TERMINAL_NODE
		}
		var h [32]byte
		copy(h[:], e.Hash)
		return hr.singleEntryRoot(e.Path, h), CORRECT
	}
	e := p.Entries[0]
	leaf, _ := NewLeafPath(e.Key) // length already validated by NewProof
	return hr.singleEntryRoot(leaf, hr.leafValueHash(e.Value)), CORRECT
}

func (v *Verifier) logCheck(p *Proof, status Status) {
	if v.logger == nil {
		return
	}
	l := v.logger.Module("mptproof")
	args := []any{
		"status", status.String(),
		"proof_entries", len(p.ProofEntries),
		"entries", len(p.Entries),
		"missing_keys", len(p.MissingKeys),
	}
	if status == CORRECT {
		l.Info("verified proof", args...)
	} else {
		l.Warn("rejected proof", args...)
	}
}
