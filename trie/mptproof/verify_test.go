package mptproof

import "testing"

func mustVerifier(t *testing.T, opts ...Option) *Verifier {
	t.Helper()
	v, err := NewVerifier(opts...)
	if err != nil {
		t.Fatalf("NewVerifier: %v", err)
	}
	return v
}

// TestCheck_Empty covers S1: an empty proof is CORRECT with
// index_hash = H_index(0^32).
func TestCheck_Empty(t *testing.T) {
	v := mustVerifier(t)
	proof, err := NewProof(nil, nil, nil)
	if err != nil {
		t.Fatalf("NewProof: %v", err)
	}
	got := v.Check(proof)
	if got.Status != CORRECT {
		t.Fatalf("expected CORRECT, got %v", got.Status)
	}
	hr := NewSHA256Hasher()
	want := hr.indexHash([32]byte{})
	if got.IndexHash != want {
		t.Fatalf("index hash mismatch: got %x, want %x", got.IndexHash, want)
	}
}

// TestCheck_SingletonPresent covers S2: one present entry, no proof entries.
func TestCheck_SingletonPresent(t *testing.T) {
	v := mustVerifier(t)
	k := key(0x11)
	val := []byte{0xAA}
	proof, err := NewProof(nil, []MapEntry{{Key: k, Value: val}}, nil)
	if err != nil {
		t.Fatalf("NewProof: %v", err)
	}
	got := v.Check(proof)
	if got.Status != CORRECT {
		t.Fatalf("expected CORRECT, got %v", got.Status)
	}
	if !got.Entries.Has(k) {
		t.Fatal("expected requested key to be confirmed present")
	}

	hr := NewSHA256Hasher()
	leaf, _ := NewLeafPath(k)
	root := hr.singleEntryRoot(leaf, hr.leafValueHash(val))
	want := hr.indexHash(root)
	if got.IndexHash != want {
		t.Fatalf("index hash mismatch: got %x, want %x", got.IndexHash, want)
	}
}

// TestCheck_SingletonAbsent covers the "singleton absent" boundary case: no
// entries, one leaf-type proof-entry.
func TestCheck_SingletonAbsent(t *testing.T) {
	v := mustVerifier(t)
	leafPath := mustLeaf(t, 0x22)
	h := hash32(1)
	proof, err := NewProof([]ProofEntry{{Path: leafPath, Hash: h}}, nil, [][]byte{key(0x33)})
	if err != nil {
		t.Fatalf("NewProof: %v", err)
	}
	got := v.Check(proof)
	if got.Status != CORRECT {
		t.Fatalf("expected CORRECT, got %v", got.Status)
	}
	if !got.MissingKeys.Has(key(0x33)) {
		t.Fatal("expected missing key to be confirmed absent")
	}
}

// TestCheck_SingletonBranch covers S3: a lone branch-typed proof entry with
// no present entries is rejected as non-terminal.
func TestCheck_SingletonBranch(t *testing.T) {
	v := mustVerifier(t)
	proof, err := NewProof([]ProofEntry{{Path: branchPath(t, 0b00000000, 1), Hash: hash32(1)}}, nil, nil)
	if err != nil {
		t.Fatalf("NewProof: %v", err)
	}
	got := v.Check(proof)
	if got.Status != NON_TERMINAL_NODE {
		t.Fatalf("expected NON_TERMINAL_NODE, got %v", got.Status)
	}
}

// TestCheck_Duplicate covers S4.
func TestCheck_Duplicate(t *testing.T) {
	v := mustVerifier(t)
	p := branchPath(t, 0b10000000, 1)
	proof, err := NewProof([]ProofEntry{
		{Path: p, Hash: hash32(1)},
		{Path: p, Hash: hash32(2)},
	}, nil, nil)
	if err != nil {
		t.Fatalf("NewProof: %v", err)
	}
	if got := v.Check(proof).Status; got != DUPLICATE_PATH {
		t.Fatalf("expected DUPLICATE_PATH, got %v", got)
	}
}

// TestCheck_OutOfOrder covers S5.
func TestCheck_OutOfOrder(t *testing.T) {
	v := mustVerifier(t)
	p0 := branchPath(t, 0b00000000, 1)
	p1 := branchPath(t, 0b10000000, 1)
	proof, err := NewProof([]ProofEntry{
		{Path: p1, Hash: hash32(1)},
		{Path: p0, Hash: hash32(2)},
	}, nil, nil)
	if err != nil {
		t.Fatalf("NewProof: %v", err)
	}
	if got := v.Check(proof).Status; got != INVALID_ORDER {
		t.Fatalf("expected INVALID_ORDER, got %v", got)
	}
}

// TestCheck_Embedded covers S6.
func TestCheck_Embedded(t *testing.T) {
	v := mustVerifier(t)
	prefix := branchPath(t, 0b10100000, 3)
	k := key(0b10100101)
	proof, err := NewProof(
		[]ProofEntry{{Path: prefix, Hash: hash32(1)}},
		[]MapEntry{{Key: k, Value: []byte("v")}},
		nil,
	)
	if err != nil {
		t.Fatalf("NewProof: %v", err)
	}
	if got := v.Check(proof).Status; got != EMBEDDED_PATH {
		t.Fatalf("expected EMBEDDED_PATH, got %v", got)
	}
}

// TestCheck_TwoSiblings covers S7.
func TestCheck_TwoSiblings(t *testing.T) {
	v := mustVerifier(t)
	p0 := mustLeaf(t, 0b00000000)
	p1 := mustLeaf(t, 0b10000000)
	proof, err := NewProof([]ProofEntry{
		{Path: p0, Hash: hash32(1)},
		{Path: p1, Hash: hash32(2)},
	}, nil, nil)
	if err != nil {
		t.Fatalf("NewProof: %v", err)
	}
	got := v.Check(proof)
	if got.Status != CORRECT {
		t.Fatalf("expected CORRECT, got %v", got.Status)
	}

	hr := NewSHA256Hasher()
	var h0, h1 [32]byte
	h0[0], h1[0] = 1, 2
	root := hr.branchHash(hashedEntry{path: p0, hash: h0}, hashedEntry{path: p1, hash: h1})
	want := hr.indexHash(root)
	if got.IndexHash != want {
		t.Fatalf("index hash mismatch: got %x, want %x", got.IndexHash, want)
	}
}

// TestCheck_InvalidHashSize covers the 31/33-byte boundary case.
func TestCheck_InvalidHashSize(t *testing.T) {
	v := mustVerifier(t)
	for _, n := range []int{31, 33} {
		proof, err := NewProof([]ProofEntry{
			{Path: branchPath(t, 0b00000000, 1), Hash: make([]byte, n)},
			{Path: branchPath(t, 0b10000000, 1), Hash: hash32(2)},
		}, nil, nil)
		if err != nil {
			t.Fatalf("NewProof: %v", err)
		}
		if got := v.Check(proof).Status; got != INVALID_HASH_SIZE {
			t.Fatalf("hash size %d: expected INVALID_HASH_SIZE, got %v", n, got)
		}
	}
}

// TestCheck_Pure: two invocations on structurally-equal inputs return
// structurally-equal outputs (property 6).
func TestCheck_Pure(t *testing.T) {
	v := mustVerifier(t)
	build := func() *Proof {
		p, err := NewProof([]ProofEntry{
			{Path: mustLeaf(t, 0b00000000), Hash: hash32(1)},
			{Path: mustLeaf(t, 0b10000000), Hash: hash32(2)},
		}, nil, nil)
		if err != nil {
			t.Fatalf("NewProof: %v", err)
		}
		return p
	}
	got1 := v.Check(build())
	got2 := v.Check(build())
	if got1.Status != got2.Status || got1.IndexHash != got2.IndexHash {
		t.Fatal("Check must be pure: equal inputs must yield equal outputs")
	}
}

// TestCheck_ByteMutationChangesRoot covers property 3: mutating a single
// hash byte must either change the index hash or trigger a rejection.
func TestCheck_ByteMutationChangesRoot(t *testing.T) {
	v := mustVerifier(t)
	base := func(h1 byte) *Proof {
		p, err := NewProof([]ProofEntry{
			{Path: mustLeaf(t, 0b00000000), Hash: hash32(1)},
			{Path: mustLeaf(t, 0b10000000), Hash: hash32(h1)},
		}, nil, nil)
		if err != nil {
			t.Fatalf("NewProof: %v", err)
		}
		return p
	}
	original := v.Check(base(2))
	mutated := v.Check(base(3))
	if original.Status != CORRECT || mutated.Status != CORRECT {
		t.Fatalf("expected both variants CORRECT, got %v and %v", original.Status, mutated.Status)
	}
	if original.IndexHash == mutated.IndexHash {
		t.Fatal("mutating a proof-entry hash byte must change the index hash")
	}
}

func TestNewVerifier_RejectsNilHasher(t *testing.T) {
	_, err := NewVerifier(WithHasher(nil))
	if err != ErrNilHasher {
		t.Fatalf("expected ErrNilHasher, got %v", err)
	}
}
