package mptproof

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by constructors when an input is malformed at
// the Go-API boundary. These are distinct from Status: they indicate the
// caller could not even build a well-formed Proof, whereas Status reports
// the outcome of checking a well-formed one.
var (
	// ErrNilHasher is returned by NewVerifier when WithHasher is given a
	// nil factory.
	ErrNilHasher = errors.New("mptproof: hasher factory must not be nil")

	// errNonZeroTrailingBits is returned by NewPath when the supplied
	// buffer has a nonzero bit beyond its claimed significant-bit count.
	errNonZeroTrailingBits = errors.New("mptproof: path has non-zero bits beyond its significant-bit count")
)

func errInvalidKeyLength(got int) error {
	return fmt.Errorf("mptproof: key/path buffer must be %d bytes, got %d", Width, got)
}

func errInvalidSignificantBits(n int) error {
	return fmt.Errorf("mptproof: significant-bit count %d out of range [0, %d]", n, 8*Width)
}
