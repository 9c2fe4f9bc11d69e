package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Hash computes the SHA-256 hash of data as a 64-character hex string.
// The engine hashes serialized circuits with it to address their derived
// artifacts.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// hashKey builds a namespaced key: prefix:circuitHash.
func hashKey(prefix, circuitHash string) string {
	return fmt.Sprintf("%s:%s", prefix, circuitHash)
}

// Keyer derives cache keys for a circuit's artifacts from its content
// hash. Implementations must be deterministic: the same hash always maps
// to the same key.
type Keyer interface {
	// FormulaKey keys the circuit's DIMACS encoding.
	FormulaKey(circuitHash string) string

	// VerdictKey keys the circuit's solve outcome.
	VerdictKey(circuitHash string) string
}

// DefaultKeyer is the standard key scheme.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// FormulaKey generates a key for CNF encoding artifacts.
func (k *DefaultKeyer) FormulaKey(circuitHash string) string {
	return hashKey("cnf", circuitHash)
}

// VerdictKey generates a key for solve outcomes.
func (k *DefaultKeyer) VerdictKey(circuitHash string) string {
	return hashKey("verdict", circuitHash)
}

// ScopedKeyer wraps a Keyer with a prefix so separate contexts (per-user
// server caches, test runs) get isolated namespaces in a shared backend.
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer that prepends prefix to every key. A nil
// inner falls back to the default scheme.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// FormulaKey generates a prefixed key for CNF encoding artifacts.
func (k *ScopedKeyer) FormulaKey(circuitHash string) string {
	return k.prefix + k.inner.FormulaKey(circuitHash)
}

// VerdictKey generates a prefixed key for solve outcomes.
func (k *ScopedKeyer) VerdictKey(circuitHash string) string {
	return k.prefix + k.inner.VerdictKey(circuitHash)
}
