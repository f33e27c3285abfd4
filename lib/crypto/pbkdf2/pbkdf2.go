// Package pbkdf2 provides a single-use PBKDF2-HMAC key deriver dispatched
// through the pbkdf2 capability of a backend.
package pbkdf2

import (
	"github.com/go-i2p/cryptkit/lib/crypto/types"
)

// Backend is the pbkdf2 capability this package needs from a provider.
type Backend interface {
	PBKDF2HMACSupported(alg types.HashAlgorithm) bool
	DerivePBKDF2HMAC(alg types.HashAlgorithm, length int, salt []byte, iterations int, keyMaterial []byte) ([]byte, error)
}

// PBKDF2HMAC derives key material from a secret. Single-use: a second
// Derive fails with types.ErrAlreadyFinalized.
type PBKDF2HMAC struct {
	alg        types.HashAlgorithm
	length     int
	salt       []byte
	iterations int
	backend    Backend
	used       bool
}

// New builds a deriver for the given hash, output length, salt and
// iteration count through the provider.
func New(alg types.HashAlgorithm, length int, salt []byte, iterations int, provider interface{}) (*PBKDF2HMAC, error) {
	b, ok := provider.(Backend)
	if !ok {
		return nil, types.Unsupportedf(types.BackendMissingInterface,
			"backend does not implement the pbkdf2 capability")
	}
	if alg == nil {
		return nil, types.TypeErrorf("expected a HashAlgorithm, got nil")
	}
	if !b.PBKDF2HMACSupported(alg) {
		return nil, types.Unsupportedf(types.UnsupportedHash,
			"%s is not supported by this backend", alg.Name())
	}
	if length < 1 {
		return nil, types.ValueErrorf("length must be at least 1 byte")
	}
	if iterations < 1 {
		return nil, types.ValueErrorf("iterations must be at least 1")
	}
	s := make([]byte, len(salt))
	copy(s, salt)
	return &PBKDF2HMAC{alg: alg, length: length, salt: s, iterations: iterations, backend: b}, nil
}

// Derive consumes the deriver and returns the derived key material.
func (k *PBKDF2HMAC) Derive(keyMaterial []byte) ([]byte, error) {
	if k.used {
		return nil, types.ErrAlreadyFinalized
	}
	k.used = true
	return k.backend.DerivePBKDF2HMAC(k.alg, k.length, k.salt, k.iterations, keyMaterial)
}
