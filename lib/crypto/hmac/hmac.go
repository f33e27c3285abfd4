// Package hmac provides a single-use HMAC accumulator dispatched through
// the hmac capability of a backend.
package hmac

import (
	"crypto/subtle"
	"hash"

	"github.com/go-i2p/cryptkit/lib/crypto/types"
)

// Backend is the hmac capability this package needs from a provider.
type Backend interface {
	HMACSupported(alg types.HashAlgorithm) bool
	CreateHMACCtx(key []byte, alg types.HashAlgorithm) (hash.Hash, error)
}

// HMAC is a single-use keyed message authentication context.
type HMAC struct {
	alg       types.HashAlgorithm
	ctx       hash.Hash
	finalized bool
}

// New creates an HMAC context for key and alg through the given provider.
func New(key []byte, alg types.HashAlgorithm, provider interface{}) (*HMAC, error) {
	b, ok := provider.(Backend)
	if !ok {
		return nil, types.Unsupportedf(types.BackendMissingInterface,
			"backend does not implement the hmac capability")
	}
	if alg == nil {
		return nil, types.TypeErrorf("expected a HashAlgorithm, got nil")
	}
	if !b.HMACSupported(alg) {
		return nil, types.Unsupportedf(types.UnsupportedHash,
			"%s is not supported by this backend", alg.Name())
	}
	ctx, err := b.CreateHMACCtx(key, alg)
	if err != nil {
		return nil, err
	}
	return &HMAC{alg: alg, ctx: ctx}, nil
}

// Update appends data to the message being authenticated.
func (h *HMAC) Update(data []byte) error {
	if h.finalized {
		return types.ErrAlreadyFinalized
	}
	h.ctx.Write(data)
	return nil
}

// Finalize consumes the context and returns the tag.
func (h *HMAC) Finalize() ([]byte, error) {
	if h.finalized {
		return nil, types.ErrAlreadyFinalized
	}
	h.finalized = true
	return h.ctx.Sum(nil), nil
}

// Verify consumes the context and compares the computed tag against
// expected in constant time. Mismatch surfaces as
// types.ErrInvalidSignature.
func (h *HMAC) Verify(expected []byte) error {
	tag, err := h.Finalize()
	if err != nil {
		return err
	}
	if subtle.ConstantTimeCompare(tag, expected) != 1 {
		return types.ErrInvalidSignature
	}
	return nil
}
