package hashes

import (
	"hash"

	"github.com/go-i2p/cryptkit/lib/crypto/types"
	"github.com/go-i2p/logger"
)

var log = logger.GetGoI2PLogger()

// Backend is the hash capability this package needs from a provider.
type Backend interface {
	HashSupported(alg types.HashAlgorithm) bool
	CreateHashCtx(alg types.HashAlgorithm) (hash.Hash, error)
}

// Hash is a single-use message digest accumulator. It must not be shared
// across goroutines; once finalized every further call fails with
// types.ErrAlreadyFinalized.
type Hash struct {
	alg       types.HashAlgorithm
	ctx       hash.Hash
	finalized bool
}

// New creates a hash context for alg through the given provider. The
// provider must conform to Backend; anything else fails with
// BACKEND_MISSING_INTERFACE.
func New(alg types.HashAlgorithm, provider interface{}) (*Hash, error) {
	b, ok := provider.(Backend)
	if !ok {
		return nil, types.Unsupportedf(types.BackendMissingInterface,
			"backend does not implement the hash capability")
	}
	if alg == nil {
		return nil, types.TypeErrorf("expected a HashAlgorithm, got nil")
	}
	if !b.HashSupported(alg) {
		return nil, types.Unsupportedf(types.UnsupportedHash,
			"%s is not supported by this backend", alg.Name())
	}
	ctx, err := b.CreateHashCtx(alg)
	if err != nil {
		return nil, err
	}
	return &Hash{alg: alg, ctx: ctx}, nil
}

// Algorithm returns the descriptor this context hashes with.
func (h *Hash) Algorithm() types.HashAlgorithm { return h.alg }

// Update appends data to the message being hashed.
func (h *Hash) Update(data []byte) error {
	if h.finalized {
		return types.ErrAlreadyFinalized
	}
	h.ctx.Write(data)
	return nil
}

// Finalize consumes the context and returns the digest. The context cannot
// be used again afterwards.
func (h *Hash) Finalize() ([]byte, error) {
	if h.finalized {
		return nil, types.ErrAlreadyFinalized
	}
	h.finalized = true
	digest := h.ctx.Sum(nil)
	log.WithField("algorithm", h.alg.Name()).Debug("hash context finalized")
	return digest, nil
}
