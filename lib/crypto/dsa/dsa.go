// Package dsa implements DSA over the same capability-dispatch pattern as
// the RSA engine: parameter and key generation negotiate with the backend,
// sign/verify contexts are single-use accumulators.
package dsa

import (
	"hash"
	"math/big"

	"github.com/go-i2p/cryptkit/lib/crypto/types"
	"github.com/go-i2p/logger"
)

var log = logger.GetGoI2PLogger()

// Backend is the DSA capability this package needs from a provider.
type Backend interface {
	GenerateDSAParameters(keySize int) (*Parameters, error)
	GenerateDSAPrivateKey(params *Parameters) (*PrivateKey, error)
	DSAHashSupported(alg types.HashAlgorithm) bool
	DSAParametersSupported(p, q, g *big.Int) bool
	HashSupported(alg types.HashAlgorithm) bool
	CreateHashCtx(alg types.HashAlgorithm) (hash.Hash, error)
}

// Parameters holds a DSA domain parameter set.
type Parameters struct {
	p *big.Int
	q *big.Int
	g *big.Int
}

// NewParameters builds a Parameters from p, q and g. Nil components fail
// immediately.
func NewParameters(p, q, g *big.Int) (*Parameters, error) {
	if p == nil || q == nil || g == nil {
		return nil, types.TypeErrorf("DSA parameters p, q and g must be integers")
	}
	return &Parameters{
		p: new(big.Int).Set(p),
		q: new(big.Int).Set(q),
		g: new(big.Int).Set(g),
	}, nil
}

// P returns the prime modulus.
func (pa *Parameters) P() *big.Int { return new(big.Int).Set(pa.p) }

// Q returns the subgroup order.
func (pa *Parameters) Q() *big.Int { return new(big.Int).Set(pa.q) }

// G returns the generator.
func (pa *Parameters) G() *big.Int { return new(big.Int).Set(pa.g) }

// GenerateParameters generates a fresh DSA domain parameter set through the
// provider.
func GenerateParameters(keySize int, provider interface{}) (*Parameters, error) {
	b, ok := provider.(Backend)
	if !ok {
		return nil, types.Unsupportedf(types.BackendMissingInterface,
			"backend does not implement the DSA capability")
	}
	if keySize != 1024 && keySize != 2048 && keySize != 3072 {
		return nil, types.ValueErrorf("key_size must be 1024, 2048 or 3072 bits, got %d", keySize)
	}
	return b.GenerateDSAParameters(keySize)
}

// GeneratePrivateKey generates a private key under the given parameter set
// through the provider.
func GeneratePrivateKey(params *Parameters, provider interface{}) (*PrivateKey, error) {
	b, ok := provider.(Backend)
	if !ok {
		return nil, types.Unsupportedf(types.BackendMissingInterface,
			"backend does not implement the DSA capability")
	}
	if params == nil {
		return nil, types.TypeErrorf("expected DSA Parameters, got nil")
	}
	if !b.DSAParametersSupported(params.p, params.q, params.g) {
		return nil, types.Unsupportedf(types.UnsupportedPublicKeyAlgorithm,
			"backend does not support this DSA parameter set")
	}
	return b.GenerateDSAPrivateKey(params)
}

// PublicKey is an operable DSA public key bound to the backend it was
// created through.
type PublicKey struct {
	params  *Parameters
	y       *big.Int
	backend Backend
}

// NewPublicKey builds a public key from its parameter set and public value.
// Exposed for backends and serialization loaders.
func NewPublicKey(params *Parameters, y *big.Int, b Backend) (*PublicKey, error) {
	if params == nil || y == nil {
		return nil, types.TypeErrorf("DSA public key requires parameters and y")
	}
	if y.Sign() <= 0 || y.Cmp(params.p) >= 0 {
		return nil, types.ValueErrorf("y must be in (0, p)")
	}
	return &PublicKey{params: params, y: new(big.Int).Set(y), backend: b}, nil
}

// KeySize returns the prime modulus size in bits.
func (k *PublicKey) KeySize() int { return k.params.p.BitLen() }

// Parameters returns the domain parameter set.
func (k *PublicKey) Parameters() *Parameters { return k.params }

// Y returns the public value.
func (k *PublicKey) Y() *big.Int { return new(big.Int).Set(k.y) }

// PrivateKey is an operable DSA private key bound to the backend it was
// created through.
type PrivateKey struct {
	params  *Parameters
	x       *big.Int
	y       *big.Int
	backend Backend
}

// NewPrivateKey builds a private key from its parameter set and private
// value, deriving the public value. Exposed for backends and serialization
// loaders.
func NewPrivateKey(params *Parameters, x *big.Int, b Backend) (*PrivateKey, error) {
	if params == nil || x == nil {
		return nil, types.TypeErrorf("DSA private key requires parameters and x")
	}
	if x.Sign() <= 0 || x.Cmp(params.q) >= 0 {
		return nil, types.ValueErrorf("x must be in (0, q)")
	}
	y := new(big.Int).Exp(params.g, x, params.p)
	return &PrivateKey{params: params, x: new(big.Int).Set(x), y: y, backend: b}, nil
}

// KeySize returns the prime modulus size in bits.
func (k *PrivateKey) KeySize() int { return k.params.p.BitLen() }

// Parameters returns the domain parameter set.
func (k *PrivateKey) Parameters() *Parameters { return k.params }

// X returns the private value.
func (k *PrivateKey) X() *big.Int { return new(big.Int).Set(k.x) }

// PublicKey derives the matching public key.
func (k *PrivateKey) PublicKey() *PublicKey {
	return &PublicKey{params: k.params, y: new(big.Int).Set(k.y), backend: k.backend}
}
