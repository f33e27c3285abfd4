package native

import (
	stddsa "crypto/dsa"
	"crypto/rand"
	"math/big"

	"github.com/go-i2p/cryptkit/lib/crypto/dsa"
	"github.com/go-i2p/cryptkit/lib/crypto/types"
	"github.com/samber/oops"
)

func dsaParameterSizes(keySize int) (stddsa.ParameterSizes, bool) {
	switch keySize {
	case 1024:
		return stddsa.L1024N160, true
	case 2048:
		return stddsa.L2048N256, true
	case 3072:
		return stddsa.L3072N256, true
	default:
		return 0, false
	}
}

// GenerateDSAParameters implements backend.DSABackend.
func (b *Backend) GenerateDSAParameters(keySize int) (*dsa.Parameters, error) {
	sizes, ok := dsaParameterSizes(keySize)
	if !ok {
		return nil, types.ValueErrorf("key_size must be 1024, 2048 or 3072 bits, got %d", keySize)
	}
	var params stddsa.Parameters
	if err := stddsa.GenerateParameters(&params, rand.Reader, sizes); err != nil {
		return nil, oops.Wrapf(err, "failed to generate DSA parameters")
	}
	return dsa.NewParameters(params.P, params.Q, params.G)
}

// GenerateDSAPrivateKey implements backend.DSABackend.
func (b *Backend) GenerateDSAPrivateKey(params *dsa.Parameters) (*dsa.PrivateKey, error) {
	priv := stddsa.PrivateKey{
		PublicKey: stddsa.PublicKey{
			Parameters: stddsa.Parameters{P: params.P(), Q: params.Q(), G: params.G()},
		},
	}
	if err := stddsa.GenerateKey(&priv, rand.Reader); err != nil {
		return nil, oops.Wrapf(err, "failed to generate DSA private key")
	}
	return dsa.NewPrivateKey(params, priv.X, b)
}

// DSAHashSupported implements backend.DSABackend.
func (b *Backend) DSAHashSupported(alg types.HashAlgorithm) bool {
	return b.HashSupported(alg)
}

// DSAParametersSupported implements backend.DSABackend.
func (b *Backend) DSAParametersSupported(p, q, g *big.Int) bool {
	if p == nil || q == nil || g == nil {
		return false
	}
	switch p.BitLen() {
	case 1024, 2048, 3072:
	default:
		return false
	}
	switch q.BitLen() {
	case 160, 224, 256:
		return true
	default:
		return false
	}
}

var _ dsa.Backend = (*Backend)(nil)
