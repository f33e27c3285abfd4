package native

import (
	"github.com/go-i2p/cryptkit/lib/crypto/padding"
	"github.com/go-i2p/cryptkit/lib/crypto/rsa"
	"github.com/go-i2p/cryptkit/lib/crypto/types"
)

// GenerateRSAParametersSupported implements backend.RSABackend.
func (b *Backend) GenerateRSAParametersSupported(publicExponent, keySize int) bool {
	return publicExponent >= 3 && publicExponent%2 == 1 && keySize >= 512
}

// GenerateRSAPrivateKey implements backend.RSABackend.
func (b *Backend) GenerateRSAPrivateKey(publicExponent, keySize int) (*rsa.PrivateKey, error) {
	return rsa.GenerateKey(publicExponent, keySize, b)
}

// RSAPaddingSupported implements backend.RSABackend.
func (b *Backend) RSAPaddingSupported(pad types.AsymmetricPadding) bool {
	switch pad.(type) {
	case padding.PKCS1v15, *padding.PKCS1v15, *padding.PSS, *padding.OAEP:
		return true
	default:
		return false
	}
}

// MGF1HashSupported implements backend.RSABackend.
func (b *Backend) MGF1HashSupported(alg types.HashAlgorithm) bool {
	return b.HashSupported(alg)
}

// LoadRSAPrivateNumbers implements backend.RSABackend.
func (b *Backend) LoadRSAPrivateNumbers(numbers *rsa.PrivateNumbers) (*rsa.PrivateKey, error) {
	return rsa.LoadPrivateNumbers(numbers, b)
}

// LoadRSAPublicNumbers implements backend.RSABackend.
func (b *Backend) LoadRSAPublicNumbers(numbers *rsa.PublicNumbers) (*rsa.PublicKey, error) {
	return rsa.LoadPublicNumbers(numbers, b)
}

var _ rsa.Backend = (*Backend)(nil)
