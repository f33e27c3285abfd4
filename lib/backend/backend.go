// Package backend defines the capability model and the MultiBackend
// registry that routes algorithm requests across an ordered set of
// pluggable backend engines.
package backend

import (
	"hash"
	"math/big"

	"github.com/go-i2p/cryptkit/lib/crypto/ciphers"
	"github.com/go-i2p/cryptkit/lib/crypto/dsa"
	"github.com/go-i2p/cryptkit/lib/crypto/ec"
	"github.com/go-i2p/cryptkit/lib/crypto/rsa"
	"github.com/go-i2p/cryptkit/lib/crypto/types"
)

// Capability is an explicit tag a backend declares at construction time.
// Dispatch is a lookup over the declared set, never structural probing of
// the backend value.
type Capability uint32

const (
	CapCipher Capability = 1 << iota
	CapHash
	CapHMAC
	CapPBKDF2
	CapCMAC
	CapRSA
	CapDSA
	CapEllipticCurve
	CapPEMSerialization
	CapPKCS8Serialization
	CapTraditionalOpenSSLSerialization
)

// Has reports whether the set contains every tag in want.
func (c Capability) Has(want Capability) bool { return c&want == want }

// Backend is a pluggable engine. The declared capability set states which
// of the capability interfaces below the backend implements.
type Backend interface {
	Name() string
	Capabilities() Capability
}

// CipherBackend serves symmetric cipher contexts.
type CipherBackend interface {
	CipherSupported(alg ciphers.CipherAlgorithm, mode ciphers.Mode) bool
	CreateSymmetricEncryptionCtx(alg ciphers.CipherAlgorithm, mode ciphers.Mode) (ciphers.Context, error)
	CreateSymmetricDecryptionCtx(alg ciphers.CipherAlgorithm, mode ciphers.Mode) (ciphers.Context, error)
}

// HashBackend serves message digest contexts.
type HashBackend interface {
	HashSupported(alg types.HashAlgorithm) bool
	CreateHashCtx(alg types.HashAlgorithm) (hash.Hash, error)
}

// HMACBackend serves keyed digest contexts.
type HMACBackend interface {
	HMACSupported(alg types.HashAlgorithm) bool
	CreateHMACCtx(key []byte, alg types.HashAlgorithm) (hash.Hash, error)
}

// PBKDF2HMACBackend derives key material with PBKDF2.
type PBKDF2HMACBackend interface {
	PBKDF2HMACSupported(alg types.HashAlgorithm) bool
	DerivePBKDF2HMAC(alg types.HashAlgorithm, length int, salt []byte, iterations int, keyMaterial []byte) ([]byte, error)
}

// CMACBackend serves CMAC contexts over block ciphers.
type CMACBackend interface {
	CMACAlgorithmSupported(alg ciphers.CipherAlgorithm) bool
	CreateCMACCtx(alg ciphers.CipherAlgorithm) (hash.Hash, error)
}

// RSABackend serves RSA key generation, loading and capability queries.
type RSABackend interface {
	GenerateRSAParametersSupported(publicExponent, keySize int) bool
	GenerateRSAPrivateKey(publicExponent, keySize int) (*rsa.PrivateKey, error)
	RSAPaddingSupported(pad types.AsymmetricPadding) bool
	MGF1HashSupported(alg types.HashAlgorithm) bool
	LoadRSAPrivateNumbers(numbers *rsa.PrivateNumbers) (*rsa.PrivateKey, error)
	LoadRSAPublicNumbers(numbers *rsa.PublicNumbers) (*rsa.PublicKey, error)
}

// DSABackend serves DSA parameter and key generation.
type DSABackend interface {
	GenerateDSAParameters(keySize int) (*dsa.Parameters, error)
	GenerateDSAPrivateKey(params *dsa.Parameters) (*dsa.PrivateKey, error)
	DSAHashSupported(alg types.HashAlgorithm) bool
	DSAParametersSupported(p, q, g *big.Int) bool
}

// EllipticCurveBackend serves elliptic curve key operations.
type EllipticCurveBackend interface {
	EllipticCurveSupported(curve ec.Curve) bool
	EllipticCurveSignatureAlgorithmSupported(sigAlg *ec.ECDSA, curve ec.Curve) bool
	GenerateEllipticCurvePrivateKey(curve ec.Curve) (interface{}, error)
	LoadEllipticCurvePrivateNumbers(numbers *ec.PrivateNumbers) (interface{}, error)
	LoadEllipticCurvePublicNumbers(numbers *ec.PublicNumbers) (interface{}, error)
}

// PEMSerializationBackend loads keys from PEM documents.
type PEMSerializationBackend interface {
	LoadPEMPrivateKey(data, password []byte) (interface{}, error)
	LoadPEMPublicKey(data []byte) (interface{}, error)
}

// PKCS8SerializationBackend loads keys from PKCS#8 PEM documents.
type PKCS8SerializationBackend interface {
	LoadPKCS8PEMPrivateKey(data, password []byte) (interface{}, error)
}

// TraditionalOpenSSLSerializationBackend loads keys from traditional
// OpenSSL PEM documents.
type TraditionalOpenSSLSerializationBackend interface {
	LoadTraditionalOpenSSLPEMPrivateKey(data, password []byte) (interface{}, error)
}
