package native

import (
	"crypto/hmac"
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"hash"

	"github.com/go-i2p/cryptkit/lib/crypto/types"
	"golang.org/x/crypto/pbkdf2"
	"golang.org/x/crypto/ripemd160"
)

// hashConstructors maps canonical hash names to digest constructors.
var hashConstructors = map[string]func() hash.Hash{
	"md5":       md5.New,
	"sha1":      sha1.New,
	"sha224":    sha256.New224,
	"sha256":    sha256.New,
	"sha384":    sha512.New384,
	"sha512":    sha512.New,
	"ripemd160": ripemd160.New,
}

func hashConstructor(alg types.HashAlgorithm) (func() hash.Hash, bool) {
	if alg == nil {
		return nil, false
	}
	ctor, ok := hashConstructors[alg.Name()]
	return ctor, ok
}

// HashSupported implements backend.HashBackend.
func (b *Backend) HashSupported(alg types.HashAlgorithm) bool {
	_, ok := hashConstructor(alg)
	return ok
}

// CreateHashCtx implements backend.HashBackend.
func (b *Backend) CreateHashCtx(alg types.HashAlgorithm) (hash.Hash, error) {
	ctor, ok := hashConstructor(alg)
	if !ok {
		return nil, types.Unsupportedf(types.UnsupportedHash,
			"%s is not supported by the native backend", alg.Name())
	}
	return ctor(), nil
}

// HMACSupported implements backend.HMACBackend.
func (b *Backend) HMACSupported(alg types.HashAlgorithm) bool {
	return b.HashSupported(alg)
}

// CreateHMACCtx implements backend.HMACBackend.
func (b *Backend) CreateHMACCtx(key []byte, alg types.HashAlgorithm) (hash.Hash, error) {
	ctor, ok := hashConstructor(alg)
	if !ok {
		return nil, types.Unsupportedf(types.UnsupportedHash,
			"HMAC with %s is not supported by the native backend", alg.Name())
	}
	return hmac.New(ctor, key), nil
}

// PBKDF2HMACSupported implements backend.PBKDF2HMACBackend.
func (b *Backend) PBKDF2HMACSupported(alg types.HashAlgorithm) bool {
	return b.HashSupported(alg)
}

// DerivePBKDF2HMAC implements backend.PBKDF2HMACBackend.
func (b *Backend) DerivePBKDF2HMAC(alg types.HashAlgorithm, length int, salt []byte, iterations int, keyMaterial []byte) ([]byte, error) {
	ctor, ok := hashConstructor(alg)
	if !ok {
		return nil, types.Unsupportedf(types.UnsupportedHash,
			"PBKDF2 with %s is not supported by the native backend", alg.Name())
	}
	return pbkdf2.Key(keyMaterial, salt, iterations, length, ctor), nil
}
