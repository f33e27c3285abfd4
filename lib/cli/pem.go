package cli

import (
	stdrsa "crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"math/big"

	"github.com/go-i2p/cryptkit/lib/crypto/hashes"
	"github.com/go-i2p/cryptkit/lib/crypto/padding"
	"github.com/go-i2p/cryptkit/lib/crypto/rsa"
	"github.com/go-i2p/cryptkit/lib/crypto/types"
	"github.com/samber/oops"
)

// resolveHash maps a configured hash name to its descriptor.
func resolveHash(name string) (types.HashAlgorithm, error) {
	switch name {
	case "md5":
		return hashes.MD5{}, nil
	case "sha1":
		return hashes.SHA1{}, nil
	case "sha224":
		return hashes.SHA224{}, nil
	case "sha256":
		return hashes.SHA256{}, nil
	case "sha384":
		return hashes.SHA384{}, nil
	case "sha512":
		return hashes.SHA512{}, nil
	case "ripemd160":
		return hashes.RIPEMD160{}, nil
	default:
		return nil, types.ValueErrorf("unknown hash algorithm %q", name)
	}
}

// resolveSignaturePadding maps a configured padding name to a padding value
// usable for signing and verification.
func resolveSignaturePadding(name string, alg types.HashAlgorithm) (types.AsymmetricPadding, error) {
	switch name {
	case "pkcs1v15":
		return padding.PKCS1v15{}, nil
	case "pss":
		mgf, err := padding.NewMGF1(alg)
		if err != nil {
			return nil, err
		}
		return padding.NewPSS(mgf, padding.MaxLength)
	default:
		return nil, types.ValueErrorf("unknown signature padding %q", name)
	}
}

// resolveEncryptionPadding maps a configured padding name to a padding value
// usable for encryption and decryption.
func resolveEncryptionPadding(name string, alg types.HashAlgorithm) (types.AsymmetricPadding, error) {
	switch name {
	case "pkcs1v15":
		return padding.PKCS1v15{}, nil
	case "oaep":
		mgf, err := padding.NewMGF1(alg)
		if err != nil {
			return nil, err
		}
		return padding.NewOAEP(mgf, alg, nil)
	default:
		return nil, types.ValueErrorf("unknown encryption padding %q", name)
	}
}

func stdPrivateKey(numbers *rsa.PrivateNumbers) (*stdrsa.PrivateKey, error) {
	e := numbers.PublicNumbers().E()
	if !e.IsInt64() || e.Int64() > int64(^uint32(0)) {
		return nil, types.ValueErrorf("public exponent does not fit the PKCS1 encoder")
	}
	key := &stdrsa.PrivateKey{
		PublicKey: stdrsa.PublicKey{
			N: numbers.PublicNumbers().N(),
			E: int(e.Int64()),
		},
		D:      numbers.D(),
		Primes: []*big.Int{numbers.P(), numbers.Q()},
	}
	key.Precompute()
	return key, nil
}

// marshalPrivateKeyPEM encodes a private key as a PKCS1 PEM document.
func marshalPrivateKeyPEM(key *rsa.PrivateKey) ([]byte, error) {
	std, err := stdPrivateKey(key.PrivateNumbers())
	if err != nil {
		return nil, err
	}
	return pem.EncodeToMemory(&pem.Block{
		Type:  "RSA PRIVATE KEY",
		Bytes: x509.MarshalPKCS1PrivateKey(std),
	}), nil
}

// marshalPublicKeyPEM encodes a public key as a SubjectPublicKeyInfo PEM
// document.
func marshalPublicKeyPEM(key *rsa.PublicKey) ([]byte, error) {
	e := key.PublicNumbers().E()
	if !e.IsInt64() || e.Int64() > int64(^uint32(0)) {
		return nil, types.ValueErrorf("public exponent does not fit the PKIX encoder")
	}
	der, err := x509.MarshalPKIXPublicKey(&stdrsa.PublicKey{
		N: key.PublicNumbers().N(),
		E: int(e.Int64()),
	})
	if err != nil {
		return nil, oops.Wrapf(err, "failed to encode public key")
	}
	return pem.EncodeToMemory(&pem.Block{
		Type:  "PUBLIC KEY",
		Bytes: der,
	}), nil
}
