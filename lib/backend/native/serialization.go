package native

import (
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"math/big"

	cryptorsa "github.com/go-i2p/cryptkit/lib/crypto/rsa"
	"github.com/go-i2p/cryptkit/lib/crypto/types"
)

// LoadPEMPrivateKey implements backend.PEMSerializationBackend. RSA numbers
// are the canonical in-memory form; the returned value is a
// *rsa.PrivateKey from lib/crypto/rsa.
func (b *Backend) LoadPEMPrivateKey(data, password []byte) (interface{}, error) {
	block, err := decodePEM(data, password)
	if err != nil {
		return nil, err
	}
	switch block.Type {
	case "RSA PRIVATE KEY":
		return b.loadPKCS1Private(block.Bytes)
	case "PRIVATE KEY":
		return b.loadPKCS8Private(block.Bytes)
	default:
		return nil, types.ValueErrorf("unsupported PEM block type %q", block.Type)
	}
}

// LoadPEMPublicKey implements backend.PEMSerializationBackend.
func (b *Backend) LoadPEMPublicKey(data []byte) (interface{}, error) {
	block, err := decodePEM(data, nil)
	if err != nil {
		return nil, err
	}
	switch block.Type {
	case "RSA PUBLIC KEY":
		pub, err := x509.ParsePKCS1PublicKey(block.Bytes)
		if err != nil {
			return nil, types.ValueErrorf("could not deserialize key data")
		}
		return b.publicFromStd(pub)
	case "PUBLIC KEY":
		key, err := x509.ParsePKIXPublicKey(block.Bytes)
		if err != nil {
			return nil, types.ValueErrorf("could not deserialize key data")
		}
		pub, ok := key.(*rsa.PublicKey)
		if !ok {
			return nil, types.Unsupportedf(types.UnsupportedSerialization,
				"only RSA public keys are supported by the native backend")
		}
		return b.publicFromStd(pub)
	default:
		return nil, types.ValueErrorf("unsupported PEM block type %q", block.Type)
	}
}

// LoadPKCS8PEMPrivateKey implements backend.PKCS8SerializationBackend.
func (b *Backend) LoadPKCS8PEMPrivateKey(data, password []byte) (interface{}, error) {
	block, err := decodePEM(data, password)
	if err != nil {
		return nil, err
	}
	if block.Type != "PRIVATE KEY" {
		return nil, types.ValueErrorf("unsupported PEM block type %q", block.Type)
	}
	return b.loadPKCS8Private(block.Bytes)
}

// LoadTraditionalOpenSSLPEMPrivateKey implements
// backend.TraditionalOpenSSLSerializationBackend.
func (b *Backend) LoadTraditionalOpenSSLPEMPrivateKey(data, password []byte) (interface{}, error) {
	block, err := decodePEM(data, password)
	if err != nil {
		return nil, err
	}
	if block.Type != "RSA PRIVATE KEY" {
		return nil, types.ValueErrorf("unsupported PEM block type %q", block.Type)
	}
	return b.loadPKCS1Private(block.Bytes)
}

func decodePEM(data, password []byte) (*pem.Block, error) {
	if len(password) != 0 {
		return nil, types.Unsupportedf(types.UnsupportedSerialization,
			"encrypted PEM documents are not supported by the native backend")
	}
	block, _ := pem.Decode(data)
	if block == nil {
		return nil, types.ValueErrorf("could not find a PEM document in the provided data")
	}
	log.WithField("type", block.Type).Debug("decoded PEM block")
	return block, nil
}

func (b *Backend) loadPKCS1Private(der []byte) (*cryptorsa.PrivateKey, error) {
	key, err := x509.ParsePKCS1PrivateKey(der)
	if err != nil {
		return nil, types.ValueErrorf("could not deserialize key data")
	}
	return b.privateFromStd(key)
}

func (b *Backend) loadPKCS8Private(der []byte) (*cryptorsa.PrivateKey, error) {
	parsed, err := x509.ParsePKCS8PrivateKey(der)
	if err != nil {
		return nil, types.ValueErrorf("could not deserialize key data")
	}
	key, ok := parsed.(*rsa.PrivateKey)
	if !ok {
		return nil, types.Unsupportedf(types.UnsupportedSerialization,
			"only RSA private keys are supported by the native backend")
	}
	return b.privateFromStd(key)
}

func (b *Backend) privateFromStd(key *rsa.PrivateKey) (*cryptorsa.PrivateKey, error) {
	if len(key.Primes) != 2 {
		return nil, types.ValueErrorf("multi-prime RSA keys are not supported")
	}
	key.Precompute()
	pub, err := cryptorsa.NewPublicNumbers(big.NewInt(int64(key.E)), key.N)
	if err != nil {
		return nil, err
	}
	numbers, err := cryptorsa.NewPrivateNumbers(
		key.Primes[0], key.Primes[1], key.D,
		key.Precomputed.Dp, key.Precomputed.Dq, key.Precomputed.Qinv, pub)
	if err != nil {
		return nil, err
	}
	return b.LoadRSAPrivateNumbers(numbers)
}

func (b *Backend) publicFromStd(key *rsa.PublicKey) (*cryptorsa.PublicKey, error) {
	pub, err := cryptorsa.NewPublicNumbers(big.NewInt(int64(key.E)), key.N)
	if err != nil {
		return nil, err
	}
	return b.LoadRSAPublicNumbers(pub)
}
