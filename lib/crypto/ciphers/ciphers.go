// Package ciphers defines symmetric cipher algorithm and mode descriptors
// and a Cipher wrapper that obtains encryption and decryption contexts
// through the cipher capability of a backend. Block cipher internals live
// in the backends.
package ciphers

import (
	"github.com/go-i2p/cryptkit/lib/crypto/types"
)

// CipherAlgorithm describes a symmetric cipher keyed with a secret.
type CipherAlgorithm interface {
	Name() string
	// key size in bits
	KeySize() int
	Key() []byte
}

// Mode describes a mode of operation.
type Mode interface {
	Name() string
}

// ModeWithIV is implemented by modes carrying an initialization vector.
type ModeWithIV interface {
	Mode
	IV() []byte
}

type keyed struct {
	key []byte
}

func (k keyed) KeySize() int { return len(k.key) * 8 }
func (k keyed) Key() []byte  { return k.key }

func newKeyed(name string, key []byte, sizes ...int) (keyed, error) {
	for _, s := range sizes {
		if len(key)*8 == s {
			return keyed{key: key}, nil
		}
	}
	return keyed{}, types.ValueErrorf("invalid key size (%d) for %s", len(key)*8, name)
}

type (
	AES       struct{ keyed }
	TripleDES struct{ keyed }
	Camellia  struct{ keyed }
	CAST5     struct{ keyed }
)

// NewAES builds an AES descriptor; the key must be 128, 192 or 256 bits.
func NewAES(key []byte) (*AES, error) {
	k, err := newKeyed("AES", key, 128, 192, 256)
	if err != nil {
		return nil, err
	}
	return &AES{k}, nil
}

func (*AES) Name() string { return "AES" }

// NewTripleDES builds a TripleDES descriptor; the key must be 64, 128 or
// 192 bits.
func NewTripleDES(key []byte) (*TripleDES, error) {
	k, err := newKeyed("3DES", key, 64, 128, 192)
	if err != nil {
		return nil, err
	}
	return &TripleDES{k}, nil
}

func (*TripleDES) Name() string { return "3DES" }

// NewCamellia builds a Camellia descriptor; the key must be 128, 192 or 256
// bits.
func NewCamellia(key []byte) (*Camellia, error) {
	k, err := newKeyed("camellia", key, 128, 192, 256)
	if err != nil {
		return nil, err
	}
	return &Camellia{k}, nil
}

func (*Camellia) Name() string { return "camellia" }

// NewCAST5 builds a CAST5 descriptor; the key must be between 40 and 128
// bits in 8-bit increments.
func NewCAST5(key []byte) (*CAST5, error) {
	if len(key)*8 < 40 || len(key)*8 > 128 {
		return nil, types.ValueErrorf("invalid key size (%d) for cast5", len(key)*8)
	}
	return &CAST5{keyed{key: key}}, nil
}

func (*CAST5) Name() string { return "cast5" }

type iv struct {
	iv []byte
}

func (m iv) IV() []byte { return m.iv }

type (
	CBC struct{ iv }
	CFB struct{ iv }
	OFB struct{ iv }
	CTR struct{ nonce []byte }
	ECB struct{}
)

func NewCBC(initVector []byte) CBC { return CBC{iv{initVector}} }
func NewCFB(initVector []byte) CFB { return CFB{iv{initVector}} }
func NewOFB(initVector []byte) OFB { return OFB{iv{initVector}} }
func NewCTR(nonce []byte) CTR      { return CTR{nonce: nonce} }

func (CBC) Name() string { return "CBC" }
func (CFB) Name() string { return "CFB" }
func (OFB) Name() string { return "OFB" }
func (CTR) Name() string { return "CTR" }
func (ECB) Name() string { return "ECB" }

// Nonce returns the counter-mode nonce.
func (m CTR) Nonce() []byte { return m.nonce }

// Context transforms data incrementally; Finalize flushes any buffered
// block and consumes the context.
type Context interface {
	Update(data []byte) ([]byte, error)
	Finalize() ([]byte, error)
}

// Backend is the cipher capability this package needs from a provider.
type Backend interface {
	CipherSupported(alg CipherAlgorithm, mode Mode) bool
	CreateSymmetricEncryptionCtx(alg CipherAlgorithm, mode Mode) (Context, error)
	CreateSymmetricDecryptionCtx(alg CipherAlgorithm, mode Mode) (Context, error)
}

// Cipher pairs an algorithm with a mode and a provider.
type Cipher struct {
	alg     CipherAlgorithm
	mode    Mode
	backend Backend
}

// NewCipher builds a Cipher dispatching through the given provider.
func NewCipher(alg CipherAlgorithm, mode Mode, provider interface{}) (*Cipher, error) {
	b, ok := provider.(Backend)
	if !ok {
		return nil, types.Unsupportedf(types.BackendMissingInterface,
			"backend does not implement the cipher capability")
	}
	if alg == nil {
		return nil, types.TypeErrorf("expected a CipherAlgorithm, got nil")
	}
	if mode == nil {
		return nil, types.TypeErrorf("expected a Mode, got nil")
	}
	return &Cipher{alg: alg, mode: mode, backend: b}, nil
}

// Encryptor returns a fresh encryption context.
func (c *Cipher) Encryptor() (Context, error) {
	return c.backend.CreateSymmetricEncryptionCtx(c.alg, c.mode)
}

// Decryptor returns a fresh decryption context.
func (c *Cipher) Decryptor() (Context, error) {
	return c.backend.CreateSymmetricDecryptionCtx(c.alg, c.mode)
}
