// Package rsa implements the RSA asymmetric cryptosystem over a capability
// backend: key numbers, generation, PKCS1v15/PSS signing and verification,
// PKCS1v15/OAEP encryption and decryption.
package rsa

import (
	"hash"
	"math/big"

	"github.com/go-i2p/cryptkit/lib/crypto/types"
	"github.com/go-i2p/logger"
)

var log = logger.GetGoI2PLogger()

var bigOne = big.NewInt(1)

// Backend is the RSA capability this package needs from a provider. A
// MultiBackend satisfies it, as does any single backend claiming RSA
// support.
type Backend interface {
	GenerateRSAParametersSupported(publicExponent, keySize int) bool
	GenerateRSAPrivateKey(publicExponent, keySize int) (*PrivateKey, error)
	RSAPaddingSupported(pad types.AsymmetricPadding) bool
	MGF1HashSupported(alg types.HashAlgorithm) bool
	HashSupported(alg types.HashAlgorithm) bool
	CreateHashCtx(alg types.HashAlgorithm) (hash.Hash, error)
	LoadRSAPrivateNumbers(numbers *PrivateNumbers) (*PrivateKey, error)
	LoadRSAPublicNumbers(numbers *PublicNumbers) (*PublicKey, error)
}

// GeneratePrivateKey generates a fresh RSA private key with the given public
// exponent and modulus bit size, dispatched through the provider.
func GeneratePrivateKey(publicExponent, keySize int, provider interface{}) (*PrivateKey, error) {
	b, ok := provider.(Backend)
	if !ok {
		return nil, types.Unsupportedf(types.BackendMissingInterface,
			"backend does not implement the RSA capability")
	}
	if publicExponent < 3 || publicExponent%2 == 0 {
		return nil, types.ValueErrorf("public_exponent must be an odd integer >= 3, got %d", publicExponent)
	}
	if keySize < 512 {
		return nil, types.ValueErrorf("key_size must be at least 512 bits, got %d", keySize)
	}
	if !b.GenerateRSAParametersSupported(publicExponent, keySize) {
		return nil, types.Unsupportedf(types.UnsupportedPublicKeyAlgorithm,
			"backend does not support generating RSA keys with e=%d, size=%d", publicExponent, keySize)
	}
	return b.GenerateRSAPrivateKey(publicExponent, keySize)
}

// PublicKey is an operable RSA public key bound to the backend it was
// loaded through. Immutable and safe for concurrent use.
type PublicKey struct {
	numbers *PublicNumbers
	backend Backend
}

// KeySize returns the modulus size in bits.
func (k *PublicKey) KeySize() int { return k.numbers.n.BitLen() }

// PublicNumbers returns the key material.
func (k *PublicKey) PublicNumbers() *PublicNumbers { return k.numbers }

// PrivateKey is an operable RSA private key bound to the backend it was
// loaded through. Immutable and safe for concurrent use.
type PrivateKey struct {
	numbers *PrivateNumbers
	backend Backend
}

// KeySize returns the modulus size in bits.
func (k *PrivateKey) KeySize() int { return k.numbers.pub.n.BitLen() }

// PrivateNumbers returns the key material.
func (k *PrivateKey) PrivateNumbers() *PrivateNumbers { return k.numbers }

// PublicNumbers returns the public half of the key material.
func (k *PrivateKey) PublicNumbers() *PublicNumbers { return k.numbers.pub }

// PublicKey derives the matching public key, bound to the same backend.
func (k *PrivateKey) PublicKey() *PublicKey {
	return &PublicKey{numbers: k.numbers.pub, backend: k.backend}
}

// LoadPublicNumbers validates the arithmetic invariants of numbers and
// returns an operable public key bound to b. Backends implement their
// LoadRSAPublicNumbers with it.
func LoadPublicNumbers(numbers *PublicNumbers, b Backend) (*PublicKey, error) {
	if err := checkPublicComponents(numbers.e, numbers.n); err != nil {
		return nil, err
	}
	return &PublicKey{numbers: numbers, backend: b}, nil
}

// LoadPrivateNumbers validates the arithmetic invariants of numbers and
// returns an operable private key bound to b. Backends implement their
// LoadRSAPrivateNumbers with it.
func LoadPrivateNumbers(numbers *PrivateNumbers, b Backend) (*PrivateKey, error) {
	if err := checkPrivateComponents(numbers); err != nil {
		return nil, err
	}
	return &PrivateKey{numbers: numbers, backend: b}, nil
}

func checkPublicComponents(e, n *big.Int) error {
	if n.Cmp(big.NewInt(3)) < 0 {
		return types.ValueErrorf("n must be >= 3")
	}
	if e.Cmp(big.NewInt(3)) < 0 {
		return types.ValueErrorf("e must be >= 3")
	}
	if e.Cmp(n) >= 0 {
		return types.ValueErrorf("e must be < n")
	}
	if e.Bit(0) == 0 {
		return types.ValueErrorf("e must be odd")
	}
	return nil
}

func checkPrivateComponents(pn *PrivateNumbers) error {
	n := pn.pub.n
	if err := checkPublicComponents(pn.pub.e, n); err != nil {
		return err
	}
	if pn.p.Cmp(n) >= 0 {
		return types.ValueErrorf("p must be < n")
	}
	if pn.q.Cmp(n) >= 0 {
		return types.ValueErrorf("q must be < n")
	}
	if pn.d.Cmp(n) >= 0 {
		return types.ValueErrorf("d must be < n")
	}
	if pn.dmp1.Cmp(n) >= 0 {
		return types.ValueErrorf("dmp1 must be < n")
	}
	if pn.dmq1.Cmp(n) >= 0 {
		return types.ValueErrorf("dmq1 must be < n")
	}
	if pn.iqmp.Cmp(n) >= 0 {
		return types.ValueErrorf("iqmp must be < n")
	}
	if pn.dmp1.Bit(0) == 0 {
		return types.ValueErrorf("dmp1 must be odd")
	}
	if pn.dmq1.Bit(0) == 0 {
		return types.ValueErrorf("dmq1 must be odd")
	}
	if new(big.Int).Mul(pn.p, pn.q).Cmp(n) != 0 {
		return types.ValueErrorf("p*q must equal n")
	}
	return nil
}

// ModInverse computes a^-1 mod m with the extended Euclidean algorithm. The
// second return is false when a and m are not coprime.
func ModInverse(a, m *big.Int) (*big.Int, bool) {
	// x0 tracks the Bezout coefficient of a while reducing (a, m).
	r0 := new(big.Int).Set(a)
	r1 := new(big.Int).Set(m)
	x0 := big.NewInt(1)
	x1 := big.NewInt(0)
	for r1.Sign() != 0 {
		q := new(big.Int).Quo(r0, r1)
		r0, r1 = r1, new(big.Int).Sub(r0, new(big.Int).Mul(q, r1))
		x0, x1 = x1, new(big.Int).Sub(x0, new(big.Int).Mul(q, x1))
	}
	if r0.Cmp(bigOne) != 0 {
		return nil, false
	}
	return x0.Mod(x0, m), true
}

// privateOp computes c^d mod n using the CRT parameters.
func (k *PrivateKey) privateOp(c *big.Int) *big.Int {
	pn := k.numbers
	m1 := new(big.Int).Exp(c, pn.dmp1, pn.p)
	m2 := new(big.Int).Exp(c, pn.dmq1, pn.q)
	h := new(big.Int).Sub(m1, m2)
	h.Mul(h, pn.iqmp)
	h.Mod(h, pn.p)
	h.Mul(h, pn.q)
	return h.Add(h, m2)
}

// publicOp computes m^e mod n.
func (k *PublicKey) publicOp(m *big.Int) *big.Int {
	return new(big.Int).Exp(m, k.numbers.e, k.numbers.n)
}

// modulusBytes returns the modulus length in whole bytes.
func modulusBytes(n *big.Int) int {
	return (n.BitLen() + 7) / 8
}
