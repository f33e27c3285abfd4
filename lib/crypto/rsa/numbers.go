package rsa

import (
	"math/big"

	"github.com/go-i2p/cryptkit/lib/crypto/types"
)

// PublicNumbers holds the public components of an RSA key. It is a plain
// validated-shape container; arithmetic invariants are checked when an
// operable key is derived from it.
type PublicNumbers struct {
	e *big.Int
	n *big.Int
}

// NewPublicNumbers builds a PublicNumbers from the public exponent e and
// modulus n. Nil components fail immediately.
func NewPublicNumbers(e, n *big.Int) (*PublicNumbers, error) {
	if e == nil {
		return nil, types.TypeErrorf("RSAPublicNumbers e must be an integer")
	}
	if n == nil {
		return nil, types.TypeErrorf("RSAPublicNumbers n must be an integer")
	}
	return &PublicNumbers{e: new(big.Int).Set(e), n: new(big.Int).Set(n)}, nil
}

// E returns the public exponent.
func (pn *PublicNumbers) E() *big.Int { return new(big.Int).Set(pn.e) }

// N returns the modulus.
func (pn *PublicNumbers) N() *big.Int { return new(big.Int).Set(pn.n) }

// PublicKey derives an operable public key through the given provider,
// validating the arithmetic invariants.
func (pn *PublicNumbers) PublicKey(provider interface{}) (*PublicKey, error) {
	b, ok := provider.(Backend)
	if !ok {
		return nil, types.Unsupportedf(types.BackendMissingInterface,
			"backend does not implement the RSA capability")
	}
	return b.LoadRSAPublicNumbers(pn)
}

// PrivateNumbers holds the private components of an RSA key together with
// the matching public numbers.
type PrivateNumbers struct {
	p    *big.Int
	q    *big.Int
	d    *big.Int
	dmp1 *big.Int
	dmq1 *big.Int
	iqmp *big.Int
	pub  *PublicNumbers
}

// NewPrivateNumbers builds a PrivateNumbers from the two primes, the private
// exponent, the CRT parameters and the public numbers. Nil components fail
// immediately.
func NewPrivateNumbers(p, q, d, dmp1, dmq1, iqmp *big.Int, pub *PublicNumbers) (*PrivateNumbers, error) {
	for _, f := range []struct {
		name string
		v    *big.Int
	}{
		{"p", p}, {"q", q}, {"d", d},
		{"dmp1", dmp1}, {"dmq1", dmq1}, {"iqmp", iqmp},
	} {
		if f.v == nil {
			return nil, types.TypeErrorf("RSAPrivateNumbers %s must be an integer", f.name)
		}
	}
	if pub == nil {
		return nil, types.TypeErrorf("RSAPrivateNumbers public_numbers must be an RSAPublicNumbers instance")
	}
	return &PrivateNumbers{
		p:    new(big.Int).Set(p),
		q:    new(big.Int).Set(q),
		d:    new(big.Int).Set(d),
		dmp1: new(big.Int).Set(dmp1),
		dmq1: new(big.Int).Set(dmq1),
		iqmp: new(big.Int).Set(iqmp),
		pub:  pub,
	}, nil
}

// P returns the first prime factor.
func (pn *PrivateNumbers) P() *big.Int { return new(big.Int).Set(pn.p) }

// Q returns the second prime factor.
func (pn *PrivateNumbers) Q() *big.Int { return new(big.Int).Set(pn.q) }

// D returns the private exponent.
func (pn *PrivateNumbers) D() *big.Int { return new(big.Int).Set(pn.d) }

// DMP1 returns d mod (p-1).
func (pn *PrivateNumbers) DMP1() *big.Int { return new(big.Int).Set(pn.dmp1) }

// DMQ1 returns d mod (q-1).
func (pn *PrivateNumbers) DMQ1() *big.Int { return new(big.Int).Set(pn.dmq1) }

// IQMP returns q^-1 mod p.
func (pn *PrivateNumbers) IQMP() *big.Int { return new(big.Int).Set(pn.iqmp) }

// PublicNumbers returns the matching public numbers.
func (pn *PrivateNumbers) PublicNumbers() *PublicNumbers { return pn.pub }

// PrivateKey derives an operable private key through the given provider,
// validating the arithmetic invariants.
func (pn *PrivateNumbers) PrivateKey(provider interface{}) (*PrivateKey, error) {
	b, ok := provider.(Backend)
	if !ok {
		return nil, types.Unsupportedf(types.BackendMissingInterface,
			"backend does not implement the RSA capability")
	}
	return b.LoadRSAPrivateNumbers(pn)
}
