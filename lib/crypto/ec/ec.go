// Package ec defines elliptic curve descriptors and key number containers.
// Curve arithmetic stays in the backends; this package only carries enough
// shape for capability dispatch and serialization.
package ec

import (
	"math/big"

	"github.com/go-i2p/cryptkit/lib/crypto/types"
)

// Curve names a curve and its field size.
type Curve interface {
	Name() string
	// field size in bits
	KeySize() int
}

type (
	SECP256R1 struct{}
	SECP384R1 struct{}
	SECP521R1 struct{}
	SECT283K1 struct{}
	SECT163K1 struct{}
)

func (SECP256R1) Name() string  { return "secp256r1" }
func (SECP256R1) KeySize() int  { return 256 }
func (SECP384R1) Name() string  { return "secp384r1" }
func (SECP384R1) KeySize() int  { return 384 }
func (SECP521R1) Name() string  { return "secp521r1" }
func (SECP521R1) KeySize() int  { return 521 }
func (SECT283K1) Name() string  { return "sect283k1" }
func (SECT283K1) KeySize() int  { return 283 }
func (SECT163K1) Name() string  { return "sect163k1" }
func (SECT163K1) KeySize() int  { return 163 }

// ECDSA pairs a signature algorithm with its digest.
type ECDSA struct {
	alg types.HashAlgorithm
}

// NewECDSA builds an ECDSA signature algorithm descriptor.
func NewECDSA(alg types.HashAlgorithm) (*ECDSA, error) {
	if alg == nil {
		return nil, types.TypeErrorf("ECDSA requires a HashAlgorithm, got nil")
	}
	return &ECDSA{alg: alg}, nil
}

// HashAlgorithm returns the digest the signature is computed over.
func (e *ECDSA) HashAlgorithm() types.HashAlgorithm { return e.alg }

// PublicNumbers holds an affine public point on a named curve.
type PublicNumbers struct {
	x     *big.Int
	y     *big.Int
	curve Curve
}

// NewPublicNumbers builds a PublicNumbers. Nil components fail immediately.
func NewPublicNumbers(x, y *big.Int, curve Curve) (*PublicNumbers, error) {
	if x == nil || y == nil {
		return nil, types.TypeErrorf("EllipticCurvePublicNumbers x and y must be integers")
	}
	if curve == nil {
		return nil, types.TypeErrorf("EllipticCurvePublicNumbers requires a Curve")
	}
	return &PublicNumbers{x: new(big.Int).Set(x), y: new(big.Int).Set(y), curve: curve}, nil
}

// X returns the x coordinate.
func (pn *PublicNumbers) X() *big.Int { return new(big.Int).Set(pn.x) }

// Y returns the y coordinate.
func (pn *PublicNumbers) Y() *big.Int { return new(big.Int).Set(pn.y) }

// Curve returns the curve descriptor.
func (pn *PublicNumbers) Curve() Curve { return pn.curve }

// PrivateNumbers holds a private scalar with its public point.
type PrivateNumbers struct {
	privateValue *big.Int
	pub          *PublicNumbers
}

// NewPrivateNumbers builds a PrivateNumbers. Nil components fail
// immediately.
func NewPrivateNumbers(privateValue *big.Int, pub *PublicNumbers) (*PrivateNumbers, error) {
	if privateValue == nil {
		return nil, types.TypeErrorf("EllipticCurvePrivateNumbers private_value must be an integer")
	}
	if pub == nil {
		return nil, types.TypeErrorf("EllipticCurvePrivateNumbers requires public numbers")
	}
	return &PrivateNumbers{privateValue: new(big.Int).Set(privateValue), pub: pub}, nil
}

// PrivateValue returns the private scalar.
func (pn *PrivateNumbers) PrivateValue() *big.Int { return new(big.Int).Set(pn.privateValue) }

// PublicNumbers returns the public point.
func (pn *PrivateNumbers) PublicNumbers() *PublicNumbers { return pn.pub }
