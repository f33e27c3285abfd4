// Package padding models asymmetric padding schemes and mask generation
// functions. Values are immutable after construction and validated
// independently of any backend.
package padding

import (
	"github.com/go-i2p/cryptkit/lib/crypto/types"
)

// MaxLength requests the largest salt the modulus and hash combination
// permits when used as a PSS salt length.
const MaxLength = -1

// PKCS1v15 is the deterministic padding scheme predating PSS and OAEP.
type PKCS1v15 struct{}

func (PKCS1v15) Name() string { return "EMSA-PKCS1-v1_5" }

// MGF1 is a mask generation function built from repeated hashing.
type MGF1 struct {
	alg types.HashAlgorithm
}

// NewMGF1 builds an MGF1 over the given hash algorithm. The algorithm must
// be a conforming descriptor.
func NewMGF1(alg types.HashAlgorithm) (*MGF1, error) {
	if alg == nil {
		return nil, types.TypeErrorf("MGF1 requires a HashAlgorithm, got nil")
	}
	return &MGF1{alg: alg}, nil
}

// HashAlgorithm returns the hash the mask is generated with.
func (m *MGF1) HashAlgorithm() types.HashAlgorithm { return m.alg }

// PSS is the probabilistic signature padding scheme.
type PSS struct {
	mgf        *MGF1
	saltLength int
}

// NewPSS builds a PSS padding with the given mask generation function and
// salt length. The salt length is a byte count >= 0, or MaxLength.
func NewPSS(mgf *MGF1, saltLength int) (*PSS, error) {
	if mgf == nil {
		return nil, types.TypeErrorf("PSS requires an MGF, got nil")
	}
	if saltLength < 0 && saltLength != MaxLength {
		return nil, types.ValueErrorf("salt_length must be non-negative")
	}
	return &PSS{mgf: mgf, saltLength: saltLength}, nil
}

func (*PSS) Name() string { return "EMSA-PSS" }

// MGF returns the mask generation function.
func (p *PSS) MGF() *MGF1 { return p.mgf }

// SaltLength returns the salt byte count, or MaxLength.
func (p *PSS) SaltLength() int { return p.saltLength }

// OAEP is the optimal asymmetric encryption padding scheme.
type OAEP struct {
	mgf   *MGF1
	alg   types.HashAlgorithm
	label []byte
}

// NewOAEP builds an OAEP padding with the given mask generation function,
// hash algorithm and optional label.
func NewOAEP(mgf *MGF1, alg types.HashAlgorithm, label []byte) (*OAEP, error) {
	if mgf == nil {
		return nil, types.TypeErrorf("OAEP requires an MGF, got nil")
	}
	if alg == nil {
		return nil, types.TypeErrorf("OAEP requires a HashAlgorithm, got nil")
	}
	return &OAEP{mgf: mgf, alg: alg, label: label}, nil
}

func (*OAEP) Name() string { return "EME-OAEP" }

// MGF returns the mask generation function.
func (o *OAEP) MGF() *MGF1 { return o.mgf }

// HashAlgorithm returns the hash used for the label digest and data block.
func (o *OAEP) HashAlgorithm() types.HashAlgorithm { return o.alg }

// Label returns the optional label, nil when absent.
func (o *OAEP) Label() []byte { return o.label }

var (
	_ types.AsymmetricPadding = PKCS1v15{}
	_ types.AsymmetricPadding = (*PSS)(nil)
	_ types.AsymmetricPadding = (*OAEP)(nil)
)
