package backend

import (
	"hash"
	"math/big"

	"github.com/go-i2p/cryptkit/lib/crypto/ciphers"
	"github.com/go-i2p/cryptkit/lib/crypto/dsa"
	"github.com/go-i2p/cryptkit/lib/crypto/ec"
	"github.com/go-i2p/cryptkit/lib/crypto/rsa"
	"github.com/go-i2p/cryptkit/lib/crypto/types"
	"github.com/go-i2p/logger"
)

var log = logger.GetGoI2PLogger()

// MultiBackend routes every capability query and operation across an
// ordered list of backends: supported-queries OR over all of them,
// operations go to the first backend in registration order that reports
// support. Immutable after construction and safe for concurrent read-only
// dispatch provided the registered backends are reentrant.
type MultiBackend struct {
	backends []Backend

	cipher         []CipherBackend
	hashes         []HashBackend
	hmacs          []HMACBackend
	pbkdf2         []PBKDF2HMACBackend
	cmac           []CMACBackend
	rsa            []RSABackend
	dsa            []DSABackend
	ellipticCurve  []EllipticCurveBackend
	pem            []PEMSerializationBackend
	pkcs8          []PKCS8SerializationBackend
	traditionalSSL []TraditionalOpenSSLSerializationBackend
}

// NewMultiBackend builds a registry over backends in the given precedence
// order. Every capability a backend declares must be backed by the matching
// interface; a claim without the implementation fails with
// BACKEND_MISSING_INTERFACE.
func NewMultiBackend(backends ...Backend) (*MultiBackend, error) {
	m := &MultiBackend{backends: backends}
	for _, b := range backends {
		caps := b.Capabilities()
		if caps.Has(CapCipher) {
			cb, ok := b.(CipherBackend)
			if !ok {
				return nil, claimError(b, "cipher")
			}
			m.cipher = append(m.cipher, cb)
		}
		if caps.Has(CapHash) {
			hb, ok := b.(HashBackend)
			if !ok {
				return nil, claimError(b, "hash")
			}
			m.hashes = append(m.hashes, hb)
		}
		if caps.Has(CapHMAC) {
			hb, ok := b.(HMACBackend)
			if !ok {
				return nil, claimError(b, "hmac")
			}
			m.hmacs = append(m.hmacs, hb)
		}
		if caps.Has(CapPBKDF2) {
			pb, ok := b.(PBKDF2HMACBackend)
			if !ok {
				return nil, claimError(b, "pbkdf2")
			}
			m.pbkdf2 = append(m.pbkdf2, pb)
		}
		if caps.Has(CapCMAC) {
			cb, ok := b.(CMACBackend)
			if !ok {
				return nil, claimError(b, "cmac")
			}
			m.cmac = append(m.cmac, cb)
		}
		if caps.Has(CapRSA) {
			rb, ok := b.(RSABackend)
			if !ok {
				return nil, claimError(b, "rsa")
			}
			m.rsa = append(m.rsa, rb)
		}
		if caps.Has(CapDSA) {
			db, ok := b.(DSABackend)
			if !ok {
				return nil, claimError(b, "dsa")
			}
			m.dsa = append(m.dsa, db)
		}
		if caps.Has(CapEllipticCurve) {
			eb, ok := b.(EllipticCurveBackend)
			if !ok {
				return nil, claimError(b, "elliptic-curve")
			}
			m.ellipticCurve = append(m.ellipticCurve, eb)
		}
		if caps.Has(CapPEMSerialization) {
			sb, ok := b.(PEMSerializationBackend)
			if !ok {
				return nil, claimError(b, "pem-serialization")
			}
			m.pem = append(m.pem, sb)
		}
		if caps.Has(CapPKCS8Serialization) {
			sb, ok := b.(PKCS8SerializationBackend)
			if !ok {
				return nil, claimError(b, "pkcs8-serialization")
			}
			m.pkcs8 = append(m.pkcs8, sb)
		}
		if caps.Has(CapTraditionalOpenSSLSerialization) {
			sb, ok := b.(TraditionalOpenSSLSerializationBackend)
			if !ok {
				return nil, claimError(b, "traditional-openssl-serialization")
			}
			m.traditionalSSL = append(m.traditionalSSL, sb)
		}
	}
	log.WithField("backends", len(backends)).Debug("multi backend constructed")
	return m, nil
}

func claimError(b Backend, capability string) error {
	return types.Unsupportedf(types.BackendMissingInterface,
		"backend %s claims the %s capability but does not implement it", b.Name(), capability)
}

// Name identifies the registry as a backend in its own right.
func (m *MultiBackend) Name() string { return "multibackend" }

// Capabilities returns the union of the registered backends' capability
// sets.
func (m *MultiBackend) Capabilities() Capability {
	var caps Capability
	for _, b := range m.backends {
		caps |= b.Capabilities()
	}
	return caps
}

// CipherSupported reports whether any registered backend supports the
// cipher and mode combination.
func (m *MultiBackend) CipherSupported(alg ciphers.CipherAlgorithm, mode ciphers.Mode) bool {
	for _, b := range m.cipher {
		if b.CipherSupported(alg, mode) {
			return true
		}
	}
	return false
}

// CreateSymmetricEncryptionCtx delegates to the first backend supporting
// the cipher and mode combination.
func (m *MultiBackend) CreateSymmetricEncryptionCtx(alg ciphers.CipherAlgorithm, mode ciphers.Mode) (ciphers.Context, error) {
	for _, b := range m.cipher {
		if b.CipherSupported(alg, mode) {
			return b.CreateSymmetricEncryptionCtx(alg, mode)
		}
	}
	return nil, types.Unsupportedf(types.UnsupportedCipher,
		"cipher %s in %s mode is not supported by any registered backend", alg.Name(), mode.Name())
}

// CreateSymmetricDecryptionCtx delegates to the first backend supporting
// the cipher and mode combination.
func (m *MultiBackend) CreateSymmetricDecryptionCtx(alg ciphers.CipherAlgorithm, mode ciphers.Mode) (ciphers.Context, error) {
	for _, b := range m.cipher {
		if b.CipherSupported(alg, mode) {
			return b.CreateSymmetricDecryptionCtx(alg, mode)
		}
	}
	return nil, types.Unsupportedf(types.UnsupportedCipher,
		"cipher %s in %s mode is not supported by any registered backend", alg.Name(), mode.Name())
}

// HashSupported reports whether any registered backend supports the hash.
func (m *MultiBackend) HashSupported(alg types.HashAlgorithm) bool {
	for _, b := range m.hashes {
		if b.HashSupported(alg) {
			return true
		}
	}
	return false
}

// CreateHashCtx delegates to the first backend supporting the hash.
func (m *MultiBackend) CreateHashCtx(alg types.HashAlgorithm) (hash.Hash, error) {
	for _, b := range m.hashes {
		if b.HashSupported(alg) {
			return b.CreateHashCtx(alg)
		}
	}
	return nil, types.Unsupportedf(types.UnsupportedHash,
		"%s is not supported by any registered backend", alg.Name())
}

// HMACSupported reports whether any registered backend supports HMAC over
// the hash.
func (m *MultiBackend) HMACSupported(alg types.HashAlgorithm) bool {
	for _, b := range m.hmacs {
		if b.HMACSupported(alg) {
			return true
		}
	}
	return false
}

// CreateHMACCtx delegates to the first backend supporting HMAC over the
// hash.
func (m *MultiBackend) CreateHMACCtx(key []byte, alg types.HashAlgorithm) (hash.Hash, error) {
	for _, b := range m.hmacs {
		if b.HMACSupported(alg) {
			return b.CreateHMACCtx(key, alg)
		}
	}
	return nil, types.Unsupportedf(types.UnsupportedHash,
		"HMAC with %s is not supported by any registered backend", alg.Name())
}

// PBKDF2HMACSupported reports whether any registered backend supports
// PBKDF2 over the hash.
func (m *MultiBackend) PBKDF2HMACSupported(alg types.HashAlgorithm) bool {
	for _, b := range m.pbkdf2 {
		if b.PBKDF2HMACSupported(alg) {
			return true
		}
	}
	return false
}

// DerivePBKDF2HMAC delegates to the first backend supporting PBKDF2 over
// the hash.
func (m *MultiBackend) DerivePBKDF2HMAC(alg types.HashAlgorithm, length int, salt []byte, iterations int, keyMaterial []byte) ([]byte, error) {
	for _, b := range m.pbkdf2 {
		if b.PBKDF2HMACSupported(alg) {
			return b.DerivePBKDF2HMAC(alg, length, salt, iterations, keyMaterial)
		}
	}
	return nil, types.Unsupportedf(types.UnsupportedHash,
		"PBKDF2 with %s is not supported by any registered backend", alg.Name())
}

// CMACAlgorithmSupported reports whether any registered backend supports
// CMAC over the cipher.
func (m *MultiBackend) CMACAlgorithmSupported(alg ciphers.CipherAlgorithm) bool {
	for _, b := range m.cmac {
		if b.CMACAlgorithmSupported(alg) {
			return true
		}
	}
	return false
}

// CreateCMACCtx delegates to the first backend supporting CMAC over the
// cipher.
func (m *MultiBackend) CreateCMACCtx(alg ciphers.CipherAlgorithm) (hash.Hash, error) {
	for _, b := range m.cmac {
		if b.CMACAlgorithmSupported(alg) {
			return b.CreateCMACCtx(alg)
		}
	}
	return nil, types.Unsupportedf(types.UnsupportedCipher,
		"CMAC with %s is not supported by any registered backend", alg.Name())
}

// GenerateRSAParametersSupported reports whether any registered RSA backend
// accepts the generation parameters.
func (m *MultiBackend) GenerateRSAParametersSupported(publicExponent, keySize int) bool {
	for _, b := range m.rsa {
		if b.GenerateRSAParametersSupported(publicExponent, keySize) {
			return true
		}
	}
	return false
}

// GenerateRSAPrivateKey delegates to the first RSA backend accepting the
// generation parameters.
func (m *MultiBackend) GenerateRSAPrivateKey(publicExponent, keySize int) (*rsa.PrivateKey, error) {
	for _, b := range m.rsa {
		if b.GenerateRSAParametersSupported(publicExponent, keySize) {
			return b.GenerateRSAPrivateKey(publicExponent, keySize)
		}
	}
	return nil, errNoRSABackend()
}

// RSAPaddingSupported reports whether any registered RSA backend supports
// the padding scheme.
func (m *MultiBackend) RSAPaddingSupported(pad types.AsymmetricPadding) bool {
	for _, b := range m.rsa {
		if b.RSAPaddingSupported(pad) {
			return true
		}
	}
	return false
}

// MGF1HashSupported reports whether any registered RSA backend supports
// MGF1 over the hash.
func (m *MultiBackend) MGF1HashSupported(alg types.HashAlgorithm) bool {
	for _, b := range m.rsa {
		if b.MGF1HashSupported(alg) {
			return true
		}
	}
	return false
}

// LoadRSAPrivateNumbers delegates to the first registered RSA backend.
func (m *MultiBackend) LoadRSAPrivateNumbers(numbers *rsa.PrivateNumbers) (*rsa.PrivateKey, error) {
	if len(m.rsa) > 0 {
		return m.rsa[0].LoadRSAPrivateNumbers(numbers)
	}
	return nil, errNoRSABackend()
}

// LoadRSAPublicNumbers delegates to the first registered RSA backend.
func (m *MultiBackend) LoadRSAPublicNumbers(numbers *rsa.PublicNumbers) (*rsa.PublicKey, error) {
	if len(m.rsa) > 0 {
		return m.rsa[0].LoadRSAPublicNumbers(numbers)
	}
	return nil, errNoRSABackend()
}

func errNoRSABackend() error {
	return types.Unsupportedf(types.UnsupportedPublicKeyAlgorithm,
		"RSA is not supported by any registered backend")
}

// GenerateDSAParameters delegates to the first registered DSA backend.
func (m *MultiBackend) GenerateDSAParameters(keySize int) (*dsa.Parameters, error) {
	if len(m.dsa) > 0 {
		return m.dsa[0].GenerateDSAParameters(keySize)
	}
	return nil, errNoDSABackend()
}

// GenerateDSAPrivateKey delegates to the first DSA backend accepting the
// parameter set.
func (m *MultiBackend) GenerateDSAPrivateKey(params *dsa.Parameters) (*dsa.PrivateKey, error) {
	for _, b := range m.dsa {
		if b.DSAParametersSupported(params.P(), params.Q(), params.G()) {
			return b.GenerateDSAPrivateKey(params)
		}
	}
	return nil, errNoDSABackend()
}

// DSAHashSupported reports whether any registered DSA backend supports the
// hash.
func (m *MultiBackend) DSAHashSupported(alg types.HashAlgorithm) bool {
	for _, b := range m.dsa {
		if b.DSAHashSupported(alg) {
			return true
		}
	}
	return false
}

// DSAParametersSupported reports whether any registered DSA backend
// supports the parameter set.
func (m *MultiBackend) DSAParametersSupported(p, q, g *big.Int) bool {
	for _, b := range m.dsa {
		if b.DSAParametersSupported(p, q, g) {
			return true
		}
	}
	return false
}

func errNoDSABackend() error {
	return types.Unsupportedf(types.UnsupportedPublicKeyAlgorithm,
		"DSA is not supported by any registered backend")
}

// EllipticCurveSupported reports whether any registered backend supports
// the curve.
func (m *MultiBackend) EllipticCurveSupported(curve ec.Curve) bool {
	for _, b := range m.ellipticCurve {
		if b.EllipticCurveSupported(curve) {
			return true
		}
	}
	return false
}

// EllipticCurveSignatureAlgorithmSupported reports whether any registered
// backend supports the signature algorithm on the curve.
func (m *MultiBackend) EllipticCurveSignatureAlgorithmSupported(sigAlg *ec.ECDSA, curve ec.Curve) bool {
	for _, b := range m.ellipticCurve {
		if b.EllipticCurveSignatureAlgorithmSupported(sigAlg, curve) {
			return true
		}
	}
	return false
}

// GenerateEllipticCurvePrivateKey delegates to the first backend supporting
// the curve.
func (m *MultiBackend) GenerateEllipticCurvePrivateKey(curve ec.Curve) (interface{}, error) {
	for _, b := range m.ellipticCurve {
		if b.EllipticCurveSupported(curve) {
			return b.GenerateEllipticCurvePrivateKey(curve)
		}
	}
	return nil, errNoCurveBackend(curve)
}

// LoadEllipticCurvePrivateNumbers delegates to the first backend supporting
// the curve of the numbers.
func (m *MultiBackend) LoadEllipticCurvePrivateNumbers(numbers *ec.PrivateNumbers) (interface{}, error) {
	for _, b := range m.ellipticCurve {
		if b.EllipticCurveSupported(numbers.PublicNumbers().Curve()) {
			return b.LoadEllipticCurvePrivateNumbers(numbers)
		}
	}
	return nil, errNoCurveBackend(numbers.PublicNumbers().Curve())
}

// LoadEllipticCurvePublicNumbers delegates to the first backend supporting
// the curve of the numbers.
func (m *MultiBackend) LoadEllipticCurvePublicNumbers(numbers *ec.PublicNumbers) (interface{}, error) {
	for _, b := range m.ellipticCurve {
		if b.EllipticCurveSupported(numbers.Curve()) {
			return b.LoadEllipticCurvePublicNumbers(numbers)
		}
	}
	return nil, errNoCurveBackend(numbers.Curve())
}

func errNoCurveBackend(curve ec.Curve) error {
	return types.Unsupportedf(types.UnsupportedEllipticCurve,
		"curve %s is not supported by any registered backend", curve.Name())
}

// LoadPEMPrivateKey delegates to the first registered PEM serialization
// backend.
func (m *MultiBackend) LoadPEMPrivateKey(data, password []byte) (interface{}, error) {
	if len(m.pem) > 0 {
		return m.pem[0].LoadPEMPrivateKey(data, password)
	}
	return nil, errNoSerializationBackend()
}

// LoadPEMPublicKey delegates to the first registered PEM serialization
// backend.
func (m *MultiBackend) LoadPEMPublicKey(data []byte) (interface{}, error) {
	if len(m.pem) > 0 {
		return m.pem[0].LoadPEMPublicKey(data)
	}
	return nil, errNoSerializationBackend()
}

// LoadPKCS8PEMPrivateKey delegates to the first registered PKCS#8
// serialization backend.
func (m *MultiBackend) LoadPKCS8PEMPrivateKey(data, password []byte) (interface{}, error) {
	if len(m.pkcs8) > 0 {
		return m.pkcs8[0].LoadPKCS8PEMPrivateKey(data, password)
	}
	return nil, errNoSerializationBackend()
}

// LoadTraditionalOpenSSLPEMPrivateKey delegates to the first registered
// traditional OpenSSL serialization backend.
func (m *MultiBackend) LoadTraditionalOpenSSLPEMPrivateKey(data, password []byte) (interface{}, error) {
	if len(m.traditionalSSL) > 0 {
		return m.traditionalSSL[0].LoadTraditionalOpenSSLPEMPrivateKey(data, password)
	}
	return nil, errNoSerializationBackend()
}

func errNoSerializationBackend() error {
	return types.Unsupportedf(types.UnsupportedSerialization,
		"no registered backend supports this serialization")
}

var (
	_ Backend       = (*MultiBackend)(nil)
	_ CipherBackend = (*MultiBackend)(nil)
	_ HashBackend   = (*MultiBackend)(nil)
	_ HMACBackend   = (*MultiBackend)(nil)
	_ RSABackend    = (*MultiBackend)(nil)
	_ DSABackend    = (*MultiBackend)(nil)
	_ rsa.Backend   = (*MultiBackend)(nil)
	_ dsa.Backend   = (*MultiBackend)(nil)
)
