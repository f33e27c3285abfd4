// Package native implements the default pure-Go backend. It claims the
// hash, hmac, pbkdf2, cipher, rsa, dsa and serialization capabilities and
// is normally registered first in a MultiBackend.
package native

import (
	"github.com/go-i2p/cryptkit/lib/backend"
	"github.com/go-i2p/logger"
)

var log = logger.GetGoI2PLogger()

// Backend is stateless; one value may serve any number of goroutines.
type Backend struct{}

// New returns the native backend.
func New() *Backend { return &Backend{} }

// Name implements backend.Backend.
func (b *Backend) Name() string { return "native" }

// Capabilities implements backend.Backend. CMAC and elliptic curve
// operations are deliberately not claimed; those stay with external
// backends.
func (b *Backend) Capabilities() backend.Capability {
	return backend.CapCipher |
		backend.CapHash |
		backend.CapHMAC |
		backend.CapPBKDF2 |
		backend.CapRSA |
		backend.CapDSA |
		backend.CapPEMSerialization |
		backend.CapPKCS8Serialization |
		backend.CapTraditionalOpenSSLSerialization
}

var (
	_ backend.Backend                                = (*Backend)(nil)
	_ backend.CipherBackend                          = (*Backend)(nil)
	_ backend.HashBackend                            = (*Backend)(nil)
	_ backend.HMACBackend                            = (*Backend)(nil)
	_ backend.PBKDF2HMACBackend                      = (*Backend)(nil)
	_ backend.RSABackend                             = (*Backend)(nil)
	_ backend.DSABackend                             = (*Backend)(nil)
	_ backend.PEMSerializationBackend                = (*Backend)(nil)
	_ backend.PKCS8SerializationBackend              = (*Backend)(nil)
	_ backend.TraditionalOpenSSLSerializationBackend = (*Backend)(nil)
)
