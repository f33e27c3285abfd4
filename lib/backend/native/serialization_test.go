// The shared test key is 512 bits; Go 1.24+ refuses keys below 1024 bits
// unless rsa1024min is disabled for this test binary.
//go:debug rsa1024min=0

package native

import (
	"crypto/rand"
	stdrsa "crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"sync"
	"testing"

	cryptorsa "github.com/go-i2p/cryptkit/lib/crypto/rsa"
	"github.com/go-i2p/cryptkit/lib/crypto/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	stdKeyOnce sync.Once
	stdKey     *stdrsa.PrivateKey
	stdKeyErr  error
)

func sharedStdKey(t *testing.T) *stdrsa.PrivateKey {
	t.Helper()
	stdKeyOnce.Do(func() {
		stdKey, stdKeyErr = stdrsa.GenerateKey(rand.Reader, 512)
	})
	require.NoError(t, stdKeyErr)
	return stdKey
}

func pkcs1PEM(t *testing.T, key *stdrsa.PrivateKey) []byte {
	t.Helper()
	return pem.EncodeToMemory(&pem.Block{
		Type:  "RSA PRIVATE KEY",
		Bytes: x509.MarshalPKCS1PrivateKey(key),
	})
}

func pkcs8PEM(t *testing.T, key *stdrsa.PrivateKey) []byte {
	t.Helper()
	der, err := x509.MarshalPKCS8PrivateKey(key)
	require.NoError(t, err)
	return pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: der})
}

// TestLoadPEMPrivateKey tests loading PKCS1 and PKCS8 documents through the
// generic entry point.
func TestLoadPEMPrivateKey(t *testing.T) {
	b := New()
	std := sharedStdKey(t)

	for name, doc := range map[string][]byte{
		"pkcs1": pkcs1PEM(t, std),
		"pkcs8": pkcs8PEM(t, std),
	} {
		t.Run(name, func(t *testing.T) {
			loaded, err := b.LoadPEMPrivateKey(doc, nil)
			require.NoError(t, err)
			key, ok := loaded.(*cryptorsa.PrivateKey)
			require.True(t, ok)
			assert.Zero(t, key.PublicNumbers().N().Cmp(std.N))
			assert.Zero(t, key.PrivateNumbers().D().Cmp(std.D))
		})
	}
}

// TestLoadPEMPublicKey tests loading PKCS1 and SubjectPublicKeyInfo public
// key documents.
func TestLoadPEMPublicKey(t *testing.T) {
	b := New()
	std := sharedStdKey(t)

	pkixDER, err := x509.MarshalPKIXPublicKey(&std.PublicKey)
	require.NoError(t, err)
	docs := map[string][]byte{
		"pkcs1": pem.EncodeToMemory(&pem.Block{
			Type:  "RSA PUBLIC KEY",
			Bytes: x509.MarshalPKCS1PublicKey(&std.PublicKey),
		}),
		"pkix": pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: pkixDER}),
	}
	for name, doc := range docs {
		t.Run(name, func(t *testing.T) {
			loaded, err := b.LoadPEMPublicKey(doc)
			require.NoError(t, err)
			key, ok := loaded.(*cryptorsa.PublicKey)
			require.True(t, ok)
			assert.Zero(t, key.PublicNumbers().N().Cmp(std.N))
		})
	}
}

// TestFormatSpecificLoaders tests that the PKCS8 and traditional OpenSSL
// entry points only accept their own block types.
func TestFormatSpecificLoaders(t *testing.T) {
	b := New()
	std := sharedStdKey(t)
	pkcs1 := pkcs1PEM(t, std)
	pkcs8 := pkcs8PEM(t, std)

	_, err := b.LoadPKCS8PEMPrivateKey(pkcs8, nil)
	require.NoError(t, err)
	_, err = b.LoadPKCS8PEMPrivateKey(pkcs1, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, types.ErrValue))

	_, err = b.LoadTraditionalOpenSSLPEMPrivateKey(pkcs1, nil)
	require.NoError(t, err)
	_, err = b.LoadTraditionalOpenSSLPEMPrivateKey(pkcs8, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, types.ErrValue))
}

// TestLoadPEMRejectsBadInput tests the failure modes of the PEM loaders.
func TestLoadPEMRejectsBadInput(t *testing.T) {
	b := New()
	std := sharedStdKey(t)

	t.Run("not a PEM document", func(t *testing.T) {
		_, err := b.LoadPEMPrivateKey([]byte("not pem at all"), nil)
		require.Error(t, err)
		assert.True(t, errors.Is(err, types.ErrValue))
	})

	t.Run("password supplied", func(t *testing.T) {
		_, err := b.LoadPEMPrivateKey(pkcs1PEM(t, std), []byte("hunter2"))
		require.Error(t, err)
		reason, ok := types.UnsupportedReasonOf(err)
		require.True(t, ok)
		assert.Equal(t, types.UnsupportedSerialization, reason)
	})

	t.Run("garbage DER", func(t *testing.T) {
		doc := pem.EncodeToMemory(&pem.Block{Type: "RSA PRIVATE KEY", Bytes: []byte{0x01, 0x02}})
		_, err := b.LoadPEMPrivateKey(doc, nil)
		require.Error(t, err)
		assert.True(t, errors.Is(err, types.ErrValue))
	})

	t.Run("unknown block type", func(t *testing.T) {
		doc := pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: []byte{0x01}})
		_, err := b.LoadPEMPrivateKey(doc, nil)
		require.Error(t, err)
		assert.True(t, errors.Is(err, types.ErrValue))
	})
}

// TestLoadedKeySigns tests that a key loaded from PEM drives the signing
// engine.
func TestLoadedKeySigns(t *testing.T) {
	b := New()
	std := sharedStdKey(t)

	loaded, err := b.LoadPEMPrivateKey(pkcs1PEM(t, std), nil)
	require.NoError(t, err)
	key := loaded.(*cryptorsa.PrivateKey)

	assert.Equal(t, 512, key.KeySize())
	assert.NotNil(t, key.PublicKey())
}
