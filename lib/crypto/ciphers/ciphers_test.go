package ciphers_test

import (
	"errors"
	"testing"

	"github.com/go-i2p/cryptkit/lib/backend/native"
	"github.com/go-i2p/cryptkit/lib/crypto/ciphers"
	"github.com/go-i2p/cryptkit/lib/crypto/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestCipherAlgorithmKeySizes tests the per-algorithm key size whitelist.
func TestCipherAlgorithmKeySizes(t *testing.T) {
	for _, bits := range []int{128, 192, 256} {
		alg, err := ciphers.NewAES(make([]byte, bits/8))
		require.NoError(t, err)
		assert.Equal(t, bits, alg.KeySize())
		assert.Equal(t, "AES", alg.Name())
	}
	_, err := ciphers.NewAES(make([]byte, 15))
	require.Error(t, err)
	assert.True(t, errors.Is(err, types.ErrValue))

	for _, bits := range []int{64, 128, 192} {
		alg, err := ciphers.NewTripleDES(make([]byte, bits/8))
		require.NoError(t, err)
		assert.Equal(t, bits, alg.KeySize())
	}
	_, err = ciphers.NewTripleDES(make([]byte, 10))
	require.Error(t, err)
	assert.True(t, errors.Is(err, types.ErrValue))

	_, err = ciphers.NewCamellia(make([]byte, 20))
	require.Error(t, err)
	assert.True(t, errors.Is(err, types.ErrValue))

	// CAST5 allows any size from 40 to 128 bits in byte steps
	for _, bytes := range []int{5, 10, 16} {
		alg, err := ciphers.NewCAST5(make([]byte, bytes))
		require.NoError(t, err)
		assert.Equal(t, bytes*8, alg.KeySize())
	}
	_, err = ciphers.NewCAST5(make([]byte, 4))
	require.Error(t, err)
	_, err = ciphers.NewCAST5(make([]byte, 17))
	require.Error(t, err)
}

// TestModeAccessors tests the IV and nonce carriers.
func TestModeAccessors(t *testing.T) {
	iv := []byte("0123456789abcdef")
	assert.Equal(t, iv, ciphers.NewCBC(iv).IV())
	assert.Equal(t, iv, ciphers.NewCFB(iv).IV())
	assert.Equal(t, iv, ciphers.NewOFB(iv).IV())
	assert.Equal(t, iv, ciphers.NewCTR(iv).Nonce())
	assert.Equal(t, "CBC", ciphers.NewCBC(iv).Name())
	assert.Equal(t, "ECB", ciphers.ECB{}.Name())
}

// TestNewCipherValidation tests the wrapper's argument and provider checks.
func TestNewCipherValidation(t *testing.T) {
	alg, err := ciphers.NewAES(make([]byte, 16))
	require.NoError(t, err)
	mode := ciphers.NewCBC(make([]byte, 16))

	_, err = ciphers.NewCipher(alg, mode, struct{}{})
	require.Error(t, err)
	reason, ok := types.UnsupportedReasonOf(err)
	require.True(t, ok)
	assert.Equal(t, types.BackendMissingInterface, reason)

	_, err = ciphers.NewCipher(nil, mode, native.New())
	require.Error(t, err)
	assert.True(t, errors.Is(err, types.ErrType))

	_, err = ciphers.NewCipher(alg, nil, native.New())
	require.Error(t, err)
	assert.True(t, errors.Is(err, types.ErrType))
}

// TestCipherWrapperRoundtrip tests obtaining contexts through the wrapper.
func TestCipherWrapperRoundtrip(t *testing.T) {
	alg, err := ciphers.NewAES(make([]byte, 16))
	require.NoError(t, err)
	cipher, err := ciphers.NewCipher(alg, ciphers.NewCTR(make([]byte, 16)), native.New())
	require.NoError(t, err)

	plaintext := []byte("stream mode payload")
	enc, err := cipher.Encryptor()
	require.NoError(t, err)
	ciphertext, err := enc.Update(plaintext)
	require.NoError(t, err)
	_, err = enc.Finalize()
	require.NoError(t, err)

	dec, err := cipher.Decryptor()
	require.NoError(t, err)
	decrypted, err := dec.Update(ciphertext)
	require.NoError(t, err)
	assert.Equal(t, plaintext, decrypted)
}
