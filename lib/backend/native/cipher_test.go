package native

import (
	"encoding/hex"
	"errors"
	"testing"

	"github.com/go-i2p/cryptkit/lib/crypto/ciphers"
	"github.com/go-i2p/cryptkit/lib/crypto/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fromHex(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	require.NoError(t, err)
	return b
}

// TestAESCBCKnownVector tests AES-128-CBC against the NIST SP 800-38A F.2.1
// vector.
func TestAESCBCKnownVector(t *testing.T) {
	b := New()
	aes, err := ciphers.NewAES(fromHex(t, "2b7e151628aed2a6abf7158809cf4f3c"))
	require.NoError(t, err)
	mode := ciphers.NewCBC(fromHex(t, "000102030405060708090a0b0c0d0e0f"))

	enc, err := b.CreateSymmetricEncryptionCtx(aes, mode)
	require.NoError(t, err)
	out, err := enc.Update(fromHex(t, "6bc1bee22e409f96e93d7e117393172a"))
	require.NoError(t, err)
	tail, err := enc.Finalize()
	require.NoError(t, err)
	require.Empty(t, tail)
	assert.Equal(t, "7649abac8119b246cee98e9b12e9197d", hex.EncodeToString(out))
}

// TestCipherRoundtrips tests encrypt/decrypt roundtrips across the
// supported algorithm and mode combinations.
func TestCipherRoundtrips(t *testing.T) {
	b := New()
	plaintext := []byte("sixteen byte blk sixteen byte blk0123456789abcde")

	cases := []struct {
		name string
		alg  func(t *testing.T) ciphers.CipherAlgorithm
		mode func(t *testing.T) ciphers.Mode
	}{
		{"AES-256-CBC", func(t *testing.T) ciphers.CipherAlgorithm {
			alg, err := ciphers.NewAES(make([]byte, 32))
			require.NoError(t, err)
			return alg
		}, func(t *testing.T) ciphers.Mode { return ciphers.NewCBC(make([]byte, 16)) }},
		{"AES-128-CFB", func(t *testing.T) ciphers.CipherAlgorithm {
			alg, err := ciphers.NewAES(make([]byte, 16))
			require.NoError(t, err)
			return alg
		}, func(t *testing.T) ciphers.Mode { return ciphers.NewCFB(make([]byte, 16)) }},
		{"AES-192-OFB", func(t *testing.T) ciphers.CipherAlgorithm {
			alg, err := ciphers.NewAES(make([]byte, 24))
			require.NoError(t, err)
			return alg
		}, func(t *testing.T) ciphers.Mode { return ciphers.NewOFB(make([]byte, 16)) }},
		{"AES-128-CTR", func(t *testing.T) ciphers.CipherAlgorithm {
			alg, err := ciphers.NewAES(make([]byte, 16))
			require.NoError(t, err)
			return alg
		}, func(t *testing.T) ciphers.Mode { return ciphers.NewCTR(make([]byte, 16)) }},
		{"3DES-192-CBC", func(t *testing.T) ciphers.CipherAlgorithm {
			alg, err := ciphers.NewTripleDES(fromHex(t,
				"0123456789abcdef23456789abcdef01456789abcdef0123"))
			require.NoError(t, err)
			return alg
		}, func(t *testing.T) ciphers.Mode { return ciphers.NewCBC(make([]byte, 8)) }},
		{"3DES-128-CBC", func(t *testing.T) ciphers.CipherAlgorithm {
			alg, err := ciphers.NewTripleDES(fromHex(t, "0123456789abcdef23456789abcdef01"))
			require.NoError(t, err)
			return alg
		}, func(t *testing.T) ciphers.Mode { return ciphers.NewCBC(make([]byte, 8)) }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			alg := tc.alg(t)

			enc, err := b.CreateSymmetricEncryptionCtx(alg, tc.mode(t))
			require.NoError(t, err)
			ciphertext, err := enc.Update(plaintext)
			require.NoError(t, err)
			tail, err := enc.Finalize()
			require.NoError(t, err)
			ciphertext = append(ciphertext, tail...)
			require.NotEqual(t, plaintext, ciphertext)

			dec, err := b.CreateSymmetricDecryptionCtx(alg, tc.mode(t))
			require.NoError(t, err)
			decrypted, err := dec.Update(ciphertext)
			require.NoError(t, err)
			tail, err = dec.Finalize()
			require.NoError(t, err)
			decrypted = append(decrypted, tail...)
			assert.Equal(t, plaintext, decrypted)
		})
	}
}

// TestBlockModeBuffersPartialBlocks tests that CBC holds back data until a
// whole block is available and fails Finalize on a residue.
func TestBlockModeBuffersPartialBlocks(t *testing.T) {
	b := New()
	alg, err := ciphers.NewAES(make([]byte, 16))
	require.NoError(t, err)

	enc, err := b.CreateSymmetricEncryptionCtx(alg, ciphers.NewCBC(make([]byte, 16)))
	require.NoError(t, err)

	out, err := enc.Update(make([]byte, 10))
	require.NoError(t, err)
	assert.Empty(t, out)

	out, err = enc.Update(make([]byte, 10))
	require.NoError(t, err)
	assert.Len(t, out, 16)

	_, err = enc.Finalize()
	require.Error(t, err)
	assert.True(t, errors.Is(err, types.ErrValue))
	assert.Contains(t, err.Error(), "not a multiple of the block length")
}

// TestCipherContextSingleUse tests that finalized contexts reject further
// calls.
func TestCipherContextSingleUse(t *testing.T) {
	b := New()
	alg, err := ciphers.NewAES(make([]byte, 16))
	require.NoError(t, err)

	enc, err := b.CreateSymmetricEncryptionCtx(alg, ciphers.NewCTR(make([]byte, 16)))
	require.NoError(t, err)
	_, err = enc.Finalize()
	require.NoError(t, err)
	_, err = enc.Update([]byte("late"))
	assert.ErrorIs(t, err, types.ErrAlreadyFinalized)
	_, err = enc.Finalize()
	assert.ErrorIs(t, err, types.ErrAlreadyFinalized)
}

// TestCipherIVValidation tests IV and nonce length checks.
func TestCipherIVValidation(t *testing.T) {
	b := New()
	alg, err := ciphers.NewAES(make([]byte, 16))
	require.NoError(t, err)

	_, err = b.CreateSymmetricEncryptionCtx(alg, ciphers.NewCBC(make([]byte, 8)))
	require.Error(t, err)
	assert.True(t, errors.Is(err, types.ErrValue))

	_, err = b.CreateSymmetricEncryptionCtx(alg, ciphers.NewCTR(make([]byte, 12)))
	require.Error(t, err)
	assert.True(t, errors.Is(err, types.ErrValue))
}

// TestCipherUnsupportedCombination tests the reason code for combinations
// outside the native backend's coverage.
func TestCipherUnsupportedCombination(t *testing.T) {
	b := New()

	camellia, err := ciphers.NewCamellia(make([]byte, 16))
	require.NoError(t, err)
	_, err = b.CreateSymmetricEncryptionCtx(camellia, ciphers.NewCBC(make([]byte, 16)))
	require.Error(t, err)
	reason, ok := types.UnsupportedReasonOf(err)
	require.True(t, ok)
	assert.Equal(t, types.UnsupportedCipher, reason)

	aes, err := ciphers.NewAES(make([]byte, 16))
	require.NoError(t, err)
	assert.False(t, b.CipherSupported(aes, ciphers.ECB{}))
	assert.False(t, b.CipherSupported(camellia, ciphers.NewCBC(make([]byte, 16))))
}

// TestExpandTripleDESKey tests the keying option widening.
func TestExpandTripleDESKey(t *testing.T) {
	one := fromHex(t, "0123456789abcdef")
	expanded := expandTripleDESKey(one)
	require.Len(t, expanded, 24)
	assert.Equal(t, append(append(append([]byte{}, one...), one...), one...), expanded)

	two := fromHex(t, "0123456789abcdef23456789abcdef01")
	expanded = expandTripleDESKey(two)
	require.Len(t, expanded, 24)
	assert.Equal(t, two, expanded[:16])
	assert.Equal(t, two[:8], expanded[16:])

	three := make([]byte, 24)
	assert.Equal(t, three, expandTripleDESKey(three))
}
