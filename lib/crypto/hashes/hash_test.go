package hashes_test

import (
	"encoding/hex"
	"errors"
	"testing"

	"github.com/go-i2p/cryptkit/lib/backend/native"
	"github.com/go-i2p/cryptkit/lib/crypto/hashes"
	"github.com/go-i2p/cryptkit/lib/crypto/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestHashDescriptors tests the name and digest size pairs.
func TestHashDescriptors(t *testing.T) {
	cases := []struct {
		alg  types.HashAlgorithm
		name string
		size int
	}{
		{hashes.MD5{}, "md5", 16},
		{hashes.SHA1{}, "sha1", 20},
		{hashes.SHA224{}, "sha224", 28},
		{hashes.SHA256{}, "sha256", 32},
		{hashes.SHA384{}, "sha384", 48},
		{hashes.SHA512{}, "sha512", 64},
		{hashes.RIPEMD160{}, "ripemd160", 20},
		{hashes.Whirlpool{}, "whirlpool", 64},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.name, tc.alg.Name())
		assert.Equal(t, tc.size, tc.alg.DigestSize())
	}
}

// TestHashKnownDigest tests a sha256 digest against the FIPS 180 "abc"
// vector, split across two updates.
func TestHashKnownDigest(t *testing.T) {
	h, err := hashes.New(hashes.SHA256{}, native.New())
	require.NoError(t, err)
	require.NoError(t, h.Update([]byte("ab")))
	require.NoError(t, h.Update([]byte("c")))
	digest, err := h.Finalize()
	require.NoError(t, err)
	assert.Equal(t,
		"ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad",
		hex.EncodeToString(digest))
}

// TestHashSingleUse tests that a finalized context rejects further calls.
func TestHashSingleUse(t *testing.T) {
	h, err := hashes.New(hashes.SHA256{}, native.New())
	require.NoError(t, err)
	_, err = h.Finalize()
	require.NoError(t, err)

	assert.ErrorIs(t, h.Update([]byte("late")), types.ErrAlreadyFinalized)
	_, err = h.Finalize()
	assert.ErrorIs(t, err, types.ErrAlreadyFinalized)
}

// TestHashUnsupportedAlgorithm tests the reason code for a hash the backend
// does not serve.
func TestHashUnsupportedAlgorithm(t *testing.T) {
	_, err := hashes.New(hashes.Whirlpool{}, native.New())
	require.Error(t, err)
	reason, ok := types.UnsupportedReasonOf(err)
	require.True(t, ok)
	assert.Equal(t, types.UnsupportedHash, reason)
}

// TestHashRejectsNonConformingProvider tests that a provider without the
// hash capability is rejected with the interface reason.
func TestHashRejectsNonConformingProvider(t *testing.T) {
	_, err := hashes.New(hashes.SHA256{}, struct{}{})
	require.Error(t, err)
	reason, ok := types.UnsupportedReasonOf(err)
	require.True(t, ok)
	assert.Equal(t, types.BackendMissingInterface, reason)
}

// TestHashRejectsNilAlgorithm tests the nil argument type check.
func TestHashRejectsNilAlgorithm(t *testing.T) {
	_, err := hashes.New(nil, native.New())
	require.Error(t, err)
	assert.True(t, errors.Is(err, types.ErrType))
}
