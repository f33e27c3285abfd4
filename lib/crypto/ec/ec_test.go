package ec

import (
	"errors"
	"math/big"
	"testing"

	"github.com/go-i2p/cryptkit/lib/crypto/hashes"
	"github.com/go-i2p/cryptkit/lib/crypto/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestCurveDescriptors tests the name and field size pairs.
func TestCurveDescriptors(t *testing.T) {
	cases := []struct {
		curve Curve
		name  string
		size  int
	}{
		{SECP256R1{}, "secp256r1", 256},
		{SECP384R1{}, "secp384r1", 384},
		{SECP521R1{}, "secp521r1", 521},
		{SECT283K1{}, "sect283k1", 283},
		{SECT163K1{}, "sect163k1", 163},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.name, tc.curve.Name())
		assert.Equal(t, tc.size, tc.curve.KeySize())
	}
}

// TestNewECDSA tests the signature algorithm constructor.
func TestNewECDSA(t *testing.T) {
	sig, err := NewECDSA(hashes.SHA256{})
	require.NoError(t, err)
	assert.Equal(t, "sha256", sig.HashAlgorithm().Name())

	_, err = NewECDSA(nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, types.ErrType))
}

// TestNumbersConstructors tests the nil checks and defensive copies.
func TestNumbersConstructors(t *testing.T) {
	_, err := NewPublicNumbers(nil, big.NewInt(2), SECP256R1{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, types.ErrType))

	_, err = NewPublicNumbers(big.NewInt(1), big.NewInt(2), nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, types.ErrType))

	x := big.NewInt(1)
	pub, err := NewPublicNumbers(x, big.NewInt(2), SECP256R1{})
	require.NoError(t, err)
	x.SetInt64(99)
	assert.Equal(t, int64(1), pub.X().Int64())

	_, err = NewPrivateNumbers(nil, pub)
	require.Error(t, err)
	assert.True(t, errors.Is(err, types.ErrType))

	_, err = NewPrivateNumbers(big.NewInt(3), nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, types.ErrType))

	priv, err := NewPrivateNumbers(big.NewInt(3), pub)
	require.NoError(t, err)
	assert.Equal(t, int64(3), priv.PrivateValue().Int64())
	assert.Equal(t, "secp256r1", priv.PublicNumbers().Curve().Name())
}
