package rsa

import (
	"errors"
	"math/big"
	"testing"

	"github.com/go-i2p/cryptkit/lib/crypto/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testPrivateNumbers returns the small component set used by the validation
// tests: p=3, q=11, n=33, e=7, d=3, dmp1=1, dmq1=3, iqmp=2. The components
// satisfy every structural check.
func testPrivateNumbers(t *testing.T, override func(c *components)) *PrivateNumbers {
	t.Helper()
	c := &components{
		p: 3, q: 11, d: 3, dmp1: 1, dmq1: 3, iqmp: 2, e: 7, n: 33,
	}
	if override != nil {
		override(c)
	}
	pub, err := NewPublicNumbers(big.NewInt(c.e), big.NewInt(c.n))
	require.NoError(t, err)
	numbers, err := NewPrivateNumbers(
		big.NewInt(c.p), big.NewInt(c.q), big.NewInt(c.d),
		big.NewInt(c.dmp1), big.NewInt(c.dmq1), big.NewInt(c.iqmp), pub)
	require.NoError(t, err)
	return numbers
}

type components struct {
	p, q, d, dmp1, dmq1, iqmp, e, n int64
}

// TestLoadPrivateNumbersValid tests that a component set satisfying every
// structural invariant loads.
func TestLoadPrivateNumbersValid(t *testing.T) {
	numbers := testPrivateNumbers(t, nil)
	key, err := LoadPrivateNumbers(numbers, nil)
	require.NoError(t, err)
	assert.Equal(t, 6, key.KeySize())
}

// TestLoadPrivateNumbersRejectsBadComponents tests that each violated bound
// fails with a value error.
func TestLoadPrivateNumbersRejectsBadComponents(t *testing.T) {
	cases := []struct {
		name     string
		override func(c *components)
	}{
		{"p >= n", func(c *components) { c.p = 37 }},
		{"q >= n", func(c *components) { c.q = 37 }},
		{"d >= n", func(c *components) { c.d = 37 }},
		{"dmp1 >= n", func(c *components) { c.dmp1 = 37 }},
		{"dmq1 >= n", func(c *components) { c.dmq1 = 37 }},
		{"iqmp >= n", func(c *components) { c.iqmp = 37 }},
		{"dmp1 even", func(c *components) { c.dmp1 = 2 }},
		{"dmq1 even", func(c *components) { c.dmq1 = 2 }},
		{"e even", func(c *components) { c.e = 6 }},
		{"e < 3", func(c *components) { c.e = 1 }},
		{"e >= n", func(c *components) { c.e = 33 }},
		{"p*q != n", func(c *components) { c.p = 5 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			numbers := testPrivateNumbers(t, tc.override)
			_, err := LoadPrivateNumbers(numbers, nil)
			require.Error(t, err)
			assert.True(t, errors.Is(err, types.ErrValue), "expected a value error, got %v", err)
		})
	}
}

// TestLoadPublicNumbersRejectsBadComponents tests the public component
// bounds.
func TestLoadPublicNumbersRejectsBadComponents(t *testing.T) {
	cases := []struct {
		name string
		e, n int64
	}{
		{"n < 3", 1, 2},
		{"e < 3", 1, 33},
		{"e >= n", 35, 33},
		{"e even", 6, 33},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			pub, err := NewPublicNumbers(big.NewInt(tc.e), big.NewInt(tc.n))
			require.NoError(t, err)
			_, err = LoadPublicNumbers(pub, nil)
			require.Error(t, err)
			assert.True(t, errors.Is(err, types.ErrValue))
		})
	}
}

// TestNewNumbersRejectNil tests that nil components fail at construction
// with a type error naming the field.
func TestNewNumbersRejectNil(t *testing.T) {
	_, err := NewPublicNumbers(nil, big.NewInt(33))
	require.Error(t, err)
	assert.True(t, errors.Is(err, types.ErrType))

	_, err = NewPublicNumbers(big.NewInt(7), nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, types.ErrType))

	pub, err := NewPublicNumbers(big.NewInt(7), big.NewInt(33))
	require.NoError(t, err)

	_, err = NewPrivateNumbers(nil, big.NewInt(11), big.NewInt(3),
		big.NewInt(1), big.NewInt(3), big.NewInt(2), pub)
	require.Error(t, err)
	assert.True(t, errors.Is(err, types.ErrType))
	assert.Contains(t, err.Error(), "p must be an integer")

	_, err = NewPrivateNumbers(big.NewInt(3), big.NewInt(11), big.NewInt(3),
		big.NewInt(1), big.NewInt(3), big.NewInt(2), nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, types.ErrType))
}

// TestModInverse tests the extended Euclid inverse on coprime and
// non-coprime inputs.
func TestModInverse(t *testing.T) {
	cases := []struct{ a, m int64 }{
		{3, 7},
		{7, 40},
		{65537, 3120},
		{17, 3120},
		{2, 9},
	}
	for _, tc := range cases {
		a, m := big.NewInt(tc.a), big.NewInt(tc.m)
		inv, ok := ModInverse(a, m)
		require.True(t, ok, "ModInverse(%d, %d)", tc.a, tc.m)
		product := new(big.Int).Mul(a, inv)
		assert.Equal(t, int64(1), product.Mod(product, m).Int64())
		assert.True(t, inv.Sign() >= 0 && inv.Cmp(m) < 0, "inverse must be reduced mod m")
	}

	_, ok := ModInverse(big.NewInt(6), big.NewInt(9))
	assert.False(t, ok, "6 and 9 share a factor")
}

// TestModInverseLarge tests the inverse against math/big on a large
// modulus.
func TestModInverseLarge(t *testing.T) {
	a, _ := new(big.Int).SetString("65537", 10)
	m, _ := new(big.Int).SetString(
		"fffffffffffffffffffffffffffffffebaaedce6af48a03bbfd25e8cd0364141", 16)
	inv, ok := ModInverse(a, m)
	require.True(t, ok)
	expected := new(big.Int).ModInverse(a, m)
	require.NotNil(t, expected)
	assert.Zero(t, inv.Cmp(expected))
}

// TestNumbersAccessorsCopy tests that accessors hand out copies, not
// aliases of the internal integers.
func TestNumbersAccessorsCopy(t *testing.T) {
	numbers := testPrivateNumbers(t, nil)
	d := numbers.D()
	d.SetInt64(99)
	assert.Equal(t, int64(3), numbers.D().Int64())

	n := numbers.PublicNumbers().N()
	n.SetInt64(99)
	assert.Equal(t, int64(33), numbers.PublicNumbers().N().Int64())
}
