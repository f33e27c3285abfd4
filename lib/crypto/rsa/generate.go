package rsa

import (
	"crypto/rand"
	"math/big"

	"github.com/samber/oops"
)

// GenerateKey runs the key generation algorithm and returns a validated
// private key bound to b. Argument checks (odd exponent, minimum size,
// capability negotiation) happen in GeneratePrivateKey; backends call
// GenerateKey after accepting the parameters.
func GenerateKey(publicExponent, keySize int, b Backend) (*PrivateKey, error) {
	e := big.NewInt(int64(publicExponent))
	log.WithFields(map[string]interface{}{
		"public_exponent": publicExponent,
		"key_size":        keySize,
	}).Debug("generating RSA private key")

	for {
		p, err := rand.Prime(rand.Reader, keySize/2)
		if err != nil {
			return nil, oops.Wrapf(err, "failed to sample prime p")
		}
		q, err := rand.Prime(rand.Reader, keySize-keySize/2)
		if err != nil {
			return nil, oops.Wrapf(err, "failed to sample prime q")
		}
		if p.Cmp(q) == 0 {
			continue
		}

		n := new(big.Int).Mul(p, q)
		if n.BitLen() != keySize {
			continue
		}

		pm1 := new(big.Int).Sub(p, bigOne)
		qm1 := new(big.Int).Sub(q, bigOne)
		phi := new(big.Int).Mul(pm1, qm1)
		if new(big.Int).GCD(nil, nil, e, phi).Cmp(bigOne) != 0 {
			continue
		}

		// d = e^-1 mod lcm(p-1, q-1)
		g := new(big.Int).GCD(nil, nil, pm1, qm1)
		lambda := new(big.Int).Quo(phi, g)
		d, ok := ModInverse(e, lambda)
		if !ok {
			continue
		}
		dmp1 := new(big.Int).Mod(d, pm1)
		dmq1 := new(big.Int).Mod(d, qm1)
		iqmp, ok := ModInverse(q, p)
		if !ok {
			continue
		}

		pub, err := NewPublicNumbers(e, n)
		if err != nil {
			return nil, err
		}
		numbers, err := NewPrivateNumbers(p, q, d, dmp1, dmq1, iqmp, pub)
		if err != nil {
			return nil, err
		}
		key, err := LoadPrivateNumbers(numbers, b)
		if err != nil {
			// Rare corner such as dmp1 == even; resample rather than fail.
			log.WithError(err).Debug("generated candidate rejected by validation, resampling")
			continue
		}
		log.WithField("key_size", key.KeySize()).Debug("RSA private key generated")
		return key, nil
	}
}
