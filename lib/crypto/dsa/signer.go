package dsa

import (
	"crypto/dsa"
	"crypto/rand"
	"encoding/asn1"
	"hash"
	"math/big"

	"github.com/go-i2p/cryptkit/lib/crypto/types"
	"github.com/samber/oops"
)

// dsaSignature is the DER structure signatures are carried in.
type dsaSignature struct {
	R, S *big.Int
}

func checkDSAHash(b Backend, alg types.HashAlgorithm) (hash.Hash, error) {
	if alg == nil {
		return nil, types.TypeErrorf("expected a HashAlgorithm, got nil")
	}
	if !b.DSAHashSupported(alg) {
		return nil, types.Unsupportedf(types.UnsupportedHash,
			"%s is not supported for DSA by this backend", alg.Name())
	}
	return b.CreateHashCtx(alg)
}

// Signer accumulates a message and produces a DER-encoded signature on
// Finalize. Single-use.
type Signer struct {
	key       *PrivateKey
	ctx       hash.Hash
	finalized bool
}

// Signer returns a signature context over the given hash algorithm.
func (k *PrivateKey) Signer(alg types.HashAlgorithm) (*Signer, error) {
	ctx, err := checkDSAHash(k.backend, alg)
	if err != nil {
		return nil, err
	}
	return &Signer{key: k, ctx: ctx}, nil
}

// Update appends data to the message being signed.
func (s *Signer) Update(data []byte) error {
	if s.finalized {
		return types.ErrAlreadyFinalized
	}
	s.ctx.Write(data)
	return nil
}

// Finalize consumes the accumulated message and returns the signature.
func (s *Signer) Finalize() ([]byte, error) {
	if s.finalized {
		return nil, types.ErrAlreadyFinalized
	}
	s.finalized = true
	digest := s.ctx.Sum(nil)

	priv := &dsa.PrivateKey{
		PublicKey: dsa.PublicKey{
			Parameters: dsa.Parameters{P: s.key.params.p, Q: s.key.params.q, G: s.key.params.g},
			Y:          s.key.y,
		},
		X: s.key.x,
	}
	r, sv, err := dsa.Sign(rand.Reader, priv, digest)
	if err != nil {
		return nil, oops.Wrapf(err, "DSA signing failed")
	}
	der, err := asn1.Marshal(dsaSignature{R: r, S: sv})
	if err != nil {
		return nil, oops.Wrapf(err, "failed to encode DSA signature")
	}
	log.WithField("sig_length", len(der)).Debug("DSA signature created")
	return der, nil
}

// Verifier accumulates a message and checks it against a DER-encoded
// signature on Verify. Single-use.
type Verifier struct {
	key       *PublicKey
	signature []byte
	ctx       hash.Hash
	finalized bool
}

// Verifier returns a verification context for the given signature and hash
// algorithm.
func (k *PublicKey) Verifier(signature []byte, alg types.HashAlgorithm) (*Verifier, error) {
	ctx, err := checkDSAHash(k.backend, alg)
	if err != nil {
		return nil, err
	}
	sig := make([]byte, len(signature))
	copy(sig, signature)
	return &Verifier{key: k, signature: sig, ctx: ctx}, nil
}

// Update appends data to the message being verified.
func (v *Verifier) Update(data []byte) error {
	if v.finalized {
		return types.ErrAlreadyFinalized
	}
	v.ctx.Write(data)
	return nil
}

// Verify consumes the accumulated message and returns nil when the
// signature matches; every failure surfaces as types.ErrInvalidSignature.
func (v *Verifier) Verify() error {
	if v.finalized {
		return types.ErrAlreadyFinalized
	}
	v.finalized = true
	digest := v.ctx.Sum(nil)

	var sig dsaSignature
	rest, err := asn1.Unmarshal(v.signature, &sig)
	if err != nil || len(rest) != 0 || sig.R == nil || sig.S == nil {
		return types.ErrInvalidSignature
	}
	pub := &dsa.PublicKey{
		Parameters: dsa.Parameters{P: v.key.params.p, Q: v.key.params.q, G: v.key.params.g},
		Y:          v.key.y,
	}
	if !dsa.Verify(pub, digest, sig.R, sig.S) {
		return types.ErrInvalidSignature
	}
	return nil
}
