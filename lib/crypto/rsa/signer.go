package rsa

import (
	"crypto/subtle"
	"hash"
	"math/big"

	"github.com/go-i2p/cryptkit/lib/crypto/padding"
	"github.com/go-i2p/cryptkit/lib/crypto/types"
)

// checkSignaturePadding validates a sign/verify padding request against the
// backend's capabilities before any state is built.
func checkSignaturePadding(b Backend, pad types.AsymmetricPadding) error {
	if !b.RSAPaddingSupported(pad) {
		return types.Unsupportedf(types.UnsupportedPadding,
			"%s is not supported by this backend", pad.Name())
	}
	switch pad := pad.(type) {
	case padding.PKCS1v15, *padding.PKCS1v15:
	case *padding.PSS:
		if !b.MGF1HashSupported(pad.MGF().HashAlgorithm()) {
			return types.Unsupportedf(types.UnsupportedMGF,
				"MGF1 with %s is not supported by this backend", pad.MGF().HashAlgorithm().Name())
		}
	default:
		return types.Unsupportedf(types.UnsupportedPadding,
			"%s cannot be used for signing", pad.Name())
	}
	return nil
}

func newHashCtx(b Backend, alg types.HashAlgorithm) (hash.Hash, error) {
	if alg == nil {
		return nil, types.TypeErrorf("expected a HashAlgorithm, got nil")
	}
	if !b.HashSupported(alg) {
		return nil, types.Unsupportedf(types.UnsupportedHash,
			"%s is not supported by this backend", alg.Name())
	}
	return b.CreateHashCtx(alg)
}

// Signer accumulates a message and produces a signature on Finalize. It is
// single-use and must not be shared across goroutines.
type Signer struct {
	key       *PrivateKey
	pad       types.AsymmetricPadding
	alg       types.HashAlgorithm
	ctx       hash.Hash
	finalized bool
}

// Signer returns a signature context over the given padding and hash
// algorithm.
func (k *PrivateKey) Signer(pad types.AsymmetricPadding, alg types.HashAlgorithm) (*Signer, error) {
	if pad == nil {
		return nil, types.TypeErrorf("expected an AsymmetricPadding, got nil")
	}
	if err := checkSignaturePadding(k.backend, pad); err != nil {
		return nil, err
	}
	ctx, err := newHashCtx(k.backend, alg)
	if err != nil {
		return nil, err
	}
	return &Signer{key: k, pad: pad, alg: alg, ctx: ctx}, nil
}

// Update appends data to the message being signed.
func (s *Signer) Update(data []byte) error {
	if s.finalized {
		return types.ErrAlreadyFinalized
	}
	s.ctx.Write(data)
	return nil
}

// Finalize consumes the accumulated message and returns the signature. The
// context cannot be used again afterwards.
func (s *Signer) Finalize() ([]byte, error) {
	if s.finalized {
		return nil, types.ErrAlreadyFinalized
	}
	s.finalized = true
	digest := s.ctx.Sum(nil)

	k := modulusBytes(s.key.numbers.pub.n)
	var em []byte
	var err error
	switch pad := s.pad.(type) {
	case padding.PKCS1v15, *padding.PKCS1v15:
		em, err = emsaPKCS1v15Encode(digest, s.alg, k)
	case *padding.PSS:
		em, err = emsaPSSEncode(s.key.backend, digest, s.alg, pad,
			s.key.numbers.pub.n.BitLen()-1)
	default:
		err = types.Unsupportedf(types.UnsupportedPadding,
			"%s cannot be used for signing", s.pad.Name())
	}
	if err != nil {
		return nil, err
	}

	m := new(big.Int).SetBytes(em)
	sig := s.key.privateOp(m)
	log.WithField("padding", s.pad.Name()).Debug("RSA signature created")
	return sig.FillBytes(make([]byte, k)), nil
}

// Verifier accumulates a message and checks it against a signature on
// Verify. It is single-use and must not be shared across goroutines.
type Verifier struct {
	key       *PublicKey
	signature []byte
	pad       types.AsymmetricPadding
	alg       types.HashAlgorithm
	ctx       hash.Hash
	finalized bool
}

// Verifier returns a verification context for the given signature, padding
// and hash algorithm.
func (k *PublicKey) Verifier(signature []byte, pad types.AsymmetricPadding, alg types.HashAlgorithm) (*Verifier, error) {
	if pad == nil {
		return nil, types.TypeErrorf("expected an AsymmetricPadding, got nil")
	}
	if err := checkSignaturePadding(k.backend, pad); err != nil {
		return nil, err
	}
	ctx, err := newHashCtx(k.backend, alg)
	if err != nil {
		return nil, err
	}
	sig := make([]byte, len(signature))
	copy(sig, signature)
	return &Verifier{key: k, signature: sig, pad: pad, alg: alg, ctx: ctx}, nil
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
// signature matches. Every mismatch, structural or otherwise, surfaces as
// types.ErrInvalidSignature. The context cannot be used again afterwards.
func (v *Verifier) Verify() error {
	if v.finalized {
		return types.ErrAlreadyFinalized
	}
	v.finalized = true
	digest := v.ctx.Sum(nil)

	n := v.key.numbers.n
	k := modulusBytes(n)
	if len(v.signature) != k {
		return types.ErrInvalidSignature
	}
	s := new(big.Int).SetBytes(v.signature)
	if s.Cmp(n) >= 0 {
		return types.ErrInvalidSignature
	}
	em := v.key.publicOp(s).FillBytes(make([]byte, k))

	switch pad := v.pad.(type) {
	case padding.PKCS1v15, *padding.PKCS1v15:
		expected, err := emsaPKCS1v15Encode(digest, v.alg, k)
		if err != nil {
			return err
		}
		if subtle.ConstantTimeCompare(em, expected) != 1 {
			return types.ErrInvalidSignature
		}
		return nil
	case *padding.PSS:
		return emsaPSSVerify(v.key.backend, digest, em, v.alg, pad, n.BitLen()-1)
	default:
		return types.Unsupportedf(types.UnsupportedPadding,
			"%s cannot be used for verification", v.pad.Name())
	}
}
