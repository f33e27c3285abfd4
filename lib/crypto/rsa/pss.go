package rsa

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/binary"
	"io"

	"github.com/go-i2p/cryptkit/lib/crypto/padding"
	"github.com/go-i2p/cryptkit/lib/crypto/types"
	"github.com/samber/oops"
)

// mgf1 produces length mask bytes from seed with the MGF1 construction,
// using hash contexts obtained from the backend.
func mgf1(b Backend, seed []byte, length int, alg types.HashAlgorithm) ([]byte, error) {
	mask := make([]byte, 0, length)
	var counter [4]byte
	for i := uint32(0); len(mask) < length; i++ {
		ctx, err := b.CreateHashCtx(alg)
		if err != nil {
			return nil, err
		}
		binary.BigEndian.PutUint32(counter[:], i)
		ctx.Write(seed)
		ctx.Write(counter[:])
		mask = append(mask, ctx.Sum(nil)...)
	}
	return mask[:length], nil
}

// pssSaltLength resolves the configured salt length against the modulus and
// digest size, expanding the MaxLength sentinel.
func pssSaltLength(pss *padding.PSS, emLen, hLen int) (int, error) {
	sLen := pss.SaltLength()
	if sLen == padding.MaxLength {
		sLen = emLen - hLen - 2
	}
	if emLen < hLen+sLen+2 {
		if pss.SaltLength() == padding.MaxLength || sLen == 0 {
			return 0, types.ValueErrorf("digest too large for key size")
		}
		return 0, types.ValueErrorf("salt_length too large for key size")
	}
	return sLen, nil
}

// emsaPSSEncode produces the PSS encoded message for emBits = modBits-1.
func emsaPSSEncode(b Backend, digest []byte, alg types.HashAlgorithm, pss *padding.PSS, emBits int) ([]byte, error) {
	hLen := len(digest)
	emLen := (emBits + 7) / 8
	sLen, err := pssSaltLength(pss, emLen, hLen)
	if err != nil {
		return nil, err
	}

	salt := make([]byte, sLen)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return nil, oops.Wrapf(err, "failed to sample PSS salt")
	}

	// H = Hash(0x00*8 || mHash || salt)
	ctx, err := b.CreateHashCtx(alg)
	if err != nil {
		return nil, err
	}
	ctx.Write(make([]byte, 8))
	ctx.Write(digest)
	ctx.Write(salt)
	h := ctx.Sum(nil)

	// DB = PS || 0x01 || salt
	db := make([]byte, emLen-hLen-1)
	db[len(db)-sLen-1] = 0x01
	copy(db[len(db)-sLen:], salt)

	dbMask, err := mgf1(b, h, len(db), pss.MGF().HashAlgorithm())
	if err != nil {
		return nil, err
	}
	for i := range db {
		db[i] ^= dbMask[i]
	}
	db[0] &= 0xff >> (8*emLen - emBits)

	em := make([]byte, emLen)
	copy(em, db)
	copy(em[len(db):], h)
	em[emLen-1] = 0xbc
	return em, nil
}

// emsaPSSVerify checks em against digest. Capacity misuse (salt or digest
// that can never fit the modulus) surfaces as a value error; every other
// mismatch is types.ErrInvalidSignature.
func emsaPSSVerify(b Backend, digest, em []byte, alg types.HashAlgorithm, pss *padding.PSS, emBits int) error {
	hLen := len(digest)
	emLen := (emBits + 7) / 8
	sLen, err := pssSaltLength(pss, emLen, hLen)
	if err != nil {
		return err
	}
	if len(em) < emLen {
		padded := make([]byte, emLen)
		copy(padded[emLen-len(em):], em)
		em = padded
	} else {
		em = em[len(em)-emLen:]
	}
	if em[emLen-1] != 0xbc {
		return types.ErrInvalidSignature
	}
	if em[0]&^(0xff>>(8*emLen-emBits)) != 0 {
		return types.ErrInvalidSignature
	}

	maskedDB := em[:emLen-hLen-1]
	h := em[emLen-hLen-1 : emLen-1]

	dbMask, err := mgf1(b, h, len(maskedDB), pss.MGF().HashAlgorithm())
	if err != nil {
		return err
	}
	db := make([]byte, len(maskedDB))
	for i := range db {
		db[i] = maskedDB[i] ^ dbMask[i]
	}
	db[0] &= 0xff >> (8*emLen - emBits)

	psLen := emLen - hLen - sLen - 2
	for _, v := range db[:psLen] {
		if v != 0 {
			return types.ErrInvalidSignature
		}
	}
	if db[psLen] != 0x01 {
		return types.ErrInvalidSignature
	}
	salt := db[len(db)-sLen:]

	ctx, err := b.CreateHashCtx(alg)
	if err != nil {
		return err
	}
	ctx.Write(make([]byte, 8))
	ctx.Write(digest)
	ctx.Write(salt)
	if subtle.ConstantTimeCompare(h, ctx.Sum(nil)) != 1 {
		return types.ErrInvalidSignature
	}
	return nil
}
