package rsa

import (
	"crypto/rand"
	"crypto/subtle"
	"io"
	"math/big"

	"github.com/go-i2p/cryptkit/lib/crypto/padding"
	"github.com/go-i2p/cryptkit/lib/crypto/types"
	"github.com/samber/oops"
)

// errDecryption is the single error every malformed-block decryption
// failure surfaces as, so distinguishable causes cannot act as a padding
// oracle.
var errDecryption = types.ValueErrorf("decryption failed")

// checkEncryptionPadding validates an encrypt/decrypt padding request
// against the backend's capabilities.
func checkEncryptionPadding(b Backend, pad types.AsymmetricPadding) error {
	if pad == nil {
		return types.TypeErrorf("expected an AsymmetricPadding, got nil")
	}
	if !b.RSAPaddingSupported(pad) {
		return types.Unsupportedf(types.UnsupportedPadding,
			"%s is not supported by this backend", pad.Name())
	}
	switch pad := pad.(type) {
	case padding.PKCS1v15, *padding.PKCS1v15:
	case *padding.OAEP:
		if !b.MGF1HashSupported(pad.MGF().HashAlgorithm()) {
			return types.Unsupportedf(types.UnsupportedMGF,
				"MGF1 with %s is not supported by this backend", pad.MGF().HashAlgorithm().Name())
		}
	default:
		return types.Unsupportedf(types.UnsupportedPadding,
			"%s cannot be used for encryption", pad.Name())
	}
	return nil
}

// Encrypt encrypts plaintext under the given padding scheme. The ciphertext
// length equals the modulus byte length.
func (k *PublicKey) Encrypt(plaintext []byte, pad types.AsymmetricPadding) ([]byte, error) {
	if err := checkEncryptionPadding(k.backend, pad); err != nil {
		return nil, err
	}
	kLen := modulusBytes(k.numbers.n)

	var em []byte
	var err error
	switch pad := pad.(type) {
	case padding.PKCS1v15, *padding.PKCS1v15:
		em, err = emePKCS1v15Encode(plaintext, kLen)
	case *padding.OAEP:
		em, err = emeOAEPEncode(k.backend, plaintext, pad, kLen)
	default:
		err = types.Unsupportedf(types.UnsupportedPadding,
			"%s cannot be used for encryption", pad.Name())
	}
	if err != nil {
		return nil, err
	}
	c := k.publicOp(new(big.Int).SetBytes(em))
	return c.FillBytes(make([]byte, kLen)), nil
}

// Decrypt decrypts ciphertext under the given padding scheme. The
// ciphertext length must equal the modulus byte length; any structural
// malformation found while unpadding fails with one uniform value error.
func (k *PrivateKey) Decrypt(ciphertext []byte, pad types.AsymmetricPadding) ([]byte, error) {
	if err := checkEncryptionPadding(k.backend, pad); err != nil {
		return nil, err
	}
	kLen := modulusBytes(k.numbers.pub.n)
	if len(ciphertext) != kLen {
		return nil, types.ValueErrorf("ciphertext length must be %d bytes, got %d", kLen, len(ciphertext))
	}
	c := new(big.Int).SetBytes(ciphertext)
	if c.Cmp(k.numbers.pub.n) >= 0 {
		return nil, errDecryption
	}
	em := k.privateOp(c).FillBytes(make([]byte, kLen))

	switch pad := pad.(type) {
	case padding.PKCS1v15, *padding.PKCS1v15:
		return emePKCS1v15Decode(em)
	case *padding.OAEP:
		return emeOAEPDecode(k.backend, em, pad)
	default:
		return nil, types.Unsupportedf(types.UnsupportedPadding,
			"%s cannot be used for decryption", pad.Name())
	}
}

// emePKCS1v15Encode builds 0x00 || 0x02 || PS || 0x00 || M with non-zero
// random padding bytes.
func emePKCS1v15Encode(msg []byte, kLen int) ([]byte, error) {
	if len(msg) > kLen-11 {
		return nil, types.ValueErrorf("message length must be at most %d bytes for this key size", kLen-11)
	}
	em := make([]byte, kLen)
	em[1] = 0x02
	ps := em[2 : kLen-len(msg)-1]
	if err := fillNonZero(ps); err != nil {
		return nil, err
	}
	copy(em[kLen-len(msg):], msg)
	return em, nil
}

func fillNonZero(s []byte) error {
	if _, err := io.ReadFull(rand.Reader, s); err != nil {
		return oops.Wrapf(err, "failed to sample padding bytes")
	}
	for i := range s {
		for s[i] == 0 {
			var b [1]byte
			if _, err := io.ReadFull(rand.Reader, b[:]); err != nil {
				return oops.Wrapf(err, "failed to sample padding bytes")
			}
			s[i] = b[0]
		}
	}
	return nil
}

// emePKCS1v15Decode strips the padding, failing uniformly on any structural
// defect.
func emePKCS1v15Decode(em []byte) ([]byte, error) {
	valid := subtle.ConstantTimeByteEq(em[0], 0x00)
	valid &= subtle.ConstantTimeByteEq(em[1], 0x02)

	// Locate the 0x00 separator; padding must span at least 8 bytes.
	sep := -1
	for i := 2; i < len(em); i++ {
		if em[i] == 0x00 {
			sep = i
			break
		}
	}
	if valid != 1 || sep < 10 {
		return nil, errDecryption
	}
	out := make([]byte, len(em)-sep-1)
	copy(out, em[sep+1:])
	return out, nil
}

// emeOAEPEncode builds the OAEP encoded message.
func emeOAEPEncode(b Backend, msg []byte, oaep *padding.OAEP, kLen int) ([]byte, error) {
	hLen := oaep.HashAlgorithm().DigestSize()
	if len(msg) > kLen-2*hLen-2 {
		return nil, types.ValueErrorf("message length must be at most %d bytes for this key size", kLen-2*hLen-2)
	}

	lHash, err := hashBytes(b, oaep.HashAlgorithm(), oaep.Label())
	if err != nil {
		return nil, err
	}

	// DB = lHash || PS || 0x01 || M
	db := make([]byte, kLen-hLen-1)
	copy(db, lHash)
	db[len(db)-len(msg)-1] = 0x01
	copy(db[len(db)-len(msg):], msg)

	seed := make([]byte, hLen)
	if _, err := io.ReadFull(rand.Reader, seed); err != nil {
		return nil, oops.Wrapf(err, "failed to sample OAEP seed")
	}

	dbMask, err := mgf1(b, seed, len(db), oaep.MGF().HashAlgorithm())
	if err != nil {
		return nil, err
	}
	for i := range db {
		db[i] ^= dbMask[i]
	}
	seedMask, err := mgf1(b, db, hLen, oaep.MGF().HashAlgorithm())
	if err != nil {
		return nil, err
	}
	for i := range seed {
		seed[i] ^= seedMask[i]
	}

	em := make([]byte, kLen)
	copy(em[1:], seed)
	copy(em[1+hLen:], db)
	return em, nil
}

// emeOAEPDecode strips the OAEP encoding, failing uniformly on any
// structural defect.
func emeOAEPDecode(b Backend, em []byte, oaep *padding.OAEP) ([]byte, error) {
	hLen := oaep.HashAlgorithm().DigestSize()
	if len(em) < 2*hLen+2 {
		return nil, errDecryption
	}

	lHash, err := hashBytes(b, oaep.HashAlgorithm(), oaep.Label())
	if err != nil {
		return nil, err
	}

	firstByte := subtle.ConstantTimeByteEq(em[0], 0x00)
	maskedSeed := em[1 : 1+hLen]
	maskedDB := em[1+hLen:]

	seedMask, err := mgf1(b, maskedDB, hLen, oaep.MGF().HashAlgorithm())
	if err != nil {
		return nil, err
	}
	seed := make([]byte, hLen)
	for i := range seed {
		seed[i] = maskedSeed[i] ^ seedMask[i]
	}
	dbMask, err := mgf1(b, seed, len(maskedDB), oaep.MGF().HashAlgorithm())
	if err != nil {
		return nil, err
	}
	db := make([]byte, len(maskedDB))
	for i := range db {
		db[i] = maskedDB[i] ^ dbMask[i]
	}

	lHashOK := subtle.ConstantTimeCompare(db[:hLen], lHash)

	sep := -1
	for i := hLen; i < len(db); i++ {
		if db[i] == 0x01 {
			sep = i
			break
		} else if db[i] != 0x00 {
			break
		}
	}
	if firstByte&lHashOK != 1 || sep < 0 {
		return nil, errDecryption
	}
	out := make([]byte, len(db)-sep-1)
	copy(out, db[sep+1:])
	return out, nil
}

// hashBytes digests data once with alg through the backend.
func hashBytes(b Backend, alg types.HashAlgorithm, data []byte) ([]byte, error) {
	ctx, err := b.CreateHashCtx(alg)
	if err != nil {
		return nil, err
	}
	ctx.Write(data)
	return ctx.Sum(nil), nil
}
