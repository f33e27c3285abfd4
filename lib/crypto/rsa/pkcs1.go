package rsa

import (
	"github.com/go-i2p/cryptkit/lib/crypto/types"
)

// DigestInfo DER prefixes for EMSA-PKCS1-v1_5, keyed by hash name.
var pkcs1Prefixes = map[string][]byte{
	"md5": {0x30, 0x20, 0x30, 0x0c, 0x06, 0x08, 0x2a, 0x86, 0x48, 0x86,
		0xf7, 0x0d, 0x02, 0x05, 0x05, 0x00, 0x04, 0x10},
	"sha1": {0x30, 0x21, 0x30, 0x09, 0x06, 0x05, 0x2b, 0x0e, 0x03, 0x02,
		0x1a, 0x05, 0x00, 0x04, 0x14},
	"sha224": {0x30, 0x2d, 0x30, 0x0d, 0x06, 0x09, 0x60, 0x86, 0x48, 0x01,
		0x65, 0x03, 0x04, 0x02, 0x04, 0x05, 0x00, 0x04, 0x1c},
	"sha256": {0x30, 0x31, 0x30, 0x0d, 0x06, 0x09, 0x60, 0x86, 0x48, 0x01,
		0x65, 0x03, 0x04, 0x02, 0x01, 0x05, 0x00, 0x04, 0x20},
	"sha384": {0x30, 0x41, 0x30, 0x0d, 0x06, 0x09, 0x60, 0x86, 0x48, 0x01,
		0x65, 0x03, 0x04, 0x02, 0x02, 0x05, 0x00, 0x04, 0x30},
	"sha512": {0x30, 0x51, 0x30, 0x0d, 0x06, 0x09, 0x60, 0x86, 0x48, 0x01,
		0x65, 0x03, 0x04, 0x02, 0x03, 0x05, 0x00, 0x04, 0x40},
	"ripemd160": {0x30, 0x21, 0x30, 0x09, 0x06, 0x05, 0x2b, 0x24, 0x03,
		0x02, 0x01, 0x05, 0x00, 0x04, 0x14},
}

// emsaPKCS1v15Encode produces the deterministic emLen-byte encoded message
// 0x00 || 0x01 || PS || 0x00 || DigestInfo.
func emsaPKCS1v15Encode(digest []byte, alg types.HashAlgorithm, emLen int) ([]byte, error) {
	prefix, ok := pkcs1Prefixes[alg.Name()]
	if !ok {
		return nil, types.Unsupportedf(types.UnsupportedHash,
			"%s cannot be used with PKCS1v15 signing", alg.Name())
	}
	tLen := len(prefix) + len(digest)
	if emLen < tLen+11 {
		return nil, types.ValueErrorf("digest too large for key size")
	}
	em := make([]byte, emLen)
	em[1] = 0x01
	for i := 2; i < emLen-tLen-1; i++ {
		em[i] = 0xff
	}
	copy(em[emLen-tLen:], prefix)
	copy(em[emLen-len(digest):], digest)
	return em, nil
}
