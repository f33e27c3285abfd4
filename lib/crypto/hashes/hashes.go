// Package hashes defines hash algorithm descriptors and a single-use hash
// context dispatched through a capability backend.
package hashes

import (
	"github.com/go-i2p/cryptkit/lib/crypto/types"
)

type (
	SHA1      struct{}
	SHA224    struct{}
	SHA256    struct{}
	SHA384    struct{}
	SHA512    struct{}
	MD5       struct{}
	RIPEMD160 struct{}
	Whirlpool struct{}
)

func (SHA1) Name() string      { return "sha1" }
func (SHA1) DigestSize() int   { return 20 }
func (SHA224) Name() string    { return "sha224" }
func (SHA224) DigestSize() int { return 28 }
func (SHA256) Name() string    { return "sha256" }
func (SHA256) DigestSize() int { return 32 }
func (SHA384) Name() string    { return "sha384" }
func (SHA384) DigestSize() int { return 48 }
func (SHA512) Name() string    { return "sha512" }
func (SHA512) DigestSize() int { return 64 }
func (MD5) Name() string       { return "md5" }
func (MD5) DigestSize() int    { return 16 }

func (RIPEMD160) Name() string    { return "ripemd160" }
func (RIPEMD160) DigestSize() int { return 20 }
func (Whirlpool) Name() string    { return "whirlpool" }
func (Whirlpool) DigestSize() int { return 64 }

var (
	_ types.HashAlgorithm = SHA1{}
	_ types.HashAlgorithm = SHA224{}
	_ types.HashAlgorithm = SHA256{}
	_ types.HashAlgorithm = SHA384{}
	_ types.HashAlgorithm = SHA512{}
	_ types.HashAlgorithm = MD5{}
	_ types.HashAlgorithm = RIPEMD160{}
	_ types.HashAlgorithm = Whirlpool{}
)
