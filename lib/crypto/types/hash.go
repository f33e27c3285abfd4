package types

// HashAlgorithm describes a hash function by name and digest size. Concrete
// descriptors live in lib/crypto/hashes; backends map the name to an actual
// digest implementation.
type HashAlgorithm interface {
	// canonical lowercase name, e.g. "sha256"
	Name() string
	// digest size in bytes
	DigestSize() int
}

// AsymmetricPadding is the common contract of every padding scheme passed to
// asymmetric sign/verify and encrypt/decrypt operations.
type AsymmetricPadding interface {
	// scheme name, e.g. "EMSA-PKCS1-v1_5"
	Name() string
}
