package config

import (
	"path/filepath"

	"github.com/spf13/viper"
)

// RSAConfig holds the parameters used when no explicit values are given on
// the command line.
type RSAConfig struct {
	// public exponent for generated keys, must be an odd number >= 3
	PublicExponent int
	// modulus size in bits for generated keys
	KeySize int
	// hash algorithm name used for signing and verification
	Hash string
	// signature padding, "pkcs1v15" or "pss"
	Padding string
}

// CryptoConfig is the top level configuration.
type CryptoConfig struct {
	// the path to the working directory where key files are read and written
	WorkingDir string
	// backend names in registration order, first match wins
	Backends []string
	// RSA defaults
	RSA *RSAConfig
}

func defaultWorkingDir() string {
	return filepath.Join(BuildCryptkitDirPath(), "keys")
}

var defaultRSAConfig = &RSAConfig{
	PublicExponent: 65537,
	KeySize:        2048,
	Hash:           "sha256",
	Padding:        "pkcs1v15",
}

var defaultCryptoConfig = &CryptoConfig{
	WorkingDir: defaultWorkingDir(),
	Backends:   []string{"native"},
	RSA:        defaultRSAConfig,
}

func DefaultCryptoConfig() *CryptoConfig {
	return defaultCryptoConfig
}

// NewCryptoConfigFromViper creates a new CryptoConfig from current viper
// settings. This is the preferred way to get config instead of reading
// viper keys all over the codebase.
func NewCryptoConfigFromViper() *CryptoConfig {
	rsaConfig := &RSAConfig{
		PublicExponent: viper.GetInt("rsa.public_exponent"),
		KeySize:        viper.GetInt("rsa.key_size"),
		Hash:           viper.GetString("rsa.hash"),
		Padding:        viper.GetString("rsa.padding"),
	}

	backends := viper.GetStringSlice("backends")
	if len(backends) == 0 {
		log.Warn("No backends configured, falling back to the native backend")
		backends = []string{"native"}
	}

	return &CryptoConfig{
		WorkingDir: viper.GetString("working_dir"),
		Backends:   backends,
		RSA:        rsaConfig,
	}
}
