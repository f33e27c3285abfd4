package config

import (
	"os"
	"path/filepath"

	"github.com/go-i2p/cryptkit/lib/util"
	"github.com/go-i2p/logger"
	"github.com/spf13/viper"
)

var (
	CfgFile string
	log     = logger.GetGoI2PLogger()
)

const CRYPTKIT_BASE_DIR = ".cryptkit"

func InitConfig() {
	if CfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(CfgFile)
	} else {
		// Set up viper to use the default config path $HOME/.cryptkit/
		viper.AddConfigPath(BuildCryptkitDirPath())
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	// Load defaults
	setDefaults()

	// handle config file creating it if needed
	handleConfigFile()
}

func setDefaults() {
	viper.SetDefault("working_dir", DefaultCryptoConfig().WorkingDir)

	// Backend defaults
	viper.SetDefault("backends", DefaultCryptoConfig().Backends)

	// RSA defaults
	viper.SetDefault("rsa.public_exponent", DefaultCryptoConfig().RSA.PublicExponent)
	viper.SetDefault("rsa.key_size", DefaultCryptoConfig().RSA.KeySize)
	viper.SetDefault("rsa.hash", DefaultCryptoConfig().RSA.Hash)
	viper.SetDefault("rsa.padding", DefaultCryptoConfig().RSA.Padding)
}

func createDefaultConfig(defaultConfigDir string) {
	defaultConfigFile := filepath.Join(defaultConfigDir, "config.yaml")
	// Ensure directory exists
	if err := os.MkdirAll(defaultConfigDir, 0o755); err != nil {
		log.Fatalf("Could not create config directory: %s", err)
	}

	// Write current config file
	if err := viper.WriteConfig(); err != nil {
		log.Fatalf("Could not write default config file: %s", err)
	}

	log.Debugf("Created default configuration at: %s", defaultConfigFile)
}

func handleConfigFile() {
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			if CfgFile != "" {
				log.Fatalf("Config file %s is not found: %s", CfgFile, err)
			} else {
				createDefaultConfig(BuildCryptkitDirPath())
			}
		} else {
			log.Fatalf("Error reading config file: %s", err)
		}
	} else {
		log.Debugf("Using config file: %s", viper.ConfigFileUsed())
	}
}

func BuildCryptkitDirPath() string {
	return filepath.Join(util.UserHome(), CRYPTKIT_BASE_DIR)
}
