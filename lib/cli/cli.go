// Package cli wires the configured backends into a MultiBackend and exposes
// the key generation, signing and encryption operations as subcommands.
package cli

import (
	"github.com/go-i2p/cryptkit/lib/backend"
	"github.com/go-i2p/cryptkit/lib/backend/native"
	"github.com/go-i2p/cryptkit/lib/config"
	"github.com/go-i2p/cryptkit/lib/crypto/types"
	"github.com/go-i2p/logger"
	"github.com/spf13/cobra"
)

var log = logger.GetGoI2PLogger()

var rootCmd = &cobra.Command{
	Use:           "cryptkit",
	Short:         "RSA key generation, signing and encryption over pluggable backends",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	cobra.OnInitialize(config.InitConfig)
	rootCmd.PersistentFlags().StringVar(&config.CfgFile, "config", "", "config file (default is $HOME/.cryptkit/config.yaml)")

	initRSACommands(rootCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// newProvider builds the dispatching backend from the configured backend
// names, preserving their order.
func newProvider(cfg *config.CryptoConfig) (*backend.MultiBackend, error) {
	backends := make([]backend.Backend, 0, len(cfg.Backends))
	for _, name := range cfg.Backends {
		switch name {
		case "native":
			backends = append(backends, native.New())
		default:
			return nil, types.ValueErrorf("unknown backend %q in configuration", name)
		}
	}
	log.WithField("backends", cfg.Backends).Debug("building MultiBackend")
	return backend.NewMultiBackend(backends...)
}
