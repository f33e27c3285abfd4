package main

import (
	"os"

	"github.com/go-i2p/cryptkit/lib/cli"
	"github.com/go-i2p/logger"
)

var log = logger.GetGoI2PLogger()

func main() {
	if err := cli.Execute(); err != nil {
		log.Errorf("cryptkit: %s", err)
		os.Exit(1)
	}
}
