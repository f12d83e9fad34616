package main

import (
	"net/http"
	"os"

	"github.com/cyberfly-io/node-wallet/internal/api"
	"github.com/cyberfly-io/node-wallet/internal/config"
	"github.com/cyberfly-io/node-wallet/internal/node"

	"go.uber.org/zap"
)

// @title        Node Wallet API
// @version      1.0
// @description  Local wallet and ledger interaction API for the P2P node
// @BasePath     /
func main() {
	log, err := zap.NewProduction()
	if err != nil {
		os.Exit(1)
	}
	defer log.Sync()

	if err := config.Init(); err != nil {
		log.Fatal("failed to load config", zap.Error(err))
	}

	// The wallet password is held in memory for the lifetime of the process;
	// it never appears in the environment or on the command line.
	if err := config.PromptForPassword(); err != nil {
		log.Fatal("failed to read wallet password", zap.Error(err))
	}

	// No embedded P2P node in this build; the node runs as its own process
	router, err := api.SetupRouter(node.Detached{}, log)
	if err != nil {
		log.Fatal("failed to set up router", zap.Error(err))
	}

	addr := ":" + config.GetPort()
	log.Info("server listening",
		zap.String("addr", addr),
		zap.String("network", config.GetNetworkID()),
		zap.String("chain", config.GetChainID()))
	if err := http.ListenAndServe(addr, router); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}
