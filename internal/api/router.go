package api

import (
	"net/http"

	"github.com/cyberfly-io/node-wallet/internal/auth"
	"github.com/cyberfly-io/node-wallet/internal/handler"
	"github.com/cyberfly-io/node-wallet/internal/node"

	_ "github.com/cyberfly-io/node-wallet/docs"

	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"
)

// SetupRouter sets up router with handlers
func SetupRouter(ctrl node.Controller, log *zap.Logger) (http.Handler, error) {
	gate := auth.LoggingGate{Log: log}

	walletHandler, err := handler.NewWalletHandler(gate, log)
	if err != nil {
		return nil, err
	}
	nodeHandler, err := handler.NewNodeHandler(ctrl, gate, log)
	if err != nil {
		return nil, err
	}

	mux := http.NewServeMux()

	// Swagger UI
	mux.HandleFunc("/swagger/", httpSwagger.WrapHandler)

	// Wallet endpoints
	mux.HandleFunc("/wallet/generate", walletHandler.Generate)
	mux.HandleFunc("/wallet/restore", walletHandler.Restore)
	mux.HandleFunc("/wallet/balance", walletHandler.GetBalance)
	mux.HandleFunc("/wallet/transfer", walletHandler.Transfer)

	// Node registry endpoints
	mux.HandleFunc("/node/register", nodeHandler.Register)
	mux.HandleFunc("/node/info", nodeHandler.GetNode)
	mux.HandleFunc("/node/stake", nodeHandler.Stake)
	mux.HandleFunc("/node/unstake", nodeHandler.Unstake)
	mux.HandleFunc("/node/stake-info", nodeHandler.GetStake)
	mux.HandleFunc("/node/reward", nodeHandler.GetReward)
	mux.HandleFunc("/node/claim-reward", nodeHandler.ClaimReward)

	// P2P node endpoints
	mux.HandleFunc("/p2p/status", nodeHandler.P2PStatus)
	mux.HandleFunc("/p2p/peers", nodeHandler.P2PPeers)
	mux.HandleFunc("/p2p/gossip", nodeHandler.P2PGossip)
	mux.HandleFunc("/p2p/store", nodeHandler.P2PStore)
	mux.HandleFunc("/p2p/get", nodeHandler.P2PGet)

	return mux, nil
}
