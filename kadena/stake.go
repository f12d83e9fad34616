package kadena

import (
	"context"
	"fmt"

	"github.com/cyberfly-io/node-wallet/internal/client"
	"github.com/cyberfly-io/node-wallet/internal/config"
	"github.com/cyberfly-io/node-wallet/internal/model"
	"github.com/cyberfly-io/node-wallet/internal/pact"
)

// Stake locks the fixed stake amount against the node registration.
// password must be []byte for security (caller should zero it after use)
func Stake(ctx context.Context, filePath string, password []byte, peerID string) (*model.TxResponse, error) {
	identity, err := loadIdentity(filePath, password)
	if err != nil {
		return nil, err
	}
	return stakeNode(ctx, newPactClient(), identity, peerID)
}

func stakeNode(ctx context.Context, c *client.PactClient, identity *model.Identity, peerID string) (*model.TxResponse, error) {
	code := pact.App(config.GetNodeModule()+".stake",
		pact.String(identity.AccountID),
		pact.String(peerID),
	)
	caps := []pact.Capability{gasCap(), nodeGuardCap(peerID)}

	result, err := execWrite(ctx, c, identity, code, nil, config.GetGasStation(), caps)
	if err != nil {
		return nil, fmt.Errorf("failed to stake: %w", err)
	}
	if err := result.Err(); err != nil {
		return nil, fmt.Errorf("failed to stake: %w", err)
	}
	return &model.TxResponse{RequestKey: result.RequestKey}, nil
}

// Unstake releases the staked amount back to the wallet account.
// password must be []byte for security (caller should zero it after use)
func Unstake(ctx context.Context, filePath string, password []byte, peerID string) (*model.TxResponse, error) {
	identity, err := loadIdentity(filePath, password)
	if err != nil {
		return nil, err
	}
	return unstakeNode(ctx, newPactClient(), identity, peerID)
}

func unstakeNode(ctx context.Context, c *client.PactClient, identity *model.Identity, peerID string) (*model.TxResponse, error) {
	code := pact.App(config.GetNodeModule()+".unstake",
		pact.String(identity.AccountID),
		pact.String(peerID),
	)
	caps := []pact.Capability{gasCap(), nodeGuardCap(peerID)}

	result, err := execWrite(ctx, c, identity, code, nil, config.GetGasStation(), caps)
	if err != nil {
		return nil, fmt.Errorf("failed to unstake: %w", err)
	}
	if err := result.Err(); err != nil {
		return nil, fmt.Errorf("failed to unstake: %w", err)
	}
	return &model.TxResponse{RequestKey: result.RequestKey}, nil
}
