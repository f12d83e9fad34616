package kadena

import (
	"context"
	"fmt"

	"github.com/cyberfly-io/node-wallet/internal/client"
	"github.com/cyberfly-io/node-wallet/internal/config"
	"github.com/cyberfly-io/node-wallet/internal/model"
	"github.com/cyberfly-io/node-wallet/internal/pact"
)

// ClaimReward claims the accumulated node reward. When the ledger-computed
// claimable amount is zero, negative or unparsable, no mutation is issued and
// the result reports Claimed=false.
// password must be []byte for security (caller should zero it after use)
func ClaimReward(ctx context.Context, filePath string, password []byte, peerID string) (*model.ClaimResult, error) {
	identity, err := loadIdentity(filePath, password)
	if err != nil {
		return nil, err
	}
	return claimReward(ctx, newPactClient(), identity, peerID)
}

func claimReward(ctx context.Context, c *client.PactClient, identity *model.Identity, peerID string) (*model.ClaimResult, error) {
	claimable, err := readClaimable(ctx, c, peerID)
	if err != nil {
		return nil, err
	}

	positive, known := claimable.Positive()
	if !known {
		return nil, fmt.Errorf("claimable reward is unparsable")
	}
	amount, _ := claimable.Decimal()
	if !positive {
		return &model.ClaimResult{Claimed: false, Amount: amount}, nil
	}

	code := pact.App(config.GetNodeModule()+".claim-reward",
		pact.String(identity.AccountID),
		pact.String(peerID),
	)
	caps := []pact.Capability{gasCap(), nodeGuardCap(peerID)}

	result, err := execWrite(ctx, c, identity, code, nil, config.GetGasStation(), caps)
	if err != nil {
		return nil, fmt.Errorf("failed to claim reward: %w", err)
	}
	if err := result.Err(); err != nil {
		return nil, fmt.Errorf("failed to claim reward: %w", err)
	}

	return &model.ClaimResult{
		Claimed:    true,
		Amount:     amount,
		RequestKey: result.RequestKey,
	}, nil
}
