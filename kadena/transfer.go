package kadena

import (
	"context"
	"fmt"

	"github.com/cyberfly-io/node-wallet/internal/client"
	"github.com/cyberfly-io/node-wallet/internal/common"
	"github.com/cyberfly-io/node-wallet/internal/model"
	"github.com/cyberfly-io/node-wallet/internal/pact"
)

// Transfer sends amount KDA from the wallet account to toAccount. The wallet
// account pays its own gas, so the precheck requires balance >= amount; any
// shortfall or unparsable amount fails before a command is built.
// password must be []byte for security (caller should zero it after use)
func Transfer(ctx context.Context, filePath string, password []byte, toAccount, amount string) (*model.TxResponse, error) {
	identity, err := loadIdentity(filePath, password)
	if err != nil {
		return nil, err
	}
	return transferCoins(ctx, newPactClient(), identity, toAccount, amount)
}

func transferCoins(ctx context.Context, c *client.PactClient, identity *model.Identity, toAccount, amount string) (*model.TxResponse, error) {
	if toAccount == "" {
		return nil, fmt.Errorf("recipient account is required")
	}
	if toAccount == identity.AccountID {
		return nil, fmt.Errorf("cannot transfer to own account")
	}

	normalized, err := pact.Decimal(amount)
	if err != nil {
		return nil, fmt.Errorf("invalid amount: %w", err)
	}

	balance, err := readBalance(ctx, c, identity.AccountID)
	if err != nil {
		return nil, fmt.Errorf("failed to check balance: %w", err)
	}
	cmp, err := common.CompareKDAAmounts(balance.KDA, amount)
	if err != nil {
		return nil, fmt.Errorf("failed to check balance: %w", err)
	}
	if cmp < 0 {
		return nil, fmt.Errorf("insufficient balance: have %s KDA, need %s KDA", balance.KDA, amount)
	}

	code := pact.App("coin.transfer",
		pact.String(identity.AccountID),
		pact.String(toAccount),
		normalized,
	)
	caps := []pact.Capability{
		gasCap(),
		{
			Name: "coin.TRANSFER",
			Args: []any{identity.AccountID, toAccount, pact.CapDecimal(amount)},
		},
	}

	result, err := execWrite(ctx, c, identity, code, nil, identity.AccountID, caps)
	if err != nil {
		return nil, fmt.Errorf("failed to transfer: %w", err)
	}
	if err := result.Err(); err != nil {
		return nil, fmt.Errorf("failed to transfer: %w", err)
	}
	return &model.TxResponse{RequestKey: result.RequestKey}, nil
}
