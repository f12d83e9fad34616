package kadena

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/cyberfly-io/node-wallet/internal/client"
	"github.com/cyberfly-io/node-wallet/internal/common"
	"github.com/cyberfly-io/node-wallet/internal/config"
	"github.com/cyberfly-io/node-wallet/internal/crypto"
	"github.com/cyberfly-io/node-wallet/internal/model"
	"github.com/cyberfly-io/node-wallet/internal/pact"
)

// ledger row wire shapes

type nodeRow struct {
	PeerID    string `json:"peer_id"`
	Multiaddr string `json:"multiaddr"`
	Status    string `json:"status"`
	Account   string `json:"account"`
}

type stakeRow struct {
	Account string      `json:"account"`
	PeerID  string      `json:"peer_id"`
	Amount  pact.Number `json:"amount"`
	Active  bool        `json:"active"`
}

// GetNodeView queries the registry row for peerID. Returns a wrapped
// *client.LedgerError with RowNotFound set when the node is not registered.
func GetNodeView(ctx context.Context, peerID string) (*model.NodeView, error) {
	return readNodeView(ctx, newPactClient(), peerID)
}

func readNodeView(ctx context.Context, c *client.PactClient, peerID string) (*model.NodeView, error) {
	code := pact.App(config.GetNodeModule()+".get-node", pact.String(peerID))
	result, err := execRead(ctx, c, code, nil)
	if err != nil {
		return nil, err
	}
	if err := result.Err(); err != nil {
		return nil, fmt.Errorf("failed to query node: %w", err)
	}

	var row nodeRow
	if err := json.Unmarshal(result.Data, &row); err != nil {
		return nil, fmt.Errorf("failed to decode node row: %w", err)
	}
	return &model.NodeView{
		PeerID:    row.PeerID,
		Multiaddr: row.Multiaddr,
		Status:    row.Status,
		Account:   row.Account,
	}, nil
}

// GetStakeView queries the staking row for peerID.
func GetStakeView(ctx context.Context, peerID string) (*model.StakeView, error) {
	return readStakeView(ctx, newPactClient(), peerID)
}

func readStakeView(ctx context.Context, c *client.PactClient, peerID string) (*model.StakeView, error) {
	code := pact.App(config.GetNodeModule()+".get-stake", pact.String(peerID))
	result, err := execRead(ctx, c, code, nil)
	if err != nil {
		return nil, err
	}
	if err := result.Err(); err != nil {
		return nil, fmt.Errorf("failed to query stake: %w", err)
	}

	var row stakeRow
	if err := json.Unmarshal(result.Data, &row); err != nil {
		return nil, fmt.Errorf("failed to decode stake row: %w", err)
	}
	amount, ok := row.Amount.Decimal()
	if !ok {
		return nil, fmt.Errorf("stake amount is unparsable")
	}
	return &model.StakeView{
		Account: row.Account,
		PeerID:  row.PeerID,
		Amount:  amount,
		Active:  row.Active,
	}, nil
}

// GetRewardView computes the claimable reward for peerID on the ledger.
func GetRewardView(ctx context.Context, peerID string) (*model.RewardView, error) {
	return readRewardView(ctx, newPactClient(), peerID)
}

func readRewardView(ctx context.Context, c *client.PactClient, peerID string) (*model.RewardView, error) {
	claimable, err := readClaimable(ctx, c, peerID)
	if err != nil {
		return nil, err
	}
	amount, ok := claimable.Decimal()
	if !ok {
		return nil, fmt.Errorf("claimable reward is unparsable")
	}
	return &model.RewardView{PeerID: peerID, Claimable: amount}, nil
}

// readClaimable runs the ledger-side reward calculation and decodes the
// numeric result. Unparsable values come back as absent, never zero.
func readClaimable(ctx context.Context, c *client.PactClient, peerID string) (pact.Number, error) {
	code := pact.App(config.GetNodeModule()+".calculate-reward", pact.String(peerID))
	result, err := execRead(ctx, c, code, nil)
	if err != nil {
		return pact.Number{}, err
	}
	if err := result.Err(); err != nil {
		return pact.Number{}, fmt.Errorf("failed to calculate reward: %w", err)
	}
	return pact.DecodeNumber(result.Data), nil
}

// GetBalance reads the wallet's on-ledger coin balance. The wallet file is
// only read for its account field, so no password is needed.
func GetBalance(ctx context.Context, filePath string) (*model.BalanceResponse, error) {
	account, err := crypto.ReadWalletAccount(filePath)
	if err != nil {
		if errors.Is(err, crypto.ErrWalletNotFound) {
			return nil, ErrIdentityMissing
		}
		return nil, err
	}
	resp, err := readBalance(ctx, newPactClient(), account)
	if err != nil {
		return nil, err
	}

	// Rate lookup is best effort; the balance stands without it
	rate, err := client.NewCoinGeckoClient().GetKDAtoUSDrate()
	if err != nil {
		return resp, nil
	}
	resp.Rate = rate
	if usd, err := kdaToUSD(resp.KDA, rate); err == nil {
		resp.USD = usd
	}
	return resp, nil
}

// readBalance queries the raw on-ledger balance without any rate conversion
func readBalance(ctx context.Context, c *client.PactClient, account string) (*model.BalanceResponse, error) {
	code := pact.App("coin.get-balance", pact.String(account))
	result, err := execRead(ctx, c, code, nil)
	if err != nil {
		return nil, err
	}
	if err := result.Err(); err != nil {
		if client.IsRowNotFound(err) {
			// Account has never held coins
			return &model.BalanceResponse{Account: account, KDA: "0.0"}, nil
		}
		return nil, fmt.Errorf("failed to query balance: %w", err)
	}

	balance := pact.DecodeNumber(result.Data)
	kda, ok := balance.Decimal()
	if !ok {
		return nil, fmt.Errorf("balance is unparsable")
	}

	return &model.BalanceResponse{Account: account, KDA: kda}, nil
}

// kdaToUSD converts a KDA decimal string to USD at the given rate
func kdaToUSD(kda, rate string) (string, error) {
	raw, err := common.KDAToRaw(kda)
	if err != nil {
		return "", err
	}
	rateVal, err := strconv.ParseFloat(rate, 64)
	if err != nil {
		return "", err
	}
	usd := float64(raw) / 1e12 * rateVal
	return strconv.FormatFloat(usd, 'f', 4, 64), nil
}
