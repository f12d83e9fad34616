// Package kadena implements the wallet and node-registry operations against
// the public ledger: identity creation and restore, registration,
// staking, transfers and reward claims.
package kadena

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"sync"

	"github.com/cyberfly-io/node-wallet/internal/client"
	"github.com/cyberfly-io/node-wallet/internal/config"
	"github.com/cyberfly-io/node-wallet/internal/crypto"
	"github.com/cyberfly-io/node-wallet/internal/hd"
	"github.com/cyberfly-io/node-wallet/internal/model"
	"github.com/cyberfly-io/node-wallet/internal/pact"
)

const (
	networkKadena = "kadena"

	statusActive = "active"
)

// ErrIdentityMissing is returned when a wallet operation runs before any
// identity was created or restored.
var ErrIdentityMissing = errors.New("no wallet identity: create or restore a wallet first")

// txMutex serializes mutating operations: only one transaction may be in
// flight against the identity's nonce space at a time. Reads are unrestricted.
var txMutex sync.Mutex

// newPactClient creates a ledger client from configuration
func newPactClient() *client.PactClient {
	return client.NewPactClient(config.GetPactAPIURL(), nil)
}

// newBuilder creates a command builder from configuration
func newBuilder() *pact.Builder {
	return pact.NewBuilder(
		config.GetNetworkID(),
		config.GetChainID(),
		config.GetGasLimit(),
		config.GetGasPrice(),
		config.GetTTLSeconds(),
	)
}

// loadIdentity decrypts the wallet file and rebuilds the ledger identity.
// password must be []byte for security (caller should zero it after use)
func loadIdentity(filePath string, password []byte) (*model.Identity, error) {
	_, walletData, err := crypto.DecryptWallet(filePath, password)
	if err != nil {
		if errors.Is(err, crypto.ErrWalletNotFound) {
			return nil, ErrIdentityMissing
		}
		return nil, fmt.Errorf("failed to decrypt wallet: %w", err)
	}
	defer clear(walletData.SecretKey)

	identity, err := hd.IdentityFromSecretKey(walletData.SecretKey)
	if err != nil {
		return nil, fmt.Errorf("wallet key material is malformed: %w", err)
	}
	return identity, nil
}

// gasCap is the capability paying gas for the command
func gasCap() pact.Capability {
	return pact.Capability{Name: "coin.GAS", Args: []any{}}
}

// nodeGuardCap is the capability proving ownership of a registered node
func nodeGuardCap(peerID string) pact.Capability {
	return pact.Capability{
		Name: config.GetNodeModule() + ".NODE_GUARD",
		Args: []any{peerID},
	}
}

// execRead runs a read-only script on the local endpoint. No signature, no
// polling: the result comes back synchronously.
func execRead(ctx context.Context, c *client.PactClient, code string, data map[string]any) (*client.CommandResult, error) {
	cmd := newBuilder().Exec(code, data, config.GetGasStation(), nil)
	signed, err := pact.Unsigned(cmd)
	if err != nil {
		return nil, err
	}
	return c.Local(ctx, signed)
}

// execWrite builds, signs, submits and polls one mutation to a terminal
// outcome. The transaction mutex is held for the whole lifecycle so the
// identity's nonce space has a single writer.
func execWrite(ctx context.Context, c *client.PactClient, id *model.Identity, code string, data map[string]any, sender string, caps []pact.Capability) (*client.CommandResult, error) {
	txMutex.Lock()
	defer txMutex.Unlock()

	signers := []pact.Signer{{
		PubKey: id.PublicKeyHex,
		Scheme: "ED25519",
		Clist:  caps,
	}}
	cmd := newBuilder().Exec(code, data, sender, signers)

	secret, err := hex.DecodeString(id.SecretKeyHex)
	if err != nil {
		return nil, fmt.Errorf("wallet key material is malformed: %w", err)
	}
	defer clear(secret)

	signed, err := pact.Sign(cmd, secret)
	if err != nil {
		return nil, err
	}

	requestKey, err := c.Send(ctx, signed)
	if err != nil {
		return nil, err
	}

	return c.AwaitResult(ctx, requestKey)
}
