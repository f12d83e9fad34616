package kadena

import (
	"context"
	"fmt"

	"github.com/cyberfly-io/node-wallet/internal/client"
	"github.com/cyberfly-io/node-wallet/internal/config"
	"github.com/cyberfly-io/node-wallet/internal/model"
	"github.com/cyberfly-io/node-wallet/internal/pact"
)

// EnsureRegistered makes sure the node identity is registered and active on
// the ledger. Idempotent by construction: absent => create, inactive =>
// activate, active => no-op.
// password must be []byte for security (caller should zero it after use)
func EnsureRegistered(ctx context.Context, filePath string, password []byte, peerID, multiaddr string) (*model.RegisterResult, error) {
	identity, err := loadIdentity(filePath, password)
	if err != nil {
		return nil, err
	}
	return ensureRegistered(ctx, newPactClient(), identity, peerID, multiaddr)
}

func ensureRegistered(ctx context.Context, c *client.PactClient, identity *model.Identity, peerID, multiaddr string) (*model.RegisterResult, error) {
	module := config.GetNodeModule()

	view, err := readNodeView(ctx, c, peerID)
	if err != nil {
		if !client.IsRowNotFound(err) {
			return nil, err
		}
		// Node is not registered yet
		return createNode(ctx, c, identity, peerID, multiaddr, module)
	}

	if view.Active() {
		return &model.RegisterResult{Action: model.RegisterActionNone, Node: view}, nil
	}
	return activateNode(ctx, c, identity, peerID, multiaddr, module)
}

// createNode registers a new node row with the identity's keyset as guard
func createNode(ctx context.Context, c *client.PactClient, identity *model.Identity, peerID, multiaddr, module string) (*model.RegisterResult, error) {
	code := pact.App(module+".new-node",
		pact.String(peerID),
		pact.String(statusActive),
		pact.String(multiaddr),
		pact.String(identity.AccountID),
		pact.Keyset("guard"),
	)
	data := map[string]any{"guard": pact.KeysetGuard(identity.PublicKeyHex)}
	caps := []pact.Capability{gasCap(), nodeGuardCap(peerID)}

	result, err := execWrite(ctx, c, identity, code, data, config.GetGasStation(), caps)
	if err != nil {
		return nil, fmt.Errorf("failed to register node: %w", err)
	}
	if err := result.Err(); err != nil {
		return nil, fmt.Errorf("failed to register node: %w", err)
	}

	return &model.RegisterResult{
		Action:     model.RegisterActionCreated,
		RequestKey: result.RequestKey,
		Node:       refreshNodeView(ctx, c, peerID),
	}, nil
}

// activateNode flips an existing inactive registration back to active
func activateNode(ctx context.Context, c *client.PactClient, identity *model.Identity, peerID, multiaddr, module string) (*model.RegisterResult, error) {
	code := pact.App(module+".update-node",
		pact.String(peerID),
		pact.String(multiaddr),
		pact.String(statusActive),
		pact.String(identity.AccountID),
	)
	caps := []pact.Capability{gasCap(), nodeGuardCap(peerID)}

	result, err := execWrite(ctx, c, identity, code, nil, config.GetGasStation(), caps)
	if err != nil {
		return nil, fmt.Errorf("failed to activate node: %w", err)
	}
	if err := result.Err(); err != nil {
		return nil, fmt.Errorf("failed to activate node: %w", err)
	}

	return &model.RegisterResult{
		Action:     model.RegisterActionActivated,
		RequestKey: result.RequestKey,
		Node:       refreshNodeView(ctx, c, peerID),
	}, nil
}

// refreshNodeView re-reads the registry row after a mutation; best effort,
// the mutation outcome stands even if the refresh fails.
func refreshNodeView(ctx context.Context, c *client.PactClient, peerID string) *model.NodeView {
	view, err := readNodeView(ctx, c, peerID)
	if err != nil {
		return nil
	}
	return view
}
