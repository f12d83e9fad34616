package kadena

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/cyberfly-io/node-wallet/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testPeerID    = "12D3KooWTestPeer"
	testMultiaddr = "/ip4/10.0.0.5/tcp/31001"
)

func nodeRowFor(identity *model.Identity, status string) map[string]any {
	return map[string]any{
		"peer_id":   testPeerID,
		"multiaddr": testMultiaddr,
		"status":    status,
		"account":   identity.AccountID,
	}
}

func TestEnsureRegisteredCreatesWhenAbsent(t *testing.T) {
	initTestConfig(t)
	identity := testIdentity(t)

	// First read misses, the refresh after the mutation sees the new row
	var mu sync.Mutex
	reads := 0
	ledger := &fakeLedger{t: t}
	ledger.respond = func(code string) (string, any, string) {
		require.Contains(t, code, "get-node")
		mu.Lock()
		defer mu.Unlock()
		reads++
		if reads == 1 {
			return "failure", nil, "with-read: row not found"
		}
		return "success", nodeRowFor(identity, "active"), ""
	}
	srv := ledger.serve()

	result, err := ensureRegistered(context.Background(), fastClient(t, srv.URL), identity, testPeerID, testMultiaddr)
	require.NoError(t, err)

	assert.Equal(t, model.RegisterActionCreated, result.Action)
	assert.Equal(t, testRequestKey, result.RequestKey)
	assert.Equal(t, 1, ledger.sends())
	require.NotNil(t, result.Node)
	assert.True(t, result.Node.Active())
	assert.Equal(t, identity.AccountID, result.Node.Account)
}

func TestEnsureRegisteredNoOpWhenActive(t *testing.T) {
	initTestConfig(t)
	identity := testIdentity(t)

	ledger := &fakeLedger{t: t}
	ledger.respond = func(code string) (string, any, string) {
		return "success", nodeRowFor(identity, "active"), ""
	}
	srv := ledger.serve()

	result, err := ensureRegistered(context.Background(), fastClient(t, srv.URL), identity, testPeerID, testMultiaddr)
	require.NoError(t, err)

	assert.Equal(t, model.RegisterActionNone, result.Action)
	assert.Empty(t, result.RequestKey)
	assert.Equal(t, 0, ledger.sends(), "an already active node must not be mutated")
	require.NotNil(t, result.Node)
	assert.True(t, result.Node.Active())
}

func TestEnsureRegisteredActivatesInactive(t *testing.T) {
	initTestConfig(t)
	identity := testIdentity(t)

	ledger := &fakeLedger{t: t}
	ledger.respond = func(code string) (string, any, string) {
		return "success", nodeRowFor(identity, "inactive"), ""
	}
	srv := ledger.serve()

	result, err := ensureRegistered(context.Background(), fastClient(t, srv.URL), identity, testPeerID, testMultiaddr)
	require.NoError(t, err)

	assert.Equal(t, model.RegisterActionActivated, result.Action)
	assert.Equal(t, testRequestKey, result.RequestKey)
	assert.Equal(t, 1, ledger.sends())
}

func TestEnsureRegisteredSurfacesReadFailure(t *testing.T) {
	initTestConfig(t)
	identity := testIdentity(t)

	ledger := &fakeLedger{t: t}
	ledger.respond = func(code string) (string, any, string) {
		return "failure", nil, "module not found"
	}
	srv := ledger.serve()

	_, err := ensureRegistered(context.Background(), fastClient(t, srv.URL), identity, testPeerID, testMultiaddr)
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "module not found"))
	assert.Equal(t, 0, ledger.sends(), "a non-missing-row read failure must not trigger a create")
}

func TestGetNodeViewDecodesRow(t *testing.T) {
	initTestConfig(t)
	identity := testIdentity(t)

	ledger := &fakeLedger{t: t}
	ledger.respond = func(code string) (string, any, string) {
		return "success", nodeRowFor(identity, "inactive"), ""
	}
	srv := ledger.serve()

	view, err := readNodeView(context.Background(), fastClient(t, srv.URL), testPeerID)
	require.NoError(t, err)
	assert.Equal(t, testPeerID, view.PeerID)
	assert.Equal(t, testMultiaddr, view.Multiaddr)
	assert.False(t, view.Active())
}
