package kadena

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rewardLedger(t *testing.T, claimable any) *fakeLedger {
	t.Helper()
	ledger := &fakeLedger{t: t}
	ledger.respond = func(code string) (string, any, string) {
		require.Contains(t, code, "calculate-reward")
		return "success", claimable, ""
	}
	return ledger
}

func TestClaimRewardSkipsZero(t *testing.T) {
	initTestConfig(t)
	identity := testIdentity(t)

	ledger := rewardLedger(t, map[string]any{"decimal": "0.0"})
	srv := ledger.serve()

	result, err := claimReward(context.Background(), fastClient(t, srv.URL), identity, testPeerID)
	require.NoError(t, err)

	assert.False(t, result.Claimed)
	assert.Equal(t, "0.0", result.Amount)
	assert.Empty(t, result.RequestKey)
	assert.Equal(t, 0, ledger.sends(), "zero claimable must not issue a mutation")
}

func TestClaimRewardSkipsNegative(t *testing.T) {
	initTestConfig(t)
	identity := testIdentity(t)

	ledger := rewardLedger(t, map[string]any{"decimal": "-1.5"})
	srv := ledger.serve()

	result, err := claimReward(context.Background(), fastClient(t, srv.URL), identity, testPeerID)
	require.NoError(t, err)

	assert.False(t, result.Claimed)
	assert.Equal(t, 0, ledger.sends())
}

func TestClaimRewardRejectsUnparsable(t *testing.T) {
	initTestConfig(t)
	identity := testIdentity(t)

	ledger := rewardLedger(t, "not-a-number")
	srv := ledger.serve()

	_, err := claimReward(context.Background(), fastClient(t, srv.URL), identity, testPeerID)
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "unparsable"))
	assert.Equal(t, 0, ledger.sends(), "an unparsable amount must fail closed")
}

func TestClaimRewardClaimsPositive(t *testing.T) {
	initTestConfig(t)
	identity := testIdentity(t)

	ledger := rewardLedger(t, map[string]any{"decimal": "4.25"})
	srv := ledger.serve()

	result, err := claimReward(context.Background(), fastClient(t, srv.URL), identity, testPeerID)
	require.NoError(t, err)

	assert.True(t, result.Claimed)
	assert.Equal(t, "4.25", result.Amount)
	assert.Equal(t, testRequestKey, result.RequestKey)
	assert.Equal(t, 1, ledger.sends())
}

func TestClaimRewardPlainNumber(t *testing.T) {
	initTestConfig(t)
	identity := testIdentity(t)

	ledger := rewardLedger(t, 2.5)
	srv := ledger.serve()

	result, err := claimReward(context.Background(), fastClient(t, srv.URL), identity, testPeerID)
	require.NoError(t, err)
	assert.True(t, result.Claimed)
	assert.Equal(t, 1, ledger.sends())
}
