package kadena

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func balanceLedger(t *testing.T, balance any) *fakeLedger {
	t.Helper()
	ledger := &fakeLedger{t: t}
	ledger.respond = func(code string) (string, any, string) {
		require.Contains(t, code, "coin.get-balance")
		return "success", balance, ""
	}
	return ledger
}

func TestTransferSucceedsWithSufficientBalance(t *testing.T) {
	initTestConfig(t)
	identity := testIdentity(t)

	ledger := balanceLedger(t, 10.0)
	srv := ledger.serve()

	result, err := transferCoins(context.Background(), fastClient(t, srv.URL), identity, "k:deadbeef", "2.5")
	require.NoError(t, err)

	assert.Equal(t, testRequestKey, result.RequestKey)
	assert.Equal(t, 1, ledger.sends())
}

func TestTransferRejectsInsufficientBalance(t *testing.T) {
	initTestConfig(t)
	identity := testIdentity(t)

	ledger := balanceLedger(t, 1.0)
	srv := ledger.serve()

	_, err := transferCoins(context.Background(), fastClient(t, srv.URL), identity, "k:deadbeef", "2.5")
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "insufficient balance"))
	assert.Equal(t, 0, ledger.sends(), "a failed precheck must not submit a command")
}

func TestTransferRejectsBadAmount(t *testing.T) {
	initTestConfig(t)
	identity := testIdentity(t)

	ledger := balanceLedger(t, 10.0)
	srv := ledger.serve()
	c := fastClient(t, srv.URL)

	for _, amount := range []string{"", "abc", "1.2.3", `1.0") (steal "`} {
		_, err := transferCoins(context.Background(), c, identity, "k:deadbeef", amount)
		require.Error(t, err, "amount %q", amount)
	}
	assert.Equal(t, 0, ledger.sends())
}

func TestTransferRejectsSelfAndEmptyRecipient(t *testing.T) {
	initTestConfig(t)
	identity := testIdentity(t)

	ledger := balanceLedger(t, 10.0)
	srv := ledger.serve()
	c := fastClient(t, srv.URL)

	_, err := transferCoins(context.Background(), c, identity, identity.AccountID, "1.0")
	require.Error(t, err)

	_, err = transferCoins(context.Background(), c, identity, "", "1.0")
	require.Error(t, err)

	assert.Equal(t, 0, ledger.sends())
}
