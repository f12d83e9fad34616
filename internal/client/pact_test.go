package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/cyberfly-io/node-wallet/internal/pact"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSigned(t *testing.T) *pact.SignedCommand {
	t.Helper()
	cmd := pact.NewBuilder("testnet04", "1", 12000, 0.0000001, 600).
		ExecAt(`(coin.get-balance "k:abc")`, nil, "sender", nil, 1700000000, "n")
	signed, err := pact.Unsigned(cmd)
	require.NoError(t, err)
	return signed
}

// fastClient returns a client against url with a millisecond poll cadence
func fastClient(url string) *PactClient {
	c := NewPactClient(url, nil)
	c.PollInterval = time.Millisecond
	return c
}

func writeResult(w http.ResponseWriter, key, status, data, errMsg string) {
	body := map[string]any{}
	result := map[string]any{"status": status}
	if data != "" {
		result["data"] = json.RawMessage(data)
	}
	if errMsg != "" {
		result["error"] = map[string]string{"message": errMsg}
	}
	body[key] = map[string]any{"reqKey": key, "result": result}
	json.NewEncoder(w).Encode(body)
}

func TestSendReturnsRequestKey(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v1/send", r.URL.Path)

		var req struct {
			Cmds []pact.SignedCommand `json:"cmds"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Cmds, 1)
		assert.NotEmpty(t, req.Cmds[0].Hash)

		json.NewEncoder(w).Encode(map[string][]string{"requestKeys": {"rk-1"}})
	}))
	defer server.Close()

	key, err := fastClient(server.URL).Send(context.Background(), testSigned(t))
	require.NoError(t, err)
	assert.Equal(t, "rk-1", key)
}

func TestSendNon2xxIsSubmissionError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad gateway", http.StatusBadGateway)
	}))
	defer server.Close()

	_, err := fastClient(server.URL).Send(context.Background(), testSigned(t))
	var subErr *SubmissionError
	require.ErrorAs(t, err, &subErr)
	assert.Equal(t, http.StatusBadGateway, subErr.StatusCode)
}

func TestAwaitResultResolvesOnNthPoll(t *testing.T) {
	const resolveOn = 5
	var polls atomic.Int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v1/poll", r.URL.Path)
		if polls.Add(1) < resolveOn {
			fmt.Fprint(w, "{}")
			return
		}
		writeResult(w, "rk-1", "success", `"done"`, "")
	}))
	defer server.Close()

	result, err := fastClient(server.URL).AwaitResult(context.Background(), "rk-1")
	require.NoError(t, err)
	assert.Equal(t, "success", result.Status)
	assert.NoError(t, result.Err())
	assert.Equal(t, int32(resolveOn), polls.Load(), "must resolve after exactly N polls")
}

func TestAwaitResultTimesOutAfterCeiling(t *testing.T) {
	var polls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		polls.Add(1)
		fmt.Fprint(w, "{}")
	}))
	defer server.Close()

	_, err := fastClient(server.URL).AwaitResult(context.Background(), "rk-1")
	require.ErrorIs(t, err, ErrPollTimeout)
	assert.Equal(t, int32(defaultMaxPollAttempts), polls.Load(), "polling must stop at the ceiling")
}

func TestAwaitResultLedgerFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeResult(w, "rk-1", "failure", "", "Insufficient funds")
	}))
	defer server.Close()

	result, err := fastClient(server.URL).AwaitResult(context.Background(), "rk-1")
	require.NoError(t, err)

	ledgerErr := result.Err()
	require.Error(t, ledgerErr)
	assert.False(t, IsRowNotFound(ledgerErr))
}

func TestAwaitResultHonorsCancellation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "{}")
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := fastClient(server.URL).AwaitResult(ctx, "rk-1")
	require.ErrorIs(t, err, context.Canceled)
}

func TestLocalReturnsSynchronously(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v1/local", r.URL.Path)

		var signed pact.SignedCommand
		require.NoError(t, json.NewDecoder(r.Body).Decode(&signed))
		assert.Empty(t, signed.Sigs, "reads carry an empty signature list")

		json.NewEncoder(w).Encode(map[string]any{
			"result": map[string]any{"status": "success", "data": json.RawMessage(`12.5`)},
		})
	}))
	defer server.Close()

	result, err := fastClient(server.URL).Local(context.Background(), testSigned(t))
	require.NoError(t, err)
	assert.Equal(t, "success", result.Status)

	value, ok := pact.DecodeNumber(result.Data).Decimal()
	require.True(t, ok)
	assert.Equal(t, "12.5", value)
}

func TestLocalRowNotFoundClassification(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"result": map[string]any{
				"status": "failure",
				"error":  map[string]string{"message": "with-read: row not found: peer-1"},
			},
		})
	}))
	defer server.Close()

	result, err := fastClient(server.URL).Local(context.Background(), testSigned(t))
	require.NoError(t, err)
	assert.True(t, IsRowNotFound(result.Err()))
}
