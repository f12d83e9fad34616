package kadena

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/cyberfly-io/node-wallet/internal/client"
	"github.com/cyberfly-io/node-wallet/internal/config"
	"github.com/cyberfly-io/node-wallet/internal/hd"
	"github.com/cyberfly-io/node-wallet/internal/model"

	"github.com/stretchr/testify/require"
)

const testRequestKey = "req-test-1"

// fakeLedger is an in-process Pact endpoint. Local reads are answered by the
// responder keyed on the script text; every send is counted and resolved by
// the poll endpoint with a success result.
type fakeLedger struct {
	t *testing.T

	mu        sync.Mutex
	sendCount int

	// respond answers a local read for the given script text
	respond func(code string) (status string, data any, errMsg string)
}

func (f *fakeLedger) sends() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.sendCount
}

func (f *fakeLedger) serve() *httptest.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/local", func(w http.ResponseWriter, r *http.Request) {
		var signed struct {
			Cmd string `json:"cmd"`
		}
		require.NoError(f.t, json.NewDecoder(r.Body).Decode(&signed))
		var cmd struct {
			Payload struct {
				Exec struct {
					Code string `json:"code"`
				} `json:"exec"`
			} `json:"payload"`
		}
		require.NoError(f.t, json.Unmarshal([]byte(signed.Cmd), &cmd))

		status, data, errMsg := f.respond(cmd.Payload.Exec.Code)
		writeLedgerResult(f.t, w, "local-read", status, data, errMsg)
	})
	mux.HandleFunc("/api/v1/send", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		f.sendCount++
		f.mu.Unlock()
		require.NoError(f.t, json.NewEncoder(w).Encode(map[string]any{
			"requestKeys": []string{testRequestKey},
		}))
	})
	mux.HandleFunc("/api/v1/poll", func(w http.ResponseWriter, r *http.Request) {
		var body bytes.Buffer
		result := ledgerResult(testRequestKey, "success", "Write succeeded", "")
		require.NoError(f.t, json.NewEncoder(&body).Encode(map[string]any{testRequestKey: result}))
		_, _ = w.Write(body.Bytes())
	})

	srv := httptest.NewServer(mux)
	f.t.Cleanup(srv.Close)
	return srv
}

func ledgerResult(reqKey, status string, data any, errMsg string) map[string]any {
	result := map[string]any{"status": status}
	if errMsg != "" {
		result["error"] = map[string]any{"message": errMsg}
	} else {
		result["data"] = data
	}
	return map[string]any{"reqKey": reqKey, "result": result}
}

func writeLedgerResult(t *testing.T, w http.ResponseWriter, reqKey, status string, data any, errMsg string) {
	t.Helper()
	require.NoError(t, json.NewEncoder(w).Encode(ledgerResult(reqKey, status, data, errMsg)))
}

// fastClient points a ledger client at the fake with a millisecond poll cadence
func fastClient(t *testing.T, baseURL string) *client.PactClient {
	t.Helper()
	c := client.NewPactClient(baseURL, nil)
	c.PollInterval = time.Millisecond
	return c
}

// initTestConfig loads configuration with defaults suitable for tests
func initTestConfig(t *testing.T) {
	t.Helper()
	t.Setenv("WALLET_FILE_PATH", filepath.Join(t.TempDir(), "wallet.kwt"))
	require.NoError(t, config.Init())
}

// testIdentity builds a deterministic identity without a wallet file
func testIdentity(t *testing.T) *model.Identity {
	t.Helper()
	seed := bytes.Repeat([]byte{0x11}, 32)
	identity, err := hd.IdentityFromSecretKey(seed)
	require.NoError(t, err)
	return identity
}
