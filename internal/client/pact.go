package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/cyberfly-io/node-wallet/internal/pact"

	"go.uber.org/zap"
)

const (
	localPath = "/api/v1/local"
	sendPath  = "/api/v1/send"
	pollPath  = "/api/v1/poll"

	// Fixed poll cadence matching the target chain's typical block
	// confirmation latency: 30 attempts x 2s = 60s ceiling, no backoff.
	defaultPollInterval    = 2 * time.Second
	defaultMaxPollAttempts = 30
)

// ErrPollTimeout is returned when polling exhausts its attempts without the
// transaction resolving. Ambiguous: the mutation may still land later, so
// callers should re-query rather than resubmit.
var ErrPollTimeout = errors.New("transaction still pending after polling ceiling")

// SubmissionError is a transport or HTTP failure talking to the ledger.
// Retryable by the caller; distinct from a ledger-reported logical failure.
type SubmissionError struct {
	Op         string
	StatusCode int
	Err        error
}

func (e *SubmissionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("ledger %s failed: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("ledger %s failed: status %d", e.Op, e.StatusCode)
}

func (e *SubmissionError) Unwrap() error { return e.Err }

// LedgerError is a logical failure reported by the ledger after executing the
// command. Not retryable without changing inputs.
type LedgerError struct {
	Message string
}

func (e *LedgerError) Error() string {
	return fmt.Sprintf("ledger rejected command: %s", e.Message)
}

// RowNotFound reports whether the failure is a missing-row read, which
// signals "entity does not yet exist" rather than a genuine error.
func (e *LedgerError) RowNotFound() bool {
	msg := strings.ToLower(e.Message)
	return strings.Contains(msg, "row not found") || strings.Contains(msg, "no such row")
}

// IsRowNotFound checks if err carries a missing-row ledger failure
func IsRowNotFound(err error) bool {
	var ledgerErr *LedgerError
	return errors.As(err, &ledgerErr) && ledgerErr.RowNotFound()
}

// CommandResult is the parsed outcome of an executed command
type CommandResult struct {
	RequestKey string
	Status     string
	Data       json.RawMessage
	ErrMessage string
}

// Err returns a *LedgerError when the ledger reported a logical failure,
// nil otherwise.
func (r *CommandResult) Err() error {
	if r.Status == "failure" {
		return &LedgerError{Message: r.ErrMessage}
	}
	return nil
}

// wire shapes

type commandResponse struct {
	ReqKey string `json:"reqKey"`
	Result struct {
		Status string          `json:"status"`
		Data   json.RawMessage `json:"data"`
		Error  *struct {
			Message string `json:"message"`
		} `json:"error"`
	} `json:"result"`
}

func (w *commandResponse) toResult() *CommandResult {
	res := &CommandResult{
		RequestKey: w.ReqKey,
		Status:     w.Result.Status,
		Data:       w.Result.Data,
	}
	if w.Result.Error != nil {
		res.ErrMessage = w.Result.Error.Message
	}
	return res
}

type sendRequest struct {
	Cmds []*pact.SignedCommand `json:"cmds"`
}

type sendResponse struct {
	RequestKeys []string `json:"requestKeys"`
}

type pollRequest struct {
	RequestKeys []string `json:"requestKeys"`
}

// PactClient is a client for the ledger's Pact HTTP API
type PactClient struct {
	BaseURL    string
	HTTPClient *http.Client

	// Poll cadence; fixed in production, tunable in tests
	PollInterval    time.Duration
	MaxPollAttempts int

	log *zap.Logger
}

// NewPactClient creates a new Pact API client
func NewPactClient(baseURL string, log *zap.Logger) *PactClient {
	if log == nil {
		log = zap.NewNop()
	}
	return &PactClient{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		PollInterval:    defaultPollInterval,
		MaxPollAttempts: defaultMaxPollAttempts,
		log:             log,
	}
}

// post sends a JSON body and decodes the JSON response into out
func (c *PactClient) post(ctx context.Context, op, path string, body, out any) error {
	encoded, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to encode %s request: %w", op, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+path, bytes.NewReader(encoded))
	if err != nil {
		return fmt.Errorf("failed to build %s request: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return &SubmissionError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &SubmissionError{Op: op, StatusCode: resp.StatusCode}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &SubmissionError{Op: op, Err: fmt.Errorf("failed to decode response: %w", err)}
	}
	return nil
}

// Local executes a read-only command synchronously. No polling: the result,
// including any ledger-reported failure, comes back in one round trip.
// Use CommandResult.Err() to classify a failure status.
func (c *PactClient) Local(ctx context.Context, cmd *pact.SignedCommand) (*CommandResult, error) {
	var resp commandResponse
	if err := c.post(ctx, "local", localPath+"?preflight=false&signatureVerification=false", cmd, &resp); err != nil {
		return nil, err
	}
	return resp.toResult(), nil
}

// Send submits a signed mutation and returns its request key.
func (c *PactClient) Send(ctx context.Context, cmd *pact.SignedCommand) (string, error) {
	var resp sendResponse
	if err := c.post(ctx, "send", sendPath, sendRequest{Cmds: []*pact.SignedCommand{cmd}}, &resp); err != nil {
		return "", err
	}
	if len(resp.RequestKeys) == 0 {
		return "", &SubmissionError{Op: "send", Err: errors.New("no request key returned")}
	}
	c.log.Debug("command submitted", zap.String("requestKey", resp.RequestKeys[0]))
	return resp.RequestKeys[0], nil
}

// Poll queries the transaction result once. The second return is false while
// the transaction is still pending.
func (c *PactClient) Poll(ctx context.Context, requestKey string) (*CommandResult, bool, error) {
	var resp map[string]commandResponse
	if err := c.post(ctx, "poll", pollPath, pollRequest{RequestKeys: []string{requestKey}}, &resp); err != nil {
		return nil, false, err
	}
	entry, ok := resp[requestKey]
	if !ok {
		return nil, false, nil
	}
	return entry.toResult(), true, nil
}

// AwaitResult polls for a submitted transaction until it resolves, the
// attempt ceiling is reached (ErrPollTimeout) or ctx is cancelled. A ledger
// failure status is a result, not an error - classify with
// CommandResult.Err(). Cancellation stops local polling only; the submitted
// mutation cannot be retracted and may still complete on-ledger.
func (c *PactClient) AwaitResult(ctx context.Context, requestKey string) (*CommandResult, error) {
	ticker := time.NewTicker(c.PollInterval)
	defer ticker.Stop()

	for attempt := 1; attempt <= c.MaxPollAttempts; attempt++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}

		result, resolved, err := c.Poll(ctx, requestKey)
		if err != nil {
			// Transient transport errors during polling do not consume the
			// transaction; keep waiting for the ceiling.
			c.log.Warn("poll attempt failed",
				zap.String("requestKey", requestKey),
				zap.Int("attempt", attempt),
				zap.Error(err))
			continue
		}
		if resolved {
			c.log.Debug("transaction resolved",
				zap.String("requestKey", requestKey),
				zap.String("status", result.Status),
				zap.Int("attempts", attempt))
			return result, nil
		}
	}
	return nil, fmt.Errorf("%w (requestKey %s)", ErrPollTimeout, requestKey)
}
