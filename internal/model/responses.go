package model

// ErrorResponse is the consistent JSON structure for all API error responses.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// GenerateResponse represents response for POST /wallet/generate and /wallet/restore.
// Mnemonic is only returned on generate, exactly once - it is not retrievable later
// through the API.
type GenerateResponse struct {
	Success  bool   `json:"success"`
	Message  string `json:"message"`
	Account  string `json:"account,omitempty"`
	Mnemonic string `json:"mnemonic,omitempty"`
}

// RestoreRequest represents request for POST /wallet/restore
type RestoreRequest struct {
	Phrase string `json:"phrase"`
}

// BalanceResponse represents response for GET /wallet/balance
type BalanceResponse struct {
	Account string `json:"account"`
	KDA     string `json:"kda"`
	Rate    string `json:"rate"`
	USD     string `json:"kda_amount_in_usd"`
}

// RegisterRequest represents request for POST /node/register
type RegisterRequest struct {
	PeerID    string `json:"peerId"`
	Multiaddr string `json:"multiaddr"`
}

// RegisterAction says which mutation (if any) EnsureRegistered performed.
type RegisterAction string

const (
	RegisterActionNone      RegisterAction = "none"
	RegisterActionCreated   RegisterAction = "created"
	RegisterActionActivated RegisterAction = "activated"
)

// RegisterResult represents response for POST /node/register
type RegisterResult struct {
	Action     RegisterAction `json:"action"`
	RequestKey string         `json:"requestKey,omitempty"`
	Node       *NodeView      `json:"node,omitempty"`
}

// NodeOpRequest represents request for node-scoped mutations (stake, unstake, claim)
type NodeOpRequest struct {
	PeerID string `json:"peerId"`
}

// TransferRequest represents request for POST /wallet/transfer
type TransferRequest struct {
	ToAccount string `json:"toAccount"`
	Amount    string `json:"amount"`
}

// TxResponse represents a completed ledger mutation
type TxResponse struct {
	RequestKey string `json:"requestKey"`
}

// ClaimResult represents response for POST /node/claim-reward.
// Claimed is false when the claimable amount was zero or negative and no
// mutation was issued.
type ClaimResult struct {
	Claimed    bool   `json:"claimed"`
	Amount     string `json:"amount"`
	RequestKey string `json:"requestKey,omitempty"`
}
