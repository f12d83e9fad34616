package model

// AccountPrefix is the single-key account tag prepended to the hex public key.
const AccountPrefix = "k:"

// Identity is the node's ledger identity derived from a recovery phrase.
// AccountID is always AccountPrefix + lowercase hex public key.
type Identity struct {
	PublicKeyHex string `json:"publicKey"`
	SecretKeyHex string `json:"secretKey"`
	AccountID    string `json:"account"`
}
