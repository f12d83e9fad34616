// Package pact builds, encodes and signs ledger commands for the Pact HTTP API.
package pact

import (
	"crypto/ed25519"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"golang.org/x/crypto/blake2b"
)

// Command is the ledger command envelope. Immutable once constructed; the
// nonce makes every submission unique.
type Command struct {
	NetworkID string   `json:"networkId"`
	Payload   Payload  `json:"payload"`
	Signers   []Signer `json:"signers"`
	Meta      Meta     `json:"meta"`
	Nonce     string   `json:"nonce"`
}

// Payload wraps the executable part of a command
type Payload struct {
	Exec Exec `json:"exec"`
}

// Exec carries the script text and its environment bindings
type Exec struct {
	Data map[string]any `json:"data"`
	Code string         `json:"code"`
}

// Signer declares a signing key and the capabilities its signature grants
type Signer struct {
	PubKey string       `json:"pubKey"`
	Scheme string       `json:"scheme,omitempty"`
	Clist  []Capability `json:"clist,omitempty"`
}

// Capability is a named permission grant with positional arguments
type Capability struct {
	Name string `json:"name"`
	Args []any  `json:"args"`
}

// Meta is the command metadata
type Meta struct {
	ChainID      string  `json:"chainId"`
	Sender       string  `json:"sender"`
	GasLimit     int64   `json:"gasLimit"`
	GasPrice     float64 `json:"gasPrice"`
	TTL          int64   `json:"ttl"`
	CreationTime int64   `json:"creationTime"`
}

// SignedCommand is the wire form submitted to the ledger. Cmd is the canonical
// JSON encoding of the Command, Hash its content hash, and Sigs cover exactly
// that hash.
type SignedCommand struct {
	Hash string `json:"hash"`
	Sigs []Sig  `json:"sigs"`
	Cmd  string `json:"cmd"`
}

// Sig is one hex-encoded Ed25519 signature
type Sig struct {
	Sig string `json:"sig"`
}

// Builder assembles command envelopes with fixed network metadata.
type Builder struct {
	networkID string
	chainID   string
	gasLimit  int64
	gasPrice  float64
	ttl       int64
}

// NewBuilder creates a Builder from network configuration
func NewBuilder(networkID, chainID string, gasLimit int64, gasPrice float64, ttl int64) *Builder {
	return &Builder{
		networkID: networkID,
		chainID:   chainID,
		gasLimit:  gasLimit,
		gasPrice:  gasPrice,
		ttl:       ttl,
	}
}

// Exec assembles a command for the given script, bindings and signers.
// Sender pays gas. Nonce and creationTime are taken from the wall clock;
// nanosecond nonce resolution keeps concurrent-in-time submissions distinct.
func (b *Builder) Exec(code string, data map[string]any, sender string, signers []Signer) *Command {
	now := time.Now().UTC()
	return b.ExecAt(code, data, sender, signers, now.Unix(), now.Format(time.RFC3339Nano))
}

// ExecAt is Exec with an explicit creation time and nonce.
func (b *Builder) ExecAt(code string, data map[string]any, sender string, signers []Signer, creationTime int64, nonce string) *Command {
	if data == nil {
		data = map[string]any{}
	}
	if signers == nil {
		signers = []Signer{}
	}
	return &Command{
		NetworkID: b.networkID,
		Payload:   Payload{Exec: Exec{Data: data, Code: code}},
		Signers:   signers,
		Meta: Meta{
			ChainID:      b.chainID,
			Sender:       sender,
			GasLimit:     b.gasLimit,
			GasPrice:     b.gasPrice,
			TTL:          b.ttl,
			CreationTime: creationTime,
		},
		Nonce: nonce,
	}
}

// Encode returns the canonical JSON encoding of the command. Field order is
// fixed by the struct layout, so encoding is deterministic.
func (c *Command) Encode() ([]byte, error) {
	encoded, err := json.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("failed to encode command: %w", err)
	}
	return encoded, nil
}

// HashCommand computes the content hash of an encoded command: the
// base64url (unpadded) BLAKE2b-256 digest.
func HashCommand(encoded []byte) (hash string, digest [32]byte) {
	digest = blake2b.Sum256(encoded)
	return base64.RawURLEncoding.EncodeToString(digest[:]), digest
}

// Sign encodes the command, hashes it and signs the digest with the 32-byte
// Ed25519 secret key. The hash is always recomputed here, never trusted from
// input. Secret key bytes must never be logged.
func Sign(cmd *Command, secretKey []byte) (*SignedCommand, error) {
	if len(secretKey) != ed25519.SeedSize {
		return nil, fmt.Errorf("signing failed: invalid secret key length %d, expected %d", len(secretKey), ed25519.SeedSize)
	}

	encoded, err := cmd.Encode()
	if err != nil {
		return nil, err
	}

	hash, digest := HashCommand(encoded)
	signature := ed25519.Sign(ed25519.NewKeyFromSeed(secretKey), digest[:])

	return &SignedCommand{
		Hash: hash,
		Sigs: []Sig{{Sig: hex.EncodeToString(signature)}},
		Cmd:  string(encoded),
	}, nil
}

// Unsigned wraps a read-only command with an empty signature list for the
// local endpoint.
func Unsigned(cmd *Command) (*SignedCommand, error) {
	encoded, err := cmd.Encode()
	if err != nil {
		return nil, err
	}
	hash, _ := HashCommand(encoded)
	return &SignedCommand{
		Hash: hash,
		Sigs: []Sig{},
		Cmd:  string(encoded),
	}, nil
}

// KeysetGuard is the environment binding for a single-key keyset.
func KeysetGuard(publicKeyHex string) map[string]any {
	return map[string]any{
		"keys": []string{publicKeyHex},
		"pred": "keys-all",
	}
}

// CapDecimal renders a decimal capability argument in its tagged wire form.
func CapDecimal(amount string) map[string]string {
	return map[string]string{"decimal": amount}
}
