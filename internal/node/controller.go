// Package node defines the control surface of the peer-to-peer storage node.
// The node itself is an external collaborator; this package only carries the
// interface and its data transfer types.
package node

import (
	"context"
	"errors"
)

// ErrNodeNotRunning is returned by every operation that needs a started node.
var ErrNodeNotRunning = errors.New("node not running")

// Config is the node start configuration. WalletSecretKey is optional key
// material handed to the node for sync signing; it must never be logged.
type Config struct {
	DataDir         string
	WalletSecretKey string
	BootstrapPeers  []string
	Region          string
}

// Info identifies a started node
type Info struct {
	NodeID    string `json:"nodeId"`
	PublicKey string `json:"publicKey"`
	IsRunning bool   `json:"isRunning"`
}

// Status is a point-in-time snapshot of the node
type Status struct {
	IsRunning              bool   `json:"isRunning"`
	NodeID                 string `json:"nodeId,omitempty"`
	ConnectedPeers         int    `json:"connectedPeers"`
	DiscoveredPeers        int    `json:"discoveredPeers"`
	UptimeSeconds          uint64 `json:"uptimeSeconds"`
	GossipMessagesReceived uint64 `json:"gossipMessagesReceived"`
	StorageSizeBytes       uint64 `json:"storageSizeBytes"`
	TotalKeys              uint64 `json:"totalKeys"`
}

// PeerInfo describes a discovered peer
type PeerInfo struct {
	NodeID    string `json:"nodeId"`
	PublicKey string `json:"publicKey"`
	Address   string `json:"address,omitempty"`
	Region    string `json:"region,omitempty"`
	Version   string `json:"version,omitempty"`
	LatencyMS uint64 `json:"latencyMs,omitempty"`
	IsMobile  bool   `json:"isMobile"`
}

// Controller is the consumed control surface of the P2P node.
type Controller interface {
	Start(ctx context.Context, cfg Config) (Info, error)
	Stop(ctx context.Context) error
	Status() (Status, error)
	Peers() ([]PeerInfo, error)
	SendGossip(ctx context.Context, topic, payload string) error
	StoreData(ctx context.Context, dbName, key string, value []byte) error
	GetData(ctx context.Context, dbName, key string) ([]byte, error)
}

// Detached is the Controller used when no embedded node is attached to this
// process: every operation reports the node as not running.
type Detached struct{}

func (Detached) Start(context.Context, Config) (Info, error) {
	return Info{}, errors.New("no embedded node attached to this process")
}

func (Detached) Stop(context.Context) error { return ErrNodeNotRunning }

func (Detached) Status() (Status, error) {
	return Status{IsRunning: false}, nil
}

func (Detached) Peers() ([]PeerInfo, error) { return nil, ErrNodeNotRunning }

func (Detached) SendGossip(context.Context, string, string) error { return ErrNodeNotRunning }

func (Detached) StoreData(context.Context, string, string, []byte) error { return ErrNodeNotRunning }

func (Detached) GetData(context.Context, string, string) ([]byte, error) {
	return nil, ErrNodeNotRunning
}
