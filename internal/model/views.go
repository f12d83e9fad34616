package model

// NodeView is the registry row for a node, rebuilt from every query.
type NodeView struct {
	PeerID    string `json:"peer_id"`
	Multiaddr string `json:"multiaddr"`
	Status    string `json:"status"` // "active" or "inactive"
	Account   string `json:"account"`
}

// Active reports whether the registry row is marked active.
func (v *NodeView) Active() bool {
	return v.Status == "active"
}

// StakeView is the staking row for a node.
type StakeView struct {
	Account string `json:"account"`
	PeerID  string `json:"peer_id"`
	Amount  string `json:"amount"` // decimal string, raw ledger precision
	Active  bool   `json:"active"`
}

// RewardView is the claimable reward amount computed by the ledger.
type RewardView struct {
	PeerID    string `json:"peerId"`
	Claimable string `json:"claimable"` // decimal string
}
