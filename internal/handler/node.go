package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/cyberfly-io/node-wallet/internal/auth"
	"github.com/cyberfly-io/node-wallet/internal/client"
	"github.com/cyberfly-io/node-wallet/internal/config"
	"github.com/cyberfly-io/node-wallet/internal/model"
	"github.com/cyberfly-io/node-wallet/internal/node"
	"github.com/cyberfly-io/node-wallet/kadena"

	"go.uber.org/zap"
)

// NodeHandler holds configuration for node registry and P2P operations
type NodeHandler struct {
	filePath string
	ctrl     node.Controller
	gate     auth.Gate
	log      *zap.Logger
}

// NewNodeHandler creates a new NodeHandler with config values
func NewNodeHandler(ctrl node.Controller, gate auth.Gate, log *zap.Logger) (*NodeHandler, error) {
	filePath := config.GetWalletFilePath()
	if filePath == "" {
		return nil, errors.New("WALLET_FILE_PATH not set")
	}
	if ctrl == nil {
		ctrl = node.Detached{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &NodeHandler{filePath: filePath, ctrl: ctrl, gate: gate, log: log}, nil
}

// writeLedgerError maps ledger-facing failures to HTTP statuses
func writeLedgerError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, kadena.ErrIdentityMissing):
		writeError(w, http.StatusNotFound, err)
	case client.IsRowNotFound(err):
		writeError(w, http.StatusNotFound, err)
	case errors.Is(err, client.ErrPollTimeout):
		writeError(w, http.StatusGatewayTimeout, err)
	default:
		writeError(w, http.StatusInternalServerError, err)
	}
}

// Register handles POST /node/register
// @Summary      Register node on the ledger
// @Description  Creates or re-activates the node registry row. Idempotent: an already active node is left untouched.
// @Tags         node
// @Accept       json
// @Produce      json
// @Param        request  body      model.RegisterRequest  true  "Node identity"
// @Success      200      {object}  model.RegisterResult
// @Failure      400      {object}  model.ErrorResponse
// @Router       /node/register [post]
func (h *NodeHandler) Register(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed. Should be POST", http.StatusMethodNotAllowed)
		return
	}

	var req model.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if req.PeerID == "" || req.Multiaddr == "" {
		writeError(w, http.StatusBadRequest, errors.New("peerId and multiaddr are required"))
		return
	}

	passwordBytes, err := config.GetWalletPasswordBytes()
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	defer clear(passwordBytes) // Always clear password from memory

	result, err := kadena.EnsureRegistered(r.Context(), h.filePath, passwordBytes, req.PeerID, req.Multiaddr)
	if err != nil {
		writeLedgerError(w, err)
		return
	}

	h.log.Info("node registration ensured",
		zap.String("peerId", req.PeerID),
		zap.String("action", string(result.Action)))
	writeJSON(w, http.StatusOK, result)
}

// GetNode handles GET /node/info
// @Summary      Get node registry row
// @Description  Queries the on-ledger registry row for a peer id
// @Tags         node
// @Produce      json
// @Param        peerId  query     string  true  "Peer ID"
// @Success      200     {object}  model.NodeView
// @Failure      404     {object}  model.ErrorResponse
// @Router       /node/info [get]
func (h *NodeHandler) GetNode(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed. Should be GET", http.StatusMethodNotAllowed)
		return
	}

	peerID := r.URL.Query().Get("peerId")
	if peerID == "" {
		writeError(w, http.StatusBadRequest, errors.New("peerId query parameter is required"))
		return
	}

	view, err := kadena.GetNodeView(r.Context(), peerID)
	if err != nil {
		writeLedgerError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// Stake handles POST /node/stake
// @Summary      Stake for node
// @Description  Locks the stake amount against the node registration
// @Tags         node
// @Accept       json
// @Produce      json
// @Param        request  body      model.NodeOpRequest  true  "Node peer id"
// @Success      200      {object}  model.TxResponse
// @Router       /node/stake [post]
func (h *NodeHandler) Stake(w http.ResponseWriter, r *http.Request) {
	h.nodeMutation(w, r, "stake", kadena.Stake)
}

// Unstake handles POST /node/unstake
// @Summary      Unstake node
// @Description  Releases the staked amount back to the wallet account
// @Tags         node
// @Accept       json
// @Produce      json
// @Param        request  body      model.NodeOpRequest  true  "Node peer id"
// @Success      200      {object}  model.TxResponse
// @Router       /node/unstake [post]
func (h *NodeHandler) Unstake(w http.ResponseWriter, r *http.Request) {
	h.nodeMutation(w, r, "unstake", kadena.Unstake)
}

// nodeMutation is the shared request flow of stake and unstake
func (h *NodeHandler) nodeMutation(w http.ResponseWriter, r *http.Request, op string,
	run func(ctx context.Context, filePath string, password []byte, peerID string) (*model.TxResponse, error)) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed. Should be POST", http.StatusMethodNotAllowed)
		return
	}

	var req model.NodeOpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if req.PeerID == "" {
		writeError(w, http.StatusBadRequest, errors.New("peerId is required"))
		return
	}

	if err := h.gate.Authorize(op + " node " + req.PeerID); err != nil {
		writeError(w, http.StatusForbidden, err)
		return
	}

	passwordBytes, err := config.GetWalletPasswordBytes()
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	defer clear(passwordBytes) // Always clear password from memory

	resp, err := run(r.Context(), h.filePath, passwordBytes, req.PeerID)
	if err != nil {
		writeLedgerError(w, err)
		return
	}

	h.log.Info("node mutation processed",
		zap.String("op", op),
		zap.String("peerId", req.PeerID),
		zap.String("requestKey", resp.RequestKey))
	writeJSON(w, http.StatusOK, resp)
}

// GetStake handles GET /node/stake-info
// @Summary      Get staking row
// @Description  Queries the on-ledger staking row for a peer id
// @Tags         node
// @Produce      json
// @Param        peerId  query     string  true  "Peer ID"
// @Success      200     {object}  model.StakeView
// @Failure      404     {object}  model.ErrorResponse
// @Router       /node/stake-info [get]
func (h *NodeHandler) GetStake(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed. Should be GET", http.StatusMethodNotAllowed)
		return
	}

	peerID := r.URL.Query().Get("peerId")
	if peerID == "" {
		writeError(w, http.StatusBadRequest, errors.New("peerId query parameter is required"))
		return
	}

	view, err := kadena.GetStakeView(r.Context(), peerID)
	if err != nil {
		writeLedgerError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// GetReward handles GET /node/reward
// @Summary      Get claimable reward
// @Description  Computes the claimable node reward on the ledger
// @Tags         node
// @Produce      json
// @Param        peerId  query     string  true  "Peer ID"
// @Success      200     {object}  model.RewardView
// @Router       /node/reward [get]
func (h *NodeHandler) GetReward(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed. Should be GET", http.StatusMethodNotAllowed)
		return
	}

	peerID := r.URL.Query().Get("peerId")
	if peerID == "" {
		writeError(w, http.StatusBadRequest, errors.New("peerId query parameter is required"))
		return
	}

	view, err := kadena.GetRewardView(r.Context(), peerID)
	if err != nil {
		writeLedgerError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// ClaimReward handles POST /node/claim-reward
// @Summary      Claim node reward
// @Description  Claims the accumulated reward. No mutation is issued when nothing is claimable.
// @Tags         node
// @Accept       json
// @Produce      json
// @Param        request  body      model.NodeOpRequest  true  "Node peer id"
// @Success      200      {object}  model.ClaimResult
// @Router       /node/claim-reward [post]
func (h *NodeHandler) ClaimReward(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed. Should be POST", http.StatusMethodNotAllowed)
		return
	}

	var req model.NodeOpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if req.PeerID == "" {
		writeError(w, http.StatusBadRequest, errors.New("peerId is required"))
		return
	}

	if err := h.gate.Authorize("claim reward for node " + req.PeerID); err != nil {
		writeError(w, http.StatusForbidden, err)
		return
	}

	passwordBytes, err := config.GetWalletPasswordBytes()
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	defer clear(passwordBytes) // Always clear password from memory

	result, err := kadena.ClaimReward(r.Context(), h.filePath, passwordBytes, req.PeerID)
	if err != nil {
		writeLedgerError(w, err)
		return
	}

	h.log.Info("claim reward processed",
		zap.String("peerId", req.PeerID),
		zap.Bool("claimed", result.Claimed))
	writeJSON(w, http.StatusOK, result)
}

// P2PStatus handles GET /p2p/status
// @Summary      Get P2P node status
// @Description  Returns a point-in-time snapshot of the attached P2P node
// @Tags         p2p
// @Produce      json
// @Success      200  {object}  node.Status
// @Router       /p2p/status [get]
func (h *NodeHandler) P2PStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed. Should be GET", http.StatusMethodNotAllowed)
		return
	}

	status, err := h.ctrl.Status()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, status)
}

// P2PPeers handles GET /p2p/peers
// @Summary      List discovered peers
// @Description  Returns the peers discovered by the attached P2P node
// @Tags         p2p
// @Produce      json
// @Success      200  {array}   node.PeerInfo
// @Failure      503  {object}  model.ErrorResponse
// @Router       /p2p/peers [get]
func (h *NodeHandler) P2PPeers(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed. Should be GET", http.StatusMethodNotAllowed)
		return
	}

	peers, err := h.ctrl.Peers()
	if err != nil {
		if errors.Is(err, node.ErrNodeNotRunning) {
			writeError(w, http.StatusServiceUnavailable, err)
			return
		}
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, peers)
}

// P2PStore handles POST /p2p/store
// @Summary      Store a value on the P2P node
// @Description  Writes a key/value pair into a named database on the attached P2P node
// @Tags         p2p
// @Accept       json
// @Produce      json
// @Success      200  {object}  map[string]bool
// @Failure      503  {object}  model.ErrorResponse
// @Router       /p2p/store [post]
func (h *NodeHandler) P2PStore(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed. Should be POST", http.StatusMethodNotAllowed)
		return
	}

	var req struct {
		DBName string `json:"dbName"`
		Key    string `json:"key"`
		Value  string `json:"value"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if req.DBName == "" || req.Key == "" {
		writeError(w, http.StatusBadRequest, errors.New("dbName and key are required"))
		return
	}

	if err := h.ctrl.StoreData(r.Context(), req.DBName, req.Key, []byte(req.Value)); err != nil {
		if errors.Is(err, node.ErrNodeNotRunning) {
			writeError(w, http.StatusServiceUnavailable, err)
			return
		}
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"stored": true})
}

// P2PGet handles GET /p2p/get
// @Summary      Read a value from the P2P node
// @Description  Reads a key from a named database on the attached P2P node
// @Tags         p2p
// @Produce      json
// @Param        dbName  query  string  true  "Database name"
// @Param        key     query  string  true  "Key"
// @Success      200  {object}  map[string]string
// @Failure      503  {object}  model.ErrorResponse
// @Router       /p2p/get [get]
func (h *NodeHandler) P2PGet(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed. Should be GET", http.StatusMethodNotAllowed)
		return
	}

	dbName := r.URL.Query().Get("dbName")
	key := r.URL.Query().Get("key")
	if dbName == "" || key == "" {
		writeError(w, http.StatusBadRequest, errors.New("dbName and key query parameters are required"))
		return
	}

	value, err := h.ctrl.GetData(r.Context(), dbName, key)
	if err != nil {
		if errors.Is(err, node.ErrNodeNotRunning) {
			writeError(w, http.StatusServiceUnavailable, err)
			return
		}
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"key": key, "value": string(value)})
}

// P2PGossip handles POST /p2p/gossip
// @Summary      Publish a gossip message
// @Description  Publishes a message on a gossip topic through the attached P2P node
// @Tags         p2p
// @Accept       json
// @Produce      json
// @Success      200  {object}  map[string]bool
// @Failure      503  {object}  model.ErrorResponse
// @Router       /p2p/gossip [post]
func (h *NodeHandler) P2PGossip(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed. Should be POST", http.StatusMethodNotAllowed)
		return
	}

	var req struct {
		Topic   string `json:"topic"`
		Payload string `json:"payload"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if req.Topic == "" {
		writeError(w, http.StatusBadRequest, errors.New("topic is required"))
		return
	}

	if err := h.ctrl.SendGossip(r.Context(), req.Topic, req.Payload); err != nil {
		if errors.Is(err, node.ErrNodeNotRunning) {
			writeError(w, http.StatusServiceUnavailable, err)
			return
		}
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"published": true})
}
