package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/cyberfly-io/node-wallet/internal/auth"
	"github.com/cyberfly-io/node-wallet/internal/config"
	"github.com/cyberfly-io/node-wallet/internal/model"
	"github.com/cyberfly-io/node-wallet/kadena"

	"go.uber.org/zap"
)

// WalletHandler holds configuration for wallet operations
type WalletHandler struct {
	filePath string
	gate     auth.Gate
	log      *zap.Logger
}

// NewWalletHandler creates a new WalletHandler with config values
func NewWalletHandler(gate auth.Gate, log *zap.Logger) (*WalletHandler, error) {
	filePath := config.GetWalletFilePath()
	if filePath == "" {
		return nil, errors.New("WALLET_FILE_PATH not set")
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &WalletHandler{filePath: filePath, gate: gate, log: log}, nil
}

// writeJSON writes a JSON response with the given status code
func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// writeError writes a consistent JSON error envelope
func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, model.ErrorResponse{Error: err.Error()})
}

// Generate handles POST /wallet/generate
// @Summary      Generate new wallet
// @Description  Generates a new recovery phrase, derives the account and saves it encrypted to a .kwt file. The phrase is returned exactly once.
// @Tags         wallet
// @Accept       json
// @Produce      json
// @Success      200  {object}  model.GenerateResponse
// @Failure      409  {object}  model.ErrorResponse
// @Router       /wallet/generate [post]
func (h *WalletHandler) Generate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed. Should be POST", http.StatusMethodNotAllowed)
		return
	}

	// Get password as []byte, use it, then zero it immediately
	passwordBytes, err := config.GetWalletPasswordBytes()
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	defer clear(passwordBytes) // Always clear password from memory

	account, mnemonic, err := kadena.GenerateWallet(h.filePath, passwordBytes)
	if err != nil {
		if kadena.IsFileExistsError(err) {
			writeError(w, http.StatusConflict, err)
			return
		}
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	h.log.Info("wallet generated", zap.String("account", account))
	writeJSON(w, http.StatusOK, model.GenerateResponse{
		Success:  true,
		Message:  "Wallet generated successfully. Save the recovery phrase: it is shown only once.",
		Account:  account,
		Mnemonic: mnemonic,
	})
}

// Restore handles POST /wallet/restore
// @Summary      Restore wallet from recovery phrase
// @Description  Derives the account from an existing recovery phrase and saves it encrypted to a .kwt file
// @Tags         wallet
// @Accept       json
// @Produce      json
// @Param        request  body      model.RestoreRequest  true  "Recovery phrase"
// @Success      200      {object}  model.GenerateResponse
// @Failure      400      {object}  model.ErrorResponse
// @Failure      409      {object}  model.ErrorResponse
// @Router       /wallet/restore [post]
func (h *WalletHandler) Restore(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed. Should be POST", http.StatusMethodNotAllowed)
		return
	}

	var req model.RestoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if strings.TrimSpace(req.Phrase) == "" {
		writeError(w, http.StatusBadRequest, errors.New("phrase is required"))
		return
	}

	passwordBytes, err := config.GetWalletPasswordBytes()
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	defer clear(passwordBytes) // Always clear password from memory

	account, err := kadena.RestoreWallet(h.filePath, passwordBytes, req.Phrase)
	if err != nil {
		if kadena.IsFileExistsError(err) {
			writeError(w, http.StatusConflict, err)
			return
		}
		writeError(w, http.StatusBadRequest, err)
		return
	}

	h.log.Info("wallet restored", zap.String("account", account))
	writeJSON(w, http.StatusOK, model.GenerateResponse{
		Success: true,
		Message: "Wallet restored successfully",
		Account: account,
	})
}

// GetBalance handles GET /wallet/balance
// @Summary      Get wallet balance (USD = KDA * rate)
// @Description  Gets the on-ledger KDA balance with the KDA/USD rate
// @Tags         wallet
// @Produce      json
// @Success      200  {object}  model.BalanceResponse
// @Router       /wallet/balance [get]
func (h *WalletHandler) GetBalance(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed. Should be GET", http.StatusMethodNotAllowed)
		return
	}

	balance, err := kadena.GetBalance(r.Context(), h.filePath)
	if err != nil {
		if errors.Is(err, kadena.ErrIdentityMissing) {
			writeError(w, http.StatusNotFound, err)
			return
		}
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	writeJSON(w, http.StatusOK, balance)
}

// Transfer handles POST /wallet/transfer
// @Summary      Send KDA
// @Description  Transfers KDA from the wallet account to the specified account
// @Tags         wallet
// @Accept       json
// @Produce      json
// @Param        request  body      model.TransferRequest  true  "Transfer data"
// @Success      200      {object}  model.TxResponse
// @Failure      400      {object}  model.ErrorResponse
// @Router       /wallet/transfer [post]
func (h *WalletHandler) Transfer(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed. Should be POST", http.StatusMethodNotAllowed)
		return
	}

	var req model.TransferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	if err := h.gate.Authorize("transfer " + req.Amount + " KDA to " + req.ToAccount); err != nil {
		writeError(w, http.StatusForbidden, err)
		return
	}

	passwordBytes, err := config.GetWalletPasswordBytes()
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	defer clear(passwordBytes) // Always clear password from memory

	resp, err := kadena.Transfer(r.Context(), h.filePath, passwordBytes, req.ToAccount, req.Amount)
	if err != nil {
		if errors.Is(err, kadena.ErrIdentityMissing) {
			writeError(w, http.StatusNotFound, err)
			return
		}
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	h.log.Info("transfer submitted", zap.String("requestKey", resp.RequestKey))
	writeJSON(w, http.StatusOK, resp)
}
