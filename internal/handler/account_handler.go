package handler

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/ramrk/banking-app/internal/errors"
	"github.com/ramrk/banking-app/internal/models"
	"github.com/ramrk/banking-app/internal/service"
	u "github.com/ramrk/banking-app/internal/utils"
)

type AccountHandler struct {
	accountService service.AccountService
	logger         *slog.Logger
}

func NewAccountHandler(accountService service.AccountService, logger *slog.Logger) *AccountHandler {
	return &AccountHandler{
		accountService: accountService,
		logger:         logger,
	}
}

func (h *AccountHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/accounts", h.CreateAccount).Methods(http.MethodPost)
	router.HandleFunc("/api/accounts", h.ListAccounts).Methods(http.MethodGet)
	router.HandleFunc("/api/accounts/number/{accountNumber}", h.GetAccountByNumber).Methods(http.MethodGet)
	router.HandleFunc("/api/accounts/{id}", h.GetAccount).Methods(http.MethodGet)
	router.HandleFunc("/api/accounts/{id}", h.UpdateAccount).Methods(http.MethodPut)
	router.HandleFunc("/api/accounts/{id}", h.DeleteAccount).Methods(http.MethodDelete)
}

func (h *AccountHandler) CreateAccount(w http.ResponseWriter, r *http.Request) {
	var req models.CreateAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("invalid create account payload", "error", err.Error())
		u.WriteError(w, http.StatusBadRequest, "invalid request payload", err.Error())
		return
	}

	account, err := h.accountService.Create(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, err, "create account")
		return
	}

	w.Header().Set("Location", fmt.Sprintf("/api/accounts/%d", account.ID))
	u.WriteJSON(w, http.StatusCreated, account)
}

func (h *AccountHandler) GetAccount(w http.ResponseWriter, r *http.Request) {
	id, ok := h.accountID(w, r)
	if !ok {
		return
	}

	account, err := h.accountService.GetByID(r.Context(), id)
	if err != nil {
		h.handleServiceError(w, err, "get account")
		return
	}

	u.WriteJSON(w, http.StatusOK, account)
}

func (h *AccountHandler) GetAccountByNumber(w http.ResponseWriter, r *http.Request) {
	accountNumber := mux.Vars(r)["accountNumber"]
	if accountNumber == "" {
		u.WriteError(w, http.StatusBadRequest, "account number is required", "")
		return
	}

	account, err := h.accountService.GetByAccountNumber(r.Context(), accountNumber)
	if err != nil {
		h.handleServiceError(w, err, "get account by number")
		return
	}

	u.WriteJSON(w, http.StatusOK, account)
}

func (h *AccountHandler) ListAccounts(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.accountService.GetAll(r.Context())
	if err != nil {
		h.handleServiceError(w, err, "list accounts")
		return
	}

	u.WriteJSON(w, http.StatusOK, accounts)
}

func (h *AccountHandler) UpdateAccount(w http.ResponseWriter, r *http.Request) {
	id, ok := h.accountID(w, r)
	if !ok {
		return
	}

	var req models.UpdateAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("invalid update account payload", "error", err.Error())
		u.WriteError(w, http.StatusBadRequest, "invalid request payload", err.Error())
		return
	}

	account, err := h.accountService.Update(r.Context(), id, &req)
	if err != nil {
		h.handleServiceError(w, err, "update account")
		return
	}

	u.WriteJSON(w, http.StatusOK, account)
}

func (h *AccountHandler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	id, ok := h.accountID(w, r)
	if !ok {
		return
	}

	if err := h.accountService.Delete(r.Context(), id); err != nil {
		h.handleServiceError(w, err, "delete account")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// accountID parses the numeric id path variable, writing a 400 on failure.
func (h *AccountHandler) accountID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := mux.Vars(r)["id"]
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		u.WriteError(w, http.StatusBadRequest, "invalid account ID", "id must be a number")
		return 0, false
	}
	return id, true
}

// handleServiceError maps a typed service failure to exactly one response.
// Anything unrecognized is logged in full server-side and rendered as an
// opaque internal error.
func (h *AccountHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
	switch {
	case errors.IsNotFound(err):
		u.WriteError(w, http.StatusNotFound, "account not found", "")
	case errors.IsValidationError(err):
		verr, _ := errors.AsValidationError(err)
		u.WriteValidationErrors(w, verr.Fields)
	default:
		h.logger.Error("internal server error during "+operation, "error", err.Error())
		u.WriteError(w, http.StatusInternalServerError, "internal server error", "")
	}
}
