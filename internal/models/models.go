package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Account is the persisted bank account entity.
// AccountNumber is the externally visible identifier; ID is the surrogate key
// assigned by the database. Both are immutable once assigned.
type Account struct {
	ID            int64           `json:"id"`
	AccountNumber string          `json:"accountNumber"`
	OwnerName     string          `json:"ownerName"`
	Email         *string         `json:"email"`
	Balance       decimal.Decimal `json:"balance"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     *time.Time      `json:"updatedAt"`
}

type CreateAccountRequest struct {
	OwnerName      string           `json:"ownerName"`
	Email          *string          `json:"email"`
	InitialDeposit *decimal.Decimal `json:"initialDeposit"`
}

type UpdateAccountRequest struct {
	OwnerName string  `json:"ownerName"`
	Email     *string `json:"email"`
}

// AccountResponse is the read-only projection returned to clients. It is
// built fresh from the entity on every read and never persisted.
type AccountResponse struct {
	ID            int64           `json:"id"`
	AccountNumber string          `json:"accountNumber"`
	OwnerName     string          `json:"ownerName"`
	Email         *string         `json:"email"`
	Balance       decimal.Decimal `json:"balance"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     *time.Time      `json:"updatedAt"`
}

// NewAccountResponse projects an account entity into its response form.
func NewAccountResponse(a *Account) AccountResponse {
	return AccountResponse{
		ID:            a.ID,
		AccountNumber: a.AccountNumber,
		OwnerName:     a.OwnerName,
		Email:         a.Email,
		Balance:       a.Balance,
		CreatedAt:     a.CreatedAt,
		UpdatedAt:     a.UpdatedAt,
	}
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// ValidationErrorResponse maps each offending field to its message.
type ValidationErrorResponse struct {
	Errors map[string]string `json:"errors"`
}
