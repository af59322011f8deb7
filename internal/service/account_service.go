package service

import (
	"context"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ramrk/banking-app/internal/errors"
	"github.com/ramrk/banking-app/internal/models"
	"github.com/ramrk/banking-app/internal/repository"
)

// maxInsertAttempts bounds how many times a create retries with a fresh
// account number after the database rejects a duplicate.
const maxInsertAttempts = 3

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// NumberGenerator produces externally visible account numbers.
type NumberGenerator interface {
	Generate() string
}

type AccountService interface {
	Create(ctx context.Context, req *models.CreateAccountRequest) (*models.AccountResponse, error)
	GetByID(ctx context.Context, id int64) (*models.AccountResponse, error)
	GetByAccountNumber(ctx context.Context, accountNumber string) (*models.AccountResponse, error)
	GetAll(ctx context.Context) ([]models.AccountResponse, error)
	Update(ctx context.Context, id int64, req *models.UpdateAccountRequest) (*models.AccountResponse, error)
	Delete(ctx context.Context, id int64) error
}

type AccountServiceImpl struct {
	accountRepo repository.AccountRepository
	numberGen   NumberGenerator
	logger      *slog.Logger
	now         func() time.Time
}

func NewAccountService(accountRepo repository.AccountRepository, numberGen NumberGenerator, logger *slog.Logger) *AccountServiceImpl {
	return &AccountServiceImpl{
		accountRepo: accountRepo,
		numberGen:   numberGen,
		logger:      logger,
		now:         time.Now,
	}
}

// Create validates the request, assigns a fresh account number and the
// creation timestamp, and persists the account. The initial deposit is
// optional; a missing deposit means a zero balance, not a validation error.
// A duplicate account number from the store is retried with a new number a
// bounded number of times before escalating.
func (s *AccountServiceImpl) Create(ctx context.Context, req *models.CreateAccountRequest) (*models.AccountResponse, error) {
	if err := validateFields(req.OwnerName, req.Email); err != nil {
		s.logger.Warn("invalid create account request",
			"owner_name", req.OwnerName,
			"error", err.Error(),
		)
		return nil, err
	}

	balance := decimal.Zero
	if req.InitialDeposit != nil {
		balance = *req.InitialDeposit
	}

	for attempt := 1; attempt <= maxInsertAttempts; attempt++ {
		account := &models.Account{
			AccountNumber: s.numberGen.Generate(),
			OwnerName:     req.OwnerName,
			Email:         normalizeEmail(req.Email),
			Balance:       balance,
			CreatedAt:     s.now().UTC(),
		}

		err := s.accountRepo.Insert(ctx, account)
		if err == nil {
			s.logger.Info("account created successfully",
				"account_id", account.ID,
				"account_number", account.AccountNumber,
			)
			resp := models.NewAccountResponse(account)
			return &resp, nil
		}

		if errors.IsDuplicateAccountNumber(err) {
			s.logger.Warn("account number collision, retrying",
				"account_number", account.AccountNumber,
				"attempt", attempt,
			)
			continue
		}

		s.logger.Error("failed to create account",
			"owner_name", req.OwnerName,
			"error", err.Error(),
		)
		return nil, err
	}

	s.logger.Error("exhausted account number generation attempts",
		"attempts", maxInsertAttempts,
	)
	return nil, errors.ErrAccountNumberExhausted
}

func (s *AccountServiceImpl) GetByID(ctx context.Context, id int64) (*models.AccountResponse, error) {
	account, err := s.accountRepo.FindByID(ctx, id)
	if err != nil {
		if errors.IsNotFound(err) {
			s.logger.Warn("account not found", "account_id", id)
			return nil, err
		}
		s.logger.Error("failed to get account", "account_id", id, "error", err.Error())
		return nil, err
	}

	resp := models.NewAccountResponse(account)
	return &resp, nil
}

func (s *AccountServiceImpl) GetByAccountNumber(ctx context.Context, accountNumber string) (*models.AccountResponse, error) {
	account, err := s.accountRepo.FindByAccountNumber(ctx, accountNumber)
	if err != nil {
		if errors.IsNotFound(err) {
			s.logger.Warn("account not found", "account_number", accountNumber)
			return nil, err
		}
		s.logger.Error("failed to get account",
			"account_number", accountNumber,
			"error", err.Error(),
		)
		return nil, err
	}

	resp := models.NewAccountResponse(account)
	return &resp, nil
}

func (s *AccountServiceImpl) GetAll(ctx context.Context) ([]models.AccountResponse, error) {
	accounts, err := s.accountRepo.FindAll(ctx)
	if err != nil {
		s.logger.Error("failed to list accounts", "error", err.Error())
		return nil, err
	}

	responses := make([]models.AccountResponse, 0, len(accounts))
	for _, account := range accounts {
		responses = append(responses, models.NewAccountResponse(account))
	}
	return responses, nil
}

// Update applies new owner details to an existing account and stamps
// updatedAt. The account number and balance are never touched here.
func (s *AccountServiceImpl) Update(ctx context.Context, id int64, req *models.UpdateAccountRequest) (*models.AccountResponse, error) {
	account, err := s.accountRepo.FindByID(ctx, id)
	if err != nil {
		if errors.IsNotFound(err) {
			s.logger.Warn("account not found", "account_id", id)
			return nil, err
		}
		s.logger.Error("failed to load account for update",
			"account_id", id,
			"error", err.Error(),
		)
		return nil, err
	}

	if err := validateFields(req.OwnerName, req.Email); err != nil {
		s.logger.Warn("invalid update account request",
			"account_id", id,
			"error", err.Error(),
		)
		return nil, err
	}

	now := s.now().UTC()
	account.OwnerName = req.OwnerName
	account.Email = normalizeEmail(req.Email)
	account.UpdatedAt = &now

	if err := s.accountRepo.Update(ctx, account); err != nil {
		if errors.IsNotFound(err) {
			s.logger.Warn("account disappeared before update", "account_id", id)
			return nil, err
		}
		s.logger.Error("failed to update account",
			"account_id", id,
			"error", err.Error(),
		)
		return nil, err
	}

	s.logger.Info("account updated successfully", "account_id", id)
	resp := models.NewAccountResponse(account)
	return &resp, nil
}

func (s *AccountServiceImpl) Delete(ctx context.Context, id int64) error {
	if _, err := s.accountRepo.FindByID(ctx, id); err != nil {
		if errors.IsNotFound(err) {
			s.logger.Warn("account not found", "account_id", id)
			return err
		}
		s.logger.Error("failed to load account for delete",
			"account_id", id,
			"error", err.Error(),
		)
		return err
	}

	if err := s.accountRepo.Delete(ctx, id); err != nil {
		if !errors.IsNotFound(err) {
			s.logger.Error("failed to delete account",
				"account_id", id,
				"error", err.Error(),
			)
		}
		return err
	}

	s.logger.Info("account deleted successfully", "account_id", id)
	return nil
}

// validateFields checks the two caller-supplied mutable fields. All checks
// run before any store mutation; a failure carries one message per field.
func validateFields(ownerName string, email *string) error {
	verr := errors.NewValidationError()

	if strings.TrimSpace(ownerName) == "" {
		verr.Add("ownerName", "must not be blank")
	}
	if email != nil && *email != "" && !emailRegex.MatchString(*email) {
		verr.Add("email", "must be a valid email address")
	}

	if verr.HasErrors() {
		return verr
	}
	return nil
}

// normalizeEmail maps an absent or empty email to nil so the store records
// NULL rather than an empty string.
func normalizeEmail(email *string) *string {
	if email == nil || *email == "" {
		return nil
	}
	return email
}
