package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"github.com/ramrk/banking-app/internal/errors"
	"github.com/ramrk/banking-app/internal/models"
)

type AccountRepository interface {
	Insert(ctx context.Context, account *models.Account) error
	FindByID(ctx context.Context, id int64) (*models.Account, error)
	FindByAccountNumber(ctx context.Context, accountNumber string) (*models.Account, error)
	FindAll(ctx context.Context) ([]*models.Account, error)
	Update(ctx context.Context, account *models.Account) error
	Delete(ctx context.Context, id int64) error
}

type PostgresAccountRepository struct {
	db *sql.DB
}

func NewAccountRepository(db *sql.DB) *PostgresAccountRepository {
	return &PostgresAccountRepository{db: db}
}

// Insert persists a new account and assigns its surrogate id. A duplicate
// account number surfaces as errors.ErrDuplicateAccountNumber so the caller
// can regenerate and retry.
func (r *PostgresAccountRepository) Insert(ctx context.Context, account *models.Account) error {
	query := `INSERT INTO accounts (account_number, owner_name, email, balance, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`

	err := r.db.QueryRowContext(ctx, query,
		account.AccountNumber, account.OwnerName, account.Email,
		account.Balance, account.CreatedAt, account.UpdatedAt,
	).Scan(&account.ID)

	if err != nil {
		if isUniqueViolation(err) {
			return errors.ErrDuplicateAccountNumber
		}
		return fmt.Errorf("failed to insert account: %w", err)
	}
	return nil
}

func (r *PostgresAccountRepository) FindByID(ctx context.Context, id int64) (*models.Account, error) {
	query := `SELECT id, account_number, owner_name, email, balance, created_at, updated_at
		FROM accounts WHERE id = $1`

	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

func (r *PostgresAccountRepository) FindByAccountNumber(ctx context.Context, accountNumber string) (*models.Account, error) {
	query := `SELECT id, account_number, owner_name, email, balance, created_at, updated_at
		FROM accounts WHERE account_number = $1`

	return r.scanOne(r.db.QueryRowContext(ctx, query, accountNumber))
}

func (r *PostgresAccountRepository) FindAll(ctx context.Context) ([]*models.Account, error) {
	query := `SELECT id, account_number, owner_name, email, balance, created_at, updated_at
		FROM accounts ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	defer rows.Close()

	accounts := make([]*models.Account, 0)
	for rows.Next() {
		account := &models.Account{}
		if err := rows.Scan(
			&account.ID, &account.AccountNumber, &account.OwnerName, &account.Email,
			&account.Balance, &account.CreatedAt, &account.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan account row: %w", err)
		}
		accounts = append(accounts, account)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate account rows: %w", err)
	}
	return accounts, nil
}

// Update persists the mutable fields of an existing account. The account
// number and balance columns are deliberately not part of the statement.
func (r *PostgresAccountRepository) Update(ctx context.Context, account *models.Account) error {
	query := `UPDATE accounts SET owner_name = $1, email = $2, updated_at = $3 WHERE id = $4`

	result, err := r.db.ExecContext(ctx, query,
		account.OwnerName, account.Email, account.UpdatedAt, account.ID)
	if err != nil {
		return fmt.Errorf("failed to update account: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected after updating account: %w", err)
	}
	if rowsAffected == 0 {
		return errors.ErrAccountNotFound
	}
	return nil
}

func (r *PostgresAccountRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM accounts WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete account: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected after deleting account: %w", err)
	}
	if rowsAffected == 0 {
		return errors.ErrAccountNotFound
	}
	return nil
}

func (r *PostgresAccountRepository) scanOne(row *sql.Row) (*models.Account, error) {
	account := &models.Account{}
	err := row.Scan(
		&account.ID, &account.AccountNumber, &account.OwnerName, &account.Email,
		&account.Balance, &account.CreatedAt, &account.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to scan account: %w", err)
	}
	return account, nil
}

// isUniqueViolation reports whether err is a Postgres unique constraint
// violation (SQLSTATE 23505).
func isUniqueViolation(err error) bool {
	if pqErr, ok := err.(*pq.Error); ok {
		return pqErr.Code == "23505"
	}
	return false
}
