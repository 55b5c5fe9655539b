// Package store provides database access methods for all application
// entities. Each store struct wraps a *sql.DB and exposes typed query methods.
package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"socialstudio/internal/models"
)

// AccountStore handles all account-related database operations.
type AccountStore struct {
	db *sql.DB
}

// NewAccountStore creates a new AccountStore with the given database connection.
func NewAccountStore(db *sql.DB) *AccountStore {
	return &AccountStore{db: db}
}

const accountColumns = `id, email, password_hash, display_name, credits, privileged, totp_secret, totp_enabled, created_at, updated_at`

func scanAccount(row interface{ Scan(...any) error }) (*models.Account, error) {
	a := &models.Account{}
	err := row.Scan(
		&a.ID, &a.Email, &a.PasswordHash, &a.DisplayName, &a.Credits,
		&a.Privileged, &a.TOTPSecret, &a.TOTPEnabled, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return a, nil
}

// FindByEmail retrieves an account by email address. Returns nil if not found.
func (s *AccountStore) FindByEmail(email string) (*models.Account, error) {
	a, err := scanAccount(s.db.QueryRow(`
		SELECT `+accountColumns+` FROM accounts WHERE email = $1
	`, email))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find account by email: %w", err)
	}
	return a, nil
}

// FindByID retrieves an account by UUID. Returns nil if not found.
func (s *AccountStore) FindByID(id uuid.UUID) (*models.Account, error) {
	a, err := scanAccount(s.db.QueryRow(`
		SELECT `+accountColumns+` FROM accounts WHERE id = $1
	`, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find account by id: %w", err)
	}
	return a, nil
}

// Create inserts a new account with a bcrypt-hashed password. New
// accounts start with the default credit grant from the schema.
func (s *AccountStore) Create(email, password, displayName string) (*models.Account, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	a, err := scanAccount(s.db.QueryRow(`
		INSERT INTO accounts (email, password_hash, display_name)
		VALUES ($1, $2, $3)
		RETURNING `+accountColumns+`
	`, email, string(hash), displayName))
	if err != nil {
		return nil, fmt.Errorf("create account: %w", err)
	}
	return a, nil
}

// CheckPassword verifies a plaintext password against the stored hash.
func (s *AccountStore) CheckPassword(a *models.Account, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(password)) == nil
}

// DebitCredits atomically subtracts a generation's cost from the current
// balance, clamping at zero, and returns the new balance. The decrement
// happens in the database, so parallel debits against the same account
// (runs for different posts) cannot overwrite each other.
func (s *AccountStore) DebitCredits(id uuid.UUID, amount int) (int, error) {
	var balance int
	err := s.db.QueryRow(`
		UPDATE accounts SET credits = GREATEST(0, credits - $1), updated_at = NOW()
		WHERE id = $2
		RETURNING credits
	`, amount, id).Scan(&balance)
	if err != nil {
		return 0, fmt.Errorf("debit credits: %w", err)
	}
	return balance, nil
}

// AddCredits atomically adds purchased credits on top of the current
// balance and returns the new balance.
func (s *AccountStore) AddCredits(id uuid.UUID, amount int) (int, error) {
	var balance int
	err := s.db.QueryRow(`
		UPDATE accounts SET credits = credits + $1, updated_at = NOW()
		WHERE id = $2
		RETURNING credits
	`, amount, id).Scan(&balance)
	if err != nil {
		return 0, fmt.Errorf("add credits: %w", err)
	}
	return balance, nil
}

// SetTOTPSecret saves the TOTP secret for an account (during 2FA setup).
func (s *AccountStore) SetTOTPSecret(id uuid.UUID, secret string) error {
	_, err := s.db.Exec(`
		UPDATE accounts SET totp_secret = $1, updated_at = NOW() WHERE id = $2
	`, secret, id)
	if err != nil {
		return fmt.Errorf("set totp secret: %w", err)
	}
	return nil
}

// EnableTOTP marks 2FA as active once the first code has been verified.
func (s *AccountStore) EnableTOTP(id uuid.UUID) error {
	_, err := s.db.Exec(`
		UPDATE accounts SET totp_enabled = TRUE, updated_at = NOW() WHERE id = $1
	`, id)
	if err != nil {
		return fmt.Errorf("enable totp: %w", err)
	}
	return nil
}

// UpdatePassword replaces the account's password hash.
func (s *AccountStore) UpdatePassword(id uuid.UUID, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	_, err = s.db.Exec(`
		UPDATE accounts SET password_hash = $1, updated_at = NOW() WHERE id = $2
	`, string(hash), id)
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	return nil
}

// Delete removes an account and, via cascade, everything it owns.
func (s *AccountStore) Delete(id uuid.UUID) error {
	_, err := s.db.Exec(`DELETE FROM accounts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete account: %w", err)
	}
	return nil
}
