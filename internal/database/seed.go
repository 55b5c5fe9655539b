package database

import (
	"database/sql"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"
)

// Seed populates the database with initial development data.
// It creates a privileged studio account with a demo brand profile if no
// accounts exist. Privileged accounts bypass credit metering, so the demo
// account can exercise the generation pipeline freely.
func Seed(db *sql.DB) error {
	// Check if any accounts exist already.
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM accounts").Scan(&count); err != nil {
		return fmt.Errorf("seed check accounts: %w", err)
	}

	if count > 0 {
		slog.Info("database already seeded, skipping")
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("studio"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("seed bcrypt: %w", err)
	}

	var accountID string
	err = db.QueryRow(`
		INSERT INTO accounts (email, password_hash, display_name, credits, privileged)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`, "studio@socialstudio.local", string(hash), "Demo Studio", 500, true).Scan(&accountID)
	if err != nil {
		return fmt.Errorf("seed insert account: %w", err)
	}

	_, err = db.Exec(`
		INSERT INTO brand_profiles (account_id, name, industry, target_audience, tone, primary_color)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, accountID, "Demo Brand", "Technology", "General Audience", "professional", "#8C4DFF")
	if err != nil {
		return fmt.Errorf("seed insert profile: %w", err)
	}

	slog.Info("database seeded with demo account",
		"email", "studio@socialstudio.local",
		"password", "studio",
	)

	return nil
}
