// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package models defines the data structures that map to database tables
// and provides the core types used throughout the application.
package models

import (
	"time"

	"github.com/google/uuid"
)

// Account represents a studio account with authentication, 2FA, and
// credit-metering fields. Credits is the persisted ledger balance; the
// in-memory ledger in internal/credits is loaded from and saved back to
// this field at session boundaries.
type Account struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Never serialize the hash
	DisplayName  string    `json:"display_name"`
	Credits      int       `json:"credits"`
	Privileged   bool      `json:"privileged"`
	TOTPSecret   *string   `json:"-"` // Nullable; set during 2FA setup
	TOTPEnabled  bool      `json:"totp_enabled"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Unlimited returns true if the account is exempt from credit metering.
// Privileged accounts display an "unlimited" indicator instead of a balance.
func (a *Account) Unlimited() bool {
	return a.Privileged
}
