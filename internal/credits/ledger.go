// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package credits implements the generation credit ledger. One Ledger is
// loaded per authenticated account from its persisted balance; every
// mutation goes through Debit/Credit so the two invariants — the balance
// never goes negative, and privileged accounts never change — are
// enforced in exactly one place. The handler layer persists debits
// through the account store's atomic decrement, never by writing back a
// locally computed balance, so parallel requests cannot lose a debit.
package credits

import (
	"errors"
	"sync"
)

// Generation costs in credits.
const (
	CostImage          = 5
	CostVideo          = 25
	CostWeeklyStrategy = 50
)

// ErrInsufficientCredits is returned when an operation's cost exceeds the
// current balance. The check happens before the pipeline runs, so a
// rejected request never reaches the renderer.
var ErrInsufficientCredits = errors.New("credits: insufficient balance")

// Ledger is a non-negative credit counter scoped to one account.
// Safe for concurrent use: debits from parallel generation sessions
// serialize on the internal mutex.
type Ledger struct {
	mu        sync.Mutex
	balance   int
	unlimited bool
}

// NewLedger creates a ledger with the given starting balance. A negative
// starting balance is clamped to zero. unlimited disables metering
// entirely (privileged accounts).
func NewLedger(balance int, unlimited bool) *Ledger {
	if balance < 0 {
		balance = 0
	}
	return &Ledger{balance: balance, unlimited: unlimited}
}

// Balance returns the current balance. Meaningless for unlimited ledgers,
// which display an unlimited indicator instead.
func (l *Ledger) Balance() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.balance
}

// Unlimited reports whether this ledger bypasses metering.
func (l *Ledger) Unlimited() bool {
	return l.unlimited
}

// CanAfford reports whether a debit of amount would be covered.
// Always true for unlimited ledgers.
func (l *Ledger) CanAfford(amount int) bool {
	if l.unlimited {
		return true
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.balance >= amount
}

// Debit subtracts amount from the balance, clamping at zero. A no-op for
// unlimited ledgers. Returns the resulting balance.
func (l *Ledger) Debit(amount int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.unlimited {
		return l.balance
	}
	l.balance -= amount
	if l.balance < 0 {
		l.balance = 0
	}
	return l.balance
}

// Credit adds amount to the balance. Invoked only by the payment
// collaborator on purchase completion. Returns the resulting balance.
func (l *Ledger) Credit(amount int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.unlimited {
		return l.balance
	}
	if amount > 0 {
		l.balance += amount
	}
	return l.balance
}
