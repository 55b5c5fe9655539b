// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"sync"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestAccountCreateAndFind(t *testing.T) {
	db := testDB(t)
	s := NewAccountStore(db)
	email := "account-test@socialstudio.test"
	cleanAccounts(t, db, email)
	t.Cleanup(func() { cleanAccounts(t, db, email) })

	a, err := s.Create(email, "secret123", "Test Studio")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if a.Credits != 500 {
		t.Errorf("default credits = %d, want 500", a.Credits)
	}
	if a.Privileged {
		t.Error("new accounts must not be privileged")
	}
	if bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte("secret123")) != nil {
		t.Error("password hash does not verify")
	}

	found, err := s.FindByEmail(email)
	if err != nil {
		t.Fatalf("FindByEmail: %v", err)
	}
	if found == nil || found.ID != a.ID {
		t.Fatalf("FindByEmail returned %+v", found)
	}

	byID, err := s.FindByID(a.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if byID == nil || byID.Email != email {
		t.Fatalf("FindByID returned %+v", byID)
	}
}

func TestAccountFindMissing(t *testing.T) {
	db := testDB(t)
	s := NewAccountStore(db)

	a, err := s.FindByEmail("nobody@socialstudio.test")
	if err != nil {
		t.Fatalf("FindByEmail: %v", err)
	}
	if a != nil {
		t.Errorf("expected nil for missing account, got %+v", a)
	}
}

func TestAccountCredits(t *testing.T) {
	db := testDB(t)
	s := NewAccountStore(db)
	email := "credits-test@socialstudio.test"
	cleanAccounts(t, db, email)
	t.Cleanup(func() { cleanAccounts(t, db, email) })

	a, err := s.Create(email, "secret123", "Credits")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	balance, err := s.DebitCredits(a.ID, 5)
	if err != nil {
		t.Fatalf("DebitCredits: %v", err)
	}
	if balance != 495 {
		t.Errorf("balance = %d, want 495", balance)
	}

	balance, err = s.AddCredits(a.ID, 100)
	if err != nil {
		t.Fatalf("AddCredits: %v", err)
	}
	if balance != 595 {
		t.Errorf("balance = %d, want 595", balance)
	}

	// Debiting past zero clamps instead of violating the schema check.
	balance, err = s.DebitCredits(a.ID, 10000)
	if err != nil {
		t.Fatalf("DebitCredits past zero: %v", err)
	}
	if balance != 0 {
		t.Errorf("balance = %d, want 0", balance)
	}
}

// Debits from parallel requests decrement in the database, not by
// overwriting with a balance computed from a stale read. All of them
// must land.
func TestAccountConcurrentDebits(t *testing.T) {
	db := testDB(t)
	s := NewAccountStore(db)
	email := "concurrent-debits@socialstudio.test"
	cleanAccounts(t, db, email)
	t.Cleanup(func() { cleanAccounts(t, db, email) })

	a, err := s.Create(email, "secret123", "Concurrent")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	const runs = 4
	var wg sync.WaitGroup
	for i := 0; i < runs; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := s.DebitCredits(a.ID, 5); err != nil {
				t.Errorf("DebitCredits: %v", err)
			}
		}()
	}
	wg.Wait()

	got, err := s.FindByID(a.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if want := 500 - runs*5; got.Credits != want {
		t.Errorf("credits = %d, want %d (a debit was lost)", got.Credits, want)
	}
}

func TestAccountTOTP(t *testing.T) {
	db := testDB(t)
	s := NewAccountStore(db)
	email := "totp-test@socialstudio.test"
	cleanAccounts(t, db, email)
	t.Cleanup(func() { cleanAccounts(t, db, email) })

	a, err := s.Create(email, "secret123", "TOTP")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := s.SetTOTPSecret(a.ID, "JBSWY3DPEHPK3PXP"); err != nil {
		t.Fatalf("SetTOTPSecret: %v", err)
	}
	if err := s.EnableTOTP(a.ID); err != nil {
		t.Fatalf("EnableTOTP: %v", err)
	}

	got, _ := s.FindByID(a.ID)
	if got.TOTPSecret == nil || *got.TOTPSecret != "JBSWY3DPEHPK3PXP" {
		t.Errorf("totp secret = %v", got.TOTPSecret)
	}
	if !got.TOTPEnabled {
		t.Error("totp not enabled")
	}
}
