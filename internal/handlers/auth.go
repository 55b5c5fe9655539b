// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/base64"
	"log/slog"
	"net/http"

	"github.com/pquerna/otp/totp"
	qrcode "github.com/skip2/go-qrcode"

	"socialstudio/internal/middleware"
	"socialstudio/internal/models"
	"socialstudio/internal/session"
	"socialstudio/internal/store"
)

// Auth groups all authentication-related HTTP handlers.
type Auth struct {
	sessions *session.Store
	accounts *store.AccountStore
	profiles *store.ProfileStore
}

// NewAuth creates a new Auth handler group.
func NewAuth(sessions *session.Store, accounts *store.AccountStore, profiles *store.ProfileStore) *Auth {
	return &Auth{sessions: sessions, accounts: accounts, profiles: profiles}
}

type credentialsRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name,omitempty"`
}

type authResponse struct {
	Token        string          `json:"token"`
	Account      *models.Account `json:"account"`
	TOTPRequired bool            `json:"totp_required"`
}

// Register creates a new account and opens a session for it.
func (a *Auth) Register(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if msg := validateCredentials(req.Email, req.Password); msg != "" {
		writeError(w, http.StatusUnprocessableEntity, msg)
		return
	}

	existing, err := a.accounts.FindByEmail(req.Email)
	if err != nil {
		slog.Error("register lookup failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if existing != nil {
		writeError(w, http.StatusConflict, "an account with this email already exists")
		return
	}

	account, err := a.accounts.Create(req.Email, req.Password, req.DisplayName)
	if err != nil {
		slog.Error("register create failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	token, err := a.sessions.Create(r.Context(), &session.Data{
		AccountID:  account.ID,
		Email:      account.Email,
		Privileged: account.Privileged,
		TwoFADone:  true, // no 2FA enrolled yet
	})
	if err != nil {
		slog.Error("session create failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusCreated, authResponse{Token: token, Account: account})
}

// Login verifies credentials and opens a session. If the account has 2FA
// enrolled, the session starts unverified and the client must complete
// the TOTP challenge before protected endpoints accept it.
func (a *Auth) Login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	account, err := a.accounts.FindByEmail(req.Email)
	if err != nil {
		slog.Error("login lookup failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if account == nil || !a.accounts.CheckPassword(account, req.Password) {
		writeError(w, http.StatusUnauthorized, "invalid email or password")
		return
	}

	token, err := a.sessions.Create(r.Context(), &session.Data{
		AccountID:  account.ID,
		Email:      account.Email,
		Privileged: account.Privileged,
		TwoFADone:  !account.TOTPEnabled,
	})
	if err != nil {
		slog.Error("session create failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, authResponse{
		Token:        token,
		Account:      account,
		TOTPRequired: account.TOTPEnabled,
	})
}

// Logout destroys the current session.
func (a *Auth) Logout(w http.ResponseWriter, r *http.Request) {
	if err := a.sessions.Destroy(r.Context(), r); err != nil {
		slog.Error("session destroy failed", "error", err)
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// Me returns the authenticated account, its brand profile (nil before
// onboarding) and the credit state the client renders in the header.
func (a *Auth) Me(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())

	account, err := a.accounts.FindByID(sess.AccountID)
	if err != nil || account == nil {
		slog.Error("me lookup failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	profile, err := a.profiles.FindByAccount(sess.AccountID)
	if err != nil {
		slog.Error("me profile lookup failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"account":   account,
		"profile":   profile,
		"unlimited": account.Unlimited(),
	})
}

// TOTPSetup generates a TOTP secret for the account and returns the
// otpauth URL plus a QR code PNG (base64) to scan.
func (a *Auth) TOTPSetup(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())

	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      "SocialStudio",
		AccountName: sess.Email,
	})
	if err != nil {
		slog.Error("totp generate failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	if err := a.accounts.SetTOTPSecret(sess.AccountID, key.Secret()); err != nil {
		slog.Error("save totp secret failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	qrPNG, err := qrcode.Encode(key.URL(), qrcode.Medium, 256)
	if err != nil {
		slog.Error("qr code generation failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"secret": key.Secret(),
		"url":    key.URL(),
		"qr_png": base64.StdEncoding.EncodeToString(qrPNG),
	})
}

type totpRequest struct {
	Code string `json:"code"`
}

// TOTPActivate validates the first code against the pending secret and
// turns 2FA on for the account.
func (a *Auth) TOTPActivate(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())

	var req totpRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	account, err := a.accounts.FindByID(sess.AccountID)
	if err != nil || account == nil || account.TOTPSecret == nil {
		writeError(w, http.StatusBadRequest, "no pending 2FA setup")
		return
	}
	if !totp.Validate(req.Code, *account.TOTPSecret) {
		writeError(w, http.StatusUnauthorized, "invalid code")
		return
	}

	if err := a.accounts.EnableTOTP(sess.AccountID); err != nil {
		slog.Error("enable totp failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	sess.TwoFADone = true
	if err := a.sessions.Update(r.Context(), r, sess); err != nil {
		slog.Error("session update failed", "error", err)
	}
	writeJSON(w, http.StatusOK, map[string]bool{"enabled": true})
}

// TOTPVerify completes the 2FA challenge for a fresh session.
func (a *Auth) TOTPVerify(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())

	var req totpRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	account, err := a.accounts.FindByID(sess.AccountID)
	if err != nil || account == nil || !account.TOTPEnabled || account.TOTPSecret == nil {
		writeError(w, http.StatusBadRequest, "2FA is not enabled")
		return
	}
	if !totp.Validate(req.Code, *account.TOTPSecret) {
		writeError(w, http.StatusUnauthorized, "invalid code")
		return
	}

	sess.TwoFADone = true
	if err := a.sessions.Update(r.Context(), r, sess); err != nil {
		slog.Error("session update failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"verified": true})
}
