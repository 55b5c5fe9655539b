// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Tone represents the communication style of a brand.
type Tone string

const (
	ToneProfessional  Tone = "professional"
	ToneFunny         Tone = "funny"
	ToneInspirational Tone = "inspirational"
	ToneEdgy          Tone = "edgy"
)

// Valid reports whether the tone is one of the supported values.
func (t Tone) Valid() bool {
	switch t {
	case ToneProfessional, ToneFunny, ToneInspirational, ToneEdgy:
		return true
	}
	return false
}

// MaxStyleReferences is the maximum number of style reference images a
// brand profile may carry. References beyond this are rejected at
// validation time, never silently truncated.
const MaxStyleReferences = 3

// BrandProfile holds the tenant-level brand configuration created during
// onboarding and edited via settings. One profile is active per session.
type BrandProfile struct {
	ID                  uuid.UUID `json:"id"`
	AccountID           uuid.UUID `json:"account_id"`
	Name                string    `json:"name"`
	Industry            string    `json:"industry"`
	Website             *string   `json:"website,omitempty"`
	ContactEmail        *string   `json:"contact_email,omitempty"`
	Phone               *string   `json:"phone,omitempty"`
	Address             *string   `json:"address,omitempty"`
	TargetAudience      string    `json:"target_audience"`
	Tone                Tone      `json:"tone"`
	PrimaryColor        string    `json:"primary_color"`
	SecondaryColor      *string   `json:"secondary_color,omitempty"`
	LogoURL             *string   `json:"logo_url,omitempty"`
	StyleReferenceURLs  []string  `json:"style_reference_urls,omitempty"`
	BrandVoice          *string   `json:"brand_voice,omitempty"`
	BusinessDescription *string   `json:"business_description,omitempty"`
	ValueProposition    *string   `json:"value_proposition,omitempty"`
	PostIdeas           []string  `json:"post_ideas,omitempty"`
	AutoAppendSignature bool      `json:"auto_append_signature"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

// Voice returns the free-text brand voice, falling back to the tone when
// no explicit voice has been written.
func (p *BrandProfile) Voice() string {
	if p.BrandVoice != nil && *p.BrandVoice != "" {
		return *p.BrandVoice
	}
	return string(p.Tone)
}

// Signature builds the contact-block signature appended to post content
// when AutoAppendSignature is set. Returns an empty string if the profile
// has no contact fields.
func (p *BrandProfile) Signature() string {
	var parts []string
	if p.Website != nil && *p.Website != "" {
		parts = append(parts, "Website: "+*p.Website)
	}
	if p.ContactEmail != nil && *p.ContactEmail != "" {
		parts = append(parts, "Email: "+*p.ContactEmail)
	}
	if p.Phone != nil && *p.Phone != "" {
		parts = append(parts, "Contact: "+*p.Phone)
	}
	if p.Address != nil && *p.Address != "" {
		parts = append(parts, "Address: "+*p.Address)
	}
	if len(parts) == 0 {
		return ""
	}
	return "\n---\n" + strings.Join(parts, "\n")
}

// WithSignature appends the formatted signature to content when the
// auto-append flag is enabled. Content that already ends with the
// signature is returned unchanged.
func (p *BrandProfile) WithSignature(content string) string {
	if !p.AutoAppendSignature {
		return content
	}
	sig := p.Signature()
	if sig == "" || strings.HasSuffix(content, sig) {
		return content
	}
	return content + sig
}
