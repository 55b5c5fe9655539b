// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"socialstudio/internal/models"
)

// ProfileStore handles brand profile persistence. Each account owns at
// most one profile, created during onboarding.
type ProfileStore struct {
	db *sql.DB
}

// NewProfileStore creates a new ProfileStore with the given database connection.
func NewProfileStore(db *sql.DB) *ProfileStore {
	return &ProfileStore{db: db}
}

const profileColumns = `id, account_id, name, industry, website, contact_email, phone, address,
	target_audience, tone, primary_color, secondary_color, logo_url, style_reference_urls,
	brand_voice, business_description, value_proposition, post_ideas, auto_append_signature,
	created_at, updated_at`

func scanProfile(row interface{ Scan(...any) error }) (*models.BrandProfile, error) {
	p := &models.BrandProfile{}
	var styleRefs, postIdeas []byte
	err := row.Scan(
		&p.ID, &p.AccountID, &p.Name, &p.Industry, &p.Website, &p.ContactEmail,
		&p.Phone, &p.Address, &p.TargetAudience, &p.Tone, &p.PrimaryColor,
		&p.SecondaryColor, &p.LogoURL, &styleRefs, &p.BrandVoice,
		&p.BusinessDescription, &p.ValueProposition, &postIdeas,
		&p.AutoAppendSignature, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	p.StyleReferenceURLs = scanList(styleRefs)
	p.PostIdeas = scanList(postIdeas)
	return p, nil
}

// FindByAccount retrieves the account's brand profile. Returns nil if the
// account has not completed onboarding.
func (s *ProfileStore) FindByAccount(accountID uuid.UUID) (*models.BrandProfile, error) {
	p, err := scanProfile(s.db.QueryRow(`
		SELECT `+profileColumns+` FROM brand_profiles WHERE account_id = $1
	`, accountID))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find profile: %w", err)
	}
	return p, nil
}

// Create inserts the account's brand profile and fills in the generated
// fields on the given struct.
func (s *ProfileStore) Create(p *models.BrandProfile) error {
	if len(p.StyleReferenceURLs) > models.MaxStyleReferences {
		return fmt.Errorf("create profile: at most %d style references allowed", models.MaxStyleReferences)
	}

	created, err := scanProfile(s.db.QueryRow(`
		INSERT INTO brand_profiles (
			account_id, name, industry, website, contact_email, phone, address,
			target_audience, tone, primary_color, secondary_color, logo_url,
			style_reference_urls, brand_voice, business_description,
			value_proposition, post_ideas, auto_append_signature
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18)
		RETURNING `+profileColumns+`
	`, p.AccountID, p.Name, p.Industry, p.Website, p.ContactEmail, p.Phone,
		p.Address, p.TargetAudience, p.Tone, p.PrimaryColor, p.SecondaryColor,
		p.LogoURL, jsonList(p.StyleReferenceURLs), p.BrandVoice,
		p.BusinessDescription, p.ValueProposition, jsonList(p.PostIdeas),
		p.AutoAppendSignature))
	if err != nil {
		return fmt.Errorf("create profile: %w", err)
	}
	*p = *created
	return nil
}

// Update saves changes to an existing profile.
func (s *ProfileStore) Update(p *models.BrandProfile) error {
	if len(p.StyleReferenceURLs) > models.MaxStyleReferences {
		return fmt.Errorf("update profile: at most %d style references allowed", models.MaxStyleReferences)
	}

	updated, err := scanProfile(s.db.QueryRow(`
		UPDATE brand_profiles SET
			name = $1, industry = $2, website = $3, contact_email = $4,
			phone = $5, address = $6, target_audience = $7, tone = $8,
			primary_color = $9, secondary_color = $10, logo_url = $11,
			style_reference_urls = $12, brand_voice = $13,
			business_description = $14, value_proposition = $15,
			post_ideas = $16, auto_append_signature = $17, updated_at = NOW()
		WHERE id = $18
		RETURNING `+profileColumns+`
	`, p.Name, p.Industry, p.Website, p.ContactEmail, p.Phone, p.Address,
		p.TargetAudience, p.Tone, p.PrimaryColor, p.SecondaryColor, p.LogoURL,
		jsonList(p.StyleReferenceURLs), p.BrandVoice, p.BusinessDescription,
		p.ValueProposition, jsonList(p.PostIdeas), p.AutoAppendSignature, p.ID))
	if err != nil {
		return fmt.Errorf("update profile: %w", err)
	}
	*p = *updated
	return nil
}
