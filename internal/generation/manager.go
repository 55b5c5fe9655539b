// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package generation

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"socialstudio/internal/credits"
	"socialstudio/internal/models"
)

// Manager serializes generation per post and remembers each post's last
// run parameters so retry and regenerate can reproduce or vary them. A
// second request for a post whose run is still in flight is rejected, not
// queued.
type Manager struct {
	renderer *Renderer

	mu       sync.Mutex
	sessions map[uuid.UUID]*Session
	inflight map[uuid.UUID]struct{}
	last     map[uuid.UUID]Params
}

// NewManager creates a Manager over the given renderer.
func NewManager(renderer *Renderer) *Manager {
	return &Manager{
		renderer: renderer,
		sessions: make(map[uuid.UUID]*Session),
		inflight: make(map[uuid.UUID]struct{}),
		last:     make(map[uuid.UUID]Params),
	}
}

// Generate runs one generation for the post with the given params. The
// post is mutated in memory on success; persisting it is the caller's
// job. Returns ErrGenerationInFlight if the post already has a run going.
func (m *Manager) Generate(ctx context.Context, ledger *credits.Ledger, post *models.SocialPost, profile *models.BrandProfile, params Params) (*Outcome, error) {
	s, err := m.begin(post.ID, params)
	if err != nil {
		return nil, err
	}
	defer m.end(post.ID)

	return s.run(ctx, m.renderer, ledger, post, profile, params)
}

// Retry re-runs the post's last generation with identical parameters.
func (m *Manager) Retry(ctx context.Context, ledger *credits.Ledger, post *models.SocialPost, profile *models.BrandProfile) (*Outcome, error) {
	params, ok := m.LastParams(post.ID)
	if !ok {
		return nil, ErrNoHistory
	}
	return m.Generate(ctx, ledger, post, profile, params)
}

// Regenerate re-runs the post's last generation with the seed advanced,
// producing a fresh take with the same settings.
func (m *Manager) Regenerate(ctx context.Context, ledger *credits.Ledger, post *models.SocialPost, profile *models.BrandProfile) (*Outcome, error) {
	params, ok := m.LastParams(post.ID)
	if !ok {
		return nil, ErrNoHistory
	}
	params.Seed++
	return m.Generate(ctx, ledger, post, profile, params)
}

// Phase reports the phase of the post's most recent session, or PhaseIdle
// when the post has never generated.
func (m *Manager) Phase(postID uuid.UUID) Phase {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.sessions[postID]; ok {
		return s.Phase()
	}
	return PhaseIdle
}

// LastParams returns the parameters of the post's last run.
func (m *Manager) LastParams(postID uuid.UUID) (Params, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.last[postID]
	return p, ok
}

func (m *Manager) begin(postID uuid.UUID, params Params) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, busy := m.inflight[postID]; busy {
		return nil, ErrGenerationInFlight
	}
	m.inflight[postID] = struct{}{}
	m.last[postID] = params

	s := newSession()
	m.sessions[postID] = s
	return s, nil
}

func (m *Manager) end(postID uuid.UUID) {
	m.mu.Lock()
	delete(m.inflight, postID)
	m.mu.Unlock()
}
