// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package generation

import (
	"context"
	"sync"

	"socialstudio/internal/brief"
	"socialstudio/internal/credits"
	"socialstudio/internal/models"
)

// Phase is the observable state of one generation run.
type Phase string

const (
	PhaseIdle      Phase = "idle"
	PhasePreparing Phase = "preparing" // brief synthesis
	PhaseRendering Phase = "rendering" // model call and upload
	PhaseDone      Phase = "done"
	PhaseError     Phase = "error"
)

// Kind selects the media pipeline a run goes through.
type Kind string

const (
	KindImage Kind = "image"
	KindVideo Kind = "video"
)

// Valid reports whether the kind names a supported pipeline.
func (k Kind) Valid() bool {
	return k == KindImage || k == KindVideo
}

// Cost returns the credit price of one run of this kind.
func (k Kind) Cost() int {
	if k == KindVideo {
		return credits.CostVideo
	}
	return credits.CostImage
}

// Params are the caller-chosen knobs of a run. Retrying reuses them
// verbatim; regenerating bumps the seed.
type Params struct {
	Kind            Kind       `json:"kind"`
	Mode            brief.Mode `json:"mode"`
	EditInstruction string     `json:"edit_instruction,omitempty"`
	Seed            int        `json:"seed"`
}

// Outcome is the result of a successful run.
type Outcome struct {
	URL     string                 `json:"url"`
	Debug   models.GenerationDebug `json:"debug"`
	Balance int                    `json:"balance"`
	Seed    int                    `json:"seed"`
}

// Session tracks the phase of a single run. Phases only move forward:
// idle, preparing, rendering, then done or error.
type Session struct {
	mu    sync.Mutex
	phase Phase
	err   error
}

func newSession() *Session {
	return &Session{phase: PhaseIdle}
}

// Phase returns the current phase.
func (s *Session) Phase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

// Err returns the terminal error, if the session ended in PhaseError.
func (s *Session) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

func (s *Session) setPhase(p Phase) {
	s.mu.Lock()
	s.phase = p
	s.mu.Unlock()
}

func (s *Session) fail(err error) error {
	s.mu.Lock()
	s.phase = PhaseError
	s.err = err
	s.mu.Unlock()
	return err
}

// run executes the pipeline for one post. Credits are checked up front
// and debited only after a confirmed, uploaded asset; any failure leaves
// the balance, the post's media and its history untouched.
func (s *Session) run(ctx context.Context, r *Renderer, ledger *credits.Ledger, post *models.SocialPost, profile *models.BrandProfile, params Params) (*Outcome, error) {
	cost := params.Kind.Cost()
	if !ledger.CanAfford(cost) {
		return nil, s.fail(ErrQuotaExceeded)
	}

	req := RenderRequest{
		Post:            post,
		Profile:         profile,
		Mode:            params.Mode,
		EditInstruction: params.EditInstruction,
		Seed:            params.Seed,
	}

	var (
		rendered *Rendered
		debug    models.GenerationDebug
		prompt   string
		err      error
	)
	switch params.Kind {
	case KindVideo:
		s.setPhase(PhasePreparing)
		plan := r.BuildVideoPlan(ctx, req)
		debug, prompt = plan.Debug, plan.Prompt

		s.setPhase(PhaseRendering)
		rendered, err = r.ExecuteVideoPlan(ctx, post.AccountID, plan)
	default:
		s.setPhase(PhasePreparing)
		plan := r.BuildImagePlan(ctx, req)
		debug, prompt = plan.Debug, plan.Prompt

		s.setPhase(PhaseRendering)
		rendered, err = r.ExecuteImagePlan(ctx, post.AccountID, plan)
	}
	if err != nil {
		return nil, s.fail(err)
	}

	balance := ledger.Debit(cost)
	AppendVariant(post, rendered.URL)
	post.AIPrompt = &prompt
	post.Debug = &debug

	s.setPhase(PhaseDone)
	return &Outcome{
		URL:     rendered.URL,
		Debug:   debug,
		Balance: balance,
		Seed:    params.Seed,
	}, nil
}
