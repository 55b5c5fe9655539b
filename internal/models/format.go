// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// ContentFormat is a recurring content category used by the weekly
// strategy generator (e.g. "Behind the scenes", keyword "authentic").
type ContentFormat struct {
	ID           uuid.UUID `json:"id"`
	AccountID    uuid.UUID `json:"account_id"`
	Name         string    `json:"name"`
	Keyword      string    `json:"keyword"`
	PostsPerWeek int       `json:"posts_per_week"`
	Color        string    `json:"color"`
	CreatedAt    time.Time `json:"created_at"`
}
