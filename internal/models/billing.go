// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

// CreditPack is a purchasable bundle of generation credits. Packs are
// static catalog entries; the purchase flow itself is handled by the
// external payment collaborator, which reports back the credits granted.
type CreditPack struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Credits    int    `json:"credits"`
	PriceCents int    `json:"price_cents"`
}

// CreditPacks is the purchasable catalog. Order matters: packs are
// presented smallest first.
var CreditPacks = []CreditPack{
	{ID: "starter", Name: "Starter", Credits: 100, PriceCents: 900},
	{ID: "creator", Name: "Creator", Credits: 500, PriceCents: 3900},
	{ID: "agency", Name: "Agency", Credits: 2000, PriceCents: 12900},
}

// FindCreditPack returns the pack with the given ID, or nil.
func FindCreditPack(id string) *CreditPack {
	for i := range CreditPacks {
		if CreditPacks[i].ID == id {
			return &CreditPacks[i]
		}
	}
	return nil
}
