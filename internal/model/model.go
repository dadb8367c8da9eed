// Package model defines the data transfer objects shared between the
// repository, service, and handler layers.
package model

import "time"

// Campaign is a persisted record of a simulation run. Live campaign
// state (units, terrain, supply) lives in the engine and is cached in
// Redis; Postgres keeps the durable roster of campaigns and their
// outcomes.
type Campaign struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	CreatorID  string     `json:"creator_id"`
	Scenario   string     `json:"scenario"`
	Status     string     `json:"status"` // active, finished
	Winner     string     `json:"winner,omitempty"`
	Reason     string     `json:"reason,omitempty"` // city_control, casualties, turn_limit
	Turn       int        `json:"turn"`
	Seed       int64      `json:"seed"`
	CreatedAt  time.Time  `json:"created_at"`
	FinishedAt *time.Time `json:"finished_at,omitempty"`
}

// CampaignResult summarizes a finished campaign for archival.
type CampaignResult struct {
	Winner     string         `json:"winner"`
	Reason     string         `json:"reason"`
	Turn       int            `json:"turn"`
	Casualties map[string]int `json:"casualties"`
	Fielded    map[string]int `json:"fielded"`
}

// FactionLosses is one faction's row in a campaign's loss ledger.
type FactionLosses struct {
	CampaignID string `json:"campaign_id"`
	Faction    string `json:"faction"`
	Casualties int    `json:"casualties"`
	Fielded    int    `json:"fielded"`
}
