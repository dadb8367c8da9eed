package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/strait-command/api/internal/model"
)

// CampaignRepo handles campaign and campaign_losses database operations.
type CampaignRepo struct {
	db *sql.DB
}

// NewCampaignRepo creates a CampaignRepo.
func NewCampaignRepo(db *sql.DB) *CampaignRepo {
	return &CampaignRepo{db: db}
}

// Create inserts a new campaign in "active" status.
func (r *CampaignRepo) Create(ctx context.Context, name, creatorID, scenario string, seed int64) (*model.Campaign, error) {
	var c model.Campaign
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO campaigns (name, creator_id, scenario, seed)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, name, creator_id, scenario, status, turn, seed, created_at`,
		name, creatorID, scenario, seed,
	).Scan(&c.ID, &c.Name, &c.CreatorID, &c.Scenario, &c.Status, &c.Turn, &c.Seed, &c.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("create campaign: %w", err)
	}
	return &c, nil
}

// FindByID returns a campaign by ID, or nil if it does not exist.
func (r *CampaignRepo) FindByID(ctx context.Context, id string) (*model.Campaign, error) {
	var c model.Campaign
	var winner, reason sql.NullString
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, creator_id, scenario, status, winner, reason, turn, seed, created_at, finished_at
		 FROM campaigns WHERE id = $1`, id,
	).Scan(&c.ID, &c.Name, &c.CreatorID, &c.Scenario, &c.Status, &winner, &reason, &c.Turn, &c.Seed, &c.CreatedAt, &c.FinishedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find campaign: %w", err)
	}
	c.Winner = winner.String
	c.Reason = reason.String
	return &c, nil
}

// ListActive returns campaigns in "active" status, newest first.
func (r *CampaignRepo) ListActive(ctx context.Context) ([]model.Campaign, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, creator_id, scenario, status, turn, seed, created_at
		 FROM campaigns WHERE status = 'active' ORDER BY created_at DESC LIMIT 50`)
	if err != nil {
		return nil, fmt.Errorf("list active campaigns: %w", err)
	}
	defer rows.Close()

	var campaigns []model.Campaign
	for rows.Next() {
		var c model.Campaign
		if err := rows.Scan(&c.ID, &c.Name, &c.CreatorID, &c.Scenario, &c.Status, &c.Turn, &c.Seed, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan campaign: %w", err)
		}
		campaigns = append(campaigns, c)
	}
	return campaigns, rows.Err()
}

// ListFinished returns finished campaigns, most recently finished first.
func (r *CampaignRepo) ListFinished(ctx context.Context) ([]model.Campaign, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, creator_id, scenario, status, winner, reason, turn, seed, created_at, finished_at
		 FROM campaigns WHERE status = 'finished' ORDER BY finished_at DESC LIMIT 100`)
	if err != nil {
		return nil, fmt.Errorf("list finished campaigns: %w", err)
	}
	defer rows.Close()

	var campaigns []model.Campaign
	for rows.Next() {
		var c model.Campaign
		var winner, reason sql.NullString
		if err := rows.Scan(&c.ID, &c.Name, &c.CreatorID, &c.Scenario, &c.Status, &winner, &reason, &c.Turn, &c.Seed, &c.CreatedAt, &c.FinishedAt); err != nil {
			return nil, fmt.Errorf("scan campaign: %w", err)
		}
		c.Winner = winner.String
		c.Reason = reason.String
		campaigns = append(campaigns, c)
	}
	return campaigns, rows.Err()
}

// UpdateTurn records the campaign's current turn number.
func (r *CampaignRepo) UpdateTurn(ctx context.Context, id string, turn int) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE campaigns SET turn = $2 WHERE id = $1 AND status = 'active'`, id, turn)
	if err != nil {
		return fmt.Errorf("update turn: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("update turn: campaign %s not active", id)
	}
	return nil
}

// Finish marks a campaign finished and archives its outcome, including
// the per-faction loss ledger, in a single transaction. A draw is
// stored with an empty winner.
func (r *CampaignRepo) Finish(ctx context.Context, id string, result *model.CampaignResult) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("finish campaign: %w", err)
	}
	defer tx.Rollback()

	var winner sql.NullString
	if result.Winner != "" {
		winner = sql.NullString{String: result.Winner, Valid: true}
	}
	res, err := tx.ExecContext(ctx,
		`UPDATE campaigns
		 SET status = 'finished', winner = $2, reason = $3, turn = $4, finished_at = now()
		 WHERE id = $1 AND status = 'active'`,
		id, winner, result.Reason, result.Turn)
	if err != nil {
		return fmt.Errorf("finish campaign: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("finish campaign: campaign %s not active", id)
	}

	for faction, lost := range result.Casualties {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO campaign_losses (campaign_id, faction, casualties, fielded)
			 VALUES ($1, $2, $3, $4)
			 ON CONFLICT (campaign_id, faction) DO UPDATE SET casualties = $3, fielded = $4`,
			id, faction, lost, result.Fielded[faction]); err != nil {
			return fmt.Errorf("archive losses for %s: %w", faction, err)
		}
	}

	return tx.Commit()
}

// Losses returns the per-faction loss ledger for a finished campaign.
func (r *CampaignRepo) Losses(ctx context.Context, id string) ([]model.FactionLosses, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT campaign_id, faction, casualties, fielded
		 FROM campaign_losses WHERE campaign_id = $1 ORDER BY faction`, id)
	if err != nil {
		return nil, fmt.Errorf("list losses: %w", err)
	}
	defer rows.Close()

	var losses []model.FactionLosses
	for rows.Next() {
		var l model.FactionLosses
		if err := rows.Scan(&l.CampaignID, &l.Faction, &l.Casualties, &l.Fielded); err != nil {
			return nil, fmt.Errorf("scan losses: %w", err)
		}
		losses = append(losses, l)
	}
	return losses, rows.Err()
}
