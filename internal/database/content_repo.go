package database

import (
	"database/sql"
	"errors"
	"time"

	"gkk99-backend/internal/models"
)

var ErrContentNotFound = errors.New("site content not found")

// ContentRepo handles the singleton site content row
type ContentRepo struct {
	db *sql.DB
}

// NewContentRepo creates a new content repository
func NewContentRepo(db *sql.DB) *ContentRepo {
	return &ContentRepo{db: db}
}

// Get retrieves the site content row
func (r *ContentRepo) Get() (*models.SiteContent, error) {
	content := &models.SiteContent{}

	err := r.db.QueryRow(`
		SELECT id, title, description, gkk99_link, gkk777_link, viber_link,
		       pricing_slots, pricing_free_spin, pricing_win_rate,
		       pricing_gkk99_bonus, pricing_gkk777_bonus,
		       updated_at, updated_by
		FROM site_content LIMIT 1
	`).Scan(
		&content.ID, &content.Title, &content.Description,
		&content.Gkk99Link, &content.Gkk777Link, &content.ViberLink,
		&content.Pricing.Slots, &content.Pricing.FreeSpin, &content.Pricing.WinRate,
		&content.Pricing.Gkk99Bonus, &content.Pricing.Gkk777Bonus,
		&content.UpdatedAt, &content.UpdatedBy,
	)
	if err == sql.ErrNoRows {
		return nil, ErrContentNotFound
	}
	if err != nil {
		return nil, err
	}

	return content, nil
}

// Update persists the full content record, stamping updated_at and updated_by
func (r *ContentRepo) Update(content *models.SiteContent, updatedBy string) error {
	content.UpdatedAt = time.Now().UTC()
	content.UpdatedBy = updatedBy

	result, err := r.db.Exec(`
		UPDATE site_content SET
			title = ?, description = ?,
			gkk99_link = ?, gkk777_link = ?, viber_link = ?,
			pricing_slots = ?, pricing_free_spin = ?, pricing_win_rate = ?,
			pricing_gkk99_bonus = ?, pricing_gkk777_bonus = ?,
			updated_at = ?, updated_by = ?
		WHERE id = ?
	`, content.Title, content.Description,
		content.Gkk99Link, content.Gkk777Link, content.ViberLink,
		content.Pricing.Slots, content.Pricing.FreeSpin, content.Pricing.WinRate,
		content.Pricing.Gkk99Bonus, content.Pricing.Gkk777Bonus,
		content.UpdatedAt, content.UpdatedBy, content.ID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrContentNotFound
	}

	return nil
}
