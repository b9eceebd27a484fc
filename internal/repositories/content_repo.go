package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/veloura/atelier/internal/database"
	"github.com/veloura/atelier/internal/models"
)

// ContentRepository persists the site's editable content: gallery images,
// pricing tiers, experience packages, and text blocks.
type ContentRepository struct {
	pool *pgxpool.Pool
}

func NewContentRepository(db *database.DB) *ContentRepository {
	return &ContentRepository{pool: db.Pool}
}

// Gallery images

func (r *ContentRepository) ListGalleryImages(ctx context.Context) ([]*models.GalleryImage, error) {
	query := `
		SELECT id, title, alt_text, object_key, public_url, position, created_at
		FROM gallery_images ORDER BY position, created_at
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query gallery images: %w", err)
	}
	defer rows.Close()

	images := make([]*models.GalleryImage, 0)
	for rows.Next() {
		var img models.GalleryImage
		if err := rows.Scan(&img.ID, &img.Title, &img.AltText, &img.ObjectKey, &img.PublicURL, &img.Position, &img.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan gallery image: %w", err)
		}
		images = append(images, &img)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return images, nil
}

func (r *ContentRepository) CreateGalleryImage(ctx context.Context, img *models.GalleryImage) (*models.GalleryImage, error) {
	img.ID = uuid.New().String()
	img.CreatedAt = time.Now()

	query := `
		INSERT INTO gallery_images (id, title, alt_text, object_key, public_url, position, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.pool.Exec(ctx, query, img.ID, img.Title, img.AltText, img.ObjectKey, img.PublicURL, img.Position, img.CreatedAt)
	if err != nil {
		return nil, database.MapPostgresError(err)
	}

	return img, nil
}

func (r *ContentRepository) UpdateGalleryImage(ctx context.Context, img *models.GalleryImage) error {
	query := `
		UPDATE gallery_images SET title = $2, alt_text = $3, position = $4
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, query, img.ID, img.Title, img.AltText, img.Position)
	if err != nil {
		return database.MapPostgresError(err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (r *ContentRepository) DeleteGalleryImage(ctx context.Context, id string) (*models.GalleryImage, error) {
	query := `
		DELETE FROM gallery_images WHERE id = $1
		RETURNING id, title, alt_text, object_key, public_url, position, created_at
	`

	var img models.GalleryImage
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&img.ID, &img.Title, &img.AltText, &img.ObjectKey, &img.PublicURL, &img.Position, &img.CreatedAt,
	)
	if err != nil {
		return nil, database.MapPostgresError(err)
	}
	return &img, nil
}

// Pricing tiers

func (r *ContentRepository) ListPricingTiers(ctx context.Context) ([]*models.PricingTier, error) {
	query := `
		SELECT id, name, duration, price_label, description, position
		FROM pricing_tiers ORDER BY position
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query pricing tiers: %w", err)
	}
	defer rows.Close()

	tiers := make([]*models.PricingTier, 0)
	for rows.Next() {
		var tier models.PricingTier
		if err := rows.Scan(&tier.ID, &tier.Name, &tier.Duration, &tier.PriceLabel, &tier.Description, &tier.Position); err != nil {
			return nil, fmt.Errorf("failed to scan pricing tier: %w", err)
		}
		tiers = append(tiers, &tier)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return tiers, nil
}

func (r *ContentRepository) CreatePricingTier(ctx context.Context, tier *models.PricingTier) (*models.PricingTier, error) {
	tier.ID = uuid.New().String()

	query := `
		INSERT INTO pricing_tiers (id, name, duration, price_label, description, position)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.pool.Exec(ctx, query, tier.ID, tier.Name, tier.Duration, tier.PriceLabel, tier.Description, tier.Position)
	if err != nil {
		return nil, database.MapPostgresError(err)
	}

	return tier, nil
}

func (r *ContentRepository) UpdatePricingTier(ctx context.Context, tier *models.PricingTier) error {
	query := `
		UPDATE pricing_tiers SET name = $2, duration = $3, price_label = $4, description = $5, position = $6
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, query, tier.ID, tier.Name, tier.Duration, tier.PriceLabel, tier.Description, tier.Position)
	if err != nil {
		return database.MapPostgresError(err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (r *ContentRepository) DeletePricingTier(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM pricing_tiers WHERE id = $1`, id)
	if err != nil {
		return database.MapPostgresError(err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}

// Experiences

func (r *ContentRepository) ListExperiences(ctx context.Context) ([]*models.Experience, error) {
	query := `
		SELECT id, title, tagline, description, price_label, position
		FROM experiences ORDER BY position
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query experiences: %w", err)
	}
	defer rows.Close()

	experiences := make([]*models.Experience, 0)
	for rows.Next() {
		var exp models.Experience
		if err := rows.Scan(&exp.ID, &exp.Title, &exp.Tagline, &exp.Description, &exp.PriceLabel, &exp.Position); err != nil {
			return nil, fmt.Errorf("failed to scan experience: %w", err)
		}
		experiences = append(experiences, &exp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return experiences, nil
}

func (r *ContentRepository) CreateExperience(ctx context.Context, exp *models.Experience) (*models.Experience, error) {
	exp.ID = uuid.New().String()

	query := `
		INSERT INTO experiences (id, title, tagline, description, price_label, position)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.pool.Exec(ctx, query, exp.ID, exp.Title, exp.Tagline, exp.Description, exp.PriceLabel, exp.Position)
	if err != nil {
		return nil, database.MapPostgresError(err)
	}

	return exp, nil
}

func (r *ContentRepository) UpdateExperience(ctx context.Context, exp *models.Experience) error {
	query := `
		UPDATE experiences SET title = $2, tagline = $3, description = $4, price_label = $5, position = $6
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, query, exp.ID, exp.Title, exp.Tagline, exp.Description, exp.PriceLabel, exp.Position)
	if err != nil {
		return database.MapPostgresError(err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (r *ContentRepository) DeleteExperience(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM experiences WHERE id = $1`, id)
	if err != nil {
		return database.MapPostgresError(err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}

// Content blocks

func (r *ContentRepository) GetContentBlock(ctx context.Context, key string) (*models.ContentBlock, error) {
	query := `SELECT block_key, body, updated_at FROM content_blocks WHERE block_key = $1`

	var block models.ContentBlock
	err := r.pool.QueryRow(ctx, query, key).Scan(&block.Key, &block.Body, &block.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, models.ErrNotFound
		}
		return nil, database.MapPostgresError(err)
	}
	return &block, nil
}

// UpsertContentBlock writes a block, creating it on first edit.
func (r *ContentRepository) UpsertContentBlock(ctx context.Context, block *models.ContentBlock) error {
	block.UpdatedAt = time.Now()

	query := `
		INSERT INTO content_blocks (block_key, body, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (block_key) DO UPDATE SET body = EXCLUDED.body, updated_at = EXCLUDED.updated_at
	`

	_, err := r.pool.Exec(ctx, query, block.Key, block.Body, block.UpdatedAt)
	if err != nil {
		return database.MapPostgresError(err)
	}
	return nil
}
