package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path"
	"strings"

	"github.com/google/uuid"

	"github.com/veloura/atelier/internal/models"
)

// ContentRepo defines the persistence operations the content service needs
type ContentRepo interface {
	ListGalleryImages(ctx context.Context) ([]*models.GalleryImage, error)
	CreateGalleryImage(ctx context.Context, img *models.GalleryImage) (*models.GalleryImage, error)
	UpdateGalleryImage(ctx context.Context, img *models.GalleryImage) error
	DeleteGalleryImage(ctx context.Context, id string) (*models.GalleryImage, error)

	ListPricingTiers(ctx context.Context) ([]*models.PricingTier, error)
	CreatePricingTier(ctx context.Context, tier *models.PricingTier) (*models.PricingTier, error)
	UpdatePricingTier(ctx context.Context, tier *models.PricingTier) error
	DeletePricingTier(ctx context.Context, id string) error

	ListExperiences(ctx context.Context) ([]*models.Experience, error)
	CreateExperience(ctx context.Context, exp *models.Experience) (*models.Experience, error)
	UpdateExperience(ctx context.Context, exp *models.Experience) error
	DeleteExperience(ctx context.Context, id string) error

	GetContentBlock(ctx context.Context, key string) (*models.ContentBlock, error)
	UpsertContentBlock(ctx context.Context, block *models.ContentBlock) error
}

// MediaUploader defines the blob operations the content service needs
type MediaUploader interface {
	Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) (string, error)
	Remove(ctx context.Context, key string) error
}

// UploadResult is returned after a successful media upload
type UploadResult struct {
	Key string `json:"key"`
	URL string `json:"url"`
}

// ContentService implements the CMS operations behind the admin API.
type ContentService struct {
	repo   ContentRepo
	media  MediaUploader
	logger *slog.Logger
}

// NewContentService creates a new ContentService
func NewContentService(repo ContentRepo, media MediaUploader, logger *slog.Logger) *ContentService {
	return &ContentService{
		repo:   repo,
		media:  media,
		logger: logger,
	}
}

// Gallery

func (s *ContentService) ListGallery(ctx context.Context) ([]*models.GalleryImage, error) {
	return s.repo.ListGalleryImages(ctx)
}

func (s *ContentService) AddGalleryImage(ctx context.Context, img *models.GalleryImage) (*models.GalleryImage, error) {
	if img.ObjectKey == "" {
		return nil, fmt.Errorf("%w: object key required", models.ErrBadRequest)
	}
	return s.repo.CreateGalleryImage(ctx, img)
}

func (s *ContentService) UpdateGalleryImage(ctx context.Context, img *models.GalleryImage) error {
	return s.repo.UpdateGalleryImage(ctx, img)
}

// RemoveGalleryImage deletes the record and then its backing object. A blob
// removal failure is logged, not surfaced: the record is already gone and
// the orphaned object is harmless.
func (s *ContentService) RemoveGalleryImage(ctx context.Context, id string) error {
	img, err := s.repo.DeleteGalleryImage(ctx, id)
	if err != nil {
		return err
	}

	if img.ObjectKey != "" {
		if err := s.media.Remove(ctx, img.ObjectKey); err != nil {
			s.logger.Error("failed to remove gallery object",
				slog.String("object_key", img.ObjectKey),
				slog.Any("error", err))
		}
	}
	return nil
}

// Pricing

func (s *ContentService) ListPricing(ctx context.Context) ([]*models.PricingTier, error) {
	return s.repo.ListPricingTiers(ctx)
}

func (s *ContentService) AddPricingTier(ctx context.Context, tier *models.PricingTier) (*models.PricingTier, error) {
	return s.repo.CreatePricingTier(ctx, tier)
}

func (s *ContentService) UpdatePricingTier(ctx context.Context, tier *models.PricingTier) error {
	return s.repo.UpdatePricingTier(ctx, tier)
}

func (s *ContentService) RemovePricingTier(ctx context.Context, id string) error {
	return s.repo.DeletePricingTier(ctx, id)
}

// Experiences

func (s *ContentService) ListExperiences(ctx context.Context) ([]*models.Experience, error) {
	return s.repo.ListExperiences(ctx)
}

func (s *ContentService) AddExperience(ctx context.Context, exp *models.Experience) (*models.Experience, error) {
	return s.repo.CreateExperience(ctx, exp)
}

func (s *ContentService) UpdateExperience(ctx context.Context, exp *models.Experience) error {
	return s.repo.UpdateExperience(ctx, exp)
}

func (s *ContentService) RemoveExperience(ctx context.Context, id string) error {
	return s.repo.DeleteExperience(ctx, id)
}

// Content blocks

func (s *ContentService) GetBlock(ctx context.Context, key string) (*models.ContentBlock, error) {
	return s.repo.GetContentBlock(ctx, key)
}

func (s *ContentService) SaveBlock(ctx context.Context, block *models.ContentBlock) error {
	if block.Key == "" {
		return fmt.Errorf("%w: block key required", models.ErrBadRequest)
	}
	return s.repo.UpsertContentBlock(ctx, block)
}

// Media

// UploadMedia stores a file under a collision-proof key derived from the
// original filename.
func (s *ContentService) UploadMedia(ctx context.Context, filename string, reader io.Reader, size int64, contentType string) (*UploadResult, error) {
	ext := strings.ToLower(path.Ext(filename))
	key := uuid.New().String() + ext

	url, err := s.media.Upload(ctx, key, reader, size, contentType)
	if err != nil {
		return nil, err
	}

	return &UploadResult{Key: key, URL: url}, nil
}

func (s *ContentService) RemoveMedia(ctx context.Context, key string) error {
	return s.media.Remove(ctx, key)
}
