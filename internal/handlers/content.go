package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/veloura/atelier/internal/models"
	"github.com/veloura/atelier/internal/services"
	pkghttp "github.com/veloura/atelier/pkg/http"
)

// ContentServiceInterface defines the interface for CMS business logic
type ContentServiceInterface interface {
	ListGallery(ctx context.Context) ([]*models.GalleryImage, error)
	AddGalleryImage(ctx context.Context, img *models.GalleryImage) (*models.GalleryImage, error)
	UpdateGalleryImage(ctx context.Context, img *models.GalleryImage) error
	RemoveGalleryImage(ctx context.Context, id string) error

	ListPricing(ctx context.Context) ([]*models.PricingTier, error)
	AddPricingTier(ctx context.Context, tier *models.PricingTier) (*models.PricingTier, error)
	UpdatePricingTier(ctx context.Context, tier *models.PricingTier) error
	RemovePricingTier(ctx context.Context, id string) error

	ListExperiences(ctx context.Context) ([]*models.Experience, error)
	AddExperience(ctx context.Context, exp *models.Experience) (*models.Experience, error)
	UpdateExperience(ctx context.Context, exp *models.Experience) error
	RemoveExperience(ctx context.Context, id string) error

	GetBlock(ctx context.Context, key string) (*models.ContentBlock, error)
	SaveBlock(ctx context.Context, block *models.ContentBlock) error

	UploadMedia(ctx context.Context, filename string, reader io.Reader, size int64, contentType string) (*services.UploadResult, error)
	RemoveMedia(ctx context.Context, key string) error
}

// maxUploadBytes caps gallery uploads at 20 MiB
const maxUploadBytes = 20 << 20

// ContentHandler handles the public content reads and the admin CMS API
type ContentHandler struct {
	service ContentServiceInterface
	logger  *slog.Logger
}

// NewContentHandler creates a new ContentHandler
func NewContentHandler(service ContentServiceInterface, logger *slog.Logger) *ContentHandler {
	return &ContentHandler{
		service: service,
		logger:  logger,
	}
}

// Request DTOs

type galleryImageRequest struct {
	Title     string `json:"title" validate:"required,max=200"`
	AltText   string `json:"alt_text" validate:"max=300"`
	ObjectKey string `json:"object_key" validate:"required"`
	PublicURL string `json:"public_url" validate:"required"`
	Position  int    `json:"position" validate:"gte=0"`
}

type galleryImageUpdateRequest struct {
	Title    string `json:"title" validate:"required,max=200"`
	AltText  string `json:"alt_text" validate:"max=300"`
	Position int    `json:"position" validate:"gte=0"`
}

type pricingTierRequest struct {
	Name        string `json:"name" validate:"required,max=120"`
	Duration    string `json:"duration" validate:"required,max=120"`
	PriceLabel  string `json:"price_label" validate:"required,max=120"`
	Description string `json:"description" validate:"max=2000"`
	Position    int    `json:"position" validate:"gte=0"`
}

type experienceRequest struct {
	Title       string `json:"title" validate:"required,max=200"`
	Tagline     string `json:"tagline" validate:"max=300"`
	Description string `json:"description" validate:"max=4000"`
	PriceLabel  string `json:"price_label" validate:"max=120"`
	Position    int    `json:"position" validate:"gte=0"`
}

type contentBlockRequest struct {
	Body string `json:"body" validate:"max=20000"`
}

// Public reads

func (h *ContentHandler) ListGallery(w http.ResponseWriter, r *http.Request) {
	images, err := h.service.ListGallery(r.Context())
	if err != nil {
		h.writeServiceError(w, err, "failed to list gallery")
		return
	}
	pkghttp.WriteJSON(w, http.StatusOK, images)
}

func (h *ContentHandler) ListPricing(w http.ResponseWriter, r *http.Request) {
	tiers, err := h.service.ListPricing(r.Context())
	if err != nil {
		h.writeServiceError(w, err, "failed to list pricing")
		return
	}
	pkghttp.WriteJSON(w, http.StatusOK, tiers)
}

func (h *ContentHandler) ListExperiences(w http.ResponseWriter, r *http.Request) {
	experiences, err := h.service.ListExperiences(r.Context())
	if err != nil {
		h.writeServiceError(w, err, "failed to list experiences")
		return
	}
	pkghttp.WriteJSON(w, http.StatusOK, experiences)
}

func (h *ContentHandler) GetBlock(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")

	block, err := h.service.GetBlock(r.Context(), key)
	if err != nil {
		h.writeServiceError(w, err, "failed to get content block")
		return
	}
	pkghttp.WriteJSON(w, http.StatusOK, block)
}

// Gallery admin

func (h *ContentHandler) CreateGalleryImage(w http.ResponseWriter, r *http.Request) {
	var req galleryImageRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	img, err := h.service.AddGalleryImage(r.Context(), &models.GalleryImage{
		Title:     req.Title,
		AltText:   req.AltText,
		ObjectKey: req.ObjectKey,
		PublicURL: req.PublicURL,
		Position:  req.Position,
	})
	if err != nil {
		h.writeServiceError(w, err, "failed to create gallery image")
		return
	}

	pkghttp.WriteJSON(w, http.StatusCreated, img)
}

func (h *ContentHandler) UpdateGalleryImage(w http.ResponseWriter, r *http.Request) {
	var req galleryImageUpdateRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	err := h.service.UpdateGalleryImage(r.Context(), &models.GalleryImage{
		ID:       chi.URLParam(r, "id"),
		Title:    req.Title,
		AltText:  req.AltText,
		Position: req.Position,
	})
	if err != nil {
		h.writeServiceError(w, err, "failed to update gallery image")
		return
	}

	pkghttp.WriteSuccess(w)
}

func (h *ContentHandler) DeleteGalleryImage(w http.ResponseWriter, r *http.Request) {
	if err := h.service.RemoveGalleryImage(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.writeServiceError(w, err, "failed to delete gallery image")
		return
	}
	pkghttp.WriteSuccess(w)
}

// Pricing admin

func (h *ContentHandler) CreatePricingTier(w http.ResponseWriter, r *http.Request) {
	var req pricingTierRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	tier, err := h.service.AddPricingTier(r.Context(), &models.PricingTier{
		Name:        req.Name,
		Duration:    req.Duration,
		PriceLabel:  req.PriceLabel,
		Description: req.Description,
		Position:    req.Position,
	})
	if err != nil {
		h.writeServiceError(w, err, "failed to create pricing tier")
		return
	}

	pkghttp.WriteJSON(w, http.StatusCreated, tier)
}

func (h *ContentHandler) UpdatePricingTier(w http.ResponseWriter, r *http.Request) {
	var req pricingTierRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	err := h.service.UpdatePricingTier(r.Context(), &models.PricingTier{
		ID:          chi.URLParam(r, "id"),
		Name:        req.Name,
		Duration:    req.Duration,
		PriceLabel:  req.PriceLabel,
		Description: req.Description,
		Position:    req.Position,
	})
	if err != nil {
		h.writeServiceError(w, err, "failed to update pricing tier")
		return
	}

	pkghttp.WriteSuccess(w)
}

func (h *ContentHandler) DeletePricingTier(w http.ResponseWriter, r *http.Request) {
	if err := h.service.RemovePricingTier(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.writeServiceError(w, err, "failed to delete pricing tier")
		return
	}
	pkghttp.WriteSuccess(w)
}

// Experiences admin

func (h *ContentHandler) CreateExperience(w http.ResponseWriter, r *http.Request) {
	var req experienceRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	exp, err := h.service.AddExperience(r.Context(), &models.Experience{
		Title:       req.Title,
		Tagline:     req.Tagline,
		Description: req.Description,
		PriceLabel:  req.PriceLabel,
		Position:    req.Position,
	})
	if err != nil {
		h.writeServiceError(w, err, "failed to create experience")
		return
	}

	pkghttp.WriteJSON(w, http.StatusCreated, exp)
}

func (h *ContentHandler) UpdateExperience(w http.ResponseWriter, r *http.Request) {
	var req experienceRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	err := h.service.UpdateExperience(r.Context(), &models.Experience{
		ID:          chi.URLParam(r, "id"),
		Title:       req.Title,
		Tagline:     req.Tagline,
		Description: req.Description,
		PriceLabel:  req.PriceLabel,
		Position:    req.Position,
	})
	if err != nil {
		h.writeServiceError(w, err, "failed to update experience")
		return
	}

	pkghttp.WriteSuccess(w)
}

func (h *ContentHandler) DeleteExperience(w http.ResponseWriter, r *http.Request) {
	if err := h.service.RemoveExperience(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.writeServiceError(w, err, "failed to delete experience")
		return
	}
	pkghttp.WriteSuccess(w)
}

// Content blocks admin

func (h *ContentHandler) SaveBlock(w http.ResponseWriter, r *http.Request) {
	var req contentBlockRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	err := h.service.SaveBlock(r.Context(), &models.ContentBlock{
		Key:  chi.URLParam(r, "key"),
		Body: req.Body,
	})
	if err != nil {
		h.writeServiceError(w, err, "failed to save content block")
		return
	}

	pkghttp.WriteSuccess(w)
}

// Media

func (h *ContentHandler) UploadMedia(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		pkghttp.WriteBadRequest(w, "Invalid upload")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		pkghttp.WriteBadRequest(w, "Missing file field")
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	result, err := h.service.UploadMedia(r.Context(), header.Filename, file, header.Size, contentType)
	if err != nil {
		h.writeServiceError(w, err, "failed to upload media")
		return
	}

	pkghttp.WriteJSON(w, http.StatusCreated, result)
}

func (h *ContentHandler) DeleteMedia(w http.ResponseWriter, r *http.Request) {
	if err := h.service.RemoveMedia(r.Context(), chi.URLParam(r, "key")); err != nil {
		h.writeServiceError(w, err, "failed to delete media")
		return
	}
	pkghttp.WriteSuccess(w)
}

// Helpers

func (h *ContentHandler) decodeAndValidate(w http.ResponseWriter, r *http.Request, req interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		pkghttp.WriteBadRequest(w, "Invalid request body")
		return false
	}
	if err := ValidateRequest(req); err != nil {
		pkghttp.WriteBadRequest(w, err.Error())
		return false
	}
	return true
}

func (h *ContentHandler) writeServiceError(w http.ResponseWriter, err error, logMsg string) {
	switch {
	case errors.Is(err, models.ErrNotFound):
		pkghttp.WriteNotFound(w, "Not found")
	case errors.Is(err, models.ErrConflict):
		pkghttp.WriteConflict(w, "Already exists")
	case errors.Is(err, models.ErrBadRequest):
		pkghttp.WriteBadRequest(w, "Invalid request")
	default:
		h.logger.Error(logMsg, slog.Any("error", err))
		pkghttp.WriteInternalError(w, "Internal server error")
	}
}
