package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veloura/atelier/internal/models"
)

type mockContentService struct {
	ContentServiceInterface

	gallery   []*models.GalleryImage
	block     *models.ContentBlock
	removeErr error
}

func (m *mockContentService) ListGallery(context.Context) ([]*models.GalleryImage, error) {
	return m.gallery, nil
}

func (m *mockContentService) AddGalleryImage(_ context.Context, img *models.GalleryImage) (*models.GalleryImage, error) {
	img.ID = "new-id"
	return img, nil
}

func (m *mockContentService) RemoveGalleryImage(context.Context, string) error {
	return m.removeErr
}

func (m *mockContentService) GetBlock(_ context.Context, key string) (*models.ContentBlock, error) {
	if m.block == nil || m.block.Key != key {
		return nil, models.ErrNotFound
	}
	return m.block, nil
}

func newContentRouter(svc ContentServiceInterface) http.Handler {
	h := NewContentHandler(svc, discardLogger())
	r := chi.NewRouter()
	r.Get("/api/content/gallery", h.ListGallery)
	r.Get("/api/content/blocks/{key}", h.GetBlock)
	r.Post("/api/admin/gallery", h.CreateGalleryImage)
	r.Delete("/api/admin/gallery/{id}", h.DeleteGalleryImage)
	r.Post("/api/admin/media", h.UploadMedia)
	return r
}

func TestListGallery(t *testing.T) {
	svc := &mockContentService{gallery: []*models.GalleryImage{
		{ID: "img-1", Title: "Evening"},
		{ID: "img-2", Title: "Noir"},
	}}

	req := httptest.NewRequest("GET", "/api/content/gallery", nil)
	w := httptest.NewRecorder()
	newContentRouter(svc).ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var images []*models.GalleryImage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &images))
	assert.Len(t, images, 2)
	assert.Equal(t, "Evening", images[0].Title)
}

func TestCreateGalleryImage(t *testing.T) {
	body, _ := json.Marshal(map[string]interface{}{
		"title":      "Evening",
		"alt_text":   "Evening gown portrait",
		"object_key": "abc.jpg",
		"public_url": "https://media.example.com/abc.jpg",
		"position":   1,
	})

	req := httptest.NewRequest("POST", "/api/admin/gallery", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	newContentRouter(&mockContentService{}).ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)

	var img models.GalleryImage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &img))
	assert.Equal(t, "new-id", img.ID)
}

func TestCreateGalleryImage_ValidationFailure(t *testing.T) {
	// Missing required object_key
	body, _ := json.Marshal(map[string]interface{}{"title": "Evening"})

	req := httptest.NewRequest("POST", "/api/admin/gallery", bytes.NewReader(body))
	w := httptest.NewRecorder()
	newContentRouter(&mockContentService{}).ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteGalleryImage_NotFound(t *testing.T) {
	svc := &mockContentService{removeErr: models.ErrNotFound}

	req := httptest.NewRequest("DELETE", "/api/admin/gallery/missing-id", nil)
	w := httptest.NewRecorder()
	newContentRouter(svc).ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetBlock(t *testing.T) {
	svc := &mockContentService{block: &models.ContentBlock{Key: "home.hero", Body: "Welcome"}}

	req := httptest.NewRequest("GET", "/api/content/blocks/home.hero", nil)
	w := httptest.NewRecorder()
	newContentRouter(svc).ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var block models.ContentBlock
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &block))
	assert.Equal(t, "Welcome", block.Body)
}

func TestGetBlock_NotFound(t *testing.T) {
	req := httptest.NewRequest("GET", "/api/content/blocks/missing", nil)
	w := httptest.NewRecorder()
	newContentRouter(&mockContentService{}).ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUploadMedia_MissingFile(t *testing.T) {
	req := httptest.NewRequest("POST", "/api/admin/media", bytes.NewReader(nil))
	req.Header.Set("Content-Type", "multipart/form-data; boundary=xxx")
	w := httptest.NewRecorder()
	newContentRouter(&mockContentService{}).ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
