package services

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/tailorhub/internal/client/client"
	"github.com/dmitrijs2005/tailorhub/internal/client/models"
	"github.com/dmitrijs2005/tailorhub/internal/common"
)

const (
	MaxUploadSize  = 5 << 20
	MaxUploadFiles = 10
)

var allowedImageExt = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".gif": true, ".webp": true,
}

// UploadService forwards images to the backend and returns their URLs.
type UploadService struct {
	api client.UploadAPI
}

func NewUploadService(api client.UploadAPI) *UploadService {
	return &UploadService{api: api}
}

// Single uploads one image read from r.
func (s *UploadService) Single(ctx context.Context, name string, r io.Reader) (string, error) {
	f, err := readUpload(name, r)
	if err != nil {
		return "", err
	}
	res, err := s.api.UploadSingle(ctx, f)
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", f.Name, err)
	}
	return res.URL, nil
}

// Multiple uploads up to MaxUploadFiles images in one request.
func (s *UploadService) Multiple(ctx context.Context, files []models.UploadedFile) ([]string, error) {
	if len(files) == 0 {
		return nil, common.NewValidationError("images", "at least one file is required")
	}
	if len(files) > MaxUploadFiles {
		return nil, common.NewValidationError("images", fmt.Sprintf("at most %d files per upload", MaxUploadFiles))
	}
	parts := make([]models.UploadedFile, len(files))
	for i, f := range files {
		f.Name = filepath.Base(f.Name)
		if err := checkUpload(f); err != nil {
			return nil, err
		}
		parts[i] = f
	}
	res, err := s.api.UploadMultiple(ctx, parts)
	if err != nil {
		return nil, fmt.Errorf("upload %d files: %w", len(files), err)
	}
	return res.URLs, nil
}

func readUpload(name string, r io.Reader) (models.UploadedFile, error) {
	b, err := io.ReadAll(io.LimitReader(r, MaxUploadSize+1))
	if err != nil {
		return models.UploadedFile{}, fmt.Errorf("read %s: %w", name, err)
	}
	f := models.UploadedFile{Name: filepath.Base(name), Content: b}
	if err := checkUpload(f); err != nil {
		return models.UploadedFile{}, err
	}
	return f, nil
}

func checkUpload(f models.UploadedFile) error {
	ext := strings.ToLower(filepath.Ext(f.Name))
	switch {
	case !allowedImageExt[ext]:
		return common.NewValidationError("image", fmt.Sprintf("%q is not a supported image type", f.Name))
	case len(f.Content) == 0:
		return common.NewValidationError("image", fmt.Sprintf("%q is empty", f.Name))
	case len(f.Content) > MaxUploadSize:
		return common.NewValidationError("image", fmt.Sprintf("%q exceeds %d MB", f.Name, MaxUploadSize>>20))
	}
	return nil
}
