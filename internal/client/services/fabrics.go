package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/tailorhub/internal/client/client"
	"github.com/dmitrijs2005/tailorhub/internal/client/models"
	"github.com/dmitrijs2005/tailorhub/internal/common"
	"github.com/dmitrijs2005/tailorhub/internal/logging"
)

const maxReviewLength = 2000

// FabricService serves fabric details and reviews. Listing goes through the
// fabric Catalog.
type FabricService struct {
	api client.CatalogAPI
	log logging.Logger
}

func NewFabricService(api client.CatalogAPI, log logging.Logger) *FabricService {
	if log == nil {
		log = logging.Discard()
	}
	return &FabricService{api: api, log: log.With("component", "fabrics")}
}

func (s *FabricService) Get(ctx context.Context, id string) (models.Fabric, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return models.Fabric{}, common.NewValidationError("id", "is required")
	}
	f, err := s.api.GetFabric(ctx, id)
	if err != nil {
		return models.Fabric{}, fmt.Errorf("get fabric %s: %w", id, err)
	}
	return f, nil
}

// AddReview posts a 1..5 star review. Markup in the comment is removed
// before sending.
func (s *FabricService) AddReview(ctx context.Context, fabricID string, rating int, comment string) (models.Review, error) {
	fabricID = strings.TrimSpace(fabricID)
	if fabricID == "" {
		return models.Review{}, common.NewValidationError("fabricId", "is required")
	}
	if rating < 1 || rating > 5 {
		return models.Review{}, common.NewValidationError("rating", "must be between 1 and 5")
	}
	comment = sanitizeText(comment)
	if comment == "" {
		return models.Review{}, common.NewValidationError("comment", "is required")
	}
	if len(comment) > maxReviewLength {
		return models.Review{}, common.NewValidationError("comment", fmt.Sprintf("must be at most %d characters", maxReviewLength))
	}

	r, err := s.api.AddReview(ctx, fabricID, models.Review{Rating: rating, Comment: comment})
	if err != nil {
		s.log.Warn(ctx, "review rejected", "fabric_id", fabricID, "error", err)
		return models.Review{}, fmt.Errorf("review fabric %s: %w", fabricID, err)
	}
	s.log.Info(ctx, "review added", "fabric_id", fabricID, "rating", rating)
	return r, nil
}

// TailorService serves tailor details. Listing goes through the tailor
// Catalog.
type TailorService struct {
	api client.CatalogAPI
}

func NewTailorService(api client.CatalogAPI) *TailorService {
	return &TailorService{api: api}
}

func (s *TailorService) Get(ctx context.Context, id string) (models.Tailor, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return models.Tailor{}, common.NewValidationError("id", "is required")
	}
	t, err := s.api.GetTailor(ctx, id)
	if err != nil {
		return models.Tailor{}, fmt.Errorf("get tailor %s: %w", id, err)
	}
	return t, nil
}
