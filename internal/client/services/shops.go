package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/tailorhub/internal/client/client"
	"github.com/dmitrijs2005/tailorhub/internal/client/models"
	"github.com/dmitrijs2005/tailorhub/internal/common"
)

// ShopService reads shops and their fabrics. Catalog is the filterable
// shop list.
type ShopService struct {
	api     client.CatalogAPI
	Catalog *ShopCatalog
}

func NewShopService(api client.CatalogAPI, catalog *ShopCatalog) *ShopService {
	return &ShopService{api: api, Catalog: catalog}
}

// List fetches every shop without touching the catalog state.
func (s *ShopService) List(ctx context.Context) ([]models.Shop, error) {
	shops, err := s.api.ListShops(ctx)
	if err != nil {
		return nil, fmt.Errorf("list shops: %w", err)
	}
	return shops, nil
}

func (s *ShopService) Get(ctx context.Context, id string) (models.Shop, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return models.Shop{}, common.NewValidationError("id", "is required")
	}
	shop, err := s.api.GetShop(ctx, id)
	if err != nil {
		return models.Shop{}, fmt.Errorf("get shop %s: %w", id, err)
	}
	return shop, nil
}

func (s *ShopService) Fabrics(ctx context.Context, shopID string) ([]models.Fabric, error) {
	shopID = strings.TrimSpace(shopID)
	if shopID == "" {
		return nil, common.NewValidationError("id", "is required")
	}
	fabrics, err := s.api.ListShopFabrics(ctx, shopID)
	if err != nil {
		return nil, fmt.Errorf("list fabrics of shop %s: %w", shopID, err)
	}
	return fabrics, nil
}

// Mine returns the shop owned by the logged-in shop account.
func (s *ShopService) Mine(ctx context.Context) (models.Shop, error) {
	shop, err := s.api.MyShop(ctx)
	if err != nil {
		return models.Shop{}, fmt.Errorf("get own shop: %w", err)
	}
	return shop, nil
}
