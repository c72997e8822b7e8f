package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/tailorhub/internal/client/client"
	"github.com/dmitrijs2005/tailorhub/internal/client/models"
	"github.com/dmitrijs2005/tailorhub/internal/client/state"
	"github.com/dmitrijs2005/tailorhub/internal/logging"
)

// Catalog holds a fetched list and the view derived from it. Filtered is
// recomputed from All, Filters and SortBy on every change and is never
// edited on its own.
type Catalog[T any, F any] struct {
	name  string
	fetch func(ctx context.Context) ([]T, error)
	d     deriver[T, F]
	log   logging.Logger

	mu    sync.Mutex
	state *state.Holder[models.CatalogState[T, F]]
}

type (
	FabricCatalog = Catalog[models.Fabric, models.FabricFilters]
	TailorCatalog = Catalog[models.Tailor, models.TailorFilters]
	ShopCatalog   = Catalog[models.Shop, models.ShopFilters]
)

func newCatalog[T any, F any](name string, fetch func(context.Context) ([]T, error), d deriver[T, F], log logging.Logger) *Catalog[T, F] {
	if log == nil {
		log = logging.Discard()
	}
	return &Catalog[T, F]{
		name:  name,
		fetch: fetch,
		d:     d,
		log:   log.With("component", "catalog", "catalog", name),
		state: state.New(models.CatalogState[T, F]{}),
	}
}

func NewFabricCatalog(api client.CatalogAPI, log logging.Logger) *FabricCatalog {
	return newCatalog("fabrics", api.ListFabrics, fabricDeriver, log)
}

func NewTailorCatalog(api client.CatalogAPI, log logging.Logger) *TailorCatalog {
	return newCatalog("tailors", api.ListTailors, tailorDeriver, log)
}

func NewShopCatalog(api client.CatalogAPI, log logging.Logger) *ShopCatalog {
	return newCatalog("shops", api.ListShops, shopDeriver, log)
}

func (c *Catalog[T, F]) State() models.CatalogState[T, F] {
	return c.state.Get()
}

func (c *Catalog[T, F]) Subscribe(fn func(models.CatalogState[T, F])) (unsubscribe func()) {
	return c.state.Subscribe(fn)
}

// Load replaces All with a fresh fetch and re-derives the view. On failure
// the previous list is kept.
func (c *Catalog[T, F]) Load(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.state.Update(func(v *models.CatalogState[T, F]) {
		v.Loading = true
		v.Error = ""
	})

	items, err := c.fetch(ctx)
	if err != nil {
		c.state.Update(func(v *models.CatalogState[T, F]) {
			v.Loading = false
			v.Error = client.ErrorMessage(err)
		})
		c.log.Warn(ctx, "catalog load failed", "error", err)
		return fmt.Errorf("load %s: %w", c.name, err)
	}
	if items == nil {
		items = []T{}
	}

	c.state.Update(func(v *models.CatalogState[T, F]) {
		v.All = items
		v.Filtered = c.d.derive(items, v.Filters, v.SortBy)
		v.Loading = false
	})
	c.log.Debug(ctx, "catalog loaded", "count", len(items))
	return nil
}

// SetFilters validates f and applies it.
func (c *Catalog[T, F]) SetFilters(f F) error {
	if err := c.d.validate(f); err != nil {
		c.state.Update(func(v *models.CatalogState[T, F]) { v.Error = client.ErrorMessage(err) })
		return err
	}
	c.apply(func(v *models.CatalogState[T, F]) { v.Filters = f })
	return nil
}

// SetSort changes the ordering. Unknown keys are rejected.
func (c *Catalog[T, F]) SetSort(key string) error {
	if err := c.d.validSort(key); err != nil {
		c.state.Update(func(v *models.CatalogState[T, F]) { v.Error = client.ErrorMessage(err) })
		return err
	}
	c.apply(func(v *models.CatalogState[T, F]) { v.SortBy = key })
	return nil
}

// ClearFilters drops every filter; the sort key is kept.
func (c *Catalog[T, F]) ClearFilters() {
	c.apply(func(v *models.CatalogState[T, F]) {
		var zero F
		v.Filters = zero
	})
}

func (c *Catalog[T, F]) apply(change func(v *models.CatalogState[T, F])) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.state.Update(func(v *models.CatalogState[T, F]) {
		change(v)
		v.Error = ""
		v.Filtered = c.d.derive(v.All, v.Filters, v.SortBy)
	})
}
