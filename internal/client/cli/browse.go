package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/tailorhub/internal/client/models"
	"github.com/dmitrijs2005/tailorhub/internal/client/services"
)

// setFilter applies one key=value pair to the filter value f. It reports
// false for keys it does not know.
type setFilter[F any] func(f *F, key, value string) (bool, error)

// browse drives a catalog from REPL arguments: "reload" refetches, "clear"
// drops filters, sort=<key> reorders and any other key=value narrows the
// current filters.
func browse[T, F any](ctx context.Context, cat *services.Catalog[T, F], args []string, set setFilter[F]) ([]T, error) {
	kv, bare, err := ParseKV(args)
	if err != nil {
		return nil, err
	}

	reload := false
	for _, w := range bare {
		switch strings.ToLower(w) {
		case "reload":
			reload = true
		case "clear":
			cat.ClearFilters()
		default:
			return nil, errUsage
		}
	}

	if st := cat.State(); reload || st.All == nil {
		if err := cat.Load(ctx); err != nil {
			return nil, err
		}
	}

	if sortBy, ok := kv["sort"]; ok {
		delete(kv, "sort")
		if err := cat.SetSort(sortBy); err != nil {
			return nil, err
		}
	}

	if len(kv) > 0 {
		f := cat.State().Filters
		for k, v := range kv {
			known, err := set(&f, k, v)
			if err != nil {
				return nil, err
			}
			if !known {
				return nil, fmt.Errorf("unknown filter %q", k)
			}
		}
		if err := cat.SetFilters(f); err != nil {
			return nil, err
		}
	}

	return cat.State().Filtered, nil
}

func setFabricFilter(f *models.FabricFilters, key, value string) (bool, error) {
	switch key {
	case "category":
		f.Category = value
	case "price":
		f.PriceRange = value
	case "color":
		f.Color = value
	case "material":
		f.Material = value
	case "q", "search":
		f.Search = value
	case "rating":
		if value == "" {
			f.MinRating = 0
			return true, nil
		}
		r, err := parseFloatArg(key, value)
		if err != nil {
			return true, err
		}
		f.MinRating = r
	default:
		return false, nil
	}
	return true, nil
}

func setTailorFilter(f *models.TailorFilters, key, value string) (bool, error) {
	switch key {
	case "spec", "specialization":
		f.Specialization = value
	case "city":
		f.City = value
	case "price":
		f.PriceRange = value
	case "rating":
		if value == "" {
			f.MinRating = 0
			return true, nil
		}
		r, err := parseFloatArg(key, value)
		if err != nil {
			return true, err
		}
		f.MinRating = r
	case "exp", "experience":
		if value == "" {
			f.MinExperience = 0
			return true, nil
		}
		n, err := parseIntArg(key, value)
		if err != nil {
			return true, err
		}
		f.MinExperience = n
	default:
		return false, nil
	}
	return true, nil
}

func setShopFilter(f *models.ShopFilters, key, value string) (bool, error) {
	switch key {
	case "city":
		f.City = value
	case "q", "search":
		f.Search = value
	case "rating":
		if value == "" {
			f.MinRating = 0
			return true, nil
		}
		r, err := parseFloatArg(key, value)
		if err != nil {
			return true, err
		}
		f.MinRating = r
	default:
		return false, nil
	}
	return true, nil
}

func (a *App) Fabrics(ctx context.Context, args []string) error {
	list, err := browse(ctx, a.svc.Fabrics, args, setFabricFilter)
	if err != nil {
		return err
	}
	a.printFabrics(list, len(a.svc.Fabrics.State().All))
	return nil
}

func (a *App) printFabrics(list []models.Fabric, total int) {
	if len(list) == 0 {
		printlnFn("No fabrics match.")
		return
	}
	rows := make([][]string, 0, len(list))
	for _, f := range list {
		rows = append(rows, []string{f.ID, f.Name, f.Category, f.Color, f.Material,
			a.amount(f.Price), strconv.Itoa(f.Stock), stars(f.Rating), orDash(f.Shop.Name)})
	}
	table([]string{"ID", "NAME", "CATEGORY", "COLOR", "MATERIAL", "PRICE", "STOCK", "RATING", "SHOP"}, rows)
	if total > 0 {
		printlnFn(fmt.Sprintf("%d of %d fabrics", len(list), total))
	}
}

func (a *App) Fabric(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errUsage
	}
	f, err := a.svc.Fabric.Get(ctx, args[0])
	if err != nil {
		return err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s  (%s)\n", f.Name, f.ID)
	fmt.Fprintf(&b, "%s %s %s, %s\n", f.Category, f.Color, f.Material, a.amount(f.Price))
	fmt.Fprintf(&b, "in stock: %d, rating: %s from %d reviews\n", f.Stock, stars(f.Rating), f.NumReviews)
	fmt.Fprintf(&b, "shop: %s %s", orDash(f.Shop.Name), orDash(f.Shop.City))
	if f.Description != "" {
		fmt.Fprintf(&b, "\n\n%s", f.Description)
	}
	for _, r := range f.Reviews {
		fmt.Fprintf(&b, "\n  %d/5 %s: %s", r.Rating, orDash(r.UserName), r.Comment)
	}
	printlnFn(b.String())
	return nil
}

func (a *App) Review(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errUsage
	}
	s, err := getSimpleText(a.reader, "Rating (1-5)", a.out)
	if err != nil {
		return err
	}
	rating, err := parseIntArg("rating", s)
	if err != nil {
		return err
	}
	comment, err := GetMultiline(a.reader, "Comment", a.out)
	if err != nil {
		return err
	}
	if _, err := a.svc.Fabric.AddReview(ctx, args[0], rating, comment); err != nil {
		return err
	}
	printlnFn("Thanks for your review.")
	return nil
}

func (a *App) ShopsCmd(ctx context.Context, args []string) error {
	list, err := browse(ctx, a.svc.Shops.Catalog, args, setShopFilter)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		printlnFn("No shops match.")
		return nil
	}
	rows := make([][]string, 0, len(list))
	for _, s := range list {
		rows = append(rows, []string{s.ID, s.Name, s.City, stars(s.Rating)})
	}
	table([]string{"ID", "NAME", "CITY", "RATING"}, rows)
	return nil
}

func (a *App) Shop(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errUsage
	}
	s, err := a.svc.Shops.Get(ctx, args[0])
	if err != nil {
		return err
	}
	printlnFn(fmt.Sprintf("%s  (%s)\n%s, %s  %s", s.Name, s.ID, orDash(s.Address), orDash(s.City), stars(s.Rating)))
	if s.Description != "" {
		printlnFn(s.Description)
	}

	fabrics, err := a.svc.Shops.Fabrics(ctx, s.ID)
	if err != nil {
		return err
	}
	a.printFabrics(fabrics, 0)
	return nil
}

func (a *App) TailorsCmd(ctx context.Context, args []string) error {
	list, err := browse(ctx, a.svc.Tailors, args, setTailorFilter)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		printlnFn("No tailors match.")
		return nil
	}
	rows := make([][]string, 0, len(list))
	for _, t := range list {
		rows = append(rows, []string{t.ID, t.Name, t.City, t.Specialization,
			fmt.Sprintf("%d yrs", t.Experience), "from " + a.amount(t.StartingPrice), stars(t.Rating)})
	}
	table([]string{"ID", "NAME", "CITY", "SPECIALIZATION", "EXPERIENCE", "PRICE", "RATING"}, rows)
	return nil
}

func (a *App) TailorCmd(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errUsage
	}
	t, err := a.svc.Tailor.Get(ctx, args[0])
	if err != nil {
		return err
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s  (%s)\n", t.Name, t.ID)
	fmt.Fprintf(&b, "%s, %s, %d years, from %s, %s", t.Specialization, t.City, t.Experience, a.amount(t.StartingPrice), stars(t.Rating))
	if t.Bio != "" {
		fmt.Fprintf(&b, "\n\n%s", t.Bio)
	}
	if len(t.Portfolio) > 0 {
		fmt.Fprintf(&b, "\nportfolio: %s", strings.Join(t.Portfolio, ", "))
	}
	printlnFn(b.String())
	return nil
}
