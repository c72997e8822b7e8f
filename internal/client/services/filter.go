package services

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/tailorhub/internal/client/models"
	"github.com/dmitrijs2005/tailorhub/internal/common"
)

// Sort keys accepted by the catalogs. An empty key keeps backend order.
const (
	SortName       = "name"
	SortCity       = "city"
	SortRating     = "rating"
	SortStock      = "stock"
	SortExperience = "experience"
	SortPriceAsc   = "price_asc"
	SortPriceDesc  = "price_desc"
)

// PriceRange is an inclusive price interval. HasMax is false for open-ended
// ranges such as "1000" or "1000+".
type PriceRange struct {
	Min    float64
	Max    float64
	HasMax bool
}

// ParsePriceRange accepts "min-max", "min" and "min+". The empty string is
// the unbounded range.
func ParsePriceRange(s string) (PriceRange, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return PriceRange{}, nil
	}

	invalid := common.NewValidationError("priceRange", fmt.Sprintf("%q is not min-max, min or min+", s))

	if lo, hi, ok := strings.Cut(s, "-"); ok {
		lower, err1 := parsePrice(lo)
		upper, err2 := parsePrice(hi)
		if err1 != nil || err2 != nil || upper < lower {
			return PriceRange{}, invalid
		}
		return PriceRange{Min: lower, Max: upper, HasMax: true}, nil
	}

	lower, err := parsePrice(strings.TrimSuffix(s, "+"))
	if err != nil {
		return PriceRange{}, invalid
	}
	return PriceRange{Min: lower}, nil
}

func parsePrice(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, err
	}
	if v < 0 {
		return 0, fmt.Errorf("negative price %v", v)
	}
	return v, nil
}

func (r PriceRange) Contains(price float64) bool {
	if price < r.Min {
		return false
	}
	return !r.HasMax || price <= r.Max
}

// lenientRange is used during derivation; filters are validated when set,
// so an unparsable range here imposes no constraint.
func lenientRange(s string) PriceRange {
	r, err := ParsePriceRange(s)
	if err != nil {
		return PriceRange{}
	}
	return r
}

func containsFold(field, needle string) bool {
	needle = strings.TrimSpace(needle)
	return needle == "" || strings.Contains(strings.ToLower(field), strings.ToLower(needle))
}

func equalFold(field, want string) bool {
	want = strings.TrimSpace(want)
	return want == "" || strings.EqualFold(strings.TrimSpace(field), want)
}

func lessFold(a, b string) bool {
	return strings.ToLower(a) < strings.ToLower(b)
}

// deriver bundles the predicate and the comparators of one catalog kind.
type deriver[T any, F any] struct {
	match    func(item T, f F) bool
	sorts    map[string]func(a, b T) bool
	validate func(f F) error
}

func (d deriver[T, F]) derive(all []T, f F, sortBy string) []T {
	out := make([]T, 0, len(all))
	for _, it := range all {
		if d.match(it, f) {
			out = append(out, it)
		}
	}
	if less, ok := d.sorts[sortBy]; ok {
		sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
	}
	return out
}

func (d deriver[T, F]) validSort(key string) error {
	if key == "" {
		return nil
	}
	if _, ok := d.sorts[key]; !ok {
		return common.NewValidationError("sortBy", fmt.Sprintf("unknown sort key %q", key))
	}
	return nil
}

var fabricDeriver = deriver[models.Fabric, models.FabricFilters]{
	match: func(fb models.Fabric, f models.FabricFilters) bool {
		return equalFold(fb.Category, f.Category) &&
			lenientRange(f.PriceRange).Contains(fb.Price) &&
			containsFold(fb.Color, f.Color) &&
			containsFold(fb.Material, f.Material) &&
			fb.Rating >= f.MinRating &&
			(containsFold(fb.Name, f.Search) || containsFold(fb.Description, f.Search))
	},
	sorts: map[string]func(a, b models.Fabric) bool{
		SortName:      func(a, b models.Fabric) bool { return lessFold(a.Name, b.Name) },
		SortPriceAsc:  func(a, b models.Fabric) bool { return a.Price < b.Price },
		SortPriceDesc: func(a, b models.Fabric) bool { return a.Price > b.Price },
		SortRating:    func(a, b models.Fabric) bool { return a.Rating > b.Rating },
		SortStock:     func(a, b models.Fabric) bool { return a.Stock > b.Stock },
	},
	validate: func(f models.FabricFilters) error {
		if f.MinRating < 0 || f.MinRating > 5 {
			return common.NewValidationError("rating", "must be between 0 and 5")
		}
		_, err := ParsePriceRange(f.PriceRange)
		return err
	},
}

var tailorDeriver = deriver[models.Tailor, models.TailorFilters]{
	match: func(t models.Tailor, f models.TailorFilters) bool {
		return containsFold(t.Specialization, f.Specialization) &&
			equalFold(t.City, f.City) &&
			t.Rating >= f.MinRating &&
			t.Experience >= f.MinExperience &&
			lenientRange(f.PriceRange).Contains(t.StartingPrice)
	},
	sorts: map[string]func(a, b models.Tailor) bool{
		SortName:       func(a, b models.Tailor) bool { return lessFold(a.Name, b.Name) },
		SortCity:       func(a, b models.Tailor) bool { return lessFold(a.City, b.City) },
		SortRating:     func(a, b models.Tailor) bool { return a.Rating > b.Rating },
		SortExperience: func(a, b models.Tailor) bool { return a.Experience > b.Experience },
		SortPriceAsc:   func(a, b models.Tailor) bool { return a.StartingPrice < b.StartingPrice },
		SortPriceDesc:  func(a, b models.Tailor) bool { return a.StartingPrice > b.StartingPrice },
	},
	validate: func(f models.TailorFilters) error {
		if f.MinRating < 0 || f.MinRating > 5 {
			return common.NewValidationError("rating", "must be between 0 and 5")
		}
		if f.MinExperience < 0 {
			return common.NewValidationError("experience", "must not be negative")
		}
		_, err := ParsePriceRange(f.PriceRange)
		return err
	},
}

var shopDeriver = deriver[models.Shop, models.ShopFilters]{
	match: func(s models.Shop, f models.ShopFilters) bool {
		return equalFold(s.City, f.City) &&
			s.Rating >= f.MinRating &&
			containsFold(s.Name, f.Search)
	},
	sorts: map[string]func(a, b models.Shop) bool{
		SortName:   func(a, b models.Shop) bool { return lessFold(a.Name, b.Name) },
		SortCity:   func(a, b models.Shop) bool { return lessFold(a.City, b.City) },
		SortRating: func(a, b models.Shop) bool { return a.Rating > b.Rating },
	},
	validate: func(f models.ShopFilters) error {
		if f.MinRating < 0 || f.MinRating > 5 {
			return common.NewValidationError("rating", "must be between 0 and 5")
		}
		return nil
	},
}

// DeriveFabrics returns the fabrics of all matching f, ordered by sortBy.
// all is not modified.
func DeriveFabrics(all []models.Fabric, f models.FabricFilters, sortBy string) []models.Fabric {
	return fabricDeriver.derive(all, f, sortBy)
}

func DeriveTailors(all []models.Tailor, f models.TailorFilters, sortBy string) []models.Tailor {
	return tailorDeriver.derive(all, f, sortBy)
}

func DeriveShops(all []models.Shop, f models.ShopFilters, sortBy string) []models.Shop {
	return shopDeriver.derive(all, f, sortBy)
}
