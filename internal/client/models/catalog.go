package models

import "time"

type ShopRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	City string `json:"city,omitempty"`
}

type Fabric struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Category    string    `json:"category"`
	Color       string    `json:"color"`
	Material    string    `json:"material"`
	Price       float64   `json:"price"`
	Stock       int       `json:"stock"`
	Rating      float64   `json:"rating"`
	NumReviews  int       `json:"numReviews"`
	Images      []string  `json:"images,omitempty"`
	Shop        ShopRef   `json:"shop"`
	Reviews     []Review  `json:"reviews,omitempty"`
	CreatedAt   time.Time `json:"createdAt,omitempty"`
}

type Tailor struct {
	ID             string   `json:"id"`
	UserID         string   `json:"userId,omitempty"`
	Name           string   `json:"name"`
	City           string   `json:"city"`
	Specialization string   `json:"specialization"`
	Experience     int      `json:"experience"`
	Rating         float64  `json:"rating"`
	StartingPrice  float64  `json:"startingPrice"`
	Bio            string   `json:"bio,omitempty"`
	Portfolio      []string `json:"portfolio,omitempty"`
}

type Shop struct {
	ID          string  `json:"id"`
	OwnerID     string  `json:"ownerId,omitempty"`
	Name        string  `json:"name"`
	City        string  `json:"city"`
	Address     string  `json:"address,omitempty"`
	Description string  `json:"description,omitempty"`
	Rating      float64 `json:"rating"`
}

// FabricFilters narrows the fabric catalog. Empty fields impose no constraint.
type FabricFilters struct {
	Category   string
	PriceRange string
	Color      string
	Material   string
	MinRating  float64
	Search     string
}

type TailorFilters struct {
	Specialization string
	City           string
	MinRating      float64
	MinExperience  int
	PriceRange     string
}

type ShopFilters struct {
	City      string
	MinRating float64
	Search    string
}

// CatalogState is the observable state of a catalog holder. Filtered is always
// derived from All, Filters and SortBy.
type CatalogState[T any, F any] struct {
	All      []T
	Filtered []T
	Filters  F
	SortBy   string
	Loading  bool
	Error    string
}
