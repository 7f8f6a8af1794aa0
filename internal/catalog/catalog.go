// Package catalog holds the static trading catalogue: product grades, stock
// offers, sales regions and the decorative market ticker.
package catalog

import (
	"errors"
	"strings"
	"time"
)

// ErrNotFound is returned when a lookup misses.
var ErrNotFound = errors.New("catalog: not found")

// Category groups products for navigation.
type Category string

const (
	CategoryBoard          Category = "board"
	CategoryContainerboard Category = "containerboard"
)

// OfferType distinguishes first-quality material from clearance lots.
type OfferType string

const (
	OfferPrime    OfferType = "prime"
	OfferStocklot OfferType = "stocklot"
)

// Valid reports whether t is a known offer type.
func (t OfferType) Valid() bool {
	return t == OfferPrime || t == OfferStocklot
}

// SpecRow is a single line of a product specification table.
type SpecRow struct {
	Label SpecLabel
	Value string
}

// Product is a traded paper or board grade.
type Product struct {
	Slug         string
	Category     Category
	Specs        []SpecRow
	Applications []string
	Origins      []string
	Industries   []string
	Image        string
}

// HasApplication reports whether tag is one of the product's application tags.
func (p Product) HasApplication(tag string) bool {
	return containsFold(p.Applications, tag)
}

// HasOrigin reports whether the product is sourced from any of countries.
func (p Product) HasOrigin(countries ...string) bool {
	for _, c := range countries {
		if containsFold(p.Origins, c) {
			return true
		}
	}
	return false
}

// Spec returns the value of the row labelled l.
func (p Product) Spec(l SpecLabel) (string, bool) {
	for _, row := range p.Specs {
		if row.Label == l {
			return row.Value, true
		}
	}
	return "", false
}

// StockOffer is a specific lot available for sale. ProductSlug is not
// checked against the product table.
type StockOffer struct {
	ID           string
	ProductSlug  string
	GradeName    string
	GSMRange     string
	Origin       string
	QuantityTons int
	Port         string
	Availability string
	Type         OfferType
	UpdatedAt    time.Time
}

// Region describes a sales region.
type Region struct {
	Slug      string
	Ports     []string
	Customers []string
	Products  []string
}

// MarketIndex is one ticker entry. Values are display strings, not a feed.
type MarketIndex struct {
	Label  string
	Value  string
	Change string
	Up     bool
}

// Catalog is a read-only view over the static tables. The zero value is not
// usable; construct with Default or New.
type Catalog struct {
	products []Product
	offers   []StockOffer
	regions  []Region
	indices  []MarketIndex
	bySlug   map[string]int
}

// New builds a catalog from the supplied tables. Product slugs must be unique.
func New(products []Product, offers []StockOffer, regions []Region, indices []MarketIndex) (*Catalog, error) {
	c := &Catalog{
		products: products,
		offers:   offers,
		regions:  regions,
		indices:  indices,
		bySlug:   make(map[string]int, len(products)),
	}
	for i, p := range products {
		slug := strings.TrimSpace(p.Slug)
		if slug == "" {
			return nil, errors.New("catalog: empty product slug")
		}
		if _, dup := c.bySlug[slug]; dup {
			return nil, errors.New("catalog: duplicate product slug " + slug)
		}
		c.bySlug[slug] = i
	}
	return c, nil
}

// Default returns the catalog built from the bundled tables.
func Default() *Catalog {
	c, err := New(defaultProducts, defaultOffers, defaultRegions, defaultIndices)
	if err != nil {
		panic(err)
	}
	return c
}

// Products returns all products in display order.
func (c *Catalog) Products() []Product {
	return append([]Product(nil), c.products...)
}

// Product looks up a product by slug.
func (c *Catalog) Product(slug string) (Product, error) {
	i, ok := c.bySlug[strings.TrimSpace(slug)]
	if !ok {
		return Product{}, ErrNotFound
	}
	return c.products[i], nil
}

// ProductsByCategory returns the products in category, preserving order.
func (c *Catalog) ProductsByCategory(cat Category) []Product {
	var out []Product
	for _, p := range c.products {
		if p.Category == cat {
			out = append(out, p)
		}
	}
	return out
}

// Regions returns all regions.
func (c *Catalog) Regions() []Region {
	return append([]Region(nil), c.regions...)
}

// Region looks up a region by slug.
func (c *Catalog) Region(slug string) (Region, error) {
	for _, r := range c.regions {
		if r.Slug == slug {
			return r, nil
		}
	}
	return Region{}, ErrNotFound
}

// MarketIndices returns the ticker entries.
func (c *Catalog) MarketIndices() []MarketIndex {
	return append([]MarketIndex(nil), c.indices...)
}

func containsFold(list []string, v string) bool {
	v = strings.TrimSpace(v)
	if v == "" {
		return false
	}
	for _, item := range list {
		if strings.EqualFold(item, v) {
			return true
		}
	}
	return false
}
