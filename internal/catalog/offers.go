package catalog

import (
	"sort"
	"strings"
)

// OfferFilter narrows the stock offer list. Empty fields match everything.
type OfferFilter struct {
	Product string
	Origin  string
	Type    OfferType
}

// IsZero reports whether no criteria are set.
func (f OfferFilter) IsZero() bool {
	return strings.TrimSpace(f.Product) == "" && strings.TrimSpace(f.Origin) == "" && f.Type == ""
}

// Matches reports whether o satisfies every non-empty criterion.
func (f OfferFilter) Matches(o StockOffer) bool {
	if p := strings.TrimSpace(f.Product); p != "" && o.ProductSlug != p {
		return false
	}
	if origin := strings.TrimSpace(f.Origin); origin != "" && !strings.EqualFold(o.Origin, origin) {
		return false
	}
	if f.Type != "" && o.Type != f.Type {
		return false
	}
	return true
}

// Offers returns every stock offer in table order.
func (c *Catalog) Offers() []StockOffer {
	return append([]StockOffer(nil), c.offers...)
}

// Offer looks up an offer by id.
func (c *Catalog) Offer(id string) (StockOffer, error) {
	id = strings.TrimSpace(id)
	for _, o := range c.offers {
		if o.ID == id {
			return o, nil
		}
	}
	return StockOffer{}, ErrNotFound
}

// FilterOffers returns the offers matching f in table order. A zero filter
// returns the full list.
func (c *Catalog) FilterOffers(f OfferFilter) []StockOffer {
	out := make([]StockOffer, 0, len(c.offers))
	for _, o := range c.offers {
		if f.Matches(o) {
			out = append(out, o)
		}
	}
	return out
}

// OffersByProduct returns offers referencing slug.
func (c *Catalog) OffersByProduct(slug string) []StockOffer {
	return c.FilterOffers(OfferFilter{Product: slug})
}

// OffersByType returns offers of type t.
func (c *Catalog) OffersByType(t OfferType) []StockOffer {
	return c.FilterOffers(OfferFilter{Type: t})
}

// OfferOrigins returns the distinct origin countries, sorted.
func (c *Catalog) OfferOrigins() []string {
	seen := make(map[string]struct{})
	var out []string
	for _, o := range c.offers {
		if _, ok := seen[o.Origin]; ok {
			continue
		}
		seen[o.Origin] = struct{}{}
		out = append(out, o.Origin)
	}
	sort.Strings(out)
	return out
}

// OfferTypes returns the distinct offer types in first-seen order.
func (c *Catalog) OfferTypes() []OfferType {
	seen := make(map[OfferType]struct{})
	var out []OfferType
	for _, o := range c.offers {
		if _, ok := seen[o.Type]; ok {
			continue
		}
		seen[o.Type] = struct{}{}
		out = append(out, o.Type)
	}
	return out
}

// OfferProducts returns the distinct product slugs referenced by offers,
// including slugs that have no product record.
func (c *Catalog) OfferProducts() []string {
	seen := make(map[string]struct{})
	var out []string
	for _, o := range c.offers {
		if _, ok := seen[o.ProductSlug]; ok {
			continue
		}
		seen[o.ProductSlug] = struct{}{}
		out = append(out, o.ProductSlug)
	}
	return out
}
