package finder

import "github.com/Hilal-Ahmad786/PaperWebsite/internal/catalog"

// MaxMatches caps the result list.
const MaxMatches = 3

// Recommender turns a finder selection into suggested products.
type Recommender interface {
	Recommend(Input) []catalog.Product
}

// StaticRecommender filters the static catalog. When nothing matches it
// falls back to the first MaxMatches products, so a result is not proof of
// a fit.
type StaticRecommender struct {
	catalog *catalog.Catalog
}

// NewStaticRecommender returns a recommender over c.
func NewStaticRecommender(c *catalog.Catalog) *StaticRecommender {
	return &StaticRecommender{catalog: c}
}

// Recommend filters by application tag and origin, capped to MaxMatches.
func (s *StaticRecommender) Recommend(in Input) []catalog.Product {
	products := s.catalog.Products()
	var countries []string
	for _, o := range in.Origins {
		countries = append(countries, originCountries[o]...)
	}

	matches := make([]catalog.Product, 0, MaxMatches)
	for _, p := range products {
		if in.Application != "" && !p.HasApplication(in.Application) {
			continue
		}
		if len(in.Origins) > 0 && !p.HasOrigin(countries...) {
			continue
		}
		matches = append(matches, p)
		if len(matches) == MaxMatches {
			break
		}
	}
	if len(matches) == 0 {
		n := min(MaxMatches, len(products))
		return products[:n]
	}
	return matches
}
