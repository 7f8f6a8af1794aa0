package catalog

import (
	"errors"
	"testing"
)

func TestProductLookup(t *testing.T) {
	c := Default()
	seen := map[string]bool{}
	for _, p := range c.Products() {
		if seen[p.Slug] {
			t.Fatalf("duplicate slug %q", p.Slug)
		}
		seen[p.Slug] = true
		got, err := c.Product(p.Slug)
		if err != nil {
			t.Fatalf("Product(%q): %v", p.Slug, err)
		}
		if got.Slug != p.Slug {
			t.Fatalf("Product(%q) returned %q", p.Slug, got.Slug)
		}
	}
	if _, err := c.Product("fbb"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for fbb, got %v", err)
	}
	if _, err := c.Product(""); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for empty slug, got %v", err)
	}
}

func TestNewRejectsDuplicateSlugs(t *testing.T) {
	_, err := New([]Product{{Slug: "a"}, {Slug: "a"}}, nil, nil, nil)
	if err == nil {
		t.Fatal("expected duplicate slug error")
	}
}

func TestFilterOffers(t *testing.T) {
	c := Default()
	all := c.Offers()

	cases := []struct {
		name   string
		filter OfferFilter
	}{
		{"zero", OfferFilter{}},
		{"product", OfferFilter{Product: "duplex-board"}},
		{"origin", OfferFilter{Origin: "Turkey"}},
		{"type", OfferFilter{Type: OfferStocklot}},
		{"product+type", OfferFilter{Product: "testliner-fluting", Type: OfferPrime}},
		{"all three", OfferFilter{Product: "duplex-board", Origin: "India", Type: OfferStocklot}},
		{"dangling product", OfferFilter{Product: "fbb"}},
		{"no match", OfferFilter{Product: "duplex-board", Origin: "EU"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := c.FilterOffers(tc.filter)
			// expected subset computed independently, preserving order
			var want []string
			for _, o := range all {
				if tc.filter.Product != "" && o.ProductSlug != tc.filter.Product {
					continue
				}
				if tc.filter.Origin != "" && o.Origin != tc.filter.Origin {
					continue
				}
				if tc.filter.Type != "" && o.Type != tc.filter.Type {
					continue
				}
				want = append(want, o.ID)
			}
			if len(got) != len(want) {
				t.Fatalf("got %d offers, want %d", len(got), len(want))
			}
			for i := range got {
				if got[i].ID != want[i] {
					t.Fatalf("offer %d: got %s want %s", i, got[i].ID, want[i])
				}
			}
		})
	}
}

func TestClearFiltersReturnsFullSetInOrder(t *testing.T) {
	c := Default()
	_ = c.FilterOffers(OfferFilter{Product: "duplex-board"})
	got := c.FilterOffers(OfferFilter{})
	want := []string{"SO-2024-001", "SO-2024-002", "SO-2024-003", "SO-2024-004", "SO-2024-005", "SO-2024-006"}
	if len(got) != len(want) {
		t.Fatalf("got %d offers", len(got))
	}
	for i, id := range want {
		if got[i].ID != id {
			t.Fatalf("position %d: got %s want %s", i, got[i].ID, id)
		}
	}
}

func TestOfferLookupsAndDistincts(t *testing.T) {
	c := Default()
	o, err := c.Offer("SO-2024-004")
	if err != nil || o.Port != "Hamburg" {
		t.Fatalf("unexpected offer %+v err=%v", o, err)
	}
	if _, err := c.Offer("SO-1999-999"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	origins := c.OfferOrigins()
	if want := []string{"China", "EU", "India", "Turkey"}; len(origins) != len(want) {
		t.Fatalf("origins = %v", origins)
	}
	types := c.OfferTypes()
	if len(types) != 2 || types[0] != OfferPrime || types[1] != OfferStocklot {
		t.Fatalf("types = %v", types)
	}
	if n := len(c.OffersByType(OfferPrime)); n != 4 {
		t.Fatalf("prime offers = %d", n)
	}
	if n := len(c.OffersByProduct("testliner-fluting")); n != 2 {
		t.Fatalf("testliner offers = %d", n)
	}
}

func TestValidateCopy(t *testing.T) {
	if err := ValidateCopy(Default(), CopyLocales()); err != nil {
		t.Fatal(err)
	}
}

func TestValidateCopyReportsMissingRecords(t *testing.T) {
	c, err := New([]Product{{Slug: "mystery-board", Category: CategoryBoard}}, nil, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := ValidateCopy(c, []string{"en"}); err == nil {
		t.Fatal("expected missing product record")
	}
	if err := ValidateCopy(Default(), []string{"xx"}); err == nil {
		t.Fatal("expected missing locale")
	}
}

func TestCopyFallbacks(t *testing.T) {
	cp := CopyFor("de")
	if cp.Locale != "en" {
		t.Fatalf("fallback locale = %s", cp.Locale)
	}
	if got := cp.ProductName("fbb"); got != "fbb" {
		t.Fatalf("dangling product name = %q", got)
	}
	if got := CopyFor("TR").ProductName("duplex-board"); got != "Dupleks Karton" {
		t.Fatalf("tr name = %q", got)
	}
}
