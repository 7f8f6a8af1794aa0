package seo

import (
	"encoding/json"
	"testing"
)

func TestAlternates(t *testing.T) {
	alts := Alternates("https://example.com/", "/products", []string{"en", "tr", "ar"}, "en")
	if len(alts) != 4 {
		t.Fatalf("got %d alternates", len(alts))
	}
	if alts[1].Href != "https://example.com/tr/products" {
		t.Fatalf("tr = %s", alts[1].Href)
	}
	if alts[3].Lang != "x-default" || alts[3].Href != "https://example.com/en/products" {
		t.Fatalf("x-default = %+v", alts[3])
	}
}

func TestBreadcrumbListPositions(t *testing.T) {
	out := JSON(BreadcrumbList([]BreadcrumbItem{{Name: "Home", Item: "/en/"}, {Name: "Products", Item: "/en/products"}}))
	var doc struct {
		Type  string `json:"@type"`
		Items []struct {
			Position int    `json:"position"`
			Name     string `json:"name"`
		} `json:"itemListElement"`
	}
	if err := json.Unmarshal([]byte(out), &doc); err != nil {
		t.Fatal(err)
	}
	if doc.Type != "BreadcrumbList" || len(doc.Items) != 2 || doc.Items[1].Position != 2 || doc.Items[1].Name != "Products" {
		t.Fatalf("unexpected %s", out)
	}
}

func TestProductProperties(t *testing.T) {
	m := Product("Duplex Board", "GD2", "", "", "board", [][2]string{{"GSM", "200-450"}})
	props, ok := m["additionalProperty"].([]map[string]any)
	if !ok || len(props) != 1 || props[0]["value"] != "200-450" {
		t.Fatalf("props = %#v", m["additionalProperty"])
	}
	if _, ok := m["url"]; ok {
		t.Fatal("empty url must be omitted")
	}
}

func TestAbsolute(t *testing.T) {
	if got := Absolute("https://x.io/", "/assets/a.svg"); got != "https://x.io/assets/a.svg" {
		t.Fatal(got)
	}
	if got := Absolute("https://x.io", "https://cdn/a"); got != "https://cdn/a" {
		t.Fatal(got)
	}
}
