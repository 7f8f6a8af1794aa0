package nav

import "testing"

func TestBuildMarksActiveSection(t *testing.T) {
	items := Build("tr", "/tr/products/duplex-board")
	var active []string
	for _, it := range items {
		if it.Active {
			active = append(active, it.Href)
		}
	}
	if len(active) != 1 || active[0] != "/tr/products" {
		t.Fatalf("active = %v", active)
	}
	if len(items) != len(Main) {
		t.Fatalf("got %d items", len(items))
	}
}

func TestBuildHomeHasNoActiveItem(t *testing.T) {
	for _, it := range Build("en", "/en/") {
		if it.Active {
			t.Fatalf("unexpected active item %s", it.Href)
		}
	}
}

func TestBreadcrumbs(t *testing.T) {
	crumbs := Breadcrumbs("en", "/en/products/kraftliner-white-top")
	if len(crumbs) != 3 {
		t.Fatalf("got %d crumbs", len(crumbs))
	}
	if crumbs[0].Href != "/en/" || crumbs[0].LabelKey != "nav.home" || crumbs[0].Active {
		t.Fatalf("home crumb = %+v", crumbs[0])
	}
	if crumbs[1].Href != "/en/products" || crumbs[1].LabelKey != "nav.products" {
		t.Fatalf("section crumb = %+v", crumbs[1])
	}
	if crumbs[2].Label != "Kraftliner white top" || !crumbs[2].Active {
		t.Fatalf("leaf crumb = %+v", crumbs[2])
	}

	legal := Breadcrumbs("ar", "/ar/legal/privacy")
	if legal[1].LabelKey != "nav.legal" {
		t.Fatalf("legal crumb = %+v", legal[1])
	}

	home := Breadcrumbs("en", "/en/")
	if len(home) != 1 || !home[0].Active {
		t.Fatalf("home = %+v", home)
	}
}
