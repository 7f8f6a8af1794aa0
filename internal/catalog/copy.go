package catalog

import (
	"fmt"
	"sort"
	"strings"
)

// SpecLabel identifies a specification row.
type SpecLabel string

const (
	SpecGSMRange        SpecLabel = "gsmRange"
	SpecGrades          SpecLabel = "grades"
	SpecBackColor       SpecLabel = "backColor"
	SpecReelWidth       SpecLabel = "reelWidth"
	SpecCoreSize        SpecLabel = "coreSize"
	SpecRecycledContent SpecLabel = "recycledContent"
	SpecType            SpecLabel = "type"
	SpecBurstIndex      SpecLabel = "burstIndex"
	SpecCoating         SpecLabel = "coating"
	SpecBrightness      SpecLabel = "brightness"
)

// ProductCopy is the localized text for a product.
type ProductCopy struct {
	Name        string
	Tagline     string
	Description string
}

// RegionCopy is the localized text for a region.
type RegionCopy struct {
	Name        string
	Description string
}

// Copy is the full translation record set for one locale.
type Copy struct {
	Locale     string
	Products   map[string]ProductCopy
	Regions    map[string]RegionCopy
	Specs      map[SpecLabel]string
	Tags       map[string]string
	OfferTypes map[OfferType]string
	Categories map[Category]string
}

// ProductName returns the localized name, or the slug for products without a record.
func (c Copy) ProductName(slug string) string {
	if p, ok := c.Products[slug]; ok && p.Name != "" {
		return p.Name
	}
	return slug
}

// Tag returns the localized label for a tag, or the tag itself.
func (c Copy) Tag(tag string) string {
	if v, ok := c.Tags[tag]; ok {
		return v
	}
	return tag
}

// TagList localizes tags in order.
func (c Copy) TagList(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		out = append(out, c.Tag(t))
	}
	return out
}

// Spec returns the localized label for a spec row.
func (c Copy) Spec(l SpecLabel) string {
	if v, ok := c.Specs[l]; ok {
		return v
	}
	return string(l)
}

// OfferType returns the localized offer type label.
func (c Copy) OfferType(t OfferType) string {
	if v, ok := c.OfferTypes[t]; ok {
		return v
	}
	return string(t)
}

// CopyFor returns the record set for locale, falling back to English.
func CopyFor(locale string) Copy {
	if c, ok := copies[strings.ToLower(strings.TrimSpace(locale))]; ok {
		return c
	}
	return copies["en"]
}

// CopyLocales lists the locales with translation records.
func CopyLocales() []string {
	out := make([]string, 0, len(copies))
	for l := range copies {
		out = append(out, l)
	}
	sort.Strings(out)
	return out
}

// ValidateCopy checks that every entity in c has a record in each locale.
// Offers pointing at products without a record are not reported.
func ValidateCopy(c *Catalog, locales []string) error {
	var missing []string
	for _, loc := range locales {
		cp, ok := copies[loc]
		if !ok {
			missing = append(missing, loc+": no records")
			continue
		}
		for _, p := range c.products {
			if rec, ok := cp.Products[p.Slug]; !ok || rec.Name == "" {
				missing = append(missing, fmt.Sprintf("%s: product %s", loc, p.Slug))
			}
			for _, row := range p.Specs {
				if _, ok := cp.Specs[row.Label]; !ok {
					missing = append(missing, fmt.Sprintf("%s: spec %s", loc, row.Label))
				}
			}
			for _, tag := range append(append([]string{}, p.Applications...), p.Industries...) {
				if _, ok := cp.Tags[tag]; !ok {
					missing = append(missing, fmt.Sprintf("%s: tag %s", loc, tag))
				}
			}
			if _, ok := cp.Categories[p.Category]; !ok {
				missing = append(missing, fmt.Sprintf("%s: category %s", loc, p.Category))
			}
		}
		for _, r := range c.regions {
			if rec, ok := cp.Regions[r.Slug]; !ok || rec.Name == "" {
				missing = append(missing, fmt.Sprintf("%s: region %s", loc, r.Slug))
			}
			for _, tag := range r.Customers {
				if _, ok := cp.Tags[tag]; !ok {
					missing = append(missing, fmt.Sprintf("%s: tag %s", loc, tag))
				}
			}
		}
		for _, o := range c.offers {
			if _, ok := cp.OfferTypes[o.Type]; !ok {
				missing = append(missing, fmt.Sprintf("%s: offer type %s", loc, o.Type))
			}
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return fmt.Errorf("catalog: missing translations: %s", strings.Join(dedupe(missing), ", "))
	}
	return nil
}

func dedupe(in []string) []string {
	out := make([]string, 0, len(in))
	for i, v := range in {
		if i > 0 && in[i-1] == v {
			continue
		}
		out = append(out, v)
	}
	return out
}

var copies = map[string]Copy{
	"en": {
		Locale: "en",
		Products: map[string]ProductCopy{
			"duplex-board": {
				Name:        "Duplex Board",
				Tagline:     "Coated board with grey or white back",
				Description: "Multi-ply recycled board with a coated white top, suited to folding cartons for consumer goods.",
			},
			"testliner-fluting": {
				Name:        "Testliner & Fluting",
				Tagline:     "Recycled containerboard for corrugated boxes",
				Description: "Recycled liner and medium grades for corrugated box plants and sheet feeders.",
			},
			"kraftliner-white-top": {
				Name:        "White Top Kraftliner",
				Tagline:     "Virgin fibre liner with high burst strength",
				Description: "Virgin fibre kraftliner with a bleached top layer for premium printed shipping boxes.",
			},
			"triplex-board": {
				Name:        "Triplex Board",
				Tagline:     "Double coated board with white back",
				Description: "Three-ply board with a white reverse for pharmaceutical and luxury cartons.",
			},
		},
		Regions: map[string]RegionCopy{
			"europe":      {Name: "Europe", Description: "Mill-direct supply to converters and printers across the EU."},
			"turkey-mena": {Name: "Turkey & MENA", Description: "Fast turnaround from Turkish ports to box plants across the region."},
			"asia":        {Name: "Asia", Description: "Board and containerboard for manufacturers and traders in Asia."},
		},
		Specs: map[SpecLabel]string{
			SpecGSMRange: "GSM range", SpecGrades: "Grades", SpecBackColor: "Back color",
			SpecReelWidth: "Reel width", SpecCoreSize: "Core size", SpecRecycledContent: "Recycled content",
			SpecType: "Type", SpecBurstIndex: "Burst index", SpecCoating: "Coating", SpecBrightness: "Brightness",
		},
		Tags: map[string]string{
			"fmcg": "FMCG packaging", "cosmetics": "Cosmetics", "pharma": "Pharmaceuticals",
			"electronics": "Electronics", "ecommerce": "E-commerce boxes", "shipping": "Shipping cartons",
			"industrial": "Industrial packaging", "agriculture": "Agriculture", "heavy": "Heavy-duty boxes",
			"export": "Export", "premium": "Premium printed boxes", "frozen": "Frozen food",
			"confectionery": "Confectionery", "packaging": "Packaging", "printing": "Printing",
			"converting": "Converting", "boxPlants": "Box plants", "corrugated": "Corrugated",
			"converters": "Converters", "food": "Food", "luxury": "Luxury packaging",
			"printers": "Printers", "traders": "Traders", "manufacturers": "Manufacturers",
		},
		OfferTypes: map[OfferType]string{OfferPrime: "Prime", OfferStocklot: "Stocklot"},
		Categories: map[Category]string{CategoryBoard: "Board", CategoryContainerboard: "Containerboard"},
	},
	"tr": {
		Locale: "tr",
		Products: map[string]ProductCopy{
			"duplex-board": {
				Name:        "Dupleks Karton",
				Tagline:     "Gri veya beyaz arkalı kuşe karton",
				Description: "Tüketim ürünleri katlanır kutuları için kuşe beyaz yüzeyli çok katlı geri dönüştürülmüş karton.",
			},
			"testliner-fluting": {
				Name:        "Testliner ve Fluting",
				Tagline:     "Oluklu mukavva için geri dönüştürülmüş kağıt",
				Description: "Oluklu kutu fabrikaları için geri dönüştürülmüş astar ve dalga kağıdı kaliteleri.",
			},
			"kraftliner-white-top": {
				Name:        "Beyaz Yüzeyli Kraftliner",
				Tagline:     "Yüksek patlama mukavemetli saf elyaf",
				Description: "Baskılı premium sevkiyat kutuları için ağartılmış üst katmanlı saf elyaf kraftliner.",
			},
			"triplex-board": {
				Name:        "Tripleks Karton",
				Tagline:     "Çift kuşe, beyaz arkalı karton",
				Description: "İlaç ve lüks ambalajlar için beyaz arkalı üç katlı karton.",
			},
		},
		Regions: map[string]RegionCopy{
			"europe":      {Name: "Avrupa", Description: "AB genelinde dönüştürücülere ve matbaalara fabrikadan doğrudan tedarik."},
			"turkey-mena": {Name: "Türkiye ve MENA", Description: "Türk limanlarından bölgedeki kutu fabrikalarına hızlı sevkiyat."},
			"asia":        {Name: "Asya", Description: "Asya'daki üreticiler ve tüccarlar için karton ve oluklu kağıtlar."},
		},
		Specs: map[SpecLabel]string{
			SpecGSMRange: "Gramaj aralığı", SpecGrades: "Kaliteler", SpecBackColor: "Arka renk",
			SpecReelWidth: "Bobin eni", SpecCoreSize: "Masura çapı", SpecRecycledContent: "Geri dönüşüm oranı",
			SpecType: "Tip", SpecBurstIndex: "Patlama indeksi", SpecCoating: "Kaplama", SpecBrightness: "Parlaklık",
		},
		Tags: map[string]string{
			"fmcg": "Hızlı tüketim ambalajı", "cosmetics": "Kozmetik", "pharma": "İlaç",
			"electronics": "Elektronik", "ecommerce": "E-ticaret kutuları", "shipping": "Sevkiyat kolileri",
			"industrial": "Endüstriyel ambalaj", "agriculture": "Tarım", "heavy": "Ağır hizmet kutuları",
			"export": "İhracat", "premium": "Premium baskılı kutular", "frozen": "Dondurulmuş gıda",
			"confectionery": "Şekerleme", "packaging": "Ambalaj", "printing": "Baskı",
			"converting": "Dönüştürme", "boxPlants": "Kutu fabrikaları", "corrugated": "Oluklu mukavva",
			"converters": "Dönüştürücüler", "food": "Gıda", "luxury": "Lüks ambalaj",
			"printers": "Matbaalar", "traders": "Tüccarlar", "manufacturers": "Üreticiler",
		},
		OfferTypes: map[OfferType]string{OfferPrime: "Birinci kalite", OfferStocklot: "Stok parti"},
		Categories: map[Category]string{CategoryBoard: "Karton", CategoryContainerboard: "Oluklu kağıt"},
	},
	"ar": {
		Locale: "ar",
		Products: map[string]ProductCopy{
			"duplex-board": {
				Name:        "كرتون دوبلكس",
				Tagline:     "كرتون مطلي بظهر رمادي أو أبيض",
				Description: "كرتون معاد تدويره متعدد الطبقات بوجه أبيض مطلي لعلب السلع الاستهلاكية.",
			},
			"testliner-fluting": {
				Name:        "تستلاينر وفلوتنج",
				Tagline:     "ورق معاد تدويره للصناديق المموجة",
				Description: "درجات بطانة ووسط معاد تدويرها لمصانع الصناديق المموجة.",
			},
			"kraftliner-white-top": {
				Name:        "كرافت لاينر بوجه أبيض",
				Tagline:     "ألياف بكر بقوة انفجار عالية",
				Description: "كرافت لاينر من ألياف بكر بطبقة علوية مبيضة لصناديق الشحن المطبوعة.",
			},
			"triplex-board": {
				Name:        "كرتون تريبلكس",
				Tagline:     "كرتون مطلي مرتين بظهر أبيض",
				Description: "كرتون ثلاثي الطبقات بظهر أبيض لعبوات الأدوية والتغليف الفاخر.",
			},
		},
		Regions: map[string]RegionCopy{
			"europe":      {Name: "أوروبا", Description: "توريد مباشر من المصانع إلى المحولين والمطابع في الاتحاد الأوروبي."},
			"turkey-mena": {Name: "تركيا والشرق الأوسط", Description: "شحن سريع من الموانئ التركية إلى مصانع الصناديق في المنطقة."},
			"asia":        {Name: "آسيا", Description: "كرتون وورق مموج للمصنعين والتجار في آسيا."},
		},
		Specs: map[SpecLabel]string{
			SpecGSMRange: "نطاق الجرام", SpecGrades: "الدرجات", SpecBackColor: "لون الظهر",
			SpecReelWidth: "عرض البكرة", SpecCoreSize: "قطر اللب", SpecRecycledContent: "نسبة إعادة التدوير",
			SpecType: "النوع", SpecBurstIndex: "مؤشر الانفجار", SpecCoating: "الطلاء", SpecBrightness: "السطوع",
		},
		Tags: map[string]string{
			"fmcg": "تغليف السلع الاستهلاكية", "cosmetics": "مستحضرات التجميل", "pharma": "الأدوية",
			"electronics": "الإلكترونيات", "ecommerce": "صناديق التجارة الإلكترونية", "shipping": "كراتين الشحن",
			"industrial": "التغليف الصناعي", "agriculture": "الزراعة", "heavy": "صناديق ثقيلة",
			"export": "التصدير", "premium": "صناديق مطبوعة فاخرة", "frozen": "الأغذية المجمدة",
			"confectionery": "الحلويات", "packaging": "التغليف", "printing": "الطباعة",
			"converting": "التحويل", "boxPlants": "مصانع الصناديق", "corrugated": "الكرتون المموج",
			"converters": "المحولون", "food": "الأغذية", "luxury": "التغليف الفاخر",
			"printers": "المطابع", "traders": "التجار", "manufacturers": "المصنعون",
		},
		OfferTypes: map[OfferType]string{OfferPrime: "درجة أولى", OfferStocklot: "مخزون تصفية"},
		Categories: map[Category]string{CategoryBoard: "كرتون", CategoryContainerboard: "ورق الحاويات"},
	},
}
