package catalog

import "time"

var defaultProducts = []Product{
	{
		Slug:     "duplex-board",
		Category: CategoryBoard,
		Specs: []SpecRow{
			{Label: SpecGSMRange, Value: "230–450 gsm"},
			{Label: SpecGrades, Value: "GC1, GC2, GD2"},
			{Label: SpecBackColor, Value: "Grey / White"},
			{Label: SpecReelWidth, Value: "600–2800 mm"},
			{Label: SpecCoreSize, Value: "76mm / 100mm"},
		},
		Applications: []string{"fmcg", "cosmetics", "pharma", "electronics"},
		Origins:      []string{"Turkey", "India", "China", "EU"},
		Industries:   []string{"packaging", "printing", "converting"},
		Image:        "/assets/img/products/duplex-board.svg",
	},
	{
		Slug:     "testliner-fluting",
		Category: CategoryContainerboard,
		Specs: []SpecRow{
			{Label: SpecGSMRange, Value: "100–200 gsm"},
			{Label: SpecGrades, Value: "TL1, TL2, TL3, Fluting"},
			{Label: SpecRecycledContent, Value: "60–100%"},
			{Label: SpecReelWidth, Value: "800–2800 mm"},
			{Label: SpecCoreSize, Value: "76mm"},
		},
		Applications: []string{"ecommerce", "shipping", "industrial", "agriculture"},
		Origins:      []string{"Turkey", "EU", "Egypt"},
		Industries:   []string{"boxPlants", "corrugated", "converters"},
		Image:        "/assets/img/products/testliner-fluting.svg",
	},
	{
		Slug:     "kraftliner-white-top",
		Category: CategoryContainerboard,
		Specs: []SpecRow{
			{Label: SpecGSMRange, Value: "125–300 gsm"},
			{Label: SpecType, Value: "Virgin Fiber"},
			{Label: SpecBurstIndex, Value: "3.5–5.5 kPa·m²/g"},
			{Label: SpecReelWidth, Value: "1000–2800 mm"},
			{Label: SpecCoreSize, Value: "76mm / 100mm"},
		},
		Applications: []string{"heavy", "export", "premium", "frozen"},
		Origins:      []string{"EU", "Russia", "Brazil", "Nordic"},
		Industries:   []string{"corrugated", "export", "food"},
		Image:        "/assets/img/products/kraftliner-white-top.svg",
	},
	{
		Slug:     "triplex-board",
		Category: CategoryBoard,
		Specs: []SpecRow{
			{Label: SpecGSMRange, Value: "230–450 gsm"},
			{Label: SpecCoating, Value: "Double Coated"},
			{Label: SpecBrightness, Value: "80–90% ISO"},
			{Label: SpecReelWidth, Value: "600–2400 mm"},
			{Label: SpecCoreSize, Value: "76mm / 100mm"},
		},
		Applications: []string{"fmcg", "pharma", "cosmetics", "confectionery"},
		Origins:      []string{"Turkey", "China", "India", "EU"},
		Industries:   []string{"packaging", "printing", "luxury"},
		Image:        "/assets/img/products/triplex-board.svg",
	},
}

var defaultOffers = []StockOffer{
	{
		ID: "SO-2024-001", ProductSlug: "duplex-board", GradeName: "GC1 Duplex Board",
		GSMRange: "300 gsm", Origin: "Turkey", QuantityTons: 150, Port: "Mersin",
		Availability: "Ready to Ship", Type: OfferPrime, UpdatedAt: day(2024, 12, 1),
	},
	{
		ID: "SO-2024-002", ProductSlug: "testliner-fluting", GradeName: "TL3 Testliner",
		GSMRange: "120–140 gsm", Origin: "Turkey", QuantityTons: 200, Port: "Istanbul",
		Availability: "In Production - 14 days", Type: OfferPrime, UpdatedAt: day(2024, 12, 1),
	},
	{
		ID: "SO-2024-003", ProductSlug: "duplex-board", GradeName: "GD2 Grey Back",
		GSMRange: "230–280 gsm", Origin: "India", QuantityTons: 100, Port: "Mumbai",
		Availability: "Ready to Ship", Type: OfferStocklot, UpdatedAt: day(2024, 11, 28),
	},
	{
		ID: "SO-2024-004", ProductSlug: "kraftliner-white-top", GradeName: "White Top Kraftliner",
		GSMRange: "150–175 gsm", Origin: "EU", QuantityTons: 80, Port: "Hamburg",
		Availability: "Ready to Ship", Type: OfferPrime, UpdatedAt: day(2024, 11, 30),
	},
	{
		ID: "SO-2024-005", ProductSlug: "testliner-fluting", GradeName: "Fluting Medium",
		GSMRange: "100–120 gsm", Origin: "Turkey", QuantityTons: 300, Port: "Izmir",
		Availability: "In 2 Weeks", Type: OfferPrime, UpdatedAt: day(2024, 12, 1),
	},
	{
		// fbb has no product record.
		ID: "SO-2024-006", ProductSlug: "fbb", GradeName: "FBB Coated Board",
		GSMRange: "250–300 gsm", Origin: "China", QuantityTons: 120, Port: "Shanghai",
		Availability: "Ready to Ship", Type: OfferStocklot, UpdatedAt: day(2024, 11, 25),
	},
}

var defaultRegions = []Region{
	{
		Slug:      "europe",
		Ports:     []string{"Hamburg", "Rotterdam", "Antwerp", "Gdansk"},
		Customers: []string{"converters", "printers", "traders"},
		Products:  []string{"duplex-board", "testliner-fluting", "kraftliner-white-top"},
	},
	{
		Slug:      "turkey-mena",
		Ports:     []string{"Istanbul", "Mersin", "Izmir", "Ambarli"},
		Customers: []string{"boxPlants", "packaging", "export"},
		Products:  []string{"testliner-fluting", "duplex-board", "kraftliner-white-top"},
	},
	{
		Slug:      "asia",
		Ports:     []string{"Shanghai", "Mumbai", "Jakarta", "Singapore"},
		Customers: []string{"manufacturers", "traders", "converters"},
		Products:  []string{"duplex-board", "triplex-board", "testliner-fluting"},
	},
}

var defaultIndices = []MarketIndex{
	{Label: "NBSK PULP", Value: "$1,200", Change: "▲ 2.3%", Up: true},
	{Label: "TESTLINER EU", Value: "€650", Change: "▼ 0.8%", Up: false},
	{Label: "KRAFTLINER", Value: "$890", Change: "▲ 1.2%", Up: true},
	{Label: "FREIGHT INDEX", Value: "$3,200", Change: "▲ 5.1%", Up: true},
	{Label: "DUPLEX BOARD TR", Value: "₺12,500", Change: "▲ 0.5%", Up: true},
	{Label: "FBB CHINA", Value: "¥4,200", Change: "▼ 1.3%", Up: false},
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
