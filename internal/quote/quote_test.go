package quote

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Hilal-Ahmad786/PaperWebsite/internal/catalog"
	"github.com/Hilal-Ahmad786/PaperWebsite/internal/wizard"
)

func TestMockPricingEngine(t *testing.T) {
	engine := NewMockPricingEngine(850)
	cases := []struct {
		qty        int
		total      int64
		discounted bool
	}{
		{50, 42500, false},
		{99, 84150, false},
		{100, 80750, true},
		{150, 121125, true},
		{20, 17000, false},
	}
	for _, tc := range cases {
		est, err := engine.Estimate(Request{ProductSlug: "duplex-board", Quantity: tc.qty})
		require.NoError(t, err)
		require.Equal(t, tc.total, est.Total, "qty %d", tc.qty)
		require.Equal(t, tc.discounted, est.Discounted)
		require.Equal(t, "CIF", est.Incoterm)
	}
}

func TestEstimateRequiresProductAndQuantity(t *testing.T) {
	engine := NewMockPricingEngine(0)
	_, err := engine.Estimate(Request{Quantity: 50})
	require.ErrorIs(t, err, ErrNoEstimate)
	_, err = engine.Estimate(Request{ProductSlug: "duplex-board"})
	require.ErrorIs(t, err, ErrNoEstimate)
	_, err = engine.Estimate(Request{ProductSlug: "duplex-board", Quantity: -5})
	require.ErrorIs(t, err, ErrNoEstimate)
}

func TestEstimateRejectsOversizedQuantity(t *testing.T) {
	engine := NewMockPricingEngine(0)
	for _, qty := range []int{MaxQuantity + 1, 2147483647000000, math.MaxInt64} {
		_, err := engine.Estimate(Request{ProductSlug: "duplex-board", Quantity: qty})
		require.ErrorIs(t, err, ErrNoEstimate, "qty %d", qty)
	}

	est, err := engine.Estimate(Request{ProductSlug: "duplex-board", Quantity: MaxQuantity})
	require.NoError(t, err)
	require.Equal(t, int64(80750000), est.Total)

	_, err = NewMockPricingEngine(math.MaxFloat64).Estimate(Request{ProductSlug: "duplex-board", Quantity: MaxQuantity})
	require.ErrorIs(t, err, ErrNoEstimate)
}

func TestValidate(t *testing.T) {
	c := catalog.Default()
	known := func(slug string) bool { _, err := c.Product(slug); return err == nil }

	require.Empty(t, Validate(Request{ProductSlug: "duplex-board", Quantity: 5}, known))
	errs := Validate(Request{ProductSlug: "fbb", Quantity: 0}, known)
	require.Len(t, errs, 2)
	require.Equal(t, "productSlug", errs[0].Field)

	errs = Validate(Request{ProductSlug: "duplex-board", Quantity: math.MaxInt64}, known)
	require.Equal(t, []FieldError{{Field: "quantity", Message: "exceeds maximum"}}, errs)
	require.Empty(t, Validate(Request{ProductSlug: "duplex-board", Quantity: MaxQuantity}, known))
	require.True(t, Request{Quantity: 5}.BelowContainerLoad())
	require.False(t, DefaultRequest().BelowContainerLoad())
}

func TestFlow(t *testing.T) {
	m, err := NewFlow(wizard.NewMemoryStore(), nil)
	require.NoError(t, err)
	require.ErrorIs(t, m.Advance(), wizard.ErrIncomplete)

	require.NoError(t, m.Update(func(r *Request) { r.ProductSlug = "testliner-fluting" }))
	require.NoError(t, m.Advance())
	require.NoError(t, m.Update(func(r *Request) { r.Quantity = 150; r.Port = "Mersin"; r.Incoterm = "fob" }))
	require.NoError(t, m.Advance())

	res, ok := m.Result()
	require.True(t, ok)
	require.True(t, res.OK)
	require.Equal(t, int64(121125), res.Estimate.Total)
	require.Equal(t, "FOB", res.Estimate.Incoterm)
}

func TestGSMOptions(t *testing.T) {
	p, err := catalog.Default().Product("duplex-board")
	require.NoError(t, err)
	require.Equal(t, []string{"230–450 gsm"}, GSMOptions(p))
	require.Nil(t, GSMOptions(catalog.Product{}))
}
