// Package quote estimates indicative prices for a shipment request.
package quote

import (
	"errors"
	"math"
	"strings"
)

const (
	// DefaultBaseRate is the mock price per ton in USD.
	DefaultBaseRate = 850.0
	// MinQuantity is one full container load, in tons.
	MinQuantity = 20
	// VolumeThreshold is the quantity from which the volume discount applies.
	VolumeThreshold = 100
	// MaxQuantity is the largest quantity, in tons, the site will price.
	MaxQuantity = 100000
	// VolumeDiscount multiplies the total at or above VolumeThreshold.
	VolumeDiscount = 0.95
	// DefaultIncoterm is used when none is given.
	DefaultIncoterm = "CIF"
)

// Step ids of the quote flow.
const (
	StepProduct  = "product"
	StepShipment = "shipment"
	StepEstimate = "estimate"
)

// Steps is the quote flow order.
var Steps = []string{StepProduct, StepShipment, StepEstimate}

// Incoterms lists the delivery terms offered on the form.
var Incoterms = []string{"EXW", "FOB", "CFR", "CIF", "DAP"}

// Request is a quote request as entered by the visitor.
type Request struct {
	ProductSlug string `json:"productSlug"`
	GSM         string `json:"gsm"`
	Quantity    int    `json:"quantity"`
	Port        string `json:"port"`
	Incoterm    string `json:"incoterm"`
}

// DefaultRequest returns the form defaults.
func DefaultRequest() Request {
	return Request{Quantity: MinQuantity, Incoterm: DefaultIncoterm}
}

// Normalize trims fields and fills the default incoterm.
func (r Request) Normalize() Request {
	r.ProductSlug = strings.TrimSpace(r.ProductSlug)
	r.GSM = strings.TrimSpace(r.GSM)
	r.Port = strings.TrimSpace(r.Port)
	r.Incoterm = strings.ToUpper(strings.TrimSpace(r.Incoterm))
	if r.Incoterm == "" {
		r.Incoterm = DefaultIncoterm
	}
	return r
}

// Estimate is a computed indicative price.
type Estimate struct {
	Total      int64   `json:"total"`
	Currency   string  `json:"currency"`
	BaseRate   float64 `json:"baseRate"`
	Quantity   int     `json:"quantity"`
	Discounted bool    `json:"discounted"`
	Incoterm   string  `json:"incoterm"`
}

// ErrNoEstimate is returned when the request cannot be priced.
var ErrNoEstimate = errors.New("quote: product and quantity in range required")

// PricingEngine prices a request.
type PricingEngine interface {
	Estimate(Request) (Estimate, error)
}

// MockPricingEngine applies a flat rate per ton with a volume discount.
type MockPricingEngine struct {
	BaseRate float64
}

// NewMockPricingEngine returns an engine with rate, or DefaultBaseRate when
// rate is not positive.
func NewMockPricingEngine(rate float64) MockPricingEngine {
	if rate <= 0 {
		rate = DefaultBaseRate
	}
	return MockPricingEngine{BaseRate: rate}
}

// Estimate computes round(base × quantity × discount).
func (e MockPricingEngine) Estimate(r Request) (Estimate, error) {
	r = r.Normalize()
	if r.ProductSlug == "" || r.Quantity <= 0 || r.Quantity > MaxQuantity {
		return Estimate{}, ErrNoEstimate
	}
	rate := e.BaseRate
	if rate <= 0 {
		rate = DefaultBaseRate
	}
	factor := 1.0
	if r.Quantity >= VolumeThreshold {
		factor = VolumeDiscount
	}
	total := math.Round(rate * float64(r.Quantity) * factor)
	if math.IsNaN(total) || math.IsInf(total, 0) || total >= math.MaxInt64 {
		return Estimate{}, ErrNoEstimate
	}
	return Estimate{
		Total:      int64(total),
		Currency:   "USD",
		BaseRate:   rate,
		Quantity:   r.Quantity,
		Discounted: factor < 1,
		Incoterm:   r.Incoterm,
	}, nil
}

// FieldError names an invalid request field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Validate reports form-level issues. A quantity below MinQuantity is a hint
// and does not block pricing.
func Validate(r Request, known func(slug string) bool) []FieldError {
	r = r.Normalize()
	var errs []FieldError
	if r.ProductSlug == "" {
		errs = append(errs, FieldError{Field: "productSlug", Message: "required"})
	} else if known != nil && !known(r.ProductSlug) {
		errs = append(errs, FieldError{Field: "productSlug", Message: "unknown"})
	}
	switch {
	case r.Quantity <= 0:
		errs = append(errs, FieldError{Field: "quantity", Message: "must be positive"})
	case r.Quantity > MaxQuantity:
		errs = append(errs, FieldError{Field: "quantity", Message: "exceeds maximum"})
	}
	return errs
}

// BelowContainerLoad reports whether quantity is under one container load.
func (r Request) BelowContainerLoad() bool {
	return r.Quantity > 0 && r.Quantity < MinQuantity
}
