// Package contact accepts enquiries from the contact form and hands them to
// a Notifier.
package contact

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"
)

var (
	// ErrMissingFields is returned when name, email or message is empty.
	ErrMissingFields = errors.New("contact: missing required fields")
	// ErrMalformed is returned when the body is not a JSON object.
	ErrMalformed = errors.New("contact: malformed body")
)

// Submission is one contact form enquiry.
type Submission struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Message         string `json:"message"`
	Company         string `json:"company,omitempty"`
	Phone           string `json:"phone,omitempty"`
	Country         string `json:"country,omitempty"`
	Product         string `json:"product,omitempty"`
	GSMRange        string `json:"gsmRange,omitempty"`
	Quantity        string `json:"quantity,omitempty"`
	DestinationPort string `json:"destinationPort,omitempty"`
	OfferID         string `json:"offerId,omitempty"`
}

// Validate checks the three required fields.
func (s Submission) Validate() error {
	if strings.TrimSpace(s.Name) == "" || strings.TrimSpace(s.Email) == "" || strings.TrimSpace(s.Message) == "" {
		return ErrMissingFields
	}
	return nil
}

// Missing lists the required fields that are empty.
func (s Submission) Missing() []string {
	var out []string
	if strings.TrimSpace(s.Name) == "" {
		out = append(out, "name")
	}
	if strings.TrimSpace(s.Email) == "" {
		out = append(out, "email")
	}
	if strings.TrimSpace(s.Message) == "" {
		out = append(out, "message")
	}
	return out
}

// Decode reads a JSON submission of at most limit bytes.
func Decode(r io.Reader, limit int64) (Submission, error) {
	if limit > 0 {
		r = io.LimitReader(r, limit+1)
	}
	raw, err := io.ReadAll(r)
	if err != nil {
		return Submission{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if limit > 0 && int64(len(raw)) > limit {
		return Submission{}, fmt.Errorf("%w: body exceeds %d bytes", ErrMalformed, limit)
	}
	var w wireSubmission
	if err := json.Unmarshal(raw, &w); err != nil {
		return Submission{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return w.submission(), nil
}

// scalar accepts any JSON value. Strings are unquoted, null is empty and
// everything else keeps its compact JSON text, so "quantity": 40 reads as "40".
type scalar string

func (v *scalar) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case len(b) == 0 || string(b) == "null":
		*v = ""
	case b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*v = scalar(s)
	default:
		var buf bytes.Buffer
		if err := json.Compact(&buf, b); err != nil {
			return err
		}
		*v = scalar(buf.String())
	}
	return nil
}

type wireSubmission struct {
	Name            scalar `json:"name"`
	Email           scalar `json:"email"`
	Message         scalar `json:"message"`
	Company         scalar `json:"company"`
	Phone           scalar `json:"phone"`
	Country         scalar `json:"country"`
	Product         scalar `json:"product"`
	GSMRange        scalar `json:"gsmRange"`
	Quantity        scalar `json:"quantity"`
	DestinationPort scalar `json:"destinationPort"`
	OfferID         scalar `json:"offerId"`
}

func (w wireSubmission) submission() Submission {
	return Submission{
		Name:            string(w.Name),
		Email:           string(w.Email),
		Message:         string(w.Message),
		Company:         string(w.Company),
		Phone:           string(w.Phone),
		Country:         string(w.Country),
		Product:         string(w.Product),
		GSMRange:        string(w.GSMRange),
		Quantity:        string(w.Quantity),
		DestinationPort: string(w.DestinationPort),
		OfferID:         string(w.OfferID),
	}
}

// Receipt acknowledges a delivered submission.
type Receipt struct {
	ID         string
	ReceivedAt time.Time
}

// Notifier delivers a submission to whoever handles enquiries.
type Notifier interface {
	Notify(ctx context.Context, id string, s Submission) error
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(ctx context.Context, id string, s Submission) error

func (f NotifierFunc) Notify(ctx context.Context, id string, s Submission) error { return f(ctx, id, s) }

// LogNotifier writes submissions to the log. Email delivery is not wired.
type LogNotifier struct {
	logger *zap.Logger
	policy *bluemonday.Policy
}

// NewLogNotifier returns a notifier logging through logger.
func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogNotifier{logger: logger, policy: bluemonday.StrictPolicy()}
}

func (n *LogNotifier) Notify(ctx context.Context, id string, s Submission) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	clean := func(v string) string { return strings.TrimSpace(n.policy.Sanitize(v)) }
	n.logger.Info("contact form submission",
		zap.String("submission_id", id),
		zap.String("name", clean(s.Name)),
		zap.String("email", clean(s.Email)),
		zap.String("company", clean(s.Company)),
		zap.String("country", clean(s.Country)),
		zap.String("product", clean(s.Product)),
		zap.String("quantity", clean(s.Quantity)),
		zap.String("offer_id", clean(s.OfferID)),
		zap.String("message", clean(s.Message)),
	)
	return nil
}

// Service validates submissions and forwards them to a Notifier.
type Service struct {
	notifier Notifier
	timeout  time.Duration
	now      func() time.Time
	newID    func() string
}

// ServiceOption customises a Service.
type ServiceOption func(*Service)

// WithTimeout bounds each delivery.
func WithTimeout(d time.Duration) ServiceOption {
	return func(s *Service) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) ServiceOption {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// NewService returns a Service delivering through notifier.
func NewService(notifier Notifier, opts ...ServiceOption) (*Service, error) {
	if notifier == nil {
		return nil, errors.New("contact: notifier is required")
	}
	s := &Service{
		notifier: notifier,
		timeout:  10 * time.Second,
		now:      time.Now,
		newID:    func() string { return ulid.Make().String() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Submit validates s and delivers it within the configured timeout.
func (svc *Service) Submit(ctx context.Context, s Submission) (Receipt, error) {
	if err := s.Validate(); err != nil {
		return Receipt{}, err
	}
	ctx, cancel := context.WithTimeout(ctx, svc.timeout)
	defer cancel()

	id := svc.newID()
	if err := svc.notifier.Notify(ctx, id, s); err != nil {
		return Receipt{}, fmt.Errorf("contact: notify: %w", err)
	}
	return Receipt{ID: id, ReceivedAt: svc.now()}, nil
}
