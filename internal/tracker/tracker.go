// Package tracker models shipment progress for the order status page.
package tracker

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// Status of a single stage.
type Status string

const (
	StatusComplete Status = "complete"
	StatusCurrent  Status = "current"
	StatusPending  Status = "pending"
)

// DocumentType classifies a stage document.
type DocumentType string

const (
	DocInvoice     DocumentType = "invoice"
	DocPackingList DocumentType = "packing_list"
	DocOther       DocumentType = "other"
)

// Document is a downloadable file attached to a stage.
type Document struct {
	Name string       `json:"name"`
	URL  string       `json:"url"`
	Type DocumentType `json:"type"`
}

// Stage is one step of an order's journey.
type Stage struct {
	ID          int        `json:"id"`
	Title       string     `json:"title"`
	Date        time.Time  `json:"date"`
	Status      Status     `json:"status"`
	Description string     `json:"description,omitempty"`
	Documents   []Document `json:"documents,omitempty"`
}

// Order is the tracked order.
type Order struct {
	ID                string    `json:"id"`
	Stages            []Stage   `json:"stages"`
	CurrentStage      int       `json:"currentStage"`
	EstimatedDelivery time.Time `json:"estimatedDelivery"`
}

// ErrOrderNotFound is returned for unknown order ids.
var ErrOrderNotFound = errors.New("tracker: order not found")

// InvariantError lists stage ordering problems.
type InvariantError struct {
	Problems []string
}

func (e *InvariantError) Error() string {
	return "tracker: inconsistent stages: " + strings.Join(e.Problems, "; ")
}

// Validate checks that at most one stage is current, every complete stage
// precedes it and every pending stage follows it. It does not modify o.
func Validate(o Order) error {
	var problems []string
	current := -1
	seenPending := false
	for i, s := range o.Stages {
		switch s.Status {
		case StatusComplete:
			if current >= 0 || seenPending {
				problems = append(problems, fmt.Sprintf("stage %d complete after an unfinished stage", s.ID))
			}
		case StatusCurrent:
			if current >= 0 {
				problems = append(problems, fmt.Sprintf("stage %d is a second current stage", s.ID))
			}
			if seenPending {
				problems = append(problems, fmt.Sprintf("stage %d current after a pending stage", s.ID))
			}
			current = i
		case StatusPending:
			seenPending = true
		default:
			problems = append(problems, fmt.Sprintf("stage %d has unknown status %q", s.ID, s.Status))
		}
	}
	if current >= 0 && o.CurrentStage != 0 && o.Stages[current].ID != o.CurrentStage {
		problems = append(problems, fmt.Sprintf("currentStage %d does not match stage %d", o.CurrentStage, o.Stages[current].ID))
	}
	if len(problems) > 0 {
		return &InvariantError{Problems: problems}
	}
	return nil
}

// Progress returns the share of completed stages in [0, 1].
func (o Order) Progress() float64 {
	if len(o.Stages) == 0 {
		return 0
	}
	done := 0
	for _, s := range o.Stages {
		if s.Status == StatusComplete {
			done++
		}
	}
	return float64(done) / float64(len(o.Stages))
}

// Repository looks up orders.
type Repository interface {
	Find(ctx context.Context, id string) (Order, error)
}

// StaticRepository serves a fixed set of demo orders.
type StaticRepository struct {
	orders map[string]Order
}

// NewStaticRepository returns a repository with the demo order.
func NewStaticRepository(orders ...Order) *StaticRepository {
	if len(orders) == 0 {
		orders = []Order{DemoOrder()}
	}
	m := make(map[string]Order, len(orders))
	for _, o := range orders {
		m[strings.ToUpper(o.ID)] = o
	}
	return &StaticRepository{orders: m}
}

func (r *StaticRepository) Find(ctx context.Context, id string) (Order, error) {
	if err := ctx.Err(); err != nil {
		return Order{}, err
	}
	o, ok := r.orders[strings.ToUpper(strings.TrimSpace(id))]
	if !ok {
		return Order{}, ErrOrderNotFound
	}
	return o, nil
}

// DemoOrderID is the id of the bundled demo order.
const DemoOrderID = "ORD-2024-001"

// DemoOrder returns the bundled demo order.
func DemoOrder() Order {
	d := func(m time.Month, day int) time.Time { return time.Date(2024, m, day, 0, 0, 0, 0, time.UTC) }
	return Order{
		ID: DemoOrderID,
		Stages: []Stage{
			{
				ID: 1, Title: "Order Placed", Date: d(time.March, 1), Status: StatusComplete,
				Documents: []Document{{Name: "Proforma Invoice", URL: "#", Type: DocInvoice}},
			},
			{ID: 2, Title: "In Production", Date: d(time.March, 5), Status: StatusCurrent, Description: "Production in progress at mill"},
			{ID: 3, Title: "Quality Check", Date: d(time.March, 20), Status: StatusPending},
			{
				ID: 4, Title: "Shipped", Date: d(time.March, 25), Status: StatusPending,
				Documents: []Document{{Name: "Packing List", URL: "#", Type: DocPackingList}},
			},
			{ID: 5, Title: "Delivered", Date: d(time.April, 15), Status: StatusPending},
		},
		CurrentStage:      2,
		EstimatedDelivery: d(time.April, 15),
	}
}
