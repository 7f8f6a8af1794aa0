// Package ui holds the server-side state of interactive components: the
// sortable data table and the wrap-around carousel and gallery.
package ui

import (
	"encoding/csv"
	"io"
	"math"
	"net/url"
	"sort"
	"strconv"
	"strings"
)

// DefaultPerPage is the table page size.
const DefaultPerPage = 10

// Column describes a table column.
type Column struct {
	Key      string
	LabelKey string
	Sortable bool
}

// TableState is the sort/filter/page selection carried in the query string.
type TableState struct {
	Sort    string
	Desc    bool
	Query   string
	Page    int
	PerPage int
}

// ParseTableState reads sort, dir, q and page from v.
func ParseTableState(v url.Values) TableState {
	page, _ := strconv.Atoi(v.Get("page"))
	return TableState{
		Sort:    v.Get("sort"),
		Desc:    v.Get("dir") == "desc",
		Query:   strings.TrimSpace(v.Get("q")),
		Page:    page,
		PerPage: DefaultPerPage,
	}
}

// Toggle returns the state after clicking column key: ascending first, then
// descending. The page resets.
func (s TableState) Toggle(key string) TableState {
	next := s
	next.Desc = s.Sort == key && !s.Desc
	next.Sort = key
	next.Page = 1
	return next
}

// WithPage returns s on page.
func (s TableState) WithPage(page int) TableState {
	s.Page = page
	return s
}

// Values encodes s, merged into base.
func (s TableState) Values(base url.Values) url.Values {
	out := url.Values{}
	for k, vs := range base {
		out[k] = append([]string(nil), vs...)
	}
	setOrDel(out, "sort", s.Sort)
	if s.Desc {
		out.Set("dir", "desc")
	} else {
		out.Del("dir")
	}
	setOrDel(out, "q", s.Query)
	if s.Page > 1 {
		out.Set("page", strconv.Itoa(s.Page))
	} else {
		out.Del("page")
	}
	return out
}

func setOrDel(v url.Values, key, val string) {
	if val == "" {
		v.Del(key)
		return
	}
	v.Set(key, val)
}

// Table sorts, filters and paginates rows of R.
type Table[R any] struct {
	Columns []Column
	// Value returns the cell text for column key.
	Value func(row R, key string) string
}

// ColumnView is a column header ready for rendering.
type ColumnView struct {
	Column
	Active bool
	Desc   bool
	State  TableState
}

// TableView is one rendered page of a table.
type TableView[R any] struct {
	Columns []ColumnView
	Rows    []R
	State   TableState
	Total   int
	Page    int
	Pages   int
}

// HasPrev reports whether a previous page exists.
func (v TableView[R]) HasPrev() bool { return v.Page > 1 }

// HasNext reports whether a next page exists.
func (v TableView[R]) HasNext() bool { return v.Page < v.Pages }

// Process filters and sorts rows without paginating.
func (t Table[R]) Process(rows []R, st TableState) []R {
	out := make([]R, 0, len(rows))
	q := strings.ToLower(st.Query)
	for _, row := range rows {
		if q == "" || t.matches(row, q) {
			out = append(out, row)
		}
	}
	if st.Sort != "" && t.sortable(st.Sort) {
		sort.SliceStable(out, func(i, j int) bool {
			c := compare(t.Value(out[i], st.Sort), t.Value(out[j], st.Sort))
			if st.Desc {
				return c > 0
			}
			return c < 0
		})
	}
	return out
}

// Apply filters, sorts and returns the requested page. Out of range pages
// are clamped.
func (t Table[R]) Apply(rows []R, st TableState) TableView[R] {
	if st.PerPage <= 0 {
		st.PerPage = DefaultPerPage
	}
	processed := t.Process(rows, st)
	pages := int(math.Ceil(float64(len(processed)) / float64(st.PerPage)))
	if pages < 1 {
		pages = 1
	}
	page := min(max(st.Page, 1), pages)
	st.Page = page
	start := (page - 1) * st.PerPage
	end := min(start+st.PerPage, len(processed))

	cols := make([]ColumnView, 0, len(t.Columns))
	for _, c := range t.Columns {
		cols = append(cols, ColumnView{
			Column: c,
			Active: c.Key == st.Sort,
			Desc:   c.Key == st.Sort && st.Desc,
			State:  st.Toggle(c.Key),
		})
	}
	return TableView[R]{
		Columns: cols,
		Rows:    processed[start:end],
		State:   st,
		Total:   len(processed),
		Page:    page,
		Pages:   pages,
	}
}

// WriteCSV writes header and the processed rows as CSV.
func (t Table[R]) WriteCSV(w io.Writer, header []string, rows []R) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}
	record := make([]string, len(t.Columns))
	for _, row := range rows {
		for i, c := range t.Columns {
			record[i] = t.Value(row, c.Key)
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func (t Table[R]) matches(row R, q string) bool {
	for _, c := range t.Columns {
		if strings.Contains(strings.ToLower(t.Value(row, c.Key)), q) {
			return true
		}
	}
	return false
}

func (t Table[R]) sortable(key string) bool {
	for _, c := range t.Columns {
		if c.Key == key {
			return c.Sortable
		}
	}
	return false
}

// compare orders numerically when both values are numbers.
func compare(a, b string) int {
	fa, errA := strconv.ParseFloat(a, 64)
	fb, errB := strconv.ParseFloat(b, 64)
	if errA == nil && errB == nil {
		switch {
		case fa < fb:
			return -1
		case fa > fb:
			return 1
		}
		return 0
	}
	return strings.Compare(strings.ToLower(a), strings.ToLower(b))
}
