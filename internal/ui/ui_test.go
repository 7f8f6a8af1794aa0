package ui

import (
	"bytes"
	"net/url"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"
)

type row struct {
	ID   string
	Name string
	Qty  int
}

var rowTable = Table[row]{
	Columns: []Column{
		{Key: "id", LabelKey: "col.id"},
		{Key: "name", LabelKey: "col.name", Sortable: true},
		{Key: "qty", LabelKey: "col.qty", Sortable: true},
	},
	Value: func(r row, key string) string {
		switch key {
		case "id":
			return r.ID
		case "name":
			return r.Name
		case "qty":
			return strconv.Itoa(r.Qty)
		}
		return ""
	},
}

func rows(n int) []row {
	out := make([]row, n)
	for i := range out {
		out[i] = row{ID: "r" + strconv.Itoa(i), Name: string(rune('a' + i%26)), Qty: (i * 37) % 100}
	}
	return out
}

func TestTablePaginates(t *testing.T) {
	data := rows(23)
	v := rowTable.Apply(data, TableState{Page: 3})
	require.Equal(t, 3, v.Pages)
	require.Equal(t, 23, v.Total)
	require.Len(t, v.Rows, 3)
	require.Equal(t, "r20", v.Rows[0].ID)
	require.True(t, v.HasPrev())
	require.False(t, v.HasNext())

	v = rowTable.Apply(data, TableState{Page: 99})
	require.Equal(t, 3, v.Page)
	v = rowTable.Apply(nil, TableState{Page: -1})
	require.Equal(t, 1, v.Page)
	require.Equal(t, 1, v.Pages)
	require.Empty(t, v.Rows)
}

func TestTableSortsNumericallyAndToggles(t *testing.T) {
	data := []row{{ID: "a", Qty: 9}, {ID: "b", Qty: 100}, {ID: "c", Qty: 20}}
	st := TableState{}.Toggle("qty")
	require.False(t, st.Desc)
	v := rowTable.Apply(data, st)
	require.Equal(t, []string{"a", "c", "b"}, ids(v.Rows))

	st = st.Toggle("qty")
	require.True(t, st.Desc)
	v = rowTable.Apply(data, st)
	require.Equal(t, []string{"b", "c", "a"}, ids(v.Rows))
	require.True(t, v.Columns[2].Active)
	require.True(t, v.Columns[2].Desc)
	require.False(t, v.Columns[2].State.Desc)

	require.False(t, st.Toggle("name").Desc)

	unsortable := rowTable.Apply(data, TableState{Sort: "id", Desc: true})
	require.Equal(t, []string{"a", "b", "c"}, ids(unsortable.Rows))
}

func TestTableGlobalFilter(t *testing.T) {
	data := []row{{ID: "SO-1", Name: "Duplex"}, {ID: "SO-2", Name: "Kraft"}, {ID: "SO-3", Name: "duplex GD2"}}
	v := rowTable.Apply(data, TableState{Query: "DUPLEX"})
	require.Equal(t, []string{"SO-1", "SO-3"}, ids(v.Rows))
	v = rowTable.Apply(data, TableState{Query: "so-2"})
	require.Equal(t, []string{"SO-2"}, ids(v.Rows))
}

func TestTableStateRoundTrip(t *testing.T) {
	st := ParseTableState(url.Values{"sort": {"qty"}, "dir": {"desc"}, "q": {" kraft "}, "page": {"2"}})
	require.Equal(t, TableState{Sort: "qty", Desc: true, Query: "kraft", Page: 2, PerPage: DefaultPerPage}, st)
	v := st.Values(url.Values{"origin": {"Turkey"}})
	require.Equal(t, "dir=desc&origin=Turkey&page=2&q=kraft&sort=qty", v.Encode())
	require.Equal(t, "origin=Turkey", TableState{Page: 1}.Values(url.Values{"origin": {"Turkey"}}).Encode())
}

func TestTableCSV(t *testing.T) {
	var buf bytes.Buffer
	err := rowTable.WriteCSV(&buf, []string{"ID", "Name", "Qty"}, []row{{ID: "a", Name: "Duplex, GD2", Qty: 5}})
	require.NoError(t, err)
	require.Equal(t, "ID,Name,Qty\na,\"Duplex, GD2\",5\n", buf.String())
}

func TestCarouselWraps(t *testing.T) {
	items := []string{"a", "b", "c", "d", "e"}
	c := NewCarousel(items, 2, 0)
	require.Equal(t, 3, c.Len)
	require.Equal(t, []string{"a", "b"}, c.Items)
	require.Equal(t, 2, c.Prev())
	require.Equal(t, 1, c.Next())

	last := NewCarousel(items, 2, 2)
	require.Equal(t, []string{"e"}, last.Items)
	require.Equal(t, 0, last.Next())

	require.Equal(t, 2, NewCarousel(items, 2, -1).Index)
	require.Len(t, NewCarousel(items, 2, 0).Dots(), 3)
	require.Empty(t, NewCarousel([]string{}, 2, 3).Items)
}

func TestGallery(t *testing.T) {
	g := NewGallery([]string{"x", "y", "z"}, 5)
	cur, ok := g.Current()
	require.True(t, ok)
	require.Equal(t, "z", cur)
	require.Equal(t, 0, g.Next())
	require.Equal(t, 1, g.Prev())
	require.Equal(t, 3, g.Position())
	require.Equal(t, 1.5, g.ZoomIn())
	require.Equal(t, 1.0, g.ZoomOut())
	g.Zoom = 3
	require.Equal(t, 3.0, g.ZoomIn())

	_, ok = NewGallery([]string{}, 0).Current()
	require.False(t, ok)
}

func ids(rs []row) []string {
	out := make([]string, len(rs))
	for i, r := range rs {
		out[i] = r.ID
	}
	return out
}
