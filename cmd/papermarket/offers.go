package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/Hilal-Ahmad786/PaperWebsite/internal/catalog"
	"github.com/Hilal-Ahmad786/PaperWebsite/internal/i18n"
	"github.com/Hilal-Ahmad786/PaperWebsite/internal/ui"
	"github.com/Hilal-Ahmad786/PaperWebsite/site"
)

var supportedLocales = []string{"en", "tr", "ar"}

var cliOfferColumns = []ui.Column{
	{Key: "id", LabelKey: "offers.col.id", Sortable: true},
	{Key: "grade", LabelKey: "offers.col.grade", Sortable: true},
	{Key: "product", LabelKey: "offers.col.product", Sortable: true},
	{Key: "gsm", LabelKey: "offers.col.gsm"},
	{Key: "origin", LabelKey: "offers.col.origin", Sortable: true},
	{Key: "quantity", LabelKey: "offers.col.quantity", Sortable: true},
	{Key: "port", LabelKey: "offers.col.port", Sortable: true},
	{Key: "type", LabelKey: "offers.col.type", Sortable: true},
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#0f766e"))
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#6b7280"))
)

type offersOptions struct {
	lang    string
	product string
	origin  string
	kind    string
	query   string
	sort    string
	desc    bool
	csv     bool
}

func newOffersCommand() *cobra.Command {
	var opts offersOptions
	cmd := &cobra.Command{
		Use:   "offers",
		Short: "List stock offers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runOffers(cmd.OutOrStdout(), opts)
		},
	}
	f := cmd.Flags()
	f.StringVar(&opts.lang, "lang", "en", "label language")
	f.StringVar(&opts.product, "product", "", "product slug")
	f.StringVar(&opts.origin, "origin", "", "origin country")
	f.StringVar(&opts.kind, "type", "", "prime or stocklot")
	f.StringVarP(&opts.query, "query", "q", "", "free-text search")
	f.StringVar(&opts.sort, "sort", "", "column to sort by")
	f.BoolVar(&opts.desc, "desc", false, "sort descending")
	f.BoolVar(&opts.csv, "csv", false, "write CSV instead of a table")
	return cmd
}

func runOffers(out io.Writer, opts offersOptions) error {
	bundle, err := i18n.Load(site.Locales(), ".", "en", supportedLocales)
	if err != nil {
		return err
	}
	if !bundle.IsSupported(opts.lang) {
		return fmt.Errorf("unsupported language %q", opts.lang)
	}
	filter := catalog.OfferFilter{Product: opts.product, Origin: opts.origin}
	if opts.kind != "" {
		t := catalog.OfferType(opts.kind)
		if !t.Valid() {
			return fmt.Errorf("unknown offer type %q", opts.kind)
		}
		filter.Type = t
	}

	cp := catalog.CopyFor(opts.lang)
	tbl := cliOfferTable(cp)
	rows := tbl.Process(catalog.Default().FilterOffers(filter), ui.TableState{
		Sort:  opts.sort,
		Desc:  opts.desc,
		Query: opts.query,
	})

	header := make([]string, len(tbl.Columns))
	for i, c := range tbl.Columns {
		header[i] = bundle.T(opts.lang, c.LabelKey)
	}
	if opts.csv {
		return tbl.WriteCSV(out, header, rows)
	}

	cells := make([][]string, 0, len(rows))
	for _, o := range rows {
		rec := make([]string, len(tbl.Columns))
		for i, c := range tbl.Columns {
			rec[i] = tbl.Value(o, c.Key)
		}
		cells = append(cells, rec)
	}
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(borderStyle).
		Headers(header...).
		Rows(cells...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	fmt.Fprintln(out, t.Render())
	fmt.Fprintln(out, mutedStyle.Render(bundle.Tf(opts.lang, "offers.count", len(rows))))
	return nil
}

func cliOfferTable(cp catalog.Copy) ui.Table[catalog.StockOffer] {
	return ui.Table[catalog.StockOffer]{
		Columns: cliOfferColumns,
		Value: func(o catalog.StockOffer, key string) string {
			switch key {
			case "id":
				return o.ID
			case "grade":
				return o.GradeName
			case "product":
				return cp.ProductName(o.ProductSlug)
			case "gsm":
				return o.GSMRange
			case "origin":
				return o.Origin
			case "quantity":
				return strconv.Itoa(o.QuantityTons)
			case "port":
				return o.Port
			case "type":
				return cp.OfferType(o.Type)
			}
			return ""
		},
	}
}
