package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/Hilal-Ahmad786/PaperWebsite/internal/catalog"
	"github.com/Hilal-Ahmad786/PaperWebsite/internal/format"
	"github.com/Hilal-Ahmad786/PaperWebsite/internal/i18n"
	"github.com/Hilal-Ahmad786/PaperWebsite/internal/quote"
	"github.com/Hilal-Ahmad786/PaperWebsite/site"
)

var totalStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#0f766e"))

type quoteOptions struct {
	lang string
	rate float64
	req  quote.Request
}

func newQuoteCommand() *cobra.Command {
	opts := quoteOptions{req: quote.DefaultRequest()}
	cmd := &cobra.Command{
		Use:   "quote",
		Short: "Estimate an indicative price",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runQuote(cmd.OutOrStdout(), opts)
		},
	}
	f := cmd.Flags()
	f.StringVar(&opts.lang, "lang", "en", "output language")
	f.Float64Var(&opts.rate, "rate", quote.DefaultBaseRate, "base price per ton in USD")
	f.StringVar(&opts.req.ProductSlug, "product", "", "product slug")
	f.StringVar(&opts.req.GSM, "gsm", "", "GSM selection")
	f.IntVar(&opts.req.Quantity, "quantity", quote.MinQuantity, "quantity in tons")
	f.StringVar(&opts.req.Port, "port", "", "destination port")
	f.StringVar(&opts.req.Incoterm, "incoterm", quote.DefaultIncoterm, "delivery term")
	_ = cmd.MarkFlagRequired("product")
	return cmd
}

func runQuote(out io.Writer, opts quoteOptions) error {
	bundle, err := i18n.Load(site.Locales(), ".", "en", supportedLocales)
	if err != nil {
		return err
	}
	lang := opts.lang
	if !bundle.IsSupported(lang) {
		return fmt.Errorf("unsupported language %q", lang)
	}
	cat := catalog.Default()
	known := func(slug string) bool {
		_, err := cat.Product(slug)
		return err == nil
	}
	if errs := quote.Validate(opts.req, known); len(errs) > 0 {
		msgs := make([]string, len(errs))
		for i, e := range errs {
			msgs[i] = e.Field + " " + e.Message
		}
		return errors.New("invalid request: " + strings.Join(msgs, ", "))
	}

	req := opts.req.Normalize()
	est, err := quote.NewMockPricingEngine(opts.rate).Estimate(req)
	if err != nil {
		return err
	}

	fmt.Fprintln(out, bundle.T(lang, "quote.result.title"))
	fmt.Fprintf(out, "%s: %s\n", bundle.T(lang, "quote.step.product"), catalog.CopyFor(lang).ProductName(req.ProductSlug))
	fmt.Fprintf(out, "%s: %s\n", bundle.T(lang, "offers.col.quantity"), format.Tons(lang, req.Quantity))
	terms := est.Incoterm
	if req.Port != "" {
		terms += " " + req.Port
	}
	fmt.Fprintf(out, "%s: %s\n", bundle.T(lang, "quote.incoterm"), terms)
	fmt.Fprintf(out, "%s: %s\n", bundle.T(lang, "quote.result.estimate"), totalStyle.Render(format.Currency(lang, est.Total, est.Currency)))
	if est.Discounted {
		fmt.Fprintln(out, bundle.T(lang, "quote.result.discount"))
	}
	if req.BelowContainerLoad() {
		fmt.Fprintln(out, bundle.Tf(lang, "quote.minHint", quote.MinQuantity))
	}
	fmt.Fprintln(out, mutedStyle.Render(bundle.T(lang, "quote.result.disclaimer")))
	return nil
}
