package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/Hilal-Ahmad786/PaperWebsite/internal/catalog"
	"github.com/Hilal-Ahmad786/PaperWebsite/internal/finder"
	"github.com/Hilal-Ahmad786/PaperWebsite/internal/i18n"
	"github.com/Hilal-Ahmad786/PaperWebsite/internal/wizard"
	"github.com/Hilal-Ahmad786/PaperWebsite/site"
)

type finderOptions struct {
	lang     string
	stateDir string
	reset    bool
}

func newFinderCommand() *cobra.Command {
	var opts finderOptions
	cmd := &cobra.Command{
		Use:   "finder",
		Short: "Find matching paper grades interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			bundle, err := i18n.Load(site.Locales(), ".", "en", supportedLocales)
			if err != nil {
				return err
			}
			if !bundle.IsSupported(opts.lang) {
				return fmt.Errorf("unsupported language %q", opts.lang)
			}
			dir := opts.stateDir
			if dir == "" {
				dir = defaultStateDir()
			}
			store := wizard.NewFileStore(dir, finder.StorageKey)
			machine, err := finder.New(store, finder.NewStaticRecommender(catalog.Default()))
			if errors.Is(err, wizard.ErrCorruptState) {
				fmt.Fprintln(cmd.ErrOrStderr(), bundle.T(opts.lang, "finder.toast.corrupt"))
			} else if err != nil {
				return err
			}
			if opts.reset {
				if err := machine.Reset(); err != nil {
					return err
				}
			}
			model := newFinderModel(machine, bundle, opts.lang)
			_, err = tea.NewProgram(model, tea.WithInput(cmd.InOrStdin()), tea.WithOutput(cmd.OutOrStdout())).Run()
			return err
		},
	}
	cmd.Flags().StringVar(&opts.lang, "lang", "en", "interface language")
	cmd.Flags().StringVar(&opts.stateDir, "state-dir", "", "where the selection is saved between runs")
	cmd.Flags().BoolVar(&opts.reset, "reset", false, "discard the saved selection")
	return cmd
}

func defaultStateDir() string {
	if dir, err := os.UserCacheDir(); err == nil {
		return filepath.Join(dir, "papermarket")
	}
	return filepath.Join(os.TempDir(), "papermarket")
}
