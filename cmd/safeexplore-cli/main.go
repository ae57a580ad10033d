// Package main implements safeexplore-cli, offline queries against the reference catalog.
package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/kailas-cloud/safeexplore"
	"github.com/kailas-cloud/safeexplore/internal/version"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// rootOptions are the flags shared by every command.
type rootOptions struct {
	catalogPath string
	timezone    string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:   "safeexplore-cli",
		Short: "Query the SafeExplore catalog from the command line",
		Long: `safeexplore-cli runs the document tracker, explore hub, services finder,
law guide, country selector, emergency phrases and help assistant in-process
against the reference catalog.

Examples:
  # Overdue documents
  safeexplore-cli documents --status overdue

  # Free or budget experiences, best rated first
  safeexplore-cli experiences --price free,budget --sort rating --order desc

  # Spanish emergency phrases
  safeexplore-cli phrases es-ES

  # Ask the assistant
  safeexplore-cli ask "what documents do I need for a visa?"`,
		Version:       version.String(),
		SilenceUsage:  true,
	}
	root.PersistentFlags().StringVar(&opts.catalogPath, "catalog", "", "Catalog YAML file (default: embedded seed)")
	root.PersistentFlags().StringVar(&opts.timezone, "timezone", "UTC", "IANA timezone deciding the overdue day boundary")

	root.AddCommand(
		newDocumentsCmd(opts),
		newExperiencesCmd(opts),
		newServicesCmd(opts),
		newLawsCmd(opts),
		newCountriesCmd(opts),
		newPhrasesCmd(opts),
		newAskCmd(opts),
	)
	return root
}

func (o *rootOptions) location() (*time.Location, error) {
	loc, err := time.LoadLocation(o.timezone)
	if err != nil {
		return nil, fmt.Errorf("timezone %q: %w", o.timezone, err)
	}
	return loc, nil
}

func (o *rootOptions) client() (*safeexplore.Client, error) {
	loc, err := o.location()
	if err != nil {
		return nil, err
	}
	c, err := safeexplore.New(
		safeexplore.WithCatalogFile(o.catalogPath),
		safeexplore.WithLocation(loc),
	)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	return c, nil
}

// table writes tab-separated rows aligned for the terminal.
type table struct {
	tw *tabwriter.Writer
}

func newTable(w io.Writer, header ...string) *table {
	t := &table{tw: tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)}
	t.row(header...)
	return t
}

func (t *table) row(cols ...string) {
	_, _ = fmt.Fprintln(t.tw, strings.Join(cols, "\t"))
}

func (t *table) flush() error {
	if err := t.tw.Flush(); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}

func footer(w io.Writer, shown, total int, sortKey string, applied bool) {
	sortNote := sortKey
	if !applied {
		sortNote = "catalog order (unknown sort key)"
	}
	_, _ = fmt.Fprintf(w, "\n%d of %d shown, sorted by %s\n", shown, total, sortNote)
}
