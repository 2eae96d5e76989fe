package main

import (
	"context"
	"fmt"
	"io"
	"sort"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/janekbaraniewski/facetpanel/internal/catalog"
	"github.com/janekbaraniewski/facetpanel/internal/config"
	"github.com/janekbaraniewski/facetpanel/internal/telemetry"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func newStatsCommand(cfg config.Config, catalogPath *string) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show the most selected filters from the interaction log",
		RunE: func(cmd *cobra.Command, _ []string) error {
			table, err := loadTable(cfg, *catalogPath)
			if err != nil {
				return err
			}
			store, err := openTelemetryStore(cfg)
			if err != nil {
				return fmt.Errorf("opening interaction log: %w", err)
			}
			defer store.Close()

			return printStats(cmd.Context(), color.Output, store, table, limit)
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 10, "number of values to show")
	return cmd
}

func printStats(ctx context.Context, w io.Writer, store *telemetry.Store, table catalog.Table, limit int) error {
	kinds, err := store.CountByKind(ctx)
	if err != nil {
		return err
	}
	top, err := store.TopValues(ctx, limit)
	if err != nil {
		return err
	}

	bold := color.New(color.Bold)
	title := color.New(color.Bold, color.Underline)

	_, _ = fmt.Fprintln(w, title.Sprint("Interactions"))
	names := lo.Keys(kinds)
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })
	summary := uitable.New()
	summary.Separator = "  "
	for _, k := range names {
		summary.AddRow(bold.Sprint(string(k)), kinds[k])
	}
	summary.RightAlign(1)
	_, _ = fmt.Fprintln(w, summary)
	_, _ = fmt.Fprintln(w)

	_, _ = fmt.Fprintln(w, title.Sprint("Top filters"))
	if len(top) == 0 {
		_, _ = fmt.Fprintln(w, color.New(color.Faint).Sprint("no selections recorded yet"))
		return nil
	}
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("CATEGORY"), bold.Sprint("OPTION"), bold.Sprint("SELECTED"))
	for _, vc := range top {
		category := vc.Category
		if c, ok := table.Category(vc.Category); ok {
			category = c.Title
		}
		tbl.AddRow(category, table.Label(vc.Category, vc.Value), vc.Count)
	}
	tbl.RightAlign(2)
	_, _ = fmt.Fprintln(w, tbl)
	return nil
}
