package main

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/janekbaraniewski/facetpanel/internal/catalog"
	"github.com/janekbaraniewski/facetpanel/internal/config"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func newCategoriesCommand(cfg config.Config, catalogPath *string) *cobra.Command {
	var values bool
	cmd := &cobra.Command{
		Use:   "categories",
		Short: "List the filter categories and their options",
		RunE: func(_ *cobra.Command, _ []string) error {
			table, err := loadTable(cfg, *catalogPath)
			if err != nil {
				return err
			}
			printCategories(color.Output, table, values)
			return nil
		},
	}
	cmd.Flags().BoolVar(&values, "values", false, "list every option value instead of a per-category summary")
	return cmd
}

func printCategories(w io.Writer, table catalog.Table, values bool) {
	title := color.New(color.Bold, color.Underline)
	bold := color.New(color.Bold)
	faint := color.New(color.Faint)

	_, _ = fmt.Fprintln(w, title.Sprintf("%s %s", table.Name, table.SemVer()))

	tbl := uitable.New()
	tbl.Separator = "  "
	if values {
		tbl.AddRow(bold.Sprint("KEY"), bold.Sprint("VALUE"), bold.Sprint("LABEL"))
		for _, c := range table.Categories {
			for _, o := range c.Options {
				tbl.AddRow(c.Key, o.Value, o.Label)
			}
		}
	} else {
		tbl.MaxColWidth = 60
		tbl.Wrap = true
		tbl.AddRow(bold.Sprint("KEY"), bold.Sprint("TITLE"), bold.Sprint("OPTIONS"), bold.Sprint("VALUES"))
		for _, c := range table.Categories {
			labels := lo.Map(c.Options, func(o catalog.Option, _ int) string { return o.Label })
			tbl.AddRow(c.Key, c.Title, len(c.Options), faint.Sprint(strings.Join(labels, ", ")))
		}
	}
	_, _ = fmt.Fprintln(w, tbl)
}

func newUseCommand(cfg config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "use <path>",
		Short: "Validate a category table and make it the default",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := filepath.Abs(args[0])
			if err != nil {
				return err
			}
			table, err := loadTable(cfg, path)
			if err != nil {
				return err
			}
			if err := config.SaveCatalogPath(path); err != nil {
				return fmt.Errorf("saving settings: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "using %s %s (%d categories, %d options)\n",
				table.Name, table.SemVer(), len(table.Categories), table.OptionCount())
			return nil
		},
	}
}
