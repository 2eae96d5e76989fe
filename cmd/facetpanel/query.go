package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/janekbaraniewski/facetpanel/internal/catalog"
	"github.com/janekbaraniewski/facetpanel/internal/config"
	"github.com/janekbaraniewski/facetpanel/internal/selection"
	"github.com/spf13/cobra"
)

type queryResult struct {
	Selected selection.State   `json:"selected"`
	Total    int               `json:"total"`
	Query    string            `json:"query"`
	Dropped  []catalog.Dropped `json:"dropped,omitempty"`
}

func newQueryCommand(cfg config.Config, catalogPath *string) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "query <filters>",
		Short: "Normalise a listing query such as material=gold,silver&category=rings",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := loadTable(cfg, *catalogPath)
			if err != nil {
				return err
			}
			res, err := resolveQuery(table, args[0])
			if err != nil {
				return err
			}
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(res)
			}
			printQuery(cmd.OutOrStdout(), cmd.ErrOrStderr(), res)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the resolved selection as JSON")
	return cmd
}

func resolveQuery(table catalog.Table, raw string) (queryResult, error) {
	state, err := selection.Decode(raw)
	if err != nil {
		return queryResult{}, err
	}
	sanitized, dropped := table.Sanitize(state)
	return queryResult{
		Selected: sanitized,
		Total:    sanitized.Total(),
		Query:    selection.Encode(sanitized),
		Dropped:  dropped,
	}, nil
}

func printQuery(out, errOut io.Writer, res queryResult) {
	faint := color.New(color.Faint)
	_, _ = fmt.Fprintln(out, res.Query)
	_, _ = fmt.Fprintln(errOut, faint.Sprintf("%d filters selected", res.Total))
	for _, d := range res.Dropped {
		_, _ = fmt.Fprintln(errOut, color.YellowString("dropped %s=%s", d.Key, d.Value))
	}
}
