package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/janekbaraniewski/facetpanel/internal/config"
	"github.com/janekbaraniewski/facetpanel/internal/version"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	_ = godotenv.Load()

	if os.Getenv("FACETPANEL_DEBUG") != "" {
		log.SetOutput(os.Stderr)
	} else {
		log.SetOutput(io.Discard)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		fmt.Fprintf(os.Stderr, "Config path: %s\n", config.ConfigPath())
		os.Exit(1)
	}

	catalogPath := cfg.CatalogPath
	panel := panelOptions{}

	root := cobra.Command{
		Use:           "facetpanel",
		Short:         "facetpanel is a terminal filter panel for the storefront category table.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(_ *cobra.Command, _ []string) error {
			panel.catalogPath = catalogPath
			return runPanel(cfg, panel)
		},
	}
	root.PersistentFlags().StringVar(&catalogPath, "catalog", catalogPath, "path to a JSON category table (default: built-in)")
	bindPanelFlags(&root, &panel)

	root.AddCommand(
		newPanelCommand(cfg, &catalogPath),
		newCategoriesCommand(cfg, &catalogPath),
		newQueryCommand(cfg, &catalogPath),
		newStatsCommand(cfg, &catalogPath),
		newServeCommand(cfg, &catalogPath),
		newUseCommand(cfg),
		&cobra.Command{
			Use:   "version",
			Short: "Print build information",
			Run: func(cmd *cobra.Command, _ []string) {
				fmt.Fprintln(cmd.OutOrStdout(), version.String())
			},
		},
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
