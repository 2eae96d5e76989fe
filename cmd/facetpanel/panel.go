package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/janekbaraniewski/facetpanel/internal/catalog"
	"github.com/janekbaraniewski/facetpanel/internal/config"
	"github.com/janekbaraniewski/facetpanel/internal/selection"
	"github.com/janekbaraniewski/facetpanel/internal/telemetry"
	"github.com/janekbaraniewski/facetpanel/internal/tui"
	"github.com/spf13/cobra"
)

type panelOptions struct {
	catalogPath string
	expand      []string
	controlled  bool
	query       string
}

func bindPanelFlags(cmd *cobra.Command, opts *panelOptions) {
	cmd.Flags().StringSliceVar(&opts.expand, "expand", nil, "category keys to open at start (default from settings)")
	cmd.Flags().BoolVar(&opts.controlled, "controlled", false, "let the listing own the selection instead of the panel")
	cmd.Flags().StringVar(&opts.query, "query", "", "initial selection as a listing query, e.g. material=gold,silver")
}

func newPanelCommand(cfg config.Config, catalogPath *string) *cobra.Command {
	opts := panelOptions{}
	cmd := &cobra.Command{
		Use:   "panel",
		Short: "Open the interactive filter panel and print the final query on exit",
		RunE: func(_ *cobra.Command, _ []string) error {
			opts.catalogPath = *catalogPath
			return runPanel(cfg, opts)
		},
	}
	bindPanelFlags(cmd, &opts)
	return cmd
}

func runPanel(cfg config.Config, opts panelOptions) error {
	table, err := loadTable(cfg, opts.catalogPath)
	if err != nil {
		return err
	}

	var initial selection.State
	if opts.query != "" {
		decoded, err := selection.Decode(opts.query)
		if err != nil {
			return err
		}
		var dropped []catalog.Dropped
		initial, dropped = table.Sanitize(decoded)
		for _, d := range dropped {
			log.Printf("panel: ignoring unknown filter %s=%s", d.Key, d.Value)
		}
	}

	expand := opts.expand
	if len(expand) == 0 {
		expand = cfg.DefaultExpanded
	}

	model := tui.NewModel(table, tui.Options{
		Controlled: opts.controlled,
		Expanded:   expand,
		Initial:    initial,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.Telemetry.Enabled {
		store, err := openTelemetryStore(cfg)
		if err != nil {
			return fmt.Errorf("opening interaction log: %w", err)
		}
		defer store.Close()
		model.SetOnEvent(func(ev telemetry.Event) {
			if _, err := store.Record(ctx, ev); err != nil {
				log.Printf("panel: recording %s event: %v", ev.Kind, err)
			}
		})
	}

	program := tea.NewProgram(model, tea.WithAltScreen())

	watchTable(ctx, cfg, opts.catalogPath, func(t catalog.Table, err error) {
		program.Send(tui.CatalogReloadedMsg{Table: t, Err: err})
	})

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-sigCh:
			cancel()
			program.Quit()
		case <-ctx.Done():
		}
	}()

	final, err := program.Run()
	if err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	if fm, ok := final.(tui.Model); ok {
		fmt.Println(selection.Encode(fm.Selection().State()))
	}
	return nil
}
