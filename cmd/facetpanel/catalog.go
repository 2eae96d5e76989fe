package main

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/janekbaraniewski/facetpanel/internal/catalog"
	"github.com/janekbaraniewski/facetpanel/internal/config"
	"github.com/janekbaraniewski/facetpanel/internal/telemetry"
)

// loadTable loads the category table and enforces the configured minimum version.
func loadTable(cfg config.Config, path string) (catalog.Table, error) {
	table, err := catalog.Load(path)
	if err != nil {
		return catalog.Table{}, err
	}
	if err := checkTableVersion(cfg, table); err != nil {
		return catalog.Table{}, err
	}
	return table, nil
}

func checkTableVersion(cfg config.Config, table catalog.Table) error {
	if !table.Compatible(cfg.MinCatalogVersion) {
		return fmt.Errorf("catalog %s version %q is older than required %q", table.Name, table.Version, cfg.MinCatalogVersion)
	}
	return nil
}

// watchTable reloads the table file until ctx ends. Nothing happens for the
// built-in table or when watching is disabled.
func watchTable(ctx context.Context, cfg config.Config, path string, onReload func(catalog.Table, error)) {
	if strings.TrimSpace(path) == "" || !cfg.WatchCatalog {
		return
	}
	go func() {
		err := catalog.Watch(ctx, path, func(t catalog.Table, err error) {
			if err == nil {
				err = checkTableVersion(cfg, t)
			}
			onReload(t, err)
		})
		if err != nil {
			log.Printf("catalog watch stopped: %v", err)
		}
	}()
}

func telemetryDBPath(cfg config.Config) (string, error) {
	if p := strings.TrimSpace(cfg.Telemetry.DBPath); p != "" {
		return p, nil
	}
	return telemetry.DefaultDBPath()
}

func openTelemetryStore(cfg config.Config) (*telemetry.Store, error) {
	path, err := telemetryDBPath(cfg)
	if err != nil {
		return nil, err
	}
	return telemetry.OpenStore(path)
}
