package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/janekbaraniewski/facetpanel/internal/catalog"
	"github.com/janekbaraniewski/facetpanel/internal/config"
	"github.com/janekbaraniewski/facetpanel/internal/httpapi"
	"github.com/spf13/cobra"
)

func newServeCommand(cfg config.Config, catalogPath *string) *cobra.Command {
	addr := cfg.Server.Addr
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the category table and query normalisation over HTTP",
		RunE: func(cmd *cobra.Command, _ []string) error {
			table, err := loadTable(cfg, *catalogPath)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			srv := httpapi.NewServer(table)
			watchTable(ctx, cfg, *catalogPath, servedTableReloader(srv))

			fmt.Fprintf(cmd.ErrOrStderr(), "serving %s %s on http://%s\n", table.Name, table.SemVer(), addr)
			return srv.ListenAndServe(ctx, addr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", addr, "listen address")
	return cmd
}

// servedTableReloader swaps reloaded tables into srv. A failed reload keeps
// whatever table srv is serving at that moment.
func servedTableReloader(srv *httpapi.Server) func(catalog.Table, error) {
	return func(t catalog.Table, err error) {
		if err != nil {
			current := srv.Table()
			log.Printf("serve: keeping %s %s: %v", current.Name, current.SemVer(), err)
			return
		}
		srv.SetTable(t)
		log.Printf("serve: now serving %s %s", t.Name, t.SemVer())
	}
}
