// Package httpapi publishes the filter category table to storefront clients
// and canonicalises filter queries against it. It never filters products.
package httpapi

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/janekbaraniewski/facetpanel/internal/catalog"
)

type Server struct {
	mu    sync.RWMutex
	table catalog.Table
}

func NewServer(table catalog.Table) *Server {
	return &Server{table: table}
}

// SetTable swaps the published table, e.g. after a catalog reload.
func (s *Server) SetTable(t catalog.Table) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.table = t
}

func (s *Server) Table() catalog.Table {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.table
}

// Router builds the gin engine. Routes live under /api/v1/store.
func (s *Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	store := router.Group("/api/v1/store")
	{
		store.GET("/filters", s.getFilters)
		store.GET("/filters/selection", s.getSelection)
	}
	return router
}

// ListenAndServe runs the API on addr until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("httpapi: listening on %s", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("httpapi: serve: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("httpapi: shutdown: %w", err)
		}
		return nil
	}
}
