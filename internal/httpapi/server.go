package httpapi

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/abhisek/markbook/internal/dataset"
)

// Server exposes dataset upload, classification, and prediction over JSON.
// Thresholds arrive with every request; the only state held between
// requests is the registry of uploaded tables.
type Server struct {
	cache *dataset.Cache

	mu       sync.RWMutex
	datasets map[string]*datasetEntry
}

type datasetEntry struct {
	ID    string
	Name  string
	Table *dataset.Table
}

// NewServer creates a Server with an empty dataset registry.
func NewServer(cache *dataset.Cache) *Server {
	if cache == nil {
		cache = dataset.NewCache()
	}
	return &Server{
		cache:    cache,
		datasets: make(map[string]*datasetEntry),
	}
}

// Handler builds the gin engine with all routes attached.
func (s *Server) Handler() http.Handler {
	engine := gin.New()
	engine.Use(gin.Logger(), gin.Recovery())

	api := engine.Group("/api")
	{
		api.GET("/health", s.handleHealth)
		api.POST("/datasets", s.handleUploadDataset)
		api.POST("/analyze", s.handleAnalyze)
		api.POST("/predict", s.handlePredict)
	}

	return engine
}

// Run serves until SIGINT/SIGTERM, then drains in-flight requests.
func (s *Server) Run(addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("markbook API listening on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-sigCh:
		log.Printf("received %s, shutting down", sig)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return err
	}
	log.Println("server stopped")
	return nil
}

// register stores a parsed table and hands back its id. Re-uploading
// identical content returns the id assigned on first upload; the cache
// guarantees identical bytes share one *Table.
func (s *Server) register(name string, t *dataset.Table) *datasetEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, e := range s.datasets {
		if e.Table == t {
			return e
		}
	}

	e := &datasetEntry{
		ID:    uuid.NewString(),
		Name:  name,
		Table: t,
	}
	s.datasets[e.ID] = e
	return e
}

// lookup returns the registered table for id, or nil.
func (s *Server) lookup(id string) *datasetEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.datasets[id]
}

// count returns the number of registered datasets.
func (s *Server) count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.datasets)
}
