package server

import (
	"fmt"
	"net/http"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/KDZFoundation/agrooptima/internal/api"
	"github.com/KDZFoundation/agrooptima/internal/config"
	"github.com/KDZFoundation/agrooptima/internal/hierarchy"
	"github.com/KDZFoundation/agrooptima/internal/ratecatalog"
	"github.com/KDZFoundation/agrooptima/internal/retriever"
	"github.com/KDZFoundation/agrooptima/internal/store"
)

// Server HTTP server over the advisory engine.
type Server struct {
	router *gin.Engine
	store  *store.Store
	logger *zap.Logger
}

// New wires the full service: store, rate catalog, retriever, annotator
// and the API handler. Seeds the rate table on first run.
func New(cfg *config.AppConfig, logger *zap.Logger) (*Server, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if !cfg.Server.DevMode {
		gin.SetMode(gin.ReleaseMode)
	}

	dataDir, err := config.EnsureDataDir(cfg)
	if err != nil {
		dataDir = cfg.Data.DataDir
	}
	dbPath := filepath.Join(dataDir, "agrooptima.db")

	st, err := store.New(dbPath)
	if err != nil {
		return nil, fmt.Errorf("initialize database: %w", err)
	}

	count, err := st.CountRates()
	if err != nil {
		st.Close()
		return nil, fmt.Errorf("count rates: %w", err)
	}
	if count == 0 {
		if err := st.InsertRates(ratecatalog.Seed()); err != nil {
			st.Close()
			return nil, fmt.Errorf("seed rates: %w", err)
		}
		logger.Info("rate catalog seeded", zap.Int("rates", len(ratecatalog.Seed())))
	}

	rates, err := st.AllRates()
	if err != nil {
		st.Close()
		return nil, fmt.Errorf("load rates: %w", err)
	}
	catalog := ratecatalog.New(rates)

	ret := retriever.New(st, cfg.Retriever.ChunkSize, cfg.Retriever.ChunkOverlap, logger)
	if err := ret.Load(); err != nil {
		st.Close()
		return nil, fmt.Errorf("load knowledge chunks: %w", err)
	}
	logger.Info("knowledge base loaded", zap.Int("chunks", ret.Count()))

	ann := hierarchy.NewAnnotator(ret,
		time.Duration(cfg.Retriever.EvidenceTimeoutMs)*time.Millisecond,
		cfg.Retriever.MaxConcurrent, logger)

	handler := api.NewHandler(st, cfg, catalog, ret, ann, logger)

	s := &Server{
		router: gin.New(),
		store:  st,
		logger: logger,
	}
	s.router.Use(gin.Recovery())
	s.setupRoutes(handler)

	return s, nil
}

func (s *Server) setupRoutes(handler *api.Handler) {
	// CORS
	s.router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})

	handler.RegisterRoutes(s.router.Group("/api"))

	s.router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}

// Run starts the HTTP server. Blocks until the listener fails.
func (s *Server) Run(addr string) error {
	return s.router.Run(addr)
}

// Router exposes the engine for tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Close releases the underlying database.
func (s *Server) Close() error {
	return s.store.Close()
}
