// Package httpapi serves the leaderboard and difficulty tables over HTTP
// with gin, for clients that do not play in the terminal.
package httpapi

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"

	"github.com/vovakirdan/mindgrid/internal/games/mindgrid"
	"github.com/vovakirdan/mindgrid/internal/leaderboard"
	"github.com/vovakirdan/mindgrid/internal/registry"
)

const (
	defaultLimit = 10
	maxLimit     = 100
)

// EngineSource builds the engine of a variant.
type EngineSource func(variant string) (*mindgrid.Engine, error)

// Config holds the API server settings.
type Config struct {
	Address        string
	DefaultVariant string
	Board          *leaderboard.Service
	Engines        EngineSource
	Logger         *log.Logger
}

// Server is the HTTP facade over the leaderboard and difficulty tables.
type Server struct {
	cfg    Config
	router *gin.Engine
	logger *log.Logger

	mu      sync.Mutex
	engines map[string]*mindgrid.Engine
}

// NewServer creates the server and registers its routes.
func NewServer(cfg Config) *Server {
	if cfg.Logger == nil {
		cfg.Logger = log.New(io.Discard)
	}
	if cfg.DefaultVariant == "" {
		cfg.DefaultVariant = mindgrid.VariantMindgrind
	}

	s := &Server{
		cfg:     cfg,
		logger:  cfg.Logger,
		engines: make(map[string]*mindgrid.Engine),
	}

	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(s.logger))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		api.GET("/leaderboard", s.handleTop)
		api.POST("/leaderboard", s.handleSubmit)
		api.GET("/levels/:level", s.handleLevel)
		api.GET("/variants", s.handleVariants)
	}

	s.router = r
	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Address,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting HTTP API", "address", s.cfg.Address)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// requestLogger logs one line per request.
func requestLogger(l *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		l.Info("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
			"remote", c.ClientIP(),
		)
	}
}

// variant returns the requested variant, or an error for unknown IDs.
func (s *Server) variant(id string) (string, error) {
	if id == "" {
		return s.cfg.DefaultVariant, nil
	}
	if !registry.Exists(id) {
		return "", errors.New("unknown variant " + strconv.Quote(id))
	}
	return id, nil
}

func (s *Server) engine(variant string) (*mindgrid.Engine, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if e, ok := s.engines[variant]; ok {
		return e, nil
	}
	e, err := s.cfg.Engines(variant)
	if err != nil {
		return nil, err
	}
	s.engines[variant] = e
	return e, nil
}

func (s *Server) handleTop(c *gin.Context) {
	variant, err := s.variant(c.Query("variant"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	limit := defaultLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		limit = min(n, maxLimit)
	}

	entries, err := s.cfg.Board.Top(variant, limit)
	if err != nil {
		s.logger.Error("leaderboard query failed", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "leaderboard unavailable"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"variant": variant,
		"entries": entries,
	})
}

// submitRequest is the body of POST /api/leaderboard.
type submitRequest struct {
	RunID   int64  `json:"run_id"`
	Name    string `json:"name"`
	Score   int    `json:"score" binding:"min=0"`
	Level   int    `json:"level" binding:"required,min=1"`
	Variant string `json:"variant"`
}

func (s *Server) handleSubmit(c *gin.Context) {
	var req submitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	variant, err := s.variant(req.Variant)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rec, err := s.cfg.Board.Submit(leaderboard.Submission{
		RowID:   req.RunID,
		Name:    req.Name,
		Score:   req.Score,
		Level:   req.Level,
		Variant: variant,
	})
	switch {
	case errors.Is(err, leaderboard.ErrScoreTooLow), errors.Is(err, leaderboard.ErrNameNotAllowed):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	case err != nil:
		s.logger.Error("leaderboard submit failed", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "leaderboard unavailable"})
		return
	}

	status := http.StatusOK
	if rec.Status == leaderboard.StatusInserted {
		status = http.StatusCreated
	}
	c.JSON(status, gin.H{
		"id":     rec.ID,
		"name":   rec.Name,
		"status": rec.Status.String(),
	})
}

// levelResponse describes one level of a variant.
type levelResponse struct {
	Variant      string         `json:"variant"`
	Level        int            `json:"level"`
	GridSize     int            `json:"grid_size"`
	Turns        int            `json:"turns"`
	TurnBudgetMS int64          `json:"turn_budget_ms"`
	RequiredGain int            `json:"required_gain"`
	Ceiling      int            `json:"ceiling"`
	Weights      map[string]int `json:"weights"`
	RarityChance float64        `json:"rarity_chance"`
	AwardsCredit bool           `json:"awards_credit"`
}

func (s *Server) handleLevel(c *gin.Context) {
	level, err := strconv.Atoi(c.Param("level"))
	if err != nil || level <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "level must be a positive integer"})
		return
	}

	variant, err := s.variant(c.Query("variant"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	e, err := s.engine(variant)
	if err != nil {
		s.logger.Error("engine unavailable", "variant", variant, "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "variant config unavailable"})
		return
	}

	p, err := e.Profile(level)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	weights := make(map[string]int, len(p.Weights))
	for _, w := range p.Weights {
		weights[w.Kind.String()] = w.Weight
	}

	c.JSON(http.StatusOK, levelResponse{
		Variant:      variant,
		Level:        level,
		GridSize:     p.GridSize,
		Turns:        p.Turns,
		TurnBudgetMS: p.TurnBudget.Milliseconds(),
		RequiredGain: e.RequiredGain(level),
		Ceiling:      e.TheoreticalMaxGain(level),
		Weights:      weights,
		RarityChance: e.Config().Rarity.Chance.At(level),
		AwardsCredit: e.AwardsCredit(level),
	})
}

func (s *Server) handleVariants(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"variants": registry.List()})
}
