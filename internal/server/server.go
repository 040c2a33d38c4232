// Package server exposes the HTTP API consumed by the browser extension.
package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mohammad-safakhou/notescan/config"
	"github.com/mohammad-safakhou/notescan/internal/coverage"
	"github.com/mohammad-safakhou/notescan/internal/deckstore"
	"github.com/mohammad-safakhou/notescan/internal/extract"
	"github.com/mohammad-safakhou/notescan/internal/misconception"
	"github.com/mohammad-safakhou/notescan/internal/orchestrator"
	"github.com/mohammad-safakhou/notescan/internal/quizgen"
	"github.com/mohammad-safakhou/notescan/internal/slidesearch"
	"github.com/mohammad-safakhou/notescan/models"
	"github.com/mohammad-safakhou/notescan/provider"
	"github.com/mohammad-safakhou/notescan/session"
	"github.com/mohammad-safakhou/notescan/session/inmemory"
)

// sessionHeader carries the caller's session id. Minted server-side when
// absent and echoed back on every response.
const sessionHeader = "X-Session-ID"

type Server struct {
	echo *echo.Echo
	orch *orchestrator.Orchestrator
}

// New builds the echo instance and registers all routes. Callers own starting
// and stopping it.
func New(orch *orchestrator.Orchestrator) *Server {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.BodyLimit("25M"))

	// Unified HTTP error handler with structured JSON and logging
	baseLogger := log.New(log.Writer(), "[HTTP] ", log.LstdFlags)
	e.HTTPErrorHandler = func(err error, c echo.Context) {
		he := mapError(err)
		req := c.Request()
		baseLogger.Printf("%d %s %s from %s: %v", he.Code, req.Method, req.URL.Path, c.RealIP(), err)
		if !c.Response().Committed {
			_ = c.JSON(he.Code, map[string]interface{}{"error": fmt.Sprint(he.Message)})
		}
	}
	// The extension calls from its own origin; localhost covers development.
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"chrome-extension://*", "http://localhost:*"},
		AllowMethods: []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{"Content-Type", sessionHeader},
	}))

	s := &Server{echo: e, orch: orch}

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := e.Group("/api")
	api.GET("/health", s.health)
	api.POST("/upload-slides", s.uploadSlides)
	api.POST("/scan-notes", s.scanNotes)
	api.POST("/refresh-question", s.refreshQuestion)
	api.GET("/decks/:id/search", s.searchDeck)
	api.POST("/highlights", s.buildHighlights)

	return s
}

func (s *Server) Start(addr string) error {
	return s.echo.Start(addr)
}

// Handler exposes the routed handler for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.echo
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

// session resolves the caller's session from the request header and echoes
// the id back so first-time callers learn theirs.
func (s *Server) session(c echo.Context) *session.Session {
	sess := s.orch.Session(c.Request().Header.Get(sessionHeader))
	c.Response().Header().Set(sessionHeader, sess.ID)
	return sess
}

func (s *Server) health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// mapError translates domain errors into HTTP status codes. Handlers return
// domain errors untouched; this is the single place the mapping lives.
func mapError(err error) *echo.HTTPError {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he
	}
	var ierr *deckstore.IngestionError
	if errors.As(err, &ierr) {
		switch ierr.Reason {
		case deckstore.ReasonUnsupportedFormat:
			return echo.NewHTTPError(http.StatusUnsupportedMediaType, "unsupported document format")
		case deckstore.ReasonEmptyDocument:
			return echo.NewHTTPError(http.StatusUnprocessableEntity, "document contains no readable text")
		default:
			return echo.NewHTTPError(http.StatusBadGateway, "could not extract text from the document")
		}
	}
	if errors.Is(err, models.ErrDeckNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "deck not found, please re-upload your slides")
	}
	var serr *orchestrator.StateError
	if errors.As(err, &serr) {
		return echo.NewHTTPError(http.StatusConflict, "scan your notes before refreshing the question")
	}
	var gerr *quizgen.GenerationError
	if errors.As(err, &gerr) {
		return echo.NewHTTPError(http.StatusBadGateway, "question generation failed, please try again")
	}
	return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
}

// Run wires the full service from configuration and serves until the process
// exits.
func Run(cfg *config.Config, addr string) error {
	ctx := context.Background()

	extractor := extract.New(cfg.Extraction)

	var backend deckstore.Backend
	var memBackend *deckstore.MemoryBackend
	switch cfg.Storage.DeckStore {
	case "", "memory":
		memBackend = deckstore.NewMemoryBackend()
		backend = memBackend
	case "redis":
		rb, err := deckstore.NewRedisBackend(ctx, cfg.Storage.Redis)
		if err != nil {
			return err
		}
		backend = rb
	case "postgres":
		pb, err := deckstore.NewWithDSN(ctx, cfg.Storage.Postgres.URL)
		if err != nil {
			return err
		}
		backend = pb
	default:
		return fmt.Errorf("unknown deck store %q", cfg.Storage.DeckStore)
	}
	decks := deckstore.New(extractor, backend)

	if cfg.Providers.OpenAI.APIKey == "" {
		return fmt.Errorf("OPENAI_API_KEY not configured (providers.openai.api_key)")
	}
	llm, err := provider.NewProvider(provider.OpenAI, cfg.Providers.OpenAI)
	if err != nil {
		return err
	}

	var matcher coverage.Matcher = coverage.NewLexicalMatcher()
	if cfg.Coverage.Engine == "embedding" {
		matcher = coverage.NewEmbeddingMatcher(llm)
	}

	orch := orchestrator.New(
		decks,
		matcher,
		quizgen.New(llm),
		misconception.New(llm),
		slidesearch.New(),
		inmemory.New(),
		cfg.Cleanup.SessionTTL,
	)

	janitor := &Janitor{
		Orch:    orch,
		Decks:   memBackend,
		Cron:    cfg.Cleanup.Cron,
		DeckTTL: 2 * cfg.Cleanup.SessionTTL,
		Stop:    make(chan struct{}),
	}
	janitor.Start()

	if addr == "" {
		addr = cfg.General.Listen
	}
	log.Printf("listening on %s", addr)
	return New(orch).Start(addr)
}
