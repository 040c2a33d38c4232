package server

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/mohammad-safakhou/notescan/internal/slidesearch"
)

const defaultSearchLimit = 5

// searchDeck runs a term query over one deck's slides.
func (s *Server) searchDeck(c echo.Context) error {
	deckID := c.Param("id")
	q := c.QueryParam("q")
	if q == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "q is required")
	}
	k := defaultSearchLimit
	if raw := c.QueryParam("k"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return echo.NewHTTPError(http.StatusBadRequest, "k must be a positive integer")
		}
		k = n
	}

	hits, err := s.orch.Search(deckID, q, k)
	if err != nil {
		return err
	}
	if hits == nil {
		hits = []slidesearch.Hit{}
	}
	return c.JSON(http.StatusOK, searchResponse{DeckID: deckID, Hits: hits})
}
