package server

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mohammad-safakhou/notescan/internal/highlight"
)

// buildHighlights turns misconception findings back into byte-offset patches
// over the document text the client holds. Pure computation, no session.
func (s *Server) buildHighlights(c echo.Context) error {
	var req highlightsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.DocumentText == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "document_text is required")
	}

	patches := highlight.Build(req.DocumentText, req.Findings)
	if patches == nil {
		patches = []highlight.Patch{}
	}
	return c.JSON(http.StatusOK, highlightsResponse{Patches: patches})
}
