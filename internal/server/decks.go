package server

import (
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mohammad-safakhou/notescan/internal/extract"
)

// uploadSlides ingests a slide document and makes it the session's active
// deck. Accepts a multipart "file" field or a raw body with a Content-Type.
func (s *Server) uploadSlides(c echo.Context) error {
	sess := s.session(c)

	data, mimeType, err := readUpload(c)
	if err != nil {
		return err
	}

	deck, err := s.orch.Upload(c.Request().Context(), sess, data, mimeType)
	if err != nil {
		return err
	}
	uploadsTotal.Inc()

	return c.JSON(http.StatusCreated, uploadResponse{
		SessionID:  sess.ID,
		DeckID:     deck.ID,
		SlideCount: len(deck.Slides),
	})
}

func readUpload(c echo.Context) ([]byte, string, error) {
	if file, err := c.FormFile("file"); err == nil {
		f, err := file.Open()
		if err != nil {
			return nil, "", echo.NewHTTPError(http.StatusBadRequest, "could not read uploaded file")
		}
		defer f.Close()
		data, err := io.ReadAll(f)
		if err != nil {
			return nil, "", echo.NewHTTPError(http.StatusBadRequest, "could not read uploaded file")
		}
		mimeType := file.Header.Get("Content-Type")
		if mimeType == "" || mimeType == "application/octet-stream" {
			mimeType = extract.MimeFromFilename(file.Filename)
		}
		return data, mimeType, nil
	}

	data, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return nil, "", echo.NewHTTPError(http.StatusBadRequest, "could not read request body")
	}
	if len(data) == 0 {
		return nil, "", echo.NewHTTPError(http.StatusBadRequest, "no file uploaded")
	}
	return data, c.Request().Header.Get("Content-Type"), nil
}
