package extract

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// ocrClient talks to the remote OCR/extraction service: document bytes in,
// per-page text out.
type ocrClient struct {
	baseURL    string
	httpClient *http.Client
}

func newOCRClient(baseURL string, timeout time.Duration) *ocrClient {
	return &ocrClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type ocrRequest struct {
	Data     string `json:"data"` // base64 document bytes
	MimeType string `json:"mime_type"`
	Page     int    `json:"page,omitempty"` // 1-based; 0 means all pages
}

type ocrResponse struct {
	Pages []string `json:"pages"`
}

// Extract runs the whole document through the OCR service.
func (c *ocrClient) Extract(ctx context.Context, data []byte, mimeType string) ([]string, error) {
	resp, err := c.call(ctx, ocrRequest{
		Data:     base64.StdEncoding.EncodeToString(data),
		MimeType: mimeType,
	})
	if err != nil {
		return nil, &ExtractionError{Reason: ReasonExtractionFailed, Err: err}
	}
	return resp.Pages, nil
}

// ExtractPage OCRs a single page of a document, used as the fallback for PDF
// pages without a usable text layer.
func (c *ocrClient) ExtractPage(ctx context.Context, data []byte, mimeType string, page int) (string, error) {
	resp, err := c.call(ctx, ocrRequest{
		Data:     base64.StdEncoding.EncodeToString(data),
		MimeType: mimeType,
		Page:     page,
	})
	if err != nil {
		return "", err
	}
	if len(resp.Pages) == 0 {
		return "", fmt.Errorf("ocr service returned no pages")
	}
	return resp.Pages[0], nil
}

func (c *ocrClient) call(ctx context.Context, body ocrRequest) (*ocrResponse, error) {
	jsonData, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/v1/extract", bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("ocr service returned status: %d", resp.StatusCode)
	}

	var out ocrResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	return &out, nil
}
