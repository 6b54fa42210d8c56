// Package imagestore provides an HTTP client for the collaborating image
// service: it stores raw bytes and returns opaque URL references. Blob
// mechanics (resizing, CDN, retention) live on the other side of the wire.
package imagestore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/storefront/identity-system/internal/core/ports"
)

const defaultTimeout = 15 * time.Second

// Client implements ports.ImageStore against the image service's
// POST /images endpoint.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient builds a Client for the given base URL. A zero timeout falls
// back to the default.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

type storeResponse struct {
	URL          string `json:"url"`
	ThumbnailURL string `json:"thumbnail_url"`
}

// Store uploads the file as multipart form data and returns the stored
// references.
func (c *Client) Store(ctx context.Context, fileName string, data []byte) (*ports.StoredImage, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile("file", fileName)
	if err != nil {
		return nil, fmt.Errorf("image store: build form: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return nil, fmt.Errorf("image store: write form: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("image store: close form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/images", &buf)
	if err != nil {
		return nil, fmt.Errorf("image store: build request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("image store: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("image store: unexpected status %d: %s", resp.StatusCode, body)
	}

	var out storeResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("image store: decode response: %w", err)
	}
	if out.URL == "" {
		return nil, fmt.Errorf("image store: response missing url")
	}

	return &ports.StoredImage{URL: out.URL, ThumbnailURL: out.ThumbnailURL}, nil
}
