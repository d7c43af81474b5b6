// Package classifier talks to the external two-model road-damage
// detection service. Model 1 is the pothole expert, model 2 covers
// general damage (cracks, ruts, debris); the workflow pipeline calls
// them in that order.
package classifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"
)

// Detection is the verdict returned by either model.
type Detection struct {
	Detected   bool    `json:"detected"`
	Confidence float64 `json:"confidence"`
	Label      string  `json:"label"`
}

// Client is the collaborator contract consumed by the workflow engine.
type Client interface {
	DetectPotholes(ctx context.Context, image []byte, filename string) (Detection, error)
	DetectGeneralDamage(ctx context.Context, image []byte, filename string) (Detection, error)
}

// HTTPClient posts images to the detection endpoints as multipart file
// uploads.
type HTTPClient struct {
	baseURL string
	hc      *http.Client
}

func NewHTTPClient(baseURL string) *HTTPClient {
	return &HTTPClient{
		baseURL: baseURL,
		hc:      &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *HTTPClient) DetectPotholes(ctx context.Context, image []byte, filename string) (Detection, error) {
	return c.detect(ctx, "/api/detect/potholes", image, filename)
}

func (c *HTTPClient) DetectGeneralDamage(ctx context.Context, image []byte, filename string) (Detection, error) {
	return c.detect(ctx, "/api/detect/general-damage", image, filename)
}

func (c *HTTPClient) detect(ctx context.Context, path string, image []byte, filename string) (Detection, error) {
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("file", filename)
	if err != nil {
		return Detection{}, err
	}
	if _, err := part.Write(image); err != nil {
		return Detection{}, err
	}
	if err := w.Close(); err != nil {
		return Detection{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, &body)
	if err != nil {
		return Detection{}, err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := c.hc.Do(req)
	if err != nil {
		return Detection{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return Detection{}, fmt.Errorf("classifier %s returned %d: %s", path, resp.StatusCode, b)
	}

	var det Detection
	if err := json.NewDecoder(resp.Body).Decode(&det); err != nil {
		return Detection{}, fmt.Errorf("decoding classifier response: %w", err)
	}
	return det, nil
}
