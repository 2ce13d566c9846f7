// Package oracle is the HTTP client for the remote food estimation service.
// The service is untrusted and advisory: callers must treat any transport
// failure or ok:false response as a signal to use the local fallback.
package oracle

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"path/filepath"
	"strings"
	"time"
)

const (
	// MaxImageBytes is the upload size limit enforced by the service.
	MaxImageBytes = 6 * 1024 * 1024

	analyzePath = "/analyze"
)

var allowedExtensions = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".webp": "image/webp",
}

// Response is the raw estimation payload. Older deployments of the service
// spell some fields differently (calories_est, carbs), so both spellings are
// decoded here and reconciled by the estimation adapter; nothing past that
// boundary sees the raw shape.
type Response struct {
	OK          bool     `json:"ok"`
	Food        string   `json:"food"`
	Calories    *float64 `json:"calories"`
	CaloriesEst *float64 `json:"calories_est"`
	CarbsG      *float64 `json:"carbs_g"`
	Carbs       *float64 `json:"carbs"`
	ProteinG    *float64 `json:"protein_g"`
	Protein     *float64 `json:"protein"`
	FatG        *float64 `json:"fat_g"`
	Fat         *float64 `json:"fat"`
	Confidence  *float64 `json:"confidence"`
	Message     string   `json:"message"`
}

type Client struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
}

// EstimateImage uploads one image and returns the service's nutrition guess.
// The raw body is returned alongside for diagnostics.
func (c *Client) EstimateImage(ctx context.Context, filename string, image []byte) (Response, []byte, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(c.BaseURL), "/")
	if baseURL == "" {
		return Response{}, nil, fmt.Errorf("missing estimation service base URL")
	}
	contentType, ok := allowedExtensions[strings.ToLower(filepath.Ext(filename))]
	if !ok {
		return Response{}, nil, fmt.Errorf("unsupported image type %q (expected JPEG, PNG, or WebP)", filepath.Ext(filename))
	}
	if len(image) == 0 {
		return Response{}, nil, fmt.Errorf("image is empty")
	}
	if len(image) > MaxImageBytes {
		return Response{}, nil, fmt.Errorf("image exceeds the %d MB limit", MaxImageBytes/(1024*1024))
	}
	httpClient := c.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 12 * time.Second}
	}

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, filepath.Base(filename)))
	header.Set("Content-Type", contentType)
	part, err := writer.CreatePart(header)
	if err != nil {
		return Response{}, nil, fmt.Errorf("create multipart payload: %w", err)
	}
	if _, err := part.Write(image); err != nil {
		return Response{}, nil, fmt.Errorf("write image payload: %w", err)
	}
	if err := writer.Close(); err != nil {
		return Response{}, nil, fmt.Errorf("finalize multipart payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, baseURL+analyzePath, &body)
	if err != nil {
		return Response{}, nil, fmt.Errorf("create estimation request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if strings.TrimSpace(c.APIKey) != "" {
		req.Header.Set("Authorization", "Bearer "+c.APIKey)
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return Response{}, nil, fmt.Errorf("execute estimation request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return Response{}, nil, fmt.Errorf("read estimation response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return Response{}, raw, fmt.Errorf("estimation request failed with status %d", resp.StatusCode)
	}

	var parsed Response
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return Response{}, raw, fmt.Errorf("decode estimation response: %w", err)
	}
	if !parsed.OK {
		msg := strings.TrimSpace(parsed.Message)
		if msg == "" {
			msg = "no reason given"
		}
		return parsed, raw, fmt.Errorf("estimation service declined the image: %s", msg)
	}
	return parsed, raw, nil
}
