package net

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image"
	_ "image/jpeg"
	"image/png"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

// InpaintClient talks to the remote inpainting service. The protocol is one
// synchronous POST per job: source image and mask as base64 PNG data URLs,
// one processed image back. The mask uses 255 for "remove" and 0 for
// "preserve"; the service binarizes at threshold 127.
type InpaintClient struct {
	BaseURL string
	HTTP    *http.Client
}

// NewInpaintClient creates a client for the service at baseURL
// (e.g. "http://192.168.1.20:8000"). Inpainting on CPU is slow, so the
// default timeout is generous.
func NewInpaintClient(baseURL string) *InpaintClient {
	return &InpaintClient{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{Timeout: 5 * time.Minute},
	}
}

type inpaintRequest struct {
	Image string `json:"image"`
	Mask  string `json:"mask"`
}

type inpaintResponse struct {
	Result string `json:"result"`
}

// Health probes the service's health endpoint.
func (c *InpaintClient) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/health", nil)
	if err != nil {
		return fmt.Errorf("building health request: %w", err)
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health check returned %s", resp.Status)
	}
	return nil
}

// Inpaint submits the source image and its mask and returns the processed
// image. The result is treated as opaque output; it is decoded but never
// reprocessed locally.
func (c *InpaintClient) Inpaint(ctx context.Context, img image.Image, mask *image.Gray) (image.Image, error) {
	imgURL, err := EncodeDataURL(img)
	if err != nil {
		return nil, fmt.Errorf("encoding image: %w", err)
	}
	maskURL, err := EncodeDataURL(mask)
	if err != nil {
		return nil, fmt.Errorf("encoding mask: %w", err)
	}

	body, err := json.Marshal(inpaintRequest{Image: imgURL, Mask: maskURL})
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	reqID := uuid.NewString()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.BaseURL+"/api/v1/inpaint", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("building inpaint request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", reqID)

	log.Printf("Submitting inpaint job %s to %s (%d request bytes)", reqID, c.BaseURL, len(body))
	start := time.Now()
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("inpaint request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("inpaint service returned %s: %s", resp.Status, strings.TrimSpace(string(detail)))
	}

	var out inpaintResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}
	result, err := DecodeDataURL(out.Result)
	if err != nil {
		return nil, fmt.Errorf("decoding result image: %w", err)
	}
	log.Printf("Inpaint job %s finished in %s", reqID, time.Since(start).Round(time.Millisecond))
	return result, nil
}

// EncodeDataURL encodes an image as a PNG data URL, the lossless wire format
// the service expects.
func EncodeDataURL(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// DecodeDataURL decodes a "data:image/...;base64," URL, or a bare base64
// string, into an image.
func DecodeDataURL(s string) (image.Image, error) {
	if strings.HasPrefix(s, "data:") {
		i := strings.IndexByte(s, ',')
		if i < 0 {
			return nil, fmt.Errorf("malformed data URL")
		}
		s = s[i+1:]
	}
	raw, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("invalid base64 payload: %w", err)
	}
	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("undecodable image payload: %w", err)
	}
	return img, nil
}
