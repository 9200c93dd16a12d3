package recognize

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image/png"
	"net/http"
	"time"

	"github.com/jhaanurag/AI-Math-Notes/internal/ink"
)

// Remote recognizes glyphs by posting a rendered image to the OCR
// backend server. The wire contract: request {"image": data URL},
// response {"expression", "confidence", "characters", "method"}.
type Remote struct {
	endpoint string
	client   *http.Client
}

type remoteRequest struct {
	Image string `json:"image"`
}

type remoteCharacter struct {
	Char       string  `json:"char"`
	Confidence float64 `json:"confidence"`
}

type remoteResponse struct {
	Expression string            `json:"expression"`
	Confidence float64           `json:"confidence"`
	Characters []remoteCharacter `json:"characters"`
	Method     string            `json:"method"`
	Error      string            `json:"error"`
}

// NewRemote builds a client for the OCR backend at endpoint, e.g.
// "http://192.168.1.20:5000".
func NewRemote(endpoint string) *Remote {
	return &Remote{
		endpoint: endpoint,
		client:   &http.Client{Timeout: 5 * time.Second},
	}
}

func (r *Remote) Name() string { return "remote-ocr" }

// Healthy probes the backend's health-check endpoint.
func (r *Remote) Healthy(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.endpoint, nil)
	if err != nil {
		return false
	}
	resp, err := r.client.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

func (r *Remote) Recognize(ctx context.Context, c *ink.GlyphCluster) (Result, error) {
	if len(c.Strokes) == 0 {
		return Result{}, fmt.Errorf("%w: empty glyph", ErrUnavailable)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, Rasterize(c)); err != nil {
		return Result{}, fmt.Errorf("encode glyph image: %w", err)
	}
	payload, err := json.Marshal(remoteRequest{
		Image: "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()),
	})
	if err != nil {
		return Result{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.endpoint, bytes.NewReader(payload))
	if err != nil {
		return Result{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return Result{}, fmt.Errorf("%w: backend returned %s", ErrUnavailable, resp.Status)
	}

	var body remoteResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return Result{}, fmt.Errorf("decode backend response: %w", err)
	}
	if body.Error != "" {
		return Result{}, fmt.Errorf("%w: %s", ErrUnavailable, body.Error)
	}
	if body.Expression == "" {
		return Result{}, fmt.Errorf("%w: backend saw nothing", ErrUnavailable)
	}
	return Result{Label: body.Expression, Confidence: body.Confidence}, nil
}
