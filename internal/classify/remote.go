package classify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/wave-app/wave/internal/mode"
)

// Remote talks to an AI-backed analyze endpoint. It implements the
// same Classifier contract as the heuristic; wiring it behind a
// Service gives callers transparent offline fallback.
type Remote struct {
	BaseURL string
	Token   string
	Client  *http.Client
}

// NewRemote creates a remote classifier for the given base URL.
func NewRemote(baseURL, token string) *Remote {
	return &Remote{
		BaseURL: baseURL,
		Token:   token,
		Client:  &http.Client{Timeout: 10 * time.Second},
	}
}

type analyzeRequest struct {
	Text string `json:"text"`
}

type analyzeResponse struct {
	SuggestedMode string  `json:"suggested_mode"`
	Confidence    float64 `json:"confidence"`
	Analysis      string  `json:"analysis"`
}

// Analyze posts the text to the remote endpoint and maps its response
// into the shared Result shape.
func (r *Remote) Analyze(ctx context.Context, text string) (Result, error) {
	body, err := json.Marshal(analyzeRequest{Text: text})
	if err != nil {
		return Result{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.BaseURL+"/analyze", bytes.NewReader(body))
	if err != nil {
		return Result{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	if r.Token != "" {
		req.Header.Set("Authorization", "Bearer "+r.Token)
	}

	resp, err := r.Client.Do(req)
	if err != nil {
		return Result{}, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		// Limit error body read to 1KB
		errBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return Result{}, fmt.Errorf("analyze API error %d: %s", resp.StatusCode, string(errBody))
	}

	var decoded analyzeResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return Result{}, fmt.Errorf("decoding analyze response: %w", err)
	}

	res := Result{
		Confidence: clamp01(decoded.Confidence),
		Rationale:  decoded.Analysis,
	}
	if decoded.SuggestedMode != "" && decoded.SuggestedMode != "none" {
		m, err := mode.Parse(decoded.SuggestedMode)
		if err != nil {
			return Result{}, fmt.Errorf("remote classifier returned %w", err)
		}
		res.SuggestedMode = &m
	}
	return res, nil
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
