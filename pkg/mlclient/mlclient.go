package mlclient

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"
)

// ErrRateLimited reports that the ML service answered HTTP 429 on every
// allowed attempt. Callers check it with errors.Is to decide whether a
// fallback value applies.
var ErrRateLimited = errors.New("ml service rate limited")

// Config holds the ML service connection details.
type Config struct {
	URL         string
	MaxAttempts int           // total attempts per call, defaults to 3
	BaseDelay   time.Duration // backoff base, defaults to 1s (1s, 2s, 4s, ...)

	// Sleep is the wait between retries. Overridable in tests; defaults to
	// time.Sleep.
	Sleep func(time.Duration)
}

// Client invokes the external ML prediction service, absorbing transient
// rate limiting from that upstream with bounded retry and exponential
// backoff. Any failure other than upstream rate limiting is returned
// immediately without further attempts.
type Client struct {
	baseURL     string
	httpClient  *http.Client
	maxAttempts int
	baseDelay   time.Duration
	sleep       func(time.Duration)
}

// NewClient creates a new ML service client.
func NewClient(cfg Config) *Client {
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 3
	}
	if cfg.BaseDelay <= 0 {
		cfg.BaseDelay = time.Second
	}
	if cfg.Sleep == nil {
		cfg.Sleep = time.Sleep
	}
	return &Client{
		baseURL:     strings.TrimRight(cfg.URL, "/"),
		httpClient:  &http.Client{Timeout: 30 * time.Second},
		maxAttempts: cfg.MaxAttempts,
		baseDelay:   cfg.BaseDelay,
		sleep:       cfg.Sleep,
	}
}

type genreResponse struct {
	Genre []string `json:"genre"`
}

type tagsResponse struct {
	Tags []string `json:"tags"`
}

// PredictGenre asks the ML service for genre predictions for a summary.
func (c *Client) PredictGenre(summary string) ([]string, error) {
	var out genreResponse
	if err := c.call("/predict-genre", summary, &out); err != nil {
		return nil, err
	}
	return out.Genre, nil
}

// ExtractTags asks the ML service for tags extracted from a summary.
func (c *Client) ExtractTags(summary string) ([]string, error) {
	var out tagsResponse
	if err := c.call("/extract-tags", summary, &out); err != nil {
		return nil, err
	}
	return out.Tags, nil
}

// call posts {summary} to the operation path with retry and decodes the JSON
// response into out.
func (c *Client) call(path string, summary string, out interface{}) error {
	payload, err := json.Marshal(map[string]string{"summary": summary})
	if err != nil {
		return fmt.Errorf("failed to marshal ml request: %w", err)
	}

	body, err := withRetry(c.maxAttempts, c.baseDelay, c.sleep, path, func() ([]byte, error) {
		return c.post(path, payload)
	})
	if err != nil {
		return err
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("ml service returned malformed response for %s: %w", path, err)
	}
	return nil
}

// post performs a single attempt. A 429 maps to ErrRateLimited so the retry
// loop can tell it apart from failures that must not be retried.
func (c *Client) post(path string, payload []byte) ([]byte, error) {
	resp, err := c.httpClient.Post(c.baseURL+path, "application/json", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("ml service unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		io.Copy(io.Discard, resp.Body)
		return nil, ErrRateLimited
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("ml service returned status %d for %s", resp.StatusCode, path)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read ml response: %w", err)
	}
	return body, nil
}

// withRetry runs fn up to maxAttempts times, waiting base*2^attempt between
// attempts that failed with ErrRateLimited. There is no wait after the final
// attempt, and any non-rate-limit failure is returned immediately.
func withRetry(maxAttempts int, base time.Duration, sleep func(time.Duration), op string, fn func() ([]byte, error)) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		body, err := fn()
		if err == nil {
			return body, nil
		}
		if !errors.Is(err, ErrRateLimited) {
			return nil, err
		}
		lastErr = err

		if attempt < maxAttempts-1 {
			delay := base * (1 << attempt)
			log.Printf("Warning: ml service rate limited on %s (attempt %d/%d), retrying in %v", op, attempt+1, maxAttempts, delay)
			sleep(delay)
		}
	}
	return nil, lastErr
}
