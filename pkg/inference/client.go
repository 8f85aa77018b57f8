// Package inference calls an optional remote model endpoint for code
// predictions. The caller falls back to the local rule engine when the
// endpoint is unset or unreachable.
package inference

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/PaulCertified/medical-code-prediction/pkg/common/models"
)

// ErrNotConfigured is returned by Predict when no endpoint URL was set.
var ErrNotConfigured = errors.New("inference endpoint not configured")

type Client struct {
	endpoint string
	client   *http.Client
	attempts int
}

// New creates a client for the remote inference endpoint. An empty endpoint
// yields a client whose Predict always returns ErrNotConfigured.
func New(endpoint string, timeout time.Duration, attempts int) *Client {
	transport := &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		DialContext:           (&net.Dialer{Timeout: 5 * time.Second, KeepAlive: 30 * time.Second}).DialContext,
		MaxIdleConns:          100,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   5 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}

	if attempts < 1 {
		attempts = 1
	}

	return &Client{
		endpoint: endpoint,
		attempts: attempts,
		client: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
	}
}

// Configured reports whether a remote endpoint was set.
func (c *Client) Configured() bool {
	return c != nil && c.endpoint != ""
}

// Predict posts the preprocessed note to the remote endpoint and returns its
// predictions. Retries with exponential backoff on transport errors and 5xx
// responses.
func (c *Client) Predict(ctx context.Context, req models.PredictRequest) ([]models.Prediction, error) {
	if !c.Configured() {
		return nil, ErrNotConfigured
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshaling inference request: %w", err)
	}

	var preds []models.Prediction
	err = retry(ctx, c.attempts, 100*time.Millisecond, func() error {
		preds, err = c.post(ctx, body)
		return err
	})
	return preds, err
}

func (c *Client) post(ctx context.Context, body []byte) ([]models.Prediction, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, err
	}

	if resp.StatusCode >= http.StatusInternalServerError {
		return nil, fmt.Errorf("inference endpoint returned %d", resp.StatusCode)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, nonRetriableError{fmt.Errorf("inference endpoint returned %d: %s", resp.StatusCode, payload)}
	}

	// Accept either a bare prediction array or a wrapped response.
	var preds []models.Prediction
	if err := json.Unmarshal(payload, &preds); err == nil {
		return preds, nil
	}
	var wrapped struct {
		Predictions []models.Prediction `json:"predictions"`
	}
	if err := json.Unmarshal(payload, &wrapped); err != nil {
		return nil, fmt.Errorf("decoding inference response: %w", err)
	}
	return wrapped.Predictions, nil
}

type nonRetriableError struct{ error }

func (e nonRetriableError) Unwrap() error { return e.error }

// retry executes fn with simple exponential backoff retry semantics, capped
// at 2s between attempts.
func retry(ctx context.Context, attempts int, baseDelay time.Duration, fn func() error) error {
	if attempts <= 1 {
		return fn()
	}

	var err error
	delay := baseDelay
	for i := 0; i < attempts; i++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		err = fn()
		if err == nil {
			return nil
		}
		var fatal nonRetriableError
		if errors.As(err, &fatal) {
			return err
		}

		if i == attempts-1 {
			break
		}

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return ctx.Err()
		}

		delay *= 2
		if delay > 2*time.Second {
			delay = 2 * time.Second
		}
	}

	return err
}
