// Package filehost talks to the upstream file host that stores the
// actual media bytes and issues time-limited download URLs.
package filehost

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/hszk-dev/vidshare/internal/domain/repository"
	"github.com/hszk-dev/vidshare/internal/infrastructure/metrics"
)

// ErrUpstreamUnavailable is returned when the file host cannot be
// reached or refuses to resolve a media ID. Renewal passes skip the
// affected video and retry on the next scheduled run.
var ErrUpstreamUnavailable = errors.New("file host unavailable")

// ClientConfig holds configuration for the file host client.
type ClientConfig struct {
	BaseURL      string        // e.g. https://api.telegram.org
	BotToken     string        // bot token used in resolve and download URLs
	Timeout      time.Duration // timeout for resolve calls
	ProbeTimeout time.Duration // timeout for liveness probes
}

// DefaultClientConfig returns a ClientConfig with sensible defaults.
func DefaultClientConfig(baseURL, botToken string) ClientConfig {
	return ClientConfig{
		BaseURL:      baseURL,
		BotToken:     botToken,
		Timeout:      10 * time.Second,
		ProbeTimeout: 5 * time.Second,
	}
}

// Client resolves media IDs into temporary URLs and probes existing URLs
// for liveness.
type Client struct {
	resolveClient *http.Client
	probeClient   *http.Client
	baseURL       string
	botToken      string
}

var (
	_ repository.LinkResolver      = (*Client)(nil)
	_ repository.LinkHealthChecker = (*Client)(nil)
)

// NewClient creates a new file host client.
func NewClient(cfg ClientConfig) *Client {
	return &Client{
		resolveClient: &http.Client{Timeout: cfg.Timeout},
		probeClient:   &http.Client{Timeout: cfg.ProbeTimeout},
		baseURL:       cfg.BaseURL,
		botToken:      cfg.BotToken,
	}
}

// getFileResponse is the upstream resolve payload.
type getFileResponse struct {
	OK     bool `json:"ok"`
	Result struct {
		FilePath string `json:"file_path"`
	} `json:"result"`
}

// Resolve asks the file host for a fresh temporary URL for a media ID.
// The returned URL stays valid for at least one hour.
func (c *Client) Resolve(ctx context.Context, mediaID string) (string, error) {
	resolveURL := fmt.Sprintf(
		"%s/bot%s/getFile?file_id=%s",
		c.baseURL, c.botToken, url.QueryEscape(mediaID),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, resolveURL, nil)
	if err != nil {
		return "", fmt.Errorf("build resolve request: %w", err)
	}

	resp, err := c.resolveClient.Do(req)
	if err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues(metrics.UpstreamOpResolve, metrics.UpstreamStatusError).Inc()
		return "", fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		metrics.UpstreamRequestsTotal.WithLabelValues(metrics.UpstreamOpResolve, metrics.UpstreamStatusError).Inc()
		return "", fmt.Errorf("%w: resolve returned status %d", ErrUpstreamUnavailable, resp.StatusCode)
	}

	var payload getFileResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues(metrics.UpstreamOpResolve, metrics.UpstreamStatusError).Inc()
		return "", fmt.Errorf("%w: decode resolve response: %v", ErrUpstreamUnavailable, err)
	}

	if !payload.OK || payload.Result.FilePath == "" {
		metrics.UpstreamRequestsTotal.WithLabelValues(metrics.UpstreamOpResolve, metrics.UpstreamStatusError).Inc()
		return "", fmt.Errorf("%w: media ID not resolvable", ErrUpstreamUnavailable)
	}

	metrics.UpstreamRequestsTotal.WithLabelValues(metrics.UpstreamOpResolve, metrics.UpstreamStatusOK).Inc()
	return fmt.Sprintf("%s/file/bot%s/%s", c.baseURL, c.botToken, payload.Result.FilePath), nil
}

// IsAlive probes an existing temporary URL with a HEAD request. A
// network failure or a 404 means the link needs renewal; any other
// response counts as servable.
func (c *Client) IsAlive(ctx context.Context, link string) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, link, nil)
	if err != nil {
		return false
	}

	resp, err := c.probeClient.Do(req)
	if err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues(metrics.UpstreamOpProbe, metrics.UpstreamStatusError).Inc()
		return false
	}
	defer resp.Body.Close()

	metrics.UpstreamRequestsTotal.WithLabelValues(metrics.UpstreamOpProbe, metrics.UpstreamStatusOK).Inc()
	return resp.StatusCode != http.StatusNotFound
}
