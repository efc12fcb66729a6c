package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/Jhoney47/GameCodeBase/internal/config"
	"github.com/Jhoney47/GameCodeBase/internal/model"
)

const maxFeedBytes = 8 << 20

// Source yields candidate codes for a game, or for every game when gameName is empty
type Source interface {
	Fetch(ctx context.Context, gameName string) ([]model.CandidateCode, error)
}

// HTTPSource reads candidates from the crawler feed, a JSON array served at
// CRAWLER_URL with an optional game query parameter.
type HTTPSource struct {
	baseURL string
	client  *http.Client
}

// NewHTTPSource creates a crawler feed client
func NewHTTPSource(cfg config.CrawlerConfig) *HTTPSource {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	return &HTTPSource{
		baseURL: cfg.URL,
		client: &http.Client{
			Transport: &http.Transport{
				MaxIdleConns:        10,
				IdleConnTimeout:     90 * time.Second,
				TLSHandshakeTimeout: 5 * time.Second,
			},
			Timeout: timeout,
		},
	}
}

// Fetch requests the feed for gameName
func (s *HTTPSource) Fetch(ctx context.Context, gameName string) ([]model.CandidateCode, error) {
	if s.baseURL == "" {
		return nil, fmt.Errorf("crawler url is not configured")
	}
	u, err := url.Parse(s.baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid crawler url: %w", err)
	}
	if gameName != "" {
		q := u.Query()
		q.Set("game", gameName)
		u.RawQuery = q.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build crawler request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("crawler request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("crawler returned status %d: %s", resp.StatusCode, body)
	}

	var candidates []model.CandidateCode
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxFeedBytes)).Decode(&candidates); err != nil {
		return nil, fmt.Errorf("failed to decode crawler feed: %w", err)
	}
	return candidates, nil
}
