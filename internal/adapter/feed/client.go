package feed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/couchcryptid/quake-map/internal/domain"
	"github.com/couchcryptid/quake-map/internal/observability"
)

// maxBodyBytes caps a feed document. The USGS all_month feed is ~10 MiB.
const maxBodyBytes = 64 << 20

var errBodyTooLarge = errors.New("feed body exceeds size limit")

// Client fetches the earthquake and plate-boundary GeoJSON documents.
// It implements pipeline.Fetcher.
type Client struct {
	httpClient *http.Client
	quakeURL   string
	plateURL   string
	metrics    *observability.Metrics
	logger     *slog.Logger
}

// NewClient creates a feed client. timeout bounds each request end to end.
func NewClient(quakeURL, plateURL string, timeout time.Duration, metrics *observability.Metrics, logger *slog.Logger) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		quakeURL: quakeURL,
		plateURL: plateURL,
		metrics:  metrics,
		logger:   logger,
	}
}

// FetchEarthquakes downloads the earthquake FeatureCollection.
func (c *Client) FetchEarthquakes(ctx context.Context) ([]byte, error) {
	return c.fetch(ctx, domain.FeedEarthquakes, c.quakeURL)
}

// FetchPlateBoundaries downloads the plate-boundary FeatureCollection.
func (c *Client) FetchPlateBoundaries(ctx context.Context) ([]byte, error) {
	return c.fetch(ctx, domain.FeedPlates, c.plateURL)
}

func (c *Client) fetch(ctx context.Context, feed, url string) ([]byte, error) {
	start := time.Now()
	body, err := c.doRequest(ctx, feed, url)
	c.metrics.FeedDuration.WithLabelValues(feed).Observe(time.Since(start).Seconds())

	if err != nil {
		c.metrics.FeedRequests.WithLabelValues(feed, "error").Inc()
		return nil, err
	}
	c.metrics.FeedRequests.WithLabelValues(feed, "success").Inc()
	c.logger.Debug("feed fetched", "feed", feed, "bytes", len(body), "duration", time.Since(start))
	return body, nil
}

func (c *Client) doRequest(ctx context.Context, feed, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/geo+json, application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s feed request: %w", feed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("%s feed error: status %d: %s", feed, resp.StatusCode, body)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read %s feed: %w", feed, err)
	}
	if len(body) > maxBodyBytes {
		return nil, fmt.Errorf("%s feed: %w", feed, errBodyTooLarge)
	}
	return body, nil
}
