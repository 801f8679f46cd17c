package openfoodfacts

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/time/rate"

	"github.com/foodlens/backend/internal/domain"
	"github.com/foodlens/backend/internal/pkg/logger"
)

const (
	maxAttempts = 3

	// maxBodyBytes caps how much of a response body is read
	maxBodyBytes = 2 << 20

	// maxErrorBodyBytes caps how much of an error body ends up in logs
	maxErrorBodyBytes = 512
)

var tracer = otel.Tracer("github.com/foodlens/backend/internal/infrastructure/openfoodfacts")

// ClientConfig configures the Open Food Facts client
type ClientConfig struct {
	BaseURL           string
	UserAgent         string
	Timeout           time.Duration
	RequestsPerSecond float64
	Burst             int
}

// Client handles communication with the Open Food Facts product API
type Client struct {
	httpClient  *http.Client
	baseURL     string
	userAgent   string
	rateLimiter *rate.Limiter
	log         *logger.Logger
	debug       bool
	backoff     func(attempt int) time.Duration
}

// NewClient creates a new Open Food Facts API client
func NewClient(cfg ClientConfig, log *logger.Logger) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 15 * time.Second
	}
	// Open Food Facts asks for at most 100 product reads per minute
	rps := cfg.RequestsPerSecond
	if rps <= 0 {
		rps = 100.0 / 60.0
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = 10
	}
	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = "FoodLens/1.0"
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL:     cfg.BaseURL,
		userAgent:   userAgent,
		rateLimiter: rate.NewLimiter(rate.Limit(rps), burst),
		log:         log.With("client", "openfoodfacts"),
		backoff:     exponentialBackoff,
	}
}

// SetDebug enables verbose request logging
func (c *Client) SetDebug(debug bool) {
	c.debug = debug
}

func (c *Client) debugLog(msg string, keysAndValues ...interface{}) {
	if c.debug {
		c.log.Debug(msg, keysAndValues...)
	}
}

// exponentialBackoff returns the wait before retrying after attempt: 500ms, 1s, 2s, ...
func exponentialBackoff(attempt int) time.Duration {
	return time.Duration(500*(1<<(attempt-1))) * time.Millisecond
}

// readLimitedBody reads at most limit bytes of body
func readLimitedBody(body io.Reader, limit int64) ([]byte, error) {
	return io.ReadAll(io.LimitReader(body, limit))
}

// retryable reports whether a status code is worth another attempt
func retryable(status int) bool {
	return status == http.StatusTooManyRequests || status >= http.StatusInternalServerError
}

// doRequest executes an HTTP GET request with proper headers and error handling
func (c *Client) doRequest(ctx context.Context, reqURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrFoodDatabaseFailure, err)
	}

	return resp, nil
}

// GetProduct fetches the product with the given barcode
func (c *Client) GetProduct(ctx context.Context, barcode string) (*domain.Product, error) {
	ctx, span := tracer.Start(ctx, "openfoodfacts.GetProduct",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attribute.String("product.barcode", barcode)),
	)
	defer span.End()

	product, err := c.getProduct(ctx, barcode)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return product, err
}

func (c *Client) getProduct(ctx context.Context, barcode string) (*domain.Product, error) {
	reqURL := fmt.Sprintf("%s/api/v0/product/%s.json", c.baseURL, barcode)
	c.debugLog("fetching product", "barcode", barcode, "url", reqURL)

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if attempt > 1 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(c.backoff(attempt - 1)):
			}
		}

		if err := c.rateLimiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter error: %w", err)
		}

		resp, err := c.doRequest(ctx, reqURL)
		if err != nil {
			if ctx.Err() != nil {
				return nil, err
			}
			c.log.Warn("request failed", "barcode", barcode, "attempt", attempt, "error", err)
			lastErr = err
			continue
		}

		body, err := readLimitedBody(resp.Body, maxBodyBytes)
		resp.Body.Close()
		if err != nil {
			lastErr = fmt.Errorf("%w: read body: %v", domain.ErrFoodDatabaseFailure, err)
			continue
		}

		switch {
		case resp.StatusCode == http.StatusOK:
		case resp.StatusCode == http.StatusNotFound:
			return nil, domain.ErrProductNotFound
		case retryable(resp.StatusCode):
			c.log.Warn("api error",
				"barcode", barcode,
				"attempt", attempt,
				"status", resp.StatusCode,
				"body", truncate(body, maxErrorBodyBytes))
			if resp.StatusCode == http.StatusTooManyRequests {
				lastErr = domain.ErrRateLimited
			} else {
				lastErr = fmt.Errorf("%w: status %d", domain.ErrFoodDatabaseFailure, resp.StatusCode)
			}
			continue
		default:
			return nil, fmt.Errorf("%w: status %d", domain.ErrFoodDatabaseFailure, resp.StatusCode)
		}

		var parsed offResponse
		if err := json.Unmarshal(body, &parsed); err != nil {
			return nil, fmt.Errorf("failed to decode response: %w", err)
		}

		if parsed.Status != 1 || parsed.Product == nil {
			c.debugLog("product not found", "barcode", barcode, "status_verbose", parsed.StatusVerbose)
			return nil, domain.ErrProductNotFound
		}

		product := MapToProduct(parsed.Product, barcode)
		c.debugLog("product fetched", "barcode", barcode, "name", product.ProductName)
		return product, nil
	}

	c.log.Error("all retries failed", "barcode", barcode, "error", lastErr)
	return nil, lastErr
}

func truncate(body []byte, limit int) string {
	if len(body) > limit {
		return string(body[:limit])
	}
	return string(body)
}
