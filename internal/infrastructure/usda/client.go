package usda

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/macrolens/servings/internal/domain"
	"golang.org/x/time/rate"
)

const (
	defaultTimeout         = 30 * time.Second
	defaultRequestsPerHour = 1000 // USDA default quota per key
	defaultBurst           = 10
	defaultMaxRetries      = 3
	userAgent              = "MacroLens-Servings/1.0"
)

// Client handles communication with the USDA FoodData Central API
type Client struct {
	httpClient  *http.Client
	apiKey      string
	baseURL     string
	rateLimiter *rate.Limiter
	maxRetries  int
	backoff     func(attempt int) time.Duration
	debug       bool
}

// ClientOption customises a Client
type ClientOption func(*Client)

// WithTimeout sets the per-request HTTP timeout
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient.Timeout = timeout
		}
	}
}

// WithRateLimit sets the sustained request rate and burst size
func WithRateLimit(requestsPerHour, burst int) ClientOption {
	return func(c *Client) {
		if requestsPerHour > 0 && burst > 0 {
			c.rateLimiter = rate.NewLimiter(perHour(requestsPerHour), burst)
		}
	}
}

// WithMaxRetries sets how many attempts are made for transient failures
func WithMaxRetries(n int) ClientOption {
	return func(c *Client) {
		if n > 0 {
			c.maxRetries = n
		}
	}
}

// WithBackoff replaces the delay between retries
func WithBackoff(backoff func(attempt int) time.Duration) ClientOption {
	return func(c *Client) {
		if backoff != nil {
			c.backoff = backoff
		}
	}
}

// NewClient creates a new USDA API client
func NewClient(apiKey, baseURL string, opts ...ClientOption) *Client {
	c := &Client{
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		apiKey:      apiKey,
		baseURL:     strings.TrimRight(baseURL, "/"),
		rateLimiter: rate.NewLimiter(perHour(defaultRequestsPerHour), defaultBurst),
		maxRetries:  defaultMaxRetries,
		backoff:     exponentialBackoff,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetDebug toggles request logging
func (c *Client) SetDebug(debug bool) {
	c.debug = debug
}

// perHour converts an hourly quota to a per-second rate.Limit
func perHour(requests int) rate.Limit {
	return rate.Limit(float64(requests) / 3600.0)
}

// exponentialBackoff returns 500ms, 1s, 2s, ... for attempts 1, 2, 3, ...
func exponentialBackoff(attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	return time.Duration(500*(1<<(attempt-1))) * time.Millisecond
}

// doRequest executes an HTTP GET request with proper headers and error handling
func (c *Client) doRequest(ctx context.Context, reqURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUSDAAPIFailure, err)
	}
	return resp, nil
}

// GetFoodDetails retrieves the food-details payload for a specific food by FDC ID.
// Transient failures (network errors, 429, 5xx) are retried with backoff.
func (c *Client) GetFoodDetails(ctx context.Context, fdcID string) (*domain.USDAFoodDetails, error) {
	fdcID = strings.TrimSpace(fdcID)
	if fdcID == "" {
		return nil, domain.ErrInvalidRequest
	}

	endpoint := fmt.Sprintf("%s/v1/food/%s", c.baseURL, url.PathEscape(fdcID))
	params := url.Values{}
	params.Add("api_key", c.apiKey)
	reqURL := fmt.Sprintf("%s?%s", endpoint, params.Encode())

	if c.debug {
		log.Printf("[USDA] GET %s", endpoint)
	}

	var lastErr error
	for attempt := 1; attempt <= c.maxRetries; attempt++ {
		if attempt > 1 {
			if err := sleepContext(ctx, c.backoff(attempt-1)); err != nil {
				return nil, err
			}
		}

		if err := c.rateLimiter.Wait(ctx); err != nil {
			log.Printf("[USDA] Rate limiter error: %v", err)
			return nil, fmt.Errorf("rate limiter error: %w", err)
		}

		resp, err := c.doRequest(ctx, reqURL)
		if err != nil {
			log.Printf("[USDA] Request error (attempt %d): %v", attempt, err)
			lastErr = err
			continue
		}

		body, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()
		if readErr != nil {
			lastErr = fmt.Errorf("%w: read body: %v", domain.ErrUSDAAPIFailure, readErr)
			continue
		}

		switch {
		case resp.StatusCode == http.StatusOK:
			var details domain.USDAFoodDetails
			if err := json.Unmarshal(body, &details); err != nil {
				log.Printf("[USDA] JSON decode error for fdcId %s: %v", fdcID, err)
				return nil, fmt.Errorf("failed to decode response: %w", err)
			}
			if c.debug {
				log.Printf("[USDA] fdcId %s: %d portions, %d nutrients",
					fdcID, len(details.FoodPortions), len(details.FoodNutrients))
			}
			return &details, nil
		case resp.StatusCode == http.StatusNotFound:
			return nil, domain.ErrProductNotFound
		case resp.StatusCode == http.StatusTooManyRequests:
			log.Printf("[USDA] Rate limited by API (attempt %d)", attempt)
			lastErr = fmt.Errorf("%w: %v", domain.ErrRateLimited, domain.ErrUSDAAPIFailure)
		case resp.StatusCode >= http.StatusInternalServerError:
			log.Printf("[USDA] API error (attempt %d) - Status: %d, Body: %s", attempt, resp.StatusCode, string(body))
			lastErr = fmt.Errorf("%w: status %d", domain.ErrUSDAAPIFailure, resp.StatusCode)
		default:
			return nil, fmt.Errorf("%w: status %d, body: %s", domain.ErrUSDAAPIFailure, resp.StatusCode, string(body))
		}
	}

	log.Printf("[USDA] All retries failed for fdcId %s", fdcID)
	return nil, lastErr
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
