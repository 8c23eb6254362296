package mirror

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/dgraph-io/ristretto"
	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"
)

const (
	defaultTimeout     = 10 * time.Second
	defaultMaxRetries  = 3
	defaultRateLimit   = 50 // requests per second
	defaultBurst       = 10
	defaultCacheTTL    = 30 * time.Second
	defaultNumCounters = 1e5
	defaultMaxCost     = 1 << 24 // 16MB of cached response bodies
	defaultBufferItems = 64
)

// RESTConfig configures a RESTClient.
type RESTConfig struct {
	BaseURL    string
	HTTPClient *http.Client
	MaxRetries uint64
	RateLimit  rate.Limit
	Burst      int
	CacheTTL   time.Duration
	Logger     *slog.Logger // Optional, uses slog.Default() if nil
}

// RESTClient talks to a Hedera mirror node REST API. Requests are rate
// limited, retried with exponential backoff, and guarded by a circuit
// breaker; positive responses are cached for a short TTL.
type RESTClient struct {
	baseURL    string
	httpClient *http.Client
	maxRetries uint64
	limiter    *rate.Limiter
	breaker    *gobreaker.CircuitBreaker
	cache      *ristretto.Cache
	cacheTTL   time.Duration
	logger     *slog.Logger
}

// NewRESTClient creates a mirror node client for the given configuration.
func NewRESTClient(cfg RESTConfig) (*RESTClient, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("mirror: base URL is required")
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{Timeout: defaultTimeout}
	}
	if cfg.MaxRetries == 0 {
		cfg.MaxRetries = defaultMaxRetries
	}
	if cfg.RateLimit == 0 {
		cfg.RateLimit = defaultRateLimit
	}
	if cfg.Burst == 0 {
		cfg.Burst = defaultBurst
	}
	if cfg.CacheTTL == 0 {
		cfg.CacheTTL = defaultCacheTTL
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	cache, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: defaultNumCounters,
		MaxCost:     defaultMaxCost,
		BufferItems: defaultBufferItems,
	})
	if err != nil {
		return nil, fmt.Errorf("mirror: creating response cache: %w", err)
	}

	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    "mirror-rest",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	})

	return &RESTClient{
		baseURL:    cfg.BaseURL,
		httpClient: cfg.HTTPClient,
		maxRetries: cfg.MaxRetries,
		limiter:    rate.NewLimiter(cfg.RateLimit, cfg.Burst),
		breaker:    breaker,
		cache:      cache,
		cacheTTL:   cfg.CacheTTL,
		logger:     cfg.Logger,
	}, nil
}

// AccountBalance returns the balance record for an account id, or ErrNotFound.
func (c *RESTClient) AccountBalance(ctx context.Context, id string) (*AccountBalance, error) {
	var resp balancesResponse
	path := "/api/v1/balances?account.id=" + url.QueryEscape(id)
	if err := c.get(ctx, path, &resp); err != nil {
		return nil, err
	}
	if len(resp.Balances) == 0 {
		return nil, ErrNotFound
	}
	return &resp.Balances[0], nil
}

// AccountInfo returns the account record for an account id.
func (c *RESTClient) AccountInfo(ctx context.Context, id string) (*AccountInfo, error) {
	var info AccountInfo
	if err := c.get(ctx, "/api/v1/accounts/"+url.PathEscape(id), &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// TokenInfo returns the token record for a token id.
func (c *RESTClient) TokenInfo(ctx context.Context, id string) (*TokenInfo, error) {
	var info TokenInfo
	if err := c.get(ctx, "/api/v1/tokens/"+url.PathEscape(id), &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// TopicInfo returns the topic record for a topic id.
func (c *RESTClient) TopicInfo(ctx context.Context, id string) (*TopicInfo, error) {
	var info TopicInfo
	if err := c.get(ctx, "/api/v1/topics/"+url.PathEscape(id), &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// ContractInfo returns the contract record for a contract id.
func (c *RESTClient) ContractInfo(ctx context.Context, id string) (*ContractInfo, error) {
	var info ContractInfo
	if err := c.get(ctx, "/api/v1/contracts/"+url.PathEscape(id), &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// get fetches path and decodes the JSON body into out. Responses that decode
// successfully are cached; not-found and transport errors are never cached.
func (c *RESTClient) get(ctx context.Context, path string, out any) error {
	if cached, ok := c.cache.Get(path); ok {
		if body, ok := cached.([]byte); ok {
			return json.Unmarshal(body, out)
		}
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	result, err := c.breaker.Execute(func() (any, error) {
		return c.fetch(ctx, path)
	})
	if err != nil {
		return err
	}

	body := result.([]byte)
	c.cache.SetWithTTL(path, body, int64(len(body)), c.cacheTTL)
	c.cache.Wait()
	return json.Unmarshal(body, out)
}

// fetch performs the HTTP GET with bounded exponential backoff. Not-found is
// permanent; 5xx and transport failures are retried.
func (c *RESTClient) fetch(ctx context.Context, path string) ([]byte, error) {
	var body []byte

	operation := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
		if err != nil {
			return backoff.Permanent(err)
		}
		req.Header.Set("Accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		switch {
		case resp.StatusCode == http.StatusNotFound:
			return backoff.Permanent(ErrNotFound)
		case resp.StatusCode >= 500:
			return fmt.Errorf("mirror: %s returned %d", path, resp.StatusCode)
		case resp.StatusCode != http.StatusOK:
			return backoff.Permanent(fmt.Errorf("mirror: %s returned %d", path, resp.StatusCode))
		}

		body, err = io.ReadAll(resp.Body)
		return err
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(newBackOff(), c.maxRetries), ctx)
	if err := backoff.Retry(operation, policy); err != nil {
		c.logger.Debug("mirror request failed", "path", path, "error", err)
		return nil, err
	}
	return body, nil
}

func newBackOff() *backoff.ExponentialBackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 250 * time.Millisecond
	b.MaxInterval = 2 * time.Second
	return b
}
