package safe

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/carlmjohnson/requests"
	"github.com/trebuchet-org/safe-eth/pkg/network"
	"golang.org/x/time/rate"
)

// ServiceName identifies the transaction service in configuration errors
const ServiceName = "safe-transaction-service"

// DefaultTimeout is applied to the pooled HTTP client unless overridden
const DefaultTimeout = 30 * time.Second

// TransactionServiceURLs contains the Safe Transaction Service URLs for different networks
var TransactionServiceURLs = map[network.Network]string{
	network.Mainnet:        "https://safe-transaction-mainnet.safe.global",
	network.Goerli:         "https://safe-transaction-goerli.safe.global",
	network.Optimism:       "https://safe-transaction-optimism.safe.global",
	network.Gnosis:         "https://safe-transaction-gnosis-chain.safe.global",
	network.Polygon:        "https://safe-transaction-polygon.safe.global",
	network.Arbitrum:       "https://safe-transaction-arbitrum.safe.global",
	network.Sepolia:        "https://safe-transaction-sepolia.safe.global",
	network.Base:           "https://safe-transaction-base.safe.global",
	network.Binance:        "https://safe-transaction-bsc.safe.global",
	network.Avalanche:      "https://safe-transaction-avalanche.safe.global",
	network.ZkSync:         "https://safe-transaction-zksync.safe.global",
	network.Celo:           "https://safe-transaction-celo.safe.global",
	network.CeloSepolia:    "https://safe-transaction-celo-sepolia.safe.global",
	network.Aurora:         "https://safe-transaction-aurora.safe.global",
	network.EnergyWebChain: "https://safe-transaction.ewc.gnosis.io",
	network.Volta:          "https://safe-transaction.volta.gnosis.io",
	network.Rinkeby:        "https://safe-transaction.rinkeby.gnosis.io",
	network.Acala:          "https://transaction.safe.acala.network",
}

// ErrAPI is the sentinel matched by every APIError
var ErrAPI = errors.New("safe api error")

// APIError is returned for any non-2xx response from the transaction service
type APIError struct {
	Op         string
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s (status %d): %s", e.Op, e.StatusCode, e.Body)
}

func (e *APIError) Unwrap() error {
	return ErrAPI
}

// BaseAPI resolves the service URL for a network and performs the raw requests
type BaseAPI struct {
	network    network.Network
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *slog.Logger
	now        func() time.Time
}

// Option configures a BaseAPI
type Option func(*BaseAPI)

// WithBaseURL uses a custom transaction service instead of the table entry
func WithBaseURL(baseURL string) Option {
	return func(b *BaseAPI) {
		b.baseURL = baseURL
	}
}

// WithHTTPClient replaces the pooled HTTP client
func WithHTTPClient(httpClient *http.Client) Option {
	return func(b *BaseAPI) {
		b.httpClient = httpClient
	}
}

// WithTimeout sets the timeout of the pooled HTTP client
func WithTimeout(timeout time.Duration) Option {
	return func(b *BaseAPI) {
		b.httpClient.Timeout = timeout
	}
}

// WithRateLimit caps outgoing requests per second. Zero or negative means unlimited.
func WithRateLimit(requestsPerSecond float64) Option {
	return func(b *BaseAPI) {
		if requestsPerSecond <= 0 {
			b.limiter = rate.NewLimiter(rate.Inf, 0)
			return
		}
		b.limiter = rate.NewLimiter(
			rate.Every(time.Duration(float64(time.Second)/requestsPerSecond)),
			1,
		)
	}
}

// WithLogger sets the logger used for request tracing
func WithLogger(logger *slog.Logger) Option {
	return func(b *BaseAPI) {
		b.logger = logger
	}
}

// WithClock overrides the time source used for delegate signatures
func WithClock(now func() time.Time) Option {
	return func(b *BaseAPI) {
		b.now = now
	}
}

func newBaseAPI(net network.Network, urls map[network.Network]string, opts ...Option) (*BaseAPI, error) {
	b := &BaseAPI{
		network:    net,
		baseURL:    urls[net],
		httpClient: &http.Client{Timeout: DefaultTimeout},
		limiter:    rate.NewLimiter(rate.Inf, 0),
		logger:     slog.New(slog.DiscardHandler),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(b)
	}

	if b.baseURL == "" {
		return nil, &network.NotSupportedError{Network: net, Service: ServiceName}
	}
	return b, nil
}

// Network returns the network the API was built for
func (b *BaseAPI) Network() network.Network {
	return b.network
}

// BaseURL returns the resolved service URL
func (b *BaseAPI) BaseURL() string {
	return b.baseURL
}

// checkOK turns a non-2xx response into an APIError carrying the body
func checkOK(op string) requests.ResponseHandler {
	return func(res *http.Response) error {
		if res.StatusCode >= 200 && res.StatusCode <= 299 {
			return nil
		}
		body, _ := io.ReadAll(res.Body)
		return &APIError{Op: op, StatusCode: res.StatusCode, Body: string(body)}
	}
}

func (b *BaseAPI) builder(ctx context.Context, path string) (*requests.Builder, error) {
	if err := b.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("failed to wait for rate limiter: %w", err)
	}
	return requests.URL(b.baseURL).
		Client(b.httpClient).
		Path(path).
		Accept("application/json"), nil
}

// getRequest performs a GET and decodes the JSON body into out
func (b *BaseAPI) getRequest(ctx context.Context, op, path string, out any) error {
	rb, err := b.builder(ctx, path)
	if err != nil {
		return err
	}
	b.logger.Debug("GET", "service", ServiceName, "path", path)

	if err := rb.AddValidator(checkOK(op)).ToJSON(out).Fetch(ctx); err != nil {
		return wrapRequestErr(op, err)
	}
	return nil
}

// postRequest performs a POST with a JSON payload
func (b *BaseAPI) postRequest(ctx context.Context, op, path string, payload any) error {
	rb, err := b.builder(ctx, path)
	if err != nil {
		return err
	}
	b.logger.Debug("POST", "service", ServiceName, "path", path)

	if err := rb.BodyJSON(payload).AddValidator(checkOK(op)).Fetch(ctx); err != nil {
		return wrapRequestErr(op, err)
	}
	return nil
}

// deleteRequest performs a DELETE with a JSON payload
func (b *BaseAPI) deleteRequest(ctx context.Context, op, path string, payload any) error {
	rb, err := b.builder(ctx, path)
	if err != nil {
		return err
	}
	b.logger.Debug("DELETE", "service", ServiceName, "path", path)

	err = rb.Method(http.MethodDelete).
		BodyJSON(payload).
		AddValidator(checkOK(op)).
		Fetch(ctx)
	if err != nil {
		return wrapRequestErr(op, err)
	}
	return nil
}

// wrapRequestErr keeps APIErrors as they are and annotates transport failures
func wrapRequestErr(op string, err error) error {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}
	return fmt.Errorf("%s: %w", op, err)
}
