package inventory

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/Gunvolt24/wb_cart/internal/domain"
	"github.com/Gunvolt24/wb_cart/internal/ports"
	"github.com/Gunvolt24/wb_cart/pkg/metrics"
	"github.com/sony/gobreaker"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// Проверка, что Client удовлетворяет портам остатков и каталога.
var (
	_ ports.StockOracle    = (*Client)(nil)
	_ ports.ProductCatalog = (*Client)(nil)
)

var (
	// ErrUnexpectedStatus — API ответило не 2xx.
	ErrUnexpectedStatus = errors.New("unexpected status")
	// ErrBadResponse — тело ответа не разбирается или не соответствует запросу.
	ErrBadResponse = errors.New("bad response")
)

const maxBodySize = 1 << 20

// Config — параметры клиента API магазина.
type Config struct {
	BaseURL string
	Timeout time.Duration

	// Параметры circuit breaker.
	BreakerMaxRequests uint32
	BreakerInterval    time.Duration
	BreakerTimeout     time.Duration
}

// Client — HTTP-клиент API магазина: GET /stock/{id} и GET /products/{id}.
// Каждый вызов — один запрос с таймаутом; при серии сбоев breaker размыкается и запросы не уходят.
type Client struct {
	baseURL *url.URL
	http    *http.Client
	cb      *gobreaker.CircuitBreaker
}

// NewClient — конструктор. log используется для сообщений о смене состояния breaker'а.
func NewClient(cfg Config, log ports.Logger) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("invalid inventory base url %q", cfg.BaseURL)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	maxReq := cfg.BreakerMaxRequests
	if maxReq == 0 {
		maxReq = 1
	}

	st := gobreaker.Settings{
		Name:        "InventoryAPI",
		MaxRequests: maxReq,
		Interval:    cfg.BreakerInterval,
		Timeout:     cfg.BreakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.Requests >= 5 && float64(counts.TotalFailures)/float64(counts.Requests) >= 0.5
		},
		// 4xx — ответ получен, сервис жив; breaker считает только сетевые сбои, таймауты и 5xx.
		IsSuccessful: func(err error) bool {
			var se *StatusError
			return err == nil || (errors.As(err, &se) && se.Code < http.StatusInternalServerError)
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			metrics.InventoryBreakerState.WithLabelValues(name).Set(float64(to))
			log.Warnf(context.Background(), "CircuitBreaker[%s] state changed from %s to %s", name, from, to)
		},
	}

	return &Client{
		baseURL: base,
		http: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		cb: gobreaker.NewCircuitBreaker(st),
	}, nil
}

// StatusError — ответ с кодом вне 2xx.
type StatusError struct {
	Code int
	Path string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s: status %d", e.Path, e.Code)
}

func (e *StatusError) Unwrap() error { return ErrUnexpectedStatus }

// GetStock — остаток товара.
func (c *Client) GetStock(ctx context.Context, productID int) (domain.Stock, error) {
	var stock domain.Stock
	if err := c.getJSON(ctx, "stock", productID, &stock); err != nil {
		return domain.Stock{}, err
	}
	if stock.ProductID != productID {
		return domain.Stock{}, fmt.Errorf("%w: stock id=%d, requested %d", ErrBadResponse, stock.ProductID, productID)
	}
	if stock.Amount < 0 {
		return domain.Stock{}, fmt.Errorf("%w: negative stock amount %d", ErrBadResponse, stock.Amount)
	}
	return stock, nil
}

// GetProduct — атрибуты товара из каталога.
func (c *Client) GetProduct(ctx context.Context, productID int) (domain.Product, error) {
	var product domain.Product
	if err := c.getJSON(ctx, "products", productID, &product); err != nil {
		return domain.Product{}, err
	}
	if product.ID != productID {
		return domain.Product{}, fmt.Errorf("%w: product id=%d, requested %d", ErrBadResponse, product.ID, productID)
	}
	return product, nil
}

func (c *Client) getJSON(ctx context.Context, resource string, id int, dst any) error {
	path := c.baseURL.JoinPath(resource, strconv.Itoa(id))

	_, err := c.cb.Execute(func() (interface{}, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, path.String(), http.NoBody)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Accept", "application/json")

		resp, err := c.http.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodySize))
			return nil, &StatusError{Code: resp.StatusCode, Path: path.Path}
		}

		if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodySize)).Decode(dst); err != nil {
			return nil, fmt.Errorf("%w: decode %s: %w", ErrBadResponse, path.Path, err)
		}
		return nil, nil
	})
	return err
}
