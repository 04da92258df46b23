package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/Gunvolt24/storefront-cart/internal/domain"
	"github.com/Gunvolt24/storefront-cart/internal/ports"
	"github.com/Gunvolt24/storefront-cart/pkg/metrics"
)

var _ ports.CatalogClient = (*Client)(nil)

// ErrUnexpectedResponse — каталог ответил, но не в ожидаемом формате.
var ErrUnexpectedResponse = errors.New("unexpected catalog response")

// Options — адрес каталога и политика повторов.
type Options struct {
	BaseURL string
	Timeout time.Duration
	// MaxRetries — повторы сверх первой попытки (только 5xx и сетевые ошибки).
	MaxRetries      uint64
	InitialInterval time.Duration
}

// Client — HTTP-клиент каталога товаров: GET {base}/api/products/{id}.
type Client struct {
	base       string
	http       *http.Client
	maxRetries uint64
	initial    time.Duration
	log        ports.Logger
}

func NewClient(opts Options, log ports.Logger) *Client {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	initial := opts.InitialInterval
	if initial <= 0 {
		initial = 100 * time.Millisecond
	}

	return &Client{
		base: strings.TrimRight(opts.BaseURL, "/"),
		http: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		maxRetries: opts.MaxRetries,
		initial:    initial,
		log:        log,
	}
}

type productEnvelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
}

type productDTO struct {
	MongoID string            `json:"_id"`
	ID      string            `json:"id"`
	Name    string            `json:"name"`
	Price   float64           `json:"price"`
	Stock   int               `json:"stock"`
	Images  []json.RawMessage `json:"images"`
}

// Product — снимок товара; (nil, nil) на 404.
func (c *Client) Product(ctx context.Context, productID string) (*domain.ProductSnapshot, error) {
	endpoint := c.base + "/api/products/" + url.PathEscape(productID)

	var snapshot *domain.ProductSnapshot
	attempt := 0

	op := func() error {
		attempt++
		p, err := c.fetch(ctx, endpoint)
		if err != nil {
			return err
		}
		snapshot = p
		return nil
	}

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = c.initial
	policy.MaxElapsedTime = 0
	b := backoff.WithContext(backoff.WithMaxRetries(policy, c.maxRetries), ctx)

	err := backoff.RetryNotify(op, b, func(err error, wait time.Duration) {
		metrics.CatalogRequests.WithLabelValues("retry").Inc()
		c.log.Warnf(ctx, "catalog request failed product_id=%s attempt=%d: %v (retry in %s)", productID, attempt, err, wait)
	})
	if err != nil {
		metrics.CatalogRequests.WithLabelValues("error").Inc()
		return nil, err
	}

	if snapshot == nil {
		metrics.CatalogRequests.WithLabelValues("not_found").Inc()
		return nil, nil
	}
	metrics.CatalogRequests.WithLabelValues("ok").Inc()
	return snapshot, nil
}

// fetch — одна попытка. Ошибки, которые не исправятся повтором, помечены backoff.Permanent.
func (c *Client) fetch(ctx context.Context, endpoint string) (*domain.ProductSnapshot, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, http.NoBody)
	if err != nil {
		return nil, backoff.Permanent(fmt.Errorf("build request: %w", err))
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, backoff.Permanent(ctx.Err())
		}
		return nil, fmt.Errorf("catalog request: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, nil
	case resp.StatusCode >= http.StatusInternalServerError:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("catalog status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	case resp.StatusCode != http.StatusOK:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, backoff.Permanent(fmt.Errorf("catalog status %d: %s", resp.StatusCode, strings.TrimSpace(string(body))))
	}

	var env productEnvelope
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&env); err != nil {
		return nil, backoff.Permanent(fmt.Errorf("%w: %v", ErrUnexpectedResponse, err))
	}
	if !env.Success {
		return nil, backoff.Permanent(fmt.Errorf("%w: success=false", ErrUnexpectedResponse))
	}

	var dto productDTO
	if err := json.Unmarshal(env.Data, &dto); err != nil {
		return nil, backoff.Permanent(fmt.Errorf("%w: %v", ErrUnexpectedResponse, err))
	}
	return dto.snapshot()
}

func (d *productDTO) snapshot() (*domain.ProductSnapshot, error) {
	id := d.MongoID
	if id == "" {
		id = d.ID
	}
	if id == "" {
		return nil, backoff.Permanent(fmt.Errorf("%w: product without id", ErrUnexpectedResponse))
	}

	return &domain.ProductSnapshot{
		ID:    id,
		Name:  d.Name,
		Price: d.Price,
		Image: firstImage(d.Images),
		Stock: min(max(d.Stock, 0), domain.MaxStock),
	}, nil
}

// firstImage — images бывают строками или объектами {url, public_id}.
func firstImage(images []json.RawMessage) string {
	if len(images) == 0 {
		return ""
	}
	var s string
	if json.Unmarshal(images[0], &s) == nil {
		return s
	}
	var obj struct {
		URL string `json:"url"`
	}
	if json.Unmarshal(images[0], &obj) == nil {
		return obj.URL
	}
	return ""
}
