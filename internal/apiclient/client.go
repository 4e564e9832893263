// Package apiclient клиент HTTP API бэкенда для консоли администратора.
//
// Клиент единственная точка связи с бэкендом: он вычисляет базовый адрес,
// перед каждым запросом подставляет сохранённый токен, а на 401 от любого
// запроса, кроме входа, стирает сессию и уводит приложение на страницу входа.
// Ошибки не проглатываются: каждая операция либо возвращает данные, либо ошибку.
// Повторов нет.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/subscription-admin-console/internal/lib/sl"
)

// Options параметры клиента.
type Options struct {
	// APIURL значение из окружения; пустое значит относительный /api.
	APIURL string
	// Origin адрес консоли, относительно которого разрешается относительный /api.
	Origin string
	// Timeout таймаут запроса; ноль оставляет поведение транспорта по умолчанию.
	Timeout time.Duration
	// Transport базовый транспорт, по умолчанию http.DefaultTransport.
	Transport http.RoundTripper
	// Metrics необязательные метрики запросов.
	Metrics *Metrics
}

// Client клиент API бэкенда.
type Client struct {
	baseURL  string
	http     *http.Client
	validate *validator.Validate
	log      *slog.Logger
}

// New собирает клиент и его конвейер middleware.
func New(opts Options, sessions Sessions, nav Navigator, log *slog.Logger) (*Client, error) {
	const op = "apiclient.New"
	base, err := absoluteBase(ResolveBaseURL(opts.APIURL), opts.Origin)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	transport := opts.Transport
	if transport == nil {
		transport = http.DefaultTransport
	}
	mws := []Middleware{
		RequestID(),
		BearerAuth(sessions, log),
		SessionGuard(sessions, nav, log),
	}
	if opts.Metrics != nil {
		mws = append(mws, opts.Metrics.Middleware())
	}

	return &Client{
		baseURL: base,
		http: &http.Client{
			Transport: Chain(transport, mws...),
			Timeout:   opts.Timeout,
		},
		validate: newValidator(),
		log:      log,
	}, nil
}

// BaseURL абсолютный базовый адрес API.
func (c *Client) BaseURL() string {
	return c.baseURL
}

func (c *Client) get(ctx context.Context, op, path string, query url.Values, out any) error {
	return c.do(ctx, op, http.MethodGet, path, query, nil, out)
}

func (c *Client) post(ctx context.Context, op, path string, body, out any) error {
	return c.do(ctx, op, http.MethodPost, path, nil, body, out)
}

func (c *Client) remove(ctx context.Context, op, path string, out any) error {
	return c.do(ctx, op, http.MethodDelete, path, nil, nil, out)
}

func (c *Client) do(ctx context.Context, op, method, path string, query url.Values, body, out any) error {
	log := c.log.With(slog.String("op", op), slog.String("method", method), slog.String("path", path))

	var payload io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s: encode request: %w", op, err)
		}
		payload = bytes.NewReader(buf)
	}

	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(withOperation(ctx, op), method, target, payload)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		log.Error("request failed", sl.Err(err))
		return fmt.Errorf("%s: %w: %w", op, ErrTransport, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := newAPIError(resp, path)
		log.Warn("backend returned error", slog.Int("status", apiErr.StatusCode), slog.String("message", apiErr.Message))
		return fmt.Errorf("%s: %w", op, apiErr)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s: decode response: %w", op, err)
	}
	return nil
}
