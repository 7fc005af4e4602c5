package api

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"digitomize/internal/apperror"
	"digitomize/internal/config"

	"github.com/rs/zerolog"
	"github.com/valyala/fasthttp"
)

const userAgent = "digitomize-aggregator/1.0"

// Client is the outbound HTTP client shared by every platform adapter.
type Client struct {
	client  *fasthttp.Client
	timeout time.Duration
	logger  zerolog.Logger
}

type Response struct {
	StatusCode int
	Body       []byte
}

func NewClient(cfg *config.Config, logger zerolog.Logger) *Client {
	return &Client{
		client: &fasthttp.Client{
			Name:                userAgent,
			MaxConnsPerHost:     100,
			ReadTimeout:         cfg.ExternalAPITimeout,
			WriteTimeout:        cfg.ExternalAPITimeout,
			MaxIdleConnDuration: 1 * time.Minute,
		},
		timeout: cfg.ExternalAPITimeout,
		logger:  logger.With().Str("component", "api").Logger(),
	}
}

// Do performs a single request. Only transport failures are returned as
// errors; the caller classifies the status code.
func (c *Client) Do(ctx context.Context, platform, method, url string, body []byte, headers map[string]string) (*Response, error) {
	if err := ctx.Err(); err != nil {
		return nil, apperror.Network(platform, err)
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(url)
	req.Header.SetMethod(method)
	req.Header.Set("Accept", "application/json, text/html")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	if body != nil {
		req.SetBody(body)
	}

	deadline, ok := ctx.Deadline()
	if !ok {
		deadline = time.Now().Add(c.timeout)
	}

	start := time.Now()
	if err := c.client.DoDeadline(req, resp, deadline); err != nil {
		c.logger.Debug().
			Err(err).
			Str("platform", platform).
			Str("url", url).
			Dur("elapsed", time.Since(start)).
			Msg("upstream request failed")
		return nil, apperror.Network(platform, err)
	}

	c.logger.Debug().
		Str("platform", platform).
		Str("url", url).
		Int("status", resp.StatusCode()).
		Dur("elapsed", time.Since(start)).
		Msg("upstream request")

	return &Response{
		StatusCode: resp.StatusCode(),
		Body:       append([]byte(nil), resp.Body()...),
	}, nil
}

func (r *Response) Redirected() bool {
	return r.StatusCode >= fasthttp.StatusMultipleChoices && r.StatusCode < fasthttp.StatusBadRequest
}

// Check classifies a non-200 status the same way Get does.
func (r *Response) Check(platform, url string) error {
	return checkStatus(platform, url, r.StatusCode)
}

// Get fetches url and returns the body of a 200 response.
func (c *Client) Get(ctx context.Context, platform, url string) ([]byte, error) {
	resp, err := c.Do(ctx, platform, fasthttp.MethodGet, url, nil, nil)
	if err != nil {
		return nil, err
	}
	if err := checkStatus(platform, url, resp.StatusCode); err != nil {
		return nil, err
	}
	return resp.Body, nil
}

func GetJSON[T any](ctx context.Context, c *Client, platform, url string) (*T, error) {
	body, err := c.Get(ctx, platform, url)
	if err != nil {
		return nil, err
	}
	return decode[T](platform, body)
}

func PostJSON[T any](ctx context.Context, c *Client, platform, url string, payload any) (*T, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request body: %w", err)
	}

	resp, err := c.Do(ctx, platform, fasthttp.MethodPost, url, raw, map[string]string{
		"Content-Type": "application/json",
	})
	if err != nil {
		return nil, err
	}
	if err := checkStatus(platform, url, resp.StatusCode); err != nil {
		return nil, err
	}
	return decode[T](platform, resp.Body)
}

func decode[T any](platform string, body []byte) (*T, error) {
	var result T
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, apperror.Parse(platform, "failed to decode response", err)
	}
	return &result, nil
}

func checkStatus(platform, url string, status int) error {
	switch {
	case status == fasthttp.StatusOK:
		return nil
	case status == fasthttp.StatusNotFound:
		return &apperror.AppError{
			Err:      apperror.ErrNotFound,
			Message:  fmt.Sprintf("%s: %s returned 404", platform, url),
			Platform: platform,
		}
	default:
		return apperror.Network(platform, fmt.Errorf("API error: %d", status))
	}
}
