// Package upstream delivers server events to the ad platform's conversions API.
package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/leshachaplin/convrelay/internal/domain"
)

const (
	tokenParam   = "access_token"
	redactedText = "REDACTED"
)

// RejectionError is returned when the conversions API answers with a non-2xx status.
type RejectionError struct {
	StatusCode int
	Body       json.RawMessage
}

func (e *RejectionError) Error() string {
	return fmt.Sprintf("conversions api rejected event: status %d", e.StatusCode)
}

type Client struct {
	cfg    Config
	http   *retryablehttp.Client
	logger zerolog.Logger
}

func New(cfg Config, logger zerolog.Logger) *Client {
	c := &Client{
		cfg:    cfg,
		logger: logger,
	}

	httpClient := retryablehttp.NewClient()
	// one event, one attempt
	httpClient.RetryMax = 0
	httpClient.CheckRetry = neverRetry
	httpClient.ErrorHandler = retryablehttp.PassthroughErrorHandler
	httpClient.Logger = &leveledLogger{logger: logger, redact: c.redact}
	c.http = httpClient

	return c
}

// Endpoint is the full events URL including the credential. Do not log it.
func (c *Client) Endpoint() (string, error) {
	return c.endpoint(c.cfg.AccessToken)
}

// RedactedEndpoint is the events URL with the credential masked.
func (c *Client) RedactedEndpoint() string {
	u, err := c.endpoint(redactedText)
	if err != nil {
		return ""
	}
	return u
}

func (c *Client) endpoint(token string) (string, error) {
	base, err := url.Parse(strings.TrimRight(c.cfg.BaseURL, "/"))
	if err != nil {
		return "", errors.Wrap(err, "parse base url")
	}

	u := base.JoinPath(c.cfg.APIVersion, c.cfg.PixelID, "events")
	q := u.Query()
	q.Set(tokenParam, token)
	u.RawQuery = q.Encode()

	return u.String(), nil
}

// Send posts one payload and returns the parsed response body. A non-2xx answer
// yields *RejectionError; everything else that fails is an internal error.
func (c *Client) Send(ctx context.Context, payload domain.OutboundPayload) (json.RawMessage, error) {
	endpoint, err := c.Endpoint()
	if err != nil {
		return nil, err
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, errors.Wrap(err, "marshal payload")
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, endpoint, body)
	if err != nil {
		return nil, errors.Errorf("new request: %s", c.redact(err.Error()))
	}
	req.Header.Set("Content-Type", "application/json")

	l := zerolog.Ctx(ctx)
	if l.GetLevel() == zerolog.Disabled {
		l = &c.logger
	}
	l.Debug().Str("url", c.RedactedEndpoint()).Msg("sending event to conversions api")

	res, err := c.http.Do(req)
	if err != nil {
		return nil, errors.Errorf("post event: %s", c.redact(err.Error()))
	}
	defer res.Body.Close()

	respBody, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, errors.Wrap(err, "read response")
	}
	if !json.Valid(respBody) {
		return nil, errors.Errorf("decode response: status %d, invalid json", res.StatusCode)
	}

	l.Debug().Int("status", res.StatusCode).Msg("conversions api answered")

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return nil, &RejectionError{
			StatusCode: res.StatusCode,
			Body:       json.RawMessage(respBody),
		}
	}

	return json.RawMessage(respBody), nil
}

func (c *Client) redact(s string) string {
	if c.cfg.AccessToken == "" {
		return s
	}
	s = strings.ReplaceAll(s, c.cfg.AccessToken, redactedText)
	return strings.ReplaceAll(s, url.QueryEscape(c.cfg.AccessToken), redactedText)
}

func neverRetry(ctx context.Context, _ *http.Response, _ error) (bool, error) {
	return false, ctx.Err()
}
