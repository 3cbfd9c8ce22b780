package http

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/google/uuid"
)

type HTTPClient interface {
	Do(*http.Request) (*http.Response, error)
}

type Client struct {
	url  string
	http HTTPClient
}

func NewClient(url string, httpClient HTTPClient) *Client {
	return &Client{
		url:  url,
		http: httpClient,
	}
}

func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.url+path, body)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Origin", "https://somewhere-else.example")
	req.Header.Set("X-Request-ID", uuid.NewString())

	return req, nil
}

type response struct {
	Status int
	Header http.Header
	Body   []byte
}

func (c *Client) do(req *http.Request) (response, error) {
	res, err := c.http.Do(req)
	if err != nil {
		return response{}, fmt.Errorf("could not send request: %w", err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return response{}, fmt.Errorf("could not read response: %w", err)
	}

	return response{Status: res.StatusCode, Header: res.Header, Body: body}, nil
}

func (c *Client) SendConversion(ctx context.Context, rawBody string, headers map[string]string) (response, error) {
	req, err := c.newRequest(ctx, http.MethodPost, "/api/conversion", bytes.NewBufferString(rawBody))
	if err != nil {
		return response{}, fmt.Errorf("could not create request: %w", err)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	return c.do(req)
}

func (c *Client) Preflight(ctx context.Context, path string) (response, error) {
	req, err := c.newRequest(ctx, http.MethodOptions, path, nil)
	if err != nil {
		return response{}, fmt.Errorf("could not create request: %w", err)
	}
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	return c.do(req)
}

func (c *Client) Liveness(ctx context.Context) (response, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/", nil)
	if err != nil {
		return response{}, fmt.Errorf("could not create request: %w", err)
	}
	return c.do(req)
}
