// Package postgrest implements store.Client against the REST interface of a hosted Postgres
// database (PostgREST, as exposed under /rest/v1).
package postgrest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"alcyxob/fitness-coach/internal/dberr"
	"alcyxob/fitness-coach/internal/store"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

const (
	restPath       = "/rest/v1/"
	defaultTimeout = 30 * time.Second
)

// Config holds the connection parameters of the REST endpoint.
type Config struct {
	URL     string
	APIKey  string
	Schema  string
	Timeout time.Duration
}

// Client talks to one PostgREST endpoint. It holds no per-request state and is safe for
// concurrent use.
type Client struct {
	baseURL    string
	apiKey     string
	schema     string
	httpClient *http.Client
	log        zerolog.Logger
}

var _ store.Client = (*Client)(nil)

// New validates cfg and builds a client.
func New(cfg Config, logger zerolog.Logger) (*Client, error) {
	if cfg.URL == "" {
		return nil, errors.New("postgrest: url is required")
	}
	if cfg.APIKey == "" {
		return nil, errors.New("postgrest: api key is required")
	}
	if _, err := url.Parse(cfg.URL); err != nil {
		return nil, errors.Wrap(err, "postgrest: invalid url")
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL:    strings.TrimRight(cfg.URL, "/") + restPath,
		apiKey:     cfg.APIKey,
		schema:     cfg.Schema,
		httpClient: &http.Client{Timeout: timeout},
		log:        logger.With().Str("component", "postgrest").Logger(),
	}, nil
}

// SetHTTPClient replaces the underlying HTTP client.
func (c *Client) SetHTTPClient(hc *http.Client) *Client {
	c.httpClient = hc
	return c
}

func (c *Client) Select(ctx context.Context, table string, q store.Query, dest any) error {
	params := url.Values{}
	params.Set("select", "*")
	if err := addFilters(params, q.Filters); err != nil {
		return err
	}
	if len(q.Order) > 0 {
		params.Set("order", encodeOrder(q.Order))
	}
	if q.Limit > 0 {
		params.Set("limit", fmt.Sprint(q.Limit))
	}
	data, err := c.do(ctx, http.MethodGet, table, params, nil)
	if err != nil {
		return err
	}
	return store.DecodeRows(data, dest)
}

func (c *Client) Insert(ctx context.Context, table string, row store.Row, dest any) error {
	data, err := c.do(ctx, http.MethodPost, table, url.Values{}, row)
	if err != nil {
		return err
	}
	return decodeInto(data, dest)
}

func (c *Client) Update(ctx context.Context, table string, row store.Row, filters []store.Filter, dest any) error {
	params := url.Values{}
	if err := addFilters(params, filters); err != nil {
		return err
	}
	data, err := c.do(ctx, http.MethodPatch, table, params, row)
	if err != nil {
		return err
	}
	return decodeInto(data, dest)
}

func (c *Client) Delete(ctx context.Context, table string, filters []store.Filter) (int64, error) {
	params := url.Values{}
	if err := addFilters(params, filters); err != nil {
		return 0, err
	}
	data, err := c.do(ctx, http.MethodDelete, table, params, nil)
	if err != nil {
		return 0, err
	}
	var removed []json.RawMessage
	if err := store.DecodeRows(data, &removed); err != nil {
		return 0, err
	}
	return int64(len(removed)), nil
}

func decodeInto(data []byte, dest any) error {
	if dest == nil {
		return nil
	}
	return store.DecodeRows(data, dest)
}

// do performs one round trip and returns the response body of a successful call.
func (c *Client) do(ctx context.Context, method, table string, params url.Values, body store.Row) ([]byte, error) {
	endpoint := c.baseURL + url.PathEscape(table)
	if encoded := params.Encode(); encoded != "" {
		endpoint += "?" + encoded
	}

	var reader io.Reader = http.NoBody
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, dberr.Unknown(err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, dberr.Unknown(err)
	}
	c.setHeaders(ctx, req, body != nil)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Debug().Err(err).Str("method", method).Str("table", table).Msg("request failed")
		return nil, dberr.Network(err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, dberr.Network(err)
	}
	c.log.Debug().
		Str("method", method).
		Str("table", table).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("round trip")

	if resp.StatusCode >= http.StatusBadRequest {
		return nil, responseError(resp.StatusCode, data)
	}
	return data, nil
}

func (c *Client) setHeaders(ctx context.Context, req *http.Request, hasBody bool) {
	req.Header.Set("apikey", c.apiKey)
	bearer := c.apiKey
	if token, ok := store.AccessToken(ctx); ok {
		bearer = token
	}
	req.Header.Set("Authorization", "Bearer "+bearer)
	req.Header.Set("Accept", "application/json")
	if hasBody {
		req.Header.Set("Content-Type", "application/json")
	}
	if req.Method != http.MethodGet {
		req.Header.Set("Prefer", "return=representation")
	}
	if c.schema != "" {
		if req.Method == http.MethodGet {
			req.Header.Set("Accept-Profile", c.schema)
		} else {
			req.Header.Set("Content-Profile", c.schema)
		}
	}
}
