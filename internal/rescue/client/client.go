package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/nicholaswilde/rescue-groups-mcp/internal/errors"
	"github.com/nicholaswilde/rescue-groups-mcp/internal/rescue/conf"
)

const contentType = "application/vnd.api+json"

// Defaults are the search parameters applied when a caller omits them.
type Defaults struct {
	PostalCode string
	Miles      int
	Species    string
}

// Client is the gateway to the RescueGroups v5 API. Every upstream call
// goes through Fetch, which layers a TTL cache and a token-bucket rate
// limiter in front of the HTTP transport.
type Client struct {
	baseURL  string
	apiKey   string
	httpc    *http.Client
	cache    *expirable.LRU[string, json.RawMessage]
	limiter  *rate.Limiter
	defaults Defaults
}

func New(settings *conf.Settings) *Client {
	window := settings.RateWindow()
	return &Client{
		baseURL: strings.TrimRight(settings.BaseURL, "/"),
		apiKey:  settings.APIKey,
		httpc:   &http.Client{Timeout: settings.RequestTimeout()},
		cache:   expirable.NewLRU[string, json.RawMessage](settings.CacheSize, nil, settings.CacheTTL()),
		limiter: rate.NewLimiter(rate.Limit(float64(settings.RateLimitRequests)/window.Seconds()), settings.RateLimitRequests),
		defaults: Defaults{
			PostalCode: settings.PostalCode,
			Miles:      settings.Miles,
			Species:    settings.Species,
		},
	}
}

// Defaults returns the fallback search parameters.
func (c *Client) Defaults() Defaults {
	return c.defaults
}

// Fetch performs a cached, rate-limited request against the upstream API.
// A cache hit never consumes a rate-limit token. Successful responses are
// stored under the method+url+body key with a fresh TTL.
func (c *Client) Fetch(ctx context.Context, method, url string, body interface{}) (json.RawMessage, error) {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return nil, errors.Serialization(err)
		}
	}

	key := method + ":" + url + ":" + string(payload)
	if cached, ok := c.cache.Get(key); ok {
		log.Debug().Str("method", method).Str("url", url).Msg("cache hit")
		return cached, nil
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, errors.Network(err)
	}

	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, errors.Internal("failed to build request", err)
	}
	req.Header.Set("Authorization", c.apiKey)
	req.Header.Set("Content-Type", contentType)

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, errors.Network(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, errors.NotFound(url)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, errors.API(resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Network(err)
	}
	if !json.Valid(data) {
		return nil, errors.Serialization(fmt.Errorf("invalid json from upstream"))
	}

	c.cache.Add(key, json.RawMessage(data))
	return data, nil
}
