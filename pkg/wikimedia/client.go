package wikimedia

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

const defaultBaseURL = "https://api.wikimedia.org"

// Client talks to the Wikimedia Core and Feed REST APIs. It owns transport
// concerns only: URL building, headers, status checking, JSON decoding. The
// decoded body is handed to the schema engine by the endpoint services.
type Client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
	token      string
	lang       Language
}

// NewClient builds a client for one language edition. The token is optional;
// when set it is sent as a bearer Authorization header.
func NewClient(token string, lang Language) *Client {
	return &Client{
		httpClient: http.DefaultClient,
		baseURL:    defaultBaseURL,
		userAgent:  "wikifeed/1.0 (github.com/wikifeed)",
		token:      token,
		lang:       lang,
	}
}

// Language returns the language edition the client was built for.
func (c *Client) Language() Language { return c.lang }

// getJSON performs a GET against path (relative to the base URL) and decodes
// the body into a generic JSON object. Non-2xx responses are rejected here
// so the deserialization layer only ever sees successful payloads.
func (c *Client) getJSON(ctx context.Context, path string, params url.Values) (map[string]any, error) {
	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.userAgent)
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("wikimedia: %s returned %s", path, resp.Status)
	}

	var body map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("wikimedia: decoding %s: %w", path, err)
	}
	return body, nil
}
