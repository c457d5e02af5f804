// Package webfetch is the HTTP client behind the suspending builtins.
// Callers see fetched values or an error, never a partially consumed
// response.
package webfetch

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"golang.org/x/net/html"
)

// Client fetches external resources for builtins. The zero value is
// usable and applies a default timeout.
type Client struct {
	HTTPClient *http.Client
	UserAgent  string
}

// GetJSON performs a GET against url and decodes the JSON response into
// generic Go values (maps, slices, scalars).
func (c *Client) GetJSON(ctx context.Context, url string) (any, error) {
	resp, err := c.get(ctx, url, "application/json")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var value any
	if err := json.NewDecoder(resp.Body).Decode(&value); err != nil {
		return nil, fmt.Errorf("decode %s: %w", url, err)
	}
	return value, nil
}

// PageTitle performs a GET against url and returns the text of the
// page's <title> element. An empty title is reported as an error so
// builtins treat it as a miss.
func (c *Client) PageTitle(ctx context.Context, url string) (string, error) {
	resp, err := c.get(ctx, url, "text/html")
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	doc, err := html.Parse(resp.Body)
	if err != nil {
		return "", fmt.Errorf("parse %s: %w", url, err)
	}

	title := strings.TrimSpace(findTitle(doc))
	if title == "" {
		return "", fmt.Errorf("no title in %s", url)
	}
	return title, nil
}

func (c *Client) get(ctx context.Context, url, accept string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", accept)
	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resp.Body.Close()
		return nil, fmt.Errorf("GET %s: HTTP %d", url, resp.StatusCode)
	}
	return resp, nil
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return &http.Client{Timeout: 15 * time.Second}
}

func findTitle(n *html.Node) string {
	if n.Type == html.ElementNode && n.Data == "title" {
		var sb strings.Builder
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			if child.Type == html.TextNode {
				sb.WriteString(child.Data)
			}
		}
		return sb.String()
	}
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		if title := findTitle(child); title != "" {
			return title
		}
	}
	return ""
}
