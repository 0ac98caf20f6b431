// Package gateway provides a minimal JSON client for a CRUD backend that
// normalizes every outcome into plain data.
package gateway

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/sirupsen/logrus"
)

// DefaultTimeout bounds every request issued by a Client.
const DefaultTimeout = 30 * time.Second

// Result is the normalized outcome of one request. Status 0 means the HTTP
// exchange could not be completed at all; Body is nil when the response
// carried no decodable JSON.
type Result struct {
	Status int
	Body   any
}

// Client issues requests against one backend collection. If log is nil, the
// standard logger is used. Safe for concurrent use.
type Client struct {
	base string
	http *http.Client
	log  *logrus.Logger
}

// New returns a Client for the given base URL.
func New(base string, log *logrus.Logger) *Client {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Client{
		base: strings.TrimRight(base, "/"),
		http: &http.Client{
			Timeout: DefaultTimeout,
			// One connection per call, released whatever the outcome.
			Transport: &http.Transport{DisableKeepAlives: true},
		},
		log: log,
	}
}

// BaseURL reports the configured backend address.
func (c *Client) BaseURL() string { return c.base }

// Do performs one request and classifies the outcome. It never returns a Go
// error: transport failures come back as Status 0 with a payload describing
// the attempted exchange, and empty or undecodable bodies come back as nil.
func (c *Client) Do(ctx context.Context, method, path string, body map[string]any) Result {
	url := c.base + path

	var reader io.Reader
	if body != nil {
		raw, err := sonic.Marshal(body)
		if err != nil {
			return Result{Body: transportPayload(err, url, method, body)}
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return Result{Body: transportPayload(err, url, method, body)}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.WithFields(logrus.Fields{"method": method, "url": url}).
			WithError(err).Debug("transport failure")
		return Result{Body: transportPayload(err, url, method, body)}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		// The status line arrived but the body never finished; the exchange
		// as a whole failed.
		return Result{Body: transportPayload(err, url, method, body)}
	}

	c.log.WithFields(logrus.Fields{"method": method, "url": url, "status": resp.StatusCode}).
		Debug("backend response")

	if resp.StatusCode == http.StatusNoContent || len(data) == 0 {
		return Result{Status: resp.StatusCode}
	}

	var parsed any
	if err := sonic.Unmarshal(data, &parsed); err != nil {
		// Callers only branch on the status code for non-JSON bodies.
		return Result{Status: resp.StatusCode}
	}
	return Result{Status: resp.StatusCode, Body: parsed}
}

func transportPayload(err error, url, method string, body map[string]any) map[string]any {
	return map[string]any{
		"error":  err.Error(),
		"url":    url,
		"method": method,
		"body":   body,
	}
}
