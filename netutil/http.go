package netutil

import (
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

// Client wraps http.Client with the retry policy the lookup tools share:
// a timed-out request is retried up to Retries times, any other failure is
// returned immediately.
type Client struct {
	HTTP      *http.Client
	Retries   int
	UserAgent string
}

// NewClient builds a Client with the given per-request timeout.
func NewClient(timeout time.Duration, retries int, userAgent string) *Client {
	if retries < 1 {
		retries = 1
	}
	return &Client{
		HTTP:      &http.Client{Timeout: timeout},
		Retries:   retries,
		UserAgent: userAgent,
	}
}

// Get fetches url and returns the response body. Non-2xx statuses are errors.
func (c *Client) Get(url string) ([]byte, error) {
	resp, err := c.Do(url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("GET %s: unexpected status %d", url, resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

// Do issues the GET and returns the raw response. The caller owns the body.
func (c *Client) Do(url string) (*http.Response, error) {
	var lastErr error
	for attempt := 1; attempt <= c.Retries; attempt++ {
		req, err := http.NewRequest(http.MethodGet, url, nil)
		if err != nil {
			return nil, err
		}
		if c.UserAgent != "" {
			req.Header.Set("User-Agent", c.UserAgent)
		}

		resp, err := c.HTTP.Do(req)
		if err == nil {
			return resp, nil
		}
		lastErr = err
		if !isTimeout(err) {
			return nil, err
		}
		logrus.Warnf("request timed out, retrying (%d/%d): %s", attempt, c.Retries, url)
		time.Sleep(time.Second)
	}
	return nil, fmt.Errorf("request failed after %d attempts: %w", c.Retries, lastErr)
}

func isTimeout(err error) bool {
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return true
	}
	return false
}
