package lookup

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Pages larger than this are truncated before matching.
const maxBodyBytes = 4 << 20

const defaultUserAgent = "Mozilla/5.0 (compatible; flight-emissions-service/1.0)"

type httpStatusError struct {
	Code int
	Body string
}

func (e *httpStatusError) Error() string {
	return fmt.Sprintf("Code %d: %s", e.Code, e.Body)
}

// NewHTTPClient returns the client shared by all page sources.
// A zero timeout leaves requests bounded only by their context.
func NewHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
		},
	}
}

// pageClient fetches HTML pages and returns them as text.
// It makes exactly one attempt per call; fallback is the resolver's job.
type pageClient struct {
	session   *http.Client
	userAgent string
}

func newPageClient(session *http.Client) pageClient {
	if session == nil {
		session = NewHTTPClient(10 * time.Second)
	}
	return pageClient{session: session, userAgent: defaultUserAgent}
}

func (c pageClient) newRequest(ctx context.Context, url string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	return req, nil
}

func (c pageClient) do(req *http.Request) (*http.Response, error) {
	resp, err := c.session.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 400 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		resp.Body.Close()
		return nil, &httpStatusError{
			Code: resp.StatusCode,
			Body: strings.TrimSpace(string(b)),
		}
	}
	return resp, nil
}

func (c pageClient) getText(ctx context.Context, url string) (string, error) {
	req, err := c.newRequest(ctx, url)
	if err != nil {
		return "", err
	}

	resp, err := c.do(req)
	if err != nil {
		return "", fmt.Errorf("get %s: %w", url, err)
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return "", fmt.Errorf("read body %s: %w", url, err)
	}

	return string(b), nil
}
