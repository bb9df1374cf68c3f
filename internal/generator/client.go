package generator

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"
)

// FetchErrorKind distinguishes why the webhook could not be reached; parse
// failures are a separate class and never produce a FetchError.
type FetchErrorKind int

const (
	FetchGeneric FetchErrorKind = iota
	FetchTimeout
	FetchNetwork
)

type FetchError struct {
	Kind     FetchErrorKind
	Attempts int
	Err      error
}

func (e *FetchError) Error() string {
	switch e.Kind {
	case FetchTimeout:
		return fmt.Sprintf("webhook timed out after %d attempts: %v", e.Attempts, e.Err)
	case FetchNetwork:
		return fmt.Sprintf("webhook unreachable after %d attempts: %v", e.Attempts, e.Err)
	default:
		return fmt.Sprintf("webhook request failed after %d attempts: %v", e.Attempts, e.Err)
	}
}

func (e *FetchError) Unwrap() error { return e.Err }

// Request is the generation job sent to the webhook. Field names are the
// webhook's own contract.
type Request struct {
	Theme      string `json:"tema"`
	Objective  string `json:"objetivo"`
	Difficulty string `json:"dificuldade"`
	Model      string `json:"modelo"`
	FileRef    string `json:"arquivo,omitempty"`
}

// Client posts generation jobs to the workflow-automation webhook. Any 2xx
// response counts as a successful fetch, even when its body later fails
// parsing: structural garbage is the parser's problem, not the transport's.
type Client struct {
	url      string
	hc       *http.Client
	attempts int
	backoff  time.Duration

	// sleep is swapped out in tests.
	sleep func(ctx context.Context, d time.Duration) error
}

func NewClient(webhookURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 2 * time.Minute
	}
	return &Client{
		url:      webhookURL,
		hc:       &http.Client{Timeout: timeout},
		attempts: 3,
		backoff:  10 * time.Second,
		sleep:    sleepCtx,
	}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Generate fetches one raw envelope, retrying up to 3 times with a growing
// wait (10s, 20s) between attempts.
func (c *Client) Generate(ctx context.Context, req Request) (any, error) {
	var last error
	for attempt := 1; attempt <= c.attempts; attempt++ {
		env, err := c.post(ctx, req)
		if err == nil {
			return env, nil
		}
		last = err
		if attempt == c.attempts {
			break
		}
		if serr := c.sleep(ctx, c.backoff*time.Duration(attempt)); serr != nil {
			last = serr
			break
		}
	}
	return nil, &FetchError{Kind: classifyFetchErr(last), Attempts: c.attempts, Err: last}
}

func (c *Client) post(ctx context.Context, req Request) (any, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.hc.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("webhook returned %s", resp.Status)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	var env any
	if err := json.Unmarshal(raw, &env); err != nil {
		// Not JSON; hand the raw text to the parser as-is.
		return string(raw), nil
	}
	return env, nil
}

func classifyFetchErr(err error) FetchErrorKind {
	if err == nil {
		return FetchGeneric
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return FetchTimeout
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return FetchTimeout
	}
	var ue *url.Error
	if errors.As(err, &ue) {
		return FetchNetwork
	}
	return FetchGeneric
}
