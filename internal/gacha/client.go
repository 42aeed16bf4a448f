package gacha

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/hpungsan/gachalog/internal/errors"
)

const (
	// DefaultPageDelay is the pause between consecutive page requests.
	DefaultPageDelay = 500 * time.Millisecond

	// DefaultUserAgent is sent with every request.
	DefaultUserAgent = "gachalog"

	maxResponseBytes = 8 << 20
)

// Client pages through the gacha log API.
type Client struct {
	HTTP      *http.Client
	PageDelay time.Duration
	UserAgent string
	Logger    *slog.Logger
}

// NewClient returns a client with the given request timeout and page delay.
func NewClient(timeout, pageDelay time.Duration, userAgent string, logger *slog.Logger) *Client {
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	return &Client{
		HTTP:      &http.Client{Timeout: timeout},
		PageDelay: pageDelay,
		UserAgent: userAgent,
		Logger:    logger,
	}
}

// FetchCategory retrieves every record of one category, newest first as the
// server returns them. Any failed page fails the whole category.
func (c *Client) FetchCategory(ctx context.Context, ep *Endpoint, code string) (*CategoryLog, error) {
	out := &CategoryLog{Code: code}
	endID := ""
	for page := 1; ; page++ {
		resp, err := c.get(ctx, ep.pageURL(code, endID))
		if err != nil {
			if ctx.Err() != nil {
				return nil, errors.NewCancelled("fetch")
			}
			return nil, fmt.Errorf("gacha_type %s page %d: %w", code, page, err)
		}
		if resp.Retcode != 0 {
			return nil, errors.NewAPIError(resp.Retcode, resp.Message)
		}
		if resp.Data == nil {
			break
		}
		if out.Region == "" {
			out.Region = resp.Data.Region
		}
		if out.RegionTimeZone == nil && resp.Data.RegionTimeZone != nil {
			tz := *resp.Data.RegionTimeZone
			out.RegionTimeZone = &tz
		}
		if len(resp.Data.List) == 0 {
			break
		}
		out.Records = append(out.Records, resp.Data.List...)
		// A cursor that is empty or unchanged would refetch the same page forever.
		next := resp.Data.List[len(resp.Data.List)-1].ID
		if next == "" || next == endID {
			return nil, errors.NewCursorStalled(code, next)
		}
		endID = next

		c.logger().Debug("fetched page", "gacha_type", code, "page", page, "records", len(resp.Data.List))
		if err := c.wait(ctx); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Probe reports whether the API accepts u. It satisfies Validator.
func (c *Client) Probe(ctx context.Context, u *url.URL) bool {
	resp, err := c.get(ctx, u.String())
	if err != nil {
		c.logger().Debug("probe failed", "host", u.Host, "err", err)
		return false
	}
	if resp.Retcode != 0 {
		c.logger().Debug("probe rejected", "host", u.Host, "retcode", resp.Retcode, "message", resp.Message)
		return false
	}
	return true
}

func (c *Client) get(ctx context.Context, u string) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent())

	res, err := c.httpClient().Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	body, err := io.ReadAll(io.LimitReader(res.Body, maxResponseBytes))
	if err != nil {
		return nil, err
	}
	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return nil, fmt.Errorf("http %d", res.StatusCode)
	}

	var out Response
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &out, nil
}

// wait sleeps for PageDelay unless ctx ends first.
func (c *Client) wait(ctx context.Context) error {
	if c.PageDelay <= 0 {
		return nil
	}
	t := time.NewTimer(c.PageDelay)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return errors.NewCancelled("fetch")
	case <-t.C:
		return nil
	}
}

func (c *Client) httpClient() *http.Client {
	if c.HTTP == nil {
		return http.DefaultClient
	}
	return c.HTTP
}

func (c *Client) userAgent() string {
	if c.UserAgent == "" {
		return DefaultUserAgent
	}
	return c.UserAgent
}

func (c *Client) logger() *slog.Logger {
	if c.Logger == nil {
		return slog.Default()
	}
	return c.Logger
}
