package service

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/bytedance/sonic"
)

const userAgent = "signal-bot/1.0"

type httpGetter struct {
	http    *http.Client
	baseURL string
}

func newHTTPGetter(baseURL string, timeout time.Duration) httpGetter {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return httpGetter{http: &http.Client{Timeout: timeout}, baseURL: baseURL}
}

// getJSON GET baseURL+path и декодирует тело в dst
func (g httpGetter) getJSON(ctx context.Context, path string, dst any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := g.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	rb, _ := io.ReadAll(resp.Body)
	if resp.StatusCode/100 != 2 {
		return fmt.Errorf("http %d: %s", resp.StatusCode, truncate(string(rb), 200))
	}
	return sonic.Unmarshal(rb, dst)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
