package sheet_2026

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/hashicorp/go-hclog"
)

const (
	fetchAttempts    = 3
	fetchBackoffBase = 500 * time.Millisecond
	fetchTimeout     = 15 * time.Second

	// maxSheetBytes caps a fetched sheet. The largest plausible wedding is a
	// few thousand rows of short Base64 cells; anything bigger is not a sheet.
	maxSheetBytes = 8 << 20
)

// FetchSheet downloads a published CSV sheet with bounded retries and linear
// backoff. Transport errors and non-2xx responses both count as retryable;
// the last error is returned once the attempts are spent.
func FetchSheet(ctx context.Context, url string, logger hclog.Logger) ([]byte, error) {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	client := &http.Client{Timeout: fetchTimeout}

	var lastErr error
	for attempt := 1; attempt <= fetchAttempts; attempt++ {
		if attempt > 1 {
			backoff := fetchBackoffBase * time.Duration(attempt-1)
			logger.Warn("🔁 Retrying sheet fetch", "attempt", attempt, "backoff", backoff, "error", lastErr)
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		data, err := fetchOnce(ctx, client, url)
		if err == nil {
			logger.Debug("📥 Fetched sheet", "url", url, "bytes", len(data), "attempt", attempt)
			return data, nil
		}
		lastErr = err
	}

	return nil, fmt.Errorf("fetching sheet after %d attempts: %w", fetchAttempts, lastErr)
}

func fetchOnce(ctx context.Context, client *http.Client, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxSheetBytes+1))
	if err != nil {
		return nil, err
	}
	if len(data) > maxSheetBytes {
		return nil, fmt.Errorf("sheet exceeds %d bytes", maxSheetBytes)
	}

	return data, nil
}
