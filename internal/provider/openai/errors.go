package openai

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/openai/openai-go"
	ai "github.com/spetersoncode/gipwrap"
)

// wrapError converts an SDK API error into a categorized ai.Error carrying
// the status code and any Retry-After hint. Transport errors pass through.
func wrapError(err error) error {
	var apiErr *openai.Error
	if !errors.As(err, &apiErr) {
		return err
	}

	code := apiErr.StatusCode
	retryAfter := parseRetryAfter(apiErr.Response)
	cat := ai.CategorizeStatus(code)
	if retryAfter > 0 {
		cat = ai.ErrorTransient
	}
	return ai.NewError(cat, "openai: request failed", code, retryAfter, err)
}

// parseRetryAfter reads the Retry-After header as seconds or an HTTP date.
// Returns 0 if the header is absent or unparseable.
func parseRetryAfter(resp *http.Response) time.Duration {
	if resp == nil {
		return 0
	}
	header := resp.Header.Get("Retry-After")
	if header == "" {
		return 0
	}
	if seconds, err := strconv.Atoi(header); err == nil {
		return time.Duration(seconds) * time.Second
	}
	if t, err := http.ParseTime(header); err == nil {
		if delay := time.Until(t); delay > 0 {
			return delay
		}
	}
	return 0
}
