// SPDX-License-Identifier: Apache-2.0

package service

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/avelichko/imagegate/internal/logger"
	"github.com/avelichko/imagegate/internal/utils"
)

// maxFetchRetries bounds upstream retry attempts per request.
const maxFetchRetries = 3

type remoteFetcher struct {
	client *utils.HTTPClient

	logger *logger.Logger
}

// NewRemoteFetcher returns a [RemoteFetcher] that downloads images over HTTP
// with exponential-backoff retries. Server errors are retried, client errors
// are not.
func NewRemoteFetcher(client *utils.HTTPClient, logger *logger.Logger) RemoteFetcher {
	return &remoteFetcher{
		client: client,
		logger: logger,
	}
}

func (f *remoteFetcher) FetchImage(ctx context.Context, url string) ([]byte, string, time.Duration, error) {
	var (
		data        []byte
		contentType string
		maxAge      time.Duration
	)

	operation := func() error {
		resp, err := f.client.R().
			SetContext(ctx).
			SetHeader("Accept", "image/*").
			Get(url)
		if err != nil {
			f.logger.Warn().Err(err).Str("url", url).Msg("upstream request failed, retrying")
			return err
		}

		status := resp.StatusCode()
		switch {
		case status >= http.StatusOK && status < http.StatusMultipleChoices:
			data = resp.Body()
			contentType = resp.Header().Get("Content-Type")
			maxAge = parseMaxAge(resp.Header().Get("Cache-Control"))
			return nil
		case status >= http.StatusInternalServerError:
			f.logger.Warn().Int("status", status).Str("url", url).Msg("upstream server error, retrying")
			return fmt.Errorf("%w: %d", ErrUpstreamStatus, status)
		default:
			// client errors will not get better on retry
			return backoff.Permanent(fmt.Errorf("%w: %d", ErrUpstreamStatus, status))
		}
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), maxFetchRetries), ctx)
	err := backoff.Retry(operation, policy)
	if err != nil {
		return nil, "", 0, fmt.Errorf("%w: %w", ErrUpstreamFetch, err)
	}

	return data, contentType, maxAge, nil
}

// parseMaxAge extracts the max-age directive from a Cache-Control header.
// Missing, malformed or negative values map to zero.
func parseMaxAge(cacheControl string) time.Duration {
	for _, directive := range strings.Split(cacheControl, ",") {
		directive = strings.TrimSpace(directive)
		value, found := strings.CutPrefix(directive, "max-age=")
		if !found {
			continue
		}

		seconds, err := strconv.Atoi(value)
		if err != nil || seconds < 0 {
			return 0
		}
		return time.Duration(seconds) * time.Second
	}

	return 0
}
