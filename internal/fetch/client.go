// Package fetch downloads daily EUR reference rates from the ECB Data Portal
// and caches the raw responses on disk.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"fjacquet/ecb-rates/internal/logging"
	"fjacquet/ecb-rates/internal/pipelineerror"

	"github.com/sirupsen/logrus"
)

var log = logging.GetLogger()

// SetLogger allows setting a configured logger
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

// Client fetches the EXR csvdata export for one quote currency against EUR.
type Client struct {
	baseURL    string
	httpClient *http.Client
	maxRetries int
	retryDelay time.Duration
}

// NewClient creates a fetch client. A nil httpClient gets a default with a
// 30 second timeout.
func NewClient(baseURL string, httpClient *http.Client, maxRetries int, retryDelay time.Duration) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
		maxRetries: maxRetries,
		retryDelay: retryDelay,
	}
}

// URL returns the EXR series URL for a quote currency, e.g.
// <base>/D.USD.EUR.SP00.A?format=csvdata for the daily USD/EUR spot rate.
func (c *Client) URL(currency string) string {
	return fmt.Sprintf("%s/D.%s.EUR.SP00.A?format=csvdata", c.baseURL, currency)
}

// Fetch downloads the raw csvdata export for one currency. Transient failures
// (network errors, 5xx) are retried up to maxRetries times with a fixed delay;
// permanent failures (4xx) are returned immediately. The returned error is
// always a *pipelineerror.FetchError on failure.
func (c *Client) Fetch(ctx context.Context, currency string) ([]byte, error) {
	reqURL := c.URL(currency)
	attempts := c.maxRetries + 1

	var lastErr *pipelineerror.FetchError
	for attempt := 1; attempt <= attempts; attempt++ {
		body, fetchErr := c.fetchOnce(ctx, currency, reqURL)
		if fetchErr == nil {
			return body, nil
		}
		lastErr = fetchErr
		if !fetchErr.Transient {
			return nil, fetchErr
		}
		if attempt < attempts {
			log.WithFields(logrus.Fields{
				logging.FieldCurrency: currency,
				logging.FieldAttempt:  attempt,
				logging.FieldReason:   fetchErr.Error(),
			}).Warn("Fetch failed, retrying")

			select {
			case <-ctx.Done():
				return nil, &pipelineerror.FetchError{
					Currency:  currency,
					Transient: true,
					Err:       ctx.Err(),
				}
			case <-time.After(c.retryDelay):
			}
		}
	}
	return nil, lastErr
}

func (c *Client) fetchOnce(ctx context.Context, currency, reqURL string) ([]byte, *pipelineerror.FetchError) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, &pipelineerror.FetchError{Currency: currency, Err: err}
	}
	req.Header.Add("Accept", "text/csv")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// Context cancellation is not worth retrying.
		transient := !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded)
		return nil, &pipelineerror.FetchError{Currency: currency, Transient: transient, Err: err}
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			log.WithError(err).Warn("Failed to close response body")
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, &pipelineerror.FetchError{
			Currency:  currency,
			Status:    resp.StatusCode,
			Transient: resp.StatusCode >= 500,
			Err:       fmt.Errorf("unexpected status %s", resp.Status),
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &pipelineerror.FetchError{Currency: currency, Transient: true, Err: err}
	}
	if len(body) == 0 {
		return nil, &pipelineerror.FetchError{
			Currency: currency,
			Status:   resp.StatusCode,
			Err:      fmt.Errorf("empty response body"),
		}
	}
	return body, nil
}
