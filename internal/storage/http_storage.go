package storage

import (
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"net/http"
	"time"

	"github.com/codeGROOVE-dev/retry"

	"github.com/mtornqvi/go-meter-scan/internal/logger"
	"github.com/sirupsen/logrus"
)

// ImageFetcher supplies decoded meter photos to the analysis service.
type ImageFetcher interface {
	FetchImage(ctx context.Context, imageURL string) (image.Image, error)
}

// HTTPImageFetcher implements ImageFetcher over plain HTTP(S).
type HTTPImageFetcher struct {
	client *http.Client
}

// NewHTTPImageFetcher creates an HTTP image fetcher with connection pooling
// sized for one-off photo downloads.
func NewHTTPImageFetcher() ImageFetcher {
	transport := &http.Transport{
		MaxIdleConns:        10,
		MaxIdleConnsPerHost: 2,
		IdleConnTimeout:     30 * time.Second,

		TLSHandshakeTimeout:   10 * time.Second,
		ResponseHeaderTimeout: 10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,

		MaxResponseHeaderBytes: 4096,
	}

	return &HTTPImageFetcher{
		client: &http.Client{
			Transport: transport,
			Timeout:   30 * time.Second,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 3 {
					return fmt.Errorf("too many redirects (limit: 3)")
				}
				return nil
			},
		},
	}
}

// FetchImage downloads and decodes one photo. Transient failures (network
// errors, 5xx) are retried with jittered backoff; 4xx responses are not.
func (h *HTTPImageFetcher) FetchImage(ctx context.Context, imageURL string) (image.Image, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("invalid URL: %w", err)
	}
	req.Header.Set("Accept", "image/jpeg, image/png, */*")
	req.Header.Set("User-Agent", "go-meter-scan/1.0")

	var resp *http.Response
	err = retry.Do(
		func() error {
			if resp != nil && resp.Body != nil {
				_ = resp.Body.Close()
			}
			var doErr error
			resp, doErr = h.client.Do(req)
			if doErr != nil {
				return doErr
			}
			if resp.StatusCode >= 400 && resp.StatusCode < 500 {
				code := resp.StatusCode
				_ = resp.Body.Close()
				resp = nil
				return retry.Unrecoverable(fmt.Errorf("client error: status code %d", code))
			}
			if resp.StatusCode != http.StatusOK {
				code := resp.StatusCode
				_ = resp.Body.Close()
				resp = nil
				return fmt.Errorf("server error: status code %d", code)
			}
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(3),
		retry.Delay(time.Second),
		retry.MaxDelay(10*time.Second),
		retry.DelayType(retry.FullJitterBackoffDelay),
		retry.OnRetry(func(n uint, err error) {
			logger.WithError(err).WithFields(logrus.Fields{
				"attempt": n + 1,
				"url":     imageURL,
			}).Debug("retrying image fetch")
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch image: %w", err)
	}
	defer resp.Body.Close()

	img, _, err := image.Decode(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return img, nil
}
