// Package youtube implements transcript acquisition for YouTube videos.
//
// The upstream offers no stable contract: it rate-limits, detects automated
// clients, and serves captions through several unrelated delivery formats.
// The package therefore layers fallback strategies: the structured caption
// API first, then subtitle tracks discovered via media info extraction
// (including segmented HLS playlists), and finally video metadata alone.
package youtube

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const defaultPlayerEndpoint = "https://www.youtube.com/youtubei/v1/player?prettyPrint=false"

// TranscriptSource tags where a transcript's text came from.
type TranscriptSource string

const (
	SourceCaptionAPI       TranscriptSource = "caption-api"
	SourceSubtitleFile     TranscriptSource = "subtitle-file"
	SourceSubtitlePlaylist TranscriptSource = "subtitle-playlist"
	SourceMetadata         TranscriptSource = "metadata-fallback"
)

// Transcript is the product of a successful acquisition. Text is never empty;
// an empty result is represented as no transcript, not an empty one.
type Transcript struct {
	Text   string           `json:"text"`
	Source TranscriptSource `json:"source"`
}

type Config struct {
	// PlayerEndpoint is the innertube player API URL. Overridable for tests.
	PlayerEndpoint string

	// SocketTimeout bounds a single upstream HTTP call.
	SocketTimeout time.Duration

	// Retries is the per-request retry count for transient HTTP failures.
	Retries int

	// SegmentLimit caps playlist segment fetches per subtitle track.
	SegmentLimit int

	// PreferredLanguages are matched against caption track names and codes.
	PreferredLanguages []string

	// CookieFile is an optional Netscape-format cookie file.
	CookieFile string
}

type Client struct {
	config Config
	http   *http.Client
	logger *logrus.Logger
}

func NewClient(cfg Config, logger *logrus.Logger) (*Client, error) {
	if cfg.PlayerEndpoint == "" {
		cfg.PlayerEndpoint = defaultPlayerEndpoint
	}
	if cfg.SocketTimeout <= 0 {
		cfg.SocketTimeout = 10 * time.Second
	}
	if cfg.SegmentLimit <= 0 {
		cfg.SegmentLimit = 30
	}
	if len(cfg.PreferredLanguages) == 0 {
		cfg.PreferredLanguages = []string{"english", "en", "en-us", "en-gb"}
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create cookie jar")
	}
	if cfg.CookieFile != "" {
		if err := loadCookieFile(jar, cfg.CookieFile); err != nil {
			logger.WithError(err).WithField("path", cfg.CookieFile).
				Warn("Failed to load cookie file, continuing without cookies")
		}
	}

	return &Client{
		config: cfg,
		http: &http.Client{
			Timeout: cfg.SocketTimeout,
			Jar:     jar,
		},
		logger: logger,
	}, nil
}

// get fetches url and returns the response body.
func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	header := http.Header{}
	header.Set("User-Agent", webProfile.userAgent)
	header.Set("Accept-Language", "en-US,en;q=0.9")
	return c.do(ctx, http.MethodGet, url, nil, header)
}

// postJSON sends a JSON payload and returns the response body.
func (c *Client) postJSON(ctx context.Context, url string, payload interface{}, userAgent string) ([]byte, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal request payload")
	}

	header := http.Header{}
	header.Set("Content-Type", "application/json")
	header.Set("User-Agent", userAgent)
	return c.do(ctx, http.MethodPost, url, body, header)
}

// do issues the request, retrying transient upstream failures (5xx, 429) with
// exponential backoff up to the configured count. A fresh request is built
// per attempt so retried POSTs resend their body.
func (c *Client) do(ctx context.Context, method, url string, body []byte, header http.Header) ([]byte, error) {
	var respBody []byte

	operation := func() error {
		var reader io.Reader
		if body != nil {
			reader = bytes.NewReader(body)
		}
		req, err := http.NewRequestWithContext(ctx, method, url, reader)
		if err != nil {
			return backoff.Permanent(errors.Wrap(err, "failed to create request"))
		}
		for k, v := range header {
			req.Header[k] = v
		}

		resp, err := c.http.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests {
			io.Copy(io.Discard, resp.Body)
			return fmt.Errorf("HTTP Error %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode))
		}
		if resp.StatusCode != http.StatusOK {
			io.Copy(io.Discard, resp.Body)
			return backoff.Permanent(fmt.Errorf("HTTP Error %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode)))
		}

		respBody, err = io.ReadAll(resp.Body)
		if err != nil {
			return errors.Wrap(err, "failed to read response body")
		}
		return nil
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewExponentialBackOff(), uint64(c.config.Retries)),
		ctx,
	)
	if err := backoff.Retry(operation, policy); err != nil {
		return nil, err
	}
	return respBody, nil
}
