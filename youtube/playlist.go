package youtube

import (
	"context"
	"net/url"
	"strings"
	"time"
)

const (
	playlistMarker = "#EXTM3U"

	// playlistSegmentCap bounds segment fetches regardless of configuration,
	// so a hostile or enormous playlist cannot exhaust memory or time on
	// constrained deployments.
	playlistSegmentCap = 20

	segmentFetchTimeout = 5 * time.Second
)

// ResolveSubtitleTrack fetches a subtitle track URL and returns its plain
// text. Content starting with the streaming-playlist marker is treated as a
// segmented subtitle stream: each non-comment line is resolved as a
// relative-or-absolute segment URL and fetched up to a bounded count, with
// failed segments skipped. Anything else is a single direct subtitle file.
// A nil transcript means no usable text resulted.
func (c *Client) ResolveSubtitleTrack(ctx context.Context, trackURL string) (*Transcript, error) {
	body, err := c.get(ctx, trackURL)
	if err != nil {
		return nil, err
	}

	text := string(body)
	if strings.HasPrefix(strings.TrimLeft(text, " \t\r\n"), playlistMarker) {
		return c.resolvePlaylist(ctx, trackURL, text), nil
	}

	cleaned := NormalizeSubtitleText(text)
	if cleaned == "" {
		return nil, nil
	}
	return &Transcript{Text: cleaned, Source: SourceSubtitleFile}, nil
}

func (c *Client) resolvePlaylist(ctx context.Context, playlistURL, playlist string) *Transcript {
	logger := c.logger.WithField("track_url", playlistURL)
	logger.Debug("Detected segmented subtitle playlist")

	base, err := url.Parse(playlistURL)
	if err != nil {
		logger.WithError(err).Warn("Unparseable playlist URL")
		return nil
	}

	var segments []string
	for _, line := range strings.Split(playlist, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		ref, err := url.Parse(line)
		if err != nil {
			continue
		}
		segments = append(segments, base.ResolveReference(ref).String())
	}

	limit := c.config.SegmentLimit
	if limit > playlistSegmentCap {
		limit = playlistSegmentCap
	}
	if len(segments) > limit {
		segments = segments[:limit]
	}

	var collected []string
	for _, segURL := range segments {
		segCtx, cancel := context.WithTimeout(ctx, segmentFetchTimeout)
		body, err := c.get(segCtx, segURL)
		cancel()
		if err != nil {
			logger.WithError(err).Debug("Segment fetch failed")
			continue
		}
		if cleaned := NormalizeSubtitleText(string(body)); cleaned != "" {
			collected = append(collected, cleaned)
		}
	}

	if len(collected) == 0 {
		return nil
	}
	logger.WithField("segments", len(collected)).Debug("Fetched playlist subtitle segments")
	return &Transcript{
		Text:   strings.Join(collected, " "),
		Source: SourceSubtitlePlaylist,
	}
}
