package youtube

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
)

const (
	maxPreferredCaptionAttempts = 3
	maxOtherCaptionAttempts     = 1
)

// CaptionTrack describes one entry in the structured caption listing.
type CaptionTrack struct {
	Language     string
	LanguageCode string
	AutoGen      bool
	FetchURL     string
}

// FetchCaptionTranscript lists the video's caption tracks and fetches the
// first one that yields non-empty text, preferring configured languages.
// Any failure of the listing call means "no result", never a fatal error:
// the pipeline has weaker sources left to try. An empty or malformed caption
// payload, however, aborts remaining candidates: it signals that real
// captions do not exist and further attempts would burn the time budget.
func (c *Client) FetchCaptionTranscript(ctx context.Context, id VideoID) (*Transcript, error) {
	logger := c.logger.WithField("video_id", id)
	logger.Debug("Attempting caption API")

	tracks, err := c.listCaptionTracks(ctx, id)
	if err != nil {
		logger.WithError(err).Warn("Caption listing failed")
		return nil, nil
	}
	if len(tracks) == 0 {
		logger.Debug("No caption tracks listed")
		return nil, nil
	}

	var preferred, others []CaptionTrack
	for _, t := range tracks {
		if c.isPreferredLanguage(t.Language, t.LanguageCode) {
			preferred = append(preferred, t)
		} else {
			others = append(others, t)
		}
	}

	// Bounded attempt list: a few preferred-language tracks, then one track
	// in whatever language is left so something is always attempted.
	attempts := capTracks(preferred, maxPreferredCaptionAttempts)
	attempts = append(attempts, capTracks(others, maxOtherCaptionAttempts)...)

	for i, track := range attempts {
		logger.WithFields(map[string]interface{}{
			"candidate": i + 1,
			"total":     len(attempts),
			"language":  track.Language,
			"code":      track.LanguageCode,
		}).Debug("Fetching caption track")

		text, err := c.fetchCaptionTrack(ctx, track)
		if err != nil {
			if errors.Is(err, ErrEmptyPayload) {
				logger.Debug("Caption payload empty, captions structurally absent")
				return nil, nil
			}
			logger.WithError(err).WithField("candidate", i+1).
				Warn("Caption track fetch failed")
			continue
		}
		if text != "" {
			logger.WithField("language", track.Language).Info("Caption transcript fetched")
			return &Transcript{Text: text, Source: SourceCaptionAPI}, nil
		}
	}

	return nil, nil
}

// listCaptionTracks queries the structured caption listing via the web
// client identity.
func (c *Client) listCaptionTracks(ctx context.Context, id VideoID) ([]CaptionTrack, error) {
	resp, err := c.callPlayer(ctx, id, webProfile)
	if err != nil {
		return nil, err
	}
	if err := checkPlayability(resp); err != nil {
		return nil, err
	}

	var tracks []CaptionTrack
	for _, t := range resp.Captions.PlayerCaptionsTracklistRenderer.CaptionTracks {
		if t.BaseURL == "" {
			continue
		}
		tracks = append(tracks, CaptionTrack{
			Language:     t.Name.SimpleText,
			LanguageCode: t.LanguageCode,
			AutoGen:      t.Kind == "asr",
			FetchURL:     t.BaseURL + "&fmt=json3",
		})
	}
	return tracks, nil
}

// fetchCaptionTrack downloads one track's timed segments and joins their
// text with single spaces, skipping empty segments.
func (c *Client) fetchCaptionTrack(ctx context.Context, track CaptionTrack) (string, error) {
	body, err := c.get(ctx, track.FetchURL)
	if err != nil {
		return "", err
	}

	trimmed := strings.TrimSpace(string(body))
	if trimmed == "" {
		return "", ErrEmptyPayload
	}

	var doc timedTextDocument
	if err := json.Unmarshal([]byte(trimmed), &doc); err != nil {
		return "", ErrEmptyPayload
	}

	var parts []string
	for _, event := range doc.Events {
		for _, seg := range event.Segs {
			if t := strings.TrimSpace(seg.UTF8); t != "" {
				parts = append(parts, t)
			}
		}
	}
	return strings.Join(parts, " "), nil
}

func (c *Client) isPreferredLanguage(name, code string) bool {
	ln := strings.ToLower(name)
	lc := strings.ToLower(code)
	for _, v := range c.config.PreferredLanguages {
		if strings.Contains(ln, v) || v == lc {
			return true
		}
	}
	return false
}

func capTracks(tracks []CaptionTrack, n int) []CaptionTrack {
	if len(tracks) > n {
		return tracks[:n]
	}
	return tracks
}
