package youtube

import (
	"context"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// MediaInfo is the metadata and subtitle-track inventory of one video.
type MediaInfo struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Uploader    string `json:"uploader"`
	Duration    int64  `json:"duration"`
	ViewCount   int64  `json:"view_count"`
	// UploadDate is compact YYYYMMDD, or empty when unknown.
	UploadDate string `json:"upload_date"`

	// Subtitles holds manually authored tracks, AutoCaptions the
	// auto-generated ones, both keyed by language code.
	Subtitles    map[string][]SubtitleTrack `json:"subtitles"`
	AutoCaptions map[string][]SubtitleTrack `json:"automatic_captions"`
}

// SubtitleTrack references a subtitle resource by URL. The URL may point at
// a direct subtitle file or a segmented streaming playlist.
type SubtitleTrack struct {
	URL      string `json:"url"`
	Language string `json:"language"`
	Ext      string `json:"ext"`
}

// ExtractMediaInfo queries the upstream for video metadata and subtitle
// tracks. The request is retried under each client identity profile in
// order; a profile's transient failure moves on to the next profile, while
// permanent conditions (private, removed) propagate immediately since no
// identity changes that outcome. If every profile fails transiently, the
// last error propagates.
func (c *Client) ExtractMediaInfo(ctx context.Context, id VideoID) (*MediaInfo, error) {
	const op = "youtube.ExtractMediaInfo"
	logger := c.logger.WithField("video_id", id)

	var lastErr error
	for i, profile := range extractionProfiles {
		logger.WithFields(map[string]interface{}{
			"strategy": profile.name,
			"attempt":  i + 1,
			"total":    len(extractionProfiles),
		}).Debug("Trying extraction strategy")

		resp, err := c.callPlayer(ctx, id, profile)
		if err != nil {
			ue := upstreamError(op, err)
			if ue.Kind == KindPermanent {
				return nil, ue
			}
			logger.WithError(err).WithField("strategy", profile.name).
				Warn("Extraction strategy failed")
			lastErr = ue
			continue
		}

		if err := checkPlayability(resp); err != nil {
			if IsPermanent(err) {
				return nil, err
			}
			logger.WithError(err).WithField("strategy", profile.name).
				Warn("Extraction strategy refused")
			lastErr = err
			continue
		}

		logger.WithField("strategy", profile.name).Debug("Extraction successful")
		return buildMediaInfo(resp), nil
	}

	if lastErr != nil {
		return nil, lastErr
	}
	return nil, &UpstreamError{Op: op, Kind: KindTransient, Err: errors.New("all extraction strategies failed")}
}

func buildMediaInfo(resp *playerResponse) *MediaInfo {
	details := resp.VideoDetails

	info := &MediaInfo{
		Title:        details.Title,
		Description:  details.ShortDescription,
		Uploader:     details.Author,
		Duration:     parseCount(details.LengthSeconds),
		ViewCount:    parseCount(details.ViewCount),
		UploadDate:   compactDate(resp.Microformat.PlayerMicroformatRenderer.UploadDate),
		Subtitles:    map[string][]SubtitleTrack{},
		AutoCaptions: map[string][]SubtitleTrack{},
	}

	for _, track := range resp.Captions.PlayerCaptionsTracklistRenderer.CaptionTracks {
		if track.BaseURL == "" {
			continue
		}
		st := SubtitleTrack{
			URL:      track.BaseURL + "&fmt=json3",
			Language: track.Name.SimpleText,
			Ext:      "json3",
		}
		if track.Kind == "asr" {
			info.AutoCaptions[track.LanguageCode] = append(info.AutoCaptions[track.LanguageCode], st)
		} else {
			info.Subtitles[track.LanguageCode] = append(info.Subtitles[track.LanguageCode], st)
		}
	}

	return info
}

func parseCount(s string) int64 {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0
	}
	return n
}

// compactDate reduces an ISO-ish upstream date ("2023-06-15" or
// "2023-06-15T00:00:00-07:00") to the compact YYYYMMDD form.
func compactDate(s string) string {
	if idx := strings.IndexByte(s, 'T'); idx >= 0 {
		s = s[:idx]
	}
	s = strings.ReplaceAll(s, "-", "")
	if len(s) != 8 {
		return ""
	}
	return s
}
