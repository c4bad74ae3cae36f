package youtube

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	apperrors "github.com/aditya-niranjan/smart-summarizer/errors"
)

// DisclaimerMetadataOnly marks transcripts synthesized from metadata alone.
// Callers detect it by substring to flag the response as metadata-only.
const DisclaimerMetadataOnly = "Note: Transcript/subtitles were not available for this video. This summary is based on the video metadata only."

const totalExhaustionMessage = "Unable to extract transcript or metadata from this video. This may be because: 1) The video has no subtitles/captions, 2) The video is private or age-restricted, 3) YouTube is blocking automated access. Please try a different video."

const (
	maxPreferredSubtitleAttempts = 3
	maxOtherSubtitleAttempts     = 2
	maxAnyLanguageAttempts       = 2
)

type CaptionFetcher interface {
	FetchCaptionTranscript(ctx context.Context, id VideoID) (*Transcript, error)
}

type MediaExtractor interface {
	ExtractMediaInfo(ctx context.Context, id VideoID) (*MediaInfo, error)
}

type TrackResolver interface {
	ResolveSubtitleTrack(ctx context.Context, trackURL string) (*Transcript, error)
}

type PipelineConfig struct {
	// RequestTimeout is the per-request acquisition budget.
	RequestTimeout time.Duration
}

// Pipeline sequences the acquisition strategies from strongest to weakest
// source of truth and stops at the first stage yielding non-empty text.
// Stages run strictly in order: each is a fallback for the previous, and
// running them concurrently would waste upstream quota.
type Pipeline struct {
	captions CaptionFetcher
	media    MediaExtractor
	tracks   TrackResolver
	config   PipelineConfig
	logger   *logrus.Logger
}

func NewPipeline(
	captions CaptionFetcher,
	media MediaExtractor,
	tracks TrackResolver,
	cfg PipelineConfig,
	logger *logrus.Logger,
) *Pipeline {
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 20 * time.Second
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Pipeline{
		captions: captions,
		media:    media,
		tracks:   tracks,
		config:   cfg,
		logger:   logger,
	}
}

// Run acquires the best available transcript for the given video URL.
// Internal stage failures are logged and absorbed; only a permanent
// upstream condition or the exhaustion of every stage is fatal.
func (p *Pipeline) Run(ctx context.Context, rawURL string) (*Transcript, error) {
	const op = "youtube.Pipeline.Run"

	id, err := ResolveVideoID(rawURL)
	if err != nil {
		return nil, err
	}

	logger := p.logger.WithField("video_id", id)
	budget := NewBudget(p.config.RequestTimeout)

	// Stage 1: structured caption API.
	transcript, err := p.captions.FetchCaptionTranscript(ctx, id)
	if err != nil {
		if IsPermanent(err) {
			return nil, err
		}
		logger.WithError(err).Warn("Caption API stage failed")
	}
	if transcript != nil && transcript.Text != "" {
		return transcript, nil
	}

	// Stage 2: subtitle tracks from media info.
	transcript, err = p.tryDirectSubtitles(ctx, id, budget)
	if err != nil {
		if IsPermanent(err) {
			return nil, err
		}
		logger.WithError(err).Warn("Subtitle track stage failed")
	}
	if transcript != nil && transcript.Text != "" {
		return transcript, nil
	}

	// Stage 3: title and description alone.
	logger.Info("No subtitles available, falling back to metadata")
	transcript, err = p.tryMetadataFallback(ctx, id)
	if err != nil {
		if IsPermanent(err) {
			return nil, err
		}
		logger.WithError(err).Warn("Metadata fallback failed")
	}
	if transcript != nil && transcript.Text != "" {
		return transcript, nil
	}

	// Stage 4: fully labeled metadata block with a metadata-only disclaimer.
	transcript, err = p.tryFinalMetadata(ctx, id)
	if err != nil {
		if IsPermanent(err) {
			return nil, err
		}
		logger.WithError(err).Warn("Final metadata fetch failed")
	}
	if transcript != nil && transcript.Text != "" {
		return transcript, nil
	}

	return nil, apperrors.InvalidInput(op, nil, totalExhaustionMessage)
}

func (p *Pipeline) tryDirectSubtitles(ctx context.Context, id VideoID, budget *Budget) (*Transcript, error) {
	logger := p.logger.WithField("video_id", id)
	logger.Debug("Attempting subtitle track extraction")

	info, err := p.media.ExtractMediaInfo(ctx, id)
	if err != nil {
		return nil, err
	}

	candidates := selectSubtitleCandidates(info)
	for i, candidate := range candidates {
		if budget.NearlyExhausted() {
			logger.Warn("Acquisition budget nearly exhausted, stopping subtitle attempts")
			break
		}

		transcript, err := p.tracks.ResolveSubtitleTrack(ctx, candidate.URL)
		if err != nil {
			logger.WithError(err).WithField("candidate", i+1).
				Warn("Subtitle track fetch failed")
			continue
		}
		if transcript != nil && transcript.Text != "" {
			logger.WithFields(map[string]interface{}{
				"candidate": i + 1,
				"source":    transcript.Source,
			}).Info("Subtitle track fetch succeeded")
			return transcript, nil
		}
	}
	return nil, nil
}

// selectSubtitleCandidates merges the manual and auto-generated track maps
// into one pool (both are trusted equally) and orders a bounded candidate
// list: preferred-language tracks first, then other languages, or a couple
// of tracks from whatever is available when no group matched.
func selectSubtitleCandidates(info *MediaInfo) []SubtitleTrack {
	pool := map[string][]SubtitleTrack{}
	for lang, tracks := range info.Subtitles {
		pool[lang] = append(pool[lang], tracks...)
	}
	for lang, tracks := range info.AutoCaptions {
		pool[lang] = append(pool[lang], tracks...)
	}

	langs := make([]string, 0, len(pool))
	for lang := range pool {
		langs = append(langs, lang)
	}
	sort.Strings(langs)

	var preferred, others []SubtitleTrack
	for _, lang := range langs {
		if isPreferredLabel(lang) {
			preferred = append(preferred, pool[lang]...)
		} else {
			others = append(others, pool[lang]...)
		}
	}

	if len(preferred) > maxPreferredSubtitleAttempts {
		preferred = preferred[:maxPreferredSubtitleAttempts]
	}
	if len(others) > maxOtherSubtitleAttempts {
		others = others[:maxOtherSubtitleAttempts]
	}
	candidates := append(preferred, others...)

	if len(candidates) == 0 {
		// Neither group matched; take one track from each of the first
		// couple of languages so something is still attempted.
		for _, lang := range langs[:min(len(langs), maxAnyLanguageAttempts)] {
			if tracks := pool[lang]; len(tracks) > 0 {
				candidates = append(candidates, tracks[0])
			}
		}
	}
	return candidates
}

var preferredLabelPattern = regexp.MustCompile(`^en([-_][a-z]+)?$`)

// isPreferredLabel matches subtitle language labels against the preferred
// (English) namespace: the language name, bare and regioned codes, and the
// three-letter form.
func isPreferredLabel(label string) bool {
	if label == "" {
		return false
	}
	l := strings.ToLower(label)
	return strings.Contains(l, "english") ||
		preferredLabelPattern.MatchString(l) ||
		strings.HasPrefix(l, "en") ||
		l == "eng"
}

func (p *Pipeline) tryMetadataFallback(ctx context.Context, id VideoID) (*Transcript, error) {
	info, err := p.media.ExtractMediaInfo(ctx, id)
	if err != nil {
		return nil, err
	}
	if info.Title == "" && info.Description == "" {
		return nil, nil
	}

	text := fmt.Sprintf("Title: %s\n\nDescription:\n%s", info.Title, info.Description)
	p.logger.WithFields(map[string]interface{}{
		"video_id":    id,
		"title":       info.Title,
		"desc_length": len(info.Description),
	}).Info("Using metadata fallback")

	return &Transcript{Text: text, Source: SourceMetadata}, nil
}

func (p *Pipeline) tryFinalMetadata(ctx context.Context, id VideoID) (*Transcript, error) {
	p.logger.WithField("video_id", id).Info("Final attempt: fetching full video metadata")

	info, err := p.media.ExtractMediaInfo(ctx, id)
	if err != nil {
		return nil, err
	}

	title := info.Title
	if title == "" {
		title = "No title available"
	}
	description := info.Description
	if description == "" {
		description = "No description available"
	}
	uploader := info.Uploader
	if uploader == "" {
		uploader = "Unknown"
	}

	text := fmt.Sprintf(`Video Title: %s

Uploader: %s
Duration: %s
Views: %s
Upload Date: %s

Description:
%s

%s`,
		title,
		uploader,
		FormatDuration(info.Duration),
		FormatViewCount(info.ViewCount),
		FormatUploadDate(info.UploadDate),
		description,
		DisclaimerMetadataOnly,
	)

	return &Transcript{Text: text, Source: SourceMetadata}, nil
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
