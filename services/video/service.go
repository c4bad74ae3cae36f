package video

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/aditya-niranjan/smart-summarizer/errors"
	"github.com/aditya-niranjan/smart-summarizer/models"
	"github.com/aditya-niranjan/smart-summarizer/repository"
	"github.com/aditya-niranjan/smart-summarizer/youtube"
)

type service struct {
	pipeline Pipeline
	repo     repository.TranscriptRepository
	archiver Archiver
	config   Config
	logger   *logrus.Logger
}

// NewService creates the transcript acquisition service. The archiver may be
// nil; archiving is best-effort either way.
func NewService(
	pipeline Pipeline,
	repo repository.TranscriptRepository,
	archiver Archiver,
	config Config,
	logger *logrus.Logger,
) Service {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &service{
		pipeline: pipeline,
		repo:     repo,
		archiver: archiver,
		config:   config,
		logger:   logger,
	}
}

func (s *service) GetTranscript(ctx context.Context, url string) (*Result, error) {
	const op = "VideoService.GetTranscript"
	logger := s.logger.WithField("url", url)

	id, err := youtube.ResolveVideoID(url)
	if err != nil {
		return nil, err
	}

	if cached := s.lookupCache(ctx, string(id)); cached != nil {
		logger.WithField("video_id", id).Info("Serving cached transcript")
		return cached, nil
	}

	transcript, err := s.pipeline.Run(ctx, url)
	if err != nil {
		return nil, err
	}
	if transcript == nil || transcript.Text == "" {
		return nil, errors.Internal(op, nil, "Acquisition produced no transcript")
	}

	result := &Result{
		VideoID:      string(id),
		Text:         transcript.Text,
		Source:       transcript.Source,
		MetadataOnly: isMetadataOnly(transcript),
	}

	s.storeCache(ctx, url, result)
	s.archive(ctx, result)

	return result, nil
}

func (s *service) lookupCache(ctx context.Context, videoID string) *Result {
	if s.repo == nil {
		return nil
	}

	cached, err := s.repo.Find(ctx, videoID)
	if err != nil {
		if !errors.IsNotFound(err) {
			s.logger.WithError(err).Warn("Cache lookup failed")
		}
		return nil
	}
	if !cached.IsFresh(s.config.CacheTTL) {
		return nil
	}

	transcript := &youtube.Transcript{
		Text:   cached.Text,
		Source: youtube.TranscriptSource(cached.Source),
	}
	return &Result{
		VideoID:      cached.VideoID,
		Text:         cached.Text,
		Source:       transcript.Source,
		MetadataOnly: isMetadataOnly(transcript),
	}
}

func (s *service) storeCache(ctx context.Context, url string, result *Result) {
	if s.repo == nil {
		return
	}
	if result.MetadataOnly {
		// A metadata-only transcript is a degraded snapshot. Caching it
		// would keep serving it even after the upstream stops blocking
		// access to the real captions.
		return
	}

	err := s.repo.Save(ctx, &models.Transcript{
		VideoID: result.VideoID,
		URL:     url,
		Source:  string(result.Source),
		Text:    result.Text,
	})
	if err != nil {
		s.logger.WithError(err).Warn("Failed to cache transcript")
	}
}

func (s *service) archive(ctx context.Context, result *Result) {
	if s.archiver == nil {
		return
	}

	err := s.archiver.SaveTranscript(ctx, result.VideoID, result.Text, string(result.Source))
	if err != nil {
		s.logger.WithError(err).Warn("Failed to archive transcript")
	}
}

func isMetadataOnly(t *youtube.Transcript) bool {
	return t.Source == youtube.SourceMetadata ||
		strings.Contains(t.Text, youtube.DisclaimerMetadataOnly)
}
