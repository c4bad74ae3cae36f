package summary

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"
)

const noTextMessage = "No text available to summarize."

type service struct {
	generator TextGenerator
	config    Config
	logger    *logrus.Logger
}

// NewService creates a summary service. A nil generator puts the service in
// degraded mode: summaries are truncated source text instead of model output.
func NewService(generator TextGenerator, config Config, logger *logrus.Logger) Service {
	if config.ChunkSize <= 0 {
		config.ChunkSize = 80000
	}
	if config.ChunkOverlap < 0 {
		config.ChunkOverlap = 0
	}
	if config.MaxChunks <= 0 {
		config.MaxChunks = 2
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &service{
		generator: generator,
		config:    config,
		logger:    logger,
	}
}

func (s *service) Configured() bool {
	return s.generator != nil
}

func (s *service) Close() error {
	if s.generator == nil {
		return nil
	}
	return s.generator.Close()
}

// Summarize chunks the text, summarizes each chunk, and merges the partial
// results. Model failures degrade the output rather than failing the request;
// only context cancellation is fatal.
func (s *service) Summarize(ctx context.Context, text string, opts Options) (string, error) {
	const op = "SummaryService.Summarize"
	logger := s.logger.WithField("summary_type", opts.Type)

	text = strings.TrimSpace(text)
	if text == "" {
		return noTextMessage, nil
	}
	if s.generator == nil {
		logger.Warn("No generator configured, returning truncated text")
		return truncateWithEllipsis(text, 800), nil
	}

	summaryType := normalizeSummaryType(opts.Type)
	chunks := s.splitText(text)
	logger.WithFields(logrus.Fields{
		"chunks":     len(chunks),
		"total_size": len(text),
	}).Info("Processing summary")

	partials := make([]string, 0, len(chunks))
	for i, chunk := range chunks {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		default:
		}

		prompt, maxTokens := chunkPrompt(summaryType, opts.BulletCount, chunk)
		result, err := s.generator.Generate(ctx, prompt, maxTokens)
		if err != nil {
			logger.WithError(err).WithField("chunk", i+1).Warn("Chunk summarization failed")
			continue
		}
		if strings.TrimSpace(result) == "" {
			logger.WithField("chunk", i+1).Warn("Empty model response for chunk")
			continue
		}

		partials = append(partials, result)
		logger.WithFields(logrus.Fields{
			"chunk": i + 1,
			"total": len(chunks),
			"size":  len(chunk),
		}).Debug("Chunk completed")
	}

	if len(partials) == 0 {
		logger.Warn("No model output produced, returning formatted source text")
		return FormatSummaryOutput(truncateWithEllipsis(text, 1500), "short"), nil
	}
	if len(partials) == 1 {
		return FormatSummaryOutput(partials[0], summaryType), nil
	}

	return s.mergePartials(ctx, summaryType, opts.BulletCount, partials), nil
}

func (s *service) mergePartials(ctx context.Context, summaryType string, bulletCount int, partials []string) string {
	combined := strings.Join(partials, "\n\n")

	merged, err := s.generator.Generate(ctx, mergePrompt(summaryType, bulletCount, combined), mergeMaxTokens)
	if err != nil {
		s.logger.WithError(err).Warn("Merge failed, joining partial summaries")
		return FormatSummaryOutput(combined, summaryType)
	}

	merged = strings.TrimSpace(merged)
	if merged == "" {
		if len(partials) > 3 {
			partials = partials[:3]
		}
		return FormatSummaryOutput(strings.Join(partials, "\n\n"), summaryType)
	}
	return FormatSummaryOutput(merged, summaryType)
}

// splitText cuts the text into overlapping chunks. Chunks past the configured
// maximum are dropped; the merge step cannot afford unbounded model calls.
func (s *service) splitText(text string) []string {
	if len(text) <= s.config.ChunkSize {
		return []string{text}
	}

	var chunks []string
	step := s.config.ChunkSize - s.config.ChunkOverlap
	for i := 0; i < len(text); i += step {
		end := i + s.config.ChunkSize
		if end > len(text) {
			end = len(text)
		}
		chunks = append(chunks, text[i:end])
		if len(chunks) >= s.config.MaxChunks {
			break
		}
	}
	return chunks
}

func normalizeSummaryType(summaryType string) string {
	switch strings.ToLower(strings.TrimSpace(summaryType)) {
	case "bullet":
		return "bullet"
	case "detailed":
		return "detailed"
	case "comprehensive":
		return "comprehensive"
	default:
		return "short"
	}
}

func truncateWithEllipsis(text string, limit int) string {
	if len(text) <= limit {
		return text
	}
	return text[:limit] + "..."
}
