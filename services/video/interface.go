package video

import (
	"context"
	"time"

	"github.com/aditya-niranjan/smart-summarizer/youtube"
)

// Service acquires transcripts for video URLs, reusing cached results.
type Service interface {
	GetTranscript(ctx context.Context, url string) (*Result, error)
}

// Result is an acquired transcript plus its provenance.
type Result struct {
	VideoID string
	Text    string
	Source  youtube.TranscriptSource
	// MetadataOnly is set when the text was synthesized from video metadata
	// rather than actual captions.
	MetadataOnly bool
}

// Pipeline runs the acquisition fallback chain.
type Pipeline interface {
	Run(ctx context.Context, rawURL string) (*youtube.Transcript, error)
}

// Archiver persists transcripts to long-term storage. Optional.
type Archiver interface {
	SaveTranscript(ctx context.Context, videoID, text, source string) error
}

type Config struct {
	// CacheTTL bounds reuse of cached transcripts. Zero disables expiry.
	CacheTTL time.Duration
}
