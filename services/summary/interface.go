package summary

import "context"

// Service produces a rendered summary for arbitrary text.
type Service interface {
	Summarize(ctx context.Context, text string, opts Options) (string, error)
	Configured() bool
	Close() error
}

// TextGenerator abstracts the model call so the chunking and merge logic can
// be tested without a live API.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string, maxTokens int) (string, error)
	Close() error
}

type Config struct {
	ModelName    string
	ChunkSize    int
	ChunkOverlap int
	MaxChunks    int
	Temperature  float32
	TopP         float32
}

// Options control the summary shape requested by the client.
type Options struct {
	// Type is one of short, bullet, detailed, comprehensive.
	Type string
	// BulletCount is the approximate sub-topic bullet total for bullet mode.
	BulletCount int
	// TargetLang is accepted for API compatibility; output follows the
	// source language.
	TargetLang string
}
