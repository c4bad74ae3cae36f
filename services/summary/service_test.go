package summary

import (
	"context"
	"errors"
	"strings"
	"testing"
)

type fakeGenerator struct {
	responses []string
	err       error
	prompts   []string
	tokens    []int
}

func (f *fakeGenerator) Generate(ctx context.Context, prompt string, maxTokens int) (string, error) {
	f.prompts = append(f.prompts, prompt)
	f.tokens = append(f.tokens, maxTokens)
	if f.err != nil {
		return "", f.err
	}
	if len(f.responses) == 0 {
		return "", nil
	}
	resp := f.responses[0]
	f.responses = f.responses[1:]
	return resp, nil
}

func (f *fakeGenerator) Close() error { return nil }

func newFakeService(gen *fakeGenerator, cfg Config) Service {
	return NewService(gen, cfg, nil)
}

func TestSummarizeEmptyText(t *testing.T) {
	svc := newFakeService(&fakeGenerator{}, Config{})

	got, err := svc.Summarize(context.Background(), "   ", Options{Type: "short"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != noTextMessage {
		t.Errorf("got %q, want the no-text message", got)
	}
}

func TestSummarizeWithoutGenerator(t *testing.T) {
	svc := NewService(nil, Config{}, nil)

	long := strings.Repeat("a", 900)
	got, err := svc.Summarize(context.Background(), long, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != long[:800]+"..." {
		t.Errorf("expected truncated text with ellipsis, got %d chars", len(got))
	}
	if svc.Configured() {
		t.Error("service without generator must report unconfigured")
	}
}

func TestSummarizeSingleChunk(t *testing.T) {
	gen := &fakeGenerator{responses: []string{"A fine summary."}}
	svc := newFakeService(gen, Config{ChunkSize: 1000, ChunkOverlap: 10, MaxChunks: 2})

	got, err := svc.Summarize(context.Background(), "some source text", Options{Type: "short"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "<p>A fine summary.</p>" {
		t.Errorf("got %q", got)
	}
	if len(gen.prompts) != 1 {
		t.Fatalf("got %d generator calls, want 1 (no merge for single chunk)", len(gen.prompts))
	}
	if gen.tokens[0] != 1200 {
		t.Errorf("short mode got token ceiling %d, want 1200", gen.tokens[0])
	}
}

func TestSummarizeChunkingAndMerge(t *testing.T) {
	cfg := Config{ChunkSize: 100, ChunkOverlap: 10, MaxChunks: 2}
	gen := &fakeGenerator{responses: []string{"part one", "part two", "merged summary"}}
	svc := newFakeService(gen, cfg)

	// 2.2x the chunk size still yields exactly two chunks.
	text := strings.Repeat("x", 220)
	got, err := svc.Summarize(context.Background(), text, Options{Type: "short"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "<p>merged summary</p>" {
		t.Errorf("got %q", got)
	}
	if len(gen.prompts) != 3 {
		t.Fatalf("got %d generator calls, want 2 chunks + 1 merge", len(gen.prompts))
	}
	if gen.tokens[2] != mergeMaxTokens {
		t.Errorf("merge got token ceiling %d, want %d", gen.tokens[2], mergeMaxTokens)
	}
}

func TestSplitTextOverlap(t *testing.T) {
	svc := NewService(&fakeGenerator{}, Config{ChunkSize: 100, ChunkOverlap: 10, MaxChunks: 5}, nil).(*service)

	text := strings.Repeat("x", 250)
	chunks := svc.splitText(text)

	// Steps of chunk-minus-overlap: offsets 0, 90, 180.
	if len(chunks) != 3 {
		t.Fatalf("got %d chunks, want 3", len(chunks))
	}
	if len(chunks[0]) != 100 || len(chunks[1]) != 100 {
		t.Errorf("full chunks must be chunk-size long, got %d and %d", len(chunks[0]), len(chunks[1]))
	}
	if len(chunks[2]) != 70 {
		t.Errorf("tail chunk length = %d, want 70", len(chunks[2]))
	}
}

func TestSummarizeMergeFailureFallsBack(t *testing.T) {
	cfg := Config{ChunkSize: 100, ChunkOverlap: 10, MaxChunks: 2}
	gen := &fakeGenerator{responses: []string{"part one", "part two", ""}}
	svc := newFakeService(gen, cfg)

	got, err := svc.Summarize(context.Background(), strings.Repeat("x", 220), Options{Type: "short"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(got, "part one") || !strings.Contains(got, "part two") {
		t.Errorf("expected joined partials in %q", got)
	}
}

func TestSummarizeAllChunksFail(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("model down")}
	svc := newFakeService(gen, Config{ChunkSize: 1000})

	got, err := svc.Summarize(context.Background(), "original content here", Options{Type: "detailed"})
	if err != nil {
		t.Fatalf("model failure must degrade, not error: %v", err)
	}
	if !strings.Contains(got, "original content here") {
		t.Errorf("expected formatted source text, got %q", got)
	}
}

func TestSummarizeCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	svc := newFakeService(&fakeGenerator{}, Config{ChunkSize: 1000})
	if _, err := svc.Summarize(ctx, "text", Options{}); err == nil {
		t.Error("expected error for cancelled context")
	}
}

func TestNormalizeSummaryType(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"short", "short"},
		{"bullet", "bullet"},
		{"detailed", "detailed"},
		{"comprehensive", "comprehensive"},
		{"BULLET", "bullet"},
		{"", "short"},
		{"nonsense", "short"},
	}
	for _, tt := range tests {
		if got := normalizeSummaryType(tt.in); got != tt.want {
			t.Errorf("normalizeSummaryType(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestChunkPromptTokenCeilings(t *testing.T) {
	tests := []struct {
		summaryType string
		want        int
	}{
		{"short", 1200},
		{"bullet", 2500},
		{"detailed", 3000},
		{"comprehensive", 3000},
	}
	for _, tt := range tests {
		prompt, tokens := chunkPrompt(tt.summaryType, 0, "body")
		if tokens != tt.want {
			t.Errorf("%s mode got token ceiling %d, want %d", tt.summaryType, tokens, tt.want)
		}
		if !strings.Contains(prompt, "body") {
			t.Errorf("%s prompt missing content", tt.summaryType)
		}
	}
}

func TestBulletPromptDefaultsCount(t *testing.T) {
	prompt, _ := chunkPrompt("bullet", 0, "body")
	if !strings.Contains(prompt, "approximately 10 total") {
		t.Error("expected default bullet count of 10 in prompt")
	}

	prompt, _ = chunkPrompt("bullet", 7, "body")
	if !strings.Contains(prompt, "approximately 7 total") {
		t.Error("expected requested bullet count in prompt")
	}
}
