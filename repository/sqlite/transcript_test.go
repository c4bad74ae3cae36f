package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/aditya-niranjan/smart-summarizer/errors"
	"github.com/aditya-niranjan/smart-summarizer/models"
)

func newTestRepository(t *testing.T) *Repository {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := InitDB(dbPath, DefaultDBConfig())
	if err != nil {
		t.Fatalf("failed to init database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	repo, err := NewRepository(db, DefaultDBConfig())
	if err != nil {
		t.Fatalf("failed to create repository: %v", err)
	}
	return repo
}

func TestSaveAndFind(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	transcript := &models.Transcript{
		VideoID: "dQw4w9WgXcQ",
		URL:     "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
		Title:   "Test Video",
		Source:  "caption-api",
		Text:    "hello world",
	}

	if err := repo.Save(ctx, transcript); err != nil {
		t.Fatalf("failed to save: %v", err)
	}
	if transcript.CreatedAt.IsZero() || transcript.UpdatedAt.IsZero() {
		t.Error("expected timestamps to be set on save")
	}

	found, err := repo.Find(ctx, "dQw4w9WgXcQ")
	if err != nil {
		t.Fatalf("failed to find: %v", err)
	}
	if found.Text != "hello world" {
		t.Errorf("got text %q, want %q", found.Text, "hello world")
	}
	if found.Source != "caption-api" {
		t.Errorf("got source %q, want caption-api", found.Source)
	}
}

func TestSaveUpserts(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	first := &models.Transcript{
		VideoID: "dQw4w9WgXcQ",
		URL:     "https://youtu.be/dQw4w9WgXcQ",
		Source:  "metadata-fallback",
		Text:    "old text",
	}
	if err := repo.Save(ctx, first); err != nil {
		t.Fatalf("failed to save: %v", err)
	}

	second := &models.Transcript{
		VideoID: "dQw4w9WgXcQ",
		URL:     "https://youtu.be/dQw4w9WgXcQ",
		Source:  "caption-api",
		Text:    "new text",
	}
	if err := repo.Save(ctx, second); err != nil {
		t.Fatalf("failed to re-save: %v", err)
	}

	found, err := repo.Find(ctx, "dQw4w9WgXcQ")
	if err != nil {
		t.Fatalf("failed to find: %v", err)
	}
	if found.Text != "new text" {
		t.Errorf("got text %q, want the updated text", found.Text)
	}
	if found.Source != "caption-api" {
		t.Errorf("got source %q, want the updated source", found.Source)
	}
}

func TestFindMissing(t *testing.T) {
	repo := newTestRepository(t)

	_, err := repo.Find(context.Background(), "missing00000")
	if err == nil {
		t.Fatal("expected an error for a missing transcript")
	}
	if !errors.IsNotFound(err) {
		t.Errorf("expected not found error, got %v", err)
	}
}

func TestTranscriptFreshness(t *testing.T) {
	fresh := &models.Transcript{UpdatedAt: time.Now()}
	if !fresh.IsFresh(time.Hour) {
		t.Error("recently updated transcript must be fresh")
	}

	stale := &models.Transcript{UpdatedAt: time.Now().Add(-2 * time.Hour)}
	if stale.IsFresh(time.Hour) {
		t.Error("old transcript must not be fresh")
	}
	if !stale.IsFresh(0) {
		t.Error("zero ttl disables expiry")
	}
}
