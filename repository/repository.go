package repository

import (
	"context"

	"github.com/aditya-niranjan/smart-summarizer/models"
)

type TranscriptRepository interface {
	Save(ctx context.Context, transcript *models.Transcript) error
	Find(ctx context.Context, videoID string) (*models.Transcript, error)
}
