// Package services provides frontend-agnostic business logic: it ties the
// workflow coordination (validation, single-flight guards, polling) to the
// backend API and returns refreshed view data, so any frontend can drive it
// without touching either layer directly.
package services

import (
	"context"
	"io"

	"github.com/maqamstudio/maqamctl/internal/models"
)

// Backend is the slice of the API client the services depend on.
type Backend interface {
	DashboardStats(ctx context.Context) (*models.DashboardStats, error)
	ListSongs(ctx context.Context) ([]models.SongSummary, error)
	UploadSong(ctx context.Context, contentType string, body io.Reader) error
	UpdateSong(ctx context.Context, id int, fields map[string]interface{}) error
	DeleteSong(ctx context.Context, id int) error
	ListGenerated(ctx context.Context) ([]models.GeneratedSongSummary, error)
	GetGenerated(ctx context.Context, id int) (*models.GeneratedSongDetail, error)
	Generate(ctx context.Context, contentType string, body io.Reader) (*models.GenerationResult, error)
	DeleteGenerated(ctx context.Context, id int) error
	DownloadGenerated(ctx context.Context, filename string, w io.Writer) (int64, error)
	TrainingPrerequisites(ctx context.Context) (*models.TrainingPrerequisites, error)
	StartTraining(ctx context.Context, cfg models.TrainingConfig) (*models.TrainingStartResult, error)
	StopTraining(ctx context.Context, sessionID string) error
	TrainingStatus(ctx context.Context) (*models.TrainingStatus, error)
	TrainingHistory(ctx context.Context) ([]models.TrainingHistoryEntry, error)
}

// UploadOutcome carries the refreshed views after a successful upload.
// Stats and Songs are each fetched exactly once.
type UploadOutcome struct {
	Stats *models.DashboardStats
	Songs []models.SongSummary
}

// GenerateOutcome carries the generation result plus the refreshed views.
type GenerateOutcome struct {
	Result *models.GenerationResult
	Stats  *models.DashboardStats
	Songs  []models.GeneratedSongSummary
}

// TrainingOutcome carries the settling snapshot plus the refreshed views
// fetched after the session reached a terminal state.
type TrainingOutcome struct {
	Final   *models.TrainingStatus
	Stats   *models.DashboardStats
	History []models.TrainingHistoryEntry
}

// ExportResult names the files written by a local export.
type ExportResult struct {
	ExportID     string
	MetadataPath string
	LyricsPath   string
}
