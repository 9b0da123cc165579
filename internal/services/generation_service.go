package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/maqamstudio/maqamctl/internal/logging"
	"github.com/maqamstudio/maqamctl/internal/models"
	"github.com/maqamstudio/maqamctl/internal/util/sanitize"
	"github.com/maqamstudio/maqamctl/internal/workflow"
)

// GenerationService drives music generation runs and manages the generated
// library.
type GenerationService struct {
	backend    Backend
	builder    *workflow.Builder
	submitter  *workflow.Submitter
	lyricsSlot *workflow.Slot
	log        *logging.Logger
}

// NewGenerationService creates a GenerationService. control may be nil.
func NewGenerationService(backend Backend, control workflow.Control, log *logging.Logger) *GenerationService {
	return &GenerationService{
		backend:    backend,
		builder:    workflow.NewBuilder(),
		submitter:  workflow.NewSubmitter(control, "Generating..."),
		lyricsSlot: workflow.NewSlot(workflow.KindLyrics),
		log:        log,
	}
}

// SelectLyricsFile stages a lyrics file for the next generation run, as an
// alternative to inline lyrics.
func (g *GenerationService) SelectLyricsFile(path string) error {
	return selectPath(g.lyricsSlot, path)
}

// ClearSelection empties the lyrics slot.
func (g *GenerationService) ClearSelection() {
	g.lyricsSlot.Clear()
}

// Generate validates the request, submits it under the single-flight guard,
// and on success refreshes the generated list and the dashboard stats
// exactly once each. Lyrics must arrive inline or as a staged file; the
// body is multipart when a file is attached, JSON otherwise.
func (g *GenerationService) Generate(ctx context.Context, req models.GenerationRequest) (*GenerateOutcome, error) {
	var missing []string
	if err := g.builder.Validate(req); err != nil {
		vErr, ok := err.(*workflow.ValidationError)
		if !ok {
			return nil, err
		}
		missing = vErr.MissingFields
	}
	if strings.TrimSpace(req.Lyrics) == "" && g.lyricsSlot.Selected() == nil {
		missing = append(missing, "lyrics")
	}
	if len(missing) > 0 {
		return nil, &workflow.ValidationError{MissingFields: missing}
	}

	var outcome *GenerateOutcome
	err := g.submitter.Submit(ctx, func(ctx context.Context) error {
		contentType, body, err := g.encodeRequest(req)
		if err != nil {
			return err
		}

		result, err := g.backend.Generate(ctx, contentType, body)
		if err != nil {
			return err
		}

		g.log.Info().Str("filename", result.Filename).Float64("took", result.GenerationTime).Msg("music generated")
		g.ClearSelection()

		stats, err := g.backend.DashboardStats(ctx)
		if err != nil {
			return err
		}
		songs, err := g.backend.ListGenerated(ctx)
		if err != nil {
			return err
		}
		outcome = &GenerateOutcome{Result: result, Stats: stats, Songs: songs}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return outcome, nil
}

// encodeRequest picks the body encoding: multipart when a lyrics file is
// staged, JSON otherwise. The multipart body is fully buffered, so the file
// handle does not outlive this call.
func (g *GenerationService) encodeRequest(req models.GenerationRequest) (string, io.Reader, error) {
	lyrics := g.lyricsSlot.Selected()
	if lyrics == nil {
		return g.builder.EncodeJSON(req)
	}

	f, err := os.Open(lyrics.Path)
	if err != nil {
		return "", nil, fmt.Errorf("failed to open lyrics file: %w", err)
	}
	defer f.Close()

	return g.builder.EncodeMultipart(req.FormFields(),
		workflow.FilePart{Field: "lyrics_file", Filename: lyrics.Name, Content: f})
}

// List fetches the generated-music list.
func (g *GenerationService) List(ctx context.Context) ([]models.GeneratedSongSummary, error) {
	return g.backend.ListGenerated(ctx)
}

// Get fetches one generated song with its input lyrics.
func (g *GenerationService) Get(ctx context.Context, id int) (*models.GeneratedSongDetail, error) {
	return g.backend.GetGenerated(ctx, id)
}

// Delete removes a generated song.
func (g *GenerationService) Delete(ctx context.Context, id int) error {
	return g.backend.DeleteGenerated(ctx, id)
}

// Download streams the generated audio into destPath.
func (g *GenerationService) Download(ctx context.Context, filename, destPath string) (int64, error) {
	f, err := os.Create(destPath)
	if err != nil {
		return 0, fmt.Errorf("failed to create %s: %w", destPath, err)
	}
	defer f.Close()

	n, err := g.backend.DownloadGenerated(ctx, filename, f)
	if err != nil {
		os.Remove(destPath)
		return 0, err
	}
	g.log.Info().Str("filename", filename).Int64("bytes", n).Msg("audio downloaded")
	return n, nil
}

// Export assembles a JSON metadata file and a plaintext lyrics file for one
// generated song in dir. No server round-trip beyond fetching the detail
// record.
func (g *GenerationService) Export(ctx context.Context, id int, dir string) (*ExportResult, error) {
	song, err := g.backend.GetGenerated(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create export directory: %w", err)
	}

	exportID := uuid.NewString()
	base := exportBaseName(song)

	metadata := struct {
		ExportID string                      `json:"export_id"`
		Song     models.GeneratedSongSummary `json:"song"`
		Details  map[string]string           `json:"generation_details,omitempty"`
	}{
		ExportID: exportID,
		Song:     song.GeneratedSongSummary,
		Details:  song.Details,
	}

	metadataPath := filepath.Join(dir, base+"_metadata.json")
	data, err := json.MarshalIndent(metadata, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode metadata: %w", err)
	}
	if err := os.WriteFile(metadataPath, data, 0644); err != nil {
		return nil, fmt.Errorf("failed to write metadata: %w", err)
	}

	result := &ExportResult{ExportID: exportID, MetadataPath: metadataPath}

	if song.Lyrics != "" {
		lyricsPath := filepath.Join(dir, base+"_lyrics.txt")
		if err := os.WriteFile(lyricsPath, []byte(sanitize.Block(song.Lyrics)+"\n"), 0644); err != nil {
			return nil, fmt.Errorf("failed to write lyrics: %w", err)
		}
		result.LyricsPath = lyricsPath
	}

	g.log.Info().Int("id", id).Str("export_id", exportID).Msg("generated song exported")
	return result, nil
}

// exportBaseName derives a filesystem-safe base name for export files.
func exportBaseName(song *models.GeneratedSongDetail) string {
	base := strings.TrimSuffix(song.Filename, filepath.Ext(song.Filename))
	if base == "" {
		base = sanitize.Field(song.Title)
	}
	if base == "" {
		base = fmt.Sprintf("generated_%d", song.ID)
	}
	base = strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|', ' ':
			return '_'
		}
		return r
	}, base)
	return base
}
