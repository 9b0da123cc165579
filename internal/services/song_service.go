package services

import (
	"context"
	"fmt"
	"os"

	"github.com/maqamstudio/maqamctl/internal/logging"
	"github.com/maqamstudio/maqamctl/internal/models"
	"github.com/maqamstudio/maqamctl/internal/workflow"
)

// SongService handles the uploaded-song library: staging files, validating
// and submitting uploads, and list/update/delete operations.
type SongService struct {
	backend    Backend
	builder    *workflow.Builder
	submitter  *workflow.Submitter
	audioSlot  *workflow.Slot
	lyricsSlot *workflow.Slot
	log        *logging.Logger
}

// NewSongService creates a SongService. control may be nil.
func NewSongService(backend Backend, control workflow.Control, log *logging.Logger) *SongService {
	return &SongService{
		backend:    backend,
		builder:    workflow.NewBuilder(),
		submitter:  workflow.NewSubmitter(control, "Uploading..."),
		audioSlot:  workflow.NewSlot(workflow.KindAudio),
		lyricsSlot: workflow.NewSlot(workflow.KindLyrics),
		log:        log,
	}
}

// SelectAudio stages a local audio file for the next upload.
func (s *SongService) SelectAudio(path string) error {
	return selectPath(s.audioSlot, path)
}

// SelectLyrics stages a local lyrics file for the next upload.
func (s *SongService) SelectLyrics(path string) error {
	return selectPath(s.lyricsSlot, path)
}

// ClearSelection empties both file slots. Safe to call repeatedly.
func (s *SongService) ClearSelection() {
	s.audioSlot.Clear()
	s.lyricsSlot.Clear()
}

// Upload validates the request plus the staged audio file, submits the
// multipart upload under the single-flight guard, and on success refreshes
// the dashboard stats and the song list exactly once each.
//
// Validation failures report every missing field at once and never reach
// the network.
func (s *SongService) Upload(ctx context.Context, req models.UploadRequest) (*UploadOutcome, error) {
	var missing []string
	if err := s.builder.Validate(req); err != nil {
		vErr, ok := err.(*workflow.ValidationError)
		if !ok {
			return nil, err
		}
		missing = vErr.MissingFields
	}
	if s.audioSlot.Selected() == nil {
		missing = append(missing, "audio_file")
	}
	if len(missing) > 0 {
		return nil, &workflow.ValidationError{MissingFields: missing}
	}

	var outcome *UploadOutcome
	err := s.submitter.Submit(ctx, func(ctx context.Context) error {
		files, closeFiles, err := s.openSelections()
		if err != nil {
			return err
		}
		defer closeFiles()

		contentType, body, err := s.builder.EncodeMultipart(req.FormFields(), files...)
		if err != nil {
			return err
		}

		if err := s.backend.UploadSong(ctx, contentType, body); err != nil {
			return err
		}

		s.log.Info().Str("title", req.Title).Msg("song uploaded")
		s.ClearSelection()

		stats, err := s.backend.DashboardStats(ctx)
		if err != nil {
			return err
		}
		songs, err := s.backend.ListSongs(ctx)
		if err != nil {
			return err
		}
		outcome = &UploadOutcome{Stats: stats, Songs: songs}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return outcome, nil
}

// openSelections opens the staged files and builds the multipart parts.
func (s *SongService) openSelections() ([]workflow.FilePart, func(), error) {
	var opened []*os.File
	closeAll := func() {
		for _, f := range opened {
			f.Close()
		}
	}

	var parts []workflow.FilePart

	audio := s.audioSlot.Selected()
	f, err := os.Open(audio.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open audio file: %w", err)
	}
	opened = append(opened, f)
	parts = append(parts, workflow.FilePart{Field: "audio_file", Filename: audio.Name, Content: f})

	if lyrics := s.lyricsSlot.Selected(); lyrics != nil {
		f, err := os.Open(lyrics.Path)
		if err != nil {
			closeAll()
			return nil, nil, fmt.Errorf("failed to open lyrics file: %w", err)
		}
		opened = append(opened, f)
		parts = append(parts, workflow.FilePart{Field: "lyrics_file", Filename: lyrics.Name, Content: f})
	}

	return parts, closeAll, nil
}

// List fetches the uploaded-song library.
func (s *SongService) List(ctx context.Context) ([]models.SongSummary, error) {
	return s.backend.ListSongs(ctx)
}

// Update applies a partial metadata update to a song.
func (s *SongService) Update(ctx context.Context, id int, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return &workflow.ValidationError{MissingFields: []string{"fields"}}
	}
	return s.backend.UpdateSong(ctx, id, fields)
}

// Delete removes a song from the library.
func (s *SongService) Delete(ctx context.Context, id int) error {
	if err := s.backend.DeleteSong(ctx, id); err != nil {
		return err
	}
	s.log.Info().Int("id", id).Msg("song deleted")
	return nil
}

// selectPath stats a local file and offers it to the slot.
func selectPath(slot *workflow.Slot, path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("cannot read %s: %w", path, err)
	}
	_, err = slot.Select(workflow.CandidateFromPath(path, info.Size()))
	return err
}
