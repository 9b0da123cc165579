// Package view renders backend data for display. Render functions are pure:
// given a writer and data they produce output and nothing else, with defined
// empty-state messages. User-supplied text (titles, artists, lyrics) passes
// the sanitization boundary before interpolation.
package view

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/maqamstudio/maqamctl/internal/models"
	"github.com/maqamstudio/maqamctl/internal/util/sanitize"
)

// Empty-state messages
const (
	EmptySongs     = "No songs uploaded yet."
	EmptyGenerated = "No songs generated yet."
	EmptyHistory   = "No training sessions yet."
)

// RenderDashboard writes the aggregate stats.
func RenderDashboard(w io.Writer, stats *models.DashboardStats) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "Songs uploaded:\t%d\n", stats.SongsCount)
	fmt.Fprintf(tw, "Songs generated:\t%d\n", stats.GeneratedCount)
	fmt.Fprintf(tw, "Model accuracy:\t%.1f%%\n", stats.ModelAccuracy)
	if stats.IsTraining {
		fmt.Fprintf(tw, "Training:\tin progress\n")
	} else {
		fmt.Fprintf(tw, "Training:\tnot running\n")
	}
	if stats.TotalSizeMB > 0 {
		fmt.Fprintf(tw, "Library size:\t%.1f MB\n", stats.TotalSizeMB)
	}
	if stats.TrainingSessions > 0 {
		fmt.Fprintf(tw, "Training sessions:\t%d\n", stats.TrainingSessions)
	}
	tw.Flush()
}

// RenderSongs writes the uploaded-song library as a table.
func RenderSongs(w io.Writer, songs []models.SongSummary) {
	if len(songs) == 0 {
		fmt.Fprintln(w, EmptySongs)
		return
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tARTIST\tMAQAM\tSTYLE\tTEMPO\tLYRICS")
	for _, s := range songs {
		lyrics := "-"
		if s.HasLyrics {
			lyrics = "yes"
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%d\t%s\n",
			s.ID,
			sanitize.Field(s.Title),
			sanitize.Field(s.Artist),
			sanitize.Field(s.Maqam),
			sanitize.Field(s.Style),
			s.TempoBPM,
			lyrics,
		)
	}
	tw.Flush()
}

// RenderGenerated writes the generated-music list as a table.
func RenderGenerated(w io.Writer, songs []models.GeneratedSongSummary) {
	if len(songs) == 0 {
		fmt.Fprintln(w, EmptyGenerated)
		return
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tMAQAM\tSTYLE\tTEMPO\tTOOK\tCREATED")
	for _, s := range songs {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%d\t%.1fs\t%s\n",
			s.ID,
			sanitize.Field(s.Title),
			sanitize.Field(s.Maqam),
			sanitize.Field(s.Style),
			s.TempoBPM,
			s.GenerationTime,
			sanitize.Field(s.CreatedAt),
		)
	}
	tw.Flush()
}

// RenderGeneratedDetail writes one generated song with its input lyrics.
func RenderGeneratedDetail(w io.Writer, song *models.GeneratedSongDetail) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "ID:\t%d\n", song.ID)
	fmt.Fprintf(tw, "Title:\t%s\n", sanitize.Field(song.Title))
	fmt.Fprintf(tw, "File:\t%s\n", sanitize.Field(song.Filename))
	fmt.Fprintf(tw, "Maqam:\t%s\n", sanitize.Field(song.Maqam))
	fmt.Fprintf(tw, "Style:\t%s\n", sanitize.Field(song.Style))
	fmt.Fprintf(tw, "Tempo:\t%d BPM\n", song.TempoBPM)
	fmt.Fprintf(tw, "Emotion:\t%s\n", sanitize.Field(song.Emotion))
	tw.Flush()

	if song.Lyrics != "" {
		fmt.Fprintf(w, "\nLyrics:\n%s\n", sanitize.Block(song.Lyrics))
	}
}

// RenderTrainingStatus writes one status snapshot.
func RenderTrainingStatus(w io.Writer, status *models.TrainingStatus) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "State:\t%s\n", status.State)
	fmt.Fprintf(tw, "Progress:\t%.0f%%\n", status.ProgressPercent)
	if status.TotalEpochs > 0 {
		fmt.Fprintf(tw, "Epoch:\t%d/%d\n", status.CurrentEpoch, status.TotalEpochs)
	}
	if status.Loss > 0 {
		fmt.Fprintf(tw, "Loss:\t%.4f\n", status.Loss)
	}
	if status.Accuracy > 0 {
		fmt.Fprintf(tw, "Accuracy:\t%.1f%%\n", status.Accuracy)
	}
	if status.ETA != "" {
		fmt.Fprintf(tw, "ETA:\t%s\n", sanitize.Field(status.ETA))
	}
	tw.Flush()
}

// RenderTrainingHistory writes the finished-session history as a table.
func RenderTrainingHistory(w io.Writer, history []models.TrainingHistoryEntry) {
	if len(history) == 0 {
		fmt.Fprintln(w, EmptyHistory)
		return
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "SESSION\tSTATUS\tPROGRESS\tEPOCHS\tSONGS\tACCURACY\tCREATED")
	for _, h := range history {
		accuracy := "-"
		if h.FinalAccuracy > 0 {
			accuracy = fmt.Sprintf("%.1f%%", h.FinalAccuracy)
		}
		fmt.Fprintf(tw, "%s\t%s\t%.0f%%\t%d\t%d\t%s\t%s\n",
			sanitize.Field(h.SessionID),
			sanitize.Field(h.Status),
			h.Progress,
			h.Epochs,
			h.SongsUsed,
			accuracy,
			sanitize.Field(h.CreatedAt),
		)
	}
	tw.Flush()
}

// RenderPrerequisites writes the training readiness report.
func RenderPrerequisites(w io.Writer, p *models.TrainingPrerequisites) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "Songs uploaded:\t%d (%s)\n", p.SongsCount, readiness(p.SongsReady))
	fmt.Fprintf(tw, "Songs with lyrics:\t%d (%s)\n", p.SongsWithLyrics, readiness(p.LyricsReady))
	tw.Flush()
}

func readiness(ok bool) string {
	if ok {
		return "ready"
	}
	return "not enough"
}

// RenderJSON writes v as indented JSON, for the json output format.
func RenderJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
