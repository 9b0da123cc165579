// Package cli provides song library commands.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/maqamstudio/maqamctl/internal/models"
	"github.com/maqamstudio/maqamctl/internal/view"
	"github.com/maqamstudio/maqamctl/internal/workflow"
)

// newSongsCmd creates the 'songs' command group.
func newSongsCmd() *cobra.Command {
	songsCmd := &cobra.Command{
		Use:   "songs",
		Short: "Song library operations (list, upload, update, delete)",
		Long:  `Commands for managing the uploaded-song library.`,
	}

	songsCmd.AddCommand(newSongsListCmd())
	songsCmd.AddCommand(newSongsUploadCmd())
	songsCmd.AddCommand(newSongsUpdateCmd())
	songsCmd.AddCommand(newSongsDeleteCmd())

	return songsCmd
}

// newSongsListCmd creates the 'songs list' command.
func newSongsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List uploaded songs",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := getSongService()
			if err != nil {
				return err
			}

			songs, err := svc.List(GetContext())
			if err != nil {
				return fmt.Errorf("failed to list songs: %w", err)
			}

			if asJSON {
				return view.RenderJSON(os.Stdout, songs)
			}
			view.RenderSongs(os.Stdout, songs)
			return nil
		},
	}
}

// newSongsUploadCmd creates the 'songs upload' command.
func newSongsUploadCmd() *cobra.Command {
	var req models.UploadRequest
	var audioFile, lyricsFile string

	cmd := &cobra.Command{
		Use:   "upload",
		Short: "Upload a song with metadata",
		Long: `Upload an audio file with its metadata. Lyrics may come inline
(--lyrics) or from a text file (--lyrics-file).

Example:
  maqamctl songs upload --audio lamma_bada.mp3 \
    --title "Lamma Bada Yatathanna" --artist Traditional \
    --maqam nahawand --style muwashshah --tempo 90 \
    --emotion longing --region levant`,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := getSongService()
			if err != nil {
				return err
			}

			if audioFile != "" {
				if err := svc.SelectAudio(audioFile); err != nil {
					return err
				}
			}
			if lyricsFile != "" {
				if err := svc.SelectLyrics(lyricsFile); err != nil {
					return err
				}
			}

			outcome, err := svc.Upload(GetContext(), req)
			if err != nil {
				if workflow.IsValidationError(err) {
					return fmt.Errorf("upload not sent: %w", err)
				}
				return fmt.Errorf("upload failed: %w", err)
			}

			fmt.Println("Song uploaded successfully.")
			fmt.Println()
			view.RenderDashboard(os.Stdout, outcome.Stats)
			fmt.Println()
			view.RenderSongs(os.Stdout, outcome.Songs)
			return nil
		},
	}

	cmd.Flags().StringVar(&audioFile, "audio", "", "Audio file to upload (.mp3/.wav/.flac/.m4a)")
	cmd.Flags().StringVar(&lyricsFile, "lyrics-file", "", "Plaintext lyrics file (.txt)")
	cmd.Flags().StringVar(&req.Title, "title", "", "Song title (required)")
	cmd.Flags().StringVar(&req.Artist, "artist", "", "Artist name (required)")
	cmd.Flags().StringVar(&req.Composer, "composer", "", "Composer name")
	cmd.Flags().StringVar(&req.Lyrics, "lyrics", "", "Inline lyrics text")
	cmd.Flags().StringVar(&req.Maqam, "maqam", "", "Maqam (e.g. hijaz, bayati, rast)")
	cmd.Flags().StringVar(&req.Style, "style", "", "Musical style")
	cmd.Flags().IntVar(&req.TempoBPM, "tempo", 0, "Tempo in BPM")
	cmd.Flags().StringVar(&req.Emotion, "emotion", "", "Emotional character")
	cmd.Flags().StringVar(&req.Region, "region", "", "Regional tradition")
	cmd.Flags().StringVar(&req.PoemBahr, "poem-bahr", "", "Poetic meter of the lyrics")

	return cmd
}

// newSongsUpdateCmd creates the 'songs update' command.
func newSongsUpdateCmd() *cobra.Command {
	var id int
	var title, artist, maqam, style, emotion, region string
	var tempo int

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update song metadata",
		Long: `Apply a partial metadata update to an uploaded song. Only the
flags you pass are changed.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := getSongService()
			if err != nil {
				return err
			}

			fields := map[string]interface{}{}
			if cmd.Flags().Changed("title") {
				fields["title"] = title
			}
			if cmd.Flags().Changed("artist") {
				fields["artist"] = artist
			}
			if cmd.Flags().Changed("maqam") {
				fields["maqam"] = maqam
			}
			if cmd.Flags().Changed("style") {
				fields["style"] = style
			}
			if cmd.Flags().Changed("tempo") {
				fields["tempo"] = tempo
			}
			if cmd.Flags().Changed("emotion") {
				fields["emotion"] = emotion
			}
			if cmd.Flags().Changed("region") {
				fields["region"] = region
			}

			if err := svc.Update(GetContext(), id, fields); err != nil {
				return fmt.Errorf("failed to update song: %w", err)
			}
			fmt.Printf("Song %d updated.\n", id)
			return nil
		},
	}

	cmd.Flags().IntVar(&id, "id", 0, "Song ID (required)")
	cmd.MarkFlagRequired("id")
	cmd.Flags().StringVar(&title, "title", "", "New title")
	cmd.Flags().StringVar(&artist, "artist", "", "New artist")
	cmd.Flags().StringVar(&maqam, "maqam", "", "New maqam")
	cmd.Flags().StringVar(&style, "style", "", "New style")
	cmd.Flags().IntVar(&tempo, "tempo", 0, "New tempo in BPM")
	cmd.Flags().StringVar(&emotion, "emotion", "", "New emotion")
	cmd.Flags().StringVar(&region, "region", "", "New region")

	return cmd
}

// newSongsDeleteCmd creates the 'songs delete' command.
func newSongsDeleteCmd() *cobra.Command {
	var id int
	var force bool

	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete an uploaded song",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := getSongService()
			if err != nil {
				return err
			}

			if !force && !confirmPrompt(fmt.Sprintf("Delete song %d?", id)) {
				fmt.Println("Aborted.")
				return nil
			}

			if err := svc.Delete(GetContext(), id); err != nil {
				return fmt.Errorf("failed to delete song: %w", err)
			}
			fmt.Printf("Song %d deleted.\n", id)
			return nil
		},
	}

	cmd.Flags().IntVar(&id, "id", 0, "Song ID (required)")
	cmd.MarkFlagRequired("id")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Skip the confirmation prompt")

	return cmd
}
