// Package cli provides generated-music commands.
package cli

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/maqamstudio/maqamctl/internal/models"
	"github.com/maqamstudio/maqamctl/internal/view"
	"github.com/maqamstudio/maqamctl/internal/workflow"
)

// newGeneratedCmd creates the 'generated' command group.
func newGeneratedCmd() *cobra.Command {
	generatedCmd := &cobra.Command{
		Use:   "generated",
		Short: "Generated music operations (list, generate, get, delete, download, export)",
		Long:  `Commands for generating music and managing the generated library.`,
	}

	generatedCmd.AddCommand(newGeneratedListCmd())
	generatedCmd.AddCommand(newGenerateCmd())
	generatedCmd.AddCommand(newGeneratedGetCmd())
	generatedCmd.AddCommand(newGeneratedDeleteCmd())
	generatedCmd.AddCommand(newGeneratedDownloadCmd())
	generatedCmd.AddCommand(newGeneratedExportCmd())

	return generatedCmd
}

// newGeneratedListCmd creates the 'generated list' command.
func newGeneratedListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List generated songs",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := getGenerationService()
			if err != nil {
				return err
			}

			songs, err := svc.List(GetContext())
			if err != nil {
				return fmt.Errorf("failed to list generated songs: %w", err)
			}

			if asJSON {
				return view.RenderJSON(os.Stdout, songs)
			}
			view.RenderGenerated(os.Stdout, songs)
			return nil
		},
	}
}

// newGenerateCmd creates the 'generated generate' command.
func newGenerateCmd() *cobra.Command {
	var req models.GenerationRequest
	var lyricsFile, preset string

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a new song",
		Long: `Generate a new song from lyrics and musical parameters. Lyrics may
come inline (--lyrics) or from a text file (--lyrics-file). A preset
pre-fills maqam, style and tempo; explicit flags override it.

Available presets: classical, modern, folk.

Example:
  maqamctl generated generate --preset classical \
    --emotion longing --region levant \
    --lyrics-file qasida.txt`,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := getGenerationService()
			if err != nil {
				return err
			}

			if preset != "" {
				p, ok := models.PresetByName(preset)
				if !ok {
					return fmt.Errorf("unknown preset %q", preset)
				}
				if !cmd.Flags().Changed("maqam") {
					req.Maqam = p.Maqam
				}
				if !cmd.Flags().Changed("style") {
					req.Style = p.Style
				}
				if !cmd.Flags().Changed("tempo") {
					req.TempoBPM = p.TempoBPM
				}
			}

			if lyricsFile != "" {
				if err := svc.SelectLyricsFile(lyricsFile); err != nil {
					return err
				}
			}

			outcome, err := svc.Generate(GetContext(), req)
			if err != nil {
				if workflow.IsValidationError(err) {
					return fmt.Errorf("generation not sent: %w", err)
				}
				return fmt.Errorf("generation failed: %w", err)
			}

			fmt.Printf("Music generated: %s (%.1fs)\n\n", outcome.Result.Filename, outcome.Result.GenerationTime)
			view.RenderGenerated(os.Stdout, outcome.Songs)
			return nil
		},
	}

	cmd.Flags().StringVar(&preset, "preset", "", "Preset name (classical, modern, folk)")
	cmd.Flags().StringVar(&lyricsFile, "lyrics-file", "", "Plaintext lyrics file (.txt)")
	cmd.Flags().StringVar(&req.Title, "title", "", "Title for the generated song")
	cmd.Flags().StringVar(&req.Lyrics, "lyrics", "", "Inline lyrics text")
	cmd.Flags().StringVar(&req.Maqam, "maqam", "", "Maqam (e.g. hijaz, bayati, saba)")
	cmd.Flags().StringVar(&req.Style, "style", "", "Musical style")
	cmd.Flags().IntVar(&req.TempoBPM, "tempo", 0, "Tempo in BPM")
	cmd.Flags().StringVar(&req.Emotion, "emotion", "", "Emotional character")
	cmd.Flags().StringVar(&req.Region, "region", "", "Regional tradition")
	cmd.Flags().StringVar(&req.Composer, "composer", "", "Composer style to imitate")

	return cmd
}

// newGeneratedGetCmd creates the 'generated get' command.
func newGeneratedGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one generated song with its lyrics",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid id %q", args[0])
			}

			svc, err := getGenerationService()
			if err != nil {
				return err
			}

			song, err := svc.Get(GetContext(), id)
			if err != nil {
				return fmt.Errorf("failed to fetch generated song: %w", err)
			}

			if asJSON {
				return view.RenderJSON(os.Stdout, song)
			}
			view.RenderGeneratedDetail(os.Stdout, song)
			return nil
		},
	}
}

// newGeneratedDeleteCmd creates the 'generated delete' command.
func newGeneratedDeleteCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a generated song",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid id %q", args[0])
			}

			svc, err := getGenerationService()
			if err != nil {
				return err
			}

			if !force && !confirmPrompt(fmt.Sprintf("Delete generated song %d?", id)) {
				fmt.Println("Aborted.")
				return nil
			}

			if err := svc.Delete(GetContext(), id); err != nil {
				return fmt.Errorf("failed to delete generated song: %w", err)
			}
			fmt.Printf("Generated song %d deleted.\n", id)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Skip the confirmation prompt")

	return cmd
}

// newGeneratedDownloadCmd creates the 'generated download' command.
func newGeneratedDownloadCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "download <filename>",
		Short: "Download a generated audio file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filename := args[0]
			if output == "" {
				output = filename
			}

			svc, err := getGenerationService()
			if err != nil {
				return err
			}

			n, err := svc.Download(GetContext(), filename, output)
			if err != nil {
				return fmt.Errorf("download failed: %w", err)
			}
			fmt.Printf("Downloaded %s (%d bytes)\n", output, n)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Destination path (defaults to the remote filename)")

	return cmd
}

// newGeneratedExportCmd creates the 'generated export' command.
func newGeneratedExportCmd() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "export <id>",
		Short: "Export metadata and lyrics of a generated song to local files",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid id %q", args[0])
			}

			svc, err := getGenerationService()
			if err != nil {
				return err
			}

			result, err := svc.Export(GetContext(), id, dir)
			if err != nil {
				return fmt.Errorf("export failed: %w", err)
			}

			fmt.Printf("Metadata: %s\n", result.MetadataPath)
			if result.LyricsPath != "" {
				fmt.Printf("Lyrics: %s\n", result.LyricsPath)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&dir, "dir", "d", ".", "Directory to write export files into")

	return cmd
}
