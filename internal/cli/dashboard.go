package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/maqamstudio/maqamctl/internal/view"
)

// newDashboardCmd creates the 'dashboard' command.
func newDashboardCmd() *cobra.Command {
	var htmlFile string

	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Show library and model statistics",
		Long: `Show the backend's aggregate statistics: uploaded songs, generated
songs, model accuracy and training state.

Example:
  # Print the dashboard
  maqamctl dashboard

  # Write a standalone HTML report
  maqamctl dashboard --html report.html`,
		RunE: func(cmd *cobra.Command, args []string) error {
			apiClient, err := getAPIClient()
			if err != nil {
				return err
			}
			ctx := GetContext()

			stats, err := apiClient.DashboardStats(ctx)
			if err != nil {
				return fmt.Errorf("failed to fetch dashboard stats: %w", err)
			}

			if htmlFile != "" {
				songs, err := apiClient.ListSongs(ctx)
				if err != nil {
					return fmt.Errorf("failed to list songs: %w", err)
				}
				generated, err := apiClient.ListGenerated(ctx)
				if err != nil {
					return fmt.Errorf("failed to list generated songs: %w", err)
				}

				f, err := os.Create(htmlFile)
				if err != nil {
					return fmt.Errorf("failed to create %s: %w", htmlFile, err)
				}
				defer f.Close()

				if err := view.WriteHTMLReport(f, stats, songs, generated); err != nil {
					return err
				}
				fmt.Printf("Report written to %s\n", htmlFile)
				return nil
			}

			if asJSON {
				return view.RenderJSON(os.Stdout, stats)
			}
			view.RenderDashboard(os.Stdout, stats)
			return nil
		},
	}

	cmd.Flags().StringVar(&htmlFile, "html", "", "Write an HTML report to this file instead of printing")

	return cmd
}
