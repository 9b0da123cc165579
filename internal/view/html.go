package view

import (
	"fmt"
	"html/template"
	"io"
	"time"

	"github.com/maqamstudio/maqamctl/internal/models"
)

// reportTemplate renders the dashboard report. html/template escapes every
// interpolated value, so user-supplied titles and artists cannot inject
// markup.
var reportTemplate = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Arabic Music AI - Library Report</title>
</head>
<body>
<h1>Library Report</h1>
<p>Generated {{.GeneratedAt}}</p>

<h2>Dashboard</h2>
<ul>
<li>Songs uploaded: {{.Stats.SongsCount}}</li>
<li>Songs generated: {{.Stats.GeneratedCount}}</li>
<li>Model accuracy: {{printf "%.1f" .Stats.ModelAccuracy}}%</li>
<li>Training: {{if .Stats.IsTraining}}in progress{{else}}not running{{end}}</li>
</ul>

<h2>Uploaded songs</h2>
{{if .Songs}}
<table border="1">
<tr><th>ID</th><th>Title</th><th>Artist</th><th>Maqam</th><th>Style</th><th>Tempo</th></tr>
{{range .Songs}}
<tr><td>{{.ID}}</td><td>{{.Title}}</td><td>{{.Artist}}</td><td>{{.Maqam}}</td><td>{{.Style}}</td><td>{{.TempoBPM}}</td></tr>
{{end}}
</table>
{{else}}
<p>No songs uploaded yet.</p>
{{end}}

<h2>Generated songs</h2>
{{if .Generated}}
<table border="1">
<tr><th>ID</th><th>Title</th><th>Maqam</th><th>Style</th><th>Tempo</th></tr>
{{range .Generated}}
<tr><td>{{.ID}}</td><td>{{.Title}}</td><td>{{.Maqam}}</td><td>{{.Style}}</td><td>{{.TempoBPM}}</td></tr>
{{end}}
</table>
{{else}}
<p>No songs generated yet.</p>
{{end}}
</body>
</html>
`))

// HTMLReport bundles the data for WriteHTMLReport.
type HTMLReport struct {
	GeneratedAt string
	Stats       *models.DashboardStats
	Songs       []models.SongSummary
	Generated   []models.GeneratedSongSummary
}

// WriteHTMLReport renders a standalone HTML snapshot of the library.
func WriteHTMLReport(w io.Writer, stats *models.DashboardStats, songs []models.SongSummary, generated []models.GeneratedSongSummary) error {
	report := HTMLReport{
		GeneratedAt: time.Now().Format(time.RFC1123),
		Stats:       stats,
		Songs:       songs,
		Generated:   generated,
	}
	if err := reportTemplate.Execute(w, report); err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}
	return nil
}
