package view

import (
	"bytes"
	"strings"
	"testing"

	"github.com/maqamstudio/maqamctl/internal/models"
)

func TestRenderSongsEmptyState(t *testing.T) {
	var buf bytes.Buffer
	RenderSongs(&buf, nil)
	if got := strings.TrimSpace(buf.String()); got != EmptySongs {
		t.Errorf("empty render = %q, want %q", got, EmptySongs)
	}
}

func TestRenderGeneratedEmptyState(t *testing.T) {
	var buf bytes.Buffer
	RenderGenerated(&buf, nil)
	if got := strings.TrimSpace(buf.String()); got != EmptyGenerated {
		t.Errorf("empty render = %q, want %q", got, EmptyGenerated)
	}
}

func TestRenderSongsSanitizesUserText(t *testing.T) {
	var buf bytes.Buffer
	RenderSongs(&buf, []models.SongSummary{
		{ID: 1, Title: "evil\x1b[2Jtitle", Artist: "ok\nartist", Maqam: "rast", TempoBPM: 90},
	})

	out := buf.String()
	if strings.Contains(out, "\x1b") {
		t.Error("escape character leaked into rendered output")
	}
	if !strings.Contains(out, "okartist") {
		t.Errorf("newline in field not stripped: %q", out)
	}
}

func TestRenderSongsTable(t *testing.T) {
	var buf bytes.Buffer
	RenderSongs(&buf, []models.SongSummary{
		{ID: 3, Title: "Lamma Bada", Artist: "Traditional", Maqam: "nahawand", Style: "muwashshah", TempoBPM: 90, HasLyrics: true},
	})

	out := buf.String()
	for _, want := range []string{"Lamma Bada", "Traditional", "nahawand", "yes"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRenderTrainingStatus(t *testing.T) {
	var buf bytes.Buffer
	RenderTrainingStatus(&buf, &models.TrainingStatus{
		State:           models.StateTraining,
		ProgressPercent: 55,
		CurrentEpoch:    55,
		TotalEpochs:     100,
		Loss:            0.3421,
		Accuracy:        71.2,
		ETA:             "3m10s",
	})

	out := buf.String()
	for _, want := range []string{"training", "55%", "55/100", "0.3421", "71.2%", "3m10s"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRenderTrainingHistoryEmptyState(t *testing.T) {
	var buf bytes.Buffer
	RenderTrainingHistory(&buf, nil)
	if got := strings.TrimSpace(buf.String()); got != EmptyHistory {
		t.Errorf("empty render = %q, want %q", got, EmptyHistory)
	}
}

func TestWriteHTMLReportEscapesUserText(t *testing.T) {
	var buf bytes.Buffer
	err := WriteHTMLReport(&buf,
		&models.DashboardStats{SongsCount: 1},
		[]models.SongSummary{{ID: 1, Title: `<script>alert("x")</script>`, Artist: "a & b"}},
		nil,
	)
	if err != nil {
		t.Fatalf("WriteHTMLReport() error = %v", err)
	}

	out := buf.String()
	if strings.Contains(out, "<script>alert") {
		t.Error("user-supplied markup was not escaped")
	}
	if !strings.Contains(out, "&lt;script&gt;") {
		t.Errorf("expected escaped title in output:\n%s", out)
	}
	if !strings.Contains(out, "No songs generated yet.") {
		t.Error("missing generated empty state")
	}
}
