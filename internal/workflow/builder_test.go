package workflow

import (
	"errors"
	"io"
	"mime"
	"mime/multipart"
	"sort"
	"strings"
	"testing"

	"github.com/maqamstudio/maqamctl/internal/models"
)

func TestValidateReportsAllMissingFieldsAtOnce(t *testing.T) {
	b := NewBuilder()

	err := b.Validate(models.UploadRequest{
		Title:  "   ", // whitespace-only counts as missing
		Artist: "",
	})

	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("Validate() error = %v, want ValidationError", err)
	}

	got := append([]string(nil), vErr.MissingFields...)
	sort.Strings(got)
	want := []string{"artist", "title"}
	if len(got) != len(want) {
		t.Fatalf("missing fields = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("missing fields = %v, want %v", got, want)
		}
	}
}

func TestValidateAcceptsCompleteUpload(t *testing.T) {
	b := NewBuilder()

	err := b.Validate(models.UploadRequest{
		Title:    "Lamma Bada Yatathanna",
		Artist:   "Traditional",
		Maqam:    "nahawand",
		Style:    "classical",
		TempoBPM: 90,
		Emotion:  "longing",
		Region:   "levant",
	})
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
}

func TestValidateGenerationRequest(t *testing.T) {
	b := NewBuilder()

	tests := []struct {
		name    string
		req     models.GenerationRequest
		missing []string
	}{
		{
			"all required present",
			models.GenerationRequest{Maqam: "hijaz", Style: "classical", TempoBPM: 80, Emotion: "joy", Region: "gulf"},
			nil,
		},
		{
			"everything blank",
			models.GenerationRequest{},
			[]string{"emotion", "maqam", "region", "style", "tempo"},
		},
		{
			"lyrics below minimum length",
			models.GenerationRequest{Lyrics: "short", Maqam: "hijaz", Style: "classical", TempoBPM: 80, Emotion: "joy", Region: "gulf"},
			[]string{"lyrics"},
		},
		{
			"zero tempo",
			models.GenerationRequest{Maqam: "saba", Style: "folk", Emotion: "sorrow", Region: "egypt"},
			[]string{"tempo"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := b.Validate(tt.req)
			if tt.missing == nil {
				if err != nil {
					t.Fatalf("Validate() error = %v", err)
				}
				return
			}

			var vErr *ValidationError
			if !errors.As(err, &vErr) {
				t.Fatalf("Validate() error = %v, want ValidationError", err)
			}
			got := append([]string(nil), vErr.MissingFields...)
			sort.Strings(got)
			if strings.Join(got, ",") != strings.Join(tt.missing, ",") {
				t.Errorf("missing fields = %v, want %v", got, tt.missing)
			}
		})
	}
}

func TestValidateTrainingConfig(t *testing.T) {
	b := NewBuilder()

	if err := b.Validate(models.TrainingConfig{Epochs: 100, LearningRate: 0.001, BatchSize: 32, FocusArea: "melody"}); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	err := b.Validate(models.TrainingConfig{Epochs: 100, LearningRate: 0.001, BatchSize: 32, FocusArea: "vocals"})
	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("Validate() error = %v, want ValidationError", err)
	}
	if len(vErr.MissingFields) != 1 || vErr.MissingFields[0] != "focus_area" {
		t.Errorf("missing fields = %v, want [focus_area]", vErr.MissingFields)
	}
}

func TestEncodeMultipart(t *testing.T) {
	b := NewBuilder()

	contentType, body, err := b.EncodeMultipart(
		map[string]string{"title": "Ya Msafer", "artist": "Mohammed Abdel Wahab"},
		FilePart{Field: "audio_file", Filename: "ya_msafer.mp3", Content: strings.NewReader("fake-audio-bytes")},
		FilePart{Field: "lyrics_file", Filename: "ya_msafer.txt", Content: strings.NewReader("ya msafer wahdak")},
	)
	if err != nil {
		t.Fatalf("EncodeMultipart() error = %v", err)
	}

	mediaType, params, err := mime.ParseMediaType(contentType)
	if err != nil || mediaType != "multipart/form-data" {
		t.Fatalf("content type = %q (%v)", contentType, err)
	}

	reader := multipart.NewReader(body, params["boundary"])
	parts := map[string]string{}
	files := map[string]string{}
	for {
		part, err := reader.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("NextPart() error = %v", err)
		}
		data, _ := io.ReadAll(part)
		parts[part.FormName()] = string(data)
		if part.FileName() != "" {
			files[part.FormName()] = part.FileName()
		}
	}

	if parts["title"] != "Ya Msafer" || parts["artist"] != "Mohammed Abdel Wahab" {
		t.Errorf("form fields = %v", parts)
	}
	if parts["audio_file"] != "fake-audio-bytes" {
		t.Errorf("audio part = %q", parts["audio_file"])
	}
	if files["audio_file"] != "ya_msafer.mp3" || files["lyrics_file"] != "ya_msafer.txt" {
		t.Errorf("filenames = %v", files)
	}
}

func TestEncodeJSON(t *testing.T) {
	b := NewBuilder()

	contentType, body, err := b.EncodeJSON(models.TrainingConfig{Epochs: 50, LearningRate: 0.001, BatchSize: 16})
	if err != nil {
		t.Fatalf("EncodeJSON() error = %v", err)
	}
	if contentType != "application/json" {
		t.Errorf("content type = %q", contentType)
	}

	data, _ := io.ReadAll(body)
	if !strings.Contains(string(data), `"epochs":50`) {
		t.Errorf("body = %s", data)
	}
}
