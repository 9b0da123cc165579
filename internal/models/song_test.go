package models

import "testing"

func TestUploadRequestFormFields(t *testing.T) {
	req := UploadRequest{
		Title:    "Lamma Bada",
		Artist:   "Traditional",
		Composer: "Unknown",
		Maqam:    "nahawand",
		Style:    "muwashshah",
		TempoBPM: 90,
		Emotion:  "longing",
		Region:   "levant",
	}

	fields := req.FormFields()

	if fields["title"] != "Lamma Bada" || fields["composer"] != "Unknown" {
		t.Errorf("unexpected fields %v", fields)
	}
	if fields["tempo"] != "90" {
		t.Errorf("tempo = %q, want 90", fields["tempo"])
	}

	// Absent optionals must be omitted, not sent empty.
	if _, ok := fields["lyrics"]; ok {
		t.Error("empty lyrics must be omitted")
	}
	if _, ok := fields["poem_bahr"]; ok {
		t.Error("empty poem_bahr must be omitted")
	}
}

func TestGenerationRequestFormFields(t *testing.T) {
	req := GenerationRequest{
		Lyrics:   "ya layl ya ayn",
		Maqam:    "hijaz",
		Style:    "classical",
		TempoBPM: 80,
		Emotion:  "joy",
		Region:   "gulf",
	}

	fields := req.FormFields()
	if fields["lyrics"] != "ya layl ya ayn" {
		t.Errorf("lyrics = %q", fields["lyrics"])
	}
	if _, ok := fields["title"]; ok {
		t.Error("empty title must be omitted")
	}
	if _, ok := fields["composer"]; ok {
		t.Error("empty composer must be omitted")
	}
}

func TestTrainingStateTerminal(t *testing.T) {
	terminal := []TrainingState{StateCompleted, StateStopped, StateFailed, StateTimeout}
	for _, s := range terminal {
		if !s.Terminal() {
			t.Errorf("%s should be terminal", s)
		}
	}
	for _, s := range []TrainingState{StateIdle, StateTraining} {
		if s.Terminal() {
			t.Errorf("%s should not be terminal", s)
		}
	}
}

func TestPresetByName(t *testing.T) {
	p, ok := PresetByName("classical")
	if !ok || p.Maqam != "hijaz" || p.TempoBPM != 80 {
		t.Errorf("classical preset = %+v, ok=%v", p, ok)
	}
	if _, ok := PresetByName("jazz"); ok {
		t.Error("unknown preset should not resolve")
	}
}
