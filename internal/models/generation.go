package models

import "strconv"

// GeneratedSongSummary is one entry of the generated-music list.
type GeneratedSongSummary struct {
	ID             int     `json:"id"`
	Title          string  `json:"title"`
	Filename       string  `json:"filename"`
	Maqam          string  `json:"maqam"`
	Style          string  `json:"style"`
	TempoBPM       int     `json:"tempo"`
	Emotion        string  `json:"emotion"`
	GenerationTime float64 `json:"generation_time"`
	CreatedAt      string  `json:"created_at"`
}

// GeneratedSongDetail is the full record for a single generated song,
// including the input lyrics used to produce it.
type GeneratedSongDetail struct {
	GeneratedSongSummary
	Lyrics  string            `json:"input_lyrics"`
	Details map[string]string `json:"generation_details,omitempty"`
}

// GenerationRequest carries the parameters for a music generation run.
// Lyrics may arrive inline or as an attached text file; the builder enforces
// that at least one of the two is present.
type GenerationRequest struct {
	Title    string `json:"title,omitempty" form:"title"`
	Lyrics   string `json:"lyrics,omitempty" form:"lyrics" validate:"omitempty,min=20"`
	Maqam    string `json:"maqam" form:"maqam" validate:"notblank"`
	Style    string `json:"style" form:"style" validate:"notblank"`
	TempoBPM int    `json:"tempo" form:"tempo" validate:"required,gt=0"`
	Emotion  string `json:"emotion" form:"emotion" validate:"notblank"`
	Region   string `json:"region" form:"region" validate:"notblank"`
	Composer string `json:"composer,omitempty" form:"composer"`
}

// FormFields returns the multipart field map for the request.
func (r GenerationRequest) FormFields() map[string]string {
	fields := map[string]string{
		"maqam":   r.Maqam,
		"style":   r.Style,
		"tempo":   strconv.Itoa(r.TempoBPM),
		"emotion": r.Emotion,
		"region":  r.Region,
	}
	if r.Title != "" {
		fields["title"] = r.Title
	}
	if r.Lyrics != "" {
		fields["lyrics"] = r.Lyrics
	}
	if r.Composer != "" {
		fields["composer"] = r.Composer
	}
	return fields
}

// GenerationResult is the backend's answer to a successful generation call.
type GenerationResult struct {
	Filename       string            `json:"filename"`
	GenerationTime float64           `json:"generation_time"`
	Details        map[string]string `json:"generation_details,omitempty"`
}

// GenerationPreset is a named maqam/style/tempo combination offered as a
// starting point for generation runs.
type GenerationPreset struct {
	Name     string
	Maqam    string
	Style    string
	TempoBPM int
}

// GenerationPresets lists the built-in presets.
var GenerationPresets = []GenerationPreset{
	{Name: "classical", Maqam: "hijaz", Style: "classical", TempoBPM: 80},
	{Name: "modern", Maqam: "bayati", Style: "modern", TempoBPM: 120},
	{Name: "folk", Maqam: "saba", Style: "folk", TempoBPM: 100},
}

// PresetByName returns the preset with the given name, or false when unknown.
func PresetByName(name string) (GenerationPreset, bool) {
	for _, p := range GenerationPresets {
		if p.Name == name {
			return p, true
		}
	}
	return GenerationPreset{}, false
}
