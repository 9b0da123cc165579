// Package models defines the wire types exchanged with the Arabic Music AI backend.
package models

import "strconv"

// SongSummary is one entry of the uploaded-song library as reported by the
// backend. Read-only projection; the backend owns the durable record.
type SongSummary struct {
	ID         int     `json:"id"`
	Title      string  `json:"title"`
	Artist     string  `json:"artist"`
	Composer   string  `json:"composer,omitempty"`
	Maqam      string  `json:"maqam"`
	Style      string  `json:"style"`
	TempoBPM   int     `json:"tempo"`
	Emotion    string  `json:"emotion"`
	Region     string  `json:"region"`
	PoemBahr   string  `json:"poem_bahr,omitempty"`
	HasLyrics  bool    `json:"has_lyrics"`
	FileSizeMB float64 `json:"file_size_mb"`
	CreatedAt  string  `json:"created_at"`
}

// UploadRequest carries the metadata for a song upload. The audio file (and
// optional lyrics file) travel as separate multipart attachments; see the
// workflow package.
//
// Field names in the `form` tag are the multipart part names the backend
// expects; validation tags feed the all-at-once missing-field report.
type UploadRequest struct {
	Title    string `json:"title" form:"title" validate:"notblank"`
	Artist   string `json:"artist" form:"artist" validate:"notblank"`
	Composer string `json:"composer,omitempty" form:"composer"`
	Lyrics   string `json:"lyrics,omitempty" form:"lyrics"`
	Maqam    string `json:"maqam" form:"maqam"`
	Style    string `json:"style" form:"style"`
	TempoBPM int    `json:"tempo" form:"tempo"`
	Emotion  string `json:"emotion" form:"emotion"`
	Region   string `json:"region" form:"region"`
	PoemBahr string `json:"poem_bahr,omitempty" form:"poem_bahr"`
}

// FormFields returns the multipart field map for the request. Empty optional
// values are omitted so the encoded body only carries fields the user filled in.
func (r UploadRequest) FormFields() map[string]string {
	fields := map[string]string{
		"title":   r.Title,
		"artist":  r.Artist,
		"maqam":   r.Maqam,
		"style":   r.Style,
		"tempo":   strconv.Itoa(r.TempoBPM),
		"emotion": r.Emotion,
		"region":  r.Region,
	}
	if r.Composer != "" {
		fields["composer"] = r.Composer
	}
	if r.Lyrics != "" {
		fields["lyrics"] = r.Lyrics
	}
	if r.PoemBahr != "" {
		fields["poem_bahr"] = r.PoemBahr
	}
	return fields
}
