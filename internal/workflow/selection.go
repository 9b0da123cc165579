package workflow

import (
	"mime"
	"path/filepath"
	"strings"

	"github.com/maqamstudio/maqamctl/internal/constants"
)

// Kind names the role a staged file plays in a request.
type Kind string

const (
	KindAudio  Kind = "audio"
	KindLyrics Kind = "lyrics"
)

// allow-lists per kind: a candidate is accepted when its MIME type matches
// OR its lowercased extension is listed.
var (
	audioExtensions  = []string{".mp3", ".wav", ".flac", ".m4a"}
	lyricsExtensions = []string{".txt"}
)

// The stdlib's builtin table lacks most audio types; the system mime.types
// file is not guaranteed either. Register what the slots care about.
func init() {
	mime.AddExtensionType(".mp3", "audio/mpeg")
	mime.AddExtensionType(".wav", "audio/wav")
	mime.AddExtensionType(".flac", "audio/flac")
	mime.AddExtensionType(".m4a", "audio/mp4")
	mime.AddExtensionType(".txt", "text/plain; charset=utf-8")
}

// Selection is one accepted file staged for submission.
type Selection struct {
	Name      string
	Path      string
	MIMEType  string
	SizeBytes int64
}

// Candidate describes a file offered to a slot before acceptance.
type Candidate struct {
	Name      string
	Path      string
	MIMEType  string
	SizeBytes int64
}

// Slot holds at most one staged file of a given kind. A new selection
// replaces the previous one; Clear empties the slot and is idempotent.
type Slot struct {
	kind     Kind
	selected *Selection
}

// NewSlot creates an empty slot for the given kind.
func NewSlot(kind Kind) *Slot {
	return &Slot{kind: kind}
}

// Kind returns the slot's file kind.
func (s *Slot) Kind() Kind { return s.kind }

// Select validates the candidate against the slot's allow-list and stages it.
// Rejection leaves any previous selection untouched.
func (s *Slot) Select(c Candidate) (*Selection, error) {
	if !s.accepts(c) {
		return nil, &InvalidFileKindError{Name: c.Name, Allowed: s.allowed()}
	}
	if s.kind == KindAudio && c.SizeBytes > constants.MaxAudioFileSize {
		return nil, &FileTooLargeError{Name: c.Name, SizeBytes: c.SizeBytes, MaxBytes: constants.MaxAudioFileSize}
	}

	sel := &Selection{
		Name:      c.Name,
		Path:      c.Path,
		MIMEType:  c.MIMEType,
		SizeBytes: c.SizeBytes,
	}
	s.selected = sel
	return sel, nil
}

// Selected returns the staged file, or nil when the slot is empty.
func (s *Slot) Selected() *Selection {
	return s.selected
}

// Clear empties the slot. Clearing an empty slot is a no-op.
func (s *Slot) Clear() {
	s.selected = nil
}

func (s *Slot) accepts(c Candidate) bool {
	mimeType := strings.ToLower(strings.TrimSpace(c.MIMEType))
	// Strip parameters like "; charset=utf-8".
	if i := strings.Index(mimeType, ";"); i >= 0 {
		mimeType = strings.TrimSpace(mimeType[:i])
	}
	ext := strings.ToLower(filepath.Ext(c.Name))

	switch s.kind {
	case KindAudio:
		if strings.HasPrefix(mimeType, "audio/") {
			return true
		}
		return contains(audioExtensions, ext)
	case KindLyrics:
		if mimeType == "text/plain" {
			return true
		}
		return contains(lyricsExtensions, ext)
	}
	return false
}

func (s *Slot) allowed() []string {
	switch s.kind {
	case KindAudio:
		return append([]string{"audio/*"}, audioExtensions...)
	case KindLyrics:
		return append([]string{"text/plain"}, lyricsExtensions...)
	}
	return nil
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}

// CandidateFromPath builds a candidate from a local file path, inferring the
// MIME type from the extension.
func CandidateFromPath(path string, sizeBytes int64) Candidate {
	return Candidate{
		Name:      filepath.Base(path),
		Path:      path,
		MIMEType:  mime.TypeByExtension(filepath.Ext(path)),
		SizeBytes: sizeBytes,
	}
}
