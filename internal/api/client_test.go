package api

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/maqamstudio/maqamctl/internal/config"
	"github.com/maqamstudio/maqamctl/internal/logging"
	"github.com/maqamstudio/maqamctl/internal/models"
)

func testClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg := config.NewConfig()
	cfg.BaseURL = server.URL
	return NewClient(cfg, logging.NewLogger(io.Discard))
}

func TestDashboardStats(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/dashboard/stats" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Write([]byte(`{"success":true,"stats":{"songs_count":12,"generated_count":3,"is_training":true,"model_accuracy":87.5}}`))
	}))

	stats, err := client.DashboardStats(context.Background())
	if err != nil {
		t.Fatalf("DashboardStats() error = %v", err)
	}
	if stats.SongsCount != 12 {
		t.Errorf("songs count = %d, want 12", stats.SongsCount)
	}
	if !stats.IsTraining {
		t.Error("expected is_training true")
	}
	if stats.ModelAccuracy != 87.5 {
		t.Errorf("model accuracy = %g, want 87.5", stats.ModelAccuracy)
	}
}

func TestServerRejectionCarriesMessageVerbatim(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":false,"error":"No songs available for training"}`))
	}))

	_, err := client.StartTraining(context.Background(), models.TrainingConfig{Epochs: 50, LearningRate: 0.001, BatchSize: 32})
	if err == nil {
		t.Fatal("expected error")
	}

	msg, ok := ServerMessage(err)
	if !ok {
		t.Fatalf("expected server rejection, got %T: %v", err, err)
	}
	if msg != "No songs available for training" {
		t.Errorf("message = %q, want the backend string verbatim", msg)
	}
}

func TestRejectionEnvelopeOnErrorStatus(t *testing.T) {
	// Backends send the envelope on 4xx responses too; the envelope decides.
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"success":false,"error":"Missing audio file"}`))
	}))

	err := client.UploadSong(context.Background(), "multipart/form-data", strings.NewReader("body"))
	msg, ok := ServerMessage(err)
	if !ok {
		t.Fatalf("expected server rejection, got %v", err)
	}
	if msg != "Missing audio file" {
		t.Errorf("message = %q", msg)
	}
}

func TestMalformedResponse(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>not json</html>`))
	}))

	_, err := client.ListSongs(context.Background())
	if !IsMalformedResponse(err) {
		t.Fatalf("expected malformed response error, got %T: %v", err, err)
	}
}

func TestNetworkErrorOnUnreachableBackend(t *testing.T) {
	cfg := config.NewConfig()
	// Reserved TEST-NET address, nothing listens here.
	cfg.BaseURL = "http://192.0.2.1:5000"
	client := NewClient(cfg, logging.NewLogger(io.Discard))

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	_, err := client.TrainingStatus(ctx)
	if !IsNetworkError(err) {
		t.Fatalf("expected network error, got %T: %v", err, err)
	}
}

func TestListSongs(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/songs/list" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Write([]byte(`{"success":true,"songs":[{"id":1,"title":"Lamma Bada","artist":"Traditional","maqam":"nahawand","tempo":90}]}`))
	}))

	songs, err := client.ListSongs(context.Background())
	if err != nil {
		t.Fatalf("ListSongs() error = %v", err)
	}
	if len(songs) != 1 {
		t.Fatalf("got %d songs, want 1", len(songs))
	}
	if songs[0].Title != "Lamma Bada" || songs[0].Maqam != "nahawand" {
		t.Errorf("unexpected song %+v", songs[0])
	}
}

func TestStartTrainingDecodesTopLevelFields(t *testing.T) {
	var gotBody string
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)
		w.Write([]byte(`{"success":true,"session_id":"abc","songs_count":7}`))
	}))

	result, err := client.StartTraining(context.Background(), models.TrainingConfig{
		Epochs:       100,
		LearningRate: 0.001,
		BatchSize:    32,
	})
	if err != nil {
		t.Fatalf("StartTraining() error = %v", err)
	}
	if result.SessionID != "abc" {
		t.Errorf("session id = %q, want abc", result.SessionID)
	}
	if result.SongsCount != 7 {
		t.Errorf("songs count = %d, want 7", result.SongsCount)
	}
	if !strings.Contains(gotBody, `"epochs":100`) {
		t.Errorf("request body missing epochs: %s", gotBody)
	}
}

func TestDeleteSongUsesPathID(t *testing.T) {
	var gotMethod, gotPath string
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		w.Write([]byte(`{"success":true}`))
	}))

	if err := client.DeleteSong(context.Background(), 42); err != nil {
		t.Fatalf("DeleteSong() error = %v", err)
	}
	if gotMethod != "DELETE" || gotPath != "/api/songs/42" {
		t.Errorf("got %s %s, want DELETE /api/songs/42", gotMethod, gotPath)
	}
}

func TestDownloadGeneratedStreamsBinary(t *testing.T) {
	audio := []byte{0x49, 0x44, 0x33, 0x04, 0x00} // ID3 header bytes
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/generation/download/generated_abc.mp3" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Write(audio)
	}))

	var buf bytes.Buffer
	n, err := client.DownloadGenerated(context.Background(), "generated_abc.mp3", &buf)
	if err != nil {
		t.Fatalf("DownloadGenerated() error = %v", err)
	}
	if n != int64(len(audio)) || !bytes.Equal(buf.Bytes(), audio) {
		t.Errorf("downloaded %d bytes, want %d", n, len(audio))
	}
}

func TestDownloadGeneratedRejection(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte("not found"))
	}))

	var buf bytes.Buffer
	_, err := client.DownloadGenerated(context.Background(), "missing.mp3", &buf)
	var rejected *ServerRejectedError
	if !errors.As(err, &rejected) {
		t.Fatalf("expected server rejection, got %v", err)
	}
}
