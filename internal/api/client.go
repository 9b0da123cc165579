package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	nethttp "net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"github.com/hashicorp/go-retryablehttp"

	"github.com/maqamstudio/maqamctl/internal/config"
	"github.com/maqamstudio/maqamctl/internal/constants"
	"github.com/maqamstudio/maqamctl/internal/http"
	"github.com/maqamstudio/maqamctl/internal/logging"
	"github.com/maqamstudio/maqamctl/internal/models"
)

// retryLogger implements the retryablehttp.LeveledLogger interface
type retryLogger struct {
	log *logging.Logger
}

func (l *retryLogger) Error(msg string, keysAndValues ...interface{}) {
	l.log.Error().Msgf("retry: %s %v", msg, keysAndValues)
}

func (l *retryLogger) Info(msg string, keysAndValues ...interface{}) {
	// Only log errors and warnings, not every attempt
}

func (l *retryLogger) Debug(msg string, keysAndValues ...interface{}) {
	// Only log errors and warnings
}

func (l *retryLogger) Warn(msg string, keysAndValues ...interface{}) {
	l.log.Warn().Msgf("retry: %s %v", msg, keysAndValues)
}

// Client is the Arabic Music AI backend client. All responses share the
// {success, error?} envelope; every call gets a bounded timeout.
type Client struct {
	httpClient *nethttp.Client
	baseURL    string
	log        *logging.Logger
}

// NewClient creates a backend client from the given configuration.
func NewClient(cfg *config.Config, log *logging.Logger) *Client {
	retryClient := retryablehttp.NewClient()
	retryClient.HTTPClient = http.ConfigureHTTPClient()
	retryClient.RetryMax = constants.APIRetryMax
	retryClient.RetryWaitMin = constants.APIRetryWaitMin
	retryClient.RetryWaitMax = constants.APIRetryWaitMax
	retryClient.Logger = &retryLogger{log: log}

	return &Client{
		httpClient: retryClient.StandardClient(),
		baseURL:    strings.TrimSuffix(cfg.BaseURL, "/"),
		log:        log,
	}
}

// envelope is the common wrapper on every backend response.
type envelope struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// doRequest performs an HTTP exchange and returns the raw response body.
// Transport failures map to NetworkError; envelope decoding happens in the
// callers via decodeEnvelope.
func (c *Client) doRequest(ctx context.Context, op, method, path, contentType string, body io.Reader) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.APIRequestTimeout)
	defer cancel()

	req, err := nethttp.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to create request: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Debug().Str("method", method).Str("path", path).Err(err).Msg("request failed")
		return nil, &NetworkError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	// Error statuses still carry the envelope, so the body is decoded
	// regardless of status; the envelope decides success.
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &NetworkError{Op: op, Err: err}
	}

	return data, nil
}

// decodeEnvelope checks the {success, error?} wrapper and, when out is
// non-nil, decodes the same body into it.
func (c *Client) decodeEnvelope(op string, data []byte, out interface{}) error {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		c.log.Error().Str("op", op).Err(err).Msg("undecodable response body")
		return &MalformedResponseError{Op: op, Err: err}
	}

	if !env.Success {
		return &ServerRejectedError{Op: op, Message: env.Error}
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			c.log.Error().Str("op", op).Err(err).Msg("unexpected payload shape")
			return &MalformedResponseError{Op: op, Err: err}
		}
	}

	return nil
}

// callJSON performs a request with an optional JSON body and decodes the
// enveloped response into out.
func (c *Client) callJSON(ctx context.Context, op, method, path string, reqBody, out interface{}) error {
	var body io.Reader
	contentType := ""
	if reqBody != nil {
		jsonData, err := json.Marshal(reqBody)
		if err != nil {
			return fmt.Errorf("%s: failed to marshal request body: %w", op, err)
		}
		body = bytes.NewReader(jsonData)
		contentType = "application/json"
	}

	data, err := c.doRequest(ctx, op, method, path, contentType, body)
	if err != nil {
		return err
	}
	return c.decodeEnvelope(op, data, out)
}

// callMultipart performs a request whose body was produced by a multipart
// encoder and decodes the enveloped response into out.
func (c *Client) callMultipart(ctx context.Context, op, path, contentType string, body io.Reader, out interface{}) error {
	data, err := c.doRequest(ctx, op, "POST", path, contentType, body)
	if err != nil {
		return err
	}
	return c.decodeEnvelope(op, data, out)
}

// DashboardStats fetches the aggregate library and model statistics.
func (c *Client) DashboardStats(ctx context.Context) (*models.DashboardStats, error) {
	var payload struct {
		Stats models.DashboardStats `json:"stats"`
	}
	if err := c.callJSON(ctx, "dashboard stats", "GET", "/api/dashboard/stats", nil, &payload); err != nil {
		return nil, err
	}
	return &payload.Stats, nil
}

// TestConnection verifies the backend is reachable.
func (c *Client) TestConnection(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, constants.APIConnectionTestTimeout)
	defer cancel()
	_, err := c.DashboardStats(ctx)
	return err
}

// ListSongs fetches the uploaded-song library.
func (c *Client) ListSongs(ctx context.Context) ([]models.SongSummary, error) {
	var payload struct {
		Songs []models.SongSummary `json:"songs"`
	}
	if err := c.callJSON(ctx, "list songs", "GET", "/api/songs/list", nil, &payload); err != nil {
		return nil, err
	}
	return payload.Songs, nil
}

// UploadSong submits a multipart upload produced by the workflow encoder.
func (c *Client) UploadSong(ctx context.Context, contentType string, body io.Reader) error {
	return c.callMultipart(ctx, "upload song", "/api/songs/upload", contentType, body, nil)
}

// UpdateSong applies a partial metadata update to an uploaded song.
func (c *Client) UpdateSong(ctx context.Context, id int, fields map[string]interface{}) error {
	path := fmt.Sprintf("/api/songs/%d", id)
	return c.callJSON(ctx, "update song", "PUT", path, fields, nil)
}

// DeleteSong removes an uploaded song from the library.
func (c *Client) DeleteSong(ctx context.Context, id int) error {
	path := fmt.Sprintf("/api/songs/%d", id)
	return c.callJSON(ctx, "delete song", "DELETE", path, nil, nil)
}

// ListGenerated fetches the generated-music list.
func (c *Client) ListGenerated(ctx context.Context) ([]models.GeneratedSongSummary, error) {
	var payload struct {
		Songs []models.GeneratedSongSummary `json:"songs"`
	}
	if err := c.callJSON(ctx, "list generated", "GET", "/api/generation/list", nil, &payload); err != nil {
		return nil, err
	}
	return payload.Songs, nil
}

// GetGenerated fetches the full record for one generated song.
func (c *Client) GetGenerated(ctx context.Context, id int) (*models.GeneratedSongDetail, error) {
	var payload struct {
		Song models.GeneratedSongDetail `json:"song"`
	}
	path := fmt.Sprintf("/api/generation/%d", id)
	if err := c.callJSON(ctx, "get generated", "GET", path, nil, &payload); err != nil {
		return nil, err
	}
	return &payload.Song, nil
}

// Generate submits a generation request. The body may be JSON or multipart
// depending on whether a lyrics file was attached; contentType says which.
func (c *Client) Generate(ctx context.Context, contentType string, body io.Reader) (*models.GenerationResult, error) {
	// Result fields sit at the top level of the envelope, not under a key.
	var result models.GenerationResult
	data, err := c.doRequest(ctx, "generate", "POST", "/api/generation/generate", contentType, body)
	if err != nil {
		return nil, err
	}
	if err := c.decodeEnvelope("generate", data, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// DeleteGenerated removes a generated song.
func (c *Client) DeleteGenerated(ctx context.Context, id int) error {
	path := fmt.Sprintf("/api/generation/%d", id)
	return c.callJSON(ctx, "delete generated", "DELETE", path, nil, nil)
}

// DownloadGenerated streams the audio of a generated song into w.
// This is the one endpoint that answers binary instead of the envelope.
func (c *Client) DownloadGenerated(ctx context.Context, filename string, w io.Writer) (int64, error) {
	const op = "download generated"

	path := "/api/generation/download/" + url.PathEscape(filename)
	req, err := nethttp.NewRequestWithContext(ctx, "GET", c.baseURL+path, nil)
	if err != nil {
		return 0, fmt.Errorf("%s: failed to create request: %w", op, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, &NetworkError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != nethttp.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return 0, &ServerRejectedError{Op: op, Message: fmt.Sprintf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))}
	}

	n, err := io.Copy(w, resp.Body)
	if err != nil {
		return n, &NetworkError{Op: op, Err: err}
	}
	return n, nil
}

// TrainingPrerequisites reports whether the library is ready for training.
func (c *Client) TrainingPrerequisites(ctx context.Context) (*models.TrainingPrerequisites, error) {
	var payload struct {
		Prerequisites models.TrainingPrerequisites `json:"prerequisites"`
	}
	if err := c.callJSON(ctx, "training prerequisites", "GET", "/api/training/prerequisites", nil, &payload); err != nil {
		return nil, err
	}
	return &payload.Prerequisites, nil
}

// StartTraining asks the backend to begin a training session.
func (c *Client) StartTraining(ctx context.Context, cfg models.TrainingConfig) (*models.TrainingStartResult, error) {
	// session_id and songs_count sit at the top level of the envelope.
	var result models.TrainingStartResult
	if err := c.callJSON(ctx, "start training", "POST", "/api/training/start", cfg, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// StopTraining requests that the active training session stop. The caller
// must keep polling until a non-training snapshot confirms the stop.
func (c *Client) StopTraining(ctx context.Context, sessionID string) error {
	body := map[string]string{}
	if sessionID != "" {
		body["session_id"] = sessionID
	}
	return c.callJSON(ctx, "stop training", "POST", "/api/training/stop", body, nil)
}

// TrainingStatus fetches one status snapshot of the training session.
func (c *Client) TrainingStatus(ctx context.Context) (*models.TrainingStatus, error) {
	var payload struct {
		Status models.TrainingStatus `json:"status"`
	}
	if err := c.callJSON(ctx, "training status", "GET", "/api/training/status", nil, &payload); err != nil {
		return nil, err
	}
	return &payload.Status, nil
}

// TrainingHistory fetches the finished-session history.
func (c *Client) TrainingHistory(ctx context.Context) ([]models.TrainingHistoryEntry, error) {
	var payload struct {
		History []models.TrainingHistoryEntry `json:"history"`
	}
	if err := c.callJSON(ctx, "training history", "GET", "/api/training/history", nil, &payload); err != nil {
		return nil, err
	}
	return payload.History, nil
}
