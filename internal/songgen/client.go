// Package songgen talks to the external music-generation API: start a
// generation task, poll it, and translate the result into track descriptors
// the engine can store. Failures come back as structured APIError values,
// never panics; the game state is untouched by anything in here.
package songgen

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/appengine-ltd/band-it/internal/game"
)

const (
	defaultBaseURL  = "https://api.sunoapi.org"
	pollInterval    = 5 * time.Second
	pollMaxAttempts = 60
	requestTimeout  = 30 * time.Second
)

// Params describes the song to generate.
type Params struct {
	Title  string `json:"title"`
	Genre  string `json:"genre"`
	Theme  string `json:"theme"`
	Lyrics string `json:"lyrics"`
}

// APIError is the structured failure the API (or this client) reports.
type APIError struct {
	Code    int    `json:"code"`
	Message string `json:"msg"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("songgen: %d %s", e.Code, e.Message)
}

type Client struct {
	baseURL      string
	apiKey       string
	http         *http.Client
	pollInterval time.Duration
	maxAttempts  int
}

func NewClient(apiKey string) *Client {
	return &Client{
		baseURL:      defaultBaseURL,
		apiKey:       apiKey,
		http:         &http.Client{Timeout: requestTimeout},
		pollInterval: pollInterval,
		maxAttempts:  pollMaxAttempts,
	}
}

// NewClientForTest points the client at a stub server with fast polling.
func NewClientForTest(baseURL string) *Client {
	return &Client{
		baseURL:      baseURL,
		apiKey:       "test",
		http:         &http.Client{Timeout: requestTimeout},
		pollInterval: time.Millisecond,
		maxAttempts:  5,
	}
}

type apiEnvelope struct {
	Code int             `json:"code"`
	Msg  string          `json:"msg"`
	Data json.RawMessage `json:"data"`
}

type startData struct {
	TaskID string `json:"taskId"`
}

type recordData struct {
	Status       string `json:"status"`
	ErrorMessage string `json:"errorMessage"`
	Response     struct {
		SunoData []trackData `json:"sunoData"`
	} `json:"response"`
}

type trackData struct {
	ID             string  `json:"id"`
	AudioURL       string  `json:"audioUrl"`
	StreamAudioURL string  `json:"streamAudioUrl"`
	ImageURL       string  `json:"imageUrl"`
	Title          string  `json:"title"`
	Tags           string  `json:"tags"`
	Duration       float64 `json:"duration"`
}

// Generate starts a task and polls until tracks arrive, the API reports a
// failure, the attempt budget runs out, or ctx is done.
func (c *Client) Generate(ctx context.Context, p Params) ([]game.Track, *APIError) {
	taskID, apiErr := c.start(ctx, p)
	if apiErr != nil {
		return nil, apiErr
	}

	for attempt := 0; attempt < c.maxAttempts; attempt++ {
		select {
		case <-ctx.Done():
			return nil, &APIError{Code: 499, Message: ctx.Err().Error()}
		case <-time.After(c.pollInterval):
		}

		record, apiErr := c.poll(ctx, taskID)
		if apiErr != nil {
			return nil, apiErr
		}
		switch record.Status {
		case "CREATE_TASK_FAILED", "GENERATE_AUDIO_FAILED", "CALLBACK_EXCEPTION", "SENSITIVE_WORD_ERROR":
			msg := record.ErrorMessage
			if msg == "" {
				msg = record.Status
			}
			return nil, &APIError{Code: 500, Message: msg}
		case "SUCCESS":
			if len(record.Response.SunoData) == 0 {
				continue
			}
			tracks := make([]game.Track, 0, len(record.Response.SunoData))
			for _, t := range record.Response.SunoData {
				tracks = append(tracks, game.Track{
					ID:             t.ID,
					AudioURL:       t.AudioURL,
					StreamAudioURL: t.StreamAudioURL,
					ImageURL:       t.ImageURL,
					Title:          t.Title,
					Tags:           t.Tags,
					Duration:       t.Duration,
				})
			}
			return tracks, nil
		}
	}
	return nil, &APIError{Code: 408, Message: "generation timed out"}
}

func (c *Client) start(ctx context.Context, p Params) (string, *APIError) {
	style := p.Genre
	if p.Theme != "" {
		style += ", " + p.Theme
	}
	body, err := json.Marshal(map[string]any{
		"customMode":   true,
		"instrumental": false,
		"prompt":       truncate(p.Lyrics, 5000),
		"style":        truncate(style, 200),
		"title":        truncate(p.Title, 80),
		"model":        "V4_5",
	})
	if err != nil {
		return "", &APIError{Code: 500, Message: err.Error()}
	}

	var env apiEnvelope
	if apiErr := c.do(ctx, http.MethodPost, "/api/v1/generate", bytes.NewReader(body), &env); apiErr != nil {
		return "", apiErr
	}
	if env.Code != 200 {
		return "", &APIError{Code: env.Code, Message: env.Msg}
	}
	var data startData
	if err := json.Unmarshal(env.Data, &data); err != nil || data.TaskID == "" {
		return "", &APIError{Code: 500, Message: "missing taskId in response"}
	}
	return data.TaskID, nil
}

func (c *Client) poll(ctx context.Context, taskID string) (*recordData, *APIError) {
	path := "/api/v1/generate/record-info?taskId=" + url.QueryEscape(taskID)
	var env apiEnvelope
	if apiErr := c.do(ctx, http.MethodGet, path, nil, &env); apiErr != nil {
		return nil, apiErr
	}
	if env.Code != 200 {
		return nil, &APIError{Code: env.Code, Message: env.Msg}
	}
	var record recordData
	if err := json.Unmarshal(env.Data, &record); err != nil {
		return nil, &APIError{Code: 500, Message: "malformed record-info response"}
	}
	return &record, nil
}

func (c *Client) do(ctx context.Context, method, path string, body *bytes.Reader, out *apiEnvelope) *APIError {
	var req *http.Request
	var err error
	if body != nil {
		req, err = http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	} else {
		req, err = http.NewRequestWithContext(ctx, method, c.baseURL+path, nil)
	}
	if err != nil {
		return &APIError{Code: 500, Message: err.Error()}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return &APIError{Code: 502, Message: err.Error()}
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &APIError{Code: 500, Message: "malformed API response"}
	}
	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
