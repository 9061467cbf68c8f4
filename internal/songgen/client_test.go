package songgen

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

type stubAPI struct {
	t          *testing.T
	startCode  int
	startMsg   string
	taskID     string
	records    []string // record-info bodies served in order, last one repeats
	polls      int
	lastPrompt map[string]any
}

func (s *stubAPI) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v1/generate", func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer test" {
			s.t.Errorf("missing bearer token, got %q", got)
		}
		if err := json.NewDecoder(r.Body).Decode(&s.lastPrompt); err != nil {
			s.t.Errorf("bad generate body: %v", err)
		}
		resp := map[string]any{"code": s.startCode, "msg": s.startMsg}
		if s.startCode == 200 {
			resp["data"] = map[string]string{"taskId": s.taskID}
		}
		_ = json.NewEncoder(w).Encode(resp)
	})
	mux.HandleFunc("GET /api/v1/generate/record-info", func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("taskId"); got != s.taskID {
			s.t.Errorf("polled wrong task, got %q", got)
		}
		idx := s.polls
		if idx >= len(s.records) {
			idx = len(s.records) - 1
		}
		s.polls++
		_, _ = w.Write([]byte(s.records[idx]))
	})
	return mux
}

func TestGenerateSuccess(t *testing.T) {
	stub := &stubAPI{
		t:         t,
		startCode: 200,
		taskID:    "task-42",
		records: []string{
			`{"code":200,"msg":"ok","data":{"status":"PENDING"}}`,
			`{"code":200,"msg":"ok","data":{"status":"SUCCESS","response":{"sunoData":[
				{"id":"a","audioUrl":"https://cdn/a.mp3","streamAudioUrl":"https://cdn/a-s.mp3","imageUrl":"https://cdn/a.jpg","title":"Midnight Train","tags":"rock, party","duration":183.4},
				{"id":"b","audioUrl":"https://cdn/b.mp3","title":"Midnight Train (alt)","duration":178.1}
			]}}}`,
		},
	}
	srv := httptest.NewServer(stub.handler())
	defer srv.Close()

	c := NewClientForTest(srv.URL)
	tracks, apiErr := c.Generate(context.Background(), Params{
		Title:  "Midnight Train",
		Genre:  "rock",
		Theme:  "party",
		Lyrics: "headlights on the rails",
	})
	if apiErr != nil {
		t.Fatalf("generate failed: %v", apiErr)
	}
	if len(tracks) != 2 {
		t.Fatalf("expected 2 tracks, got %d", len(tracks))
	}
	if tracks[0].AudioURL != "https://cdn/a.mp3" || tracks[0].Duration != 183.4 {
		t.Fatalf("track not translated: %+v", tracks[0])
	}
	if stub.polls < 2 {
		t.Fatalf("expected the client to keep polling past PENDING, polled %d times", stub.polls)
	}
	if style := stub.lastPrompt["style"]; style != "rock, party" {
		t.Fatalf("style not assembled from genre and theme: %v", style)
	}
	if model := stub.lastPrompt["model"]; model != "V4_5" {
		t.Fatalf("unexpected model: %v", model)
	}
}

func TestGenerateStartRejected(t *testing.T) {
	stub := &stubAPI{t: t, startCode: 429, startMsg: "insufficient credits"}
	srv := httptest.NewServer(stub.handler())
	defer srv.Close()

	_, apiErr := NewClientForTest(srv.URL).Generate(context.Background(), Params{Title: "x"})
	if apiErr == nil || apiErr.Code != 429 {
		t.Fatalf("expected API code 429, got %v", apiErr)
	}
	if stub.polls != 0 {
		t.Fatalf("client polled a task that never started")
	}
}

func TestGenerateTaskFailure(t *testing.T) {
	stub := &stubAPI{
		t:         t,
		startCode: 200,
		taskID:    "task-7",
		records:   []string{`{"code":200,"msg":"ok","data":{"status":"SENSITIVE_WORD_ERROR","errorMessage":"lyrics rejected"}}`},
	}
	srv := httptest.NewServer(stub.handler())
	defer srv.Close()

	_, apiErr := NewClientForTest(srv.URL).Generate(context.Background(), Params{Title: "x"})
	if apiErr == nil || apiErr.Code != 500 || apiErr.Message != "lyrics rejected" {
		t.Fatalf("expected task failure with API message, got %v", apiErr)
	}
}

func TestGenerateTimesOut(t *testing.T) {
	stub := &stubAPI{
		t:         t,
		startCode: 200,
		taskID:    "task-9",
		records:   []string{`{"code":200,"msg":"ok","data":{"status":"PENDING"}}`},
	}
	srv := httptest.NewServer(stub.handler())
	defer srv.Close()

	_, apiErr := NewClientForTest(srv.URL).Generate(context.Background(), Params{Title: "x"})
	if apiErr == nil || apiErr.Code != 408 {
		t.Fatalf("expected timeout error, got %v", apiErr)
	}
}

func TestGenerateHonoursContext(t *testing.T) {
	started := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"code":200,"msg":"ok","data":{"taskId":"task-3"}}`))
		close(started)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// A poll interval far beyond the test deadline parks Generate between
	// polls, so cancellation is the only way out.
	c := NewClientForTest(srv.URL)
	c.pollInterval = time.Hour

	done := make(chan *APIError, 1)
	go func() {
		_, apiErr := c.Generate(ctx, Params{Title: "x"})
		done <- apiErr
	}()
	<-started
	time.Sleep(50 * time.Millisecond) // let the client finish reading the start response
	cancel()
	apiErr := <-done
	if apiErr == nil || apiErr.Code != 499 {
		t.Fatalf("expected cancellation error, got %v", apiErr)
	}
}
