// Package server exposes the simulation to the browser UI: command endpoints
// over HTTP, state pushes over a websocket. Every mutation is serialized
// behind a single lock, so engine transitions stay single-writer.
package server

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"sync"

	"github.com/appengine-ltd/band-it/internal/game"
	"github.com/appengine-ltd/band-it/internal/songgen"
	"github.com/appengine-ltd/band-it/internal/store"
)

type Server struct {
	cfg     Config
	engine  *game.Engine
	store   *store.Store
	hub     *Hub
	songgen *songgen.Client

	mu sync.Mutex
}

func New(cfg Config) (*Server, error) {
	catalog, err := game.LoadCatalog()
	if err != nil {
		return nil, err
	}
	st := store.New(cfg.SaveDir)
	s := &Server{
		cfg:    cfg,
		store:  st,
		engine: game.NewEngine(catalog, st, game.NewRand(cfg.Seed)),
		hub:    NewHub(),
	}
	if cfg.SongAPIKey != "" {
		s.songgen = songgen.NewClient(cfg.SongAPIKey)
	}

	// Push a full snapshot to every browser after each committed mutation.
	// Save has already completed by the time this runs.
	st.Subscribe(func() {
		data, err := json.Marshal(Message{Type: "state", Payload: st.Get()})
		if err != nil {
			log.Printf("marshal state: %v", err)
			return
		}
		select {
		case s.hub.broadcast <- data:
		default:
		}
	})
	return s, nil
}

func (s *Server) ListenAndServe() error {
	go s.hub.Run()

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) { serveWs(s.hub, w, r) })

	mux.HandleFunc("GET /api/state", s.handleState)
	mux.HandleFunc("GET /api/catalog", s.handleCatalog)
	mux.HandleFunc("GET /api/hire-pool", s.handleHirePool)
	mux.HandleFunc("GET /api/crew-pool", s.handleCrewPool)
	mux.HandleFunc("GET /api/eligibility", s.handleEligibility)

	mux.HandleFunc("POST /api/new-game", s.handleNewGame)
	mux.HandleFunc("POST /api/screen", s.handleScreen)
	mux.HandleFunc("POST /api/hire", s.handleHire)
	mux.HandleFunc("POST /api/fire", s.handleFire)
	mux.HandleFunc("POST /api/hire-crew", s.handleHireCrew)
	mux.HandleFunc("POST /api/fire-crew", s.handleFireCrew)
	mux.HandleFunc("POST /api/rehearse", s.outcomeHandler(func() game.Outcome { return s.engine.Rehearse() }))
	mux.HandleFunc("POST /api/write-song", s.handleWriteSong)
	mux.HandleFunc("POST /api/record-song", s.handleRecordSong)
	mux.HandleFunc("POST /api/release-album", s.handleReleaseAlbum)
	mux.HandleFunc("POST /api/buy", s.handleBuy)
	mux.HandleFunc("POST /api/concert", s.handleConcert)
	mux.HandleFunc("POST /api/street-gig", s.outcomeHandler(func() game.Outcome { return s.engine.PerformStreetGig() }))
	mux.HandleFunc("POST /api/radio", s.outcomeHandler(func() game.Outcome { return s.engine.DoRadioShow() }))
	mux.HandleFunc("POST /api/interview", s.outcomeHandler(func() game.Outcome { return s.engine.DoInterview() }))
	mux.HandleFunc("POST /api/advance-week", s.outcomeHandler(func() game.Outcome { return s.engine.AdvanceWeek() }))
	mux.HandleFunc("POST /api/generate-track", s.handleGenerateTrack)
	mux.HandleFunc("POST /api/load", s.handleLoad)
	mux.HandleFunc("POST /api/delete-save", s.handleDeleteSave)

	log.Printf("band-it server listening on %s", s.cfg.Addr)
	return http.ListenAndServe(s.cfg.Addr, mux)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("write response: %v", err)
	}
}

func decode[T any](w http.ResponseWriter, r *http.Request) (T, bool) {
	var req T
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return req, false
	}
	return req, true
}

type outcomeResponse struct {
	OK      bool   `json:"ok"`
	Message string `json:"message"`
}

func (s *Server) outcome(w http.ResponseWriter, o game.Outcome) {
	writeJSON(w, outcomeResponse{OK: o.OK, Message: o.Message})
}

func (s *Server) outcomeHandler(action func() game.Outcome) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		o := action()
		s.mu.Unlock()
		s.outcome(w, o)
	}
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, s.store.Get())
}

func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	c := s.engine.Catalog()
	writeJSON(w, map[string]any{
		"equipment": c.Equipment,
		"venues":    c.Venues,
		"formats":   c.Formats,
	})
}

func queryCount(r *http.Request, fallback int) int {
	if raw := r.URL.Query().Get("count"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 && n <= 12 {
			return n
		}
	}
	return fallback
}

func (s *Server) handleHirePool(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	count := queryCount(r, 4)
	if r.URL.Query().Get("kind") == "friend" {
		writeJSON(w, s.engine.GenerateFriendPool(count))
		return
	}
	writeJSON(w, s.engine.GenerateHirePool(count))
}

func (s *Server) handleCrewPool(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	role := game.Role(r.URL.Query().Get("role"))
	switch role {
	case game.RoleManager, game.RoleSoundEngineer, game.RoleTech:
	default:
		http.Error(w, "unknown crew role", http.StatusBadRequest)
		return
	}
	writeJSON(w, s.engine.GenerateCrewPool(role, queryCount(r, 3)))
}

func (s *Server) handleEligibility(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	venueID := r.URL.Query().Get("venue")
	formatID := r.URL.Query().Get("format")
	var el game.Eligibility
	if formatID == "" {
		el = s.engine.VenueRequirementsMet(venueID)
	} else {
		el = s.engine.CanPlayFormat(venueID, formatID)
	}
	writeJSON(w, map[string]any{"ok": el.OK, "reason": el.Reason})
}

func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	req, ok := decode[struct {
		PlayerName string              `json:"player_name"`
		BandName   string              `json:"band_name"`
		Instrument game.InstrumentType `json:"instrument"`
		AvatarSeed int                 `json:"avatar_seed"`
	}](w, r)
	if !ok {
		return
	}
	s.mu.Lock()
	o := s.engine.StartNewGame(req.PlayerName, req.BandName, req.Instrument, req.AvatarSeed)
	s.mu.Unlock()
	s.outcome(w, o)
}

func (s *Server) handleScreen(w http.ResponseWriter, r *http.Request) {
	req, ok := decode[struct {
		Screen game.GameScreen `json:"screen"`
	}](w, r)
	if !ok {
		return
	}
	s.mu.Lock()
	s.engine.SetScreen(req.Screen)
	s.mu.Unlock()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleHire(w http.ResponseWriter, r *http.Request) {
	req, ok := decode[game.Character](w, r)
	if !ok {
		return
	}
	s.mu.Lock()
	o := s.engine.HireMember(req)
	s.mu.Unlock()
	s.outcome(w, o)
}

func (s *Server) handleFire(w http.ResponseWriter, r *http.Request) {
	req, ok := decode[struct {
		ID string `json:"id"`
	}](w, r)
	if !ok {
		return
	}
	s.mu.Lock()
	o := s.engine.FireMember(req.ID)
	s.mu.Unlock()
	s.outcome(w, o)
}

func (s *Server) handleHireCrew(w http.ResponseWriter, r *http.Request) {
	req, ok := decode[game.CrewMember](w, r)
	if !ok {
		return
	}
	s.mu.Lock()
	o := s.engine.HireCrew(req)
	s.mu.Unlock()
	s.outcome(w, o)
}

func (s *Server) handleFireCrew(w http.ResponseWriter, r *http.Request) {
	req, ok := decode[struct {
		ID string `json:"id"`
	}](w, r)
	if !ok {
		return
	}
	s.mu.Lock()
	o := s.engine.FireCrew(req.ID)
	s.mu.Unlock()
	s.outcome(w, o)
}

func (s *Server) handleWriteSong(w http.ResponseWriter, r *http.Request) {
	req, ok := decode[struct {
		Name  string          `json:"name"`
		Genre game.MusicGenre `json:"genre"`
		Theme game.SongTheme  `json:"theme"`
	}](w, r)
	if !ok {
		return
	}
	s.mu.Lock()
	o := s.engine.WriteSong(req.Name, req.Genre, req.Theme)
	s.mu.Unlock()
	s.outcome(w, o)
}

func (s *Server) handleRecordSong(w http.ResponseWriter, r *http.Request) {
	req, ok := decode[struct {
		SongID string `json:"song_id"`
	}](w, r)
	if !ok {
		return
	}
	s.mu.Lock()
	o := s.engine.RecordSong(req.SongID)
	s.mu.Unlock()
	s.outcome(w, o)
}

func (s *Server) handleReleaseAlbum(w http.ResponseWriter, r *http.Request) {
	req, ok := decode[struct {
		Name    string   `json:"name"`
		SongIDs []string `json:"song_ids"`
	}](w, r)
	if !ok {
		return
	}
	s.mu.Lock()
	o := s.engine.ReleaseAlbum(req.Name, req.SongIDs)
	s.mu.Unlock()
	s.outcome(w, o)
}

func (s *Server) handleBuy(w http.ResponseWriter, r *http.Request) {
	req, ok := decode[struct {
		ID string `json:"id"`
	}](w, r)
	if !ok {
		return
	}
	s.mu.Lock()
	o := s.engine.BuyEquipment(req.ID)
	s.mu.Unlock()
	s.outcome(w, o)
}

func (s *Server) handleConcert(w http.ResponseWriter, r *http.Request) {
	req, ok := decode[struct {
		VenueID  string `json:"venue_id"`
		FormatID string `json:"format_id"`
	}](w, r)
	if !ok {
		return
	}
	s.mu.Lock()
	result, o := s.engine.PlayConcert(req.VenueID, req.FormatID)
	s.mu.Unlock()
	if !o.OK {
		s.outcome(w, o)
		return
	}
	writeJSON(w, map[string]any{"ok": true, "message": o.Message, "result": result})
}

// handleGenerateTrack runs the external music-generation call and, on
// success, applies the fixed quality bonus and stores the tracks. The engine
// state is untouched when the collaborator fails.
func (s *Server) handleGenerateTrack(w http.ResponseWriter, r *http.Request) {
	if s.songgen == nil {
		http.Error(w, "music generation is not configured", http.StatusServiceUnavailable)
		return
	}
	req, ok := decode[struct {
		SongID string `json:"song_id"`
		Title  string `json:"title"`
		Genre  string `json:"genre"`
		Theme  string `json:"theme"`
		Lyrics string `json:"lyrics"`
	}](w, r)
	if !ok {
		return
	}

	tracks, apiErr := s.songgen.Generate(r.Context(), songgen.Params{
		Title:  req.Title,
		Genre:  req.Genre,
		Theme:  req.Theme,
		Lyrics: req.Lyrics,
	})
	if apiErr != nil {
		writeJSON(w, map[string]any{"ok": false, "code": apiErr.Code, "message": apiErr.Message})
		return
	}

	s.mu.Lock()
	s.engine.IncreaseSongQuality(req.SongID, game.SongGenerationGain)
	o := s.engine.AddTracks(req.SongID, tracks)
	s.mu.Unlock()
	writeJSON(w, map[string]any{"ok": o.OK, "message": o.Message, "tracks": tracks})
}

func (s *Server) handleLoad(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	loaded := s.store.Load()
	s.mu.Unlock()
	writeJSON(w, map[string]bool{"loaded": loaded})
}

func (s *Server) handleDeleteSave(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	s.store.DeleteSave()
	s.mu.Unlock()
	w.WriteHeader(http.StatusNoContent)
}
