package game

// Entry points for the external music-generation collaborator. The engine
// treats its output as already-resolved values; network concerns live in the
// songgen client.

// AddTracks stores generated track metadata for playback.
func (e *Engine) AddTracks(songID string, tracks []Track) Outcome {
	s, running := e.state()
	if !running {
		return fail("no game in progress")
	}
	if _, found := s.SongByID(songID); !found {
		return fail("No such song.")
	}
	next := s.Clone()
	for _, t := range tracks {
		t.SongID = songID
		next.Tracks = append(next.Tracks, t)
	}
	e.store.Commit(next)
	return ok("Stored %d generated track(s).", len(tracks))
}

// IncreaseSongQuality applies an external quality bonus, clamped to 100.
func (e *Engine) IncreaseSongQuality(songID string, amount int) Outcome {
	s, running := e.state()
	if !running {
		return fail("no game in progress")
	}
	idx, found := s.SongByID(songID)
	if !found {
		return fail("No such song.")
	}
	next := s.Clone()
	next.Songs[idx].Quality = clampInt(next.Songs[idx].Quality+amount, MinSongQuality, 100)
	e.store.Commit(next)
	return ok("%q quality is now %d.", next.Songs[idx].Name, next.Songs[idx].Quality)
}
