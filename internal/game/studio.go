package game

import "math"

// RecordSong pays the studio and marks a song as recorded.
func (e *Engine) RecordSong(songID string) Outcome {
	s, running := e.state()
	if !running {
		return fail("no game in progress")
	}
	idx, found := s.SongByID(songID)
	if !found {
		return fail("No such song.")
	}
	if s.Songs[idx].Recorded {
		return fail("%q is already recorded.", s.Songs[idx].Name)
	}
	if s.Money < RecordingCost {
		return fail("Not enough money! Studio time costs $%d.", RecordingCost)
	}
	next := s.Clone()
	next.Money -= RecordingCost
	next.Songs[idx].Recorded = true
	e.store.Commit(next)
	return ok("%q recorded! -$%d", next.Songs[idx].Name, RecordingCost)
}

// ReleaseAlbum cuts an album from at least three recorded songs. Fame and
// fans land immediately; sales trickle in with the weekly settlement.
func (e *Engine) ReleaseAlbum(name string, songIDs []string) Outcome {
	s, running := e.state()
	if !running {
		return fail("no game in progress")
	}

	picked := make([]Song, 0, len(songIDs))
	ids := make([]string, 0, len(songIDs))
	for _, id := range songIDs {
		idx, found := s.SongByID(id)
		if !found || !s.Songs[idx].Recorded {
			continue
		}
		picked = append(picked, s.Songs[idx])
		ids = append(ids, id)
	}
	if len(picked) < 3 {
		return fail("An album needs at least 3 recorded songs!")
	}

	totalQuality := 0
	for _, song := range picked {
		totalQuality += song.Quality
	}
	avgQuality := float64(totalQuality) / float64(len(picked))
	quality := int(math.Floor(avgQuality * AlbumRecordingBonus))

	fameGain := int(math.Floor(FameFromAlbum * float64(quality) / 50))

	next := s.Clone()
	next.Albums = append(next.Albums, Album{
		ID:          e.nextID("album"),
		Name:        name,
		Songs:       ids,
		Quality:     quality,
		ReleaseWeek: s.Week,
	})
	next.Fame = clampInt(next.Fame+fameGain, 0, MaxFame)
	next.Fans += fameGain * FansPerFame
	e.store.Commit(next)
	return ok("Album %q released! Quality: %d. Fame +%d", name, quality, fameGain)
}
