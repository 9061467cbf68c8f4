package game

import "testing"

func TestIncreaseSongQualityClampsAt100(t *testing.T) {
	e, ms := startedEngine(t, nil)
	addSongs(t, e, 1)
	id := ms.Get().Songs[0].ID

	next := ms.Get().Clone()
	next.Songs[0].Quality = 95
	ms.Commit(next)

	out := e.IncreaseSongQuality(id, SongGenerationGain)
	if !out.OK {
		t.Fatalf("increase failed: %s", out.Message)
	}
	if got := ms.Get().Songs[0].Quality; got != 100 {
		t.Fatalf("expected quality clamped to 100, got %d", got)
	}

	if out := e.IncreaseSongQuality("ghost", 10); out.OK {
		t.Fatal("unknown song id should fail")
	}
}

func TestAddTracksStoresMetadata(t *testing.T) {
	e, ms := startedEngine(t, nil)
	addSongs(t, e, 1)
	id := ms.Get().Songs[0].ID

	tracks := []Track{
		{ID: "t1", AudioURL: "https://cdn.example/a.mp3", Title: "Demo", Duration: 182.5},
		{ID: "t2", AudioURL: "https://cdn.example/b.mp3", Title: "Demo (alt)", Duration: 179.0},
	}
	out := e.AddTracks(id, tracks)
	if !out.OK {
		t.Fatalf("add tracks failed: %s", out.Message)
	}
	s := ms.Get()
	if len(s.Tracks) != 2 {
		t.Fatalf("expected 2 stored tracks, got %d", len(s.Tracks))
	}
	for _, tr := range s.Tracks {
		if tr.SongID != id {
			t.Fatalf("track not linked to song: %+v", tr)
		}
	}

	if out := e.AddTracks("ghost", tracks); out.OK {
		t.Fatal("unknown song id should fail")
	}
}
