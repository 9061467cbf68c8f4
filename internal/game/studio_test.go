package game

import "testing"

func recordedSongs(t *testing.T, e *Engine, ms *memStore, count int) []string {
	t.Helper()
	addSongs(t, e, count)
	next := ms.Get().Clone()
	next.Money = 100000
	ids := make([]string, 0, count)
	for i := range next.Songs {
		next.Songs[i].Recorded = true
		ids = append(ids, next.Songs[i].ID)
	}
	ms.Commit(next)
	return ids
}

func TestRecordSongDeductsCost(t *testing.T) {
	e, ms := startedEngine(t, nil)
	addSongs(t, e, 1)
	before := ms.Get().Money
	songID := ms.Get().Songs[0].ID

	out := e.RecordSong(songID)
	if !out.OK {
		t.Fatalf("record failed: %s", out.Message)
	}
	s := ms.Get()
	if !s.Songs[0].Recorded {
		t.Fatal("song should be recorded")
	}
	if s.Money != before-RecordingCost {
		t.Fatalf("expected money %d, got %d", before-RecordingCost, s.Money)
	}
}

func TestRecordSongFailures(t *testing.T) {
	e, ms := startedEngine(t, nil)
	addSongs(t, e, 1)
	songID := ms.Get().Songs[0].ID

	if out := e.RecordSong("nope"); out.OK {
		t.Fatal("expected unknown song id to fail")
	}

	next := ms.Get().Clone()
	next.Money = RecordingCost - 1
	ms.Commit(next)
	before := ms.commits
	if out := e.RecordSong(songID); out.OK {
		t.Fatal("expected record to fail on low funds")
	}
	if ms.commits != before {
		t.Fatal("failed record must not commit")
	}

	next = ms.Get().Clone()
	next.Money = RecordingCost * 2
	ms.Commit(next)
	if out := e.RecordSong(songID); !out.OK {
		t.Fatalf("record failed: %s", out.Message)
	}
	if out := e.RecordSong(songID); out.OK {
		t.Fatal("expected re-recording to fail")
	}
}

func TestReleaseAlbumNeedsThreeRecordedSongs(t *testing.T) {
	e, ms := startedEngine(t, nil)
	ids := recordedSongs(t, e, ms, 2)
	before := ms.Get()
	commits := ms.commits

	out := e.ReleaseAlbum("Too Early", ids)
	if out.OK {
		t.Fatal("expected album with 2 recorded songs to fail")
	}
	if ms.commits != commits {
		t.Fatal("failed release must not commit")
	}
	s := ms.Get()
	if len(s.Albums) != 0 || s.Money != before.Money || s.Fame != before.Fame {
		t.Fatal("failed release must leave state unchanged")
	}
}

func TestReleaseAlbumIgnoresUnrecordedAndUnknownIDs(t *testing.T) {
	e, ms := startedEngine(t, nil)
	ids := recordedSongs(t, e, ms, 3)
	addSongs(t, e, 1) // unrecorded
	unrecorded := ms.Get().Songs[3].ID

	out := e.ReleaseAlbum("Debut", append([]string{"ghost", unrecorded}, ids...))
	if !out.OK {
		t.Fatalf("release failed: %s", out.Message)
	}
	album := ms.Get().Albums[0]
	if len(album.Songs) != 3 {
		t.Fatalf("expected album to keep only the 3 recorded ids, got %d", len(album.Songs))
	}
}

func TestReleaseAlbumGrantsFameAndFans(t *testing.T) {
	e, ms := startedEngine(t, nil)
	ids := recordedSongs(t, e, ms, 3)
	before := ms.Get()

	out := e.ReleaseAlbum("Debut", ids)
	if !out.OK {
		t.Fatalf("release failed: %s", out.Message)
	}
	s := ms.Get()
	album := s.Albums[0]

	total := 0
	for _, id := range ids {
		idx, _ := s.SongByID(id)
		total += s.Songs[idx].Quality
	}
	wantQuality := int(float64(total) / 3 * AlbumRecordingBonus)
	if album.Quality != wantQuality {
		t.Fatalf("expected album quality %d, got %d", wantQuality, album.Quality)
	}
	wantFame := FameFromAlbum * album.Quality / 50
	if s.Fame != before.Fame+wantFame {
		t.Fatalf("expected fame %d, got %d", before.Fame+wantFame, s.Fame)
	}
	if s.Fans != before.Fans+wantFame*FansPerFame {
		t.Fatalf("expected fans %d, got %d", before.Fans+wantFame*FansPerFame, s.Fans)
	}
	if album.ReleaseWeek != before.Week {
		t.Fatalf("expected release week %d, got %d", before.Week, album.ReleaseWeek)
	}
	if album.SalesTotal != 0 {
		t.Fatal("new album starts with zero sales")
	}
}
