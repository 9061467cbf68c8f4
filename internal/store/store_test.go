package store

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/appengine-ltd/band-it/internal/game"
)

func sampleState() *game.GameState {
	return &game.GameState{
		PlayerName: "Robin",
		BandName:   "The Commits",
		Members: []game.Character{
			{ID: "char-1", Name: "Robin", IsPlayer: true, Role: game.RoleMusician, Contract: game.ContractPro, Instrument: game.InstrumentGuitar, Stats: game.CharacterStats{Skill: 40, Stamina: 80}},
			{ID: "char-2", Name: "Sam", Role: game.RoleMusician, Contract: game.ContractFriend, Instrument: game.InstrumentDrums, Stats: game.CharacterStats{Skill: 25, Stamina: 70}},
		},
		Crew: []game.CrewMember{
			{Name: "Alex", Role: game.RoleManager, Salary: 120},
		},
		Money: 640,
		Fame:  12,
		Fans:  600,
		Week:  7,
		Songs: []game.Song{
			{ID: "song-1", Name: "First Light", Quality: 55, Genre: game.GenreRock, Theme: game.ThemeLove, Recorded: true},
		},
		Albums: []game.Album{
			{ID: "album-1", Name: "First Light", Quality: 60, Songs: []string{"song-1"}, ReleaseWeek: 5},
		},
		Tracks: []game.Track{
			{ID: "t1", SongID: "song-1", AudioURL: "https://cdn.example/t1.mp3", Title: "First Light", Duration: 190},
		},
		Screen: game.ScreenHQ,
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()

	src := New(dir)
	src.Commit(sampleState())

	dst := New(dir)
	if !dst.Load() {
		t.Fatal("load failed on a freshly written slot")
	}
	if !reflect.DeepEqual(src.Get(), dst.Get()) {
		t.Fatalf("round trip mismatch:\nsaved  %+v\nloaded %+v", src.Get(), dst.Get())
	}
}

func TestLoadMissingSlot(t *testing.T) {
	s := New(t.TempDir())
	if s.Load() {
		t.Fatal("load reported success with no save on disk")
	}
	if s.Get() != nil {
		t.Fatal("load touched memory on a missing slot")
	}
}

func TestLoadMalformedSlot(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, saveFileName), []byte("{not json"), 0o600); err != nil {
		t.Fatal(err)
	}
	s := New(dir)
	if s.Load() {
		t.Fatal("load reported success on malformed payload")
	}
	if s.Get() != nil {
		t.Fatal("load touched memory on malformed payload")
	}
}

func TestLoadMigratesLegacySave(t *testing.T) {
	// Oldest saves were the bare state with no version envelope and predate
	// crew, roles and contract tiers.
	legacy := []byte(`{
  "player_name": "Robin",
  "band_name": "The Commits",
  "members": [
    {"name": "Robin", "is_player": true, "instrument": "guitar", "stats": {"skill": 40}},
    {"name": "Sam", "instrument": "drums", "stats": {"skill": 25}}
  ],
  "money": 500,
  "week": 3
}`)
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, saveFileName), legacy, 0o600); err != nil {
		t.Fatal(err)
	}
	s := New(dir)
	if !s.Load() {
		t.Fatal("legacy save failed to load")
	}
	state := s.Get()
	if state.Crew == nil {
		t.Fatal("crew not defaulted to an empty slice")
	}
	for _, m := range state.Members {
		if m.Role != game.RoleMusician {
			t.Fatalf("member %q role not defaulted, got %q", m.Name, m.Role)
		}
		if m.Contract != game.ContractPro {
			t.Fatalf("member %q contract not defaulted, got %q", m.Name, m.Contract)
		}
	}
	if state.Screen != game.ScreenHQ {
		t.Fatalf("screen not defaulted, got %q", state.Screen)
	}
}

func TestDeleteSaveLeavesMemory(t *testing.T) {
	dir := t.TempDir()
	s := New(dir)
	s.Commit(sampleState())

	s.DeleteSave()
	if _, err := os.Stat(filepath.Join(dir, saveFileName)); !os.IsNotExist(err) {
		t.Fatalf("save file still present: %v", err)
	}
	if s.Get() == nil {
		t.Fatal("delete wiped the in-memory state")
	}
}

func TestSubscribeFiresOnCommitAndLoad(t *testing.T) {
	dir := t.TempDir()
	s := New(dir)

	calls := 0
	remove := s.Subscribe(func() { calls++ })
	s.Commit(sampleState())
	if calls != 1 {
		t.Fatalf("expected 1 notification after commit, got %d", calls)
	}

	other := New(dir)
	other.Subscribe(func() { calls++ })
	if !other.Load() {
		t.Fatal("load failed")
	}
	if calls != 2 {
		t.Fatalf("expected notification on load, got %d calls", calls)
	}

	remove()
	s.Commit(sampleState())
	if calls != 2 {
		t.Fatalf("removed listener still fired, got %d calls", calls)
	}
}
