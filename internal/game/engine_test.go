package game

import "testing"

// memStore is an in-memory Store for engine tests.
type memStore struct {
	state   *GameState
	commits int
}

func (m *memStore) Get() *GameState { return m.state }

func (m *memStore) Commit(s *GameState) {
	m.state = s
	m.commits++
}

// scriptedRand replays fixed sequences so noisy formulas become exact.
type scriptedRand struct {
	ints   []int
	floats []float64
	i, f   int
}

func (r *scriptedRand) Intn(n int) int {
	if len(r.ints) == 0 {
		return 0
	}
	v := r.ints[r.i%len(r.ints)]
	r.i++
	if v >= n {
		v = n - 1
	}
	return v
}

func (r *scriptedRand) Float64() float64 {
	if len(r.floats) == 0 {
		return 0.5
	}
	v := r.floats[r.f%len(r.floats)]
	r.f++
	return v
}

func newTestEngine(t *testing.T, rng Rand) (*Engine, *memStore) {
	t.Helper()
	catalog, err := LoadCatalog()
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	if rng == nil {
		rng = NewRand(1234)
	}
	ms := &memStore{}
	return NewEngine(catalog, ms, rng), ms
}

func startedEngine(t *testing.T, rng Rand) (*Engine, *memStore) {
	t.Helper()
	e, ms := newTestEngine(t, rng)
	out := e.StartNewGame("Alex", "The Test Pilots", InstrumentGuitar, 42)
	if !out.OK {
		t.Fatalf("start new game failed: %s", out.Message)
	}
	return e, ms
}

func addMusician(t *testing.T, e *Engine, name string, contract ContractType, salary int) {
	t.Helper()
	out := e.HireMember(Character{
		ID:         "m-" + name,
		Name:       name,
		Instrument: InstrumentBass,
		Stats:      CharacterStats{Skill: 40, Charisma: 35, Creativity: 30, Stamina: 50},
		Salary:     salary,
		Role:       RoleMusician,
		Contract:   contract,
	})
	if !out.OK {
		t.Fatalf("hire %s: %s", name, out.Message)
	}
}

func addSongs(t *testing.T, e *Engine, count int) {
	t.Helper()
	for i := 0; i < count; i++ {
		if out := e.WriteSong("Demo", GenreRock, ThemeParty); !out.OK {
			t.Fatalf("write song: %s", out.Message)
		}
	}
}

func TestStartNewGameSetsUpBand(t *testing.T) {
	e, ms := startedEngine(t, nil)
	s := ms.Get()
	if s == nil {
		t.Fatal("expected state after StartNewGame")
	}
	if s.Money != InitialMoney {
		t.Fatalf("expected starting money %d, got %d", InitialMoney, s.Money)
	}
	if s.Week != 1 {
		t.Fatalf("expected week 1, got %d", s.Week)
	}
	players := 0
	for _, m := range s.Members {
		if m.IsPlayer {
			players++
		}
	}
	if players != 1 {
		t.Fatalf("expected exactly one player character, got %d", players)
	}
	if len(s.Equipment) == 0 {
		t.Fatal("expected starter equipment")
	}
	for _, eq := range s.Equipment {
		if eq.Price != 0 {
			t.Fatalf("starter gear should be free, got %s at $%d", eq.ID, eq.Price)
		}
	}
	_ = e
}

func TestFireMemberCannotFirePlayer(t *testing.T) {
	e, ms := startedEngine(t, nil)
	before := ms.commits
	if out := e.FireMember("player"); out.OK {
		t.Fatal("expected firing the player to fail")
	}
	if ms.commits != before {
		t.Fatal("failed fire must not commit")
	}
}

func TestGenerateHirePoolIsPure(t *testing.T) {
	e, ms := startedEngine(t, nil)
	before := ms.commits
	pool := e.GenerateHirePool(4)
	if len(pool) != 4 {
		t.Fatalf("expected 4 candidates, got %d", len(pool))
	}
	if ms.commits != before {
		t.Fatal("pool generation must not commit state")
	}
	for _, c := range pool {
		st := c.Stats
		for _, v := range []int{st.Skill, st.Charisma, st.Creativity, st.Stamina} {
			if v < 0 || v > 100 {
				t.Fatalf("candidate stat out of range: %+v", st)
			}
		}
		if c.Contract != ContractPro {
			t.Fatalf("hire pool should be pro contracts, got %s", c.Contract)
		}
	}
}

func TestGenerateFriendPoolHasNoSalary(t *testing.T) {
	e, _ := startedEngine(t, nil)
	for _, c := range e.GenerateFriendPool(3) {
		if c.Contract != ContractFriend {
			t.Fatalf("expected friend contract, got %s", c.Contract)
		}
		if c.Salary != 0 {
			t.Fatalf("friends play for free, got salary %d", c.Salary)
		}
	}
}

// Invariants from the state model: after any sequence of engine calls the
// money floor, fame cap and stat bounds must hold.
func TestInvariantsAcrossActionSequence(t *testing.T) {
	e, ms := startedEngine(t, NewRand(99))
	addMusician(t, e, "Nikki", ContractPro, 60)
	addSongs(t, e, 3)

	check := func(step string) {
		s := ms.Get()
		if s.Money < 0 {
			t.Fatalf("%s: money went negative: %d", step, s.Money)
		}
		if s.Fame < 0 || s.Fame > MaxFame {
			t.Fatalf("%s: fame out of range: %d", step, s.Fame)
		}
		for _, m := range s.Members {
			st := m.Stats
			for _, v := range []int{st.Skill, st.Charisma, st.Creativity, st.Stamina} {
				if v < 0 || v > 100 {
					t.Fatalf("%s: stat out of range for %s: %+v", step, m.Name, st)
				}
			}
		}
	}

	actions := []struct {
		name string
		run  func() Outcome
	}{
		{"rehearse", e.Rehearse},
		{"street", e.PerformStreetGig},
		{"radio", e.DoRadioShow},
		{"interview", e.DoInterview},
		{"street again", e.PerformStreetGig},
	}
	for _, action := range actions {
		action.run()
		check(action.name)
	}
	for i := 0; i < 10; i++ {
		e.PerformStreetGig()
		check("street loop")
	}
}

func TestFansNeverDecrease(t *testing.T) {
	e, ms := startedEngine(t, NewRand(7))
	addMusician(t, e, "Duff", ContractPro, 50)
	addSongs(t, e, 2)

	prev := ms.Get().Fans
	for i := 0; i < 5; i++ {
		e.PlayConcert("garage", "festival_slot")
		if fans := ms.Get().Fans; fans < prev {
			t.Fatalf("fans decreased from %d to %d", prev, fans)
		} else {
			prev = fans
		}
	}
}
