package game

// StartNewGame resets the store to a fresh band: the player alone, the free
// starter gear, and enough cash to record a demo or book a rehearsal room.
func (e *Engine) StartNewGame(playerName, bandName string, instrument InstrumentType, avatarSeed int) Outcome {
	player := Character{
		ID:         "player",
		Name:       playerName,
		Instrument: instrument,
		Stats:      CharacterStats{Skill: 20, Charisma: 25, Creativity: 20, Stamina: 30},
		AvatarSeed: avatarSeed,
		Salary:     0,
		IsPlayer:   true,
		Role:       RoleMusician,
		Contract:   ContractPro,
	}
	state := &GameState{
		PlayerName: playerName,
		BandName:   bandName,
		Members:    []Character{player},
		Crew:       []CrewMember{},
		Money:      InitialMoney,
		Week:       1,
		Equipment:  e.catalog.StarterEquipment(),
		Songs:      []Song{},
		Albums:     []Album{},
		Screen:     ScreenHQ,
	}
	e.store.Commit(state)
	return ok("%s formed! Week 1 begins with $%d in the kitty.", bandName, InitialMoney)
}

// SetScreen records which UI screen is open. Persisted so a reload lands the
// player where they left off; no simulation effect.
func (e *Engine) SetScreen(screen GameScreen) {
	s, running := e.state()
	if !running {
		return
	}
	next := s.Clone()
	next.Screen = screen
	e.store.Commit(next)
}

// GenerateHirePool rolls candidate musicians. Pure generator: nothing is
// committed until one of them is hired.
func (e *Engine) GenerateHirePool(count int) []Character {
	pool := make([]Character, 0, count)
	instruments := AllInstruments()
	for i := 0; i < count; i++ {
		inst := instruments[e.rng.Intn(len(instruments))]
		names := e.catalog.MusicianNames[inst]
		skillBase := 15 + e.rng.Intn(40)
		pool = append(pool, Character{
			ID:         e.nextID("hire"),
			Name:       names[e.rng.Intn(len(names))],
			Instrument: inst,
			Stats: CharacterStats{
				Skill:      clampStat(skillBase + e.rng.Intn(20)),
				Charisma:   10 + e.rng.Intn(40),
				Creativity: 10 + e.rng.Intn(40),
				Stamina:    20 + e.rng.Intn(30),
			},
			AvatarSeed: e.rng.Intn(10000),
			Salary:     skillBase*3 + e.rng.Intn(50),
			Role:       RoleMusician,
			Contract:   ContractPro,
		})
	}
	return pool
}

// GenerateFriendPool rolls musicians willing to play for a cut of the door
// instead of a salary. They are rougher around the edges than pros.
func (e *Engine) GenerateFriendPool(count int) []Character {
	pool := e.GenerateHirePool(count)
	for i := range pool {
		pool[i].ID = e.nextID("friend")
		pool[i].Contract = ContractFriend
		pool[i].Salary = 0
		pool[i].Stats.Skill = clampStat(pool[i].Stats.Skill - 5)
		pool[i].Stats.Charisma = clampStat(pool[i].Stats.Charisma - 5)
	}
	return pool
}

// GenerateCrewPool rolls non-performing staff for one role.
func (e *Engine) GenerateCrewPool(role Role, count int) []CrewMember {
	names := e.catalog.CrewNames[role]
	if len(names) == 0 {
		return nil
	}
	base := crewBaseSalary(role)
	pool := make([]CrewMember, 0, count)
	for i := 0; i < count; i++ {
		pool = append(pool, CrewMember{
			ID:     e.nextID("crew"),
			Name:   names[e.rng.Intn(len(names))],
			Role:   role,
			Salary: base + e.rng.Intn(base/2+1),
		})
	}
	return pool
}

func crewBaseSalary(role Role) int {
	switch role {
	case RoleManager:
		return 120
	case RoleSoundEngineer:
		return 90
	default:
		return 60
	}
}

func (e *Engine) HireMember(c Character) Outcome {
	s, running := e.state()
	if !running {
		return fail("no game in progress")
	}
	for _, m := range s.Members {
		if m.ID == c.ID {
			return fail("%s is already in the band.", c.Name)
		}
	}
	if c.Role == "" {
		c.Role = RoleMusician
	}
	if c.Contract == "" {
		c.Contract = ContractPro
	}
	next := s.Clone()
	next.Members = append(next.Members, c)
	e.store.Commit(next)
	return ok("%s joins on %s.", c.Name, c.Instrument)
}

func (e *Engine) FireMember(id string) Outcome {
	s, running := e.state()
	if !running {
		return fail("no game in progress")
	}
	for i, m := range s.Members {
		if m.ID != id {
			continue
		}
		if m.IsPlayer {
			return fail("You can't fire yourself.")
		}
		next := s.Clone()
		next.Members = append(next.Members[:i], next.Members[i+1:]...)
		e.store.Commit(next)
		return ok("%s leaves the band.", m.Name)
	}
	return fail("No such band member.")
}

func (e *Engine) HireCrew(c CrewMember) Outcome {
	s, running := e.state()
	if !running {
		return fail("no game in progress")
	}
	for _, existing := range s.Crew {
		if existing.ID == c.ID {
			return fail("%s is already on the crew.", c.Name)
		}
	}
	next := s.Clone()
	next.Crew = append(next.Crew, c)
	e.store.Commit(next)
	return ok("%s hired as %s.", c.Name, c.Role)
}

func (e *Engine) FireCrew(id string) Outcome {
	s, running := e.state()
	if !running {
		return fail("no game in progress")
	}
	for i, c := range s.Crew {
		if c.ID != id {
			continue
		}
		next := s.Clone()
		next.Crew = append(next.Crew[:i], next.Crew[i+1:]...)
		e.store.Commit(next)
		return ok("%s is off the crew.", c.Name)
	}
	return fail("No such crew member.")
}
