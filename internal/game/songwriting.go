package game

import "math"

// equipmentBonus is the mean quality across all owned equipment, 0 when the
// band owns nothing. It feeds both songwriting and concert scoring.
func equipmentBonus(s *GameState) float64 {
	if len(s.Equipment) == 0 {
		return 0
	}
	total := 0
	for _, e := range s.Equipment {
		total += e.Quality
	}
	return float64(total) / float64(len(s.Equipment))
}

func averageStats(musicians []Character) (skill, charisma, creativity float64) {
	if len(musicians) == 0 {
		return 0, 0, 0
	}
	for _, m := range musicians {
		skill += float64(m.Stats.Skill)
		charisma += float64(m.Stats.Charisma)
		creativity += float64(m.Stats.Creativity)
	}
	n := float64(len(musicians))
	return skill / n, charisma / n, creativity / n
}

// Rehearse drills the musicians: skill up, stamina down, rent for the room.
func (e *Engine) Rehearse() Outcome {
	s, running := e.state()
	if !running {
		return fail("no game in progress")
	}
	if s.Money < RehearsalCost {
		return fail("Not enough money! Rehearsal costs $%d.", RehearsalCost)
	}
	next := s.Clone()
	next.Money -= RehearsalCost
	for i := range next.Members {
		if next.Members[i].Role != RoleMusician {
			continue
		}
		stats := &next.Members[i].Stats
		stats.Skill = clampStat(stats.Skill + RehearsalSkillGain + e.rng.Intn(2))
		stats.Stamina = clampStat(stats.Stamina - RehearsalStaminaCost)
	}
	e.store.Commit(next)
	return ok("Rehearsal done! Skills sharpened. -$%d", RehearsalCost)
}

// WriteSong composes a new track. Quality blends band skill, creativity and
// gear, plus a noise term, floored at the minimum so even a bad day produces
// something playable.
func (e *Engine) WriteSong(name string, genre MusicGenre, theme SongTheme) Outcome {
	s, running := e.state()
	if !running {
		return fail("no game in progress")
	}
	musicians := s.Musicians()
	avgSkill, _, avgCreativity := averageStats(musicians)
	eqBonus := equipmentBonus(s)

	raw := avgSkill*SongSkillWeight +
		avgCreativity*SongCreativityWeight +
		eqBonus*SongEquipmentWeight +
		uniform(e.rng, -5, 10)
	quality := clampInt(int(math.Floor(raw)), MinSongQuality, 100)

	song := Song{
		ID:      e.nextID("song"),
		Name:    name,
		Genre:   genre,
		Theme:   theme,
		Quality: quality,
	}
	next := s.Clone()
	next.Songs = append(next.Songs, song)
	e.store.Commit(next)
	return ok("Song %q written! Quality: %d", name, quality)
}
