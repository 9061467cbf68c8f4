package game

import "math"

// settleWeek closes out a week on an uncommitted snapshot: bills come out
// (clamped at zero, never negative), album royalties come in, musicians get
// some stamina back, and the week counter advances. Callers commit.
func (e *Engine) settleWeek(next *GameState, staminaRegen int) {
	next.Money -= next.WeeklyExpenses()
	if next.Money < 0 {
		next.Money = 0
	}

	for i := range next.Albums {
		album := &next.Albums[i]
		weekSales := int(math.Floor(float64(album.Quality) * float64(next.Fans) / 5000 * uniform(e.rng, 0.75, 1.25)))
		if weekSales < 0 {
			weekSales = 0
		}
		album.SalesTotal += weekSales
		next.Money += weekSales
	}

	for i := range next.Members {
		if next.Members[i].Role != RoleMusician {
			continue
		}
		stats := &next.Members[i].Stats
		stats.Stamina = clampStat(stats.Stamina + staminaRegen)
	}

	next.Week++
}

// AdvanceWeek is the explicit "do nothing this week" action. Unlike the
// settlement that rides along with a concert or side gig, it refuses to run
// when the band can't cover the bills, and it rests everyone harder.
func (e *Engine) AdvanceWeek() Outcome {
	s, running := e.state()
	if !running {
		return fail("no game in progress")
	}
	expenses := s.WeeklyExpenses()
	if s.Money < expenses {
		return fail("Not enough money to cover the week's expenses ($%d needed)!", expenses)
	}
	next := s.Clone()
	e.settleWeek(next, RestStaminaRegen)
	for i := range next.Members {
		if next.Members[i].Role != RoleMusician {
			continue
		}
		stats := &next.Members[i].Stats
		stats.Creativity = clampStat(stats.Creativity + RestCreativityRegen)
	}
	e.store.Commit(next)
	return ok("Week %d. Expenses paid: $%d.", next.Week, expenses)
}
