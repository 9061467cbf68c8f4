package game

// Alternative income: no venue, modest pay, and the week still ticks over.

// PerformStreetGig busks for tips. Needs at least one musician on the street.
func (e *Engine) PerformStreetGig() Outcome {
	s, running := e.state()
	if !running {
		return fail("no game in progress")
	}
	if len(s.Musicians()) < 1 {
		return fail("Nobody to play! Hire a musician first.")
	}
	pay := StreetGigBasePay + s.Fame/10*StreetGigFamePay + e.rng.Intn(20)
	return e.applySideGig(s, pay, StreetGigFameGain,
		"Street gig! Earned $%d in tips. Fame +%d.")
}

// DoRadioShow plays a session on local radio.
func (e *Engine) DoRadioShow() Outcome {
	s, running := e.state()
	if !running {
		return fail("no game in progress")
	}
	pay := RadioShowBasePay + s.Fame/10*RadioShowFamePay
	return e.applySideGig(s, pay, RadioShowFameGain,
		"Radio session aired! Earned $%d. Fame +%d.")
}

// DoInterview talks to the music press.
func (e *Engine) DoInterview() Outcome {
	s, running := e.state()
	if !running {
		return fail("no game in progress")
	}
	pay := InterviewBasePay + s.Fame/10*InterviewFamePay
	return e.applySideGig(s, pay, InterviewFameGain,
		"Interview published! Earned $%d. Fame +%d.")
}

func (e *Engine) applySideGig(s *GameState, pay, fameGain int, format string) Outcome {
	next := s.Clone()
	next.Money += pay
	next.Fame = clampInt(next.Fame+fameGain, 0, MaxFame)
	e.settleWeek(next, WeeklyStaminaRegen)
	e.store.Commit(next)
	return ok(format, pay, fameGain)
}
