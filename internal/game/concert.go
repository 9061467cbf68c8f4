package game

import "math"

// Narrative event tags. The presentation layer turns these into copy; the
// engine only decides whether they happened.
const (
	EventEcstaticCrowd   = "ecstatic-crowd"
	EventStandingOvation = "standing-ovation"
	EventBoredCrowd      = "bored-crowd"
	EventSoldOut         = "sold-out"
	EventBloggerPresent  = "blogger-presence"
)

// PlayConcert runs a full show: eligibility gates, performance scoring, the
// door split, narrative events, then the weekly settlement. All-or-nothing —
// any gate failure returns before anything is committed.
func (e *Engine) PlayConcert(venueID, formatID string) (*ConcertResult, Outcome) {
	s, running := e.state()
	if !running {
		return nil, fail("no game in progress")
	}
	venue, found := e.catalog.VenueByID(venueID)
	if !found {
		return nil, fail("No such venue.")
	}
	format, found := e.catalog.FormatByID(formatID)
	if !found {
		return nil, fail("No such gig format.")
	}
	if gate := e.CanPlayFormat(venueID, formatID); !gate.OK {
		return nil, fail("%s", gate.Reason)
	}

	musicians := s.Musicians()
	avgSkill, avgCharisma, _ := averageStats(musicians)
	eqBonus := equipmentBonus(s)

	songBonus := 0.0
	if len(s.Songs) > 0 {
		total := 0
		for _, song := range s.Songs {
			total += song.Quality
		}
		songBonus = math.Min(50, float64(total)/float64(len(s.Songs)))
	}

	moodBonus := 0.0
	if s.HasCrewRole(RoleSoundEngineer, RoleTech) {
		moodBonus = CrewMoodBonus
	}

	performance := avgSkill*ConcertSkillWeight +
		avgCharisma*ConcertCharismaWeight +
		eqBonus*ConcertEquipWeight +
		songBonus*ConcertSongWeight +
		moodBonus

	crowdMood := clampInt(int(math.Floor(performance+uniform(e.rng, -10, 10))), 0, 100)

	// Fame relative to the venue's bar lifts attendance independently of mood.
	fillRate := math.Min(1, float64(crowdMood)/100*(0.5+float64(s.Fame)/float64(venue.MinFame+100)*0.5))
	attendance := int(math.Floor(float64(venue.Capacity) * fillRate))

	earnings := int(math.Floor(float64(attendance) * float64(venue.PayPerHead) * format.PayMultiplier))
	fameGained := int(math.Floor(FameFromConcertBase * float64(crowdMood) / 50 * (1 + float64(attendance)/500) * format.FameMultiplier))

	if s.HasCrewRole(RoleManager) {
		earnings = int(math.Floor(float64(earnings) * ManagerPayMultiplier))
		fameGained = int(math.Floor(float64(fameGained) * ManagerFameMultiplier))
	}

	// Friends take their cut of the door, but never so much that the week's
	// bills would push the band below zero.
	friendShare := 0
	if hasFriendContract(s.Members) {
		friendShare = earnings * FriendSharePercent / 100
		affordable := s.Money + earnings - s.WeeklyExpenses()
		if friendShare > affordable {
			friendShare = affordable
		}
		if friendShare < 0 {
			friendShare = 0
		}
	}
	netEarnings := earnings - friendShare

	events := []string{}
	if crowdMood > 85 {
		events = append(events, EventEcstaticCrowd)
	}
	if crowdMood > 70 {
		events = append(events, EventStandingOvation)
	}
	if crowdMood < 30 {
		events = append(events, EventBoredCrowd)
	}
	if attendance >= venue.Capacity*95/100 {
		events = append(events, EventSoldOut)
	}
	if e.rng.Float64() > 0.8 {
		events = append(events, EventBloggerPresent)
	}

	result := ConcertResult{
		VenueID:    venueID,
		FormatID:   formatID,
		Attendance: attendance,
		Earnings:   netEarnings,
		FameGained: fameGained,
		CrowdMood:  crowdMood,
		Events:     events,
	}

	next := s.Clone()
	next.Money += netEarnings
	next.Fame = clampInt(next.Fame+fameGained, 0, MaxFame)
	next.Fans += attendance
	next.ConcertHistory = append(next.ConcertHistory, result)
	if venue.Type == VenueStadium {
		next.HasWon = true
	}
	e.settleWeek(next, WeeklyStaminaRegen)
	e.store.Commit(next)

	return &result, ok("Played %s at %s! Crowd of %d, earned $%d, fame +%d.",
		format.Name, venue.Name, attendance, netEarnings, fameGained)
}

func hasFriendContract(members []Character) bool {
	for _, m := range members {
		if m.Contract == ContractFriend {
			return true
		}
	}
	return false
}
