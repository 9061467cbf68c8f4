package game

import "fmt"

// Eligibility is the result of a pure booking-gate check. Reason is empty
// when OK; otherwise it names the first failing requirement.
type Eligibility struct {
	OK     bool
	Reason string
}

func eligible() Eligibility { return Eligibility{OK: true} }

func blocked(format string, args ...any) Eligibility {
	return Eligibility{Reason: fmt.Sprintf(format, args...)}
}

// VenueRequirementsMet checks a venue's gear and crew gates against the
// current state. Pure: safe to poll from presentation code every frame.
func (e *Engine) VenueRequirementsMet(venueID string) Eligibility {
	s, running := e.state()
	if !running {
		return blocked("no game in progress")
	}
	venue, found := e.catalog.VenueByID(venueID)
	if !found {
		return blocked("unknown venue %q", venueID)
	}
	for _, req := range venue.RequiredEquipment {
		if !s.OwnsEquipment(req) {
			item, _ := e.catalog.EquipmentByID(req)
			return blocked("%s requires %s", venue.Name, item.Name)
		}
	}
	if venue.RequiresSoundEngineer && !s.HasCrewRole(RoleSoundEngineer, RoleTech) {
		return blocked("%s requires a sound engineer or tech on the crew", venue.Name)
	}
	return eligible()
}

// CanPlayFormat layers fame, repertoire and line-up gates on top of the venue
// requirements. Like VenueRequirementsMet it never mutates state.
func (e *Engine) CanPlayFormat(venueID, formatID string) Eligibility {
	s, running := e.state()
	if !running {
		return blocked("no game in progress")
	}
	venue, found := e.catalog.VenueByID(venueID)
	if !found {
		return blocked("unknown venue %q", venueID)
	}
	format, found := e.catalog.FormatByID(formatID)
	if !found {
		return blocked("unknown format %q", formatID)
	}
	if gear := e.VenueRequirementsMet(venueID); !gear.OK {
		return gear
	}
	if s.Fame < venue.MinFame {
		return blocked("%s needs fame %d (you have %d)", venue.Name, venue.MinFame, s.Fame)
	}
	if len(s.Songs) < format.MinSongs {
		return blocked("%s needs at least %d songs", format.Name, format.MinSongs)
	}
	if format.MinFame > 0 && s.Fame < format.MinFame {
		return blocked("%s needs fame %d (you have %d)", format.Name, format.MinFame, s.Fame)
	}
	if len(s.Musicians()) < 2 {
		return blocked("need at least 2 musicians on stage")
	}
	return eligible()
}
