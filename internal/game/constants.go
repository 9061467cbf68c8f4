package game

// Balance constants. Tune here, not at call sites.
const (
	InitialMoney       = 800
	RehearsalCost      = 50
	RehearsalSkillGain = 2
	RehearsalStaminaCost = 3
	RecordingCost      = 300

	FameFromConcertBase = 5
	FameFromAlbum       = 20
	FansPerFame         = 50
	MaxFame             = 1000

	WeeklyBaseCost = 100

	// Stamina comes back a little after every settled week; resting a full
	// week (explicit advance) restores more and loosens up creativity.
	WeeklyStaminaRegen  = 5
	RestStaminaRegen    = 10
	RestCreativityRegen = 1

	// Crew effects on concerts.
	CrewMoodBonus         = 5
	ManagerPayMultiplier  = 1.15
	ManagerFameMultiplier = 1.1
	FriendSharePercent    = 15

	// Alternative income.
	StreetGigBasePay   = 30
	StreetGigFamePay   = 2 // per 10 fame
	StreetGigFameGain  = 1
	RadioShowBasePay   = 80
	RadioShowFamePay   = 5 // per 10 fame
	RadioShowFameGain  = 3
	InterviewBasePay   = 40
	InterviewFamePay   = 3 // per 10 fame
	InterviewFameGain  = 2
	MinSongQuality     = 5
	SongGenerationGain = 10 // quality bonus once a track comes back generated
)

// AlbumRecordingBonus multiplies mean song quality when an album is cut.
const AlbumRecordingBonus = 1.2

// Song quality weighting. Conceptually sums to 1.0; the engine applies the
// weights as given and does not enforce the sum.
const (
	SongSkillWeight      = 0.4
	SongCreativityWeight = 0.35
	SongEquipmentWeight  = 0.25
)

// Concert performance weighting (spec'd in playConcert).
const (
	ConcertSkillWeight    = 0.3
	ConcertCharismaWeight = 0.3
	ConcertEquipWeight    = 0.2
	ConcertSongWeight     = 0.2
)

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampStat(v int) int { return clampInt(v, 0, 100) }
