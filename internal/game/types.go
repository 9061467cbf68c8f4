package game

type InstrumentType string

const (
	InstrumentGuitar   InstrumentType = "guitar"
	InstrumentBass     InstrumentType = "bass"
	InstrumentDrums    InstrumentType = "drums"
	InstrumentVocals   InstrumentType = "vocals"
	InstrumentKeyboard InstrumentType = "keyboard"
)

func AllInstruments() []InstrumentType {
	return []InstrumentType{InstrumentGuitar, InstrumentBass, InstrumentDrums, InstrumentVocals, InstrumentKeyboard}
}

type MusicGenre string

const (
	GenreRock        MusicGenre = "rock"
	GenrePunk        MusicGenre = "punk"
	GenreMetal       MusicGenre = "metal"
	GenreIndie       MusicGenre = "indie"
	GenreGrunge      MusicGenre = "grunge"
	GenreAlternative MusicGenre = "alternative"
)

func AllGenres() []MusicGenre {
	return []MusicGenre{GenreRock, GenrePunk, GenreMetal, GenreIndie, GenreGrunge, GenreAlternative}
}

type SongTheme string

const (
	ThemeLove       SongTheme = "love"
	ThemeRebellion  SongTheme = "rebellion"
	ThemeParty      SongTheme = "party"
	ThemeDarkness   SongTheme = "darkness"
	ThemeFreedom    SongTheme = "freedom"
	ThemeSociety    SongTheme = "society"
	ThemeLoneliness SongTheme = "loneliness"
	ThemeAdventure  SongTheme = "adventure"
)

func AllThemes() []SongTheme {
	return []SongTheme{ThemeLove, ThemeRebellion, ThemeParty, ThemeDarkness, ThemeFreedom, ThemeSociety, ThemeLoneliness, ThemeAdventure}
}

// Role distinguishes performers from staff. Only RoleMusician contributes to
// performance scoring; the other roles gate venues and modify concert economics.
type Role string

const (
	RoleMusician      Role = "musician"
	RoleManager       Role = "manager"
	RoleSoundEngineer Role = "sound_engineer"
	RoleTech          Role = "tech"
)

// ContractType controls how a band member is paid. Pro members draw a weekly
// salary; friends play for free but take a capped share of concert earnings.
type ContractType string

const (
	ContractPro    ContractType = "pro"
	ContractFriend ContractType = "friend"
)

type CharacterStats struct {
	Skill      int `json:"skill"`
	Charisma   int `json:"charisma"`
	Creativity int `json:"creativity"`
	Stamina    int `json:"stamina"`
}

type Character struct {
	ID         string         `json:"id"`
	Name       string         `json:"name"`
	Instrument InstrumentType `json:"instrument"`
	Stats      CharacterStats `json:"stats"`
	AvatarSeed int            `json:"avatar_seed"`
	Salary     int            `json:"salary"`
	IsPlayer   bool           `json:"is_player"`
	Role       Role           `json:"role"`
	Contract   ContractType   `json:"contract"`
}

type CrewMember struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Role   Role   `json:"role"`
	Salary int    `json:"salary"`
}

type EquipmentType string

const (
	EquipInstrument  EquipmentType = "instrument"
	EquipAmp         EquipmentType = "amp"
	EquipMic         EquipmentType = "mic"
	EquipDrums       EquipmentType = "drums"
	EquipKeys        EquipmentType = "keys"
	EquipPA          EquipmentType = "pa"
	EquipLights      EquipmentType = "lights"
	EquipManagerGear EquipmentType = "manager_gear"
	EquipSoundGear   EquipmentType = "sound_gear"
	EquipTechGear    EquipmentType = "tech_gear"
)

type Equipment struct {
	ID            string         `json:"id" yaml:"id"`
	Name          string         `json:"name" yaml:"name"`
	Type          EquipmentType  `json:"type" yaml:"type"`
	ForInstrument InstrumentType `json:"for_instrument,omitempty" yaml:"for_instrument,omitempty"`
	ForRole       Role           `json:"for_role,omitempty" yaml:"for_role,omitempty"`
	Quality       int            `json:"quality" yaml:"quality"`
	Price         int            `json:"price" yaml:"price"`
	Description   string         `json:"description" yaml:"description"`
}

type Song struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Genre      MusicGenre `json:"genre"`
	Theme      SongTheme  `json:"theme"`
	Quality    int        `json:"quality"`
	Popularity int        `json:"popularity"`
	Recorded   bool       `json:"recorded"`
}

type Album struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Songs       []string `json:"songs"`
	Quality     int      `json:"quality"`
	SalesTotal  int      `json:"sales_total"`
	ReleaseWeek int      `json:"release_week"`
}

type VenueType string

const (
	VenueBar     VenueType = "bar"
	VenueClub    VenueType = "club"
	VenueTheater VenueType = "theater"
	VenueArena   VenueType = "arena"
	VenueStadium VenueType = "stadium"
)

type Venue struct {
	ID                    string    `json:"id" yaml:"id"`
	Name                  string    `json:"name" yaml:"name"`
	Capacity              int       `json:"capacity" yaml:"capacity"`
	MinFame               int       `json:"min_fame" yaml:"min_fame"`
	PayPerHead            int       `json:"pay_per_head" yaml:"pay_per_head"`
	Description           string    `json:"description" yaml:"description"`
	Type                  VenueType `json:"type" yaml:"type"`
	RequiredEquipment     []string  `json:"required_equipment,omitempty" yaml:"required_equipment,omitempty"`
	RequiresSoundEngineer bool      `json:"requires_sound_engineer,omitempty" yaml:"requires_sound_engineer,omitempty"`
}

type GigFormat struct {
	ID             string  `json:"id" yaml:"id"`
	Name           string  `json:"name" yaml:"name"`
	Description    string  `json:"description" yaml:"description"`
	MinSongs       int     `json:"min_songs" yaml:"min_songs"`
	MinFame        int     `json:"min_fame,omitempty" yaml:"min_fame,omitempty"`
	PayMultiplier  float64 `json:"pay_multiplier" yaml:"pay_multiplier"`
	FameMultiplier float64 `json:"fame_multiplier" yaml:"fame_multiplier"`
}

type ConcertResult struct {
	VenueID    string   `json:"venue_id"`
	FormatID   string   `json:"format_id"`
	Attendance int      `json:"attendance"`
	Earnings   int      `json:"earnings"`
	FameGained int      `json:"fame_gained"`
	CrowdMood  int      `json:"crowd_mood"`
	Events     []string `json:"events"`
}

// Track is a playable rendition of a song produced by the external
// music-generation collaborator. The engine only stores it.
type Track struct {
	SongID         string  `json:"song_id"`
	ID             string  `json:"id"`
	AudioURL       string  `json:"audio_url"`
	StreamAudioURL string  `json:"stream_audio_url"`
	ImageURL       string  `json:"image_url"`
	Title          string  `json:"title"`
	Tags           string  `json:"tags"`
	Duration       float64 `json:"duration"`
}

type GameScreen string

const (
	ScreenMenu          GameScreen = "menu"
	ScreenCreate        GameScreen = "create"
	ScreenHQ            GameScreen = "hq"
	ScreenMembers       GameScreen = "members"
	ScreenCrew          GameScreen = "crew"
	ScreenShop          GameScreen = "shop"
	ScreenRehearsal     GameScreen = "rehearsal"
	ScreenSongwriting   GameScreen = "songwriting"
	ScreenStudio        GameScreen = "studio"
	ScreenBooking       GameScreen = "booking"
	ScreenConcert       GameScreen = "concert"
	ScreenConcertResult GameScreen = "concert-result"
	ScreenAlbum         GameScreen = "album"
)

// GameState is the aggregate root. Engine transitions never mutate it in
// place; each one builds a replacement snapshot and commits it wholesale.
type GameState struct {
	PlayerName     string          `json:"player_name"`
	BandName       string          `json:"band_name"`
	Members        []Character     `json:"members"`
	Crew           []CrewMember    `json:"crew"`
	Money          int             `json:"money"`
	Fame           int             `json:"fame"`
	Fans           int             `json:"fans"`
	Week           int             `json:"week"`
	Equipment      []Equipment     `json:"equipment"`
	Songs          []Song          `json:"songs"`
	Albums         []Album         `json:"albums"`
	Tracks         []Track         `json:"tracks"`
	ConcertHistory []ConcertResult `json:"concert_history"`
	HasWon         bool            `json:"has_won"`
	Screen         GameScreen      `json:"screen"`
}

// Clone deep-copies the state so a transition can edit freely before commit.
func (s *GameState) Clone() *GameState {
	if s == nil {
		return nil
	}
	next := *s
	next.Members = append([]Character(nil), s.Members...)
	next.Crew = append([]CrewMember(nil), s.Crew...)
	next.Equipment = append([]Equipment(nil), s.Equipment...)
	next.Songs = append([]Song(nil), s.Songs...)
	next.Albums = make([]Album, len(s.Albums))
	for i, a := range s.Albums {
		next.Albums[i] = a
		next.Albums[i].Songs = append([]string(nil), a.Songs...)
	}
	next.Tracks = append([]Track(nil), s.Tracks...)
	next.ConcertHistory = make([]ConcertResult, len(s.ConcertHistory))
	for i, c := range s.ConcertHistory {
		next.ConcertHistory[i] = c
		next.ConcertHistory[i].Events = append([]string(nil), c.Events...)
	}
	return &next
}

func (s *GameState) Musicians() []Character {
	out := make([]Character, 0, len(s.Members))
	for _, m := range s.Members {
		if m.Role == RoleMusician {
			out = append(out, m)
		}
	}
	return out
}

func (s *GameState) SongByID(id string) (int, bool) {
	for i, song := range s.Songs {
		if song.ID == id {
			return i, true
		}
	}
	return 0, false
}

func (s *GameState) OwnsEquipment(id string) bool {
	for _, e := range s.Equipment {
		if e.ID == id {
			return true
		}
	}
	return false
}

func (s *GameState) HasCrewRole(roles ...Role) bool {
	for _, c := range s.Crew {
		for _, r := range roles {
			if c.Role == r {
				return true
			}
		}
	}
	return false
}

// WeeklyExpenses is the fixed base cost plus every pro salary on the books.
func (s *GameState) WeeklyExpenses() int {
	total := WeeklyBaseCost
	for _, m := range s.Members {
		total += m.Salary
	}
	for _, c := range s.Crew {
		total += c.Salary
	}
	return total
}
