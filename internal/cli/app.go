// Package cli is the local play mode: a prompt, the fuzzy command parser,
// and plain-text renditions of the game screens. Handy for playtesting the
// balance without a browser attached.
package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/appengine-ltd/band-it/internal/game"
	"github.com/appengine-ltd/band-it/internal/parser"
	"github.com/appengine-ltd/band-it/internal/store"
)

type App struct {
	engine   *game.Engine
	store    *store.Store
	registry *parser.Registry
	in       *bufio.Scanner
	out      io.Writer

	// last rolled pools, so "hire 2" refers to the latest audition.
	hirePool []game.Character
	crewPool []game.CrewMember
}

type AppConfig struct {
	SaveDir string
	Seed    int64
	In      io.Reader
	Out     io.Writer
}

func NewApp(cfg AppConfig) (*App, error) {
	catalog, err := game.LoadCatalog()
	if err != nil {
		return nil, err
	}
	st := store.New(cfg.SaveDir)
	return &App{
		engine:   game.NewEngine(catalog, st, game.NewRand(cfg.Seed)),
		store:    st,
		registry: parser.DefaultRegistry(),
		in:       bufio.NewScanner(cfg.In),
		out:      cfg.Out,
	}, nil
}

func (a *App) Run() error {
	a.printf("BAND IT — rock band manager\n")
	if a.store.Load() {
		s := a.store.Get()
		a.printf("Save loaded: %s, week %d.\n", s.BandName, s.Week)
	} else {
		a.newGamePrompt()
	}
	a.printf("Type 'help' for commands.\n")

	for {
		a.printf("> ")
		if !a.in.Scan() {
			return a.in.Err()
		}
		line := a.in.Text()
		intent := a.registry.Parse(line)
		if quit := a.dispatch(intent); quit {
			return nil
		}
	}
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

func (a *App) newGamePrompt() {
	a.printf("Your name: ")
	a.in.Scan()
	playerName := strings.TrimSpace(a.in.Text())
	if playerName == "" {
		playerName = "Nameless"
	}
	a.printf("Band name: ")
	a.in.Scan()
	bandName := strings.TrimSpace(a.in.Text())
	if bandName == "" {
		bandName = "The Unnamed"
	}
	a.printf("Instrument (guitar/bass/drums/vocals/keyboard): ")
	a.in.Scan()
	instrument := game.InstrumentType(strings.TrimSpace(strings.ToLower(a.in.Text())))
	valid := false
	for _, i := range game.AllInstruments() {
		if i == instrument {
			valid = true
		}
	}
	if !valid {
		instrument = game.InstrumentGuitar
	}
	out := a.engine.StartNewGame(playerName, bandName, instrument, 0)
	a.printf("%s\n", out.Message)
}

// dispatch routes one parsed intent. Returns true when the session ends.
func (a *App) dispatch(intent parser.Intent) bool {
	switch intent.Kind {
	case parser.Unknown:
		if len(intent.Suggestions) > 0 {
			a.printf("Unknown command. Did you mean: %s?\n", strings.Join(intent.Suggestions, ", "))
		} else if intent.Normalised != "" {
			a.printf("Unknown command. Type 'help'.\n")
		}
		return false
	case parser.Help:
		a.printHelp()
		return false
	}

	switch intent.Verb {
	case "status":
		a.printStatus()
	case "hire":
		a.cmdHire(intent.Args)
	case "fire":
		a.cmdFire(intent.Args)
	case "crew":
		a.cmdCrew(intent.Args)
	case "rehearse":
		a.report(a.engine.Rehearse())
	case "write":
		a.cmdWrite(intent.Args)
	case "record":
		a.cmdRecord(intent.Args)
	case "album":
		a.cmdAlbum(intent.Args)
	case "shop":
		a.printShop()
	case "buy":
		a.report(a.engine.BuyEquipment(intent.Args[0]))
	case "venues":
		a.printVenues()
	case "play":
		a.cmdPlay(intent.Args)
	case "street":
		a.report(a.engine.PerformStreetGig())
	case "radio":
		a.report(a.engine.DoRadioShow())
	case "interview":
		a.report(a.engine.DoInterview())
	case "songs":
		a.printSongs()
	case "next":
		a.report(a.engine.AdvanceWeek())
	case "save":
		if err := a.store.Save(); err != nil {
			a.printf("Save failed: %v\n", err)
		} else {
			a.printf("Saved.\n")
		}
	case "load":
		if a.store.Load() {
			a.printf("Save loaded.\n")
		} else {
			a.printf("No usable save found.\n")
		}
	case "delete":
		a.store.DeleteSave()
		a.printf("Save deleted.\n")
	case "quit":
		a.printf("See you at the next gig.\n")
		return true
	default:
		a.printf("Unknown command. Type 'help'.\n")
	}
	return false
}

func (a *App) report(o game.Outcome) {
	a.printf("%s\n", o.Message)
}

func (a *App) printHelp() {
	a.printf("Commands: status, hire [friend], hire crew <manager|sound_engineer|tech>, fire <n>, rehearse, " +
		"write <name> <genre> <theme>, record <n>, album <name> <n n n..>, shop, buy <id>, venues, " +
		"play <venue> <format>, street, radio, interview, songs, next, save, load, delete, quit\n")
}

func (a *App) printStatus() {
	s := a.store.Get()
	if s == nil {
		a.printf("No game in progress.\n")
		return
	}
	a.printf("%s — week %d | $%d | fame %d | fans %d\n", s.BandName, s.Week, s.Money, s.Fame, s.Fans)
	for i, m := range s.Members {
		tag := ""
		if m.IsPlayer {
			tag = " (you)"
		}
		if m.Contract == game.ContractFriend {
			tag += " [friend]"
		}
		a.printf("  %d. %s — %s, skill %d, charisma %d, stamina %d, $%d/wk%s\n",
			i+1, m.Name, m.Instrument, m.Stats.Skill, m.Stats.Charisma, m.Stats.Stamina, m.Salary, tag)
	}
	for _, c := range s.Crew {
		a.printf("  crew: %s — %s, $%d/wk\n", c.Name, c.Role, c.Salary)
	}
	if s.HasWon {
		a.printf("  ★ You played a stadium. You've made it.\n")
	}
}

func (a *App) printSongs() {
	s := a.store.Get()
	if s == nil {
		a.printf("No game in progress.\n")
		return
	}
	if len(s.Songs) == 0 {
		a.printf("No songs written yet.\n")
		return
	}
	for i, song := range s.Songs {
		rec := " "
		if song.Recorded {
			rec = "●"
		}
		a.printf("  %d. %s %q (%s/%s) quality %d\n", i+1, rec, song.Name, song.Genre, song.Theme, song.Quality)
	}
	for _, album := range s.Albums {
		a.printf("  album %q — quality %d, sales %d\n", album.Name, album.Quality, album.SalesTotal)
	}
}

func (a *App) printShop() {
	s := a.store.Get()
	if s == nil {
		a.printf("No game in progress.\n")
		return
	}
	for _, e := range a.engine.Catalog().Equipment {
		if e.Price == 0 || s.OwnsEquipment(e.ID) {
			continue
		}
		a.printf("  %-16s $%-6d q%-3d %s — %s\n", e.ID, e.Price, e.Quality, e.Name, e.Description)
	}
}

func (a *App) printVenues() {
	s := a.store.Get()
	if s == nil {
		a.printf("No game in progress.\n")
		return
	}
	for _, v := range a.engine.Catalog().Venues {
		gate := ""
		if el := a.engine.VenueRequirementsMet(v.ID); !el.OK {
			gate = " — " + el.Reason
		} else if s.Fame < v.MinFame {
			gate = fmt.Sprintf(" — needs fame %d", v.MinFame)
		}
		a.printf("  %-12s cap %-6d $%d/head%s\n", v.ID, v.Capacity, v.PayPerHead, gate)
	}
	a.printf("  formats: ")
	for _, f := range a.engine.Catalog().Formats {
		a.printf("%s ", f.ID)
	}
	a.printf("\n")
}

func (a *App) cmdHire(args []string) {
	if len(args) > 0 && args[0] == "crew" {
		a.cmdCrew(args[1:])
		return
	}
	if len(args) == 0 || !isIndex(args[0]) {
		kind := "pro"
		if len(args) > 0 && args[0] == "friend" {
			kind = "friend"
		}
		if kind == "friend" {
			a.hirePool = a.engine.GenerateFriendPool(4)
		} else {
			a.hirePool = a.engine.GenerateHirePool(4)
		}
		for i, c := range a.hirePool {
			a.printf("  %d. %s — %s, skill %d, charisma %d, $%d/wk [%s]\n",
				i+1, c.Name, c.Instrument, c.Stats.Skill, c.Stats.Charisma, c.Salary, c.Contract)
		}
		a.printf("hire <number> to sign, or 'hire friend' to audition friends.\n")
		return
	}
	idx := parseIndex(args[0])
	if idx < 1 || idx > len(a.hirePool) {
		a.printf("No candidate %s. Run 'hire' first.\n", args[0])
		return
	}
	a.report(a.engine.HireMember(a.hirePool[idx-1]))
}

func (a *App) cmdCrew(args []string) {
	if len(args) == 0 {
		a.printf("crew <manager|sound_engineer|tech> to audition, crew <number> to sign, crew fire <name>.\n")
		return
	}
	if isIndex(args[0]) {
		idx := parseIndex(args[0])
		if idx < 1 || idx > len(a.crewPool) {
			a.printf("No candidate %s. Audition a role first.\n", args[0])
			return
		}
		a.report(a.engine.HireCrew(a.crewPool[idx-1]))
		return
	}
	if args[0] == "fire" && len(args) > 1 {
		s := a.store.Get()
		if s == nil {
			a.printf("No game in progress.\n")
			return
		}
		for _, c := range s.Crew {
			if strings.EqualFold(c.Name, args[1]) {
				a.report(a.engine.FireCrew(c.ID))
				return
			}
		}
		a.printf("No crew member called %q.\n", args[1])
		return
	}
	role := game.Role(args[0])
	switch role {
	case game.RoleManager, game.RoleSoundEngineer, game.RoleTech:
	default:
		a.printf("Unknown crew role %q.\n", args[0])
		return
	}
	a.crewPool = a.engine.GenerateCrewPool(role, 3)
	for i, c := range a.crewPool {
		a.printf("  %d. %s — %s, $%d/wk\n", i+1, c.Name, c.Role, c.Salary)
	}
}

func (a *App) cmdFire(args []string) {
	s := a.store.Get()
	if s == nil {
		a.printf("No game in progress.\n")
		return
	}
	if isIndex(args[0]) {
		idx := parseIndex(args[0])
		if idx >= 1 && idx <= len(s.Members) {
			a.report(a.engine.FireMember(s.Members[idx-1].ID))
			return
		}
	}
	for _, m := range s.Members {
		if strings.EqualFold(m.Name, args[0]) {
			a.report(a.engine.FireMember(m.ID))
			return
		}
	}
	a.printf("No band member %q.\n", args[0])
}

func (a *App) cmdWrite(args []string) {
	// Last two tokens that parse as genre/theme are taken as such; the rest
	// is the title.
	genre := game.GenreRock
	theme := game.ThemeParty
	nameEnd := len(args)
	if len(args) >= 3 {
		if g, ok := matchGenre(args[len(args)-2]); ok {
			if t, ok := matchTheme(args[len(args)-1]); ok {
				genre, theme = g, t
				nameEnd = len(args) - 2
			}
		}
	}
	name := titleCase(parser.ArgString(args[:nameEnd]))
	a.report(a.engine.WriteSong(name, genre, theme))
}

func matchGenre(token string) (game.MusicGenre, bool) {
	for _, g := range game.AllGenres() {
		if string(g) == token {
			return g, true
		}
	}
	return "", false
}

func matchTheme(token string) (game.SongTheme, bool) {
	for _, t := range game.AllThemes() {
		if string(t) == token {
			return t, true
		}
	}
	return "", false
}

func (a *App) cmdRecord(args []string) {
	s := a.store.Get()
	if s == nil {
		a.printf("No game in progress.\n")
		return
	}
	idx := parseIndex(args[0])
	if idx < 1 || idx > len(s.Songs) {
		a.printf("No song %s. See 'songs'.\n", args[0])
		return
	}
	a.report(a.engine.RecordSong(s.Songs[idx-1].ID))
}

func (a *App) cmdAlbum(args []string) {
	s := a.store.Get()
	if s == nil {
		a.printf("No game in progress.\n")
		return
	}
	name := ""
	ids := []string{}
	for _, arg := range args {
		if isIndex(arg) {
			idx := parseIndex(arg)
			if idx >= 1 && idx <= len(s.Songs) {
				ids = append(ids, s.Songs[idx-1].ID)
			}
			continue
		}
		if name != "" {
			name += " "
		}
		name += arg
	}
	a.report(a.engine.ReleaseAlbum(titleCase(name), ids))
}

func (a *App) cmdPlay(args []string) {
	venueID := args[0]
	formatID := "festival_slot"
	if len(args) > 1 {
		formatID = args[1]
	}
	result, o := a.engine.PlayConcert(venueID, formatID)
	a.report(o)
	if result != nil {
		a.printf("  attendance %d | crowd mood %d | earned $%d | fame +%d\n",
			result.Attendance, result.CrowdMood, result.Earnings, result.FameGained)
		for _, event := range result.Events {
			a.printf("  * %s\n", eventCopy(event))
		}
	}
}

func eventCopy(tag string) string {
	switch tag {
	case game.EventEcstaticCrowd:
		return "The crowd is ecstatic!"
	case game.EventStandingOvation:
		return "Standing ovation!"
	case game.EventBoredCrowd:
		return "The crowd looks bored..."
	case game.EventSoldOut:
		return "Sold out!"
	case game.EventBloggerPresent:
		return "A music blogger is in the room!"
	default:
		return tag
	}
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

func isIndex(token string) bool {
	for _, r := range token {
		if r < '0' || r > '9' {
			return false
		}
	}
	return token != ""
}

func parseIndex(token string) int {
	n := 0
	for _, r := range token {
		if r < '0' || r > '9' {
			return 0
		}
		n = n*10 + int(r-'0')
	}
	return n
}
