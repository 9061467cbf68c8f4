package game

import "fmt"

// Store is the single legal mutation path for game state. Get returns the
// current snapshot (nil before a game starts); Commit replaces it wholesale,
// persists it and notifies subscribers before returning.
type Store interface {
	Get() *GameState
	Commit(*GameState)
}

// Outcome is what every engine action hands back to the presentation layer:
// a success flag and a human-readable message. Failed outcomes guarantee the
// prior state was left untouched.
type Outcome struct {
	OK      bool
	Message string
}

func ok(format string, args ...any) Outcome {
	return Outcome{OK: true, Message: fmt.Sprintf(format, args...)}
}

func fail(format string, args ...any) Outcome {
	return Outcome{OK: false, Message: fmt.Sprintf(format, args...)}
}

// Engine computes every state transition of the simulation. It owns no state
// of its own beyond the catalog and the random source; the store holds the
// single snapshot.
type Engine struct {
	catalog *Catalog
	store   Store
	rng     Rand

	idSeq int
}

func NewEngine(catalog *Catalog, store Store, rng Rand) *Engine {
	return &Engine{catalog: catalog, store: store, rng: rng}
}

func (e *Engine) Catalog() *Catalog { return e.catalog }

// nextID produces process-unique ids for characters, songs and albums.
func (e *Engine) nextID(prefix string) string {
	e.idSeq++
	return fmt.Sprintf("%s-%d-%d", prefix, e.idSeq, e.rng.Intn(100000))
}

// state is a nil-guarded snapshot fetch for actions that require a running game.
func (e *Engine) state() (*GameState, bool) {
	s := e.store.Get()
	return s, s != nil
}
