package server

import "github.com/appengine-ltd/band-it/internal/game"

// Collaborator contracts. The renderer and audio synthesizer live in the
// browser; these interfaces pin down what they may read. Neither writes
// game state.

// ConcertRenderer animates a performance from the members on stage, the
// venue and the computed result, then calls done.
type ConcertRenderer interface {
	RenderConcert(members []game.Character, venue game.Venue, result game.ConcertResult, genre game.MusicGenre, done func())
}

// ConcertAudio drives procedural playback for a show. Stop fades out.
type ConcertAudio interface {
	Start(genre game.MusicGenre, crowdMood int)
	Stop()
}
