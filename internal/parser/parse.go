// Package parser turns free text typed at the band prompt into intents. It
// tolerates typos: exact and alias matches win, single-token prefixes count,
// and anything within a small edit distance gets matched or suggested.
package parser

import "strings"

func (r *Registry) Parse(raw string) Intent {
	normalised := normaliseInput(raw)
	intent := Intent{Raw: raw, Normalised: normalised, Kind: Unknown}
	tokens := tokenise(normalised)
	if len(tokens) == 0 {
		return intent
	}

	best, alts := r.matchCommand(tokens)
	if best.Canonical == "" {
		return intent
	}

	cmd, ok := r.command(best.Canonical)
	if !ok {
		return intent
	}
	args := tokens[best.Consumed:]

	// Low-confidence fuzzy hits become suggestions instead of actions, so a
	// mangled "recrod" never silently burns studio money.
	if best.Score < 0.6 {
		intent.Suggestions = suggestionList(best, alts)
		return intent
	}

	if len(args) < cmd.MinArgs {
		intent.Kind = Help
		intent.Verb = cmd.HandlerKey
		intent.Confidence = best.Score
		return intent
	}
	if cmd.MaxArgs >= 0 && len(args) > cmd.MaxArgs {
		args = args[:cmd.MaxArgs]
	}

	if cmd.HandlerKey == "help" {
		intent.Kind = Help
	} else {
		intent.Kind = Command
	}
	intent.Verb = cmd.HandlerKey
	intent.Args = args
	intent.Confidence = best.Score
	return intent
}

func suggestionList(best commandCandidate, alts []commandCandidate) []string {
	out := []string{best.Canonical}
	for _, a := range alts {
		out = append(out, a.Canonical)
	}
	return out
}

// ArgString joins intent args back into the free-text remainder, for
// commands that take a name ("write Midnight Train rock party").
func ArgString(args []string) string {
	return strings.Join(args, " ")
}
