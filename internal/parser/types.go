package parser

type IntentKind int

const (
	Command IntentKind = iota
	Help
	Unknown
)

type Intent struct {
	Raw        string
	Normalised string
	Kind       IntentKind
	Verb       string
	Args       []string
	Confidence float64
	// Suggestions holds nearby canonical verbs when the input didn't match.
	Suggestions []string
}

type CommandDef struct {
	Canonical  string
	Aliases    []string
	MinArgs    int
	MaxArgs    int
	HandlerKey string
}
