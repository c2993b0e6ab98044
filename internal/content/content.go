package content

import "context"

// Language selects the language content is generated in.
type Language string

const (
	LangEnglish Language = "en"
	LangSpanish Language = "es"
)

// Mode selects what kind of secret a round is played against.
type Mode string

const (
	ModeWords  Mode = "words"
	ModeIdioms Mode = "idioms"
)

// Pack is one round's secret plus its graduated hints, ordered from least
// to most specific. Content is always lower-cased.
type Pack struct {
	Content string
	Hints   []string
}

// Request describes one content draw. History carries the room's previously
// used content for the requested mode so the generator is discouraged from
// repeating itself; nothing in this package enforces non-repetition.
type Request struct {
	APIKey   string
	Language Language
	Mode     Mode
	History  []string
}

// Provider produces a Pack for a round. Implementations must not fail the
// caller: any upstream problem is absorbed and a deterministic fallback
// Pack returned instead.
type Provider interface {
	Fetch(ctx context.Context, req Request) Pack
}
