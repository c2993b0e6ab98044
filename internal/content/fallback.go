package content

// Static packs served whenever the generator cannot. Keyed by
// (language, mode) so the substitution is deterministic.
var fallbacks = map[Language]map[Mode]Pack{
	LangEnglish: {
		ModeWords: {
			Content: "computer",
			Hints:   []string{"It is an object", "Used for work", "Has keyboard and screen"},
		},
		ModeIdioms: {
			Content: "don't look a gift horse in the mouth",
			Hints:   []string{"It's about receiving something", "Related to gratitude", "You shouldn't criticize something given for free"},
		},
	},
	LangSpanish: {
		ModeWords: {
			Content: "computadora",
			Hints:   []string{"Es un objeto", "Se usa para trabajar", "Tiene teclado y pantalla"},
		},
		ModeIdioms: {
			Content: "a caballo regalado no le mires el diente",
			Hints:   []string{"Trata sobre un regalo", "Se refiere a la gratitud", "No deberías criticar algo que te regalan"},
		},
	},
}

// Fallback returns the static pack for the given language and mode.
// Unknown languages get the English pack.
func Fallback(lang Language, mode Mode) Pack {
	packs, ok := fallbacks[lang]
	if !ok {
		packs = fallbacks[LangEnglish]
	}
	p, ok := packs[mode]
	if !ok {
		p = packs[ModeWords]
	}
	return p
}
