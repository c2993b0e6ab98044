package room

import (
	"wordparty/internal/content"
)

// Characters that are never guessed and never masked: spaces, apostrophes,
// hyphens and sentence punctuation.
var nonGuessable = map[rune]bool{
	' ': true, '\'': true, '-': true,
	'.': true, ',': true, ';': true, ':': true,
	'!': true, '?': true, '(': true, ')': true, '"': true,
}

const placeholder = '_'

// Mask renders the publicly visible form of secret: same length, with
// non-guessable characters and guessed letters revealed and everything else
// replaced by '_'. In idiom mode, characters inside a whole-word occurrence
// of any guessed word are revealed too.
func Mask(secret string, letters, words []string, mode content.Mode) string {
	runes := []rune(secret)
	out := make([]rune, len(runes))

	guessed := make(map[rune]bool, len(letters))
	for _, l := range letters {
		for _, r := range l {
			guessed[r] = true
		}
	}

	revealed := make(map[int]bool)
	if mode == content.ModeIdioms {
		for _, w := range words {
			for _, span := range wordSpans(runes, []rune(w)) {
				for i := span[0]; i < span[1]; i++ {
					revealed[i] = true
				}
			}
		}
	}

	for i, r := range runes {
		switch {
		case nonGuessable[r], guessed[r], revealed[i]:
			out[i] = r
		default:
			out[i] = placeholder
		}
	}
	return string(out)
}

// wordSpans finds every whole-word occurrence of word inside secret and
// returns the [start, end) rune spans. An occurrence counts only when
// bounded on both sides by a non-guessable character or the string edge,
// so "cat" never matches inside "category".
func wordSpans(secret, word []rune) [][2]int {
	var spans [][2]int
	if len(word) == 0 || len(word) > len(secret) {
		return spans
	}
	for start := 0; start+len(word) <= len(secret); start++ {
		if !runesEqual(secret[start:start+len(word)], word) {
			continue
		}
		if start > 0 && !nonGuessable[secret[start-1]] {
			continue
		}
		end := start + len(word)
		if end < len(secret) && !nonGuessable[secret[end]] {
			continue
		}
		spans = append(spans, [2]int{start, end})
	}
	return spans
}

func runesEqual(a, b []rune) bool {
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// isWholeWordIn reports whether word occurs as a standalone word in secret.
func isWholeWordIn(secret, word string) bool {
	return len(wordSpans([]rune(secret), []rune(word))) > 0
}

// significantRunes returns the set of guessable characters in secret, the
// ones a winning set of letter guesses must cover.
func significantRunes(secret string) map[rune]bool {
	set := make(map[rune]bool)
	for _, r := range secret {
		if !nonGuessable[r] {
			set[r] = true
		}
	}
	return set
}
