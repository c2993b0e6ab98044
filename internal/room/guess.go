package room

import (
	"slices"
	"strings"

	"github.com/agnivade/levenshtein"

	"wordparty/internal/content"
)

// closeGuessDistance is the edit distance under which a wrong phrase guess
// earns a private "so close" notice on top of the usual penalty.
const closeGuessDistance = 2

// guessResult collects the decision flags for one guess. Flags are gathered
// under the session lock; the messages they trigger are emitted after the
// lock is released.
type guessResult struct {
	duplicate   bool
	letter      bool
	partialWord bool // idiom mode: standalone word inside the idiom, no penalty
	closeCall   int  // >0: wrong phrase within this edit distance of the secret
	won         bool
	lost        bool
}

// applyGuess evaluates one normalized (lower-cased, trimmed) guess.
// Caller holds s.mu and has verified state == playing.
func (s *Session) applyGuess(p *Player, guess string) guessResult {
	var res guessResult
	if len([]rune(guess)) == 1 {
		res = s.applyLetter(p, guess)
	} else {
		res = s.applyPhrase(p, guess)
	}

	// Cumulative idiom solve: guessed words plus letters may have revealed
	// the whole idiom without it ever being guessed verbatim. Runs after
	// letter and phrase guesses alike.
	if !res.won && !res.duplicate && s.mode == content.ModeIdioms && s.state == StatePlaying {
		masked := Mask(s.content, s.guessedLetters, s.guessedWords, s.mode)
		if !strings.ContainsRune(masked, placeholder) {
			s.markWon(p)
			res.won = true
		}
	}
	return res
}

func (s *Session) applyLetter(p *Player, letter string) guessResult {
	res := guessResult{letter: true}
	if slices.Contains(s.guessedLetters, letter) {
		res.duplicate = true
		return res
	}
	s.guessedLetters = append(s.guessedLetters, letter)

	if !strings.Contains(s.content, letter) {
		s.penalize()
		res.lost = s.state == StateLost
	}

	if s.state == StatePlaying && s.allLettersGuessed() {
		s.markWon(p)
		res.won = true
	}
	return res
}

func (s *Session) applyPhrase(p *Player, phrase string) guessResult {
	var res guessResult
	if slices.Contains(s.guessedWords, phrase) {
		res.duplicate = true
		return res
	}
	s.guessedWords = append(s.guessedWords, phrase)

	switch {
	case phrase == s.content:
		s.markWon(p)
		res.won = true
	case s.mode == content.ModeIdioms && isWholeWordIn(s.content, phrase):
		res.partialWord = true
	default:
		s.penalize()
		if s.state == StateLost {
			res.lost = true
		} else if d := levenshtein.ComputeDistance(phrase, s.content); d <= closeGuessDistance {
			res.closeCall = d
		}
	}
	return res
}

// allLettersGuessed reports whether guessedLetters covers every significant
// character of the secret.
func (s *Session) allLettersGuessed() bool {
	guessed := make(map[rune]bool, len(s.guessedLetters))
	for _, l := range s.guessedLetters {
		for _, r := range l {
			guessed[r] = true
		}
	}
	for r := range significantRunes(s.content) {
		if !guessed[r] {
			return false
		}
	}
	return true
}

// markWon flips the round to won, snapshots the acting player as the winner
// and pays out points.
func (s *Session) markWon(p *Player) {
	s.state = StateWon
	s.winningPlayer = &winner{Name: p.Name, Score: p.Score}
	s.award()
}
