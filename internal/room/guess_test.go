package room

import (
	"testing"

	"wordparty/internal/content"
)

func TestLetterGuesses(t *testing.T) {
	_, s, players, _ := newTestRoom(t, testPack, content.ModeWords, 3, "alice", "bob")
	alice, bob := players[0], players[1]

	// correct letter: nobody loses a life
	s.Guess(alice, "c")
	if alice.Score != 3 || bob.Score != 3 {
		t.Fatalf("correct letter must not cost lives, got %v/%v", alice.Score, bob.Score)
	}
	st := s.PublicState()
	if st.MaskedWord != "c_______" {
		t.Fatalf("masked word = %q, want %q", st.MaskedWord, "c_______")
	}

	// wrong letter: everyone loses one
	s.Guess(bob, "z")
	if alice.Score != 2 || bob.Score != 2 {
		t.Fatalf("wrong letter must cost 1 life each, got %v/%v", alice.Score, bob.Score)
	}

	state, letters, _ := s.snapshot()
	if state != StatePlaying {
		t.Fatalf("state = %v, want playing", state)
	}
	if len(letters) != 2 {
		t.Fatalf("guessedLetters = %v, want 2 entries", letters)
	}
}

func TestDuplicateLetterGuess(t *testing.T) {
	_, s, players, _ := newTestRoom(t, testPack, content.ModeWords, 3, "alice")
	alice := players[0]

	s.Guess(alice, "c")
	drain(t, alice)
	s.Guess(alice, "c")

	if alice.Score != 3 {
		t.Fatalf("duplicate guess must not cost lives, score = %v", alice.Score)
	}
	if !hasText(drain(t, alice), "Letter already guessed") {
		t.Fatal("expected duplicate-letter notice")
	}
	_, letters, _ := s.snapshot()
	if len(letters) != 1 {
		t.Fatalf("duplicate must not be recorded twice: %v", letters)
	}
}

func TestWinByLetters(t *testing.T) {
	_, s, players, _ := newTestRoom(t, testPack, content.ModeWords, 3, "alice", "bob")
	alice := players[0]

	for _, l := range []string{"c", "o", "m", "p", "u", "t", "e"} {
		s.Guess(alice, l)
	}
	if state, _, _ := s.snapshot(); state != StatePlaying {
		t.Fatalf("state = %v before final letter", state)
	}
	s.Guess(alice, "r")

	state, _, _ := s.snapshot()
	if state != StateWon {
		t.Fatalf("state = %v, want won", state)
	}
	st := s.PublicState()
	if st.WinningPlayer == nil || *st.WinningPlayer != "alice" {
		t.Fatalf("winningPlayer = %v, want alice", st.WinningPlayer)
	}
	if st.Word == nil || *st.Word != "computer" {
		t.Fatalf("word must be revealed after win, got %v", st.Word)
	}
	// full lives remained, so each player banks 3 points
	if players[0].TotalPoints != 3 || players[1].TotalPoints != 3 {
		t.Fatalf("totalPoints = %d/%d, want 3/3", players[0].TotalPoints, players[1].TotalPoints)
	}
}

func TestExactPhraseWin(t *testing.T) {
	_, s, players, _ := newTestRoom(t, testPack, content.ModeWords, 3, "alice")
	s.Guess(players[0], "Computer")

	if state, _, _ := s.snapshot(); state != StateWon {
		t.Fatalf("exact phrase must win, state = %v", state)
	}
}

func TestIdiomPartialWordNoPenalty(t *testing.T) {
	idiom := content.Pack{
		Content: "don't look a gift horse in the mouth",
		Hints:   []string{"a", "b", "c"},
	}
	_, s, players, _ := newTestRoom(t, idiom, content.ModeIdioms, 3, "alice")
	alice := players[0]
	drain(t, alice)

	s.Guess(alice, "horse")

	if alice.Score != 3 {
		t.Fatalf("whole-word idiom guess must not cost lives, score = %v", alice.Score)
	}
	if !hasText(drain(t, alice), "You correctly guessed a word in the idiom!") {
		t.Fatal("expected partial-credit notice")
	}
	st := s.PublicState()
	want := "___'_ ____ _ ____ horse __ ___ _____"
	if st.MaskedWord != want {
		t.Fatalf("masked = %q, want %q", st.MaskedWord, want)
	}
	if st.GameState != StatePlaying {
		t.Fatalf("partial word must not end the round, state = %v", st.GameState)
	}
}

func TestIdiomSubstringIsPenalized(t *testing.T) {
	idiom := content.Pack{Content: "category of cats", Hints: []string{"a", "b", "c"}}
	_, s, players, _ := newTestRoom(t, idiom, content.ModeIdioms, 3, "alice")
	alice := players[0]

	// "cat" is a substring of both words but a whole word of neither
	s.Guess(alice, "cat")
	if alice.Score != 2 {
		t.Fatalf("substring guess must be penalized, score = %v", alice.Score)
	}
}

func TestIdiomCumulativeWin(t *testing.T) {
	idiom := content.Pack{Content: "gift horse", Hints: []string{"a", "b", "c"}}
	_, s, players, _ := newTestRoom(t, idiom, content.ModeIdioms, 3, "alice")
	alice := players[0]

	s.Guess(alice, "gift")
	if state, _, _ := s.snapshot(); state != StatePlaying {
		t.Fatalf("state = %v after first word", state)
	}
	s.Guess(alice, "horse")

	state, _, _ := s.snapshot()
	if state != StateWon {
		t.Fatalf("revealing every word must win, state = %v", state)
	}
	st := s.PublicState()
	if st.WinningPlayer == nil || *st.WinningPlayer != "alice" {
		t.Fatalf("winningPlayer = %v", st.WinningPlayer)
	}
}

func TestIdiomLettersFinishTheReveal(t *testing.T) {
	idiom := content.Pack{Content: "gift horse", Hints: []string{"a", "b", "c"}}
	_, s, players, _ := newTestRoom(t, idiom, content.ModeIdioms, 5, "alice")
	alice := players[0]

	// "gift" is revealed as a word, the rest letter by letter
	s.Guess(alice, "gift")
	for _, l := range []string{"h", "o", "r", "s"} {
		s.Guess(alice, l)
	}
	if state, _, _ := s.snapshot(); state != StatePlaying {
		t.Fatalf("state = %v before the final letter", state)
	}

	s.Guess(alice, "e")

	state, _, _ := s.snapshot()
	if state != StateWon {
		t.Fatalf("state = %v, want won once letters reveal the rest of the idiom", state)
	}
	st := s.PublicState()
	if st.WinningPlayer == nil || *st.WinningPlayer != "alice" {
		t.Fatalf("winningPlayer = %v, want alice", st.WinningPlayer)
	}
	if alice.Score != 5 {
		t.Fatalf("score = %v, no guess along the way was wrong", alice.Score)
	}
}

func TestCloseGuessNotice(t *testing.T) {
	_, s, players, _ := newTestRoom(t, testPack, content.ModeWords, 5, "alice")
	alice := players[0]
	drain(t, alice)

	s.Guess(alice, "computor")

	if alice.Score != 4 {
		t.Fatalf("near miss still costs a life, score = %v", alice.Score)
	}
	if !hasText(drain(t, alice), "Close! Your guess was 1 letters away") {
		t.Fatal("expected close-guess notice")
	}
}

func TestAllZeroScoresLoseRound(t *testing.T) {
	_, s, players, _ := newTestRoom(t, testPack, content.ModeWords, 3, "alice", "bob")
	alice := players[0]

	for _, l := range []string{"z", "x", "q", "j", "k"} {
		s.Guess(alice, l)
	}

	state, _, _ := s.snapshot()
	if state != StateLost {
		t.Fatalf("state = %v, want lost", state)
	}
	for _, p := range players {
		if p.Score != 0 {
			t.Errorf("%s score = %v, want 0", p.Name, p.Score)
		}
		if p.TotalPoints != 0 {
			t.Errorf("%s totalPoints = %d, want 0 after loss", p.Name, p.TotalPoints)
		}
	}
	st := s.PublicState()
	if st.Word == nil || *st.Word != "computer" {
		t.Fatal("word must be revealed after loss")
	}
}

func TestGuessIgnoredWhenNotPlaying(t *testing.T) {
	_, s, players, _ := newTestRoom(t, testPack, content.ModeWords, 3, "alice")
	alice := players[0]

	s.Guess(alice, "computer") // win
	s.Guess(alice, "x")        // must be ignored

	if alice.Score != 3 {
		t.Fatalf("guess after round end must be ignored, score = %v", alice.Score)
	}
	_, letters, _ := s.snapshot()
	if len(letters) != 0 {
		t.Fatalf("letters recorded after round end: %v", letters)
	}
}

func TestGuessFromNonMemberIgnored(t *testing.T) {
	_, s, _, _ := newTestRoom(t, testPack, content.ModeWords, 3, "alice")

	outsider := NewPlayer("conn-x", nil)
	outsider.Name = "mallory"
	s.Guess(outsider, "computer")

	if state, _, _ := s.snapshot(); state != StatePlaying {
		t.Fatalf("non-member guess must be ignored, state = %v", state)
	}
}
