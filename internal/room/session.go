package room

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"

	"wordparty/internal/content"
)

// Session owns the full authoritative state of one room: players, the
// secret, guesses, lives and the round state machine. All mutation happens
// under mu, so one command is completely applied before the next touches
// the same room. The secret leaves the server only through the won/lost
// projection.
type Session struct {
	ID string

	mu              sync.RWMutex
	players         []*Player // insertion order = join order
	content         string    // always lower-cased
	hints           []string
	hintsRevealed   int
	language        content.Language
	mode            content.Mode
	guessedLetters  []string
	guessedWords    []string
	initialLives    float64
	state           GameState
	winningPlayer   *winner
	lastRoundWinner *winner
	history         map[content.Mode][]string
	apiKey          string
	fetchSeq        uint64 // bumped per round refresh, stale fetches are dropped
	closed          bool

	provider  content.Provider
	registry  *Registry
	broadcast chan []byte
	done      chan struct{}
}

func newSession(id string, req createRoomPayload, pack content.Pack, provider content.Provider, registry *Registry) *Session {
	s := &Session{
		ID:           id,
		content:      pack.Content,
		hints:        pack.Hints,
		language:     req.Language,
		mode:         req.GameMode,
		initialLives: req.InitialLives,
		state:        StateWaiting,
		history:      map[content.Mode][]string{req.GameMode: {pack.Content}},
		apiKey:       req.APIKey,
		provider:     provider,
		registry:     registry,
		broadcast:    make(chan []byte, 100),
		done:         make(chan struct{}),
	}
	return s
}

// Run fans broadcast frames out to every member until the room dies.
func (s *Session) Run() {
	for {
		select {
		case msg := <-s.broadcast:
			s.mu.RLock()
			for _, p := range s.players {
				p.trySend(msg)
			}
			s.mu.RUnlock()
		case <-s.done:
			return
		}
	}
}

func (s *Session) broadcastEvent(event string, payload any) {
	msg, err := encodeEvent(event, payload)
	if err != nil {
		log.Error().Err(err).Str("room", s.ID).Str("event", event).Msg("marshal broadcast")
		return
	}
	select {
	case s.broadcast <- msg:
	case <-s.done:
	}
}

func (s *Session) broadcastState() {
	s.broadcastEvent(TypeGameState, s.PublicState())
}

// AddPlayer appends a joining player with a fresh life pool and tells the
// room, then sends the joiner its private joinedRoom + gameState pair.
func (s *Session) AddPlayer(p *Player) {
	s.mu.Lock()
	p.Score = s.initialLives
	p.TotalPoints = 0
	s.players = append(s.players, p)
	roster := s.summariesLocked()
	s.mu.Unlock()

	p.emit(TypeJoinedRoom, roomIDPayload{RoomID: s.ID})
	p.emit(TypeGameState, s.PublicState())
	s.broadcastEvent(TypePlayerJoined, rosterPayload{PlayerName: p.Name, Players: roster})
	log.Info().Str("room", s.ID).Str("player", p.Name).Msg("player joined")
}

// RemovePlayer drops a departing player. The last player out destroys the
// room; otherwise the remaining members get the new roster.
func (s *Session) RemovePlayer(p *Player) {
	s.mu.Lock()
	idx := slices.Index(s.players, p)
	if idx == -1 {
		s.mu.Unlock()
		return
	}
	s.players = slices.Delete(s.players, idx, idx+1)
	empty := len(s.players) == 0
	roster := s.summariesLocked()
	if empty {
		s.closed = true
	}
	s.mu.Unlock()

	if empty {
		s.registry.remove(s.ID)
		close(s.done)
		log.Info().Str("room", s.ID).Msg("room deleted, no players left")
		return
	}
	s.broadcastEvent(TypePlayerLeft, rosterPayload{PlayerName: p.Name, Players: roster})
}

// Start moves the room into a playing round.
func (s *Session) Start() {
	s.mu.Lock()
	s.state = StatePlaying
	s.winningPlayer = nil
	s.mu.Unlock()
	s.broadcastState()
}

// Guess evaluates a letter or phrase guess from p.
func (s *Session) Guess(p *Player, raw string) {
	guess := strings.ToLower(strings.TrimSpace(raw))
	if guess == "" {
		return
	}

	s.mu.Lock()
	if s.state != StatePlaying || !slices.Contains(s.players, p) {
		s.mu.Unlock()
		return
	}
	mode := s.mode
	res := s.applyGuess(p, guess)
	s.mu.Unlock()

	if res.duplicate {
		// requester only, no state change to announce
		switch {
		case res.letter:
			p.emit(TypeMessage, textPayload{Text: "Letter already guessed"})
		case mode == content.ModeIdioms:
			p.emit(TypeMessage, textPayload{Text: "Word/phrase already guessed"})
		default:
			p.emit(TypeMessage, textPayload{Text: "Phrase already guessed"})
		}
		return
	}

	if res.partialWord {
		p.emit(TypeMessage, textPayload{Text: "You correctly guessed a word in the idiom!"})
	}
	if res.closeCall > 0 {
		p.emit(TypeMessage, textPayload{Text: fmt.Sprintf("Close! Your guess was %d letters away", res.closeCall)})
	}
	if res.won {
		log.Info().Str("room", s.ID).Str("player", p.Name).Msg("round won")
	}
	if res.lost {
		log.Info().Str("room", s.ID).Msg("round lost")
	}
	s.broadcastState()
}

// Hint reveals the next hint to the room at half a life apiece, or tells
// the requester there are none left.
func (s *Session) Hint(p *Player) {
	s.mu.Lock()
	if s.state != StatePlaying {
		s.mu.Unlock()
		return
	}
	if s.hintsRevealed >= len(s.hints) {
		s.mu.Unlock()
		p.emit(TypeMessage, textPayload{Text: "No more hints available"})
		return
	}
	s.hintsRevealed++
	n := s.hintsRevealed
	text := s.hints[n-1]
	s.applyHintCost()
	s.mu.Unlock()

	s.broadcastState()
	s.broadcastEvent(TypeMessage, textPayload{Text: fmt.Sprintf("Hint %d: %s", n, text)})
}

// ChangeLanguage starts a fresh round in the given language, same mode.
func (s *Session) ChangeLanguage(ctx context.Context, apiKey string, lang content.Language) {
	s.mu.RLock()
	mode := s.mode
	s.mu.RUnlock()

	if _, ok := s.refreshRound(ctx, apiKey, lang, mode, false); !ok {
		return
	}
	s.broadcastState()
	s.broadcastEvent(TypeMessage, textPayload{Text: msgLanguageChanged(lang)})
}

// SwitchMode toggles words/idioms and starts a fresh round.
func (s *Session) SwitchMode(ctx context.Context) {
	s.mu.RLock()
	lang := s.language
	mode := content.ModeWords
	if s.mode == content.ModeWords {
		mode = content.ModeIdioms
	}
	s.mu.RUnlock()

	if _, ok := s.refreshRound(ctx, "", lang, mode, false); !ok {
		return
	}
	s.broadcastState()
	s.broadcastEvent(TypeMessage, textPayload{Text: msgModeSwitched(lang, mode)})
}

// PlayAgain starts a fresh round with the same players, language and mode.
// Total points carry over; the prior round's winner is remembered for
// display.
func (s *Session) PlayAgain(ctx context.Context) {
	s.mu.RLock()
	lang := s.language
	mode := s.mode
	s.mu.RUnlock()

	prev, ok := s.refreshRound(ctx, "", lang, mode, true)
	if !ok {
		return
	}
	s.broadcastState()
	name := ""
	if prev != nil {
		name = prev.Name
	}
	s.broadcastEvent(TypeMessage, textPayload{Text: msgNewGame(lang, name)})
}

// refreshRound draws new content and resets the round. The provider call
// runs outside the lock so a slow generator never stalls the room (or any
// other room); fetchSeq versions the draw, and a result that lands after
// the room was refreshed again or destroyed is discarded. Returns the
// winner of the round being replaced and whether the refresh applied.
func (s *Session) refreshRound(ctx context.Context, apiKey string, lang content.Language, mode content.Mode, carryWinner bool) (*winner, bool) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil, false
	}
	if apiKey == "" {
		apiKey = s.apiKey
	} else {
		s.apiKey = apiKey
	}
	s.fetchSeq++
	seq := s.fetchSeq
	hist := slices.Clone(s.history[mode])
	s.mu.Unlock()

	pack := s.provider.Fetch(ctx, content.Request{
		APIKey:   apiKey,
		Language: lang,
		Mode:     mode,
		History:  hist,
	})

	s.mu.Lock()
	if s.closed || s.fetchSeq != seq {
		s.mu.Unlock()
		log.Debug().Str("room", s.ID).Msg("discarding stale content fetch")
		return nil, false
	}
	prev := s.winningPlayer
	if carryWinner {
		s.lastRoundWinner = prev
	}
	s.content = pack.Content
	s.hints = pack.Hints
	s.language = lang
	s.mode = mode
	s.guessedLetters = nil
	s.guessedWords = nil
	s.hintsRevealed = 0
	s.state = StatePlaying
	s.winningPlayer = nil
	s.history[mode] = append(s.history[mode], pack.Content)
	for _, p := range s.players {
		p.Score = s.initialLives
	}
	s.mu.Unlock()

	log.Debug().Str("room", s.ID).Str("mode", string(mode)).Str("content", pack.Content).Msg("new round")
	return prev, true
}

// PublicState builds the sanitized projection sent to clients. The secret
// appears only once the round is over.
func (s *Session) PublicState() PublicState {
	s.mu.RLock()
	defer s.mu.RUnlock()

	over := s.state == StateWon || s.state == StateLost
	masked := Mask(s.content, s.guessedLetters, s.guessedWords, s.mode)
	if over {
		masked = s.content
	}

	st := PublicState{
		Players:        s.summariesLocked(),
		GuessedLetters: append([]string{}, s.guessedLetters...),
		GuessedWords:   append([]string{}, s.guessedWords...),
		MaskedWord:     masked,
		Hints:          append([]string{}, s.hints[:s.hintsRevealed]...),
		TotalHints:     len(s.hints),
		GameState:      s.state,
		Language:       s.language,
		GameMode:       s.mode,
		HistoryInfo: HistoryInfo{
			Words:  len(s.history[content.ModeWords]),
			Idioms: len(s.history[content.ModeIdioms]),
		},
	}
	if over {
		word := s.content
		st.Word = &word
	}
	if s.winningPlayer != nil {
		name := s.winningPlayer.Name
		st.WinningPlayer = &name
	}
	if s.lastRoundWinner != nil {
		name := s.lastRoundWinner.Name
		st.LastRoundWinner = &name
	}
	return st
}

func (s *Session) summariesLocked() []PlayerSummary {
	out := make([]PlayerSummary, 0, len(s.players))
	for _, p := range s.players {
		out = append(out, PlayerSummary{
			ID:          p.ID,
			Name:        p.Name,
			Score:       p.Score,
			TotalPoints: p.TotalPoints,
		})
	}
	return out
}
