package room

import (
	"context"
	"encoding/json"
	"testing"

	"wordparty/internal/content"
)

// stubProvider serves canned packs in order, repeating the last one.
type stubProvider struct {
	packs   []content.Pack
	calls   int
	lastReq content.Request
}

func (sp *stubProvider) Fetch(_ context.Context, req content.Request) content.Pack {
	sp.lastReq = req
	i := sp.calls
	if i >= len(sp.packs) {
		i = len(sp.packs) - 1
	}
	sp.calls++
	return sp.packs[i]
}

var testPack = content.Pack{
	Content: "computer",
	Hints:   []string{"It is an object", "Used for work", "Has keyboard and screen"},
}

// newTestRoom builds a registry-backed room with connectionless players and
// moves it into a playing round.
func newTestRoom(t *testing.T, pack content.Pack, mode content.Mode, lives float64, names ...string) (*Registry, *Session, []*Player, *stubProvider) {
	t.Helper()
	sp := &stubProvider{packs: []content.Pack{pack}}
	rg := NewRegistry(sp)

	host := NewPlayer("conn-0", nil)
	s, err := rg.CreateRoom(context.Background(), host, createRoomPayload{
		RoomID:       "room1",
		PlayerName:   names[0],
		Language:     content.LangEnglish,
		InitialLives: lives,
		GameMode:     mode,
	})
	if err != nil {
		t.Fatalf("CreateRoom: %v", err)
	}

	players := []*Player{host}
	for _, name := range names[1:] {
		p := NewPlayer("conn-"+name, nil)
		p.Name = name
		s.AddPlayer(p)
		players = append(players, p)
	}

	s.Start()
	return rg, s, players, sp
}

// drain empties a player's send buffer into decoded frames.
func drain(t *testing.T, p *Player) []WSMessage {
	t.Helper()
	var out []WSMessage
	for {
		select {
		case b := <-p.send:
			var m WSMessage
			if err := json.Unmarshal(b, &m); err != nil {
				t.Fatalf("bad frame: %v", err)
			}
			out = append(out, m)
		default:
			return out
		}
	}
}

// hasText reports whether the frames contain a message event with the given
// text.
func hasText(frames []WSMessage, text string) bool {
	for _, m := range frames {
		if m.Type != TypeMessage {
			continue
		}
		var p textPayload
		if json.Unmarshal(m.Data, &p) == nil && p.Text == text {
			return true
		}
	}
	return false
}

func (s *Session) snapshot() (GameState, []string, []string) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state, append([]string{}, s.guessedLetters...), append([]string{}, s.guessedWords...)
}
