package room

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog/log"

	"wordparty/internal/content"
	"wordparty/pkg/utils"
)

var (
	ErrRoomExists   = errors.New("room already exists")
	ErrRoomNotFound = errors.New("room not found")
)

const defaultLives = 5

// Registry maps room ids to live sessions. A room enters the map on
// createRoom and leaves it when its last player disconnects.
type Registry struct {
	mu       sync.RWMutex
	rooms    map[string]*Session
	provider content.Provider
}

func NewRegistry(p content.Provider) *Registry {
	return &Registry{
		rooms:    make(map[string]*Session),
		provider: p,
	}
}

// CreateRoom draws the first content, builds a waiting session with host as
// its only member and starts its fan-out loop. Duplicate ids are rejected.
func (rg *Registry) CreateRoom(ctx context.Context, host *Player, req createRoomPayload) (*Session, error) {
	if req.RoomID == "" {
		req.RoomID = utils.NewRoomID()
	}
	if req.GameMode == "" {
		req.GameMode = content.ModeWords
	}
	if req.Language == "" {
		req.Language = content.LangEnglish
	}
	if req.InitialLives <= 0 {
		req.InitialLives = defaultLives
	}
	if req.PlayerName == "" {
		req.PlayerName = "Host"
	}

	rg.mu.RLock()
	_, taken := rg.rooms[req.RoomID]
	rg.mu.RUnlock()
	if taken {
		return nil, ErrRoomExists
	}

	pack := rg.provider.Fetch(ctx, content.Request{
		APIKey:   req.APIKey,
		Language: req.Language,
		Mode:     req.GameMode,
	})

	s := newSession(req.RoomID, req, pack, rg.provider, rg)
	host.Name = req.PlayerName
	host.Score = req.InitialLives
	host.TotalPoints = 0
	s.players = []*Player{host}

	rg.mu.Lock()
	if _, taken := rg.rooms[req.RoomID]; taken {
		rg.mu.Unlock()
		return nil, ErrRoomExists
	}
	rg.rooms[req.RoomID] = s
	rg.mu.Unlock()

	go s.Run()
	log.Info().Str("room", s.ID).Str("mode", string(req.GameMode)).Str("language", string(req.Language)).Msg("room created")
	return s, nil
}

func (rg *Registry) Get(id string) (*Session, bool) {
	rg.mu.RLock()
	defer rg.mu.RUnlock()
	s, ok := rg.rooms[id]
	return s, ok
}

func (rg *Registry) remove(id string) {
	rg.mu.Lock()
	delete(rg.rooms, id)
	rg.mu.Unlock()
}

// RoomInfo is the lobby-listing view of a room. No secrets.
type RoomInfo struct {
	RoomID    string           `json:"roomId"`
	Players   int              `json:"players"`
	GameState GameState        `json:"gameState"`
	GameMode  content.Mode     `json:"gameMode"`
	Language  content.Language `json:"language"`
}

// Snapshot lists all live rooms for the lobby endpoint.
func (rg *Registry) Snapshot() []RoomInfo {
	rg.mu.RLock()
	sessions := make([]*Session, 0, len(rg.rooms))
	for _, s := range rg.rooms {
		sessions = append(sessions, s)
	}
	rg.mu.RUnlock()

	out := make([]RoomInfo, 0, len(sessions))
	for _, s := range sessions {
		s.mu.RLock()
		out = append(out, RoomInfo{
			RoomID:    s.ID,
			Players:   len(s.players),
			GameState: s.state,
			GameMode:  s.mode,
			Language:  s.language,
		})
		s.mu.RUnlock()
	}
	return out
}
