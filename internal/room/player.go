package room

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/gofiber/contrib/websocket"
	"github.com/rs/zerolog/log"
)

const (
	pingInterval  = 54 * time.Second
	writeDeadline = 10 * time.Second
)

// Player is one websocket connection and its in-game identity. Score and
// TotalPoints are guarded by the session mutex once the player is in a
// room.
type Player struct {
	ID          string
	Name        string
	Score       float64
	TotalPoints int

	conn    *websocket.Conn
	send    chan []byte
	ctx     context.Context
	cancel  context.CancelFunc
	once    sync.Once
	session *Session // room this connection is attached to, nil before create/join
}

func NewPlayer(id string, c *websocket.Conn) *Player {
	ctx, cancel := context.WithCancel(context.Background())
	return &Player{
		ID:     id,
		conn:   c,
		send:   make(chan []byte, 256),
		ctx:    ctx,
		cancel: cancel,
	}
}

func (p *Player) cleanup() {
	p.once.Do(func() {
		p.cancel()
		if p.conn != nil {
			p.conn.Close()
		}
	})
}

func encodeEvent(event string, payload any) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return json.Marshal(WSMessage{Type: event, Data: data})
}

// emit queues an event for this connection only.
func (p *Player) emit(event string, payload any) {
	msg, err := encodeEvent(event, payload)
	if err != nil {
		log.Error().Err(err).Str("player", p.ID).Str("event", event).Msg("marshal event")
		return
	}
	p.trySend(msg)
}

func (p *Player) trySend(msg []byte) {
	select {
	case p.send <- msg:
	case <-p.ctx.Done():
	default:
		log.Warn().Str("player", p.ID).Msg("send buffer full, dropping frame")
	}
}

// ReadPump consumes and dispatches inbound frames until the connection
// drops, then detaches the player from its room.
func (p *Player) ReadPump(reg *Registry) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Str("player", p.ID).Interface("panic", r).Msg("readPump panic")
		}
		p.cleanup()
		if s := p.session; s != nil {
			s.RemovePlayer(p)
		}
	}()

	for {
		select {
		case <-p.ctx.Done():
			return
		default:
			_, msg, err := p.conn.ReadMessage()
			if err != nil {
				return
			}

			var wsMsg WSMessage
			if err := json.Unmarshal(msg, &wsMsg); err != nil {
				log.Warn().Err(err).Str("player", p.ID).Msg("invalid frame")
				continue
			}
			p.dispatch(reg, wsMsg)
		}
	}
}

// dispatch routes one command. createRoom/joinRoom attach the connection to
// a session; every other command resolves its room from the payload, and a
// missing room is answered with an error event instead of being fatal.
func (p *Player) dispatch(reg *Registry, msg WSMessage) {
	switch msg.Type {
	case cmdCreateRoom:
		var payload createRoomPayload
		if err := json.Unmarshal(msg.Data, &payload); err != nil {
			p.emit(TypeError, errorPayload{Message: "Failed to create room"})
			return
		}
		s, err := reg.CreateRoom(p.ctx, p, payload)
		if err != nil {
			log.Warn().Err(err).Str("player", p.ID).Msg("create room")
			p.emit(TypeError, errorPayload{Message: "Failed to create room"})
			return
		}
		p.attach(s)
		p.emit(TypeRoomCreated, roomIDPayload{RoomID: s.ID})
		p.emit(TypeGameState, s.PublicState())

	case cmdJoinRoom:
		var payload joinRoomPayload
		if err := json.Unmarshal(msg.Data, &payload); err != nil {
			return
		}
		s, ok := reg.Get(payload.RoomID)
		if !ok {
			p.emit(TypeError, errorPayload{Message: "Game room does not exist"})
			return
		}
		p.Name = payload.PlayerName
		p.attach(s)
		s.AddPlayer(p)

	case cmdStartGame:
		if s, ok := p.resolve(reg, msg.Data); ok {
			s.Start()
		}

	case cmdMakeGuess:
		var payload guessPayload
		if err := json.Unmarshal(msg.Data, &payload); err != nil {
			return
		}
		s, ok := reg.Get(payload.RoomID)
		if !ok {
			p.emit(TypeError, errorPayload{Message: "Game room does not exist"})
			return
		}
		s.Guess(p, payload.Guess)

	case cmdRequestHint:
		if s, ok := p.resolve(reg, msg.Data); ok {
			s.Hint(p)
		}

	case cmdChangeLanguage:
		var payload changeLanguagePayload
		if err := json.Unmarshal(msg.Data, &payload); err != nil {
			return
		}
		s, ok := reg.Get(payload.RoomID)
		if !ok {
			p.emit(TypeError, errorPayload{Message: "Game room does not exist"})
			return
		}
		s.ChangeLanguage(p.ctx, payload.APIKey, payload.Language)

	case cmdSwitchGameMode:
		if s, ok := p.resolve(reg, msg.Data); ok {
			s.SwitchMode(p.ctx)
		}

	case cmdPlayAgain:
		if s, ok := p.resolve(reg, msg.Data); ok {
			s.PlayAgain(p.ctx)
		}

	default:
		log.Debug().Str("player", p.ID).Str("type", msg.Type).Msg("unknown command")
	}
}

// attach moves the connection to a new session. A connection belongs to at
// most one room, so any previous membership is dropped first; otherwise the
// old room would keep a ghost member, broadcast to it forever and never
// empty out.
func (p *Player) attach(s *Session) {
	if prev := p.session; prev != nil && prev != s {
		prev.RemovePlayer(p)
	}
	p.session = s
}

// resolve looks up the room named in a bare {roomId} payload.
func (p *Player) resolve(reg *Registry, data json.RawMessage) (*Session, bool) {
	var payload roomPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, false
	}
	s, ok := reg.Get(payload.RoomID)
	if !ok {
		p.emit(TypeError, errorPayload{Message: "Game room does not exist"})
		return nil, false
	}
	return s, true
}

// WritePump drains the send buffer to the socket and keeps the connection
// alive with pings.
func (p *Player) WritePump() {
	ticker := time.NewTicker(pingInterval)
	defer func() {
		ticker.Stop()
		p.cleanup()
	}()

	for {
		select {
		case <-p.ctx.Done():
			return

		case msg := <-p.send:
			p.conn.SetWriteDeadline(time.Now().Add(writeDeadline))
			if err := p.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				log.Debug().Err(err).Str("player", p.ID).Msg("write failed")
				return
			}

		case <-ticker.C:
			p.conn.SetWriteDeadline(time.Now().Add(writeDeadline))
			if err := p.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
