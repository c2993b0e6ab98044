package room

import (
	"encoding/json"

	"wordparty/internal/content"
)

// WSMessage is the envelope for every inbound and outbound frame.
type WSMessage struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// Outbound event types.
const (
	TypeRoomCreated  = "roomCreated"
	TypeJoinedRoom   = "joinedRoom"
	TypePlayerJoined = "playerJoined"
	TypePlayerLeft   = "playerLeft"
	TypeGameState    = "gameState"
	TypeMessage      = "message"
	TypeError        = "error"
)

// Inbound command types.
const (
	cmdCreateRoom     = "createRoom"
	cmdJoinRoom       = "joinRoom"
	cmdStartGame      = "startGame"
	cmdMakeGuess      = "makeGuess"
	cmdRequestHint    = "requestHint"
	cmdChangeLanguage = "changeLanguage"
	cmdSwitchGameMode = "switchGameMode"
	cmdPlayAgain      = "playAgain"
)

type createRoomPayload struct {
	RoomID       string           `json:"roomId"`
	PlayerName   string           `json:"playerName"`
	APIKey       string           `json:"apiKey"`
	Language     content.Language `json:"language"`
	InitialLives float64          `json:"initialLives"`
	GameMode     content.Mode     `json:"gameMode"`
}

type joinRoomPayload struct {
	RoomID     string `json:"roomId"`
	PlayerName string `json:"playerName"`
}

type guessPayload struct {
	RoomID string `json:"roomId"`
	Guess  string `json:"guess"`
}

type roomPayload struct {
	RoomID string `json:"roomId"`
}

type changeLanguagePayload struct {
	RoomID   string           `json:"roomId"`
	APIKey   string           `json:"apiKey"`
	Language content.Language `json:"language"`
}

// PlayerSummary is the client-visible slice of a player.
type PlayerSummary struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Score       float64 `json:"score"`
	TotalPoints int     `json:"totalPoints"`
}

// HistoryInfo counts previously played content per mode. Only counts are
// exposed; the content strings themselves never leave the server.
type HistoryInfo struct {
	Words  int `json:"words"`
	Idioms int `json:"idioms"`
}

// PublicState is the only projection of a session ever sent to clients.
// The secret is carried in Word exclusively once the round is over.
type PublicState struct {
	Players         []PlayerSummary  `json:"players"`
	GuessedLetters  []string         `json:"guessedLetters"`
	GuessedWords    []string         `json:"guessedWords"`
	MaskedWord      string           `json:"maskedWord"`
	Hints           []string         `json:"hints"`
	TotalHints      int              `json:"totalHints"`
	GameState       GameState        `json:"gameState"`
	Language        content.Language `json:"language"`
	GameMode        content.Mode     `json:"gameMode"`
	Word            *string          `json:"word"`
	WinningPlayer   *string          `json:"winningPlayer"`
	LastRoundWinner *string          `json:"lastRoundWinner"`
	HistoryInfo     HistoryInfo      `json:"historyInfo"`
}

type errorPayload struct {
	Message string `json:"message"`
}

type textPayload struct {
	Text string `json:"text"`
}

type roomIDPayload struct {
	RoomID string `json:"roomId"`
}

type rosterPayload struct {
	PlayerName string          `json:"playerName"`
	Players    []PlayerSummary `json:"players"`
}
