package room

// GameState is the round lifecycle: waiting → playing → won | lost.
// playAgain, switchGameMode and changeLanguage re-enter playing with a
// fresh content draw.
type GameState string

const (
	StateWaiting GameState = "waiting"
	StatePlaying GameState = "playing"
	StateWon     GameState = "won"
	StateLost    GameState = "lost"
)

// winner is an immutable snapshot of the player that completed the winning
// guess, taken at win time so a later disconnect cannot dangle it.
type winner struct {
	Name  string
	Score float64
}
