package utils

import (
	"crypto/rand"
	"encoding/hex"
)

// NewRoomID returns a short random room identifier, used when a client
// creates a room without supplying one. 4 bytes = 8 hex chars.
func NewRoomID() string {
	b := make([]byte, 4)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}
