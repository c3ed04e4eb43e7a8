package lobby

import (
	"time"

	"github.com/google/uuid"
)

// Player is the engine-side state of one connection. The transport keeps
// the socket; the lobby owns everything below.
type Player struct {
	ID         string    `json:"playerId"`
	Name       string    `json:"name"`
	LobbyCode  string    `json:"-"`
	Score      int       `json:"score"`
	HasGuessed bool      `json:"hasGuessed"`
	JoinedAt   time.Time `json:"-"`
}

func NewPlayer(name string) *Player {
	return &Player{
		ID:   uuid.NewString(),
		Name: name,
	}
}

// Summary is the roster projection sent to clients.
type Summary struct {
	ID         string `json:"playerId"`
	Name       string `json:"name"`
	Score      int    `json:"score"`
	HasGuessed bool   `json:"hasGuessed"`
}

func (p *Player) summary() Summary {
	return Summary{ID: p.ID, Name: p.Name, Score: p.Score, HasGuessed: p.HasGuessed}
}
