package ws

import "encoding/json"

// WSMessage is the envelope for everything on the wire, both directions.
type WSMessage struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// Inbound message types.
const (
	msgStartGame   = "start_game"
	msgGuess       = "guess"
	msgStroke      = "stroke"
	msgDrawPoint   = "draw_point"
	msgClearCanvas = "clear_canvas"
	msgKick        = "kick"
	msgLeave       = "leave"
)

type guessPayload struct {
	Text string `json:"text"`
}

type kickPayload struct {
	TargetID string `json:"targetId"`
}
