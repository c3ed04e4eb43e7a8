package lobby

// Outbound event names. The websocket layer wraps these in its message
// envelope; tests assert against them directly.
const (
	EventLobbyJoined  = "lobby_joined"
	EventPlayerJoined = "player_joined"
	EventPlayerLeft   = "player_left"
	EventGameStarted  = "game_started"
	EventRoundStarted = "round_started"
	EventYourWord     = "your_word"
	EventTimeUpdate   = "time_update"
	EventRoundTimeUp  = "round_time_up"
	EventCorrectGuess = "correct_guess"
	EventChatMessage  = "chat_msg"
	EventCloseGuess   = "close_guess"
	EventGameEnded    = "game_ended"
	EventPlayerKicked = "player_kicked"
	EventActionError  = "action_error"
	EventStroke       = "stroke"
	EventDrawPoint    = "draw_point"
	EventClearCanvas  = "clear_canvas"
)

type RoundStartedData struct {
	Round    int    `json:"round"`
	DrawerID string `json:"drawerId"`
	Hint     string `json:"hint"`
	TimeLeft int    `json:"timeLeft"`
}

type YourWordData struct {
	Word string `json:"word"`
}

type TimeUpdateData struct {
	TimeLeft int `json:"timeLeft"`
}

type RoundTimeUpData struct {
	Word string `json:"word"`
}

type CorrectGuessData struct {
	PlayerID string    `json:"playerId"`
	Points   int       `json:"points"`
	Roster   []Summary `json:"roster"`
}

type ChatMessageData struct {
	PlayerID string `json:"playerId"`
	Name     string `json:"name"`
	Text     string `json:"text"`
}

type CloseGuessData struct {
	Text     string `json:"text"`
	Distance int    `json:"distance"`
}

type PlayerEventData struct {
	PlayerID string `json:"playerId"`
	Name     string `json:"name"`
}

type GameEndedData struct {
	Winner Summary `json:"winner"`
}

type ErrorData struct {
	Message string `json:"message"`
}

// Snapshot is the full lobby view sent to a joining player. The secret word
// itself is never part of it.
type Snapshot struct {
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	CreatorID string    `json:"creatorId"`
	Players   []Summary `json:"players"`
	IsPlaying bool      `json:"isPlaying"`
	Round     int       `json:"round"`
	DrawerID  string    `json:"drawerId,omitempty"`
	Hint      string    `json:"hint,omitempty"`
	TimeLeft  int       `json:"timeLeft"`
}
