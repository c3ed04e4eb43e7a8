package lobby

import "errors"

// Every failure the engine reports is one of these kinds. They are local
// and recoverable: the caller gets the error, shared state stays intact.
var (
	ErrLobbyFull           = errors.New("lobby is full")
	ErrLobbyNotFound       = errors.New("lobby not found")
	ErrInsufficientPlayers = errors.New("need at least 2 players to start")
	ErrNotAuthorized       = errors.New("not authorized")
	ErrInvalidAction       = errors.New("action not allowed in current state")
)
