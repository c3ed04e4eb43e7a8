package lobby

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/agnivade/levenshtein"
	"go.uber.org/zap"

	"sketchparty/internal/word"
)

// Settings are the game knobs, fixed per lobby at creation time.
type Settings struct {
	RoundSeconds       int
	RoundsPerGame      int
	RevealSeconds      int
	PointsCorrectGuess int
	PointsDrawingBonus int
}

type gameState int

const (
	stateWaiting gameState = iota
	statePlaying
	stateReveal
)

// Lobby is a room with a stable code, bounded membership and the round
// state machine. Every mutation — join, leave, guess, tick, reveal — runs
// under one mutex, so near-simultaneous events serialize instead of racing.
// The Broadcaster is called with that mutex held and must not block.
type Lobby struct {
	ID         string
	Code       string
	Name       string
	MaxPlayers int
	IsPrivate  bool
	CreatedAt  time.Time

	settings Settings
	bank     *word.Bank

	mu        sync.Mutex
	bc        Broadcaster
	creatorID string
	players   []*Player // join order

	state         gameState
	round         int
	currentDrawer string
	lastDrawer    string
	currentWord   string
	wordHint      string
	timeLeft      int
	guessed       map[string]bool

	clock       *RoundClock
	revealTimer *time.Timer
}

func New(id, code, name string, maxPlayers int, private bool, settings Settings, bank *word.Bank, bc Broadcaster) *Lobby {
	if bc == nil {
		bc = NopBroadcaster{}
	}
	return &Lobby{
		ID:         id,
		Code:       code,
		Name:       name,
		MaxPlayers: maxPlayers,
		IsPrivate:  private,
		CreatedAt:  time.Now(),
		settings:   settings,
		bank:       bank,
		bc:         bc,
		guessed:    make(map[string]bool),
		clock:      NewRoundClock(),
	}
}

// AddPlayer admits p, making it the creator if the lobby had none. The
// joiner gets the full snapshot; everyone else gets a player_joined.
func (l *Lobby) AddPlayer(p *Player) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if len(l.players) >= l.MaxPlayers {
		return ErrLobbyFull
	}
	for _, q := range l.players {
		if q.ID == p.ID {
			return fmt.Errorf("player %s already joined: %w", p.ID, ErrInvalidAction)
		}
	}

	p.LobbyCode = l.Code
	p.JoinedAt = time.Now()
	l.players = append(l.players, p)
	if l.creatorID == "" {
		l.creatorID = p.ID
	}

	zap.S().Infof("lobby %s: %s (%s) joined, %d/%d", l.Code, p.Name, p.ID, len(l.players), l.MaxPlayers)

	l.bc.To(p.ID, EventLobbyJoined, l.snapshotLocked())
	l.bc.Broadcast(EventPlayerJoined, PlayerEventData{PlayerID: p.ID, Name: p.Name})
	return nil
}

// RemovePlayer drops a member by id. Unknown ids are a no-op. Removing the
// creator hands the role to the earliest remaining joiner; removing the
// current drawer mid-round ends the round immediately.
func (l *Lobby) RemovePlayer(id string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.removeLocked(id)
}

func (l *Lobby) removeLocked(id string) {
	idx := -1
	for i, p := range l.players {
		if p.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return
	}

	p := l.players[idx]
	l.players = append(l.players[:idx], l.players[idx+1:]...)
	delete(l.guessed, id)

	if id == l.creatorID {
		l.creatorID = ""
		if len(l.players) > 0 {
			l.creatorID = l.players[0].ID
		}
	}

	zap.S().Infof("lobby %s: %s (%s) left, %d remain", l.Code, p.Name, p.ID, len(l.players))
	l.bc.Broadcast(EventPlayerLeft, PlayerEventData{PlayerID: p.ID, Name: p.Name})

	if len(l.players) == 0 {
		l.teardownLocked()
		return
	}
	if l.state != statePlaying {
		return
	}
	if id == l.currentDrawer {
		l.clock.Stop()
		l.endRoundLocked(false)
		return
	}
	// The departed player may have been the last hold-out. The clock check
	// keeps a removal arriving after an earlier FinishEarly from paying the
	// drawer twice.
	if l.clock.State() == ClockRunning && l.allGuessedLocked() {
		if d := l.playerLocked(l.currentDrawer); d != nil {
			d.Score += l.settings.PointsDrawingBonus
		}
		l.clock.FinishEarly()
	}
}

// Kick removes target on behalf of the lobby creator.
func (l *Lobby) Kick(requesterID, targetID string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if requesterID != l.creatorID {
		return ErrNotAuthorized
	}
	found := false
	for _, p := range l.players {
		if p.ID == targetID {
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("kick target not in lobby: %w", ErrInvalidAction)
	}

	l.bc.Broadcast(EventPlayerKicked, PlayerEventData{PlayerID: targetID})
	l.removeLocked(targetID)
	return nil
}

// StartGame begins round 1. Needs at least two members and a lobby that is
// not already mid-game.
func (l *Lobby) StartGame() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.state != stateWaiting {
		return fmt.Errorf("game already running: %w", ErrInvalidAction)
	}
	if len(l.players) < 2 {
		return ErrInsufficientPlayers
	}

	l.round = 1
	l.bc.Broadcast(EventGameStarted, struct {
		Rounds int `json:"rounds"`
	}{l.settings.RoundsPerGame})
	l.startRoundLocked()
	return nil
}

// startRoundLocked resets per-round state, draws a fresh word and drawer,
// and arms the clock. The word goes to the drawer alone.
func (l *Lobby) startRoundLocked() {
	l.guessed = make(map[string]bool)
	for _, p := range l.players {
		p.HasGuessed = false
	}

	l.currentWord = l.bank.Pick()
	l.wordHint = word.Hint(l.currentWord)
	l.timeLeft = l.settings.RoundSeconds
	l.currentDrawer = nextDrawer(l.players, l.lastDrawer)
	l.lastDrawer = l.currentDrawer
	l.state = statePlaying

	zap.S().Infof("lobby %s: round %d/%d, drawer %s", l.Code, l.round, l.settings.RoundsPerGame, l.currentDrawer)

	l.bc.Broadcast(EventRoundStarted, RoundStartedData{
		Round:    l.round,
		DrawerID: l.currentDrawer,
		Hint:     l.wordHint,
		TimeLeft: l.timeLeft,
	})
	l.bc.To(l.currentDrawer, EventYourWord, YourWordData{Word: l.currentWord})

	l.clock.Start(l.settings.RoundSeconds, l.onTick, l.onClockDone)
}

func (l *Lobby) onTick(remaining int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.state != statePlaying {
		return
	}
	l.timeLeft = remaining
	l.bc.Broadcast(EventTimeUpdate, TimeUpdateData{TimeLeft: remaining})
}

func (l *Lobby) onClockDone(reason DoneReason) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.state != statePlaying {
		return
	}
	l.endRoundLocked(reason == ReasonAllGuessed)
}

// endRoundLocked closes the current round. Unless everyone solved the word
// it is revealed to the whole lobby. The last round ends the game; any
// other round schedules the next one after the reveal pause.
func (l *Lobby) endRoundLocked(allGuessed bool) {
	if !allGuessed {
		l.bc.Broadcast(EventRoundTimeUp, RoundTimeUpData{Word: l.currentWord})
	}
	l.timeLeft = 0

	if l.round >= l.settings.RoundsPerGame {
		l.endGameLocked()
		return
	}

	l.state = stateReveal
	l.revealTimer = time.AfterFunc(time.Duration(l.settings.RevealSeconds)*time.Second, func() {
		l.mu.Lock()
		defer l.mu.Unlock()
		if l.state != stateReveal {
			return
		}
		l.round++
		l.startRoundLocked()
	})
}

// endGameLocked reports the winner once, then recycles the lobby back to
// waiting with all scores and flags cleared.
func (l *Lobby) endGameLocked() {
	if w := l.winnerLocked(); w != nil {
		zap.S().Infof("lobby %s: game over, winner %s (%d pts)", l.Code, w.Name, w.Score)
		l.bc.Broadcast(EventGameEnded, GameEndedData{Winner: w.summary()})
	}

	for _, p := range l.players {
		p.Score = 0
		p.HasGuessed = false
	}
	l.round = 0
	l.currentDrawer = ""
	l.lastDrawer = ""
	l.currentWord = ""
	l.wordHint = ""
	l.timeLeft = 0
	l.guessed = make(map[string]bool)
	l.state = stateWaiting
}

// winnerLocked picks the strictly highest score; ties go to the earliest
// joiner, so the result is deterministic.
func (l *Lobby) winnerLocked() *Player {
	var best *Player
	for _, p := range l.players {
		if best == nil || p.Score > best.Score {
			best = p
		}
	}
	return best
}

// SubmitGuess evaluates text against the secret word. Callers that may not
// guess right now — the drawer, players who already solved it, anyone while
// no round is running — are ignored without feedback. A miss goes to chat;
// a near miss additionally gets a private close_guess nudge.
func (l *Lobby) SubmitGuess(playerID, text string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.state != statePlaying || playerID == l.currentDrawer {
		return
	}
	p := l.playerLocked(playerID)
	if p == nil || p.HasGuessed {
		return
	}

	guess := strings.ToLower(strings.TrimSpace(text))
	target := strings.ToLower(strings.TrimSpace(l.currentWord))

	if guess == target {
		p.HasGuessed = true
		l.guessed[playerID] = true
		p.Score += l.settings.PointsCorrectGuess

		l.bc.Broadcast(EventCorrectGuess, CorrectGuessData{
			PlayerID: playerID,
			Points:   l.settings.PointsCorrectGuess,
			Roster:   l.rosterLocked(),
		})

		if l.allGuessedLocked() {
			if d := l.playerLocked(l.currentDrawer); d != nil {
				d.Score += l.settings.PointsDrawingBonus
			}
			l.clock.FinishEarly()
		}
		return
	}

	l.bc.Broadcast(EventChatMessage, ChatMessageData{PlayerID: playerID, Name: p.Name, Text: text})

	if dist := levenshtein.ComputeDistance(guess, target); dist > 0 && dist <= 2 {
		l.bc.To(playerID, EventCloseGuess, CloseGuessData{Text: guess, Distance: dist})
	}
}

// ForwardDrawing relays a stroke, draw_point or clear_canvas payload to
// everyone else, but only while sender is the active drawer.
func (l *Lobby) ForwardDrawing(senderID, event string, payload json.RawMessage) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.state != statePlaying || senderID != l.currentDrawer {
		return
	}
	l.bc.Except(senderID, event, payload)
}

// allGuessedLocked reports whether every non-drawer member solved the word.
// An empty eligible set never counts as all-guessed.
func (l *Lobby) allGuessedLocked() bool {
	eligible := 0
	for _, p := range l.players {
		if p.ID == l.currentDrawer {
			continue
		}
		eligible++
		if !p.HasGuessed {
			return false
		}
	}
	return eligible > 0
}

func (l *Lobby) playerLocked(id string) *Player {
	for _, p := range l.players {
		if p.ID == id {
			return p
		}
	}
	return nil
}

func (l *Lobby) rosterLocked() []Summary {
	roster := make([]Summary, 0, len(l.players))
	for _, p := range l.players {
		roster = append(roster, p.summary())
	}
	return roster
}

func (l *Lobby) snapshotLocked() Snapshot {
	return Snapshot{
		Code:      l.Code,
		Name:      l.Name,
		CreatorID: l.creatorID,
		Players:   l.rosterLocked(),
		IsPlaying: l.state != stateWaiting,
		Round:     l.round,
		DrawerID:  l.currentDrawer,
		Hint:      l.wordHint,
		TimeLeft:  l.timeLeft,
	}
}

// teardownLocked cancels timers and clears round state. Runs when the last
// member leaves or the registry removes the lobby.
func (l *Lobby) teardownLocked() {
	l.clock.Stop()
	if l.revealTimer != nil {
		l.revealTimer.Stop()
		l.revealTimer = nil
	}
	l.round = 0
	l.currentDrawer = ""
	l.lastDrawer = ""
	l.currentWord = ""
	l.wordHint = ""
	l.timeLeft = 0
	l.guessed = make(map[string]bool)
	l.state = stateWaiting
}

// Close tears the lobby down; safe to call more than once.
func (l *Lobby) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.teardownLocked()
}

func (l *Lobby) Snapshot() Snapshot {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.snapshotLocked()
}

func (l *Lobby) PlayerCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.players)
}

func (l *Lobby) CreatorID() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.creatorID
}

// IsDrawer reports whether id is the active drawer of a running round.
func (l *Lobby) IsDrawer(id string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state == statePlaying && id == l.currentDrawer
}
