package lobby

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"sketchparty/internal/word"
	"sketchparty/pkg/utils"
)

// BroadcasterFactory binds a transport to a freshly created lobby, keyed by
// lobby code.
type BroadcasterFactory func(code string) Broadcaster

// CreateParams is the caller-facing shape of lobby creation.
type CreateParams struct {
	Name       string
	MaxPlayers int
	IsPrivate  bool
}

// PublicLobby is the projection shown on the public lobby list.
type PublicLobby struct {
	Code        string `json:"code"`
	Name        string `json:"name"`
	PlayerCount int    `json:"playerCount"`
	MaxPlayers  int    `json:"maxPlayers"`
}

// Registry owns every active lobby: create, lookup by code, public listing,
// removal and the periodic sweep of abandoned lobbies. Its own lock covers
// only the maps; each lobby serializes its own mutations.
type Registry struct {
	settings          Settings
	defaultMaxPlayers int
	codeBytes         int
	bank              *word.Bank
	factory           BroadcasterFactory

	mu     sync.RWMutex
	byCode map[string]*Lobby
	byID   map[string]*Lobby

	sweepDone chan struct{}
	sweepOnce sync.Once
}

func NewRegistry(settings Settings, defaultMaxPlayers, codeBytes int, bank *word.Bank, factory BroadcasterFactory) *Registry {
	if factory == nil {
		factory = func(string) Broadcaster { return NopBroadcaster{} }
	}
	return &Registry{
		settings:          settings,
		defaultMaxPlayers: defaultMaxPlayers,
		codeBytes:         codeBytes,
		bank:              bank,
		factory:           factory,
		byCode:            make(map[string]*Lobby),
		byID:              make(map[string]*Lobby),
		sweepDone:         make(chan struct{}),
	}
}

// Create allocates a lobby under a fresh unique code.
func (r *Registry) Create(p CreateParams) (*Lobby, error) {
	if p.MaxPlayers == 0 {
		p.MaxPlayers = r.defaultMaxPlayers
	}
	if p.MaxPlayers < 2 {
		return nil, fmt.Errorf("maxPlayers must be at least 2: %w", ErrInvalidAction)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	code := utils.GenShortID(r.codeBytes)
	for r.byCode[code] != nil {
		code = utils.GenShortID(r.codeBytes)
	}

	id := uuid.NewString()
	l := New(id, code, p.Name, p.MaxPlayers, p.IsPrivate, r.settings, r.bank, r.factory(code))
	r.byCode[code] = l
	r.byID[id] = l

	zap.S().Infof("registry: lobby %s (%q) created, private=%v max=%d", code, p.Name, p.IsPrivate, p.MaxPlayers)
	return l, nil
}

// FindByCode resolves a shareable code to its lobby.
func (r *Registry) FindByCode(code string) (*Lobby, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	l, ok := r.byCode[code]
	if !ok {
		return nil, ErrLobbyNotFound
	}
	return l, nil
}

// ListPublic returns joinable public lobbies: not private, not full.
func (r *Registry) ListPublic() []PublicLobby {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]PublicLobby, 0, len(r.byCode))
	for _, l := range r.byCode {
		if l.IsPrivate {
			continue
		}
		n := l.PlayerCount()
		if n >= l.MaxPlayers {
			continue
		}
		out = append(out, PublicLobby{
			Code:        l.Code,
			Name:        l.Name,
			PlayerCount: n,
			MaxPlayers:  l.MaxPlayers,
		})
	}
	return out
}

// Remove drops a lobby by internal id and cancels its timers.
func (r *Registry) Remove(id string) {
	r.mu.Lock()
	l, ok := r.byID[id]
	if ok {
		delete(r.byID, id)
		delete(r.byCode, l.Code)
	}
	r.mu.Unlock()

	if ok {
		l.Close()
		zap.S().Infof("registry: lobby %s removed", l.Code)
	}
}

// Sweep removes lobbies that have no members and have been around longer
// than timeout. Returns how many were reclaimed.
func (r *Registry) Sweep(now time.Time, timeout time.Duration) int {
	r.mu.Lock()
	var stale []*Lobby
	for id, l := range r.byID {
		if l.PlayerCount() == 0 && now.Sub(l.CreatedAt) > timeout {
			stale = append(stale, l)
			delete(r.byID, id)
			delete(r.byCode, l.Code)
		}
	}
	r.mu.Unlock()

	for _, l := range stale {
		l.Close()
		zap.S().Infof("registry: swept empty lobby %s (age %s)", l.Code, now.Sub(l.CreatedAt).Round(time.Second))
	}
	return len(stale)
}

// StartSweeper runs Sweep on a ticker until Close is called.
func (r *Registry) StartSweeper(interval, timeout time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-r.sweepDone:
				return
			case <-ticker.C:
				r.Sweep(time.Now(), timeout)
			}
		}
	}()
}

// Close stops the sweeper. Idempotent.
func (r *Registry) Close() {
	r.sweepOnce.Do(func() { close(r.sweepDone) })
}
