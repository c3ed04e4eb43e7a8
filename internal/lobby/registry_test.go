package lobby

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sketchparty/internal/word"
)

func newTestRegistry(t *testing.T) *Registry {
	t.Helper()
	r := NewRegistry(testSettings(), 8, 4, word.Default(), nil)
	t.Cleanup(r.Close)
	return r
}

func TestRegistryCreateAndFind(t *testing.T) {
	r := newTestRegistry(t)

	l, err := r.Create(CreateParams{Name: "friday night"})
	require.NoError(t, err)
	assert.Len(t, l.Code, 8) // 4 random bytes, hex encoded
	assert.Equal(t, 8, l.MaxPlayers)

	got, err := r.FindByCode(l.Code)
	require.NoError(t, err)
	assert.Same(t, l, got)

	_, err = r.FindByCode("nope")
	require.ErrorIs(t, err, ErrLobbyNotFound)
}

func TestRegistryRejectsTinyLobbies(t *testing.T) {
	r := newTestRegistry(t)
	_, err := r.Create(CreateParams{Name: "solo", MaxPlayers: 1})
	require.ErrorIs(t, err, ErrInvalidAction)
}

func TestRegistryCodesAreUnique(t *testing.T) {
	r := newTestRegistry(t)
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		l, err := r.Create(CreateParams{Name: "x"})
		require.NoError(t, err)
		require.False(t, seen[l.Code], "duplicate code %s", l.Code)
		seen[l.Code] = true
	}
}

func TestRegistryListPublic(t *testing.T) {
	r := newTestRegistry(t)

	pub, err := r.Create(CreateParams{Name: "open", MaxPlayers: 4})
	require.NoError(t, err)
	_, err = r.Create(CreateParams{Name: "secret", IsPrivate: true})
	require.NoError(t, err)
	full, err := r.Create(CreateParams{Name: "full", MaxPlayers: 2})
	require.NoError(t, err)
	require.NoError(t, full.AddPlayer(&Player{ID: "a", Name: "a"}))
	require.NoError(t, full.AddPlayer(&Player{ID: "b", Name: "b"}))

	list := r.ListPublic()
	require.Len(t, list, 1)
	assert.Equal(t, PublicLobby{Code: pub.Code, Name: "open", PlayerCount: 0, MaxPlayers: 4}, list[0])
}

func TestRegistryRemove(t *testing.T) {
	r := newTestRegistry(t)
	l, err := r.Create(CreateParams{Name: "x"})
	require.NoError(t, err)

	r.Remove(l.ID)
	_, err = r.FindByCode(l.Code)
	require.ErrorIs(t, err, ErrLobbyNotFound)

	// Unknown ids are a no-op.
	r.Remove("ghost")
}

func TestRegistrySweepReclaimsAbandonedLobbies(t *testing.T) {
	r := newTestRegistry(t)

	empty, err := r.Create(CreateParams{Name: "empty"})
	require.NoError(t, err)
	occupied, err := r.Create(CreateParams{Name: "occupied"})
	require.NoError(t, err)
	require.NoError(t, occupied.AddPlayer(&Player{ID: "a", Name: "a"}))

	// Too young to sweep.
	assert.Equal(t, 0, r.Sweep(time.Now(), 30*time.Minute))

	later := time.Now().Add(31 * time.Minute)
	assert.Equal(t, 1, r.Sweep(later, 30*time.Minute))

	_, err = r.FindByCode(empty.Code)
	require.ErrorIs(t, err, ErrLobbyNotFound)
	_, err = r.FindByCode(occupied.Code)
	require.NoError(t, err)
}
