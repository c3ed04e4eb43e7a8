package lobby

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func testPlayers(ids ...string) []*Player {
	ps := make([]*Player, 0, len(ids))
	for _, id := range ids {
		ps = append(ps, &Player{ID: id, Name: "p-" + id})
	}
	return ps
}

func TestNextDrawerNeverRepeatsWithTwoOrMore(t *testing.T) {
	players := testPlayers("a", "b", "c")
	for i := 0; i < 100; i++ {
		got := nextDrawer(players, "b")
		assert.NotEqual(t, "b", got)
		assert.Contains(t, []string{"a", "c"}, got)
	}
}

func TestNextDrawerSinglePlayerFallback(t *testing.T) {
	players := testPlayers("solo")

	// Last drawer unset: only candidate wins.
	assert.Equal(t, "solo", nextDrawer(players, ""))
	// Last drawer is the only member: candidate set empty, first joiner again.
	assert.Equal(t, "solo", nextDrawer(players, "solo"))
}

func TestNextDrawerEmptyMembership(t *testing.T) {
	assert.Equal(t, "", nextDrawer(nil, "a"))
}

func TestNextDrawerAlwaysAMember(t *testing.T) {
	players := testPlayers("a", "b")
	members := map[string]bool{"a": true, "b": true}
	for i := 0; i < 50; i++ {
		assert.True(t, members[nextDrawer(players, "ghost")])
	}
}
