package lobby

import "math/rand"

// nextDrawer picks the next drawer from the current membership. Whoever drew
// last is excluded whenever somebody else is available; with nobody else to
// choose from the first joiner draws again.
func nextDrawer(players []*Player, lastDrawer string) string {
	if len(players) == 0 {
		return ""
	}

	candidates := make([]*Player, 0, len(players))
	for _, p := range players {
		if p.ID != lastDrawer {
			candidates = append(candidates, p)
		}
	}
	if len(candidates) == 0 {
		return players[0].ID
	}
	return candidates[rand.Intn(len(candidates))].ID
}
