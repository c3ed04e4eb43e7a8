package lobby

// Broadcaster delivers named events to the members of one lobby. The engine
// only calls it; the websocket layer (or a test fake) implements it.
type Broadcaster interface {
	// Broadcast sends an event to every member.
	Broadcast(event string, data any)
	// To sends an event to a single member.
	To(playerID string, event string, data any)
	// Except sends an event to every member but one.
	Except(playerID string, event string, data any)
}

// NopBroadcaster drops everything. Used while a lobby has no transport
// attached yet.
type NopBroadcaster struct{}

func (NopBroadcaster) Broadcast(string, any)      {}
func (NopBroadcaster) To(string, string, any)     {}
func (NopBroadcaster) Except(string, string, any) {}
