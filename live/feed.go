package live

import "sync"

// Feed owns the per-game hubs.
type Feed struct {
	mu   sync.Mutex
	hubs map[string]*Hub
}

func NewFeed() *Feed {
	return &Feed{hubs: make(map[string]*Hub)}
}

func (f *Feed) hub(gameID string) *Hub {
	f.mu.Lock()
	defer f.mu.Unlock()
	h, ok := f.hubs[gameID]
	if !ok {
		h = newHub(gameID)
		f.hubs[gameID] = h
		go h.run()
	}
	return h
}

// Publish broadcasts a message to the watchers of a game. A game nobody
// has watched yet has no hub, and the message is dropped.
func (f *Feed) Publish(gameID string, message []byte) {
	f.mu.Lock()
	h, ok := f.hubs[gameID]
	f.mu.Unlock()
	if !ok {
		return
	}
	select {
	case h.broadcast <- message:
	case <-h.done:
	}
}

// CloseGame shuts the game's hub down, disconnecting its watchers.
func (f *Feed) CloseGame(gameID string) {
	f.mu.Lock()
	h, ok := f.hubs[gameID]
	if ok {
		delete(f.hubs, gameID)
	}
	f.mu.Unlock()
	if ok {
		close(h.done)
	}
}

// Close shuts every hub down.
func (f *Feed) Close() {
	f.mu.Lock()
	hubs := f.hubs
	f.hubs = make(map[string]*Hub)
	f.mu.Unlock()
	for _, h := range hubs {
		close(h.done)
	}
}
