// Package live pushes game updates to spectator websocket clients.
// Each game gets its own hub; every submitted turn is broadcast to the
// clients watching that game.
package live

type Hub struct {
	gameID string

	// Registered clients.
	clients map[*Client]bool

	// Outbound messages for the watchers of this game.
	broadcast chan []byte

	// Register requests from the clients.
	register chan *Client

	// Unregister requests from clients.
	unregister chan *Client

	// Closed when the game ends.
	done chan struct{}
}

func newHub(gameID string) *Hub {
	return &Hub{
		gameID:     gameID,
		broadcast:  make(chan []byte),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[*Client]bool),
		done:       make(chan struct{}),
	}
}

func (h *Hub) run() {
	for {
		select {
		case client := <-h.register:
			h.clients[client] = true

		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}

		case message := <-h.broadcast:
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					close(client.send)
					delete(h.clients, client)
				}
			}

		case <-h.done:
			for client := range h.clients {
				close(client.send)
				delete(h.clients, client)
			}
			return
		}
	}
}
