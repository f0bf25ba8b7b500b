package handlers

import (
	"net/http"

	"webcheckers/gamecenter"
	"webcheckers/live"
	"webcheckers/logger"
	"webcheckers/messages"
)

// GetWatchHandler upgrades the connection to a websocket and streams
// the watched game's turns as they are submitted.
func GetWatchHandler(center *gamecenter.GameCenter, feed *live.Feed) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		gameID := r.URL.Query().Get("gameID")
		game, ok := center.GameByID(gameID)
		if !ok {
			http.Error(w, "no such game", http.StatusNotFound)
			return
		}

		if err := live.ServeWS(feed, gameID, w, r); err != nil {
			logger.Default.Warnf("[watch] upgrade failed: %v", err)
			return
		}

		// Give the new watcher (and everyone else) the current position.
		if event, err := messages.NewEvent("game_state", game.State()); err == nil {
			feed.Publish(gameID, event)
		}
	}
}
