// Package handlers holds one route handler per HTTP endpoint. Each
// handler is a constructor closing over its dependencies, reads or
// writes the client's session, and delegates to the game center before
// rendering a view or a JSON message.
package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"webcheckers/gamecenter"
	"webcheckers/logger"
	"webcheckers/messages"
	"webcheckers/models"
	"webcheckers/session"
)

// Session attribute keys.
const (
	AttrPlayerName   = "player"
	AttrWatchingGame = "watching_game"
	AttrWatchingTurn = "watching_turn"
	AttrReplayGame   = "replay_game"
	AttrReplayTurn   = "replay_turn"
)

func respondWithJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.Default.Errorf("[handlers] failed to encode response: %v", err)
	}
}

func respondMessage(w http.ResponseWriter, msg messages.Message) {
	respondWithJSON(w, http.StatusOK, msg)
}

// currentPlayer resolves the signed-in player recorded in the session.
func currentPlayer(center *gamecenter.GameCenter, sess *session.Session) (*models.Player, bool) {
	name, ok := sess.Attribute(AttrPlayerName)
	if !ok {
		return nil, false
	}
	player, ok := center.PlayerByName(name)
	if !ok {
		// Player expired out of the center; drop the stale attribute.
		sess.RemoveAttribute(AttrPlayerName)
		return nil, false
	}
	return player, true
}

// playerGame resolves the caller and their live game for the Ajax
// endpoints, answering with an ERROR message when either is missing.
func playerGame(center *gamecenter.GameCenter, sessions *session.Store, w http.ResponseWriter, r *http.Request) (*models.Player, *models.Game, bool) {
	sess := sessions.Session(w, r)
	player, ok := currentPlayer(center, sess)
	if !ok {
		respondMessage(w, messages.Error("you are not signed in"))
		return nil, nil, false
	}
	game, ok := center.GameByID(player.GameID())
	if !ok {
		respondMessage(w, messages.Error("you are not in a game"))
		return nil, nil, false
	}
	return player, game, true
}

func wantsJSON(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}
