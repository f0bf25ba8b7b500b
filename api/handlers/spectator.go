package handlers

import (
	"net/http"
	"strconv"

	"webcheckers/gamecenter"
	"webcheckers/logger"
	"webcheckers/messages"
	"webcheckers/session"
	"webcheckers/web"
)

// GetSpectatorGameHandler opens a read-only view on a game and marks
// the session as watching it.
func GetSpectatorGameHandler(center *gamecenter.GameCenter, sessions *session.Store, views *web.Views) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := sessions.Session(w, r)
		gameID := r.URL.Query().Get("gameID")
		if gameID == "" {
			http.Redirect(w, r, "/", http.StatusFound)
			return
		}

		if game, ok := center.GameByID(gameID); ok {
			state := game.State()
			if state.Over {
				// Nothing left to watch; don't re-arm the poll.
				sess.RemoveAttribute(AttrWatchingGame)
				sess.RemoveAttribute(AttrWatchingTurn)
			} else {
				sess.SetAttribute(AttrWatchingGame, gameID)
				sess.SetAttribute(AttrWatchingTurn, strconv.Itoa(state.Turn))
			}

			data := gameViewData(state, "SPECTATOR")
			data["Title"] = "Spectating"
			if state.Over {
				data["Message"] = gameOverMessage(state)
			}
			if err := views.Render(w, "game.html", data); err != nil {
				logger.Default.Errorf("[spectator] render failed: %v", err)
			}
			return
		}

		// Not live anymore; show the archived final position if we have it.
		if game, err := center.ArchivedGame(gameID); err == nil {
			sess.RemoveAttribute(AttrWatchingGame)
			sess.RemoveAttribute(AttrWatchingTurn)
			state := game.State()
			data := gameViewData(state, "SPECTATOR")
			data["Title"] = "Spectating"
			data["Message"] = gameOverMessage(state)
			if err := views.Render(w, "game.html", data); err != nil {
				logger.Default.Errorf("[spectator] render failed: %v", err)
			}
			return
		}

		msg := messages.Error("no such game to watch")
		renderHome(w, center, sess, views, &msg)
	}
}

// PostSpectatorCheckTurnHandler answers the watcher's poll: "true" when
// the watched game has advanced past the turn the watcher last saw.
func PostSpectatorCheckTurnHandler(center *gamecenter.GameCenter, sessions *session.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := sessions.Session(w, r)
		gameID, ok := sess.Attribute(AttrWatchingGame)
		if !ok {
			respondMessage(w, messages.Error("you are not watching a game"))
			return
		}

		game, ok := center.GameByID(gameID)
		if !ok {
			// The game finished and left the live registry. One last
			// reload shows the result, then the watching ends.
			sess.RemoveAttribute(AttrWatchingGame)
			sess.RemoveAttribute(AttrWatchingTurn)
			respondMessage(w, messages.Info("true"))
			return
		}
		state := game.State()
		if state.Over {
			sess.RemoveAttribute(AttrWatchingGame)
			sess.RemoveAttribute(AttrWatchingTurn)
			respondMessage(w, messages.Info("true"))
			return
		}
		lastSeen := -1
		if turnAttr, ok := sess.Attribute(AttrWatchingTurn); ok {
			if parsed, err := strconv.Atoi(turnAttr); err == nil {
				lastSeen = parsed
			}
		}
		if state.Turn != lastSeen {
			sess.SetAttribute(AttrWatchingTurn, strconv.Itoa(state.Turn))
			respondMessage(w, messages.Info("true"))
			return
		}
		respondMessage(w, messages.Info("false"))
	}
}

// GetSpectatorStopWatchingHandler clears the watching attributes and
// sends the client home. Absent attributes are a no-op.
func GetSpectatorStopWatchingHandler(sessions *session.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := sessions.Session(w, r)
		sess.RemoveAttribute(AttrWatchingGame)
		sess.RemoveAttribute(AttrWatchingTurn)
		http.Redirect(w, r, "/", http.StatusFound)
	}
}
