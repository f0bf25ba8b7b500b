package handlers

import (
	"net/http"
	"strconv"

	"webcheckers/gamecenter"
	"webcheckers/logger"
	"webcheckers/messages"
	"webcheckers/models"
	"webcheckers/session"
	"webcheckers/web"
)

// GetReplayGameHandler opens an archived game at the position recorded
// in the session, starting from the opening board.
func GetReplayGameHandler(center *gamecenter.GameCenter, sessions *session.Store, views *web.Views) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := sessions.Session(w, r)
		gameID := r.URL.Query().Get("gameID")
		if gameID == "" {
			http.Redirect(w, r, "/", http.StatusFound)
			return
		}

		game, err := center.ArchivedGame(gameID)
		if err != nil {
			msg := messages.Error("no such game to replay")
			renderHome(w, center, sess, views, &msg)
			return
		}

		cursor := 0
		if current, ok := sess.Attribute(AttrReplayGame); ok && current == gameID {
			if turnAttr, ok := sess.Attribute(AttrReplayTurn); ok {
				if parsed, err := strconv.Atoi(turnAttr); err == nil {
					cursor = parsed
				}
			}
		}
		snapshot, ok := game.SnapshotAt(cursor)
		if !ok {
			cursor = 0
			snapshot, _ = game.SnapshotAt(0)
		}
		sess.SetAttribute(AttrReplayGame, gameID)
		sess.SetAttribute(AttrReplayTurn, strconv.Itoa(cursor))

		data := gameViewData(replayState(game, snapshot), "REPLAY")
		data["Title"] = "Replay"
		data["TurnIndex"] = cursor
		data["LastTurnIndex"] = game.SnapshotCount() - 1
		if err := views.Render(w, "game.html", data); err != nil {
			logger.Default.Errorf("[replay] render failed: %v", err)
		}
	}
}

// replayState projects one snapshot of an archived game into the shared
// game view model.
func replayState(game *models.Game, snapshot models.TurnSnapshot) models.GameState {
	state := game.State()
	state.Turn = snapshot.Turn
	state.Grid = snapshot.Grid
	state.CurrentPlayerID = snapshot.CurrentPlayerID
	return state
}

// replayStep moves the session's replay cursor by delta and reports
// "true" when it moved, "false" at either end of the game.
func replayStep(center *gamecenter.GameCenter, sessions *session.Store, delta int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := sessions.Session(w, r)
		gameID, ok := sess.Attribute(AttrReplayGame)
		if !ok {
			respondMessage(w, messages.Error("you are not replaying a game"))
			return
		}
		game, err := center.ArchivedGame(gameID)
		if err != nil {
			respondMessage(w, messages.Error("the replayed game is gone"))
			return
		}

		cursor := 0
		if turnAttr, ok := sess.Attribute(AttrReplayTurn); ok {
			if parsed, err := strconv.Atoi(turnAttr); err == nil {
				cursor = parsed
			}
		}
		next := cursor + delta
		if next < 0 || next >= game.SnapshotCount() {
			respondMessage(w, messages.Info("false"))
			return
		}
		sess.SetAttribute(AttrReplayTurn, strconv.Itoa(next))
		respondMessage(w, messages.Info("true"))
	}
}

// PostReplayNextTurnHandler advances the replay by one turn.
func PostReplayNextTurnHandler(center *gamecenter.GameCenter, sessions *session.Store) http.HandlerFunc {
	return replayStep(center, sessions, 1)
}

// PostReplayPreviousTurnHandler rewinds the replay by one turn.
func PostReplayPreviousTurnHandler(center *gamecenter.GameCenter, sessions *session.Store) http.HandlerFunc {
	return replayStep(center, sessions, -1)
}

// GetReplayStopWatchingHandler clears the replay attributes and sends
// the client home. Absent attributes are a no-op.
func GetReplayStopWatchingHandler(sessions *session.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := sessions.Session(w, r)
		sess.RemoveAttribute(AttrReplayGame)
		sess.RemoveAttribute(AttrReplayTurn)
		http.Redirect(w, r, "/", http.StatusFound)
	}
}
