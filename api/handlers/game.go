package handlers

import (
	"fmt"
	"net/http"

	"webcheckers/gamecenter"
	"webcheckers/logger"
	"webcheckers/messages"
	"webcheckers/models"
	"webcheckers/session"
	"webcheckers/web"
)

// PostGameHandler starts a game against the opponent named in the form.
// Failures land back on the home page with the reason.
func PostGameHandler(center *gamecenter.GameCenter, sessions *session.Store, views *web.Views) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := sessions.Session(w, r)
		player, ok := currentPlayer(center, sess)
		if !ok {
			http.Redirect(w, r, "/signin", http.StatusFound)
			return
		}

		opponent := r.FormValue("opponent")
		if opponent == "" {
			msg := messages.Error("choose an opponent to challenge")
			renderHome(w, center, sess, views, &msg)
			return
		}
		if _, err := center.StartGame(player.Name, opponent); err != nil {
			msg := messages.Error(err.Error())
			renderHome(w, center, sess, views, &msg)
			return
		}
		http.Redirect(w, r, "/game", http.StatusFound)
	}
}

// GetGameHandler renders the caller's current game, or its state as
// JSON when the client asks for it.
func GetGameHandler(center *gamecenter.GameCenter, sessions *session.Store, views *web.Views) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := sessions.Session(w, r)
		player, ok := currentPlayer(center, sess)
		if !ok {
			http.Redirect(w, r, "/signin", http.StatusFound)
			return
		}
		if !player.InGame() {
			http.Redirect(w, r, "/", http.StatusFound)
			return
		}
		game, ok := center.GameByID(player.GameID())
		if !ok {
			center.LeaveGame(player)
			http.Redirect(w, r, "/", http.StatusFound)
			return
		}

		state := game.State()
		if wantsJSON(r) {
			respondWithJSON(w, http.StatusOK, state)
			return
		}

		data := gameViewData(state, "PLAY")
		data["Title"] = "Game"
		if state.Over {
			data["Message"] = gameOverMessage(state)
		}
		if err := views.Render(w, "game.html", data); err != nil {
			logger.Default.Errorf("[game] render failed: %v", err)
		}
		if state.Over {
			// The result has been shown; detach the viewer.
			center.FinishGame(game)
			center.LeaveGame(player)
		}
	}
}

// gameViewData maps a game state onto the game template's view model.
func gameViewData(state models.GameState, mode string) map[string]any {
	data := map[string]any{
		"Mode": mode,
		"Turn": state.Turn,
		"Rows": web.BoardRows(state.Grid),
	}
	for _, gp := range state.Players {
		if gp.Color == "b" {
			data["Black"] = gp.Name
		} else {
			data["White"] = gp.Name
		}
		if gp.ID == state.CurrentPlayerID {
			data["ActiveName"] = gp.Name
		}
	}
	return data
}

func gameOverMessage(state models.GameState) messages.Message {
	winner := state.Winner
	for _, gp := range state.Players {
		if gp.ID == state.Winner {
			winner = gp.Name
		}
	}
	if state.Resigned {
		return messages.Info(fmt.Sprintf("the game is over: %s wins by resignation", winner))
	}
	return messages.Info(fmt.Sprintf("the game is over: %s wins", winner))
}
