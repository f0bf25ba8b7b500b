package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"webcheckers/gamecenter"
	"webcheckers/live"
	"webcheckers/logger"
	"webcheckers/messages"
	"webcheckers/models"
	"webcheckers/session"
)

// PostValidateMoveHandler checks a proposed move and queues it for the
// turn submission.
func PostValidateMoveHandler(center *gamecenter.GameCenter, sessions *session.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		player, game, ok := playerGame(center, sessions, w, r)
		if !ok {
			return
		}
		var payload messages.MovePayload
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			respondMessage(w, messages.Errorf("invalid move payload: %v", err))
			return
		}
		move := models.Move{
			PlayerID: player.ID,
			PieceID:  payload.PieceID,
			From:     payload.From,
			To:       payload.To,
		}
		if err := game.ValidateMove(player.ID, move); err != nil {
			respondMessage(w, messages.Error(err.Error()))
			return
		}
		respondMessage(w, messages.Info("move accepted"))
	}
}

// PostBackupMoveHandler undoes the most recent pending move.
func PostBackupMoveHandler(center *gamecenter.GameCenter, sessions *session.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		player, game, ok := playerGame(center, sessions, w, r)
		if !ok {
			return
		}
		if err := game.BackupMove(player.ID); err != nil {
			respondMessage(w, messages.Error(err.Error()))
			return
		}
		respondMessage(w, messages.Info("move backed up"))
	}
}

// PostCheckTurnHandler answers the client's poll: "true" when it is the
// caller's turn, or when the game has ended.
func PostCheckTurnHandler(center *gamecenter.GameCenter, sessions *session.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		player, game, ok := playerGame(center, sessions, w, r)
		if !ok {
			return
		}
		respondMessage(w, messages.Info(strconv.FormatBool(game.CheckTurn(player.ID))))
	}
}

// PostSubmitTurnHandler applies the pending moves, ends the turn, and
// pushes the new state to the spectator feed.
func PostSubmitTurnHandler(center *gamecenter.GameCenter, sessions *session.Store, feed *live.Feed) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		player, game, ok := playerGame(center, sessions, w, r)
		if !ok {
			return
		}
		if err := game.SubmitTurn(player.ID); err != nil {
			respondMessage(w, messages.Error(err.Error()))
			return
		}

		publishState(feed, game)
		if game.Over() {
			center.FinishGame(game)
			feed.CloseGame(game.ID)
		}
		respondMessage(w, messages.Info("turn submitted"))
	}
}

// PostResignGameHandler resigns the caller's game.
func PostResignGameHandler(center *gamecenter.GameCenter, sessions *session.Store, feed *live.Feed) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		player, game, ok := playerGame(center, sessions, w, r)
		if !ok {
			return
		}
		if err := game.Resign(player.ID); err != nil {
			respondMessage(w, messages.Error(err.Error()))
			return
		}
		center.FinishGame(game)
		publishState(feed, game)
		feed.CloseGame(game.ID)
		center.LeaveGame(player)
		respondMessage(w, messages.Info("you resigned"))
	}
}

func publishState(feed *live.Feed, game *models.Game) {
	state := game.State()
	command := "game_state"
	if state.Over {
		command = "game_over"
	}
	event, err := messages.NewEvent(command, state)
	if err != nil {
		logger.Default.Errorf("[turn] failed to encode %s event: %v", command, err)
		return
	}
	feed.Publish(game.ID, event)
}
