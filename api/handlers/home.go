package handlers

import (
	"net/http"

	"webcheckers/archive"
	"webcheckers/gamecenter"
	"webcheckers/logger"
	"webcheckers/messages"
	"webcheckers/session"
	"webcheckers/web"
)

// renderHome builds the home view: the lobby, the games to watch, and
// the games to replay. Shared by the home route and the handlers that
// fall back to home with an error message.
func renderHome(w http.ResponseWriter, center *gamecenter.GameCenter, sess *session.Session, views *web.Views, msg *messages.Message) {
	data := map[string]any{
		"Title":        "Welcome",
		"TotalPlayers": center.TotalPlayers(),
		"ReplayGames":  center.ArchivedGames(),
	}
	if msg != nil {
		data["Message"] = msg
	}
	if player, ok := currentPlayer(center, sess); ok {
		data["CurrentUser"] = player.Name
		data["Players"] = center.LobbyNames(player.Name)
	}

	live := []archive.GameSummary{}
	for _, game := range center.LiveGames() {
		summary := archive.GameSummary{ID: game.ID}
		for _, gp := range game.Players {
			if gp.Color == "b" {
				summary.Black = gp.Name
			} else {
				summary.White = gp.Name
			}
		}
		live = append(live, summary)
	}
	data["LiveGames"] = live

	if err := views.Render(w, "home.html", data); err != nil {
		logger.Default.Errorf("[home] render failed: %v", err)
	}
}

// GetHomeHandler shows the home page. A player who has been pulled into
// a game (an opponent challenged them) is redirected to it.
func GetHomeHandler(center *gamecenter.GameCenter, sessions *session.Store, views *web.Views) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := sessions.Session(w, r)
		if player, ok := currentPlayer(center, sess); ok && player.InGame() {
			if _, live := center.GameByID(player.GameID()); live {
				http.Redirect(w, r, "/game", http.StatusFound)
				return
			}
			player.SetStatusOnline()
		}

		var msg *messages.Message
		if text := r.URL.Query().Get("error"); text != "" {
			m := messages.Error(text)
			msg = &m
		}
		renderHome(w, center, sess, views, msg)
	}
}
