package handlers

import (
	"net/http"

	"webcheckers/gamecenter"
	"webcheckers/logger"
	"webcheckers/messages"
	"webcheckers/session"
	"webcheckers/web"
)

// GetSignInHandler shows the sign-in form. An already signed-in player
// is sent home.
func GetSignInHandler(center *gamecenter.GameCenter, sessions *session.Store, views *web.Views) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := sessions.Session(w, r)
		if _, ok := currentPlayer(center, sess); ok {
			http.Redirect(w, r, "/", http.StatusFound)
			return
		}
		if err := views.Render(w, "signin.html", map[string]any{}); err != nil {
			logger.Default.Errorf("[signin] render failed: %v", err)
		}
	}
}

// PostSignInHandler registers the submitted name and binds it to the
// session. A rejected name re-renders the form with the reason.
func PostSignInHandler(center *gamecenter.GameCenter, sessions *session.Store, views *web.Views) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := sessions.Session(w, r)
		if _, ok := currentPlayer(center, sess); ok {
			http.Redirect(w, r, "/", http.StatusFound)
			return
		}

		player, err := center.SignIn(r.FormValue("name"))
		if err != nil {
			msg := messages.Error(err.Error())
			if renderErr := views.Render(w, "signin.html", map[string]any{"Message": msg}); renderErr != nil {
				logger.Default.Errorf("[signin] render failed: %v", renderErr)
			}
			return
		}
		sess.SetAttribute(AttrPlayerName, player.Name)
		http.Redirect(w, r, "/", http.StatusFound)
	}
}

// PostSignOutHandler removes the player from the game center and ends
// the session. Signing out mid-game resigns.
func PostSignOutHandler(center *gamecenter.GameCenter, sessions *session.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := sessions.Session(w, r)
		if name, ok := sess.Attribute(AttrPlayerName); ok {
			center.SignOut(name)
		}
		sessions.End(w, sess)
		http.Redirect(w, r, "/", http.StatusFound)
	}
}
