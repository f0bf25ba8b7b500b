package routes

import (
	"net/http"

	"github.com/gorilla/mux"

	"webcheckers/api/handlers"
	"webcheckers/gamecenter"
	"webcheckers/live"
	"webcheckers/session"
	"webcheckers/web"
)

// RegisterRoutes binds every (verb, path) pair of the web application
// to its handler. First match wins.
func RegisterRoutes(center *gamecenter.GameCenter, sessions *session.Store, views *web.Views, feed *live.Feed) *mux.Router {
	if center == nil {
		panic("center must not be nil")
	}
	if sessions == nil {
		panic("sessions must not be nil")
	}
	if views == nil {
		panic("views must not be nil")
	}
	if feed == nil {
		panic("feed must not be nil")
	}

	r := mux.NewRouter()

	r.HandleFunc("/", handlers.GetHomeHandler(center, sessions, views)).Methods("GET")
	r.HandleFunc("/signin", handlers.GetSignInHandler(center, sessions, views)).Methods("GET")
	r.HandleFunc("/signin", handlers.PostSignInHandler(center, sessions, views)).Methods("POST")
	r.HandleFunc("/signout", handlers.PostSignOutHandler(center, sessions)).Methods("POST")

	r.HandleFunc("/game", handlers.GetGameHandler(center, sessions, views)).Methods("GET")
	r.HandleFunc("/game", handlers.PostGameHandler(center, sessions, views)).Methods("POST")
	r.HandleFunc("/validateMove", handlers.PostValidateMoveHandler(center, sessions)).Methods("POST")
	r.HandleFunc("/checkTurn", handlers.PostCheckTurnHandler(center, sessions)).Methods("POST")
	r.HandleFunc("/backupMove", handlers.PostBackupMoveHandler(center, sessions)).Methods("POST")
	r.HandleFunc("/resignGame", handlers.PostResignGameHandler(center, sessions, feed)).Methods("POST")
	r.HandleFunc("/submitTurn", handlers.PostSubmitTurnHandler(center, sessions, feed)).Methods("POST")

	r.HandleFunc("/spectator/game", handlers.GetSpectatorGameHandler(center, sessions, views)).Methods("GET")
	r.HandleFunc("/spectator/stopWatching", handlers.GetSpectatorStopWatchingHandler(sessions)).Methods("GET")
	r.HandleFunc("/spectator/checkTurn", handlers.PostSpectatorCheckTurnHandler(center, sessions)).Methods("POST")

	r.HandleFunc("/replay/game", handlers.GetReplayGameHandler(center, sessions, views)).Methods("GET")
	r.HandleFunc("/replay/stopWatching", handlers.GetReplayStopWatchingHandler(sessions)).Methods("GET")
	r.HandleFunc("/replay/nextTurn", handlers.PostReplayNextTurnHandler(center, sessions)).Methods("POST")
	r.HandleFunc("/replay/previousTurn", handlers.PostReplayPreviousTurnHandler(center, sessions)).Methods("POST")

	r.HandleFunc("/ws/watch", handlers.GetWatchHandler(center, feed)).Methods("GET")

	healthHandler := func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}
	r.HandleFunc("/health", healthHandler).Methods("GET")
	r.HandleFunc("/api/health", healthHandler).Methods("GET")

	return r
}
