package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"webcheckers/api/routes"
	"webcheckers/archive"
	"webcheckers/gamecenter"
	"webcheckers/live"
	"webcheckers/messages"
	"webcheckers/models"
	"webcheckers/session"
	"webcheckers/web"
)

type fixture struct {
	server *httptest.Server
	center *gamecenter.GameCenter
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	views, err := web.NewViews()
	if err != nil {
		t.Fatalf("failed to load views: %v", err)
	}
	center := gamecenter.New(archive.NewMemoryArchive())
	sessions := session.NewStore(time.Hour, []byte("test-signing-key"))
	t.Cleanup(sessions.Close)
	feed := live.NewFeed()
	t.Cleanup(feed.Close)

	server := httptest.NewServer(routes.RegisterRoutes(center, sessions, views, feed))
	t.Cleanup(server.Close)
	return &fixture{server: server, center: center}
}

// client is one browser: an http client with its own cookie jar.
func (f *fixture) client(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("failed to build cookie jar: %v", err)
	}
	return &http.Client{Jar: jar}
}

func (f *fixture) get(t *testing.T, c *http.Client, path string) (int, string) {
	t.Helper()
	resp, err := c.Get(f.server.URL + path)
	if err != nil {
		t.Fatalf("GET %s failed: %v", path, err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, string(body)
}

func (f *fixture) postForm(t *testing.T, c *http.Client, path string, form map[string]string) (int, string) {
	t.Helper()
	values := make([]string, 0, len(form))
	for k, v := range form {
		values = append(values, k+"="+v)
	}
	resp, err := c.Post(f.server.URL+path, "application/x-www-form-urlencoded",
		strings.NewReader(strings.Join(values, "&")))
	if err != nil {
		t.Fatalf("POST %s failed: %v", path, err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, string(body)
}

func (f *fixture) postMessage(t *testing.T, c *http.Client, path string, payload any) messages.Message {
	t.Helper()
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("failed to marshal payload: %v", err)
		}
		body = bytes.NewReader(data)
	}
	resp, err := c.Post(f.server.URL+path, "application/json", body)
	if err != nil {
		t.Fatalf("POST %s failed: %v", path, err)
	}
	defer resp.Body.Close()
	var msg messages.Message
	if err := json.NewDecoder(resp.Body).Decode(&msg); err != nil {
		t.Fatalf("POST %s: failed to decode message: %v", path, err)
	}
	return msg
}

func (f *fixture) signIn(t *testing.T, c *http.Client, name string) {
	t.Helper()
	status, body := f.postForm(t, c, "/signin", map[string]string{"name": name})
	if status != http.StatusOK || !strings.Contains(body, "Signed in as") {
		t.Fatalf("sign-in of %q did not land on the home page (status %d)", name, status)
	}
}

func (f *fixture) gameState(t *testing.T, c *http.Client) models.GameState {
	t.Helper()
	req, err := http.NewRequest("GET", f.server.URL+"/game", nil)
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}
	req.Header.Set("Accept", "application/json")
	resp, err := c.Do(req)
	if err != nil {
		t.Fatalf("GET /game failed: %v", err)
	}
	defer resp.Body.Close()
	var state models.GameState
	if err := json.NewDecoder(resp.Body).Decode(&state); err != nil {
		t.Fatalf("failed to decode game state: %v", err)
	}
	return state
}

func TestHomePage(t *testing.T) {
	f := newFixture(t)
	c := f.client(t)

	status, body := f.get(t, c, "/")
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	if !strings.Contains(body, "WebCheckers") || !strings.Contains(body, "Sign in") {
		t.Error("expected the signed-out home page")
	}
}

func TestHealth(t *testing.T) {
	f := newFixture(t)
	c := f.client(t)
	for _, path := range []string{"/health", "/api/health"} {
		if status, _ := f.get(t, c, path); status != http.StatusOK {
			t.Errorf("expected 200 from %s, got %d", path, status)
		}
	}
}

func TestSignInAndOut(t *testing.T) {
	f := newFixture(t)
	alice := f.client(t)

	f.signIn(t, alice, "Alice")
	if f.center.TotalPlayers() != 1 {
		t.Errorf("expected 1 player, got %d", f.center.TotalPlayers())
	}

	// A second browser cannot take the same name.
	bob := f.client(t)
	_, body := f.postForm(t, bob, "/signin", map[string]string{"name": "Alice"})
	if !strings.Contains(body, "already taken") {
		t.Error("expected the duplicate name to be rejected on the form")
	}

	f.postForm(t, alice, "/signout", nil)
	if f.center.TotalPlayers() != 0 {
		t.Errorf("expected 0 players after sign-out, got %d", f.center.TotalPlayers())
	}
}

// Stopping watching with no watching attribute in the session must be a
// no-op: the client goes home and the player count is untouched.
func TestStopWatchingWithoutAttribute(t *testing.T) {
	f := newFixture(t)
	c := f.client(t)

	for _, path := range []string{"/spectator/stopWatching", "/replay/stopWatching"} {
		status, body := f.get(t, c, path)
		if status != http.StatusOK || !strings.Contains(body, "WebCheckers") {
			t.Errorf("expected %s to land on the home page, got status %d", path, status)
		}
		if f.center.TotalPlayers() != 0 {
			t.Errorf("expected the player count to stay 0 after %s", path)
		}
	}
}

func TestAjaxEndpointsRequireAGame(t *testing.T) {
	f := newFixture(t)
	c := f.client(t)

	for _, path := range []string{"/validateMove", "/checkTurn", "/backupMove", "/submitTurn", "/resignGame"} {
		msg := f.postMessage(t, c, path, nil)
		if msg.Type != messages.TypeError {
			t.Errorf("expected an ERROR message from %s while signed out, got %+v", path, msg)
		}
	}
}

func TestGameFlow(t *testing.T) {
	f := newFixture(t)
	alice := f.client(t)
	bob := f.client(t)
	f.signIn(t, alice, "Alice")
	f.signIn(t, bob, "Bob")

	status, body := f.postForm(t, alice, "/game", map[string]string{"opponent": "Bob"})
	if status != http.StatusOK || !strings.Contains(body, "Alice (black) vs Bob (white)") {
		t.Fatalf("expected the game page after the challenge, got status %d", status)
	}

	// Bob's next visit to home pulls him into the game.
	if _, body := f.get(t, bob, "/"); !strings.Contains(body, "Alice (black) vs Bob (white)") {
		t.Error("expected Bob to be redirected into the game")
	}

	state := f.gameState(t, alice)
	if len(state.Players) != 2 || state.Over {
		t.Fatalf("unexpected game state: %+v", state)
	}

	// Black opens.
	if msg := f.postMessage(t, alice, "/validateMove", messages.MovePayload{From: "C1", To: "D2"}); msg.Type != messages.TypeInfo {
		t.Fatalf("expected the opening move to validate, got %+v", msg)
	}
	if msg := f.postMessage(t, alice, "/backupMove", nil); msg.Type != messages.TypeInfo {
		t.Fatalf("expected backup to succeed, got %+v", msg)
	}
	if msg := f.postMessage(t, alice, "/validateMove", messages.MovePayload{From: "C3", To: "D4"}); msg.Type != messages.TypeInfo {
		t.Fatalf("expected the move to validate, got %+v", msg)
	}
	if msg := f.postMessage(t, alice, "/submitTurn", nil); msg.Type != messages.TypeInfo {
		t.Fatalf("expected submit to succeed, got %+v", msg)
	}

	if msg := f.postMessage(t, alice, "/checkTurn", nil); msg.Text != "false" {
		t.Errorf("expected Alice's poll to answer false, got %+v", msg)
	}
	if msg := f.postMessage(t, bob, "/checkTurn", nil); msg.Text != "true" {
		t.Errorf("expected Bob's poll to answer true, got %+v", msg)
	}

	// White cannot move black's pieces, and moves in turn.
	if msg := f.postMessage(t, bob, "/validateMove", messages.MovePayload{From: "C1", To: "D2"}); msg.Type != messages.TypeError {
		t.Errorf("expected Bob to be unable to move black's pieces, got %+v", msg)
	}
	if msg := f.postMessage(t, bob, "/validateMove", messages.MovePayload{From: "F2", To: "E3"}); msg.Type != messages.TypeInfo {
		t.Fatalf("expected white's reply to validate, got %+v", msg)
	}
	if msg := f.postMessage(t, bob, "/submitTurn", nil); msg.Type != messages.TypeInfo {
		t.Fatalf("expected white's submit to succeed, got %+v", msg)
	}

	state = f.gameState(t, alice)
	if state.Turn != 2 {
		t.Errorf("expected turn 2, got %d", state.Turn)
	}
}

func TestResignSpectateAndReplay(t *testing.T) {
	f := newFixture(t)
	alice := f.client(t)
	bob := f.client(t)
	carol := f.client(t)
	f.signIn(t, alice, "Alice")
	f.signIn(t, bob, "Bob")

	f.postForm(t, alice, "/game", map[string]string{"opponent": "Bob"})
	state := f.gameState(t, alice)

	// Carol watches without signing in.
	status, body := f.get(t, carol, "/spectator/game?gameID="+state.ID)
	if status != http.StatusOK || !strings.Contains(body, "SPECTATOR") {
		t.Fatalf("expected the spectator view, got status %d", status)
	}
	if msg := f.postMessage(t, carol, "/spectator/checkTurn", nil); msg.Text != "false" {
		t.Errorf("expected no news for the spectator yet, got %+v", msg)
	}

	// A submitted turn is news.
	f.postMessage(t, alice, "/validateMove", messages.MovePayload{From: "C3", To: "D4"})
	f.postMessage(t, alice, "/submitTurn", nil)
	if msg := f.postMessage(t, carol, "/spectator/checkTurn", nil); msg.Text != "true" {
		t.Errorf("expected the spectator poll to fire after a turn, got %+v", msg)
	}

	// Bob resigns; Alice's poll fires and her game page shows the result.
	if msg := f.postMessage(t, bob, "/resignGame", nil); msg.Type != messages.TypeInfo {
		t.Fatalf("expected resign to succeed, got %+v", msg)
	}
	if msg := f.postMessage(t, alice, "/checkTurn", nil); msg.Text != "true" {
		t.Errorf("expected Alice's poll to fire after the resignation, got %+v", msg)
	}
	if _, body := f.get(t, alice, "/game"); !strings.Contains(body, "wins by resignation") {
		t.Error("expected the game page to announce the resignation")
	}

	// The finished game can be replayed from the archive.
	status, body = f.get(t, carol, "/replay/game?gameID="+state.ID)
	if status != http.StatusOK || !strings.Contains(body, "REPLAY") {
		t.Fatalf("expected the replay view, got status %d", status)
	}
	if msg := f.postMessage(t, carol, "/replay/nextTurn", nil); msg.Text != "true" {
		t.Errorf("expected the replay to advance, got %+v", msg)
	}
	if msg := f.postMessage(t, carol, "/replay/nextTurn", nil); msg.Text != "false" {
		t.Errorf("expected the replay to stop at the last turn, got %+v", msg)
	}
	if msg := f.postMessage(t, carol, "/replay/previousTurn", nil); msg.Text != "true" {
		t.Errorf("expected the replay to rewind, got %+v", msg)
	}
	if msg := f.postMessage(t, carol, "/replay/previousTurn", nil); msg.Text != "false" {
		t.Errorf("expected the replay to stop at the opening, got %+v", msg)
	}

	// Stop watching clears the session attributes.
	f.get(t, carol, "/replay/stopWatching")
	if msg := f.postMessage(t, carol, "/replay/nextTurn", nil); msg.Type != messages.TypeError {
		t.Errorf("expected the replay cursor to be gone, got %+v", msg)
	}
	f.get(t, carol, "/spectator/stopWatching")
	if msg := f.postMessage(t, carol, "/spectator/checkTurn", nil); msg.Type != messages.TypeError {
		t.Errorf("expected the watching attribute to be gone, got %+v", msg)
	}
}

// Once the watched game ends, the poll fires once and the watching
// stops: without this the spectator page would reload forever.
func TestSpectatorPollStopsAfterGameEnds(t *testing.T) {
	f := newFixture(t)
	alice := f.client(t)
	bob := f.client(t)
	carol := f.client(t)
	f.signIn(t, alice, "Alice")
	f.signIn(t, bob, "Bob")
	f.postForm(t, alice, "/game", map[string]string{"opponent": "Bob"})
	state := f.gameState(t, alice)

	f.get(t, carol, "/spectator/game?gameID="+state.ID)
	if msg := f.postMessage(t, bob, "/resignGame", nil); msg.Type != messages.TypeInfo {
		t.Fatalf("expected resign to succeed, got %+v", msg)
	}

	if msg := f.postMessage(t, carol, "/spectator/checkTurn", nil); msg.Text != "true" {
		t.Fatalf("expected one final reload after the game ended, got %+v", msg)
	}
	if msg := f.postMessage(t, carol, "/spectator/checkTurn", nil); msg.Type != messages.TypeError {
		t.Errorf("expected the watching to have ended, got %+v", msg)
	}

	// Revisiting the finished game shows the result without re-arming
	// the poll.
	if _, body := f.get(t, carol, "/spectator/game?gameID="+state.ID); !strings.Contains(body, "wins by resignation") {
		t.Error("expected the final position to announce the result")
	}
	if msg := f.postMessage(t, carol, "/spectator/checkTurn", nil); msg.Type != messages.TypeError {
		t.Errorf("expected no poll to be armed on a finished game, got %+v", msg)
	}
}

func TestChallengeUnavailableOpponent(t *testing.T) {
	f := newFixture(t)
	alice := f.client(t)
	f.signIn(t, alice, "Alice")

	_, body := f.postForm(t, alice, "/game", map[string]string{"opponent": "Nobody"})
	if !strings.Contains(body, "not signed in") {
		t.Error("expected the home page to carry the challenge error")
	}
	_, body = f.postForm(t, alice, "/game", nil)
	if !strings.Contains(body, "choose an opponent") {
		t.Error("expected the empty challenge to be rejected")
	}
}
