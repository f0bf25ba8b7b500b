package gamecenter

import (
	"strings"
	"testing"

	"webcheckers/archive"
)

func newCenter() *GameCenter {
	return New(archive.NewMemoryArchive())
}

func TestSignInValidation(t *testing.T) {
	center := newCenter()

	cases := []struct {
		name    string
		wantErr string
	}{
		{"", "empty"},
		{"   ", "empty"},
		{"!!!", "letters, digits and spaces"},
		{"    ", "empty"},
		{"a name with a % sign", "letters, digits and spaces"},
		{strings.Repeat("x", 26), "25 characters"},
	}
	for _, tc := range cases {
		if _, err := center.SignIn(tc.name); err == nil || !strings.Contains(err.Error(), tc.wantErr) {
			t.Errorf("SignIn(%q): expected error containing %q, got %v", tc.name, tc.wantErr, err)
		}
	}

	if _, err := center.SignIn("Alice"); err != nil {
		t.Fatalf("expected a plain name to sign in, got %v", err)
	}
	if _, err := center.SignIn("alice"); err == nil {
		t.Error("expected a duplicate name to be rejected case-insensitively")
	}
	if _, err := center.SignIn("  Bob  "); err != nil {
		t.Errorf("expected a name to be trimmed and accepted, got %v", err)
	}
	if player, ok := center.PlayerByName("bob"); !ok || player.Name != "Bob" {
		t.Error("expected the trimmed name to be registered")
	}
}

func TestTotalPlayersAndSignOut(t *testing.T) {
	center := newCenter()

	if center.TotalPlayers() != 0 {
		t.Fatal("expected an empty center to have zero players")
	}
	center.SignIn("Alice")
	center.SignIn("Bob")
	if center.TotalPlayers() != 2 {
		t.Errorf("expected 2 players, got %d", center.TotalPlayers())
	}

	center.SignOut("Alice")
	if center.TotalPlayers() != 1 {
		t.Errorf("expected 1 player after sign-out, got %d", center.TotalPlayers())
	}
	// Signing out an unknown name is a no-op.
	center.SignOut("Nobody")
	if center.TotalPlayers() != 1 {
		t.Error("expected sign-out of an unknown name to change nothing")
	}
}

func TestLobbyNames(t *testing.T) {
	center := newCenter()
	center.SignIn("Carol")
	center.SignIn("Alice")
	center.SignIn("Bob")

	names := center.LobbyNames("Alice")
	if len(names) != 2 || names[0] != "Bob" || names[1] != "Carol" {
		t.Errorf("expected sorted lobby [Bob Carol], got %v", names)
	}

	if _, err := center.StartGame("Bob", "Carol"); err != nil {
		t.Fatalf("expected the game to start, got %v", err)
	}
	if names := center.LobbyNames("Alice"); len(names) != 0 {
		t.Errorf("expected players in a game to leave the lobby, got %v", names)
	}
}

func TestStartGameErrors(t *testing.T) {
	center := newCenter()
	center.SignIn("Alice")
	center.SignIn("Bob")
	center.SignIn("Carol")

	if _, err := center.StartGame("Alice", "Alice"); err == nil {
		t.Error("expected a self-challenge to fail")
	}
	if _, err := center.StartGame("Alice", "Nobody"); err == nil {
		t.Error("expected a challenge to an unknown player to fail")
	}
	if _, err := center.StartGame("Nobody", "Alice"); err == nil {
		t.Error("expected an unknown challenger to fail")
	}

	if _, err := center.StartGame("Alice", "Bob"); err != nil {
		t.Fatalf("expected the game to start, got %v", err)
	}
	if _, err := center.StartGame("Carol", "Bob"); err == nil {
		t.Error("expected a challenge to a busy player to fail")
	}
	if _, err := center.StartGame("Alice", "Carol"); err == nil {
		t.Error("expected a busy challenger to fail")
	}
}

func TestStartGameAssignsPlayers(t *testing.T) {
	center := newCenter()
	alice, _ := center.SignIn("Alice")
	bob, _ := center.SignIn("Bob")

	game, err := center.StartGame("Alice", "Bob")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !alice.InGame() || !bob.InGame() {
		t.Error("expected both players to be marked in-game")
	}
	if alice.GameID() != game.ID || bob.GameID() != game.ID {
		t.Error("expected both players to reference the new game")
	}
	if game.CurrentPlayerID != alice.ID {
		t.Error("expected the challenger to move first")
	}
	if _, ok := center.GameByID(game.ID); !ok {
		t.Error("expected the game to be registered")
	}
	if len(center.LiveGames()) != 1 {
		t.Error("expected one live game")
	}
}

func TestPlayerStatusSafeUnderConcurrentReads(t *testing.T) {
	center := newCenter()
	center.SignIn("Alice")
	bob, _ := center.SignIn("Bob")

	// Handlers poll a player's status on their own goroutines while the
	// center moves the player in and out of games.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 10000; i++ {
			bob.InGame()
			bob.GameID()
			bob.Status()
		}
	}()

	game, err := center.StartGame("Alice", "Bob")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := game.Resign(bob.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	center.FinishGame(game)
	center.LeaveGame(bob)
	<-done

	if bob.InGame() {
		t.Error("expected Bob to be back in the lobby")
	}
}

func TestSignOutMidGameResignsAndArchives(t *testing.T) {
	center := newCenter()
	alice, _ := center.SignIn("Alice")
	center.SignIn("Bob")
	game, err := center.StartGame("Alice", "Bob")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	center.SignOut("Bob")

	if !game.Over() || game.Winner != alice.ID {
		t.Error("expected Alice to win when Bob signs out mid-game")
	}
	if _, err := center.ArchivedGame(game.ID); err != nil {
		t.Errorf("expected the finished game to be archived, got %v", err)
	}
}

func TestLeaveGameDropsFinishedGames(t *testing.T) {
	center := newCenter()
	alice, _ := center.SignIn("Alice")
	bob, _ := center.SignIn("Bob")
	game, _ := center.StartGame("Alice", "Bob")

	// Leaving an unfinished game changes nothing.
	center.LeaveGame(alice)
	if !alice.InGame() {
		t.Error("expected LeaveGame to be a no-op while the game is live")
	}

	if err := game.Resign(bob.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	center.FinishGame(game)

	center.LeaveGame(alice)
	if alice.InGame() {
		t.Error("expected Alice to be detached from the finished game")
	}
	if _, ok := center.GameByID(game.ID); !ok {
		t.Error("expected the game to stay live while Bob is attached")
	}

	center.LeaveGame(bob)
	if _, ok := center.GameByID(game.ID); ok {
		t.Error("expected the game to be dropped once both players left")
	}

	summaries := center.ArchivedGames()
	if len(summaries) != 1 || summaries[0].ID != game.ID {
		t.Errorf("expected the game in the archive listing, got %v", summaries)
	}
}
