// Package gamecenter is the application model behind the route
// handlers: the registry of signed-in players and live games. It is
// built once at server start and lives for the process lifetime.
package gamecenter

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"unicode"

	"github.com/google/uuid"

	"webcheckers/archive"
	"webcheckers/logger"
	"webcheckers/models"
)

type GameCenter struct {
	mu      sync.RWMutex
	players map[string]*models.Player // keyed by lower-cased name
	games   map[string]*models.Game
	store   archive.GameArchive
}

// New builds the game center. A nil store falls back to the in-memory
// archive, so replay still works without redis.
func New(store archive.GameArchive) *GameCenter {
	if store == nil {
		store = archive.NewMemoryArchive()
	}
	return &GameCenter{
		players: make(map[string]*models.Player),
		games:   make(map[string]*models.Game),
		store:   store,
	}
}

func validPlayerName(name string) error {
	if name == "" {
		return fmt.Errorf("name must not be empty")
	}
	if len(name) > 25 {
		return fmt.Errorf("name must be 25 characters or fewer")
	}
	hasAlnum := false
	for _, r := range name {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			hasAlnum = true
		case r == ' ':
		default:
			return fmt.Errorf("name may only contain letters, digits and spaces")
		}
	}
	if !hasAlnum {
		return fmt.Errorf("name must contain at least one letter or digit")
	}
	return nil
}

// SignIn registers a player name. Names are unique, case-insensitively.
func (c *GameCenter) SignIn(name string) (*models.Player, error) {
	name = strings.TrimSpace(name)
	if err := validPlayerName(name); err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	key := strings.ToLower(name)
	if _, taken := c.players[key]; taken {
		return nil, fmt.Errorf("the name %q is already taken", name)
	}
	player := models.NewPlayer(uuid.New().String(), name)
	c.players[key] = player
	logger.Default.Infof("[gamecenter] player %q signed in", name)
	return player, nil
}

// SignOut removes the player. Signing out mid-game resigns the game.
func (c *GameCenter) SignOut(name string) {
	c.mu.Lock()
	player, ok := c.players[strings.ToLower(name)]
	if !ok {
		c.mu.Unlock()
		return
	}
	delete(c.players, strings.ToLower(name))
	game := c.games[player.GameID()]
	c.mu.Unlock()

	if game != nil && !game.Over() {
		if err := game.Resign(player.ID); err == nil {
			c.FinishGame(game)
		}
	}
	logger.Default.Infof("[gamecenter] player %q signed out", name)
}

func (c *GameCenter) PlayerByName(name string) (*models.Player, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	player, ok := c.players[strings.ToLower(name)]
	return player, ok
}

// TotalPlayers reports the number of signed-in players. Never negative.
func (c *GameCenter) TotalPlayers() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.players)
}

// LobbyNames lists players available to challenge, the caller excluded.
func (c *GameCenter) LobbyNames(exclude string) []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	names := []string{}
	for _, player := range c.players {
		if player.InGame() || strings.EqualFold(player.Name, exclude) {
			continue
		}
		names = append(names, player.Name)
	}
	sort.Strings(names)
	return names
}

// StartGame creates a game between the challenger (black, moves first)
// and the chosen opponent.
func (c *GameCenter) StartGame(challengerName, opponentName string) (*models.Game, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	challenger, ok := c.players[strings.ToLower(challengerName)]
	if !ok {
		return nil, fmt.Errorf("you are not signed in")
	}
	opponent, ok := c.players[strings.ToLower(opponentName)]
	if !ok {
		return nil, fmt.Errorf("player %q is not signed in", opponentName)
	}
	if challenger == opponent {
		return nil, fmt.Errorf("you cannot play against yourself")
	}
	if challenger.InGame() {
		return nil, fmt.Errorf("you are already in a game")
	}
	if opponent.InGame() {
		return nil, fmt.Errorf("player %q is already in a game", opponentName)
	}

	game := models.NewGame(challenger, opponent)
	c.games[game.ID] = game
	challenger.SetStatusInGame(game.ID)
	opponent.SetStatusInGame(game.ID)
	logger.Default.Infof("[gamecenter] game %s started: %q vs %q", game.ID, challenger.Name, opponent.Name)
	return game, nil
}

func (c *GameCenter) GameByID(id string) (*models.Game, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	game, ok := c.games[id]
	return game, ok
}

// LiveGames lists games currently in progress, for the spectator lobby.
func (c *GameCenter) LiveGames() []*models.Game {
	c.mu.RLock()
	defer c.mu.RUnlock()
	games := make([]*models.Game, 0, len(c.games))
	for _, game := range c.games {
		if !game.Over() {
			games = append(games, game)
		}
	}
	sort.Slice(games, func(i, j int) bool { return games[i].StartTime.Before(games[j].StartTime) })
	return games
}

// FinishGame archives a completed game. The game stays in the live
// registry until both players have left it, so the losing side's next
// poll still finds the result.
func (c *GameCenter) FinishGame(game *models.Game) {
	if game == nil || !game.Over() {
		return
	}
	if err := c.store.SaveGame(game); err != nil {
		logger.Default.Errorf("[gamecenter] failed to archive game %s: %v", game.ID, err)
	}
}

// LeaveGame detaches the player from their finished game and drops the
// game from the live registry once nobody references it.
func (c *GameCenter) LeaveGame(player *models.Player) {
	c.mu.Lock()
	defer c.mu.Unlock()

	gameID := player.GameID()
	game, ok := c.games[gameID]
	if ok && !game.Over() {
		return // still playing
	}
	player.SetStatusOnline()
	if !ok {
		return
	}
	for _, p := range c.players {
		if p.GameID() == gameID {
			return // opponent still attached
		}
	}
	delete(c.games, gameID)
}

// ArchivedGame loads a finished game for replay.
func (c *GameCenter) ArchivedGame(id string) (*models.Game, error) {
	return c.store.GetGame(id)
}

// ArchivedGames lists replayable games for the home page.
func (c *GameCenter) ArchivedGames() []archive.GameSummary {
	summaries, err := c.store.ListGames()
	if err != nil {
		logger.Default.Errorf("[gamecenter] failed to list archived games: %v", err)
		return nil
	}
	return summaries
}
