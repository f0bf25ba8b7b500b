package archive

import (
	"fmt"
	"sort"
	"sync"

	"webcheckers/models"
)

// MemoryArchive keeps finished games in process memory. It backs the
// replay feature when no redis address is configured, and the tests.
type MemoryArchive struct {
	mu    sync.RWMutex
	games map[string]*models.Game
}

func NewMemoryArchive() *MemoryArchive {
	return &MemoryArchive{games: make(map[string]*models.Game)}
}

func (a *MemoryArchive) SaveGame(game *models.Game) error {
	if game == nil {
		return fmt.Errorf("cannot archive a nil game")
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.games[game.ID] = game
	return nil
}

func (a *MemoryArchive) GetGame(id string) (*models.Game, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	game, ok := a.games[id]
	if !ok {
		return nil, fmt.Errorf("no archived game with id %s", id)
	}
	return game, nil
}

func (a *MemoryArchive) ListGames() ([]GameSummary, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	summaries := make([]GameSummary, 0, len(a.games))
	for _, game := range a.games {
		summaries = append(summaries, summarize(game))
	}
	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].EndTime.After(summaries[j].EndTime)
	})
	return summaries, nil
}
