package archive

import (
	"time"

	"webcheckers/models"
)

// GameArchive stores finished games so they can be replayed.
type GameArchive interface {
	SaveGame(game *models.Game) error
	GetGame(id string) (*models.Game, error)
	ListGames() ([]GameSummary, error)
}

// GameSummary is the archive listing shown on the home page.
type GameSummary struct {
	ID      string    `json:"id"`
	Black   string    `json:"black"`
	White   string    `json:"white"`
	Winner  string    `json:"winner"`
	Turns   int       `json:"turns"`
	EndTime time.Time `json:"end_time"`
}

func summarize(game *models.Game) GameSummary {
	summary := GameSummary{
		ID:      game.ID,
		Turns:   game.Turn,
		EndTime: game.EndTime,
	}
	for _, player := range game.Players {
		if player.Color == "b" {
			summary.Black = player.Name
		} else {
			summary.White = player.Name
		}
		if player.ID == game.Winner {
			summary.Winner = player.Name
		}
	}
	return summary
}
