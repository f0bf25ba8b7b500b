package models

import (
	"sync"
	"time"
)

type PlayerStatus string

const (
	StatusOnline PlayerStatus = "ONLINE"
	StatusInGame PlayerStatus = "IN_GAME"
)

// Player is a signed-in player. The game center updates the status when
// games start and end while request handlers read it, so the mutable
// fields sit behind the player's own lock.
type Player struct {
	ID         string
	Name       string
	SignedInAt time.Time

	mu     sync.RWMutex
	status PlayerStatus
	gameID string
}

func NewPlayer(id, name string) *Player {
	return &Player{
		ID:         id,
		Name:       name,
		SignedInAt: time.Now(),
		status:     StatusOnline,
	}
}

func (p *Player) Status() PlayerStatus {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.status
}

// GameID returns the id of the game the player is attached to, or ""
// when they are in the lobby.
func (p *Player) GameID() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.gameID
}

func (p *Player) InGame() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.status == StatusInGame && p.gameID != ""
}

func (p *Player) SetStatusOnline() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.gameID = ""
	p.status = StatusOnline
}

func (p *Player) SetStatusInGame(gameID string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.gameID = gameID
	p.status = StatusInGame
}
