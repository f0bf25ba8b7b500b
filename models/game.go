package models

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

type GamePlayer struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Color     string `json:"color"`
	NumPieces int    `json:"num_pieces"`
}

// TurnSnapshot captures the board after one submitted turn, for replay.
type TurnSnapshot struct {
	Turn            int               `json:"turn"`
	PlayerID        string            `json:"player_id"` // player who moved; empty on the opening snapshot
	Moves           []Move            `json:"moves"`
	Grid            map[string]*Piece `json:"grid"`
	CurrentPlayerID string            `json:"current_player_id"` // player to move next
}

type Game struct {
	ID              string         `json:"id"`
	Board           Board          `json:"board"`
	Players         []GamePlayer   `json:"players"`
	CurrentPlayerID string         `json:"current_player_id"`
	Turn            int            `json:"turn"`
	Pending         []Move         `json:"pending_moves"`
	Snapshots       []TurnSnapshot `json:"turns"`
	StartTime       time.Time      `json:"start_time"`
	EndTime         time.Time      `json:"end_time"`
	Winner          string         `json:"winner"`
	Resigned        bool           `json:"resigned"`

	mu             sync.Mutex
	pendingCrowned bool
}

// GameState is the JSON-safe view of a game pushed to clients.
type GameState struct {
	ID              string            `json:"id"`
	Turn            int               `json:"turn"`
	CurrentPlayerID string            `json:"current_player_id"`
	Players         []GamePlayer      `json:"players"`
	Grid            map[string]*Piece `json:"grid"`
	Winner          string            `json:"winner,omitempty"`
	Resigned        bool              `json:"resigned"`
	Over            bool              `json:"over"`
}

// NewGame starts a game between two players. The challenger plays black
// and moves first.
func NewGame(black, white *Player) *Game {
	game := &Game{
		ID:              uuid.New().String(),
		Board:           *NewBoard(black.ID, white.ID, "std-game"),
		CurrentPlayerID: black.ID,
		Turn:            0,
		Players: []GamePlayer{
			{ID: black.ID, Name: black.Name, Color: "b"},
			{ID: white.ID, Name: white.Name, Color: "w"},
		},
		StartTime: time.Now(),
	}
	game.updatePlayerPieces()
	game.Snapshots = append(game.Snapshots, TurnSnapshot{
		Turn:            0,
		Grid:            game.Board.CloneGrid(),
		CurrentPlayerID: game.CurrentPlayerID,
	})
	return game
}

func (g *Game) updatePlayerPieces() {
	for i := range g.Players {
		g.Players[i].NumPieces = g.Board.CountPieces(g.Players[i].ID)
	}
}

func (g *Game) GetOpponentPlayerID(playerID string) (string, error) {
	if len(g.Players) != 2 {
		return "", fmt.Errorf("invalid number of players in game")
	}
	for _, player := range g.Players {
		if player.ID != playerID {
			return player.ID, nil
		}
	}
	return "", fmt.Errorf("opponent not found for player ID: %s", playerID)
}

func (g *Game) GetGamePlayer(playerID string) (*GamePlayer, error) {
	for i := range g.Players {
		if g.Players[i].ID == playerID {
			return &g.Players[i], nil
		}
	}
	return nil, fmt.Errorf("player not found for player ID: %s", playerID)
}

func (g *Game) Over() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.Winner != ""
}

// pendingBoard returns a scratch board with the pending moves applied.
func (g *Game) pendingBoard() *Board {
	scratch := g.Board.Clone()
	for _, move := range g.Pending {
		applyMove(scratch, move)
	}
	return scratch
}

// applyMove replays a validated move onto a board: moves the piece,
// removes a jumped piece, and crowns on arrival.
func applyMove(b *Board, move Move) {
	piece, ok := b.Grid[move.From]
	if !ok || piece == nil {
		return
	}
	b.Grid[move.To] = piece
	b.Grid[move.From] = nil
	if move.IsCapture {
		fromRow, fromCol, err1 := parsePosition(move.From)
		toRow, toCol, err2 := parsePosition(move.To)
		if err1 == nil && err2 == nil {
			midPos := formatPosition(fromRow+(toRow-fromRow)/2, fromCol+(toCol-fromCol)/2)
			b.RemovePiece(midPos)
		}
	}
	if move.IsKinged {
		piece.IsKinged = true
	}
}

// ValidateMove checks a proposed move against the board with any pending
// moves already applied, and queues it for the next turn submission.
// Jumps are mandatory, and a jump may only be followed by further jumps
// of the same piece.
func (g *Game) ValidateMove(playerID string, move Move) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.Winner != "" {
		return fmt.Errorf("the game is over")
	}
	if playerID != g.CurrentPlayerID {
		return fmt.Errorf("it is not your turn")
	}
	move.PlayerID = playerID

	scratch := g.pendingBoard()
	isCapture := scratch.IsCaptureMove(move)

	if len(g.Pending) > 0 {
		last := g.Pending[len(g.Pending)-1]
		if !last.IsCapture {
			return fmt.Errorf("only one simple move is allowed per turn")
		}
		if g.pendingCrowned {
			return fmt.Errorf("the turn ends when a piece is crowned")
		}
		if move.From != last.To {
			return fmt.Errorf("a continued jump must start where the last jump landed")
		}
		if !isCapture {
			return fmt.Errorf("you must continue the jump or submit your turn")
		}
	} else if !isCapture && scratch.HasCapture(playerID) {
		return fmt.Errorf("a jump is available; you must jump")
	}

	if _, err := scratch.IsValidMove(move); err != nil {
		return err
	}

	move.IsCapture = isCapture
	if piece, _ := scratch.GetPiece(move.From); scratch.WasPieceKinged(move.To, piece) {
		move.IsKinged = true
		g.pendingCrowned = true
	}
	g.Pending = append(g.Pending, move)
	return nil
}

// BackupMove removes the most recent pending move.
func (g *Game) BackupMove(playerID string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.Winner != "" {
		return fmt.Errorf("the game is over")
	}
	if playerID != g.CurrentPlayerID {
		return fmt.Errorf("it is not your turn")
	}
	if len(g.Pending) == 0 {
		return fmt.Errorf("no moves to back up")
	}
	popped := g.Pending[len(g.Pending)-1]
	g.Pending = g.Pending[:len(g.Pending)-1]
	if popped.IsKinged {
		g.pendingCrowned = false
	}
	return nil
}

// SubmitTurn applies the pending moves, switches the active player, and
// records a replay snapshot. A jump chain must be played out before the
// turn can be submitted, unless the jumping piece was crowned.
func (g *Game) SubmitTurn(playerID string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.Winner != "" {
		return fmt.Errorf("the game is over")
	}
	if playerID != g.CurrentPlayerID {
		return fmt.Errorf("it is not your turn")
	}
	if len(g.Pending) == 0 {
		return fmt.Errorf("no moves to submit")
	}
	last := g.Pending[len(g.Pending)-1]
	if last.IsCapture && !last.IsKinged {
		if g.pendingBoard().CanPieceCapture(last.To) {
			return fmt.Errorf("you must continue the jump")
		}
	}

	moves := g.Pending
	for _, move := range moves {
		applyMove(&g.Board, move)
	}
	g.Pending = nil
	g.pendingCrowned = false
	g.updatePlayerPieces()

	opponentID, err := g.GetOpponentPlayerID(playerID)
	if err != nil {
		return err
	}
	g.CurrentPlayerID = opponentID
	g.Turn++
	g.Snapshots = append(g.Snapshots, TurnSnapshot{
		Turn:            g.Turn,
		PlayerID:        playerID,
		Moves:           moves,
		Grid:            g.Board.CloneGrid(),
		CurrentPlayerID: g.CurrentPlayerID,
	})

	if g.Board.CountPieces(opponentID) == 0 || !g.Board.HasAnyMove(opponentID) {
		g.Winner = playerID
		g.EndTime = time.Now()
	}
	return nil
}

// CheckTurn reports whether the player should act: it is their turn, or
// the game has ended and the next poll should notice.
func (g *Game) CheckTurn(playerID string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.Winner != "" {
		return true
	}
	return g.CurrentPlayerID == playerID
}

// Resign ends the game with the opponent as winner.
func (g *Game) Resign(playerID string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.Winner != "" {
		return fmt.Errorf("the game is already over")
	}
	opponentID, err := g.GetOpponentPlayerID(playerID)
	if err != nil {
		return err
	}
	g.Pending = nil
	g.Winner = opponentID
	g.Resigned = true
	g.EndTime = time.Now()
	return nil
}

// State returns a copy of the game suitable for JSON rendering.
func (g *Game) State() GameState {
	g.mu.Lock()
	defer g.mu.Unlock()
	players := make([]GamePlayer, len(g.Players))
	copy(players, g.Players)
	return GameState{
		ID:              g.ID,
		Turn:            g.Turn,
		CurrentPlayerID: g.CurrentPlayerID,
		Players:         players,
		Grid:            g.Board.CloneGrid(),
		Winner:          g.Winner,
		Resigned:        g.Resigned,
		Over:            g.Winner != "",
	}
}

// SnapshotCount returns the number of replay positions, the opening
// board included.
func (g *Game) SnapshotCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.Snapshots)
}

func (g *Game) SnapshotAt(i int) (TurnSnapshot, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if i < 0 || i >= len(g.Snapshots) {
		return TurnSnapshot{}, false
	}
	return g.Snapshots[i], true
}
