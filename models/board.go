package models

import (
	"fmt"

	"github.com/google/uuid"
)

type Board struct {
	Grid map[string]*Piece `json:"grid"`
}

func NewBoard(blackID, whiteID, boardtype string) *Board {
	board := &Board{Grid: make(map[string]*Piece)}
	switch boardtype {
	case "std-game":
		board.GenerateInitialBoard(blackID, whiteID)
	case "two-pieces-endgame":
		board.GenerateEndGameTestBoard(blackID, whiteID)
	}
	return board
}

// GenerateInitialBoard initializes the board with starting pieces
func (b *Board) GenerateInitialBoard(blackID, whiteID string) {
	rows := []string{"A", "B", "C", "D", "E", "F", "G", "H"}

	for i, row := range rows {
		for col := 1; col <= 8; col++ {
			pos := fmt.Sprintf("%s%d", row, col)
			b.Grid[pos] = nil
			// Only place pieces on dark squares
			if (i+col)%2 == 1 {
				if i < 3 { // Top 3 rows for black pieces
					b.Grid[pos] = &Piece{Type: "b", PieceID: uuid.New().String(), PlayerID: blackID}
				} else if i > 4 { // Bottom 3 rows for white pieces
					b.Grid[pos] = &Piece{Type: "w", PieceID: uuid.New().String(), PlayerID: whiteID}
				}
			}
		}
	}
}

// GenerateEndGameTestBoard initializes a near-finished position: one
// black man a jump away from white's last piece.
func (b *Board) GenerateEndGameTestBoard(blackID, whiteID string) {
	testPositions := map[string]*Piece{
		"D4": {Type: "b", PieceID: uuid.New().String(), PlayerID: blackID},
		"E5": {Type: "w", PieceID: uuid.New().String(), PlayerID: whiteID},
	}

	for row := 'A'; row <= 'H'; row++ {
		for col := 1; col <= 8; col++ {
			pos := fmt.Sprintf("%c%d", row, col)
			if piece, exists := testPositions[pos]; exists {
				b.Grid[pos] = piece
			} else {
				b.Grid[pos] = nil
			}
		}
	}
}

func (b *Board) GetPiece(pos string) (*Piece, bool) {
	p, ok := b.Grid[pos]
	return p, ok
}

func (b *Board) GetPieceByID(id string) (*Piece, string, bool) {
	for pos, p := range b.Grid {
		if p != nil && p.PieceID == id {
			return p, pos, true
		}
	}
	return nil, "", false
}

func (b *Board) RemovePiece(pos string) {
	if _, exists := b.Grid[pos]; exists {
		b.Grid[pos] = nil
	}
}

func (b *Board) MovePiece(from, to string) error {
	piece, ok := b.Grid[from]
	if !ok || piece == nil {
		return fmt.Errorf("no piece at %s", from)
	}
	b.Grid[to] = piece
	b.Grid[from] = nil
	return nil
}

func (b *Board) CountPieces(playerID string) int {
	count := 0
	for _, piece := range b.Grid {
		if piece != nil && piece.PlayerID == playerID {
			count++
		}
	}
	return count
}

// Clone deep-copies the board so pending moves and replay snapshots can
// be applied without touching the live grid.
func (b *Board) Clone() *Board {
	grid := make(map[string]*Piece, len(b.Grid))
	for pos, piece := range b.Grid {
		if piece == nil {
			grid[pos] = nil
			continue
		}
		copied := *piece
		grid[pos] = &copied
	}
	return &Board{Grid: grid}
}

// CloneGrid returns a deep copy of the grid alone.
func (b *Board) CloneGrid() map[string]*Piece {
	return b.Clone().Grid
}

// GetPieceDirection returns the row direction a man of this color moves in.
func (b *Board) GetPieceDirection(piece Piece) int {
	if piece.Type == "w" {
		return -1 // White pieces move "up" (decreasing row)
	}
	return 1 // Black pieces move "down" (increasing row)
}

func (b *Board) pieceDirections(piece *Piece) []struct{ rowDelta, colDelta int } {
	if piece.IsKinged {
		return []struct{ rowDelta, colDelta int }{
			{1, 1}, {1, -1}, {-1, 1}, {-1, -1},
		}
	}
	direction := b.GetPieceDirection(*piece)
	return []struct{ rowDelta, colDelta int }{
		{direction, 1},
		{direction, -1},
	}
}

// IsValidMove checks a single step against the current grid: a diagonal
// move of one square onto an empty dark square, or a jump of two squares
// over an opponent's piece. Men move toward the far side only.
func (b *Board) IsValidMove(move Move) (bool, error) {
	piece, exists := b.Grid[move.From]
	if !exists || piece == nil {
		return false, fmt.Errorf("no piece at the source square")
	}
	if piece.PlayerID != move.PlayerID {
		return false, fmt.Errorf("piece does not belong to the player")
	}
	if move.PieceID != "" && piece.PieceID != move.PieceID {
		return false, fmt.Errorf("piece id does not match the source square")
	}
	fromRow, fromCol, err := parsePosition(move.From)
	if err != nil {
		return false, fmt.Errorf("invalid source position: %v", err)
	}
	toRow, toCol, err := parsePosition(move.To)
	if err != nil {
		return false, fmt.Errorf("invalid destination position: %v", err)
	}
	if !isDarkSquare(toRow, toCol) {
		return false, fmt.Errorf("destination is not a playable square")
	}
	if dest, exists := b.Grid[move.To]; !exists {
		return false, fmt.Errorf("destination square doesn't exist")
	} else if dest != nil {
		return false, fmt.Errorf("destination square is not empty")
	}

	deltaRow := int(toRow - fromRow)
	deltaCol := toCol - fromCol
	if !piece.IsKinged {
		direction := b.GetPieceDirection(*piece)
		if deltaRow*direction <= 0 {
			return false, fmt.Errorf("move is not in the correct direction for the piece type")
		}
	}

	switch {
	case abs(deltaRow) == 1 && abs(deltaCol) == 1:
		return true, nil
	case abs(deltaRow) == 2 && abs(deltaCol) == 2:
		midPos := formatPosition(fromRow+rune(deltaRow/2), fromCol+deltaCol/2)
		captured, exists := b.Grid[midPos]
		if !exists || captured == nil || captured.PlayerID == move.PlayerID {
			return false, fmt.Errorf("invalid jump: no opponent's piece to capture")
		}
		return true, nil
	default:
		return false, fmt.Errorf("move is not diagonal or a valid jump")
	}
}

// IsCaptureMove reports whether the move spans two squares, i.e. is a jump.
func (b *Board) IsCaptureMove(move Move) bool {
	fromRow, _, err := parsePosition(move.From)
	if err != nil {
		return false
	}
	toRow, _, err := parsePosition(move.To)
	if err != nil {
		return false
	}
	return abs(int(toRow-fromRow)) == 2
}

// CanPieceCapture reports whether the piece at pos has a jump available.
func (b *Board) CanPieceCapture(pos string) bool {
	piece, exists := b.Grid[pos]
	if !exists || piece == nil {
		return false
	}
	fromRow, fromCol, err := parsePosition(pos)
	if err != nil {
		return false
	}

	for _, dir := range b.pieceDirections(piece) {
		midRow := fromRow + rune(dir.rowDelta)
		midCol := fromCol + dir.colDelta
		landRow := fromRow + rune(2*dir.rowDelta)
		landCol := fromCol + 2*dir.colDelta
		if !isInBounds(landRow, landCol) {
			continue
		}

		midPiece := b.Grid[formatPosition(midRow, midCol)]
		if midPiece == nil || midPiece.PlayerID == piece.PlayerID {
			continue
		}
		if landPiece, exists := b.Grid[formatPosition(landRow, landCol)]; exists && landPiece == nil {
			return true
		}
	}
	return false
}

func (b *Board) PiecesThatCanCapture(playerID string) []*Piece {
	var capturers []*Piece
	for pos, piece := range b.Grid {
		if piece == nil || piece.PlayerID != playerID {
			continue
		}
		if b.CanPieceCapture(pos) {
			capturers = append(capturers, piece)
		}
	}
	return capturers
}

// HasCapture reports whether any of the player's pieces can jump.
func (b *Board) HasCapture(playerID string) bool {
	return len(b.PiecesThatCanCapture(playerID)) > 0
}

// HasAnyMove reports whether the player has at least one legal move left.
// A player with none loses the game.
func (b *Board) HasAnyMove(playerID string) bool {
	for pos, piece := range b.Grid {
		if piece == nil || piece.PlayerID != playerID {
			continue
		}
		fromRow, fromCol, err := parsePosition(pos)
		if err != nil {
			continue
		}
		for _, dir := range b.pieceDirections(piece) {
			stepRow := fromRow + rune(dir.rowDelta)
			stepCol := fromCol + dir.colDelta
			if isInBounds(stepRow, stepCol) {
				if dest, exists := b.Grid[formatPosition(stepRow, stepCol)]; exists && dest == nil {
					return true
				}
			}
		}
		if b.CanPieceCapture(pos) {
			return true
		}
	}
	return false
}

// WasPieceKinged reports whether a piece arriving at pos gets crowned.
func (b *Board) WasPieceKinged(pos string, piece *Piece) bool {
	if piece == nil || piece.IsKinged {
		return false
	}
	if len(pos) == 0 {
		return false
	}
	firstChar := pos[0]
	if piece.Type == "b" && firstChar == 'H' {
		return true
	}
	if piece.Type == "w" && firstChar == 'A' {
		return true
	}
	return false
}
