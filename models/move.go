package models

import "fmt"

// Move represents a single step of a turn, validated but not applied
// until the turn is submitted.
type Move struct {
	PlayerID  string `json:"player_id"`
	PieceID   string `json:"piece_id"`
	From      string `json:"from"` // e.g., "A1"
	To        string `json:"to"`   // e.g., "B2"
	IsCapture bool   `json:"is_capture"`
	IsKinged  bool   `json:"is_kinged"` // piece was crowned by this move
}

// parsePosition converts "A3" into row 'A' and column 3.
func parsePosition(pos string) (rune, int, error) {
	if len(pos) != 2 {
		return 0, 0, fmt.Errorf("invalid position: %q", pos)
	}
	row := rune(pos[0])
	col := int(pos[1] - '0')
	if !isInBounds(row, col) {
		return 0, 0, fmt.Errorf("position out of bounds: %q", pos)
	}
	return row, col, nil
}

func formatPosition(row rune, col int) string {
	return fmt.Sprintf("%c%d", row, col)
}

func isInBounds(row rune, col int) bool {
	return row >= 'A' && row <= 'H' && col >= 1 && col <= 8
}

// Only the dark squares of the board are playable.
func isDarkSquare(row rune, col int) bool {
	return (int(row-'A')+col)%2 == 1
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
