package models

type Piece struct {
	Type     string `json:"type"` // "b" or "w"
	PlayerID string `json:"player_id"`
	PieceID  string `json:"piece_id"`
	IsKinged bool   `json:"is_kinged"`
}
