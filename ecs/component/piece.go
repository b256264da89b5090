package component

import "github.com/milk9111/jigsaw/puzzle"

// Piece links an entity to the puzzle piece it draws.
type Piece struct {
	ID    string
	Piece *puzzle.Piece
}

var PieceComponent = NewComponent[Piece]()
