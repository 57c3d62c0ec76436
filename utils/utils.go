package utils

import (
	"github.com/cameroncuttingedge/tic/game"
	"github.com/google/uuid"
)

func GenerateUUIDString() string {
	id := uuid.New()
	return id.String()
}

// ConvertBoardToStrings lays a board out as rows of single-symbol strings.
func ConvertBoardToStrings(board game.Board) [3][3]string {
	var stringBoard [3][3]string
	for i, row := range board.Rows() {
		for j, cell := range row {
			stringBoard[i][j] = string(rune(cell))
		}
	}
	return stringBoard
}
