// Package sudoku is the puzzle engine used by the game: it generates
// puzzles at a difficulty level and solves boards, hiding the SAT encoding
// behind plain matrices and boards.
package sudoku
