// Package storage reads and writes saved games (.sudoku files).
package storage
