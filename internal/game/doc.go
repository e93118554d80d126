// Package game implements the player actions of a Sudoku game: new game,
// cell entry, hint, auto-solve, check, save and open.
package game
