// Package ui contains the Fyne-based desktop user interface of the game.
// It draws the board, forwards keyboard and pointer input to the game
// controller, and turns game events into dialogs and notifications. All UI
// strings are localized via Localization.
package ui
