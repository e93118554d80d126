package model

// Package model defines the domain data structures used across the app: the
// Sudoku board and its rules, difficulty levels, and the background task
// records shown by the UI and the packaging tool.
