// Package generate runs puzzle generation in the background. It manages
// the task lifecycle, bounds the number of concurrent generations and
// reports task updates to the UI through a callback.
package generate
