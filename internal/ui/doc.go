// Package ui implements the terminal front-end for metafolder using
// Bubbletea. It turns keys and mouse gestures into calls on the core
// controller and draws the canvas as a grid of terminal cells.
package ui
