// Package render provides a console implementation of the board's render
// surface, for running without LED matrix hardware. Pixel-accurate matrix
// drivers live outside this module and plug in through the same interface.
package render
