// Package constants provides shared constants used across the codebase.
// Centralizing these values ensures consistency and makes them easier to modify.
package constants

// Recommendation constants
const (
	// DefaultTopN is the default number of primary mask recommendations
	DefaultTopN = 3

	// SecondaryNeighborCount is the number of neighboring categories whose
	// top mask is surfaced for low-confidence results
	SecondaryNeighborCount = 2
)

// Scan constants
const (
	// MaxScanImageSize is the maximum dimension (width or height) sent to
	// vision providers; larger uploads are downscaled first
	MaxScanImageSize = 800

	// DefaultMMPerPixel converts landmark pixel distances to millimetres,
	// calibrated for a nominal head size at typical capture distance
	DefaultMMPerPixel = 140.0 / 180.0

	// MaxUploadSize is the largest accepted scan upload in bytes
	MaxUploadSize = 10 << 20
)

// Server constants
const (
	// DefaultPort is the default web server port
	DefaultPort = 8080

	// DefaultHost is the default web server bind address
	DefaultHost = "0.0.0.0"

	// FitMapWidth and FitMapHeight size the rendered fit map chart
	FitMapWidth  = "900px"
	FitMapHeight = "620px"
)
