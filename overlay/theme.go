package overlay

// Theme holds the overlay styling constants in one place.
var Theme = struct {
	// Full-screen burst tint
	FilterColor string

	// Chromatic fringe fills
	RGBRedColor  string
	RGBCyanColor string

	// Scanline tear band
	TearColor string

	// Invert flash fill
	InvertColor string

	// Persistent CRT scanlines
	ScanlineColor   string
	ScanlineSpacing float64
}{
	FilterColor: "rgba(120,200,255,1)",

	RGBRedColor:  "rgba(255,40,40,1)",
	RGBCyanColor: "rgba(40,255,255,1)",

	TearColor: "rgba(200,210,230,1)",

	InvertColor: "rgba(255,255,255,1)",

	ScanlineColor:   "rgba(0,0,0,1)",
	ScanlineSpacing: 4,
}
