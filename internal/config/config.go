package config

import "time"

const (
	WindowWidth  = 1024
	WindowHeight = 640
	TPS          = 60

	VisualRingSize = 8192

	// Button dimensions
	ButtonWidth  = 120
	ButtonHeight = 40
	ButtonX      = 20
	ButtonY      = 36

	// Control panel
	PanelX      = WindowWidth - 260
	PanelY      = 20
	PanelWidth  = 240
	PanelRowH   = 22
	PanelPadX   = 10
	PanelMarker = 4

	// Progress bar
	BarX      = 20
	BarY      = WindowHeight - 60
	BarWidth  = WindowWidth - 40
	BarHeight = 24

	// Fireball
	CoreRadius     = 110
	MaxFlameLength = 160
	BaseSegments   = 12

	SeekDebounce = 50 * time.Millisecond
)
