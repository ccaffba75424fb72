package scene

import (
	"fmt"
	"time"
)

// FormatDuration formats a duration as MM:SS
func FormatDuration(d time.Duration) string {
	minutes := int(d.Minutes())
	seconds := int(d.Seconds()) % 60
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}

func InRect(x, y, rx, ry, rw, rh int) bool {
	return x >= rx && x <= rx+rw && y >= ry && y <= ry+rh
}

// BarFraction maps a cursor x onto [0, 1] across a bar.
func BarFraction(x, barX, barWidth int) float64 {
	return clamp01(float64(x-barX) / float64(barWidth))
}
