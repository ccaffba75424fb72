package game

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/iburimskiy/fireball/internal/config"
	"github.com/iburimskiy/fireball/internal/scene"
)

var (
	background  = color.RGBA{R: 51, G: 51, B: 51, A: 255}
	panelFill   = color.RGBA{R: 20, G: 25, B: 35, A: 220}
	panelBorder = color.RGBA{R: 60, G: 70, B: 90, A: 255}
	selectedRow = color.RGBA{R: 80, G: 100, B: 140, A: 255}
	sliderFill  = color.RGBA{R: 150, G: 170, B: 200, A: 255}
)

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(background)

	g.drawFireball(screen)
	g.drawButton(screen)
	g.drawPanel(screen)
	g.drawProgressBar(screen)

	status := ""
	switch {
	case !g.player.Loaded():
		status = "Click the button or press O to upload a song"
	case g.player.Finished():
		status = "Finished - open another song"
	case g.player.Paused():
		status = "Paused - Space to play"
	default:
		status = "Playing - Space to pause"
	}
	status += fmt.Sprintf(" | %s | peak %.2f | %.0f fps",
		g.pipeline.Tracker.Strategy().Name(), scene.Peak(g.uniforms.Envelope), ebiten.ActualFPS())
	if g.lastErr != nil {
		status += " | Error: " + g.lastErr.Error()
	}
	ebitenutil.DebugPrintAt(screen, status, 12, 12)
}

func (g *Game) drawFireball(screen *ebiten.Image) {
	u := g.uniforms
	cx := float64(config.WindowWidth-config.PanelWidth) / 2
	cy := float64(config.WindowHeight) / 2

	// Low levels first so the brightest flames end up on top.
	flames := scene.BuildFlames(u, cx, cy, config.CoreRadius, config.MaxFlameLength)
	for pass := 0; pass < 2; pass++ {
		for _, f := range flames {
			if (f.Level > 0.5) != (pass == 1) {
				continue
			}
			vector.StrokeLine(screen, float32(f.BaseX), float32(f.BaseY), float32(f.TipX), float32(f.TipY),
				float32(f.Thickness), scene.FlameColor(u, f.Level), true)
		}
	}

	vector.DrawFilledCircle(screen, float32(cx), float32(cy), config.CoreRadius, scene.BaseColor(u), true)
	glow := scene.FlameColor(u, scene.Peak(u.Envelope))
	glow.A /= 2
	vector.DrawFilledCircle(screen, float32(cx), float32(cy), config.CoreRadius*0.6, glow, true)
}

func (g *Game) drawButton(screen *ebiten.Image) {
	var bgColor color.Color
	if g.buttonPressed {
		bgColor = color.RGBA{R: 60, G: 80, B: 120, A: 255}
	} else if g.buttonHovered {
		bgColor = color.RGBA{R: 80, G: 100, B: 140, A: 255}
	} else {
		bgColor = color.RGBA{R: 100, G: 120, B: 160, A: 255}
	}

	vector.DrawFilledRect(screen, config.ButtonX, config.ButtonY, config.ButtonWidth, config.ButtonHeight, bgColor, false)
	vector.StrokeRect(screen, config.ButtonX, config.ButtonY, config.ButtonWidth, config.ButtonHeight, 2, sliderFill, false)

	text := "Upload a song"
	textWidth := len(text) * 6
	textX := config.ButtonX + (config.ButtonWidth-textWidth)/2
	textY := config.ButtonY + (config.ButtonHeight-16)/2
	ebitenutil.DebugPrintAt(screen, text, textX, textY)
}

func (g *Game) drawPanel(screen *ebiten.Image) {
	sliders := config.Sliders()
	h := float32(len(sliders)*config.PanelRowH + 3*config.PanelRowH)
	x, y := float32(config.PanelX), float32(config.PanelY)

	vector.DrawFilledRect(screen, x, y, config.PanelWidth, h, panelFill, false)
	vector.StrokeRect(screen, x, y, config.PanelWidth, h, 1, panelBorder, false)

	for i, s := range sliders {
		rowY := y + float32(i*config.PanelRowH)
		if i == g.selected {
			vector.DrawFilledRect(screen, x, rowY, config.PanelMarker, config.PanelRowH, selectedRow, false)
		}

		v, _ := g.controls.Value(s.Key)
		frac := (v - s.Min) / (s.Max - s.Min)
		barW := float32(config.PanelWidth-2*config.PanelPadX) * float32(frac)
		vector.DrawFilledRect(screen, x+config.PanelPadX, rowY+config.PanelRowH-4, barW, 2, sliderFill, false)

		label := fmt.Sprintf("%-17s %.4g", s.Label, v)
		ebitenutil.DebugPrintAt(screen, label, int(x)+config.PanelPadX, int(rowY)+2)
	}

	help := int(y) + len(sliders)*config.PanelRowH + 4
	ebitenutil.DebugPrintAt(screen, "Up/Down select  Left/Right set", int(x)+config.PanelPadX, help)
	ebitenutil.DebugPrintAt(screen, "R fix my fireball  V strategy", int(x)+config.PanelPadX, help+config.PanelRowH)
}

func (g *Game) drawProgressBar(screen *ebiten.Image) {
	duration := g.player.Duration()
	if duration == 0 {
		return
	}
	position := g.player.Position()
	progress := float64(position) / float64(duration)

	x, y := float32(config.BarX), float32(config.BarY)
	vector.DrawFilledRect(screen, x, y, config.BarWidth, config.BarHeight, color.RGBA{R: 25, G: 30, B: 40, A: 200}, false)
	vector.StrokeRect(screen, x, y, config.BarWidth, config.BarHeight, 2, color.RGBA{R: 70, G: 80, B: 100, A: 255}, false)

	if progress > 0 {
		fill := scene.FlameColor(g.uniforms, progress)
		vector.DrawFilledRect(screen, x, y, float32(progress*config.BarWidth), config.BarHeight, fill, false)
	}

	indicatorX := x + float32(progress*config.BarWidth)
	vector.DrawFilledCircle(screen, indicatorX, y+config.BarHeight/2, 8, color.White, false)

	ebitenutil.DebugPrintAt(screen, scene.FormatDuration(position), config.BarX, config.BarY+config.BarHeight+4)
	total := scene.FormatDuration(duration)
	ebitenutil.DebugPrintAt(screen, total, config.BarX+config.BarWidth-len(total)*6, config.BarY+config.BarHeight+4)
}
