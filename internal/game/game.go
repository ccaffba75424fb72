// Package game is the ebiten host: it owns the per-frame loop that feeds
// played audio through the analyser and the envelope tracker into the
// fireball renderer.
package game

import (
	"errors"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/ncruces/zenity"
	"go.uber.org/zap"

	"github.com/iburimskiy/fireball/internal/analyser"
	"github.com/iburimskiy/fireball/internal/audio"
	"github.com/iburimskiy/fireball/internal/config"
	"github.com/iburimskiy/fireball/internal/envelope"
	"github.com/iburimskiy/fireball/internal/playback"
	"github.com/iburimskiy/fireball/internal/scene"
)

type Options struct {
	Strategy envelope.Strategy
	Analyser analyser.Options
	Controls config.Controls
}

type Game struct {
	log      *zap.Logger
	player   *playback.Player
	pipeline *scene.Pipeline
	controls config.Controls

	samples  []float64
	uniforms scene.Uniforms

	// panel
	selected int

	// button state
	buttonHovered bool
	buttonPressed bool

	// progress bar
	barHovered  bool
	barDragging bool

	lastErr error
}

func New(log *zap.Logger, opts Options) (*Game, error) {
	a, err := analyser.New(opts.Analyser)
	if err != nil {
		return nil, err
	}
	if opts.Strategy == nil {
		opts.Strategy = envelope.NewTargetSeeking()
	}
	opts.Controls.Clamp()

	g := &Game{
		log:      log,
		player:   playback.New(log, config.VisualRingSize, config.SeekDebounce),
		pipeline: scene.NewPipeline(a, opts.Strategy),
		controls: opts.Controls,
		samples:  make([]float64, a.FFTSize()),
	}
	g.uniforms = scene.NewUniforms(g.controls, g.pipeline.Tracker.Envelope(), 0)
	return g, nil
}

// Open decodes path and starts playing it.
func (g *Game) Open(path string) error {
	src, err := audio.Decode(path)
	if err != nil {
		return err
	}
	if err := g.player.Load(src); err != nil {
		return fmt.Errorf("starting playback: %w", err)
	}
	g.pipeline.Analyser.Reset()
	g.pipeline.Tracker.Reset()
	g.lastErr = nil
	return nil
}

// Close stops playback.
func (g *Game) Close() { g.player.Stop() }

func (g *Game) Update() error {
	if err := g.handleInput(); err != nil {
		return err
	}
	g.step()
	return nil
}

func (g *Game) step() {
	active := g.player.Active()
	n := 0
	if tap := g.player.Tap(); active && tap != nil {
		n = tap.Mono(g.samples)
	}
	g.uniforms = g.pipeline.Step(g.samples[:n], active, g.controls)
}

func (g *Game) handleInput() error {
	mouseX, mouseY := ebiten.CursorPosition()

	g.buttonHovered = scene.InRect(mouseX, mouseY, config.ButtonX, config.ButtonY, config.ButtonWidth, config.ButtonHeight)
	if g.buttonHovered && inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		g.buttonPressed = true
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		if g.buttonPressed && g.buttonHovered {
			g.report(g.openFileDialog())
		}
		g.buttonPressed = false
	}

	g.handleProgressBar(mouseX, mouseY)
	g.handlePanel()

	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyO):
		g.report(g.openFileDialog())
	case inpututil.IsKeyJustPressed(ebiten.KeySpace):
		g.player.TogglePause()
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		g.controls.Reset()
		g.log.Info("controls reset")
	case inpututil.IsKeyJustPressed(ebiten.KeyV):
		g.switchStrategy()
	case inpututil.IsKeyJustPressed(ebiten.KeyEscape), inpututil.IsKeyJustPressed(ebiten.KeyQ):
		return ebiten.Termination
	}
	return nil
}

func (g *Game) handleProgressBar(mouseX, mouseY int) {
	g.barHovered = scene.InRect(mouseX, mouseY, config.BarX, config.BarY, config.BarWidth, config.BarHeight)
	if !g.player.Loaded() || g.player.Duration() == 0 {
		g.barDragging = false
		return
	}

	if g.barHovered && inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		g.barDragging = true
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		g.barDragging = false
	}
	if g.barDragging {
		g.player.Seek(scene.BarFraction(mouseX, config.BarX, config.BarWidth))
	}
}

func (g *Game) handlePanel() {
	sliders := config.Sliders()
	if inpututil.IsKeyJustPressed(ebiten.KeyUp) {
		g.selected = (g.selected + len(sliders) - 1) % len(sliders)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyDown) {
		g.selected = (g.selected + 1) % len(sliders)
	}

	steps := 0
	if repeating(ebiten.KeyRight) {
		steps++
	}
	if repeating(ebiten.KeyLeft) {
		steps--
	}
	if ebiten.IsKeyPressed(ebiten.KeyShift) {
		steps *= 10
	}
	if steps != 0 {
		key := sliders[g.selected].Key
		if err := g.controls.Adjust(key, steps); err != nil {
			g.report(err)
		}
	}
}

// repeating fires on press and then every few ticks while held.
func repeating(k ebiten.Key) bool {
	d := inpututil.KeyPressDuration(k)
	return d == 1 || (d > config.TPS/3 && d%4 == 0)
}

func (g *Game) switchStrategy() {
	next := envelope.DualStageName
	if g.pipeline.Tracker.Strategy().Name() == envelope.DualStageName {
		next = envelope.TargetSeekingName
	}
	s, err := envelope.StrategyByName(next)
	if err != nil {
		g.report(err)
		return
	}
	g.pipeline.Tracker.SetStrategy(s)
	g.log.Info("envelope strategy changed", zap.String("strategy", next))
}

func (g *Game) openFileDialog() error {
	filename, err := zenity.SelectFile(
		zenity.Title("Open Audio File"),
		zenity.FileFilters{{
			Name:     "Audio",
			Patterns: audio.Extensions,
		}},
	)
	if err != nil {
		if errors.Is(err, zenity.ErrCanceled) {
			return nil
		}
		return err
	}

	g.log.Info("file selected", zap.String("path", filename))
	return g.Open(filename)
}

func (g *Game) report(err error) {
	if err == nil {
		return
	}
	g.lastErr = err
	switch {
	case errors.Is(err, audio.ErrUnsupportedFormat), errors.Is(err, audio.ErrDecodeFailure):
		g.log.Warn("cannot play file", zap.Error(err))
	default:
		g.log.Error("update failed", zap.Error(err))
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return config.WindowWidth, config.WindowHeight
}
