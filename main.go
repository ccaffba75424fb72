package main

import (
	"errors"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/iburimskiy/fireball/internal/analyser"
	"github.com/iburimskiy/fireball/internal/config"
	"github.com/iburimskiy/fireball/internal/envelope"
	"github.com/iburimskiy/fireball/internal/game"
	"github.com/iburimskiy/fireball/internal/logging"
)

var (
	filePath     string
	strategyName string
	logLevel     string
	controls     = config.DefaultControls()
	analyserOpts = analyser.DefaultOptions()
)

var rootCmd = &cobra.Command{
	Use:   "fireball",
	Short: "Audio-reactive fireball",
	Long: `Plays an audio file and renders a fireball whose flames follow the
spectrum of what is playing. Space pauses, O opens a file, arrow keys tune the
flames, V switches the envelope strategy, Esc or Q quits.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run()
	},
}

func init() {
	f := rootCmd.Flags()
	f.StringVarP(&filePath, "file", "f", "", "audio file to play on start (wav, mp3, flac)")
	f.StringVar(&strategyName, "strategy", envelope.TargetSeekingName, "envelope strategy: target or dual")
	f.StringVar(&logLevel, "log-level", "info", "debug, info, warn or error")
	f.IntVar(&controls.FireVolatility, "volatility", controls.FireVolatility, "fire volatility (1-10)")
	f.Float64Var(&controls.Explosivity, "explosivity", controls.Explosivity, "fire explosivity (1-10)")
	f.Float64Var(&controls.Flames, "flames", controls.Flames, "flame colour (1-10)")
	f.IntVar(&controls.Tesselations, "tesselations", controls.Tesselations, "fireball detail (0-8)")
	f.IntVar(&analyserOpts.FFTSize, "fft-size", analyserOpts.FFTSize, "analyser FFT size, a power of two")
	f.Float64Var(&analyserOpts.SmoothingTimeConstant, "smoothing", analyserOpts.SmoothingTimeConstant, "analyser smoothing time constant (0-1)")
}

func run() error {
	log, err := logging.New(logLevel)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	strategy, err := envelope.StrategyByName(strategyName)
	if err != nil {
		return err
	}
	controls.Clamp()

	g, err := game.New(log, game.Options{
		Strategy: strategy,
		Analyser: analyserOpts,
		Controls: controls,
	})
	if err != nil {
		return err
	}
	defer g.Close()

	if filePath != "" {
		if err := g.Open(filePath); err != nil {
			return err
		}
	}

	log.Info("starting",
		zap.String("strategy", strategy.Name()),
		zap.Int("fftSize", analyserOpts.FFTSize),
		zap.Int("volatility", controls.FireVolatility))

	ebiten.SetWindowSize(config.WindowWidth, config.WindowHeight)
	ebiten.SetWindowTitle("Fireball - O: open, Space: play/pause, arrows: tune, Esc/Q: quit")
	ebiten.SetTPS(config.TPS)
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}

func main() {
	cobra.CheckErr(rootCmd.Execute())
}
