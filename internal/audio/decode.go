// Package audio opens audio files for playback and records what is played so
// the analyser can look at it.
package audio

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/flac"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/wav"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported audio format")
	ErrDecodeFailure     = errors.New("audio decode failed")
)

// Extensions lists the file patterns Decode understands.
var Extensions = []string{"*.wav", "*.mp3", "*.flac"}

// Source is a decoded, seekable audio file.
type Source struct {
	Path     string
	Streamer beep.StreamSeekCloser
	Format   beep.Format

	file *os.File
}

// Decode opens path and picks a decoder from its extension.
func Decode(path string) (*Source, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".wav", ".mp3", ".flac":
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	var (
		streamer beep.StreamSeekCloser
		format   beep.Format
	)
	switch ext {
	case ".wav":
		streamer, format, err = wav.Decode(f)
	case ".mp3":
		streamer, format, err = mp3.Decode(f)
	case ".flac":
		streamer, format, err = flac.Decode(f)
	}
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("%w: %s: %w", ErrDecodeFailure, filepath.Base(path), err)
	}

	return &Source{Path: path, Streamer: streamer, Format: format, file: f}, nil
}

// Duration is the total play time of the source.
func (s *Source) Duration() time.Duration {
	return s.Format.SampleRate.D(s.Streamer.Len())
}

func (s *Source) Close() error {
	err := s.Streamer.Close()
	_ = s.file.Close()
	return err
}

// FrameAt maps a fraction of the play time onto a valid frame index.
func (s *Source) FrameAt(fraction float64) int {
	return frameAt(fraction, s.Streamer.Len())
}

func frameAt(fraction float64, length int) int {
	if length <= 0 {
		return 0
	}
	if fraction < 0 {
		fraction = 0
	}
	if fraction > 1 {
		fraction = 1
	}
	pos := int(fraction * float64(length))
	if pos >= length {
		pos = length - 1
	}
	return pos
}
