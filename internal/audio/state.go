package audio

// PlayState is what the frame loop knows about the current source.
type PlayState struct {
	Loaded   bool
	Paused   bool
	Finished bool
}

// Active reports whether samples are flowing: a source is loaded, not paused
// and has not reached its end. Inactive frames reset the envelope.
func (s PlayState) Active() bool {
	return s.Loaded && !s.Paused && !s.Finished
}
