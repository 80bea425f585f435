package player

// State represents the primitive's transport state.
//
//	Stopped --Load/Play--> Playing <--Play/Pause--> Paused
//	Playing/Paused --Stop or end of stream--> Stopped
//
// Pause while Stopped and Play while Playing are ignored.
type State int

const (
	Stopped State = iota
	Playing
	Paused
)

// String returns the state name for debugging.
func (s State) String() string {
	switch s {
	case Stopped:
		return "Stopped"
	case Playing:
		return "Playing"
	case Paused:
		return "Paused"
	default:
		return "Unknown"
	}
}

// IsActive returns true if a stream is loaded (Playing or Paused).
func (s State) IsActive() bool {
	return s == Playing || s == Paused
}
