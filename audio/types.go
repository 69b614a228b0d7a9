package audio

// SoundType represents one-shot sound effects
type SoundType int

const (
	SoundBump    SoundType = iota // Wall or car contact
	SoundChime                    // Lap completed
	SoundBestLap                  // Lap completed with a personal best
	soundTypeCount
)

func (s SoundType) String() string {
	switch s {
	case SoundBump:
		return "bump"
	case SoundChime:
		return "chime"
	case SoundBestLap:
		return "best_lap"
	default:
		return "unknown"
	}
}
