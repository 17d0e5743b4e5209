package terrain

type Cue string

const (
	CueNone   Cue = ""
	CueReady  Cue = "ready"
	CueImpact Cue = "impact"
	CueGood   Cue = "good"
	CueBunker Cue = "bunker"
	CueHazard Cue = "hazard"
	CueOB     Cue = "ob"
)

// CueFor returns the announcement for a finished shot's outcome.
func CueFor(outcome Type) Cue {
	switch outcome {
	case Fairway, Green:
		return CueGood
	case Bunker:
		return CueBunker
	case Water:
		return CueHazard
	case OutOfBounds:
		return CueOB
	default:
		return CueNone
	}
}
