package classify

// Default pass marks, and the ranges the dashboard lets users sweep
// through. Classification itself accepts any numeric thresholds.
const (
	DefaultIndividual = 40.0
	DefaultOverall    = 140.0

	MinIndividual = 1.0
	MaxIndividual = 100.0

	MinOverall  = 50.0
	MaxOverall  = 500.0
	StepOverall = 10.0
)

// Thresholds holds the two pass marks a dataset is judged against.
type Thresholds struct {
	Individual float64 // minimum mark in every single subject
	Overall    float64 // minimum total across all subjects
}

// DefaultThresholds returns the standard pass marks.
func DefaultThresholds() Thresholds {
	return Thresholds{
		Individual: DefaultIndividual,
		Overall:    DefaultOverall,
	}
}
