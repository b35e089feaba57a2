package mdp

// MonteCarlo is a first-visit-free, every-update Monte-Carlo learning
// strategy: each (state, action) estimate is nudged toward the episode's
// realized return by a fixed step size alpha.
//
//	Q(s,a) <- Q(s,a) + alpha * (return - Q(s,a))
type MonteCarlo struct {
	Alpha float64
}

// NewMonteCarlo builds a MonteCarlo strategy with the given step size.
func NewMonteCarlo(alpha float64) *MonteCarlo {
	return &MonteCarlo{Alpha: alpha}
}

// Update implements LearningStrategy.
func (m *MonteCarlo) Update(estimates *ActionEstimates, action Action, realizedReturn float64) {
	current := estimates.Get(action)
	estimates.Set(action, current+m.Alpha*(realizedReturn-current))
}
