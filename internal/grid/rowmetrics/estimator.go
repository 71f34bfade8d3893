// Package rowmetrics maintains the effective row height used to convert
// between cell offsets and row indices. A single scalar keeps all offset
// math O(1); there is deliberately no per-row cumulative height index.
package rowmetrics

// Estimator refines the row height estimate from rendered samples
type Estimator struct {
	estimate  int
	tolerance int
	measured  bool
}

// NewEstimator creates an estimator with a default height, used before
// any row has been measured. Defaults below 1 are clamped to 1.
func NewEstimator(defaultHeight, tolerance int) *Estimator {
	if defaultHeight < 1 {
		defaultHeight = 1
	}
	if tolerance < 0 {
		tolerance = 0
	}
	return &Estimator{estimate: defaultHeight, tolerance: tolerance}
}

// Estimate returns the current row height estimate, always >= 1
func (e *Estimator) Estimate() int {
	return e.estimate
}

// Measured reports whether a rendered sample has been observed yet
func (e *Estimator) Measured() bool {
	return e.measured
}

// Measure accepts the height of one concrete rendered row and returns
// whether the stored estimate changed. Non-positive samples are ignored,
// as are samples within the tolerance of the current estimate; the
// tolerance keeps sub-cell jitter from churning the window.
func (e *Estimator) Measure(sampleHeight int) bool {
	if sampleHeight <= 0 {
		return false
	}
	e.measured = true

	diff := sampleHeight - e.estimate
	if diff < 0 {
		diff = -diff
	}
	if diff <= e.tolerance {
		return false
	}

	e.estimate = sampleHeight
	return true
}

// Reset discards measurement history, restoring the default estimate.
// Called when the dataset is replaced.
func (e *Estimator) Reset(defaultHeight int) {
	if defaultHeight < 1 {
		defaultHeight = 1
	}
	e.estimate = defaultHeight
	e.measured = false
}
