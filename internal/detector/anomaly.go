// Package detector implements the individual fraud signals evaluated by the
// engine. Each detector is a pure function over its inputs; insufficient or
// unusable data yields "no signal", never an error.
package detector

import "math"

// Anomaly detection defaults.
const (
	DefaultWindow     = 5
	DefaultZThreshold = 2.5
)

// AnomalyDetector flags transaction amounts that are statistical outliers
// relative to a card's recent history.
type AnomalyDetector struct {
	Window     int     // number of most recent historical amounts considered
	ZThreshold float64 // z-score above which an amount is flagged
}

// NewAnomalyDetector returns a detector with the given window and threshold,
// falling back to defaults for non-positive values.
func NewAnomalyDetector(window int, zThreshold float64) *AnomalyDetector {
	if window <= 0 {
		window = DefaultWindow
	}
	if zThreshold <= 0 {
		zThreshold = DefaultZThreshold
	}
	return &AnomalyDetector{Window: window, ZThreshold: zThreshold}
}

// Detect reports whether the current amount is anomalous against the last
// Window entries of history (chronological, oldest first).
//
// Fewer than 2 usable amounts means the spread cannot be estimated, so no
// signal is raised. A zero-variance window defines the z-score as 0 and
// never flags, even when the current amount differs from the window.
func (d *AnomalyDetector) Detect(history []float64, current float64) bool {
	amounts := history
	if len(amounts) > d.Window {
		amounts = amounts[len(amounts)-d.Window:]
	}
	if len(amounts) < 2 {
		return false
	}

	var sum float64
	for _, a := range amounts {
		sum += a
	}
	mean := sum / float64(len(amounts))

	var sqDiff float64
	for _, a := range amounts {
		sqDiff += (a - mean) * (a - mean)
	}
	std := math.Sqrt(sqDiff / float64(len(amounts)))

	if std == 0 {
		return false
	}
	z := math.Abs(current-mean) / std
	return z > d.ZThreshold
}
