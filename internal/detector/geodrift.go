package detector

import "github.com/Nithin-250/RMAN5/internal/geo"

// DefaultMaxDriftKm is the largest plausible jump between two consecutive
// accepted locations for the same card.
const DefaultMaxDriftKm = 500.0

// GeoDriftDetector flags implausible travel between a card's last accepted
// location and the current one.
type GeoDriftDetector struct {
	Directory geo.Directory
	MaxKm     float64
}

// NewGeoDriftDetector returns a detector over the given directory, falling
// back to the default distance limit for non-positive values.
func NewGeoDriftDetector(dir geo.Directory, maxKm float64) *GeoDriftDetector {
	if maxKm <= 0 {
		maxKm = DefaultMaxDriftKm
	}
	return &GeoDriftDetector{Directory: dir, MaxKm: maxKm}
}

// Detect reports whether moving from lastLocation to currentLocation exceeds
// the plausible distance limit.
//
// Unknown current locations cannot be geo-checked and pass through silently.
// The same applies when there is no baseline: an empty lastLocation or a
// baseline name missing from the directory yields no signal.
func (d *GeoDriftDetector) Detect(lastLocation, currentLocation string) bool {
	current, ok := d.Directory.Lookup(currentLocation)
	if !ok {
		return false
	}
	if lastLocation == "" {
		return false
	}
	last, ok := d.Directory.Lookup(lastLocation)
	if !ok {
		return false
	}
	return geo.Distance(last, current) > d.MaxKm
}
