package transcript

import "github.com/inodb/txplot/internal/gtf"

// IntronGap is the plot-space width of every intron in compressed mode.
const IntronGap = 20

// Mode is the coordinate policy used to place features.
type Mode int

const (
	// ModeCompressed draws every intron with the same width, IntronGap.
	ModeCompressed Mode = iota
	// ModeFullScale keeps genomic distances.
	ModeFullScale
)

func (m Mode) String() string {
	if m == ModeFullScale {
		return "full_scale"
	}
	return "compressed"
}

// IntronStatus is the file-name tag of the mode.
func (m Mode) IntronStatus() string {
	if m == ModeFullScale {
		return "Full_Introns"
	}
	return "Short_Introns"
}

// ScaledFeature is a Feature placed in plot space. ScaledStart and ScaledEnd
// grow from left (5') to right (3'); the first feature starts at 0.
type ScaledFeature struct {
	Feature
	ScaledStart float64
	ScaledEnd   float64
}

// Width returns the plot-space width of the feature.
func (f ScaledFeature) Width() float64 {
	return f.ScaledEnd - f.ScaledStart
}

// Scale maps features, in presentation order, to plot coordinates.
// A new slice is returned; features is left untouched.
func Scale(features []Feature, mode Mode) []ScaledFeature {
	if len(features) == 0 {
		return nil
	}

	scaled := make([]ScaledFeature, len(features))
	if mode == ModeFullScale {
		first := features[0]
		for i, f := range features {
			s := ScaledFeature{Feature: f}
			if first.Strand == gtf.Reverse {
				// Flip the axis; the 5' end of a reverse-strand transcript
				// is the End of its first feature.
				s.ScaledStart = float64(first.End - f.End)
				s.ScaledEnd = float64(first.End - f.Start)
			} else {
				s.ScaledStart = float64(f.Start - first.Start)
				s.ScaledEnd = float64(f.End - first.Start)
			}
			scaled[i] = s
		}
		return scaled
	}

	var pos float64
	for i, f := range features {
		start := 0.0
		if i > 0 {
			start = pos + IntronGap
		}
		pos = start + float64(f.Length)
		scaled[i] = ScaledFeature{Feature: f, ScaledStart: start, ScaledEnd: pos}
	}
	return scaled
}

// Extent returns the smallest ScaledStart and the largest ScaledEnd.
func Extent(features []ScaledFeature) (lo, hi float64) {
	for i, f := range features {
		if i == 0 || f.ScaledStart < lo {
			lo = f.ScaledStart
		}
		if i == 0 || f.ScaledEnd > hi {
			hi = f.ScaledEnd
		}
	}
	return lo, hi
}
