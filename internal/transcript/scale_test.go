package transcript

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inodb/txplot/internal/gtf"
)

func features(strand gtf.Strand, intervals ...[2]int64) []Feature {
	records := make([]gtf.Record, len(intervals))
	for i, iv := range intervals {
		records[i] = rec(gtf.KindExon, iv[0], iv[1], strand)
	}
	exons, _, _ := Normalize(records)
	return exons
}

func intervals(scaled []ScaledFeature) [][2]float64 {
	out := make([][2]float64, len(scaled))
	for i, f := range scaled {
		out[i] = [2]float64{f.ScaledStart, f.ScaledEnd}
	}
	return out
}

func TestScale_Compressed(t *testing.T) {
	scaled := Scale(features(gtf.Forward, [2]int64{100, 200}, [2]int64{300, 450}), ModeCompressed)
	assert.Equal(t, [][2]float64{{0, 100}, {120, 270}}, intervals(scaled))
}

func TestScale_CompressedReverse(t *testing.T) {
	scaled := Scale(features(gtf.Reverse, [2]int64{100, 200}, [2]int64{300, 450}, [2]int64{10000, 10010}), ModeCompressed)
	// 5' first: 10000-10010, then 300-450, then 100-200
	assert.Equal(t, [][2]float64{{0, 10}, {30, 180}, {200, 300}}, intervals(scaled))
}

func TestScale_FullScale(t *testing.T) {
	t.Run("forward", func(t *testing.T) {
		scaled := Scale(features(gtf.Forward, [2]int64{100, 200}, [2]int64{300, 450}), ModeFullScale)
		assert.Equal(t, [][2]float64{{0, 100}, {200, 350}}, intervals(scaled))
	})

	t.Run("reverse", func(t *testing.T) {
		scaled := Scale(features(gtf.Reverse, [2]int64{100, 200}, [2]int64{300, 450}), ModeFullScale)
		// 5' exon 300-450 first, then 100-200 at distance 450-200
		assert.Equal(t, [][2]float64{{0, 150}, {250, 350}}, intervals(scaled))
	})
}

func TestScale_Properties(t *testing.T) {
	inputs := map[string][]Feature{
		"forward": features(gtf.Forward, [2]int64{1000, 1200}, [2]int64{5000, 5001}, [2]int64{9000, 12000}, [2]int64{40000, 40500}),
		"reverse": features(gtf.Reverse, [2]int64{1000, 1200}, [2]int64{5000, 5001}, [2]int64{9000, 12000}, [2]int64{40000, 40500}),
		"single":  features(gtf.Reverse, [2]int64{700, 900}),
	}

	for name, feats := range inputs {
		for _, mode := range []Mode{ModeCompressed, ModeFullScale} {
			t.Run(name+"/"+mode.String(), func(t *testing.T) {
				scaled := Scale(feats, mode)
				require.Len(t, scaled, len(feats))

				assert.Equal(t, 0.0, scaled[0].ScaledStart, "first feature starts at 0")
				for i, f := range scaled {
					assert.Less(t, f.ScaledStart, f.ScaledEnd)
					assert.GreaterOrEqual(t, f.ScaledStart, 0.0)
					assert.Equal(t, float64(feats[i].End-feats[i].Start), f.Width(), "length preserved")
					if i == 0 {
						continue
					}
					prev := scaled[i-1]
					assert.Greater(t, f.ScaledStart, prev.ScaledEnd, "strictly increasing")
					if mode == ModeCompressed {
						assert.Equal(t, float64(IntronGap), f.ScaledStart-prev.ScaledEnd)
					}
				}
			})
		}
	}
}

func TestScale_DoesNotModifyInput(t *testing.T) {
	feats := features(gtf.Forward, [2]int64{100, 200}, [2]int64{300, 450})
	before := append([]Feature(nil), feats...)
	Scale(feats, ModeCompressed)
	assert.Equal(t, before, feats)
}

func TestScale_Empty(t *testing.T) {
	assert.Nil(t, Scale(nil, ModeCompressed))
}

func TestExtent(t *testing.T) {
	lo, hi := Extent(Scale(features(gtf.Forward, [2]int64{100, 200}, [2]int64{300, 450}), ModeCompressed))
	assert.Equal(t, 0.0, lo)
	assert.Equal(t, 270.0, hi)
}

func TestMode_IntronStatus(t *testing.T) {
	assert.Equal(t, "Short_Introns", ModeCompressed.IntronStatus())
	assert.Equal(t, "Full_Introns", ModeFullScale.IntronStatus())
}
