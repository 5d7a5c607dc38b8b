package transcript

import "fmt"

// SpanBp returns max(End) - min(Start) over features, in base pairs.
func SpanBp(features []Feature) int64 {
	if len(features) == 0 {
		return 0
	}
	lo, hi := features[0].Start, features[0].End
	for _, f := range features[1:] {
		lo = min(lo, f.Start)
		hi = max(hi, f.End)
	}
	return hi - lo
}

// SizeKbp returns the genomic span of features in kilobase pairs.
func SizeKbp(features []Feature) float64 {
	return float64(SpanBp(features)) / 1000
}

// FormatKbp formats a span in base pairs as kbp with one decimal, rounding
// half up on the exact decimal value: 350 bp -> "0.4", 1249 bp -> "1.2".
func FormatKbp(spanBp int64) string {
	if spanBp < 0 {
		return "-" + FormatKbp(-spanBp)
	}
	tenths := (spanBp + 50) / 100
	return fmt.Sprintf("%d.%d", tenths/10, tenths%10)
}

// SummaryLabel returns the text drawn above a transcript, e.g.
// "KRAS (ENST00000311936 [45.7 kbp - 6-exons])".
func SummaryLabel(geneName, transcriptID string, view View, features []Feature) string {
	return fmt.Sprintf("%s (%s [%s kbp - %d-%s])",
		geneName, transcriptID, FormatKbp(SpanBp(features)), len(features), view.Noun())
}

// EndpointLabel returns the short code drawn over feature i of n when
// endpoint labels are on. Only the first and last features are labelled:
// "E01" and "E{n}" for exons, "CE01" and "CE{n}" for CDS.
func EndpointLabel(view View, i, n int) string {
	if n == 0 || (i != 0 && i != n-1) {
		return ""
	}
	prefix := "E"
	if view == ViewCDS {
		prefix = "CE"
	}
	if i == 0 {
		return prefix + "01"
	}
	return fmt.Sprintf("%s%02d", prefix, n)
}
