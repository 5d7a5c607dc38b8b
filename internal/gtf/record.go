// Package gtf reads transcript features from GTF annotation files.
package gtf

import "strings"

// Kind classifies the feature column of a GTF line.
type Kind int

const (
	KindOther Kind = iota
	KindExon
	KindCDS
)

// String returns the GTF feature name for exon and CDS kinds.
func (k Kind) String() string {
	switch k {
	case KindExon:
		return "exon"
	case KindCDS:
		return "CDS"
	}
	return "other"
}

func parseKind(feature string) Kind {
	switch feature {
	case "exon":
		return KindExon
	case "CDS":
		return KindCDS
	}
	return KindOther
}

// Strand is the genomic strand of a feature: +1 forward, -1 reverse.
type Strand int8

const (
	Forward Strand = 1
	Reverse Strand = -1
)

// String returns "+" or "-".
func (s Strand) String() string {
	if s == Reverse {
		return "-"
	}
	return "+"
}

// parseStrand converts the strand column. Anything other than "-" is forward.
func parseStrand(s string) Strand {
	if s == "-" {
		return Reverse
	}
	return Forward
}

// Record is one parsed GTF line. Records are passed by value and never
// modified after parsing; the Attributes map is shared between copies and
// must be treated as read-only.
type Record struct {
	Chrom      string
	Source     string
	Feature    string // raw feature column, e.g. "exon", "UTR"
	Kind       Kind
	Start      int64 // 1-based, inclusive
	End        int64 // 1-based, inclusive
	Strand     Strand
	Attributes map[string]string
}

// TranscriptID returns the transcript_id attribute without its version suffix.
func (r Record) TranscriptID() string {
	return StripVersion(r.Attributes["transcript_id"])
}

// Attr returns the named attribute, or fallback when it is absent or empty.
func (r Record) Attr(key, fallback string) string {
	if v := r.Attributes[key]; v != "" {
		return v
	}
	return fallback
}

// StripVersion removes the version suffix from an Ensembl-style ID.
// Everything from the first "." on is dropped:
// "ENST00000456328.2" -> "ENST00000456328".
func StripVersion(id string) string {
	if idx := strings.IndexByte(id, '.'); idx != -1 {
		return id[:idx]
	}
	return id
}

// ParseAttributes parses a GTF attribute column.
// Format: key "value"; key "value"; ...
// Pieces without a space separating key and value are skipped.
func ParseAttributes(attrStr string) map[string]string {
	attrs := make(map[string]string)

	for _, part := range strings.Split(attrStr, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		// Key ends at the first space
		key, value, ok := strings.Cut(part, " ")
		if !ok {
			continue
		}

		attrs[key] = strings.Trim(strings.TrimSpace(value), "\"")
	}

	return attrs
}
