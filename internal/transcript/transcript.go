// Package transcript orders the exon and CDS features of one transcript from
// its 5' end to its 3' end and maps them to plotting coordinates.
package transcript

import (
	"slices"

	"github.com/inodb/txplot/internal/gtf"
)

// View selects which feature list of a transcript is drawn.
type View int

const (
	ViewExons View = iota
	ViewCDS
)

// Noun returns the plural used in labels and file names: "exons" or "CDS".
func (v View) Noun() string {
	if v == ViewCDS {
		return "CDS"
	}
	return "exons"
}

func (v View) String() string { return v.Noun() }

// Feature is a GTF record together with its derived length.
type Feature struct {
	gtf.Record
	Length int64 // End - Start
}

func newFeature(r gtf.Record) Feature {
	length := r.End - r.Start
	if length < 0 {
		length = 0
	}
	return Feature{Record: r, Length: length}
}

// Transcript is the drawable form of one transcript.
// Exons and CDS are in presentation order: index 0 is the 5'-most feature.
type Transcript struct {
	ID       string
	GeneName string
	Strand   gtf.Strand
	Exons    []Feature
	CDS      []Feature
}

// New builds a Transcript from the records of a single transcript.
// The gene name comes from the first record and falls back to id.
func New(id string, records []gtf.Record) *Transcript {
	id = gtf.StripVersion(id)
	geneName := id
	if len(records) > 0 {
		geneName = records[0].Attr("gene_name", id)
	}

	exons, cds, strand := Normalize(records)
	return &Transcript{
		ID:       id,
		GeneName: geneName,
		Strand:   strand,
		Exons:    exons,
		CDS:      cds,
	}
}

// Features returns the feature list drawn for v.
func (t *Transcript) Features(v View) []Feature {
	if v == ViewCDS {
		return t.CDS
	}
	return t.Exons
}

// Normalize splits records into exons and CDS, each sorted so that index 0
// is the transcript's 5' end. Records of any other kind are dropped.
//
// The strand is taken from the first exon (by genomic start), else the
// first CDS, else defaults to forward. Forward-strand lists are ascending by
// start; reverse-strand lists are descending. records is not reordered.
func Normalize(records []gtf.Record) (exons, cds []Feature, strand gtf.Strand) {
	for _, r := range records {
		switch r.Kind {
		case gtf.KindExon:
			exons = append(exons, newFeature(r))
		case gtf.KindCDS:
			cds = append(cds, newFeature(r))
		}
	}

	byStart := func(a, b Feature) int {
		switch {
		case a.Start < b.Start:
			return -1
		case a.Start > b.Start:
			return 1
		}
		return 0
	}
	slices.SortStableFunc(exons, byStart)
	slices.SortStableFunc(cds, byStart)

	strand = gtf.Forward
	switch {
	case len(exons) > 0:
		strand = exons[0].Strand
	case len(cds) > 0:
		strand = cds[0].Strand
	}

	if strand == gtf.Reverse {
		slices.Reverse(exons)
		slices.Reverse(cds)
	}
	return exons, cds, strand
}
