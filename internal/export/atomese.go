// Package export renders the loaded corpus as Atomese s-expressions for
// downstream hypergraph tooling. Patterns become ConceptNodes, category
// membership becomes InheritanceLinks, sequence membership MemberLinks
// and precedes edges ImplicationLinks.
package export

import (
	"fmt"
	"io"

	"plq/internal/corpus"
	"plq/internal/graph"
	"plq/internal/logging"
)

// Exporter writes Atomese scheme output for a corpus snapshot.
type Exporter struct {
	snap   *corpus.Snapshot
	g      *graph.Graph
	opts   Options
	logger *logging.Logger
}

// NewExporter creates an exporter over a snapshot and its graph.
func NewExporter(snap *corpus.Snapshot, g *graph.Graph, opts Options, logger *logging.Logger) *Exporter {
	return &Exporter{snap: snap, g: g, opts: opts, logger: logger}
}

// Export writes the full corpus as Atomese. Output order is fixed:
// category concepts, pattern concepts, inheritance, membership, then
// implications, each section in corpus order.
func (e *Exporter) Export(w io.Writer) error {
	e.logger.Debug("starting atomese export", logging.Fields{
		"patterns":   len(e.snap.Patterns),
		"categories": len(e.snap.Categories),
	})

	out := &errWriter{w: w}

	out.printf("; Pattern language export, %d patterns\n", len(e.snap.Patterns))

	for _, cat := range e.snap.Categories {
		out.printf("(ConceptNode %q)\n", conceptName("category", cat.Name))
	}
	for _, seq := range e.snap.Sequences {
		out.printf("(ConceptNode %q)\n", conceptName("sequence", seq.ID))
	}
	for _, p := range e.snap.Patterns {
		out.printf("(ConceptNode %q", patternConcept(p))
		if e.opts.IncludeEvidence {
			out.printf(" (stv 1.0 %s)", evidenceConfidence(p.Evidence))
		}
		out.printf(")\n")
	}

	for _, p := range e.snap.Patterns {
		cat := e.snap.CategoryOf(p.Number)
		if cat == nil {
			continue
		}
		out.printf("(InheritanceLink (ConceptNode %q) (ConceptNode %q))\n",
			patternConcept(p), conceptName("category", cat.Name))
	}

	for _, seq := range e.snap.Sequences {
		for _, id := range seq.Patterns {
			p := e.snap.PatternByID(id)
			if p == nil {
				continue
			}
			out.printf("(MemberLink (ConceptNode %q) (ConceptNode %q))\n",
				patternConcept(p), conceptName("sequence", seq.ID))
		}
	}

	for _, p := range e.snap.Patterns {
		for _, succ := range e.g.Successors(p.ID, graph.EdgePrecedes) {
			q := e.snap.PatternByID(succ)
			if q == nil {
				continue
			}
			out.printf("(ImplicationLink (ConceptNode %q) (ConceptNode %q))\n",
				patternConcept(p), patternConcept(q))
		}
	}

	return out.err
}

// patternConcept names a pattern's ConceptNode "N: Name".
func patternConcept(p *corpus.Pattern) string {
	return fmt.Sprintf("%d: %s", p.Number, p.Name)
}

func conceptName(kind, name string) string {
	return kind + ": " + name
}

// evidenceConfidence maps the asterisk ordinal onto a confidence value.
func evidenceConfidence(e corpus.EvidenceLevel) string {
	switch e {
	case 2:
		return "0.9"
	case 1:
		return "0.7"
	default:
		return "0.5"
	}
}

// errWriter latches the first write error so Export stays flat.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) printf(format string, args ...interface{}) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintf(ew.w, format, args...)
}
