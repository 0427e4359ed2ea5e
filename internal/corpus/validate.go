package corpus

import (
	"fmt"
	"sort"
)

// checkConsistency scans a structurally valid snapshot for the known
// data-quality defects of real corpora. Findings are warn-and-keep:
// none of them block graph construction or queries.
func checkConsistency(snap *Snapshot) []Warning {
	var warnings []Warning

	for _, p := range snap.Patterns {
		for _, num := range p.Preceding {
			q := snap.byNumber[num]
			if q == nil {
				warnings = append(warnings, Warning{
					Kind:    WarnDanglingRef,
					Subject: p.ID,
					Detail:  fmt.Sprintf("preceding pattern %d does not exist", num),
				})
				continue
			}
			if !containsInt(q.Following, p.Number) {
				warnings = append(warnings, Warning{
					Kind:    WarnAsymmetricRef,
					Subject: p.ID,
					Detail:  fmt.Sprintf("lists %s as preceding, but %s does not list it as following", q.ID, q.ID),
				})
			}
		}
		for _, num := range p.Following {
			q := snap.byNumber[num]
			if q == nil {
				warnings = append(warnings, Warning{
					Kind:    WarnDanglingRef,
					Subject: p.ID,
					Detail:  fmt.Sprintf("following pattern %d does not exist", num),
				})
				continue
			}
			if !containsInt(q.Preceding, p.Number) {
				warnings = append(warnings, Warning{
					Kind:    WarnAsymmetricRef,
					Subject: p.ID,
					Detail:  fmt.Sprintf("lists %s as following, but %s does not list it as preceding", q.ID, q.ID),
				})
			}
		}

		if len(snap.Categories) > 0 && snap.CategoryOf(p.Number) == nil {
			warnings = append(warnings, Warning{
				Kind:    WarnUncategorized,
				Subject: p.ID,
				Detail:  fmt.Sprintf("number %d is outside every category range", p.Number),
			})
		}
	}

	for _, seq := range snap.Sequences {
		cat := snap.catByName[seq.Category]
		for _, num := range seq.Missing {
			warnings = append(warnings, Warning{
				Kind:    WarnDanglingRef,
				Subject: seq.ID,
				Detail:  fmt.Sprintf("member %d does not exist", num),
			})
		}
		for _, id := range seq.Patterns {
			p := snap.byID[id]
			if p == nil {
				continue
			}
			if cat != nil && !cat.Contains(p.Number) {
				warnings = append(warnings, Warning{
					Kind:    WarnSequenceCategory,
					Subject: seq.ID,
					Detail:  fmt.Sprintf("member %s (number %d) is outside category %q range [%d, %d]", p.ID, p.Number, cat.Name, cat.Start, cat.End),
				})
			}
		}
	}

	if gap := numberingGaps(snap); gap > 0 {
		warnings = append(warnings, Warning{
			Kind:    WarnSparseNumbering,
			Subject: "corpus",
			Detail:  fmt.Sprintf("%d numbers missing between min and max pattern number", gap),
		})
	}

	return warnings
}

func numberingGaps(snap *Snapshot) int {
	if len(snap.Patterns) == 0 {
		return 0
	}
	min := snap.Patterns[0].Number
	max := snap.Patterns[len(snap.Patterns)-1].Number
	return (max - min + 1) - len(snap.Patterns)
}

func containsInt(xs []int, x int) bool {
	for _, v := range xs {
		if v == x {
			return true
		}
	}
	return false
}

// ValidationReport summarizes a snapshot's completeness and relationship
// consistency, in the shape the corpus's own validation tooling reports
// (bidirectional-consistency percentages per direction).
type ValidationReport struct {
	TotalPatterns    int            `json:"totalPatterns"`
	DeclaredPatterns int            `json:"declaredPatterns"`
	Categories       int            `json:"categories"`
	Sequences        int            `json:"sequences"`
	WarningCounts    map[string]int `json:"warningCounts"`

	// PrecedingConsistency is the fraction of preceding declarations that
	// are reciprocated by a following declaration, in [0,1]. Real corpora
	// sit just under 1.0.
	PrecedingConsistency float64 `json:"precedingConsistency"`
	// FollowingConsistency is the reciprocal figure for following lists.
	FollowingConsistency float64 `json:"followingConsistency"`

	Clean bool `json:"clean"`
}

// Validate computes the full consistency report for the snapshot.
func (s *Snapshot) Validate() *ValidationReport {
	report := &ValidationReport{
		TotalPatterns:    len(s.Patterns),
		DeclaredPatterns: s.Meta.TotalPatterns,
		Categories:       len(s.Categories),
		Sequences:        len(s.Sequences),
		WarningCounts:    make(map[string]int),
	}

	for _, w := range s.Warnings {
		report.WarningCounts[w.Kind]++
	}

	var precTotal, precOK, follTotal, follOK int
	for _, p := range s.Patterns {
		for _, num := range p.Preceding {
			precTotal++
			if q := s.byNumber[num]; q != nil && containsInt(q.Following, p.Number) {
				precOK++
			}
		}
		for _, num := range p.Following {
			follTotal++
			if q := s.byNumber[num]; q != nil && containsInt(q.Preceding, p.Number) {
				follOK++
			}
		}
	}
	report.PrecedingConsistency = ratio(precOK, precTotal)
	report.FollowingConsistency = ratio(follOK, follTotal)
	report.Clean = len(s.Warnings) == 0

	return report
}

func ratio(ok, total int) float64 {
	if total == 0 {
		return 1.0
	}
	return float64(ok) / float64(total)
}

// SortedWarnings returns the snapshot warnings ordered by kind then subject,
// for deterministic reporting.
func (s *Snapshot) SortedWarnings() []Warning {
	out := make([]Warning, len(s.Warnings))
	copy(out, s.Warnings)
	sort.Slice(out, func(i, j int) bool {
		if out[i].Kind != out[j].Kind {
			return out[i].Kind < out[j].Kind
		}
		if out[i].Subject != out[j].Subject {
			return out[i].Subject < out[j].Subject
		}
		return out[i].Detail < out[j].Detail
	})
	return out
}
