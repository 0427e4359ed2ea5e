// Package corpus loads the pattern-language document into an immutable,
// typed in-memory snapshot. All entities are created once at load time
// and never mutated afterward; downstream components share the snapshot
// read-only.
package corpus

import (
	"fmt"
	"sort"
)

// EvidenceLevel is the pattern's confidence ordinal, from the corpus
// asterisk convention: 2 (highest), 1, 0.
type EvidenceLevel int

// Pattern is the atomic entity of the corpus.
type Pattern struct {
	ID       string        `json:"id" yaml:"id"`
	Number   int           `json:"number" yaml:"number"`
	Name     string        `json:"name" yaml:"name"`
	Evidence EvidenceLevel `json:"asterisks" yaml:"asterisks"`

	// Free-text sections, opaque to the query engine; used only for
	// keyword relevance and search. May be empty.
	Context  string `json:"context" yaml:"context"`
	Problem  string `json:"problem" yaml:"problem"`
	Solution string `json:"solution" yaml:"solution"`

	// Forces is optional structured metadata; most corpora leave it empty.
	Forces []string `json:"forces,omitempty" yaml:"forces,omitempty"`

	// Preceding and Following are declared as pattern numbers on the wire.
	Preceding []int `json:"preceding_patterns" yaml:"preceding_patterns"`
	Following []int `json:"following_patterns" yaml:"following_patterns"`
}

// Text returns the concatenated free-text sections used for keyword scoring.
func (p *Pattern) Text() string {
	return p.Name + " " + p.Context + " " + p.Problem + " " + p.Solution
}

// Sequence is a named ordered grouping of patterns within one category.
type Sequence struct {
	ID       string
	Name     string
	Category string
	// Patterns holds member pattern ids in declared order. Declared
	// members with no matching pattern are dropped and recorded in
	// Missing instead.
	Patterns []string
	// Missing holds declared member numbers that resolve to no pattern.
	Missing []int
}

// Category is a coarse partition of the pattern number space.
type Category struct {
	Name        string
	Description string
	// Start and End are the inclusive pattern-number bounds.
	Start int
	End   int
}

// Contains reports whether a pattern number falls in this category's range.
func (c *Category) Contains(number int) bool {
	return number >= c.Start && number <= c.End
}

// Meta is the corpus document's metadata header.
type Meta struct {
	TotalPatterns int    `json:"total_patterns" yaml:"total_patterns"`
	Source        string `json:"source,omitempty" yaml:"source,omitempty"`
	Version       string `json:"version,omitempty" yaml:"version,omitempty"`
}

// Warning is a non-fatal data-quality finding recorded during load.
// Warnings are logged and kept on the snapshot; they never block queries.
type Warning struct {
	Kind    string `json:"kind"`
	Subject string `json:"subject"`
	Detail  string `json:"detail"`
}

// Warning kinds.
const (
	WarnDanglingRef      = "dangling-reference"
	WarnAsymmetricRef    = "asymmetric-relationship"
	WarnSequenceCategory = "sequence-category-violation"
	WarnUncategorized    = "uncategorized-pattern"
	WarnSparseNumbering  = "sparse-numbering"
)

func (w Warning) String() string {
	return fmt.Sprintf("%s: %s (%s)", w.Kind, w.Subject, w.Detail)
}

// wire types mirror the document layout produced by the corpus exporters.

type wireDocument struct {
	Meta       Meta           `json:"meta" yaml:"meta"`
	Categories []wireCategory `json:"categories" yaml:"categories"`
	Patterns   []*Pattern     `json:"patterns" yaml:"patterns"`
}

type wireCategory struct {
	Name         string         `json:"name" yaml:"name"`
	Description  string         `json:"description" yaml:"description"`
	PatternRange wireRange      `json:"pattern_range" yaml:"pattern_range"`
	Sequences    []wireSequence `json:"sequences" yaml:"sequences"`
}

type wireRange struct {
	Start int `json:"start" yaml:"start"`
	End   int `json:"end" yaml:"end"`
}

type wireSequence struct {
	ID       int    `json:"id" yaml:"id"`
	Name     string `json:"name" yaml:"name"`
	Patterns []int  `json:"patterns" yaml:"patterns"`
}

// Snapshot is the immutable loaded corpus.
type Snapshot struct {
	Meta       Meta
	Patterns   []*Pattern // ordered by ascending number
	Sequences  []*Sequence
	Categories []*Category
	Warnings   []Warning

	byID      map[string]*Pattern
	byNumber  map[int]*Pattern
	seqByID   map[string]*Sequence
	catByName map[string]*Category
}

// PatternByID returns the pattern with the given id, or nil.
func (s *Snapshot) PatternByID(id string) *Pattern {
	return s.byID[id]
}

// PatternByNumber returns the pattern with the given number, or nil.
func (s *Snapshot) PatternByNumber(n int) *Pattern {
	return s.byNumber[n]
}

// SequenceByID returns the sequence with the given id, or nil.
func (s *Snapshot) SequenceByID(id string) *Sequence {
	return s.seqByID[id]
}

// CategoryByName returns the category with the given name, or nil.
func (s *Snapshot) CategoryByName(name string) *Category {
	return s.catByName[name]
}

// CategoryOf returns the category whose range contains the number, or nil.
// Ranges are non-overlapping, so at most one category claims a number.
func (s *Snapshot) CategoryOf(number int) *Category {
	for _, c := range s.Categories {
		if c.Contains(number) {
			return c
		}
	}
	return nil
}

// SequencesContaining returns the sequences that include the pattern id,
// in declared corpus order.
func (s *Snapshot) SequencesContaining(id string) []*Sequence {
	var out []*Sequence
	for _, seq := range s.Sequences {
		for _, member := range seq.Patterns {
			if member == id {
				out = append(out, seq)
				break
			}
		}
	}
	return out
}

// SortByNumber orders patterns by ascending pattern number in place.
func SortByNumber(patterns []*Pattern) {
	sort.Slice(patterns, func(i, j int) bool {
		return patterns[i].Number < patterns[j].Number
	})
}
