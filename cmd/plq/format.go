package main

import (
	"fmt"
	"sort"
	"strings"

	"plq/internal/api"
	"plq/internal/corpus"
	"plq/internal/output"
)

// OutputFormat represents the output format type
type OutputFormat string

const (
	FormatJSON  OutputFormat = "json"
	FormatHuman OutputFormat = "human"
)

// FormatResponse renders a response envelope in the requested format.
// JSON output goes through the deterministic encoder.
func FormatResponse(resp *Response, format OutputFormat) (string, error) {
	switch format {
	case FormatJSON:
		data, err := output.DeterministicEncodeIndented(resp, "  ")
		if err != nil {
			return "", fmt.Errorf("failed to marshal JSON: %w", err)
		}
		return string(data), nil
	case FormatHuman:
		return formatHuman(resp), nil
	default:
		return "", fmt.Errorf("unsupported format: %s", format)
	}
}

func formatHuman(resp *Response) string {
	var b strings.Builder

	switch facts := resp.Facts.(type) {
	case []output.PatternSummary:
		for _, p := range facts {
			b.WriteString(formatSummary(p))
		}
		if len(facts) == 0 {
			b.WriteString("(no patterns)\n")
		}
	case []output.RankedPattern:
		for i, r := range facts {
			b.WriteString(fmt.Sprintf("%2d. [%s] %s\n", i+1, output.FormatFloat(r.Score), summaryLine(r.Pattern)))
			b.WriteString(fmt.Sprintf("      centrality %s  relevance %s  gestalt %s",
				output.FormatFloat(r.SubScores.Centrality),
				output.FormatFloat(r.SubScores.Relevance),
				output.FormatFloat(r.SubScores.Gestalt)))
			if r.SubScores.Force != nil {
				b.WriteString(fmt.Sprintf("  force %s", output.FormatFloat(*r.SubScores.Force)))
			}
			b.WriteString("\n")
		}
	case []output.SearchHit:
		for _, h := range facts {
			b.WriteString(fmt.Sprintf("%s (%s match)\n", summaryLine(h.Pattern), h.MatchType))
		}
		if len(facts) == 0 {
			b.WriteString("(no matches)\n")
		}
	case *output.PathResult:
		if !facts.Found {
			b.WriteString("no path\n")
		} else {
			steps := make([]string, len(facts.Path))
			for i, p := range facts.Path {
				steps[i] = fmt.Sprintf("%d %s", p.Number, p.Name)
			}
			b.WriteString(strings.Join(steps, " -> "))
			b.WriteString(fmt.Sprintf("  (%d hops)\n", facts.Hops))
		}
	case *api.PatternDetail:
		b.WriteString(formatDetail(facts))
	case output.Stats:
		b.WriteString(fmt.Sprintf("Patterns:   %d\n", facts.TotalPatterns))
		b.WriteString(fmt.Sprintf("Categories: %d\n", facts.Categories))
		b.WriteString(fmt.Sprintf("Sequences:  %d\n", facts.Sequences))
		b.WriteString(fmt.Sprintf("Precedes:   %d edges\n", facts.PrecedesEdges))
		for _, name := range sortedKeys(facts.ByCategory) {
			b.WriteString(fmt.Sprintf("  %s: %d patterns\n", name, facts.ByCategory[name]))
		}
		for _, kind := range sortedKeys(facts.Warnings) {
			b.WriteString(fmt.Sprintf("Warning %s: %d\n", kind, facts.Warnings[kind]))
		}
	case *corpus.ValidationReport:
		b.WriteString(fmt.Sprintf("Patterns: %d declared, %d loaded\n", facts.DeclaredPatterns, facts.TotalPatterns))
		b.WriteString(fmt.Sprintf("Preceding consistency: %s\n", output.FormatFloat(facts.PrecedingConsistency)))
		b.WriteString(fmt.Sprintf("Following consistency: %s\n", output.FormatFloat(facts.FollowingConsistency)))
		if facts.Clean {
			b.WriteString("Corpus is clean\n")
		} else {
			for _, kind := range sortedKeys(facts.WarningCounts) {
				b.WriteString(fmt.Sprintf("  %s: %d\n", kind, facts.WarningCounts[kind]))
			}
		}
	case map[string]interface{}:
		// Error facts
		if msg, ok := facts["message"]; ok {
			b.WriteString(fmt.Sprintf("Error: %v\n", msg))
		}
		for _, d := range resp.Drilldowns {
			b.WriteString(fmt.Sprintf("  try: %s\n", d.Query))
		}
	default:
		data, err := output.DeterministicEncodeIndented(resp.Facts, "  ")
		if err == nil {
			b.Write(data)
			b.WriteString("\n")
		}
	}

	for _, w := range resp.Warnings {
		b.WriteString(fmt.Sprintf("warning: %s %s: %s\n", w.Kind, w.Subject, w.Detail))
	}
	return b.String()
}

func summaryLine(p output.PatternSummary) string {
	stars := evidenceStars(p.Evidence)
	if stars != "" {
		stars = " " + stars
	}
	return fmt.Sprintf("%d %s%s (%s)", p.Number, p.Name, stars, p.ID)
}

// evidenceStars renders an evidence level as asterisks. The loader
// rejects levels outside [0, 2]; guard anyway so a bad value cannot
// panic the formatter.
func evidenceStars(n int) string {
	if n < 0 {
		n = 0
	}
	return strings.Repeat("*", n)
}

func formatSummary(p output.PatternSummary) string {
	line := summaryLine(p)
	if p.Category != "" {
		line += " [" + p.Category + "]"
	}
	return line + "\n"
}

func formatDetail(d *api.PatternDetail) string {
	var b strings.Builder
	p := d.Pattern
	b.WriteString(fmt.Sprintf("%d. %s %s\n", p.Number, p.Name, evidenceStars(int(p.Evidence))))
	if d.Category != "" {
		b.WriteString(fmt.Sprintf("Category:  %s\n", d.Category))
	}
	if len(d.Sequences) > 0 {
		b.WriteString(fmt.Sprintf("Sequences: %s\n", strings.Join(d.Sequences, ", ")))
	}
	if p.Context != "" {
		b.WriteString("\n" + p.Context + "\n")
	}
	if p.Problem != "" {
		b.WriteString("\nProblem: " + p.Problem + "\n")
	}
	if p.Solution != "" {
		b.WriteString("\nSolution: " + p.Solution + "\n")
	}
	if len(d.Preceding) > 0 {
		b.WriteString("\nPreceded by:\n")
		for _, s := range d.Preceding {
			b.WriteString("  " + formatSummary(s))
		}
	}
	if len(d.Following) > 0 {
		b.WriteString("\nFollowed by:\n")
		for _, s := range d.Following {
			b.WriteString("  " + formatSummary(s))
		}
	}
	return b.String()
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
