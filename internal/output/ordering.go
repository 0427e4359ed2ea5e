package output

import "sort"

// SortRanked sorts ranked patterns by score DESC, pattern number ASC.
// Scores are rounded before comparison so formatting-equal scores tie.
func SortRanked(items []RankedPattern) {
	sort.SliceStable(items, func(i, j int) bool {
		si, sj := RoundFloat(items[i].Score), RoundFloat(items[j].Score)
		if si != sj {
			return si > sj
		}
		return items[i].Pattern.Number < items[j].Pattern.Number
	})
}

// SortSummaries sorts pattern summaries by number ASC.
func SortSummaries(items []PatternSummary) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Number < items[j].Number
	})
}

// SortWarnings sorts warnings by kind ASC, subject ASC, detail ASC.
func SortWarnings(warnings []Warning) {
	sort.SliceStable(warnings, func(i, j int) bool {
		if warnings[i].Kind != warnings[j].Kind {
			return warnings[i].Kind < warnings[j].Kind
		}
		if warnings[i].Subject != warnings[j].Subject {
			return warnings[i].Subject < warnings[j].Subject
		}
		return warnings[i].Detail < warnings[j].Detail
	})
}
