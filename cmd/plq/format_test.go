package main

import (
	"strings"
	"testing"
	"time"

	"plq/internal/errors"
	"plq/internal/output"
)

func TestFormatResponseJSON(t *testing.T) {
	resp := NewResponse([]output.PatternSummary{
		{ID: "apl1", Number: 1, Name: "Independent Regions", Evidence: 2, Category: "Towns"},
	}, nil, time.Now())

	got, err := FormatResponse(resp, FormatJSON)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{`"plqVersion"`, `"queryId"`, `"Independent Regions"`} {
		if !strings.Contains(got, want) {
			t.Errorf("JSON output missing %s:\n%s", want, got)
		}
	}
}

func TestFormatResponseHumanSummaries(t *testing.T) {
	resp := NewResponse([]output.PatternSummary{
		{ID: "apl1", Number: 1, Name: "Independent Regions", Evidence: 2, Category: "Towns"},
	}, []output.Warning{{Kind: "dangling-ref", Subject: "apl1", Detail: "references 99"}}, time.Now())

	got, err := FormatResponse(resp, FormatHuman)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(got, "1 Independent Regions ** (apl1) [Towns]") {
		t.Errorf("unexpected human output:\n%s", got)
	}
	if !strings.Contains(got, "warning: dangling-ref apl1") {
		t.Errorf("warnings missing from output:\n%s", got)
	}
}

func TestFormatResponseHumanPath(t *testing.T) {
	resp := NewResponse(&output.PathResult{
		Found: true,
		Path: []output.PatternSummary{
			{ID: "apl1", Number: 1, Name: "A"},
			{ID: "apl2", Number: 2, Name: "B"},
		},
		Hops: 1,
	}, nil, time.Now())

	got, err := FormatResponse(resp, FormatHuman)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(got, "1 A -> 2 B") {
		t.Errorf("unexpected path output:\n%s", got)
	}

	resp = NewResponse(&output.PathResult{Found: false}, nil, time.Now())
	got, err = FormatResponse(resp, FormatHuman)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(got, "no path") {
		t.Errorf("unexpected no-path output:\n%s", got)
	}
}

func TestErrorResponseCarriesDrilldowns(t *testing.T) {
	resp := ErrorResponse(errors.NotFoundPattern("apl99"), time.Now())

	facts, ok := resp.Facts.(map[string]interface{})
	if !ok {
		t.Fatalf("facts = %T", resp.Facts)
	}
	if facts["error"] != string(errors.PatternNotFound) {
		t.Errorf("error code = %v", facts["error"])
	}
	if len(resp.Drilldowns) == 0 {
		t.Error("drilldowns missing")
	}

	got, err := FormatResponse(resp, FormatHuman)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(got, "try: plq search apl99") {
		t.Errorf("drilldown missing from human output:\n%s", got)
	}
}

func TestSummaryLineEvidence(t *testing.T) {
	line := summaryLine(output.PatternSummary{ID: "apl1", Number: 1, Name: "A", Evidence: 2})
	if !strings.Contains(line, "A **") {
		t.Errorf("two-star evidence missing: %q", line)
	}

	// Out-of-range evidence must render, not panic.
	line = summaryLine(output.PatternSummary{ID: "apl1", Number: 1, Name: "A", Evidence: -1})
	if strings.Contains(line, "*") {
		t.Errorf("negative evidence should render without stars: %q", line)
	}
}

func TestFormatResponseRejectsUnknownFormat(t *testing.T) {
	if _, err := FormatResponse(NewResponse(nil, nil, time.Now()), OutputFormat("xml")); err == nil {
		t.Error("unknown format accepted")
	}
}
