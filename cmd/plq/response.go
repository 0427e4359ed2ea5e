package main

import (
	"time"

	"github.com/google/uuid"

	"plq/internal/errors"
	"plq/internal/output"
	"plq/internal/version"
)

// Response is the common wrapper for all PLQ command responses.
type Response struct {
	PlqVersion    string             `json:"plqVersion"`
	SchemaVersion int                `json:"schemaVersion"`
	QueryID       string             `json:"queryId"`
	Facts         interface{}        `json:"facts"`
	Warnings      []output.Warning   `json:"warnings,omitempty"`
	Drilldowns    []errors.Drilldown `json:"drilldowns,omitempty"`
	DurationMs    int64              `json:"durationMs"`
}

// NewResponse wraps command facts in the standard envelope.
func NewResponse(facts interface{}, warnings []output.Warning, started time.Time) *Response {
	return &Response{
		PlqVersion:    version.Version,
		SchemaVersion: 1,
		QueryID:       uuid.New().String(),
		Facts:         facts,
		Warnings:      warnings,
		DurationMs:    time.Since(started).Milliseconds(),
	}
}

// ErrorResponse wraps a failed query in the standard envelope, carrying
// the error's code, message and suggested follow-ups.
func ErrorResponse(err error, started time.Time) *Response {
	resp := &Response{
		PlqVersion:    version.Version,
		SchemaVersion: 1,
		QueryID:       uuid.New().String(),
		DurationMs:    time.Since(started).Milliseconds(),
	}

	var qerr *errors.QueryError
	if errors.AsQueryError(err, &qerr) {
		resp.Facts = map[string]interface{}{
			"error":   string(qerr.Code),
			"message": qerr.Message,
		}
		resp.Drilldowns = qerr.Drilldowns
	} else {
		resp.Facts = map[string]interface{}{
			"error":   string(errors.InternalError),
			"message": err.Error(),
		}
	}
	return resp
}
