package main

import (
	"fmt"
	"os"
	"time"

	"plq/internal/output"
)

// emit prints a success envelope for facts on stdout.
func emit(facts interface{}, warnings []output.Warning, started time.Time) error {
	return emitResponse(NewResponse(facts, warnings, started))
}

// emitError prints an error envelope on stdout and returns a sentinel
// error so the command exits non-zero.
func emitError(err error, started time.Time) error {
	if emitErr := emitResponse(ErrorResponse(err, started)); emitErr != nil {
		return emitErr
	}
	return err
}

func emitResponse(resp *Response) error {
	text, err := FormatResponse(resp, OutputFormat(formatFlag))
	if err != nil {
		return err
	}
	fmt.Fprintln(os.Stdout, text)
	return nil
}
